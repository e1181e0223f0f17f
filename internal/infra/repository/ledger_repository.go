package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/primind-focus-assistant/internal/domain"
	"github.com/KasumiMercury/primind-focus-assistant/internal/observability/tracing"
)

const (
	ledgerKeyPrefix = "focus:ledger:"
)

type claimRecord struct {
	Key       string    `json:"key"`
	ClaimedAt time.Time `json:"claimed_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

type ledgerRepository struct {
	client *redis.Client
}

func NewLedgerRepository(client *redis.Client) domain.Ledger {
	return &ledgerRepository{
		client: client,
	}
}

func (r *ledgerRepository) Claim(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	if ttl <= 0 {
		return false, ErrInvalidTTL
	}

	ctx, span := tracing.StartRedisOperationSpan(ctx, "setnx", ledgerKeyPrefix+key)
	defer span.End()

	now := time.Now()
	data, err := json.Marshal(claimRecord{
		Key:       key,
		ClaimedAt: now,
		ExpiresAt: now.Add(ttl),
	})
	if err != nil {
		tracing.RecordResult(span, err)
		return false, err
	}

	claimed, err := r.client.SetNX(ctx, ledgerKeyPrefix+key, data, ttl).Result()
	if err != nil {
		err = fmt.Errorf("%w: %v", ErrRedisConnection, err)
		tracing.RecordResult(span, err)
		return false, err
	}

	tracing.RecordResult(span, nil)
	return claimed, nil
}

func (r *ledgerRepository) Release(ctx context.Context, key string) error {
	ctx, span := tracing.StartRedisOperationSpan(ctx, "del", ledgerKeyPrefix+key)
	defer span.End()

	if err := r.client.Del(ctx, ledgerKeyPrefix+key).Err(); err != nil {
		err = fmt.Errorf("%w: %v", ErrRedisConnection, err)
		tracing.RecordResult(span, err)
		return err
	}

	tracing.RecordResult(span, nil)
	return nil
}
