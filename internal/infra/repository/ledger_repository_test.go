package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/KasumiMercury/primind-focus-assistant/internal/testutil"
)

func TestLedgerClaimSuccess(t *testing.T) {
	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewLedgerRepository(client)

	tests := []struct {
		name     string
		key      string
		setup    func(t *testing.T)
		expected bool
	}{
		{
			name:     "fresh key is claimed",
			key:      "reminder:page-1:1718479800",
			setup:    func(t *testing.T) {},
			expected: true,
		},
		{
			name: "existing key is not claimed",
			key:  "reminder:page-2:1718479800",
			setup: func(t *testing.T) {
				err := client.Set(ctx, "focus:ledger:reminder:page-2:1718479800", "{}", time.Hour).Err()
				if err != nil {
					t.Fatalf("failed to set up test data: %v", err)
				}
			},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup(t)

			claimed, err := repo.Claim(ctx, tt.key, time.Hour)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if claimed != tt.expected {
				t.Errorf("expected claimed %v, got %v", tt.expected, claimed)
			}
		})
	}
}

func TestLedgerClaimSetsTTL(t *testing.T) {
	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewLedgerRepository(client)

	if _, err := repo.Claim(ctx, "idempotency:tasks:k1", 30*time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ttl, err := client.TTL(ctx, "focus:ledger:idempotency:tasks:k1").Result()
	if err != nil {
		t.Fatalf("failed to read ttl: %v", err)
	}
	if ttl <= 0 || ttl > 30*time.Minute {
		t.Errorf("expected ttl within 30m, got %v", ttl)
	}
}

func TestLedgerReleaseAllowsReclaim(t *testing.T) {
	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewLedgerRepository(client)
	key := "reminder:page-3:1718479800"

	if claimed, err := repo.Claim(ctx, key, time.Hour); err != nil || !claimed {
		t.Fatalf("first claim = %v, %v", claimed, err)
	}
	if claimed, err := repo.Claim(ctx, key, time.Hour); err != nil || claimed {
		t.Fatalf("second claim = %v, %v", claimed, err)
	}
	if err := repo.Release(ctx, key); err != nil {
		t.Fatalf("release: %v", err)
	}
	if claimed, err := repo.Claim(ctx, key, time.Hour); err != nil || !claimed {
		t.Fatalf("claim after release = %v, %v", claimed, err)
	}
}

func TestLedgerClaimRejectsNonPositiveTTL(t *testing.T) {
	repo := NewLedgerRepository(nil)

	_, err := repo.Claim(context.Background(), "k", 0)
	if !errors.Is(err, ErrInvalidTTL) {
		t.Errorf("expected ErrInvalidTTL, got %v", err)
	}
}
