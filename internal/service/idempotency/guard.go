package idempotency

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/KasumiMercury/primind-focus-assistant/internal/domain"
)

// DefaultTTL is how long a request key stays claimed.
const DefaultTTL = 24 * time.Hour

// Guard rejects repeated request keys. A nil ledger accepts every key.
type Guard struct {
	ledger domain.Ledger
	ttl    time.Duration
}

func NewGuard(ledger domain.Ledger, ttl time.Duration) *Guard {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Guard{ledger: ledger, ttl: ttl}
}

func Key(scope, requestKey string) string {
	return fmt.Sprintf("idempotency:%s:%s", scope, requestKey)
}

// Claim returns a release func to call when the guarded operation fails.
// An empty requestKey is not guarded.
func (g *Guard) Claim(ctx context.Context, scope, requestKey string) (func(), error) {
	noop := func() {}
	if g == nil || g.ledger == nil || requestKey == "" {
		return noop, nil
	}

	key := Key(scope, requestKey)
	claimed, err := g.ledger.Claim(ctx, key, g.ttl)
	if err != nil {
		return noop, fmt.Errorf("claim idempotency key: %w", err)
	}
	if !claimed {
		slog.InfoContext(ctx, "duplicate request rejected",
			slog.String("scope", scope),
			slog.String("idempotency_key", requestKey),
		)
		return noop, domain.ErrDuplicateRequest
	}

	return func() {
		if err := g.ledger.Release(ctx, key); err != nil {
			slog.WarnContext(ctx, "failed to release idempotency key",
				slog.String("event", "idempotency.release.fail"),
				slog.String("key", key),
				slog.String("error", err.Error()),
			)
		}
	}, nil
}
