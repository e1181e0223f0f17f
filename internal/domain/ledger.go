package domain

import (
	"context"
	"time"
)

//go:generate mockgen -source=ledger.go -destination=ledger_mock.go -package=domain

// Ledger stores short-lived claim markers for idempotent operations.
type Ledger interface {
	// Claim returns false when the key is already claimed.
	Claim(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}
