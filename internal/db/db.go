// Package db defines the key-value store contract backing the response cache
// and popularity counters. Implementations must be safe for concurrent use.
package db

import (
	"context"
	"time"
)

// Store is the store facade combining all sub-interfaces. Consumers should
// depend on the narrow sub-interfaces.
type Store interface {
	Pinger
	KVStore
	HashStore
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks store connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// KVStore provides simple key-value operations with expiry.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

// HashStore provides hash field counters.
type HashStore interface {
	HIncrBy(ctx context.Context, key, field string, delta int64) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
}
