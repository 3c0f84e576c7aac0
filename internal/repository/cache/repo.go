// Package cache stores assembled search responses in a key-value store with
// a TTL chosen by query classification.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/shopdex/internal/db"
	"github.com/kailas-cloud/shopdex/internal/domain/search/class"
)

const keySuffix = "search:"

// TTLConfig holds the cache lifetime per query class band.
type TTLConfig struct {
	// Text applies to text-only and filter-only queries without geo fields.
	// These change slowly.
	Text time.Duration
	// Location applies to location and hybrid queries. Proximity results
	// are sensitive to caller movement and open/closed state.
	Location time.Duration
	// Category applies to filter queries that carry a category but no
	// location.
	Category time.Duration
}

// DefaultTTLs returns the standard TTL bands.
func DefaultTTLs() TTLConfig {
	return TTLConfig{
		Text:     15 * time.Minute,
		Location: 5 * time.Minute,
		Category: 10 * time.Minute,
	}
}

// Repository is the response cache over a KV store.
type Repository struct {
	kv     db.KVStore
	prefix string
	ttl    TTLConfig
}

// New creates a response cache. prefix namespaces all keys in the store.
func New(kv db.KVStore, prefix string, ttl TTLConfig) *Repository {
	return &Repository{kv: kv, prefix: prefix + keySuffix, ttl: ttl}
}

// TTLFor selects the cache lifetime for a query class. hasCategory
// distinguishes the medium band inside the filter class.
func (r *Repository) TTLFor(c class.Class, hasCategory bool) time.Duration {
	switch c {
	case class.Location, class.Hybrid:
		return r.ttl.Location
	case class.Filter:
		if hasCategory {
			return r.ttl.Category
		}
		return r.ttl.Text
	default:
		return r.ttl.Text
	}
}

// Get returns the cached payload for a canonical query key.
// Returns db.ErrKeyNotFound on a miss.
func (r *Repository) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := r.kv.Get(ctx, r.prefix+key)
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}
	return data, nil
}

// Set stores a payload at the given TTL. Expiry is passive: the store evicts
// on its own, this subsystem never sweeps.
func (r *Repository) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	if err := r.kv.SetWithTTL(ctx, r.prefix+key, payload, ttl); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}
