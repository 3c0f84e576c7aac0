package search

import (
	"context"
	"time"

	"github.com/kailas-cloud/shopdex/internal/domain"
	"github.com/kailas-cloud/shopdex/internal/domain/search/class"
	"github.com/kailas-cloud/shopdex/internal/domain/shop"
)

// Catalog provides read-only candidate snapshots. Implementations must bound
// each fetch by a timeout and surface outages as domain.ErrCatalogUnavailable.
type Catalog interface {
	FetchCandidates(ctx context.Context, category *domain.Category) ([]shop.Shop, error)
}

// ResponseCache stores assembled responses keyed by canonical query key.
// A soft dependency: any error degrades to uncached computation.
type ResponseCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error
	TTLFor(c class.Class, hasCategory bool) time.Duration
}

// Recorder tracks executed searches for the popularity signals. Best-effort.
type Recorder interface {
	RecordSearch(ctx context.Context, term string, category *domain.Category) error
}
