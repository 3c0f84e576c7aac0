package suggest

import (
	"context"

	"github.com/kailas-cloud/shopdex/internal/domain"
	"github.com/kailas-cloud/shopdex/internal/domain/shop"
	"github.com/kailas-cloud/shopdex/internal/repository/popularity"
)

// Catalog supplies shop snapshots for the term index.
type Catalog interface {
	FetchCandidates(ctx context.Context, category *domain.Category) ([]shop.Shop, error)
}

// Popularity supplies recorded search frequencies.
type Popularity interface {
	TermCounts(ctx context.Context) (map[string]int64, error)
	TopSearches(ctx context.Context, n int) ([]popularity.TermCount, error)
	TrendingCategories(ctx context.Context, n int) ([]popularity.CategoryCount, error)
}
