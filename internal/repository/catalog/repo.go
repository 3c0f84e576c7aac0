// Package catalog reads shop snapshots from the catalog service's MongoDB.
// The search core never mutates shop records; every fetch is a read-only
// snapshot bounded by a timeout.
package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/kailas-cloud/shopdex/internal/domain"
	"github.com/kailas-cloud/shopdex/internal/domain/shop"
)

// Repository fetches candidate shops from the catalog collection.
type Repository struct {
	collection *mongo.Collection
	timeout    time.Duration
	duration   *prometheus.HistogramVec
}

// New creates a Mongo-backed catalog repository. timeout bounds each fetch;
// an expired deadline surfaces as a retryable domain.ErrCatalogUnavailable.
func New(database *mongo.Database, collectionName string, timeout time.Duration) *Repository {
	return &Repository{
		collection: database.Collection(collectionName),
		timeout:    timeout,
	}
}

// WithMetrics attaches a fetch duration histogram carrying a "status" label
// ("ok"/"error").
func (r *Repository) WithMetrics(duration *prometheus.HistogramVec) *Repository {
	r.duration = duration
	return r
}

// FetchCandidates returns approved shops, optionally narrowed to a category.
// The category filter is pushed down to the catalog query; all other
// narrowing happens in the search pipeline.
func (r *Repository) FetchCandidates(ctx context.Context, category *domain.Category) ([]shop.Shop, error) {
	start := time.Now()
	shops, err := r.fetchCandidates(ctx, category)
	if err != nil {
		r.observe(start, "error")
		return nil, err
	}
	r.observe(start, "ok")
	return shops, nil
}

func (r *Repository) fetchCandidates(ctx context.Context, category *domain.Category) ([]shop.Shop, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	filter := bson.M{"status": "approved"}
	if category != nil {
		filter["$or"] = []bson.M{
			{"mainCategory": string(*category)},
			{"subCategories": string(*category)},
		}
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: find shops: %w", domain.ErrCatalogUnavailable, err)
	}
	defer cursor.Close(ctx)

	shops := make([]shop.Shop, 0)
	for cursor.Next(ctx) {
		var doc shopDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("%w: decode shop: %w", domain.ErrCatalogUnavailable, err)
		}
		shops = append(shops, mapShopDocument(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("%w: cursor: %w", domain.ErrCatalogUnavailable, err)
	}

	return shops, nil
}

func (r *Repository) observe(start time.Time, status string) {
	if r.duration != nil {
		r.duration.WithLabelValues(status).Observe(time.Since(start).Seconds())
	}
}

// Ping checks catalog connectivity for health reporting.
func (r *Repository) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if err := r.collection.Database().Client().Ping(ctx, nil); err != nil {
		return fmt.Errorf("catalog ping: %w", err)
	}
	return nil
}
