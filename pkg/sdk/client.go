package shopdex

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	dbRedis "github.com/kailas-cloud/shopdex/internal/db/redis"
	"github.com/kailas-cloud/shopdex/internal/domain/search/query"
	"github.com/kailas-cloud/shopdex/internal/logger"
	"github.com/kailas-cloud/shopdex/internal/domain/search/rank"
	"github.com/kailas-cloud/shopdex/internal/domain/search/result"
	cacherepo "github.com/kailas-cloud/shopdex/internal/repository/cache"
	catalogrepo "github.com/kailas-cloud/shopdex/internal/repository/catalog"
	popularityrepo "github.com/kailas-cloud/shopdex/internal/repository/popularity"
	searchuc "github.com/kailas-cloud/shopdex/internal/usecase/search"
	suggestuc "github.com/kailas-cloud/shopdex/internal/usecase/suggest"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultCatalogTimeout   = 5 * time.Second
	defaultKeyPrefix        = "shopdex:"
)

// Внутренние интерфейсы для подмены в тестах.
type searchUseCase interface {
	Search(ctx context.Context, q *query.Query) (result.Response, error)
}

type suggestUseCase interface {
	Suggest(ctx context.Context, prefix string, limit int) ([]string, error)
	Popular(ctx context.Context) (suggestuc.PopularTerms, error)
}

// Client is the shopdex SDK entry point.
type Client struct {
	store      *dbRedis.Store
	mongo      *mongo.Client
	logger     *zap.Logger
	searchSvc  searchUseCase
	suggestSvc suggestUseCase
}

// New creates a shopdex Client and connects to the cache store and catalog.
// The provided context is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		catalogTimeout: defaultCatalogTimeout,
		keyPrefix:      defaultKeyPrefix,
		logger:         zap.NewNop(),
	}
	for _, o := range opts {
		o(cfg)
	}

	if len(cfg.redisAddrs) == 0 {
		return nil, errors.New("shopdex: cache store address required (use WithRedis)")
	}
	if cfg.mongoURI == "" {
		return nil, errors.New("shopdex: catalog connection required (use WithMongo)")
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.redisAddrs,
		Password: cfg.redisPassword,
	})
	if err != nil {
		return nil, fmt.Errorf("shopdex: create cache store: %w", err)
	}

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("shopdex: cache store not ready: %w", err)
	}

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.mongoURI))
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("shopdex: connect catalog: %w", err)
	}

	return wireClient(store, mongoClient, cfg), nil
}

func wireClient(store *dbRedis.Store, mongoClient *mongo.Client, cfg *clientConfig) *Client {
	catalogRepo := catalogrepo.New(
		mongoClient.Database(cfg.mongoDatabase),
		cfg.mongoCollection,
		cfg.catalogTimeout,
	)
	cacheRepo := cacherepo.New(store, cfg.keyPrefix, cacherepo.DefaultTTLs())
	popularityRepo := popularityrepo.New(store, cfg.keyPrefix)

	searchSvc := searchuc.New(catalogRepo, cacheRepo, rank.New(rank.DefaultWeights())).
		WithRecorder(popularityRepo)
	suggestSvc := suggestuc.New(catalogRepo, popularityRepo)

	return &Client{
		store:      store,
		mongo:      mongoClient,
		logger:     cfg.logger,
		searchSvc:  searchSvc,
		suggestSvc: suggestSvc,
	}
}

// Search executes a validated search query.
func (c *Client) Search(ctx context.Context, q Query) (*SearchResult, error) {
	validated, err := query.New(paramsFromQuery(q))
	if err != nil {
		return nil, fmt.Errorf("shopdex: %w", err)
	}

	resp, err := c.searchSvc.Search(logger.WithContext(ctx, c.logger), &validated)
	if err != nil {
		return nil, fmt.Errorf("shopdex: search: %w", err)
	}
	return searchResultFrom(resp), nil
}

// Suggest returns autocomplete terms for a prefix.
func (c *Client) Suggest(ctx context.Context, prefix string, limit int) ([]string, error) {
	terms, err := c.suggestSvc.Suggest(logger.WithContext(ctx, c.logger), prefix, limit)
	if err != nil {
		return nil, fmt.Errorf("shopdex: suggest: %w", err)
	}
	return terms, nil
}

// Popular returns the most searched terms and categories.
func (c *Client) Popular(ctx context.Context) (*Popular, error) {
	p, err := c.suggestSvc.Popular(logger.WithContext(ctx, c.logger))
	if err != nil {
		return nil, fmt.Errorf("shopdex: popular: %w", err)
	}
	return popularFrom(p), nil
}

// Close releases both connections.
func (c *Client) Close() {
	c.store.Close()
	_ = c.mongo.Disconnect(context.Background())
}
