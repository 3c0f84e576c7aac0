package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/kailas-cloud/shopdex/internal/config"
	dbRedis "github.com/kailas-cloud/shopdex/internal/db/redis"
	"github.com/kailas-cloud/shopdex/internal/domain/search/rank"
	logpkg "github.com/kailas-cloud/shopdex/internal/logger"
	"github.com/kailas-cloud/shopdex/internal/metrics"
	cacherepo "github.com/kailas-cloud/shopdex/internal/repository/cache"
	catalogrepo "github.com/kailas-cloud/shopdex/internal/repository/catalog"
	popularityrepo "github.com/kailas-cloud/shopdex/internal/repository/popularity"
	chiTransport "github.com/kailas-cloud/shopdex/internal/transport/chi"
	healthuc "github.com/kailas-cloud/shopdex/internal/usecase/health"
	searchuc "github.com/kailas-cloud/shopdex/internal/usecase/search"
	suggestuc "github.com/kailas-cloud/shopdex/internal/usecase/suggest"
	"github.com/kailas-cloud/shopdex/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting shopdex API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Password: cfg.Database.Password,
	})
	if err != nil {
		logger.Fatal("Failed to create cache store", zap.Error(err))
	}
	defer store.Close()

	// Wait for cache store to be ready
	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Cache store not ready", zap.Error(err))
	}
	logger.Info("Connected to cache store")

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Catalog.URI))
	if err != nil {
		logger.Fatal("Failed to connect to catalog", zap.Error(err))
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()
	logger.Info("Connected to catalog",
		zap.String("database", cfg.Catalog.Database),
		zap.String("collection", cfg.Catalog.Collection),
	)

	// Register search metrics explicitly (no init())
	metrics.RegisterSearchMetrics()

	// Create repositories
	catalogRepo := catalogrepo.New(
		mongoClient.Database(cfg.Catalog.Database),
		cfg.Catalog.Collection,
		time.Duration(cfg.Catalog.TimeoutSec)*time.Second,
	).WithMetrics(metrics.CatalogFetchDuration)
	cacheRepo := cacherepo.New(store, cfg.Storage.KeyPrefix, cacherepo.TTLConfig{
		Text:     time.Duration(cfg.Cache.TextTTLSec) * time.Second,
		Location: time.Duration(cfg.Cache.LocationTTLSec) * time.Second,
		Category: time.Duration(cfg.Cache.CategoryTTLSec) * time.Second,
	})
	popularityRepo := popularityrepo.New(store, cfg.Storage.KeyPrefix)

	// Create use case services
	searchSvc := searchuc.New(catalogRepo, cacheRepo, rank.New(weightsFromConfig(cfg.Search))).
		WithRecorder(popularityRepo).
		WithMetrics(metrics.SearchCacheTotal, metrics.SearchDuration)
	suggestSvc := suggestuc.New(catalogRepo, popularityRepo).
		WithRefreshInterval(time.Duration(cfg.Suggest.RefreshSec) * time.Second).
		WithMetrics(metrics.SuggestDuration)
	healthSvc := healthuc.New(store, catalogRepo)

	// Create chi server
	server := chiTransport.NewServer(searchSvc, suggestSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// weightsFromConfig overlays configured scoring knobs on the default profile.
// Zero values keep the default.
func weightsFromConfig(sc config.SearchConfig) rank.Weights {
	w := rank.DefaultWeights()
	overlay := func(dst *float64, v float64) {
		if v > 0 {
			*dst = v
		}
	}
	overlay(&w.TextExact, sc.TextExact)
	overlay(&w.TextPrefix, sc.TextPrefix)
	overlay(&w.TextContains, sc.TextContains)
	overlay(&w.TextSecondary, sc.TextSecondary)
	overlay(&w.DistanceMax, sc.DistanceMax)
	overlay(&w.DistanceCutoffKm, sc.DistanceCutoffKm)
	overlay(&w.QualityScale, sc.QualityScale)
	overlay(&w.PriorRating, sc.PriorRating)
	overlay(&w.PriorWeight, sc.PriorWeight)
	overlay(&w.FeaturedBonus, sc.FeaturedBonus)
	overlay(&w.TierBonus, sc.TierBonus)
	overlay(&w.CategoryBonus, sc.CategoryBonus)
	return w
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "INTERNAL_ERROR",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.WithContext(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line, one per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
