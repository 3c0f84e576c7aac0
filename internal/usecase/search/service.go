// Package search orchestrates the discovery pipeline:
// classify, cache lookup, geo filter, rank, paginate, cache store.
package search

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/kailas-cloud/shopdex/internal/db"
	"github.com/kailas-cloud/shopdex/internal/domain/search/class"
	"github.com/kailas-cloud/shopdex/internal/domain/search/query"
	"github.com/kailas-cloud/shopdex/internal/domain/search/rank"
	"github.com/kailas-cloud/shopdex/internal/domain/search/result"
	"github.com/kailas-cloud/shopdex/internal/logger"
)

const recordTimeout = 2 * time.Second

// Service executes validated search queries.
type Service struct {
	catalog    Catalog
	cache      ResponseCache
	engine     *rank.Engine
	recorder   Recorder
	cacheTotal *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	group      singleflight.Group
}

// New creates a search service.
func New(catalog Catalog, cache ResponseCache, engine *rank.Engine) *Service {
	return &Service{catalog: catalog, cache: cache, engine: engine}
}

// WithRecorder attaches a best-effort popularity recorder.
func (s *Service) WithRecorder(r Recorder) *Service {
	s.recorder = r
	return s
}

// WithMetrics attaches Prometheus instruments. cacheTotal carries a "result"
// label ("hit"/"miss"/"bypass"); duration carries a "class" label.
func (s *Service) WithMetrics(cacheTotal *prometheus.CounterVec, duration *prometheus.HistogramVec) *Service {
	s.cacheTotal = cacheTotal
	s.duration = duration
	return s
}

// Search runs the pipeline for one validated query. On a cache hit the stored
// payload is returned verbatim except for a recomputed execution time and the
// hit flag. Cache failures never fail the request.
func (s *Service) Search(ctx context.Context, q *query.Query) (result.Response, error) {
	start := time.Now()
	cls := class.Of(q)
	key := q.CacheKey()
	log := logger.FromContext(ctx)

	defer s.observeDuration(cls, start)
	s.record(ctx, q)

	bypassed := false
	if data, ok, softErr := s.lookup(ctx, key); ok {
		var resp result.Response
		if err := json.Unmarshal(data, &resp); err == nil {
			s.incCache("hit")
			resp.Metadata.ExecutionTimeMs = time.Since(start).Milliseconds()
			resp.Metadata.Cache.Hit = true
			return resp, nil
		}
		log.Warn("discarding undecodable cached response", zap.String("key", key))
	} else if softErr {
		bypassed = true
	}

	// Concurrent misses for one key race harmlessly (results are
	// deterministic), but a single flight avoids the duplicate work. The
	// computation is detached from the caller's cancellation so a follower
	// or a later caller still benefits from the populated cache.
	v, err, _ := s.group.Do(key, func() (any, error) {
		return s.compute(context.WithoutCancel(ctx), q)
	})
	if err != nil {
		return result.Response{}, err
	}
	page := v.(result.Page)

	ttl := s.cache.TTLFor(cls, q.Category() != nil)
	resp := result.Response{
		Page: page,
		Metadata: result.Metadata{
			Query:           q.Text(),
			Classification:  string(cls),
			ExecutionTimeMs: time.Since(start).Milliseconds(),
			SortBy:          string(q.Sort()),
			SortOrder:       string(q.Order()),
			Cache: result.CacheInfo{
				Key:        key,
				TTLSeconds: int(ttl.Seconds()),
			},
		},
	}

	if !bypassed {
		bypassed = !s.store(ctx, key, resp, ttl)
	}
	if bypassed {
		s.incCache("bypass")
		resp.Metadata.Cache.Bypassed = true
	} else {
		s.incCache("miss")
	}

	return resp, nil
}

// lookup returns (payload, found, storeDown).
func (s *Service) lookup(ctx context.Context, key string) ([]byte, bool, bool) {
	data, err := s.cache.Get(ctx, key)
	if err == nil {
		return data, true, false
	}
	if errors.Is(err, db.ErrKeyNotFound) {
		return nil, false, false
	}
	logger.FromContext(ctx).Warn("cache lookup failed, computing uncached", zap.Error(err))
	return nil, false, true
}

// store writes the response payload. Returns false when the store failed.
func (s *Service) store(ctx context.Context, key string, resp result.Response, ttl time.Duration) bool {
	payload, err := json.Marshal(resp)
	if err != nil {
		logger.FromContext(ctx).Warn("failed to encode response for cache", zap.Error(err))
		return false
	}
	if err := s.cache.Set(ctx, key, payload, ttl); err != nil {
		logger.FromContext(ctx).Warn("cache store failed", zap.Error(err))
		return false
	}
	return true
}

// compute runs the uncached pipeline: fetch, filter, score, order, paginate.
func (s *Service) compute(ctx context.Context, q *query.Query) (result.Page, error) {
	shops, err := s.catalog.FetchCandidates(ctx, q.Category())
	if err != nil {
		return result.Page{}, err
	}

	now := time.Now()
	scored := make([]result.Scored, 0, len(shops))
	for _, sh := range shops {
		if !matchesFilters(&sh, q, now) {
			continue
		}
		dist, in := geoMatch(&sh, q)
		if !in {
			continue
		}
		sc := s.engine.Score(sh, q, dist, now)
		// Free text narrows the candidate set: a shop matching no text
		// tier is not a result, however good its other components.
		if q.HasText() && sc.Breakdown.Text == 0 {
			continue
		}
		scored = append(scored, sc)
	}

	rank.Order(scored, q)
	return result.NewPage(scored, q.Page(), q.PageSize()), nil
}

// record updates popularity counters in the background. Detached from the
// request's cancellation; failures only log.
func (s *Service) record(ctx context.Context, q *query.Query) {
	if s.recorder == nil {
		return
	}
	bg := context.WithoutCancel(ctx)
	go func() {
		rctx, cancel := context.WithTimeout(bg, recordTimeout)
		defer cancel()
		if err := s.recorder.RecordSearch(rctx, q.TextNormalized(), q.Category()); err != nil {
			logger.FromContext(bg).Warn("failed to record search", zap.Error(err))
		}
	}()
}

func (s *Service) incCache(outcome string) {
	if s.cacheTotal != nil {
		s.cacheTotal.WithLabelValues(outcome).Inc()
	}
}

func (s *Service) observeDuration(cls class.Class, start time.Time) {
	if s.duration != nil {
		s.duration.WithLabelValues(string(cls)).Observe(time.Since(start).Seconds())
	}
}
