// Package suggest implements autocomplete over known shop names and
// category labels. It keeps a small in-memory term index refreshed from
// the catalog so lookups stay fast enough for interactive typing.
package suggest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/shopdex/internal/domain"
	"github.com/kailas-cloud/shopdex/internal/logger"
	"github.com/kailas-cloud/shopdex/internal/repository/popularity"
)

// Defaults for the index refresh interval and result limits.
const (
	DefaultRefreshInterval = 5 * time.Minute
	DefaultLimit           = 10
	MaxLimit               = 20

	popularTerms       = 10
	trendingCategories = 5
)

// PopularTerms is the popular() response payload.
type PopularTerms struct {
	Searches    []popularity.TermCount     `json:"popularSearches"`
	Trending    []popularity.CategoryCount `json:"trendingCategories"`
	LastUpdated time.Time                  `json:"lastUpdated"`
}

type entry struct {
	display string
	norm    string
}

// Service answers suggestion and popularity queries.
type Service struct {
	catalog    Catalog
	popularity Popularity
	refresh    time.Duration
	duration   *prometheus.HistogramVec

	mu      sync.RWMutex
	index   []entry
	builtAt time.Time
}

// New creates a suggestion service.
func New(catalog Catalog, pop Popularity) *Service {
	return &Service{catalog: catalog, popularity: pop, refresh: DefaultRefreshInterval}
}

// WithRefreshInterval overrides how long an index build stays fresh.
func (s *Service) WithRefreshInterval(d time.Duration) *Service {
	if d > 0 {
		s.refresh = d
	}
	return s
}

// WithMetrics attaches a lookup duration histogram carrying a "status" label
// ("ok"/"error").
func (s *Service) WithMetrics(duration *prometheus.HistogramVec) *Service {
	s.duration = duration
	return s
}

// Suggest returns up to limit known terms whose normalized form starts
// with, or failing that contains, the normalized prefix. Matches are
// ordered by recorded search frequency, then lexicographically. An empty
// prefix is a validation error.
func (s *Service) Suggest(ctx context.Context, prefix string, limit int) ([]string, error) {
	start := time.Now()
	terms, err := s.suggest(ctx, prefix, limit)
	if err != nil {
		s.observe(start, "error")
		return nil, err
	}
	s.observe(start, "ok")
	return terms, nil
}

func (s *Service) suggest(ctx context.Context, prefix string, limit int) ([]string, error) {
	norm := normalize(prefix)
	if norm == "" {
		return nil, domain.NewValidation(domain.CodeMissingQuery, "q",
			"suggestion prefix must not be empty")
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	index, err := s.freshIndex(ctx)
	if err != nil {
		return nil, err
	}

	var prefixed, contained []entry
	for _, e := range index {
		switch {
		case strings.HasPrefix(e.norm, norm):
			prefixed = append(prefixed, e)
		case strings.Contains(e.norm, norm):
			contained = append(contained, e)
		}
	}

	counts := s.termCounts(ctx)
	orderByPopularity(prefixed, counts)
	orderByPopularity(contained, counts)

	out := make([]string, 0, limit)
	for _, e := range append(prefixed, contained...) {
		if len(out) == limit {
			break
		}
		out = append(out, e.display)
	}
	return out, nil
}

func (s *Service) observe(start time.Time, status string) {
	if s.duration != nil {
		s.duration.WithLabelValues(status).Observe(time.Since(start).Seconds())
	}
}

// Popular returns the most searched terms and categories from recorded
// traffic.
func (s *Service) Popular(ctx context.Context) (PopularTerms, error) {
	terms, err := s.popularity.TopSearches(ctx, popularTerms)
	if err != nil {
		return PopularTerms{}, err
	}
	trending, err := s.popularity.TrendingCategories(ctx, trendingCategories)
	if err != nil {
		return PopularTerms{}, err
	}
	return PopularTerms{
		Searches:    terms,
		Trending:    trending,
		LastUpdated: time.Now().UTC(),
	}, nil
}

// freshIndex returns the term index, rebuilding it when stale. A rebuild
// failure falls back to the previous index if one exists.
func (s *Service) freshIndex(ctx context.Context) ([]entry, error) {
	s.mu.RLock()
	index, builtAt := s.index, s.builtAt
	s.mu.RUnlock()
	if index != nil && time.Since(builtAt) < s.refresh {
		return index, nil
	}

	rebuilt, err := s.build(ctx)
	if err != nil {
		if index != nil {
			logger.FromContext(ctx).Warn("serving stale suggestion index", zap.Error(err))
			return index, nil
		}
		return nil, err
	}

	s.mu.Lock()
	s.index = rebuilt
	s.builtAt = time.Now()
	s.mu.Unlock()
	return rebuilt, nil
}

func (s *Service) build(ctx context.Context) ([]entry, error) {
	shops, err := s.catalog.FetchCandidates(ctx, nil)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(shops)+len(domain.Categories()))
	index := make([]entry, 0, len(shops)+len(domain.Categories()))
	add := func(display string) {
		norm := normalize(display)
		if norm == "" {
			return
		}
		if _, ok := seen[norm]; ok {
			return
		}
		seen[norm] = struct{}{}
		index = append(index, entry{display: display, norm: norm})
	}

	for _, sh := range shops {
		add(sh.Name)
	}
	for _, c := range domain.Categories() {
		add(string(c))
	}
	return index, nil
}

// termCounts is best-effort: a counter outage degrades ordering to
// lexicographic, it never fails the suggestion.
func (s *Service) termCounts(ctx context.Context) map[string]int64 {
	counts, err := s.popularity.TermCounts(ctx)
	if err != nil {
		logger.FromContext(ctx).Warn("suggestion popularity unavailable", zap.Error(err))
		return nil
	}
	return counts
}

func orderByPopularity(entries []entry, counts map[string]int64) {
	sort.SliceStable(entries, func(i, j int) bool {
		ci, cj := counts[entries[i].norm], counts[entries[j].norm]
		if ci != cj {
			return ci > cj
		}
		return entries[i].norm < entries[j].norm
	})
}

func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
