package suggest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/kailas-cloud/shopdex/internal/domain"
	"github.com/kailas-cloud/shopdex/internal/domain/shop"
	"github.com/kailas-cloud/shopdex/internal/repository/popularity"
)

type mockCatalog struct {
	shops  []shop.Shop
	err    error
	called int
}

func (m *mockCatalog) FetchCandidates(_ context.Context, _ *domain.Category) ([]shop.Shop, error) {
	m.called++
	return m.shops, m.err
}

type mockPopularity struct {
	counts    map[string]int64
	countsErr error
	top       []popularity.TermCount
	trending  []popularity.CategoryCount
}

func (m *mockPopularity) TermCounts(_ context.Context) (map[string]int64, error) {
	if m.countsErr != nil {
		return nil, m.countsErr
	}
	return m.counts, nil
}

func (m *mockPopularity) TopSearches(_ context.Context, n int) ([]popularity.TermCount, error) {
	if len(m.top) > n {
		return m.top[:n], nil
	}
	return m.top, nil
}

func (m *mockPopularity) TrendingCategories(_ context.Context, n int) ([]popularity.CategoryCount, error) {
	if len(m.trending) > n {
		return m.trending[:n], nil
	}
	return m.trending, nil
}

func namedShops(names ...string) []shop.Shop {
	shops := make([]shop.Shop, len(names))
	for i, n := range names {
		shops[i] = shop.Shop{ID: n, Name: n, Category: domain.CategoryNail}
	}
	return shops
}

func TestSuggest_EmptyPrefixRejected(t *testing.T) {
	svc := New(&mockCatalog{}, &mockPopularity{})

	for _, prefix := range []string{"", "   "} {
		_, err := svc.Suggest(context.Background(), prefix, 10)
		if !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("prefix %q: expected validation error, got %v", prefix, err)
		}
		var verr *domain.ValidationError
		if !errors.As(err, &verr) || verr.Code != domain.CodeMissingQuery {
			t.Errorf("prefix %q: expected code %s, got %v", prefix, domain.CodeMissingQuery, err)
		}
	}
}

func TestSuggest_PrefixBeforeContains(t *testing.T) {
	catalog := &mockCatalog{shops: namedShops("Nail Art Studio", "Premium Nail Art", "Nailed It")}
	svc := New(catalog, &mockPopularity{})

	got, err := svc.Suggest(context.Background(), "nail", 10)
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}

	// Prefix matches (including the category label) come before
	// contains matches, each block ordered lexicographically.
	want := []string{"nail", "Nail Art Studio", "Nailed It", "Premium Nail Art"}
	assertTerms(t, got, want)
}

func TestSuggest_PopularityOrdersWithinBlock(t *testing.T) {
	catalog := &mockCatalog{shops: namedShops("Nail Art Studio", "Nailed It")}
	pop := &mockPopularity{counts: map[string]int64{"nailed it": 50, "nail art studio": 3}}
	svc := New(catalog, pop)

	got, err := svc.Suggest(context.Background(), "nail", 10)
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	assertTerms(t, got, []string{"Nailed It", "Nail Art Studio", "nail"})
}

func TestSuggest_LimitAndClamp(t *testing.T) {
	catalog := &mockCatalog{shops: namedShops(
		"Nail One", "Nail Two", "Nail Three", "Nail Four", "Nail Five")}
	svc := New(catalog, &mockPopularity{})

	got, err := svc.Suggest(context.Background(), "nail", 2)
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("len = %d, want 2", len(got))
	}

	got, err = svc.Suggest(context.Background(), "nail", 500)
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if len(got) > MaxLimit {
		t.Errorf("len = %d, want at most %d", len(got), MaxLimit)
	}
}

func TestSuggest_IndexReusedUntilStale(t *testing.T) {
	catalog := &mockCatalog{shops: namedShops("Nail Art Studio")}
	svc := New(catalog, &mockPopularity{}).WithRefreshInterval(time.Hour)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := svc.Suggest(ctx, "nail", 10); err != nil {
			t.Fatalf("Suggest %d: %v", i, err)
		}
	}
	if catalog.called != 1 {
		t.Errorf("catalog calls = %d, want 1", catalog.called)
	}
}

func TestSuggest_StaleIndexServedOnRebuildFailure(t *testing.T) {
	catalog := &mockCatalog{shops: namedShops("Nail Art Studio")}
	svc := New(catalog, &mockPopularity{}).WithRefreshInterval(time.Nanosecond)
	ctx := context.Background()

	if _, err := svc.Suggest(ctx, "nail", 10); err != nil {
		t.Fatalf("first Suggest: %v", err)
	}

	catalog.err = domain.ErrCatalogUnavailable
	time.Sleep(time.Millisecond)
	got, err := svc.Suggest(ctx, "nail", 10)
	if err != nil {
		t.Fatalf("stale index must be served on rebuild failure: %v", err)
	}
	if len(got) == 0 {
		t.Error("expected results from the stale index")
	}
}

func TestSuggest_NoIndexPropagatesCatalogError(t *testing.T) {
	catalog := &mockCatalog{err: domain.ErrCatalogUnavailable}
	svc := New(catalog, &mockPopularity{})

	_, err := svc.Suggest(context.Background(), "nail", 10)
	if !errors.Is(err, domain.ErrCatalogUnavailable) {
		t.Fatalf("expected ErrCatalogUnavailable, got %v", err)
	}
}

func TestSuggest_PopularityOutageDegradesToLexicographic(t *testing.T) {
	catalog := &mockCatalog{shops: namedShops("Nail Two", "Nail One")}
	pop := &mockPopularity{countsErr: errors.New("connection refused")}
	svc := New(catalog, pop)

	got, err := svc.Suggest(context.Background(), "nail o", 10)
	if err != nil {
		t.Fatalf("counter outage must not fail suggestions: %v", err)
	}
	assertTerms(t, got, []string{"Nail One"})
}

func TestPopular(t *testing.T) {
	pop := &mockPopularity{
		top: []popularity.TermCount{{Term: "nail art", Count: 42}, {Term: "waxing", Count: 7}},
		trending: []popularity.CategoryCount{
			{Category: domain.CategoryNail, Count: 50},
		},
	}
	svc := New(&mockCatalog{}, pop)

	got, err := svc.Popular(context.Background())
	if err != nil {
		t.Fatalf("Popular: %v", err)
	}
	if len(got.Searches) != 2 || got.Searches[0].Term != "nail art" {
		t.Errorf("unexpected searches: %+v", got.Searches)
	}
	if len(got.Trending) != 1 || got.Trending[0].Category != domain.CategoryNail {
		t.Errorf("unexpected trending: %+v", got.Trending)
	}
	if got.LastUpdated.IsZero() {
		t.Error("lastUpdated must be set")
	}
}

func assertTerms(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("terms = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("terms = %v, want %v", got, want)
		}
	}
}

func TestSuggest_ObservesDuration(t *testing.T) {
	vec := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "suggest_duration_seconds_test"},
		[]string{"status"},
	)
	svc := New(&mockCatalog{shops: namedShops("Nail Art Studio")}, &mockPopularity{}).
		WithMetrics(vec)

	if _, err := svc.Suggest(context.Background(), "nail", 10); err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if got := testutil.CollectAndCount(vec, "suggest_duration_seconds_test"); got != 1 {
		t.Fatalf("observed series = %d, want 1 (ok)", got)
	}

	if _, err := svc.Suggest(context.Background(), "", 10); err == nil {
		t.Fatal("expected validation error")
	}
	if got := testutil.CollectAndCount(vec, "suggest_duration_seconds_test"); got != 2 {
		t.Fatalf("observed series = %d, want 2 (ok + error)", got)
	}
}
