package chi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	chirouter "github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kailas-cloud/shopdex/internal/db"
	"github.com/kailas-cloud/shopdex/internal/domain"
	"github.com/kailas-cloud/shopdex/internal/domain/search/class"
	"github.com/kailas-cloud/shopdex/internal/domain/search/rank"
	"github.com/kailas-cloud/shopdex/internal/domain/shop"
	"github.com/kailas-cloud/shopdex/internal/repository/popularity"
	healthuc "github.com/kailas-cloud/shopdex/internal/usecase/health"
	searchuc "github.com/kailas-cloud/shopdex/internal/usecase/search"
	suggestuc "github.com/kailas-cloud/shopdex/internal/usecase/suggest"
)

// --- Mocks ---

type mockCatalog struct {
	shops []shop.Shop
	err   error
}

func (m *mockCatalog) FetchCandidates(_ context.Context, _ *domain.Category) ([]shop.Shop, error) {
	return m.shops, m.err
}

type fakeCache struct {
	data map[string][]byte
}

func (f *fakeCache) Get(_ context.Context, key string) ([]byte, error) {
	if v, ok := f.data[key]; ok {
		return v, nil
	}
	return nil, db.ErrKeyNotFound
}

func (f *fakeCache) Set(_ context.Context, key string, payload []byte, _ time.Duration) error {
	f.data[key] = payload
	return nil
}

func (f *fakeCache) TTLFor(_ class.Class, _ bool) time.Duration { return 15 * time.Minute }

type mockPopularity struct{}

func (m *mockPopularity) TermCounts(_ context.Context) (map[string]int64, error) {
	return map[string]int64{}, nil
}

func (m *mockPopularity) TopSearches(_ context.Context, _ int) ([]popularity.TermCount, error) {
	return []popularity.TermCount{{Term: "nail art", Count: 42}}, nil
}

func (m *mockPopularity) TrendingCategories(_ context.Context, _ int) ([]popularity.CategoryCount, error) {
	return []popularity.CategoryCount{{Category: domain.CategoryNail, Count: 7}}, nil
}

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

// --- Helpers ---

func testShops() []shop.Shop {
	return []shop.Shop{
		{
			ID: "s1", Name: "Nail Art Studio", Category: domain.CategoryNail,
			Latitude: 37.5665, Longitude: 126.9780,
			Rating: 4.8, ReviewCount: 150,
		},
		{
			ID: "s2", Name: "Lash Lab", Category: domain.CategoryEyelash,
			Latitude: 37.5651, Longitude: 126.9895,
			Rating: 4.5, ReviewCount: 30,
		},
	}
}

func newTestRouter(catalog *mockCatalog, cacheHealth, catalogHealth error) http.Handler {
	searchSvc := searchuc.New(catalog, &fakeCache{data: map[string][]byte{}}, rank.New(rank.DefaultWeights()))
	suggestSvc := suggestuc.New(catalog, &mockPopularity{})
	healthSvc := healthuc.New(&mockPinger{err: cacheHealth}, &mockPinger{err: catalogHealth})

	server := NewServer(searchSvc, suggestSvc, healthSvc, zap.NewNop())
	r := chirouter.NewRouter()
	server.Routes(r)
	return r
}

func doGet(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("GET", target, http.NoBody)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var e errorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &e); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	return e
}

// --- Tests ---

func TestSearchShops_OK(t *testing.T) {
	h := newTestRouter(&mockCatalog{shops: testShops()}, nil, nil)

	rr := doGet(t, h, "/api/v1/shops/search?q=nail+art")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rr.Code, rr.Body.String())
	}

	var resp searchResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.TotalCount != 1 || len(resp.Shops) != 1 {
		t.Fatalf("unexpected page: %+v", resp)
	}
	if resp.Shops[0].Shop.ID != "s1" {
		t.Errorf("top shop = %s, want s1", resp.Shops[0].Shop.ID)
	}
	if resp.SearchMetadata.Classification != "text" {
		t.Errorf("classification = %s, want text", resp.SearchMetadata.Classification)
	}
}

func TestSearchShops_ZeroMatchesIs200(t *testing.T) {
	h := newTestRouter(&mockCatalog{}, nil, nil)

	rr := doGet(t, h, "/api/v1/shops/search?q=nothing")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}

	var resp searchResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.TotalCount != 0 || resp.HasMore {
		t.Errorf("unexpected page: %+v", resp)
	}
}

func TestSearchShops_ValidationErrors(t *testing.T) {
	h := newTestRouter(&mockCatalog{shops: testShops()}, nil, nil)

	tests := []struct {
		name     string
		target   string
		wantCode string
	}{
		{"coordinates out of range", "/api/v1/shops/search?latitude=91&longitude=200", domain.CodeInvalidCoordinates},
		{"non-numeric latitude", "/api/v1/shops/search?latitude=abc&longitude=127", domain.CodeInvalidCoordinates},
		{"distance sort without location", "/api/v1/shops/search?sortBy=distance", domain.CodeDistanceSortRequiresLocation},
		{"unknown category", "/api/v1/shops/search?category=plumbing", domain.CodeInvalidCategory},
		{"partial bounding box", "/api/v1/shops/search?minLat=37.4&minLon=126.8", domain.CodeInvalidBoundingBox},
		{"negative radius", "/api/v1/shops/search?latitude=37.5&longitude=127&radius=-1", domain.CodeInvalidRadius},
		{"bad page", "/api/v1/shops/search?page=x", domain.CodeInvalidPage},
		{"zero page", "/api/v1/shops/search?page=0", domain.CodeInvalidPage},
		{"zero page size", "/api/v1/shops/search?pageSize=0", domain.CodeInvalidPage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := doGet(t, h, tt.target)
			if rr.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400: %s", rr.Code, rr.Body.String())
			}
			if e := decodeError(t, rr); e.Code != tt.wantCode {
				t.Errorf("code = %s, want %s", e.Code, tt.wantCode)
			}
		})
	}
}

func TestSearchShops_CatalogDownIs503(t *testing.T) {
	h := newTestRouter(&mockCatalog{err: domain.ErrCatalogUnavailable}, nil, nil)

	rr := doGet(t, h, "/api/v1/shops/search?q=nail")
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rr.Code)
	}
	if e := decodeError(t, rr); e.Code != codeCatalogUnavailable {
		t.Errorf("code = %s, want %s", e.Code, codeCatalogUnavailable)
	}
}

func TestSuggestShops_OK(t *testing.T) {
	h := newTestRouter(&mockCatalog{shops: testShops()}, nil, nil)

	rr := doGet(t, h, "/api/v1/shops/suggest?q=nail")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rr.Code, rr.Body.String())
	}

	var resp suggestResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Query != "nail" {
		t.Errorf("query = %q, want nail", resp.Query)
	}
	if resp.Count != len(resp.Suggestions) || resp.Count == 0 {
		t.Errorf("unexpected suggestions: %+v", resp)
	}
}

func TestSuggestShops_EmptyPrefixIs400(t *testing.T) {
	h := newTestRouter(&mockCatalog{shops: testShops()}, nil, nil)

	rr := doGet(t, h, "/api/v1/shops/suggest")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
	if e := decodeError(t, rr); e.Code != domain.CodeMissingQuery {
		t.Errorf("code = %s, want %s", e.Code, domain.CodeMissingQuery)
	}
}

func TestPopularShops_OK(t *testing.T) {
	h := newTestRouter(&mockCatalog{}, nil, nil)

	rr := doGet(t, h, "/api/v1/shops/popular")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rr.Code, rr.Body.String())
	}

	var resp popularResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.PopularSearches) != 1 || resp.PopularSearches[0] != "nail art" {
		t.Errorf("unexpected popular searches: %+v", resp.PopularSearches)
	}
	if len(resp.TrendingCategories) != 1 || resp.TrendingCategories[0].Category != "nail" {
		t.Errorf("unexpected trending: %+v", resp.TrendingCategories)
	}
	if resp.LastUpdated == "" {
		t.Error("lastUpdated must be set")
	}
}

func TestHealthCheck(t *testing.T) {
	h := newTestRouter(&mockCatalog{}, nil, nil)
	rr := doGet(t, h, "/health")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}

	h = newTestRouter(&mockCatalog{}, context.DeadlineExceeded, nil)
	rr = doGet(t, h, "/health")
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("degraded status = %d, want 503", rr.Code)
	}
}
