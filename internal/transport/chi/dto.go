package chi

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/kailas-cloud/shopdex/internal/domain"
	"github.com/kailas-cloud/shopdex/internal/domain/search/query"
	"github.com/kailas-cloud/shopdex/internal/domain/search/result"
	"github.com/kailas-cloud/shopdex/internal/usecase/suggest"
)

// Non-validation error codes surfaced by the HTTP layer.
const (
	codeBadRequest         = "BAD_REQUEST"
	codeUnauthorized       = "UNAUTHORIZED"
	codeCatalogUnavailable = "CATALOG_UNAVAILABLE"
	codeInternalError      = "INTERNAL_ERROR"
)

// errorResponse is the error payload for every non-2xx response.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// searchResponse flattens one result page for API clients.
type searchResponse struct {
	Shops          []result.Scored `json:"shops"`
	TotalCount     int             `json:"totalCount"`
	HasMore        bool            `json:"hasMore"`
	CurrentPage    int             `json:"currentPage"`
	TotalPages     int             `json:"totalPages"`
	PageSize       int             `json:"pageSize"`
	SearchMetadata result.Metadata `json:"searchMetadata"`
}

func searchResponseFrom(resp result.Response) searchResponse {
	return searchResponse{
		Shops:          resp.Page.Results,
		TotalCount:     resp.Page.TotalCount,
		HasMore:        resp.Page.HasMore,
		CurrentPage:    resp.Page.CurrentPage,
		TotalPages:     resp.Page.TotalPages,
		PageSize:       resp.Page.PageSize,
		SearchMetadata: resp.Metadata,
	}
}

type suggestResponse struct {
	Query       string   `json:"query"`
	Suggestions []string `json:"suggestions"`
	Count       int      `json:"count"`
}

type trendingCategory struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

type popularResponse struct {
	PopularSearches    []string           `json:"popularSearches"`
	TrendingCategories []trendingCategory `json:"trendingCategories"`
	LastUpdated        string             `json:"lastUpdated"`
}

func popularResponseFrom(p suggest.PopularTerms) popularResponse {
	searches := make([]string, len(p.Searches))
	for i, t := range p.Searches {
		searches[i] = t.Term
	}
	trending := make([]trendingCategory, len(p.Trending))
	for i, c := range p.Trending {
		trending[i] = trendingCategory{Category: string(c.Category), Count: c.Count}
	}
	return popularResponse{
		PopularSearches:    searches,
		TrendingCategories: trending,
		LastUpdated:        p.LastUpdated.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// paramsFromRequest parses URL query values into raw search parameters.
// Malformed numerics map to the same stable codes the validator uses so
// clients see one taxonomy regardless of where parsing failed.
func paramsFromRequest(r *http.Request) (query.Params, error) {
	v := r.URL.Query()

	p := query.Params{
		Text:      v.Get("q"),
		Category:  v.Get("category"),
		SortBy:    v.Get("sortBy"),
		SortOrder: v.Get("sortOrder"),
	}

	var err error
	if p.Latitude, err = floatParam(v, "latitude", domain.CodeInvalidCoordinates); err != nil {
		return query.Params{}, err
	}
	if p.Longitude, err = floatParam(v, "longitude", domain.CodeInvalidCoordinates); err != nil {
		return query.Params{}, err
	}
	if p.RadiusKm, err = floatParam(v, "radius", domain.CodeInvalidRadius); err != nil {
		return query.Params{}, err
	}
	if p.Bounds, err = boundsParams(v); err != nil {
		return query.Params{}, err
	}
	if p.MinPrice, err = intParam(v, "minPrice", domain.CodeInvalidPriceRange); err != nil {
		return query.Params{}, err
	}
	if p.MaxPrice, err = intParam(v, "maxPrice", domain.CodeInvalidPriceRange); err != nil {
		return query.Params{}, err
	}
	if p.MinRating, err = floatParam(v, "minRating", domain.CodeInvalidRating); err != nil {
		return query.Params{}, err
	}
	if p.FeaturedOnly, err = boolParam(v, "featuredOnly"); err != nil {
		return query.Params{}, err
	}
	if p.OpenNow, err = boolParam(v, "openNow"); err != nil {
		return query.Params{}, err
	}

	if p.Page, err = intParam(v, "page", domain.CodeInvalidPage); err != nil {
		return query.Params{}, err
	}
	if p.PageSize, err = intParam(v, "pageSize", domain.CodeInvalidPage); err != nil {
		return query.Params{}, err
	}

	return p, nil
}

// boundsParams assembles the bounding box from its four corner params.
// Any one corner present requires all four.
func boundsParams(v url.Values) (*query.BoundsParams, error) {
	names := [4]string{"minLat", "minLon", "maxLat", "maxLon"}
	var vals [4]*float64
	present := 0
	for i, name := range names {
		f, err := floatParam(v, name, domain.CodeInvalidBoundingBox)
		if err != nil {
			return nil, err
		}
		if f != nil {
			present++
		}
		vals[i] = f
	}
	if present == 0 {
		return nil, nil
	}
	if present < len(names) {
		return nil, domain.NewValidation(domain.CodeInvalidBoundingBox, "bounds",
			"bounding box requires minLat, minLon, maxLat and maxLon")
	}
	return &query.BoundsParams{
		MinLat: *vals[0], MinLon: *vals[1], MaxLat: *vals[2], MaxLon: *vals[3],
	}, nil
}

func floatParam(v url.Values, name, code string) (*float64, error) {
	raw := v.Get(name)
	if raw == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, domain.NewValidation(code, name, "must be a number, got "+strconv.Quote(raw))
	}
	return &f, nil
}

func intParam(v url.Values, name, code string) (*int, error) {
	raw := v.Get(name)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, domain.NewValidation(code, name, "must be an integer, got "+strconv.Quote(raw))
	}
	return &n, nil
}

func boolParam(v url.Values, name string) (bool, error) {
	raw := v.Get(name)
	if raw == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, domain.NewValidation(codeBadRequest, name,
			"must be a boolean, got "+strconv.Quote(raw))
	}
	return b, nil
}
