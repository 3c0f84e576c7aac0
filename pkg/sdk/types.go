package shopdex

import (
	"time"

	"github.com/kailas-cloud/shopdex/internal/domain/search/query"
	"github.com/kailas-cloud/shopdex/internal/domain/search/result"
	"github.com/kailas-cloud/shopdex/internal/repository/popularity"
	"github.com/kailas-cloud/shopdex/internal/usecase/suggest"
)

// Query holds raw search parameters. Optional numeric fields are pointers so
// absence is distinguishable from zero.
type Query struct {
	Text         string
	Category     string
	Latitude     *float64
	Longitude    *float64
	RadiusKm     *float64
	Bounds       *Bounds
	MinPrice     *int
	MaxPrice     *int
	MinRating    *float64
	FeaturedOnly bool
	OpenNow      bool
	SortBy       string
	SortOrder    string
	Page         int
	PageSize     int
}

// Bounds is a rectangular search area.
type Bounds struct {
	MinLat float64
	MinLon float64
	MaxLat float64
	MaxLon float64
}

// Shop is one scored search hit.
type Shop struct {
	ID          string
	Name        string
	Description string
	Category    string
	Rating      float64
	ReviewCount int
	Latitude    float64
	Longitude   float64
	PriceMin    int
	PriceMax    int
	OpenNow     bool
	Score       float64
	DistanceKm  *float64
}

// Metadata describes how the response was produced.
type Metadata struct {
	Query           string
	Classification  string
	ExecutionTimeMs int64
	CacheHit        bool
	CacheBypassed   bool
	CacheTTLSeconds int
}

// SearchResult is one page of ordered hits.
type SearchResult struct {
	Shops       []Shop
	TotalCount  int
	CurrentPage int
	TotalPages  int
	HasMore     bool
	Metadata    Metadata
}

// TermCount is a search term with its recorded frequency.
type TermCount struct {
	Term  string
	Count int64
}

// CategoryCount is a category with its recorded frequency.
type CategoryCount struct {
	Category string
	Count    int64
}

// Popular holds the most searched terms and categories.
type Popular struct {
	Searches    []TermCount
	Trending    []CategoryCount
	LastUpdated time.Time
}

func paramsFromQuery(q Query) query.Params {
	p := query.Params{
		Text:         q.Text,
		Category:     q.Category,
		Latitude:     q.Latitude,
		Longitude:    q.Longitude,
		RadiusKm:     q.RadiusKm,
		MinPrice:     q.MinPrice,
		MaxPrice:     q.MaxPrice,
		MinRating:    q.MinRating,
		FeaturedOnly: q.FeaturedOnly,
		OpenNow:      q.OpenNow,
		SortBy:       q.SortBy,
		SortOrder:    q.SortOrder,
	}
	// Zero means unset on the public surface; the validator applies the
	// defaults and rejects explicit out-of-range values.
	if q.Page != 0 {
		p.Page = &q.Page
	}
	if q.PageSize != 0 {
		p.PageSize = &q.PageSize
	}
	if q.Bounds != nil {
		p.Bounds = &query.BoundsParams{
			MinLat: q.Bounds.MinLat,
			MinLon: q.Bounds.MinLon,
			MaxLat: q.Bounds.MaxLat,
			MaxLon: q.Bounds.MaxLon,
		}
	}
	return p
}

func searchResultFrom(resp result.Response) *SearchResult {
	shops := make([]Shop, len(resp.Page.Results))
	for i, r := range resp.Page.Results {
		shops[i] = Shop{
			ID:          r.Shop.ID,
			Name:        r.Shop.Name,
			Description: r.Shop.Description,
			Category:    string(r.Shop.Category),
			Rating:      r.Shop.Rating,
			ReviewCount: r.Shop.ReviewCount,
			Latitude:    r.Shop.Latitude,
			Longitude:   r.Shop.Longitude,
			PriceMin:    r.Shop.PriceMin,
			PriceMax:    r.Shop.PriceMax,
			OpenNow:     r.Shop.OpenNow,
			Score:       r.Score,
			DistanceKm:  r.DistanceKm,
		}
	}
	return &SearchResult{
		Shops:       shops,
		TotalCount:  resp.Page.TotalCount,
		CurrentPage: resp.Page.CurrentPage,
		TotalPages:  resp.Page.TotalPages,
		HasMore:     resp.Page.HasMore,
		Metadata: Metadata{
			Query:           resp.Metadata.Query,
			Classification:  resp.Metadata.Classification,
			ExecutionTimeMs: resp.Metadata.ExecutionTimeMs,
			CacheHit:        resp.Metadata.Cache.Hit,
			CacheBypassed:   resp.Metadata.Cache.Bypassed,
			CacheTTLSeconds: resp.Metadata.Cache.TTLSeconds,
		},
	}
}

func popularFrom(p suggest.PopularTerms) *Popular {
	return &Popular{
		Searches:    termCountsFrom(p.Searches),
		Trending:    categoryCountsFrom(p.Trending),
		LastUpdated: p.LastUpdated,
	}
}

func termCountsFrom(in []popularity.TermCount) []TermCount {
	out := make([]TermCount, len(in))
	for i, t := range in {
		out[i] = TermCount{Term: t.Term, Count: t.Count}
	}
	return out
}

func categoryCountsFrom(in []popularity.CategoryCount) []CategoryCount {
	out := make([]CategoryCount, len(in))
	for i, c := range in {
		out[i] = CategoryCount{Category: string(c.Category), Count: c.Count}
	}
	return out
}
