// Package query defines the validated search query value object.
package query

import (
	"strings"

	"github.com/kailas-cloud/shopdex/internal/domain"
	"github.com/kailas-cloud/shopdex/internal/domain/geo"
)

// Pagination limits.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// BoundsParams holds raw bounding-box corners.
type BoundsParams struct {
	MinLat float64
	MinLon float64
	MaxLat float64
	MaxLon float64
}

// Params holds raw, unvalidated search parameters as parsed from the caller.
// Optional numeric fields are pointers so absence is distinguishable from zero.
type Params struct {
	Text         string
	Category     string
	Latitude     *float64
	Longitude    *float64
	RadiusKm     *float64
	Bounds       *BoundsParams
	MinPrice     *int
	MaxPrice     *int
	MinRating    *float64
	FeaturedOnly bool
	OpenNow      bool
	SortBy       string
	SortOrder    string
	Page         *int
	PageSize     *int
}

// Query is a validated, immutable search query.
type Query struct {
	text         string
	normText     string
	category     *domain.Category
	anchor       *geo.Point
	radiusKm     float64
	bounds       *geo.BoundingBox
	minPrice     *int
	maxPrice     *int
	minRating    float64
	featuredOnly bool
	openNow      bool
	sortBy       SortBy
	sortOrder    SortOrder
	page         int
	pageSize     int
}

// defaultRadiusKm applies when a geo anchor is given without an explicit radius.
const defaultRadiusKm = 5.0

// New validates and normalizes raw parameters into a Query.
// Page size above MaxPageSize is clamped silently; every other bound
// violation is rejected with a typed validation error carrying a stable code.
func New(p Params) (Query, error) {
	q := Query{
		text:         strings.TrimSpace(p.Text),
		featuredOnly: p.FeaturedOnly,
		openNow:      p.OpenNow,
	}
	q.normText = normalize(q.text)

	if p.Category != "" {
		c := domain.Category(strings.ToLower(strings.TrimSpace(p.Category)))
		if !c.IsValid() {
			return Query{}, domain.NewValidation(domain.CodeInvalidCategory, "category",
				"unknown category "+p.Category)
		}
		q.category = &c
	}

	if err := q.applyGeo(p); err != nil {
		return Query{}, err
	}

	if p.MinRating != nil {
		if *p.MinRating < 0 || *p.MinRating > 5 {
			return Query{}, domain.NewValidation(domain.CodeInvalidRating, "minRating",
				"minimum rating must be between 0 and 5")
		}
		q.minRating = *p.MinRating
	}

	if p.MinPrice != nil && *p.MinPrice < 0 {
		return Query{}, domain.NewValidation(domain.CodeInvalidPriceRange, "minPrice",
			"price bounds must be non-negative")
	}
	if p.MaxPrice != nil && *p.MaxPrice < 0 {
		return Query{}, domain.NewValidation(domain.CodeInvalidPriceRange, "maxPrice",
			"price bounds must be non-negative")
	}
	if p.MinPrice != nil && p.MaxPrice != nil && *p.MinPrice > *p.MaxPrice {
		return Query{}, domain.NewValidation(domain.CodeInvalidPriceRange, "minPrice",
			"minimum price exceeds maximum price")
	}
	q.minPrice = p.MinPrice
	q.maxPrice = p.MaxPrice

	q.sortBy = SortByRelevance
	if p.SortBy != "" {
		s := SortBy(strings.ToLower(p.SortBy))
		if !s.IsValid() {
			return Query{}, domain.NewValidation(domain.CodeInvalidSortBy, "sortBy",
				"unknown sort directive "+p.SortBy)
		}
		q.sortBy = s
	}
	if q.sortBy == SortByDistance && q.anchor == nil {
		return Query{}, domain.NewValidation(domain.CodeDistanceSortRequiresLocation, "sortBy",
			"distance sort requires latitude and longitude")
	}

	q.sortOrder = defaultOrder(q.sortBy)
	if p.SortOrder != "" {
		o := SortOrder(strings.ToLower(p.SortOrder))
		if !o.IsValid() {
			return Query{}, domain.NewValidation(domain.CodeInvalidSortOrder, "sortOrder",
				"sort order must be asc or desc")
		}
		q.sortOrder = o
	}

	q.page = 1
	if p.Page != nil {
		if *p.Page < 1 {
			return Query{}, domain.NewValidation(domain.CodeInvalidPage, "page",
				"page must be at least 1")
		}
		q.page = *p.Page
	}

	q.pageSize = DefaultPageSize
	if p.PageSize != nil {
		if *p.PageSize < 1 {
			return Query{}, domain.NewValidation(domain.CodeInvalidPage, "pageSize",
				"page size must be at least 1")
		}
		q.pageSize = *p.PageSize
	}
	if q.pageSize > MaxPageSize {
		// Documented exception: oversized pages clamp instead of rejecting.
		q.pageSize = MaxPageSize
	}

	return q, nil
}

func (q *Query) applyGeo(p Params) error {
	hasAnchor := p.Latitude != nil || p.Longitude != nil

	if hasAnchor {
		if p.Latitude == nil || p.Longitude == nil {
			return domain.NewValidation(domain.CodeInvalidCoordinates, "latitude",
				"latitude and longitude must be provided together")
		}
		if !geo.ValidateCoordinates(*p.Latitude, *p.Longitude) {
			return domain.NewValidation(domain.CodeInvalidCoordinates, "latitude",
				"latitude must be in [-90,90] and longitude in [-180,180]")
		}
		q.anchor = &geo.Point{Lat: *p.Latitude, Lon: *p.Longitude}

		q.radiusKm = defaultRadiusKm
		if p.RadiusKm != nil {
			if *p.RadiusKm <= 0 {
				return domain.NewValidation(domain.CodeInvalidRadius, "radius",
					"radius must be positive")
			}
			q.radiusKm = *p.RadiusKm
		}
	} else if p.RadiusKm != nil {
		return domain.NewValidation(domain.CodeInvalidRadius, "radius",
			"radius requires latitude and longitude")
	}

	if p.Bounds != nil {
		if hasAnchor {
			return domain.NewValidation(domain.CodeInvalidBoundingBox, "bounds",
				"bounding box cannot be combined with a point anchor")
		}
		box, err := geo.NewBoundingBox(p.Bounds.MinLat, p.Bounds.MinLon, p.Bounds.MaxLat, p.Bounds.MaxLon)
		if err != nil {
			return domain.NewValidation(domain.CodeInvalidBoundingBox, "bounds", err.Error())
		}
		q.bounds = &box
	}

	return nil
}

// normalize lowercases and collapses inner whitespace for matching and key generation.
func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// Text returns the free-text terms as given by the caller, trimmed.
func (q *Query) Text() string { return q.text }

// TextNormalized returns the lowercased, whitespace-collapsed text.
func (q *Query) TextNormalized() string { return q.normText }

// HasText reports whether the query carries free text.
func (q *Query) HasText() bool { return q.normText != "" }

// Category returns the requested category filter (nil when absent).
func (q *Query) Category() *domain.Category { return q.category }

// Anchor returns the geo anchor (nil when absent).
func (q *Query) Anchor() *geo.Point { return q.anchor }

// RadiusKm returns the search radius. Meaningful only when an anchor exists.
func (q *Query) RadiusKm() float64 { return q.radiusKm }

// Bounds returns the bounding box (nil when absent).
func (q *Query) Bounds() *geo.BoundingBox { return q.bounds }

// HasGeo reports whether an anchor or bounding box is present.
func (q *Query) HasGeo() bool { return q.anchor != nil || q.bounds != nil }

// MinPrice returns the lower price bound (nil when absent).
func (q *Query) MinPrice() *int { return q.minPrice }

// MaxPrice returns the upper price bound (nil when absent).
func (q *Query) MaxPrice() *int { return q.maxPrice }

// MinRating returns the rating floor (zero when absent).
func (q *Query) MinRating() float64 { return q.minRating }

// FeaturedOnly reports whether only currently-featured shops are wanted.
func (q *Query) FeaturedOnly() bool { return q.featuredOnly }

// OpenNow reports whether closed shops should be excluded.
func (q *Query) OpenNow() bool { return q.openNow }

// Sort returns the sort directive.
func (q *Query) Sort() SortBy { return q.sortBy }

// Order returns the sort direction.
func (q *Query) Order() SortOrder { return q.sortOrder }

// Page returns the 1-based page number.
func (q *Query) Page() int { return q.page }

// PageSize returns the page size after defaulting and clamping.
func (q *Query) PageSize() int { return q.pageSize }
