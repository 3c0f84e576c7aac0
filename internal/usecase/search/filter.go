package search

import (
	"time"

	"github.com/kailas-cloud/shopdex/internal/domain/geo"
	"github.com/kailas-cloud/shopdex/internal/domain/search/query"
	"github.com/kailas-cloud/shopdex/internal/domain/shop"
)

// matchesFilters applies the attribute filters: category, price overlap,
// rating floor, featured window, and open-now when explicitly requested.
// Open/closed state is otherwise a ranking input, not an exclusion.
func matchesFilters(sh *shop.Shop, q *query.Query, now time.Time) bool {
	if q.Category() != nil && !sh.InCategory(*q.Category()) {
		return false
	}
	if q.MinPrice() != nil && sh.PriceMax < *q.MinPrice() {
		return false
	}
	if q.MaxPrice() != nil && sh.PriceMin > *q.MaxPrice() {
		return false
	}
	if sh.Rating < q.MinRating() {
		return false
	}
	if q.FeaturedOnly() && !sh.IsFeatured(now) {
		return false
	}
	if q.OpenNow() && !sh.OpenNow {
		return false
	}
	return true
}

// geoMatch applies the geospatial narrowing. In radius mode the shop is
// annotated with its distance; the radius boundary is inclusive. In bounds
// mode containment is a plain rectangle test with no distance annotation.
func geoMatch(sh *shop.Shop, q *query.Query) (*float64, bool) {
	if anchor := q.Anchor(); anchor != nil {
		d := geo.Distance(*anchor, geo.Point{Lat: sh.Latitude, Lon: sh.Longitude})
		if d > q.RadiusKm() {
			return nil, false
		}
		return &d, true
	}
	if bounds := q.Bounds(); bounds != nil {
		return nil, bounds.Contains(geo.Point{Lat: sh.Latitude, Lon: sh.Longitude})
	}
	return nil, true
}
