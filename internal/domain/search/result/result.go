// Package result defines scored search hits, page assembly, and response metadata.
package result

import (
	"github.com/kailas-cloud/shopdex/internal/domain/shop"
)

// Breakdown itemizes the independent score components for diagnostics.
type Breakdown struct {
	Text          float64 `json:"text"`
	Distance      float64 `json:"distance"`
	Quality       float64 `json:"quality"`
	Promotion     float64 `json:"promotion"`
	CategoryMatch float64 `json:"categoryMatch"`
}

// Total sums the components.
func (b Breakdown) Total() float64 {
	return b.Text + b.Distance + b.Quality + b.Promotion + b.CategoryMatch
}

// Scored is a candidate shop with its relevance score. Produced fresh per
// request and discarded after assembly.
type Scored struct {
	Shop       shop.Shop `json:"shop"`
	Score      float64   `json:"score"`
	DistanceKm *float64  `json:"distanceKm,omitempty"`
	Breakdown  Breakdown `json:"breakdown"`
}
