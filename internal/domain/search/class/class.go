// Package class labels validated queries by which parameter groups are present.
// The label feeds the ranking weight profile and the cache TTL policy; it never
// affects result correctness.
package class

import "github.com/kailas-cloud/shopdex/internal/domain/search/query"

// Class is the query classification.
type Class string

// Classification constants.
const (
	// Text carries free text and no geo fields.
	Text Class = "text"
	// Location carries a geo anchor or bounding box and no free text beside an anchor.
	Location Class = "location"
	// Filter carries neither free text nor geo fields.
	Filter Class = "filter"
	// Hybrid carries free text together with a geo anchor.
	Hybrid Class = "hybrid"
)

// Of derives the classification from field presence alone, in priority order:
// hybrid, location, text, filter. Pure function of the validated query.
func Of(q *query.Query) Class {
	switch {
	case q.HasText() && q.Anchor() != nil:
		return Hybrid
	case q.HasGeo():
		return Location
	case q.HasText():
		return Text
	default:
		return Filter
	}
}
