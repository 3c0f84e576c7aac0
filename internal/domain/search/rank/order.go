package rank

import (
	"sort"

	"github.com/kailas-cloud/shopdex/internal/domain/search/query"
	"github.com/kailas-cloud/shopdex/internal/domain/search/result"
)

// Order sorts scored results in place into a total order. The primary key is
// the sort directive (relevance score by default) in the requested direction;
// the tie-break chain is distance ascending when an anchor exists, then
// rating descending, then shop identifier ascending, so pagination is
// deterministic for any input.
func Order(results []result.Scored, q *query.Query) {
	sort.SliceStable(results, func(i, j int) bool {
		return less(&results[i], &results[j], q)
	})
}

func less(a, b *result.Scored, q *query.Query) bool {
	if c := primaryCompare(a, b, q); c != 0 {
		return c < 0
	}
	return tieBreak(a, b) < 0
}

// primaryCompare returns a negative value when a sorts before b on the
// requested directive and direction.
func primaryCompare(a, b *result.Scored, q *query.Query) int {
	var c int
	switch q.Sort() {
	case query.SortByDistance:
		c = compareFloat(deref(a.DistanceKm), deref(b.DistanceKm))
	case query.SortByRating:
		c = compareFloat(a.Shop.Rating, b.Shop.Rating)
	case query.SortByNewest:
		c = a.Shop.CreatedAt.Compare(b.Shop.CreatedAt)
	default:
		c = compareFloat(a.Score, b.Score)
	}

	// Descending flips the comparison; the natural order of compareFloat
	// is ascending.
	if q.Order() == query.OrderDesc {
		c = -c
	}
	return c
}

// tieBreak compares on the fixed secondary chain, independent of the sort
// directive and direction.
func tieBreak(a, b *result.Scored) int {
	if a.DistanceKm != nil && b.DistanceKm != nil {
		if c := compareFloat(*a.DistanceKm, *b.DistanceKm); c != 0 {
			return c
		}
	}
	if c := compareFloat(b.Shop.Rating, a.Shop.Rating); c != 0 {
		return c
	}
	switch {
	case a.Shop.ID < b.Shop.ID:
		return -1
	case a.Shop.ID > b.Shop.ID:
		return 1
	}
	return 0
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func deref(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}
