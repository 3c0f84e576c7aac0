package query

// SortBy is the result ordering directive.
type SortBy string

// Sort directive constants.
const (
	// SortByRelevance orders by the summed relevance score.
	SortByRelevance SortBy = "relevance"
	// SortByDistance orders by distance from the geo anchor. Requires an anchor.
	SortByDistance SortBy = "distance"
	SortByRating   SortBy = "rating"
	SortByNewest   SortBy = "newest"
)

// IsValid checks if the directive is one of the supported values.
func (s SortBy) IsValid() bool {
	return s == SortByRelevance || s == SortByDistance || s == SortByRating || s == SortByNewest
}

// SortOrder is the direction applied to the primary sort key.
type SortOrder string

// Sort order constants.
const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// IsValid checks if the order is one of the supported values.
func (o SortOrder) IsValid() bool {
	return o == OrderAsc || o == OrderDesc
}

// defaultOrder returns the natural direction for a sort directive:
// ascending for distance, descending for everything else.
func defaultOrder(s SortBy) SortOrder {
	if s == SortByDistance {
		return OrderAsc
	}
	return OrderDesc
}
