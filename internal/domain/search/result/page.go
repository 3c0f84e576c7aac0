package result

// Page is one slice of the fully ordered result list.
type Page struct {
	Results     []Scored `json:"results"`
	TotalCount  int      `json:"totalCount"`
	CurrentPage int      `json:"currentPage"`
	PageSize    int      `json:"pageSize"`
	TotalPages  int      `json:"totalPages"`
	HasMore     bool     `json:"hasMore"`
}

// NewPage slices the ordered list into the requested page. A page beyond the
// available range yields an empty slice with HasMore=false, not an error.
func NewPage(ordered []Scored, page, size int) Page {
	total := len(ordered)
	totalPages := (total + size - 1) / size

	start := (page - 1) * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}

	return Page{
		Results:     ordered[start:end],
		TotalCount:  total,
		CurrentPage: page,
		PageSize:    size,
		TotalPages:  totalPages,
		HasMore:     end < total,
	}
}
