package result

import (
	"strconv"
	"testing"

	"github.com/kailas-cloud/shopdex/internal/domain/shop"
)

func makeScored(n int) []Scored {
	out := make([]Scored, n)
	for i := range out {
		out[i] = Scored{Shop: shop.Shop{ID: "shop-" + strconv.Itoa(i)}}
	}
	return out
}

func TestNewPage_RoundTrip(t *testing.T) {
	ordered := makeScored(12)

	tests := []struct {
		page        int
		wantLen     int
		wantHasMore bool
	}{
		{1, 5, true},
		{2, 5, true},
		{3, 2, false},
		{4, 0, false},
	}
	for _, tt := range tests {
		t.Run("page "+strconv.Itoa(tt.page), func(t *testing.T) {
			p := NewPage(ordered, tt.page, 5)
			if len(p.Results) != tt.wantLen {
				t.Errorf("len = %d, want %d", len(p.Results), tt.wantLen)
			}
			if p.HasMore != tt.wantHasMore {
				t.Errorf("hasMore = %v, want %v", p.HasMore, tt.wantHasMore)
			}
			if p.TotalCount != 12 {
				t.Errorf("totalCount = %d, want 12", p.TotalCount)
			}
			if p.TotalPages != 3 {
				t.Errorf("totalPages = %d, want 3", p.TotalPages)
			}
			if p.CurrentPage != tt.page {
				t.Errorf("currentPage = %d, want %d", p.CurrentPage, tt.page)
			}
		})
	}
}

func TestNewPage_Empty(t *testing.T) {
	p := NewPage(nil, 1, 20)
	if len(p.Results) != 0 || p.HasMore || p.TotalCount != 0 || p.TotalPages != 0 {
		t.Errorf("unexpected page for empty input: %+v", p)
	}
}

func TestNewPage_SliceContents(t *testing.T) {
	ordered := makeScored(12)
	p := NewPage(ordered, 2, 5)
	if p.Results[0].Shop.ID != "shop-5" {
		t.Errorf("page 2 should start at shop-5, got %s", p.Results[0].Shop.ID)
	}
	if p.Results[4].Shop.ID != "shop-9" {
		t.Errorf("page 2 should end at shop-9, got %s", p.Results[4].Shop.ID)
	}
}
