// Package shop defines the read-only shop projection used by search.
// Shops are owned and mutated by the catalog service; this subsystem only
// consumes snapshots.
package shop

import (
	"time"

	"github.com/kailas-cloud/shopdex/internal/domain"
)

// Shop is a denormalized snapshot of a business record.
type Shop struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Description   string            `json:"description,omitempty"`
	Category      domain.Category   `json:"category"`
	SubCategories []domain.Category `json:"subCategories,omitempty"`
	Latitude      float64           `json:"latitude"`
	Longitude     float64           `json:"longitude"`
	Rating        float64           `json:"rating"`
	ReviewCount   int               `json:"reviewCount"`
	FeaturedUntil time.Time         `json:"featuredUntil,omitempty"`
	Tier          int               `json:"tier"`
	PriceMin      int               `json:"priceMin"`
	PriceMax      int               `json:"priceMax"`
	OpenNow       bool              `json:"openNow"`
	CreatedAt     time.Time         `json:"createdAt"`
}

// IsFeatured reports whether the shop's featured window covers the given time.
func (s *Shop) IsFeatured(now time.Time) bool {
	return !s.FeaturedUntil.IsZero() && s.FeaturedUntil.After(now)
}

// InCategory reports whether the shop's main or any sub-category matches c.
func (s *Shop) InCategory(c domain.Category) bool {
	if s.Category == c {
		return true
	}
	for _, sub := range s.SubCategories {
		if sub == c {
			return true
		}
	}
	return false
}
