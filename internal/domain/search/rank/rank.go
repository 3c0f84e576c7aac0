// Package rank scores candidate shops and produces a total-ordered result
// list. Scoring is deterministic and side-effect free: the score is a sum of
// independently bounded components, so each can be audited in isolation.
package rank

import (
	"strings"
	"time"

	"github.com/kailas-cloud/shopdex/internal/domain/search/query"
	"github.com/kailas-cloud/shopdex/internal/domain/search/result"
	"github.com/kailas-cloud/shopdex/internal/domain/shop"
)

// Engine scores candidates against a query using a fixed weight profile.
type Engine struct {
	w Weights
}

// New creates a ranking engine with the given weight profile.
func New(w Weights) *Engine {
	return &Engine{w: w}
}

// Score computes the relevance score for one candidate. distKm is the
// annotated distance from the geo anchor, nil when the query has no anchor.
func (e *Engine) Score(sh shop.Shop, q *query.Query, distKm *float64, now time.Time) result.Scored {
	b := result.Breakdown{
		Text:          e.textComponent(&sh, q),
		Distance:      e.distanceComponent(distKm),
		Quality:       e.qualityComponent(&sh),
		Promotion:     e.promotionComponent(&sh, now),
		CategoryMatch: e.categoryComponent(&sh, q),
	}

	return result.Scored{
		Shop:       sh,
		Score:      b.Total(),
		DistanceKm: distKm,
		Breakdown:  b,
	}
}

// textComponent matches the normalized query text against the shop in four
// fixed tiers: exact name, name prefix, name contains, description or
// category label contains. Ties within a tier fall through to the secondary
// sort keys, not to further text analysis.
func (e *Engine) textComponent(sh *shop.Shop, q *query.Query) float64 {
	if !q.HasText() {
		return 0
	}
	text := q.TextNormalized()
	name := strings.ToLower(sh.Name)

	switch {
	case name == text:
		return e.w.TextExact
	case strings.HasPrefix(name, text):
		return e.w.TextPrefix
	case strings.Contains(name, text):
		return e.w.TextContains
	}

	if strings.Contains(strings.ToLower(sh.Description), text) {
		return e.w.TextSecondary
	}
	if strings.Contains(string(sh.Category), text) {
		return e.w.TextSecondary
	}
	for _, sub := range sh.SubCategories {
		if strings.Contains(string(sub), text) {
			return e.w.TextSecondary
		}
	}
	return 0
}

// distanceComponent decays as a bounded inverse of distance so very close
// results cannot dominate disproportionately, and is zero at or beyond the
// cutoff.
func (e *Engine) distanceComponent(distKm *float64) float64 {
	if distKm == nil {
		return 0
	}
	d := *distKm
	if d >= e.w.DistanceCutoffKm {
		return 0
	}
	return e.w.DistanceMax / (1 + d)
}

// qualityComponent scales the review-count-damped rating. The damping is a
// Bayesian average toward a prior, so a perfect rating from a handful of
// reviews scores below a slightly lower rating backed by hundreds.
func (e *Engine) qualityComponent(sh *shop.Shop) float64 {
	n := float64(sh.ReviewCount)
	adjusted := (sh.Rating*n + e.w.PriorRating*e.w.PriorWeight) / (n + e.w.PriorWeight)
	return e.w.QualityScale * adjusted
}

func (e *Engine) promotionComponent(sh *shop.Shop, now time.Time) float64 {
	var score float64
	if sh.IsFeatured(now) {
		score += e.w.FeaturedBonus
	}
	if sh.Tier > 0 {
		score += e.w.TierBonus * float64(sh.Tier)
	}
	return score
}

func (e *Engine) categoryComponent(sh *shop.Shop, q *query.Query) float64 {
	if q.Category() == nil {
		return 0
	}
	if sh.InCategory(*q.Category()) {
		return e.w.CategoryBonus
	}
	return 0
}
