package rank

// Weights holds every tunable scoring constant. Threaded explicitly through
// the engine so multiple profiles can coexist and be tested independently.
type Weights struct {
	// Text match tiers, highest to lowest.
	TextExact     float64
	TextPrefix    float64
	TextContains  float64
	TextSecondary float64

	// DistanceMax is the component value at zero distance. The component
	// decays as a bounded inverse of distance and is zero at or beyond
	// DistanceCutoffKm.
	DistanceMax      float64
	DistanceCutoffKm float64

	// QualityScale multiplies the damped rating (0-5), bounding the
	// quality component at 5*QualityScale.
	QualityScale float64
	// PriorRating and PriorWeight parameterize the Bayesian-average damping
	// that discounts low-review-count ratings.
	PriorRating float64
	PriorWeight float64

	// FeaturedBonus applies while featured_until is in the future.
	FeaturedBonus float64
	// TierBonus applies per partnership tier level.
	TierBonus float64
	// CategoryBonus applies when the shop matches the requested category.
	CategoryBonus float64
}

// DefaultWeights returns the standard scoring profile.
func DefaultWeights() Weights {
	return Weights{
		TextExact:     15,
		TextPrefix:    10,
		TextContains:  7,
		TextSecondary: 3,

		DistanceMax:      10,
		DistanceCutoffKm: 20,

		QualityScale: 2,
		PriorRating:  3.5,
		PriorWeight:  10,

		FeaturedBonus: 5,
		TierBonus:     1.5,
		CategoryBonus: 6,
	}
}
