package domain

// Category is a service category from the platform's fixed taxonomy.
type Category string

// Service category constants.
const (
	CategoryNail          Category = "nail"
	CategoryEyelash       Category = "eyelash"
	CategoryWaxing        Category = "waxing"
	CategoryEyebrowTattoo Category = "eyebrow_tattoo"
	CategoryHair          Category = "hair"
)

// Categories returns all valid categories in declaration order.
func Categories() []Category {
	return []Category{
		CategoryNail, CategoryEyelash, CategoryWaxing, CategoryEyebrowTattoo, CategoryHair,
	}
}

// IsValid checks if the category is a member of the fixed taxonomy.
func (c Category) IsValid() bool {
	switch c {
	case CategoryNail, CategoryEyelash, CategoryWaxing, CategoryEyebrowTattoo, CategoryHair:
		return true
	}
	return false
}
