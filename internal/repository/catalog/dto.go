package catalog

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kailas-cloud/shopdex/internal/domain"
	"github.com/kailas-cloud/shopdex/internal/domain/shop"
)

// shopDocument mirrors the catalog service's shop collection schema.
type shopDocument struct {
	ID            primitive.ObjectID `bson:"_id"`
	ShopID        string             `bson:"shopId,omitempty"`
	Name          string             `bson:"name"`
	Description   string             `bson:"description,omitempty"`
	MainCategory  string             `bson:"mainCategory"`
	SubCategories []string           `bson:"subCategories,omitempty"`
	Latitude      float64            `bson:"latitude"`
	Longitude     float64            `bson:"longitude"`
	Rating        float64            `bson:"rating"`
	ReviewCount   int                `bson:"reviewCount"`
	FeaturedUntil *time.Time         `bson:"featuredUntil,omitempty"`
	Tier          int                `bson:"tier"`
	PriceMin      int                `bson:"priceMin"`
	PriceMax      int                `bson:"priceMax"`
	OpenNow       bool               `bson:"openNow"`
	CreatedAt     *time.Time         `bson:"createdAt,omitempty"`
}

func mapShopDocument(doc shopDocument) shop.Shop {
	id := doc.ShopID
	if id == "" {
		id = doc.ID.Hex()
	}

	subs := make([]domain.Category, 0, len(doc.SubCategories))
	for _, s := range doc.SubCategories {
		c := domain.Category(s)
		if c.IsValid() {
			subs = append(subs, c)
		}
	}
	if len(subs) == 0 {
		subs = nil
	}

	featuredUntil := time.Time{}
	if doc.FeaturedUntil != nil {
		featuredUntil = *doc.FeaturedUntil
	}
	createdAt := time.Time{}
	if doc.CreatedAt != nil {
		createdAt = *doc.CreatedAt
	}

	return shop.Shop{
		ID:            id,
		Name:          doc.Name,
		Description:   doc.Description,
		Category:      domain.Category(doc.MainCategory),
		SubCategories: subs,
		Latitude:      doc.Latitude,
		Longitude:     doc.Longitude,
		Rating:        doc.Rating,
		ReviewCount:   doc.ReviewCount,
		FeaturedUntil: featuredUntil,
		Tier:          doc.Tier,
		PriceMin:      doc.PriceMin,
		PriceMax:      doc.PriceMax,
		OpenNow:       doc.OpenNow,
		CreatedAt:     createdAt,
	}
}
