package product

import (
	"time"

	"go-marketing/pkg/filter"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is one catalog entry; the evaluator resolves purchased product
// ids through it to categories and brands.
type Product struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	SKU       string             `json:"sku" bson:"sku"`
	Name      string             `json:"name" bson:"name"`
	Category  string             `json:"category" bson:"category"`
	Brand     string             `json:"brand" bson:"brand"`
	Price     float64            `json:"price" bson:"price"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

func (p Product) ToRecord() filter.ProductRecord {
	return filter.ProductRecord{
		ID:       p.SKU,
		Name:     p.Name,
		Category: p.Category,
		Brand:    p.Brand,
	}
}
