package sale

import (
	"time"

	"go-marketing/pkg/filter"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Sale is one invoice imported from the ERP backend, tagged with the
// customer it belongs to.
type Sale struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Code       string             `json:"code" bson:"code"`
	CustomerID string             `json:"customer_id" bson:"customer_id"`
	ProductIDs []string           `json:"product_ids" bson:"product_ids"`
	Amount     float64            `json:"amount" bson:"amount"`
	Date       time.Time          `json:"date" bson:"date"`
	Status     string             `json:"status" bson:"status"`
	Channel    string             `json:"channel" bson:"channel"`
	Branch     string             `json:"branch" bson:"branch"`
	CreatedAt  time.Time          `json:"created_at" bson:"created_at"`
}

func (s Sale) ToRecord() filter.SaleRecord {
	return filter.SaleRecord{
		ID:         s.ID.Hex(),
		CustomerID: s.CustomerID,
		ProductIDs: s.ProductIDs,
		Amount:     s.Amount,
		Date:       s.Date,
		Status:     s.Status,
		Channel:    s.Channel,
		Branch:     s.Branch,
	}
}
