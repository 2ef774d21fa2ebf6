package customer

import (
	"time"

	"go-marketing/pkg/filter"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Customer is a customer entity cached from the ERP backend.
type Customer struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Code          string             `json:"code" bson:"code"`
	Name          string             `json:"name" bson:"name"`
	Group         string             `json:"group" bson:"group"`
	Phone         string             `json:"phone" bson:"phone"`
	Email         string             `json:"email" bson:"email"`
	Address       string             `json:"address" bson:"address"`
	DeliveryArea  string             `json:"delivery_area" bson:"delivery_area"`
	TotalSpent    float64            `json:"total_spent" bson:"total_spent"`
	LoyaltyPoints float64            `json:"loyalty_points" bson:"loyalty_points"`
	TotalDebt     float64            `json:"total_debt" bson:"total_debt"`
	Status        string             `json:"status" bson:"status"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at" bson:"updated_at"`
}

// ToRecord maps the entity into the evaluator's view. The record id is the
// ERP customer code so it lines up with Sale.CustomerID, which carries codes
// from both the seeder and the sync import.
func (c Customer) ToRecord() filter.CustomerRecord {
	id := c.Code
	if id == "" {
		id = c.ID.Hex()
	}
	return filter.CustomerRecord{
		ID:            id,
		Group:         c.Group,
		Name:          c.Name,
		Phone:         c.Phone,
		Email:         c.Email,
		Address:       c.Address,
		DeliveryArea:  c.DeliveryArea,
		TotalSpent:    c.TotalSpent,
		LoyaltyPoints: c.LoyaltyPoints,
		TotalDebt:     c.TotalDebt,
		CreatedDate:   c.CreatedAt,
		Status:        c.Status,
	}
}
