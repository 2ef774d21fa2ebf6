package segment

import (
	"time"

	"go-marketing/pkg/filter"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SavedSegment is a named advanced filter persisted for reuse. The
// CustomerCount snapshot is taken at save time and refreshed on update.
type SavedSegment struct {
	ID            primitive.ObjectID    `json:"id" bson:"_id,omitempty"`
	Name          string                `json:"name" bson:"name"`
	Description   string                `json:"description,omitempty" bson:"description,omitempty"`
	Filter        filter.AdvancedFilter `json:"filter" bson:"filter"`
	CustomerCount int                   `json:"customer_count" bson:"customer_count"`
	CreatedBy     string                `json:"created_by,omitempty" bson:"created_by,omitempty"`
	Tags          []string              `json:"tags,omitempty" bson:"tags,omitempty"`
	CreatedAt     time.Time             `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at" bson:"updated_at"`
}

// SegmentUpdate carries the mutable fields of a saved segment. Nil means
// "leave unchanged".
type SegmentUpdate struct {
	Name          *string                `json:"name,omitempty"`
	Description   *string                `json:"description,omitempty"`
	Filter        *filter.AdvancedFilter `json:"filter,omitempty"`
	CustomerCount *int                   `json:"customer_count,omitempty"`
	Tags          []string               `json:"tags,omitempty"`
}

// EvaluateRequest is the body of the ad-hoc evaluate endpoint.
type EvaluateRequest struct {
	Filter filter.AdvancedFilter `json:"filter"`
}
