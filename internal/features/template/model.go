package template

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Channel is the delivery channel a template targets.
type Channel string

const (
	ChannelZalo  Channel = "zalo"
	ChannelEmail Channel = "email"
	ChannelSMS   Channel = "sms"
)

// MaxContentLength bounds template content.
const MaxContentLength = 1000

// MessageTemplate is a reusable message body with bracketed placeholders,
// e.g. "Chào [Tên khách hàng], bạn có [Điểm tích lũy] điểm."
type MessageTemplate struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Channel     Channel            `json:"channel" bson:"channel"`
	Content     string             `json:"content" bson:"content"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	IsActive    bool               `json:"is_active" bson:"is_active"`
	CreatedBy   string             `json:"created_by,omitempty" bson:"created_by,omitempty"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}

// ValidationResult is returned to the caller instead of an error; the UI
// decides how to present failures.
type ValidationResult struct {
	IsValid bool     `json:"is_valid"`
	Errors  []string `json:"errors"`
}

// KnownVariables is the allow-list of placeholder tokens.
var KnownVariables = []string{
	"[Tên khách hàng]",
	"[Số điện thoại]",
	"[Email]",
	"[Hạng thành viên]",
	"[Điểm tích lũy]",
	"[Tổng chi tiêu]",
	"[Khu vực]",
	"[Tên cửa hàng]",
}
