package action_history

import (
	"time"

	"go-marketing/pkg/filter"
)

// ActionType identifies one auditable user action.
type ActionType string

const (
	ActionSaveFilter  ActionType = "save_filter"
	ActionExportExcel ActionType = "export_excel"
	ActionSendZalo    ActionType = "send_zalo"
	ActionSendEmail   ActionType = "send_email"
	ActionSendSMS     ActionType = "send_sms"
)

// MaxEntries caps the history log; the oldest entry (by insertion order)
// is evicted on every append beyond the cap.
const MaxEntries = 50

// ActionHistoryItem is one audit record. Newest entries come first.
type ActionHistoryItem struct {
	ID             string                 `json:"id" bson:"id"`
	Type           ActionType             `json:"type" bson:"type"`
	CustomerCount  int                    `json:"customer_count" bson:"customer_count"`
	FilterName     string                 `json:"filter_name,omitempty" bson:"filter_name,omitempty"`
	FilterSnapshot *filter.AdvancedFilter `json:"filter_snapshot,omitempty" bson:"filter_snapshot,omitempty"`
	Details        string                 `json:"details,omitempty" bson:"details,omitempty"`
	CreatedAt      time.Time              `json:"created_at" bson:"created_at"`
}
