package campaign

import (
	"time"

	"go-marketing/internal/features/template"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CampaignStatus string

const (
	StatusDraft     CampaignStatus = "draft"
	StatusScheduled CampaignStatus = "scheduled"
	StatusRunning   CampaignStatus = "running"
	StatusCompleted CampaignStatus = "completed"
	StatusFailed    CampaignStatus = "failed"
)

type ActionType string

const (
	ActionSendZalo  ActionType = "send_zalo"
	ActionSendEmail ActionType = "send_email"
	ActionSendSMS   ActionType = "send_sms"
	ActionWebhook   ActionType = "webhook"
	ActionRunScript ActionType = "run_script"
)

// CampaignAction is an extra step executed per matched customer after the
// channel message goes out.
type CampaignAction struct {
	Type   ActionType             `json:"type" bson:"type"`
	Config map[string]interface{} `json:"config" bson:"config"`
}

// Campaign ties a saved segment to a message template on one channel.
// When Schedule is a non-empty cron expression and Active is true, the
// scheduler runs it automatically.
type Campaign struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	SegmentID   string             `json:"segment_id" bson:"segment_id"`
	TemplateID  string             `json:"template_id" bson:"template_id"`
	Channel     template.Channel   `json:"channel" bson:"channel"`
	Schedule    string             `json:"schedule,omitempty" bson:"schedule,omitempty"`
	Active      bool               `json:"active" bson:"active"`
	Status      CampaignStatus     `json:"status" bson:"status"`
	Actions     []CampaignAction   `json:"actions,omitempty" bson:"actions,omitempty"`
	SentCount   int                `json:"sent_count" bson:"sent_count"`
	LastRunAt   *time.Time         `json:"last_run_at,omitempty" bson:"last_run_at,omitempty"`
	NextRunAt   *time.Time         `json:"next_run_at,omitempty" bson:"next_run_at,omitempty"`
	CreatedBy   string             `json:"created_by,omitempty" bson:"created_by,omitempty"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}

// RunResult summarizes a single campaign execution.
type RunResult struct {
	CampaignID string `json:"campaign_id"`
	Matched    int    `json:"matched"`
	Sent       int    `json:"sent"`
	Failed     int    `json:"failed"`
	DurationMs int64  `json:"duration_ms"`
}
