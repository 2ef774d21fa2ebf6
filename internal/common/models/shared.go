package models

import (
	"time"
)

type ContextKey string

const (
	UserIDKey ContextKey = "user_id"
)

// Log is the record shape the async zap sink writes to the logs collection.
type Log struct {
	AppId        string    `bson:"app_id,omitempty" json:"app_id,omitempty"`
	Message      string    `bson:"message" json:"message"`
	Caller       string    `bson:"caller,omitempty" json:"caller,omitempty"`
	IpAddress    string    `bson:"ip_address,omitempty" json:"ip_address,omitempty"`
	UserID       string    `bson:"user_id,omitempty" json:"user_id,omitempty"`
	LogLevelId   int       `bson:"log_level_id" json:"log_level_id"`
	CreatedOnUtc time.Time `bson:"created_on_utc" json:"created_on_utc"`
}
