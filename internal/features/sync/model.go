package sync

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Entity names the local collection a source table feeds.
type Entity string

const (
	EntityCustomers Entity = "customers"
	EntitySales     Entity = "sales"
	EntityProducts  Entity = "products"
)

// TableSyncConfig maps one source table onto a local entity.
// Mapping is source column -> local field name.
type TableSyncConfig struct {
	Entity  Entity            `json:"entity" bson:"entity"`
	Table   string            `json:"table" bson:"table"`
	Mapping map[string]string `json:"mapping" bson:"mapping"`
}

// SyncSetting points at one ERP database and lists the tables to import.
type SyncSetting struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name           string             `json:"name" bson:"name"`
	SourceDBType   string             `json:"source_db_type" bson:"source_db_type"` // "postgresql", "mysql"
	SourceDBConfig map[string]string  `json:"source_db_config" bson:"source_db_config"`
	Tables         []TableSyncConfig  `json:"tables" bson:"tables"`
	LastSyncAt     time.Time          `json:"last_sync_at" bson:"last_sync_at"`
	IsActive       bool               `json:"is_active" bson:"is_active"`
	CreatedAt      time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at" bson:"updated_at"`
}

type SyncLog struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	SyncSettingID  primitive.ObjectID `json:"sync_setting_id" bson:"sync_setting_id"`
	StartTime      time.Time          `json:"start_time" bson:"start_time"`
	EndTime        time.Time          `json:"end_time" bson:"end_time"`
	Status         string             `json:"status" bson:"status"` // "success", "failed", "in_progress"
	ProcessedCount int                `json:"processed_count" bson:"processed_count"`
	Error          string             `json:"error,omitempty" bson:"error,omitempty"`
}
