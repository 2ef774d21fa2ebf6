package connectors

import (
	"context"
	"time"
)

// TableQuery selects rows from one source table.
type TableQuery struct {
	Table   string
	Fields  []string
	Filters map[string]interface{}
	OrderBy string
	Limit   int64
	Offset  int64
}

// QueryResult holds the rows a query returned, column-keyed.
type QueryResult struct {
	Rows       []map[string]interface{}
	TotalCount int64
	Timestamp  time.Time
}

// ColumnInfo describes one source column.
type ColumnInfo struct {
	Name       string
	Type       string
	IsRequired bool
}

// TableSchema describes a source table.
type TableSchema struct {
	Table   string
	Columns []ColumnInfo
}

// Connector reads rows from an external ERP database.
type Connector interface {
	Connect(ctx context.Context, config map[string]string) error
	Disconnect(ctx context.Context) error
	Query(ctx context.Context, q TableQuery) (*QueryResult, error)
	GetSchema(ctx context.Context, table string) (*TableSchema, error)
	TestConnection(ctx context.Context) error
	Type() string
}
