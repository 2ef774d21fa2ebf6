package connectors

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
)

// ExternalDBConnector reads from a PostgreSQL or MySQL ERP backend.
type ExternalDBConnector struct {
	dbType string // "postgresql" or "mysql"
	db     *sql.DB
}

func NewExternalDBConnector(dbType string) Connector {
	return &ExternalDBConnector{
		dbType: dbType,
	}
}

func (c *ExternalDBConnector) Connect(ctx context.Context, config map[string]string) error {
	connStr, err := c.buildConnectionString(config)
	if err != nil {
		return fmt.Errorf("failed to build connection string: %w", err)
	}

	driver := c.dbType
	if c.dbType == "postgresql" {
		driver = "postgres"
	}

	db, err := sql.Open(driver, connStr)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	c.db = db
	return nil
}

func (c *ExternalDBConnector) Disconnect(ctx context.Context) error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

func (c *ExternalDBConnector) Query(ctx context.Context, q TableQuery) (*QueryResult, error) {
	if c.db == nil {
		return nil, fmt.Errorf("database connection not established")
	}

	query, args := c.buildSQLQuery(q)

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()

	data, err := c.rowsToMaps(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to process query results: %w", err)
	}

	return &QueryResult{
		Rows:       data,
		TotalCount: int64(len(data)),
		Timestamp:  time.Now(),
	}, nil
}

func (c *ExternalDBConnector) GetSchema(ctx context.Context, table string) (*TableSchema, error) {
	if c.db == nil {
		return nil, fmt.Errorf("database connection not established")
	}

	var query string
	if c.dbType == "postgresql" {
		query = `
			SELECT column_name, data_type, is_nullable
			FROM information_schema.columns
			WHERE table_name = $1
			ORDER BY ordinal_position
		`
	} else { // mysql
		query = `
			SELECT column_name, data_type, is_nullable
			FROM information_schema.columns
			WHERE table_name = ?
			ORDER BY ordinal_position
		`
	}

	rows, err := c.db.QueryContext(ctx, query, table)
	if err != nil {
		return nil, fmt.Errorf("failed to get schema: %w", err)
	}
	defer rows.Close()

	schema := &TableSchema{
		Table:   table,
		Columns: []ColumnInfo{},
	}

	for rows.Next() {
		var columnName, dataType, isNullable string
		if err := rows.Scan(&columnName, &dataType, &isNullable); err != nil {
			return nil, fmt.Errorf("failed to scan schema row: %w", err)
		}

		schema.Columns = append(schema.Columns, ColumnInfo{
			Name:       columnName,
			Type:       dataType,
			IsRequired: isNullable == "NO",
		})
	}

	return schema, rows.Err()
}

func (c *ExternalDBConnector) TestConnection(ctx context.Context) error {
	if c.db == nil {
		return fmt.Errorf("database connection not established")
	}
	return c.db.PingContext(ctx)
}

func (c *ExternalDBConnector) Type() string {
	return c.dbType
}

func (c *ExternalDBConnector) buildConnectionString(config map[string]string) (string, error) {
	host := config["host"]
	port := config["port"]
	database := config["database"]
	username := config["username"]
	password := config["password"]

	if host == "" || database == "" || username == "" {
		return "", fmt.Errorf("missing required connection parameters")
	}

	if port == "" {
		if c.dbType == "postgresql" {
			port = "5432"
		} else {
			port = "3306"
		}
	}

	if c.dbType == "postgresql" {
		return fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			host, port, username, password, database,
		), nil
	}

	// MySQL
	return fmt.Sprintf(
		"%s:%s@tcp(%s:%s)/%s?parseTime=true",
		username, password, host, port, database,
	), nil
}

func (c *ExternalDBConnector) buildSQLQuery(q TableQuery) (string, []interface{}) {
	var query strings.Builder
	var args []interface{}
	argIndex := 1

	query.WriteString("SELECT ")
	if len(q.Fields) > 0 {
		query.WriteString(strings.Join(q.Fields, ", "))
	} else {
		query.WriteString("*")
	}

	query.WriteString(fmt.Sprintf(" FROM %s", q.Table))

	if len(q.Filters) > 0 {
		query.WriteString(" WHERE ")
		conditions := []string{}
		for field, value := range q.Filters {
			conditions = append(conditions, fmt.Sprintf("%s = %s", field, c.placeholder(argIndex)))
			args = append(args, value)
			argIndex++
		}
		query.WriteString(strings.Join(conditions, " AND "))
	}

	if q.OrderBy != "" {
		query.WriteString(fmt.Sprintf(" ORDER BY %s", q.OrderBy))
	}

	if q.Limit > 0 {
		query.WriteString(fmt.Sprintf(" LIMIT %d", q.Limit))
	}
	if q.Offset > 0 {
		query.WriteString(fmt.Sprintf(" OFFSET %d", q.Offset))
	}

	return query.String(), args
}

func (c *ExternalDBConnector) placeholder(index int) string {
	if c.dbType == "postgresql" {
		return fmt.Sprintf("$%d", index)
	}
	return "?"
}

func (c *ExternalDBConnector) rowsToMaps(rows *sql.Rows) ([]map[string]interface{}, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	result := []map[string]interface{}{}

	for rows.Next() {
		values := make([]interface{}, len(columns))
		valuePtrs := make([]interface{}, len(columns))
		for i := range values {
			valuePtrs[i] = &values[i]
		}

		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, err
		}

		row := make(map[string]interface{})
		for i, col := range columns {
			val := values[i]
			if b, ok := val.([]byte); ok {
				row[col] = string(b)
			} else {
				row[col] = val
			}
		}
		result = append(result, row)
	}

	return result, rows.Err()
}
