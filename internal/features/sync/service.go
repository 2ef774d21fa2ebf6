package sync

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go-marketing/internal/config"
	"go-marketing/internal/connectors"
	"go-marketing/internal/features/customer"
	"go-marketing/internal/features/product"
	"go-marketing/internal/features/sale"

	"go.uber.org/zap"
)

// Importers upsert the mapped rows into the local collections. Implemented by
// the customer/sale/product repositories.
type CustomerImporter interface {
	UpsertByCode(ctx context.Context, c *customer.Customer) error
}

type SaleImporter interface {
	UpsertByCode(ctx context.Context, s *sale.Sale) error
}

type ProductImporter interface {
	UpsertBySKU(ctx context.Context, p *product.Product) error
}

// ConnectorFactory builds a connector for the configured source type.
type ConnectorFactory func(dbType string) connectors.Connector

type SyncService interface {
	CreateSetting(ctx context.Context, setting *SyncSetting) error
	GetSetting(ctx context.Context, id string) (*SyncSetting, error)
	ListSettings(ctx context.Context) ([]SyncSetting, error)
	UpdateSetting(ctx context.Context, id string, updates map[string]interface{}) error
	DeleteSetting(ctx context.Context, id string) error
	RunSync(ctx context.Context, id string) error
	TestConnection(ctx context.Context, id string) error
	GetTableSchema(ctx context.Context, id string, table string) (*connectors.TableSchema, error)
	ListLogs(ctx context.Context, settingID string, limit int64) ([]SyncLog, error)
}

type SyncServiceImpl struct {
	SyncRepo  SyncSettingRepository
	LogRepo   SyncLogRepository
	Customers CustomerImporter
	Sales     SaleImporter
	Products  ProductImporter
	NewConn   ConnectorFactory
	Config    *config.Config
	Logger    *zap.Logger
}

func NewSyncService(
	syncRepo SyncSettingRepository,
	logRepo SyncLogRepository,
	customers CustomerImporter,
	sales SaleImporter,
	products ProductImporter,
	newConn ConnectorFactory,
	cfg *config.Config,
	logger *zap.Logger,
) SyncService {
	return &SyncServiceImpl{
		SyncRepo:  syncRepo,
		LogRepo:   logRepo,
		Customers: customers,
		Sales:     sales,
		Products:  products,
		NewConn:   newConn,
		Config:    cfg,
		Logger:    logger,
	}
}

// applyDefaults fills unset connection fields from the ERP_DB_* environment
// config so a new setting can point at the hosted backend without repeating
// the credentials.
func (s *SyncServiceImpl) applyDefaults(setting *SyncSetting) {
	if s.Config == nil {
		return
	}
	if setting.SourceDBType == "" {
		setting.SourceDBType = s.Config.ErpDBType
	}
	if setting.SourceDBConfig == nil {
		setting.SourceDBConfig = make(map[string]string)
	}
	defaults := map[string]string{
		"host":     s.Config.ErpDBHost,
		"port":     s.Config.ErpDBPort,
		"database": s.Config.ErpDBName,
		"username": s.Config.ErpDBUser,
		"password": s.Config.ErpDBPass,
	}
	for key, value := range defaults {
		if setting.SourceDBConfig[key] == "" && value != "" {
			setting.SourceDBConfig[key] = value
		}
	}
}

func (s *SyncServiceImpl) CreateSetting(ctx context.Context, setting *SyncSetting) error {
	if setting.Name == "" {
		return errors.New("sync setting name is required")
	}
	s.applyDefaults(setting)
	switch setting.SourceDBType {
	case "postgresql", "mysql":
	default:
		return fmt.Errorf("unsupported source database type: %s", setting.SourceDBType)
	}
	for _, table := range setting.Tables {
		switch table.Entity {
		case EntityCustomers, EntitySales, EntityProducts:
		default:
			return fmt.Errorf("unknown sync entity: %s", table.Entity)
		}
		if table.Table == "" {
			return fmt.Errorf("source table is required for entity %s", table.Entity)
		}
	}
	return s.SyncRepo.Create(ctx, setting)
}

func (s *SyncServiceImpl) GetSetting(ctx context.Context, id string) (*SyncSetting, error) {
	return s.SyncRepo.Get(ctx, id)
}

func (s *SyncServiceImpl) ListSettings(ctx context.Context) ([]SyncSetting, error) {
	return s.SyncRepo.List(ctx)
}

func (s *SyncServiceImpl) UpdateSetting(ctx context.Context, id string, updates map[string]interface{}) error {
	return s.SyncRepo.Update(ctx, id, updates)
}

func (s *SyncServiceImpl) DeleteSetting(ctx context.Context, id string) error {
	return s.SyncRepo.Delete(ctx, id)
}

func (s *SyncServiceImpl) ListLogs(ctx context.Context, settingID string, limit int64) ([]SyncLog, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.LogRepo.List(ctx, settingID, limit)
}

func (s *SyncServiceImpl) TestConnection(ctx context.Context, id string) error {
	setting, err := s.SyncRepo.Get(ctx, id)
	if err != nil {
		return err
	}

	conn := s.NewConn(setting.SourceDBType)
	if err := conn.Connect(ctx, setting.SourceDBConfig); err != nil {
		return err
	}
	defer conn.Disconnect(ctx)

	return conn.TestConnection(ctx)
}

// GetTableSchema inspects one source table so a mapping can be built against
// the real column names.
func (s *SyncServiceImpl) GetTableSchema(ctx context.Context, id string, table string) (*connectors.TableSchema, error) {
	if table == "" {
		return nil, errors.New("table name is required")
	}
	setting, err := s.SyncRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	conn := s.NewConn(setting.SourceDBType)
	if err := conn.Connect(ctx, setting.SourceDBConfig); err != nil {
		return nil, err
	}
	defer conn.Disconnect(ctx)

	return conn.GetSchema(ctx, table)
}

// RunSync pulls every configured table from the ERP backend and upserts the
// mapped rows into the local collections.
func (s *SyncServiceImpl) RunSync(ctx context.Context, id string) error {
	setting, err := s.SyncRepo.Get(ctx, id)
	if err != nil {
		return err
	}

	logEntry := &SyncLog{
		SyncSettingID: setting.ID,
		StartTime:     time.Now(),
		Status:        "in_progress",
	}
	if err := s.LogRepo.Create(ctx, logEntry); err != nil {
		s.Logger.Warn("failed to create sync log", zap.Error(err))
	}

	processed, syncErr := s.executeSync(ctx, setting)

	logEntry.EndTime = time.Now()
	logEntry.ProcessedCount = processed
	if syncErr != nil {
		logEntry.Status = "failed"
		logEntry.Error = syncErr.Error()
	} else {
		logEntry.Status = "success"
	}
	if err := s.LogRepo.Update(ctx, logEntry); err != nil {
		s.Logger.Warn("failed to update sync log", zap.Error(err))
	}

	if syncErr == nil {
		if err := s.SyncRepo.Update(ctx, id, map[string]interface{}{"last_sync_at": logEntry.EndTime}); err != nil {
			s.Logger.Warn("failed to update last sync time", zap.Error(err))
		}
	}

	return syncErr
}

func (s *SyncServiceImpl) executeSync(ctx context.Context, setting *SyncSetting) (int, error) {
	conn := s.NewConn(setting.SourceDBType)
	if err := conn.Connect(ctx, setting.SourceDBConfig); err != nil {
		return 0, fmt.Errorf("failed to connect to source: %w", err)
	}
	defer conn.Disconnect(ctx)

	processed := 0
	for _, table := range setting.Tables {
		result, err := conn.Query(ctx, connectors.TableQuery{Table: table.Table})
		if err != nil {
			return processed, fmt.Errorf("failed to query table %s: %w", table.Table, err)
		}

		for _, row := range result.Rows {
			mapped := mapRow(row, table.Mapping)
			if err := s.importRow(ctx, table.Entity, mapped); err != nil {
				s.Logger.Warn("failed to import row",
					zap.String("entity", string(table.Entity)),
					zap.String("table", table.Table),
					zap.Error(err))
				continue
			}
			processed++
		}

		s.Logger.Info("synced table",
			zap.String("table", table.Table),
			zap.String("entity", string(table.Entity)),
			zap.Int64("rows", result.TotalCount))
	}

	return processed, nil
}

func (s *SyncServiceImpl) importRow(ctx context.Context, entity Entity, row map[string]interface{}) error {
	switch entity {
	case EntityCustomers:
		c := rowToCustomer(row)
		if c.Code == "" {
			return errors.New("customer row missing code")
		}
		return s.Customers.UpsertByCode(ctx, c)

	case EntitySales:
		sl := rowToSale(row)
		if sl.Code == "" {
			return errors.New("sale row missing code")
		}
		return s.Sales.UpsertByCode(ctx, sl)

	case EntityProducts:
		p := rowToProduct(row)
		if p.SKU == "" {
			return errors.New("product row missing sku")
		}
		return s.Products.UpsertBySKU(ctx, p)

	default:
		return fmt.Errorf("unknown sync entity: %s", entity)
	}
}

// mapRow renames source columns to local field names. An empty mapping keeps
// the source column names as-is.
func mapRow(row map[string]interface{}, mapping map[string]string) map[string]interface{} {
	if len(mapping) == 0 {
		return row
	}
	out := make(map[string]interface{}, len(mapping))
	for srcCol, field := range mapping {
		if val, ok := row[srcCol]; ok {
			out[field] = val
		}
	}
	return out
}

func rowToCustomer(row map[string]interface{}) *customer.Customer {
	return &customer.Customer{
		Code:          asString(row["code"]),
		Name:          asString(row["name"]),
		Group:         asString(row["group"]),
		Phone:         asString(row["phone"]),
		Email:         asString(row["email"]),
		Address:       asString(row["address"]),
		DeliveryArea:  asString(row["delivery_area"]),
		TotalSpent:    asFloat(row["total_spent"]),
		LoyaltyPoints: asFloat(row["loyalty_points"]),
		TotalDebt:     asFloat(row["total_debt"]),
		Status:        asString(row["status"]),
		CreatedAt:     asTime(row["created_at"]),
	}
}

func rowToSale(row map[string]interface{}) *sale.Sale {
	return &sale.Sale{
		Code:       asString(row["code"]),
		CustomerID: asString(row["customer_id"]),
		ProductIDs: asStringSlice(row["product_ids"]),
		Amount:     asFloat(row["amount"]),
		Date:       asTime(row["date"]),
		Status:     asString(row["status"]),
		Channel:    asString(row["channel"]),
		Branch:     asString(row["branch"]),
	}
}

func rowToProduct(row map[string]interface{}) *product.Product {
	return &product.Product{
		SKU:      asString(row["sku"]),
		Name:     asString(row["name"]),
		Category: asString(row["category"]),
		Brand:    asString(row["brand"]),
		Price:    asFloat(row["price"]),
	}
}

func asString(v interface{}) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return fmt.Sprintf("%v", v)
	}
}

func asFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int64:
		return float64(n)
	case int:
		return float64(n)
	case string:
		f, _ := strconv.ParseFloat(n, 64)
		return f
	default:
		return 0
	}
}

func asTime(v interface{}) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed
			}
		}
	}
	return time.Time{}
}

// asStringSlice splits comma-joined ids, the format the ERP export uses for
// line item references.
func asStringSlice(v interface{}) []string {
	s := asString(v)
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
