package sync

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-marketing/internal/config"
	"go-marketing/internal/connectors"
	"go-marketing/internal/features/customer"
	"go-marketing/internal/features/product"
	"go-marketing/internal/features/sale"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type memSettingRepo struct {
	settings map[string]*SyncSetting
}

func newMemSettingRepo() *memSettingRepo {
	return &memSettingRepo{settings: make(map[string]*SyncSetting)}
}

func (r *memSettingRepo) Create(ctx context.Context, setting *SyncSetting) error {
	if setting.ID.IsZero() {
		setting.ID = primitive.NewObjectID()
	}
	r.settings[setting.ID.Hex()] = setting
	return nil
}

func (r *memSettingRepo) Get(ctx context.Context, id string) (*SyncSetting, error) {
	s, ok := r.settings[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return s, nil
}

func (r *memSettingRepo) List(ctx context.Context) ([]SyncSetting, error) {
	var out []SyncSetting
	for _, s := range r.settings {
		out = append(out, *s)
	}
	return out, nil
}

func (r *memSettingRepo) ListActive(ctx context.Context) ([]SyncSetting, error) {
	var out []SyncSetting
	for _, s := range r.settings {
		if s.IsActive {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *memSettingRepo) Update(ctx context.Context, id string, updates map[string]interface{}) error {
	s, ok := r.settings[id]
	if !ok {
		return errors.New("not found")
	}
	if v, ok := updates["last_sync_at"].(time.Time); ok {
		s.LastSyncAt = v
	}
	return nil
}

func (r *memSettingRepo) Delete(ctx context.Context, id string) error {
	delete(r.settings, id)
	return nil
}

type memLogRepo struct {
	logs []*SyncLog
}

func (r *memLogRepo) Create(ctx context.Context, log *SyncLog) error {
	if log.ID.IsZero() {
		log.ID = primitive.NewObjectID()
	}
	r.logs = append(r.logs, log)
	return nil
}

func (r *memLogRepo) List(ctx context.Context, settingID string, limit int64) ([]SyncLog, error) {
	var out []SyncLog
	for _, l := range r.logs {
		out = append(out, *l)
	}
	return out, nil
}

func (r *memLogRepo) Update(ctx context.Context, log *SyncLog) error {
	for i, l := range r.logs {
		if l.ID == log.ID {
			r.logs[i] = log
			return nil
		}
	}
	return errors.New("not found")
}

type customerSink struct{ got []*customer.Customer }

func (s *customerSink) UpsertByCode(ctx context.Context, c *customer.Customer) error {
	s.got = append(s.got, c)
	return nil
}

type saleSink struct{ got []*sale.Sale }

func (s *saleSink) UpsertByCode(ctx context.Context, v *sale.Sale) error {
	s.got = append(s.got, v)
	return nil
}

type productSink struct{ got []*product.Product }

func (s *productSink) UpsertBySKU(ctx context.Context, p *product.Product) error {
	s.got = append(s.got, p)
	return nil
}

// fakeConnector serves canned rows per table.
type fakeConnector struct {
	rows      map[string][]map[string]interface{}
	connected bool
}

func (c *fakeConnector) Connect(ctx context.Context, config map[string]string) error {
	c.connected = true
	return nil
}

func (c *fakeConnector) Disconnect(ctx context.Context) error {
	c.connected = false
	return nil
}

func (c *fakeConnector) Query(ctx context.Context, q connectors.TableQuery) (*connectors.QueryResult, error) {
	rows := c.rows[q.Table]
	return &connectors.QueryResult{Rows: rows, TotalCount: int64(len(rows))}, nil
}

func (c *fakeConnector) GetSchema(ctx context.Context, table string) (*connectors.TableSchema, error) {
	return &connectors.TableSchema{Table: table}, nil
}

func (c *fakeConnector) TestConnection(ctx context.Context) error { return nil }

func (c *fakeConnector) Type() string { return "fake" }

func TestRunSyncImportsMappedRows(t *testing.T) {
	settingRepo := newMemSettingRepo()
	logRepo := &memLogRepo{}
	custSink := &customerSink{}
	prodSink := &productSink{}

	conn := &fakeConnector{rows: map[string][]map[string]interface{}{
		"khach_hang": {
			{"ma_kh": "KH001", "ten": "Nguyễn Văn An", "nhom": "VIP", "chi_tieu": 1200000.0},
			{"ma_kh": "KH002", "ten": "Trần Thị Bình", "nhom": "Thường", "chi_tieu": "900000"},
		},
		"san_pham": {
			{"sku": "SP01", "name": "Trà sữa", "category": "Đồ uống"},
		},
	}}

	svc := NewSyncService(settingRepo, logRepo, custSink, &saleSink{}, prodSink,
		func(dbType string) connectors.Connector { return conn }, nil, zap.NewNop())

	ctx := context.Background()
	setting := &SyncSetting{
		Name:         "ERP chính",
		SourceDBType: "postgresql",
		Tables: []TableSyncConfig{
			{
				Entity: EntityCustomers,
				Table:  "khach_hang",
				Mapping: map[string]string{
					"ma_kh":    "code",
					"ten":      "name",
					"nhom":     "group",
					"chi_tieu": "total_spent",
				},
			},
			{Entity: EntityProducts, Table: "san_pham"},
		},
	}
	if err := svc.CreateSetting(ctx, setting); err != nil {
		t.Fatalf("create setting: %v", err)
	}

	if err := svc.RunSync(ctx, setting.ID.Hex()); err != nil {
		t.Fatalf("run sync: %v", err)
	}

	if len(custSink.got) != 2 {
		t.Fatalf("expected 2 customers, got %d", len(custSink.got))
	}
	first := custSink.got[0]
	if first.Code != "KH001" || first.Name != "Nguyễn Văn An" || first.Group != "VIP" {
		t.Fatalf("unexpected customer: %+v", first)
	}
	if first.TotalSpent != 1200000 {
		t.Fatalf("total spent = %v", first.TotalSpent)
	}
	if custSink.got[1].TotalSpent != 900000 { // string column coerced
		t.Fatalf("total spent = %v", custSink.got[1].TotalSpent)
	}

	if len(prodSink.got) != 1 || prodSink.got[0].SKU != "SP01" {
		t.Fatalf("unexpected products: %+v", prodSink.got)
	}

	if len(logRepo.logs) != 1 {
		t.Fatalf("expected 1 log, got %d", len(logRepo.logs))
	}
	log := logRepo.logs[0]
	if log.Status != "success" || log.ProcessedCount != 3 {
		t.Fatalf("unexpected log: %+v", log)
	}
	if settingRepo.settings[setting.ID.Hex()].LastSyncAt.IsZero() {
		t.Fatal("last sync time not updated")
	}
	if conn.connected {
		t.Fatal("connector not disconnected")
	}
}

func TestRunSyncSkipsRowsWithoutKey(t *testing.T) {
	settingRepo := newMemSettingRepo()
	logRepo := &memLogRepo{}
	custSink := &customerSink{}

	conn := &fakeConnector{rows: map[string][]map[string]interface{}{
		"customers": {
			{"code": "KH001", "name": "An"},
			{"name": "No Code"},
		},
	}}

	svc := NewSyncService(settingRepo, logRepo, custSink, &saleSink{}, &productSink{},
		func(dbType string) connectors.Connector { return conn }, nil, zap.NewNop())

	ctx := context.Background()
	setting := &SyncSetting{
		Name:         "test",
		SourceDBType: "mysql",
		Tables:       []TableSyncConfig{{Entity: EntityCustomers, Table: "customers"}},
	}
	if err := svc.CreateSetting(ctx, setting); err != nil {
		t.Fatalf("create setting: %v", err)
	}
	if err := svc.RunSync(ctx, setting.ID.Hex()); err != nil {
		t.Fatalf("run sync: %v", err)
	}
	if len(custSink.got) != 1 {
		t.Fatalf("expected 1 imported customer, got %d", len(custSink.got))
	}
	if logRepo.logs[0].ProcessedCount != 1 {
		t.Fatalf("processed = %d", logRepo.logs[0].ProcessedCount)
	}
}

func TestCreateSettingValidation(t *testing.T) {
	svc := NewSyncService(newMemSettingRepo(), &memLogRepo{}, &customerSink{}, &saleSink{}, &productSink{},
		func(dbType string) connectors.Connector { return &fakeConnector{} }, nil, zap.NewNop())
	ctx := context.Background()

	cases := []struct {
		name    string
		setting SyncSetting
	}{
		{"missing name", SyncSetting{SourceDBType: "mysql"}},
		{"bad db type", SyncSetting{Name: "x", SourceDBType: "oracle"}},
		{"bad entity", SyncSetting{Name: "x", SourceDBType: "mysql", Tables: []TableSyncConfig{{Entity: "orders", Table: "t"}}}},
		{"missing table", SyncSetting{Name: "x", SourceDBType: "mysql", Tables: []TableSyncConfig{{Entity: EntityCustomers}}}},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if err := svc.CreateSetting(ctx, &tc.setting); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestRowConversionHelpers(t *testing.T) {
	s := rowToSale(map[string]interface{}{
		"code":        "HD001",
		"customer_id": "KH001",
		"product_ids": "SP01, SP02,SP03",
		"amount":      int64(250000),
		"date":        "2026-03-15",
	})
	if len(s.ProductIDs) != 3 || s.ProductIDs[1] != "SP02" {
		t.Fatalf("product ids = %v", s.ProductIDs)
	}
	if s.Amount != 250000 {
		t.Fatalf("amount = %v", s.Amount)
	}
	if s.Date.Year() != 2026 || s.Date.Month() != time.March {
		t.Fatalf("date = %v", s.Date)
	}
}

func TestCreateSettingAppliesErpDefaults(t *testing.T) {
	cfg := &config.Config{
		ErpDBType: "mysql",
		ErpDBHost: "erp.internal",
		ErpDBPort: "3306",
		ErpDBName: "erp",
		ErpDBUser: "sync_user",
		ErpDBPass: "secret",
	}
	svc := NewSyncService(newMemSettingRepo(), &memLogRepo{}, &customerSink{}, &saleSink{}, &productSink{},
		func(dbType string) connectors.Connector { return &fakeConnector{} }, cfg, zap.NewNop())
	ctx := context.Background()

	setting := &SyncSetting{
		Name:   "ERP chính",
		Tables: []TableSyncConfig{{Entity: EntityCustomers, Table: "khach_hang"}},
	}
	if err := svc.CreateSetting(ctx, setting); err != nil {
		t.Fatalf("create setting: %v", err)
	}
	if setting.SourceDBType != "mysql" {
		t.Fatalf("source type = %q", setting.SourceDBType)
	}
	for key, want := range map[string]string{
		"host": "erp.internal", "port": "3306", "database": "erp",
		"username": "sync_user", "password": "secret",
	} {
		if got := setting.SourceDBConfig[key]; got != want {
			t.Fatalf("%s = %q, want %q", key, got, want)
		}
	}

	// explicit values win over the environment defaults
	override := &SyncSetting{
		Name:           "chi nhánh",
		SourceDBType:   "postgresql",
		SourceDBConfig: map[string]string{"host": "branch.internal"},
		Tables:         []TableSyncConfig{{Entity: EntityProducts, Table: "san_pham"}},
	}
	if err := svc.CreateSetting(ctx, override); err != nil {
		t.Fatalf("create setting: %v", err)
	}
	if override.SourceDBType != "postgresql" || override.SourceDBConfig["host"] != "branch.internal" {
		t.Fatalf("explicit values overwritten: %+v", override)
	}
	if override.SourceDBConfig["database"] != "erp" {
		t.Fatalf("missing fields not filled: %+v", override.SourceDBConfig)
	}
}

func TestGetTableSchema(t *testing.T) {
	conn := &fakeConnector{}
	svc := NewSyncService(newMemSettingRepo(), &memLogRepo{}, &customerSink{}, &saleSink{}, &productSink{},
		func(dbType string) connectors.Connector { return conn }, nil, zap.NewNop())
	ctx := context.Background()

	setting := &SyncSetting{
		Name:         "ERP chính",
		SourceDBType: "postgresql",
		Tables:       []TableSyncConfig{{Entity: EntityCustomers, Table: "khach_hang"}},
	}
	if err := svc.CreateSetting(ctx, setting); err != nil {
		t.Fatalf("create setting: %v", err)
	}

	schema, err := svc.GetTableSchema(ctx, setting.ID.Hex(), "khach_hang")
	if err != nil {
		t.Fatalf("get schema: %v", err)
	}
	if schema.Table != "khach_hang" {
		t.Fatalf("table = %q", schema.Table)
	}
	if conn.connected {
		t.Fatal("connector not disconnected")
	}

	if _, err := svc.GetTableSchema(ctx, setting.ID.Hex(), ""); err == nil {
		t.Fatal("expected error for empty table name")
	}
}
