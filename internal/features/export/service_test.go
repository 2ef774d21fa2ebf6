package export

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"go-marketing/internal/features/segment"
	"go-marketing/pkg/filter"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

type stubProvider struct {
	segmentName string
	matched     []string
}

func (s *stubProvider) GetSegment(ctx context.Context, id string) (*segment.SavedSegment, error) {
	return &segment.SavedSegment{Name: s.segmentName}, nil
}

func (s *stubProvider) EvaluateSegment(ctx context.Context, id string) (*filter.Result, error) {
	return &filter.Result{Customers: s.matched, TotalCount: len(s.matched)}, nil
}

func (s *stubProvider) Evaluate(ctx context.Context, f *filter.AdvancedFilter) (*filter.Result, error) {
	return &filter.Result{Customers: s.matched, TotalCount: len(s.matched)}, nil
}

type stubCustomers struct {
	records []filter.CustomerRecord
}

func (s *stubCustomers) AllRecords(ctx context.Context) ([]filter.CustomerRecord, error) {
	return s.records, nil
}

type memHistory struct {
	types  []string
	counts []int
	names  []string
}

func (h *memHistory) Record(ctx context.Context, actionType string, customerCount int, filterName string, snapshot *filter.AdvancedFilter) {
	h.types = append(h.types, actionType)
	h.counts = append(h.counts, customerCount)
	h.names = append(h.names, filterName)
}

func newTestService(matched []string) (ExportService, *memHistory) {
	history := &memHistory{}
	customers := &stubCustomers{records: []filter.CustomerRecord{
		{ID: "KH001", Name: "Nguyễn Văn An", Group: "VIP", Phone: "0901", TotalSpent: 1200000, CreatedDate: time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC), Status: "Hoạt động"},
		{ID: "KH002", Name: "Trần Thị Bình", Group: "Thường", Phone: "0902", TotalSpent: 900000, CreatedDate: time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC), Status: "Hoạt động"},
	}}
	svc := NewExportService(&stubProvider{segmentName: "Khách VIP", matched: matched}, customers, history, zap.NewNop())
	return svc, history
}

func TestExportSegmentBuildsWorkbook(t *testing.T) {
	svc, history := newTestService([]string{"KH001", "KH002"})

	data, filename, err := svc.ExportSegment(context.Background(), "seg1")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.HasSuffix(filename, ".xlsx") {
		t.Fatalf("filename %q missing .xlsx suffix", filename)
	}
	if !strings.HasPrefix(filename, "Khách_VIP_") {
		t.Fatalf("filename %q not derived from segment name", filename)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Khách hàng")
	if err != nil {
		t.Fatalf("get rows: %v", err)
	}
	if len(rows) != 3 { // header + 2 customers
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0][0] != "Mã KH" || rows[0][1] != "Tên khách hàng" {
		t.Fatalf("unexpected header row: %v", rows[0])
	}
	if rows[1][0] != "KH001" || rows[1][1] != "Nguyễn Văn An" {
		t.Fatalf("unexpected first data row: %v", rows[1])
	}

	if len(history.types) != 1 || history.types[0] != "export_excel" {
		t.Fatalf("history types = %v", history.types)
	}
	if history.counts[0] != 2 || history.names[0] != "Khách VIP" {
		t.Fatalf("history entry = %d %q", history.counts[0], history.names[0])
	}
}

func TestExportFilterSkipsUnknownIDs(t *testing.T) {
	svc, _ := newTestService([]string{"KH002", "KH999"})

	f := filter.NewAdvancedFilter(filter.LogicAnd)
	data, _, err := svc.ExportFilter(context.Background(), f, "ad hoc")
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	wb, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer wb.Close()

	rows, err := wb.GetRows("Khách hàng")
	if err != nil {
		t.Fatalf("get rows: %v", err)
	}
	if len(rows) != 2 { // header + KH002 only
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[1][0] != "KH002" {
		t.Fatalf("unexpected data row: %v", rows[1])
	}
}

func TestExportFilterDefaultsName(t *testing.T) {
	svc, history := newTestService(nil)

	_, filename, err := svc.ExportFilter(context.Background(), filter.NewAdvancedFilter(filter.LogicAnd), "")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.HasPrefix(filename, "khach_hang_") {
		t.Fatalf("filename %q missing default prefix", filename)
	}
	if history.names[0] != "khach_hang" {
		t.Fatalf("history name = %q", history.names[0])
	}
}
