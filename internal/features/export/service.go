package export

import (
	"context"
	"fmt"
	"time"

	"go-marketing/internal/features/segment"
	"go-marketing/pkg/filter"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// SegmentProvider resolves saved segments and evaluates filters. Implemented
// by the segment service.
type SegmentProvider interface {
	GetSegment(ctx context.Context, id string) (*segment.SavedSegment, error)
	EvaluateSegment(ctx context.Context, id string) (*filter.Result, error)
	Evaluate(ctx context.Context, f *filter.AdvancedFilter) (*filter.Result, error)
}

type CustomerSource interface {
	AllRecords(ctx context.Context) ([]filter.CustomerRecord, error)
}

type HistoryRecorder interface {
	Record(ctx context.Context, actionType string, customerCount int, filterName string, snapshot *filter.AdvancedFilter)
}

// columns are the spreadsheet headers, in order.
var columns = []string{
	"Mã KH",
	"Tên khách hàng",
	"Nhóm",
	"Số điện thoại",
	"Email",
	"Địa chỉ",
	"Khu vực giao hàng",
	"Tổng chi tiêu",
	"Điểm tích lũy",
	"Công nợ",
	"Ngày tạo",
	"Trạng thái",
}

type ExportService interface {
	ExportFilter(ctx context.Context, f *filter.AdvancedFilter, name string) ([]byte, string, error)
	ExportSegment(ctx context.Context, id string) ([]byte, string, error)
}

type ExportServiceImpl struct {
	Segments  SegmentProvider
	Customers CustomerSource
	History   HistoryRecorder
	Logger    *zap.Logger
}

func NewExportService(segments SegmentProvider, customers CustomerSource, history HistoryRecorder, logger *zap.Logger) ExportService {
	return &ExportServiceImpl{
		Segments:  segments,
		Customers: customers,
		History:   history,
		Logger:    logger,
	}
}

// ExportFilter evaluates an ad hoc filter and returns the matched customers
// as an xlsx workbook.
func (s *ExportServiceImpl) ExportFilter(ctx context.Context, f *filter.AdvancedFilter, name string) ([]byte, string, error) {
	result, err := s.Segments.Evaluate(ctx, f)
	if err != nil {
		return nil, "", err
	}

	if name == "" {
		name = "khach_hang"
	}
	data, filename, err := s.buildWorkbook(ctx, result.Customers, name)
	if err != nil {
		return nil, "", err
	}

	s.History.Record(ctx, "export_excel", result.TotalCount, name, f)
	return data, filename, nil
}

// ExportSegment evaluates a saved segment and returns its customers as an
// xlsx workbook named after the segment.
func (s *ExportServiceImpl) ExportSegment(ctx context.Context, id string) ([]byte, string, error) {
	seg, err := s.Segments.GetSegment(ctx, id)
	if err != nil {
		return nil, "", err
	}

	result, err := s.Segments.EvaluateSegment(ctx, id)
	if err != nil {
		return nil, "", err
	}

	data, filename, err := s.buildWorkbook(ctx, result.Customers, seg.Name)
	if err != nil {
		return nil, "", err
	}

	snapshot := seg.Filter
	s.History.Record(ctx, "export_excel", result.TotalCount, seg.Name, &snapshot)
	return data, filename, nil
}

func (s *ExportServiceImpl) buildWorkbook(ctx context.Context, customerIDs []string, name string) ([]byte, string, error) {
	records, err := s.Customers.AllRecords(ctx)
	if err != nil {
		return nil, "", err
	}
	byID := make(map[string]filter.CustomerRecord, len(records))
	for _, r := range records {
		byID[r.ID] = r
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Khách hàng"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, "", err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	for i, col := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, col)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	rowIdx := 2
	for _, id := range customerIDs {
		record, ok := byID[id]
		if !ok {
			continue
		}
		values := []interface{}{
			record.ID,
			record.Name,
			record.Group,
			record.Phone,
			record.Email,
			record.Address,
			record.DeliveryArea,
			record.TotalSpent,
			record.LoyaltyPoints,
			record.TotalDebt,
			record.CreatedDate.Format("2006-01-02 15:04:05"),
			record.Status,
		}
		for colIdx, val := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx)
			f.SetCellValue(sheetName, cell, val)
		}
		rowIdx++
	}

	for i := range columns {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, col, col, 18)
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("%s_%s.xlsx", sanitizeFilename(name), time.Now().Format("20060102_150405"))
	s.Logger.Info("exported customers",
		zap.String("name", name),
		zap.Int("rows", rowIdx-2),
		zap.String("filename", filename))

	return buffer.Bytes(), filename, nil
}

func sanitizeFilename(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r == ' ':
			out = append(out, '_')
		case r == '/' || r == '\\' || r == ':' || r == '*' || r == '?' || r == '"' || r == '<' || r == '>' || r == '|':
			// skip
		default:
			out = append(out, r)
		}
	}
	if len(out) == 0 {
		return "export"
	}
	return string(out)
}
