package segment

import (
	"context"
	"errors"

	"go-marketing/pkg/filter"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// CustomerSource, SaleSource and ProductSource supply the fully
// materialized populations the evaluator reads. The concrete
// implementations are the customer/sale/product services, adapted in the
// fx wiring.
type CustomerSource interface {
	AllRecords(ctx context.Context) ([]filter.CustomerRecord, error)
}

type SaleSource interface {
	AllRecords(ctx context.Context) ([]filter.SaleRecord, error)
}

type ProductSource interface {
	AllRecords(ctx context.Context) ([]filter.ProductRecord, error)
}

// HistoryRecorder receives the save_filter audit entries. Implemented by the
// action_history service.
type HistoryRecorder interface {
	Record(ctx context.Context, actionType string, customerCount int, filterName string, snapshot *filter.AdvancedFilter)
}

type SegmentService interface {
	ListSegments(ctx context.Context) ([]SavedSegment, error)
	GetSegment(ctx context.Context, id string) (*SavedSegment, error)
	SaveSegment(ctx context.Context, name, description string, f filter.AdvancedFilter, customerCount int, createdBy string) (*SavedSegment, error)
	UpdateSegment(ctx context.Context, id string, update SegmentUpdate) (bool, error)
	DeleteSegment(ctx context.Context, id string) (bool, error)
	RenameSegment(ctx context.Context, id, name string) (bool, error)
	Evaluate(ctx context.Context, f *filter.AdvancedFilter) (*filter.Result, error)
	EvaluateSegment(ctx context.Context, id string) (*filter.Result, error)
}

type SegmentServiceImpl struct {
	Repo      SegmentRepository
	Evaluator *filter.Evaluator
	Customers CustomerSource
	Sales     SaleSource
	Products  ProductSource
	History   HistoryRecorder
	Logger    *zap.Logger
}

func NewSegmentService(
	repo SegmentRepository,
	evaluator *filter.Evaluator,
	customers CustomerSource,
	sales SaleSource,
	products ProductSource,
	history HistoryRecorder,
	logger *zap.Logger,
) SegmentService {
	return &SegmentServiceImpl{
		Repo:      repo,
		Evaluator: evaluator,
		Customers: customers,
		Sales:     sales,
		Products:  products,
		History:   history,
		Logger:    logger,
	}
}

func (s *SegmentServiceImpl) ListSegments(ctx context.Context) ([]SavedSegment, error) {
	return s.Repo.FindAll(ctx)
}

func (s *SegmentServiceImpl) GetSegment(ctx context.Context, id string) (*SavedSegment, error) {
	return s.Repo.Get(ctx, id)
}

func (s *SegmentServiceImpl) SaveSegment(ctx context.Context, name, description string, f filter.AdvancedFilter, customerCount int, createdBy string) (*SavedSegment, error) {
	if name == "" {
		return nil, errors.New("segment name is required")
	}

	segment := &SavedSegment{
		Name:          name,
		Description:   description,
		Filter:        f,
		CustomerCount: customerCount,
		CreatedBy:     createdBy,
	}
	if err := s.Repo.Create(ctx, segment); err != nil {
		return nil, err
	}

	if s.History != nil {
		s.History.Record(ctx, "save_filter", customerCount, name, &f)
	}
	return segment, nil
}

func (s *SegmentServiceImpl) UpdateSegment(ctx context.Context, id string, update SegmentUpdate) (bool, error) {
	set := bson.M{}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.Filter != nil {
		set["filter"] = *update.Filter
	}
	if update.CustomerCount != nil {
		set["customer_count"] = *update.CustomerCount
	}
	if update.Tags != nil {
		set["tags"] = update.Tags
	}
	if len(set) == 0 {
		return false, errors.New("no fields to update")
	}
	return s.Repo.Update(ctx, id, set)
}

func (s *SegmentServiceImpl) DeleteSegment(ctx context.Context, id string) (bool, error) {
	return s.Repo.Delete(ctx, id)
}

func (s *SegmentServiceImpl) RenameSegment(ctx context.Context, id, name string) (bool, error) {
	if name == "" {
		return false, errors.New("segment name is required")
	}
	return s.Repo.Update(ctx, id, bson.M{"name": name})
}

// Evaluate materializes the populations and runs the filter against them.
func (s *SegmentServiceImpl) Evaluate(ctx context.Context, f *filter.AdvancedFilter) (*filter.Result, error) {
	ds, err := s.loadDataSource(ctx)
	if err != nil {
		return nil, err
	}

	result := s.Evaluator.Evaluate(f, ds)
	if s.Logger != nil {
		s.Logger.Info("segment evaluated",
			zap.Int("population", len(ds.Customers)),
			zap.Int("matched", result.TotalCount),
			zap.Int64("elapsed_ms", result.ExecutionTimeMs),
		)
	}
	return result, nil
}

func (s *SegmentServiceImpl) EvaluateSegment(ctx context.Context, id string) (*filter.Result, error) {
	segment, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.Evaluate(ctx, &segment.Filter)
}

func (s *SegmentServiceImpl) loadDataSource(ctx context.Context) (*filter.DataSource, error) {
	customers, err := s.Customers.AllRecords(ctx)
	if err != nil {
		return nil, err
	}
	sales, err := s.Sales.AllRecords(ctx)
	if err != nil {
		return nil, err
	}
	products, err := s.Products.AllRecords(ctx)
	if err != nil {
		return nil, err
	}
	return &filter.DataSource{
		Customers: customers,
		Sales:     sales,
		Products:  products,
	}, nil
}
