package action_history

import (
	"context"
	"time"

	"go-marketing/pkg/filter"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EventPublisher pushes history events to connected UI clients. Implemented
// by the websocket hub; nil disables publishing.
type EventPublisher interface {
	Publish(event string, payload interface{})
}

type ActionHistoryService interface {
	List(ctx context.Context) ([]ActionHistoryItem, error)
	Append(ctx context.Context, actionType ActionType, customerCount int, filterName string, snapshot *filter.AdvancedFilter, details string) (*ActionHistoryItem, error)
	Clear(ctx context.Context) error
	Record(ctx context.Context, actionType string, customerCount int, filterName string, snapshot *filter.AdvancedFilter)
}

type ActionHistoryServiceImpl struct {
	Store     ActionHistoryStore
	Publisher EventPublisher
	Logger    *zap.Logger
}

func NewActionHistoryService(store ActionHistoryStore, publisher EventPublisher, logger *zap.Logger) ActionHistoryService {
	return &ActionHistoryServiceImpl{
		Store:     store,
		Publisher: publisher,
		Logger:    logger,
	}
}

func (s *ActionHistoryServiceImpl) List(ctx context.Context) ([]ActionHistoryItem, error) {
	return s.Store.Load(ctx)
}

// Append prepends the new record and trims the log to MaxEntries, evicting
// the oldest entries by insertion order.
func (s *ActionHistoryServiceImpl) Append(ctx context.Context, actionType ActionType, customerCount int, filterName string, snapshot *filter.AdvancedFilter, details string) (*ActionHistoryItem, error) {
	items, err := s.Store.Load(ctx)
	if err != nil {
		return nil, err
	}

	item := ActionHistoryItem{
		ID:             uuid.NewString(),
		Type:           actionType,
		CustomerCount:  customerCount,
		FilterName:     filterName,
		FilterSnapshot: snapshot,
		Details:        details,
		CreatedAt:      time.Now(),
	}

	items = append([]ActionHistoryItem{item}, items...)
	if len(items) > MaxEntries {
		items = items[:MaxEntries]
	}

	if err := s.Store.Save(ctx, items); err != nil {
		return nil, err
	}

	if s.Publisher != nil {
		s.Publisher.Publish("action_recorded", item)
	}
	return &item, nil
}

func (s *ActionHistoryServiceImpl) Clear(ctx context.Context) error {
	return s.Store.Clear(ctx)
}

// Record satisfies the HistoryRecorder interfaces of the segment, export and
// campaign features; failures are logged, never propagated to the action
// that triggered the record.
func (s *ActionHistoryServiceImpl) Record(ctx context.Context, actionType string, customerCount int, filterName string, snapshot *filter.AdvancedFilter) {
	if _, err := s.Append(ctx, ActionType(actionType), customerCount, filterName, snapshot, ""); err != nil && s.Logger != nil {
		s.Logger.Error("failed to record action history", zap.String("type", actionType), zap.Error(err))
	}
}
