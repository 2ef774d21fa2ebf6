package campaign

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-marketing/internal/features/template"
	"go-marketing/pkg/filter"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// SegmentEvaluator resolves a saved segment to the matching customer IDs.
// Implemented by the segment service.
type SegmentEvaluator interface {
	EvaluateSegment(ctx context.Context, id string) (*filter.Result, error)
}

// CustomerSource supplies the customer records the campaign personalizes
// messages with.
type CustomerSource interface {
	AllRecords(ctx context.Context) ([]filter.CustomerRecord, error)
}

// TemplateProvider loads and renders message templates. Implemented by the
// template service.
type TemplateProvider interface {
	GetTemplate(ctx context.Context, id string) (*template.MessageTemplate, error)
	Render(content string, customer filter.CustomerRecord) string
}

// HistoryRecorder receives a send entry per campaign run. Implemented by the
// action_history service.
type HistoryRecorder interface {
	Record(ctx context.Context, actionType string, customerCount int, filterName string, snapshot *filter.AdvancedFilter)
}

// EventPublisher pushes run results to connected clients.
type EventPublisher interface {
	Publish(event string, payload interface{})
}

type CampaignService interface {
	CreateCampaign(ctx context.Context, campaign *Campaign) error
	GetCampaign(ctx context.Context, id string) (*Campaign, error)
	ListCampaigns(ctx context.Context) ([]Campaign, error)
	UpdateCampaign(ctx context.Context, campaign *Campaign) error
	DeleteCampaign(ctx context.Context, id string) error
	RunCampaign(ctx context.Context, id string) (*RunResult, error)
}

type CampaignServiceImpl struct {
	Repo      CampaignRepository
	Segments  SegmentEvaluator
	Customers CustomerSource
	Templates TemplateProvider
	Executor  ActionExecutor
	History   HistoryRecorder
	Events    EventPublisher
	Logger    *zap.Logger
}

func NewCampaignService(
	repo CampaignRepository,
	segments SegmentEvaluator,
	customers CustomerSource,
	templates TemplateProvider,
	executor ActionExecutor,
	history HistoryRecorder,
	events EventPublisher,
	logger *zap.Logger,
) CampaignService {
	return &CampaignServiceImpl{
		Repo:      repo,
		Segments:  segments,
		Customers: customers,
		Templates: templates,
		Executor:  executor,
		History:   history,
		Events:    events,
		Logger:    logger,
	}
}

func (s *CampaignServiceImpl) CreateCampaign(ctx context.Context, campaign *Campaign) error {
	if err := s.validate(campaign); err != nil {
		return err
	}
	if campaign.Status == "" {
		campaign.Status = StatusDraft
	}
	if campaign.Schedule != "" {
		schedule, _ := cron.ParseStandard(campaign.Schedule)
		nextRun := schedule.Next(time.Now())
		campaign.NextRunAt = &nextRun
		if campaign.Active {
			campaign.Status = StatusScheduled
		}
	}
	return s.Repo.Create(ctx, campaign)
}

func (s *CampaignServiceImpl) GetCampaign(ctx context.Context, id string) (*Campaign, error) {
	return s.Repo.Get(ctx, id)
}

func (s *CampaignServiceImpl) ListCampaigns(ctx context.Context) ([]Campaign, error) {
	return s.Repo.FindAll(ctx)
}

func (s *CampaignServiceImpl) UpdateCampaign(ctx context.Context, campaign *Campaign) error {
	if err := s.validate(campaign); err != nil {
		return err
	}
	if campaign.Schedule != "" {
		schedule, _ := cron.ParseStandard(campaign.Schedule)
		nextRun := schedule.Next(time.Now())
		campaign.NextRunAt = &nextRun
	}
	return s.Repo.Update(ctx, campaign)
}

func (s *CampaignServiceImpl) DeleteCampaign(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}

func (s *CampaignServiceImpl) validate(campaign *Campaign) error {
	if campaign.Name == "" {
		return errors.New("campaign name is required")
	}
	if campaign.SegmentID == "" {
		return errors.New("campaign segment is required")
	}
	if campaign.TemplateID == "" {
		return errors.New("campaign template is required")
	}
	switch campaign.Channel {
	case template.ChannelZalo, template.ChannelEmail, template.ChannelSMS:
	default:
		return fmt.Errorf("unsupported channel: %s", campaign.Channel)
	}
	if campaign.Schedule != "" {
		if _, err := cron.ParseStandard(campaign.Schedule); err != nil {
			return fmt.Errorf("invalid cron expression: %w", err)
		}
	}
	return nil
}

// RunCampaign evaluates the segment, renders the template per matched
// customer and pushes the message plus any extra actions through the
// executor. A per-customer failure does not abort the run.
func (s *CampaignServiceImpl) RunCampaign(ctx context.Context, id string) (*RunResult, error) {
	start := time.Now()

	campaign, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	tpl, err := s.Templates.GetTemplate(ctx, campaign.TemplateID)
	if err != nil {
		return nil, fmt.Errorf("failed to load template: %w", err)
	}

	evalResult, err := s.Segments.EvaluateSegment(ctx, campaign.SegmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate segment: %w", err)
	}

	records, err := s.Customers.AllRecords(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]filter.CustomerRecord, len(records))
	for _, r := range records {
		byID[r.ID] = r
	}

	actions := append([]CampaignAction{{Type: channelAction(campaign.Channel)}}, campaign.Actions...)

	result := &RunResult{CampaignID: id, Matched: len(evalResult.Customers)}
	for _, customerID := range evalResult.Customers {
		customer, ok := byID[customerID]
		if !ok {
			result.Failed++
			continue
		}
		message := s.Templates.Render(tpl.Content, customer)
		if err := s.Executor.ExecuteActions(ctx, actions, campaign, customer, message); err != nil {
			result.Failed++
			continue
		}
		result.Sent++
	}
	result.DurationMs = time.Since(start).Milliseconds()

	status := StatusCompleted
	if result.Sent == 0 && result.Failed > 0 {
		status = StatusFailed
	}

	var nextRun *time.Time
	if campaign.Schedule != "" {
		if schedule, err := cron.ParseStandard(campaign.Schedule); err == nil {
			n := schedule.Next(time.Now())
			nextRun = &n
		}
	}
	if err := s.Repo.RecordRun(ctx, id, result.Sent, start, nextRun, status); err != nil {
		s.Logger.Error("failed to record campaign run", zap.String("campaign", id), zap.Error(err))
	}

	s.History.Record(ctx, string(channelAction(campaign.Channel)), result.Sent, campaign.Name, nil)
	if s.Events != nil {
		s.Events.Publish("campaign_run", result)
	}

	s.Logger.Info("campaign run finished",
		zap.String("campaign", campaign.Name),
		zap.Int("matched", result.Matched),
		zap.Int("sent", result.Sent),
		zap.Int("failed", result.Failed),
		zap.Int64("duration_ms", result.DurationMs))

	return result, nil
}

func channelAction(channel template.Channel) ActionType {
	switch channel {
	case template.ChannelEmail:
		return ActionSendEmail
	case template.ChannelSMS:
		return ActionSendSMS
	default:
		return ActionSendZalo
	}
}
