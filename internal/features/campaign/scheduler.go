package campaign

import (
	"context"
	"sync"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler runs active campaigns with a cron schedule. Entries are keyed by
// campaign ID so an update can re-register cleanly.
type Scheduler struct {
	repo    CampaignRepository
	service CampaignService
	logger  *zap.Logger

	cron    *cron.Cron
	entries map[string]cron.EntryID
	mu      sync.Mutex
}

func NewScheduler(repo CampaignRepository, service CampaignService, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		repo:    repo,
		service: service,
		logger:  logger,
		cron:    cron.New(),
		entries: make(map[string]cron.EntryID),
	}
}

// Start loads every active scheduled campaign and begins dispatching.
func (s *Scheduler) Start(ctx context.Context) error {
	campaigns, err := s.repo.FindActiveScheduled(ctx)
	if err != nil {
		return err
	}
	for i := range campaigns {
		if err := s.Register(&campaigns[i]); err != nil {
			s.logger.Warn("failed to register campaign",
				zap.String("campaign", campaigns[i].ID.Hex()), zap.Error(err))
		}
	}
	s.cron.Start()
	s.logger.Info("campaign scheduler started", zap.Int("campaigns", len(campaigns)))
	return nil
}

func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *Scheduler) Register(campaign *Campaign) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := campaign.ID.Hex()
	if entryID, exists := s.entries[id]; exists {
		s.cron.Remove(entryID)
		delete(s.entries, id)
	}

	entryID, err := s.cron.AddFunc(campaign.Schedule, func() {
		ctx := context.Background()
		// Re-read so a deactivated campaign stops firing without a restart.
		latest, err := s.repo.Get(ctx, id)
		if err != nil || !latest.Active {
			return
		}
		if _, err := s.service.RunCampaign(ctx, id); err != nil {
			s.logger.Error("scheduled campaign run failed", zap.String("campaign", id), zap.Error(err))
		}
	})
	if err != nil {
		return err
	}
	s.entries[id] = entryID
	return nil
}

func (s *Scheduler) Unregister(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entryID, exists := s.entries[id]; exists {
		s.cron.Remove(entryID)
		delete(s.entries, id)
	}
}
