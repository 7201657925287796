package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Default maintenance schedules, in cron syntax.
const (
	DefaultEvictSchedule   = "*/15 * * * *"
	DefaultRefreshSchedule = "0 * * * *"
	DefaultSessionTTL      = 2 * time.Hour
)

// SessionEvictor drops per-chat engines that have been idle.
type SessionEvictor interface {
	EvictIdle(cutoff time.Time) int
	Len() int
}

// PoolRefresher reloads a cached question pool.
type PoolRefresher interface {
	Refresh(ctx context.Context, language string) error
}

// MaintenanceConfig configures the background jobs. An empty schedule disables a job.
type MaintenanceConfig struct {
	EvictSchedule   string
	SessionTTL      time.Duration
	RefreshSchedule string
	Languages       []string // pools refreshed by the refresh job
}

// MaintenanceService runs periodic housekeeping on a cron scheduler.
type MaintenanceService struct {
	sessions SessionEvictor
	pools    PoolRefresher
	cfg      MaintenanceConfig
	logger   *zap.Logger
	now      func() time.Time
}

// NewMaintenanceService creates the service. pools may be nil when no cache is configured.
func NewMaintenanceService(sessions SessionEvictor, pools PoolRefresher, cfg MaintenanceConfig, logger *zap.Logger) *MaintenanceService {
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = DefaultSessionTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MaintenanceService{
		sessions: sessions,
		pools:    pools,
		cfg:      cfg,
		logger:   logger,
		now:      time.Now,
	}
}

// Start registers the jobs and blocks until ctx is canceled.
func (s *MaintenanceService) Start(ctx context.Context) error {
	c := cron.New(cron.WithLocation(time.UTC))

	if s.cfg.EvictSchedule != "" {
		if _, err := c.AddFunc(s.cfg.EvictSchedule, func() { s.evictIdle() }); err != nil {
			return fmt.Errorf("add evict job: %w", err)
		}
	}
	if s.cfg.RefreshSchedule != "" && s.pools != nil {
		if _, err := c.AddFunc(s.cfg.RefreshSchedule, func() { s.refreshPools(ctx) }); err != nil {
			return fmt.Errorf("add refresh job: %w", err)
		}
	}

	c.Start()
	s.logger.Info("maintenance scheduler started",
		zap.String("evict_schedule", s.cfg.EvictSchedule),
		zap.String("refresh_schedule", s.cfg.RefreshSchedule),
	)

	<-ctx.Done()

	<-c.Stop().Done()
	s.logger.Info("maintenance scheduler stopped")
	return nil
}

// evictIdle drops engines unused for longer than SessionTTL.
func (s *MaintenanceService) evictIdle() int {
	cutoff := s.now().Add(-s.cfg.SessionTTL)
	removed := s.sessions.EvictIdle(cutoff)
	if removed > 0 {
		s.logger.Info("idle quiz sessions evicted",
			zap.Int("removed", removed),
			zap.Int("active", s.sessions.Len()),
		)
	}
	return removed
}

// refreshPools reloads every configured language concurrently and returns how many succeeded.
func (s *MaintenanceService) refreshPools(ctx context.Context) int {
	const maxConcurrent = 4
	sem := make(chan struct{}, maxConcurrent)
	var wg sync.WaitGroup
	var mu sync.Mutex
	refreshed := 0

	for _, lang := range s.cfg.Languages {
		lang := lang
		wg.Add(1)
		sem <- struct{}{} // Acquire

		go func() {
			defer wg.Done()
			defer func() { <-sem }() // Release

			if err := s.pools.Refresh(ctx, lang); err != nil {
				s.logger.Warn("failed to refresh question pool",
					zap.String("language", lang),
					zap.Error(err),
				)
				return
			}

			mu.Lock()
			refreshed++
			mu.Unlock()
		}()
	}

	wg.Wait()

	s.logger.Debug("question pools refreshed",
		zap.Int("refreshed", refreshed),
		zap.Int("languages", len(s.cfg.Languages)),
	)
	return refreshed
}
