package service

import (
	"context"
	"errors"
	"fmt"

	"climate-narrative-analyzer/internal/analyzer/config"
	"climate-narrative-analyzer/pkg/logger"

	"github.com/robfig/cron/v3"
)

// SchedulerService triggers the ingestion pipeline on the configured cron
// cadence.
type SchedulerService interface {
	Start(ctx context.Context) error
	Stop()
}

// NewSchedulerService creates a new SchedulerService.
func NewSchedulerService(cfg *config.Config, log *logger.Logger, pipeline PipelineService) SchedulerService {
	return &schedulerService{
		cfg:      cfg,
		logger:   log,
		pipeline: pipeline,
		cron:     cron.New(),
	}
}

type schedulerService struct {
	cfg      *config.Config
	logger   *logger.Logger
	pipeline PipelineService
	cron     *cron.Cron
}

// Start registers the pipeline job and starts the cron loop.
func (s *schedulerService) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.cfg.Scheduler.CronExpression, func() {
		s.logger.Info("Scheduled analysis triggered",
			logger.StringField("cron", s.cfg.Scheduler.CronExpression),
		)
		if _, err := s.pipeline.Run(ctx); err != nil {
			if errors.Is(err, ErrRunInProgress) {
				s.logger.Warn("Skipping scheduled run, previous run still active")
				return
			}
			s.logger.Error("Scheduled analysis run failed", logger.ErrorField(err))
		}
	})
	if err != nil {
		return fmt.Errorf("failed to register pipeline schedule: %w", err)
	}

	s.cron.Start()
	s.logger.Info("Scheduler started", logger.StringField("cron", s.cfg.Scheduler.CronExpression))
	return nil
}

// Stop halts the cron loop, waiting for a running job to finish.
func (s *schedulerService) Stop() {
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	s.logger.Info("Scheduler stopped")
}
