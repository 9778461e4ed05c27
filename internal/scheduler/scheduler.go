package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// SheetsSyncer pushes the record table to the spreadsheet.
type SheetsSyncer interface {
	SyncSheets(ctx context.Context) (int, error)
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron     *cron.Cron
	exporter SheetsSyncer
	schedule string
	logger   *zap.Logger
}

// NewScheduler creates a new scheduler instance. An empty schedule disables the export job.
func NewScheduler(schedule string, exporter SheetsSyncer, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	// Standard 5-field cron expressions (min, hour, dom, month, dow).
	c := cron.New()

	return &Scheduler{
		cron:     c,
		exporter: exporter,
		schedule: schedule,
		logger:   logger,
	}
}

// Start registers the export job and starts the scheduler.
func (s *Scheduler) Start() error {
	if s.schedule == "" {
		s.logger.Info("no export schedule configured, scheduler idle")
		return nil
	}

	s.logger.Info("starting scheduler", zap.String("schedule", s.schedule))
	if _, err := s.cron.AddFunc(s.schedule, s.exportSheets); err != nil {
		return err
	}

	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) exportSheets() {
	s.logger.Info("running scheduled sheets export")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	n, err := s.exporter.SyncSheets(ctx)
	if err != nil {
		s.logger.Error("scheduled sheets export failed", zap.Error(err))
		return
	}
	s.logger.Info("scheduled sheets export finished", zap.Int("records", n))
}
