package snapshot

import (
	"context"

	"github.com/robfig/cron/v3"

	"stock-sentiment/internal/interfaces"
	"stock-sentiment/internal/logger"
)

// Scheduler rewrites the snapshot file on a cron schedule
type Scheduler struct {
	refresher interfaces.Refresher
	path      string
	opts      []Option
	cron      *cron.Cron
}

// NewScheduler creates a scheduler that writes to path
func NewScheduler(refresher interfaces.Refresher, path string, opts ...Option) *Scheduler {
	return &Scheduler{
		refresher: refresher,
		path:      path,
		opts:      opts,
		cron:      cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
	}
}

// Start registers schedule, a standard five-field cron expression, and
// begins running.
func (s *Scheduler) Start(schedule string) error {
	if _, err := s.cron.AddFunc(schedule, s.RunNow); err != nil {
		return err
	}
	s.cron.Start()
	logger.Info(context.Background(), "Snapshot scheduler started", "schedule", schedule, "path", s.path)
	return nil
}

// Stop halts the schedule and waits for a running snapshot to finish
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	logger.Info(context.Background(), "Snapshot scheduler stopped")
}

// RunNow writes one snapshot synchronously
func (s *Scheduler) RunNow() {
	_, _ = BuildAndWrite(context.Background(), s.refresher, s.path, s.opts...)
}
