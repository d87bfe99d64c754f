package scheduler

import (
	"time"

	"ombrello-backend/internal/jobs"
	"ombrello-backend/internal/logger"

	"github.com/robfig/cron/v3"
)

// Scheduler manages cron job scheduling
type Scheduler struct {
	cron *cron.Cron
	jobs *jobs.JobRunner
}

// NewScheduler creates a new scheduler with the provided job runner. When
// withCache is false the weather cache job is not registered.
func NewScheduler(jobRunner *jobs.JobRunner, withCache bool) (*Scheduler, error) {
	// Create cron with UTC timezone and seconds precision
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithSeconds(),
	)

	s := &Scheduler{
		cron: c,
		jobs: jobRunner,
	}

	if err := s.registerJobs(withCache); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scheduler) registerJobs(withCache bool) error {
	cfg := s.jobs.Config().Scheduler

	// Nightly
	if _, err := s.cron.AddFunc(cfg.ReconcileUmbrellas, s.jobs.ReconcileUmbrellaStatus); err != nil {
		logger.Error("Failed to register ReconcileUmbrellaStatus job", "error", err)
		return err
	}

	// Every few minutes
	if withCache {
		if _, err := s.cron.AddFunc(cfg.PruneWeatherCache, s.jobs.PruneWeatherCache); err != nil {
			logger.Error("Failed to register PruneWeatherCache job", "error", err)
			return err
		}
	}

	logger.Info("All cron jobs registered successfully", "count", len(s.cron.Entries()))
	return nil
}

// Start begins the cron scheduler
func (s *Scheduler) Start() {
	logger.Info("Starting cron scheduler...")
	s.cron.Start()
	logger.Info("Cron scheduler started successfully")
}

// Stop gracefully stops the cron scheduler
func (s *Scheduler) Stop() {
	logger.Info("Stopping cron scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("Cron scheduler stopped")
}

// EntryCount returns the number of registered jobs.
func (s *Scheduler) EntryCount() int {
	return len(s.cron.Entries())
}
