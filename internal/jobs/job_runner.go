package jobs

import (
	"context"
	"time"

	"ombrello-backend/internal/config"
	"ombrello-backend/internal/logger"
	"ombrello-backend/internal/repository"
)

const jobTimeout = 5 * time.Minute

// CachePruner is satisfied by weather.Cache.
type CachePruner interface {
	Prune(now time.Time) int
	Len() int
}

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	tx      repository.TxRunner
	weather CachePruner
	config  *config.Config
	now     func() time.Time
}

// NewJobRunner creates a job runner. weather may be nil when the process
// holds no cache, as in the standalone cronjob binary.
func NewJobRunner(tx repository.TxRunner, weather CachePruner, cfg *config.Config) *JobRunner {
	return &JobRunner{
		tx:      tx,
		weather: weather,
		config:  cfg,
		now:     time.Now,
	}
}

// Config returns the configuration the runner was built with.
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func(ctx context.Context)) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	start := time.Now()
	logger.Info("Starting job", "job", jobName)
	jobFunc(ctx)
	logger.Info("Job completed", "job", jobName, "duration_ms", time.Since(start).Milliseconds())
}

// RunAllNightlyJobs runs all nightly jobs (for manual execution)
func (jr *JobRunner) RunAllNightlyJobs() {
	jr.ReconcileUmbrellaStatus()
}
