package scheduler

import (
	"testing"

	"ombrello-backend/internal/config"
	"ombrello-backend/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(reconcile, prune string) *config.Config {
	return &config.Config{Scheduler: config.SchedulerConfig{
		ReconcileUmbrellas: reconcile,
		PruneWeatherCache:  prune,
	}}
}

func TestNewScheduler(t *testing.T) {
	t.Run("Registers All Jobs", func(t *testing.T) {
		jr := jobs.NewJobRunner(nil, nil, testConfig("0 0 2 * * *", "0 */15 * * * *"))
		s, err := NewScheduler(jr, true)
		require.NoError(t, err)
		assert.Equal(t, 2, s.EntryCount())
	})

	t.Run("Without Cache", func(t *testing.T) {
		jr := jobs.NewJobRunner(nil, nil, testConfig("0 0 2 * * *", "0 */15 * * * *"))
		s, err := NewScheduler(jr, false)
		require.NoError(t, err)
		assert.Equal(t, 1, s.EntryCount())
	})

	t.Run("Invalid Spec", func(t *testing.T) {
		jr := jobs.NewJobRunner(nil, nil, testConfig("every night", "0 */15 * * * *"))
		_, err := NewScheduler(jr, true)
		assert.Error(t, err)
	})

	t.Run("Start And Stop", func(t *testing.T) {
		jr := jobs.NewJobRunner(nil, nil, testConfig("0 0 2 * * *", "0 */15 * * * *"))
		s, err := NewScheduler(jr, true)
		require.NoError(t, err)
		s.Start()
		s.Stop()
	})
}
