package jobs

import (
	"context"

	"ombrello-backend/internal/logger"
	"ombrello-backend/internal/metrics"
	"ombrello-backend/internal/repository"
)

// ReconcileUmbrellaStatus repairs umbrella statuses that drifted from the
// rental ledger: rented umbrellas without an open rental are released and
// umbrellas with an open rental are marked rented.
func (jr *JobRunner) ReconcileUmbrellaStatus() {
	jr.runWithRecovery("ReconcileUmbrellaStatus", func(ctx context.Context) {
		var released, claimed []string
		err := jr.tx.InTx(ctx, func(r repository.Repositories) error {
			var err error
			if released, err = r.Umbrellas.ReleaseOrphaned(ctx); err != nil {
				return err
			}
			claimed, err = r.Umbrellas.ClaimRented(ctx)
			return err
		})
		if err != nil {
			logger.Error("Failed to reconcile umbrella statuses", "error", err)
			return
		}

		metrics.ReconciledUmbrellasTotal.WithLabelValues("released").Add(float64(len(released)))
		metrics.ReconciledUmbrellasTotal.WithLabelValues("claimed").Add(float64(len(claimed)))
		logger.Info("Reconciled umbrella statuses", "released", len(released), "claimed", len(claimed))

		for _, code := range released {
			logger.Debug("Released orphaned umbrella", "code", code)
		}
		for _, code := range claimed {
			logger.Debug("Marked umbrella as rented", "code", code)
		}
	})
}

// PruneWeatherCache drops expired weather buckets.
func (jr *JobRunner) PruneWeatherCache() {
	jr.runWithRecovery("PruneWeatherCache", func(ctx context.Context) {
		if jr.weather == nil {
			return
		}
		removed := jr.weather.Prune(jr.now())
		metrics.WeatherCacheItems.Set(float64(jr.weather.Len()))
		logger.Info("Pruned weather cache", "removed", removed, "remaining", jr.weather.Len())
	})
}
