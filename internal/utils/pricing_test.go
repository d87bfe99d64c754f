package utils

import (
	"math"
	"testing"
	"time"

	"ombrello-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

var colombo = time.FixedZone("Asia/Colombo", 5*3600+1800)

func at(hour int) time.Time {
	return time.Date(2025, 6, 1, hour, 30, 0, 0, colombo)
}

func TestComputePrice(t *testing.T) {
	t.Run("Heavy rain off-peak", func(t *testing.T) {
		q := ComputePrice(domain.WeatherObservation{PrecipProb: 85, PrecipMM: 6, WindKMH: 10}, at(12), colombo)
		assert.Equal(t, "LKR", q.Currency)
		assert.Equal(t, 200.0, q.BasePrice)
		assert.Equal(t, 1.56, q.Multiplier)
		assert.Equal(t, 310.0, q.FinalPrice)
		assert.Equal(t, map[string]float64{"pp>=80%": 0.3, "rain>=5mm": 0.2}, q.Reasons)
	})

	t.Run("Dry off-peak", func(t *testing.T) {
		q := ComputePrice(domain.WeatherObservation{}, at(12), colombo)
		assert.Equal(t, 1.0, q.Multiplier)
		assert.Equal(t, 200.0, q.FinalPrice)
		assert.Empty(t, q.Reasons)
	})

	t.Run("Only one probability band applies", func(t *testing.T) {
		q := ComputePrice(domain.WeatherObservation{PrecipProb: 65}, at(12), colombo)
		assert.Equal(t, 1.2, q.Multiplier)
		assert.Contains(t, q.Reasons, "pp>=60%")
		assert.NotContains(t, q.Reasons, "pp>=40%")
	})

	t.Run("Light rain band", func(t *testing.T) {
		q := ComputePrice(domain.WeatherObservation{PrecipProb: 40, PrecipMM: 2}, at(12), colombo)
		assert.Equal(t, 1.21, q.Multiplier)
		assert.Equal(t, 240.0, q.FinalPrice)
	})

	t.Run("Peak hours use the configured zone", func(t *testing.T) {
		// 02:00 UTC is 07:30 in Colombo.
		now := time.Date(2025, 6, 1, 2, 0, 0, 0, time.UTC)
		q := ComputePrice(domain.WeatherObservation{}, now, colombo)
		assert.Equal(t, 1.05, q.Multiplier)
		assert.Equal(t, 0.05, q.Reasons["peak_hours"])

		q = ComputePrice(domain.WeatherObservation{}, now, time.UTC)
		assert.NotContains(t, q.Reasons, "peak_hours")
	})

	t.Run("Wind discount", func(t *testing.T) {
		q := ComputePrice(domain.WeatherObservation{WindKMH: 45}, at(12), colombo)
		assert.Equal(t, 0.95, q.Multiplier)
		assert.Equal(t, -0.05, q.Reasons["wind>=45kmh"])
		assert.Equal(t, 190.0, q.FinalPrice)
	})

	t.Run("Clamped at the top", func(t *testing.T) {
		q := ComputePrice(domain.WeatherObservation{PrecipProb: 95, PrecipMM: 20}, at(8), colombo)
		assert.Equal(t, 1.6, q.Multiplier)
		assert.Equal(t, 320.0, q.FinalPrice)
	})

	t.Run("Deterministic", func(t *testing.T) {
		w := domain.WeatherObservation{PrecipProb: 72, PrecipMM: 3.4, WindKMH: 50}
		assert.Equal(t, ComputePrice(w, at(17), colombo), ComputePrice(w, at(17), colombo))
	})
}

func TestComputePrice_Bounds(t *testing.T) {
	for _, pp := range []float64{0, 39.9, 40, 59.9, 60, 79.9, 80, 100} {
		for _, mm := range []float64{0, 1.9, 2, 4.9, 5, 50} {
			for _, wind := range []float64{0, 44.9, 45, 120} {
				for _, hour := range []int{0, 7, 9, 10, 16, 19, 23} {
					q := ComputePrice(domain.WeatherObservation{PrecipProb: pp, PrecipMM: mm, WindKMH: wind}, at(hour), colombo)
					assert.GreaterOrEqual(t, q.Multiplier, 0.7)
					assert.LessOrEqual(t, q.Multiplier, 1.6)
					assert.Equal(t, 0.0, math.Mod(q.FinalPrice, 10))
				}
			}
		}
	}
}

func TestIsPeakHour(t *testing.T) {
	peak := map[int]bool{7: true, 8: true, 9: true, 16: true, 17: true, 18: true, 19: true}
	for h := 0; h < 24; h++ {
		assert.Equal(t, peak[h], IsPeakHour(h), "hour %d", h)
	}
}
