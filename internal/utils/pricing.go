package utils

import (
	"math"
	"time"

	"ombrello-backend/internal/domain"
)

const (
	PriceCurrency = "LKR"
	BasePrice     = 200.0

	minMultiplier = 0.7
	maxMultiplier = 1.6
	priceStep     = 10.0
)

type band struct {
	threshold float64
	factor    float64
	reason    string
}

// Highest threshold first; only the first match applies within a list.
var (
	precipProbBands = []band{
		{80, 1.30, "pp>=80%"},
		{60, 1.20, "pp>=60%"},
		{40, 1.10, "pp>=40%"},
	}
	rainBands = []band{
		{5, 1.20, "rain>=5mm"},
		{2, 1.10, "rain>=2mm"},
	}
)

const (
	peakFactor = 1.05
	windLimit  = 45.0
	windFactor = 0.95
)

// ComputePrice maps a weather observation to an umbrella price. The local hour
// for the peak-hours rule is taken in loc; nil means UTC.
func ComputePrice(w domain.WeatherObservation, now time.Time, loc *time.Location) domain.PriceQuote {
	if loc == nil {
		loc = time.UTC
	}

	m := 1.0
	reasons := map[string]float64{}

	apply := func(value float64, bands []band) {
		for _, b := range bands {
			if value >= b.threshold {
				m *= b.factor
				reasons[b.reason] = round2(b.factor - 1)
				return
			}
		}
	}
	apply(w.PrecipProb, precipProbBands)
	apply(w.PrecipMM, rainBands)

	if IsPeakHour(now.In(loc).Hour()) {
		m *= peakFactor
		reasons["peak_hours"] = round2(peakFactor - 1)
	}

	if w.WindKMH >= windLimit {
		m *= windFactor
		reasons["wind>=45kmh"] = round2(windFactor - 1)
	}

	m = math.Min(math.Max(m, minMultiplier), maxMultiplier)

	return domain.PriceQuote{
		Currency:   PriceCurrency,
		BasePrice:  BasePrice,
		Multiplier: round2(m),
		FinalPrice: math.Round(BasePrice*m/priceStep) * priceStep,
		Reasons:    reasons,
	}
}

// IsPeakHour reports whether hour falls in the morning (7-9) or evening (16-19) commute.
func IsPeakHour(hour int) bool {
	return (hour >= 7 && hour <= 9) || (hour >= 16 && hour <= 19)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
