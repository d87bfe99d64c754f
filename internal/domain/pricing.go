package domain

import "time"

// WeatherObservation is the subset of current conditions pricing depends on.
type WeatherObservation struct {
	PrecipProb float64 `json:"precip_prob"` // %
	PrecipMM   float64 `json:"precip_mm"`   // mm
	WindKMH    float64 `json:"wind_kmh"`    // km/h
}

type PriceQuote struct {
	Currency   string             `json:"currency"`
	BasePrice  float64            `json:"base_price"`
	Multiplier float64            `json:"multiplier"`
	FinalPrice float64            `json:"final_price"`
	Reasons    map[string]float64 `json:"reasons"`
}

// PricingResult is a quote for a location together with the inputs that produced it.
type PricingResult struct {
	PriceQuote
	Lat        float64            `json:"lat"`
	Lng        float64            `json:"lng"`
	Weather    WeatherObservation `json:"weather"`
	ValidUntil time.Time          `json:"valid_until"`
}
