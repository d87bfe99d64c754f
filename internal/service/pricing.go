package service

import (
	"context"
	"time"

	"ombrello-backend/internal/domain"
	"ombrello-backend/internal/logger"
	"ombrello-backend/internal/utils"
)

// WeatherSource is satisfied by weather.Cache.
type WeatherSource interface {
	Get(ctx context.Context, lat, lng float64) (domain.WeatherObservation, error)
}

type PricingOptions struct {
	DefaultLat float64
	DefaultLng float64
	Location   *time.Location
	ValidFor   time.Duration
}

type pricingService struct {
	weather WeatherSource
	opts    PricingOptions
	now     Clock
}

func NewPricingService(weather WeatherSource, opts PricingOptions) PricingService {
	if opts.ValidFor <= 0 {
		opts.ValidFor = 10 * time.Minute
	}
	return &pricingService{weather: weather, opts: opts, now: utcNow}
}

func (s *pricingService) Quote(ctx context.Context, lat, lng *float64) (*domain.PricingResult, error) {
	la, ln := s.opts.DefaultLat, s.opts.DefaultLng
	if lat != nil {
		la = *lat
	}
	if lng != nil {
		ln = *lng
	}
	// Written so NaN fails the check.
	if !(la >= -90 && la <= 90 && ln >= -180 && ln <= 180) {
		return nil, domain.InvalidInput("lat must be within [-90, 90] and lng within [-180, 180]")
	}

	obs, err := s.weather.Get(ctx, la, ln)
	if err != nil {
		logger.WarnContext(ctx, "Weather lookup failed", "lat", la, "lng", ln, "error", err)
		return nil, domain.Unavailable("Weather service unavailable", err)
	}

	now := s.now()
	return &domain.PricingResult{
		PriceQuote: utils.ComputePrice(obs, now, s.opts.Location),
		Lat:        la,
		Lng:        ln,
		Weather:    obs,
		ValidUntil: now.Add(s.opts.ValidFor),
	}, nil
}
