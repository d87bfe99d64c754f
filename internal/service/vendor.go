package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ombrello-backend/internal/domain"
	"ombrello-backend/internal/logger"
	"ombrello-backend/internal/repository"
)

const (
	defaultLocationsLimit = 200
	maxLocationsLimit     = 1000
	defaultRecentLimit    = 50
	maxRecentLimit        = 500
	defaultEarningsWindow = 30 * 24 * time.Hour
)

type vendorService struct {
	repos      repository.Repositories
	earningsTZ string
	now        Clock
}

// NewVendorService builds the vendor profile and earnings service. earningsTZ is
// used when a summary request names no timezone.
func NewVendorService(repos repository.Repositories, earningsTZ string) VendorService {
	if earningsTZ == "" {
		earningsTZ = "UTC"
	}
	return &vendorService{repos: repos, earningsTZ: earningsTZ, now: utcNow}
}

func (s *vendorService) GetProfile(ctx context.Context, vendorID int64) (*domain.Vendor, error) {
	v, err := s.repos.Vendors.GetByID(ctx, vendorID)
	if err != nil {
		return nil, notFoundOr(err, "Vendor not found")
	}
	return v, nil
}

func (s *vendorService) UpdateLocation(ctx context.Context, vendorID int64, lat, lng float64, address *string) (*domain.Vendor, error) {
	if lat < -90 || lat > 90 {
		return nil, domain.InvalidInput("lat must be within [-90, 90]")
	}
	if lng < -180 || lng > 180 {
		return nil, domain.InvalidInput("lng must be within [-180, 180]")
	}
	if address != nil {
		trimmed := strings.TrimSpace(*address)
		if trimmed == "" {
			address = nil
		} else {
			address = &trimmed
		}
	}

	v, err := s.repos.Vendors.UpdateLocation(ctx, vendorID, lat, lng, address)
	if err != nil {
		return nil, notFoundOr(err, "Vendor not found")
	}
	logger.InfoContext(ctx, "Vendor location updated", "vendorID", vendorID, "lat", lat, "lng", lng)
	return v, nil
}

func (s *vendorService) ListLocations(ctx context.Context, limit int) ([]domain.Vendor, error) {
	if limit == 0 {
		limit = defaultLocationsLimit
	}
	if limit < 1 || limit > maxLocationsLimit {
		return nil, domain.InvalidInput(fmt.Sprintf("limit must be between 1 and %d", maxLocationsLimit))
	}
	vendors, err := s.repos.Vendors.ListWithLocation(ctx, limit)
	if err != nil {
		return nil, asInternal(err)
	}
	return vendors, nil
}

// EarningsSummary totals fees over the inclusive range [from, to] keyed by the
// rental's effective time, returned_at when set and rented_at otherwise.
func (s *vendorService) EarningsSummary(ctx context.Context, vendorID int64, from, to *time.Time, tz string) (*domain.EarningsSummary, error) {
	logger.EnterMethod(ctx, "vendorService.EarningsSummary", "vendorID", vendorID)

	tz = strings.TrimSpace(tz)
	if tz == "" {
		tz = s.earningsTZ
	}
	if _, err := time.LoadLocation(tz); err != nil {
		return nil, domain.InvalidInput(fmt.Sprintf("unknown timezone %q", tz))
	}

	end := s.now()
	if to != nil {
		end = to.UTC()
	}
	start := end.Add(-defaultEarningsWindow)
	if from != nil {
		start = from.UTC()
	}
	if end.Before(start) {
		return nil, domain.InvalidInput("to must be on or after from")
	}

	total, count, err := s.repos.Rentals.VendorEarningsTotals(ctx, vendorID, start, end)
	if err != nil {
		logger.ExitMethodWithError(ctx, "vendorService.EarningsSummary", err)
		return nil, asInternal(err)
	}
	daily, err := s.repos.Rentals.VendorEarningsDaily(ctx, vendorID, start, end, tz)
	if err != nil {
		logger.ExitMethodWithError(ctx, "vendorService.EarningsSummary", err)
		return nil, asInternal(err)
	}
	for i := range daily {
		daily[i].VendorShare, daily[i].AdminShare = domain.SplitFee(daily[i].TotalFee)
	}

	summary := &domain.EarningsSummary{
		Range:    domain.EarningsRange{From: start, To: end, TZ: tz},
		TotalFee: total,
		Count:    count,
		Daily:    daily,
	}
	summary.VendorShare, summary.AdminShare = domain.SplitFee(total)

	logger.ExitMethod(ctx, "vendorService.EarningsSummary", "count", count, "days", len(daily))
	return summary, nil
}

func (s *vendorService) RecentEarnings(ctx context.Context, vendorID int64, limit int) ([]domain.RecentEarning, error) {
	if limit == 0 {
		limit = defaultRecentLimit
	}
	if limit < 1 || limit > maxRecentLimit {
		return nil, domain.InvalidInput(fmt.Sprintf("limit must be between 1 and %d", maxRecentLimit))
	}
	recent, err := s.repos.Rentals.VendorRecentEarnings(ctx, vendorID, limit)
	if err != nil {
		return nil, asInternal(err)
	}
	for i := range recent {
		recent[i].VendorShare, recent[i].AdminShare = domain.SplitFee(recent[i].Fee)
	}
	return recent, nil
}
