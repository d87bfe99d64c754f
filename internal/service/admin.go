package service

import (
	"context"
	"time"

	"ombrello-backend/internal/domain"
	"ombrello-backend/internal/logger"
	"ombrello-backend/internal/repository"
)

const defaultMetricsWindow = 7 * 24 * time.Hour

type adminService struct {
	repos repository.Repositories
	now   Clock
}

func NewAdminService(repos repository.Repositories) AdminService {
	return &adminService{repos: repos, now: utcNow}
}

func (s *adminService) SetUserStatus(ctx context.Context, userID int64, status domain.AccountStatus) (*domain.User, error) {
	user, err := s.repos.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, notFoundOr(err, "User not found")
	}
	if user.Role == domain.RoleAdmin {
		return nil, domain.Forbidden("Cannot change status of admin accounts")
	}

	updated, err := s.repos.Users.UpdateStatus(ctx, userID, status)
	if err != nil {
		return nil, notFoundOr(err, "User not found")
	}
	logger.InfoContext(ctx, "User status changed", "userID", userID, "status", status)
	return updated, nil
}

func (s *adminService) SetVendorStatus(ctx context.Context, vendorID int64, status domain.AccountStatus) (*domain.Vendor, error) {
	updated, err := s.repos.Vendors.UpdateStatus(ctx, vendorID, status)
	if err != nil {
		return nil, notFoundOr(err, "Vendor not found")
	}
	logger.InfoContext(ctx, "Vendor status changed", "vendorID", vendorID, "status", status)
	return updated, nil
}

// MetricsSummary reports platform revenue over the half-open window [from, to+1d).
// Without bounds the window is the last seven UTC days including today.
func (s *adminService) MetricsSummary(ctx context.Context, from, to *time.Time) (*domain.MetricsSummary, error) {
	logger.EnterMethod(ctx, "adminService.MetricsSummary")

	today := startOfDay(s.now())
	end := today.AddDate(0, 0, 1)
	if to != nil {
		end = startOfDay(*to).AddDate(0, 0, 1)
	}
	start := end.Add(-defaultMetricsWindow)
	if from != nil {
		start = startOfDay(*from)
	}
	if !start.Before(end) {
		return nil, domain.InvalidInput("date_to must be on or after date_from")
	}

	active, err := s.repos.Rentals.CountOpen(ctx)
	if err != nil {
		return nil, asInternal(err)
	}
	available, err := s.repos.Umbrellas.CountByStatus(ctx, domain.UmbrellaStatusAvailable)
	if err != nil {
		return nil, asInternal(err)
	}
	fees, err := s.repos.Rentals.SumFees(ctx, start, end)
	if err != nil {
		return nil, asInternal(err)
	}
	_, platformShare := domain.SplitFee(fees)

	summary := &domain.MetricsSummary{
		ActiveRentals:      active,
		UmbrellasAvailable: available,
		Revenue:            platformShare.Round(2),
		DateFrom:           start,
		DateTo:             end.Add(-time.Millisecond),
	}
	logger.ExitMethod(ctx, "adminService.MetricsSummary", "activeRentals", active, "revenue", summary.Revenue.String())
	return summary, nil
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
