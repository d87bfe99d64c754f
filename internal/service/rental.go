package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ombrello-backend/internal/domain"
	"ombrello-backend/internal/events"
	"ombrello-backend/internal/logger"
	"ombrello-backend/internal/metrics"
	"ombrello-backend/internal/repository"
	"ombrello-backend/internal/utils"
)

const (
	maxRentalIDAttempts = 6
	maxActiveRentals    = 200
)

type rentalService struct {
	tx        repository.TxRunner
	repos     repository.Repositories
	publisher events.Publisher
	now       Clock
	newID     func(time.Time) (string, error)
}

func NewRentalService(tx repository.TxRunner, repos repository.Repositories, publisher events.Publisher) RentalService {
	return &rentalService{
		tx:        tx,
		repos:     repos,
		publisher: publisher,
		now:       utcNow,
		newID:     utils.NewRentalID,
	}
}

func (s *rentalService) Assign(ctx context.Context, vendorID int64, req AssignRequest) (*domain.Rental, error) {
	logger.EnterMethod(ctx, "rentalService.Assign", "vendorID", vendorID, "code", req.Code, "userID", req.UserID)

	rental, err := s.assign(ctx, vendorID, req)
	if err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("assign", kindLabel(err)).Inc()
		logger.ExitMethodWithError(ctx, "rentalService.Assign", err, "code", req.Code)
		return nil, err
	}

	metrics.RentalsAssignedTotal.Inc()
	s.publish(ctx, events.RentalAssigned, rental)
	logger.ExitMethod(ctx, "rentalService.Assign", "code", rental.Code, "rentalID", rental.RentalID)
	return rental, nil
}

func (s *rentalService) assign(ctx context.Context, vendorID int64, req AssignRequest) (*domain.Rental, error) {
	req.Code = strings.TrimSpace(req.Code)
	if req.Code == "" {
		return nil, domain.InvalidInput("code is required")
	}
	if req.UserID <= 0 {
		return nil, domain.InvalidInput("user_id is required")
	}
	if req.Fee.Valid && req.Fee.Decimal.IsNegative() {
		return nil, domain.InvalidInput("fee must not be negative")
	}

	vendor, err := s.activeVendor(ctx, vendorID)
	if err != nil {
		return nil, err
	}

	// Postgres aborts the transaction on a unique violation, so a rental_id
	// collision retries the whole transaction.
	for attempt := 1; attempt <= maxRentalIDAttempts; attempt++ {
		rental, err := s.assignTx(ctx, vendor, req)
		if errors.Is(err, repository.ErrRentalIDTaken) {
			metrics.RentalIDCollisionsTotal.Inc()
			logger.WarnContext(ctx, "Rental id collision, retrying", "attempt", attempt, "code", req.Code)
			continue
		}
		return rental, err
	}
	return nil, domain.Internal("Could not generate a unique rental ID", repository.ErrRentalIDTaken)
}

func (s *rentalService) assignTx(ctx context.Context, vendor *domain.Vendor, req AssignRequest) (*domain.Rental, error) {
	var rental *domain.Rental
	err := s.tx.InTx(ctx, func(r repository.Repositories) error {
		user, err := r.Users.GetByID(ctx, req.UserID)
		if err != nil {
			return notFoundOr(err, "User not found")
		}
		if user.Status == domain.AccountStatusSuspended {
			return domain.Forbidden("User account is suspended")
		}

		umbrella, err := r.Umbrellas.GetByCodeForUpdate(ctx, req.Code)
		if err != nil {
			return notFoundOr(err, "Umbrella not found")
		}

		if _, err := r.Rentals.GetOpenByCode(ctx, umbrella.Code); err == nil {
			return domain.Conflict("Umbrella is already rented")
		} else if !errors.Is(err, repository.ErrNotFound) {
			return asInternal(err)
		}

		if !umbrella.Status.Rentable() {
			return domain.Conflict(fmt.Sprintf("Umbrella is not available (status=%s)", umbrella.Status))
		}

		shopName := strings.TrimSpace(req.ShopName)
		if shopName == "" {
			shopName = vendor.ShopName
		}

		now := s.now()
		rentalID, err := s.newID(now)
		if err != nil {
			return domain.Internal("Could not generate a unique rental ID", err)
		}

		candidate := &domain.Rental{
			RentalID: rentalID,
			Code:     umbrella.Code,
			VendorID: vendor.ID,
			ShopName: shopName,
			UserID:   user.ID,
			UserName: user.FirstName,
			Fee:      req.Fee,
			RentedAt: now,
		}
		if err := r.Rentals.Create(ctx, candidate); err != nil {
			switch {
			case errors.Is(err, repository.ErrRentalIDTaken):
				return err
			case errors.Is(err, repository.ErrOpenRentalExists):
				return domain.Conflict("Umbrella is already rented")
			}
			return asInternal(err)
		}

		ok, err := r.Umbrellas.MarkRented(ctx, umbrella.Code, now)
		if err != nil {
			return asInternal(err)
		}
		if !ok {
			return domain.Conflict("Umbrella is no longer available")
		}

		rental = candidate
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rental, nil
}

func (s *rentalService) Return(ctx context.Context, vendorID int64, code string) (*domain.Rental, error) {
	logger.EnterMethod(ctx, "rentalService.Return", "vendorID", vendorID, "code", code)

	rental, err := s.returnUmbrella(ctx, vendorID, strings.TrimSpace(code))
	if err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("return", kindLabel(err)).Inc()
		logger.ExitMethodWithError(ctx, "rentalService.Return", err, "code", code)
		return nil, err
	}

	metrics.RentalsReturnedTotal.Inc()
	s.publish(ctx, events.RentalReturned, rental)
	logger.ExitMethod(ctx, "rentalService.Return", "code", rental.Code, "rentalID", rental.RentalID)
	return rental, nil
}

func (s *rentalService) returnUmbrella(ctx context.Context, vendorID int64, code string) (*domain.Rental, error) {
	if code == "" {
		return nil, domain.InvalidInput("code is required")
	}
	if _, err := s.activeVendor(ctx, vendorID); err != nil {
		return nil, err
	}

	var rental *domain.Rental
	err := s.tx.InTx(ctx, func(r repository.Repositories) error {
		if _, err := r.Umbrellas.GetByCodeForUpdate(ctx, code); err != nil {
			return notFoundOr(err, "Umbrella not found")
		}

		closed, err := r.Rentals.CloseOpen(ctx, code, s.now())
		if err != nil {
			return notFoundOr(err, "No active rental exists for this umbrella (already returned or never rented).")
		}

		ok, err := r.Umbrellas.SetStatus(ctx, code, domain.UmbrellaStatusAvailable)
		if err != nil {
			return domain.Internal("Umbrella status update failed; rental return was rolled back.", err)
		}
		if !ok {
			return domain.Internal("Umbrella status update failed; rental return was rolled back.", nil)
		}

		rental = closed
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rental, nil
}

func (s *rentalService) ListMyActive(ctx context.Context, userID int64) ([]domain.ActiveRental, error) {
	rentals, err := s.repos.Rentals.ListOpenByUser(ctx, userID, maxActiveRentals)
	if err != nil {
		return nil, asInternal(err)
	}
	return rentals, nil
}

func (s *rentalService) activeVendor(ctx context.Context, vendorID int64) (*domain.Vendor, error) {
	vendor, err := s.repos.Vendors.GetByID(ctx, vendorID)
	if err != nil {
		return nil, notFoundOr(err, "Vendor not found")
	}
	if err := requireActiveVendor(vendor); err != nil {
		return nil, err
	}
	return vendor, nil
}

// publish runs after commit; a failed publish is logged and never fails the request.
func (s *rentalService) publish(ctx context.Context, t events.Type, r *domain.Rental) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishRental(ctx, events.NewRentalEvent(t, r, s.now())); err != nil {
		logger.WarnContext(ctx, "Failed to publish rental event", "type", t, "rentalID", r.RentalID, "error", err)
	}
}
