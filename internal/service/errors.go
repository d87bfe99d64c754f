package service

import (
	"errors"

	"ombrello-backend/internal/domain"
	"ombrello-backend/internal/repository"
)

// notFoundOr converts a repository miss into a client-facing NotFound and
// wraps anything else as Internal.
func notFoundOr(err error, msg string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return domain.NotFound(msg)
	}
	return asInternal(err)
}

func asInternal(err error) error {
	var de *domain.Error
	if errors.As(err, &de) {
		return err
	}
	return domain.Internal("Internal server error", err)
}

// requireActiveVendor rejects suspended and pending vendor accounts.
func requireActiveVendor(v *domain.Vendor) error {
	switch v.Status {
	case domain.AccountStatusActive:
		return nil
	case domain.AccountStatusSuspended:
		return domain.Forbidden("Vendor account is suspended")
	default:
		return domain.Forbidden("Vendor account is not active")
	}
}

// kindLabel names the error kind for metrics.
func kindLabel(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrConflict):
		return "conflict"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, domain.ErrForbidden):
		return "forbidden"
	case errors.Is(err, domain.ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, domain.ErrUnavailable):
		return "unavailable"
	default:
		return "internal"
	}
}
