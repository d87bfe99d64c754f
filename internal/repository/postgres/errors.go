package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"ombrello-backend/internal/repository"

	"github.com/lib/pq"
)

const (
	uniqueViolation = "23505"

	constraintRentalID       = "rentals_rental_id_key"
	constraintOneOpenPerCode = "rentals_one_open_per_code"
)

// translateError maps driver errors onto the repository sentinels.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %w", repository.ErrNotFound, err)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		switch pqErr.Constraint {
		case constraintRentalID:
			return repository.ErrRentalIDTaken
		case constraintOneOpenPerCode:
			return repository.ErrOpenRentalExists
		}
		return fmt.Errorf("%w: %s", repository.ErrDuplicate, pqErr.Constraint)
	}
	return err
}
