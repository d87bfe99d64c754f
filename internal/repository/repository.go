package repository

import (
	"context"
	"errors"
	"time"

	"ombrello-backend/internal/domain"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound = errors.New("record not found")
	// ErrRentalIDTaken is returned when a generated rental_id collides with an existing one.
	ErrRentalIDTaken = errors.New("rental id already taken")
	// ErrOpenRentalExists is returned when a second open rental is inserted for the same umbrella.
	ErrOpenRentalExists = errors.New("umbrella already has an open rental")
	ErrDuplicate        = errors.New("duplicate record")
)

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	UpdateStatus(ctx context.Context, id int64, status domain.AccountStatus) (*domain.User, error)
}

type VendorRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Vendor, error)
	UpdateLocation(ctx context.Context, id int64, lat, lng float64, address *string) (*domain.Vendor, error)
	ListWithLocation(ctx context.Context, limit int) ([]domain.Vendor, error)
	UpdateStatus(ctx context.Context, id int64, status domain.AccountStatus) (*domain.Vendor, error)
}

// UmbrellaUpdate holds the optional fields of an admin edit. Nil means unchanged.
type UmbrellaUpdate struct {
	Status    *domain.UmbrellaStatus
	Condition *domain.UmbrellaCondition
	ShopName  *string
}

type UmbrellaRepository interface {
	Create(ctx context.Context, u *domain.Umbrella) error
	GetByCode(ctx context.Context, code string) (*domain.Umbrella, error)
	// GetByCodeForUpdate locks the row until the surrounding transaction ends.
	GetByCodeForUpdate(ctx context.Context, code string) (*domain.Umbrella, error)
	GetByQRCode(ctx context.Context, qrCode string) (*domain.Umbrella, error)
	QRCodeExists(ctx context.Context, qrCode string) (bool, error)
	// MarkRented flips an unset or available umbrella to rented. It reports false when no row matched.
	MarkRented(ctx context.Context, code string, at time.Time) (bool, error)
	SetStatus(ctx context.Context, code string, status domain.UmbrellaStatus) (bool, error)
	MarkBroken(ctx context.Context, code string) (*domain.Umbrella, error)
	Update(ctx context.Context, code string, upd UmbrellaUpdate) (*domain.Umbrella, error)
	CountByStatus(ctx context.Context, status domain.UmbrellaStatus) (int64, error)
	// ReleaseOrphaned sets rented umbrellas without an open rental back to available.
	ReleaseOrphaned(ctx context.Context) ([]string, error)
	// ClaimRented marks umbrellas with an open rental but a different status as rented.
	ClaimRented(ctx context.Context) ([]string, error)
}

type RentalRepository interface {
	Create(ctx context.Context, r *domain.Rental) error
	GetOpenByCode(ctx context.Context, code string) (*domain.Rental, error)
	// CloseOpen sets returned_at on the open rental for code and returns it.
	CloseOpen(ctx context.Context, code string, at time.Time) (*domain.Rental, error)
	ListOpenByUser(ctx context.Context, userID int64, limit int) ([]domain.ActiveRental, error)
	CountOpen(ctx context.Context) (int64, error)
	SumFees(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
	VendorEarningsTotals(ctx context.Context, vendorID int64, from, to time.Time) (decimal.Decimal, int64, error)
	VendorEarningsDaily(ctx context.Context, vendorID int64, from, to time.Time, tz string) ([]domain.DailyEarnings, error)
	VendorRecentEarnings(ctx context.Context, vendorID int64, limit int) ([]domain.RecentEarning, error)
}

type CounterRepository interface {
	// Reserve advances the named counter by n and returns the last value reserved.
	Reserve(ctx context.Context, name string, n int) (int64, error)
}

// Repositories is the set of repositories bound to one connection or transaction.
type Repositories struct {
	Users     UserRepository
	Vendors   VendorRepository
	Umbrellas UmbrellaRepository
	Rentals   RentalRepository
	Counters  CounterRepository
}

// TxRunner runs fn inside a database transaction. The transaction commits when fn
// returns nil and rolls back otherwise.
type TxRunner interface {
	InTx(ctx context.Context, fn func(r Repositories) error) error
}
