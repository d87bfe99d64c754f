package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Rental struct {
	ID       int64  `db:"id" json:"id"`
	RentalID string `db:"rental_id" json:"rental_id"`
	Code     string `db:"code" json:"code"`
	VendorID int64  `db:"vendor_id" json:"vendor_id"`
	ShopName string `db:"shop_name" json:"shop_name,omitempty"`
	UserID   int64  `db:"user_id" json:"user_id"`
	UserName string `db:"user_name" json:"user_name,omitempty"`
	// Fee is NULL when the vendor did not record one.
	Fee        decimal.NullDecimal `db:"fee" json:"fee"`
	RentedAt   time.Time           `db:"rented_at" json:"rented_at"`
	ReturnedAt *time.Time          `db:"returned_at" json:"returned_at"`
}

// Open reports whether the rental has not been returned yet.
func (r *Rental) Open() bool {
	return r.ReturnedAt == nil
}

// ActiveRental is the renter-facing view of an open rental.
type ActiveRental struct {
	ID       int64     `db:"id" json:"id"`
	RentalID string    `db:"rental_id" json:"rental_id"`
	Code     string    `db:"code" json:"umbrella_code"`
	RentedAt time.Time `db:"rented_at" json:"rented_at"`
}
