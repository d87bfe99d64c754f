package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Rental fees are split evenly between the vendor and the platform.
var vendorShareRatio = decimal.NewFromFloat(0.5)

// SplitFee returns the vendor and admin shares of a fee.
func SplitFee(fee decimal.Decimal) (vendor, admin decimal.Decimal) {
	vendor = fee.Mul(vendorShareRatio)
	return vendor, fee.Sub(vendor)
}

type DailyEarnings struct {
	Date        time.Time       `db:"day" json:"date"`
	TotalFee    decimal.Decimal `db:"total_fee" json:"total_fee"`
	Count       int64           `db:"count" json:"count"`
	VendorShare decimal.Decimal `db:"-" json:"vendor_share"`
	AdminShare  decimal.Decimal `db:"-" json:"admin_share"`
}

type EarningsRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
	TZ   string    `json:"tz"`
}

type EarningsSummary struct {
	Range       EarningsRange   `json:"range"`
	TotalFee    decimal.Decimal `json:"total_fee"`
	Count       int64           `json:"count"`
	VendorShare decimal.Decimal `json:"vendor_share"`
	AdminShare  decimal.Decimal `json:"admin_share"`
	Daily       []DailyEarnings `json:"daily"`
}

type RecentEarning struct {
	ID          int64           `db:"id" json:"id"`
	RentalID    string          `db:"rental_id" json:"rental_id"`
	Code        string          `db:"code" json:"code"`
	ShopName    string          `db:"shop_name" json:"shop_name"`
	UserName    string          `db:"user_name" json:"user_name"`
	RentedAt    time.Time       `db:"rented_at" json:"rented_at"`
	ReturnedAt  *time.Time      `db:"returned_at" json:"returned_at"`
	Fee         decimal.Decimal `db:"fee" json:"fee"`
	EffectiveAt time.Time       `db:"effective_at" json:"effective_at"`
	VendorShare decimal.Decimal `db:"-" json:"vendor_share"`
	AdminShare  decimal.Decimal `db:"-" json:"admin_share"`
}

// MetricsSummary backs the admin dashboard.
type MetricsSummary struct {
	ActiveRentals      int64           `json:"active_rentals"`
	UmbrellasAvailable int64           `json:"umbrellas_available"`
	Revenue            decimal.Decimal `json:"revenue"`
	DateFrom           time.Time       `json:"date_from"`
	DateTo             time.Time       `json:"date_to"`
}
