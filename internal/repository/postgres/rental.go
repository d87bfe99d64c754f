package postgres

import (
	"context"
	"time"

	"ombrello-backend/internal/domain"
	"ombrello-backend/internal/repository"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

const rentalColumns = `id, rental_id, code, vendor_id, shop_name, user_id, user_name, fee, rented_at, returned_at`

// effectiveAt is the date a fee is attributed to: the return time, or the
// rental start while still open.
const effectiveAt = `COALESCE(returned_at, rented_at)`

type rentalRepository struct {
	db sqlx.ExtContext
}

func NewRentalRepository(db sqlx.ExtContext) repository.RentalRepository {
	return &rentalRepository{db: db}
}

func (r *rentalRepository) Create(ctx context.Context, rt *domain.Rental) error {
	query := `INSERT INTO rentals (rental_id, code, vendor_id, shop_name, user_id, user_name, fee, rented_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	err := r.db.QueryRowxContext(ctx, query, rt.RentalID, rt.Code, rt.VendorID, rt.ShopName, rt.UserID, rt.UserName, rt.Fee, rt.RentedAt).Scan(&rt.ID)
	return translateError(err)
}

func (r *rentalRepository) GetOpenByCode(ctx context.Context, code string) (*domain.Rental, error) {
	rt := &domain.Rental{}
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE code = $1 AND returned_at IS NULL`
	if err := sqlx.GetContext(ctx, r.db, rt, query, code); err != nil {
		return nil, translateError(err)
	}
	return rt, nil
}

func (r *rentalRepository) CloseOpen(ctx context.Context, code string, at time.Time) (*domain.Rental, error) {
	rt := &domain.Rental{}
	query := `UPDATE rentals SET returned_at = $1 WHERE code = $2 AND returned_at IS NULL RETURNING ` + rentalColumns
	if err := sqlx.GetContext(ctx, r.db, rt, query, at, code); err != nil {
		return nil, translateError(err)
	}
	return rt, nil
}

func (r *rentalRepository) ListOpenByUser(ctx context.Context, userID int64, limit int) ([]domain.ActiveRental, error) {
	rentals := []domain.ActiveRental{}
	query := `SELECT id, rental_id, code, rented_at FROM rentals
	          WHERE user_id = $1 AND returned_at IS NULL
	          ORDER BY rented_at DESC LIMIT $2`
	if err := sqlx.SelectContext(ctx, r.db, &rentals, query, userID, limit); err != nil {
		return nil, translateError(err)
	}
	return rentals, nil
}

func (r *rentalRepository) CountOpen(ctx context.Context) (int64, error) {
	var n int64
	if err := sqlx.GetContext(ctx, r.db, &n, `SELECT COUNT(*) FROM rentals WHERE returned_at IS NULL`); err != nil {
		return 0, translateError(err)
	}
	return n, nil
}

// SumFees totals the fees of rentals started in [from, to).
func (r *rentalRepository) SumFees(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	query := `SELECT COALESCE(SUM(fee), 0) FROM rentals WHERE rented_at >= $1 AND rented_at < $2`
	if err := sqlx.GetContext(ctx, r.db, &total, query, from, to); err != nil {
		return decimal.Zero, translateError(err)
	}
	return total, nil
}

func (r *rentalRepository) VendorEarningsTotals(ctx context.Context, vendorID int64, from, to time.Time) (decimal.Decimal, int64, error) {
	var row struct {
		Total decimal.Decimal `db:"total_fee"`
		Count int64           `db:"count"`
	}
	query := `SELECT COALESCE(SUM(fee), 0) AS total_fee, COUNT(*) AS count FROM rentals
	          WHERE vendor_id = $1 AND fee IS NOT NULL
	            AND ` + effectiveAt + ` >= $2 AND ` + effectiveAt + ` <= $3`
	if err := sqlx.GetContext(ctx, r.db, &row, query, vendorID, from, to); err != nil {
		return decimal.Zero, 0, translateError(err)
	}
	return row.Total, row.Count, nil
}

func (r *rentalRepository) VendorEarningsDaily(ctx context.Context, vendorID int64, from, to time.Time, tz string) ([]domain.DailyEarnings, error) {
	days := []domain.DailyEarnings{}
	query := `SELECT date_trunc('day', ` + effectiveAt + ` AT TIME ZONE $4) AS day,
	                 SUM(fee) AS total_fee, COUNT(*) AS count
	          FROM rentals
	          WHERE vendor_id = $1 AND fee IS NOT NULL
	            AND ` + effectiveAt + ` >= $2 AND ` + effectiveAt + ` <= $3
	          GROUP BY day ORDER BY day`
	if err := sqlx.SelectContext(ctx, r.db, &days, query, vendorID, from, to, tz); err != nil {
		return nil, translateError(err)
	}
	return days, nil
}

func (r *rentalRepository) VendorRecentEarnings(ctx context.Context, vendorID int64, limit int) ([]domain.RecentEarning, error) {
	recent := []domain.RecentEarning{}
	query := `SELECT id, rental_id, code, shop_name, user_name, rented_at, returned_at, fee,
	                 ` + effectiveAt + ` AS effective_at
	          FROM rentals
	          WHERE vendor_id = $1 AND fee IS NOT NULL
	          ORDER BY effective_at DESC LIMIT $2`
	if err := sqlx.SelectContext(ctx, r.db, &recent, query, vendorID, limit); err != nil {
		return nil, translateError(err)
	}
	return recent, nil
}
