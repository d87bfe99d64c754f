package postgres

import (
	"context"
	"time"

	"ombrello-backend/internal/domain"
	"ombrello-backend/internal/repository"

	"github.com/jmoiron/sqlx"
)

const vendorColumns = `id, email, telephone, shop_name, shop_owner_name, business_reg_no, status, lat, lng, address, created_at, updated_at`

type vendorRepository struct {
	db sqlx.ExtContext
}

func NewVendorRepository(db sqlx.ExtContext) repository.VendorRepository {
	return &vendorRepository{db: db}
}

func (r *vendorRepository) GetByID(ctx context.Context, id int64) (*domain.Vendor, error) {
	v := &domain.Vendor{}
	query := `SELECT ` + vendorColumns + ` FROM vendors WHERE id = $1`
	if err := sqlx.GetContext(ctx, r.db, v, query, id); err != nil {
		return nil, translateError(err)
	}
	return v, nil
}

func (r *vendorRepository) UpdateLocation(ctx context.Context, id int64, lat, lng float64, address *string) (*domain.Vendor, error) {
	v := &domain.Vendor{}
	query := `UPDATE vendors SET lat = $1, lng = $2, address = COALESCE($3, address), updated_at = $4
	          WHERE id = $5 RETURNING ` + vendorColumns
	if err := sqlx.GetContext(ctx, r.db, v, query, lat, lng, address, time.Now().UTC(), id); err != nil {
		return nil, translateError(err)
	}
	return v, nil
}

func (r *vendorRepository) ListWithLocation(ctx context.Context, limit int) ([]domain.Vendor, error) {
	var vendors []domain.Vendor
	query := `SELECT ` + vendorColumns + ` FROM vendors
	          WHERE lat IS NOT NULL AND lng IS NOT NULL
	          ORDER BY id LIMIT $1`
	if err := sqlx.SelectContext(ctx, r.db, &vendors, query, limit); err != nil {
		return nil, translateError(err)
	}
	return vendors, nil
}

func (r *vendorRepository) UpdateStatus(ctx context.Context, id int64, status domain.AccountStatus) (*domain.Vendor, error) {
	v := &domain.Vendor{}
	query := `UPDATE vendors SET status = $1, updated_at = $2 WHERE id = $3 RETURNING ` + vendorColumns
	if err := sqlx.GetContext(ctx, r.db, v, query, status, time.Now().UTC(), id); err != nil {
		return nil, translateError(err)
	}
	return v, nil
}
