package postgres

import (
	"context"
	"time"

	"ombrello-backend/internal/domain"
	"ombrello-backend/internal/repository"

	"github.com/jmoiron/sqlx"
)

// status is nullable; NULL reads back as the unset status.
const umbrellaColumns = `id, code, qr_code, qr_payload, vendor_id, shop_name, COALESCE(status, '') AS status, condition, rented_date, created_at, updated_at`

type umbrellaRepository struct {
	db sqlx.ExtContext
}

func NewUmbrellaRepository(db sqlx.ExtContext) repository.UmbrellaRepository {
	return &umbrellaRepository{db: db}
}

func (r *umbrellaRepository) Create(ctx context.Context, u *domain.Umbrella) error {
	now := time.Now().UTC()
	query := `INSERT INTO umbrellas (code, qr_code, qr_payload, vendor_id, shop_name, status, condition, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8, $9) RETURNING id`
	err := r.db.QueryRowxContext(ctx, query, u.Code, u.QRCode, u.QRPayload, u.VendorID, u.ShopName, string(u.Status), u.Condition, now, now).Scan(&u.ID)
	if err != nil {
		return translateError(err)
	}
	u.CreatedAt = now
	u.UpdatedAt = now
	return nil
}

func (r *umbrellaRepository) get(ctx context.Context, query string, args ...interface{}) (*domain.Umbrella, error) {
	u := &domain.Umbrella{}
	if err := sqlx.GetContext(ctx, r.db, u, query, args...); err != nil {
		return nil, translateError(err)
	}
	return u, nil
}

func (r *umbrellaRepository) GetByCode(ctx context.Context, code string) (*domain.Umbrella, error) {
	return r.get(ctx, `SELECT `+umbrellaColumns+` FROM umbrellas WHERE code = $1`, code)
}

func (r *umbrellaRepository) GetByCodeForUpdate(ctx context.Context, code string) (*domain.Umbrella, error) {
	return r.get(ctx, `SELECT `+umbrellaColumns+` FROM umbrellas WHERE code = $1 FOR UPDATE`, code)
}

func (r *umbrellaRepository) GetByQRCode(ctx context.Context, qrCode string) (*domain.Umbrella, error) {
	return r.get(ctx, `SELECT `+umbrellaColumns+` FROM umbrellas WHERE qr_code = $1`, qrCode)
}

func (r *umbrellaRepository) QRCodeExists(ctx context.Context, qrCode string) (bool, error) {
	var exists bool
	if err := sqlx.GetContext(ctx, r.db, &exists, `SELECT EXISTS(SELECT 1 FROM umbrellas WHERE qr_code = $1)`, qrCode); err != nil {
		return false, translateError(err)
	}
	return exists, nil
}

func (r *umbrellaRepository) MarkRented(ctx context.Context, code string, at time.Time) (bool, error) {
	query := `UPDATE umbrellas SET status = 'rented', rented_date = $1, updated_at = $1
	          WHERE code = $2 AND (status IS NULL OR status = 'available')`
	return r.execAffected(ctx, query, at, code)
}

func (r *umbrellaRepository) SetStatus(ctx context.Context, code string, status domain.UmbrellaStatus) (bool, error) {
	query := `UPDATE umbrellas SET status = NULLIF($1, ''),
	          rented_date = CASE WHEN $1 = 'rented' THEN rented_date ELSE NULL END,
	          updated_at = $2
	          WHERE code = $3`
	return r.execAffected(ctx, query, string(status), time.Now().UTC(), code)
}

func (r *umbrellaRepository) execAffected(ctx context.Context, query string, args ...interface{}) (bool, error) {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, translateError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *umbrellaRepository) MarkBroken(ctx context.Context, code string) (*domain.Umbrella, error) {
	query := `UPDATE umbrellas SET condition = 'broken', status = 'maintenance', updated_at = $1
	          WHERE code = $2 RETURNING ` + umbrellaColumns
	return r.get(ctx, query, time.Now().UTC(), code)
}

func (r *umbrellaRepository) Update(ctx context.Context, code string, upd repository.UmbrellaUpdate) (*domain.Umbrella, error) {
	var status, condition, shopName *string
	if upd.Status != nil {
		s := string(*upd.Status)
		status = &s
	}
	if upd.Condition != nil {
		c := string(*upd.Condition)
		condition = &c
	}
	shopName = upd.ShopName

	query := `UPDATE umbrellas SET
	            status = COALESCE($1, status),
	            condition = COALESCE($2, condition),
	            shop_name = COALESCE($3, shop_name),
	            rented_date = CASE WHEN COALESCE($1, status) = 'rented' THEN rented_date ELSE NULL END,
	            updated_at = $4
	          WHERE code = $5 RETURNING ` + umbrellaColumns
	return r.get(ctx, query, status, condition, shopName, time.Now().UTC(), code)
}

func (r *umbrellaRepository) CountByStatus(ctx context.Context, status domain.UmbrellaStatus) (int64, error) {
	var n int64
	if err := sqlx.GetContext(ctx, r.db, &n, `SELECT COUNT(*) FROM umbrellas WHERE status = $1`, status); err != nil {
		return 0, translateError(err)
	}
	return n, nil
}

func (r *umbrellaRepository) ReleaseOrphaned(ctx context.Context) ([]string, error) {
	var codes []string
	query := `UPDATE umbrellas u SET status = 'available', rented_date = NULL, updated_at = NOW()
	          WHERE u.status = 'rented'
	            AND NOT EXISTS (SELECT 1 FROM rentals r WHERE r.code = u.code AND r.returned_at IS NULL)
	          RETURNING u.code`
	if err := sqlx.SelectContext(ctx, r.db, &codes, query); err != nil {
		return nil, translateError(err)
	}
	return codes, nil
}

// ClaimRented only repairs umbrellas left unset or available under an open
// rental. Maintenance and lost set mid-rental are kept.
func (r *umbrellaRepository) ClaimRented(ctx context.Context) ([]string, error) {
	var codes []string
	query := `UPDATE umbrellas u SET status = 'rented', rented_date = r.rented_at, updated_at = NOW()
	          FROM rentals r
	          WHERE r.code = u.code AND r.returned_at IS NULL
	            AND (u.status IS NULL OR u.status = 'available')
	          RETURNING u.code`
	if err := sqlx.SelectContext(ctx, r.db, &codes, query); err != nil {
		return nil, translateError(err)
	}
	return codes, nil
}
