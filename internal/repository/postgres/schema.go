package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id          BIGSERIAL PRIMARY KEY,
	email       TEXT NOT NULL UNIQUE,
	telephone   TEXT NOT NULL DEFAULT '',
	first_name  TEXT NOT NULL DEFAULT '',
	role        TEXT NOT NULL DEFAULT 'user' CHECK (role IN ('user','admin')),
	status      TEXT NOT NULL DEFAULT 'active' CHECK (status IN ('active','suspended')),
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS vendors (
	id               BIGSERIAL PRIMARY KEY,
	email            TEXT NOT NULL UNIQUE,
	telephone        TEXT NOT NULL DEFAULT '',
	shop_name        TEXT NOT NULL DEFAULT '',
	shop_owner_name  TEXT NOT NULL DEFAULT '',
	business_reg_no  TEXT NOT NULL DEFAULT '',
	status           TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('active','pending','suspended')),
	lat              DOUBLE PRECISION,
	lng              DOUBLE PRECISION,
	address          TEXT,
	created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS umbrellas (
	id           BIGSERIAL PRIMARY KEY,
	code         TEXT NOT NULL UNIQUE,
	qr_code      TEXT NOT NULL UNIQUE,
	qr_payload   TEXT NOT NULL,
	vendor_id    BIGINT NOT NULL REFERENCES vendors(id),
	shop_name    TEXT NOT NULL DEFAULT '',
	status       TEXT CHECK (status IN ('available','rented','maintenance','lost','retired')),
	condition    TEXT NOT NULL DEFAULT 'good' CHECK (condition IN ('good','worn','needs_repair','broken')),
	rented_date  TIMESTAMPTZ,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_umbrellas_status ON umbrellas(status);

CREATE TABLE IF NOT EXISTS rentals (
	id           BIGSERIAL PRIMARY KEY,
	rental_id    TEXT NOT NULL,
	code         TEXT NOT NULL REFERENCES umbrellas(code),
	vendor_id    BIGINT NOT NULL REFERENCES vendors(id),
	shop_name    TEXT NOT NULL DEFAULT '',
	user_id      BIGINT NOT NULL REFERENCES users(id),
	user_name    TEXT NOT NULL DEFAULT '',
	fee          NUMERIC(12,2),
	rented_at    TIMESTAMPTZ NOT NULL,
	returned_at  TIMESTAMPTZ,
	CONSTRAINT rentals_rental_id_key UNIQUE (rental_id)
);
CREATE UNIQUE INDEX IF NOT EXISTS rentals_one_open_per_code ON rentals(code) WHERE returned_at IS NULL;
CREATE INDEX IF NOT EXISTS idx_rentals_user_open ON rentals(user_id) WHERE returned_at IS NULL;
CREATE INDEX IF NOT EXISTS idx_rentals_vendor ON rentals(vendor_id);

CREATE TABLE IF NOT EXISTS counters (
	name  TEXT PRIMARY KEY,
	seq   BIGINT NOT NULL DEFAULT 0
);
`

// EnsureSchema creates the tables and indexes when they do not exist yet.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
