package postgres

import (
	"context"

	"ombrello-backend/internal/repository"

	"github.com/jmoiron/sqlx"
)

type counterRepository struct {
	db sqlx.ExtContext
}

func NewCounterRepository(db sqlx.ExtContext) repository.CounterRepository {
	return &counterRepository{db: db}
}

// Reserve is a single upsert so concurrent callers never receive overlapping ranges.
func (r *counterRepository) Reserve(ctx context.Context, name string, n int) (int64, error) {
	var end int64
	query := `INSERT INTO counters (name, seq) VALUES ($1, $2)
	          ON CONFLICT (name) DO UPDATE SET seq = counters.seq + EXCLUDED.seq
	          RETURNING seq`
	if err := sqlx.GetContext(ctx, r.db, &end, query, name, n); err != nil {
		return 0, translateError(err)
	}
	return end, nil
}
