package postgres

import (
	"context"

	"ombrello-backend/internal/domain"
	"ombrello-backend/internal/repository"

	"github.com/jmoiron/sqlx"
)

const userColumns = `id, email, telephone, first_name, role, status, created_at`

type userRepository struct {
	db sqlx.ExtContext
}

func NewUserRepository(db sqlx.ExtContext) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	u := &domain.User{}
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	if err := sqlx.GetContext(ctx, r.db, u, query, id); err != nil {
		return nil, translateError(err)
	}
	return u, nil
}

func (r *userRepository) UpdateStatus(ctx context.Context, id int64, status domain.AccountStatus) (*domain.User, error) {
	u := &domain.User{}
	query := `UPDATE users SET status = $1 WHERE id = $2 RETURNING ` + userColumns
	if err := sqlx.GetContext(ctx, r.db, u, query, status, id); err != nil {
		return nil, translateError(err)
	}
	return u, nil
}
