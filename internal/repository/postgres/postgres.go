package postgres

import (
	"context"
	"fmt"

	"ombrello-backend/internal/logger"
	"ombrello-backend/internal/repository"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

type Store struct {
	db *sqlx.DB
	repository.Repositories
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{
		db:           db,
		Repositories: newRepositories(db),
	}
}

func newRepositories(q sqlx.ExtContext) repository.Repositories {
	return repository.Repositories{
		Users:     NewUserRepository(q),
		Vendors:   NewVendorRepository(q),
		Umbrellas: NewUmbrellaRepository(q),
		Rentals:   NewRentalRepository(q),
		Counters:  NewCounterRepository(q),
	}
}

func (s *Store) DB() *sqlx.DB {
	return s.db
}

// InTx runs fn with repositories bound to a single transaction.
func (s *Store) InTx(ctx context.Context, fn func(r repository.Repositories) error) (err error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err = fn(newRepositories(tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Error("Failed to roll back transaction", "error", rbErr, "cause", err)
		}
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
