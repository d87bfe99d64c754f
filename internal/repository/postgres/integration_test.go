//go:build integration

package postgres

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"ombrello-backend/internal/domain"
	"ombrello-backend/internal/repository"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startPostgres(t *testing.T) *sqlx.DB {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "ombrello",
			"POSTGRES_PASSWORD": "ombrello",
			"POSTGRES_DB":       "ombrello",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Skipf("docker unavailable: %v", err)
	}
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	dsn := fmt.Sprintf("postgres://ombrello:ombrello@%s:%s/ombrello?sslmode=disable", host, port.Port())
	db, err := sqlx.Connect("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, EnsureSchema(ctx, db))
	return db
}

func TestIntegration_ConcurrentAssignsOpenOneRental(t *testing.T) {
	db := startPostgres(t)
	ctx := context.Background()
	store := NewStore(db)

	_, err := db.ExecContext(ctx, `INSERT INTO vendors (id, email, shop_name, status) VALUES (1, 'v@example.com', 'Corner Shop', 'active')`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `INSERT INTO users (id, email, first_name) VALUES (1, 'a@example.com', 'A'), (2, 'b@example.com', 'B')`)
	require.NoError(t, err)
	require.NoError(t, store.Umbrellas.Create(ctx, &domain.Umbrella{
		Code: "UMB-000001", QRCode: "AAAAAAA", QRPayload: "http://x/u/AAAAAAA",
		VendorID: 1, Status: domain.UmbrellaStatusAvailable, Condition: domain.UmbrellaConditionGood,
	}))

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := store.InTx(ctx, func(r repository.Repositories) error {
				u, err := r.Umbrellas.GetByCodeForUpdate(ctx, "UMB-000001")
				if err != nil {
					return err
				}
				if _, err := r.Rentals.GetOpenByCode(ctx, u.Code); err == nil {
					return domain.Conflict("Umbrella is already rented")
				} else if !errors.Is(err, repository.ErrNotFound) {
					return err
				}
				now := time.Now().UTC()
				if err := r.Rentals.Create(ctx, &domain.Rental{
					RentalID: fmt.Sprintf("RENT-TEST-%06d", i),
					Code:     u.Code,
					VendorID: 1,
					UserID:   int64(i%2 + 1),
					RentedAt: now,
				}); err != nil {
					return err
				}
				ok, err := r.Umbrellas.MarkRented(ctx, u.Code, now)
				if err != nil {
					return err
				}
				if !ok {
					return domain.Conflict("Umbrella is not available")
				}
				return nil
			})
			if err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, successes)

	open, err := store.Rentals.CountOpen(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), open)

	u, err := store.Umbrellas.GetByCode(ctx, "UMB-000001")
	require.NoError(t, err)
	assert.Equal(t, domain.UmbrellaStatusRented, u.Status)
}

func TestIntegration_PartialIndexRejectsSecondOpenRental(t *testing.T) {
	db := startPostgres(t)
	ctx := context.Background()
	store := NewStore(db)

	_, err := db.ExecContext(ctx, `INSERT INTO vendors (id, email, status) VALUES (1, 'v@example.com', 'active')`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `INSERT INTO users (id, email) VALUES (1, 'a@example.com')`)
	require.NoError(t, err)
	require.NoError(t, store.Umbrellas.Create(ctx, &domain.Umbrella{
		Code: "UMB-000001", QRCode: "AAAAAAA", QRPayload: "http://x/u/AAAAAAA",
		VendorID: 1, Condition: domain.UmbrellaConditionGood,
	}))

	first := &domain.Rental{RentalID: "RENT-TEST-000001", Code: "UMB-000001", VendorID: 1, UserID: 1, RentedAt: time.Now()}
	require.NoError(t, store.Rentals.Create(ctx, first))

	second := &domain.Rental{RentalID: "RENT-TEST-000002", Code: "UMB-000001", VendorID: 1, UserID: 1, RentedAt: time.Now()}
	assert.ErrorIs(t, store.Rentals.Create(ctx, second), repository.ErrOpenRentalExists)

	dup := &domain.Rental{RentalID: "RENT-TEST-000001", Code: "UMB-000001", VendorID: 1, UserID: 1, RentedAt: time.Now()}
	_, err = store.Rentals.CloseOpen(ctx, "UMB-000001", time.Now())
	require.NoError(t, err)
	assert.ErrorIs(t, store.Rentals.Create(ctx, dup), repository.ErrRentalIDTaken)
}

func TestIntegration_ClaimRentedKeepsMaintenance(t *testing.T) {
	db := startPostgres(t)
	ctx := context.Background()
	store := NewStore(db)

	_, err := db.ExecContext(ctx, `INSERT INTO vendors (id, email, status) VALUES (1, 'v@example.com', 'active')`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `INSERT INTO users (id, email) VALUES (1, 'a@example.com'), (2, 'b@example.com')`)
	require.NoError(t, err)
	for _, u := range []*domain.Umbrella{
		{Code: "UMB-000001", QRCode: "AAAAAAA", QRPayload: "http://x/u/AAAAAAA", VendorID: 1, Status: domain.UmbrellaStatusAvailable, Condition: domain.UmbrellaConditionGood},
		{Code: "UMB-000002", QRCode: "BBBBBBB", QRPayload: "http://x/u/BBBBBBB", VendorID: 1, Status: domain.UmbrellaStatusAvailable, Condition: domain.UmbrellaConditionGood},
	} {
		require.NoError(t, store.Umbrellas.Create(ctx, u))
	}

	// UMB-000001 is rented and then reported broken; UMB-000002 has an open
	// rental but its status update never landed.
	now := time.Now().UTC()
	require.NoError(t, store.Rentals.Create(ctx, &domain.Rental{RentalID: "RENT-TEST-000001", Code: "UMB-000001", VendorID: 1, UserID: 1, RentedAt: now}))
	ok, err := store.Umbrellas.MarkRented(ctx, "UMB-000001", now)
	require.NoError(t, err)
	require.True(t, ok)
	_, err = store.Umbrellas.MarkBroken(ctx, "UMB-000001")
	require.NoError(t, err)
	require.NoError(t, store.Rentals.Create(ctx, &domain.Rental{RentalID: "RENT-TEST-000002", Code: "UMB-000002", VendorID: 1, UserID: 2, RentedAt: now}))

	claimed, err := store.Umbrellas.ClaimRented(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"UMB-000002"}, claimed)

	broken, err := store.Umbrellas.GetByCode(ctx, "UMB-000001")
	require.NoError(t, err)
	assert.Equal(t, domain.UmbrellaStatusMaintenance, broken.Status)
	assert.Equal(t, domain.UmbrellaConditionBroken, broken.Condition)

	drifted, err := store.Umbrellas.GetByCode(ctx, "UMB-000002")
	require.NoError(t, err)
	assert.Equal(t, domain.UmbrellaStatusRented, drifted.Status)
}
