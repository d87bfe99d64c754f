package service

import (
	"context"
	"testing"
	"time"

	"ombrello-backend/internal/domain"
	"ombrello-backend/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestAdminService(m *mockRepos) *adminService {
	svc := NewAdminService(m.repositories()).(*adminService)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func TestAdminService_SetUserStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		m := newMockRepos()
		svc := newTestAdminService(m)
		m.users.On("GetByID", ctx, int64(42)).Return(&domain.User{ID: 42, Role: domain.RoleUser}, nil)
		m.users.On("UpdateStatus", ctx, int64(42), domain.AccountStatusSuspended).
			Return(&domain.User{ID: 42, Status: domain.AccountStatusSuspended}, nil)

		u, err := svc.SetUserStatus(ctx, 42, domain.AccountStatusSuspended)
		require.NoError(t, err)
		assert.Equal(t, domain.AccountStatusSuspended, u.Status)
	})

	t.Run("Admin Protected", func(t *testing.T) {
		m := newMockRepos()
		svc := newTestAdminService(m)
		m.users.On("GetByID", ctx, int64(1)).Return(&domain.User{ID: 1, Role: domain.RoleAdmin}, nil)

		_, err := svc.SetUserStatus(ctx, 1, domain.AccountStatusSuspended)
		assert.ErrorIs(t, err, domain.ErrForbidden)
		m.users.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Not Found", func(t *testing.T) {
		m := newMockRepos()
		svc := newTestAdminService(m)
		m.users.On("GetByID", ctx, int64(5)).Return(nil, repository.ErrNotFound)

		_, err := svc.SetUserStatus(ctx, 5, domain.AccountStatusActive)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestAdminService_SetVendorStatus(t *testing.T) {
	ctx := context.Background()
	m := newMockRepos()
	svc := newTestAdminService(m)
	m.vendors.On("UpdateStatus", ctx, int64(7), domain.AccountStatusActive).Return(&domain.Vendor{ID: 7, Status: domain.AccountStatusActive}, nil)
	m.vendors.On("UpdateStatus", ctx, int64(8), domain.AccountStatusActive).Return(nil, repository.ErrNotFound)

	v, err := svc.SetVendorStatus(ctx, 7, domain.AccountStatusActive)
	require.NoError(t, err)
	assert.Equal(t, domain.AccountStatusActive, v.Status)

	_, err = svc.SetVendorStatus(ctx, 8, domain.AccountStatusActive)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAdminService_MetricsSummary(t *testing.T) {
	ctx := context.Background()

	t.Run("Default Window", func(t *testing.T) {
		m := newMockRepos()
		svc := newTestAdminService(m)
		end := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
		start := time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC)
		m.rentals.On("CountOpen", ctx).Return(int64(4), nil)
		m.umbrellas.On("CountByStatus", ctx, domain.UmbrellaStatusAvailable).Return(int64(31), nil)
		m.rentals.On("SumFees", ctx, start, end).Return(decimal.RequireFromString("1234.51"), nil)

		sum, err := svc.MetricsSummary(ctx, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(4), sum.ActiveRentals)
		assert.Equal(t, int64(31), sum.UmbrellasAvailable)
		assert.Equal(t, "617.26", sum.Revenue.StringFixed(2))
		assert.Equal(t, start, sum.DateFrom)
		assert.Equal(t, end.Add(-time.Millisecond), sum.DateTo)
	})

	t.Run("Explicit Dates Are Inclusive", func(t *testing.T) {
		m := newMockRepos()
		svc := newTestAdminService(m)
		from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
		m.rentals.On("CountOpen", ctx).Return(int64(0), nil)
		m.umbrellas.On("CountByStatus", ctx, domain.UmbrellaStatusAvailable).Return(int64(0), nil)
		m.rentals.On("SumFees", ctx, from, from.AddDate(0, 0, 1)).Return(decimal.Zero, nil)

		sum, err := svc.MetricsSummary(ctx, &from, &to)
		require.NoError(t, err)
		assert.True(t, sum.Revenue.IsZero())
	})

	t.Run("Inverted Dates", func(t *testing.T) {
		m := newMockRepos()
		svc := newTestAdminService(m)
		from := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
		to := time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)

		_, err := svc.MetricsSummary(ctx, &from, &to)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}
