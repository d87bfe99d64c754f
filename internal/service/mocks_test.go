package service

import (
	"context"
	"time"

	"ombrello-backend/internal/domain"
	"ombrello-backend/internal/events"
	"ombrello-backend/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) UpdateStatus(ctx context.Context, id int64, status domain.AccountStatus) (*domain.User, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockVendorRepo
type MockVendorRepo struct {
	mock.Mock
}

func (m *MockVendorRepo) GetByID(ctx context.Context, id int64) (*domain.Vendor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vendor), args.Error(1)
}
func (m *MockVendorRepo) UpdateLocation(ctx context.Context, id int64, lat, lng float64, address *string) (*domain.Vendor, error) {
	args := m.Called(ctx, id, lat, lng, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vendor), args.Error(1)
}
func (m *MockVendorRepo) ListWithLocation(ctx context.Context, limit int) ([]domain.Vendor, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Vendor), args.Error(1)
}
func (m *MockVendorRepo) UpdateStatus(ctx context.Context, id int64, status domain.AccountStatus) (*domain.Vendor, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vendor), args.Error(1)
}

// MockUmbrellaRepo
type MockUmbrellaRepo struct {
	mock.Mock
}

func (m *MockUmbrellaRepo) umbrella(args mock.Arguments) (*domain.Umbrella, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Umbrella), args.Error(1)
}
func (m *MockUmbrellaRepo) Create(ctx context.Context, u *domain.Umbrella) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}
func (m *MockUmbrellaRepo) GetByCode(ctx context.Context, code string) (*domain.Umbrella, error) {
	return m.umbrella(m.Called(ctx, code))
}
func (m *MockUmbrellaRepo) GetByCodeForUpdate(ctx context.Context, code string) (*domain.Umbrella, error) {
	return m.umbrella(m.Called(ctx, code))
}
func (m *MockUmbrellaRepo) GetByQRCode(ctx context.Context, qrCode string) (*domain.Umbrella, error) {
	return m.umbrella(m.Called(ctx, qrCode))
}
func (m *MockUmbrellaRepo) QRCodeExists(ctx context.Context, qrCode string) (bool, error) {
	args := m.Called(ctx, qrCode)
	return args.Bool(0), args.Error(1)
}
func (m *MockUmbrellaRepo) MarkRented(ctx context.Context, code string, at time.Time) (bool, error) {
	args := m.Called(ctx, code, at)
	return args.Bool(0), args.Error(1)
}
func (m *MockUmbrellaRepo) SetStatus(ctx context.Context, code string, status domain.UmbrellaStatus) (bool, error) {
	args := m.Called(ctx, code, status)
	return args.Bool(0), args.Error(1)
}
func (m *MockUmbrellaRepo) MarkBroken(ctx context.Context, code string) (*domain.Umbrella, error) {
	return m.umbrella(m.Called(ctx, code))
}
func (m *MockUmbrellaRepo) Update(ctx context.Context, code string, upd repository.UmbrellaUpdate) (*domain.Umbrella, error) {
	return m.umbrella(m.Called(ctx, code, upd))
}
func (m *MockUmbrellaRepo) CountByStatus(ctx context.Context, status domain.UmbrellaStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockUmbrellaRepo) ReleaseOrphaned(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}
func (m *MockUmbrellaRepo) ClaimRented(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

// MockRentalRepo
type MockRentalRepo struct {
	mock.Mock
}

func (m *MockRentalRepo) Create(ctx context.Context, r *domain.Rental) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}
func (m *MockRentalRepo) GetOpenByCode(ctx context.Context, code string) (*domain.Rental, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) CloseOpen(ctx context.Context, code string, at time.Time) (*domain.Rental, error) {
	args := m.Called(ctx, code, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) ListOpenByUser(ctx context.Context, userID int64, limit int) ([]domain.ActiveRental, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ActiveRental), args.Error(1)
}
func (m *MockRentalRepo) CountOpen(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockRentalRepo) SumFees(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockRentalRepo) VendorEarningsTotals(ctx context.Context, vendorID int64, from, to time.Time) (decimal.Decimal, int64, error) {
	args := m.Called(ctx, vendorID, from, to)
	return args.Get(0).(decimal.Decimal), args.Get(1).(int64), args.Error(2)
}
func (m *MockRentalRepo) VendorEarningsDaily(ctx context.Context, vendorID int64, from, to time.Time, tz string) ([]domain.DailyEarnings, error) {
	args := m.Called(ctx, vendorID, from, to, tz)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DailyEarnings), args.Error(1)
}
func (m *MockRentalRepo) VendorRecentEarnings(ctx context.Context, vendorID int64, limit int) ([]domain.RecentEarning, error) {
	args := m.Called(ctx, vendorID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RecentEarning), args.Error(1)
}

// MockCounterRepo
type MockCounterRepo struct {
	mock.Mock
}

func (m *MockCounterRepo) Reserve(ctx context.Context, name string, n int) (int64, error) {
	args := m.Called(ctx, name, n)
	return args.Get(0).(int64), args.Error(1)
}

// MockPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishRental(ctx context.Context, ev events.RentalEvent) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}
func (m *MockPublisher) Close() error {
	return m.Called().Error(0)
}

// MockWeather
type MockWeather struct {
	mock.Mock
}

func (m *MockWeather) Get(ctx context.Context, lat, lng float64) (domain.WeatherObservation, error) {
	args := m.Called(ctx, lat, lng)
	return args.Get(0).(domain.WeatherObservation), args.Error(1)
}

type mockRepos struct {
	users     *MockUserRepo
	vendors   *MockVendorRepo
	umbrellas *MockUmbrellaRepo
	rentals   *MockRentalRepo
	counters  *MockCounterRepo
}

func newMockRepos() *mockRepos {
	return &mockRepos{
		users:     new(MockUserRepo),
		vendors:   new(MockVendorRepo),
		umbrellas: new(MockUmbrellaRepo),
		rentals:   new(MockRentalRepo),
		counters:  new(MockCounterRepo),
	}
}

func (m *mockRepos) repositories() repository.Repositories {
	return repository.Repositories{
		Users:     m.users,
		Vendors:   m.vendors,
		Umbrellas: m.umbrellas,
		Rentals:   m.rentals,
		Counters:  m.counters,
	}
}

// fakeTx runs fn against the mock repositories and counts attempts.
type fakeTx struct {
	repos repository.Repositories
	calls int
}

func (f *fakeTx) InTx(ctx context.Context, fn func(r repository.Repositories) error) error {
	f.calls++
	return fn(f.repos)
}
