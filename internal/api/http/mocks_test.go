package http

import (
	"context"
	"time"

	"ombrello-backend/internal/domain"
	"ombrello-backend/internal/repository"
	"ombrello-backend/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockRentalService struct {
	mock.Mock
}

func (m *MockRentalService) Assign(ctx context.Context, vendorID int64, req service.AssignRequest) (*domain.Rental, error) {
	args := m.Called(ctx, vendorID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalService) Return(ctx context.Context, vendorID int64, code string) (*domain.Rental, error) {
	args := m.Called(ctx, vendorID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalService) ListMyActive(ctx context.Context, userID int64) ([]domain.ActiveRental, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ActiveRental), args.Error(1)
}

type MockPricingService struct {
	mock.Mock
}

func (m *MockPricingService) Quote(ctx context.Context, lat, lng *float64) (*domain.PricingResult, error) {
	args := m.Called(ctx, lat, lng)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PricingResult), args.Error(1)
}

type MockInventoryService struct {
	mock.Mock
}

func (m *MockInventoryService) umbrella(args mock.Arguments) (*domain.Umbrella, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Umbrella), args.Error(1)
}
func (m *MockInventoryService) CreateUmbrella(ctx context.Context, req service.CreateUmbrellaRequest) (*domain.Umbrella, error) {
	return m.umbrella(m.Called(ctx, req))
}
func (m *MockInventoryService) CreateUmbrellasForShop(ctx context.Context, vendorID int64, count int, shopName string) ([]domain.Umbrella, error) {
	args := m.Called(ctx, vendorID, count, shopName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Umbrella), args.Error(1)
}
func (m *MockInventoryService) GetUmbrella(ctx context.Context, code string) (*domain.Umbrella, error) {
	return m.umbrella(m.Called(ctx, code))
}
func (m *MockInventoryService) UpdateUmbrella(ctx context.Context, code string, upd repository.UmbrellaUpdate) (*domain.Umbrella, error) {
	return m.umbrella(m.Called(ctx, code, upd))
}
func (m *MockInventoryService) RetireUmbrella(ctx context.Context, code string) (*domain.Umbrella, error) {
	return m.umbrella(m.Called(ctx, code))
}
func (m *MockInventoryService) ReportBroken(ctx context.Context, vendorID int64, code string) (*domain.Umbrella, error) {
	return m.umbrella(m.Called(ctx, vendorID, code))
}
func (m *MockInventoryService) ResolveQRCode(ctx context.Context, qrCode string) (*domain.Umbrella, error) {
	return m.umbrella(m.Called(ctx, qrCode))
}

type MockVendorService struct {
	mock.Mock
}

func (m *MockVendorService) GetProfile(ctx context.Context, vendorID int64) (*domain.Vendor, error) {
	args := m.Called(ctx, vendorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vendor), args.Error(1)
}
func (m *MockVendorService) UpdateLocation(ctx context.Context, vendorID int64, lat, lng float64, address *string) (*domain.Vendor, error) {
	args := m.Called(ctx, vendorID, lat, lng, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vendor), args.Error(1)
}
func (m *MockVendorService) ListLocations(ctx context.Context, limit int) ([]domain.Vendor, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Vendor), args.Error(1)
}
func (m *MockVendorService) EarningsSummary(ctx context.Context, vendorID int64, from, to *time.Time, tz string) (*domain.EarningsSummary, error) {
	args := m.Called(ctx, vendorID, from, to, tz)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EarningsSummary), args.Error(1)
}
func (m *MockVendorService) RecentEarnings(ctx context.Context, vendorID int64, limit int) ([]domain.RecentEarning, error) {
	args := m.Called(ctx, vendorID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RecentEarning), args.Error(1)
}

type MockAdminService struct {
	mock.Mock
}

func (m *MockAdminService) SetUserStatus(ctx context.Context, userID int64, status domain.AccountStatus) (*domain.User, error) {
	args := m.Called(ctx, userID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockAdminService) SetVendorStatus(ctx context.Context, vendorID int64, status domain.AccountStatus) (*domain.Vendor, error) {
	args := m.Called(ctx, vendorID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vendor), args.Error(1)
}
func (m *MockAdminService) MetricsSummary(ctx context.Context, from, to *time.Time) (*domain.MetricsSummary, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MetricsSummary), args.Error(1)
}

type fakePinger struct {
	err error
}

func (p fakePinger) PingContext(context.Context) error {
	return p.err
}
