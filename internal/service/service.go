package service

import (
	"context"
	"time"

	"ombrello-backend/internal/domain"
	"ombrello-backend/internal/repository"

	"github.com/shopspring/decimal"
)

// AssignRequest is the vendor's scan of an umbrella and a renter.
type AssignRequest struct {
	Code     string
	UserID   int64
	Fee      decimal.NullDecimal
	ShopName string
}

type RentalService interface {
	Assign(ctx context.Context, vendorID int64, req AssignRequest) (*domain.Rental, error)
	Return(ctx context.Context, vendorID int64, code string) (*domain.Rental, error)
	ListMyActive(ctx context.Context, userID int64) ([]domain.ActiveRental, error)
}

type PricingService interface {
	Quote(ctx context.Context, lat, lng *float64) (*domain.PricingResult, error)
}

// CreateUmbrellaRequest creates one umbrella. An empty Code is allocated from the counter.
type CreateUmbrellaRequest struct {
	Code      string
	VendorID  int64
	ShopName  string
	Status    domain.UmbrellaStatus
	Condition domain.UmbrellaCondition
}

type InventoryService interface {
	CreateUmbrella(ctx context.Context, req CreateUmbrellaRequest) (*domain.Umbrella, error)
	CreateUmbrellasForShop(ctx context.Context, vendorID int64, count int, shopName string) ([]domain.Umbrella, error)
	GetUmbrella(ctx context.Context, code string) (*domain.Umbrella, error)
	UpdateUmbrella(ctx context.Context, code string, upd repository.UmbrellaUpdate) (*domain.Umbrella, error)
	RetireUmbrella(ctx context.Context, code string) (*domain.Umbrella, error)
	ReportBroken(ctx context.Context, vendorID int64, code string) (*domain.Umbrella, error)
	ResolveQRCode(ctx context.Context, qrCode string) (*domain.Umbrella, error)
}

type VendorService interface {
	GetProfile(ctx context.Context, vendorID int64) (*domain.Vendor, error)
	UpdateLocation(ctx context.Context, vendorID int64, lat, lng float64, address *string) (*domain.Vendor, error)
	ListLocations(ctx context.Context, limit int) ([]domain.Vendor, error)
	EarningsSummary(ctx context.Context, vendorID int64, from, to *time.Time, tz string) (*domain.EarningsSummary, error)
	RecentEarnings(ctx context.Context, vendorID int64, limit int) ([]domain.RecentEarning, error)
}

type AdminService interface {
	SetUserStatus(ctx context.Context, userID int64, status domain.AccountStatus) (*domain.User, error)
	SetVendorStatus(ctx context.Context, vendorID int64, status domain.AccountStatus) (*domain.Vendor, error)
	MetricsSummary(ctx context.Context, from, to *time.Time) (*domain.MetricsSummary, error)
}

// Clock is swapped in tests.
type Clock func() time.Time

func utcNow() time.Time {
	return time.Now().UTC()
}
