package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ombrello-backend/internal/domain"
	"ombrello-backend/internal/logger"
	"ombrello-backend/internal/repository"
	"ombrello-backend/internal/utils"
)

const (
	maxBulkUmbrellas  = 500
	maxShortCodeTries = 10
)

type inventoryService struct {
	tx            repository.TxRunner
	repos         repository.Repositories
	shortlinkBase string
	newShortCode  func(n int) (string, error)
}

func NewInventoryService(tx repository.TxRunner, repos repository.Repositories, shortlinkBase string) InventoryService {
	return &inventoryService{
		tx:            tx,
		repos:         repos,
		shortlinkBase: shortlinkBase,
		newShortCode:  utils.NewShortCode,
	}
}

func (s *inventoryService) CreateUmbrella(ctx context.Context, req CreateUmbrellaRequest) (*domain.Umbrella, error) {
	vendor, err := s.vendorForInventory(ctx, req.VendorID)
	if err != nil {
		return nil, err
	}
	if req.Status == domain.UmbrellaStatusUnset {
		req.Status = domain.UmbrellaStatusAvailable
	}
	if req.Status == domain.UmbrellaStatusRented {
		return nil, domain.InvalidInput("a new umbrella cannot start as rented")
	}
	if req.Condition == "" {
		req.Condition = domain.UmbrellaConditionGood
	}
	shopName := strings.TrimSpace(req.ShopName)
	if shopName == "" {
		shopName = vendor.ShopName
	}

	var created *domain.Umbrella
	err = s.tx.InTx(ctx, func(r repository.Repositories) error {
		code := strings.TrimSpace(req.Code)
		if code == "" {
			end, err := r.Counters.Reserve(ctx, utils.UmbrellaCounter, 1)
			if err != nil {
				return asInternal(err)
			}
			code = utils.UmbrellaCode(end)
		}

		u, err := s.insert(ctx, r, code, vendor.ID, shopName, req.Status, req.Condition)
		if err != nil {
			return err
		}
		created = u
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "Umbrella created", "code", created.Code, "vendorID", created.VendorID)
	return created, nil
}

// CreateUmbrellasForShop reserves a contiguous block of codes and creates them in one transaction.
func (s *inventoryService) CreateUmbrellasForShop(ctx context.Context, vendorID int64, count int, shopName string) ([]domain.Umbrella, error) {
	if count < 1 || count > maxBulkUmbrellas {
		return nil, domain.InvalidInput(fmt.Sprintf("count must be between 1 and %d", maxBulkUmbrellas))
	}
	vendor, err := s.vendorForInventory(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	shopName = strings.TrimSpace(shopName)
	if shopName == "" {
		shopName = vendor.ShopName
	}

	var created []domain.Umbrella
	err = s.tx.InTx(ctx, func(r repository.Repositories) error {
		end, err := r.Counters.Reserve(ctx, utils.UmbrellaCounter, count)
		if err != nil {
			return asInternal(err)
		}
		start := end - int64(count) + 1

		created = make([]domain.Umbrella, 0, count)
		for seq := start; seq <= end; seq++ {
			u, err := s.insert(ctx, r, utils.UmbrellaCode(seq), vendor.ID, shopName, domain.UmbrellaStatusAvailable, domain.UmbrellaConditionGood)
			if err != nil {
				return err
			}
			created = append(created, *u)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "Umbrellas created for shop", "vendorID", vendor.ID, "count", len(created))
	return created, nil
}

func (s *inventoryService) insert(ctx context.Context, r repository.Repositories, code string, vendorID int64, shopName string, status domain.UmbrellaStatus, condition domain.UmbrellaCondition) (*domain.Umbrella, error) {
	qr, err := s.uniqueShortCode(ctx, r)
	if err != nil {
		return nil, err
	}
	u := &domain.Umbrella{
		Code:      code,
		QRCode:    qr,
		QRPayload: utils.QRPayload(s.shortlinkBase, qr),
		VendorID:  vendorID,
		ShopName:  shopName,
		Status:    status,
		Condition: condition,
	}
	if err := r.Umbrellas.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, domain.Conflict(fmt.Sprintf("Umbrella %s already exists", code))
		}
		return nil, asInternal(err)
	}
	return u, nil
}

func (s *inventoryService) uniqueShortCode(ctx context.Context, r repository.Repositories) (string, error) {
	for i := 0; i < maxShortCodeTries; i++ {
		code, err := s.newShortCode(utils.ShortCodeLength)
		if err != nil {
			return "", domain.Internal("Could not generate a QR code", err)
		}
		exists, err := r.Umbrellas.QRCodeExists(ctx, code)
		if err != nil {
			return "", asInternal(err)
		}
		if !exists {
			return code, nil
		}
	}
	return "", domain.Internal("Could not generate a unique QR code", nil)
}

func (s *inventoryService) vendorForInventory(ctx context.Context, vendorID int64) (*domain.Vendor, error) {
	if vendorID <= 0 {
		return nil, domain.InvalidInput("vendor_id is required")
	}
	vendor, err := s.repos.Vendors.GetByID(ctx, vendorID)
	if err != nil {
		return nil, notFoundOr(err, "Vendor not found")
	}
	if vendor.Status != domain.AccountStatusActive {
		return nil, domain.Conflict(fmt.Sprintf("Vendor is not active (status=%s)", vendor.Status))
	}
	return vendor, nil
}

func (s *inventoryService) GetUmbrella(ctx context.Context, code string) (*domain.Umbrella, error) {
	u, err := s.repos.Umbrellas.GetByCode(ctx, strings.TrimSpace(code))
	if err != nil {
		return nil, notFoundOr(err, "Umbrella not found")
	}
	return u, nil
}

func (s *inventoryService) UpdateUmbrella(ctx context.Context, code string, upd repository.UmbrellaUpdate) (*domain.Umbrella, error) {
	if upd.Status == nil && upd.Condition == nil && upd.ShopName == nil {
		return nil, domain.InvalidInput("nothing to update")
	}
	// Only assign opens a rental, so rented is never set by hand.
	if upd.Status != nil && *upd.Status == domain.UmbrellaStatusRented {
		return nil, domain.InvalidInput("status=rented can only be set by assigning a rental")
	}

	code = strings.TrimSpace(code)
	var updated *domain.Umbrella
	err := s.tx.InTx(ctx, func(r repository.Repositories) error {
		if _, err := r.Umbrellas.GetByCodeForUpdate(ctx, code); err != nil {
			return notFoundOr(err, "Umbrella not found")
		}
		if upd.Status != nil {
			if _, err := r.Rentals.GetOpenByCode(ctx, code); err == nil {
				return domain.Conflict("Umbrella is currently rented; return it before changing status")
			} else if !errors.Is(err, repository.ErrNotFound) {
				return asInternal(err)
			}
		}
		u, err := r.Umbrellas.Update(ctx, code, upd)
		if err != nil {
			return notFoundOr(err, "Umbrella not found")
		}
		updated = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// RetireUmbrella is a soft delete. Umbrellas out on rent must be returned first.
func (s *inventoryService) RetireUmbrella(ctx context.Context, code string) (*domain.Umbrella, error) {
	code = strings.TrimSpace(code)
	var retired *domain.Umbrella
	err := s.tx.InTx(ctx, func(r repository.Repositories) error {
		if _, err := r.Umbrellas.GetByCodeForUpdate(ctx, code); err != nil {
			return notFoundOr(err, "Umbrella not found")
		}
		if _, err := r.Rentals.GetOpenByCode(ctx, code); err == nil {
			return domain.Conflict("Umbrella is currently rented")
		} else if !errors.Is(err, repository.ErrNotFound) {
			return asInternal(err)
		}
		status := domain.UmbrellaStatusRetired
		u, err := r.Umbrellas.Update(ctx, code, repository.UmbrellaUpdate{Status: &status})
		if err != nil {
			return asInternal(err)
		}
		retired = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return retired, nil
}

func (s *inventoryService) ReportBroken(ctx context.Context, vendorID int64, code string) (*domain.Umbrella, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, domain.InvalidInput("code is required")
	}
	vendor, err := s.repos.Vendors.GetByID(ctx, vendorID)
	if err != nil {
		return nil, notFoundOr(err, "Vendor not found")
	}
	if err := requireActiveVendor(vendor); err != nil {
		return nil, err
	}

	u, err := s.repos.Umbrellas.MarkBroken(ctx, code)
	if err != nil {
		return nil, notFoundOr(err, "Umbrella not found")
	}
	logger.InfoContext(ctx, "Umbrella reported broken", "code", code, "vendorID", vendorID)
	return u, nil
}

func (s *inventoryService) ResolveQRCode(ctx context.Context, qrCode string) (*domain.Umbrella, error) {
	qrCode = strings.ToUpper(strings.TrimSpace(qrCode))
	if len(qrCode) != utils.ShortCodeLength {
		return nil, domain.NotFound("Umbrella not found")
	}
	u, err := s.repos.Umbrellas.GetByQRCode(ctx, qrCode)
	if err != nil {
		return nil, notFoundOr(err, "Umbrella not found")
	}
	return u, nil
}
