package domain

import (
	"fmt"
	"strings"
	"time"
)

type UmbrellaStatus string

const (
	// UmbrellaStatusUnset is stored as NULL and is treated like available.
	UmbrellaStatusUnset       UmbrellaStatus = ""
	UmbrellaStatusAvailable   UmbrellaStatus = "available"
	UmbrellaStatusRented      UmbrellaStatus = "rented"
	UmbrellaStatusMaintenance UmbrellaStatus = "maintenance"
	UmbrellaStatusLost        UmbrellaStatus = "lost"
	UmbrellaStatusRetired     UmbrellaStatus = "retired"
)

func ParseUmbrellaStatus(s string) (UmbrellaStatus, error) {
	switch st := UmbrellaStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case UmbrellaStatusAvailable, UmbrellaStatusRented, UmbrellaStatusMaintenance,
		UmbrellaStatusLost, UmbrellaStatusRetired:
		return st, nil
	}
	return "", InvalidInput(fmt.Sprintf("invalid umbrella status %q", s))
}

// Rentable reports whether an umbrella in this status can be assigned.
func (s UmbrellaStatus) Rentable() bool {
	return s == UmbrellaStatusUnset || s == UmbrellaStatusAvailable
}

type UmbrellaCondition string

const (
	UmbrellaConditionGood        UmbrellaCondition = "good"
	UmbrellaConditionWorn        UmbrellaCondition = "worn"
	UmbrellaConditionNeedsRepair UmbrellaCondition = "needs_repair"
	UmbrellaConditionBroken      UmbrellaCondition = "broken"
)

func ParseUmbrellaCondition(s string) (UmbrellaCondition, error) {
	switch c := UmbrellaCondition(strings.ToLower(strings.TrimSpace(s))); c {
	case UmbrellaConditionGood, UmbrellaConditionWorn, UmbrellaConditionNeedsRepair, UmbrellaConditionBroken:
		return c, nil
	}
	return "", InvalidInput(fmt.Sprintf("invalid umbrella condition %q", s))
}

type Umbrella struct {
	ID         int64             `db:"id" json:"id"`
	Code       string            `db:"code" json:"code"`
	QRCode     string            `db:"qr_code" json:"qr_code"`
	QRPayload  string            `db:"qr_payload" json:"qr_payload"`
	VendorID   int64             `db:"vendor_id" json:"vendor_id"`
	ShopName   string            `db:"shop_name" json:"shop_name,omitempty"`
	Status     UmbrellaStatus    `db:"status" json:"status"`
	Condition  UmbrellaCondition `db:"condition" json:"condition"`
	RentedDate *time.Time        `db:"rented_date" json:"rented_date,omitempty"`
	CreatedAt  time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time         `db:"updated_at" json:"updated_at"`
}
