package domain

import (
	"fmt"
	"strings"
	"time"
)

type Role string

const (
	RoleUser   Role = "user"
	RoleVendor Role = "vendor"
	RoleAdmin  Role = "admin"
)

type AccountStatus string

const (
	AccountStatusActive    AccountStatus = "active"
	AccountStatusPending   AccountStatus = "pending"
	AccountStatusSuspended AccountStatus = "suspended"
)

// ParseUserStatus accepts the statuses an admin may set on a user account.
func ParseUserStatus(s string) (AccountStatus, error) {
	switch st := AccountStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case AccountStatusActive, AccountStatusSuspended:
		return st, nil
	}
	return "", InvalidInput(fmt.Sprintf("invalid status %q, allowed: active, suspended", s))
}

// ParseVendorStatus accepts the statuses an admin may set on a vendor account.
func ParseVendorStatus(s string) (AccountStatus, error) {
	switch st := AccountStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case AccountStatusActive, AccountStatusPending, AccountStatusSuspended:
		return st, nil
	}
	return "", InvalidInput(fmt.Sprintf("invalid status %q, allowed: active, pending, suspended", s))
}

type User struct {
	ID        int64         `db:"id" json:"id"`
	Email     string        `db:"email" json:"email"`
	Telephone string        `db:"telephone" json:"telephone"`
	FirstName string        `db:"first_name" json:"first_name"`
	Role      Role          `db:"role" json:"role"`
	Status    AccountStatus `db:"status" json:"status"`
	CreatedAt time.Time     `db:"created_at" json:"created_at"`
}

type Vendor struct {
	ID            int64         `db:"id" json:"id"`
	Email         string        `db:"email" json:"email"`
	Telephone     string        `db:"telephone" json:"telephone"`
	ShopName      string        `db:"shop_name" json:"shop_name"`
	ShopOwnerName string        `db:"shop_owner_name" json:"shop_owner_name"`
	BusinessRegNo string        `db:"business_reg_no" json:"business_reg_no"`
	Status        AccountStatus `db:"status" json:"status"`
	Latitude      *float64      `db:"lat" json:"-"`
	Longitude     *float64      `db:"lng" json:"-"`
	Address       *string       `db:"address" json:"address"`
	CreatedAt     time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time     `db:"updated_at" json:"updated_at"`
}

// GeoPoint is a GeoJSON point; coordinates are [lng, lat].
type GeoPoint struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

// Location returns the vendor's pin, or nil when it has not been set.
func (v *Vendor) Location() *GeoPoint {
	if v.Latitude == nil || v.Longitude == nil {
		return nil
	}
	return &GeoPoint{Type: "Point", Coordinates: [2]float64{*v.Longitude, *v.Latitude}}
}
