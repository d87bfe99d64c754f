package config

import "ombrello-backend/internal/domain"

type SecurityLevel int

const (
	SecurityPublic SecurityLevel = iota // No authentication
	SecurityUser                        // Access token, role user
	SecurityVendor                      // Access token, role vendor
	SecurityAdmin                       // Access token, role admin
)

// RouteSecurityConfig maps named HTTP routes to their required security level.
// Routes missing from the map are denied.
var RouteSecurityConfig = map[string]SecurityLevel{
	// Operational
	"health":  SecurityPublic,
	"metrics": SecurityPublic,

	// Pricing & QR - Public
	"pricing.simple": SecurityPublic,
	"qr.resolve":     SecurityPublic,

	// Vendor directory - Public
	"vendors.locations": SecurityPublic,

	// Rentals - Vendor
	"rentals.assign":         SecurityVendor,
	"rentals.return":         SecurityVendor,
	"umbrellas.reportBroken": SecurityVendor,

	// Rentals - User
	"rentals.myActive": SecurityUser,

	// Vendor self-service
	"vendors.me":               SecurityVendor,
	"vendors.me.location":      SecurityVendor,
	"vendors.earnings.summary": SecurityVendor,
	"vendors.earnings.recent":  SecurityVendor,

	// Admin
	"admin.umbrellas.create": SecurityAdmin,
	"admin.umbrellas.bulk":   SecurityAdmin,
	"admin.umbrellas.get":    SecurityAdmin,
	"admin.umbrellas.update": SecurityAdmin,
	"admin.umbrellas.retire": SecurityAdmin,
	"admin.users.status":     SecurityAdmin,
	"admin.vendors.status":   SecurityAdmin,
	"admin.metrics.summary":  SecurityAdmin,
}

// Allows reports whether a token role satisfies the level. Admins may call
// any user-level route.
func (l SecurityLevel) Allows(role domain.Role) bool {
	switch l {
	case SecurityPublic:
		return true
	case SecurityUser:
		return role == domain.RoleUser || role == domain.RoleAdmin
	case SecurityVendor:
		return role == domain.RoleVendor
	case SecurityAdmin:
		return role == domain.RoleAdmin
	}
	return false
}
