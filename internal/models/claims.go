package models

import "github.com/golang-jwt/jwt/v5"

// PermissionEscrowRead opens the escrow payout views.
const PermissionEscrowRead = "escrow:read"

// Staff roles allowed into the dashboard
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

type StaffClaims struct {
	jwt.RegisteredClaims
	UserID      string   `json:"user_id"`
	Email       string   `json:"email"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
}

// HasPermission checks if the claims include a specific permission
func (c *StaffClaims) HasPermission(permission string) bool {
	if c.Role == RoleAdmin {
		return true
	}
	for _, p := range c.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// IsStaff reports whether the role may open the dashboard at all.
func (c *StaffClaims) IsStaff() bool {
	return c.Role == RoleAdmin || c.Role == RoleStaff
}
