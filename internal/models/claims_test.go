package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStaffClaims(t *testing.T) {
	admin := &StaffClaims{Role: RoleAdmin}
	staff := &StaffClaims{Role: RoleStaff, Permissions: []string{PermissionEscrowRead}}
	merchant := &StaffClaims{Role: "merchant", Permissions: []string{PermissionEscrowRead}}

	assert.True(t, admin.IsStaff())
	assert.True(t, admin.HasPermission(PermissionEscrowRead))
	assert.True(t, staff.HasPermission(PermissionEscrowRead))
	assert.False(t, (&StaffClaims{Role: RoleStaff}).HasPermission(PermissionEscrowRead))
	assert.False(t, merchant.IsStaff())
}
