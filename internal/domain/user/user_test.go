package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanAccess(t *testing.T) {
	assert.True(t, RoleAdmin.CanAccess("users"))
	assert.True(t, RoleStaff.CanAccess("bookings"))
	assert.False(t, RoleStaff.CanAccess("users"))
	assert.True(t, RoleGuest.CanAccess("settings"))
	assert.False(t, RoleGuest.CanAccess("rooms"))
	assert.False(t, Role("visitor").CanAccess("settings"))
}

func TestPermissions_ReturnsCopy(t *testing.T) {
	perms := RoleStaff.Permissions()
	assert.Equal(t, []string{"rooms", "bookings", "guests", "settings"}, perms)

	perms[0] = "mutated"
	assert.Equal(t, []string{"rooms", "bookings", "guests", "settings"}, RoleStaff.Permissions())
}

func TestRoleIsValid(t *testing.T) {
	assert.True(t, RoleAdmin.IsValid())
	assert.True(t, RoleGuest.IsValid())
	assert.False(t, Role("owner").IsValid())
}

func TestAccountStatusIsValid(t *testing.T) {
	assert.True(t, AccountActive.IsValid())
	assert.True(t, AccountInactive.IsValid())
	assert.False(t, AccountStatus("banned").IsValid())
}
