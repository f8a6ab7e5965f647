package userconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppID(t *testing.T) {
	assert.Equal(t, "ten-factory", AppID("factory", ""))
	assert.Equal(t, "ten-factory-sub-line2", AppID("factory", "line2"))
}

func TestUserIDFromFileName(t *testing.T) {
	tests := []struct {
		name   string
		userID string
		ok     bool
	}{
		{"testLocalAdmin22.user.config.json", "testLocalAdmin22", true},
		{"main.app.config.json", "", false},
		{".user.config.json", "", false},
		{"notes.txt", "", false},
	}
	for _, tt := range tests {
		userID, ok := UserIDFromFileName(tt.name)
		assert.Equal(t, tt.ok, ok, tt.name)
		assert.Equal(t, tt.userID, userID, tt.name)
	}
}

func TestRoleString(t *testing.T) {
	assert.Equal(t, "GlobalAdmin", RoleGlobalAdmin.String())
	assert.Equal(t, "LocalAdmin", RoleLocalAdmin.String())
	assert.Equal(t, "GlobalUser", RoleGlobalUser.String())
	assert.Equal(t, "LocalUser", RoleLocalUser.String())
	assert.Equal(t, "Unknown", Role(42).String())
}

func TestRoleIsAdmin(t *testing.T) {
	assert.True(t, RoleGlobalAdmin.IsAdmin())
	assert.True(t, RoleLocalAdmin.IsAdmin())
	assert.False(t, RoleGlobalUser.IsAdmin())
	assert.False(t, RoleLocalUser.IsAdmin())
}

func TestValidateAcceptsValidRecord(t *testing.T) {
	require.NoError(t, record("alice@example.com", RoleLocalAdmin, "plant1", "plant2").Validate())
	require.NoError(t, record("bob@example.com", RoleGlobalUser).Validate())
}

func TestValidateRejectsMissingUserName(t *testing.T) {
	r := record("", RoleLocalUser, "plant1")
	err := r.Validate()
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Contains(t, err.Error(), "userName")
}

func TestValidateRejectsInvalidRole(t *testing.T) {
	r := record("alice@example.com", RoleLocalUser, "plant1")
	r.Permissions.Role = Role(9)
	err := r.Validate()
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Contains(t, err.Error(), "invalid role")
}

func TestValidateRejectsInvalidPlantPermission(t *testing.T) {
	r := record("alice@example.com", RoleLocalUser, "plant1")
	r.Permissions.Plants["plant1"] = PlantPermission(7)
	err := r.Validate()
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Contains(t, err.Error(), "invalid permission")
}

func TestValidateRejectsAdminPermissionForUserRole(t *testing.T) {
	r := record("alice@example.com", RoleLocalUser, "plant1")
	r.Permissions.Plants["plant1"] = PlantAdmin
	err := r.Validate()
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Contains(t, err.Error(), "Admin plant permission")
}

func TestValidateRejectsMismatchedPlantSets(t *testing.T) {
	r := record("alice@example.com", RoleLocalUser, "plant1")

	// data covers a plant the permissions do not
	r.Data["plant2"] = map[string]any{}
	r.Config["plant2"] = map[string]any{}
	err := r.Validate()
	require.Error(t, err)
	assert.True(t, IsValidation(err))

	// config diverges from data
	r = record("alice@example.com", RoleLocalUser, "plant1")
	delete(r.Config, "plant1")
	err = r.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config")
}
