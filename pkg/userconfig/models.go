// Package userconfig implements the per-application user-configuration
// cache and its synchronization with the platform directory and file
// storage services.
package userconfig

import (
	"sort"
	"strings"
)

// Role is the role of a user within an application.
//
// Roles serialize as their ordinal value; the symbolic names appear in
// validation messages only.
type Role int

const (
	// RoleGlobalAdmin administers every plant of the application.
	RoleGlobalAdmin Role = iota
	// RoleLocalAdmin administers the plants granted to it.
	RoleLocalAdmin
	// RoleGlobalUser reads every plant of the application.
	RoleGlobalUser
	// RoleLocalUser reads the plants granted to it.
	RoleLocalUser
)

// IsValid checks if the role is a valid Role.
func (r Role) IsValid() bool {
	return r >= RoleGlobalAdmin && r <= RoleLocalUser
}

// IsAdmin reports whether the role is an admin-level role.
func (r Role) IsAdmin() bool {
	return r == RoleGlobalAdmin || r == RoleLocalAdmin
}

func (r Role) String() string {
	switch r {
	case RoleGlobalAdmin:
		return "GlobalAdmin"
	case RoleLocalAdmin:
		return "LocalAdmin"
	case RoleGlobalUser:
		return "GlobalUser"
	case RoleLocalUser:
		return "LocalUser"
	default:
		return "Unknown"
	}
}

// PlantPermission is the permission of a user for a single plant.
type PlantPermission int

const (
	// PlantUser grants read access to a plant.
	PlantUser PlantPermission = iota
	// PlantAdmin grants configuration access to a plant.
	PlantAdmin
)

// IsValid checks if the permission is a valid PlantPermission.
func (p PlantPermission) IsValid() bool {
	return p == PlantUser || p == PlantAdmin
}

func (p PlantPermission) String() string {
	switch p {
	case PlantUser:
		return "User"
	case PlantAdmin:
		return "Admin"
	default:
		return "Unknown"
	}
}

// PermissionSet holds a user's role and per-plant permissions.
type PermissionSet struct {
	Role   Role                       `json:"role"`
	Plants map[string]PlantPermission `json:"plants"`
}

// UserConfigRecord is the unit of storage and caching, keyed by user id
// within one application.
//
// Data and Config carry arbitrary plant-scoped JSON values and must cover
// exactly the same plant ids as Permissions.Plants.
type UserConfigRecord struct {
	Data        map[string]any `json:"data"`
	Config      map[string]any `json:"config"`
	UserName    string         `json:"userName"`
	Permissions PermissionSet  `json:"permissions"`
}

// StoredUser is a UserConfigRecord together with its server-assigned
// identity. UserID and AppID are immutable and never accepted from clients.
type StoredUser struct {
	UserID string `json:"userId"`
	AppID  string `json:"appId"`
	UserConfigRecord
}

// Validate checks the structural invariants of the record:
//
//   - userName is present
//   - role and every plant permission are valid enum values
//   - the plant-id sets of data, config and permissions.plants are equal
//   - any Admin plant permission requires an admin-level role
//
// Violations are ValidationErrors, detected before any upstream call.
func (r *UserConfigRecord) Validate() error {
	if r.UserName == "" {
		return NewValidationError("userName is required")
	}
	if !r.Permissions.Role.IsValid() {
		return NewValidationError(
			"invalid role %d: must be 0 (GlobalAdmin), 1 (LocalAdmin), 2 (GlobalUser) or 3 (LocalUser)",
			int(r.Permissions.Role))
	}
	for plant, perm := range r.Permissions.Plants {
		if !perm.IsValid() {
			return NewValidationError(
				"invalid permission %d for plant %q: must be 0 (User) or 1 (Admin)",
				int(perm), plant)
		}
		if perm == PlantAdmin && !r.Permissions.Role.IsAdmin() {
			return NewValidationError(
				"plant %q has Admin permission but role is %s: Admin plant permission requires GlobalAdmin or LocalAdmin",
				plant, r.Permissions.Role)
		}
	}

	dataPlants := plantIDs(r.Data)
	configPlants := plantIDs(r.Config)
	permPlants := make([]string, 0, len(r.Permissions.Plants))
	for plant := range r.Permissions.Plants {
		permPlants = append(permPlants, plant)
	}
	sort.Strings(permPlants)

	if !equalPlantSets(dataPlants, configPlants) {
		return NewValidationError("plant ids of data [%s] do not match plant ids of config [%s]",
			strings.Join(dataPlants, ", "), strings.Join(configPlants, ", "))
	}
	if !equalPlantSets(dataPlants, permPlants) {
		return NewValidationError("plant ids of data [%s] do not match plant ids of permissions [%s]",
			strings.Join(dataPlants, ", "), strings.Join(permPlants, ", "))
	}
	return nil
}

func plantIDs(m map[string]any) []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func equalPlantSets(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Application identifies one tenant- or subtenant-scoped application
// instance. It is the unit of isolation: no operation on one application
// may touch another application's cache or files.
type Application struct {
	// ID is the application id string ("ten-<tenant>" or
	// "ten-<tenant>-sub-<subtenant>").
	ID string `json:"appId"`

	// Tenant is the owning tenant name.
	Tenant string `json:"tenant"`

	// Subtenant is set for subtenant-scoped applications only.
	Subtenant string `json:"subtenant,omitempty"`

	// ContainerID is the file-storage container (asset id) holding the
	// application's configuration files.
	ContainerID string `json:"containerId"`

	// IsSubtenant marks subtenant-scoped applications.
	IsSubtenant bool `json:"isSubtenant"`
}

// AppID derives the application id for the given scope.
func AppID(tenant, subtenant string) string {
	if subtenant == "" {
		return "ten-" + tenant
	}
	return "ten-" + tenant + "-sub-" + subtenant
}

// AppSettings is the application descriptor stored in
// main.app.config.json. A missing descriptor is fatal to the owning
// application: every coordinator operation fails with
// ErrAppSettingsNotFound.
type AppSettings struct {
	// MaxNumberOfUsers caps the number of file-backed users for the
	// application. nil disables the limit.
	MaxNumberOfUsers *int `json:"maxNumberOfUsers"`

	// AppName is an optional display name.
	AppName string `json:"appName,omitempty"`

	// Config carries free-form application-level configuration.
	Config map[string]any `json:"config,omitempty"`
}
