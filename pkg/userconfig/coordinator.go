package userconfig

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/WKolaj/SIDIRO-sub006/internal/logger"
	"github.com/WKolaj/SIDIRO-sub006/internal/telemetry"
)

// Directory group names addressable per tenant. The four role groups plus
// exactly one scope group form the full set a coordinator ever touches.
const (
	GroupGlobalAdmin = "globalAdminGroup"
	GroupGlobalUser  = "globalUserGroup"
	GroupLocalAdmin  = "localAdminGroup"
	GroupLocalUser   = "localUserGroup"

	GroupStandardUser  = "standardUserGroup"
	GroupSubtenantUser = "subtenantUserGroup"
)

// RoleGroupName maps a role to its directory group name.
func RoleGroupName(r Role) string {
	switch r {
	case RoleGlobalAdmin:
		return GroupGlobalAdmin
	case RoleLocalAdmin:
		return GroupLocalAdmin
	case RoleGlobalUser:
		return GroupGlobalUser
	default:
		return GroupLocalUser
	}
}

// RequiredGroupNames derives the exact group set a user with the given
// role must belong to: the role group and the application-scope group.
// Pure function, no side effects.
func RequiredGroupNames(r Role, isSubtenantApp bool) []string {
	scope := GroupStandardUser
	if isSubtenantApp {
		scope = GroupSubtenantUser
	}
	return []string{RoleGroupName(r), scope}
}

// Coordinator orchestrates create/read/update/delete of user
// configurations across the directory client, the file-backed cache and
// the derived group memberships. It is the only component allowed to
// mutate both the directory and the cache for a user.
//
// Partial failures are not compensated: directory-side effects already
// committed when a later step fails remain in place and the error is
// surfaced to the caller.
type Coordinator struct {
	app       Application
	settings  *AppSettings
	cache     *Cache
	directory DirectoryClient
	groups    map[string]string // group name -> directory group id
}

// NewCoordinator creates a coordinator for one application. settings may
// be nil when the application descriptor is missing; every operation then
// fails with ErrAppSettingsNotFound. groups maps the addressable group
// names to their directory ids.
func NewCoordinator(app Application, settings *AppSettings, cache *Cache, directory DirectoryClient, groups map[string]string) *Coordinator {
	return &Coordinator{
		app:       app,
		settings:  settings,
		cache:     cache,
		directory: directory,
		groups:    groups,
	}
}

// App returns the application this coordinator serves.
func (c *Coordinator) App() Application {
	return c.app
}

// Settings returns the application descriptor, or nil when it was missing
// at bootstrap.
func (c *Coordinator) Settings() *AppSettings {
	return c.settings
}

// UserCount returns the number of users currently present in the cache.
func (c *Coordinator) UserCount() int {
	return c.cache.CountPresent()
}

func (c *Coordinator) ensureSettings() error {
	if c.settings == nil {
		return ErrAppSettingsNotFound
	}
	return nil
}

func (c *Coordinator) groupID(name string) (string, error) {
	id, ok := c.groups[name]
	if !ok {
		return "", NewUpstreamError("group lookup", fmt.Errorf("group %q is not provisioned for tenant %s", name, c.app.Tenant))
	}
	return id, nil
}

// GetUser resolves one user's stored configuration via the cache
// (read-through). Directory drift is not enforced on the read path: a
// cached record is returned even if the directory no longer lists the
// user.
func (c *Coordinator) GetUser(ctx context.Context, userID string) (*StoredUser, error) {
	ctx, span := telemetry.StartSpan(ctx, telemetry.SpanGetUser)
	defer span.End()
	span.SetAttributes(attribute.String(telemetry.AttrAppID, c.app.ID), attribute.String(telemetry.AttrUserID, userID))

	if err := c.ensureSettings(); err != nil {
		return nil, err
	}
	record, err := c.cache.Get(ctx, userID)
	if err != nil {
		telemetry.RecordError(ctx, err)
		return nil, err
	}
	return c.stored(userID, record), nil
}

// GetAllUsers returns every cached user configuration keyed by user id.
// No additional upstream fetches are triggered.
func (c *Coordinator) GetAllUsers(ctx context.Context) (map[string]*StoredUser, error) {
	_, span := telemetry.StartSpan(ctx, telemetry.SpanListUsers)
	defer span.End()
	span.SetAttributes(attribute.String(telemetry.AttrAppID, c.app.ID))

	if err := c.ensureSettings(); err != nil {
		return nil, err
	}
	records := c.cache.All()
	out := make(map[string]*StoredUser, len(records))
	for id, record := range records {
		out[id] = c.stored(id, record)
	}
	return out, nil
}

// FindByUserName scans the cache for a record with the given login name.
// Used by the handler layer to resolve the caller's own record.
func (c *Coordinator) FindByUserName(userName string) (*StoredUser, bool) {
	for id, record := range c.cache.All() {
		if record.UserName == userName {
			return c.stored(id, record), true
		}
	}
	return nil, false
}

// CreateUser creates a directory user, assigns the derived groups and
// writes the configuration record through the cache.
//
// Preconditions, each a distinct failure with zero side effects:
// descriptor loaded, user limit not reached, payload valid, userName not
// taken anywhere in the tenant. After the directory user exists, later
// failures are NOT rolled back.
func (c *Coordinator) CreateUser(ctx context.Context, payload *UserConfigRecord) (*StoredUser, error) {
	ctx, span := telemetry.StartSpan(ctx, telemetry.SpanCreateUser)
	defer span.End()
	span.SetAttributes(attribute.String(telemetry.AttrAppID, c.app.ID))

	if err := c.ensureSettings(); err != nil {
		return nil, err
	}
	if err := payload.Validate(); err != nil {
		return nil, err
	}
	if max := c.settings.MaxNumberOfUsers; max != nil && c.cache.CountPresent() >= *max {
		return nil, ErrMaxUsersReached
	}

	// Duplicate check is tenant-wide: the same userName under a different
	// subtenant of this tenant still conflicts.
	existing, err := c.directory.ListUsers(ctx, UserQuery{UserName: payload.UserName})
	if err != nil {
		telemetry.RecordError(ctx, err)
		return nil, NewUpstreamError("duplicate-user lookup", err)
	}
	if len(existing) > 0 {
		return nil, ErrUserNameTaken
	}

	nu := NewDirectoryUser{UserName: payload.UserName, Active: true}
	if c.app.IsSubtenant {
		nu.Subtenants = []string{c.app.Subtenant}
	}
	created, err := c.directory.CreateUser(ctx, nu)
	if err != nil {
		telemetry.RecordError(ctx, err)
		return nil, NewUpstreamError("directory user creation", err)
	}
	span.SetAttributes(attribute.String(telemetry.AttrUserID, created.ID))

	for _, name := range RequiredGroupNames(payload.Permissions.Role, c.app.IsSubtenant) {
		id, err := c.groupID(name)
		if err != nil {
			return nil, err
		}
		if err := c.directory.AddUserToGroup(ctx, id, created.ID); err != nil {
			telemetry.RecordError(ctx, err)
			return nil, NewUpstreamError("group assignment "+name, err)
		}
	}

	if err := c.cache.Put(ctx, created.ID, payload); err != nil {
		telemetry.RecordError(ctx, err)
		return nil, err
	}

	logger.InfoCtx(ctx, "user created",
		"app_id", c.app.ID,
		"user_id", created.ID,
		"role", payload.Permissions.Role.String(),
	)
	return c.stored(created.ID, payload), nil
}

// UpdateUser replaces a user's configuration record, adjusting group
// memberships by the minimal delta between the previous and new role.
// Membership changes are attempted before the file write; if a membership
// call fails the old record remains authoritative.
func (c *Coordinator) UpdateUser(ctx context.Context, userID string, payload *UserConfigRecord) (*StoredUser, error) {
	ctx, span := telemetry.StartSpan(ctx, telemetry.SpanUpdateUser)
	defer span.End()
	span.SetAttributes(attribute.String(telemetry.AttrAppID, c.app.ID), attribute.String(telemetry.AttrUserID, userID))

	if err := c.ensureSettings(); err != nil {
		return nil, err
	}
	previous, err := c.cache.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if payload.UserName != previous.UserName {
		return nil, NewValidationError("user's name cannot be modified")
	}
	if err := payload.Validate(); err != nil {
		return nil, err
	}
	if err := c.ensureInTenant(ctx, previous.UserName); err != nil {
		return nil, err
	}

	oldGroups := RequiredGroupNames(previous.Permissions.Role, c.app.IsSubtenant)
	newGroups := RequiredGroupNames(payload.Permissions.Role, c.app.IsSubtenant)

	for _, name := range diffGroups(newGroups, oldGroups) {
		id, err := c.groupID(name)
		if err != nil {
			return nil, err
		}
		if err := c.directory.AddUserToGroup(ctx, id, userID); err != nil {
			telemetry.RecordError(ctx, err)
			return nil, NewUpstreamError("group assignment "+name, err)
		}
	}
	for _, name := range diffGroups(oldGroups, newGroups) {
		id, err := c.groupID(name)
		if err != nil {
			return nil, err
		}
		if err := c.directory.RemoveUserFromGroup(ctx, id, userID); err != nil {
			telemetry.RecordError(ctx, err)
			return nil, NewUpstreamError("group removal "+name, err)
		}
	}

	if err := c.cache.Put(ctx, userID, payload); err != nil {
		telemetry.RecordError(ctx, err)
		return nil, err
	}

	logger.InfoCtx(ctx, "user updated",
		"app_id", c.app.ID,
		"user_id", userID,
		"role", payload.Permissions.Role.String(),
	)
	return c.stored(userID, payload), nil
}

// DeleteUser removes the directory user record, then the cached/file-backed
// configuration. Either failing surfaces as an error without compensating
// action on the other.
func (c *Coordinator) DeleteUser(ctx context.Context, userID string) error {
	ctx, span := telemetry.StartSpan(ctx, telemetry.SpanDeleteUser)
	defer span.End()
	span.SetAttributes(attribute.String(telemetry.AttrAppID, c.app.ID), attribute.String(telemetry.AttrUserID, userID))

	if err := c.ensureSettings(); err != nil {
		return err
	}
	record, err := c.cache.Get(ctx, userID)
	if err != nil {
		return err
	}
	if err := c.ensureInTenant(ctx, record.UserName); err != nil {
		return err
	}

	if err := c.directory.DeleteUser(ctx, userID); err != nil {
		telemetry.RecordError(ctx, err)
		return NewUpstreamError("directory user deletion", err)
	}
	if err := c.cache.Remove(ctx, userID); err != nil {
		telemetry.RecordError(ctx, err)
		return err
	}

	logger.InfoCtx(ctx, "user deleted", "app_id", c.app.ID, "user_id", userID)
	return nil
}

// ensureInTenant verifies the directory still holds a user with the given
// login name in this tenant. Enforced on write paths only.
func (c *Coordinator) ensureInTenant(ctx context.Context, userName string) error {
	users, err := c.directory.ListUsers(ctx, UserQuery{UserName: userName})
	if err != nil {
		return NewUpstreamError("tenant membership lookup", err)
	}
	if len(users) == 0 {
		return ErrUserNotInTenant
	}
	return nil
}

func (c *Coordinator) stored(userID string, record *UserConfigRecord) *StoredUser {
	return &StoredUser{
		UserID:           userID,
		AppID:            c.app.ID,
		UserConfigRecord: *record,
	}
}

// diffGroups returns the names in a that are not in b, preserving order.
func diffGroups(a, b []string) []string {
	var out []string
	for _, name := range a {
		found := false
		for _, other := range b {
			if name == other {
				found = true
				break
			}
		}
		if !found {
			out = append(out, name)
		}
	}
	return out
}
