package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/WKolaj/SIDIRO-sub006/pkg/api/auth"
	"github.com/WKolaj/SIDIRO-sub006/pkg/userconfig"
)

// UserHandler handles the per-application user-configuration endpoints.
type UserHandler struct {
	registry *userconfig.Registry
}

// NewUserHandler creates a new UserHandler. The registry is required;
// returns an error so callers can handle the misconfiguration at startup.
func NewUserHandler(registry *userconfig.Registry) (*UserHandler, error) {
	if registry == nil {
		return nil, errors.New("NewUserHandler: registry is required and must not be nil")
	}
	return &UserHandler{registry: registry}, nil
}

// resolve resolves the {appId} route parameter to its coordinator and
// checks the caller's tenant scope against the application. On failure the
// problem response is already written and ok is false.
func (h *UserHandler) resolve(w http.ResponseWriter, r *http.Request) (*userconfig.Coordinator, *auth.Credentials, bool) {
	creds := auth.CredentialsFromContext(r.Context())
	if creds == nil {
		Unauthorized(w, "Authentication required")
		return nil, nil, false
	}

	appID := chi.URLParam(r, "appId")
	if appID == "" {
		BadRequest(w, "Application id is required")
		return nil, nil, false
	}

	coordinator, err := h.registry.Resolve(appID)
	if err != nil {
		writeUserConfigError(w, err)
		return nil, nil, false
	}

	app := coordinator.App()
	if creds.Tenant != app.Tenant {
		Forbidden(w, "Token tenant does not match the application")
		return nil, nil, false
	}
	if app.IsSubtenant && creds.Subtenant != app.Subtenant {
		Forbidden(w, "Token subtenant does not match the application")
		return nil, nil, false
	}

	return coordinator, creds, true
}

// callerIsAdmin resolves the caller's own record in the application and
// reports whether it carries an admin-level role. Callers without a record
// in the application are not admins.
func callerIsAdmin(coordinator *userconfig.Coordinator, creds *auth.Credentials) (*userconfig.StoredUser, bool) {
	self, ok := coordinator.FindByUserName(creds.UserName)
	if !ok {
		return nil, false
	}
	return self, self.Permissions.Role.IsAdmin()
}

// List handles GET /api/v1/applications/{appId}/users.
// Returns every user configuration of the application, keyed by user id.
// Admin only.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	coordinator, creds, ok := h.resolve(w, r)
	if !ok {
		return
	}
	if _, admin := callerIsAdmin(coordinator, creds); !admin {
		Forbidden(w, "Admin access required")
		return
	}

	users, err := coordinator.GetAllUsers(r.Context())
	if err != nil {
		writeUserConfigError(w, err)
		return
	}
	WriteJSONOK(w, users)
}

// Get handles GET /api/v1/applications/{appId}/users/{id}.
// Admins can get any user, non-admins only their own configuration.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	coordinator, creds, ok := h.resolve(w, r)
	if !ok {
		return
	}

	userID := chi.URLParam(r, "id")
	if userID == "" {
		BadRequest(w, "User id is required")
		return
	}

	self, admin := callerIsAdmin(coordinator, creds)
	if !admin && (self == nil || self.UserID != userID) {
		Forbidden(w, "Access denied")
		return
	}

	user, err := coordinator.GetUser(r.Context(), userID)
	if err != nil {
		writeUserConfigError(w, err)
		return
	}
	WriteJSONOK(w, user)
}

// Create handles POST /api/v1/applications/{appId}/users.
// Creates a directory user with its derived groups and stores the
// configuration record. Admin only.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	coordinator, creds, ok := h.resolve(w, r)
	if !ok {
		return
	}
	if _, admin := callerIsAdmin(coordinator, creds); !admin {
		Forbidden(w, "Admin access required")
		return
	}

	var payload userconfig.UserConfigRecord
	if !decodeJSONBody(w, r, &payload) {
		return
	}

	user, err := coordinator.CreateUser(r.Context(), &payload)
	if err != nil {
		writeUserConfigError(w, err)
		return
	}
	WriteJSONCreated(w, user)
}

// Update handles PUT /api/v1/applications/{appId}/users/{id}.
// Replaces the configuration record; the login name is immutable.
// Admin only.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	coordinator, creds, ok := h.resolve(w, r)
	if !ok {
		return
	}
	if _, admin := callerIsAdmin(coordinator, creds); !admin {
		Forbidden(w, "Admin access required")
		return
	}

	userID := chi.URLParam(r, "id")
	if userID == "" {
		BadRequest(w, "User id is required")
		return
	}

	var payload userconfig.UserConfigRecord
	if !decodeJSONBody(w, r, &payload) {
		return
	}

	user, err := coordinator.UpdateUser(r.Context(), userID, &payload)
	if err != nil {
		writeUserConfigError(w, err)
		return
	}
	WriteJSONOK(w, user)
}

// Delete handles DELETE /api/v1/applications/{appId}/users/{id}.
// Removes the directory user and its stored configuration. Admin only.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	coordinator, creds, ok := h.resolve(w, r)
	if !ok {
		return
	}
	if _, admin := callerIsAdmin(coordinator, creds); !admin {
		Forbidden(w, "Admin access required")
		return
	}

	userID := chi.URLParam(r, "id")
	if userID == "" {
		BadRequest(w, "User id is required")
		return
	}

	if err := coordinator.DeleteUser(r.Context(), userID); err != nil {
		writeUserConfigError(w, err)
		return
	}
	WriteNoContent(w)
}
