package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/WKolaj/SIDIRO-sub006/pkg/api/auth"
	"github.com/WKolaj/SIDIRO-sub006/pkg/userconfig"
)

// AppHandler serves the registry view of the registered applications.
type AppHandler struct {
	registry *userconfig.Registry
}

// NewAppHandler creates a new AppHandler.
func NewAppHandler(registry *userconfig.Registry) *AppHandler {
	return &AppHandler{registry: registry}
}

// AppResponse is the API representation of one registered application.
type AppResponse struct {
	userconfig.Application

	// DescriptorLoaded reports whether main.app.config.json was present
	// at bootstrap. Applications without it reject every user operation.
	DescriptorLoaded bool `json:"descriptorLoaded"`

	// AppName is the display name from the descriptor, if any.
	AppName string `json:"appName,omitempty"`

	// MaxNumberOfUsers is the descriptor's user limit; null means unlimited.
	MaxNumberOfUsers *int `json:"maxNumberOfUsers,omitempty"`

	// Users is the number of user configurations currently held.
	Users int `json:"users"`
}

func appResponse(coordinator *userconfig.Coordinator) AppResponse {
	resp := AppResponse{
		Application: coordinator.App(),
		Users:       coordinator.UserCount(),
	}
	if settings := coordinator.Settings(); settings != nil {
		resp.DescriptorLoaded = true
		resp.AppName = settings.AppName
		resp.MaxNumberOfUsers = settings.MaxNumberOfUsers
	}
	return resp
}

// List handles GET /api/v1/applications.
// Returns the applications of the caller's tenant, sorted by id.
func (h *AppHandler) List(w http.ResponseWriter, r *http.Request) {
	creds := auth.CredentialsFromContext(r.Context())
	if creds == nil {
		Unauthorized(w, "Authentication required")
		return
	}

	apps := h.registry.Apps()
	response := make([]AppResponse, 0, len(apps))
	for _, app := range apps {
		if app.Tenant != creds.Tenant {
			continue
		}
		coordinator, err := h.registry.Resolve(app.ID)
		if err != nil {
			continue
		}
		response = append(response, appResponse(coordinator))
	}
	WriteJSONOK(w, response)
}

// Get handles GET /api/v1/applications/{appId}.
func (h *AppHandler) Get(w http.ResponseWriter, r *http.Request) {
	creds := auth.CredentialsFromContext(r.Context())
	if creds == nil {
		Unauthorized(w, "Authentication required")
		return
	}

	appID := chi.URLParam(r, "appId")
	if appID == "" {
		BadRequest(w, "Application id is required")
		return
	}

	coordinator, err := h.registry.Resolve(appID)
	if err != nil {
		writeUserConfigError(w, err)
		return
	}
	if coordinator.App().Tenant != creds.Tenant {
		Forbidden(w, "Token tenant does not match the application")
		return
	}

	WriteJSONOK(w, appResponse(coordinator))
}
