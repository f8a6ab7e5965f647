package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/WKolaj/SIDIRO-sub006/pkg/userconfig"
)

// decodeJSONBody decodes a JSON request body into the provided pointer.
// Returns true if successful, false if decoding fails (error response is written automatically).
func decodeJSONBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		BadRequest(w, "Invalid request body")
		return false
	}
	return true
}

// writeUserConfigError maps a coordinator error to its problem response.
func writeUserConfigError(w http.ResponseWriter, err error) {
	switch {
	case userconfig.IsValidation(err):
		BadRequest(w, err.Error())
	case errors.Is(err, userconfig.ErrAppNotFound):
		NotFound(w, "Application not found")
	case errors.Is(err, userconfig.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, userconfig.ErrAppSettingsNotFound):
		NotFound(w, "Application descriptor is missing")
	case errors.Is(err, userconfig.ErrUserNotInTenant):
		NotFound(w, "User no longer exists in the tenant directory")
	case errors.Is(err, userconfig.ErrUserNameTaken):
		Conflict(w, "User already exists in the tenant")
	case errors.Is(err, userconfig.ErrMaxUsersReached):
		Conflict(w, "Maximum number of users reached for the application")
	case userconfig.IsUpstream(err):
		BadGateway(w, "Upstream platform service failed")
	default:
		InternalServerError(w, "Operation failed")
	}
}
