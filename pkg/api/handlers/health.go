package handlers

import (
	"net/http"
	"time"

	"github.com/WKolaj/SIDIRO-sub006/pkg/userconfig"
)

// HealthHandler handles health check endpoints.
//
// Health endpoints are unauthenticated and provide:
//   - Liveness probe: Is the server process running?
//   - Readiness probe: Has the application registry been loaded?
type HealthHandler struct {
	registry *userconfig.Registry
}

// NewHealthHandler creates a new health handler.
//
// The registry parameter may be nil, in which case the readiness check
// reports unhealthy.
func NewHealthHandler(registry *userconfig.Registry) *HealthHandler {
	return &HealthHandler{registry: registry}
}

// healthResponse is the body of both health endpoints.
type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data,omitempty"`
	Error     string    `json:"error,omitempty"`
}

func healthy(data any) healthResponse {
	return healthResponse{Status: "healthy", Timestamp: time.Now().UTC(), Data: data}
}

func unhealthy(errMsg string) healthResponse {
	return healthResponse{Status: "unhealthy", Timestamp: time.Now().UTC(), Error: errMsg}
}

// Liveness handles GET /health - simple liveness probe.
//
// Returns 200 OK if the server process is running. Designed for
// Kubernetes liveness probes; succeeds as long as the HTTP server is
// responsive.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, healthy(map[string]string{
		"service": "sidiro",
	}))
}

// Readiness handles GET /health/ready - readiness probe.
//
// Returns 200 OK once the application registry has loaded at least one
// application, 503 Service Unavailable otherwise.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	if h.registry == nil {
		WriteJSON(w, http.StatusServiceUnavailable, unhealthy("registry not initialized"))
		return
	}
	if !h.registry.Loaded() {
		WriteJSON(w, http.StatusServiceUnavailable, unhealthy("application registry not loaded"))
		return
	}

	WriteJSON(w, http.StatusOK, healthy(map[string]any{
		"applications": len(h.registry.Apps()),
	}))
}
