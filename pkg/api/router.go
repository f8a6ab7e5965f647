package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/WKolaj/SIDIRO-sub006/internal/logger"
	"github.com/WKolaj/SIDIRO-sub006/pkg/api/auth"
	"github.com/WKolaj/SIDIRO-sub006/pkg/api/handlers"
	apiMiddleware "github.com/WKolaj/SIDIRO-sub006/pkg/api/middleware"
	"github.com/WKolaj/SIDIRO-sub006/pkg/metrics"
	"github.com/WKolaj/SIDIRO-sub006/pkg/userconfig"
)

// NewRouter creates and configures the chi router with all middleware and routes.
//
// The router is configured with:
//   - Request ID middleware for request tracking
//   - Real IP extraction for proper client identification
//   - Custom request logging using the internal logger
//   - Panic recovery to prevent server crashes
//   - Request timeout to prevent hung requests
//   - Prometheus request instrumentation (no-op when metrics are disabled)
//
// Routes:
//   - GET /health - Liveness probe
//   - GET /health/ready - Readiness probe
//   - GET /api/v1/applications - Registered application list
//   - GET /api/v1/applications/{appId} - Application info
//   - GET /api/v1/applications/{appId}/users - All user configurations (admin only)
//   - POST /api/v1/applications/{appId}/users - Create user (admin only)
//   - GET /api/v1/applications/{appId}/users/{id} - User configuration (admin or self)
//   - PUT /api/v1/applications/{appId}/users/{id} - Update user (admin only)
//   - DELETE /api/v1/applications/{appId}/users/{id} - Delete user (admin only)
func NewRouter(registry *userconfig.Registry, verifier *auth.Verifier) http.Handler {
	r := chi.NewRouter()

	// Middleware stack - order matters
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(apiMiddleware.Metrics(metrics.NewHTTPMetrics()))

	// Health routes - unauthenticated
	healthHandler := handlers.NewHealthHandler(registry)
	r.Route("/health", func(r chi.Router) {
		r.Get("/", healthHandler.Liveness)
		r.Get("/ready", healthHandler.Readiness)
	})

	// Root redirect to health for convenience
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/health", http.StatusTemporaryRedirect)
	})

	appHandler := handlers.NewAppHandler(registry)
	userHandler, err := handlers.NewUserHandler(registry)
	if err != nil {
		// This is a programming error - the registry should always be provided
		panic("failed to create user handler: " + err.Error())
	}

	// API v1 routes - all authenticated
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(apiMiddleware.Authenticate(verifier))

		r.Route("/applications", func(r chi.Router) {
			r.Get("/", appHandler.List)

			r.Route("/{appId}", func(r chi.Router) {
				r.Get("/", appHandler.Get)

				r.Route("/users", func(r chi.Router) {
					// Admin/self authorization happens in the handlers:
					// a non-admin caller may only fetch its own record.
					r.Get("/", userHandler.List)
					r.Post("/", userHandler.Create)
					r.Get("/{id}", userHandler.Get)
					r.Put("/{id}", userHandler.Update)
					r.Delete("/{id}", userHandler.Delete)
				})
			})
		})
	})

	return r
}

// isHealthPath returns true if the request path is a healthcheck endpoint.
func isHealthPath(path string) bool {
	return path == "/health" || strings.HasPrefix(path, "/health/")
}

// requestLogger is a custom middleware that logs requests using the internal logger.
//
// It logs:
//   - Request start (DEBUG level): method, path, remote addr
//   - Request completion (INFO level): method, path, status, duration
//   - Healthcheck requests are logged at DEBUG level to reduce noise
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := middleware.GetReqID(r.Context())

		logger.Debug("API request started",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
		)

		// Wrap response writer to capture status code
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		duration := time.Since(start)

		logArgs := []any{
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", duration.String(),
		}

		// Log healthcheck requests at DEBUG to avoid polluting logs in k8s
		if isHealthPath(r.URL.Path) {
			logger.Debug("API request completed", logArgs...)
		} else {
			logger.Info("API request completed", logArgs...)
		}
	})
}
