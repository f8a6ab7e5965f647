// Package middleware provides HTTP middleware for the proxy API.
package middleware

import (
	"net/http"
	"strings"

	"github.com/WKolaj/SIDIRO-sub006/internal/logger"
	"github.com/WKolaj/SIDIRO-sub006/pkg/api/auth"
	"github.com/WKolaj/SIDIRO-sub006/pkg/api/handlers"
)

// extractBearerToken extracts the token from a Bearer Authorization header.
// Returns the token string and true if successful, or empty string and false if not.
func extractBearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	return parts[1], true
}

// Authenticate is a middleware that validates Bearer tokens in the
// Authorization header against the platform JWKS.
// If valid, the caller's credentials are stored in the request context.
// If invalid or missing, a 401 problem response is written.
func Authenticate(verifier *auth.Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, ok := extractBearerToken(r)
			if !ok {
				handlers.Unauthorized(w, "Authorization header required")
				return
			}

			creds, err := verifier.Verify(r.Context(), tokenString)
			if err != nil {
				logger.Debug("token verification failed",
					"error", err,
					"remote_addr", r.RemoteAddr,
				)
				handlers.Unauthorized(w, "Invalid or expired token")
				return
			}

			ctx := auth.ContextWithCredentials(r.Context(), &creds)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
