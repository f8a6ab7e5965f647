// Package auth verifies platform-issued bearer tokens against the
// tenant identity provider's JWKS endpoint.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/MicahParks/jwkset"
	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"

	"github.com/WKolaj/SIDIRO-sub006/internal/logger"
)

// Common errors for token verification.
var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrExpiredToken  = errors.New("token has expired")
	ErrMissingTenant = errors.New("token carries no tenant claim")
)

// Credentials is the immutable identity extracted from a verified token.
// It is passed by value through the request context and never stored on
// shared state.
type Credentials struct {
	// Tenant is the tenant the token was issued for.
	Tenant string

	// Subtenant is set for tokens scoped to a subtenant.
	Subtenant string

	// UserName is the platform login name of the caller.
	UserName string

	// Scopes are the granted token scopes.
	Scopes []string
}

// HasScope reports whether the credentials carry the given scope.
func (c Credentials) HasScope(scope string) bool {
	for _, s := range c.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}

// platformClaims are the raw claims of a platform token.
type platformClaims struct {
	jwt.RegisteredClaims
	Tenant    string `json:"ten"`
	Subtenant string `json:"subtenant,omitempty"`
	UserName  string `json:"user_name"`
	Scope     string `json:"scope,omitempty"`
}

// VerifierConfig configures JWKS-backed token verification.
type VerifierConfig struct {
	// JWKSURL is the identity provider's key-set endpoint.
	JWKSURL string

	// Issuer, when set, is required to match the token's iss claim.
	Issuer string

	// RefreshInterval is how often the key set is refreshed in the
	// background. Default: 1h.
	RefreshInterval time.Duration

	// ClientTimeout bounds each JWKS fetch. Default: 10s.
	ClientTimeout time.Duration

	// Leeway is the allowed clock skew when checking time claims.
	Leeway time.Duration
}

func (c *VerifierConfig) applyDefaults() {
	if c.RefreshInterval == 0 {
		c.RefreshInterval = time.Hour
	}
	if c.ClientTimeout == 0 {
		c.ClientTimeout = 10 * time.Second
	}
}

// Verifier validates bearer tokens against a remote JWKS and extracts
// Credentials from their claims.
type Verifier struct {
	jwks   keyfunc.Keyfunc
	issuer string
	leeway time.Duration
}

// NewVerifier creates a Verifier backed by the remote JWKS endpoint.
// The key set refreshes in the background; the first fetch does not block
// startup, so tokens presented before the keys arrive fail verification.
func NewVerifier(cfg VerifierConfig) (*Verifier, error) {
	cfg.applyDefaults()

	jwksURL, err := url.Parse(cfg.JWKSURL)
	if err != nil {
		return nil, fmt.Errorf("JWKS URL %q: %w", cfg.JWKSURL, err)
	}

	storage, err := jwkset.NewStorageFromHTTP(jwksURL, jwkset.HTTPClientStorageOptions{
		Client:                    &http.Client{Timeout: cfg.ClientTimeout},
		NoErrorReturnFirstHTTPReq: true,
		RefreshInterval:           cfg.RefreshInterval,
		RefreshErrorHandler: func(_ context.Context, err error) {
			logger.Error("JWKS refresh failed", "url", cfg.JWKSURL, "error", err)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("JWKS storage for %s: %w", cfg.JWKSURL, err)
	}

	kf, err := keyfunc.New(keyfunc.Options{Storage: storage})
	if err != nil {
		return nil, fmt.Errorf("keyfunc: %w", err)
	}

	return &Verifier{jwks: kf, issuer: cfg.Issuer, leeway: cfg.Leeway}, nil
}

// NewVerifierWithKeyfunc creates a Verifier from a prebuilt keyfunc.
// Used by tests to substitute a static key set.
func NewVerifierWithKeyfunc(kf keyfunc.Keyfunc, issuer string) *Verifier {
	return &Verifier{jwks: kf, issuer: issuer}
}

// Verify validates the token signature and time claims and returns the
// caller's Credentials.
func (v *Verifier) Verify(ctx context.Context, tokenString string) (Credentials, error) {
	claims := &platformClaims{}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(v.leeway),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, claims, v.jwks.KeyfuncCtx(ctx), opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Credentials{}, ErrExpiredToken
		}
		return Credentials{}, ErrInvalidToken
	}
	if !token.Valid {
		return Credentials{}, ErrInvalidToken
	}

	if claims.Tenant == "" {
		return Credentials{}, ErrMissingTenant
	}

	return Credentials{
		Tenant:    claims.Tenant,
		Subtenant: claims.Subtenant,
		UserName:  claims.UserName,
		Scopes:    parseScopes(claims.Scope),
	}, nil
}

// parseScopes splits the space-separated scope claim.
func parseScopes(scope string) []string {
	if scope == "" {
		return nil
	}
	return strings.Fields(scope)
}
