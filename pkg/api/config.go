package api

import "time"

// APIConfig configures the REST API HTTP server.
//
// The API server exposes the user-configuration endpoints, the registry
// view and the health probes. It is always enabled as it is the only
// surface of the proxy.
type APIConfig struct {
	// Port is the HTTP port for the API endpoints.
	// Default: 8080
	Port int `mapstructure:"port" validate:"omitempty,min=1,max=65535" yaml:"port"`

	// ReadTimeout is the maximum duration for reading the entire request,
	// including the body. A zero or negative value means there is no timeout.
	// Default: 10s
	ReadTimeout time.Duration `mapstructure:"read_timeout" yaml:"read_timeout"`

	// WriteTimeout is the maximum duration before timing out writes of the response.
	// A zero or negative value means there is no timeout.
	// Default: 10s
	WriteTimeout time.Duration `mapstructure:"write_timeout" yaml:"write_timeout"`

	// IdleTimeout is the maximum amount of time to wait for the next request
	// when keep-alives are enabled. If zero, the value of ReadTimeout is used.
	// Default: 60s
	IdleTimeout time.Duration `mapstructure:"idle_timeout" yaml:"idle_timeout"`

	// Auth configures verification of the platform bearer tokens.
	Auth AuthConfig `mapstructure:"auth" yaml:"auth"`
}

// AuthConfig configures JWKS-backed verification of request tokens.
type AuthConfig struct {
	// JWKSURL is the identity provider's key-set endpoint.
	// Required to start the server; NewServer rejects an empty value.
	JWKSURL string `mapstructure:"jwks_url" validate:"omitempty,url" yaml:"jwks_url"`

	// Issuer, when set, must match the token's iss claim.
	Issuer string `mapstructure:"issuer" yaml:"issuer"`

	// RefreshInterval is the background JWKS refresh interval.
	// Default: 1h
	RefreshInterval time.Duration `mapstructure:"refresh_interval" yaml:"refresh_interval"`

	// ClientTimeout bounds each JWKS fetch.
	// Default: 10s
	ClientTimeout time.Duration `mapstructure:"client_timeout" yaml:"client_timeout"`

	// Leeway is the allowed clock skew when checking token time claims.
	Leeway time.Duration `mapstructure:"leeway" yaml:"leeway"`
}

// applyDefaults fills in zero values with sensible defaults.
func (c *APIConfig) applyDefaults() {
	if c.Port <= 0 {
		c.Port = 8080
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = 10 * time.Second
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = 10 * time.Second
	}
	if c.IdleTimeout == 0 {
		c.IdleTimeout = 60 * time.Second
	}
	if c.Auth.RefreshInterval == 0 {
		c.Auth.RefreshInterval = time.Hour
	}
	if c.Auth.ClientTimeout == 0 {
		c.Auth.ClientTimeout = 10 * time.Second
	}
}
