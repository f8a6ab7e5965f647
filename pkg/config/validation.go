package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Validate checks the configuration for errors.
//
// Structural rules (ranges, enumerations, required fields) are expressed as
// `validate` struct tags and checked with go-playground/validator. Rules
// spanning multiple fields are checked explicitly afterwards.
//
// Validate does not mutate the configuration; normalization happens in
// ApplyDefaults.
func Validate(cfg *Config) error {
	validate := validator.New()

	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if err := validateTelemetry(&cfg.Telemetry); err != nil {
		return err
	}

	if err := validateFiles(&cfg.Files); err != nil {
		return err
	}

	return validatePlatform(&cfg.Platform)
}

// validateTelemetry checks cross-field telemetry rules.
func validateTelemetry(cfg *TelemetryConfig) error {
	if cfg.Enabled && cfg.Endpoint == "" {
		return fmt.Errorf("telemetry is enabled but no endpoint is configured")
	}
	if cfg.Profiling.Enabled && cfg.Profiling.Endpoint == "" {
		return fmt.Errorf("profiling is enabled but no endpoint is configured")
	}
	return nil
}

// validateFiles checks the file store backend configuration.
func validateFiles(cfg *FilesConfig) error {
	if cfg.Backend == "s3" {
		if cfg.S3.Bucket == "" {
			return fmt.Errorf("s3 file store requires files.s3.bucket to be set")
		}
		if cfg.S3.Region == "" && cfg.S3.Endpoint == "" {
			return fmt.Errorf("s3 file store requires files.s3.region or files.s3.endpoint to be set")
		}
	}
	return nil
}

// validatePlatform checks the upstream credential set.
//
// An empty gateway is allowed at load time (tests and the s3 backend run
// without a platform connection); BuildRegistry rejects it when the platform
// upstream is actually needed.
func validatePlatform(cfg *PlatformConfig) error {
	if cfg.Gateway == "" {
		return nil
	}
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return fmt.Errorf("platform gateway is configured but platform.client_id or platform.client_secret is missing")
	}
	if cfg.Tenant == "" {
		return fmt.Errorf("platform gateway is configured but platform.tenant is missing")
	}
	return nil
}
