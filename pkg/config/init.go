package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// sampleConfig is the annotated configuration template written by
// `sidiro init`. It mirrors the Config structure with every section
// present and commented.
const sampleConfig = `# Sidiro Configuration File
#
# This file configures the sidiro user-configuration proxy.
# All values can be overridden with environment variables using the
# SIDIRO_ prefix, e.g. SIDIRO_LOGGING_LEVEL=DEBUG.

logging:
  # Minimum log level: DEBUG, INFO, WARN, ERROR
  level: "INFO"
  # Output format: text, json
  format: "text"
  # Where logs are written: stdout, stderr, or a file path
  output: "stdout"

# Maximum time to wait for graceful shutdown
shutdown_timeout: "30s"

telemetry:
  # OpenTelemetry distributed tracing (opt-in)
  enabled: false
  # OTLP gRPC collector endpoint
  endpoint: "localhost:4317"
  insecure: true
  sample_rate: 1.0
  profiling:
    # Pyroscope continuous profiling (opt-in)
    enabled: false
    endpoint: "http://localhost:4040"

metrics:
  # Prometheus metrics endpoint (opt-in), served on its own port
  enabled: false
  port: 9090

api:
  # REST API server port
  port: 8080
  read_timeout: "10s"
  write_timeout: "10s"
  idle_timeout: "60s"
  auth:
    # JWKS endpoint of the identity provider used to verify request tokens
    jwks_url: ""
    # Expected token issuer (optional)
    issuer: ""
    refresh_interval: "1h"

platform:
  # IoT platform API gateway
  gateway: ""
  # Host tenant this proxy instance serves
  tenant: ""
  # Technical-user credentials for the client-credentials grant
  client_id: ""
  client_secret: ""
  # Asset-type id marking application assets
  app_type_id: ""
  timeout: "30s"

files:
  # File store backend: platform (default) or s3
  backend: "platform"
  # s3:
  #   bucket: "sidiro-user-configs"
  #   region: "eu-central-1"
  #   endpoint: ""
  #   key_prefix: ""
  #   access_key_id: ""
  #   secret_access_key: ""
  #   force_path_style: false
`

// InitConfig creates a sample configuration file at the default location.
// Returns the path of the created file.
func InitConfig(force bool) (string, error) {
	path := GetDefaultConfigPath()
	if err := InitConfigToPath(path, force); err != nil {
		return "", err
	}
	return path, nil
}

// InitConfigToPath creates a sample configuration file at the given path.
// An existing file is only overwritten when force is set.
func InitConfigToPath(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", path)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Restricted permissions: the file will hold platform credentials.
	if err := os.WriteFile(path, []byte(sampleConfig), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
