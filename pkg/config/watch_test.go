package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, path, level string) {
	t.Helper()
	content := "logging:\n  level: \"" + level + "\"\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
}

func TestWatch_ReloadsOnChange(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	writeConfigFile(t, configPath, "INFO")

	reloaded := make(chan *Config, 1)
	stop, err := Watch(configPath, func(cfg *Config) {
		select {
		case reloaded <- cfg:
		default:
		}
	})
	if err != nil {
		t.Fatalf("Failed to start watcher: %v", err)
	}
	defer func() { _ = stop() }()

	writeConfigFile(t, configPath, "DEBUG")

	select {
	case cfg := <-reloaded:
		if cfg.Logging.Level != "DEBUG" {
			t.Errorf("Expected reloaded level 'DEBUG', got %q", cfg.Logging.Level)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Timed out waiting for config reload")
	}
}

func TestWatch_SkipsInvalidReload(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	writeConfigFile(t, configPath, "INFO")

	reloaded := make(chan *Config, 1)
	stop, err := Watch(configPath, func(cfg *Config) {
		select {
		case reloaded <- cfg:
		default:
		}
	})
	if err != nil {
		t.Fatalf("Failed to start watcher: %v", err)
	}
	defer func() { _ = stop() }()

	// A reload that fails validation must not reach the callback
	writeConfigFile(t, configPath, "INVALID")

	select {
	case cfg := <-reloaded:
		t.Fatalf("Expected invalid config to be skipped, got reload with level %q", cfg.Logging.Level)
	case <-time.After(500 * time.Millisecond):
		// No callback: previous configuration stays active
	}
}

func TestWatch_MissingDirectory(t *testing.T) {
	_, err := Watch(filepath.Join(t.TempDir(), "missing", "config.yaml"), func(*Config) {})
	if err == nil {
		t.Fatal("Expected error when watching a missing directory")
	}
}
