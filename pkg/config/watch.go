package config

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/WKolaj/SIDIRO-sub006/internal/logger"
)

// Watch watches the configuration file and invokes onChange with the
// re-loaded configuration whenever the file is rewritten.
//
// Only a subset of the configuration can change at runtime (the logging
// level in particular); the caller decides what to apply. A reload that
// fails to parse or validate is logged and skipped, keeping the previous
// configuration active.
//
// The watch is attached to the file's directory rather than the file
// itself: editors and configuration management tools replace the file
// on save, which would otherwise drop the watch.
//
// Returns a stop function that releases the watcher.
func Watch(configPath string, onChange func(*Config)) (func() error, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create config watcher: %w", err)
	}

	dir := filepath.Dir(configPath)
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch config directory %s: %w", dir, err)
	}

	target := filepath.Clean(configPath)

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}

				cfg, err := Load(configPath)
				if err != nil {
					logger.Warn("config reload failed, keeping previous configuration",
						"path", configPath, "error", err)
					continue
				}

				logger.Info("configuration reloaded", "path", configPath)
				onChange(cfg)

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("config watcher error", "error", err)
			}
		}
	}()

	return watcher.Close, nil
}
