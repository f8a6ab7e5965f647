package userconfig

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/WKolaj/SIDIRO-sub006/internal/logger"
)

// Registry enumerates the tenant's application assets at startup and owns
// one coordinator (with its cache) per application. Request handlers
// resolve applications through it; there is no ambient global state.
type Registry struct {
	tenant    string
	appTypeID string
	directory DirectoryClient
	files     FileStore
	assets    AssetProvider
	metrics   func(appID string) Metrics

	mu     sync.RWMutex
	apps   map[string]*Coordinator
	loaded bool
}

// RegistryConfig wires the registry's collaborators.
type RegistryConfig struct {
	// Tenant is the tenant this proxy instance serves.
	Tenant string

	// AppTypeID is the asset-type id marking application assets.
	AppTypeID string

	Directory DirectoryClient
	Files     FileStore
	Assets    AssetProvider

	// Metrics constructs the per-application cache collector; may be nil.
	// It is called once per application during Load and may return nil to
	// leave that cache uninstrumented.
	Metrics func(appID string) Metrics
}

// NewRegistry creates an empty registry. Call Load before serving requests.
func NewRegistry(cfg RegistryConfig) *Registry {
	return &Registry{
		tenant:    cfg.Tenant,
		appTypeID: cfg.AppTypeID,
		directory: cfg.Directory,
		files:     cfg.Files,
		assets:    cfg.Assets,
		metrics:   cfg.Metrics,
		apps:      make(map[string]*Coordinator),
	}
}

// Load enumerates application assets, resolves the tenant's directory
// groups and bootstraps one coordinator per application: descriptor load,
// container file enumeration and cache seeding.
//
// A missing application descriptor does not fail Load; the application is
// registered with nil settings and every operation on it reports
// ErrAppSettingsNotFound. Any other upstream failure aborts Load.
func (r *Registry) Load(ctx context.Context) error {
	groups, err := r.directory.ListGroups(ctx)
	if err != nil {
		return NewUpstreamError("group enumeration", err)
	}
	groupIDs := make(map[string]string, len(groups))
	for _, g := range groups {
		groupIDs[g.Name] = g.ID
	}

	assets, err := r.assets.ListAssets(ctx, r.appTypeID)
	if err != nil {
		return NewUpstreamError("application asset enumeration", err)
	}

	apps := make(map[string]*Coordinator, len(assets))
	for _, asset := range assets {
		app := Application{
			ID:          AppID(r.tenant, asset.Subtenant),
			Tenant:      r.tenant,
			Subtenant:   asset.Subtenant,
			ContainerID: asset.ID,
			IsSubtenant: asset.Subtenant != "",
		}
		coordinator, err := r.bootstrap(ctx, app, groupIDs)
		if err != nil {
			return fmt.Errorf("bootstrap of application %s: %w", app.ID, err)
		}
		apps[app.ID] = coordinator
	}

	r.mu.Lock()
	r.apps = apps
	r.loaded = true
	r.mu.Unlock()

	logger.Info("application registry loaded", "tenant", r.tenant, "applications", len(apps))
	return nil
}

// bootstrap loads the application descriptor and seeds the cache from the
// container's user-configuration files.
func (r *Registry) bootstrap(ctx context.Context, app Application, groupIDs map[string]string) (*Coordinator, error) {
	var collector Metrics
	if r.metrics != nil {
		collector = r.metrics(app.ID)
	}
	cache := NewCache(r.files, app.ContainerID, collector)

	var settings *AppSettings
	var loaded AppSettings
	err := r.files.GetFileContent(ctx, app.ContainerID, MainAppConfigFile, &loaded)
	switch {
	case err == nil:
		settings = &loaded
	case errors.Is(err, ErrFileNotFound):
		// Distinct, fatal-to-this-application condition: the app stays
		// registered but every operation reports the missing descriptor.
		logger.Warn("application descriptor missing", "app_id", app.ID, "file", MainAppConfigFile)
	default:
		return nil, NewUpstreamError("descriptor load", err)
	}

	names, err := r.files.ListFiles(ctx, app.ContainerID)
	if err != nil {
		return nil, NewUpstreamError("container enumeration", err)
	}
	seeded := 0
	for _, name := range names {
		userID, ok := UserIDFromFileName(name)
		if !ok {
			continue
		}
		var record UserConfigRecord
		if err := r.files.GetFileContent(ctx, app.ContainerID, name, &record); err != nil {
			return nil, NewUpstreamError(fmt.Sprintf("load of %s", name), err)
		}
		cache.Seed(userID, &record)
		seeded++
	}

	logger.Debug("application bootstrapped",
		"app_id", app.ID,
		"container_id", app.ContainerID,
		"users", seeded,
		"descriptor_loaded", settings != nil,
	)
	return NewCoordinator(app, settings, cache, r.directory, groupIDs), nil
}

// Resolve returns the coordinator owning the given application id.
func (r *Registry) Resolve(appID string) (*Coordinator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	coordinator, ok := r.apps[appID]
	if !ok {
		return nil, ErrAppNotFound
	}
	return coordinator, nil
}

// Apps returns the registered applications sorted by id.
func (r *Registry) Apps() []Application {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Application, 0, len(r.apps))
	for _, c := range r.apps {
		out = append(out, c.App())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Loaded reports whether Load has completed. A tenant with zero
// application assets is still loaded.
func (r *Registry) Loaded() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.loaded
}
