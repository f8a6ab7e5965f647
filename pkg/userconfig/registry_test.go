package userconfig

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testRegistryFixture wires a registry over fakes with two application
// assets: one tenant-scoped, one subtenant-scoped.
func testRegistryFixture() (*Registry, *fakeDirectory, *fakeFileStore) {
	directory := newFakeDirectory()
	for name, id := range tenantGroups() {
		directory.groups = append(directory.groups, DirectoryGroup{ID: id, Name: name})
	}

	files := newFakeFileStore()
	files.seed("asset-main", MainAppConfigFile, AppSettings{AppName: "Factory"})
	files.seed("asset-main", UserConfigFileName("u1"), record("alice@example.com", RoleGlobalUser))
	files.seed("asset-main", UserConfigFileName("u2"), record("bob@example.com", RoleLocalUser, "plant1"))
	files.seed("asset-main", "notes.txt", map[string]any{"ignored": true})
	files.seed("asset-sub", MainAppConfigFile, AppSettings{})

	assets := &fakeAssets{assets: []Asset{
		{ID: "asset-main", Name: "factory-app", TypeID: "core.app"},
		{ID: "asset-sub", Name: "line2-app", TypeID: "core.app", Subtenant: "line2"},
	}}

	registry := NewRegistry(RegistryConfig{
		Tenant:    "factory",
		AppTypeID: "core.app",
		Directory: directory,
		Files:     files,
		Assets:    assets,
	})
	return registry, directory, files
}

func TestRegistryLoad(t *testing.T) {
	registry, _, _ := testRegistryFixture()
	require.False(t, registry.Loaded())

	require.NoError(t, registry.Load(context.Background()))
	require.True(t, registry.Loaded())

	apps := registry.Apps()
	require.Len(t, apps, 2)
	assert.Equal(t, "ten-factory", apps[0].ID)
	assert.Equal(t, "ten-factory-sub-line2", apps[1].ID)
	assert.Equal(t, "asset-main", apps[0].ContainerID)
	assert.False(t, apps[0].IsSubtenant)
	assert.True(t, apps[1].IsSubtenant)
}

func TestRegistryLoadSeedsCaches(t *testing.T) {
	registry, _, files := testRegistryFixture()
	require.NoError(t, registry.Load(context.Background()))

	c, err := registry.Resolve("ten-factory")
	require.NoError(t, err)
	assert.Equal(t, 2, c.UserCount())

	// seeded records are served without further store fetches
	gets := files.gets
	got, err := c.GetUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", got.UserName)
	assert.Equal(t, gets, files.gets)
}

func TestRegistryLoadDescriptor(t *testing.T) {
	registry, _, _ := testRegistryFixture()
	require.NoError(t, registry.Load(context.Background()))

	c, err := registry.Resolve("ten-factory")
	require.NoError(t, err)
	require.NotNil(t, c.Settings())
	assert.Equal(t, "Factory", c.Settings().AppName)
}

func TestRegistryMissingDescriptorRegistersApp(t *testing.T) {
	registry, _, files := testRegistryFixture()
	delete(files.files["asset-sub"], MainAppConfigFile)

	require.NoError(t, registry.Load(context.Background()))

	c, err := registry.Resolve("ten-factory-sub-line2")
	require.NoError(t, err)
	assert.Nil(t, c.Settings())

	_, err = c.GetAllUsers(context.Background())
	require.ErrorIs(t, err, ErrAppSettingsNotFound)
}

func TestRegistryLoadedWithZeroApplications(t *testing.T) {
	directory := newFakeDirectory()
	registry := NewRegistry(RegistryConfig{
		Tenant:    "factory",
		AppTypeID: "core.app",
		Directory: directory,
		Files:     newFakeFileStore(),
		Assets:    &fakeAssets{},
	})

	require.NoError(t, registry.Load(context.Background()))
	assert.True(t, registry.Loaded())
	assert.Empty(t, registry.Apps())
}

func TestRegistryResolveUnknownApp(t *testing.T) {
	registry, _, _ := testRegistryFixture()
	require.NoError(t, registry.Load(context.Background()))

	_, err := registry.Resolve("ten-other")
	require.ErrorIs(t, err, ErrAppNotFound)
}

func TestRegistryLoadAssetFailure(t *testing.T) {
	directory := newFakeDirectory()
	registry := NewRegistry(RegistryConfig{
		Tenant:    "factory",
		AppTypeID: "core.app",
		Directory: directory,
		Files:     newFakeFileStore(),
		Assets:    &fakeAssets{err: errors.New("asset service unavailable")},
	})

	err := registry.Load(context.Background())
	require.Error(t, err)
	assert.True(t, IsUpstream(err))
	assert.False(t, registry.Loaded())
}

func TestRegistryMetricsFactoryPerApp(t *testing.T) {
	registry, _, _ := testRegistryFixture()

	seen := make(map[string]*recordingMetrics)
	registry.metrics = func(appID string) Metrics {
		m := &recordingMetrics{}
		seen[appID] = m
		return m
	}

	require.NoError(t, registry.Load(context.Background()))
	assert.Len(t, seen, 2)
	assert.Contains(t, seen, "ten-factory")
	assert.Contains(t, seen, "ten-factory-sub-line2")
}
