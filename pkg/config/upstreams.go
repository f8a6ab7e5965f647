package config

import (
	"context"
	"fmt"

	"github.com/WKolaj/SIDIRO-sub006/pkg/metrics"
	"github.com/WKolaj/SIDIRO-sub006/pkg/mindsphere"
	s3store "github.com/WKolaj/SIDIRO-sub006/pkg/store/files/s3"
	"github.com/WKolaj/SIDIRO-sub006/pkg/userconfig"
)

// CreatePlatformClient creates the shared platform HTTP client from
// configuration. The per-service clients (directory, files, assets) are
// built on top of it.
func CreatePlatformClient(cfg PlatformConfig) (*mindsphere.Client, error) {
	if cfg.Gateway == "" {
		return nil, fmt.Errorf("platform gateway is not configured")
	}
	if cfg.Tenant == "" {
		return nil, fmt.Errorf("platform tenant is not configured")
	}

	return mindsphere.NewClient(mindsphere.Config{
		Gateway:      cfg.Gateway,
		Tenant:       cfg.Tenant,
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.TokenURL,
		Timeout:      cfg.Timeout,
	}), nil
}

// CreateFileStore creates the file store instance from configuration.
//
// The platform backend stores user-configuration files through the
// platform file service; the s3 backend keeps the same container/file
// layout in an S3 bucket.
func CreateFileStore(ctx context.Context, cfg FilesConfig, platform *mindsphere.Client) (userconfig.FileStore, error) {
	switch cfg.Backend {
	case "platform", "":
		if platform == nil {
			return nil, fmt.Errorf("platform file store requires a platform connection")
		}
		return mindsphere.NewFilesClient(platform), nil
	case "s3":
		return createS3FileStore(ctx, cfg.S3)
	default:
		return nil, fmt.Errorf("unknown file store backend: %q", cfg.Backend)
	}
}

// createS3FileStore creates an S3-backed file store.
func createS3FileStore(ctx context.Context, cfg S3Config) (userconfig.FileStore, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 file store requires bucket to be set")
	}

	client, err := s3store.NewClientFromConfig(ctx,
		cfg.Endpoint,
		cfg.Region,
		cfg.AccessKeyID,
		cfg.SecretAccessKey,
		cfg.ForcePathStyle,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create s3 client: %w", err)
	}

	return s3store.New(ctx, s3store.Config{
		Client:    client,
		Bucket:    cfg.Bucket,
		KeyPrefix: cfg.KeyPrefix,
	})
}

// BuildRegistry assembles the application registry from configuration:
// the platform directory and asset clients, the configured file store and
// the per-application metrics factory. The returned registry is empty;
// the caller runs Load before serving requests.
func BuildRegistry(ctx context.Context, cfg *Config) (*userconfig.Registry, error) {
	platform, err := CreatePlatformClient(cfg.Platform)
	if err != nil {
		return nil, err
	}

	files, err := CreateFileStore(ctx, cfg.Files, platform)
	if err != nil {
		return nil, err
	}

	return userconfig.NewRegistry(userconfig.RegistryConfig{
		Tenant:    cfg.Platform.Tenant,
		AppTypeID: cfg.Platform.AppTypeID,
		Directory: mindsphere.NewIdentityClient(platform),
		Files:     files,
		Assets:    mindsphere.NewAssetsClient(platform),
		Metrics:   metrics.NewCacheMetrics,
	}), nil
}
