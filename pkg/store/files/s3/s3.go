// Package s3 implements a file store over Amazon S3 or S3-compatible
// storage. It is the backend used when the proxy runs against a plain
// object store instead of the platform file service, e.g. in local and
// staging deployments backed by MinIO.
package s3

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/WKolaj/SIDIRO-sub006/internal/telemetry"
	"github.com/WKolaj/SIDIRO-sub006/pkg/userconfig"
)

// FileStore implements userconfig.FileStore on one S3 bucket. Container
// ids map to key prefixes: <keyPrefix><containerID>/<name>.
//
// Safe for concurrent use. Concurrent writes to the same key are
// last-writer-wins, matching the object store's own semantics.
type FileStore struct {
	client    *s3.Client
	bucket    string
	keyPrefix string
}

// Config contains configuration for the S3 file store.
type Config struct {
	// Client is the configured S3 client.
	Client *s3.Client

	// Bucket is the S3 bucket name. The bucket must already exist.
	Bucket string

	// KeyPrefix is an optional prefix for all object keys.
	KeyPrefix string
}

// NewClientFromConfig creates an S3 client from configuration parameters.
// endpoint may be empty for AWS proper; set forcePathStyle for MinIO and
// other S3-compatible endpoints.
func NewClientFromConfig(
	ctx context.Context,
	endpoint,
	region,
	accessKeyID,
	secretAccessKey string,
	forcePathStyle bool,
) (*s3.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			accessKeyID,
			secretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = &endpoint
		}
		o.UsePathStyle = forcePathStyle
	})

	return client, nil
}

// New creates a file store over an existing bucket and verifies access.
func New(ctx context.Context, cfg Config) (*FileStore, error) {
	if cfg.Client == nil {
		return nil, fmt.Errorf("S3 client is required")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("bucket name is required")
	}

	_, err := cfg.Client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(cfg.Bucket),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to access bucket %q: %w", cfg.Bucket, err)
	}

	return &FileStore{
		client:    cfg.Client,
		bucket:    cfg.Bucket,
		keyPrefix: cfg.KeyPrefix,
	}, nil
}

func (fs *FileStore) objectKey(containerID, name string) string {
	return fs.keyPrefix + containerID + "/" + name
}

// GetFileContent fetches and unmarshals one JSON object. A missing key is
// reported as userconfig.ErrFileNotFound.
func (fs *FileStore) GetFileContent(ctx context.Context, containerID, name string, out any) error {
	ctx, span := telemetry.StartFileSpan(ctx, telemetry.SpanFileGet, containerID, name,
		telemetry.Bucket(fs.bucket))
	defer span.End()

	key := fs.objectKey(containerID, name)
	resp, err := fs.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(fs.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNoSuchKey(err) {
			return fmt.Errorf("object %s: %w", key, userconfig.ErrFileNotFound)
		}
		telemetry.RecordError(ctx, err)
		return fmt.Errorf("failed to get object %s: %w", key, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read object %s: %w", key, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode object %s: %w", key, err)
	}
	return nil
}

// SetFileContent marshals content and writes it as one object, replacing
// any previous version.
func (fs *FileStore) SetFileContent(ctx context.Context, containerID, name string, content any) error {
	ctx, span := telemetry.StartFileSpan(ctx, telemetry.SpanFileSet, containerID, name,
		telemetry.Bucket(fs.bucket))
	defer span.End()

	data, err := json.Marshal(content)
	if err != nil {
		return fmt.Errorf("failed to marshal content for %s: %w", name, err)
	}

	key := fs.objectKey(containerID, name)
	_, err = fs.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(fs.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		telemetry.RecordError(ctx, err)
		return fmt.Errorf("failed to put object %s: %w", key, err)
	}
	return nil
}

// DeleteFile removes one object. Deleting a missing object is an error so
// the caller can distinguish the cases.
func (fs *FileStore) DeleteFile(ctx context.Context, containerID, name string) error {
	ctx, span := telemetry.StartFileSpan(ctx, telemetry.SpanFileDelete, containerID, name,
		telemetry.Bucket(fs.bucket))
	defer span.End()

	key := fs.objectKey(containerID, name)

	// DeleteObject succeeds on missing keys; probe first
	_, err := fs.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(fs.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNoSuchKey(err) {
			return fmt.Errorf("object %s: %w", key, userconfig.ErrFileNotFound)
		}
		telemetry.RecordError(ctx, err)
		return fmt.Errorf("failed to stat object %s: %w", key, err)
	}

	_, err = fs.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(fs.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		telemetry.RecordError(ctx, err)
		return fmt.Errorf("failed to delete object %s: %w", key, err)
	}
	return nil
}

// ListFiles enumerates the object names under the container's prefix.
func (fs *FileStore) ListFiles(ctx context.Context, containerID string) ([]string, error) {
	ctx, span := telemetry.StartFileSpan(ctx, telemetry.SpanFileList, containerID, "",
		telemetry.Bucket(fs.bucket))
	defer span.End()

	prefix := fs.keyPrefix + containerID + "/"
	paginator := s3.NewListObjectsV2Paginator(fs.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(fs.bucket),
		Prefix: aws.String(prefix),
	})

	var names []string
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			telemetry.RecordError(ctx, err)
			return nil, fmt.Errorf("failed to list objects under %s: %w", prefix, err)
		}
		for _, obj := range page.Contents {
			if obj.Key == nil {
				continue
			}
			name := strings.TrimPrefix(*obj.Key, prefix)
			if name == "" || strings.Contains(name, "/") {
				continue
			}
			names = append(names, name)
		}
	}
	return names, nil
}

// isNoSuchKey reports whether err is the S3 missing-key condition in any
// of its shapes (NoSuchKey from GetObject, NotFound from HeadObject).
func isNoSuchKey(err error) bool {
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return true
	}
	var notFound *types.NotFound
	return errors.As(err, &notFound)
}
