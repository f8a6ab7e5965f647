package mindsphere

import (
	"context"
	"fmt"
	"net/url"

	"github.com/WKolaj/SIDIRO-sub006/internal/telemetry"
	"github.com/WKolaj/SIDIRO-sub006/pkg/userconfig"
)

const filesBasePath = "/api/iotfile/v3/files"

// FilesClient accesses the platform IoT file service. It implements
// userconfig.FileStore; a container id is the asset id the files hang off.
type FilesClient struct {
	client *Client
}

// NewFilesClient creates a file-service client over the shared HTTP layer.
func NewFilesClient(client *Client) *FilesClient {
	return &FilesClient{client: client}
}

func filePath(containerID, name string) string {
	return filesBasePath + "/" + url.PathEscape(containerID) + "/" + url.PathEscape(name)
}

// GetFileContent fetches and unmarshals one JSON file. A 404 from the
// upstream is reported as userconfig.ErrFileNotFound.
func (fc *FilesClient) GetFileContent(ctx context.Context, containerID, name string, out any) error {
	ctx, span := telemetry.StartFileSpan(ctx, telemetry.SpanFileGet, containerID, name)
	defer span.End()

	err := fc.client.get(ctx, filePath(containerID, name), nil, out)
	if err != nil {
		if IsNotFoundErr(err) {
			return fmt.Errorf("%s in container %s: %w", name, containerID, userconfig.ErrFileNotFound)
		}
		telemetry.RecordError(ctx, err)
		return err
	}
	return nil
}

// SetFileContent marshals content and writes it as one file, replacing any
// previous version.
func (fc *FilesClient) SetFileContent(ctx context.Context, containerID, name string, content any) error {
	ctx, span := telemetry.StartFileSpan(ctx, telemetry.SpanFileSet, containerID, name)
	defer span.End()

	if err := fc.client.put(ctx, filePath(containerID, name), content, nil); err != nil {
		telemetry.RecordError(ctx, err)
		return err
	}
	return nil
}

// DeleteFile removes one file.
func (fc *FilesClient) DeleteFile(ctx context.Context, containerID, name string) error {
	ctx, span := telemetry.StartFileSpan(ctx, telemetry.SpanFileDelete, containerID, name)
	defer span.End()

	err := fc.client.delete(ctx, filePath(containerID, name))
	if err != nil {
		if IsNotFoundErr(err) {
			return fmt.Errorf("%s in container %s: %w", name, containerID, userconfig.ErrFileNotFound)
		}
		telemetry.RecordError(ctx, err)
		return err
	}
	return nil
}

// ListFiles enumerates the file names in a container.
func (fc *FilesClient) ListFiles(ctx context.Context, containerID string) ([]string, error) {
	ctx, span := telemetry.StartFileSpan(ctx, telemetry.SpanFileList, containerID, "")
	defer span.End()

	var entries []struct {
		Name string `json:"name"`
		Path string `json:"path"`
		Size int64  `json:"size"`
	}
	if err := fc.client.get(ctx, filesBasePath+"/"+url.PathEscape(containerID), nil, &entries); err != nil {
		telemetry.RecordError(ctx, err)
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
	}
	return names, nil
}
