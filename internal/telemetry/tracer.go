package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Common attribute keys for user-configuration operations.
// These follow OpenTelemetry semantic conventions where applicable.
const (
	// Client attributes
	AttrClientIP   = "client.ip"
	AttrClientAddr = "client.address"

	// Tenancy & application scope
	AttrTenant    = "tenant"
	AttrSubtenant = "subtenant"
	AttrAppID     = "app.id"

	// User attributes
	AttrUserID   = "user.id"
	AttrUserName = "user.name"
	AttrRole     = "user.role"

	// Directory attributes
	AttrGroup     = "directory.group"
	AttrGroupID   = "directory.group_id"
	AttrUserCount = "directory.user_count"

	// HTTP attributes
	AttrHTTPMethod = "http.request.method"
	AttrHTTPRoute  = "http.route"
	AttrHTTPStatus = "http.response.status_code"

	// Cache attributes
	AttrCacheHit     = "cache.hit"
	AttrCacheEntries = "cache.entries"

	// File storage attributes
	AttrContainer = "storage.container"
	AttrFile      = "storage.file"
	AttrBucket    = "storage.bucket"
	AttrKey       = "storage.key"
	AttrRegion    = "storage.region"
)

// Span names for operations.
// Format: <component>.<operation>.
const (
	// Root span for HTTP request processing
	SpanHTTPRequest = "http.request"

	// User-configuration coordinator operations
	SpanGetUser    = "userconfig.get"
	SpanListUsers  = "userconfig.list"
	SpanCreateUser = "userconfig.create"
	SpanUpdateUser = "userconfig.update"
	SpanDeleteUser = "userconfig.delete"

	// Registry bootstrap
	SpanRegistryLoad = "registry.load"

	// File storage operations
	SpanFileGet    = "files.get"
	SpanFileSet    = "files.set"
	SpanFileDelete = "files.delete"
	SpanFileList   = "files.list"

	// Identity directory operations
	SpanDirectoryCall = "directory.request"

	// Asset enumeration
	SpanAssetList = "assets.list"
)

// ClientIP returns an attribute for client IP address
func ClientIP(ip string) attribute.KeyValue {
	return attribute.String(AttrClientIP, ip)
}

// ClientAddr returns an attribute for full client address
func ClientAddr(addr string) attribute.KeyValue {
	return attribute.String(AttrClientAddr, addr)
}

// Tenant returns an attribute for the owning tenant
func Tenant(name string) attribute.KeyValue {
	return attribute.String(AttrTenant, name)
}

// AppID returns an attribute for an application id
func AppID(id string) attribute.KeyValue {
	return attribute.String(AttrAppID, id)
}

// UserID returns an attribute for a directory user id
func UserID(id string) attribute.KeyValue {
	return attribute.String(AttrUserID, id)
}

// UserName returns an attribute for a user login name
func UserName(name string) attribute.KeyValue {
	return attribute.String(AttrUserName, name)
}

// Role returns an attribute for an application role name
func Role(name string) attribute.KeyValue {
	return attribute.String(AttrRole, name)
}

// Group returns an attribute for a directory group name
func Group(name string) attribute.KeyValue {
	return attribute.String(AttrGroup, name)
}

// CacheHit returns an attribute for cache hit indicator
func CacheHit(hit bool) attribute.KeyValue {
	return attribute.Bool(AttrCacheHit, hit)
}

// CacheEntries returns an attribute for the number of cached entries
func CacheEntries(n int) attribute.KeyValue {
	return attribute.Int(AttrCacheEntries, n)
}

// Container returns an attribute for a storage container id
func Container(id string) attribute.KeyValue {
	return attribute.String(AttrContainer, id)
}

// File returns an attribute for a container file name
func File(name string) attribute.KeyValue {
	return attribute.String(AttrFile, name)
}

// Bucket returns an attribute for an S3 bucket name
func Bucket(name string) attribute.KeyValue {
	return attribute.String(AttrBucket, name)
}

// StorageKey returns an attribute for an S3 object key
func StorageKey(key string) attribute.KeyValue {
	return attribute.String(AttrKey, key)
}

// Region returns an attribute for a cloud region
func Region(region string) attribute.KeyValue {
	return attribute.String(AttrRegion, region)
}

// HTTPMethod returns an attribute for an HTTP request method
func HTTPMethod(m string) attribute.KeyValue {
	return attribute.String(AttrHTTPMethod, m)
}

// HTTPRoute returns an attribute for the matched HTTP route
func HTTPRoute(route string) attribute.KeyValue {
	return attribute.String(AttrHTTPRoute, route)
}

// HTTPStatus returns an attribute for an HTTP response status code
func HTTPStatus(code int) attribute.KeyValue {
	return attribute.Int(AttrHTTPStatus, code)
}

// StartUserSpan starts a span for a coordinator operation on one user.
// This is a convenience function that sets the common attributes.
func StartUserSpan(ctx context.Context, name, appID, userID string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	allAttrs := []attribute.KeyValue{AppID(appID)}
	if userID != "" {
		allAttrs = append(allAttrs, UserID(userID))
	}
	allAttrs = append(allAttrs, attrs...)

	return StartSpan(ctx, name, trace.WithAttributes(allAttrs...))
}

// StartFileSpan starts a span for a file-storage operation.
func StartFileSpan(ctx context.Context, name, containerID, file string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	allAttrs := []attribute.KeyValue{Container(containerID)}
	if file != "" {
		allAttrs = append(allAttrs, File(file))
	}
	allAttrs = append(allAttrs, attrs...)

	return StartSpan(ctx, name, trace.WithAttributes(allAttrs...))
}

// StartDirectorySpan starts a span for an identity-directory call.
func StartDirectorySpan(ctx context.Context, operation string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	allAttrs := []attribute.KeyValue{attribute.String("directory.operation", operation)}
	allAttrs = append(allAttrs, attrs...)

	return StartSpan(ctx, SpanDirectoryCall, trace.WithAttributes(allAttrs...))
}
