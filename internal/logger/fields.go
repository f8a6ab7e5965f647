package logger

import "log/slog"

// Standard field keys for structured logging. Use these keys consistently
// across all log statements for log aggregation and querying.
const (
	// Distributed tracing
	KeyTraceID = "trace_id" // OpenTelemetry trace ID for request correlation
	KeySpanID  = "span_id"  // OpenTelemetry span ID for operation tracking

	// Tenancy & application scope
	KeyTenant    = "tenant"    // Owning tenant name
	KeySubtenant = "subtenant" // Subtenant name for subtenant-scoped applications
	KeyAppID     = "app_id"    // Application id (ten-<tenant>[-sub-<subtenant>])

	// User configuration operations
	KeyUserID   = "user_id"   // Directory-assigned user id
	KeyUserName = "user_name" // User login name
	KeyRole     = "role"      // Application role name
	KeyGroup    = "group"     // Directory group name

	// HTTP surface
	KeyClientIP   = "client_ip"  // Client IP address
	KeyRequestID  = "request_id" // Per-request correlation id
	KeyMethod     = "method"     // HTTP method
	KeyPath       = "path"       // HTTP request path
	KeyStatus     = "status"     // HTTP response status code
	KeyUpstream   = "upstream"   // Upstream service name
	KeyDurationMs = "duration_ms"
	KeyError      = "error"

	// File storage
	KeyContainerID = "container_id" // Storage container (asset) id
	KeyFile        = "file"         // File name within a container
	KeyBucket      = "bucket"       // S3 bucket name
	KeyKey         = "key"          // Object key in cloud storage
	KeyRegion      = "region"       // Cloud region

	// Cache layer
	KeyCacheHit = "cache_hit" // Cache hit indicator
	KeyEntries  = "entries"   // Number of cached entries
)

// Field constructors for type safety.

// TraceID returns a slog.Attr for OpenTelemetry trace ID
func TraceID(id string) slog.Attr {
	return slog.String(KeyTraceID, id)
}

// SpanID returns a slog.Attr for OpenTelemetry span ID
func SpanID(id string) slog.Attr {
	return slog.String(KeySpanID, id)
}

// Tenant returns a slog.Attr for the owning tenant
func Tenant(name string) slog.Attr {
	return slog.String(KeyTenant, name)
}

// AppID returns a slog.Attr for an application id
func AppID(id string) slog.Attr {
	return slog.String(KeyAppID, id)
}

// UserID returns a slog.Attr for a directory user id
func UserID(id string) slog.Attr {
	return slog.String(KeyUserID, id)
}

// UserName returns a slog.Attr for a user login name
func UserName(name string) slog.Attr {
	return slog.String(KeyUserName, name)
}

// Role returns a slog.Attr for an application role name
func Role(name string) slog.Attr {
	return slog.String(KeyRole, name)
}

// Group returns a slog.Attr for a directory group name
func Group(name string) slog.Attr {
	return slog.String(KeyGroup, name)
}

// ClientIP returns a slog.Attr for client IP address
func ClientIP(addr string) slog.Attr {
	return slog.String(KeyClientIP, addr)
}

// RequestID returns a slog.Attr for a request correlation id
func RequestID(id string) slog.Attr {
	return slog.String(KeyRequestID, id)
}

// Method returns a slog.Attr for an HTTP method
func Method(m string) slog.Attr {
	return slog.String(KeyMethod, m)
}

// Path returns a slog.Attr for an HTTP request path
func Path(p string) slog.Attr {
	return slog.String(KeyPath, p)
}

// Status returns a slog.Attr for an HTTP status code
func Status(code int) slog.Attr {
	return slog.Int(KeyStatus, code)
}

// Upstream returns a slog.Attr for an upstream service name
func Upstream(name string) slog.Attr {
	return slog.String(KeyUpstream, name)
}

// DurationMs returns a slog.Attr for duration in milliseconds
func DurationMs(ms float64) slog.Attr {
	return slog.Float64(KeyDurationMs, ms)
}

// Err returns a slog.Attr for an error
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String(KeyError, err.Error())
}

// ContainerID returns a slog.Attr for a storage container id
func ContainerID(id string) slog.Attr {
	return slog.String(KeyContainerID, id)
}

// File returns a slog.Attr for a container file name
func File(name string) slog.Attr {
	return slog.String(KeyFile, name)
}

// Bucket returns a slog.Attr for an S3 bucket name
func Bucket(name string) slog.Attr {
	return slog.String(KeyBucket, name)
}

// Key returns a slog.Attr for an object key in cloud storage
func Key(k string) slog.Attr {
	return slog.String(KeyKey, k)
}

// Region returns a slog.Attr for a cloud region
func Region(r string) slog.Attr {
	return slog.String(KeyRegion, r)
}

// CacheHit returns a slog.Attr for cache hit indicator
func CacheHit(hit bool) slog.Attr {
	return slog.Bool(KeyCacheHit, hit)
}

// Entries returns a slog.Attr for the number of cached entries
func Entries(n int) slog.Attr {
	return slog.Int(KeyEntries, n)
}
