package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.False(t, cfg.Enabled)
	assert.Equal(t, "sidiro", cfg.ServiceName)
	assert.Equal(t, "dev", cfg.ServiceVersion)
	assert.Equal(t, "localhost:4317", cfg.Endpoint)
	assert.True(t, cfg.Insecure)
	assert.Equal(t, 1.0, cfg.SampleRate)
}

func TestInitDisabled(t *testing.T) {
	ctx := context.Background()
	cfg := DefaultConfig()
	cfg.Enabled = false

	shutdown, err := Init(ctx, cfg)
	require.NoError(t, err)
	require.NotNil(t, shutdown)

	err = shutdown(ctx)
	assert.NoError(t, err)

	assert.False(t, IsEnabled())
}

func TestTracerReturnsNoOp(t *testing.T) {
	tracer = nil
	enabled = false

	tr := Tracer()
	require.NotNil(t, tr)
}

func TestStartSpan(t *testing.T) {
	ctx := context.Background()

	// Without initialization StartSpan still works (no-op)
	newCtx, span := StartSpan(ctx, SpanGetUser)
	require.NotNil(t, newCtx)
	require.NotNil(t, span)

	span.End()
}

func TestSpanFromContext(t *testing.T) {
	span := SpanFromContext(context.Background())
	require.NotNil(t, span)
}

func TestAddEvent(t *testing.T) {
	require.NotPanics(t, func() {
		AddEvent(context.Background(), "cache.seeded")
	})
}

func TestRecordError(t *testing.T) {
	ctx := context.Background()

	require.NotPanics(t, func() {
		RecordError(ctx, nil)
	})

	require.NotPanics(t, func() {
		RecordError(ctx, errors.New("test error"))
	})
}

func TestSetStatus(t *testing.T) {
	ctx := context.Background()

	require.NotPanics(t, func() {
		SetStatus(ctx, codes.Ok, "success")
	})

	require.NotPanics(t, func() {
		SetStatus(ctx, codes.Error, "failed")
	})
}

func TestSetAttributes(t *testing.T) {
	require.NotPanics(t, func() {
		SetAttributes(context.Background(), ClientIP("192.168.1.1"))
	})
}

func TestTraceID(t *testing.T) {
	// Without active span, should return empty string
	assert.Equal(t, "", TraceID(context.Background()))
}

func TestSpanID(t *testing.T) {
	assert.Equal(t, "", SpanID(context.Background()))
}

func TestAttributeHelpers(t *testing.T) {
	t.Run("ClientIP", func(t *testing.T) {
		attr := ClientIP("192.168.1.100")
		assert.Equal(t, AttrClientIP, string(attr.Key))
		assert.Equal(t, "192.168.1.100", attr.Value.AsString())
	})

	t.Run("Tenant", func(t *testing.T) {
		attr := Tenant("acme")
		assert.Equal(t, AttrTenant, string(attr.Key))
		assert.Equal(t, "acme", attr.Value.AsString())
	})

	t.Run("AppID", func(t *testing.T) {
		attr := AppID("ten-acme-sub-plant1")
		assert.Equal(t, AttrAppID, string(attr.Key))
		assert.Equal(t, "ten-acme-sub-plant1", attr.Value.AsString())
	})

	t.Run("UserID", func(t *testing.T) {
		attr := UserID("u-42")
		assert.Equal(t, AttrUserID, string(attr.Key))
		assert.Equal(t, "u-42", attr.Value.AsString())
	})

	t.Run("UserName", func(t *testing.T) {
		attr := UserName("alice@acme.com")
		assert.Equal(t, AttrUserName, string(attr.Key))
		assert.Equal(t, "alice@acme.com", attr.Value.AsString())
	})

	t.Run("Group", func(t *testing.T) {
		attr := Group("globalAdminGroup")
		assert.Equal(t, AttrGroup, string(attr.Key))
		assert.Equal(t, "globalAdminGroup", attr.Value.AsString())
	})

	t.Run("CacheHit", func(t *testing.T) {
		attr := CacheHit(true)
		assert.Equal(t, AttrCacheHit, string(attr.Key))
		assert.True(t, attr.Value.AsBool())
	})

	t.Run("CacheEntries", func(t *testing.T) {
		attr := CacheEntries(7)
		assert.Equal(t, AttrCacheEntries, string(attr.Key))
		assert.Equal(t, int64(7), attr.Value.AsInt64())
	})

	t.Run("Container", func(t *testing.T) {
		attr := Container("asset-123")
		assert.Equal(t, AttrContainer, string(attr.Key))
		assert.Equal(t, "asset-123", attr.Value.AsString())
	})

	t.Run("File", func(t *testing.T) {
		attr := File("u-42.user.config.json")
		assert.Equal(t, AttrFile, string(attr.Key))
		assert.Equal(t, "u-42.user.config.json", attr.Value.AsString())
	})

	t.Run("Bucket", func(t *testing.T) {
		attr := Bucket("my-bucket")
		assert.Equal(t, AttrBucket, string(attr.Key))
		assert.Equal(t, "my-bucket", attr.Value.AsString())
	})

	t.Run("StorageKey", func(t *testing.T) {
		attr := StorageKey("asset-123/main.app.config.json")
		assert.Equal(t, AttrKey, string(attr.Key))
		assert.Equal(t, "asset-123/main.app.config.json", attr.Value.AsString())
	})

	t.Run("HTTPStatus", func(t *testing.T) {
		attr := HTTPStatus(409)
		assert.Equal(t, AttrHTTPStatus, string(attr.Key))
		assert.Equal(t, int64(409), attr.Value.AsInt64())
	})
}

func TestStartUserSpan(t *testing.T) {
	ctx := context.Background()

	newCtx, span := StartUserSpan(ctx, SpanGetUser, "ten-acme", "u-42")
	require.NotNil(t, newCtx)
	require.NotNil(t, span)
	span.End()

	// Without user id
	newCtx2, span2 := StartUserSpan(ctx, SpanListUsers, "ten-acme", "")
	require.NotNil(t, newCtx2)
	require.NotNil(t, span2)
	span2.End()

	// With additional attributes
	newCtx3, span3 := StartUserSpan(ctx, SpanCreateUser, "ten-acme", "u-42", Role("GlobalAdmin"))
	require.NotNil(t, newCtx3)
	require.NotNil(t, span3)
	span3.End()
}

func TestStartFileSpan(t *testing.T) {
	ctx := context.Background()

	newCtx, span := StartFileSpan(ctx, SpanFileGet, "asset-123", "u-42.user.config.json")
	require.NotNil(t, newCtx)
	require.NotNil(t, span)
	span.End()

	newCtx2, span2 := StartFileSpan(ctx, SpanFileList, "asset-123", "")
	require.NotNil(t, newCtx2)
	require.NotNil(t, span2)
	span2.End()
}

func TestStartDirectorySpan(t *testing.T) {
	ctx := context.Background()

	newCtx, span := StartDirectorySpan(ctx, "ListUsers", UserName("alice@acme.com"))
	require.NotNil(t, newCtx)
	require.NotNil(t, span)
	span.End()
}
