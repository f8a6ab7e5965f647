package metrics

import (
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WKolaj/SIDIRO-sub006/pkg/userconfig"
)

func TestDisabledByDefault(t *testing.T) {
	resetForTesting()

	assert.False(t, IsEnabled())
	assert.Nil(t, GetRegistry())
	assert.Nil(t, NewCacheMetrics("ten-acme"))
	assert.Nil(t, NewHTTPMetrics())

	// Handler responds 404 when disabled
	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, 404, rec.Code)

	// Nil collectors are safe to use
	var hm *HTTPMetrics
	require.NotPanics(t, func() {
		hm.RequestStart()
		hm.RequestEnd("GET", "/health", 200, time.Millisecond)
	})
}

func TestInitRegistryIsIdempotent(t *testing.T) {
	resetForTesting()

	InitRegistry()
	reg := GetRegistry()
	require.NotNil(t, reg)

	InitRegistry()
	assert.Same(t, reg, GetRegistry())
}

func TestCacheMetricsRecords(t *testing.T) {
	resetForTesting()
	InitRegistry()

	m := NewCacheMetrics("ten-acme")
	require.NotNil(t, m)

	m.ReadHit()
	m.ReadHit()
	m.ReadMiss()
	m.StoreLoad(5*time.Millisecond, nil)
	m.StoreLoad(5*time.Millisecond, errors.New("boom"))
	m.StoreLoad(5*time.Millisecond, userconfig.ErrFileNotFound)
	m.Entries(3)

	c := userConfigCollectors()
	assert.Equal(t, 2.0, testutil.ToFloat64(c.readHits.WithLabelValues("ten-acme")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.readMisses.WithLabelValues("ten-acme")))
	assert.Equal(t, 3.0, testutil.ToFloat64(c.loadCount.WithLabelValues("ten-acme")))
	// Missing files do not count as load errors
	assert.Equal(t, 1.0, testutil.ToFloat64(c.loadErrors.WithLabelValues("ten-acme")))
	assert.Equal(t, 3.0, testutil.ToFloat64(c.entries.WithLabelValues("ten-acme")))
}

func TestCacheMetricsSharedAcrossApps(t *testing.T) {
	resetForTesting()
	InitRegistry()

	m1 := NewCacheMetrics("ten-acme")
	m2 := NewCacheMetrics("ten-acme-sub-plant1")
	require.NotNil(t, m1)
	require.NotNil(t, m2)

	m1.ReadHit()
	m2.ReadMiss()

	c := userConfigCollectors()
	assert.Equal(t, 1.0, testutil.ToFloat64(c.readHits.WithLabelValues("ten-acme")))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.readHits.WithLabelValues("ten-acme-sub-plant1")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.readMisses.WithLabelValues("ten-acme-sub-plant1")))
}

func TestHTTPMetricsRecords(t *testing.T) {
	resetForTesting()
	InitRegistry()

	m := NewHTTPMetrics()
	require.NotNil(t, m)

	m.RequestStart()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.inFlight))
	m.RequestEnd("GET", "/api/v1/applications", 200, 10*time.Millisecond)
	assert.Equal(t, 0.0, testutil.ToFloat64(m.inFlight))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "/api/v1/applications", "200")))
}

func TestHandlerServesMetrics(t *testing.T) {
	resetForTesting()
	InitRegistry()

	NewCacheMetrics("ten-acme").ReadHit()

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), "sidiro_userconfig_cache_hits_total")
}
