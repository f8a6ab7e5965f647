package metrics

import (
	"errors"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/WKolaj/SIDIRO-sub006/pkg/userconfig"
)

// ucCollectors holds the label-vector collectors shared by every
// application cache. Created once per process against the registry.
type ucCollectors struct {
	readHits    *prometheus.CounterVec
	readMisses  *prometheus.CounterVec
	loadCount   *prometheus.CounterVec
	loadErrors  *prometheus.CounterVec
	loadSeconds *prometheus.HistogramVec
	entries     *prometheus.GaugeVec
}

var (
	ucOnce   sync.Once
	ucShared *ucCollectors
)

func userConfigCollectors() *ucCollectors {
	ucOnce.Do(func() {
		reg := GetRegistry()
		if reg == nil {
			return
		}
		ucShared = &ucCollectors{
			readHits: promauto.With(reg).NewCounterVec(
				prometheus.CounterOpts{
					Name: "sidiro_userconfig_cache_hits_total",
					Help: "Cache reads served from memory, including confirmed-absent slots",
				},
				[]string{"app_id"},
			),
			readMisses: promauto.With(reg).NewCounterVec(
				prometheus.CounterOpts{
					Name: "sidiro_userconfig_cache_misses_total",
					Help: "Cache reads that had to consult the file store",
				},
				[]string{"app_id"},
			),
			loadCount: promauto.With(reg).NewCounterVec(
				prometheus.CounterOpts{
					Name: "sidiro_userconfig_store_loads_total",
					Help: "Read-through fetches issued against the file store",
				},
				[]string{"app_id"},
			),
			loadErrors: promauto.With(reg).NewCounterVec(
				prometheus.CounterOpts{
					Name: "sidiro_userconfig_store_load_errors_total",
					Help: "Read-through fetches that failed, missing files excluded",
				},
				[]string{"app_id"},
			),
			loadSeconds: promauto.With(reg).NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "sidiro_userconfig_store_load_duration_seconds",
					Help:    "Duration of read-through fetches against the file store",
					Buckets: prometheus.DefBuckets,
				},
				[]string{"app_id"},
			),
			entries: promauto.With(reg).NewGaugeVec(
				prometheus.GaugeOpts{
					Name: "sidiro_userconfig_cache_entries",
					Help: "Present user-configuration records per application cache",
				},
				[]string{"app_id"},
			),
		}
	})
	return ucShared
}

// cacheMetrics implements userconfig.Metrics for one application.
type cacheMetrics struct {
	appID string
	c     *ucCollectors
}

// NewCacheMetrics returns the userconfig.Metrics collector for one
// application cache, or nil when metrics are disabled.
func NewCacheMetrics(appID string) userconfig.Metrics {
	c := userConfigCollectors()
	if c == nil {
		return nil
	}
	return &cacheMetrics{appID: appID, c: c}
}

// MetricsFactory is the per-application collector constructor consumed by
// the registry bootstrap.
type MetricsFactory func(appID string) userconfig.Metrics

func (m *cacheMetrics) ReadHit() {
	m.c.readHits.WithLabelValues(m.appID).Inc()
}

func (m *cacheMetrics) ReadMiss() {
	m.c.readMisses.WithLabelValues(m.appID).Inc()
}

func (m *cacheMetrics) StoreLoad(d time.Duration, err error) {
	m.c.loadCount.WithLabelValues(m.appID).Inc()
	m.c.loadSeconds.WithLabelValues(m.appID).Observe(d.Seconds())
	if err != nil && !errors.Is(err, userconfig.ErrFileNotFound) {
		m.c.loadErrors.WithLabelValues(m.appID).Inc()
	}
}

func (m *cacheMetrics) Entries(n int) {
	m.c.entries.WithLabelValues(m.appID).Set(float64(n))
}
