package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTPMetrics records API request outcomes. A nil *HTTPMetrics is valid
// and records nothing.
type HTTPMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	inFlight prometheus.Gauge
}

var (
	httpOnce   sync.Once
	httpShared *HTTPMetrics
)

// NewHTTPMetrics returns the shared API request collectors, or nil when
// metrics are disabled.
func NewHTTPMetrics() *HTTPMetrics {
	httpOnce.Do(func() {
		reg := GetRegistry()
		if reg == nil {
			return
		}
		httpShared = &HTTPMetrics{
			requests: promauto.With(reg).NewCounterVec(
				prometheus.CounterOpts{
					Name: "sidiro_http_requests_total",
					Help: "API requests by method, matched route and status code",
				},
				[]string{"method", "route", "status"},
			),
			duration: promauto.With(reg).NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "sidiro_http_request_duration_seconds",
					Help:    "API request duration by method and matched route",
					Buckets: prometheus.DefBuckets,
				},
				[]string{"method", "route"},
			),
			inFlight: promauto.With(reg).NewGauge(
				prometheus.GaugeOpts{
					Name: "sidiro_http_requests_in_flight",
					Help: "API requests currently being served",
				},
			),
		}
	})
	return httpShared
}

// RequestStart increments the in-flight gauge.
func (m *HTTPMetrics) RequestStart() {
	if m == nil {
		return
	}
	m.inFlight.Inc()
}

// RequestEnd records one finished request and decrements the in-flight
// gauge.
func (m *HTTPMetrics) RequestEnd(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.inFlight.Dec()
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(method, route).Observe(d.Seconds())
}
