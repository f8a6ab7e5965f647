package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/WKolaj/SIDIRO-sub006/pkg/metrics"
)

// Metrics returns middleware recording request count, duration and
// in-flight gauge. The route label is the chi route pattern, not the raw
// path, to keep cardinality bounded. A nil collector records nothing.
func Metrics(m *metrics.HTTPMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			m.RequestStart()

			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			route := chi.RouteContext(r.Context()).RoutePattern()
			if route == "" {
				route = "unmatched"
			}
			m.RequestEnd(r.Method, route, ww.Status(), time.Since(start))
		})
	}
}
