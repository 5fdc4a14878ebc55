package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"employeeapi/internal/api"
	"employeeapi/internal/platform/telemetry"
)

// Metrics returns middleware that records HTTP request metrics.
// Place as the outermost middleware to capture the full request lifecycle.
func Metrics(m *telemetry.APIMetrics) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &api.StatusWriter{ResponseWriter: w, Code: http.StatusOK}

			next.ServeHTTP(sw, r)

			if m != nil {
				m.RecordHTTPRequest(r.Context(), r.Method, MetricPath(r.URL.Path), sw.Code, time.Since(start).Seconds())
			}
		})
	}
}

// MetricPath replaces numeric path segments with "{id}" to bound label cardinality.
func MetricPath(path string) string {
	segs := strings.Split(path, "/")
	for i, s := range segs {
		if _, err := strconv.Atoi(s); err == nil {
			segs[i] = "{id}"
		}
	}
	return strings.Join(segs, "/")
}
