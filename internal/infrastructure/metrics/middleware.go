package metrics

import (
	"net/http"
	"time"
)

// statusRecorder captures the response status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Middleware returns an HTTP middleware that records request count,
// duration, and error count per route. The route label is the request
// method plus the matched path prefix, not the raw URL, to keep the
// metric cardinality bounded.
func Middleware(collector *Collector, exporter *PrometheusExporter, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		route := r.Method + " " + routePattern(r.URL.Path)

		collector.RecordRequest(route)
		if exporter != nil {
			exporter.RecordRequest(route)
		}

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		duration := time.Since(start).Seconds()
		collector.RecordDuration(route, duration)
		if exporter != nil {
			exporter.RecordDuration(route, duration)
		}

		if rec.status >= http.StatusBadRequest {
			collector.RecordError(route)
			if exporter != nil {
				exporter.RecordError(route)
			}
		}
	})
}

// routePattern collapses path parameters so that /items/42 and /items/7
// share one label.
func routePattern(path string) string {
	prefixes := []string{"/types/", "/items/", "/users/", "/admin/approve/", "/admin/promote/", "/admin/demote/", "/admin/users/"}
	for _, p := range prefixes {
		if len(path) > len(p) && path[:len(p)] == p {
			return p + "{id}"
		}
	}
	return path
}
