package providers

import (
	"net/http"
	"time"
)

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// unmatchedEndpoint labels requests that reached no registered route.
const unmatchedEndpoint = "other"

// endpointLabel returns the mux pattern that served r so the label set stays
// bounded by the registered routes.
func endpointLabel(r *http.Request, status int) string {
	if r.Pattern == "" || status == http.StatusNotFound {
		return unmatchedEndpoint
	}
	return r.Pattern
}

// MetricsMiddleware must wrap a ServeMux, which sets r.Pattern on the matched request.
func MetricsMiddleware(metrics MetricsProviderInterface, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sw, r)

		duration := time.Since(start)
		endpoint := endpointLabel(r, sw.status)
		metrics.IncRequestsTotal(endpoint, sw.status)
		metrics.ObserveRequestDuration(endpoint, duration)
	})
}

// AccessLogMiddleware writes one debug line per request.
func AccessLogMiddleware(logger Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sw, r)

		logger.Debugf(TypeHttp, "%s %s?%s %d %s", r.Method, r.URL.Path, r.URL.RawQuery, sw.status, time.Since(start))
	})
}
