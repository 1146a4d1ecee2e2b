package providers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockMetrics struct {
	requestEndpoint string
	requestStatus   int
	requestCalls    int
	durationCalls   int
}

func (m *mockMetrics) IncRequestsTotal(endpoint string, status int) {
	m.requestEndpoint = endpoint
	m.requestStatus = status
	m.requestCalls++
}
func (m *mockMetrics) ObserveRequestDuration(_ string, _ time.Duration) { m.durationCalls++ }
func (m *mockMetrics) IncCacheHits()                                    {}
func (m *mockMetrics) IncCacheMisses()                                  {}
func (m *mockMetrics) ObserveLoadDuration(_ time.Duration)              {}

func TestMetricsMiddleware_CapturesStatusAndEndpoint(t *testing.T) {
	metrics := &mockMetrics{}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/stats", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	mw := MetricsMiddleware(metrics, mux)

	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	rr := httptest.NewRecorder()
	mw.ServeHTTP(rr, req)

	assert.Equal(t, 1, metrics.requestCalls)
	assert.Equal(t, "/api/stats", metrics.requestEndpoint)
	assert.Equal(t, http.StatusCreated, metrics.requestStatus)
	assert.Equal(t, 1, metrics.durationCalls)
}

func TestMetricsMiddleware_DefaultStatus200(t *testing.T) {
	metrics := &mockMetrics{}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	mw := MetricsMiddleware(metrics, handler)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rr := httptest.NewRecorder()
	mw.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, metrics.requestStatus)
}

type endpointSet struct {
	mockMetrics
	seen map[string]int
}

func (e *endpointSet) IncRequestsTotal(endpoint string, status int) {
	e.seen[endpoint]++
}

func TestMetricsMiddleware_UnknownPathsShareOneLabel(t *testing.T) {
	metrics := &endpointSet{seen: map[string]int{}}

	router := NewRouterProvider()
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	router.Page("/", ok)
	router.Get("/api/stats", ok)

	mux := http.NewServeMux()
	for _, route := range router.GetRoutes() {
		mux.Handle(route.Url, route.Handler)
	}
	mw := MetricsMiddleware(metrics, mux)

	for i := 0; i < 500; i++ {
		rr := httptest.NewRecorder()
		mw.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/junk-%d", i), nil))
		require.Equal(t, http.StatusNotFound, rr.Code)
	}
	for _, path := range []string{"/", "/api/stats", "/api/stats"} {
		rr := httptest.NewRecorder()
		mw.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, rr.Code)
	}

	assert.Equal(t, map[string]int{
		unmatchedEndpoint: 500,
		"/":               1,
		"/api/stats":      2,
	}, metrics.seen)
}

func TestEndpointLabel_WithoutPattern(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	assert.Equal(t, unmatchedEndpoint, endpointLabel(req, http.StatusOK))

	req.Pattern = "/api/stats"
	assert.Equal(t, "/api/stats", endpointLabel(req, http.StatusOK))
	assert.Equal(t, unmatchedEndpoint, endpointLabel(req, http.StatusNotFound))
}

func TestStatusWriter_WriteHeader(t *testing.T) {
	rr := httptest.NewRecorder()
	sw := &statusWriter{ResponseWriter: rr, status: http.StatusOK}

	sw.WriteHeader(http.StatusNotFound)
	assert.Equal(t, http.StatusNotFound, sw.status)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

type accessLogRecorder struct {
	cacheTestLogger
	lines []string
}

func (a *accessLogRecorder) Debugf(_ TypeEnum, format string, args ...interface{}) {
	a.lines = append(a.lines, fmt.Sprintf(format, args...))
}

func TestAccessLogMiddleware_LogsRequest(t *testing.T) {
	logger := &accessLogRecorder{}
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/layers?min_distance=abc", nil)
	rr := httptest.NewRecorder()
	AccessLogMiddleware(logger, handler).ServeHTTP(rr, req)

	require.Len(t, logger.lines, 1)
	assert.Contains(t, logger.lines[0], "GET /api/layers?min_distance=abc 400")
}
