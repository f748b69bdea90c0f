package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsMiddlewareRecordsRoutePattern(t *testing.T) {
	metrics := NewMetrics()
	r := chi.NewRouter()
	r.Use(metrics.Middleware)
	r.Get("/screens/{name}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/screens/orders", nil))
	require.Equal(t, http.StatusTeapot, rr.Code)

	out := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(out, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, out.Code)
	body := out.Body.String()
	assert.Contains(t, body, `shopdesk_http_requests_total{code="418",route="/screens/{name}"} 1`)
	assert.Contains(t, body, `shopdesk_http_request_duration_seconds_bucket{route="/screens/{name}"`)
}

func TestStatusRecorderUnwraps(t *testing.T) {
	rr := httptest.NewRecorder()
	rec := &statusRecorder{ResponseWriter: rr, status: http.StatusOK}
	assert.Same(t, rr, rec.Unwrap())
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})
	assert.NotNil(t, m.Middleware(next))
	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestUpgradesSkipDuration(t *testing.T) {
	metrics := NewMetrics()
	r := chi.NewRouter()
	r.Use(metrics.Middleware)
	r.Get("/screens/{name}/live", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusSwitchingProtocols)
	})

	req := httptest.NewRequest(http.MethodGet, "/screens/orders/live", nil)
	req.Header.Set("Upgrade", "websocket")
	r.ServeHTTP(httptest.NewRecorder(), req)

	out := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(out, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := out.Body.String()
	assert.Contains(t, body, `shopdesk_http_requests_total{code="101",route="/screens/{name}/live"} 1`)
	assert.NotContains(t, body, `shopdesk_http_request_duration_seconds_bucket{route="/screens/{name}/live"`)
}

func TestSessionGauge(t *testing.T) {
	metrics := NewMetrics()
	first := metrics.SessionOpened("orders")
	second := metrics.SessionOpened("orders")
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.liveSessions.WithLabelValues("orders")))

	first()
	second()
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.liveSessions.WithLabelValues("orders")))

	var nilMetrics *Metrics
	assert.NotPanics(t, func() { nilMetrics.SessionOpened("orders")() })
}
