package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/nikolayk812/storefront/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilMetricsAreNoop(t *testing.T) {
	var m *metrics.Metrics

	assert.NotPanics(t, func() {
		m.ObserveRequest("/sale", http.MethodPost, http.StatusOK, time.Millisecond)
		m.ObserveCheckout("committed", time.Millisecond)
	})
}

func TestObserveAndExpose(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	m.ObserveRequest("/sale", http.MethodPost, http.StatusBadRequest, 12*time.Millisecond)
	m.ObserveCheckout("aborted", 3*time.Millisecond)
	m.ObserveCheckout("committed", 40*time.Millisecond)

	assert.InDelta(t, 1, testutil.ToFloat64(m.Requests.WithLabelValues("/sale", http.MethodPost, "400")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.Checkouts.WithLabelValues("committed")), 0)

	rec := httptest.NewRecorder()
	metrics.Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `storefront_checkout_total{outcome="aborted"} 1`)
	assert.Contains(t, rec.Body.String(), `storefront_http_requests_total{method="POST",route="/sale",status="400"} 1`)
}
