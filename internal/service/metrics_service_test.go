package service

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsServiceCountsBookings(t *testing.T) {
	m := NewMetricsService()
	m.ObserveBooking(BookingOutcomeCreated, "")
	m.ObserveBooking(BookingOutcomeRejected, "SLOT_UNAVAILABLE")
	m.ObserveBooking(BookingOutcomeRejected, "SLOT_UNAVAILABLE")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.bookingTotal.WithLabelValues(BookingOutcomeCreated, "")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.bookingTotal.WithLabelValues(BookingOutcomeRejected, "SLOT_UNAVAILABLE")))
}

func TestMetricsServiceHandlerExposesRequests(t *testing.T) {
	m := NewMetricsService()
	m.ObserveHTTPRequest(http.MethodGet, "/api/v1/health", http.StatusOK, 10*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `http_requests_total{method="GET",path="/api/v1/health",status="200"} 1`)
}

func TestMetricsServiceNilIsSafe(t *testing.T) {
	var m *MetricsService
	m.ObserveBooking(BookingOutcomeError, "INTERNAL_ERROR")
	m.ObserveResolve(time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
