package service

import (
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Booking outcomes recorded by ObserveBooking.
const (
	BookingOutcomeCreated  = "created"
	BookingOutcomeRejected = "rejected"
	BookingOutcomeError    = "error"
)

// MetricsService encapsulates Prometheus instrumentation.
type MetricsService struct {
	registry         *prometheus.Registry
	handler          http.Handler
	requestDuration  *prometheus.HistogramVec
	requestTotal     *prometheus.CounterVec
	bookingTotal     *prometheus.CounterVec
	resolveDuration  prometheus.Histogram
	bookingLockWait  prometheus.Histogram
	transitionsTotal *prometheus.CounterVec
}

func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	bookingTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "appointment_bookings_total",
		Help: "Appointment creation attempts by outcome and error code",
	}, []string{"outcome", "code"})

	resolveDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "availability_resolve_duration_seconds",
		Help:    "Time spent resolving instructor availability",
		Buckets: prometheus.DefBuckets,
	})

	bookingLockWait := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "booking_lock_wait_seconds",
		Help:    "Time spent waiting for the per-instructor booking lock",
		Buckets: prometheus.DefBuckets,
	})

	transitionsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "status_transitions_total",
		Help: "Applied status transitions by kind and target status",
	}, []string{"kind", "to"})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, bookingTotal, resolveDuration, bookingLockWait, transitionsTotal, goroutines)

	return &MetricsService{
		registry:         registry,
		handler:          promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration:  requestDuration,
		requestTotal:     requestTotal,
		bookingTotal:     bookingTotal,
		resolveDuration:  resolveDuration,
		bookingLockWait:  bookingLockWait,
		transitionsTotal: transitionsTotal,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

func (m *MetricsService) Registry() *prometheus.Registry {
	return m.registry
}

func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := strconv.Itoa(status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

func (m *MetricsService) ObserveBooking(outcome, code string) {
	if m == nil {
		return
	}
	m.bookingTotal.WithLabelValues(outcome, code).Inc()
}

func (m *MetricsService) ObserveResolve(duration time.Duration) {
	if m == nil {
		return
	}
	m.resolveDuration.Observe(duration.Seconds())
}

func (m *MetricsService) ObserveLockWait(duration time.Duration) {
	if m == nil {
		return
	}
	m.bookingLockWait.Observe(duration.Seconds())
}

func (m *MetricsService) ObserveTransition(kind, to string) {
	if m == nil {
		return
	}
	m.transitionsTotal.WithLabelValues(kind, to).Inc()
}
