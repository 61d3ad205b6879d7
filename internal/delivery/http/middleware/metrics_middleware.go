package middleware

import (
	"net/http"
	"time"

	"autodominio-api/internal/service"

	"github.com/gorilla/mux"
)

type MetricsMiddleware struct {
	metrics *service.MetricsService
}

func NewMetricsMiddleware(metrics *service.MetricsService) *MetricsMiddleware {
	return &MetricsMiddleware{metrics: metrics}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Handle records latency per route template so path parameters do not explode label cardinality.
func (m *MetricsMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		path := "unmatched"
		if route := mux.CurrentRoute(r); route != nil {
			if tmpl, err := route.GetPathTemplate(); err == nil {
				path = tmpl
			}
		}
		m.metrics.ObserveHTTPRequest(r.Method, path, rec.status, time.Since(started))
	})
}
