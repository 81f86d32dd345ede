package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/solodesk/solodesk/internal/logging"
	"github.com/solodesk/solodesk/internal/metrics"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Observe logs every request and feeds the prometheus instruments, keyed by
// the chi route pattern so path parameters do not explode label cardinality.
func Observe(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			route := chi.RouteContext(r.Context()).RoutePattern()
			if route == "" {
				route = r.URL.Path
			}
			elapsed := time.Since(start)
			if m != nil {
				m.ObserveRequest(route, r.Method, rec.status, elapsed)
			}
			logging.Debug(r.Context(), "http request",
				zap.String("route", route),
				zap.String("method", r.Method),
				zap.Int("status", rec.status),
				zap.Duration("elapsed", elapsed),
			)
		})
	}
}
