package rest

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
)

// prometheus metrics
type metrics struct {
	RouteQueryCount    *prometheus.CounterVec
	RouteNotFoundCount *prometheus.CounterVec
	httpDuration       *prometheus.HistogramVec
	durationSummary    prometheus.Summary
	responseStatusCode *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		RouteQueryCount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "locroute",
			Name:      "route_query_count",
			Help:      "The total number of route query",
		}, []string{"metric"}),
		RouteNotFoundCount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "locroute",
			Name:      "route_not_found_count",
			Help:      "The total number of route query without result, by reason",
		}, []string{"reason"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "locroute",
			Name:      "request_duration_seconds",
			Help:      "The duration of request",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1}, // 0.001 = 1ms
		}, []string{"method", "path"}),
		durationSummary: prometheus.NewSummary(prometheus.SummaryOpts{
			Namespace:  "locroute",
			Name:       "request_duration_summary_seconds",
			Help:       "The duration of request",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		}),
		responseStatusCode: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "locroute",
				Name:      "response_status_code",
				Help:      "The status code of http response",
			}, []string{"status", "method", "path"},
		),
	}
	reg.MustRegister(m.RouteQueryCount, m.RouteNotFoundCount, m.httpDuration, m.durationSummary, m.responseStatusCode)
	return m
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{w, http.StatusOK}
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// PromeHttpMiddleware label path pakai route pattern chi biar cardinality nya tidak meledak karena query param/id.
func PromeHttpMiddleware(m *metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rw := newResponseWriter(w)
			now := time.Now()

			next.ServeHTTP(rw, r)

			path := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				path = rctx.RoutePattern()
			}
			elapsed := time.Since(now).Seconds()
			m.httpDuration.With(prometheus.Labels{"method": r.Method, "path": path}).Observe(elapsed)
			m.responseStatusCode.With(prometheus.Labels{"status": strconv.Itoa(rw.statusCode), "method": r.Method, "path": path}).Inc()
			m.durationSummary.Observe(elapsed)
		})
	}
}
