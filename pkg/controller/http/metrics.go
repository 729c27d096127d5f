package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/josoor-ai/capdesk/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the HTTP collectors exposed on /metrics
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	overlays *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them into registerer
func NewMetrics(registerer prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "capdesk",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status code.",
		}, []string{"route", "method", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "capdesk",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		overlays: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "capdesk",
			Name:      "overlay_evaluations_total",
			Help:      "Matrix and insight evaluations by overlay.",
		}, []string{"overlay"}),
	}

	for _, c := range []prometheus.Collector{m.requests, m.duration, m.overlays} {
		if err := registerer.Register(c); err != nil {
			return nil, goerr.Wrap(err, "failed to register collector")
		}
	}
	return m, nil
}

// Middleware records request count and latency keyed by the chi route pattern
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.requests.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
		m.duration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

// ObserveOverlay counts one evaluation of kind
func (m *Metrics) ObserveOverlay(kind types.OverlayKind) {
	m.overlays.WithLabelValues(kind.String()).Inc()
}
