package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the process-wide HTTP and infrastructure metrics.
type Metrics struct {
	RequestDuration  *prometheus.HistogramVec
	ActionLogEvents  *prometheus.CounterVec
	ActionLogDropped prometheus.Counter
	RateLimited      *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "debatetab_http_request_duration_seconds",
			Help:    "Duration of HTTP requests by route pattern",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"method", "route", "status"}),
		ActionLogEvents: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "debatetab_actionlog_events_total",
			Help: "Action-log events accepted, by type",
		}, []string{"type"}),
		ActionLogDropped: promauto.NewCounter(prometheus.CounterOpts{
			Name: "debatetab_actionlog_events_dropped_total",
			Help: "Action-log events dropped because the worker queue was full",
		}),
		RateLimited: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "debatetab_http_rate_limited_total",
			Help: "Requests rejected by the per-IP rate limiter, by scope",
		}, []string{"scope"}),
	}
}

// ObserveRequest records one HTTP request. Call with time.Now() taken at
// the start of the request.
func (m *Metrics) ObserveRequest(method, route string, status int, start time.Time) {
	if m == nil {
		return
	}
	m.RequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(time.Since(start).Seconds())
}

// IncrementActionLogEvent counts an accepted action-log event.
func (m *Metrics) IncrementActionLogEvent(eventType string) {
	if m == nil {
		return
	}
	m.ActionLogEvents.WithLabelValues(eventType).Inc()
}

// IncrementActionLogDropped counts an event the worker could not accept.
func (m *Metrics) IncrementActionLogDropped() {
	if m == nil {
		return
	}
	m.ActionLogDropped.Inc()
}

// IncrementRateLimited counts a request rejected with 429.
func (m *Metrics) IncrementRateLimited(scope string) {
	if m == nil {
		return
	}
	m.RateLimited.WithLabelValues(scope).Inc()
}
