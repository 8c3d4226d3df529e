package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for room allocation.
type Metrics struct {
	// Load latencies of the edit-rooms payload by source
	LoadLatency *prometheus.HistogramVec

	// Constrained debates per edit-rooms payload
	ConstrainedDebates prometheus.Histogram

	// Saved categories and constraints
	Saved *prometheus.CounterVec
}

func New() *Metrics {
	return &Metrics{
		LoadLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "debatetab_venues_load_duration_seconds",
			Help:    "Duration of edit-rooms load operations by source",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"source"}), // source: "debates", "venues", "categories", "constraints", "total"

		ConstrainedDebates: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "debatetab_venues_constrained_debates",
			Help:    "Number of debates with at least one constrained participant per payload",
			Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100},
		}),

		Saved: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "debatetab_venues_saved_total",
			Help: "Venue categories and constraints saved, by kind",
		}, []string{"kind"}),
	}
}

// ObserveLoad records the duration of one load since start.
func (m *Metrics) ObserveLoad(source string, start time.Time) {
	if m != nil {
		m.LoadLatency.WithLabelValues(source).Observe(time.Since(start).Seconds())
	}
}

func (m *Metrics) ObserveConstrainedDebates(n int) {
	if m != nil {
		m.ConstrainedDebates.Observe(float64(n))
	}
}

func (m *Metrics) AddSaved(kind string, n int) {
	if m != nil && n > 0 {
		m.Saved.WithLabelValues(kind).Add(float64(n))
	}
}
