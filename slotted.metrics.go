package slotted

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metric label values for fragment cache lookups
const (
	metricResultHit   = "hit"
	metricResultMiss  = "miss"
	metricResultError = "error"
)

// Metrics provides Prometheus instrumentation for an Engine.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	// Templates compiled
	Compiles prometheus.Counter

	// Segment count of compiled templates after merging
	Segments prometheus.Histogram

	// Render latency by template name
	RenderLatency *prometheus.HistogramVec

	// Fragment cache lookups by result: hit, miss, error
	FragmentLookups *prometheus.CounterVec
}

// NewMetrics registers the engine metrics with reg. A nil reg uses the
// default Prometheus registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		Compiles: factory.NewCounter(prometheus.CounterOpts{
			Name: "slotted_template_compiles_total",
			Help: "Total templates compiled",
		}),

		Segments: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "slotted_template_segments",
			Help:    "Segments per compiled template after literal merging",
			Buckets: []float64{1, 2, 4, 8, 16, 32, 64, 128, 256},
		}),

		RenderLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "slotted_render_duration_seconds",
			Help:    "Duration of template renders by template name",
			Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
		}, []string{"template"}),

		FragmentLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "slotted_fragment_cache_lookups_total",
			Help: "Fragment cache lookups by result",
		}, []string{"result"}),
	}
}

// ObserveCompile records a compiled template.
func (m *Metrics) ObserveCompile(segments int) {
	if m != nil {
		m.Compiles.Inc()
		m.Segments.Observe(float64(segments))
	}
}

// ObserveRender records the duration of a render.
func (m *Metrics) ObserveRender(template string, d time.Duration) {
	if m != nil {
		m.RenderLatency.WithLabelValues(template).Observe(d.Seconds())
	}
}

// IncrementFragmentHit records a fragment cache hit.
func (m *Metrics) IncrementFragmentHit() {
	m.incrementFragment(metricResultHit)
}

// IncrementFragmentMiss records a fragment cache miss.
func (m *Metrics) IncrementFragmentMiss() {
	m.incrementFragment(metricResultMiss)
}

// IncrementFragmentError records a failed fragment cache lookup.
func (m *Metrics) IncrementFragmentError() {
	m.incrementFragment(metricResultError)
}

func (m *Metrics) incrementFragment(result string) {
	if m != nil {
		m.FragmentLookups.WithLabelValues(result).Inc()
	}
}
