package buffer

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	metricsNamespace = "pi2"
	bufferSubsystem  = "buffer"
)

// Metrics records buffer activity in Prometheus collectors. A nil *Metrics
// records nothing.
type Metrics struct {
	edits      *prometheus.CounterVec
	rejected   prometheus.Counter
	rebalances prometheus.Counter
	depth      prometheus.Histogram
}

// NewMetrics creates buffer collectors and registers them with reg.
// Several buffers may share one Metrics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		edits: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: bufferSubsystem,
			Name:      "edits_total",
			Help:      "Applied edits by kind",
		}, []string{"kind"}),
		rejected: f.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: bufferSubsystem,
			Name:      "rejected_edits_total",
			Help:      "Edits rejected by validation",
		}),
		rebalances: f.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: bufferSubsystem,
			Name:      "rebalances_total",
			Help:      "Automatic rope rebalances",
		}),
		depth: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: bufferSubsystem,
			Name:      "rope_depth",
			Help:      "Rope depth after each applied edit",
			Buckets:   []float64{1, 2, 4, 8, 16, 32, 64, 128, 256},
		}),
	}
}

func (m *Metrics) observeEdit(e Edit, depth int) {
	if m == nil {
		return
	}
	m.edits.WithLabelValues(editKind(e)).Inc()
	m.depth.Observe(float64(depth))
}

func (m *Metrics) observeRejected() {
	if m == nil {
		return
	}
	m.rejected.Inc()
}

func (m *Metrics) observeRebalance() {
	if m == nil {
		return
	}
	m.rebalances.Inc()
}

func editKind(e Edit) string {
	switch {
	case e.Range.IsEmpty():
		return "insert"
	case e.NewText == "":
		return "delete"
	default:
		return "replace"
	}
}
