package bptree

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors a Tree updates as it serves
// operations, grounded on the counter/histogram/gauge vocabulary used
// for instrumenting request handlers in freyjadb's pkg/api/metrics.go.
// Each Tree gets its own registered collector set so multiple trees in
// one process don't collide on metric identity.
type Metrics struct {
	registry   *prometheus.Registry
	operations *prometheus.CounterVec
	latency    *prometheus.HistogramVec
	height     prometheus.Gauge
	nodeCount  *prometheus.GaugeVec
}

func newMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		operations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bptree_operations_total",
			Help: "Total number of tree operations by kind and outcome.",
		}, []string{"op", "outcome"}),
		latency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bptree_operation_duration_seconds",
			Help:    "Latency of tree operations by kind.",
			Buckets: prometheus.DefBuckets,
		}, []string{"op"}),
		height: factory.NewGauge(prometheus.GaugeOpts{
			Name: "bptree_height",
			Help: "Current height of the tree (0 for a single-leaf tree).",
		}),
		nodeCount: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "bptree_nodes_allocated_total",
			Help: "Count of leaf/internal node records ever allocated, by kind. Monotonic: the underlying paged file is append-only, so merged nodes are abandoned rather than freed.",
		}, []string{"kind"}),
	}
}

func (m *Metrics) observe(op string, err error, seconds float64) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.operations.WithLabelValues(op, outcome).Inc()
	m.latency.WithLabelValues(op).Observe(seconds)
}

func (m *Metrics) setHeight(h int) {
	m.height.Set(float64(h))
}

// Registry exposes the tree's private Prometheus registry so callers can
// mount it under their own HTTP handler (e.g. promhttp.HandlerFor).
func (t *Tree[K, V]) Registry() *prometheus.Registry {
	return t.metrics.registry
}
