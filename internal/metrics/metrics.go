// Package metrics exposes registry activity as Prometheus metrics.
//
// *Metrics implements registry.Observer, so wiring it is one option:
//
//	registry.NewCourses(registry.WithObserver(m))
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "college"

// Metrics holds the console's collectors.
type Metrics struct {
	added    *prometheus.CounterVec
	removed  *prometheus.CounterVec
	rejected *prometheus.CounterVec
	records  *prometheus.GaugeVec
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		added: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_added_total",
			Help:      "Records added, by entity kind.",
		}, []string{"kind"}),
		removed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_removed_total",
			Help:      "Records removed, by entity kind.",
		}, []string{"kind"}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_rejected_total",
			Help:      "Drafts rejected by validation, by entity kind.",
		}, []string{"kind"}),
		records: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "records",
			Help:      "Current number of records, by entity kind.",
		}, []string{"kind"}),
	}
	reg.MustRegister(m.added, m.removed, m.rejected, m.records)
	return m
}

// SetSize records the current size of a registry. Call it once per kind at
// startup so the gauge reflects the seed before the first mutation.
func (m *Metrics) SetSize(kind string, size int) {
	m.records.WithLabelValues(kind).Set(float64(size))
}

func (m *Metrics) RecordAdded(kind string, _ int, size int) {
	m.added.WithLabelValues(kind).Inc()
	m.SetSize(kind, size)
}

func (m *Metrics) RecordRemoved(kind string, _ int, removed int, size int) {
	m.removed.WithLabelValues(kind).Add(float64(removed))
	m.SetSize(kind, size)
}

func (m *Metrics) RecordRejected(kind string) {
	m.rejected.WithLabelValues(kind).Inc()
}
