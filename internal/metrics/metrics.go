// Package metrics exposes quality and content gauges in Prometheus format.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/starford/kbase/internal/quality"
)

const namespace = "kbase"

// Metrics owns a private registry so tests and multiple servers do not
// collide on the global one.
type Metrics struct {
	registry *prometheus.Registry

	entryScore   *prometheus.GaugeVec
	averageScore prometheus.Gauge
	failedChecks *prometheus.GaugeVec
	entries      prometheus.Gauge
	changes      *prometheus.CounterVec
}

// New creates and registers all collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		entryScore: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "quality",
			Name:      "entry_score",
			Help:      "Checklist score (0-100) of each entry.",
		}, []string{"slug"}),
		averageScore: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "quality",
			Name:      "average_score",
			Help:      "Mean checklist score across all entries.",
		}),
		failedChecks: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "quality",
			Name:      "failed_checks",
			Help:      "Number of entries failing each check.",
		}, []string{"check"}),
		entries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "library",
			Name:      "entries",
			Help:      "Entries visible in the reader.",
		}),
		changes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "library",
			Name:      "changes_total",
			Help:      "Content changes picked up by the watcher.",
		}, []string{"kind"}),
	}
	m.registry.MustRegister(
		m.entryScore,
		m.averageScore,
		m.failedChecks,
		m.entries,
		m.changes,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveReports replaces the quality gauges with the given batch.
func (m *Metrics) ObserveReports(reports []quality.Report) {
	m.entryScore.Reset()
	m.failedChecks.Reset()
	for _, r := range reports {
		m.entryScore.WithLabelValues(r.Slug).Set(float64(r.Score))
		for _, c := range r.Failed() {
			m.failedChecks.WithLabelValues(c.ID).Inc()
		}
	}
	m.averageScore.Set(float64(quality.Summarize(reports).AverageScore))
}

// SetEntries records the number of visible entries.
func (m *Metrics) SetEntries(n int) {
	m.entries.Set(float64(n))
}

// ContentChanged counts one watcher event.
func (m *Metrics) ContentChanged(kind string) {
	m.changes.WithLabelValues(kind).Inc()
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
