// Package metrics exposes Prometheus instrumentation for the generation
// facade: how long each generator kind takes, how often WFC has to
// backtrack, and how often a generator falls short of its target.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors for generation runs.
type Metrics struct {
	generationDuration *prometheus.HistogramVec
	backtracksTotal    *prometheus.CounterVec
	shortfallTotal     *prometheus.CounterVec

	registry *prometheus.Registry
}

// New creates and registers the generation metrics.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		generationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "mapgen_generation_duration_seconds",
				Help:    "Time spent inside a single generate() call, by kind",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"kind"},
		),
		backtracksTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mapgen_generation_backtracks_total",
				Help: "Total WFC backtracks consumed across all generation runs",
			},
			[]string{"kind"},
		),
		shortfallTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mapgen_generation_shortfall_total",
				Help: "Total runs that finished without reaching their quality target",
			},
			[]string{"kind"},
		),
		registry: registry,
	}

	m.registry.MustRegister(m.generationDuration, m.backtracksTotal, m.shortfallTotal)
	return m
}

// ObserveDuration records how long a generate() call for kind took.
func (m *Metrics) ObserveDuration(kind string, seconds float64) {
	m.generationDuration.WithLabelValues(kind).Observe(seconds)
}

// AddBacktracks records backtracks consumed by a WFC run.
func (m *Metrics) AddBacktracks(kind string, count int) {
	if count <= 0 {
		return
	}
	m.backtracksTotal.WithLabelValues(kind).Add(float64(count))
}

// RecordShortfall records a run that did not reach its target (a drunkard's
// walk stall, a WFC that gave up, and so on).
func (m *Metrics) RecordShortfall(kind string) {
	m.shortfallTotal.WithLabelValues(kind).Inc()
}

// Handler returns an HTTP handler exposing the metrics in Prometheus
// exposition format, for a caller that wants to serve /metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
