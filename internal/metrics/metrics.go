// Package metrics provides Prometheus instrumentation for the HTTP API.
//
// Each Metrics value owns its registry, so tests and multiple servers in
// one process do not collide on the global default registry.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "calctutor"

// Metrics holds the tutor's counters and histograms.
type Metrics struct {
	registry *prometheus.Registry

	// ClassificationsTotal counts classifications.
	// Labels: technique, rule
	ClassificationsTotal *prometheus.CounterVec

	// VerdictsTotal counts validations.
	// Labels: kind (empty, exact, equivalent, partial, incorrect), reason
	VerdictsTotal *prometheus.CounterVec

	// RevealsTotal counts hints and steps served.
	// Labels: kind (hint, step), technique
	RevealsTotal *prometheus.CounterVec

	// RequestDurationSeconds measures HTTP handler latency.
	// Labels: route, method, status
	RequestDurationSeconds *prometheus.HistogramVec
}

// New creates a Metrics instance with a fresh registry. Go runtime and
// process collectors are registered alongside the tutor metrics.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		ClassificationsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "classifications_total",
				Help:      "Total classifications by technique and matching rule",
			},
			[]string{"technique", "rule"},
		),
		VerdictsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "verdicts_total",
				Help:      "Total answer validations by verdict kind and partial reason",
			},
			[]string{"kind", "reason"},
		),
		RevealsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "reveals_total",
				Help:      "Total hints and steps served by kind and technique",
			},
			[]string{"kind", "technique"},
		),
		RequestDurationSeconds: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
			[]string{"route", "method", "status"},
		),
	}
}

// Registry returns the registry the metrics are registered with.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// RecordClassification increments the classification counter.
func (m *Metrics) RecordClassification(technique, rule string) {
	m.ClassificationsTotal.WithLabelValues(technique, rule).Inc()
}

// RecordVerdict increments the verdict counter. An empty reason is
// reported as "none".
func (m *Metrics) RecordVerdict(kind, reason string) {
	if reason == "" {
		reason = "none"
	}
	m.VerdictsTotal.WithLabelValues(kind, reason).Inc()
}

// RecordReveal increments the reveal counter.
func (m *Metrics) RecordReveal(kind, technique string) {
	m.RevealsTotal.WithLabelValues(kind, technique).Inc()
}

// ObserveRequest records one HTTP request.
func (m *Metrics) ObserveRequest(route, method string, status int, d time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.RequestDurationSeconds.WithLabelValues(route, method, strconv.Itoa(status)).Observe(d.Seconds())
}
