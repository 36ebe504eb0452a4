package domain

import (
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	m "github.com/steverpalmer/GenericTesting/internal/model"
)

// MetricsFile is the textfile-collector file written next to the reports.
const MetricsFile = "gentest.prom"

// Metrics counts check outcomes of a run on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	checks   *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates the run metrics.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		checks: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gentest",
			Name:      "checks_total",
			Help:      "Checks run, by subject and status",
		}, []string{"subject", "status"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "gentest",
			Name:      "check_duration_seconds",
			Help:      "Time spent in the harness per check",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 30},
		}, []string{"subject"}),
	}
}

// Observe records one result.
func (mt *Metrics) Observe(result m.CheckResult) {
	mt.checks.WithLabelValues(result.Subject, result.Status.String()).Inc()

	if result.Status != m.Skipped && result.Status != m.Excluded {
		mt.duration.WithLabelValues(result.Subject).Observe(result.Duration.Seconds())
	}
}

// Checks returns the counter of check outcomes.
func (mt *Metrics) Checks() *prometheus.CounterVec {
	return mt.checks
}

// Registry exposes the underlying registry.
func (mt *Metrics) Registry() *prometheus.Registry {
	return mt.registry
}

// WriteTo writes the metrics in the text exposition format into dir.
func (mt *Metrics) WriteTo(dir string) error {
	return prometheus.WriteToTextfile(filepath.Join(dir, MetricsFile), mt.registry)
}
