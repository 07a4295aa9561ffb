// Package metrics records validation runs as Prometheus metrics and writes
// them to a node-exporter textfile. Nothing is served over HTTP.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/filegate/filegate/internal/domain"
)

// Textfile implements domain.MetricsRecorder. It is safe for concurrent use.
type Textfile struct {
	path string
	reg  *prometheus.Registry

	runs       *prometheus.CounterVec // filegate_runs_total{status}
	checks     *prometheus.CounterVec // filegate_checks_total{kind,result}
	violations *prometheus.CounterVec // filegate_violations_total{kind}
	rows       prometheus.Counter
	duration   prometheus.Histogram
}

// NewTextfile builds a recorder that Flush writes to path. An empty path
// records in memory only.
func NewTextfile(path string) (*Textfile, error) {
	reg := prometheus.NewRegistry()

	t := &Textfile{
		path: path,
		reg:  reg,
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "filegate_runs_total",
				Help: "Validation runs, partitioned by status (pass or fail).",
			},
			[]string{"status"},
		),
		checks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "filegate_checks_total",
				Help: "Checks evaluated, partitioned by kind and result.",
			},
			[]string{"kind", "result"},
		),
		violations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "filegate_violations_total",
				Help: "Offending values or header problems found, partitioned by kind.",
			},
			[]string{"kind"},
		),
		rows: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "filegate_rows_total",
			Help: "Data rows read across all runs.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "filegate_run_duration_seconds",
			Help:    "Wall time of a validation run.",
			Buckets: prometheus.ExponentialBuckets(0.005, 4, 8),
		}),
	}

	for _, c := range []prometheus.Collector{t.runs, t.checks, t.violations, t.rows, t.duration} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("metrics: register collector: %w", err)
		}
	}
	return t, nil
}

// ObserveRun records one finished report.
func (t *Textfile) ObserveRun(r *domain.ValidationReport) {
	t.runs.WithLabelValues(r.Status).Inc()
	t.rows.Add(float64(r.Rows))
	t.duration.Observe(float64(r.DurationMS) / 1000)

	t.observe(r.Structural)
	for _, c := range r.Content {
		t.observe(c)
	}
}

func (t *Textfile) observe(c domain.CheckOutcome) {
	kind := string(c.Kind)
	if kind == "" {
		kind = c.Name
	}
	result := domain.StatusPass
	if !c.Passed {
		result = domain.StatusFail
	}
	t.checks.WithLabelValues(kind, result).Inc()
	if c.Violations > 0 {
		t.violations.WithLabelValues(kind).Add(float64(c.Violations))
	}
}

// Flush writes every metric to the textfile atomically. Without a path it
// does nothing.
func (t *Textfile) Flush() error {
	if t.path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(t.path, t.reg); err != nil {
		return fmt.Errorf("metrics: writing %s: %w", t.path, err)
	}
	return nil
}

// Gatherer exposes the registry, mainly for tests.
func (t *Textfile) Gatherer() prometheus.Gatherer { return t.reg }
