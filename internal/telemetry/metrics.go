package telemetry

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"moVRP/internal/opt"
)

// Metrics keeps optimizer run metrics on a dedicated registry. Runs are batch jobs,
// so the registry is written to a node-exporter textfile instead of being served.
type Metrics struct {
	Registry *prometheus.Registry

	Runs        *prometheus.CounterVec
	Evaluations *prometheus.CounterVec
	Warnings    *prometheus.CounterVec
	Duration    *prometheus.HistogramVec
	FrontSize   *prometheus.GaugeVec
}

func New() *Metrics {
	labels := []string{"algo", "instance"}
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		Runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "movrp_runs_total", Help: "Completed optimizer runs."},
			labels,
		),
		Evaluations: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "movrp_evaluations_total", Help: "Objective evaluations over all runs."},
			labels,
		),
		Warnings: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "movrp_run_warnings_total", Help: "Runs that ended with a warning, such as an empty front."},
			labels,
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "movrp_run_duration_seconds",
				Help:    "Wall time of a single run.",
				Buckets: prometheus.ExponentialBuckets(0.01, 2, 14),
			},
			labels,
		),
		FrontSize: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{Name: "movrp_front_size", Help: "Size of the last returned Pareto front."},
			labels,
		),
	}
	m.Registry.MustRegister(m.Runs, m.Evaluations, m.Warnings, m.Duration, m.FrontSize)
	return m
}

// ObserveRun is safe for concurrent use.
func (m *Metrics) ObserveRun(algo, instance string, res opt.Result) {
	l := prometheus.Labels{"algo": algo, "instance": instance}
	m.Runs.With(l).Inc()
	m.Evaluations.With(l).Add(float64(res.Evaluations))
	m.Duration.With(l).Observe(res.Duration.Seconds())
	m.FrontSize.With(l).Set(float64(len(res.Front)))
	if res.Warning != nil {
		m.Warnings.With(l).Inc()
	}
}

func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.Registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
