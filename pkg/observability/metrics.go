package observability

import (
	"context"
	"net/http"

	"github.com/aretw0/synthmc/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the executor collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	StageRuns    *prometheus.CounterVec
	StepDuration *prometheus.HistogramVec
	StepFailures *prometheus.CounterVec
	StepWarnings *prometheus.CounterVec
	Runs         *prometheus.CounterVec
}

// NewMetrics creates and registers the collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		StageRuns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "synthmc_stage_runs_total",
				Help: "Total number of stages entered",
			},
			[]string{"stage"},
		),
		StepDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "synthmc_step_duration_seconds",
				Help:    "Duration of external step invocations",
				Buckets: prometheus.ExponentialBuckets(0.01, 4, 8),
			},
			[]string{"stage", "command"},
		),
		StepFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "synthmc_step_failures_total",
				Help: "Total number of failed step invocations",
			},
			[]string{"stage", "command"},
		),
		StepWarnings: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "synthmc_step_warnings_total",
				Help: "Total number of warnings reported by steps",
			},
			[]string{"stage", "command"},
		),
		Runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "synthmc_runs_total",
				Help: "Total number of finished runs by status",
			},
			[]string{"status"},
		),
	}
	m.registry.MustRegister(m.StageRuns, m.StepDuration, m.StepFailures, m.StepWarnings, m.Runs)
	return m
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Hooks returns lifecycle hooks that record stage and step metrics.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStageEnter: func(_ context.Context, e *domain.StageEvent) {
			m.StageRuns.WithLabelValues(e.Label).Inc()
		},
		OnStepReturn: func(_ context.Context, e *domain.StepEvent) {
			m.StepDuration.WithLabelValues(e.Stage, e.Command).Observe(e.Duration.Seconds())
			if n := len(e.Warnings); n > 0 {
				m.StepWarnings.WithLabelValues(e.Stage, e.Command).Add(float64(n))
			}
			if e.Err != nil {
				m.StepFailures.WithLabelValues(e.Stage, e.Command).Inc()
			}
		},
	}
}

// ObserveReport counts a finished run.
func (m *Metrics) ObserveReport(r *domain.Report) {
	if r == nil || r.Status == "" {
		return
	}
	m.Runs.WithLabelValues(string(r.Status)).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// WriteTextfile writes the current values for the node_exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
