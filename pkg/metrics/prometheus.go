// Package metrics exports run and step lifecycle events to Prometheus.
package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/petrijr/choreo/pkg/api"
)

// PrometheusObserver implements api.Observer with Prometheus collectors.
type PrometheusObserver struct {
	runs         *prometheus.CounterVec
	active       *prometheus.GaugeVec
	steps        *prometheus.CounterVec
	stepDuration *prometheus.HistogramVec
}

var _ api.Observer = (*PrometheusObserver)(nil)

// NewPrometheusObserver creates the collectors and registers them with reg.
// A nil reg uses prometheus.DefaultRegisterer.
func NewPrometheusObserver(reg prometheus.Registerer, namespace string) (*PrometheusObserver, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "choreo"
	}

	o := &PrometheusObserver{
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "runs_total",
				Help:      "Runs by script and lifecycle event.",
			},
			[]string{"script", "event"},
		),
		active: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "runs_active",
				Help:      "Runs currently in progress.",
			},
			[]string{"script"},
		),
		steps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "steps_completed_total",
				Help:      "Completed steps by script and kind.",
			},
			[]string{"script", "kind"},
		),
		stepDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "step_duration_seconds",
				Help:      "Step durations by kind.",
				Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
			[]string{"script", "kind"},
		),
	}

	for _, c := range []prometheus.Collector{o.runs, o.active, o.steps, o.stepDuration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return o, nil
}

func (o *PrometheusObserver) OnRunStart(ctx context.Context, run api.RunInfo) {
	o.runs.WithLabelValues(run.Script, "started").Inc()
	o.active.WithLabelValues(run.Script).Inc()
}

func (o *PrometheusObserver) OnRunCompleted(ctx context.Context, run api.RunInfo) {
	o.end(run, string(api.OutcomeCompleted))
}

func (o *PrometheusObserver) OnRunCancelled(ctx context.Context, run api.RunInfo) {
	o.end(run, string(api.OutcomeCancelled))
}

func (o *PrometheusObserver) OnRunFailed(ctx context.Context, run api.RunInfo, err error) {
	o.end(run, string(api.OutcomeFailed))
}

func (o *PrometheusObserver) OnStepStart(ctx context.Context, run api.RunInfo, step api.StepInfo) {}

func (o *PrometheusObserver) OnStepCompleted(ctx context.Context, run api.RunInfo, step api.StepInfo, d time.Duration) {
	o.steps.WithLabelValues(run.Script, step.Kind).Inc()
	o.stepDuration.WithLabelValues(run.Script, step.Kind).Observe(d.Seconds())
}

func (o *PrometheusObserver) end(run api.RunInfo, event string) {
	o.runs.WithLabelValues(run.Script, event).Inc()
	o.active.WithLabelValues(run.Script).Dec()
}
