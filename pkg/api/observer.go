package api

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

// Observer receives run and step lifecycle notifications. Calls are made on
// the run goroutine, so implementations should return quickly.
type Observer interface {
	OnRunStart(ctx context.Context, run RunInfo)
	OnRunCompleted(ctx context.Context, run RunInfo)
	OnRunCancelled(ctx context.Context, run RunInfo)
	OnRunFailed(ctx context.Context, run RunInfo, err error)

	OnStepStart(ctx context.Context, run RunInfo, step StepInfo)
	OnStepCompleted(ctx context.Context, run RunInfo, step StepInfo, d time.Duration)
}

// NoopObserver ignores all events.
type NoopObserver struct{}

func (NoopObserver) OnRunStart(ctx context.Context, run RunInfo)                {}
func (NoopObserver) OnRunCompleted(ctx context.Context, run RunInfo)            {}
func (NoopObserver) OnRunCancelled(ctx context.Context, run RunInfo)            {}
func (NoopObserver) OnRunFailed(ctx context.Context, run RunInfo, err error)    {}
func (NoopObserver) OnStepStart(ctx context.Context, run RunInfo, step StepInfo) {}
func (NoopObserver) OnStepCompleted(ctx context.Context, run RunInfo, step StepInfo, d time.Duration) {
}

// CompositeObserver fans out events to multiple observers.
type CompositeObserver struct {
	observers []Observer
}

// NewCompositeObserver creates an Observer that forwards events to each of
// the given observers in order. Nil observers are ignored.
func NewCompositeObserver(observers ...Observer) Observer {
	var filtered []Observer
	for _, o := range observers {
		if o != nil {
			filtered = append(filtered, o)
		}
	}
	if len(filtered) == 0 {
		return NoopObserver{}
	}
	if len(filtered) == 1 {
		return filtered[0]
	}
	return &CompositeObserver{observers: filtered}
}

func (c *CompositeObserver) OnRunStart(ctx context.Context, run RunInfo) {
	for _, o := range c.observers {
		o.OnRunStart(ctx, run)
	}
}

func (c *CompositeObserver) OnRunCompleted(ctx context.Context, run RunInfo) {
	for _, o := range c.observers {
		o.OnRunCompleted(ctx, run)
	}
}

func (c *CompositeObserver) OnRunCancelled(ctx context.Context, run RunInfo) {
	for _, o := range c.observers {
		o.OnRunCancelled(ctx, run)
	}
}

func (c *CompositeObserver) OnRunFailed(ctx context.Context, run RunInfo, err error) {
	for _, o := range c.observers {
		o.OnRunFailed(ctx, run, err)
	}
}

func (c *CompositeObserver) OnStepStart(ctx context.Context, run RunInfo, step StepInfo) {
	for _, o := range c.observers {
		o.OnStepStart(ctx, run, step)
	}
}

func (c *CompositeObserver) OnStepCompleted(ctx context.Context, run RunInfo, step StepInfo, d time.Duration) {
	for _, o := range c.observers {
		o.OnStepCompleted(ctx, run, step, d)
	}
}

// LoggingObserver writes structured logs using log/slog.
type LoggingObserver struct {
	Logger *slog.Logger
}

// NewLoggingObserver creates an Observer that logs run and step lifecycle
// events using the provided slog.Logger. If logger is nil, slog.Default()
// is used.
func NewLoggingObserver(logger *slog.Logger) Observer {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingObserver{Logger: logger}
}

func (o *LoggingObserver) OnRunStart(ctx context.Context, run RunInfo) {
	o.Logger.InfoContext(ctx, "run_start",
		slog.String("script", run.Script),
		slog.String("run_id", run.ID),
	)
}

func (o *LoggingObserver) OnRunCompleted(ctx context.Context, run RunInfo) {
	o.Logger.InfoContext(ctx, "run_completed",
		slog.String("script", run.Script),
		slog.String("run_id", run.ID),
	)
}

func (o *LoggingObserver) OnRunCancelled(ctx context.Context, run RunInfo) {
	o.Logger.InfoContext(ctx, "run_cancelled",
		slog.String("script", run.Script),
		slog.String("run_id", run.ID),
	)
}

func (o *LoggingObserver) OnRunFailed(ctx context.Context, run RunInfo, err error) {
	o.Logger.ErrorContext(ctx, "run_failed",
		slog.String("script", run.Script),
		slog.String("run_id", run.ID),
		slog.Any("error", err),
	)
}

func (o *LoggingObserver) OnStepStart(ctx context.Context, run RunInfo, step StepInfo) {
	o.Logger.DebugContext(ctx, "step_start",
		slog.String("run_id", run.ID),
		slog.String("step", step.Path),
		slog.String("kind", step.Kind),
	)
}

func (o *LoggingObserver) OnStepCompleted(ctx context.Context, run RunInfo, step StepInfo, d time.Duration) {
	o.Logger.DebugContext(ctx, "step_completed",
		slog.String("run_id", run.ID),
		slog.String("step", step.Path),
		slog.String("kind", step.Kind),
		slog.Duration("duration", d),
	)
}

// BasicMetrics collects simple counters and aggregate step durations.
// It implements Observer, and can be combined with LoggingObserver via
// NewCompositeObserver.
type BasicMetrics struct {
	NoopObserver

	runsStarted       atomic.Int64
	runsCompleted     atomic.Int64
	runsCancelled     atomic.Int64
	runsFailed        atomic.Int64
	stepsCompleted    atomic.Int64
	totalStepDuration atomic.Int64 // nanoseconds
}

// BasicMetricsSnapshot is an immutable snapshot of BasicMetrics.
type BasicMetricsSnapshot struct {
	RunsStarted   int64
	RunsCompleted int64
	RunsCancelled int64
	RunsFailed    int64
	RunsActive    int64

	StepsCompleted  int64
	AvgStepDuration time.Duration
}

func (m *BasicMetrics) OnRunStart(ctx context.Context, run RunInfo) {
	m.runsStarted.Add(1)
}

func (m *BasicMetrics) OnRunCompleted(ctx context.Context, run RunInfo) {
	m.runsCompleted.Add(1)
}

func (m *BasicMetrics) OnRunCancelled(ctx context.Context, run RunInfo) {
	m.runsCancelled.Add(1)
}

func (m *BasicMetrics) OnRunFailed(ctx context.Context, run RunInfo, err error) {
	m.runsFailed.Add(1)
}

func (m *BasicMetrics) OnStepCompleted(ctx context.Context, run RunInfo, step StepInfo, d time.Duration) {
	m.stepsCompleted.Add(1)
	m.totalStepDuration.Add(d.Nanoseconds())
}

// Snapshot returns a consistent view of the counters.
func (m *BasicMetrics) Snapshot() BasicMetricsSnapshot {
	started := m.runsStarted.Load()
	completed := m.runsCompleted.Load()
	cancelled := m.runsCancelled.Load()
	failed := m.runsFailed.Load()
	steps := m.stepsCompleted.Load()
	total := m.totalStepDuration.Load()

	var avg time.Duration
	if steps > 0 {
		avg = time.Duration(total / steps)
	}

	return BasicMetricsSnapshot{
		RunsStarted:     started,
		RunsCompleted:   completed,
		RunsCancelled:   cancelled,
		RunsFailed:      failed,
		RunsActive:      started - completed - cancelled - failed,
		StepsCompleted:  steps,
		AvgStepDuration: avg,
	}
}
