package choreo

import (
	"log/slog"

	"github.com/petrijr/choreo/internal/engine"
	"github.com/petrijr/choreo/pkg/api"
	"github.com/petrijr/choreo/pkg/clock"
)

// Re-export key types so users don't need to dig into pkg/api.

type (
	Step      = api.Step
	Wait      = api.Wait
	Tween     = api.Tween
	TweenVec  = api.TweenVec
	Scroll    = api.Scroll
	Typewrite = api.Typewrite
	Mutate    = api.Mutate
	Spring    = api.Spring
	Parallel  = api.Parallel
	Sequence  = api.Sequence
	Repeat    = api.Repeat
	Hold      = api.Hold
	Halt      = api.Halt

	Vec       = api.Vec
	ViewModel = api.ViewModel
	Change    = api.Change
	Token     = api.Token

	Director  = api.Director
	Outcome   = api.Outcome
	Result    = api.Result
	RunInfo   = api.RunInfo
	StepInfo  = api.StepInfo
	StepError = api.StepError
	RunEvent  = api.RunEvent

	Observer             = api.Observer
	LoggingObserver      = api.LoggingObserver
	BasicMetrics         = api.BasicMetrics
	BasicMetricsSnapshot = api.BasicMetricsSnapshot
	CompositeObserver    = api.CompositeObserver
	NoopObserver         = api.NoopObserver
)

var (
	NewViewModel         = api.NewViewModel
	NewToken             = api.NewToken
	NewLoggingObserver   = api.NewLoggingObserver
	NewCompositeObserver = api.NewCompositeObserver
	IsStepError          = api.IsStepError
	FormatValue          = api.FormatValue
)

var (
	ErrAlreadyRunning = api.ErrAlreadyRunning
	ErrNilScript      = api.ErrNilScript
	ErrNilViewModel   = engine.ErrNilViewModel
)

const (
	OutcomeCompleted = api.OutcomeCompleted
	OutcomeCancelled = api.OutcomeCancelled
	OutcomeFailed    = api.OutcomeFailed
)

// Option configures a Director.
type Option func(*options)

type options struct {
	name      string
	clock     clock.Clock
	observers []api.Observer
	newRunID  func() string
}

// WithClock drives runs from c instead of the wall clock.
func WithClock(c clock.Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithObserver adds an observer. Repeated use composes observers in order.
func WithObserver(obs Observer) Option {
	return func(o *options) {
		if obs != nil {
			o.observers = append(o.observers, obs)
		}
	}
}

// WithName labels runs for observers and journals.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithLogger logs run and step lifecycle events to logger.
func WithLogger(logger *slog.Logger) Option {
	return WithObserver(api.NewLoggingObserver(logger))
}

// WithRunIDs replaces the random run ID generator.
func WithRunIDs(next func() string) Option {
	return func(o *options) { o.newRunID = next }
}

// NewDirector returns a Director for script.
func NewDirector(script Step, opts ...Option) (Director, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	cfg := engine.Config{
		Name:     o.name,
		Clock:    o.clock,
		NewRunID: o.newRunID,
	}
	switch len(o.observers) {
	case 0:
	case 1:
		cfg.Observer = o.observers[0]
	default:
		cfg.Observer = api.NewCompositeObserver(o.observers...)
	}
	return engine.New(script, cfg)
}
