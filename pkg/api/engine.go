package api

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrAlreadyRunning is returned by Start while a run is active.
	ErrAlreadyRunning = errors.New("choreo: director already running")

	// ErrNilScript is returned when a director is built without a script.
	ErrNilScript = errors.New("choreo: nil script")
)

// Outcome is how a run ended.
type Outcome string

const (
	OutcomeCompleted Outcome = "completed"
	OutcomeCancelled Outcome = "cancelled"
	OutcomeFailed    Outcome = "failed"
)

// Result is delivered once per run.
type Result struct {
	RunID   string
	Outcome Outcome
	Err     error
}

// RunInfo identifies a run for observers.
type RunInfo struct {
	ID        string
	Script    string
	StartedAt time.Time
}

// StepInfo identifies a step within a run. Path is the slash separated
// index path from the root, e.g. "0/2/1".
type StepInfo struct {
	Path string
	Kind string
}

// Director walks one script against a view model.
type Director interface {
	// Start begins a run in the background. The channel receives exactly
	// one Result. It fails with ErrAlreadyRunning if a run is active.
	Start(ctx context.Context, vm *ViewModel) (<-chan Result, error)

	// Run starts a run and waits for it to end.
	Run(ctx context.Context, vm *ViewModel) (Outcome, error)

	// Cancel stops the active run. No callback starts after Cancel returns.
	// It is a no-op when nothing is running and never blocks. A callback
	// already in progress may still write; hosts on another goroutine that
	// need no write after the call returns should use Stop.
	Cancel()

	// Stop cancels the active run and waits for it to unwind. It must not
	// be called from a step callback.
	Stop()

	IsRunning() bool
}

// StepError wraps a failure raised by a step callback.
type StepError struct {
	Step StepInfo
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("choreo: %s step %s: %v", e.Step.Kind, e.Step.Path, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// IsStepError reports whether err wraps a *StepError.
func IsStepError(err error) bool {
	var se *StepError
	return errors.As(err, &se)
}

// AsStepError extracts the *StepError from err.
func AsStepError(err error) (*StepError, bool) {
	var se *StepError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
