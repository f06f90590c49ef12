package persistence

import (
	"errors"
	"time"

	"github.com/petrijr/choreo/pkg/api"
)

// ErrRunNotFound is returned when a journal has no events for a run.
var ErrRunNotFound = errors.New("run not found")

// RunFilter selects runs from a journal. Zero values mean "no filter".
type RunFilter struct {
	Script string
	Limit  int
}

// RunSummary condenses a run's journal entries. Outcome is empty while the
// run has not ended.
type RunSummary struct {
	RunID     string
	Script    string
	StartedAt time.Time
	EndedAt   time.Time
	Outcome   api.Outcome
	Detail    string
}

// OutcomeOf maps a terminal event type onto the run outcome.
func OutcomeOf(t api.EventType) api.Outcome {
	switch t {
	case api.EventRunCompleted:
		return api.OutcomeCompleted
	case api.EventRunCancelled:
		return api.OutcomeCancelled
	case api.EventRunFailed:
		return api.OutcomeFailed
	}
	return ""
}

// summarize folds one run's events, in append order, into a summary.
func summarize(runID string, events []api.RunEvent) RunSummary {
	sum := RunSummary{RunID: runID}
	for _, ev := range events {
		switch {
		case ev.Type == api.EventRunStarted:
			sum.Script = ev.Script
			sum.StartedAt = ev.At
		case ev.Terminal():
			sum.Outcome = OutcomeOf(ev.Type)
			sum.EndedAt = ev.At
			sum.Detail = ev.Detail
		}
	}
	return sum
}

// matches reports whether a summary passes the script filter.
func (f RunFilter) matches(sum RunSummary) bool {
	return f.Script == "" || sum.Script == f.Script
}
