package api

import "time"

// EventType classifies entries of a run journal.
type EventType string

const (
	EventRunStarted    EventType = "run.started"
	EventRunCompleted  EventType = "run.completed"
	EventRunCancelled  EventType = "run.cancelled"
	EventRunFailed     EventType = "run.failed"
	EventStepStarted   EventType = "step.started"
	EventStepCompleted EventType = "step.completed"
)

// RunEvent is one journal entry. Step is empty for run level events.
type RunEvent struct {
	RunID    string
	At       time.Time
	Type     EventType
	Script   string
	Step     string
	Kind     string
	Duration time.Duration
	Detail   string
}

// Terminal reports whether the event ends a run.
func (e RunEvent) Terminal() bool {
	switch e.Type {
	case EventRunCompleted, EventRunCancelled, EventRunFailed:
		return true
	}
	return false
}
