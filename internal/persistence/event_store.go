package persistence

import (
	"context"

	"github.com/petrijr/choreo/pkg/api"
)

// EventStore is an append-only journal of run events.
type EventStore interface {
	AppendEvent(ctx context.Context, ev api.RunEvent) error
	// ListEvents returns a run's events in append order.
	ListEvents(ctx context.Context, runID string) ([]api.RunEvent, error)
	// ListRuns returns summaries, most recently started first.
	ListRuns(ctx context.Context, filter RunFilter) ([]RunSummary, error)
}

// NoopEventStore discards all events.
type NoopEventStore struct{}

func (NoopEventStore) AppendEvent(ctx context.Context, ev api.RunEvent) error { return nil }
func (NoopEventStore) ListEvents(ctx context.Context, runID string) ([]api.RunEvent, error) {
	return nil, nil
}
func (NoopEventStore) ListRuns(ctx context.Context, filter RunFilter) ([]RunSummary, error) {
	return nil, nil
}
