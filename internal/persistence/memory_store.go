package persistence

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/petrijr/choreo/pkg/api"
)

// InMemoryEventStore is a goroutine-safe EventStore backed by maps.
type InMemoryEventStore struct {
	mu     sync.RWMutex
	events map[string][]api.RunEvent
	order  []string
}

// NewInMemoryEventStore creates an empty InMemoryEventStore.
func NewInMemoryEventStore() *InMemoryEventStore {
	return &InMemoryEventStore{
		events: make(map[string][]api.RunEvent),
	}
}

var _ EventStore = (*InMemoryEventStore)(nil)

func (s *InMemoryEventStore) AppendEvent(ctx context.Context, ev api.RunEvent) error {
	if ev.At.IsZero() {
		ev.At = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[ev.RunID]; !ok {
		s.order = append(s.order, ev.RunID)
	}
	s.events[ev.RunID] = append(s.events[ev.RunID], ev)
	return nil
}

func (s *InMemoryEventStore) ListEvents(ctx context.Context, runID string) ([]api.RunEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	evs, ok := s.events[runID]
	if !ok {
		return nil, ErrRunNotFound
	}
	out := make([]api.RunEvent, len(evs))
	copy(out, evs)
	return out, nil
}

func (s *InMemoryEventStore) ListRuns(ctx context.Context, filter RunFilter) ([]RunSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []RunSummary
	for i := len(s.order) - 1; i >= 0; i-- {
		id := s.order[i]
		sum := summarize(id, s.events[id])
		if filter.matches(sum) {
			out = append(out, sum)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartedAt.After(out[j].StartedAt)
	})
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}
