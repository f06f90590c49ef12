package choreo

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/petrijr/choreo/internal/persistence"
	"github.com/petrijr/choreo/pkg/api"
	"github.com/petrijr/choreo/pkg/clock"
)

// Journal records run lifecycle events and answers history queries.
type (
	Journal    = persistence.EventStore
	RunFilter  = persistence.RunFilter
	RunSummary = persistence.RunSummary
)

// ErrRunNotFound is returned by Journal.ListEvents for unknown run IDs.
var ErrRunNotFound = persistence.ErrRunNotFound

// NewInMemoryJournal returns a non-durable journal.
func NewInMemoryJournal() Journal {
	return persistence.NewInMemoryEventStore()
}

// NewSQLiteJournal returns a journal stored in db, creating its table if
// needed.
//
//	db, _ := sql.Open("sqlite", "file:choreo.db?_pragma=journal_mode(WAL)")
//	j, err := choreo.NewSQLiteJournal(db)
func NewSQLiteJournal(db *sql.DB) (Journal, error) {
	return persistence.NewSQLiteEventStore(db)
}

// NewRedisJournal returns a journal stored under prefix in Redis.
func NewRedisJournal(client *redis.Client, prefix string) Journal {
	return persistence.NewRedisEventStore(client, prefix)
}

// JournalObserver appends every lifecycle callback to a Journal. Append
// failures are logged and otherwise ignored so a broken journal never
// disturbs a run.
type JournalObserver struct {
	journal Journal
	clock   clock.Clock
	logger  *slog.Logger
}

var _ api.Observer = (*JournalObserver)(nil)

// NewJournalObserver timestamps events with clk, which should be the clock
// driving the director. Nil arguments select the wall clock and slog.Default.
func NewJournalObserver(j Journal, clk clock.Clock, logger *slog.Logger) *JournalObserver {
	if clk == nil {
		clk = clock.Real(clock.DefaultFPS)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &JournalObserver{journal: j, clock: clk, logger: logger}
}

func (o *JournalObserver) append(ctx context.Context, ev api.RunEvent) {
	if ev.At.IsZero() {
		ev.At = o.clock.Now()
	}
	if err := o.journal.AppendEvent(ctx, ev); err != nil {
		o.logger.WarnContext(ctx, "journal_append_failed",
			slog.String("run_id", ev.RunID),
			slog.String("event", string(ev.Type)),
			slog.Any("error", err),
		)
	}
}

func (o *JournalObserver) OnRunStart(ctx context.Context, run api.RunInfo) {
	o.append(ctx, api.RunEvent{RunID: run.ID, At: run.StartedAt, Type: api.EventRunStarted, Script: run.Script})
}

func (o *JournalObserver) OnRunCompleted(ctx context.Context, run api.RunInfo) {
	o.append(ctx, api.RunEvent{RunID: run.ID, Type: api.EventRunCompleted, Script: run.Script})
}

func (o *JournalObserver) OnRunCancelled(ctx context.Context, run api.RunInfo) {
	o.append(ctx, api.RunEvent{RunID: run.ID, Type: api.EventRunCancelled, Script: run.Script})
}

func (o *JournalObserver) OnRunFailed(ctx context.Context, run api.RunInfo, err error) {
	o.append(ctx, api.RunEvent{RunID: run.ID, Type: api.EventRunFailed, Script: run.Script, Detail: err.Error()})
}

func (o *JournalObserver) OnStepStart(ctx context.Context, run api.RunInfo, step api.StepInfo) {
	o.append(ctx, api.RunEvent{
		RunID:  run.ID,
		Type:   api.EventStepStarted,
		Script: run.Script,
		Step:   step.Path,
		Kind:   step.Kind,
	})
}

func (o *JournalObserver) OnStepCompleted(ctx context.Context, run api.RunInfo, step api.StepInfo, d time.Duration) {
	o.append(ctx, api.RunEvent{
		RunID:    run.ID,
		Type:     api.EventStepCompleted,
		Script:   run.Script,
		Step:     step.Path,
		Kind:     step.Kind,
		Duration: d,
	})
}
