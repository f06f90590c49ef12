package choreo

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/petrijr/choreo/internal/logging"
	"github.com/petrijr/choreo/pkg/api"
)

func journals(t *testing.T) map[string]Journal {
	t.Helper()

	db, err := sql.Open("sqlite", "file:"+filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	sqliteJournal, err := NewSQLiteJournal(db)
	require.NoError(t, err)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return map[string]Journal{
		"memory": NewInMemoryJournal(),
		"sqlite": sqliteJournal,
		"redis":  NewRedisJournal(client, "choreo:"),
	}
}

func TestJournalObserverRecordsRuns(t *testing.T) {
	t.Parallel()

	for name, j := range journals(t) {
		t.Run(name, func(t *testing.T) {
			clk := simulated()
			obs := NewJournalObserver(j, clk, logging.NewNop())

			ids := []string{"first", "second"}
			dir, err := New("journaled").
				Wait(time.Second).
				Tween("x", 0, 1, 500*time.Millisecond, nil).
				Director(
					WithClock(clk),
					WithObserver(obs),
					WithRunIDs(func() string { id := ids[0]; ids = ids[1:]; return id }),
				)
			require.NoError(t, err)

			ctx := context.Background()
			outcome, err := dir.Run(ctx, NewViewModel(map[string]any{"x": 0}))
			require.NoError(t, err)
			require.Equal(t, OutcomeCompleted, outcome)

			clk.AfterFunc(200*time.Millisecond, dir.Cancel)
			outcome, err = dir.Run(ctx, NewViewModel(map[string]any{"x": 0}))
			require.NoError(t, err)
			require.Equal(t, OutcomeCancelled, outcome)

			evs, err := j.ListEvents(ctx, "first")
			require.NoError(t, err)
			require.Equal(t, api.EventRunStarted, evs[0].Type)
			require.True(t, evs[0].At.Equal(epoch))
			require.Equal(t, api.EventRunCompleted, evs[len(evs)-1].Type)
			require.True(t, evs[len(evs)-1].At.Equal(epoch.Add(1500*time.Millisecond)))

			var waited time.Duration
			for _, ev := range evs {
				if ev.Type == api.EventStepCompleted && ev.Kind == "wait" {
					waited = ev.Duration
				}
			}
			require.Equal(t, time.Second, waited)

			runs, err := j.ListRuns(ctx, RunFilter{Script: "journaled"})
			require.NoError(t, err)
			require.Len(t, runs, 2)
			require.Equal(t, "second", runs[0].RunID)
			require.Equal(t, api.OutcomeCancelled, runs[0].Outcome)
			require.Equal(t, "first", runs[1].RunID)
			require.Equal(t, api.OutcomeCompleted, runs[1].Outcome)

			_, err = j.ListEvents(ctx, "missing")
			require.ErrorIs(t, err, ErrRunNotFound)
		})
	}
}

type failingJournal struct{ Journal }

func (failingJournal) AppendEvent(ctx context.Context, ev api.RunEvent) error {
	return errors.New("disk full")
}

func TestJournalObserverIgnoresAppendFailures(t *testing.T) {
	t.Parallel()

	obs := NewJournalObserver(failingJournal{NewInMemoryJournal()}, simulated(), logging.NewNop())
	dir, err := New("unlucky").Wait(time.Second).Director(WithClock(simulated()), WithObserver(obs))
	require.NoError(t, err)

	outcome, err := dir.Run(context.Background(), NewViewModel(nil))
	require.NoError(t, err)
	require.Equal(t, OutcomeCompleted, outcome)
}
