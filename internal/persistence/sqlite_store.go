package persistence

import (
	"context"
	"database/sql"
	"time"

	"github.com/petrijr/choreo/pkg/api"
)

// SQLiteEventStore stores run events in SQLite.
type SQLiteEventStore struct {
	db *sql.DB
}

var _ EventStore = (*SQLiteEventStore)(nil)

func NewSQLiteEventStore(db *sql.DB) (*SQLiteEventStore, error) {
	s := &SQLiteEventStore{db: db}
	if err := s.initSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SQLiteEventStore) initSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS run_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL,
			at INTEGER NOT NULL,
			type TEXT NOT NULL,
			script TEXT NOT NULL DEFAULT '',
			step TEXT NOT NULL DEFAULT '',
			kind TEXT NOT NULL DEFAULT '',
			duration INTEGER NOT NULL DEFAULT 0,
			detail TEXT NOT NULL DEFAULT ''
		);
		CREATE INDEX IF NOT EXISTS idx_run_events_run_id ON run_events(run_id, id);
		CREATE INDEX IF NOT EXISTS idx_run_events_type ON run_events(type, at);
	`)
	return err
}

func (s *SQLiteEventStore) AppendEvent(ctx context.Context, ev api.RunEvent) error {
	at := ev.At
	if at.IsZero() {
		at = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO run_events (run_id, at, type, script, step, kind, duration, detail)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		ev.RunID,
		at.UnixNano(),
		string(ev.Type),
		ev.Script,
		ev.Step,
		ev.Kind,
		int64(ev.Duration),
		ev.Detail,
	)
	return err
}

func (s *SQLiteEventStore) ListEvents(ctx context.Context, runID string) ([]api.RunEvent, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, at, type, script, step, kind, duration, detail
		FROM run_events
		WHERE run_id = ?
		ORDER BY id ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []api.RunEvent
	for rows.Next() {
		var (
			id     string
			atN    int64
			typ    string
			script string
			step   string
			kind   string
			dur    int64
			detail string
		)
		if err := rows.Scan(&id, &atN, &typ, &script, &step, &kind, &dur, &detail); err != nil {
			return nil, err
		}
		out = append(out, api.RunEvent{
			RunID:    id,
			At:       time.Unix(0, atN),
			Type:     api.EventType(typ),
			Script:   script,
			Step:     step,
			Kind:     kind,
			Duration: time.Duration(dur),
			Detail:   detail,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, ErrRunNotFound
	}
	return out, nil
}

func (s *SQLiteEventStore) ListRuns(ctx context.Context, filter RunFilter) ([]RunSummary, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.run_id, s.script, s.at, COALESCE(t.type, ''), COALESCE(t.at, 0), COALESCE(t.detail, '')
		FROM run_events s
		LEFT JOIN run_events t
			ON t.run_id = s.run_id AND t.type IN (?, ?, ?)
		WHERE s.type = ? AND (? = '' OR s.script = ?)
		ORDER BY s.at DESC, s.id DESC
		LIMIT ?`,
		string(api.EventRunCompleted), string(api.EventRunCancelled), string(api.EventRunFailed),
		string(api.EventRunStarted), filter.Script, filter.Script,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var (
			sum     RunSummary
			startN  int64
			endType string
			endN    int64
		)
		if err := rows.Scan(&sum.RunID, &sum.Script, &startN, &endType, &endN, &sum.Detail); err != nil {
			return nil, err
		}
		sum.StartedAt = time.Unix(0, startN)
		if endType != "" {
			sum.Outcome = OutcomeOf(api.EventType(endType))
			sum.EndedAt = time.Unix(0, endN)
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}
