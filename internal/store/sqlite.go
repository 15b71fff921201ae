package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/Harshitk-cp/nars/internal/domain"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS output_events (
	id         TEXT PRIMARY KEY,
	run_id     TEXT NOT NULL,
	kind       TEXT NOT NULL,
	cycle      INTEGER NOT NULL,
	text       TEXT NOT NULL,
	verdict    TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS output_events_run_idx ON output_events (run_id, id);
`

// SQLiteOutputStore is a file-backed output journal.
type SQLiteOutputStore struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the journal at path.
func OpenSQLite(ctx context.Context, path string) (*SQLiteOutputStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable wal: %w", err)
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &SQLiteOutputStore{db: db}, nil
}

func (s *SQLiteOutputStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteOutputStore) Append(ctx context.Context, ev *domain.OutputEvent) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO output_events (id, run_id, kind, cycle, text, verdict, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		ev.ID, ev.RunID, string(ev.Kind), int64(ev.Cycle), ev.Text, string(ev.Verdict), ev.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	return err
}

func (s *SQLiteOutputStore) GetByID(ctx context.Context, id string) (*domain.OutputEvent, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, run_id, kind, cycle, text, verdict, created_at
		 FROM output_events WHERE id = ?`,
		id,
	)
	ev, err := scanSQLiteEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return ev, nil
}

// Recent returns the newest events, oldest first.
func (s *SQLiteOutputStore) Recent(ctx context.Context, limit int) ([]domain.OutputEvent, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, run_id, kind, cycle, text, verdict, created_at FROM (
			SELECT id, run_id, kind, cycle, text, verdict, created_at
			FROM output_events ORDER BY id DESC LIMIT ?
		 ) ORDER BY id ASC`,
		clampLimit(limit),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.OutputEvent
	for rows.Next() {
		ev, err := scanSQLiteEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *ev)
	}
	return events, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSQLiteEvent(row scanner) (*domain.OutputEvent, error) {
	var ev domain.OutputEvent
	var kind, verdict, createdAt string
	var cycle int64
	if err := row.Scan(&ev.ID, &ev.RunID, &kind, &cycle, &ev.Text, &verdict, &createdAt); err != nil {
		return nil, err
	}
	t, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}
	ev.Kind = domain.OutputKind(kind)
	ev.Cycle = uint64(cycle)
	ev.Verdict = domain.Verdict(verdict)
	ev.CreatedAt = t
	return &ev, nil
}
