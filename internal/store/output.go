package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Harshitk-cp/nars/internal/domain"
)

var pgSchema = []string{
	`CREATE TABLE IF NOT EXISTS output_events (
		id         TEXT PRIMARY KEY,
		run_id     TEXT NOT NULL,
		kind       TEXT NOT NULL,
		cycle      BIGINT NOT NULL,
		text       TEXT NOT NULL,
		verdict    TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`ALTER TABLE output_events ADD COLUMN IF NOT EXISTS verdict TEXT NOT NULL DEFAULT ''`,
	`CREATE INDEX IF NOT EXISTS output_events_run_idx ON output_events (run_id, id)`,
}

// OutputStore is the PostgreSQL output journal.
type OutputStore struct {
	db *pgxpool.Pool
}

func NewOutputStore(db *pgxpool.Pool) *OutputStore {
	return &OutputStore{db: db}
}

// EnsureSchema creates the journal table when missing.
func (s *OutputStore) EnsureSchema(ctx context.Context) error {
	for _, stmt := range pgSchema {
		if _, err := s.db.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func (s *OutputStore) Append(ctx context.Context, ev *domain.OutputEvent) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO output_events (id, run_id, kind, cycle, text, verdict, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (id) DO NOTHING`,
		ev.ID, ev.RunID, string(ev.Kind), int64(ev.Cycle), ev.Text, string(ev.Verdict), ev.CreatedAt,
	)
	return err
}

func (s *OutputStore) GetByID(ctx context.Context, id string) (*domain.OutputEvent, error) {
	var ev domain.OutputEvent
	var kind, verdict string
	var cycle int64
	err := s.db.QueryRow(ctx,
		`SELECT id, run_id, kind, cycle, text, verdict, created_at
		 FROM output_events WHERE id = $1`,
		id,
	).Scan(&ev.ID, &ev.RunID, &kind, &cycle, &ev.Text, &verdict, &ev.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	ev.Kind = domain.OutputKind(kind)
	ev.Cycle = uint64(cycle)
	ev.Verdict = domain.Verdict(verdict)
	return &ev, nil
}

// Recent returns the newest events, oldest first.
func (s *OutputStore) Recent(ctx context.Context, limit int) ([]domain.OutputEvent, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, run_id, kind, cycle, text, verdict, created_at FROM (
			SELECT id, run_id, kind, cycle, text, verdict, created_at
			FROM output_events ORDER BY id DESC LIMIT $1
		 ) newest ORDER BY id ASC`,
		clampLimit(limit),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.OutputEvent
	for rows.Next() {
		var ev domain.OutputEvent
		var kind, verdict string
		var cycle int64
		if err := rows.Scan(&ev.ID, &ev.RunID, &kind, &cycle, &ev.Text, &verdict, &ev.CreatedAt); err != nil {
			return nil, err
		}
		ev.Kind = domain.OutputKind(kind)
		ev.Cycle = uint64(cycle)
		ev.Verdict = domain.Verdict(verdict)
		events = append(events, ev)
	}
	return events, rows.Err()
}
