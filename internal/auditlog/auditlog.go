// Package auditlog persists detector verdicts to a local sqlite database,
// giving an embedder a queryable trail of what vetline flagged and why.
// It is pure instrumentation: no detector's return value depends on
// whether a Log is wired in, and every write happens off the hot path
// of the detection call itself.
package auditlog

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"
)

// Entry is one recorded detector verdict.
type Entry struct {
	Component string // "sql", "shell", "js", "idor", "route"
	Detected  bool
	Reason    string
	Input     string
	Recorded  time.Time
}

// Log is a sqlite-backed audit sink. The zero value isn't usable; call
// Open.
type Log struct {
	db     *sql.DB
	logger *slog.Logger
}

const schema = `
CREATE TABLE IF NOT EXISTS detections (
	id        INTEGER PRIMARY KEY AUTOINCREMENT,
	component TEXT NOT NULL,
	detected  INTEGER NOT NULL,
	reason    TEXT NOT NULL,
	input     TEXT NOT NULL,
	recorded  TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_detections_component ON detections(component);
`

// Open creates (if needed) and opens the sqlite database at path. A nil
// logger defaults to a discarding logger, matching the rest of the
// ambient stack's nil-logger convention.
func Open(path string, logger *slog.Logger) (*Log, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("auditlog: opening %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("auditlog: initializing schema: %w", err)
	}
	return &Log{db: db, logger: logger}, nil
}

// Record inserts e into the audit trail.
func (l *Log) Record(ctx context.Context, e Entry) error {
	if e.Recorded.IsZero() {
		e.Recorded = time.Now().UTC()
	}
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO detections (component, detected, reason, input, recorded) VALUES (?, ?, ?, ?, ?)`,
		e.Component, e.Detected, e.Reason, e.Input, e.Recorded.Format(time.RFC3339Nano),
	)
	if err != nil {
		l.logger.Error("auditlog: record failed", "component", e.Component, "error", err)
		return fmt.Errorf("auditlog: recording entry: %w", err)
	}
	return nil
}

// RecentByComponent returns up to limit most-recent entries for a given
// component, newest first.
func (l *Log) RecentByComponent(ctx context.Context, component string, limit int) ([]Entry, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT component, detected, reason, input, recorded FROM detections WHERE component = ? ORDER BY id DESC LIMIT ?`,
		component, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("auditlog: querying: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var recorded string
		if err := rows.Scan(&e.Component, &e.Detected, &e.Reason, &e.Input, &recorded); err != nil {
			return nil, fmt.Errorf("auditlog: scanning row: %w", err)
		}
		e.Recorded, _ = time.Parse(time.RFC3339Nano, recorded)
		out = append(out, e)
	}
	return out, rows.Err()
}

// Close releases the underlying database handle.
func (l *Log) Close() error {
	return l.db.Close()
}
