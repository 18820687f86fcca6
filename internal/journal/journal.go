// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package journal keeps a local SQLite history of paste runs for
// troubleshooting. Recording is best effort; a journal failure never
// fails a run.
package journal

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/oklog/ulid/v2"

	"github.com/pdiddy/pastemd/pkg/types"
)

// Entry is one recorded paste run.
type Entry struct {
	ID         string    `yaml:"id"`
	RecordedAt time.Time `yaml:"recorded_at"`
	Kind       string    `yaml:"kind"`
	Target     string    `yaml:"target"`
	Success    bool      `yaml:"success"`
	Reason     string    `yaml:"reason,omitempty"`
	Detail     string    `yaml:"detail,omitempty"`
}

// Journal persists run entries in a SQLite database.
type Journal struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens or creates the journal database at path, creating parent
// directories and the schema as needed.
func Open(path string, logger *slog.Logger) (*Journal, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating journal directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=2000")
	if err != nil {
		return nil, fmt.Errorf("opening journal database: %w", err)
	}

	j := &Journal{db: db, logger: logger}
	if err := j.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating journal schema: %w", err)
	}
	return j, nil
}

// Close releases the database connection.
func (j *Journal) Close() error {
	return j.db.Close()
}

func (j *Journal) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			recorded_at TEXT NOT NULL,
			kind TEXT NOT NULL,
			target TEXT NOT NULL,
			success INTEGER NOT NULL,
			reason TEXT,
			detail TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_recorded_at ON runs(recorded_at)`,
	}
	for _, stmt := range statements {
		if _, err := j.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores one run outcome. Errors are logged and swallowed.
func (j *Journal) Record(kind types.ContentKind, outcome types.DeliveryOutcome) {
	entry := Entry{
		ID:         ulid.Make().String(),
		RecordedAt: time.Now().UTC(),
		Kind:       string(kind),
		Target:     string(outcome.Target),
		Success:    outcome.Success,
		Detail:     outcome.Detail,
	}
	if outcome.Err != nil {
		entry.Reason = string(types.ReasonOf(outcome.Err))
	}

	_, err := j.db.Exec(
		`INSERT INTO runs (id, recorded_at, kind, target, success, reason, detail)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.RecordedAt.Format(time.RFC3339Nano),
		entry.Kind, entry.Target, boolToInt(entry.Success), entry.Reason, entry.Detail,
	)
	if err != nil {
		j.logger.Warn("journal write failed", "error", err)
	}
}

// Recent returns the most recent entries, newest first.
func (j *Journal) Recent(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := j.db.Query(
		`SELECT id, recorded_at, kind, target, success, reason, detail
		 FROM runs ORDER BY rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying journal: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var recorded string
		var success int
		if err := rows.Scan(&e.ID, &recorded, &e.Kind, &e.Target, &success, &e.Reason, &e.Detail); err != nil {
			return nil, fmt.Errorf("scanning journal row: %w", err)
		}
		if t, err := time.Parse(time.RFC3339Nano, recorded); err == nil {
			e.RecordedAt = t
		}
		e.Success = success != 0
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
