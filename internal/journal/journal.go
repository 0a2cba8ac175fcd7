// Package journal persists navigation attempts to a local SQLite database.
// The journal is an append-only diagnostic record; it is never consulted
// by the pipeline's control flow.
package journal

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Outcome classifies how a navigation attempt ended.
type Outcome string

const (
	OutcomeOK            Outcome = "ok"
	OutcomeGuardRejected Outcome = "guard_rejected"
	OutcomeHostFailed    Outcome = "host_failed"
	OutcomeDowngraded    Outcome = "downgraded"
)

// Entry is one recorded navigation attempt.
type Entry struct {
	ID      string
	Time    time.Time
	From    string
	To      string
	Kind    string
	Outcome Outcome
	Detail  string
}

// Journal is an append-only store of navigation attempts.
// Safe for concurrent use; database/sql serializes access.
type Journal struct {
	db *sql.DB
}

// at is unix nanoseconds: numeric order is chronological order, which a
// variable-width text timestamp cannot guarantee.
const schema = `
CREATE TABLE IF NOT EXISTS transitions (
	id      TEXT PRIMARY KEY,
	at      INTEGER NOT NULL,
	origin  TEXT NOT NULL,
	target  TEXT NOT NULL,
	kind    TEXT NOT NULL,
	outcome TEXT NOT NULL,
	detail  TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS transitions_at ON transitions (at);
`

// Open opens (or creates) a journal database at the given path.
func Open(path string) (*Journal, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("journal: create directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("journal: open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("journal: create schema: %w", err)
	}
	return &Journal{db: db}, nil
}

// Append records one attempt. The entry's time is stored as unix
// nanoseconds.
func (j *Journal) Append(e Entry) error {
	at := e.Time
	if at.IsZero() {
		at = time.Now()
	}
	_, err := j.db.Exec(
		`INSERT INTO transitions (id, at, origin, target, kind, outcome, detail) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, at.UnixNano(), e.From, e.To, e.Kind, string(e.Outcome), e.Detail,
	)
	if err != nil {
		return fmt.Errorf("journal: append: %w", err)
	}
	return nil
}

// Recent returns up to n entries, newest first.
func (j *Journal) Recent(n int) ([]Entry, error) {
	rows, err := j.db.Query(
		`SELECT id, at, origin, target, kind, outcome, detail FROM transitions ORDER BY at DESC LIMIT ?`, n,
	)
	if err != nil {
		return nil, fmt.Errorf("journal: query: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var at int64
		if err := rows.Scan(&e.ID, &at, &e.From, &e.To, &e.Kind, (*string)(&e.Outcome), &e.Detail); err != nil {
			return nil, fmt.Errorf("journal: scan: %w", err)
		}
		e.Time = time.Unix(0, at).UTC()
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("journal: rows: %w", err)
	}
	return out, nil
}

// Close releases the underlying database handle.
func (j *Journal) Close() error {
	return j.db.Close()
}
