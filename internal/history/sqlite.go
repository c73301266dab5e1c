package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure-Go SQLite driver.
)

// schema contains the DDL executed on first open. Using IF NOT EXISTS makes
// it safe to run on every startup.
const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id          TEXT PRIMARY KEY,
    started_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    domain      TEXT NOT NULL DEFAULT '',
    entities    INTEGER NOT NULL,
    edges       INTEGER NOT NULL,
    errors      INTEGER NOT NULL,
    warnings    INTEGER NOT NULL,
    passed      INTEGER NOT NULL
);
`

// Run is one recorded validation run summary. CI tooling reads these rows to
// trend dataset integrity over time.
type Run struct {
	ID        string
	StartedAt time.Time
	Domain    string // domain filter in effect, "" = all
	Entities  int
	Edges     int
	Errors    int
	Warnings  int
	Passed    bool
}

// Store persists run summaries in a local SQLite database in WAL mode.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the history database at dbPath, enables WAL mode
// and busy timeout, and creates the schema if it does not exist.
func Open(ctx context.Context, dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("history: open database: %w", err)
	}

	// SQLite only supports a single writer; one connection avoids
	// SQLITE_BUSY contention between pooled connections.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: enable WAL mode: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: set busy timeout: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Record inserts one run summary and returns its generated id.
func (s *Store) Record(ctx context.Context, run Run) (string, error) {
	id := run.ID
	if id == "" {
		id = uuid.NewString()
	}

	const q = `
		INSERT INTO runs (id, domain, entities, edges, errors, warnings, passed)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	passed := 0
	if run.Passed {
		passed = 1
	}
	if _, err := s.db.ExecContext(ctx, q, id, run.Domain, run.Entities, run.Edges, run.Errors, run.Warnings, passed); err != nil {
		return "", fmt.Errorf("history: record run: %w", err)
	}
	return id, nil
}

// Recent returns up to limit run summaries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	const q = `SELECT id, started_at, domain, entities, edges, errors, warnings, passed
		FROM runs ORDER BY started_at DESC, id DESC LIMIT ?`
	rows, err := s.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("history: query runs: %w", err)
	}
	defer rows.Close()

	var result []Run
	for rows.Next() {
		var r Run
		var ts string
		var passed int
		if err := rows.Scan(&r.ID, &ts, &r.Domain, &r.Entities, &r.Edges, &r.Errors, &r.Warnings, &passed); err != nil {
			return nil, fmt.Errorf("history: scan run: %w", err)
		}
		startedAt, parseErr := parseTimestamp(ts)
		if parseErr != nil {
			return nil, fmt.Errorf("history: parse run timestamp: %w", parseErr)
		}
		r.StartedAt = startedAt
		r.Passed = passed != 0
		result = append(result, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history: iterate runs: %w", err)
	}
	return result, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// timestampFormats lists the formats SQLite drivers may produce for
// CURRENT_TIMESTAMP. modernc.org/sqlite typically returns RFC 3339, while
// canonical SQLite returns the space-separated DateTime format.
var timestampFormats = []string{
	time.RFC3339,
	time.DateTime,
}

// parseTimestamp attempts to parse a SQLite timestamp string using known formats.
func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp format: %q", s)
}
