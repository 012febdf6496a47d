package audit

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore persists the audit trail to a single SQLite file. Designed
// for local development and single-process deployments that want the
// trail to survive a restart without standing up a database server.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if necessary) a SQLite database at path
// and migrates the audit schema into it.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("audit: open sqlite: %w", err)
	}
	if _, err := db.Exec(`PRAGMA journal_mode=WAL;`); err != nil {
		db.Close()
		return nil, fmt.Errorf("audit: enable wal: %w", err)
	}
	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS audit_runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	context_id TEXT NOT NULL,
	node_id TEXT NOT NULL,
	started_at DATETIME NOT NULL,
	duration_ns INTEGER NOT NULL,
	changed INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS audit_errors (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	context_id TEXT NOT NULL,
	node_id TEXT NOT NULL,
	occurred_at DATETIME NOT NULL,
	err TEXT NOT NULL
);
`)
	if err != nil {
		return fmt.Errorf("audit: migrate sqlite schema: %w", err)
	}
	return nil
}

func (s *SQLiteStore) RecordRun(ctx context.Context, rec Run) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO audit_runs (context_id, node_id, started_at, duration_ns, changed) VALUES (?, ?, ?, ?, ?)`,
		rec.ContextID, rec.NodeID, rec.StartedAt, rec.Duration.Nanoseconds(), rec.Changed)
	if err != nil {
		return fmt.Errorf("audit: record run: %w", err)
	}
	return nil
}

func (s *SQLiteStore) RecordError(ctx context.Context, rec ErrorEntry) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO audit_errors (context_id, node_id, occurred_at, err) VALUES (?, ?, ?, ?)`,
		rec.ContextID, rec.NodeID, rec.At, rec.Err)
	if err != nil {
		return fmt.Errorf("audit: record error: %w", err)
	}
	return nil
}

func (s *SQLiteStore) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT context_id, node_id, started_at, duration_ns, changed FROM audit_runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("audit: query recent runs: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var r Run
		var durationNs int64
		if err := rows.Scan(&r.ContextID, &r.NodeID, &r.StartedAt, &durationNs, &r.Changed); err != nil {
			return nil, fmt.Errorf("audit: scan run: %w", err)
		}
		r.Duration = time.Duration(durationNs)
		out = append(out, r)
	}
	return out, rows.Err()
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
