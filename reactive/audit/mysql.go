package audit

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// MySQLStore persists the audit trail to a shared MySQL database, for
// deployments running several Context instances across processes that
// want one consolidated trail.
type MySQLStore struct {
	db *sql.DB
}

// NewMySQLStore opens a connection pool against dsn and migrates the
// audit schema.
func NewMySQLStore(dsn string) (*MySQLStore, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("audit: open mysql: %w", err)
	}
	s := &MySQLStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *MySQLStore) migrate() error {
	// One statement per Exec: the driver rejects multi-statement queries
	// unless the DSN enables them.
	for _, stmt := range []string{`
CREATE TABLE IF NOT EXISTS audit_runs (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	context_id VARCHAR(255) NOT NULL,
	node_id VARCHAR(255) NOT NULL,
	started_at DATETIME(6) NOT NULL,
	duration_ns BIGINT NOT NULL,
	changed BOOLEAN NOT NULL
) ENGINE=InnoDB`, `
CREATE TABLE IF NOT EXISTS audit_errors (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	context_id VARCHAR(255) NOT NULL,
	node_id VARCHAR(255) NOT NULL,
	occurred_at DATETIME(6) NOT NULL,
	err TEXT NOT NULL
) ENGINE=InnoDB`} {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("audit: migrate mysql schema: %w", err)
		}
	}
	return nil
}

func (s *MySQLStore) RecordRun(ctx context.Context, rec Run) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO audit_runs (context_id, node_id, started_at, duration_ns, changed) VALUES (?, ?, ?, ?, ?)`,
		rec.ContextID, rec.NodeID, rec.StartedAt, rec.Duration.Nanoseconds(), rec.Changed)
	if err != nil {
		return fmt.Errorf("audit: record run: %w", err)
	}
	return nil
}

func (s *MySQLStore) RecordError(ctx context.Context, rec ErrorEntry) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO audit_errors (context_id, node_id, occurred_at, err) VALUES (?, ?, ?, ?)`,
		rec.ContextID, rec.NodeID, rec.At, rec.Err)
	if err != nil {
		return fmt.Errorf("audit: record error: %w", err)
	}
	return nil
}

func (s *MySQLStore) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
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

// Close releases the underlying connection pool.
func (s *MySQLStore) Close() error {
	return s.db.Close()
}
