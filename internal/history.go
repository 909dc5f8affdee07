package internal

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// RunRecord is one recorded fetch run.
type RunRecord struct {
	ID         string
	StartedAt  time.Time
	DatabaseID string
	PageCount  int
	OutputPath string
}

// HistoryStore keeps a small sqlite log of past fetch runs. It is strictly
// an audit trail; the JSON documents remain the source of truth.
type HistoryStore struct {
	db *sql.DB
}

// DefaultHistoryPath returns the per-user history database location.
func DefaultHistoryPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".notion-standup", "history.db"), nil
}

// OpenHistory opens (and if necessary creates) the history database at path.
func OpenHistory(path string) (*HistoryStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	const schema = `CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		started_at TEXT NOT NULL,
		database_id TEXT NOT NULL,
		page_count INTEGER NOT NULL,
		output_path TEXT NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize history schema: %w", err)
	}

	return &HistoryStore{db: db}, nil
}

// Close closes the underlying database.
func (h *HistoryStore) Close() error {
	return h.db.Close()
}

// RecordRun inserts one run record.
func (h *HistoryStore) RecordRun(rec RunRecord) error {
	_, err := h.db.Exec(
		`INSERT INTO runs (id, started_at, database_id, page_count, output_path) VALUES (?, ?, ?, ?, ?)`,
		rec.ID,
		rec.StartedAt.UTC().Format(time.RFC3339),
		rec.DatabaseID,
		rec.PageCount,
		rec.OutputPath,
	)
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first. A limit of 0 means
// no limit.
func (h *HistoryStore) ListRuns(limit int) ([]RunRecord, error) {
	query := `SELECT id, started_at, database_id, page_count, output_path FROM runs ORDER BY started_at DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := h.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var rec RunRecord
		var startedAt string
		if err := rows.Scan(&rec.ID, &startedAt, &rec.DatabaseID, &rec.PageCount, &rec.OutputPath); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, startedAt); err == nil {
			rec.StartedAt = t
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
