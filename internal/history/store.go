// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history keeps an append-only SQLite ledger of bind runs and the
// collections each run produced. The ledger is audit data only; it is
// never consulted to skip or resume work.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/manga-binder/internal/convert"
)

// Store manages the history SQLite database.
type Store struct {
	db *sql.DB
}

// Run is one recorded bind run.
type Run struct {
	ID         int64     `json:"id" yaml:"id"`
	Root       string    `json:"root" yaml:"root"`
	StartedAt  time.Time `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time `json:"finished_at" yaml:"finished_at"`
	Converted  int       `json:"converted" yaml:"converted"`
	Skipped    int       `json:"skipped" yaml:"skipped"`
	Failed     int       `json:"failed" yaml:"failed"`
}

// CollectionRecord is one collection outcome within a run.
type CollectionRecord struct {
	Name   string `json:"name" yaml:"name"`
	Dir    string `json:"dir" yaml:"dir"`
	Output string `json:"output" yaml:"output"`
	Status string `json:"status" yaml:"status"`
	Reason string `json:"reason,omitempty" yaml:"reason,omitempty"`
	Pages  int    `json:"pages" yaml:"pages"`
	Error  string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Open opens or creates the history database at path, creating parent
// directories and the schema as needed.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			root TEXT NOT NULL,
			started_at TEXT NOT NULL,
			finished_at TEXT NOT NULL,
			converted INTEGER NOT NULL,
			skipped INTEGER NOT NULL,
			failed INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS collections (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id INTEGER NOT NULL REFERENCES runs(id),
			seq INTEGER NOT NULL,
			name TEXT,
			dir TEXT NOT NULL,
			output TEXT,
			status TEXT NOT NULL,
			reason TEXT,
			pages INTEGER NOT NULL,
			error TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_collections_run_id ON collections(run_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores a finished run and all of its collection results in one
// transaction and returns the new run ID.
func (s *Store) Record(ctx context.Context, root string, started, finished time.Time, result convert.BatchResult) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (root, started_at, finished_at, converted, skipped, failed)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		root, started.UTC().Format(time.RFC3339Nano), finished.UTC().Format(time.RFC3339Nano),
		result.Converted, result.Skipped, result.Failed,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO collections (run_id, seq, name, dir, output, status, reason, pages, error)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range result.Results {
		_, err := stmt.ExecContext(ctx,
			runID, i, r.Collection.Name, r.Collection.Dir, r.Collection.OutputPath,
			string(r.Status), string(r.Reason), r.Pages, r.ErrorText(),
		)
		if err != nil {
			return 0, fmt.Errorf("inserting collection %s: %w", r.Collection.Dir, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing run: %w", err)
	}
	return runID, nil
}

// Runs returns up to limit runs, newest first. A limit of zero or less
// returns every run.
func (s *Store) Runs(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT id, root, started_at, finished_at, converted, skipped, failed
		FROM runs ORDER BY id DESC`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r                 Run
			started, finished string
		)
		if err := rows.Scan(&r.ID, &r.Root, &started, &finished, &r.Converted, &r.Skipped, &r.Failed); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.StartedAt, _ = time.Parse(time.RFC3339Nano, started)
		r.FinishedAt, _ = time.Parse(time.RFC3339Nano, finished)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Collections returns the collection outcomes of one run in processing order.
func (s *Store) Collections(ctx context.Context, runID int64) ([]CollectionRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT COALESCE(name, ''), dir, COALESCE(output, ''), status,
			COALESCE(reason, ''), pages, COALESCE(error, '')
		FROM collections WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying collections for run %d: %w", runID, err)
	}
	defer rows.Close()

	var out []CollectionRecord
	for rows.Next() {
		var c CollectionRecord
		if err := rows.Scan(&c.Name, &c.Dir, &c.Output, &c.Status, &c.Reason, &c.Pages, &c.Error); err != nil {
			return nil, fmt.Errorf("scanning collection: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
