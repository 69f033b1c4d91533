// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history records mirror runs and their conversions in a SQLite
// database and exports run reports as YAML or JSON.
//
// The ledger is an audit log: it is written after each run and never
// consulted to decide what to convert.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/docmirror/pkg/types"
)

// ErrRunNotFound is returned by Run when no run has the requested ID.
var ErrRunNotFound = errors.New("run not found")

const defaultListLimit = 20

// Store manages the run history database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the history database at path, creating its parent
// directory and the schema if needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
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
			started_at TEXT NOT NULL,
			finished_at TEXT NOT NULL,
			source TEXT NOT NULL,
			dest TEXT NOT NULL,
			converter TEXT NOT NULL,
			converted INTEGER NOT NULL,
			failed INTEGER NOT NULL,
			created_dirs INTEGER NOT NULL,
			error TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS conversions (
			run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			seq INTEGER NOT NULL,
			source TEXT NOT NULL,
			dest TEXT NOT NULL,
			status TEXT NOT NULL,
			error TEXT,
			duration_ns INTEGER NOT NULL,
			PRIMARY KEY (run_id, seq)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_conversions_status ON conversions(status)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// RecordRun stores run and its conversions in one transaction and sets
// run.ID to the assigned identifier.
func (s *Store) RecordRun(ctx context.Context, run *types.Run) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (started_at, finished_at, source, dest, converter, converted, failed, created_dirs, error)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		formatTime(run.StartedAt), formatTime(run.FinishedAt),
		run.Source, run.Dest, run.Converter,
		run.Converted, run.Failed, len(run.CreatedDirs), nullString(run.Error),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO conversions (run_id, seq, source, dest, status, error, duration_ns)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing conversion insert: %w", err)
	}
	defer stmt.Close()

	for i, c := range run.Conversions {
		if _, err := stmt.ExecContext(ctx, id, i, c.Source, c.Dest, string(c.Status), nullString(c.Error), int64(c.Duration)); err != nil {
			return 0, fmt.Errorf("inserting conversion %s: %w", c.Source, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing run: %w", err)
	}
	run.ID = id
	return id, nil
}

// Runs returns up to limit runs, newest first, without their conversions.
// A non-positive limit uses the default of 20.
func (s *Store) Runs(ctx context.Context, limit int) ([]types.Run, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, finished_at, source, dest, converter, converted, failed, error
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []types.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

// Run returns the run with the given ID and its conversions in traversal
// order. It returns ErrRunNotFound if no such run exists.
func (s *Store) Run(ctx context.Context, id int64) (*types.Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, started_at, finished_at, source, dest, converter, converted, failed, error
		 FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %d: %w", id, ErrRunNotFound)
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT source, dest, status, error, duration_ns
		 FROM conversions WHERE run_id = ? ORDER BY seq`, id)
	if err != nil {
		return nil, fmt.Errorf("querying conversions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			c       types.Conversion
			status  string
			errText sql.NullString
			dur     int64
		)
		if err := rows.Scan(&c.Source, &c.Dest, &status, &errText, &dur); err != nil {
			return nil, fmt.Errorf("scanning conversion: %w", err)
		}
		c.Status = types.ConversionStatus(status)
		c.Error = errText.String
		c.Duration = time.Duration(dur)
		run.Conversions = append(run.Conversions, c)
	}
	return run, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (*types.Run, error) {
	var (
		run               types.Run
		started, finished string
		errText           sql.NullString
	)
	if err := sc.Scan(&run.ID, &started, &finished, &run.Source, &run.Dest, &run.Converter,
		&run.Converted, &run.Failed, &errText); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning run: %w", err)
	}
	run.StartedAt = parseTime(started)
	run.FinishedAt = parseTime(finished)
	run.Error = errText.String
	return &run, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
