// Package history keeps past harness runs in a local SQLite database so
// speedups can be tracked across compiler or flag changes.
package history

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"veccmp/internal/benchmark"
)

// Run is one completed harness run.
type Run struct {
	ID           int64
	StartedAt    time.Time
	ScalarBinary string
	VectorBinary string
	Rows         []benchmark.Row
}

// Store persists runs and their per-function rows.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the history database and applies migrations.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping history database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate history database: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		started_at DATETIME NOT NULL,
		scalar_binary TEXT NOT NULL,
		vector_binary TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS results (
		run_id INTEGER NOT NULL REFERENCES runs(id),
		function TEXT NOT NULL,
		checksum_match BOOLEAN NOT NULL,
		vectorized BOOLEAN NOT NULL,
		scalar_duration REAL NOT NULL,
		vector_duration REAL NOT NULL
	);
	`
	_, err := s.db.Exec(query)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save records a completed run and returns its id.
func (s *Store) Save(run Run) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`INSERT INTO runs (started_at, scalar_binary, vector_binary) VALUES (?, ?, ?)`,
		run.StartedAt, run.ScalarBinary, run.VectorBinary,
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	for _, row := range run.Rows {
		_, err := tx.Exec(
			`INSERT INTO results (run_id, function, checksum_match, vectorized, scalar_duration, vector_duration)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			id, row.Function, row.ChecksumMatch, row.Vectorized, row.ScalarDuration, row.VectorDuration,
		)
		if err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// List returns the most recent runs, newest first, without their rows.
func (s *Store) List(limit int) ([]Run, error) {
	rows, err := s.db.Query(
		`SELECT id, started_at, scalar_binary, vector_binary FROM runs ORDER BY started_at DESC, id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.StartedAt, &r.ScalarBinary, &r.VectorBinary); err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Load returns one run with its rows in insertion order.
func (s *Store) Load(id int64) (*Run, error) {
	run := &Run{ID: id}
	err := s.db.QueryRow(
		`SELECT started_at, scalar_binary, vector_binary FROM runs WHERE id = ?`, id,
	).Scan(&run.StartedAt, &run.ScalarBinary, &run.VectorBinary)
	if err != nil {
		return nil, fmt.Errorf("loading run %d: %w", id, err)
	}

	rows, err := s.db.Query(
		`SELECT function, checksum_match, vectorized, scalar_duration, vector_duration
		 FROM results WHERE run_id = ? ORDER BY rowid`, id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var row benchmark.Row
		if err := rows.Scan(&row.Function, &row.ChecksumMatch, &row.Vectorized, &row.ScalarDuration, &row.VectorDuration); err != nil {
			return nil, err
		}
		run.Rows = append(run.Rows, row)
	}
	return run, rows.Err()
}

// Latest returns the most recent run with rows, or nil when none exist.
func (s *Store) Latest() (*Run, error) {
	runs, err := s.List(1)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, nil
	}
	return s.Load(runs[0].ID)
}
