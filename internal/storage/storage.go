// Package storage persists non-authoritative diagnostic history: solve
// attempts and capture failures, recorded for the dashboard's /solves
// endpoint. The in-memory Context remains authoritative for current state;
// this store only ever gets appended to and read back for display.
package storage

import (
	"database/sql"
	"time"

	_ "modernc.org/sqlite"
)

// Store wraps a pure-Go SQLite diagnostics database.
type Store struct {
	db *sql.DB
}

// New opens (or creates) the database at path and ensures its schema.
func New(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) ensureSchema() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS solve_attempts (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			attempted_at TIMESTAMP NOT NULL,
			succeeded BOOLEAN NOT NULL,
			ra REAL,
			dec REAL,
			probability REAL,
			duration_ms INTEGER,
			error_message TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS capture_failures (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			occurred_at TIMESTAMP NOT NULL,
			error_message TEXT
		);`,
		`CREATE INDEX IF NOT EXISTS idx_solve_attempts_attempted_at ON solve_attempts(attempted_at);`,
		`CREATE INDEX IF NOT EXISTS idx_capture_failures_occurred_at ON capture_failures(occurred_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// SolveAttemptRecord is one persisted solver invocation outcome.
type SolveAttemptRecord struct {
	AttemptedAt time.Time `json:"attemptedAt"`
	Succeeded   bool      `json:"succeeded"`
	RA          float64   `json:"ra,omitempty"`
	Dec         float64   `json:"dec,omitempty"`
	Probability float64   `json:"probability,omitempty"`
	DurationMS  int64     `json:"durationMs"`
	Error       string    `json:"error,omitempty"`
}

// CaptureFailureRecord is one persisted camera capture failure.
type CaptureFailureRecord struct {
	OccurredAt time.Time `json:"occurredAt"`
	Error      string    `json:"error"`
}

// RecordSolveAttempt appends a solver outcome. A nil Store is a no-op so
// callers can wire diagnostics optionally without nil-checking everywhere.
func (s *Store) RecordSolveAttempt(rec SolveAttemptRecord) error {
	if s == nil {
		return nil
	}
	_, err := s.db.Exec(
		`INSERT INTO solve_attempts (attempted_at, succeeded, ra, dec, probability, duration_ms, error_message)
		 VALUES (?, ?, ?, ?, ?, ?, ?);`,
		rec.AttemptedAt, rec.Succeeded, rec.RA, rec.Dec, rec.Probability, rec.DurationMS, rec.Error)
	return err
}

// RecordCaptureFailure appends a capture failure.
func (s *Store) RecordCaptureFailure(rec CaptureFailureRecord) error {
	if s == nil {
		return nil
	}
	_, err := s.db.Exec(
		`INSERT INTO capture_failures (occurred_at, error_message) VALUES (?, ?);`,
		rec.OccurredAt, rec.Error)
	return err
}

// RecentSolveAttempts returns the latest solve attempts, newest first.
func (s *Store) RecentSolveAttempts(limit int) ([]SolveAttemptRecord, error) {
	if s == nil {
		return nil, nil
	}
	rows, err := s.db.Query(
		`SELECT attempted_at, succeeded, ra, dec, probability, duration_ms, error_message
		 FROM solve_attempts ORDER BY attempted_at DESC LIMIT ?;`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []SolveAttemptRecord
	for rows.Next() {
		var rec SolveAttemptRecord
		var ra, dec, prob sql.NullFloat64
		var errMsg sql.NullString
		if err := rows.Scan(&rec.AttemptedAt, &rec.Succeeded, &ra, &dec, &prob, &rec.DurationMS, &errMsg); err != nil {
			return nil, err
		}
		rec.RA = ra.Float64
		rec.Dec = dec.Float64
		rec.Probability = prob.Float64
		rec.Error = errMsg.String
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// RecentCaptureFailures returns the latest capture failures, newest first.
func (s *Store) RecentCaptureFailures(limit int) ([]CaptureFailureRecord, error) {
	if s == nil {
		return nil, nil
	}
	rows, err := s.db.Query(
		`SELECT occurred_at, error_message FROM capture_failures ORDER BY occurred_at DESC LIMIT ?;`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []CaptureFailureRecord
	for rows.Next() {
		var rec CaptureFailureRecord
		if err := rows.Scan(&rec.OccurredAt, &rec.Error); err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}
