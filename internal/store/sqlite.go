package store

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Store provides SQLite-backed persistence for the run history
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// New creates a new Store, opening the SQLite database and running migrations
func New(dbPath string, logger *slog.Logger) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &Store{
		db:     db,
		logger: logger,
	}

	// Run migrations
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Debug("store initialized", "path", dbPath)
	return s, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}

// CreateFixRun inserts a new FixRun and sets its ID
func (s *Store) CreateFixRun(run *FixRun) error {
	const query = `
		INSERT INTO fix_runs (mode, start_time, end_time, status, error_message)
		VALUES (?, ?, ?, ?, ?)
	`

	result, err := s.db.Exec(
		query,
		run.Mode, run.StartTime, run.EndTime, run.Status, run.ErrorMessage,
	)
	if err != nil {
		return fmt.Errorf("failed to insert fix run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	run.ID = id
	return nil
}

// FinishFixRun records the final status of a FixRun
func (s *Store) FinishFixRun(id int64, status, errorMessage string, endTime time.Time) error {
	const query = `
		UPDATE fix_runs SET status = ?, error_message = ?, end_time = ?
		WHERE id = ?
	`

	result, err := s.db.Exec(query, status, errorMessage, endTime, id)
	if err != nil {
		return fmt.Errorf("failed to update fix run: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("fix run not found: %d", id)
	}

	return nil
}

// GetFixRun retrieves a FixRun by ID
func (s *Store) GetFixRun(id int64) (*FixRun, error) {
	const query = `
		SELECT id, mode, start_time, COALESCE(end_time, start_time), status, COALESCE(error_message, '')
		FROM fix_runs WHERE id = ?
	`

	run := &FixRun{}
	err := s.db.QueryRow(query, id).Scan(
		&run.ID, &run.Mode, &run.StartTime, &run.EndTime, &run.Status, &run.ErrorMessage,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("fix run not found: %d", id)
		}
		return nil, fmt.Errorf("failed to query fix run: %w", err)
	}

	return run, nil
}

// ListFixRuns retrieves FixRuns newest first, optionally limited
func (s *Store) ListFixRuns(limit int) ([]FixRun, error) {
	query := `
		SELECT id, mode, start_time, COALESCE(end_time, start_time), status, COALESCE(error_message, '')
		FROM fix_runs ORDER BY start_time DESC
	`
	var args []interface{}

	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query fix runs: %w", err)
	}
	defer rows.Close()

	var runs []FixRun
	for rows.Next() {
		run := FixRun{}
		err := rows.Scan(
			&run.ID, &run.Mode, &run.StartTime, &run.EndTime, &run.Status, &run.ErrorMessage,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fix run: %w", err)
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fix runs: %w", err)
	}

	return runs, nil
}

// LastFixRun retrieves the most recent FixRun, or nil when none exist
func (s *Store) LastFixRun() (*FixRun, error) {
	runs, err := s.ListFixRuns(1)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, nil
	}
	return &runs[0], nil
}

// AddStepResult inserts a StepResult and sets its ID
func (s *Store) AddStepResult(rec *StepResult) error {
	const query = `
		INSERT INTO step_results (run_id, step, severity, message)
		VALUES (?, ?, ?, ?)
	`

	result, err := s.db.Exec(query, rec.RunID, rec.Step, rec.Severity, rec.Message)
	if err != nil {
		return fmt.Errorf("failed to insert step result: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	rec.ID = id
	return nil
}

// ListStepResults retrieves all StepResults for a run in insertion order
func (s *Store) ListStepResults(runID int64) ([]StepResult, error) {
	const query = `
		SELECT id, run_id, step, severity, COALESCE(message, ''), created_at
		FROM step_results WHERE run_id = ? ORDER BY id
	`

	rows, err := s.db.Query(query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query step results: %w", err)
	}
	defer rows.Close()

	var records []StepResult
	for rows.Next() {
		rec := StepResult{}
		err := rows.Scan(
			&rec.ID, &rec.RunID, &rec.Step, &rec.Severity, &rec.Message, &rec.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan step result: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating step results: %w", err)
	}

	return records, nil
}
