package state

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/leapstack-labs/primerlint/pkg/lint"
)

// SQLiteStore is a lint result cache backed by SQLite.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore creates a new SQLite store instance.
func NewSQLiteStore() *SQLiteStore {
	return &SQLiteStore{}
}

// Open opens the database at path, creating its directory when needed.
// Use ":memory:" for an in-memory database.
func (s *SQLiteStore) Open(path string) error {
	dsn := ":memory:?_pragma=foreign_keys(1)"
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return fmt.Errorf("failed to create cache directory: %w", err)
			}
		}
		dsn = path + "?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("failed to open sqlite database: %w", err)
	}
	if path == ":memory:" {
		// Every connection to :memory: is a separate database.
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	s.db = db
	s.path = path
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Path returns the path the store was opened with.
func (s *SQLiteStore) Path() string {
	return s.path
}

// --- Run operations ---

// CreateRun records the start of a lint run.
func (s *SQLiteStore) CreateRun(ctx context.Context) (*Run, error) {
	if s.db == nil {
		return nil, ErrNotOpen
	}

	run := &Run{
		ID:        uuid.New().String(),
		StartedAt: time.Now().UTC(),
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, started_at) VALUES (?, ?)`,
		run.ID, run.StartedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create run: %w", err)
	}
	return run, nil
}

// CompleteRun stores the totals of a finished run.
func (s *SQLiteStore) CompleteRun(ctx context.Context, id string, files, issues, fixed int) error {
	if s.db == nil {
		return ErrNotOpen
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE runs SET completed_at = ?, files = ?, issues = ?, fixed = ? WHERE id = ?`,
		time.Now().UTC(), files, issues, fixed, id,
	)
	if err != nil {
		return fmt.Errorf("failed to complete run: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("run not found: %s", id)
	}
	return nil
}

// GetLatestRun returns the most recent run, or nil when there is none.
func (s *SQLiteStore) GetLatestRun(ctx context.Context) (*Run, error) {
	if s.db == nil {
		return nil, ErrNotOpen
	}

	run := &Run{}
	var completedAt sql.NullTime
	err := s.db.QueryRowContext(ctx,
		`SELECT id, started_at, completed_at, files, issues, fixed
		 FROM runs ORDER BY started_at DESC LIMIT 1`,
	).Scan(&run.ID, &run.StartedAt, &completedAt, &run.Files, &run.Issues, &run.Fixed)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest run: %w", err)
	}
	if completedAt.Valid {
		run.CompletedAt = &completedAt.Time
	}
	return run, nil
}

// --- Result cache ---

// Lookup returns the cached diagnostics for path when they were stored
// under the same key.
func (s *SQLiteStore) Lookup(ctx context.Context, path, key string) ([]lint.Diagnostic, bool, error) {
	if s.db == nil {
		return nil, false, ErrNotOpen
	}

	var storedKey, payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT cache_key, diagnostics FROM file_results WHERE path = ?`, path,
	).Scan(&storedKey, &payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get cached result: %w", err)
	}
	if storedKey != key {
		return nil, false, nil
	}

	var diags []lint.Diagnostic
	if err := json.Unmarshal([]byte(payload), &diags); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached result for %s: %w", path, err)
	}
	return diags, true, nil
}

// Store saves the diagnostics for path under key, replacing any earlier
// entry. runID may be empty.
func (s *SQLiteStore) Store(ctx context.Context, path, key string, diags []lint.Diagnostic, runID string) error {
	if s.db == nil {
		return ErrNotOpen
	}

	if diags == nil {
		diags = []lint.Diagnostic{}
	}
	payload, err := json.Marshal(diags)
	if err != nil {
		return fmt.Errorf("failed to encode result for %s: %w", path, err)
	}

	var run any
	if runID != "" {
		run = runID
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO file_results (path, cache_key, diagnostics, run_id, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(path) DO UPDATE SET
		   cache_key = excluded.cache_key,
		   diagnostics = excluded.diagnostics,
		   run_id = excluded.run_id,
		   updated_at = excluded.updated_at`,
		path, key, string(payload), run, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to store result for %s: %w", path, err)
	}
	return nil
}

// Forget removes the cached result for path.
func (s *SQLiteStore) Forget(ctx context.Context, path string) error {
	if s.db == nil {
		return ErrNotOpen
	}
	_, err := s.db.ExecContext(ctx, `DELETE FROM file_results WHERE path = ?`, path)
	return err
}

// Count returns the number of cached files.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	if s.db == nil {
		return 0, ErrNotOpen
	}
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM file_results`).Scan(&n)
	return n, err
}
