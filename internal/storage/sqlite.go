// Package storage owns the embedded SQLite store: one process-wide handle,
// idempotent schema creation, and the all-or-nothing transaction helper the
// repository layer builds on.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// DefaultPath is the fixed database file used when no path is configured.
const DefaultPath = "quizapp.db"

var (
	// ErrUnavailable reports that the store could not be opened or its
	// schema could not be created.
	ErrUnavailable = errors.New("storage unavailable")

	// ErrTxFailed reports that an atomic unit aborted; none of its
	// statements took effect.
	ErrTxFailed = errors.New("transaction failed")
)

type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database file at path and ensures the
// schema exists. Safe to call on every process start.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		path = DefaultPath
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	// Single writer, single reader: one connection is all this app needs,
	// and it sidesteps SQLITE_BUSY between overlapping statements.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA busy_timeout = 5000;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	store := &Store{db: db}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return store, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initSchema(ctx context.Context) error {
	// Column layout is the on-disk contract with existing quizapp.db files
	// and must not change. No FK constraints: cascade deletes are handled
	// by application transactions.
	statements := []string{
		`CREATE TABLE IF NOT EXISTS quizzes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS questions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			quiz_id INTEGER,
			question TEXT NOT NULL,
			correct_answer TEXT NOT NULL,
			option1 TEXT NOT NULL,
			option2 TEXT NOT NULL,
			option3 TEXT NOT NULL,
			option4 TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			quiz_id INTEGER,
			score INTEGER,
			time_taken INTEGER,
			created_at TEXT
		);`,
	}

	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// ExecContext runs a single parameterized statement outside a transaction.
func (s *Store) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return s.db.ExecContext(ctx, query, args...)
}

// QueryContext runs a parameterized query and returns its rows.
func (s *Store) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return s.db.QueryContext(ctx, query, args...)
}

// QueryRowContext runs a parameterized query expected to return at most one row.
func (s *Store) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return s.db.QueryRowContext(ctx, query, args...)
}

func (s *Store) String() string {
	return fmt.Sprintf("sqlite_store(%T)", s.db)
}
