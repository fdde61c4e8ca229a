package storage

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

func TestOpenCreatesSchemaIdempotently(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	first, err := Open(path)
	if err != nil {
		t.Fatalf("first Open failed: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	// Reopening the same file must not fail on existing tables.
	second, err := Open(path)
	if err != nil {
		t.Fatalf("second Open failed: %v", err)
	}
	defer second.Close()

	for _, table := range []string{"quizzes", "questions", "results"} {
		var name string
		err := second.QueryRowContext(
			context.Background(),
			`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`,
			table,
		).Scan(&name)
		if err != nil {
			t.Fatalf("table %q missing after reopen: %v", table, err)
		}
	}
}

func TestOpenUnusablePath(t *testing.T) {
	// SQLite will not create intermediate directories.
	path := filepath.Join(t.TempDir(), "missing", "test.db")

	_, err := Open(path)
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestWithTxCommit(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	var quizID int64
	err := store.WithTx(ctx, func(tx *sql.Tx) error {
		insert, err := tx.ExecContext(ctx, `INSERT INTO quizzes (title) VALUES (?)`, "Committed")
		if err != nil {
			return err
		}

		// Later statements in the unit depend on this generated id.
		quizID, err = insert.LastInsertId()
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(
			ctx,
			`INSERT INTO questions (quiz_id, question, correct_answer, option1, option2, option3, option4)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			quizID, "Q?", "A", "A", "B", "C", "D",
		)
		return err
	})
	if err != nil {
		t.Fatalf("WithTx failed: %v", err)
	}
	if quizID == 0 {
		t.Fatalf("expected generated quiz id, got 0")
	}

	var linked int64
	err = store.QueryRowContext(ctx, `SELECT quiz_id FROM questions`).Scan(&linked)
	if err != nil {
		t.Fatalf("reading question row failed: %v", err)
	}
	if linked != quizID {
		t.Fatalf("question quiz_id = %d, want %d", linked, quizID)
	}
}

func TestWithTxRollsBackAllEffects(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	boom := errors.New("boom")
	err := store.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `INSERT INTO quizzes (title) VALUES (?)`, "Doomed"); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, ErrTxFailed) {
		t.Fatalf("expected ErrTxFailed, got %v", err)
	}
	if !errors.Is(err, boom) {
		t.Fatalf("expected inner error preserved in chain, got %v", err)
	}

	var count int
	if err := store.QueryRowContext(ctx, `SELECT COUNT(*) FROM quizzes`).Scan(&count); err != nil {
		t.Fatalf("counting quizzes failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected rollback to leave no rows, got %d", count)
	}
}
