package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// WithTx runs fn inside a transaction. If fn returns an error the
// transaction is rolled back and no statement takes effect; otherwise it is
// committed. Any failure, including the commit itself, is reported wrapped
// in ErrTxFailed.
//
// Statements inside fn run strictly in order, so fn may read the id
// generated by an earlier insert (sql.Result.LastInsertId) before issuing
// later statements that reference it.
func (s *Store) WithTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin: %v", ErrTxFailed, err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		// Keep fn's error in the chain so callers can still match
		// domain sentinels like a not-found inside the unit.
		return fmt.Errorf("%w: %w", ErrTxFailed, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %v", ErrTxFailed, err)
	}
	return nil
}
