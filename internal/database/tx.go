package database

import (
	"context"
	"database/sql"
	"fmt"
)

// Beginner abstracts the subset of *sql.DB needed to start a transaction.
// Tests substitute a counting implementation to verify that every
// transaction that is begun is also finished.
type Beginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

// WithinTx runs fn inside a single transaction.  The transaction is
// committed when fn returns nil and rolled back when fn returns an error
// or panics.  The underlying connection is released on every exit path,
// so callers never repeat rollback logic per failure branch.
func WithinTx(ctx context.Context, db Beginner, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	done := false
	defer func() {
		if !done {
			// fn panicked; release the connection before unwinding.
			_ = tx.Rollback()
		}
	}()
	if err := fn(tx); err != nil {
		done = true
		_ = tx.Rollback()
		return err
	}
	done = true
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
