// Package dbx holds the database plumbing the repositories share: the DBTX
// handle they are built over, WithTx for multi-statement writes, and Open,
// which knows the SQLite and PostgreSQL connection settings.
package dbx

import (
	"context"
	"database/sql"
	"fmt"
)

// DBTX is what a repository needs from its handle. A repository built over
// *sql.DB runs each statement on its own; one built over the *sql.Tx passed
// to a WithTx callback joins that transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// WithTx runs fn inside one transaction and commits when fn succeeds.
// Registration uses it so the username and email checks and the insert see
// the same snapshot.
//
// An error from fn or a panic rolls back; the panic is then re-raised. The
// callback must build its repositories over tx only: a SQLite *sql.DB holds a
// single connection, which the transaction already owns.
func WithTx(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn func(ctx context.Context, tx DBTX) error) error {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := fn(ctx, tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	committed = true
	return nil
}
