package repository

import (
	"context"
	"database/sql"
)

// WithTx runs fn inside a database transaction. The transaction commits
// when fn returns nil and rolls back when fn returns an error or
// panics (the panic is re-raised after rollback). Every multi-table
// write in this package goes through here so the begin/commit/rollback
// pattern lives in exactly one place and the connection is always
// released on every exit path.
func WithTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
		}
	}()
	if err = fn(tx); err != nil {
		return err
	}
	err = tx.Commit()
	return err
}
