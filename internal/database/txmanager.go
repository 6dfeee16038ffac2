package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// attendanceTxKey carries the open *sql.Tx through the context so both halves
// of an attendance write see the same transaction.
type attendanceTxKey struct{}

// Querier is satisfied by *sql.DB and *sql.Tx, letting repositories run the
// same statement inside or outside an attendance write.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// TxManager scopes a unit of work to one transaction.
type TxManager interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type sqlTxManager struct {
	db *sql.DB
}

// NewTxManager returns a TxManager on db.
func NewTxManager(db *sql.DB) TxManager {
	return &sqlTxManager{db: db}
}

// WithTx runs fn in a transaction. fn commits only if it returns nil; an
// error or a panic rolls back. Nested calls join the outer transaction, so an
// attendance row and anything fn does alongside it commit together.
func (m *sqlTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if inTx(ctx) {
		return fn(ctx)
	}

	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin attendance transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(context.WithValue(ctx, attendanceTxKey{}, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.Join(err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit attendance transaction: %w", err)
	}
	return nil
}

func inTx(ctx context.Context) bool {
	_, ok := ctx.Value(attendanceTxKey{}).(*sql.Tx)
	return ok
}

// GetTx returns the transaction opened by WithTx, or db outside of one.
func GetTx(ctx context.Context, db *sql.DB) Querier {
	if tx, ok := ctx.Value(attendanceTxKey{}).(*sql.Tx); ok {
		return tx
	}
	return db
}
