package gateway

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Querier is the set of operations available both on the pooled gateway and
// on a transaction-scoped handle inside WithTransaction.
type Querier interface {
	// QueryMany runs a SELECT and scans all rows into dest (a slice pointer).
	QueryMany(ctx context.Context, dest any, query string, args ...any) error
	// QueryOne runs a SELECT and scans the first row into dest. An absent
	// row surfaces as sql.ErrNoRows.
	QueryOne(ctx context.Context, dest any, query string, args ...any) error
	// Insert runs an INSERT and returns the generated row id.
	Insert(ctx context.Context, query string, args ...any) (int64, error)
	// Execute runs an UPDATE or DELETE and returns the affected row count.
	Execute(ctx context.Context, query string, args ...any) (int64, error)
	// Rebind translates ? bindvars to the driver's placeholder style.
	Rebind(query string) string
}

// Gateway executes parameterized SQL against the connection pool. All reads
// and writes in the application go through it, either directly or via
// WithTransaction.
type Gateway struct {
	runner
	db *sqlx.DB
}

func New(db *sqlx.DB) *Gateway {
	return &Gateway{runner: runner{ext: db}, db: db}
}

// WithTransaction runs fn against a single connection inside a
// BEGIN/COMMIT/ROLLBACK boundary. The Querier passed to fn is bound to the
// transaction; returning an error (or panicking) rolls every statement back,
// so no partial state is ever observable.
func (g *Gateway) WithTransaction(ctx context.Context, fn func(q Querier) error) error {
	tx, err := g.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	err = fn(&runner{ext: tx})
	if err != nil {
		rbErr := tx.Rollback()
		if rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	err = tx.Commit()
	if err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// runner implements Querier over either the pool or an open transaction.
type runner struct {
	ext sqlx.ExtContext
}

func (r *runner) QueryMany(ctx context.Context, dest any, query string, args ...any) error {
	return sqlx.SelectContext(ctx, r.ext, dest, query, args...)
}

func (r *runner) QueryOne(ctx context.Context, dest any, query string, args ...any) error {
	return sqlx.GetContext(ctx, r.ext, dest, query, args...)
}

func (r *runner) Insert(ctx context.Context, query string, args ...any) (int64, error) {
	result, err := r.ext.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

func (r *runner) Execute(ctx context.Context, query string, args ...any) (int64, error) {
	result, err := r.ext.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *runner) Rebind(query string) string {
	return r.ext.Rebind(query)
}
