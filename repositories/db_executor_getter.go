package repositories

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dhis2/approval-backend/models"
)

type Executor interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Transaction interface {
	Executor
	RawTx() pgx.Tx
}

// ConnectionPool is implemented by *pgxpool.Pool, and by pgxmock pools in tests.
type ConnectionPool interface {
	Executor
	Begin(ctx context.Context) (pgx.Tx, error)
}

type ExecutorGetter struct {
	connectionPool ConnectionPool
}

func NewExecutorGetter(pool ConnectionPool) ExecutorGetter {
	return ExecutorGetter{
		connectionPool: pool,
	}
}

func (g ExecutorGetter) Transaction(ctx context.Context, fn func(tx Transaction) error) error {
	err := pgx.BeginFunc(ctx, g.connectionPool, func(tx pgx.Tx) error {
		return fn(&PgTx{tx: tx})
	})

	// helper: The callback can return ErrIgnoreRollBackError
	// to explicitly specify that the error should be ignored.
	if errors.Is(err, models.ErrIgnoreRollBackError) {
		return nil
	}
	return errors.Wrap(err, "Error executing transaction")
}

func (g ExecutorGetter) GetExecutor() Executor {
	return g.connectionPool
}

type PgTx struct {
	tx pgx.Tx
}

func (t *PgTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return t.tx.Exec(ctx, sql, args...)
}

func (t *PgTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return t.tx.Query(ctx, sql, args...)
}

func (t *PgTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return t.tx.QueryRow(ctx, sql, args...)
}

func (t *PgTx) RawTx() pgx.Tx {
	return t.tx
}

func validateExecutor(exec Executor) error {
	if exec == nil {
		return errors.New("Cannot use nil executor")
	}
	return nil
}
