package executor_factory

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"

	"github.com/dhis2/approval-backend/repositories"
)

// ExecutorFactoryStub hands out executors backed by a pgxmock pool, for usecase tests
// that assert on the sql sent to the database.
type ExecutorFactoryStub struct {
	Mock pgxmock.PgxPoolIface
}

func NewExecutorFactoryStub() ExecutorFactoryStub {
	pool, _ := pgxmock.NewPool()

	return ExecutorFactoryStub{
		Mock: pool,
	}
}

func (stub ExecutorFactoryStub) NewExecutor() repositories.Executor {
	return stub.Mock
}

type TransactionFactoryStub struct {
	ExecutorFactory ExecutorFactoryStub
}

func NewTransactionFactoryStub(executorFactory ExecutorFactoryStub) TransactionFactoryStub {
	return TransactionFactoryStub{
		ExecutorFactory: executorFactory,
	}
}

func (stub TransactionFactoryStub) Transaction(ctx context.Context, fn func(tx repositories.Transaction) error) error {
	return fn(pgxmockTransaction{stub.ExecutorFactory.Mock})
}

type pgxmockTransaction struct {
	pgxmock.PgxPoolIface
}

func (t pgxmockTransaction) RawTx() pgx.Tx {
	return nil
}
