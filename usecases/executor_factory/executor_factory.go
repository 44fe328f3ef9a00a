package executor_factory

import (
	"context"

	"github.com/dhis2/approval-backend/repositories"
)

// interfaces used by the class
type executorFactoryRepository interface {
	GetExecutor() repositories.Executor
	Transaction(ctx context.Context, fn func(tx repositories.Transaction) error) error
}

type DbExecutorFactory struct {
	transactionFactoryRepository executorFactoryRepository
}

func NewDbExecutorFactory(transactionFactoryRepository executorFactoryRepository) DbExecutorFactory {
	return DbExecutorFactory{
		transactionFactoryRepository: transactionFactoryRepository,
	}
}

func (factory DbExecutorFactory) Transaction(
	ctx context.Context,
	f func(tx repositories.Transaction) error,
) error {
	return factory.transactionFactoryRepository.Transaction(ctx, f)
}

func (factory DbExecutorFactory) NewExecutor() repositories.Executor {
	return factory.transactionFactoryRepository.GetExecutor()
}
