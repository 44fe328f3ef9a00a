package deletion

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/dhis2/approval-backend/models"
	"github.com/dhis2/approval-backend/repositories"
	"github.com/dhis2/approval-backend/usecases/executor_factory"
	"github.com/dhis2/approval-backend/utils"
)

type DeletionManager struct {
	executorFactory executor_factory.ExecutorFactory
	handlers        []DeletionHandler
}

func NewDeletionManager(executorFactory executor_factory.ExecutorFactory, handlers ...DeletionHandler) *DeletionManager {
	return &DeletionManager{
		executorFactory: executorFactory,
		handlers:        handlers,
	}
}

func (m *DeletionManager) Register(handler DeletionHandler) {
	m.handlers = append(m.handlers, handler)
}

// AllowDelete runs the handlers in registration order and stops at the first veto,
// returned as an ErrDeletionVetoed error.
func (m *DeletionManager) AllowDelete(ctx context.Context, exec repositories.Executor, object models.DeletableObject) error {
	for _, handler := range m.handlers {
		veto, err := handler.AllowDelete(ctx, exec, object)
		if err != nil {
			return errors.Wrapf(err, "deletion handler %s failed", handler.ClassName())
		}
		if veto != "" {
			m.recordVeto(ctx, handler, object, veto)
			return errors.Wrap(models.ErrDeletionVetoed, veto)
		}
	}
	return nil
}

// Check runs every handler and collects all the vetoes.
func (m *DeletionManager) Check(ctx context.Context, object models.DeletableObject) (models.DeletionCheck, error) {
	if object.Kind == models.DeletableUnknown {
		return models.DeletionCheck{}, errors.Wrap(models.BadParameterError, "unknown kind of deletable object")
	}

	exec := m.executorFactory.NewExecutor()
	check := models.DeletionCheck{Object: object, Vetoes: []models.DeletionVeto{}}
	for _, handler := range m.handlers {
		veto, err := handler.AllowDelete(ctx, exec, object)
		if err != nil {
			return models.DeletionCheck{}, errors.Wrapf(err, "deletion handler %s failed", handler.ClassName())
		}
		if veto != "" {
			m.recordVeto(ctx, handler, object, veto)
			check.Vetoes = append(check.Vetoes, models.DeletionVeto{
				Handler: handler.ClassName(),
				Message: veto,
			})
		}
	}
	return check, nil
}

func (m *DeletionManager) recordVeto(ctx context.Context, handler DeletionHandler, object models.DeletableObject, veto string) {
	utils.LoggerFromContext(ctx).InfoContext(ctx, "deletion vetoed",
		"handler", handler.ClassName(),
		"kind", string(object.Kind),
		"id", object.Id,
		"veto", veto)
	utils.MetricDeletionVetoes.WithLabelValues(handler.ClassName(), string(object.Kind)).Inc()
}
