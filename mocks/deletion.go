package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dhis2/approval-backend/models"
	"github.com/dhis2/approval-backend/repositories"
)

type DeletionGuard struct {
	mock.Mock
}

func (g *DeletionGuard) AllowDelete(ctx context.Context, exec repositories.Executor, object models.DeletableObject) error {
	args := g.Called(exec, object)
	return args.Error(0)
}

type DeletionHandler struct {
	mock.Mock
	Name string
}

func (h *DeletionHandler) ClassName() string {
	return h.Name
}

func (h *DeletionHandler) AllowDelete(ctx context.Context, exec repositories.Executor, object models.DeletableObject) (string, error) {
	args := h.Called(exec, object)
	return args.String(0), args.Error(1)
}

type ApprovalValidationAuditRepository struct {
	mock.Mock
}

func (r *ApprovalValidationAuditRepository) CountApprovalValidationAudits(ctx context.Context,
	exec repositories.Executor, column string, id int64,
) (int, error) {
	args := r.Called(exec, column, id)
	return args.Int(0), args.Error(1)
}
