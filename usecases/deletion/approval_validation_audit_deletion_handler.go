package deletion

import (
	"context"

	"github.com/dhis2/approval-backend/models"
	"github.com/dhis2/approval-backend/repositories"
	"github.com/dhis2/approval-backend/repositories/dbmodels"
)

type approvalValidationAuditCounter interface {
	CountApprovalValidationAudits(ctx context.Context, exec repositories.Executor, column string, id int64) (int, error)
}

var auditColumnOfKind = map[models.DeletableKind]string{
	models.DeletableDataSet:                dbmodels.AuditColumnDataSet,
	models.DeletableApprovalValidationRule: dbmodels.AuditColumnApprovalValidationRule,
	models.DeletablePeriod:                 dbmodels.AuditColumnPeriod,
	models.DeletableOrganisationUnit:       dbmodels.AuditColumnOrganisationUnit,
	models.DeletableCategoryOptionCombo:    dbmodels.AuditColumnAttributeOptionCombo,
}

// ApprovalValidationAuditDeletionHandler refuses to delete an object as long as an approval validation audit references it.
type ApprovalValidationAuditDeletionHandler struct {
	repository approvalValidationAuditCounter
}

func NewApprovalValidationAuditDeletionHandler(repository approvalValidationAuditCounter) ApprovalValidationAuditDeletionHandler {
	return ApprovalValidationAuditDeletionHandler{repository: repository}
}

func (h ApprovalValidationAuditDeletionHandler) ClassName() string {
	return "ApprovalValidationAudit"
}

func (h ApprovalValidationAuditDeletionHandler) AllowDelete(
	ctx context.Context,
	exec repositories.Executor,
	object models.DeletableObject,
) (string, error) {
	column, ok := auditColumnOfKind[object.Kind]
	if !ok {
		return "", nil
	}

	count, err := h.repository.CountApprovalValidationAudits(ctx, exec, column, object.Id)
	if err != nil {
		return "", err
	}
	if count > 0 {
		return vetoMessage(h.ClassName()), nil
	}
	return "", nil
}
