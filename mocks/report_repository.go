package mocks

import (
	"context"
	"io"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"

	"github.com/dhis2/approval-backend/models"
	"github.com/dhis2/approval-backend/repositories"
)

type ReportRepository struct {
	mock.Mock
}

func (r *ReportRepository) GetApprovalValidationRuleById(ctx context.Context,
	exec repositories.Executor, id int64,
) (models.ApprovalValidationRule, error) {
	args := r.Called(exec, id)
	return args.Get(0).(models.ApprovalValidationRule), args.Error(1)
}

func (r *ReportRepository) ListApprovalValidationRules(ctx context.Context,
	exec repositories.Executor, filter models.ApprovalValidationRuleFilter,
) ([]models.ApprovalValidationRule, error) {
	args := r.Called(exec, filter)
	return args.Get(0).([]models.ApprovalValidationRule), args.Error(1)
}

func (r *ReportRepository) ListApprovalValidationsOfRule(ctx context.Context,
	exec repositories.Executor, ruleId int64,
) ([]models.ApprovalValidation, error) {
	args := r.Called(exec, ruleId)
	return args.Get(0).([]models.ApprovalValidation), args.Error(1)
}

// AuditSummaryOfRule hands the rows returned by the expectation to fn.
func (r *ReportRepository) AuditSummaryOfRule(ctx context.Context,
	exec repositories.Executor, ruleId int64, fn func(rows pgx.Rows) error,
) error {
	args := r.Called(exec, ruleId)
	if rows, ok := args.Get(0).(pgx.Rows); ok && rows != nil {
		defer rows.Close()
		if err := fn(rows); err != nil {
			return err
		}
	}
	return args.Error(1)
}

func (r *ReportRepository) GetPeriodById(ctx context.Context, exec repositories.Executor, id int64) (models.Period, error) {
	args := r.Called(exec, id)
	return args.Get(0).(models.Period), args.Error(1)
}

func (r *ReportRepository) GetOrganisationUnitById(ctx context.Context,
	exec repositories.Executor, id int64,
) (models.OrganisationUnit, error) {
	args := r.Called(exec, id)
	return args.Get(0).(models.OrganisationUnit), args.Error(1)
}

type BlobRepository struct {
	mock.Mock
}

// PutBlob reads the content so that expectations can match on it.
func (b *BlobRepository) PutBlob(ctx context.Context, bucketUrl, fileName, contentType string, content io.Reader) (int64, error) {
	data, err := io.ReadAll(content)
	if err != nil {
		return 0, err
	}
	args := b.Called(bucketUrl, fileName, contentType, data)
	return args.Get(0).(int64), args.Error(1)
}

func (b *BlobRepository) GetBlob(ctx context.Context, bucketUrl, fileName string) (models.Blob, error) {
	args := b.Called(bucketUrl, fileName)
	return args.Get(0).(models.Blob), args.Error(1)
}
