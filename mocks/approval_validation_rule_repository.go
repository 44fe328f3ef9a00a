package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dhis2/approval-backend/models"
	"github.com/dhis2/approval-backend/repositories"
)

type ApprovalValidationRuleRepository struct {
	mock.Mock
}

func (r *ApprovalValidationRuleRepository) CreateApprovalValidationRule(ctx context.Context, exec repositories.Executor,
	input models.CreateApprovalValidationRuleInput, uid string,
) (int64, error) {
	args := r.Called(exec, input, uid)
	return args.Get(0).(int64), args.Error(1)
}

func (r *ApprovalValidationRuleRepository) UpdateApprovalValidationRule(ctx context.Context, exec repositories.Executor,
	id int64, input models.UpdateApprovalValidationRuleInput,
) error {
	args := r.Called(exec, id, input)
	return args.Error(0)
}

func (r *ApprovalValidationRuleRepository) DeleteApprovalValidationRule(ctx context.Context, exec repositories.Executor, id int64) error {
	args := r.Called(exec, id)
	return args.Error(0)
}

func (r *ApprovalValidationRuleRepository) GetApprovalValidationRuleById(ctx context.Context,
	exec repositories.Executor, id int64,
) (models.ApprovalValidationRule, error) {
	args := r.Called(exec, id)
	return args.Get(0).(models.ApprovalValidationRule), args.Error(1)
}

func (r *ApprovalValidationRuleRepository) GetApprovalValidationRuleByUid(ctx context.Context,
	exec repositories.Executor, uid string,
) (models.ApprovalValidationRule, error) {
	args := r.Called(exec, uid)
	return args.Get(0).(models.ApprovalValidationRule), args.Error(1)
}

func (r *ApprovalValidationRuleRepository) GetApprovalValidationRuleByName(ctx context.Context,
	exec repositories.Executor, name string,
) (models.ApprovalValidationRule, error) {
	args := r.Called(exec, name)
	return args.Get(0).(models.ApprovalValidationRule), args.Error(1)
}

func (r *ApprovalValidationRuleRepository) ListApprovalValidationRules(ctx context.Context,
	exec repositories.Executor, filter models.ApprovalValidationRuleFilter,
) ([]models.ApprovalValidationRule, error) {
	args := r.Called(exec, filter)
	return args.Get(0).([]models.ApprovalValidationRule), args.Error(1)
}

func (r *ApprovalValidationRuleRepository) ListApprovalValidationsOfRule(ctx context.Context,
	exec repositories.Executor, ruleId int64,
) ([]models.ApprovalValidation, error) {
	args := r.Called(exec, ruleId)
	return args.Get(0).([]models.ApprovalValidation), args.Error(1)
}

func (r *ApprovalValidationRuleRepository) CreateApprovalValidationAudit(ctx context.Context,
	exec repositories.Executor, audit models.ApprovalValidationAudit,
) (int64, error) {
	args := r.Called(exec, audit)
	return args.Get(0).(int64), args.Error(1)
}
