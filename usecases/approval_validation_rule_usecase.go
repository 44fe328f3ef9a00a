package usecases

import (
	"context"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
	"github.com/guregu/null/v5"

	"github.com/dhis2/approval-backend/models"
	"github.com/dhis2/approval-backend/pure_utils"
	"github.com/dhis2/approval-backend/repositories"
	"github.com/dhis2/approval-backend/repositories/dbmodels"
	"github.com/dhis2/approval-backend/usecases/executor_factory"
	"github.com/dhis2/approval-backend/utils"
)

const (
	approvalValidationRuleNameMaxLength = 230
	approvalValidationRuleCodeMaxLength = 50
	auditTypeMaxLength                  = 100
)

type ApprovalValidationRuleRepository interface {
	CreateApprovalValidationRule(ctx context.Context, exec repositories.Executor,
		input models.CreateApprovalValidationRuleInput, uid string) (int64, error)
	UpdateApprovalValidationRule(ctx context.Context, exec repositories.Executor, id int64,
		input models.UpdateApprovalValidationRuleInput) error
	DeleteApprovalValidationRule(ctx context.Context, exec repositories.Executor, id int64) error
	GetApprovalValidationRuleById(ctx context.Context, exec repositories.Executor, id int64) (models.ApprovalValidationRule, error)
	GetApprovalValidationRuleByUid(ctx context.Context, exec repositories.Executor, uid string) (models.ApprovalValidationRule, error)
	GetApprovalValidationRuleByName(ctx context.Context, exec repositories.Executor, name string) (models.ApprovalValidationRule, error)
	ListApprovalValidationRules(ctx context.Context, exec repositories.Executor,
		filter models.ApprovalValidationRuleFilter) ([]models.ApprovalValidationRule, error)
	ListApprovalValidationsOfRule(ctx context.Context, exec repositories.Executor, ruleId int64) ([]models.ApprovalValidation, error)
	CreateApprovalValidationAudit(ctx context.Context, exec repositories.Executor, audit models.ApprovalValidationAudit) (int64, error)
}

type DeletionGuard interface {
	AllowDelete(ctx context.Context, exec repositories.Executor, object models.DeletableObject) error
}

type ApprovalValidationRuleUsecase struct {
	executorFactory    executor_factory.ExecutorFactory
	transactionFactory executor_factory.TransactionFactory
	repository         ApprovalValidationRuleRepository
	deletionGuard      DeletionGuard
}

func NewApprovalValidationRuleUsecase(
	executorFactory executor_factory.ExecutorFactory,
	transactionFactory executor_factory.TransactionFactory,
	repository ApprovalValidationRuleRepository,
	deletionGuard DeletionGuard,
) ApprovalValidationRuleUsecase {
	return ApprovalValidationRuleUsecase{
		executorFactory:    executorFactory,
		transactionFactory: transactionFactory,
		repository:         repository,
		deletionGuard:      deletionGuard,
	}
}

func validateApprovalValidationRuleName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.Wrap(models.BadParameterError, "approval validation rule name is required")
	}
	if utf8.RuneCountInString(name) > approvalValidationRuleNameMaxLength {
		return errors.Wrapf(models.BadParameterError,
			"approval validation rule name is longer than %d characters", approvalValidationRuleNameMaxLength)
	}
	return nil
}

func validateApprovalValidationRuleCode(code null.String) error {
	if code.Valid && utf8.RuneCountInString(code.String) > approvalValidationRuleCodeMaxLength {
		return errors.Wrapf(models.BadParameterError,
			"approval validation rule code is longer than %d characters", approvalValidationRuleCodeMaxLength)
	}
	return nil
}

func validatePeriodType(periodType models.PeriodType) error {
	if periodType == models.PeriodTypeUnknown {
		return errors.Wrap(models.BadParameterError, "unknown period type")
	}
	return nil
}

// approvalValidationRuleWriteError maps the constraint violations of a rule insert or update to user errors.
func approvalValidationRuleWriteError(err error) error {
	if constraint, ok := repositories.UniqueViolationConstraint(err); ok {
		if constraint == dbmodels.UNIQUE_APPROVAL_VALIDATION_RULE_CODE {
			return errors.Wrap(models.ConflictError, "there is already an approval validation rule with this code")
		}
		return errors.Wrap(models.ConflictError, "there is already an approval validation rule by this name")
	}
	if repositories.IsForeignKeyViolationError(err) {
		return errors.Wrap(models.BadParameterError, "unknown data set")
	}
	return err
}

// SaveApprovalValidationRule creates the rule and returns its generated id.
func (usecase ApprovalValidationRuleUsecase) SaveApprovalValidationRule(
	ctx context.Context,
	input models.CreateApprovalValidationRuleInput,
) (int64, error) {
	if err := validateApprovalValidationRuleName(input.Name); err != nil {
		return 0, err
	}
	if err := validateApprovalValidationRuleCode(input.Code); err != nil {
		return 0, err
	}
	if err := validatePeriodType(input.PeriodType); err != nil {
		return 0, err
	}

	id, err := executor_factory.TransactionReturnValue(ctx, usecase.transactionFactory,
		func(tx repositories.Transaction) (int64, error) {
			id, err := usecase.repository.CreateApprovalValidationRule(ctx, tx, input, utils.GenerateUid())
			if err != nil {
				return 0, approvalValidationRuleWriteError(err)
			}
			return id, nil
		})
	if err != nil {
		return 0, err
	}

	utils.LoggerFromContext(ctx).InfoContext(ctx, "approval validation rule created", "id", id, "name", input.Name)
	return id, nil
}

func (usecase ApprovalValidationRuleUsecase) UpdateApprovalValidationRule(
	ctx context.Context,
	id int64,
	input models.UpdateApprovalValidationRuleInput,
) (models.ApprovalValidationRule, error) {
	if input.Name != nil {
		if err := validateApprovalValidationRuleName(*input.Name); err != nil {
			return models.ApprovalValidationRule{}, err
		}
	}
	if input.Code != nil {
		if err := validateApprovalValidationRuleCode(*input.Code); err != nil {
			return models.ApprovalValidationRule{}, err
		}
	}
	if input.PeriodType != nil {
		if err := validatePeriodType(*input.PeriodType); err != nil {
			return models.ApprovalValidationRule{}, err
		}
	}

	return executor_factory.TransactionReturnValue(ctx, usecase.transactionFactory,
		func(tx repositories.Transaction) (models.ApprovalValidationRule, error) {
			current, err := usecase.repository.GetApprovalValidationRuleById(ctx, tx, id)
			if err != nil {
				return models.ApprovalValidationRule{}, err
			}
			// unchanged data sets are not rewritten
			if input.DataSetIds != nil && pure_utils.ContainsSameElements(*input.DataSetIds, current.DataSetIds) {
				input.DataSetIds = nil
			}

			err = usecase.repository.UpdateApprovalValidationRule(ctx, tx, id, input)
			if err != nil {
				return models.ApprovalValidationRule{}, approvalValidationRuleWriteError(err)
			}
			return usecase.repository.GetApprovalValidationRuleById(ctx, tx, id)
		})
}

// DeleteApprovalValidationRule deletes the rule unless a deletion handler refuses it.
func (usecase ApprovalValidationRuleUsecase) DeleteApprovalValidationRule(ctx context.Context, id int64) error {
	err := usecase.transactionFactory.Transaction(ctx, func(tx repositories.Transaction) error {
		if _, err := usecase.repository.GetApprovalValidationRuleById(ctx, tx, id); err != nil {
			return err
		}

		object := models.DeletableObject{Kind: models.DeletableApprovalValidationRule, Id: id}
		if err := usecase.deletionGuard.AllowDelete(ctx, tx, object); err != nil {
			return err
		}
		return usecase.repository.DeleteApprovalValidationRule(ctx, tx, id)
	})
	if err != nil {
		return err
	}

	utils.LoggerFromContext(ctx).InfoContext(ctx, "approval validation rule deleted", "id", id)
	return nil
}

func (usecase ApprovalValidationRuleUsecase) GetApprovalValidationRule(ctx context.Context, id int64) (models.ApprovalValidationRule, error) {
	return usecase.repository.GetApprovalValidationRuleById(ctx, usecase.executorFactory.NewExecutor(), id)
}

func (usecase ApprovalValidationRuleUsecase) GetApprovalValidationRuleByUid(ctx context.Context, uid string) (models.ApprovalValidationRule, error) {
	if err := utils.ValidateUid(uid); err != nil {
		return models.ApprovalValidationRule{}, err
	}
	return usecase.repository.GetApprovalValidationRuleByUid(ctx, usecase.executorFactory.NewExecutor(), uid)
}

func (usecase ApprovalValidationRuleUsecase) GetApprovalValidationRuleByName(ctx context.Context, name string) (models.ApprovalValidationRule, error) {
	return usecase.repository.GetApprovalValidationRuleByName(ctx, usecase.executorFactory.NewExecutor(), name)
}

func (usecase ApprovalValidationRuleUsecase) GetAllApprovalValidationRules(
	ctx context.Context,
	filter models.ApprovalValidationRuleFilter,
) ([]models.ApprovalValidationRule, error) {
	return usecase.repository.ListApprovalValidationRules(ctx, usecase.executorFactory.NewExecutor(), filter)
}

// ListApprovalValidations returns the recorded validations of a rule, ordered by period.
func (usecase ApprovalValidationRuleUsecase) ListApprovalValidations(ctx context.Context, ruleId int64) ([]models.ApprovalValidation, error) {
	exec := usecase.executorFactory.NewExecutor()
	rule, err := usecase.repository.GetApprovalValidationRuleById(ctx, exec, ruleId)
	if err != nil {
		return nil, err
	}

	validations, err := usecase.repository.ListApprovalValidationsOfRule(ctx, exec, ruleId)
	if err != nil {
		return nil, err
	}
	for i := range validations {
		validations[i].Rule = rule
	}
	models.SortApprovalValidations(validations)
	return validations, nil
}

// RecordApprovalValidationAudit stores one validation of the rule for a data set, period, organisation unit
// and attribute option combo. The data set must be one the rule applies to.
func (usecase ApprovalValidationRuleUsecase) RecordApprovalValidationAudit(
	ctx context.Context,
	audit models.ApprovalValidationAudit,
) (models.ApprovalValidationAudit, error) {
	audit.AuditType = strings.TrimSpace(audit.AuditType)
	if audit.AuditType == "" {
		return models.ApprovalValidationAudit{}, errors.Wrap(models.BadParameterError, "audit type is required")
	}
	if utf8.RuneCountInString(audit.AuditType) > auditTypeMaxLength {
		return models.ApprovalValidationAudit{}, errors.Wrapf(models.BadParameterError,
			"audit type is longer than %d characters", auditTypeMaxLength)
	}

	id, err := executor_factory.TransactionReturnValue(ctx, usecase.transactionFactory,
		func(tx repositories.Transaction) (int64, error) {
			rule, err := usecase.repository.GetApprovalValidationRuleById(ctx, tx, audit.ApprovalValidationRuleId)
			if err != nil {
				return 0, err
			}
			if !slices.Contains(rule.DataSetIds, audit.DataSetId) {
				return 0, errors.Wrapf(models.BadParameterError,
					"data set %d is not validated by approval validation rule %d", audit.DataSetId, rule.Id)
			}

			id, err := usecase.repository.CreateApprovalValidationAudit(ctx, tx, audit)
			if repositories.IsForeignKeyViolationError(err) {
				return 0, errors.Wrap(models.BadParameterError,
					"unknown period, organisation unit or attribute option combo")
			}
			return id, err
		})
	if err != nil {
		return models.ApprovalValidationAudit{}, err
	}

	audit.Id = id
	utils.LoggerFromContext(ctx).InfoContext(ctx, "approval validation audit recorded",
		"id", id, "rule_id", audit.ApprovalValidationRuleId, "audit_type", audit.AuditType)
	return audit, nil
}
