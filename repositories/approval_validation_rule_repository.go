package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/cockroachdb/errors"

	"github.com/dhis2/approval-backend/models"
	"github.com/dhis2/approval-backend/repositories/criteria"
	"github.com/dhis2/approval-backend/repositories/dbmodels"
)

var approvalValidationRuleEntity = criteria.EntityModel{
	Table:     "r",
	IdColumns: []string{"approvalvalidationruleid", "uid"},
}

func selectApprovalValidationRules() squirrel.SelectBuilder {
	dataSetIds := fmt.Sprintf(
		"COALESCE((SELECT array_agg(d.datasetid ORDER BY d.datasetid) FROM %s AS d "+
			"WHERE d.approvalvalidationruleid = r.approvalvalidationruleid), '{}') AS datasetids",
		dbmodels.TABLE_APPROVAL_VALIDATION_RULE_DATASETS)

	return NewQueryBuilder().
		Select(columnsNames("r", dbmodels.SelectApprovalValidationRuleColumn)...).
		Column(dataSetIds).
		From(fmt.Sprintf("%s AS r", dbmodels.TABLE_APPROVAL_VALIDATION_RULE))
}

func (repo *DbRepository) CreateApprovalValidationRule(
	ctx context.Context,
	exec Executor,
	input models.CreateApprovalValidationRuleInput,
	uid string,
) (int64, error) {
	if err := validateExecutor(exec); err != nil {
		return 0, err
	}

	sql, args, err := NewQueryBuilder().
		Insert(dbmodels.TABLE_APPROVAL_VALIDATION_RULE).
		Columns(
			"uid",
			"code",
			"name",
			"description",
			"periodtype",
			"created",
			"lastupdated",
		).
		Values(
			uid,
			input.Code,
			input.Name,
			input.Description,
			input.PeriodType.String(),
			squirrel.Expr("NOW()"),
			squirrel.Expr("NOW()"),
		).
		Suffix("RETURNING approvalvalidationruleid").
		ToSql()
	if err != nil {
		return 0, errors.Wrap(err, "can't build sql query")
	}

	var id int64
	if err := exec.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return 0, errors.Wrap(err, "error inserting approval validation rule")
	}

	if err := repo.replaceApprovalValidationRuleDataSets(ctx, exec, id, input.DataSetIds); err != nil {
		return 0, err
	}
	return id, nil
}

func (repo *DbRepository) UpdateApprovalValidationRule(
	ctx context.Context,
	exec Executor,
	id int64,
	input models.UpdateApprovalValidationRuleInput,
) error {
	if err := validateExecutor(exec); err != nil {
		return err
	}

	query := NewQueryBuilder().
		Update(dbmodels.TABLE_APPROVAL_VALIDATION_RULE).
		Set("lastupdated", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"approvalvalidationruleid": id})

	if input.Code != nil {
		query = query.Set("code", *input.Code)
	}
	if input.Name != nil {
		query = query.Set("name", *input.Name)
	}
	if input.Description != nil {
		query = query.Set("description", *input.Description)
	}
	if input.PeriodType != nil {
		query = query.Set("periodtype", input.PeriodType.String())
	}

	if err := ExecBuilder(ctx, exec, query); err != nil {
		return err
	}

	if input.DataSetIds != nil {
		return repo.replaceApprovalValidationRuleDataSets(ctx, exec, id, *input.DataSetIds)
	}
	return nil
}

func (repo *DbRepository) replaceApprovalValidationRuleDataSets(
	ctx context.Context,
	exec Executor,
	ruleId int64,
	dataSetIds []int64,
) error {
	err := ExecBuilder(ctx, exec, NewQueryBuilder().
		Delete(dbmodels.TABLE_APPROVAL_VALIDATION_RULE_DATASETS).
		Where(squirrel.Eq{"approvalvalidationruleid": ruleId}))
	if err != nil {
		return err
	}

	if len(dataSetIds) == 0 {
		return nil
	}

	query := NewQueryBuilder().
		Insert(dbmodels.TABLE_APPROVAL_VALIDATION_RULE_DATASETS).
		Columns("approvalvalidationruleid", "datasetid")
	for _, dataSetId := range dataSetIds {
		query = query.Values(ruleId, dataSetId)
	}
	return ExecBuilder(ctx, exec, query)
}

func (repo *DbRepository) DeleteApprovalValidationRule(ctx context.Context, exec Executor, id int64) error {
	if err := validateExecutor(exec); err != nil {
		return err
	}

	err := ExecBuilder(ctx, exec, NewQueryBuilder().
		Delete(dbmodels.TABLE_APPROVAL_VALIDATION_RULE_DATASETS).
		Where(squirrel.Eq{"approvalvalidationruleid": id}))
	if err != nil {
		return err
	}

	return ExecBuilder(ctx, exec, NewQueryBuilder().
		Delete(dbmodels.TABLE_APPROVAL_VALIDATION_RULE).
		Where(squirrel.Eq{"approvalvalidationruleid": id}))
}

func (repo *DbRepository) GetApprovalValidationRuleById(ctx context.Context, exec Executor, id int64) (models.ApprovalValidationRule, error) {
	if err := validateExecutor(exec); err != nil {
		return models.ApprovalValidationRule{}, err
	}

	return repo.getApprovalValidationRuleByIdColumn(ctx, exec, "approvalvalidationruleid", id)
}

func (repo *DbRepository) GetApprovalValidationRuleByUid(ctx context.Context, exec Executor, uid string) (models.ApprovalValidationRule, error) {
	if err := validateExecutor(exec); err != nil {
		return models.ApprovalValidationRule{}, err
	}

	return repo.getApprovalValidationRuleByIdColumn(ctx, exec, "uid", uid)
}

func (repo *DbRepository) getApprovalValidationRuleByIdColumn(
	ctx context.Context,
	exec Executor,
	attributeName string,
	value any,
) (models.ApprovalValidationRule, error) {
	column, ok := criteria.IdColumn(approvalValidationRuleEntity, attributeName)
	if !ok {
		return models.ApprovalValidationRule{}, errors.Newf("%s is not an id of approval validation rules", attributeName)
	}

	return SqlToModel(
		ctx,
		exec,
		selectApprovalValidationRules().Where(squirrel.Eq{column: value}),
		dbmodels.AdaptApprovalValidationRule,
	)
}

func (repo *DbRepository) GetApprovalValidationRuleByName(ctx context.Context, exec Executor, name string) (models.ApprovalValidationRule, error) {
	if err := validateExecutor(exec); err != nil {
		return models.ApprovalValidationRule{}, err
	}

	return SqlToModel(
		ctx,
		exec,
		selectApprovalValidationRules().Where(squirrel.Eq{"r.name": name}),
		dbmodels.AdaptApprovalValidationRule,
	)
}

func (repo *DbRepository) ListApprovalValidationRules(
	ctx context.Context,
	exec Executor,
	filter models.ApprovalValidationRuleFilter,
) ([]models.ApprovalValidationRule, error) {
	if err := validateExecutor(exec); err != nil {
		return nil, err
	}

	var namePredicate squirrel.Sqlizer
	if filter.Name != "" {
		var err error
		namePredicate, err = criteria.StringPredicate("r.name", filter.Name,
			filter.NameMatch, filter.CaseSensitive, repo.language)
		if err != nil {
			return nil, err
		}
	}

	query := selectApprovalValidationRules().
		OrderBy(criteria.Orders("name")("r"), criteria.Orders("approvalvalidationruleid")("r"))
	if where := criteria.AndPredicate(namePredicate); where != nil {
		query = query.Where(where)
	}

	return SqlToListOfModels(ctx, exec, query, dbmodels.AdaptApprovalValidationRule)
}
