package repositories

import (
	"context"
	"fmt"
	"slices"

	"github.com/Masterminds/squirrel"
	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5"

	"github.com/dhis2/approval-backend/models"
	"github.com/dhis2/approval-backend/repositories/dbmodels"
)

// CountApprovalValidationAudits counts the audit rows referencing the object with the given id in column.
func (repo *DbRepository) CountApprovalValidationAudits(ctx context.Context, exec Executor, column string, id int64) (int, error) {
	if err := validateExecutor(exec); err != nil {
		return 0, err
	}
	if !slices.Contains(dbmodels.AuditReferenceColumns, column) {
		return 0, errors.Newf("%s is not a reference column of %s", column, dbmodels.TABLE_APPROVAL_VALIDATION_AUDIT)
	}

	return SqlCount(ctx, exec, NewQueryBuilder().
		Select("COUNT(*)").
		From(dbmodels.TABLE_APPROVAL_VALIDATION_AUDIT).
		Where(squirrel.Eq{column: id}))
}

func (repo *DbRepository) CreateApprovalValidationAudit(
	ctx context.Context,
	exec Executor,
	audit models.ApprovalValidationAudit,
) (int64, error) {
	if err := validateExecutor(exec); err != nil {
		return 0, err
	}

	sql, args, err := NewQueryBuilder().
		Insert(dbmodels.TABLE_APPROVAL_VALIDATION_AUDIT).
		Columns(
			dbmodels.AuditColumnApprovalValidationRule,
			dbmodels.AuditColumnDataSet,
			dbmodels.AuditColumnPeriod,
			dbmodels.AuditColumnOrganisationUnit,
			dbmodels.AuditColumnAttributeOptionCombo,
			"audittype",
			"createdby",
			"created",
		).
		Values(
			audit.ApprovalValidationRuleId,
			audit.DataSetId,
			audit.PeriodId,
			audit.OrganisationUnitId,
			audit.AttributeOptionComboId,
			audit.AuditType,
			audit.CreatedBy,
			squirrel.Expr("NOW()"),
		).
		Suffix("RETURNING approvalvalidationauditid").
		ToSql()
	if err != nil {
		return 0, errors.Wrap(err, "can't build sql query")
	}

	var id int64
	if err := exec.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return 0, errors.Wrap(err, "error inserting approval validation audit")
	}
	return id, nil
}

// ListApprovalValidationsOfRule rebuilds the validation results recorded for a rule, one per audit row.
func (repo *DbRepository) ListApprovalValidationsOfRule(ctx context.Context, exec Executor, ruleId int64) ([]models.ApprovalValidation, error) {
	if err := validateExecutor(exec); err != nil {
		return nil, err
	}

	query := NewQueryBuilder().
		Select(
			"a.approvalvalidationruleid",
			"a.datasetid",
			"a.organisationunitid",
			"a.attributeoptioncomboid",
			"p.periodid",
			"p.periodtype",
			"p.startdate",
			"p.enddate",
		).
		From(fmt.Sprintf("%s AS a", dbmodels.TABLE_APPROVAL_VALIDATION_AUDIT)).
		LeftJoin(fmt.Sprintf("%s AS p ON p.periodid = a.periodid", dbmodels.TABLE_PERIOD)).
		Where(squirrel.Eq{"a.approvalvalidationruleid": ruleId}).
		OrderBy("a.approvalvalidationauditid")

	return SqlToListOfModels(ctx, exec, query, dbmodels.AdaptApprovalValidation)
}

// AuditSummaryOfRule streams, per organisation unit and period, the number of audits of a rule.
// Columns: organisation unit, period start, period end, audits.
func (repo *DbRepository) AuditSummaryOfRule(
	ctx context.Context,
	exec Executor,
	ruleId int64,
	fn func(rows pgx.Rows) error,
) error {
	if err := validateExecutor(exec); err != nil {
		return err
	}

	query := NewQueryBuilder().
		Select(
			"o.name AS organisationunit",
			"p.startdate",
			"p.enddate",
			"COUNT(*) AS audits",
		).
		From(fmt.Sprintf("%s AS a", dbmodels.TABLE_APPROVAL_VALIDATION_AUDIT)).
		Join(fmt.Sprintf("%s AS o ON o.organisationunitid = a.organisationunitid", dbmodels.TABLE_ORGANISATION_UNIT)).
		Join(fmt.Sprintf("%s AS p ON p.periodid = a.periodid", dbmodels.TABLE_PERIOD)).
		Where(squirrel.Eq{"a.approvalvalidationruleid": ruleId}).
		GroupBy("o.name", "p.startdate", "p.enddate").
		OrderBy("o.name", "p.startdate")

	return ForEachRow(ctx, exec, query, fn)
}
