package dbmodels

import (
	"github.com/guregu/null/v5"

	"github.com/dhis2/approval-backend/models"
)

const TABLE_APPROVAL_VALIDATION_AUDIT = "approvalvalidationaudit"

// Columns of the audit table that reference another object.
const (
	AuditColumnApprovalValidationRule = "approvalvalidationruleid"
	AuditColumnDataSet                = "datasetid"
	AuditColumnPeriod                 = "periodid"
	AuditColumnOrganisationUnit       = "organisationunitid"
	AuditColumnAttributeOptionCombo   = "attributeoptioncomboid"
)

var AuditReferenceColumns = []string{
	AuditColumnApprovalValidationRule,
	AuditColumnDataSet,
	AuditColumnPeriod,
	AuditColumnOrganisationUnit,
	AuditColumnAttributeOptionCombo,
}

type DBApprovalValidation struct {
	RuleId                 int64       `db:"approvalvalidationruleid"`
	DataSetId              int64       `db:"datasetid"`
	OrganisationUnitId     int64       `db:"organisationunitid"`
	AttributeOptionComboId int64       `db:"attributeoptioncomboid"`
	PeriodId               null.Int    `db:"periodid"`
	PeriodType             null.String `db:"periodtype"`
	StartDate              null.Time   `db:"startdate"`
	EndDate                null.Time   `db:"enddate"`
}

func AdaptApprovalValidation(db DBApprovalValidation) (models.ApprovalValidation, error) {
	validation := models.ApprovalValidation{
		Rule:                   models.ApprovalValidationRule{Id: db.RuleId},
		OrganisationUnitId:     db.OrganisationUnitId,
		DataSetId:              db.DataSetId,
		AttributeOptionComboId: db.AttributeOptionComboId,
	}
	if db.PeriodId.Valid {
		validation.Period = &models.Period{
			Id:         db.PeriodId.Int64,
			PeriodType: models.PeriodTypeFromString(db.PeriodType.String),
			StartDate:  db.StartDate.Time,
			EndDate:    db.EndDate.Time,
		}
	}
	return validation, nil
}
