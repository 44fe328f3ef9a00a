package dbmodels

import (
	"time"

	"github.com/guregu/null/v5"

	"github.com/dhis2/approval-backend/models"
	"github.com/dhis2/approval-backend/utils"
)

const (
	TABLE_APPROVAL_VALIDATION_RULE          = "approvalvalidationrule"
	TABLE_APPROVAL_VALIDATION_RULE_DATASETS = "approvalvalidationruledatasets"
)

const (
	UNIQUE_APPROVAL_VALIDATION_RULE_CODE = "approvalvalidationrule_code_key"
	UNIQUE_APPROVAL_VALIDATION_RULE_NAME = "approvalvalidationrule_name_key"
)

type DBApprovalValidationRule struct {
	Id          int64       `db:"approvalvalidationruleid"`
	Uid         string      `db:"uid"`
	Code        null.String `db:"code"`
	Name        string      `db:"name"`
	Description null.String `db:"description"`
	PeriodType  string      `db:"periodtype"`
	CreatedAt   time.Time   `db:"created"`
	UpdatedAt   time.Time   `db:"lastupdated"`
}

type DBApprovalValidationRuleWithDataSets struct {
	DBApprovalValidationRule
	DataSetIds []int64 `db:"datasetids"`
}

var SelectApprovalValidationRuleColumn = utils.ColumnList[DBApprovalValidationRule]()

func AdaptApprovalValidationRule(db DBApprovalValidationRuleWithDataSets) (models.ApprovalValidationRule, error) {
	dataSetIds := db.DataSetIds
	if dataSetIds == nil {
		dataSetIds = []int64{}
	}
	return models.ApprovalValidationRule{
		Id:          db.Id,
		Uid:         db.Uid,
		Code:        db.Code,
		Name:        db.Name,
		Description: db.Description,
		PeriodType:  models.PeriodTypeFromString(db.PeriodType),
		DataSetIds:  dataSetIds,
		CreatedAt:   db.CreatedAt,
		UpdatedAt:   db.UpdatedAt,
	}, nil
}
