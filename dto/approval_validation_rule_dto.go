package dto

import (
	"time"

	"github.com/guregu/null/v5"

	"github.com/dhis2/approval-backend/models"
	"github.com/dhis2/approval-backend/pure_utils"
)

type APIApprovalValidationRule struct {
	Id          int64       `json:"id"`
	Uid         string      `json:"uid"`
	Code        null.String `json:"code"`
	Name        string      `json:"name"`
	Description null.String `json:"description"`
	PeriodType  string      `json:"period_type"`
	DataSetIds  []int64     `json:"data_set_ids"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

func AdaptApprovalValidationRuleDto(rule models.ApprovalValidationRule) APIApprovalValidationRule {
	dataSetIds := rule.DataSetIds
	if dataSetIds == nil {
		dataSetIds = []int64{}
	}
	return APIApprovalValidationRule{
		Id:          rule.Id,
		Uid:         rule.Uid,
		Code:        rule.Code,
		Name:        rule.Name,
		Description: rule.Description,
		PeriodType:  rule.PeriodType.String(),
		DataSetIds:  dataSetIds,
		CreatedAt:   rule.CreatedAt,
		UpdatedAt:   rule.UpdatedAt,
	}
}

type CreateApprovalValidationRuleBody struct {
	Code        null.String `json:"code"`
	Name        string      `json:"name" binding:"required,max=230"`
	Description null.String `json:"description"`
	PeriodType  string      `json:"period_type" binding:"required,oneof=Daily Weekly Monthly Quarterly SixMonthly Yearly"`
	DataSetIds  []int64     `json:"data_set_ids" binding:"dive,gt=0"`
}

func AdaptCreateApprovalValidationRuleInput(body CreateApprovalValidationRuleBody) models.CreateApprovalValidationRuleInput {
	return models.CreateApprovalValidationRuleInput{
		Code:        body.Code,
		Name:        body.Name,
		Description: body.Description,
		PeriodType:  models.PeriodTypeFromString(body.PeriodType),
		DataSetIds:  pure_utils.Distinct(body.DataSetIds),
	}
}

// UpdateApprovalValidationRuleBody only changes the fields present in the payload. An empty code or
// description clears it.
type UpdateApprovalValidationRuleBody struct {
	Code        null.String `json:"code"`
	Name        null.String `json:"name"`
	Description null.String `json:"description"`
	PeriodType  null.String `json:"period_type"`
	DataSetIds  *[]int64    `json:"data_set_ids" binding:"omitempty,dive,gt=0"`
}

func AdaptUpdateApprovalValidationRuleInput(body UpdateApprovalValidationRuleBody) models.UpdateApprovalValidationRuleInput {
	var input models.UpdateApprovalValidationRuleInput
	if body.Code.Valid {
		code := null.NewString(body.Code.String, body.Code.String != "")
		input.Code = &code
	}
	if body.Name.Valid {
		input.Name = &body.Name.String
	}
	if body.Description.Valid {
		description := null.NewString(body.Description.String, body.Description.String != "")
		input.Description = &description
	}
	if body.PeriodType.Valid {
		periodType := models.PeriodTypeFromString(body.PeriodType.String)
		input.PeriodType = &periodType
	}
	if body.DataSetIds != nil {
		dataSetIds := pure_utils.Distinct(*body.DataSetIds)
		input.DataSetIds = &dataSetIds
	}
	return input
}

type ApprovalValidationRuleFilterQuery struct {
	Name          string `form:"name"`
	NameMatch     string `form:"name_match" binding:"omitempty,oneof=eq any sl li el"`
	CaseSensitive bool   `form:"case_sensitive"`
}

func AdaptApprovalValidationRuleFilter(query ApprovalValidationRuleFilterQuery) models.ApprovalValidationRuleFilter {
	return models.ApprovalValidationRuleFilter{
		Name:          query.Name,
		NameMatch:     models.StringSearchModeFromCode(query.NameMatch),
		CaseSensitive: query.CaseSensitive,
	}
}

type APIPeriod struct {
	Id         int64     `json:"id"`
	PeriodType string    `json:"period_type"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	Name       string    `json:"name"`
}

func AdaptPeriodDto(period models.Period) APIPeriod {
	return APIPeriod{
		Id:         period.Id,
		PeriodType: period.PeriodType.String(),
		StartDate:  period.StartDate,
		EndDate:    period.EndDate,
		Name:       period.DisplayName(),
	}
}

type APIApprovalValidation struct {
	RuleId                 int64      `json:"rule_id"`
	Period                 *APIPeriod `json:"period"`
	OrganisationUnitId     int64      `json:"organisation_unit_id"`
	DataSetId              int64      `json:"data_set_id"`
	AttributeOptionComboId int64      `json:"attribute_option_combo_id"`
}

func AdaptApprovalValidationDto(validation models.ApprovalValidation) APIApprovalValidation {
	var period *APIPeriod
	if validation.Period != nil {
		period = pure_utils.Ptr(AdaptPeriodDto(*validation.Period))
	}
	return APIApprovalValidation{
		RuleId:                 validation.Rule.Id,
		Period:                 period,
		OrganisationUnitId:     validation.OrganisationUnitId,
		DataSetId:              validation.DataSetId,
		AttributeOptionComboId: validation.AttributeOptionComboId,
	}
}

type CreateApprovalValidationAuditBody struct {
	DataSetId              int64  `json:"data_set_id" binding:"required,gt=0"`
	PeriodId               int64  `json:"period_id" binding:"required,gt=0"`
	OrganisationUnitId     int64  `json:"organisation_unit_id" binding:"required,gt=0"`
	AttributeOptionComboId int64  `json:"attribute_option_combo_id" binding:"required,gt=0"`
	AuditType              string `json:"audit_type" binding:"required,max=100"`
	CreatedBy              string `json:"created_by" binding:"max=255"`
}

func AdaptApprovalValidationAuditInput(ruleId int64, body CreateApprovalValidationAuditBody) models.ApprovalValidationAudit {
	return models.ApprovalValidationAudit{
		ApprovalValidationRuleId: ruleId,
		DataSetId:                body.DataSetId,
		PeriodId:                 body.PeriodId,
		OrganisationUnitId:       body.OrganisationUnitId,
		AttributeOptionComboId:   body.AttributeOptionComboId,
		AuditType:                body.AuditType,
		CreatedBy:                body.CreatedBy,
	}
}

type APIApprovalValidationAudit struct {
	Id                     int64  `json:"id"`
	RuleId                 int64  `json:"rule_id"`
	DataSetId              int64  `json:"data_set_id"`
	PeriodId               int64  `json:"period_id"`
	OrganisationUnitId     int64  `json:"organisation_unit_id"`
	AttributeOptionComboId int64  `json:"attribute_option_combo_id"`
	AuditType              string `json:"audit_type"`
	CreatedBy              string `json:"created_by"`
}

func AdaptApprovalValidationAuditDto(audit models.ApprovalValidationAudit) APIApprovalValidationAudit {
	return APIApprovalValidationAudit{
		Id:                     audit.Id,
		RuleId:                 audit.ApprovalValidationRuleId,
		DataSetId:              audit.DataSetId,
		PeriodId:               audit.PeriodId,
		OrganisationUnitId:     audit.OrganisationUnitId,
		AttributeOptionComboId: audit.AttributeOptionComboId,
		AuditType:              audit.AuditType,
		CreatedBy:              audit.CreatedBy,
	}
}
