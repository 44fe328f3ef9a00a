package models

import (
	"slices"
	"time"

	"github.com/guregu/null/v5"
)

type ApprovalValidationRule struct {
	Id          int64
	Uid         string
	Code        null.String
	Name        string
	Description null.String
	PeriodType  PeriodType
	DataSetIds  []int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type CreateApprovalValidationRuleInput struct {
	Code        null.String
	Name        string
	Description null.String
	PeriodType  PeriodType
	DataSetIds  []int64
}

// UpdateApprovalValidationRuleInput only changes the fields that are set.
type UpdateApprovalValidationRuleInput struct {
	Code        *null.String
	Name        *string
	Description *null.String
	PeriodType  *PeriodType
	DataSetIds  *[]int64
}

type ApprovalValidationRuleFilter struct {
	Name          string
	NameMatch     StringSearchMode
	CaseSensitive bool
}

// StringSearchMode tells how a text filter is compared to a column.
type StringSearchMode int

const (
	// Match exactly
	StringSearchEquals StringSearchMode = iota
	// Like search with '%' prefix and suffix
	StringSearchAnywhere
	// Like search and add a '%' suffix before searching
	StringSearchStartingLike
	// User provides the wildcard
	StringSearchLike
	// Like search and add a '%' prefix before searching
	StringSearchEndingLike
)

var stringSearchModeCodes = map[StringSearchMode]string{
	StringSearchEquals:       "eq",
	StringSearchAnywhere:     "any",
	StringSearchStartingLike: "sl",
	StringSearchLike:         "li",
	StringSearchEndingLike:   "el",
}

func (m StringSearchMode) Code() string {
	return stringSearchModeCodes[m]
}

// StringSearchModeFromCode falls back to StringSearchEquals for unknown codes.
func StringSearchModeFromCode(code string) StringSearchMode {
	for mode, c := range stringSearchModeCodes {
		if c == code {
			return mode
		}
	}
	return StringSearchEquals
}

// ApprovalValidation is the outcome of a rule for one period, organisation unit and attribute option combo.
type ApprovalValidation struct {
	Rule                   ApprovalValidationRule
	Period                 *Period
	OrganisationUnitId     int64
	DataSetId              int64
	AttributeOptionComboId int64
}

// CompareApprovalValidations orders by period start date, validations without a period come last.
func CompareApprovalValidations(a, b ApprovalValidation) int {
	switch {
	case a.Period == nil && b.Period == nil:
		return 0
	case a.Period == nil:
		return 1
	case b.Period == nil:
		return -1
	}
	return a.Period.StartDate.Compare(b.Period.StartDate)
}

func SortApprovalValidations(validations []ApprovalValidation) {
	slices.SortStableFunc(validations, CompareApprovalValidations)
}

type ApprovalValidationAudit struct {
	Id                       int64
	ApprovalValidationRuleId int64
	DataSetId                int64
	PeriodId                 int64
	OrganisationUnitId       int64
	AttributeOptionComboId   int64
	AuditType                string
	CreatedBy                string
	CreatedAt                time.Time
}
