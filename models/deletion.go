package models

import "strings"

type DeletableKind string

const (
	DeletableDataSet                DeletableKind = "dataSet"
	DeletableApprovalValidationRule DeletableKind = "approvalValidationRule"
	DeletablePeriod                 DeletableKind = "period"
	DeletableOrganisationUnit       DeletableKind = "organisationUnit"
	DeletableCategoryOptionCombo    DeletableKind = "categoryOptionCombo"
	DeletableUnknown                DeletableKind = ""
)

var deletableKinds = []DeletableKind{
	DeletableDataSet,
	DeletableApprovalValidationRule,
	DeletablePeriod,
	DeletableOrganisationUnit,
	DeletableCategoryOptionCombo,
}

func DeletableKindFromString(s string) DeletableKind {
	for _, kind := range deletableKinds {
		if strings.EqualFold(string(kind), s) {
			return kind
		}
	}
	return DeletableUnknown
}

// DeletableObject identifies an object that is about to be deleted.
type DeletableObject struct {
	Kind DeletableKind
	Id   int64
}

type DeletionVeto struct {
	Handler string
	Message string
}

type DeletionCheck struct {
	Object DeletableObject
	Vetoes []DeletionVeto
}

func (c DeletionCheck) Allowed() bool {
	return len(c.Vetoes) == 0
}
