package dto

import (
	"github.com/dhis2/approval-backend/models"
	"github.com/dhis2/approval-backend/pure_utils"
)

type DeletionCheckQuery struct {
	Kind string `form:"kind" binding:"required"`
	Id   int64  `form:"id" binding:"required,gt=0"`
}

type APIDeletionVeto struct {
	Handler string `json:"handler"`
	Message string `json:"message"`
}

type APIDeletionCheck struct {
	Kind    string            `json:"kind"`
	Id      int64             `json:"id"`
	Allowed bool              `json:"allowed"`
	Vetoes  []APIDeletionVeto `json:"vetoes"`
}

func AdaptDeletionCheckDto(check models.DeletionCheck) APIDeletionCheck {
	return APIDeletionCheck{
		Kind:    string(check.Object.Kind),
		Id:      check.Object.Id,
		Allowed: check.Allowed(),
		Vetoes: pure_utils.Map(check.Vetoes, func(veto models.DeletionVeto) APIDeletionVeto {
			return APIDeletionVeto(veto)
		}),
	}
}
