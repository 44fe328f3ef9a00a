package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dhis2/approval-backend/dto"
	"github.com/dhis2/approval-backend/pure_utils"
	"github.com/dhis2/approval-backend/usecases"
)

type RuleIdUriInput struct {
	RuleId int64 `uri:"rule_id" binding:"required,gt=0"`
}

type RuleUidUriInput struct {
	Uid string `uri:"uid" binding:"required,uid"`
}

func handleListApprovalValidationRules(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var query dto.ApprovalValidationRuleFilterQuery
		if err := c.ShouldBindQuery(&query); presentError(ctx, c, bindingError(err)) {
			return
		}

		usecase := uc.NewApprovalValidationRuleUsecase()
		rules, err := usecase.GetAllApprovalValidationRules(ctx, dto.AdaptApprovalValidationRuleFilter(query))
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, gin.H{"approval_validation_rules": pure_utils.Map(rules, dto.AdaptApprovalValidationRuleDto)})
	}
}

func handlePostApprovalValidationRule(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var body dto.CreateApprovalValidationRuleBody
		if err := c.ShouldBindJSON(&body); presentError(ctx, c, bindingError(err)) {
			return
		}

		usecase := uc.NewApprovalValidationRuleUsecase()
		id, err := usecase.SaveApprovalValidationRule(ctx, dto.AdaptCreateApprovalValidationRuleInput(body))
		if presentError(ctx, c, err) {
			return
		}

		rule, err := usecase.GetApprovalValidationRule(ctx, id)
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusCreated, gin.H{"approval_validation_rule": dto.AdaptApprovalValidationRuleDto(rule)})
	}
}

func handleGetApprovalValidationRule(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var uri RuleIdUriInput
		if err := c.ShouldBindUri(&uri); presentError(ctx, c, bindingError(err)) {
			return
		}

		usecase := uc.NewApprovalValidationRuleUsecase()
		rule, err := usecase.GetApprovalValidationRule(ctx, uri.RuleId)
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, gin.H{"approval_validation_rule": dto.AdaptApprovalValidationRuleDto(rule)})
	}
}

func handleGetApprovalValidationRuleByUid(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var uri RuleUidUriInput
		if err := c.ShouldBindUri(&uri); presentError(ctx, c, bindingError(err)) {
			return
		}

		usecase := uc.NewApprovalValidationRuleUsecase()
		rule, err := usecase.GetApprovalValidationRuleByUid(ctx, uri.Uid)
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, gin.H{"approval_validation_rule": dto.AdaptApprovalValidationRuleDto(rule)})
	}
}

func handlePatchApprovalValidationRule(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var uri RuleIdUriInput
		if err := c.ShouldBindUri(&uri); presentError(ctx, c, bindingError(err)) {
			return
		}
		var body dto.UpdateApprovalValidationRuleBody
		if err := c.ShouldBindJSON(&body); presentError(ctx, c, bindingError(err)) {
			return
		}

		usecase := uc.NewApprovalValidationRuleUsecase()
		rule, err := usecase.UpdateApprovalValidationRule(ctx, uri.RuleId, dto.AdaptUpdateApprovalValidationRuleInput(body))
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, gin.H{"approval_validation_rule": dto.AdaptApprovalValidationRuleDto(rule)})
	}
}

func handleDeleteApprovalValidationRule(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var uri RuleIdUriInput
		if err := c.ShouldBindUri(&uri); presentError(ctx, c, bindingError(err)) {
			return
		}

		usecase := uc.NewApprovalValidationRuleUsecase()
		if presentError(ctx, c, usecase.DeleteApprovalValidationRule(ctx, uri.RuleId)) {
			return
		}

		c.Status(http.StatusNoContent)
	}
}

func handleListApprovalValidations(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var uri RuleIdUriInput
		if err := c.ShouldBindUri(&uri); presentError(ctx, c, bindingError(err)) {
			return
		}

		usecase := uc.NewApprovalValidationRuleUsecase()
		validations, err := usecase.ListApprovalValidations(ctx, uri.RuleId)
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, gin.H{"approval_validations": pure_utils.Map(validations, dto.AdaptApprovalValidationDto)})
	}
}

func handlePostApprovalValidationAudit(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var uri RuleIdUriInput
		if err := c.ShouldBindUri(&uri); presentError(ctx, c, bindingError(err)) {
			return
		}
		var body dto.CreateApprovalValidationAuditBody
		if err := c.ShouldBindJSON(&body); presentError(ctx, c, bindingError(err)) {
			return
		}

		usecase := uc.NewApprovalValidationRuleUsecase()
		audit, err := usecase.RecordApprovalValidationAudit(ctx, dto.AdaptApprovalValidationAuditInput(uri.RuleId, body))
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusCreated, gin.H{"approval_validation_audit": dto.AdaptApprovalValidationAuditDto(audit)})
	}
}
