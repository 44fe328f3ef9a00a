package api

import (
	"net/http"
	"time"

	limits "github.com/gin-contrib/size"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	timeout "github.com/vearne/gin-timeout"

	"github.com/dhis2/approval-backend/usecases"
)

const maxHtmlDocumentSize = 10 * 1024 * 1024 // 10MB

func timeoutMiddleware(duration time.Duration) gin.HandlerFunc {
	return timeout.Timeout(
		timeout.WithTimeout(duration),
		timeout.WithErrorHttpCode(http.StatusRequestTimeout),
		timeout.WithDefaultMsg("Request timeout"),
	)
}

func addRoutes(r *gin.Engine, conf Configuration, uc usecases.Usecases) {
	r.GET("/liveness", handleLivenessProbe(uc))
	if conf.EnablePrometheus {
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	router := r.Group("/", timeoutMiddleware(conf.DefaultTimeout))

	router.GET("/approval-validation-rules", handleListApprovalValidationRules(uc))
	router.POST("/approval-validation-rules", handlePostApprovalValidationRule(uc))
	router.GET("/approval-validation-rules/by-uid/:uid", handleGetApprovalValidationRuleByUid(uc))
	router.GET("/approval-validation-rules/:rule_id", handleGetApprovalValidationRule(uc))
	router.PATCH("/approval-validation-rules/:rule_id", handlePatchApprovalValidationRule(uc))
	router.DELETE("/approval-validation-rules/:rule_id", handleDeleteApprovalValidationRule(uc))
	router.GET("/approval-validation-rules/:rule_id/validations", handleListApprovalValidations(uc))
	router.POST("/approval-validation-rules/:rule_id/audits", handlePostApprovalValidationAudit(uc))

	reports := r.Group("/", timeoutMiddleware(conf.ExportTimeout))
	reports.GET("/approval-validation-rules/export", handleRenderApprovalValidationRules(uc))
	reports.POST("/approval-validation-rules/export", handleExportApprovalValidationRules(uc))
	reports.GET("/approval-validation-rules/:rule_id/validations/export", handleRenderApprovalValidations(uc))
	reports.GET("/approval-validation-rules/:rule_id/approval-form", handleRenderApprovalForm(uc))
	reports.GET("/reports/*file_name", handleGetExportedReport(uc))
	reports.POST("/grids/from-html", limits.RequestSizeLimiter(maxHtmlDocumentSize), handleGridsFromHtml(uc))

	router.GET("/deletion-checks", handleDeletionCheck(uc))
}
