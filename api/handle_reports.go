package api

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dhis2/approval-backend/dto"
	"github.com/dhis2/approval-backend/pure_utils"
	"github.com/dhis2/approval-backend/usecases"
	"github.com/dhis2/approval-backend/usecases/grid_export"
)

// reportFormat reads the format query parameter, csv being the default.
func reportFormat(c *gin.Context) (grid_export.Format, error) {
	var query dto.ReportFormatQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		return "", bindingError(err)
	}
	if query.Format == "" {
		return grid_export.FormatCsv, nil
	}
	return grid_export.FormatFromString(query.Format)
}

func serveReport(c *gin.Context, format grid_export.Format, name string, content *bytes.Buffer) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.%s\"", name, format.Extension()))
	c.Data(http.StatusOK, format.ContentType(), content.Bytes())
}

func handleRenderApprovalValidationRules(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		format, err := reportFormat(c)
		if presentError(ctx, c, err) {
			return
		}
		var query dto.ApprovalValidationRuleFilterQuery
		if err := c.ShouldBindQuery(&query); presentError(ctx, c, bindingError(err)) {
			return
		}

		var buffer bytes.Buffer
		usecase := uc.NewReportUsecase()
		err = usecase.RenderApprovalValidationRules(ctx, dto.AdaptApprovalValidationRuleFilter(query), format, &buffer)
		if presentError(ctx, c, err) {
			return
		}

		serveReport(c, format, "approval-validation-rules", &buffer)
	}
}

func handleExportApprovalValidationRules(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		format, err := reportFormat(c)
		if presentError(ctx, c, err) {
			return
		}
		var query dto.ApprovalValidationRuleFilterQuery
		if err := c.ShouldBindQuery(&query); presentError(ctx, c, bindingError(err)) {
			return
		}

		usecase := uc.NewReportUsecase()
		export, err := usecase.ExportApprovalValidationRules(ctx, dto.AdaptApprovalValidationRuleFilter(query), format)
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusCreated, gin.H{"report": dto.AdaptReportExportDto(export)})
	}
}

func handleRenderApprovalValidations(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var uri RuleIdUriInput
		if err := c.ShouldBindUri(&uri); presentError(ctx, c, bindingError(err)) {
			return
		}
		format, err := reportFormat(c)
		if presentError(ctx, c, err) {
			return
		}

		var buffer bytes.Buffer
		usecase := uc.NewReportUsecase()
		if presentError(ctx, c, usecase.RenderApprovalValidations(ctx, uri.RuleId, format, &buffer)) {
			return
		}

		serveReport(c, format, fmt.Sprintf("approval-validations-%d", uri.RuleId), &buffer)
	}
}

func handleRenderApprovalForm(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var uri RuleIdUriInput
		if err := c.ShouldBindUri(&uri); presentError(ctx, c, bindingError(err)) {
			return
		}

		var buffer bytes.Buffer
		usecase := uc.NewReportUsecase()
		if presentError(ctx, c, usecase.RenderApprovalForm(ctx, uri.RuleId, &buffer)) {
			return
		}

		serveReport(c, grid_export.FormatPdf, fmt.Sprintf("approval-form-%d", uri.RuleId), &buffer)
	}
}

func handleGetExportedReport(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		fileName := strings.TrimPrefix(c.Param("file_name"), "/")

		usecase := uc.NewReportUsecase()
		blob, err := usecase.GetExportedReport(ctx, fileName)
		if presentError(ctx, c, err) {
			return
		}
		defer blob.ReadCloser.Close()

		fileParts := strings.Split(blob.FileName, "/")
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", fileParts[len(fileParts)-1]))
		c.DataFromReader(http.StatusOK, blob.Size, blob.ContentType, io.Reader(blob.ReadCloser), nil)
	}
}

func handleGridsFromHtml(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var body dto.GridFromHtmlBody
		if err := c.ShouldBindJSON(&body); presentError(ctx, c, bindingError(err)) {
			return
		}

		usecase := uc.NewReportUsecase()
		grids, err := usecase.GridsFromHtml(ctx, dto.AdaptGridFromHtmlInput(body))
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, gin.H{"grids": pure_utils.Map(grids, dto.AdaptGridDto)})
	}
}
