package usecases

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/errgroup"

	"github.com/dhis2/approval-backend/models"
	"github.com/dhis2/approval-backend/pure_utils"
	"github.com/dhis2/approval-backend/repositories"
	"github.com/dhis2/approval-backend/usecases/executor_factory"
	"github.com/dhis2/approval-backend/usecases/grid_export"
	"github.com/dhis2/approval-backend/utils"
)

const reportFolder = "approval-validation-rules"

type ReportRepository interface {
	GetApprovalValidationRuleById(ctx context.Context, exec repositories.Executor, id int64) (models.ApprovalValidationRule, error)
	ListApprovalValidationRules(ctx context.Context, exec repositories.Executor,
		filter models.ApprovalValidationRuleFilter) ([]models.ApprovalValidationRule, error)
	ListApprovalValidationsOfRule(ctx context.Context, exec repositories.Executor, ruleId int64) ([]models.ApprovalValidation, error)
	AuditSummaryOfRule(ctx context.Context, exec repositories.Executor, ruleId int64, fn func(rows pgx.Rows) error) error
	GetPeriodById(ctx context.Context, exec repositories.Executor, id int64) (models.Period, error)
	GetOrganisationUnitById(ctx context.Context, exec repositories.Executor, id int64) (models.OrganisationUnit, error)
}

type ReportBlobRepository interface {
	PutBlob(ctx context.Context, bucketUrl, fileName, contentType string, content io.Reader) (int64, error)
	GetBlob(ctx context.Context, bucketUrl, fileName string) (models.Blob, error)
}

type ReportUsecase struct {
	executorFactory    executor_factory.ExecutorFactory
	repository         ReportRepository
	blobRepository     ReportBlobRepository
	bucketUrl          string
	signatureLineCount int
}

func NewReportUsecase(
	executorFactory executor_factory.ExecutorFactory,
	repository ReportRepository,
	blobRepository ReportBlobRepository,
	bucketUrl string,
	signatureLineCount int,
) ReportUsecase {
	return ReportUsecase{
		executorFactory:    executorFactory,
		repository:         repository,
		blobRepository:     blobRepository,
		bucketUrl:          bucketUrl,
		signatureLineCount: signatureLineCount,
	}
}

// ApprovalValidationRulesGrid lists the rules matching the filter, one row per rule.
func (usecase ReportUsecase) ApprovalValidationRulesGrid(
	ctx context.Context,
	filter models.ApprovalValidationRuleFilter,
) (*models.Grid, error) {
	rules, err := usecase.repository.ListApprovalValidationRules(ctx, usecase.executorFactory.NewExecutor(), filter)
	if err != nil {
		return nil, err
	}

	grid := models.NewGrid()
	grid.Title = "Approval validation rules"
	grid.AddHeader(models.NewGridHeader("Id", true, false)).
		AddHeader(models.NewGridHeader("Uid", false, false)).
		AddHeader(models.NewGridHeader("Name", false, false)).
		AddHeader(models.NewGridHeader("Code", false, false)).
		AddHeader(models.NewGridHeader("Period type", false, true)).
		AddHeader(models.NewGridHeader("Data sets", false, false))

	for _, rule := range rules {
		var code any
		if rule.Code.Valid {
			code = rule.Code.String
		}
		grid.AddRow().AddValues(
			rule.Id,
			rule.Uid,
			rule.Name,
			code,
			rule.PeriodType.String(),
			strings.Join(pure_utils.Map(rule.DataSetIds, func(id int64) string {
				return strconv.FormatInt(id, 10)
			}), ", "),
		)
	}
	return grid, nil
}

// ApprovalValidationsGrid lists the validation results of a rule, sorted by period.
func (usecase ReportUsecase) ApprovalValidationsGrid(ctx context.Context, ruleId int64) (*models.Grid, error) {
	exec := usecase.executorFactory.NewExecutor()
	rule, err := usecase.repository.GetApprovalValidationRuleById(ctx, exec, ruleId)
	if err != nil {
		return nil, err
	}
	validations, err := usecase.repository.ListApprovalValidationsOfRule(ctx, exec, ruleId)
	if err != nil {
		return nil, err
	}
	models.SortApprovalValidations(validations)

	grid := models.NewGrid()
	grid.Title = rule.Name
	grid.Subtitle = rule.PeriodType.String()
	grid.AddHeader(models.NewGridHeader("Period", false, true)).
		AddHeader(models.NewGridHeader("Organisation unit", false, true)).
		AddHeader(models.NewGridHeader("Data set", false, false)).
		AddHeader(models.NewGridHeader("Attribute option combo", false, false))

	for _, validation := range validations {
		var period any
		if validation.Period != nil {
			period = validation.Period.DisplayName()
		}
		grid.AddRow().AddValues(
			period,
			validation.OrganisationUnitId,
			validation.DataSetId,
			validation.AttributeOptionComboId,
		)
	}
	return grid, nil
}

// AuditSummaryGrid counts the audits of a rule per organisation unit and period.
func (usecase ReportUsecase) AuditSummaryGrid(ctx context.Context, ruleId int64) (*models.Grid, error) {
	exec := usecase.executorFactory.NewExecutor()
	rule, err := usecase.repository.GetApprovalValidationRuleById(ctx, exec, ruleId)
	if err != nil {
		return nil, err
	}

	grid := models.NewGrid()
	grid.Title = rule.Name + " audits"
	grid.AddHeader(models.NewGridHeader("Organisation unit", false, true)).
		AddHeader(models.NewGridHeader("Start date", false, true)).
		AddHeader(models.NewGridHeader("End date", false, false)).
		AddHeader(models.NewGridHeader("Audits", false, false))

	err = usecase.repository.AuditSummaryOfRule(ctx, exec, ruleId, func(rows pgx.Rows) error {
		return grid_export.AddRows(grid, rows)
	})
	if err != nil {
		return nil, err
	}
	return grid, nil
}

func (usecase ReportUsecase) RenderApprovalValidationRules(
	ctx context.Context,
	filter models.ApprovalValidationRuleFilter,
	format grid_export.Format,
	w io.Writer,
) error {
	grid, err := usecase.ApprovalValidationRulesGrid(ctx, filter)
	if err != nil {
		return err
	}
	return grid_export.Render(ctx, grid, format, w)
}

func (usecase ReportUsecase) RenderApprovalValidations(
	ctx context.Context,
	ruleId int64,
	format grid_export.Format,
	w io.Writer,
) error {
	grid, err := usecase.ApprovalValidationsGrid(ctx, ruleId)
	if err != nil {
		return err
	}
	return grid_export.Render(ctx, grid, format, w)
}

// RenderApprovalForm writes the printable sign-off form of a rule: its validations, the audit
// summary and the configured number of signature blocks.
func (usecase ReportUsecase) RenderApprovalForm(ctx context.Context, ruleId int64, w io.Writer) error {
	var validations, audits *models.Grid

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		validations, err = usecase.ApprovalValidationsGrid(ctx, ruleId)
		return err
	})
	group.Go(func() error {
		var err error
		audits, err = usecase.AuditSummaryGrid(ctx, ruleId)
		return err
	})
	if err := group.Wait(); err != nil {
		return err
	}

	return grid_export.ToPdfCustom([]*models.Grid{validations, audits}, w, usecase.signatureLineCount)
}

// ExportApprovalValidationRules renders the rules and uploads the report to the report bucket.
func (usecase ReportUsecase) ExportApprovalValidationRules(
	ctx context.Context,
	filter models.ApprovalValidationRuleFilter,
	format grid_export.Format,
) (models.ReportExport, error) {
	if usecase.bucketUrl == "" {
		return models.ReportExport{}, models.ErrNoReportBucket
	}

	var buffer bytes.Buffer
	if err := usecase.RenderApprovalValidationRules(ctx, filter, format, &buffer); err != nil {
		return models.ReportExport{}, err
	}

	fileName := fmt.Sprintf("%s/%s.%s", reportFolder, uuid.NewString(), format.Extension())
	size, err := usecase.blobRepository.PutBlob(ctx, usecase.bucketUrl, fileName, format.ContentType(), &buffer)
	if err != nil {
		return models.ReportExport{}, errors.Wrap(err, "error uploading report")
	}

	utils.LoggerFromContext(ctx).InfoContext(ctx, "Exported approval validation rules",
		"bucket", usecase.bucketUrl, "file", fileName, "size", size)

	return models.ReportExport{
		BucketUrl:   usecase.bucketUrl,
		FileName:    fileName,
		ContentType: format.ContentType(),
		Size:        size,
	}, nil
}

// GetExportedReport reads back a report uploaded by ExportApprovalValidationRules.
func (usecase ReportUsecase) GetExportedReport(ctx context.Context, fileName string) (models.Blob, error) {
	if usecase.bucketUrl == "" {
		return models.Blob{}, models.ErrNoReportBucket
	}
	if !strings.HasPrefix(fileName, reportFolder+"/") || strings.Contains(fileName, "..") {
		return models.Blob{}, errors.Wrapf(models.NotFoundError, "no report named %s", fileName)
	}
	return usecase.blobRepository.GetBlob(ctx, usecase.bucketUrl, fileName)
}

// GridsFromHtml parses the tables of an html document, with the period and organisation unit
// naming the grid subtitles.
func (usecase ReportUsecase) GridsFromHtml(ctx context.Context, input models.GridFromHtmlInput) ([]*models.Grid, error) {
	exec := usecase.executorFactory.NewExecutor()
	period, err := usecase.repository.GetPeriodById(ctx, exec, input.PeriodId)
	if err != nil {
		return nil, err
	}
	unit, err := usecase.repository.GetOrganisationUnitById(ctx, exec, input.OrganisationUnitId)
	if err != nil {
		return nil, err
	}
	return grid_export.FromHtml(ctx, input.Html, input.Title, period, unit)
}
