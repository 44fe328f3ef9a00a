package dto

import (
	"github.com/dhis2/approval-backend/models"
	"github.com/dhis2/approval-backend/pure_utils"
)

type APIGridHeader struct {
	Name   string `json:"name"`
	Column string `json:"column"`
	Type   string `json:"type"`
	Hidden bool   `json:"hidden"`
	Meta   bool   `json:"meta"`
}

type APIGrid struct {
	Title    string          `json:"title"`
	Subtitle string          `json:"subtitle,omitempty"`
	Width    int             `json:"width"`
	Height   int             `json:"height"`
	Headers  []APIGridHeader `json:"headers"`
	Rows     [][]any         `json:"rows"`
}

func AdaptGridDto(grid *models.Grid) APIGrid {
	rows := grid.Rows
	if rows == nil {
		rows = [][]any{}
	}
	return APIGrid{
		Title:    grid.Title,
		Subtitle: grid.Subtitle,
		Width:    grid.Width(),
		Height:   grid.Height(),
		Headers: pure_utils.Map(grid.Headers, func(header models.GridHeader) APIGridHeader {
			return APIGridHeader(header)
		}),
		Rows: rows,
	}
}

type GridFromHtmlBody struct {
	Html               string `json:"html" binding:"required"`
	Title              string `json:"title"`
	PeriodId           int64  `json:"period_id" binding:"required,gt=0"`
	OrganisationUnitId int64  `json:"organisation_unit_id" binding:"required,gt=0"`
}

func AdaptGridFromHtmlInput(body GridFromHtmlBody) models.GridFromHtmlInput {
	return models.GridFromHtmlInput{
		Html:               body.Html,
		Title:              body.Title,
		PeriodId:           body.PeriodId,
		OrganisationUnitId: body.OrganisationUnitId,
	}
}

type APIReportExport struct {
	BucketUrl   string `json:"bucket_url"`
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

func AdaptReportExportDto(export models.ReportExport) APIReportExport {
	return APIReportExport(export)
}

// ReportFormatQuery is matched case insensitively against the known grid formats.
type ReportFormatQuery struct {
	Format string `form:"format"`
}
