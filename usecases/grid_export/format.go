package grid_export

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/dhis2/approval-backend/models"
	"github.com/dhis2/approval-backend/utils"
)

type Format string

const (
	FormatPdf           Format = "pdf"
	FormatXls           Format = "xls"
	FormatCsv           Format = "csv"
	FormatHtml          Format = "html"
	FormatHtmlCss       Format = "html+css"
	FormatHtmlInlineCss Format = "html-inline-css"
	FormatXml           Format = "xml"
	FormatJrxml         Format = "jrxml"
)

type formatDescription struct {
	contentType string
	extension   string
}

var formats = map[Format]formatDescription{
	FormatPdf:           {"application/pdf", "pdf"},
	FormatXls:           {"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "xlsx"},
	FormatCsv:           {"text/csv; charset=utf-8", "csv"},
	FormatHtml:          {"text/html; charset=utf-8", "html"},
	FormatHtmlCss:       {"text/html; charset=utf-8", "html"},
	FormatHtmlInlineCss: {"text/html; charset=utf-8", "html"},
	FormatXml:           {"application/xml; charset=utf-8", "xml"},
	FormatJrxml:         {"application/xml; charset=utf-8", "jrxml"},
}

func FormatFromString(s string) (Format, error) {
	format := Format(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := formats[format]; !ok {
		return "", errors.Wrapf(models.ErrUnknownGridFormat, "'%s'", s)
	}
	return format, nil
}

func (f Format) ContentType() string {
	return formats[f].contentType
}

func (f Format) Extension() string {
	return formats[f].extension
}

// Render writes the grid in the given format.
func Render(ctx context.Context, grid *models.Grid, format Format, w io.Writer) error {
	start := time.Now()

	var err error
	switch format {
	case FormatPdf:
		err = ToPdf(grid, w)
	case FormatXls:
		err = ToXls(ctx, grid, w)
	case FormatCsv:
		err = ToCsv(grid, w)
	case FormatHtml:
		err = ToHtml(grid, w)
	case FormatHtmlCss:
		err = ToHtmlCss(grid, w)
	case FormatHtmlInlineCss:
		err = ToHtmlInlineCss(grid, w)
	case FormatXml:
		err = ToXml(grid, w)
	case FormatJrxml:
		err = ToJrxml(grid, nil, w)
	default:
		return errors.Wrapf(models.ErrUnknownGridFormat, "'%s'", format)
	}
	if err != nil {
		return err
	}

	utils.MetricGridRendered.WithLabelValues(string(format)).Inc()
	utils.MetricGridRenderLatency.WithLabelValues(string(format)).Observe(time.Since(start).Seconds())
	return nil
}
