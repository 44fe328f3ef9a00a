package grid_export

import (
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"
	"text/template"

	"github.com/cockroachdb/errors"

	"github.com/dhis2/approval-backend/models"
)

var jrxmlTemplate = template.Must(template.ParseFS(templatesFS, "templates/grid.jrxml"))

const (
	jrxmlMargin             = 20
	jrxmlPortraitWidth      = 595
	jrxmlPortraitHeight     = 842
	jrxmlLandscapeThreshold = 6
)

type jrxmlColumn struct {
	Field string
	Name  string
	X     int
	Width int
}

type jrxmlReport struct {
	Title       string
	Subtitle    string
	Generated   string
	Orientation string
	PageWidth   int
	PageHeight  int
	ColumnWidth int
	Margin      int
	TitleHeight int
	Parameters  []string
	Columns     []jrxmlColumn
}

func newJrxmlReport(grid *models.Grid, params map[string]any) jrxmlReport {
	report := jrxmlReport{
		Title:       grid.Title,
		Subtitle:    grid.Subtitle,
		Generated:   generatedText(),
		Orientation: "Portrait",
		PageWidth:   jrxmlPortraitWidth,
		PageHeight:  jrxmlPortraitHeight,
		Margin:      jrxmlMargin,
		TitleHeight: 35,
		Parameters:  slices.Sorted(maps.Keys(params)),
	}

	headers := grid.VisibleHeaders()
	if len(headers) > jrxmlLandscapeThreshold {
		report.Orientation = "Landscape"
		report.PageWidth, report.PageHeight = jrxmlPortraitHeight, jrxmlPortraitWidth
	}
	if grid.Subtitle != "" {
		report.TitleHeight = 55
	}
	report.ColumnWidth = report.PageWidth - 2*jrxmlMargin

	if len(headers) == 0 {
		return report
	}
	width := report.ColumnWidth / len(headers)
	fields := jrxmlFieldNames(headers)
	for i, header := range headers {
		report.Columns = append(report.Columns, jrxmlColumn{
			Field: fields[i],
			Name:  header.Name,
			X:     i * width,
			Width: width,
		})
	}
	return report
}

// jrxmlFieldNames names the report fields after the header columns. Blank columns fall back to their
// position and repeated names get a numeric suffix, since field names must be unique.
func jrxmlFieldNames(headers []models.GridHeader) []string {
	names := make([]string, len(headers))
	taken := make(map[string]bool, len(headers))
	for i, header := range headers {
		base := strings.TrimSpace(header.Column)
		if base == "" {
			base = "column" + strconv.Itoa(i+1)
		}
		name := base
		for n := 2; taken[name]; n++ {
			name = base + "_" + strconv.Itoa(n)
		}
		taken[name] = true
		names[i] = name
	}
	return names
}

// ToJrxml writes a JasperReports design of the grid, one field per visible column.
// The keys of params are declared as report parameters.
func ToJrxml(grid *models.Grid, params map[string]any, w io.Writer) error {
	if grid == nil {
		return nil
	}
	if err := jrxmlTemplate.Execute(w, newJrxmlReport(grid, params)); err != nil {
		return errors.Wrap(err, "error rendering jrxml template")
	}
	return nil
}
