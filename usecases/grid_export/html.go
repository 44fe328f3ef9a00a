package grid_export

import (
	"html/template"
	"io"

	"github.com/cockroachdb/errors"

	"github.com/dhis2/approval-backend/models"
	"github.com/dhis2/approval-backend/pure_utils"
)

var htmlTemplates = template.Must(template.New("grid").
	Funcs(template.FuncMap{"even": func(i int) bool { return i%2 == 0 }}).
	ParseFS(templatesFS, "templates/*.html"))

const (
	htmlTemplate          = "grid.html"
	htmlCssTemplate       = "grid_css.html"
	htmlInlineCssTemplate = "grid_inline_css.html"
)

type htmlGrid struct {
	Title    string
	Subtitle string
	Headers  []string
	Rows     [][]string
}

func newHtmlGrid(grid *models.Grid) htmlGrid {
	return htmlGrid{
		Title:    grid.Title,
		Subtitle: grid.Subtitle,
		Headers:  pure_utils.Map(grid.VisibleHeaders(), func(header models.GridHeader) string { return header.Name }),
		Rows: pure_utils.Map(grid.VisibleRows(), func(row []any) []string {
			return pure_utils.Map(row, valueString)
		}),
	}
}

func renderHtml(grid *models.Grid, w io.Writer, name string) error {
	if grid == nil {
		return nil
	}
	if err := htmlTemplates.ExecuteTemplate(w, name, newHtmlGrid(grid)); err != nil {
		return errors.Wrapf(err, "error rendering html template %s", name)
	}
	return nil
}

// ToHtml writes the visible columns of the grid as a html table.
func ToHtml(grid *models.Grid, w io.Writer) error {
	return renderHtml(grid, w, htmlTemplate)
}

// ToHtmlCss writes the html table preceded by its style sheet.
func ToHtmlCss(grid *models.Grid, w io.Writer) error {
	return renderHtml(grid, w, htmlCssTemplate)
}

// ToHtmlInlineCss writes the html table with styles set on every element, for email bodies.
func ToHtmlInlineCss(grid *models.Grid, w io.Writer) error {
	return renderHtml(grid, w, htmlInlineCssTemplate)
}
