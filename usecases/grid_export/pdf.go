package grid_export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-pdf/fpdf"

	"github.com/dhis2/approval-backend/models"
)

const (
	pdfSubtitleSpacing  = 30
	pdfHeaderSpacing    = 10
	pdfTimestampPadding = 30
	pdfGridSpacing      = 40
	pdfDailySpacing     = 15
)

var now = time.Now

// ToPdf writes the grid as a pdf document. Nothing is written for an empty grid.
func ToPdf(grid *models.Grid, w io.Writer) error {
	if !grid.IsNonEmpty() {
		return nil
	}

	pdf := newPdfDocument(false)
	writeGridToPdf(pdf, grid, 0)
	writePdfTimestamp(pdf, true)
	return outputPdf(pdf, w)
}

// ToPdfList writes the non-empty grids one after the other in a single pdf document.
func ToPdfList(grids []*models.Grid, w io.Writer) error {
	if !models.HasNonEmptyGrid(grids) {
		return nil
	}

	pdf := newPdfDocument(false)
	for _, grid := range grids {
		if grid.IsNonEmpty() {
			writeGridToPdf(pdf, grid, pdfGridSpacing)
		}
	}
	writePdfTimestamp(pdf, false)
	return outputPdf(pdf, w)
}

func writeGridToPdf(pdf *fpdf.Fpdf, grid *models.Grid, spacingAfter float64) {
	width := grid.VisibleWidth()
	table := newPdfTable(pdf, equalWeights(width))
	table.headerRows = 1
	table.spacingAfter = spacingAfter

	table.addCell(titleCell(grid.Title, width))

	if grid.Subtitle != "" {
		table.addCell(subtitleCell(grid.Subtitle, width))
		table.addCell(pdfCell{colspan: width, minHeight: pdfSubtitleSpacing})
	}

	for _, header := range grid.VisibleHeaders() {
		table.addCell(pdfCell{text: header.Column, fontStyle: "I", align: alignLeft})
	}
	table.addCell(pdfCell{colspan: width, minHeight: pdfHeaderSpacing})

	for _, row := range grid.VisibleRows() {
		for _, value := range row {
			table.addCell(pdfCell{text: pdfText(valueString(value)), align: alignLeft})
		}
	}

	table.draw()
}

func titleCell(title string, colspan int) pdfCell {
	return pdfCell{
		text:      title,
		colspan:   colspan,
		fontStyle: "B",
		fontSize:  pdfTitleFontSize,
		align:     alignLeft,
		padBottom: pdfSubtitleSpacing,
	}
}

func subtitleCell(subtitle string, colspan int) pdfCell {
	return pdfCell{
		text:     subtitle,
		colspan:  colspan,
		fontSize: pdfSubtitleSize,
		align:    alignLeft,
	}
}

func writePdfTimestamp(pdf *fpdf.Fpdf, padding bool) {
	table := newPdfTable(pdf, []float64{1})
	if padding {
		table.addCell(pdfCell{minHeight: pdfTimestampPadding})
	}
	table.addCell(pdfCell{text: generatedText(), align: alignLeft})
	table.draw()
}

func generatedText() string {
	return "Generated: " + now().Format(time.DateOnly)
}

func outputPdf(pdf *fpdf.Fpdf, w io.Writer) error {
	if err := pdf.Output(w); err != nil {
		return errors.Wrap(err, "error writing pdf document")
	}
	return nil
}

// ToPdfCustom writes the grids in the printable approval layout, followed by the given number of
// sign-off blocks. Grids with more than two columns are daily forms, printed in landscape.
func ToPdfCustom(grids []*models.Grid, w io.Writer, signatures int) error {
	if !models.HasNonEmptyGrid(grids) {
		return nil
	}

	daily := false
	for _, grid := range grids {
		if grid != nil && grid.Width() > 2 {
			daily = true
			break
		}
	}

	pdf := newPdfDocument(daily)
	for _, grid := range grids {
		if grid.IsNonEmpty() {
			writeCustomGridToPdf(pdf, grid, daily)
		}
	}

	signOff := monthlySignOff
	if daily {
		signOff = dailySignOff
	}

	table := newPdfTable(pdf, []float64{1})
	table.addCell(pdfCell{text: generatedText(), align: alignLeft})
	for range signatures {
		table.addCell(pdfCell{text: pdfText(signOff), align: alignLeft})
	}
	table.draw()

	return outputPdf(pdf, w)
}

// the first column holds the labels of the form
func customColumnWeights(columns int) []float64 {
	weights := equalWeights(columns)
	if columns > 1 {
		weights[0] = 3
	}
	return weights
}

func writeCustomGridToPdf(pdf *fpdf.Fpdf, grid *models.Grid, daily bool) {
	width := grid.VisibleWidth()
	table := newPdfTable(pdf, customColumnWeights(width))
	if daily {
		pdf.Ln(pdfDailySpacing)
		table.spacingAfter = pdfDailySpacing
	}

	table.addCell(titleCell(grid.Title, width))
	table.headerRows = 2

	if grid.Subtitle != "" {
		table.addCell(subtitleCell(grid.Subtitle, width))
		table.addCell(pdfCell{colspan: width, minHeight: pdfSubtitleSpacing})
		table.headerRows = 4
	}

	for _, header := range grid.VisibleHeaders() {
		name := header.Name
		if daily && strings.HasPrefix(name, "input") {
			name = "Data element"
		}
		table.addCell(pdfCell{text: name, align: alignCenter, border: true})
	}

	for i, row := range grid.VisibleRows() {
		striped := i%2 == 0
		for j, value := range row {
			align := alignCenter
			if daily && j == 0 {
				align = alignLeft
			}
			table.addCell(pdfCell{
				text:     pdfText(valueString(value)),
				align:    align,
				border:   true,
				grayFill: striped,
			})
		}
	}

	table.draw()
}

var (
	dailySignOff   = signOffText(47, 25)
	monthlySignOff = signOffText(26, 12)
)

func signOffText(lineLength, dateLength int) string {
	line := strings.Repeat("_", lineLength)
	return fmt.Sprintf("\nSigned off by\nName (PRINT):\t%s\t\t\t\tSignature:\t%s\t\t\t\tPosition:\t%s\t\t\t\tDate:\t%s",
		line, line, line, strings.Repeat("_", dateLength))
}

// ToJasperReport renders the grid as a pdf report. The "title" and "subtitle" parameters, when set,
// replace the texts of the grid.
func ToJasperReport(grid *models.Grid, params map[string]any, w io.Writer) error {
	if grid == nil {
		return nil
	}

	report := *grid
	if title, ok := params["title"].(string); ok && title != "" {
		report.Title = title
	}
	if subtitle, ok := params["subtitle"].(string); ok && subtitle != "" {
		report.Subtitle = subtitle
	}
	return ToPdf(&report, w)
}
