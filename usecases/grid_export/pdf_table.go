package grid_export

import (
	"strings"

	"github.com/go-pdf/fpdf"
)

const (
	pdfFontFamily      = "Helvetica"
	pdfTextFontSize    = 9
	pdfTitleFontSize   = 13
	pdfSubtitleSize    = 11
	pdfLineHeightRatio = 1.25
	pdfPageMargin      = 36
)

type pdfAlign string

const (
	alignLeft   pdfAlign = "L"
	alignCenter pdfAlign = "C"
)

// pdfCell is one cell of a pdfTable. Heights are in points.
type pdfCell struct {
	text      string
	colspan   int
	fontStyle string
	fontSize  float64
	align     pdfAlign
	border    bool
	grayFill  bool
	minHeight float64
	padBottom float64
}

// pdfTable lays cells out left to right, starting a new row every time the columns are filled.
// The first headerRows rows are drawn again at the top of every new page.
type pdfTable struct {
	pdf          *fpdf.Fpdf
	tr           func(string) string
	columnWidths []float64
	headerRows   int
	spacingAfter float64

	pending    []pdfCell
	pendingCol int
	rows       [][]pdfCell
}

func newPdfTable(pdf *fpdf.Fpdf, columnWeights []float64) *pdfTable {
	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	available := pageWidth - left - right

	total := 0.0
	for _, weight := range columnWeights {
		total += weight
	}
	widths := make([]float64, len(columnWeights))
	for i, weight := range columnWeights {
		widths[i] = available * weight / total
	}

	return &pdfTable{
		pdf:          pdf,
		tr:           pdf.UnicodeTranslatorFromDescriptor(""),
		columnWidths: widths,
	}
}

func equalWeights(columns int) []float64 {
	weights := make([]float64, columns)
	for i := range weights {
		weights[i] = 1
	}
	return weights
}

func (t *pdfTable) width() int {
	return len(t.columnWidths)
}

func (t *pdfTable) addCell(cell pdfCell) {
	if cell.colspan <= 0 {
		cell.colspan = 1
	}
	if cell.colspan > t.width()-t.pendingCol {
		cell.colspan = t.width() - t.pendingCol
	}
	t.pending = append(t.pending, cell)
	t.pendingCol += cell.colspan

	if t.pendingCol >= t.width() {
		t.rows = append(t.rows, t.pending)
		t.pending = nil
		t.pendingCol = 0
	}
}

// completeRow fills the current row with empty cells, if one is started.
func (t *pdfTable) completeRow(template pdfCell) {
	for t.pendingCol > 0 {
		cell := template
		cell.text = ""
		cell.colspan = 1
		t.addCell(cell)
	}
}

// draw writes the table at the current position, adding pages when needed.
func (t *pdfTable) draw() {
	pending := pdfCell{fontSize: pdfTextFontSize}
	t.completeRow(pending)

	_, pageHeight := t.pdf.GetPageSize()
	_, _, _, bottom := t.pdf.GetMargins()
	limit := pageHeight - bottom

	for i, row := range t.rows {
		height := t.rowHeight(row)
		if t.pdf.GetY()+height > limit && i >= t.headerRows {
			t.pdf.AddPage()
			for _, header := range t.rows[:min(t.headerRows, len(t.rows))] {
				t.drawRow(header, t.rowHeight(header))
			}
		}
		t.drawRow(row, height)
	}

	if t.spacingAfter > 0 {
		t.pdf.Ln(t.spacingAfter)
	}
}

func (t *pdfTable) cellWidth(column, colspan int) float64 {
	w := 0.0
	for i := column; i < column+colspan && i < t.width(); i++ {
		w += t.columnWidths[i]
	}
	return w
}

func (t *pdfTable) setFont(cell pdfCell) {
	size := cell.fontSize
	if size == 0 {
		size = pdfTextFontSize
	}
	t.pdf.SetFont(pdfFontFamily, cell.fontStyle, size)
}

func (t *pdfTable) lines(cell pdfCell, width float64) []string {
	if cell.text == "" {
		return nil
	}
	t.setFont(cell)
	lines := t.pdf.SplitText(singleByteRunes(t.tr(cell.text)), width)
	for i, line := range lines {
		lines[i] = fromSingleByteRunes(line)
	}
	return lines
}

// singleByteRunes maps every byte of a code page encoded string to the rune of the same value,
// so that the core font width tables, which have 256 entries, can be indexed with it.
func singleByteRunes(encoded string) string {
	runes := make([]rune, len(encoded))
	for i := 0; i < len(encoded); i++ {
		runes[i] = rune(encoded[i])
	}
	return string(runes)
}

func fromSingleByteRunes(s string) string {
	b := make([]byte, 0, len(s))
	for _, r := range s {
		b = append(b, byte(r))
	}
	return string(b)
}

func (t *pdfTable) rowHeight(row []pdfCell) float64 {
	height := 0.0
	column := 0
	for _, cell := range row {
		lineHeight := t.lineHeight(cell)
		lines := len(t.lines(cell, t.cellWidth(column, cell.colspan)))
		cellHeight := float64(lines)*lineHeight + 4 + cell.padBottom
		if lines == 0 {
			cellHeight = cell.padBottom
		}
		cellHeight = max(cellHeight, cell.minHeight)
		height = max(height, cellHeight)
		column += cell.colspan
	}
	return height
}

func (t *pdfTable) lineHeight(cell pdfCell) float64 {
	size := cell.fontSize
	if size == 0 {
		size = pdfTextFontSize
	}
	return size * pdfLineHeightRatio
}

func (t *pdfTable) drawRow(row []pdfCell, height float64) {
	left, _, _, _ := t.pdf.GetMargins()
	x, y := left, t.pdf.GetY()

	column := 0
	for _, cell := range row {
		w := t.cellWidth(column, cell.colspan)

		style := ""
		if cell.grayFill {
			t.pdf.SetFillColor(230, 230, 230)
			style += "F"
		}
		if cell.border {
			style += "D"
		}
		if style != "" {
			t.pdf.Rect(x, y, w, height, style)
		}

		if cell.text != "" {
			t.setFont(cell)
			t.pdf.SetXY(x, y+2)
			t.pdf.MultiCell(w, t.lineHeight(cell), t.tr(cell.text), "", string(cell.align), false)
		}

		x += w
		column += cell.colspan
	}

	t.pdf.SetXY(left, y+height)
}

func newPdfDocument(landscape bool) *fpdf.Fpdf {
	orientation := "P"
	if landscape {
		orientation = "L"
	}
	pdf := fpdf.New(orientation, "pt", "A4", "")
	pdf.SetMargins(pdfPageMargin, pdfPageMargin, pdfPageMargin)
	pdf.SetAutoPageBreak(false, pdfPageMargin)
	pdf.SetLineWidth(0.5)
	pdf.AddPage()
	return pdf
}

// tabs are not part of the core fonts, they are replaced by spaces
func pdfText(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}
