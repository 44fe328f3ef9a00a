package models

import "io"

// GridHeader describes one column of a Grid.
type GridHeader struct {
	Name   string
	Column string
	Type   string
	Hidden bool
	Meta   bool
}

func NewGridHeader(name string, hidden, meta bool) GridHeader {
	return GridHeader{
		Name:   name,
		Column: name,
		Type:   "java.lang.String",
		Hidden: hidden,
		Meta:   meta,
	}
}

// Grid is an in-memory table of headers and rows, the common shape of every report.
// Values are appended to the last row added with AddRow.
type Grid struct {
	Title    string
	Subtitle string
	Headers  []GridHeader
	Rows     [][]any
}

func NewGrid() *Grid {
	return &Grid{}
}

func (g *Grid) AddHeader(header GridHeader) *Grid {
	g.Headers = append(g.Headers, header)
	return g
}

func (g *Grid) AddEmptyHeaders(number int) *Grid {
	for range number {
		g.AddHeader(NewGridHeader("", false, false))
	}
	return g
}

func (g *Grid) AddRow() *Grid {
	g.Rows = append(g.Rows, []any{})
	return g
}

func (g *Grid) AddValue(value any) *Grid {
	if len(g.Rows) == 0 {
		g.AddRow()
	}
	last := len(g.Rows) - 1
	g.Rows[last] = append(g.Rows[last], value)
	return g
}

func (g *Grid) AddValues(values ...any) *Grid {
	for _, value := range values {
		g.AddValue(value)
	}
	return g
}

func (g *Grid) AddEmptyValues(number int) *Grid {
	for range number {
		g.AddValue("")
	}
	return g
}

// Width is the number of headers, or the length of the first row for a grid without headers.
func (g *Grid) Width() int {
	if len(g.Headers) > 0 {
		return len(g.Headers)
	}
	if len(g.Rows) > 0 {
		return len(g.Rows[0])
	}
	return 0
}

func (g *Grid) Height() int {
	return len(g.Rows)
}

func (g *Grid) VisibleHeaders() []GridHeader {
	headers := make([]GridHeader, 0, len(g.Headers))
	for _, header := range g.Headers {
		if !header.Hidden {
			headers = append(headers, header)
		}
	}
	return headers
}

func (g *Grid) VisibleWidth() int {
	if len(g.Headers) == 0 {
		return g.Width()
	}
	return len(g.VisibleHeaders())
}

// VisibleRows returns copies of the rows without the values of hidden columns.
func (g *Grid) VisibleRows() [][]any {
	hidden := make(map[int]bool)
	for i, header := range g.Headers {
		if header.Hidden {
			hidden[i] = true
		}
	}
	if len(hidden) == 0 {
		return g.Rows
	}

	rows := make([][]any, 0, len(g.Rows))
	for _, row := range g.Rows {
		visible := make([]any, 0, len(row))
		for i, value := range row {
			if !hidden[i] {
				visible = append(visible, value)
			}
		}
		rows = append(rows, visible)
	}
	return rows
}

func (g *Grid) MetaColumnIndexes() []int {
	indexes := make([]int, 0)
	for i, header := range g.Headers {
		if header.Meta {
			indexes = append(indexes, i)
		}
	}
	return indexes
}

// IsNonEmpty is true for a grid with at least one visible column.
func (g *Grid) IsNonEmpty() bool {
	return g != nil && g.VisibleWidth() > 0
}

func HasNonEmptyGrid(grids []*Grid) bool {
	for _, grid := range grids {
		if grid.IsNonEmpty() {
			return true
		}
	}
	return false
}

type GridFromHtmlInput struct {
	Html               string
	Title              string
	PeriodId           int64
	OrganisationUnitId int64
}

type ReportExport struct {
	BucketUrl   string
	FileName    string
	ContentType string
	Size        int64
}

// Blob is a stored report. The caller closes ReadCloser.
type Blob struct {
	FileName    string
	ContentType string
	Size        int64
	ReadCloser  io.ReadCloser
}
