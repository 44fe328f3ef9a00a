package grid_export

import (
	"encoding/xml"
	"io"

	"github.com/cockroachdb/errors"

	"github.com/dhis2/approval-backend/models"
	"github.com/dhis2/approval-backend/pure_utils"
)

type xmlGrid struct {
	XMLName  xml.Name    `xml:"grid"`
	Title    string      `xml:"title,attr"`
	Subtitle string      `xml:"subtitle,attr"`
	Width    int         `xml:"width,attr"`
	Height   int         `xml:"height,attr"`
	Headers  []xmlHeader `xml:"headers>header"`
	Rows     []xmlRow    `xml:"rows>row"`
}

type xmlHeader struct {
	Name   string `xml:"name,attr"`
	Column string `xml:"column,attr"`
	Type   string `xml:"type,attr"`
	Hidden bool   `xml:"hidden,attr"`
	Meta   bool   `xml:"meta,attr"`
}

type xmlRow struct {
	Fields []string `xml:"field"`
}

// ToXml writes every header and row of the grid, hidden columns included.
func ToXml(grid *models.Grid, w io.Writer) error {
	if grid == nil {
		return nil
	}

	doc := xmlGrid{
		Title:    grid.Title,
		Subtitle: grid.Subtitle,
		Width:    grid.Width(),
		Height:   grid.Height(),
		Headers: pure_utils.Map(grid.Headers, func(header models.GridHeader) xmlHeader {
			return xmlHeader{
				Name:   header.Name,
				Column: header.Column,
				Type:   header.Type,
				Hidden: header.Hidden,
				Meta:   header.Meta,
			}
		}),
		Rows: pure_utils.Map(grid.Rows, func(row []any) xmlRow {
			return xmlRow{Fields: pure_utils.Map(row, valueString)}
		}),
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return errors.Wrap(err, "error writing xml header")
	}
	encoder := xml.NewEncoder(w)
	if err := encoder.Encode(doc); err != nil {
		return errors.Wrap(err, "error encoding grid to xml")
	}
	return errors.Wrap(encoder.Close(), "error closing xml encoder")
}
