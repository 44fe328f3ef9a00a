package grid_export

import (
	"encoding/csv"
	"io"

	"github.com/cockroachdb/errors"

	"github.com/dhis2/approval-backend/models"
	"github.com/dhis2/approval-backend/pure_utils"
)

const csvDelimiter = ','

// ToCsv writes the header columns, hidden ones included, then every row. A nil grid writes nothing.
func ToCsv(grid *models.Grid, w io.Writer) error {
	if grid == nil {
		return nil
	}

	writer := csv.NewWriter(w)
	writer.Comma = csvDelimiter

	if len(grid.Headers) > 0 {
		columns := pure_utils.Map(grid.Headers, func(header models.GridHeader) string { return header.Column })
		if err := writer.Write(columns); err != nil {
			return errors.Wrap(err, "error writing csv headers")
		}
	}

	for _, row := range grid.Rows {
		if err := writer.Write(pure_utils.Map(row, valueString)); err != nil {
			return errors.Wrap(err, "error writing csv row")
		}
	}

	writer.Flush()
	return errors.Wrap(writer.Error(), "error flushing csv")
}
