package grid_export

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/hashicorp/go-set/v2"
	"github.com/jackc/pgx/v5"

	"github.com/dhis2/approval-backend/models"
	"github.com/dhis2/approval-backend/pure_utils"
)

const (
	dimensionSeparator = "-"
	nullReplacement    = "[n/a]"
)

// valueString is the text of a grid value in every output format, nil being the empty string.
func valueString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case time.Time:
		if v.Equal(v.Truncate(24 * time.Hour)) {
			return v.Format(time.DateOnly)
		}
		return v.Format(time.RFC3339)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// AddRows appends one grid row per database row, with the values of every column.
func AddRows(grid *models.Grid, rows pgx.Rows) error {
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return errors.Wrap(err, "error reading row values")
		}
		grid.AddRow()
		grid.AddValues(values...)
	}
	return errors.Wrap(rows.Err(), "error iterating over rows")
}

// GridIndexByDimensionItem returns the index of the first value of the row that is one of the
// dimension items, or defaultIndex. The last value of a row is the data value and never matches.
func GridIndexByDimensionItem(row []any, items []string, defaultIndex int) int {
	valid := set.From(items)
	for i := 0; i < len(row)-1; i++ {
		value, ok := row[i].(string)
		if ok && valid.Contains(value) {
			return i
		}
	}
	return defaultIndex
}

// MetaValueMapping maps, for every row, the joined values of the meta columns to the value at valueIndex.
// Rows sharing the same meta values keep the value of the last one.
func MetaValueMapping(grid *models.Grid, valueIndex int) map[string]any {
	mapping := make(map[string]any, grid.Height())
	metaIndexes := grid.MetaColumnIndexes()

	for _, row := range grid.Rows {
		if valueIndex < 0 || valueIndex >= len(row) {
			continue
		}
		metaValues := pure_utils.Map(pure_utils.AtIndexes(row, metaIndexes), func(value any) string {
			if value == nil {
				return nullReplacement
			}
			return valueString(value)
		})
		mapping[strings.Join(metaValues, dimensionSeparator)] = row[valueIndex]
	}
	return mapping
}
