package grid_export

import (
	"context"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/xuri/excelize/v2"

	"github.com/dhis2/approval-backend/models"
	"github.com/dhis2/approval-backend/pure_utils"
	"github.com/dhis2/approval-backend/utils"
)

const (
	xlsSheetPrefix       = "Sheet "
	xlsMaxColumns        = 256
	xlsMaxSheetNameChars = 31
	xlsFont              = "Arial"
	xlsFontSize          = 10
)

var illegalSheetNameChars = regexp.MustCompile(`[/\\?%*:|"'<>.\[\]]`)

// numericValue matches decimal numbers written without a plus sign or leading zeros.
var numericValue = regexp.MustCompile(`^(-?0|-?[1-9]\d*)(\.\d+)?(E(-)?\d+)?$`)

// sheetName removes the characters that cannot be part of a file or sheet name.
func sheetName(title string, index int) string {
	if title == "" {
		title = xlsSheetPrefix + strconv.Itoa(index+1)
	}
	name := []rune(illegalSheetNameChars.ReplaceAllString(title, ""))
	if len(name) > xlsMaxSheetNameChars {
		name = name[:xlsMaxSheetNameChars]
	}
	if len(name) == 0 {
		return xlsSheetPrefix + strconv.Itoa(index+1)
	}
	return string(name)
}

type xlsWorkbook struct {
	file        *excelize.File
	headerStyle int
	cellStyle   int
	sheets      int
}

func newXlsWorkbook() (*xlsWorkbook, error) {
	file := excelize.NewFile()

	headerStyle, err := file.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Family: xlsFont, Size: xlsFontSize},
	})
	if err != nil {
		return nil, errors.Wrap(err, "error creating header style")
	}
	cellStyle, err := file.NewStyle(&excelize.Style{
		Font: &excelize.Font{Family: xlsFont, Size: xlsFontSize},
	})
	if err != nil {
		return nil, errors.Wrap(err, "error creating cell style")
	}

	return &xlsWorkbook{file: file, headerStyle: headerStyle, cellStyle: cellStyle}, nil
}

// addSheet renames the default sheet for the first grid, and creates the following ones.
// Names already taken get a numeric suffix.
func (wb *xlsWorkbook) addSheet(name string) (string, error) {
	unique := name
	for i := 2; ; i++ {
		index, err := wb.file.GetSheetIndex(unique)
		if err != nil {
			return "", errors.Wrap(err, "error looking up sheet")
		}
		if index == -1 || (wb.sheets == 0 && unique == "Sheet1") {
			break
		}
		suffix := fmt.Sprintf(" (%d)", i)
		runes := []rune(name)
		if len(runes)+len(suffix) > xlsMaxSheetNameChars {
			runes = runes[:xlsMaxSheetNameChars-len(suffix)]
		}
		unique = string(runes) + suffix
	}

	if wb.sheets == 0 {
		if err := wb.file.SetSheetName("Sheet1", unique); err != nil {
			return "", errors.Wrap(err, "error naming sheet")
		}
	} else if _, err := wb.file.NewSheet(unique); err != nil {
		return "", errors.Wrap(err, "error creating sheet")
	}
	wb.sheets++
	return unique, nil
}

func (wb *xlsWorkbook) setCell(sheet string, column, row int, value any, style int) error {
	cell, err := excelize.CoordinatesToCellName(column+1, row+1)
	if err != nil {
		return errors.Wrap(err, "invalid cell coordinates")
	}
	if err := wb.file.SetCellValue(sheet, cell, value); err != nil {
		return errors.Wrapf(err, "error writing cell %s", cell)
	}
	return errors.Wrapf(wb.file.SetCellStyle(sheet, cell, cell, style), "error styling cell %s", cell)
}

func (wb *xlsWorkbook) writeGrid(ctx context.Context, grid *models.Grid, sheet string) error {
	headers := grid.VisibleHeaders()
	if len(headers) > xlsMaxColumns {
		utils.LoggerFromContext(ctx).WarnContext(ctx,
			fmt.Sprintf("Grid will be truncated, number of columns is greater than the max limit: %d/%d",
				len(headers), xlsMaxColumns))
	}

	rowNumber := 0
	if grid.Title != "" {
		if err := wb.setCell(sheet, 0, rowNumber, grid.Title, wb.headerStyle); err != nil {
			return err
		}
		rowNumber++
	}

	if grid.Subtitle != "" {
		rowNumber++
		if err := wb.setCell(sheet, 0, rowNumber, grid.Subtitle, wb.headerStyle); err != nil {
			return err
		}
		rowNumber++
	}

	rowNumber++
	for column, header := range pure_utils.SubList(headers, 0, xlsMaxColumns) {
		if err := wb.setCell(sheet, column, rowNumber, header.Column, wb.headerStyle); err != nil {
			return err
		}
	}
	rowNumber++

	for _, row := range grid.VisibleRows() {
		for column, value := range pure_utils.SubList(row, 0, xlsMaxColumns) {
			if err := wb.setCell(sheet, column, rowNumber, xlsValue(value), wb.cellStyle); err != nil {
				return err
			}
		}
		rowNumber++
	}
	return nil
}

func (wb *xlsWorkbook) write(w io.Writer) error {
	if err := wb.file.Write(w); err != nil {
		return errors.Wrap(err, "error writing workbook")
	}
	return nil
}

// xlsValue turns numeric looking values into numbers, everything else is written as text.
func xlsValue(value any) any {
	if value == nil {
		return ""
	}
	text := valueString(value)
	if !numericValue.MatchString(text) {
		return text
	}
	number, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsInf(number, 0) || math.IsNaN(number) {
		return text
	}
	return number
}

// ToXls writes the grid as a single sheet workbook.
func ToXls(ctx context.Context, grid *models.Grid, w io.Writer) error {
	if grid == nil {
		grid = models.NewGrid()
	}
	return ToXlsList(ctx, []*models.Grid{grid}, w)
}

// ToXlsList writes a workbook with one sheet per grid, named after the grid title.
// A nil grid yields an empty sheet.
func ToXlsList(ctx context.Context, grids []*models.Grid, w io.Writer) error {
	wb, err := newXlsWorkbook()
	if err != nil {
		return err
	}
	defer wb.file.Close()

	for i, grid := range grids {
		if grid == nil {
			if _, err := wb.addSheet(sheetName("", i)); err != nil {
				return err
			}
			continue
		}
		sheet, err := wb.addSheet(sheetName(grid.Title, i))
		if err != nil {
			return err
		}
		if err := wb.writeGrid(ctx, grid, sheet); err != nil {
			return err
		}
	}

	return wb.write(w)
}
