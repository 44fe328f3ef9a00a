package grid_export

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/dhis2/approval-backend/models"
)

func openWorkbook(t *testing.T, data []byte) *excelize.File {
	t.Helper()
	file, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { _ = file.Close() })
	return file
}

func sheetCell(t *testing.T, file *excelize.File, sheet, cell string) string {
	t.Helper()
	value, err := file.GetCellValue(sheet, cell)
	require.NoError(t, err)
	return value
}

func TestToXls(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ToXls(context.Background(), sampleGrid(), &buf))

	file := openWorkbook(t, buf.Bytes())
	assert.Equal(t, []string{"Approval validation rules"}, file.GetSheetList())

	sheet := "Approval validation rules"
	assert.Equal(t, "Approval validation rules", sheetCell(t, file, sheet, "A1"))
	assert.Equal(t, "", sheetCell(t, file, sheet, "A2"))
	assert.Equal(t, "Sierra Leone March 2024", sheetCell(t, file, sheet, "A3"))
	assert.Equal(t, "Name", sheetCell(t, file, sheet, "A5"))
	assert.Equal(t, "Period type", sheetCell(t, file, sheet, "B5"))
	assert.Equal(t, "", sheetCell(t, file, sheet, "C5"), "hidden columns are not exported")
	assert.Equal(t, "ANC visits", sheetCell(t, file, sheet, "A6"))
	assert.Equal(t, "Malaria <cases>", sheetCell(t, file, sheet, "A7"))
	assert.Equal(t, "", sheetCell(t, file, sheet, "B7"))
}

func TestToXls_numbers(t *testing.T) {
	grid := models.NewGrid()
	grid.AddHeader(models.NewGridHeader("value", false, false))
	grid.AddRow().AddValue("12.5")
	grid.AddRow().AddValue(int64(3))
	grid.AddRow().AddValue("12 apples")

	var buf bytes.Buffer
	require.NoError(t, ToXls(context.Background(), grid, &buf))

	file := openWorkbook(t, buf.Bytes())
	assert.Equal(t, "12.5", sheetCell(t, file, "Sheet 1", "A3"))
	assert.Equal(t, "3", sheetCell(t, file, "Sheet 1", "A4"))
	assert.Equal(t, "12 apples", sheetCell(t, file, "Sheet 1", "A5"))
}

func TestToXls_truncates_columns(t *testing.T) {
	grid := models.NewGrid()
	for range 300 {
		grid.AddHeader(models.NewGridHeader("column", false, false))
	}
	grid.AddRow()
	for range 300 {
		grid.AddValue("value")
	}

	var buf bytes.Buffer
	require.NoError(t, ToXls(context.Background(), grid, &buf))

	file := openWorkbook(t, buf.Bytes())
	last, err := excelize.CoordinatesToCellName(256, 2)
	require.NoError(t, err)
	beyond, err := excelize.CoordinatesToCellName(257, 2)
	require.NoError(t, err)
	assert.Equal(t, "column", sheetCell(t, file, "Sheet 1", last))
	assert.Equal(t, "", sheetCell(t, file, "Sheet 1", beyond))
}

func TestToXlsList(t *testing.T) {
	first := sampleGrid()
	second := models.NewGrid()
	second.AddHeader(models.NewGridHeader("a", false, false))
	third := models.NewGrid()
	third.Title = first.Title

	var buf bytes.Buffer
	require.NoError(t, ToXlsList(context.Background(), []*models.Grid{first, second, third}, &buf))

	file := openWorkbook(t, buf.Bytes())
	assert.Equal(t, []string{
		"Approval validation rules",
		"Sheet 2",
		"Approval validation rules (2)",
	}, file.GetSheetList())
}

func TestToXlsList_nil_grid_yields_empty_sheet(t *testing.T) {
	second := models.NewGrid()
	second.AddHeader(models.NewGridHeader("a", false, false))

	var buf bytes.Buffer
	require.NoError(t, ToXlsList(context.Background(), []*models.Grid{sampleGrid(), nil, second}, &buf))

	file := openWorkbook(t, buf.Bytes())
	assert.Equal(t, []string{"Approval validation rules", "Sheet 2", "Sheet 3"}, file.GetSheetList())
	rows, err := file.GetRows("Sheet 2")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestXlsValue(t *testing.T) {
	assert.Equal(t, 12.5, xlsValue("12.5"))
	assert.Equal(t, float64(3), xlsValue(int64(3)))
	assert.Equal(t, float64(-4), xlsValue("-4"))
	assert.Equal(t, float64(0), xlsValue("0"))
	assert.Equal(t, 1.5e-3, xlsValue("1.5E-3"))
	assert.Equal(t, "12 apples", xlsValue("12 apples"))
	assert.Equal(t, "", xlsValue(nil))
	assert.Equal(t, "NaN", xlsValue("NaN"))
	assert.Equal(t, "Inf", xlsValue("Inf"))

	assert.Equal(t, "007", xlsValue("007"))
	assert.Equal(t, "+12", xlsValue("+12"))
	assert.Equal(t, "1e5", xlsValue("1e5"))
	assert.Equal(t, ".5", xlsValue(".5"))
	assert.Equal(t, "12.", xlsValue("12."))
	assert.Equal(t, " 12", xlsValue(" 12"))
}

func TestSheetName(t *testing.T) {
	assert.Equal(t, "Sheet 3", sheetName("", 2))
	assert.Equal(t, "ANC 12 visits", sheetName("ANC 1/2 visits.", 0))
	assert.Equal(t, "Sheet 1", sheetName("???", 0))
	assert.Equal(t, "Immunisation coverage by distri", sheetName("Immunisation coverage by district and month", 0))
}
