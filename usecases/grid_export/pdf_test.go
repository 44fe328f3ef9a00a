package grid_export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhis2/approval-backend/models"
)

const (
	portraitMediaBox  = "/MediaBox [0 0 595.28 841.89]"
	landscapeMediaBox = "/MediaBox [0 0 841.89 595.28]"
)

func TestToPdf(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ToPdf(sampleGrid(), &buf))

	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Contains(t, buf.String(), portraitMediaBox)
}

func TestToPdf_empty_grid_writes_nothing(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ToPdf(nil, &buf))
	assert.Zero(t, buf.Len())

	hiddenOnly := models.NewGrid()
	hiddenOnly.AddHeader(models.NewGridHeader("Id", true, false))
	require.NoError(t, ToPdf(hiddenOnly, &buf))
	assert.Zero(t, buf.Len())
}

func TestToPdf_long_grid_spans_pages(t *testing.T) {
	grid := models.NewGrid()
	grid.Title = "Long"
	grid.AddHeader(models.NewGridHeader("Organisation unit", false, false))
	for range 200 {
		grid.AddRow().AddValue("Bo district, Badjia chiefdom, Ngelehun health post")
	}

	var buf bytes.Buffer
	require.NoError(t, ToPdf(grid, &buf))

	assert.Greater(t, bytes.Count(buf.Bytes(), []byte("/Type /Page\n")), 1)
}

func TestToPdf_accented_and_non_latin_text(t *testing.T) {
	grid := models.NewGrid()
	grid.Title = "Côte d'Ivoire"
	grid.Subtitle = "Région de Ménaka"
	grid.AddHeader(models.NewGridHeader("Unité d'organisation", false, false)).
		AddHeader(models.NewGridHeader("Valeur", false, false))
	grid.AddRow().AddValues("Ménaka", 12)
	grid.AddRow().AddValues("Вьентьян ສະຫວັນນະເຂດ", "naïve café über straße")

	var buf bytes.Buffer
	assert.NotPanics(t, func() {
		require.NoError(t, ToPdf(grid, &buf))
	})
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))

	buf.Reset()
	assert.NotPanics(t, func() {
		require.NoError(t, ToPdfCustom([]*models.Grid{grid}, &buf, 2))
	})
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestPdfTable_lines_counts_code_page_bytes(t *testing.T) {
	table := newPdfTable(newPdfDocument(false), []float64{1})

	lines := table.lines(pdfCell{text: "Ménaka"}, 500)
	require.Len(t, lines, 1)
	assert.Equal(t, table.tr("Ménaka"), lines[0])

	long := table.lines(pdfCell{text: strings.Repeat("Côte d'Ivoire ", 40)}, 100)
	assert.Greater(t, len(long), 1)
}

func TestToPdfList(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ToPdfList([]*models.Grid{nil, sampleGrid(), sampleGrid()}, &buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))

	buf.Reset()
	require.NoError(t, ToPdfList([]*models.Grid{nil, models.NewGrid()}, &buf))
	assert.Zero(t, buf.Len())
}

func TestToPdfCustom(t *testing.T) {
	t.Run("monthly layout for two column grids", func(t *testing.T) {
		grid := models.NewGrid()
		grid.Title = "Monthly approval"
		grid.AddHeader(models.NewGridHeader("Data element", false, false)).
			AddHeader(models.NewGridHeader("Value", false, false))
		grid.AddRow().AddValues("ANC 1st visit", 12)
		grid.AddRow().AddValues("ANC 2nd visit", nil)

		var buf bytes.Buffer
		require.NoError(t, ToPdfCustom([]*models.Grid{grid}, &buf, 2))

		assert.Contains(t, buf.String(), portraitMediaBox)
	})

	t.Run("daily layout for wider grids", func(t *testing.T) {
		grid := models.NewGrid()
		grid.Title = "Daily approval"
		grid.AddHeader(models.NewGridHeader("input_1", false, false)).
			AddHeader(models.NewGridHeader("Day 1", false, false)).
			AddHeader(models.NewGridHeader("Day 2", false, false))
		grid.AddRow().AddValues("Malaria cases", 1, 2)

		var buf bytes.Buffer
		require.NoError(t, ToPdfCustom([]*models.Grid{grid}, &buf, 1))

		assert.Contains(t, buf.String(), landscapeMediaBox)
	})

	t.Run("no grid", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, ToPdfCustom(nil, &buf, 3))
		assert.Zero(t, buf.Len())
	})
}

func TestSignOffText(t *testing.T) {
	assert.True(t, bytes.HasPrefix([]byte(dailySignOff), []byte("\nSigned off by\nName (PRINT):\t")))
	assert.Contains(t, monthlySignOff, "Date:\t____________")
}

func TestCustomColumnWeights(t *testing.T) {
	assert.Equal(t, []float64{1}, customColumnWeights(1))
	assert.Equal(t, []float64{3, 1, 1}, customColumnWeights(3))
}

func TestToJasperReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ToJasperReport(sampleGrid(), map[string]any{"title": "Overridden"}, &buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))

	buf.Reset()
	require.NoError(t, ToJasperReport(nil, nil, &buf))
	assert.Zero(t, buf.Len())
}
