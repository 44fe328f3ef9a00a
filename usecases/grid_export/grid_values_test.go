package grid_export

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhis2/approval-backend/models"
)

func TestValueString(t *testing.T) {
	assert.Equal(t, "", valueString(nil))
	assert.Equal(t, "text", valueString("text"))
	assert.Equal(t, "1500000", valueString(1500000.0))
	assert.Equal(t, "0.25", valueString(float32(0.25)))
	assert.Equal(t, "42", valueString(int64(42)))
	assert.Equal(t, "true", valueString(true))
	assert.Equal(t, "2024-03-01", valueString(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "Monthly", valueString(models.PeriodTypeMonthly))
}

func TestAddRows(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT organisationunit, audits FROM summary").
		WillReturnRows(pgxmock.NewRows([]string{"organisationunit", "audits"}).
			AddRow("Bo", int64(3)).
			AddRow("Kenema", int64(0)))

	rows, err := mock.Query(context.Background(), "SELECT organisationunit, audits FROM summary")
	require.NoError(t, err)
	defer rows.Close()

	grid := models.NewGrid()
	grid.AddHeader(models.NewGridHeader("Organisation unit", false, false)).
		AddHeader(models.NewGridHeader("Audits", false, false))

	require.NoError(t, AddRows(grid, rows))
	assert.Equal(t, [][]any{{"Bo", int64(3)}, {"Kenema", int64(0)}}, grid.Rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGridIndexByDimensionItem(t *testing.T) {
	items := []string{"fbfJHSPpUQD", "cYeuwXTCPkU"}

	assert.Equal(t, 1, GridIndexByDimensionItem([]any{"ImspTQPwCqd", "cYeuwXTCPkU", 12.0}, items, -1))
	assert.Equal(t, -1, GridIndexByDimensionItem([]any{"ImspTQPwCqd", "202403", 12.0}, items, -1),
		"no match falls back to the default index")
	assert.Equal(t, 7, GridIndexByDimensionItem([]any{"ImspTQPwCqd", "fbfJHSPpUQD"}, items, 7),
		"the last value of the row is never matched")
	assert.Equal(t, 0, GridIndexByDimensionItem([]any{"fbfJHSPpUQD", 3, 12.0}, items, -1))
}

func TestMetaValueMapping(t *testing.T) {
	grid := models.NewGrid()
	grid.AddHeader(models.NewGridHeader("dx", false, true)).
		AddHeader(models.NewGridHeader("pe", false, true)).
		AddHeader(models.NewGridHeader("value", false, false))
	grid.AddRow().AddValues("fbfJHSPpUQD", "202403", 12.0)
	grid.AddRow().AddValues("cYeuwXTCPkU", nil, 4.0)
	grid.AddRow().AddValues("fbfJHSPpUQD", "202403", 15.0)

	assert.Equal(t, map[string]any{
		"fbfJHSPpUQD-202403": 15.0,
		"cYeuwXTCPkU-[n/a]":  4.0,
	}, MetaValueMapping(grid, 2))
}
