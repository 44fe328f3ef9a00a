package grid_export

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhis2/approval-backend/models"
)

var (
	testPeriod = models.Period{
		PeriodType: models.PeriodTypeMonthly,
		StartDate:  time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
	}
	testUnit = models.OrganisationUnit{Id: 1, Uid: "ImspTQPwCqd", Name: "Sierra Leone"}
)

func TestFromHtml(t *testing.T) {
	document := `
<html><body>
<table>
  <tr></tr>
  <tr><th>Data element</th><th colspan="2">Values</th></tr>
  <tr><td>ANC 1st visit</td><td><span>12</span></td><td>&nbsp;4 </td></tr>
  <tr><td colspan="2">Total</td><td>16</td></tr>
  <tr><td>Broken row</td><td>1</td></tr>
</table>
<p>between</p>
<table>
  <tr><td>Only</td></tr>
  <tr><td><b>one</b> <i>column</i></td></tr>
</table>
</body></html>`

	grids, err := FromHtml(context.Background(), document, "Monthly form", testPeriod, testUnit)
	require.NoError(t, err)
	require.Len(t, grids, 2)

	first := grids[0]
	assert.Equal(t, "Monthly form", first.Title)
	assert.Equal(t, "Sierra Leone March 2024", first.Subtitle)
	assert.Equal(t, []string{"Data element", "Values", ""}, headerNames(first))
	assert.Equal(t, [][]any{
		{"ANC 1st visit", "12", "4"},
		{"Total", "", "16"},
	}, first.Rows)

	second := grids[1]
	assert.Equal(t, []string{"Only"}, headerNames(second))
	assert.Equal(t, [][]any{{"one column"}}, second.Rows)
}

func TestFromHtml_blank(t *testing.T) {
	grids, err := FromHtml(context.Background(), "  \n ", "title", testPeriod, testUnit)
	require.NoError(t, err)
	assert.Nil(t, grids)
}

func TestFromHtml_no_table(t *testing.T) {
	grids, err := FromHtml(context.Background(), "<p>nothing here</p>", "title", testPeriod, testUnit)
	require.NoError(t, err)
	assert.Empty(t, grids)
}

func headerNames(grid *models.Grid) []string {
	names := make([]string, 0, len(grid.Headers))
	for _, header := range grid.Headers {
		names = append(names, header.Name)
	}
	return names
}
