package grid_export

import (
	"time"

	"github.com/dhis2/approval-backend/models"
)

func fixedNow() time.Time {
	return time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
}

func init() {
	now = fixedNow
}

// sampleGrid has a hidden third column and a nil value.
func sampleGrid() *models.Grid {
	grid := models.NewGrid()
	grid.Title = "Approval validation rules"
	grid.Subtitle = "Sierra Leone March 2024"
	grid.AddHeader(models.NewGridHeader("Name", false, false)).
		AddHeader(models.NewGridHeader("Period type", false, true)).
		AddHeader(models.NewGridHeader("Id", true, false))
	grid.AddRow().AddValues("ANC visits", "Monthly", int64(1))
	grid.AddRow().AddValues("Malaria <cases>", nil, int64(2))
	return grid
}
