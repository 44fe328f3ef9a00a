package grid_export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhis2/approval-backend/models"
)

func TestToCsv(t *testing.T) {
	t.Run("headers and rows, hidden columns included", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, ToCsv(sampleGrid(), &buf))

		assert.Equal(t, "Name,Period type,Id\nANC visits,Monthly,1\nMalaria <cases>,,2\n", buf.String())
	})

	t.Run("values are quoted when needed", func(t *testing.T) {
		grid := models.NewGrid()
		grid.AddRow().AddValues("a,b", `say "hi"`, 2.5)

		var buf bytes.Buffer
		require.NoError(t, ToCsv(grid, &buf))

		assert.Equal(t, "\"a,b\",\"say \"\"hi\"\"\",2.5\n", buf.String())
	})

	t.Run("nil grid", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, ToCsv(nil, &buf))
		assert.Zero(t, buf.Len())
	})
}
