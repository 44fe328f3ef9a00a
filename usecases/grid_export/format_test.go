package grid_export

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhis2/approval-backend/models"
)

func TestFormatFromString(t *testing.T) {
	format, err := FormatFromString(" PDF ")
	require.NoError(t, err)
	assert.Equal(t, FormatPdf, format)
	assert.Equal(t, "application/pdf", format.ContentType())
	assert.Equal(t, "pdf", format.Extension())

	format, err = FormatFromString("xls")
	require.NoError(t, err)
	assert.Equal(t, "xlsx", format.Extension())

	_, err = FormatFromString("docx")
	assert.ErrorIs(t, err, models.ErrUnknownGridFormat)
	assert.ErrorIs(t, err, models.BadParameterError)
}

func TestRender(t *testing.T) {
	for format := range formats {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Render(context.Background(), sampleGrid(), format, &buf))
			assert.NotZero(t, buf.Len())
		})
	}

	t.Run("unknown format", func(t *testing.T) {
		var buf bytes.Buffer
		err := Render(context.Background(), sampleGrid(), Format("docx"), &buf)
		assert.ErrorIs(t, err, models.ErrUnknownGridFormat)
	})
}
