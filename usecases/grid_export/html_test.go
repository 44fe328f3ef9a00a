package grid_export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToHtml(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ToHtml(sampleGrid(), &buf))
	out := buf.String()

	assert.Contains(t, out, "<h3>Approval validation rules</h3>")
	assert.Contains(t, out, "<h4>Sierra Leone March 2024</h4>")
	assert.Contains(t, out, "<tr><th>Name</th><th>Period type</th></tr>")
	assert.Contains(t, out, "<tr><td>Malaria &lt;cases&gt;</td><td></td></tr>")
	assert.NotContains(t, out, "<th>Id</th>")
	assert.NotContains(t, out, "<style")
}

func TestToHtmlCss(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ToHtmlCss(sampleGrid(), &buf))
	out := buf.String()

	assert.Contains(t, out, `<style type="text/css">`)
	assert.Contains(t, out, "<tr><th>Name</th><th>Period type</th></tr>")
}

func TestToHtmlInlineCss(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ToHtmlInlineCss(sampleGrid(), &buf))
	out := buf.String()

	assert.NotContains(t, out, "<style")
	assert.Contains(t, out, `<tr style="background-color: #e6e6e6;">`)
	assert.Contains(t, out, "Malaria &lt;cases&gt;")
}

func TestToHtml_nil_grid(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ToHtml(nil, &buf))
	assert.Zero(t, buf.Len())
}
