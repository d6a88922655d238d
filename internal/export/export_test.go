package export

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/trace3d/internal/geom"
	"github.com/san-kum/trace3d/internal/viz"
)

func testFigure(t *testing.T) *viz.Figure {
	t.Helper()
	fig, err := viz.NewFigure(geom.NewRay(geom.Vec3{}, geom.UnitX))
	require.NoError(t, err)
	return fig
}

func TestFigureJSON(t *testing.T) {
	data, err := FigureJSON(testFigure(t))
	require.NoError(t, err)

	// Indented output stays valid JSON.
	assert.True(t, json.Valid(data))
	assert.Contains(t, string(data), "\n  ")
	assert.Contains(t, string(data), `"scatter3d"`)
}

func TestFigureHTML(t *testing.T) {
	fig := testFigure(t)
	fig.Layout.Title = "demo"

	page, err := FigureHTML(fig)
	require.NoError(t, err)
	s := string(page)

	assert.Contains(t, s, "<!DOCTYPE html>")
	assert.Contains(t, s, "<title>demo</title>")
	assert.Contains(t, s, plotlyCDN)
	assert.Contains(t, s, "Plotly.newPlot")
	// The figure embeds as a script literal, not an escaped string.
	assert.Contains(t, s, `var fig = {"data"`)
}

func TestFigureHTMLDefaultTitle(t *testing.T) {
	page, err := FigureHTML(testFigure(t))
	require.NoError(t, err)
	assert.Contains(t, string(page), "<title>trace3d figure</title>")
}

func TestCanvasSVG(t *testing.T) {
	canvas := viz.NewCanvas(4, 2)
	canvas.Set(0, 0)
	canvas.Set(7, 7)

	svg := CanvasSVG(canvas, 10)

	assert.True(t, strings.HasPrefix(svg, `<?xml version="1.0"`))
	assert.True(t, strings.HasSuffix(svg, "</svg>"))
	// 4 chars * 2 sub-pixels * scale 10 wide, 2 chars * 4 * 10 tall.
	assert.Contains(t, svg, `width="80" height="80"`)
	assert.Equal(t, 2, strings.Count(svg, "<circle"))
}

func TestCanvasSVGEmpty(t *testing.T) {
	assert.Equal(t, "", CanvasSVG(nil, 10))

	svg := CanvasSVG(viz.NewCanvas(2, 2), 10)
	assert.NotContains(t, svg, "<circle")
}
