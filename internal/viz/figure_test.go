package viz

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/trace3d/internal/geom"
)

func TestNewFigure(t *testing.T) {
	fig, err := NewFigure(geom.V(0, 0, 0), geom.NewRay(geom.Vec3{}, geom.UnitZ))
	require.NoError(t, err)
	require.Len(t, fig.Data, 3)

	assert.True(t, fig.Layout.ShowLegend)
	require.NotNil(t, fig.Layout.Scene)
	assert.Equal(t, "data", fig.Layout.Scene.AspectMode)

	_, err = NewFigure(struct{}{})
	assert.Error(t, err)
}

func TestFigureJSON(t *testing.T) {
	fig, err := NewFigure(geom.NewRay(geom.Vec3{}, geom.UnitX))
	require.NoError(t, err)

	data, err := fig.JSON()
	require.NoError(t, err)
	s := string(data)

	assert.Contains(t, s, `"type":"scatter3d"`)
	assert.Contains(t, s, `"type":"cone"`)
	assert.Contains(t, s, `"aspectmode":"data"`)
	// Segment breaks serialize as null, not NaN.
	assert.Contains(t, s, "null")
	assert.NotContains(t, s, "NaN")
}

func TestCoordsRoundTrip(t *testing.T) {
	in := Coords{1, math.NaN(), -2.5}
	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.Equal(t, "[1,null,-2.5]", string(data))

	var out Coords
	require.NoError(t, json.Unmarshal(data, &out))
	require.Len(t, out, 3)
	assert.Equal(t, 1.0, out[0])
	assert.True(t, math.IsNaN(out[1]))
	assert.Equal(t, -2.5, out[2])
}

func TestFigureRoundTrip(t *testing.T) {
	fig, err := NewFigure(geom.NewRay(geom.V(1, 2, 3), geom.UnitY))
	require.NoError(t, err)

	data, err := fig.JSON()
	require.NoError(t, err)

	var back Figure
	require.NoError(t, json.Unmarshal(data, &back))
	require.Len(t, back.Data, len(fig.Data))
	assert.Equal(t, fig.Data[0].Name, back.Data[0].Name)
	// The NaN break survives the round trip.
	assert.True(t, math.IsNaN(float64(back.Data[0].X[2])))
}

func TestFingerprint(t *testing.T) {
	a, err := NewFigure(geom.V(1, 0, 0))
	require.NoError(t, err)
	b, err := NewFigure(geom.V(1, 0, 0))
	require.NoError(t, err)
	c, err := NewFigure(geom.V(2, 0, 0))
	require.NoError(t, err)

	fa, err := a.Fingerprint()
	require.NoError(t, err)
	fb, err := b.Fingerprint()
	require.NoError(t, err)
	fc, err := c.Fingerprint()
	require.NoError(t, err)

	assert.Equal(t, fa, fb)
	assert.NotEqual(t, fa, fc)
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "points", displayName(geom.V(0, 0, 0)))
	assert.Equal(t, "points", displayName([]geom.Vec3{}))
	assert.Equal(t, "Ray", displayName(geom.Ray{}))
	assert.Equal(t, "Ray", displayName([]geom.Ray{}))
	assert.Equal(t, "Figure", displayName(&Figure{}))
	assert.False(t, strings.Contains(displayName(geom.Ray{}), "."))
}
