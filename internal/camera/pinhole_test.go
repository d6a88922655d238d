package camera

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/trace3d/internal/geom"
)

func TestPinholeFromFocalValidation(t *testing.T) {
	_, err := PinholeFromFocal(0, 48, 35)
	assert.ErrorIs(t, err, ErrInvalidResolution)

	_, err = PinholeFromFocal(64, -1, 35)
	assert.ErrorIs(t, err, ErrInvalidResolution)

	_, err = PinholeFromFocal(64, 48, 0)
	assert.ErrorIs(t, err, ErrInvalidFocal)

	_, err = PinholeFromFocal(64, 48, math.NaN())
	assert.ErrorIs(t, err, ErrInvalidFocal)
}

func TestPinholeFromFocal(t *testing.T) {
	p, err := PinholeFromFocal(64, 48, 100)
	require.NoError(t, err)

	assert.Equal(t, 100.0, p.FocalX())
	assert.Equal(t, 100.0, p.FocalY())
	assert.Equal(t, geom.Vec2{X: 32, Y: 24}, p.PrincipalPoint())
	assert.InDelta(t, 64.0/48.0, p.AspectRatio(), 1e-12)
}

func TestPinholeFromFOV(t *testing.T) {
	// fov = 90 degrees: focal equals half the image height.
	p, err := PinholeFromFOV(64, 48, math.Pi/2)
	require.NoError(t, err)
	assert.InDelta(t, 24.0, p.FocalY(), 1e-9)

	_, err = PinholeFromFOV(64, 48, 0)
	assert.ErrorIs(t, err, ErrInvalidFocal)
	_, err = PinholeFromFOV(64, 48, math.Pi)
	assert.ErrorIs(t, err, ErrInvalidFocal)
}

func TestPxFromCam(t *testing.T) {
	p, err := PinholeFromFocal(64, 48, 100)
	require.NoError(t, err)

	// A point on the optical axis hits the principal point regardless of
	// depth.
	px, err := p.PxFromCam(geom.V(0, 0, 5))
	require.NoError(t, err)
	assert.Equal(t, p.PrincipalPoint(), px)

	_, err = p.PxFromCam(geom.V(0, 0, -1))
	assert.ErrorIs(t, err, ErrBehindCamera)
	_, err = p.PxFromCam(geom.V(1, 1, 0))
	assert.ErrorIs(t, err, ErrBehindCamera)
}

func TestProjectUnprojectRoundTrip(t *testing.T) {
	p, err := PinholeFromFocal(64, 48, 80)
	require.NoError(t, err)

	pts := []geom.Vec3{
		geom.V(0, 0, 1), geom.V(0.1, -0.2, 1), geom.V(-0.3, 0.3, 1),
	}
	for _, pt := range pts {
		px, err := p.PxFromCam(pt)
		require.NoError(t, err)
		back := p.CamFromPx(px)
		assert.InDelta(t, pt.X, back.X, 1e-9)
		assert.InDelta(t, pt.Y, back.Y, 1e-9)
		assert.InDelta(t, pt.Z, back.Z, 1e-9)
	}

	// Depth is lost: a scaled point projects to the same pixel.
	px1, err := p.PxFromCam(geom.V(0.2, 0.4, 1))
	require.NoError(t, err)
	px2, err := p.PxFromCam(geom.V(0.6, 1.2, 3))
	require.NoError(t, err)
	assert.InDelta(t, px1.X, px2.X, 1e-9)
	assert.InDelta(t, px1.Y, px2.Y, 1e-9)
}

func TestPxFromCamBatch(t *testing.T) {
	p, err := PinholeFromFocal(32, 32, 50)
	require.NoError(t, err)

	pts := []geom.Vec3{geom.V(0, 0, 2), geom.V(0.5, 0.5, 1), geom.V(0, 0, -3)}
	px, depth := p.PxFromCamBatch(pts)
	require.Len(t, px, 3)

	want, err := p.PxFromCam(pts[0])
	require.NoError(t, err)
	assert.InDelta(t, want.X, px[0].X, 1e-12)
	assert.InDelta(t, want.Y, px[0].Y, 1e-12)

	assert.Equal(t, -3.0, depth[2])
	assert.Equal(t, geom.Vec2{}, px[2])
}

func TestPxCenters(t *testing.T) {
	p, err := PinholeFromFocal(4, 3, 10)
	require.NoError(t, err)

	centers := p.PxCenters()
	require.Len(t, centers, 12)
	assert.Equal(t, geom.Vec2{X: 0.5, Y: 0.5}, centers[0])
	// Row-major: second entry advances along u.
	assert.Equal(t, geom.Vec2{X: 1.5, Y: 0.5}, centers[1])
	assert.Equal(t, geom.Vec2{X: 3.5, Y: 2.5}, centers[11])
}
