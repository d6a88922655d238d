package camera

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/trace3d/internal/geom"
	"github.com/san-kum/trace3d/internal/transform"
)

func testCamera(t *testing.T, w, h int, focal float64, pos, target geom.Vec3) Camera {
	t.Helper()
	spec, err := PinholeFromFocal(w, h, focal)
	require.NoError(t, err)
	cam, err := FromLookAt(spec, pos, target)
	require.NoError(t, err)
	return cam
}

func TestFromLookAt(t *testing.T) {
	pos := geom.V(4, 0, 0)
	cam := testCamera(t, 64, 48, 50, pos, geom.Vec3{})

	assert.Equal(t, pos, cam.Position())

	axis := cam.OpticalAxis()
	want := geom.V(-1, 0, 0)
	assert.InDelta(t, want.X, axis.X, 1e-12)
	assert.InDelta(t, want.Y, axis.Y, 1e-12)
	assert.InDelta(t, want.Z, axis.Z, 1e-12)
}

func TestRays(t *testing.T) {
	cam := testCamera(t, 8, 6, 10, geom.V(0, -5, 0), geom.Vec3{})
	rays := cam.Rays()
	require.Len(t, rays, 48)

	for _, r := range rays {
		assert.Equal(t, cam.Position(), r.Origin)
		assert.InDelta(t, 1.0, r.Norm(), 1e-9)
		// All rays point into the forward half-space.
		assert.Greater(t, r.Dir.Dot(cam.OpticalAxis()), 0.0)
	}
}

func TestCenterRayHitsTarget(t *testing.T) {
	// The ray through the principal point is the optical axis.
	cam := testCamera(t, 64, 48, 75, geom.V(3, 3, 3), geom.Vec3{})

	center := cam.Spec.PrincipalPoint()
	ray := cam.WorldFromPx(center)

	axis := cam.OpticalAxis()
	assert.InDelta(t, axis.X, ray.Dir.X, 1e-9)
	assert.InDelta(t, axis.Y, ray.Dir.Y, 1e-9)
	assert.InDelta(t, axis.Z, ray.Dir.Z, 1e-9)
}

func TestPxFromWorld(t *testing.T) {
	pos := geom.V(0, -4, 0)
	target := geom.Vec3{}
	cam := testCamera(t, 64, 48, 50, pos, target)

	// The look-at target projects onto the principal point with depth
	// equal to the eye-target distance.
	px, depth := cam.PxFromWorld([]geom.Vec3{target})
	require.Len(t, px, 1)
	cp := cam.Spec.PrincipalPoint()
	assert.InDelta(t, cp.X, px[0].X, 1e-9)
	assert.InDelta(t, cp.Y, px[0].Y, 1e-9)
	assert.InDelta(t, 4.0, depth[0], 1e-9)

	// A point behind the camera reports a non-positive depth.
	_, depth = cam.PxFromWorld([]geom.Vec3{geom.V(0, -10, 0)})
	assert.LessOrEqual(t, depth[0], 0.0)
}

func TestProjectionRoundTripThroughRays(t *testing.T) {
	cam := testCamera(t, 32, 32, 40, geom.V(2, -3, 1), geom.V(0, 1, 0))

	// March along the pixel ray and project back: the pixel must match.
	px := geom.Vec2{X: 10.25, Y: 20.75}
	pt := cam.WorldFromPx(px).At(3.7)

	got, depth := cam.PxFromWorld([]geom.Vec3{pt})
	require.Len(t, got, 1)
	assert.Greater(t, depth[0], 0.0)
	assert.InDelta(t, px.X, got[0].X, 1e-9)
	assert.InDelta(t, px.Y, got[0].Y, 1e-9)
}

func TestRender(t *testing.T) {
	cam := testCamera(t, 16, 16, 20, geom.V(0, -5, 0), geom.Vec3{})

	d := cam.Render([]geom.Vec3{
		geom.Vec3{},         // in front, depth 5
		geom.V(0, -10, 0),   // behind
		geom.V(100, 100, 0), // off-screen
	})
	require.Equal(t, 16, d.Width)
	require.Equal(t, 16, d.Height)

	hit := 0
	for _, v := range d.Pix {
		if !math.IsNaN(v) {
			hit++
		}
	}
	assert.Equal(t, 1, hit)
	assert.InDelta(t, 5.0, d.At(8, 8), 1e-9)
}

func TestRenderKeepsNearestDepth(t *testing.T) {
	cam := testCamera(t, 16, 16, 20, geom.V(0, -5, 0), geom.Vec3{})

	d := cam.Render([]geom.Vec3{geom.Vec3{}, geom.V(0, 2, 0)})
	// Both land on the principal pixel; the nearer one wins.
	assert.InDelta(t, 5.0, d.At(8, 8), 1e-9)
}

func TestTransformedBy(t *testing.T) {
	cam := testCamera(t, 32, 32, 40, geom.V(1, 0, 0), geom.Vec3{})

	shift := transform.Transform{R: geom.Identity3(), T: geom.V(0, 0, 2)}
	moved, ok := cam.TransformedBy(shift).(Camera)
	require.True(t, ok)

	assert.Equal(t, cam.Spec, moved.Spec)
	assert.InDelta(t, 2.0, moved.Position().Z, 1e-12)
}

func TestMakeTraces(t *testing.T) {
	cam := testCamera(t, 32, 32, 40, geom.V(0, -3, 0), geom.Vec3{})
	traces := cam.MakeTraces()
	require.Len(t, traces, 1)

	// 8 segments, 3 coords each (two endpoints plus break).
	assert.Len(t, traces[0].X, 24)
	// The frustum starts at the optical center.
	assert.Equal(t, 0.0, traces[0].X[0])
	assert.Equal(t, -3.0, traces[0].Y[0])
}
