package camera

import (
	"math"

	"github.com/san-kum/trace3d/internal/compute"
	"github.com/san-kum/trace3d/internal/geom"
	"github.com/san-kum/trace3d/internal/transform"
	"github.com/san-kum/trace3d/internal/viz"
)

// Camera is a posed pinhole camera: intrinsics plus the world-from-camera
// rigid transform.
type Camera struct {
	Spec         Pinhole
	WorldFromCam transform.Transform
}

// FromLookAt poses a camera at pos with its optical axis pointing at
// target.
func FromLookAt(spec Pinhole, pos, target geom.Vec3) (Camera, error) {
	worldFromCam, err := transform.LookAt(pos, target)
	if err != nil {
		return Camera{}, err
	}
	return Camera{Spec: spec, WorldFromCam: worldFromCam}, nil
}

func (c Camera) Position() geom.Vec3 { return c.WorldFromCam.Origin() }

// OpticalAxis is the world-space viewing direction.
func (c Camera) OpticalAxis() geom.Vec3 { return c.WorldFromCam.ZDir() }

// Rays returns one world-space ray per pixel center, row-major, with unit
// directions. The batch runs through the active compute backend.
func (c Camera) Rays() []geom.Ray {
	centers := c.Spec.PxCenters()
	dirs := make([]geom.Vec3, len(centers))
	for i, px := range centers {
		dirs[i] = c.Spec.CamFromPx(px)
	}

	b := compute.GetBackend()
	flat := b.NormalizeDirs(geom.Flatten(dirs))
	// Rotation only: directions do not translate.
	flat = b.TransformPoints(c.WorldFromCam.R.Flat(), [3]float64{}, flat)

	pos := c.Position()
	rays := make([]geom.Ray, len(centers))
	for i, d := range geom.Unflatten(flat) {
		rays[i] = geom.Ray{Origin: pos, Dir: d}
	}
	return rays
}

// PxFromWorld projects world points into the image, returning pixel
// coordinates and camera-frame depths. Depths <= 0 mark points behind the
// camera.
func (c Camera) PxFromWorld(pts []geom.Vec3) ([]geom.Vec2, []float64) {
	camPts := c.WorldFromCam.Inv().ApplyPoints(pts)
	return c.Spec.PxFromCamBatch(camPts)
}

// WorldFromPx returns the world-space ray through the given pixel.
func (c Camera) WorldFromPx(px geom.Vec2) geom.Ray {
	dir := c.WorldFromCam.ApplyDir(c.Spec.CamFromPx(px).Normalized())
	return geom.Ray{Origin: c.Position(), Dir: dir}
}

// DepthMap is a rendered depth image; Pix is row-major with NaN where no
// point landed.
type DepthMap struct {
	Width, Height int
	Pix           []float64
}

func (d *DepthMap) At(u, v int) float64 { return d.Pix[v*d.Width+u] }

// Render splats a point cloud into a nearest-depth image.
func (c Camera) Render(pts []geom.Vec3) *DepthMap {
	d := &DepthMap{
		Width:  c.Spec.Width,
		Height: c.Spec.Height,
		Pix:    make([]float64, c.Spec.Width*c.Spec.Height),
	}
	for i := range d.Pix {
		d.Pix[i] = math.NaN()
	}

	px, depth := c.PxFromWorld(pts)
	for i, p := range px {
		if depth[i] <= 0 {
			continue
		}
		u, v := int(p.X), int(p.Y)
		if u < 0 || u >= d.Width || v < 0 || v >= d.Height {
			continue
		}
		idx := v*d.Width + u
		if math.IsNaN(d.Pix[idx]) || depth[i] < d.Pix[idx] {
			d.Pix[idx] = depth[i]
		}
	}
	return d
}

// TransformedBy moves the whole camera by t, keeping intrinsics.
func (c Camera) TransformedBy(t transform.Transform) any {
	return Camera{Spec: c.Spec, WorldFromCam: t.Compose(c.WorldFromCam)}
}

// frustumDepth is the optical-axis distance of the drawn image plane.
const frustumDepth = 1.0

// MakeTraces renders the camera as a wireframe frustum: four edges from
// the optical center to the image corners plus the image-plane rectangle.
func (c Camera) MakeTraces() []viz.Trace {
	w, h := float64(c.Spec.Width), float64(c.Spec.Height)
	cornersPx := [4]geom.Vec2{{X: 0, Y: 0}, {X: w, Y: 0}, {X: w, Y: h}, {X: 0, Y: h}}

	pos := c.Position()
	var corners [4]geom.Vec3
	for i, px := range cornersPx {
		camPt := c.Spec.CamFromPx(px).Scale(frustumDepth)
		corners[i] = c.WorldFromCam.ApplyPoint(camPt)
	}

	segs := make([][2][3]float64, 0, 8)
	for i := 0; i < 4; i++ {
		a, b := corners[i], corners[(i+1)%4]
		segs = append(segs,
			[2][3]float64{{pos.X, pos.Y, pos.Z}, {a.X, a.Y, a.Z}},
			[2][3]float64{{a.X, a.Y, a.Z}, {b.X, b.Y, b.Z}},
		)
	}
	t := viz.LineTrace(segs)
	t.Line = &viz.LineStyle{Width: 2}
	return []viz.Trace{t}
}
