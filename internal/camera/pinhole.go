package camera

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/trace3d/internal/compute"
	"github.com/san-kum/trace3d/internal/geom"
)

var (
	// ErrInvalidResolution indicates a non-positive pixel resolution.
	ErrInvalidResolution = errors.New("camera: resolution must be positive")

	// ErrInvalidFocal indicates a non-positive focal length or field of view.
	ErrInvalidFocal = errors.New("camera: focal length must be positive")

	// ErrBehindCamera indicates a point at or behind the image plane.
	ErrBehindCamera = errors.New("camera: point is behind the camera")
)

// Pinhole holds camera intrinsics: the projection matrix K plus the pixel
// resolution. Camera-frame convention is +Z forward, +X right, +Y down,
// so pixel v grows downward like image rows.
type Pinhole struct {
	K      geom.Mat3
	Width  int
	Height int
}

// PinholeFromFocal builds intrinsics from a focal length in pixels, with
// the principal point at the image center.
func PinholeFromFocal(width, height int, focal float64) (Pinhole, error) {
	if width <= 0 || height <= 0 {
		return Pinhole{}, fmt.Errorf("%w: %dx%d", ErrInvalidResolution, width, height)
	}
	if focal <= 0 || math.IsNaN(focal) {
		return Pinhole{}, fmt.Errorf("%w: %v", ErrInvalidFocal, focal)
	}
	cx, cy := float64(width)/2, float64(height)/2
	return Pinhole{
		K: geom.Mat3{
			{focal, 0, cx},
			{0, focal, cy},
			{0, 0, 1},
		},
		Width:  width,
		Height: height,
	}, nil
}

// PinholeFromFOV builds intrinsics from a vertical field of view in
// radians.
func PinholeFromFOV(width, height int, fov float64) (Pinhole, error) {
	if fov <= 0 || fov >= math.Pi {
		return Pinhole{}, fmt.Errorf("%w: fov %v rad", ErrInvalidFocal, fov)
	}
	focal := float64(height) / 2 / math.Tan(fov/2)
	return PinholeFromFocal(width, height, focal)
}

func (p Pinhole) FocalX() float64 { return p.K[0][0] }
func (p Pinhole) FocalY() float64 { return p.K[1][1] }

func (p Pinhole) PrincipalPoint() geom.Vec2 {
	return geom.Vec2{X: p.K[0][2], Y: p.K[1][2]}
}

func (p Pinhole) AspectRatio() float64 {
	return float64(p.Width) / float64(p.Height)
}

// PxFromCam projects a camera-frame point to pixel coordinates.
func (p Pinhole) PxFromCam(pt geom.Vec3) (geom.Vec2, error) {
	if pt.Z <= 0 {
		return geom.Vec2{}, fmt.Errorf("%w: z=%v", ErrBehindCamera, pt.Z)
	}
	proj := p.K.MulVec(geom.Vec3{X: pt.X / pt.Z, Y: pt.Y / pt.Z, Z: 1})
	return geom.Vec2{X: proj.X, Y: proj.Y}, nil
}

// PxFromCamBatch projects a batch through the active compute backend.
// Depths are returned alongside; points with depth <= 0 were behind the
// camera and their pixels are zeroed.
func (p Pinhole) PxFromCamBatch(pts []geom.Vec3) ([]geom.Vec2, []float64) {
	px, depth := compute.GetBackend().ProjectPoints(p.K.Flat(), geom.Flatten(pts))
	out := make([]geom.Vec2, len(depth))
	for i := range out {
		out[i] = geom.Vec2{X: px[i*2], Y: px[i*2+1]}
	}
	return out, depth
}

// CamFromPx unprojects a pixel to the camera-frame point on the z=1
// plane. It is the inverse of PxFromCam up to the lost depth.
func (p Pinhole) CamFromPx(px geom.Vec2) geom.Vec3 {
	cp := p.PrincipalPoint()
	return geom.Vec3{
		X: (px.X - cp.X) / p.FocalX(),
		Y: (px.Y - cp.Y) / p.FocalY(),
		Z: 1,
	}
}

// PxCenters returns the pixel-center grid in row-major order, Height*Width
// entries at half-integer coordinates.
func (p Pinhole) PxCenters() []geom.Vec2 {
	out := make([]geom.Vec2, 0, p.Width*p.Height)
	for v := 0; v < p.Height; v++ {
		for u := 0; u < p.Width; u++ {
			out = append(out, geom.Vec2{X: float64(u) + 0.5, Y: float64(v) + 0.5})
		}
	}
	return out
}
