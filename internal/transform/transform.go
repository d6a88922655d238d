package transform

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/trace3d/internal/compute"
	"github.com/san-kum/trace3d/internal/geom"
	"github.com/san-kum/trace3d/internal/viz"
)

// OrthonormalEps is the tolerance used when validating rotations.
const OrthonormalEps = 1e-6

var (
	// ErrNotRigid indicates a 4x4 matrix whose bottom row is not (0,0,0,1).
	ErrNotRigid = errors.New("transform: matrix is not a rigid transform")

	// ErrNotOrthonormal indicates a rotation block that is not orthonormal.
	ErrNotOrthonormal = errors.New("transform: rotation is not orthonormal")

	// ErrDegenerateLookAt indicates coincident eye and target positions.
	ErrDegenerateLookAt = errors.New("transform: look-at eye and target coincide")
)

// Transform is a rigid mapping between coordinate frames: a rotation
// followed by a translation. Applying it to a point p yields R*p + T.
type Transform struct {
	R geom.Mat3
	T geom.Vec3
}

func Identity() Transform {
	return Transform{R: geom.Identity3()}
}

// LookAt builds the world-from-camera transform for an eye at pos looking
// at target. Camera convention: +Z forward (optical axis), +X right,
// +Y down, matching image coordinates. When the optical axis is parallel
// to the world up axis, world X is used as the fallback up reference.
func LookAt(pos, target geom.Vec3) (Transform, error) {
	forward := target.Sub(pos)
	if forward.Norm() == 0 {
		return Transform{}, ErrDegenerateLookAt
	}
	z := forward.Normalized()

	up := geom.UnitZ
	if math.Abs(z.Dot(up)) > 1-1e-9 {
		up = geom.UnitX
	}
	x := z.Cross(up).Normalized()
	y := z.Cross(x)

	return Transform{R: geom.Mat3FromCols(x, y, z), T: pos}, nil
}

// Compose returns the transform applying o first, then t.
func (t Transform) Compose(o Transform) Transform {
	return Transform{
		R: t.R.Mul(o.R),
		T: t.R.MulVec(o.T).Add(t.T),
	}
}

// Inv returns the inverse transform. For a valid rotation R' = R^T, so the
// inverse is exact up to floating point.
func (t Transform) Inv() Transform {
	rt := t.R.Transpose()
	return Transform{R: rt, T: rt.MulVec(t.T).Neg()}
}

func (t Transform) ApplyPoint(p geom.Vec3) geom.Vec3 {
	return t.R.MulVec(p).Add(t.T)
}

// ApplyDir rotates a direction without translating it.
func (t Transform) ApplyDir(d geom.Vec3) geom.Vec3 {
	return t.R.MulVec(d)
}

func (t Transform) ApplyRay(r geom.Ray) geom.Ray {
	return geom.Ray{Origin: t.ApplyPoint(r.Origin), Dir: t.ApplyDir(r.Dir)}
}

// ApplyPoints transforms a batch through the active compute backend.
func (t Transform) ApplyPoints(pts []geom.Vec3) []geom.Vec3 {
	flat := compute.GetBackend().TransformPoints(
		t.R.Flat(),
		[3]float64{t.T.X, t.T.Y, t.T.Z},
		geom.Flatten(pts),
	)
	return geom.Unflatten(flat)
}

// Matrix4 returns the homogeneous 4x4 form.
func (t Transform) Matrix4() geom.Mat4 {
	var m geom.Mat4
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m[i][j] = t.R[i][j]
		}
	}
	m[0][3], m[1][3], m[2][3] = t.T.X, t.T.Y, t.T.Z
	m[3][3] = 1
	return m
}

// FromMatrix4 extracts a rigid transform from a homogeneous matrix.
func FromMatrix4(m geom.Mat4) (Transform, error) {
	if m[3][0] != 0 || m[3][1] != 0 || m[3][2] != 0 || m[3][3] != 1 {
		return Transform{}, fmt.Errorf("%w: bottom row %v", ErrNotRigid, m[3])
	}
	var t Transform
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			t.R[i][j] = m[i][j]
		}
	}
	t.T = geom.Vec3{X: m[0][3], Y: m[1][3], Z: m[2][3]}
	return t, nil
}

// Basis accessors: the frame's axes and origin expressed in the parent
// frame.
func (t Transform) XDir() geom.Vec3   { return t.R.Col(0) }
func (t Transform) YDir() geom.Vec3   { return t.R.Col(1) }
func (t Transform) ZDir() geom.Vec3   { return t.R.Col(2) }
func (t Transform) Origin() geom.Vec3 { return t.T }

// Validate checks that the rotation block is orthonormal. Drift from
// repeated composition can be repaired with Orthonormalized.
func (t Transform) Validate() error {
	if !t.R.IsOrthonormal(OrthonormalEps) {
		return ErrNotOrthonormal
	}
	return nil
}

func (t Transform) Orthonormalized() Transform {
	return Transform{R: t.R.Orthonormalized(), T: t.T}
}

// Transformable lets a type compose with a transform; camera.Camera
// implements it so a pose update moves the whole camera.
type Transformable interface {
	TransformedBy(t Transform) any
}

// Apply dispatches on the value's type: points, directions, rays, other
// transforms and Transformable implementations.
func (t Transform) Apply(obj any) (any, error) {
	switch o := obj.(type) {
	case geom.Vec3:
		return t.ApplyPoint(o), nil
	case []geom.Vec3:
		return t.ApplyPoints(o), nil
	case geom.Ray:
		return t.ApplyRay(o), nil
	case []geom.Ray:
		out := make([]geom.Ray, len(o))
		for i, r := range o {
			out[i] = t.ApplyRay(r)
		}
		return out, nil
	case Transform:
		return t.Compose(o), nil
	case Transformable:
		return o.TransformedBy(t), nil
	default:
		return nil, fmt.Errorf("transform: cannot apply to %T", obj)
	}
}

// MakeTraces renders the frame as its three basis axes, colored the usual
// x=red, y=green, z=blue.
func (t Transform) MakeTraces() []viz.Trace {
	o := t.Origin()
	dirs := [3]geom.Vec3{t.XDir(), t.YDir(), t.ZDir()}
	colors := [3]string{"red", "green", "blue"}
	traces := make([]viz.Trace, 0, 3)
	for i, d := range dirs {
		end := o.Add(d)
		tr := viz.LineTrace([][2][3]float64{
			{{o.X, o.Y, o.Z}, {end.X, end.Y, end.Z}},
		})
		tr.Line = &viz.LineStyle{Color: colors[i], Width: 4}
		traces = append(traces, tr)
	}
	return traces
}
