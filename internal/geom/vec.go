package geom

import "math"

// Vec3 is a point or direction in 3D space.
type Vec3 struct {
	X, Y, Z float64
}

// V is shorthand for constructing a Vec3.
func V(x, y, z float64) Vec3 { return Vec3{x, y, z} }

var (
	Zero  = Vec3{}
	UnitX = Vec3{X: 1}
	UnitY = Vec3{Y: 1}
	UnitZ = Vec3{Z: 1}
)

func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Neg() Vec3            { return Vec3{-v.X, -v.Y, -v.Z} }
func (v Vec3) Mul(o Vec3) Vec3      { return Vec3{v.X * o.X, v.Y * o.Y, v.Z * o.Z} }
func (v Vec3) Dot(o Vec3) float64   { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }
func (v Vec3) NormSq() float64      { return v.Dot(v) }
func (v Vec3) Norm() float64        { return math.Sqrt(v.NormSq()) }

func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{v.Y*o.Z - v.Z*o.Y, v.Z*o.X - v.X*o.Z, v.X*o.Y - v.Y*o.X}
}

// Normalized returns a unit-length copy. The zero vector stays zero.
func (v Vec3) Normalized() Vec3 {
	if n := v.Norm(); n != 0 {
		return v.Scale(1 / n)
	}
	return Vec3{}
}

// Lerp interpolates between v and o; t=0 yields v, t=1 yields o.
func (v Vec3) Lerp(o Vec3, t float64) Vec3 {
	return v.Add(o.Sub(v).Scale(t))
}

func (v Vec3) IsFinite() bool {
	for _, c := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// Vec2 is a 2D point, used for pixel coordinates.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2      { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2      { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) Norm() float64        { return math.Hypot(v.X, v.Y) }

// Flatten packs points into a stride-3 slice for the compute kernels.
func Flatten(pts []Vec3) []float64 {
	out := make([]float64, 0, len(pts)*3)
	for _, p := range pts {
		out = append(out, p.X, p.Y, p.Z)
	}
	return out
}

// Unflatten is the inverse of Flatten. Trailing partial triples are dropped.
func Unflatten(data []float64) []Vec3 {
	out := make([]Vec3, 0, len(data)/3)
	for i := 0; i+2 < len(data); i += 3 {
		out = append(out, Vec3{data[i], data[i+1], data[i+2]})
	}
	return out
}
