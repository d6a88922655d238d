package geom

// Ray is an origin point plus a direction vector. Directions are not
// required to be unit length; At(1) always lands at Origin + Dir.
type Ray struct {
	Origin Vec3
	Dir    Vec3
}

func NewRay(origin, dir Vec3) Ray { return Ray{Origin: origin, Dir: dir} }

// RayTo returns the ray starting at origin and ending at target, so that
// At(1) == target.
func RayTo(origin, target Vec3) Ray {
	return Ray{Origin: origin, Dir: target.Sub(origin)}
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Dir.Scale(t))
}

// Norm returns the length of the direction vector.
func (r Ray) Norm() float64 { return r.Dir.Norm() }

// Normalized returns the same ray with a unit-length direction.
func (r Ray) Normalized() Ray {
	return Ray{Origin: r.Origin, Dir: r.Dir.Normalized()}
}

// End is the tip of the ray, Origin + Dir.
func (r Ray) End() Vec3 { return r.At(1) }

func (r Ray) IsFinite() bool {
	return r.Origin.IsFinite() && r.Dir.IsFinite()
}
