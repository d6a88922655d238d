package geom

import "math"

// Mat3 is a row-major 3x3 matrix, used for rotations and camera intrinsics.
type Mat3 [3][3]float64

func Identity3() Mat3 {
	return Mat3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

// Mat3FromCols builds a matrix whose columns are the given vectors.
func Mat3FromCols(x, y, z Vec3) Mat3 {
	return Mat3{
		{x.X, y.X, z.X},
		{x.Y, y.Y, z.Y},
		{x.Z, y.Z, z.Z},
	}
}

// RotZ is the rotation by angle radians about the Z axis.
func RotZ(angle float64) Mat3 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat3{{c, -s, 0}, {s, c, 0}, {0, 0, 1}}
}

func (m Mat3) Row(i int) Vec3 { return Vec3{m[i][0], m[i][1], m[i][2]} }
func (m Mat3) Col(j int) Vec3 { return Vec3{m[0][j], m[1][j], m[2][j]} }

func (m Mat3) Mul(o Mat3) Mat3 {
	var r Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = m[i][0]*o[0][j] + m[i][1]*o[1][j] + m[i][2]*o[2][j]
		}
	}
	return r
}

func (m Mat3) MulVec(v Vec3) Vec3 {
	return Vec3{
		m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z,
		m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z,
		m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z,
	}
}

func (m Mat3) Transpose() Mat3 {
	var r Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = m[j][i]
		}
	}
	return r
}

func (m Mat3) Det() float64 {
	return m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
}

func (m Mat3) Trace() float64 { return m[0][0] + m[1][1] + m[2][2] }

func (m Mat3) Scale(s float64) Mat3 {
	var r Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = m[i][j] * s
		}
	}
	return r
}

// IsOrthonormal reports whether m^T m is the identity within eps.
func (m Mat3) IsOrthonormal(eps float64) bool {
	p := m.Transpose().Mul(m)
	id := Identity3()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if math.Abs(p[i][j]-id[i][j]) > eps {
				return false
			}
		}
	}
	return true
}

// Orthonormalized repairs small drift in a near-rotation matrix by
// Gram-Schmidt on its columns.
func (m Mat3) Orthonormalized() Mat3 {
	x := m.Col(0).Normalized()
	y := m.Col(1)
	y = y.Sub(x.Scale(x.Dot(y))).Normalized()
	z := x.Cross(y)
	return Mat3FromCols(x, y, z)
}

// Flat returns the matrix as a row-major stride-9 array for compute kernels.
func (m Mat3) Flat() [9]float64 {
	return [9]float64{
		m[0][0], m[0][1], m[0][2],
		m[1][0], m[1][1], m[1][2],
		m[2][0], m[2][1], m[2][2],
	}
}

// Mat4 is a row-major 4x4 homogeneous matrix. It exists as the interchange
// form of rigid transforms; no general 4x4 algebra is provided.
type Mat4 [4][4]float64

func Identity4() Mat4 {
	return Mat4{{1, 0, 0, 0}, {0, 1, 0, 0}, {0, 0, 1, 0}, {0, 0, 0, 1}}
}

func (m Mat4) Mul(o Mat4) Mat4 {
	var r Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			for k := 0; k < 4; k++ {
				r[i][j] += m[i][k] * o[k][j]
			}
		}
	}
	return r
}
