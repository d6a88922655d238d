package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMat3Identity(t *testing.T) {
	id := Identity3()
	v := V(1, 2, 3)
	assert.Equal(t, v, id.MulVec(v))
	assert.Equal(t, id, id.Mul(id))
	assert.Equal(t, 1.0, id.Det())
	assert.Equal(t, 3.0, id.Trace())
}

func TestMat3Transpose(t *testing.T) {
	m := Mat3{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}}
	mt := m.Transpose()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			assert.Equal(t, m[i][j], mt[j][i])
		}
	}
}

func TestRotZ(t *testing.T) {
	r := RotZ(math.Pi / 2)
	got := r.MulVec(UnitX)
	assert.InDelta(t, 0, got.X, 1e-12)
	assert.InDelta(t, 1, got.Y, 1e-12)
	assert.InDelta(t, 0, got.Z, 1e-12)

	assert.InDelta(t, 1.0, r.Det(), 1e-12)
	assert.True(t, r.IsOrthonormal(1e-9))
}

func TestMat3FromCols(t *testing.T) {
	m := Mat3FromCols(V(1, 2, 3), V(4, 5, 6), V(7, 8, 9))
	assert.Equal(t, V(1, 2, 3), m.Col(0))
	assert.Equal(t, V(4, 5, 6), m.Col(1))
	assert.Equal(t, V(7, 8, 9), m.Col(2))
}

func TestOrthonormalized(t *testing.T) {
	// Perturb a rotation and check the repair restores orthonormality.
	r := RotZ(0.7)
	r[0][0] += 1e-3
	r[1][2] -= 1e-3
	assert.False(t, r.IsOrthonormal(1e-6))

	fixed := r.Orthonormalized()
	assert.True(t, fixed.IsOrthonormal(1e-9))
	assert.InDelta(t, 1.0, fixed.Det(), 1e-9)
}

func TestMat3Flat(t *testing.T) {
	m := Mat3{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}}
	assert.Equal(t, [9]float64{1, 2, 3, 4, 5, 6, 7, 8, 9}, m.Flat())
}
