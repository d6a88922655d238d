package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVec3Arithmetic(t *testing.T) {
	a := V(1, 2, 3)
	b := V(4, 5, 6)

	assert.Equal(t, V(5, 7, 9), a.Add(b))
	assert.Equal(t, V(-3, -3, -3), a.Sub(b))
	assert.Equal(t, V(2, 4, 6), a.Scale(2))
	assert.Equal(t, V(4, 10, 18), a.Mul(b))
	assert.Equal(t, 32.0, a.Dot(b))
}

func TestVec3Cross(t *testing.T) {
	assert.Equal(t, UnitZ, UnitX.Cross(UnitY))
	assert.Equal(t, UnitX, UnitY.Cross(UnitZ))
	assert.Equal(t, UnitY, UnitZ.Cross(UnitX))

	// Anti-commutative.
	a, b := V(1, 2, 3), V(-2, 0.5, 4)
	assert.Equal(t, a.Cross(b), b.Cross(a).Neg())
}

func TestVec3Normalized(t *testing.T) {
	v := V(3, 4, 0).Normalized()
	assert.InDelta(t, 1.0, v.Norm(), 1e-12)
	assert.InDelta(t, 0.6, v.X, 1e-12)
	assert.InDelta(t, 0.8, v.Y, 1e-12)

	// The zero vector stays zero instead of dividing by zero.
	assert.Equal(t, Vec3{}, Zero.Normalized())
}

func TestVec3Lerp(t *testing.T) {
	a, b := V(0, 0, 0), V(2, 4, 6)
	assert.Equal(t, a, a.Lerp(b, 0))
	assert.Equal(t, b, a.Lerp(b, 1))
	assert.Equal(t, V(1, 2, 3), a.Lerp(b, 0.5))
}

func TestVec3IsFinite(t *testing.T) {
	assert.True(t, V(1, 2, 3).IsFinite())
	assert.False(t, V(math.NaN(), 0, 0).IsFinite())
	assert.False(t, V(0, math.Inf(1), 0).IsFinite())
}

func TestFlattenRoundTrip(t *testing.T) {
	pts := []Vec3{V(1, 2, 3), V(4, 5, 6), V(7, 8, 9)}
	flat := Flatten(pts)
	require.Len(t, flat, 9)
	assert.Equal(t, pts, Unflatten(flat))
}
