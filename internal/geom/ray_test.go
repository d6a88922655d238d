package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRayAt(t *testing.T) {
	r := NewRay(V(1, 0, 0), V(0, 2, 0))

	assert.Equal(t, r.Origin, r.At(0))
	assert.Equal(t, V(1, 2, 0), r.At(1))
	assert.Equal(t, r.At(1), r.End())
	assert.Equal(t, V(1, 1, 0), r.At(0.5))
}

func TestRayTo(t *testing.T) {
	r := RayTo(V(1, 1, 1), V(4, 5, 1))
	assert.Equal(t, V(4, 5, 1), r.At(1))
	assert.Equal(t, 5.0, r.Norm())
}

func TestRayNormalized(t *testing.T) {
	r := NewRay(V(0, 0, 0), V(0, 0, 10)).Normalized()
	assert.Equal(t, V(0, 0, 1), r.Dir)
	// Directions need not be unit length in general; Norm exposes it.
	assert.Equal(t, 1.0, r.Norm())
}
