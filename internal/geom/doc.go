// Package geom provides the primitive 3D value types: vectors, matrices
// and rays. Everything is an immutable value; methods return new values
// and never mutate the receiver.
//
// Batches of primitives are plain slices ([]Vec3, []Ray). Bulk operations
// over large batches go through the compute package, which picks the best
// available backend:
//
//	pts := compute.GetBackend().TransformPoints(r.Flat(), t, geom.Flatten(cloud))
package geom
