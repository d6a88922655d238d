package compute

import "runtime"

// Backend executes bulk geometry kernels. All kernels operate on flat
// stride-3 float64 slices; callers pack and unpack with geom.Flatten and
// geom.Unflatten.
type Backend interface {
	Name() string
	Available() bool

	// TransformPoints applies p' = R*p + t to every point.
	TransformPoints(r [9]float64, t [3]float64, pts []float64) []float64
	// ProjectPoints applies the pinhole projection K*(x/z, y/z, 1) to every
	// point, returning stride-2 pixel coordinates and per-point depths.
	// Points at or behind z=0 get their depth reported and zeroed pixels.
	ProjectPoints(k [9]float64, pts []float64) (px []float64, depth []float64)
	// NormalizeDirs rescales every stride-3 direction to unit length.
	// Zero directions stay zero.
	NormalizeDirs(dirs []float64) []float64
	// RayPoints evaluates origin + t*dir for every origin/dir pair.
	RayPoints(origins, dirs []float64, t float64) []float64

	Cleanup()
}

var activeBackend Backend

func init() {
	activeBackend = AutoSelectBackend()
}

func SetBackend(b Backend) {
	if activeBackend != nil {
		activeBackend.Cleanup()
	}
	activeBackend = b
}

func GetBackend() Backend {
	return activeBackend
}

// AutoSelectBackend picks CUDA when compiled in and a device is present,
// otherwise the parallel CPU backend on multi-core machines.
func AutoSelectBackend() Backend {
	cuda := NewCUDABackend()
	if cuda.Available() {
		return cuda
	}
	if runtime.NumCPU() > 1 {
		return NewParallelBackend()
	}
	return NewCPUBackend()
}

// ByName resolves a backend by its flag name.
func ByName(name string) (Backend, bool) {
	switch name {
	case "cpu":
		return NewCPUBackend(), true
	case "parallel":
		return NewParallelBackend(), true
	case "cuda":
		return NewCUDABackend(), true
	case "auto", "":
		return AutoSelectBackend(), true
	}
	return nil, false
}
