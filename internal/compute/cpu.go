package compute

import "math"

// CPUBackend is the serial reference implementation. The other backends
// are checked against it in tests.
type CPUBackend struct{}

func NewCPUBackend() *CPUBackend { return &CPUBackend{} }

func (c *CPUBackend) Name() string    { return "cpu" }
func (c *CPUBackend) Available() bool { return true }
func (c *CPUBackend) Cleanup()        {}

func (c *CPUBackend) TransformPoints(r [9]float64, t [3]float64, pts []float64) []float64 {
	out := make([]float64, len(pts))
	transformRange(r, t, pts, out, 0, len(pts)/3)
	return out
}

func (c *CPUBackend) ProjectPoints(k [9]float64, pts []float64) ([]float64, []float64) {
	n := len(pts) / 3
	px := make([]float64, n*2)
	depth := make([]float64, n)
	projectRange(k, pts, px, depth, 0, n)
	return px, depth
}

func (c *CPUBackend) NormalizeDirs(dirs []float64) []float64 {
	out := make([]float64, len(dirs))
	normalizeRange(dirs, out, 0, len(dirs)/3)
	return out
}

func (c *CPUBackend) RayPoints(origins, dirs []float64, t float64) []float64 {
	out := make([]float64, len(origins))
	rayRange(origins, dirs, t, out, 0, len(origins)/3)
	return out
}

// The range kernels below are shared between the serial and parallel
// backends; indices are in points, not floats.

func transformRange(r [9]float64, t [3]float64, pts, out []float64, start, end int) {
	for i := start; i < end; i++ {
		x, y, z := pts[i*3], pts[i*3+1], pts[i*3+2]
		out[i*3] = r[0]*x + r[1]*y + r[2]*z + t[0]
		out[i*3+1] = r[3]*x + r[4]*y + r[5]*z + t[1]
		out[i*3+2] = r[6]*x + r[7]*y + r[8]*z + t[2]
	}
}

func projectRange(k [9]float64, pts, px, depth []float64, start, end int) {
	for i := start; i < end; i++ {
		x, y, z := pts[i*3], pts[i*3+1], pts[i*3+2]
		depth[i] = z
		if z <= 0 {
			px[i*2], px[i*2+1] = 0, 0
			continue
		}
		nx, ny := x/z, y/z
		px[i*2] = k[0]*nx + k[1]*ny + k[2]
		px[i*2+1] = k[3]*nx + k[4]*ny + k[5]
	}
}

func normalizeRange(dirs, out []float64, start, end int) {
	for i := start; i < end; i++ {
		x, y, z := dirs[i*3], dirs[i*3+1], dirs[i*3+2]
		n := math.Sqrt(x*x + y*y + z*z)
		if n == 0 {
			continue
		}
		inv := 1 / n
		out[i*3] = x * inv
		out[i*3+1] = y * inv
		out[i*3+2] = z * inv
	}
}

func rayRange(origins, dirs []float64, t float64, out []float64, start, end int) {
	for i := start * 3; i < end*3; i++ {
		out[i] = origins[i] + t*dirs[i]
	}
}
