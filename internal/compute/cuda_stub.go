//go:build !cuda

package compute

type CUDABackend struct{}

func NewCUDABackend() *CUDABackend {
	return &CUDABackend{}
}

func (c *CUDABackend) Name() string    { return "cuda (not available)" }
func (c *CUDABackend) Available() bool { return false }
func (c *CUDABackend) Cleanup()        {}

func (c *CUDABackend) TransformPoints(r [9]float64, t [3]float64, pts []float64) []float64 {
	return NewCPUBackend().TransformPoints(r, t, pts)
}

func (c *CUDABackend) ProjectPoints(k [9]float64, pts []float64) ([]float64, []float64) {
	return NewCPUBackend().ProjectPoints(k, pts)
}

func (c *CUDABackend) NormalizeDirs(dirs []float64) []float64 {
	return NewCPUBackend().NormalizeDirs(dirs)
}

func (c *CUDABackend) RayPoints(origins, dirs []float64, t float64) []float64 {
	return NewCPUBackend().RayPoints(origins, dirs, t)
}
