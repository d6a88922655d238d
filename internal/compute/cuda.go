//go:build cuda

package compute

/*
#cgo CFLAGS: -I/opt/cuda/include
#cgo LDFLAGS: -L/opt/cuda/lib64 -L${SRCDIR} -lcudart -lkernels -lstdc++
#include <stdlib.h>

extern int cuda_device_count();
extern const char* cuda_device_name_get();
extern void transform_points_gpu(float* r, float* t, float* pts, float* out, int n);
*/
import "C"
import "unsafe"

type CUDABackend struct {
	available  bool
	deviceName string
}

func NewCUDABackend() *CUDABackend {
	count := int(C.cuda_device_count())
	name := ""
	if count > 0 {
		name = C.GoString(C.cuda_device_name_get())
	}
	return &CUDABackend{
		available:  count > 0,
		deviceName: name,
	}
}

func (c *CUDABackend) Name() string {
	if c.available {
		return "cuda (" + c.deviceName + ")"
	}
	return "cuda (not available)"
}

func (c *CUDABackend) Available() bool { return c.available }
func (c *CUDABackend) Cleanup()        {}

func (c *CUDABackend) TransformPoints(r [9]float64, t [3]float64, pts []float64) []float64 {
	if !c.available || len(pts) == 0 {
		return NewCPUBackend().TransformPoints(r, t, pts)
	}

	n := len(pts) / 3
	rF := make([]float32, 9)
	tF := make([]float32, 3)
	ptsF := make([]float32, len(pts))
	outF := make([]float32, len(pts))

	for i := range r {
		rF[i] = float32(r[i])
	}
	for i := range t {
		tF[i] = float32(t[i])
	}
	for i := range pts {
		ptsF[i] = float32(pts[i])
	}

	C.transform_points_gpu(
		(*C.float)(unsafe.Pointer(&rF[0])),
		(*C.float)(unsafe.Pointer(&tF[0])),
		(*C.float)(unsafe.Pointer(&ptsF[0])),
		(*C.float)(unsafe.Pointer(&outF[0])),
		C.int(n),
	)

	out := make([]float64, len(pts))
	for i := range outF {
		out[i] = float64(outF[i])
	}
	return out
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
