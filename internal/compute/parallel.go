package compute

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Small batches are not worth the goroutine overhead.
const parallelThreshold = 1024

// ParallelBackend chunks kernels across worker goroutines. Below
// parallelThreshold points it runs the serial kernels directly.
type ParallelBackend struct {
	workers int
}

func NewParallelBackend() *ParallelBackend {
	return &ParallelBackend{workers: runtime.NumCPU()}
}

func (p *ParallelBackend) Name() string    { return "parallel" }
func (p *ParallelBackend) Available() bool { return true }
func (p *ParallelBackend) Cleanup()        {}

// chunked splits [0, n) into worker ranges and runs fn on each.
func (p *ParallelBackend) chunked(n int, fn func(start, end int)) {
	if n < parallelThreshold || p.workers < 2 {
		fn(0, n)
		return
	}
	var g errgroup.Group
	chunk := (n + p.workers - 1) / p.workers
	for w := 0; w < p.workers; w++ {
		start := w * chunk
		end := min(start+chunk, n)
		if start >= end {
			break
		}
		g.Go(func() error {
			fn(start, end)
			return nil
		})
	}
	g.Wait() //nolint:errcheck // kernels never fail
}

func (p *ParallelBackend) TransformPoints(r [9]float64, t [3]float64, pts []float64) []float64 {
	out := make([]float64, len(pts))
	p.chunked(len(pts)/3, func(start, end int) {
		transformRange(r, t, pts, out, start, end)
	})
	return out
}

func (p *ParallelBackend) ProjectPoints(k [9]float64, pts []float64) ([]float64, []float64) {
	n := len(pts) / 3
	px := make([]float64, n*2)
	depth := make([]float64, n)
	p.chunked(n, func(start, end int) {
		projectRange(k, pts, px, depth, start, end)
	})
	return px, depth
}

func (p *ParallelBackend) NormalizeDirs(dirs []float64) []float64 {
	out := make([]float64, len(dirs))
	p.chunked(len(dirs)/3, func(start, end int) {
		normalizeRange(dirs, out, start, end)
	})
	return out
}

func (p *ParallelBackend) RayPoints(origins, dirs []float64, t float64) []float64 {
	out := make([]float64, len(origins))
	p.chunked(len(origins)/3, func(start, end int) {
		rayRange(origins, dirs, t, out, start, end)
	})
	return out
}
