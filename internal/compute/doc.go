// Package compute provides interchangeable numeric backends for bulk
// geometry kernels.
//
// The package automatically selects the best available backend:
//
//   - cuda: GPU-accelerated point transforms (build with -tags cuda)
//   - parallel: worker-chunked CPU kernels on multi-core machines
//   - cpu: serial fallback and reference implementation
//
// All backends compute identical results within floating-point tolerance;
// only throughput differs. Select one explicitly with:
//
//	b, _ := compute.ByName("parallel")
//	compute.SetBackend(b)
package compute
