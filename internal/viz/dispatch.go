package viz

import (
	"fmt"
	"math/rand"

	"github.com/san-kum/trace3d/internal/geom"
)

// Point clouds above this size are subsampled before tracing so figures
// stay responsive in the browser.
const MaxCloudPoints = 10000

// MakeTraces converts arbitrary geometry objects into traces. Supported
// inputs: anything implementing Visualizable, geom.Vec3, []geom.Vec3,
// geom.Ray and []geom.Ray. Any other type is an error.
func MakeTraces(objs ...any) ([]Trace, error) {
	namer := NewNamer()
	var all []Trace
	for _, obj := range objs {
		traces, err := tracesFor(obj)
		if err != nil {
			return nil, err
		}
		namer.Assign(traces, obj)
		all = append(all, traces...)
	}
	return all, nil
}

func tracesFor(obj any) ([]Trace, error) {
	switch o := obj.(type) {
	case Visualizable:
		return o.MakeTraces(), nil
	case geom.Vec3:
		return PointTraces([]geom.Vec3{o}), nil
	case []geom.Vec3:
		return PointTraces(o), nil
	case geom.Ray:
		return RayTraces([]geom.Ray{o}), nil
	case []geom.Ray:
		return RayTraces(o), nil
	default:
		return nil, fmt.Errorf("viz: cannot visualize %T", obj)
	}
}

// PointTraces renders a point cloud as a single markers trace, subsampled
// above MaxCloudPoints.
func PointTraces(pts []geom.Vec3) []Trace {
	pts = Subsample(pts, MaxCloudPoints)
	t := Trace{
		Type:   TraceScatter3D,
		Mode:   ModeMarkers,
		X:      make(Coords, len(pts)),
		Y:      make(Coords, len(pts)),
		Z:      make(Coords, len(pts)),
		Marker: &MarkerStyle{Size: 2},
	}
	for i, p := range pts {
		t.X[i], t.Y[i], t.Z[i] = p.X, p.Y, p.Z
	}
	return []Trace{t}
}

// RayTraces renders rays as one lines trace for the shafts plus one cone
// trace for the tips.
func RayTraces(rays []geom.Ray) []Trace {
	if len(rays) == 0 {
		return nil
	}
	segs := make([][2][3]float64, len(rays))
	cone := Trace{
		Type:     TraceCone,
		X:        make(Coords, len(rays)),
		Y:        make(Coords, len(rays)),
		Z:        make(Coords, len(rays)),
		U:        make(Coords, len(rays)),
		V:        make(Coords, len(rays)),
		W:        make(Coords, len(rays)),
		SizeMode: "absolute",
		SizeRef:  0.5,
	}
	for i, r := range rays {
		end := r.End()
		segs[i] = [2][3]float64{
			{r.Origin.X, r.Origin.Y, r.Origin.Z},
			{end.X, end.Y, end.Z},
		}
		// Cone sits at the tip, pointing along the direction.
		tip := r.Dir.Normalized().Scale(r.Norm() * 0.2)
		cone.X[i], cone.Y[i], cone.Z[i] = end.X, end.Y, end.Z
		cone.U[i], cone.V[i], cone.W[i] = tip.X, tip.Y, tip.Z
	}
	lines := LineTrace(segs)
	hide := false
	cone.ShowLegend = &hide
	return []Trace{lines, cone}
}

// Subsample returns at most limit points, chosen uniformly at random with
// a fixed seed so repeated figure builds are stable.
func Subsample(pts []geom.Vec3, limit int) []geom.Vec3 {
	if len(pts) <= limit {
		return pts
	}
	rng := rand.New(rand.NewSource(int64(len(pts))))
	idx := rng.Perm(len(pts))[:limit]
	out := make([]geom.Vec3, limit)
	for i, j := range idx {
		out[i] = pts[j]
	}
	return out
}
