package viz

import (
	"math"
	"sort"

	"github.com/san-kum/trace3d/internal/geom"
)

// View is the orbiting eye used for terminal rendering. It is deliberately
// simpler than camera.Camera: rotation angles plus zoom, no intrinsics.
type View struct {
	Distance         float64
	Near             float64
	RotX, RotY, RotZ float64
	Zoom             float64
}

func NewView() *View {
	return &View{Distance: 50, Near: 0.1, Zoom: 1.0}
}

func (v *View) RotateX(a float64) { v.RotX += a }
func (v *View) RotateY(a float64) { v.RotY += a }
func (v *View) RotateZ(a float64) { v.RotZ += a }
func (v *View) ZoomIn()           { v.Zoom = math.Min(10, v.Zoom*1.2) }
func (v *View) ZoomOut()          { v.Zoom = math.Max(0.1, v.Zoom/1.2) }

func (v *View) Reset() {
	v.RotX, v.RotY, v.RotZ = 0, 0, 0
	v.Zoom = 1.0
}

// rotate applies the view rotation around each axis in X, Y, Z order.
func (v *View) rotate(p geom.Vec3) geom.Vec3 {
	cx, sx := math.Cos(v.RotX), math.Sin(v.RotX)
	p.Y, p.Z = p.Y*cx-p.Z*sx, p.Y*sx+p.Z*cx
	cy, sy := math.Cos(v.RotY), math.Sin(v.RotY)
	p.X, p.Z = p.X*cy+p.Z*sy, -p.X*sy+p.Z*cy
	cz, sz := math.Cos(v.RotZ), math.Sin(v.RotZ)
	p.X, p.Y = p.X*cz-p.Y*sz, p.X*sz+p.Y*cz
	return p
}

// Project converts a world point to sub-pixel canvas coordinates.
// Returns x, y, depth, and whether the point lands on the canvas.
func (v *View) Project(p geom.Vec3, sw, sh int) (int, int, float64, bool) {
	rot := v.rotate(p).Scale(v.Zoom)
	if rot.Z >= v.Distance-v.Near {
		return 0, 0, 0, false
	}
	scale := v.Distance / (v.Distance - rot.Z)
	minDim := float64(sh)
	if float64(sw) < minDim {
		minDim = float64(sw)
	}
	pScale := minDim / 3.0
	sx := int(rot.X*scale*pScale) + sw/2
	sy := int(-rot.Y*scale*pScale) + sh/2
	return sx, sy, rot.Z, sx >= 0 && sx < sw && sy >= 0 && sy < sh
}

type edge struct {
	a, b   geom.Vec3
	marker bool
}

// traceEdges flattens traces into drawable edges and marker points.
func traceEdges(traces []Trace) []edge {
	var edges []edge
	for _, t := range traces {
		switch {
		case t.Type == TraceCone:
			for i := range t.X {
				p := geom.Vec3{X: t.X[i], Y: t.Y[i], Z: t.Z[i]}
				edges = append(edges, edge{a: p, b: p, marker: true})
			}
		case t.Mode == ModeMarkers:
			for i := range t.X {
				p := geom.Vec3{X: t.X[i], Y: t.Y[i], Z: t.Z[i]}
				edges = append(edges, edge{a: p, b: p})
			}
		default:
			var prev geom.Vec3
			havePrev := false
			for i := range t.X {
				if math.IsNaN(t.X[i]) {
					havePrev = false
					continue
				}
				p := geom.Vec3{X: t.X[i], Y: t.Y[i], Z: t.Z[i]}
				if havePrev {
					edges = append(edges, edge{a: prev, b: p})
				}
				prev, havePrev = p, true
			}
		}
	}
	return edges
}

// fitScale picks a uniform scale that brings the scene into the unit-ish
// cube the projection expects.
func fitScale(edges []edge) float64 {
	maxAbs := 0.0
	for _, e := range edges {
		for _, p := range [2]geom.Vec3{e.a, e.b} {
			for _, c := range [3]float64{p.X, p.Y, p.Z} {
				if a := math.Abs(c); a > maxAbs {
					maxAbs = a
				}
			}
		}
	}
	if maxAbs == 0 {
		return 1
	}
	return 1 / maxAbs
}

type projectedEdge struct {
	x1, y1, x2, y2 int
	depth          float64
	marker         bool
}

// RenderTraces draws the traces onto the canvas with a painter's sort,
// the same way the live 3D wireframe views work.
func RenderTraces(c *Canvas, traces []Trace, view *View) {
	if c == nil || view == nil {
		return
	}
	edges := traceEdges(traces)
	if len(edges) == 0 {
		return
	}
	s := fitScale(edges)
	cw, ch := c.Width*2, c.Height*4

	proj := make([]projectedEdge, 0, len(edges))
	for _, e := range edges {
		x1, y1, d1, v1 := view.Project(e.a.Scale(s), cw, ch)
		x2, y2, d2, v2 := view.Project(e.b.Scale(s), cw, ch)
		if v1 || v2 {
			proj = append(proj, projectedEdge{x1, y1, x2, y2, (d1 + d2) / 2, e.marker})
		}
	}
	sort.Slice(proj, func(i, j int) bool { return proj[i].depth < proj[j].depth })

	for _, e := range proj {
		switch {
		case e.marker:
			c.FillDot(e.x1, e.y1, 1)
		case e.x1 == e.x2 && e.y1 == e.y2:
			c.Set(e.x1, e.y1)
		default:
			c.DrawLine(e.x1, e.y1, e.x2, e.y2)
		}
	}
}

// AxesTraces produces the world axes as three line traces, handy as a
// reference frame in rendered scenes.
func AxesTraces(length float64) []Trace {
	axes := [3]geom.Vec3{geom.UnitX, geom.UnitY, geom.UnitZ}
	colors := [3]string{"red", "green", "blue"}
	traces := make([]Trace, 0, 3)
	for i, axis := range axes {
		end := axis.Scale(length)
		t := LineTrace([][2][3]float64{{{0, 0, 0}, {end.X, end.Y, end.Z}}})
		t.Line = &LineStyle{Color: colors[i], Width: 3}
		t.Name = string("xyz"[i])
		traces = append(traces, t)
	}
	return traces
}
