package viz

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

type TraceType string

const (
	TraceScatter3D TraceType = "scatter3d"
	TraceCone      TraceType = "cone"
)

type Mode string

const (
	ModeLines        Mode = "lines"
	ModeMarkers      Mode = "markers"
	ModeLinesMarkers Mode = "lines+markers"
)

// Coords is a coordinate array in a trace. NaN entries marshal to null,
// which scatter3d interprets as a break between line segments.
type Coords []float64

func (c Coords) MarshalJSON() ([]byte, error) {
	var b strings.Builder
	b.WriteByte('[')
	for i, v := range c {
		if i > 0 {
			b.WriteByte(',')
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			b.WriteString("null")
		} else {
			b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		}
	}
	b.WriteByte(']')
	return []byte(b.String()), nil
}

// UnmarshalJSON is the inverse of MarshalJSON: null entries come back as
// NaN segment breaks.
func (c *Coords) UnmarshalJSON(data []byte) error {
	var raw []*float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Coords, len(raw))
	for i, v := range raw {
		if v == nil {
			out[i] = math.NaN()
		} else {
			out[i] = *v
		}
	}
	*c = out
	return nil
}

type LineStyle struct {
	Color string  `json:"color,omitempty"`
	Width float64 `json:"width,omitempty"`
}

type MarkerStyle struct {
	Color string  `json:"color,omitempty"`
	Size  float64 `json:"size,omitempty"`
}

// Trace is one renderable unit of a figure, shaped after a plotly trace.
type Trace struct {
	Type        TraceType    `json:"type"`
	Mode        Mode         `json:"mode,omitempty"`
	X           Coords       `json:"x"`
	Y           Coords       `json:"y"`
	Z           Coords       `json:"z"`
	U           Coords       `json:"u,omitempty"`
	V           Coords       `json:"v,omitempty"`
	W           Coords       `json:"w,omitempty"`
	Name        string       `json:"name,omitempty"`
	LegendGroup string       `json:"legendgroup,omitempty"`
	ShowLegend  *bool        `json:"showlegend,omitempty"`
	Line        *LineStyle   `json:"line,omitempty"`
	Marker      *MarkerStyle `json:"marker,omitempty"`
	// SizeMode/SizeRef control cone tip scaling.
	SizeMode string  `json:"sizemode,omitempty"`
	SizeRef  float64 `json:"sizeref,omitempty"`
}

// Visualizable is the capability protocol of the figure builder: any type
// that can produce traces participates in MakeTraces and figure assembly.
type Visualizable interface {
	MakeTraces() []Trace
}

// segmentBreak separates line segments inside a single lines trace.
var segmentBreak = math.NaN()

// LineTrace builds a single scatter3d lines trace from point pairs laid
// out as [start0, end0, start1, end1, ...] flat stride-3 coordinates.
func LineTrace(segments [][2][3]float64) Trace {
	n := len(segments)
	t := Trace{Type: TraceScatter3D, Mode: ModeLines}
	t.X = make(Coords, 0, n*3)
	t.Y = make(Coords, 0, n*3)
	t.Z = make(Coords, 0, n*3)
	for _, s := range segments {
		t.X = append(t.X, s[0][0], s[1][0], segmentBreak)
		t.Y = append(t.Y, s[0][1], s[1][1], segmentBreak)
		t.Z = append(t.Z, s[0][2], s[1][2], segmentBreak)
	}
	return t
}
