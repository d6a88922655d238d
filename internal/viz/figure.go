package viz

import (
	"encoding/json"

	"github.com/cespare/xxhash/v2"
)

type Scene3D struct {
	AspectMode string `json:"aspectmode,omitempty"`
}

type Layout struct {
	Title      string   `json:"title,omitempty"`
	Width      int      `json:"width,omitempty"`
	Height     int      `json:"height,omitempty"`
	ShowLegend bool     `json:"showlegend"`
	Scene      *Scene3D `json:"scene,omitempty"`
}

// Figure is a complete plotly-style figure: traces plus layout.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// NewFigure dispatches every object through MakeTraces and assembles a
// figure with the default layout.
func NewFigure(objs ...any) (*Figure, error) {
	traces, err := MakeTraces(objs...)
	if err != nil {
		return nil, err
	}
	return &Figure{
		Data: traces,
		Layout: Layout{
			ShowLegend: true,
			Scene:      &Scene3D{AspectMode: "data"},
		},
	}, nil
}

func (f *Figure) JSON() ([]byte, error) {
	return json.Marshal(f)
}

// Fingerprint hashes the figure content. Two figures with identical traces
// and layout share a fingerprint; the serve loop uses this to skip
// redundant pushes.
func (f *Figure) Fingerprint() (uint64, error) {
	data, err := f.JSON()
	if err != nil {
		return 0, err
	}
	return xxhash.Sum64(data), nil
}
