package config

import "sort"

var Presets = map[string]*Scene{
	"orbit": {
		Name:     "orbit",
		ShowAxes: true,
		Clouds: []CloudConfig{
			{Kind: "sphere", Count: 800, Radius: 2},
		},
		Cameras: []CameraConfig{
			{Position: [3]float64{5, 0, 2}, Width: 128, Height: 96, Focal: 70},
		},
	},
	"stereo": {
		Name:     "stereo",
		ShowAxes: true,
		Clouds: []CloudConfig{
			{Kind: "grid", Count: 400, Radius: 3},
		},
		Cameras: []CameraConfig{
			{Position: [3]float64{-1, -4, 2}, Width: 96, Height: 72, Focal: 50},
			{Position: [3]float64{1, -4, 2}, Width: 96, Height: 72, Focal: 50},
		},
	},
	"helix": {
		Name:     "helix",
		ShowAxes: true,
		Clouds: []CloudConfig{
			{Kind: "helix", Count: 600, Radius: 1.5},
		},
		Rays: []RayConfig{
			{Origin: [3]float64{0, 0, -2}, Dir: [3]float64{0, 0, 4}},
		},
		Cameras: []CameraConfig{
			{Position: [3]float64{4, 4, 1}, Width: 64, Height: 48, FOVDeg: 60},
		},
	},
	"frames": {
		Name: "frames",
		Rays: []RayConfig{
			{Origin: [3]float64{0, 0, 0}, Dir: [3]float64{1, 1, 0}},
			{Origin: [3]float64{0, 0, 0}, Dir: [3]float64{-1, 1, 0}},
		},
		Frames: []FrameConfig{
			{Position: [3]float64{2, 0, 0}, Target: [3]float64{0, 0, 0}},
			{Position: [3]float64{0, 2, 1}, Target: [3]float64{0, 0, 0}},
		},
	},
}

func GetPreset(name string) *Scene {
	return Presets[name]
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
