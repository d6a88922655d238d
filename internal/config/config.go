package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/trace3d/internal/camera"
	"github.com/san-kum/trace3d/internal/geom"
	"github.com/san-kum/trace3d/internal/transform"
)

const (
	DefaultWidth  = 64
	DefaultHeight = 48
	DefaultFocal  = 35.0
	DefaultCount  = 500
	DefaultRadius = 2.0
)

var ErrUnknownCloudKind = errors.New("config: unknown cloud kind")

// Scene describes the geometry of a figure in yaml form.
type Scene struct {
	Name     string         `yaml:"name"`
	ShowAxes bool           `yaml:"show_axes"`
	Clouds   []CloudConfig  `yaml:"clouds"`
	Rays     []RayConfig    `yaml:"rays"`
	Cameras  []CameraConfig `yaml:"cameras"`
	Frames   []FrameConfig  `yaml:"frames"`
}

// CloudConfig generates a synthetic point cloud. Kinds: sphere, grid,
// helix.
type CloudConfig struct {
	Kind   string     `yaml:"kind"`
	Count  int        `yaml:"count"`
	Radius float64    `yaml:"radius"`
	Center [3]float64 `yaml:"center"`
}

type RayConfig struct {
	Origin [3]float64 `yaml:"origin"`
	Dir    [3]float64 `yaml:"dir"`
}

type CameraConfig struct {
	Position [3]float64 `yaml:"position"`
	Target   [3]float64 `yaml:"target"`
	Width    int        `yaml:"width"`
	Height   int        `yaml:"height"`
	Focal    float64    `yaml:"focal"`
	FOVDeg   float64    `yaml:"fov_deg"`
}

// FrameConfig places a coordinate frame, drawn as its basis axes.
type FrameConfig struct {
	Position [3]float64 `yaml:"position"`
	Target   [3]float64 `yaml:"target"`
}

func DefaultScene() *Scene {
	return &Scene{
		Name:     "scene",
		ShowAxes: true,
		Clouds: []CloudConfig{
			{Kind: "sphere", Count: DefaultCount, Radius: DefaultRadius},
		},
		Cameras: []CameraConfig{
			{
				Position: [3]float64{4, 4, 2},
				Width:    DefaultWidth,
				Height:   DefaultHeight,
				Focal:    DefaultFocal,
			},
		},
	}
}

func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	scene := DefaultScene()
	scene.Clouds, scene.Cameras = nil, nil
	if err := yaml.Unmarshal(data, scene); err != nil {
		return nil, err
	}
	return scene, nil
}

func Save(path string, scene *Scene) error {
	data, err := yaml.Marshal(scene)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func vec(a [3]float64) geom.Vec3 { return geom.Vec3{X: a[0], Y: a[1], Z: a[2]} }

// Build materializes the scene into geometry objects ready for the
// figure builder, in declaration order: clouds, rays, frames, cameras.
func (s *Scene) Build() ([]any, error) {
	var objs []any

	for _, c := range s.Clouds {
		pts, err := c.Generate()
		if err != nil {
			return nil, err
		}
		objs = append(objs, pts)
	}

	for _, r := range s.Rays {
		objs = append(objs, geom.NewRay(vec(r.Origin), vec(r.Dir)))
	}

	for _, f := range s.Frames {
		tr, err := transform.LookAt(vec(f.Position), vec(f.Target))
		if err != nil {
			return nil, fmt.Errorf("config: frame: %w", err)
		}
		objs = append(objs, tr)
	}

	for _, cc := range s.Cameras {
		cam, err := cc.Build()
		if err != nil {
			return nil, err
		}
		objs = append(objs, cam)
	}

	return objs, nil
}

// Build constructs the posed camera, preferring an explicit focal length
// over a field of view.
func (cc CameraConfig) Build() (camera.Camera, error) {
	w, h := cc.Width, cc.Height
	if w == 0 {
		w = DefaultWidth
	}
	if h == 0 {
		h = DefaultHeight
	}

	var spec camera.Pinhole
	var err error
	switch {
	case cc.Focal > 0:
		spec, err = camera.PinholeFromFocal(w, h, cc.Focal)
	case cc.FOVDeg > 0:
		spec, err = camera.PinholeFromFOV(w, h, cc.FOVDeg*math.Pi/180)
	default:
		spec, err = camera.PinholeFromFocal(w, h, DefaultFocal)
	}
	if err != nil {
		return camera.Camera{}, err
	}
	return camera.FromLookAt(spec, vec(cc.Position), vec(cc.Target))
}

// Generate produces the cloud's points deterministically, so rebuilding a
// scene always yields the same figure.
func (c CloudConfig) Generate() ([]geom.Vec3, error) {
	count := c.Count
	if count <= 0 {
		count = DefaultCount
	}
	radius := c.Radius
	if radius <= 0 {
		radius = DefaultRadius
	}
	center := vec(c.Center)

	switch c.Kind {
	case "sphere", "":
		return fibonacciSphere(count, radius, center), nil
	case "grid":
		return planeGrid(count, radius, center), nil
	case "helix":
		return helix(count, radius, center), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCloudKind, c.Kind)
	}
}

// fibonacciSphere spreads points evenly over a sphere via the golden
// angle.
func fibonacciSphere(n int, radius float64, center geom.Vec3) []geom.Vec3 {
	golden := math.Pi * (3 - math.Sqrt(5))
	pts := make([]geom.Vec3, n)
	for i := 0; i < n; i++ {
		z := 1 - 2*(float64(i)+0.5)/float64(n)
		r := math.Sqrt(1 - z*z)
		theta := golden * float64(i)
		p := geom.Vec3{
			X: r * math.Cos(theta),
			Y: r * math.Sin(theta),
			Z: z,
		}
		pts[i] = center.Add(p.Scale(radius))
	}
	return pts
}

func planeGrid(n int, extent float64, center geom.Vec3) []geom.Vec3 {
	side := int(math.Ceil(math.Sqrt(float64(n))))
	if side < 2 {
		return []geom.Vec3{center}
	}
	pts := make([]geom.Vec3, 0, side*side)
	for i := 0; i < side; i++ {
		for j := 0; j < side; j++ {
			pts = append(pts, center.Add(geom.Vec3{
				X: (2*float64(i)/float64(side-1) - 1) * extent,
				Y: (2*float64(j)/float64(side-1) - 1) * extent,
			}))
		}
	}
	return pts
}

func helix(n int, radius float64, center geom.Vec3) []geom.Vec3 {
	const turns = 4
	pts := make([]geom.Vec3, n)
	for i := 0; i < n; i++ {
		t := float64(i) / float64(n-1)
		angle := turns * 2 * math.Pi * t
		pts[i] = center.Add(geom.Vec3{
			X: radius * math.Cos(angle),
			Y: radius * math.Sin(angle),
			Z: (t - 0.5) * 2 * radius,
		})
	}
	return pts
}
