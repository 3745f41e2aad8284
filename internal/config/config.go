// Package config loads the YAML scene description the showcase builds its
// scene, camera, lights, and per-frame motions from.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/Carmen-Shannon/oxy-showcase/common"
	"github.com/Carmen-Shannon/oxy-showcase/engine/model"
	"gopkg.in/yaml.v2"
)

//go:embed default.yaml
var defaultYAML []byte

var (
	// ErrInvalidConfig is wrapped by every validation failure.
	ErrInvalidConfig = errors.New("config: invalid")

	// ErrUnknownMesh is returned when an object names a mesh that is not declared.
	ErrUnknownMesh = errors.New("config: unknown mesh")

	// ErrUnknownMaterial is returned when an object names a material that is not declared.
	ErrUnknownMaterial = errors.New("config: unknown material")

	// ErrUnknownMotion is returned for a motion type other than bounce, float, orbit or spin.
	ErrUnknownMotion = errors.New("config: unknown motion type")

	// ErrUnknownLight is returned for a light type other than spot, point or directional.
	ErrUnknownLight = errors.New("config: unknown light type")
)

// Config is the complete showcase description.
type Config struct {
	Window    WindowConfig              `yaml:"window"`
	Renderer  RendererConfig            `yaml:"renderer"`
	Engine    EngineConfig              `yaml:"engine"`
	Scene     SceneConfig               `yaml:"scene"`
	Camera    CameraConfig              `yaml:"camera"`
	Lights    []LightConfig             `yaml:"lights"`
	Meshes    map[string]model.Spec     `yaml:"meshes"`
	Materials map[string]MaterialConfig `yaml:"materials"`
	Objects   []ObjectConfig            `yaml:"objects"`
}

type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`

	// optional resize limits, zero keeps the window defaults
	MinWidth  int `yaml:"minWidth"`
	MinHeight int `yaml:"minHeight"`
	MaxWidth  int `yaml:"maxWidth"`
	MaxHeight int `yaml:"maxHeight"`
}

type RendererConfig struct {
	MSAA     int  `yaml:"msaa"` // 1 or 4
	VSync    bool `yaml:"vsync"`
	Software bool `yaml:"software"`
}

// MaxRate bounds the engine tick rate and frame limit, in frames per second.
const MaxRate = 10000

type EngineConfig struct {
	TickRate   float64 `yaml:"tickRate"`
	FrameLimit float64 `yaml:"frameLimit"`
}

type SceneConfig struct {
	Name           string `yaml:"name"`
	Background     string `yaml:"background"`
	Ambient        string `yaml:"ambient"`
	FrustumCulling bool   `yaml:"frustumCulling"`
}

// CameraConfig places the orbit camera. Spin is the per-frame azimuth
// increment in radians applied while the showcase runs.
type CameraConfig struct {
	Position [3]float32 `yaml:"position"`
	Target   [3]float32 `yaml:"target"`
	Fov      float32    `yaml:"fov"`
	Near     float32    `yaml:"near"`
	Far      float32    `yaml:"far"`
	Spin     float64    `yaml:"spin"`
}

// LightConfig describes one light. Angle is the spot half-angle in radians and
// Penumbra the fraction of it that fades, as in three.js. Range 0 is unlimited.
type LightConfig struct {
	Type      string     `yaml:"type"`
	Color     string     `yaml:"color"`
	Intensity float32    `yaml:"intensity"`
	Range     float32    `yaml:"range"`
	Angle     float32    `yaml:"angle"`
	Penumbra  float32    `yaml:"penumbra"`
	Position  [3]float32 `yaml:"position"`
	Target    [3]float32 `yaml:"target"`
}

// MaterialConfig describes a surface. Opacity defaults to 1 when omitted.
type MaterialConfig struct {
	Color       string   `yaml:"color"`
	Roughness   float32  `yaml:"roughness"`
	Metalness   float32  `yaml:"metalness"`
	Opacity     *float32 `yaml:"opacity"`
	Transparent bool     `yaml:"transparent"`
}

// ObjectConfig places one mesh instance. Scale defaults to 1 when omitted.
type ObjectConfig struct {
	Name     string         `yaml:"name"`
	Mesh     string         `yaml:"mesh"`
	Material string         `yaml:"material"`
	Position [3]float32     `yaml:"position"`
	Rotation [3]float32     `yaml:"rotation"`
	Scale    *[3]float32    `yaml:"scale"`
	Motion   []MotionConfig `yaml:"motion"`
}

// MotionConfig is one per-frame rule. Only the fields of its Type are read.
type MotionConfig struct {
	Type string `yaml:"type"` // bounce, float, orbit or spin

	// bounce and float
	Axis string `yaml:"axis"`

	// bounce
	Velocity float64 `yaml:"velocity"`
	Min      float64 `yaml:"min"`
	Max      float64 `yaml:"max"`

	// float
	Amplitude float64 `yaml:"amplitude"`
	Frequency float64 `yaml:"frequency"`
	Baseline  float64 `yaml:"baseline"`

	// orbit, angles in degrees
	Center [3]float64 `yaml:"center"`
	Radius float64    `yaml:"radius"`
	Angle  float64    `yaml:"angle"`
	Step   float64    `yaml:"step"`

	// spin, radians per frame
	Rate [3]float64 `yaml:"rate"`
}

// Default returns the embedded showcase scene.
//
// Returns:
//   - *Config: the default configuration
func Default() *Config {
	c, err := Parse(defaultYAML)
	if err != nil {
		panic(fmt.Sprintf("config: embedded default is invalid: %v", err))
	}
	return c
}

// Load reads and validates a YAML config file. An empty path loads the
// embedded default.
//
// Parameters:
//   - path: the YAML file, or ""
//
// Returns:
//   - *Config: the parsed configuration
//   - error: read, decode or validation error
func Load(path string) (*Config, error) {
	if path == "" {
		return Parse(defaultYAML)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	defer f.Close()

	c := &Config{}
	dec := yaml.NewDecoder(f)
	dec.SetStrict(true)
	if err := dec.Decode(c); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates YAML config data. Unknown keys are rejected.
//
// Parameters:
//   - data: the YAML document
//
// Returns:
//   - *Config: the parsed configuration
//   - error: decode or validation error
func Parse(data []byte) (*Config, error) {
	c := &Config{}
	if err := yaml.UnmarshalStrict(data, c); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks every cross reference, color, light and motion, returning
// all problems joined.
//
// Returns:
//   - error: nil, or the joined validation errors
func (c *Config) Validate() error {
	var errs []error
	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		invalid("window size %dx%d", c.Window.Width, c.Window.Height)
	}
	w := c.Window
	if min(w.MinWidth, w.MinHeight, w.MaxWidth, w.MaxHeight) < 0 ||
		(w.MaxWidth > 0 && w.MinWidth > w.MaxWidth) || (w.MaxHeight > 0 && w.MinHeight > w.MaxHeight) {
		invalid("window limits %dx%d..%dx%d", w.MinWidth, w.MinHeight, w.MaxWidth, w.MaxHeight)
	}
	if c.Renderer.MSAA != 1 && c.Renderer.MSAA != 4 {
		invalid("msaa %d is not 1 or 4", c.Renderer.MSAA)
	}
	for _, rate := range []float64{c.Engine.TickRate, c.Engine.FrameLimit} {
		if !(rate >= 0 && rate <= MaxRate) {
			invalid("rate %v outside 0..%v", rate, MaxRate)
		}
	}
	for _, hex := range []string{c.Scene.Background, c.Scene.Ambient} {
		if _, err := common.ParseColor(hex); err != nil {
			errs = append(errs, fmt.Errorf("%w: scene: %w", ErrInvalidConfig, err))
		}
	}

	cam := c.Camera
	if cam.Fov <= 0 || cam.Fov >= 180 || cam.Near <= 0 || cam.Far <= cam.Near {
		invalid("camera fov %v clip %v..%v", cam.Fov, cam.Near, cam.Far)
	}
	if cam.Position == cam.Target {
		invalid("camera position equals its target")
	}

	for i, l := range c.Lights {
		if _, err := l.Build(); err != nil {
			errs = append(errs, fmt.Errorf("light %d: %w", i, err))
		}
	}

	for name, m := range c.Materials {
		if _, err := m.Build(name); err != nil {
			errs = append(errs, fmt.Errorf("material %q: %w", name, err))
		}
	}

	for i, o := range c.Objects {
		label := o.Name
		if label == "" {
			label = fmt.Sprintf("#%d", i)
		}
		if _, ok := c.Meshes[o.Mesh]; !ok {
			errs = append(errs, fmt.Errorf("object %s: %w: %q", label, ErrUnknownMesh, o.Mesh))
		}
		if _, ok := c.Materials[o.Material]; o.Material != "" && !ok {
			errs = append(errs, fmt.Errorf("object %s: %w: %q", label, ErrUnknownMaterial, o.Material))
		}
		if _, err := o.BuildMotion(); err != nil {
			errs = append(errs, fmt.Errorf("object %s: %w", label, err))
		}
	}

	return errors.Join(errs...)
}

// finite reports whether every component is a real number.
func finite(v ...float32) bool {
	for _, f := range v {
		if math.IsNaN(float64(f)) || math.IsInf(float64(f), 0) {
			return false
		}
	}
	return true
}
