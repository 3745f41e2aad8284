package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-showcase/engine/animation"
	"github.com/Carmen-Shannon/oxy-showcase/engine/light"
	"github.com/Carmen-Shannon/oxy-showcase/engine/model"
)

func TestDefaultScene(t *testing.T) {
	c := Default()
	if len(c.Objects) != 15 || len(c.Meshes) != 8 || len(c.Materials) != 10 || len(c.Lights) != 1 {
		t.Fatalf("counts\nhave %d objects, %d meshes, %d materials, %d lights\nwant 15, 8, 10, 1",
			len(c.Objects), len(c.Meshes), len(c.Materials), len(c.Lights))
	}
	if c.Meshes["knot"].Kind != model.KindTorusKnot || c.Meshes["ball"].WidthSegments != 360 {
		t.Fatalf("mesh specs decoded wrong: %+v", c.Meshes)
	}
	if c.Camera.Position != [3]float32{-8, 7, 12} || c.Camera.Fov != 75 || c.Camera.Spin != 0 {
		t.Fatalf("camera\nhave %+v", c.Camera)
	}
	bg, _, err := c.Scene.Colors()
	if err != nil || bg != [3]float32{1, 1, 1} {
		t.Fatalf("background\nhave %v, %v\nwant white", bg, err)
	}
}

func TestDefaultSpotLight(t *testing.T) {
	l, err := Default().Lights[0].Build()
	if err != nil {
		t.Fatal(err)
	}
	if l.Type() != light.LightTypeSpot || l.Intensity() != 0.9 || l.Range() != 0 {
		t.Fatalf("spot\nhave %v intensity %v range %v", l.Type(), l.Intensity(), l.Range())
	}
	want := float32(math.Cos(math.Pi / 5.5))
	if math.Abs(float64(l.OuterCone()-want)) > 1e-6 || l.InnerCone() != l.OuterCone() {
		t.Fatalf("cones\nhave %v/%v\nwant %v/%v", l.InnerCone(), l.OuterCone(), want, want)
	}
	d := l.Direction()
	if d[0] <= 0 || d[1] >= 0 || d[2] >= 0 {
		t.Fatalf("direction %v does not point from (-12,7,12) toward (0,3,0)", d)
	}
}

func TestDefaultMaterials(t *testing.T) {
	c := Default()
	glass, err := c.Materials["blackGlass"].Build("blackGlass")
	if err != nil {
		t.Fatal(err)
	}
	if !glass.Transparent() || glass.BaseColor() != [4]float32{0, 0, 0, 0.9} {
		t.Fatalf("black glass\nhave %v transparent=%v", glass.BaseColor(), glass.Transparent())
	}
	wall, err := c.Materials["wall"].Build("wall")
	if err != nil {
		t.Fatal(err)
	}
	if wall.Transparent() || wall.BaseColor()[3] != 1 || wall.Roughness() != 1 {
		t.Fatalf("wall\nhave %v roughness %v", wall.BaseColor(), wall.Roughness())
	}
}

// objectNamed finds an object in the default scene.
func objectNamed(t *testing.T, c *Config, name string) ObjectConfig {
	t.Helper()
	for _, o := range c.Objects {
		if o.Name == name {
			return o
		}
	}
	t.Fatalf("no object %q", name)
	return ObjectConfig{}
}

func TestDefaultMotions(t *testing.T) {
	c := Default()

	bounce, err := objectNamed(t, c, "sphere5").BuildMotion()
	if err != nil {
		t.Fatal(err)
	}
	p := animation.Pose{Position: [3]float64{4.6, 6, 6}}
	bounce.Step(&p)
	bounce.Step(&p)
	if math.Abs(p.Position[1]-6) > 1e-9 {
		t.Fatalf("sphere5 y after two steps\nhave %v\nwant 6", p.Position[1])
	}

	knot, err := objectNamed(t, c, "sphere4").BuildMotion()
	if err != nil {
		t.Fatal(err)
	}
	p = animation.Pose{Position: [3]float64{7, 6.2, 3}}
	knot.Step(&p)
	if want := 0.4*math.Sin(0.02) + 6.2; math.Abs(p.Position[1]-want) > 1e-12 || p.Rotation != [3]float64{0.01, 0.01, 0.01} {
		t.Fatalf("sphere4 after one step\nhave %+v\nwant y=%v spin 0.01", p, want)
	}

	orbit, err := objectNamed(t, c, "sphere2").BuildMotion()
	if err != nil {
		t.Fatal(err)
	}
	p = animation.Pose{Position: [3]float64{2, 7, 0}}
	for range 180 {
		orbit.Step(&p)
	}
	if math.Abs(p.Position[0]) > 1e-9 || math.Abs(p.Position[2]-2) > 1e-9 || p.Position[1] != 7 {
		t.Fatalf("sphere2 after 90 degrees\nhave %v\nwant (0, 7, 2)", p.Position)
	}

	static, err := objectNamed(t, c, "ground").BuildMotion()
	if err != nil || static != nil {
		t.Fatalf("ground motion\nhave %v, %v\nwant nil, nil", static, err)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(c *Config)
		want   error
	}{
		{"unknown mesh", func(c *Config) { c.Objects[0].Mesh = "teapot" }, ErrUnknownMesh},
		{"unknown material", func(c *Config) { c.Objects[0].Material = "gold" }, ErrUnknownMaterial},
		{"unknown motion", func(c *Config) { c.Objects[4].Motion[0].Type = "wobble" }, ErrUnknownMotion},
		{"bad bounds", func(c *Config) { c.Objects[14].Motion[0].Max = 0 }, animation.ErrInvalidBounds},
		{"bad axis", func(c *Config) { c.Objects[14].Motion[0].Axis = "w" }, animation.ErrInvalidAxis},
		{"unknown light", func(c *Config) { c.Lights[0].Type = "area" }, ErrUnknownLight},
		{"window", func(c *Config) { c.Window.Width = 0 }, ErrInvalidConfig},
		{"window limits", func(c *Config) { c.Window.MinWidth, c.Window.MaxWidth = 800, 640 }, ErrInvalidConfig},
		{"msaa", func(c *Config) { c.Renderer.MSAA = 2 }, ErrInvalidConfig},
		{"negative tick rate", func(c *Config) { c.Engine.TickRate = -1 }, ErrInvalidConfig},
		{"huge tick rate", func(c *Config) { c.Engine.TickRate = 2e9 }, ErrInvalidConfig},
		{"nan frame limit", func(c *Config) { c.Engine.FrameLimit = math.NaN() }, ErrInvalidConfig},
		{"camera", func(c *Config) { c.Camera.Near = 0 }, ErrInvalidConfig},
		{"color", func(c *Config) { c.Scene.Background = "white" }, ErrInvalidConfig},
		{"opacity", func(c *Config) {
			o := float32(2)
			m := c.Materials["wall"]
			m.Opacity = &o
			c.Materials["wall"] = m
		}, ErrInvalidConfig},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := Default()
			tc.mutate(c)
			if err := c.Validate(); !errors.Is(err, tc.want) {
				t.Fatalf("err\nhave %v\nwant %v", err, tc.want)
			}
		})
	}
}

func TestValidateJoinsErrors(t *testing.T) {
	c := Default()
	c.Objects[0].Mesh = "teapot"
	c.Objects[1].Material = "gold"
	err := c.Validate()
	if !errors.Is(err, ErrUnknownMesh) || !errors.Is(err, ErrUnknownMaterial) {
		t.Fatalf("joined error missing a cause: %v", err)
	}
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	data := strings.Replace(string(defaultYAML), "  vsync: true", "  vsync: true\n  shadows: true", 1)
	if _, err := Parse([]byte(data)); err == nil {
		t.Fatal("unknown key accepted")
	}
}

func TestLoad(t *testing.T) {
	c, err := Load("")
	if err != nil || len(c.Objects) != 15 {
		t.Fatalf("load default\nhave %v", err)
	}

	path := filepath.Join(t.TempDir(), "scene.yaml")
	data := strings.Replace(string(defaultYAML), "title: oxy showcase", "title: custom", 1)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err = Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.Window.Title != "custom" {
		t.Fatalf("title\nhave %q\nwant custom", c.Window.Title)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("missing file\nhave %v\nwant %v", err, os.ErrNotExist)
	}
}
