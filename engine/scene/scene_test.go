package scene

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-showcase/engine/camera"
	"github.com/Carmen-Shannon/oxy-showcase/engine/game_object"
	"github.com/Carmen-Shannon/oxy-showcase/engine/light"
	"github.com/Carmen-Shannon/oxy-showcase/engine/model"
	"github.com/Carmen-Shannon/oxy-showcase/engine/renderer"
	"github.com/Carmen-Shannon/oxy-showcase/engine/renderer/material"
)

// newTestScene builds a scene looking from +Z at the origin whose frames are captured in the returned slice.
func newTestScene(t *testing.T, opts ...SceneBuilderOption) (Scene, *[]renderer.Frame) {
	t.Helper()
	frames := &[]renderer.Frame{}
	r := renderer.NewRenderer(renderer.BackendTypeHeadless, nil,
		renderer.WithFrameSink(func(f renderer.Frame) { *frames = append(*frames, f) }))
	cam := camera.NewCamera(camera.WithController(camera.NewController(
		camera.WithTarget([3]float32{0, 0, 0}),
		camera.WithEye([3]float32{0, 0, 10}),
	)))
	s := NewScene("test", cam, r, append([]SceneBuilderOption{WithBuildWorkers(2)}, opts...)...)
	err := s.LoadMeshes(map[string]model.Spec{
		"cube": {Kind: model.KindBox, Width: 1, Height: 1, Depth: 1},
		"ball": {Kind: model.KindSphere, Radius: 0.5},
	})
	if err != nil {
		t.Fatal(err)
	}
	return s, frames
}

func TestLoadMeshes(t *testing.T) {
	s, _ := newTestScene(t)
	if s.Model("cube") == nil || s.Model("ball") == nil {
		t.Fatal("meshes not loaded")
	}
	if !s.Renderer().HasModel("ball") {
		t.Fatal("mesh not registered with the renderer")
	}

	err := s.LoadMeshes(map[string]model.Spec{
		"bad":   {Kind: model.KindBox},
		"knot":  {Kind: model.KindTorusKnot, Radius: 1, Tube: 0.2},
		"cube":  {Kind: model.KindBox, Width: 1, Height: 1, Depth: 1},
		"weird": {Kind: "teapot"},
	})
	if !errors.Is(err, model.ErrInvalidDimension) || !errors.Is(err, model.ErrUnknownKind) || !errors.Is(err, renderer.ErrDuplicateModel) {
		t.Fatalf("joined error missing a cause: %v", err)
	}
	if s.Model("knot") == nil {
		t.Fatal("valid mesh in a failing batch was not loaded")
	}
}

func TestAddGetRemove(t *testing.T) {
	s, _ := newTestScene(t)
	a := game_object.NewGameObject(game_object.WithName("a"), game_object.WithModel("cube"))
	b := game_object.NewGameObject(game_object.WithName("b"), game_object.WithModel("cube"))
	idA, idB := s.Add(a), s.Add(b)
	if idA == 0 || idA == idB {
		t.Fatalf("ids\nhave %d, %d\nwant distinct non-zero", idA, idB)
	}
	if s.Get(idB) != b {
		t.Fatal("Get returned the wrong object")
	}
	s.Remove(idA)
	s.Remove(999)
	if s.Count() != 1 || s.Get(idA) != nil {
		t.Fatalf("after remove\nhave %d objects\nwant 1", s.Count())
	}
	objs := s.Objects()
	if len(objs) != 1 || objs[0] != b {
		t.Fatal("Objects does not reflect removal")
	}
}

func TestRenderFrameSnapshot(t *testing.T) {
	s, frames := newTestScene(t, WithBackground([3]float32{0, 0, 0}), WithAmbientColor([3]float32{0.2, 0.2, 0.2}))
	glass := material.NewMaterial(material.WithOpacity(0.5))

	solid := game_object.NewGameObject(game_object.WithName("solid"), game_object.WithModel("cube"))
	near := game_object.NewGameObject(game_object.WithName("near"), game_object.WithModel("ball"),
		game_object.WithMaterial(glass), game_object.WithPosition(0, 0, 5))
	far := game_object.NewGameObject(game_object.WithName("far"), game_object.WithModel("ball"),
		game_object.WithMaterial(glass), game_object.WithPosition(0, 0, -5))
	hidden := game_object.NewGameObject(game_object.WithName("hidden"), game_object.WithModel("cube"),
		game_object.WithEnabled(false))
	behind := game_object.NewGameObject(game_object.WithName("behind"), game_object.WithModel("cube"),
		game_object.WithPosition(0, 0, 50))
	for _, obj := range []game_object.GameObject{solid, near, far, hidden, behind} {
		s.Add(obj)
	}
	s.AddLight(light.NewLight(light.LightTypePoint, light.WithPosition(0, 5, 0)))

	if err := s.RenderFrame(); err != nil {
		t.Fatal(err)
	}
	if len(*frames) != 1 {
		t.Fatalf("frames\nhave %d\nwant 1", len(*frames))
	}
	f := (*frames)[0]
	if len(f.Opaque) != 1 || f.Opaque[0].ObjectID != solid.ID() {
		t.Fatalf("opaque items\nhave %+v\nwant only %q", f.Opaque, solid.Name())
	}
	if len(f.Transparent) != 2 || f.Transparent[0].ObjectID != far.ID() || f.Transparent[1].ObjectID != near.ID() {
		t.Fatalf("transparent items not sorted far to near: %+v", f.Transparent)
	}
	if f.LightHeader.LightCount != 1 || f.LightHeader.AmbientColor[0] != 0.2 {
		t.Fatalf("light header\nhave %+v", f.LightHeader)
	}
	if f.ClearColor != [4]float64{0, 0, 0, 1} {
		t.Fatalf("clear color\nhave %v\nwant opaque black", f.ClearColor)
	}

	s.SetCullingEnabled(false)
	if err := s.RenderFrame(); err != nil {
		t.Fatal(err)
	}
	if got := (*frames)[1]; len(got.Opaque) != 2 || got.Index != 1 {
		t.Fatalf("without culling\nhave %d opaque items at index %d\nwant 2 at index 1", len(got.Opaque), got.Index)
	}
	if s.Frames() != 2 {
		t.Fatalf("scene frames\nhave %d\nwant 2", s.Frames())
	}
}

func TestRenderFrameUnknownModel(t *testing.T) {
	s, frames := newTestScene(t)
	s.Add(game_object.NewGameObject(game_object.WithModel("teapot")))
	if err := s.RenderFrame(); !errors.Is(err, renderer.ErrUnknownModel) {
		t.Fatalf("err\nhave %v\nwant %v", err, renderer.ErrUnknownModel)
	}
	if len(*frames) != 0 {
		t.Fatal("a frame with an unknown model reached the sink")
	}
}

func TestRenderFrameFollowsMovedObject(t *testing.T) {
	s, frames := newTestScene(t)
	obj := game_object.NewGameObject(game_object.WithModel("cube"))
	s.Add(obj)
	if err := s.RenderFrame(); err != nil {
		t.Fatal(err)
	}
	obj.SetPosition(1, 2, 3)
	if err := s.RenderFrame(); err != nil {
		t.Fatal(err)
	}
	m := (*frames)[1].Opaque[0].ModelMatrix
	if m.At(0, 3) != 1 || m.At(1, 3) != 2 || m.At(2, 3) != 3 {
		t.Fatalf("translation\nhave (%v, %v, %v)\nwant (1, 2, 3)", m.At(0, 3), m.At(1, 3), m.At(2, 3))
	}
	if (*frames)[0].Opaque[0].ModelMatrix.At(0, 3) != 0 {
		t.Fatal("earlier frame snapshot changed after the object moved")
	}
}
