package game_object

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-showcase/engine/animation"
	"github.com/go-gl/mathgl/mgl32"
)

var _ animation.Handle = NewGameObject()

func TestNewGameObjectDefaults(t *testing.T) {
	g := NewGameObject(WithName("cube"), WithModel("box6"))
	if !g.Enabled() {
		t.Fatal("new objects should be enabled")
	}
	if sx, sy, sz := g.Scale(); sx != 1 || sy != 1 || sz != 1 {
		t.Fatalf("scale\nhave (%v, %v, %v)\nwant (1, 1, 1)", sx, sy, sz)
	}
	if g.Name() != "cube" || g.ModelKey() != "box6" || g.Material() != nil {
		t.Fatalf("have name %q model %q material %v", g.Name(), g.ModelKey(), g.Material())
	}
}

func TestModelMatrixTranslatesOrigin(t *testing.T) {
	g := NewGameObject(WithPosition(1, 2, 3), WithRotation(0, float32(math.Pi/2), 0), WithScale(2, 2, 2))
	origin := g.ModelMatrix().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	if origin.Vec3() != (mgl32.Vec3{1, 2, 3}) {
		t.Fatalf("origin\nhave %v\nwant [1 2 3]", origin.Vec3())
	}
	x := g.ModelMatrix().Mul4x1(mgl32.Vec4{1, 0, 0, 1}).Vec3()
	if !x.ApproxEqualThreshold(mgl32.Vec3{1, 2, 1}, 1e-5) {
		t.Fatalf("rotated +X\nhave %v\nwant [1 2 1]", x)
	}
}

func TestHandleSetters(t *testing.T) {
	g := NewGameObject()
	g.SetPosition(0, 6.05, 0)
	g.SetRotation(0.01, 0.02, 0.03)
	pos, rot, _ := g.Transform()
	if pos != [3]float32{0, 6.05, 0} || rot != [3]float32{0.01, 0.02, 0.03} {
		t.Fatalf("have pos %v rot %v", pos, rot)
	}
	g.SetEnabled(false)
	if g.Enabled() {
		t.Fatal("SetEnabled(false) ignored")
	}
}
