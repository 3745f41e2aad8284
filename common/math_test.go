package common

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-4
}

func TestPerspectiveDepthRange(t *testing.T) {
	const near, far = 0.1, 1000
	p := Perspective(mgl32.DegToRad(75), 16.0/9.0, near, far)

	for _, c := range []struct {
		z, want float32
	}{
		{-near, 0},
		{-far, 1},
	} {
		clip := p.Mul4x1(mgl32.Vec4{0, 0, c.z, 1})
		if got := clip.Z() / clip.W(); !approx(got, c.want) {
			t.Fatalf("depth at z=%v\nhave %v\nwant %v", c.z, got, c.want)
		}
	}
}

func TestBuildModelMatrix(t *testing.T) {
	m := BuildModelMatrix([3]float32{7, 2, 3}, [3]float32{}, [3]float32{2, 2, 2})
	got := m.Mul4x1(mgl32.Vec4{1, 0, 0, 1})
	if !approx(got.X(), 9) || !approx(got.Y(), 2) || !approx(got.Z(), 3) {
		t.Fatalf("translate+scale\nhave %v\nwant [9 2 3]", got)
	}

	// ground plane: -pi/2 about X turns +Z normals into +Y
	r := BuildModelMatrix([3]float32{}, [3]float32{-math.Pi / 2, 0, 0}, [3]float32{1, 1, 1})
	n := r.Mul4x1(mgl32.Vec4{0, 0, 1, 0})
	if !approx(n.X(), 0) || !approx(n.Y(), 1) || !approx(n.Z(), 0) {
		t.Fatalf("rotated normal\nhave %v\nwant [0 1 0]", n)
	}
}

func TestLookAtDegenerate(t *testing.T) {
	eye := mgl32.Vec3{1, 2, 3}
	if m := LookAt(eye, eye, mgl32.Vec3{0, 1, 0}); m != mgl32.Ident4() {
		t.Fatalf("have %v\nwant identity", m)
	}
	v := LookAt(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	o := v.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	if !approx(o.Z(), -5) {
		t.Fatalf("origin in view space\nhave %v\nwant z=-5", o)
	}
}

func TestFrustumIntersectsSphere(t *testing.T) {
	view := LookAt(mgl32.Vec3{-8, 7, 12}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	proj := Perspective(mgl32.DegToRad(75), 1.5, 0.1, 1000)
	f := ExtractFrustum(proj.Mul4(view))

	cases := []struct {
		name   string
		center [3]float32
		radius float32
		want   bool
	}{
		{"origin", [3]float32{0, 0, 0}, 1, true},
		{"behind camera", [3]float32{-16, 14, 24}, 1, false},
		{"beyond far plane", [3]float32{800, -700, -1200}, 1, false},
		{"straddles side plane", [3]float32{-8, 7, 12}, 0.5, true},
	}
	for _, c := range cases {
		if got := f.IntersectsSphere(c.center, c.radius); got != c.want {
			t.Fatalf("%s: have %v want %v", c.name, got, c.want)
		}
	}
}

func TestMaxScaleAndNormalize(t *testing.T) {
	if got := MaxScale([3]float32{1, -3, 2}); got != 3 {
		t.Fatalf("MaxScale\nhave %v\nwant 3", got)
	}
	if got := Normalize3([3]float32{0, 0, 0}); got != [3]float32{} {
		t.Fatalf("Normalize3(0)\nhave %v", got)
	}
	if got := Normalize3([3]float32{0, 3, 4}); !approx(got[1], 0.6) || !approx(got[2], 0.8) {
		t.Fatalf("Normalize3\nhave %v\nwant [0 0.6 0.8]", got)
	}
}

func TestParseColor(t *testing.T) {
	white, err := ParseColor("#ffffff")
	if err != nil || white != [3]float32{1, 1, 1} {
		t.Fatalf("white: have %v, %v", white, err)
	}
	blue, err := ParseColor("#3399ff")
	if err != nil {
		t.Fatal(err)
	}
	// sRGB 0x33 is darker in linear space
	if !(blue[0] < 0.2/1.0 && blue[0] > 0.02) || blue[2] != 1 {
		t.Fatalf("blue: have %v", blue)
	}
	if _, err := ParseColor("blue"); err == nil {
		t.Fatal("expected error for non-hex color")
	}
}

func TestCoalesce(t *testing.T) {
	if got := Coalesce(0, 0, 5, 7); got != 5 {
		t.Fatalf("have %v want 5", got)
	}
	if got := Coalesce("", ""); got != "" {
		t.Fatalf("have %q want empty", got)
	}
}

func TestSortedKeys(t *testing.T) {
	got := SortedKeys(map[string]int{"sphere5": 1, "cube": 2, "ground": 3})
	want := []string{"cube", "ground", "sphere5"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("have %v\nwant %v", got, want)
		}
	}
}
