package animation

import (
	"errors"
	"math"
	"testing"
)

const eps = 1e-9

func TestNewBounceValidation(t *testing.T) {
	cases := []struct {
		name     string
		axis     Axis
		v        float64
		min, max float64
		want     error
	}{
		{"ok", AxisY, 0.05, 1, 6, nil},
		{"negative velocity", AxisX, -0.5, -1, 1, nil},
		{"equal bounds", AxisY, 0.05, 2, 2, ErrInvalidBounds},
		{"inverted bounds", AxisY, 0.05, 6, 1, ErrInvalidBounds},
		{"velocity spans range", AxisY, 5, 1, 6, ErrVelocityTooLarge},
		{"bad axis", Axis(7), 0.05, 1, 6, ErrInvalidAxis},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			b, err := NewBounce(c.axis, c.v, c.min, c.max)
			if !errors.Is(err, c.want) {
				t.Fatalf("NewBounce: err\nhave %v\nwant %v", err, c.want)
			}
			if c.want == nil && b == nil {
				t.Fatal("NewBounce: nil rule without error")
			}
		})
	}
}

func TestBounceStaysWithinOneStep(t *testing.T) {
	b, err := NewBounce(AxisY, 0.05, 1, 6)
	if err != nil {
		t.Fatal(err)
	}
	p := Pose{Position: [3]float64{4.6, 6, 6}}
	lo, hi := 1-0.05-eps, 6+0.05+eps
	for n := 1; n <= 5000; n++ {
		prevV := b.Velocity
		b.Step(&p)
		y := p.Position[AxisY]
		if y < lo || y > hi {
			t.Fatalf("frame %d: y = %v outside [%v, %v]", n, y, lo, hi)
		}
		crossed := y > 6 || y < 1
		flipped := b.Velocity == -prevV
		if crossed != flipped {
			t.Fatalf("frame %d: y = %v crossed=%v flipped=%v", n, y, crossed, flipped)
		}
		if p.Position[0] != 4.6 || p.Position[2] != 6 {
			t.Fatalf("frame %d: off-axis components moved: %v", n, p.Position)
		}
	}
}

func TestBounceReflectsOnFirstCrossing(t *testing.T) {
	// 0.25 is exact in binary, so no rounding hides the crossing frame.
	b, err := NewBounce(AxisY, 0.25, 1, 6)
	if err != nil {
		t.Fatal(err)
	}
	p := Pose{Position: [3]float64{0, 1, 0}}
	for n := 1; n <= 20; n++ {
		b.Step(&p)
		if b.Velocity != 0.25 {
			t.Fatalf("frame %d: velocity flipped early at y = %v", n, p.Position[1])
		}
	}
	if p.Position[1] != 6 {
		t.Fatalf("after 20 frames: y\nhave %v\nwant 6", p.Position[1])
	}
	b.Step(&p)
	if p.Position[1] != 6.25 || b.Velocity != -0.25 {
		t.Fatalf("frame 21: have y=%v v=%v\nwant y=6.25 v=-0.25", p.Position[1], b.Velocity)
	}
	b.Step(&p)
	if p.Position[1] != 6 || b.Velocity != -0.25 {
		t.Fatalf("frame 22: have y=%v v=%v\nwant y=6 v=-0.25", p.Position[1], b.Velocity)
	}
}

func TestBounceOvershootIsNotClamped(t *testing.T) {
	b, err := NewBounce(AxisY, 0.05, 1, 6)
	if err != nil {
		t.Fatal(err)
	}
	p := Pose{Position: [3]float64{4.6, 6, 6}}
	b.Step(&p)
	if math.Abs(p.Position[1]-6.05) > eps {
		t.Fatalf("frame 1: y\nhave %v\nwant 6.05", p.Position[1])
	}
	if b.Velocity != -0.05 {
		t.Fatalf("frame 1: velocity\nhave %v\nwant -0.05", b.Velocity)
	}
}

func TestFloatMatchesClosedForm(t *testing.T) {
	f, err := NewFloat(AxisY, 0.4, 0.02, 6.2)
	if err != nil {
		t.Fatal(err)
	}
	p := Pose{Position: [3]float64{7, 6.2, 3}}
	for n := 1; n <= 2000; n++ {
		f.Step(&p)
		want := 0.4*math.Sin(float64(n)*0.02) + 6.2
		if math.Abs(p.Position[1]-want) > 1e-9 {
			t.Fatalf("frame %d: y\nhave %v\nwant %v", n, p.Position[1], want)
		}
	}
}

func TestOrbitKeepsRadius(t *testing.T) {
	center := [3]float64{1, 0, -2}
	o, err := NewOrbit(center, 2, 0, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	p := Pose{Position: [3]float64{-0.7, 7, 0.8}}
	for n := 1; n <= 1000; n++ {
		o.Step(&p)
		dx, dz := p.Position[0]-center[0], p.Position[2]-center[2]
		if d := math.Hypot(dx, dz); math.Abs(d-2) > eps {
			t.Fatalf("frame %d: distance\nhave %v\nwant 2", n, d)
		}
		if p.Position[1] != 7 {
			t.Fatalf("frame %d: y changed to %v", n, p.Position[1])
		}
	}
	if o.AngleDeg != 500 {
		t.Fatalf("angle\nhave %v\nwant 500", o.AngleDeg)
	}
}

func TestOrbitRejectsNegativeRadius(t *testing.T) {
	if _, err := NewOrbit([3]float64{}, -1, 0, 1); !errors.Is(err, ErrInvalidRadius) {
		t.Fatalf("NewOrbit: err\nhave %v\nwant %v", err, ErrInvalidRadius)
	}
}

func TestSpinAccumulates(t *testing.T) {
	s := Spin{Rate: [3]float64{-0.01, -0.015, 0.03}}
	var p Pose
	const n = 1000
	for i := 0; i < n; i++ {
		s.Step(&p)
	}
	for axis, rate := range s.Rate {
		want := n * rate
		if math.Abs(p.Rotation[axis]-want) > 1e-9 {
			t.Fatalf("axis %d: rotation\nhave %v\nwant %v", axis, p.Rotation[axis], want)
		}
	}
}

func TestCombine(t *testing.T) {
	if Combine() != nil || Combine(nil, nil) != nil {
		t.Fatal("Combine of nothing should be nil")
	}
	s := Spin{Rate: [3]float64{0, 0.01, 0}}
	if _, ok := Combine(nil, s).(Spin); !ok {
		t.Fatal("Combine of one motion should return it unchanged")
	}

	f, _ := NewFloat(AxisY, 0.4, 0.02, 6.2)
	m := Combine(f, Spin{Rate: [3]float64{0.01, 0.01, 0.01}})
	var p Pose
	m.Step(&p)
	m.Step(&p)
	if math.Abs(p.Position[1]-(0.4*math.Sin(0.04)+6.2)) > eps {
		t.Fatalf("combined float: y = %v", p.Position[1])
	}
	if math.Abs(p.Rotation[2]-0.02) > eps {
		t.Fatalf("combined spin: rz = %v", p.Rotation[2])
	}
}

func TestParseAxis(t *testing.T) {
	for s, want := range map[string]Axis{"x": AxisX, "y": AxisY, "z": AxisZ} {
		got, err := ParseAxis(s)
		if err != nil || got != want {
			t.Fatalf("ParseAxis(%q): have %v, %v", s, got, err)
		}
		if got.String() != s {
			t.Fatalf("String: have %q want %q", got.String(), s)
		}
	}
	if _, err := ParseAxis("w"); !errors.Is(err, ErrInvalidAxis) {
		t.Fatalf("ParseAxis(w): err = %v", err)
	}
}
