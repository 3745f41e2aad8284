package engine

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-showcase/engine/animation"
	"github.com/Carmen-Shannon/oxy-showcase/engine/camera"
	"github.com/Carmen-Shannon/oxy-showcase/engine/game_object"
	"github.com/Carmen-Shannon/oxy-showcase/engine/renderer"
	"github.com/Carmen-Shannon/oxy-showcase/engine/scene"
)

type countingRenderer struct {
	calls int
}

func (r *countingRenderer) RenderFrame() error {
	r.calls++
	return nil
}

func TestRunHeadlessFrameBudget(t *testing.T) {
	e := NewEngine(WithTickRate(1000))
	runs := 0
	var loop func()
	loop = func() {
		runs++
		e.RequestNextFrame(loop)
	}
	e.RequestNextFrame(loop)

	if err := e.RunHeadless(context.Background(), 5); err != nil {
		t.Fatal(err)
	}
	if runs != 5 || e.Frames() != 5 {
		t.Fatalf("ticks\nhave %d runs over %d frames\nwant 5 over 5", runs, e.Frames())
	}
	if e.Pending() != 1 {
		t.Fatalf("pending after budget\nhave %d\nwant 1", e.Pending())
	}
}

func TestRunHeadlessStopsWhenIdle(t *testing.T) {
	e := NewEngine(WithTickRate(1000))
	if err := e.RunHeadless(context.Background(), 0); err != nil {
		t.Fatal(err)
	}
	if e.Frames() != 0 {
		t.Fatalf("frames\nhave %d\nwant 0", e.Frames())
	}
}

func TestRunHeadlessContextCancel(t *testing.T) {
	e := NewEngine(WithTickRate(1000))
	var loop func()
	loop = func() { e.RequestNextFrame(loop) }
	e.RequestNextFrame(loop)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := e.RunHeadless(ctx, 0); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err\nhave %v\nwant %v", err, context.DeadlineExceeded)
	}
}

func TestQuitFromCallback(t *testing.T) {
	e := NewEngine(WithTickRate(1000))
	runs := 0
	var loop func()
	loop = func() {
		runs++
		if runs == 3 {
			e.Quit()
			e.Quit()
		}
		e.RequestNextFrame(loop)
	}
	e.RequestNextFrame(loop)

	if err := e.RunHeadless(context.Background(), 100); err != nil {
		t.Fatal(err)
	}
	if runs != 3 {
		t.Fatalf("runs\nhave %d\nwant 3", runs)
	}
}

func TestTickRunsOnlyEarlierRequests(t *testing.T) {
	e := NewEngine().(*engine)
	order := []string{}
	e.RequestNextFrame(func() {
		order = append(order, "first")
		e.RequestNextFrame(func() { order = append(order, "second") })
	})
	e.RequestNextFrame(nil)

	e.tick()
	if len(order) != 1 || e.Pending() != 1 {
		t.Fatalf("after one tick\nhave %v with %d pending\nwant [first] with 1 pending", order, e.Pending())
	}
	e.tick()
	if len(order) != 2 || order[1] != "second" {
		t.Fatalf("after two ticks\nhave %v\nwant [first second]", order)
	}
}

func TestDrivesFrameUpdater(t *testing.T) {
	e := NewEngine(WithTickRate(1000))
	r := &countingRenderer{}
	obj := game_object.NewGameObject(game_object.WithPosition(0, 1, 0))
	bounce, err := animation.NewBounce(animation.AxisY, 0.5, 0, 10)
	if err != nil {
		t.Fatal(err)
	}
	u := animation.NewFrameUpdater(animation.WithRenderer(r), animation.WithScheduler(e))
	u.Add(obj, bounce)
	u.Start()

	if err := e.RunHeadless(context.Background(), 4); err != nil {
		t.Fatal(err)
	}
	if u.Frame() != 4 || r.calls != 4 {
		t.Fatalf("updater\nhave frame %d with %d renders\nwant 4 and 4", u.Frame(), r.calls)
	}
	if _, y, _ := obj.Position(); y != 3 {
		t.Fatalf("y\nhave %v\nwant 3", y)
	}

	u.Stop()
	if err := e.RunHeadless(context.Background(), 0); err != nil {
		t.Fatal(err)
	}
	if u.Frame() != 5 {
		t.Fatalf("frames after stop\nhave %d\nwant 5", u.Frame())
	}
}

func TestResizeForwarding(t *testing.T) {
	r := renderer.NewRenderer(renderer.BackendTypeHeadless, nil)
	cam := camera.NewCamera(camera.WithAspect(1))
	s := scene.NewScene("resize", cam, r)
	e := NewEngine(WithScene(s)).(*engine)

	e.resize(1000, 500)
	if w, h := r.Size(); w != 1000 || h != 500 {
		t.Fatalf("renderer size\nhave %dx%d\nwant 1000x500", w, h)
	}
	if cam.Aspect() != 2 {
		t.Fatalf("aspect\nhave %v\nwant 2", cam.Aspect())
	}

	e.resize(1000, 0)
	if cam.Aspect() != 2 {
		t.Fatalf("aspect after minimize\nhave %v\nwant 2", cam.Aspect())
	}
}

func TestTickPeriod(t *testing.T) {
	cases := []struct {
		fps  float64
		want time.Duration
	}{
		{0, time.Second / 60},
		{-5, time.Second / 60},
		{math.NaN(), time.Second / 60},
		{1000, time.Millisecond},
		{2e9, time.Nanosecond},
		{math.Inf(1), time.Nanosecond},
	}
	for _, c := range cases {
		if got := tickPeriod(c.fps); got != c.want {
			t.Fatalf("tickPeriod(%v)\nhave %v\nwant %v", c.fps, got, c.want)
		}
	}
}

func TestRunHeadlessHugeTickRate(t *testing.T) {
	e := NewEngine(WithTickRate(2e9))
	runs := 0
	var loop func()
	loop = func() {
		runs++
		e.RequestNextFrame(loop)
	}
	e.RequestNextFrame(loop)

	if err := e.RunHeadless(context.Background(), 3); err != nil {
		t.Fatal(err)
	}
	if runs != 3 {
		t.Fatalf("runs\nhave %d\nwant 3", runs)
	}
}
