package animation

import (
	"errors"
	"math"
	"testing"
)

type fakeHandle struct {
	pos, rot [3]float32
	sets     int
}

func (h *fakeHandle) Position() (x, y, z float32)  { return h.pos[0], h.pos[1], h.pos[2] }
func (h *fakeHandle) Rotation() (x, y, z float32)  { return h.rot[0], h.rot[1], h.rot[2] }
func (h *fakeHandle) SetPosition(x, y, z float32) { h.pos = [3]float32{x, y, z}; h.sets++ }
func (h *fakeHandle) SetRotation(x, y, z float32) { h.rot = [3]float32{x, y, z} }

// fakeHost is a single-slot scheduler plus renderer that records what the
// renderer observed on each call.
type fakeHost struct {
	pending  []func()
	requests int
	renders  int
	seenY    []float32
	watch    *fakeHandle
	err      error
}

func (h *fakeHost) RequestNextFrame(cb func()) {
	h.requests++
	h.pending = append(h.pending, cb)
}

func (h *fakeHost) RenderFrame() error {
	h.renders++
	if h.watch != nil {
		h.seenY = append(h.seenY, h.watch.pos[1])
	}
	return h.err
}

// tick runs the callbacks queued before this tick, like a display refresh.
func (h *fakeHost) tick() {
	cbs := h.pending
	h.pending = nil
	for _, cb := range cbs {
		cb()
	}
}

func TestZeroAdvancesKeepsInitialState(t *testing.T) {
	h := &fakeHandle{pos: [3]float32{4.6, 6, 6}, rot: [3]float32{0, 0.3, 0}}
	b, _ := NewBounce(AxisY, 0.05, 1, 6)
	u := NewFrameUpdater(WithObject(h, b))

	if u.Frame() != 0 || u.Len() != 1 {
		t.Fatalf("have frame=%d len=%d\nwant frame=0 len=1", u.Frame(), u.Len())
	}
	if h.sets != 0 || h.pos != [3]float32{4.6, 6, 6} || h.rot != [3]float32{0, 0.3, 0} {
		t.Fatalf("handle mutated before any advance: %+v", h)
	}
	p, ok := u.Pose(0)
	if !ok || p.Position[1] != float64(float32(6)) || p.Rotation[1] != float64(float32(0.3)) {
		t.Fatalf("initial pose\nhave %+v\nwant captured from handle", p)
	}
	if _, ok := u.Pose(1); ok {
		t.Fatal("Pose(1) should be out of range")
	}
}

func TestAdvanceAppliesBeforeRenderAndReschedules(t *testing.T) {
	h := &fakeHandle{pos: [3]float32{4.6, 6, 6}}
	host := &fakeHost{watch: h}
	b, _ := NewBounce(AxisY, 0.05, 1, 6)
	u := NewFrameUpdater(WithRenderer(host), WithScheduler(host))
	u.Add(h, b)

	u.Start()
	if host.requests != 1 || host.renders != 0 {
		t.Fatalf("Start: have requests=%d renders=%d\nwant 1, 0", host.requests, host.renders)
	}

	const frames = 30
	for i := 0; i < frames; i++ {
		host.tick()
	}
	if u.Frame() != frames {
		t.Fatalf("frame counter\nhave %d\nwant %d", u.Frame(), frames)
	}
	if host.renders != frames {
		t.Fatalf("renders\nhave %d\nwant %d", host.renders, frames)
	}
	if host.requests != frames+1 {
		t.Fatalf("requests\nhave %d\nwant %d", host.requests, frames+1)
	}
	if len(host.pending) != 1 {
		t.Fatalf("pending callbacks\nhave %d\nwant 1", len(host.pending))
	}
	// the renderer must observe the pose produced in the same tick
	if math.Abs(float64(host.seenY[0])-6.05) > 1e-5 {
		t.Fatalf("render 1 saw y = %v, want 6.05", host.seenY[0])
	}
	if b.Velocity != 0.05 && b.Velocity != -0.05 {
		t.Fatalf("velocity magnitude changed: %v", b.Velocity)
	}
}

func TestStopEndsRescheduling(t *testing.T) {
	host := &fakeHost{}
	u := NewFrameUpdater(WithRenderer(host), WithScheduler(host))
	u.Start()
	host.tick()
	u.Stop()
	host.tick()
	if len(host.pending) != 0 {
		t.Fatalf("pending after Stop\nhave %d\nwant 0", len(host.pending))
	}
	if u.Frame() != 2 || host.renders != 2 {
		t.Fatalf("have frame=%d renders=%d\nwant 2, 2", u.Frame(), host.renders)
	}
}

func TestRenderErrorIsReportedAndLoopContinues(t *testing.T) {
	boom := errors.New("device lost")
	host := &fakeHost{err: boom}
	var gotFrames []uint64
	u := NewFrameUpdater(
		WithRenderer(host),
		WithScheduler(host),
		WithRenderErrorHandler(func(frame uint64, err error) {
			if !errors.Is(err, boom) {
				t.Errorf("handler err\nhave %v\nwant %v", err, boom)
			}
			gotFrames = append(gotFrames, frame)
		}),
	)
	u.Start()
	host.tick()
	host.tick()
	if len(gotFrames) != 2 || gotFrames[0] != 1 || gotFrames[1] != 2 {
		t.Fatalf("reported frames\nhave %v\nwant [1 2]", gotFrames)
	}
	if len(host.pending) != 1 {
		t.Fatal("a render failure must not stop the loop")
	}
}

func TestAdvanceDrivesEveryRule(t *testing.T) {
	bounceH := &fakeHandle{pos: [3]float32{4.6, 6, 6}}
	floatH := &fakeHandle{pos: [3]float32{7, 6.2, 3}, rot: [3]float32{0, math.Pi / 2, 0}}
	orbitH := &fakeHandle{pos: [3]float32{2, 7, 0}}
	spinH := &fakeHandle{}
	staticH := &fakeHandle{pos: [3]float32{0, 3, 0}}

	b, _ := NewBounce(AxisY, 0.05, 1, 6)
	f, _ := NewFloat(AxisY, 0.4, 0.02, 6.2)
	o, _ := NewOrbit([3]float64{}, 2, 0, 0.5)
	u := NewFrameUpdater(
		WithObject(bounceH, b),
		WithObject(floatH, Combine(f, Spin{Rate: [3]float64{0.01, 0.01, 0.01}})),
		WithObject(orbitH, Combine(o, Spin{Rate: [3]float64{0, 0.01, 0}})),
		WithObject(spinH, Spin{Rate: [3]float64{-0.03, -0.03, -0.03}}),
		WithObject(staticH, nil),
	)

	const n = 250
	for i := 0; i < n; i++ {
		u.Advance()
	}

	if y := float64(bounceH.pos[1]); y < 1-0.05-1e-5 || y > 6+0.05+1e-5 {
		t.Fatalf("bounce y = %v out of tolerance", y)
	}
	if want := 0.4*math.Sin(n*0.02) + 6.2; math.Abs(float64(floatH.pos[1])-want) > 1e-5 {
		t.Fatalf("float y\nhave %v\nwant %v", floatH.pos[1], want)
	}
	if want := math.Pi/2 + n*0.01; math.Abs(float64(floatH.rot[1])-want) > 1e-4 {
		t.Fatalf("float ry\nhave %v\nwant %v", floatH.rot[1], want)
	}
	if d := math.Hypot(float64(orbitH.pos[0]), float64(orbitH.pos[2])); math.Abs(d-2) > 1e-5 {
		t.Fatalf("orbit distance\nhave %v\nwant 2", d)
	}
	if orbitH.pos[1] != 7 {
		t.Fatalf("orbit y\nhave %v\nwant 7", orbitH.pos[1])
	}
	if want := -0.03 * n; math.Abs(float64(spinH.rot[0])-want) > 1e-4 {
		t.Fatalf("spin rx\nhave %v\nwant %v", spinH.rot[0], want)
	}
	if staticH.sets != 0 {
		t.Fatalf("static object was written %d times", staticH.sets)
	}
}
