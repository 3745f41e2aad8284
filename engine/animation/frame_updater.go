package animation

import (
	"log"
)

// Handle is a non-owning reference to a scene object whose transform the
// FrameUpdater drives.
type Handle interface {
	Position() (x, y, z float32)
	Rotation() (rx, ry, rz float32)
	SetPosition(x, y, z float32)
	SetRotation(rx, ry, rz float32)
}

// Renderer draws the scene with its camera once.
type Renderer interface {
	RenderFrame() error
}

// Scheduler runs a callback once before the next presented frame.
type Scheduler interface {
	RequestNextFrame(callback func())
}

type animatedObject struct {
	handle Handle
	motion Motion
	pose   Pose
}

type frameUpdater struct {
	objects []*animatedObject
	frame   uint64
	stopped bool

	renderer  Renderer
	scheduler Scheduler
	onError   func(frame uint64, err error)
}

// FrameUpdater advances every animated object by one frame per tick, renders
// once, and re-registers itself with the host scheduler.
//
// All state is owned by the updater and mutated only from Advance, which runs
// on the host's single update thread.
type FrameUpdater interface {
	// Add registers a handle with its motion rule. The handle's current
	// transform becomes the object's initial pose.
	//
	// Parameters:
	//   - h: the scene object handle
	//   - m: the motion rule; nil leaves the object static
	//
	// Returns:
	//   - int: the object's index for Pose lookups
	Add(h Handle, m Motion) int

	// Advance runs one tick: steps all motions, applies every pose, renders
	// once, then requests the next frame from the scheduler.
	Advance()

	// Start requests the first Advance from the scheduler.
	Start()

	// Stop prevents the next Advance from re-registering itself.
	Stop()

	// Frame returns the number of completed Advance calls.
	//
	// Returns:
	//   - uint64: the frame counter
	Frame() uint64

	// Len returns the number of registered objects.
	//
	// Returns:
	//   - int: the object count
	Len() int

	// Pose returns the current pose of the object at index i.
	//
	// Parameters:
	//   - i: an index returned by Add
	//
	// Returns:
	//   - Pose: the object's pose
	//   - bool: false if i is out of range
	Pose(i int) (Pose, bool)
}

var _ FrameUpdater = &frameUpdater{}

// NewFrameUpdater creates a FrameUpdater. Without a renderer Advance only steps
// and applies poses; without a scheduler nothing is re-registered.
//
// Parameters:
//   - options: functional options (renderer, scheduler, error handler)
//
// Returns:
//   - FrameUpdater: the new updater
func NewFrameUpdater(options ...FrameUpdaterBuilderOption) FrameUpdater {
	u := &frameUpdater{
		objects: make([]*animatedObject, 0, 16),
		onError: func(frame uint64, err error) {
			log.Printf("[FrameUpdater] render failed on frame %d: %v", frame, err)
		},
	}
	for _, opt := range options {
		opt(u)
	}
	return u
}

func (u *frameUpdater) Add(h Handle, m Motion) int {
	obj := &animatedObject{handle: h, motion: m}
	px, py, pz := h.Position()
	rx, ry, rz := h.Rotation()
	obj.pose.Position = [3]float64{float64(px), float64(py), float64(pz)}
	obj.pose.Rotation = [3]float64{float64(rx), float64(ry), float64(rz)}
	u.objects = append(u.objects, obj)
	return len(u.objects) - 1
}

func (u *frameUpdater) Advance() {
	for _, obj := range u.objects {
		if obj.motion == nil {
			continue
		}
		obj.motion.Step(&obj.pose)
		p, r := obj.pose.Position, obj.pose.Rotation
		obj.handle.SetPosition(float32(p[0]), float32(p[1]), float32(p[2]))
		obj.handle.SetRotation(float32(r[0]), float32(r[1]), float32(r[2]))
	}
	u.frame++

	if u.renderer != nil {
		if err := u.renderer.RenderFrame(); err != nil && u.onError != nil {
			u.onError(u.frame, err)
		}
	}

	if u.scheduler != nil && !u.stopped {
		u.scheduler.RequestNextFrame(u.Advance)
	}
}

func (u *frameUpdater) Start() {
	u.stopped = false
	if u.scheduler != nil {
		u.scheduler.RequestNextFrame(u.Advance)
	}
}

func (u *frameUpdater) Stop() {
	u.stopped = true
}

func (u *frameUpdater) Frame() uint64 {
	return u.frame
}

func (u *frameUpdater) Len() int {
	return len(u.objects)
}

func (u *frameUpdater) Pose(i int) (Pose, bool) {
	if i < 0 || i >= len(u.objects) {
		return Pose{}, false
	}
	return u.objects[i].pose, true
}
