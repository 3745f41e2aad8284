package engine

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/oxy-showcase/engine/animation"
	"github.com/Carmen-Shannon/oxy-showcase/engine/profiler"
	"github.com/Carmen-Shannon/oxy-showcase/engine/scene"
	"github.com/Carmen-Shannon/oxy-showcase/engine/window"
)

// engine implements the Engine interface.
// Callbacks queued with RequestNextFrame run on the goroutine that called Run
// or RunHeadless, one batch per tick.
type engine struct {
	mu      *sync.Mutex
	pending []func()

	frames  atomic.Uint64
	quit    chan struct{}
	quitted atomic.Bool

	window window.Window
	scene  scene.Scene

	profiler         *profiler.Profiler
	profilingEnabled atomic.Bool

	tickRate   time.Duration // headless tick period
	frameLimit time.Duration // minimum windowed frame duration; 0 = uncapped
}

// Engine hosts the cooperative frame loop. It implements animation.Scheduler:
// each tick runs exactly the callbacks that were queued before the tick began,
// so a callback that re-queues itself runs once per tick.
type Engine interface {
	animation.Scheduler

	// Window returns the underlying window, or nil in headless use.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Scene returns the scene resize events are forwarded to, or nil.
	Scene() scene.Scene

	// Pending returns the number of callbacks queued for the next tick.
	Pending() int

	// Frames returns the number of ticks run so far.
	//
	// Returns:
	//   - uint64: the tick count
	Frames() uint64

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickRate sets the headless tick rate in ticks per second.
	//
	// Parameters:
	//   - fps: target ticks per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// SetFrameLimit caps the windowed loop in frames per second.
	// Pass 0 to uncap it (default).
	//
	// Parameters:
	//   - fps: maximum frames per second (0 = uncapped)
	SetFrameLimit(fps float64)

	// Run drives ticks from the window message loop. Blocks until the window
	// closes or Quit is called, then closes the window. Panics without a window.
	Run()

	// RunHeadless drives ticks from a ticker at the configured tick rate.
	// Returns nil after frames ticks (0 = unbounded), after Quit, or once no
	// callback is pending; returns ctx.Err() if the context ends first.
	//
	// Parameters:
	//   - ctx: cancels the loop
	//   - frames: the number of ticks to run, 0 for no limit
	//
	// Returns:
	//   - error: the context error, or nil
	RunHeadless(ctx context.Context, frames uint64) error

	// Quit stops the running loop after the current tick.
	// Safe to call multiple times and from any goroutine.
	Quit()
}

var _ Engine = &engine{}

// NewEngine creates a new Engine instance with the provided options.
// When both a window and a scene are configured, framebuffer resizes are
// forwarded to the scene's renderer and camera aspect.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		mu:       &sync.Mutex{},
		quit:     make(chan struct{}),
		tickRate: time.Second / 60,
	}

	for _, opt := range options {
		opt(e)
	}
	if e.profiler == nil {
		e.profiler = profiler.NewProfiler()
	}

	if e.window != nil && e.scene != nil {
		e.window.SetResizeCallback(e.resize)
	}

	return e
}

// resize forwards a framebuffer size change to the scene.
func (e *engine) resize(width, height int) {
	e.scene.Renderer().Resize(width, height)
	if height > 0 {
		e.scene.Camera().SetAspect(float32(width) / float32(height))
	}
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Scene() scene.Scene {
	return e.scene
}

func (e *engine) RequestNextFrame(callback func()) {
	if callback == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pending = append(e.pending, callback)
}

func (e *engine) Pending() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.pending)
}

func (e *engine) Frames() uint64 {
	return e.frames.Load()
}

// tick runs the callbacks queued before it started. Callbacks queued while it
// runs wait for the next tick.
func (e *engine) tick() {
	e.mu.Lock()
	batch := e.pending
	e.pending = nil
	e.mu.Unlock()

	for _, cb := range batch {
		cb()
	}
	e.frames.Add(1)

	if e.profilingEnabled.Load() {
		e.profiler.Tick()
	}
}

func (e *engine) Run() {
	if e.window == nil {
		panic("engine: Run requires a window")
	}
	log.Printf("[Engine] running %q", e.window.Title())

	last := time.Now()
	e.window.SetUpdateCallback(func() {
		if e.quitted.Load() {
			e.window.RequestClose()
			return
		}
		e.tick()

		if e.frameLimit > 0 {
			if remaining := e.frameLimit - time.Since(last); remaining > 0 {
				time.Sleep(remaining)
			}
		}
		last = time.Now()
	})
	e.window.ProcessMessages()

	if err := e.window.Close(); err != nil {
		log.Printf("[Engine] close window: %v", err)
	}
	log.Printf("[Engine] stopped after %d frames", e.Frames())
}

func (e *engine) RunHeadless(ctx context.Context, frames uint64) error {
	ticker := time.NewTicker(e.tickRate)
	defer ticker.Stop()

	start := e.Frames()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-e.quit:
			return nil
		case <-ticker.C:
			if e.quitted.Load() {
				return nil
			}
			if e.Pending() == 0 {
				log.Printf("[Engine] nothing scheduled, stopping after %d frames", e.Frames()-start)
				return nil
			}
			e.tick()
			if frames > 0 && e.Frames()-start >= frames {
				return nil
			}
		}
	}
}

// Quit closes the quit channel once.
func (e *engine) Quit() {
	if e.quitted.CompareAndSwap(false, true) {
		close(e.quit)
	}
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled.Store(true)
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled.Store(false)
}

func (e *engine) SetTickRate(fps float64) {
	e.tickRate = tickPeriod(fps)
}

func (e *engine) SetFrameLimit(fps float64) {
	e.frameLimit = 0
	if fps > 0 {
		e.frameLimit = time.Duration(float64(time.Second) / fps)
	}
}

// tickPeriod converts a rate to a period, defaulting to 60Hz for zero, negative
// or NaN rates. The period is never shorter than a nanosecond.
func tickPeriod(fps float64) time.Duration {
	if !(fps > 0) {
		fps = 60
	}
	return max(time.Duration(float64(time.Second)/fps), time.Nanosecond)
}
