package renderer

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/Carmen-Shannon/oxy-showcase/engine/model"
	"github.com/cogentcore/webgpu/wgpu"
)

var (
	// ErrUnknownModel is returned when a draw item names a model that was never registered.
	ErrUnknownModel = errors.New("renderer: unknown model")

	// ErrDuplicateModel is returned when a model name is registered twice.
	ErrDuplicateModel = errors.New("renderer: model already registered")

	// ErrReleased is returned by calls made after Release.
	ErrReleased = errors.New("renderer: released")
)

// Surface is the drawable a WebGPU backend presents to. engine/window.Window satisfies it.
type Surface interface {
	SurfaceDescriptor() *wgpu.SurfaceDescriptor
	Width() int
	Height() int
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backendType RendererBackendType
	backend     RendererBackend

	models    map[string]int
	frames    uint64
	width     int
	height    int
	suspended bool
	released  bool

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	presentMode          PresentMode
	msaa                 MSAASampleCount
	frameSink            func(Frame)
}

// Renderer draws retained scene snapshots. Meshes are uploaded once by name;
// each RenderFrame call then draws one complete Frame and presents it.
//
// All methods are safe to call from the engine's update thread; the WebGPU
// backend additionally requires that thread to be the OS thread that created
// the window.
type Renderer interface {
	// BackendType returns the backend this renderer draws with.
	//
	// Returns:
	//   - RendererBackendType: the backend type
	BackendType() RendererBackendType

	// RegisterModel uploads a model's mesh under its name.
	//
	// Parameters:
	//   - m: the model to upload
	//
	// Returns:
	//   - error: ErrDuplicateModel, ErrReleased, or a backend upload error
	RegisterModel(m model.Model) error

	// HasModel reports whether a model name has been registered.
	HasModel(name string) bool

	// RenderFrame draws and presents one frame. Every draw item must name a
	// registered model. While the surface has zero size nothing is drawn and
	// nil is returned.
	//
	// Parameters:
	//   - f: the frame to draw
	//
	// Returns:
	//   - error: ErrUnknownModel, ErrReleased, or a backend error
	RenderFrame(f Frame) error

	// Resize configures the backend for a new surface size. A zero dimension
	// suspends drawing until the next non-zero resize.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// Size returns the current surface size.
	Size() (width, height int)

	// Frames returns the number of frames drawn.
	//
	// Returns:
	//   - uint64: the drawn frame count
	Frames() uint64

	// Release frees all GPU resources. Later calls return ErrReleased.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a new Renderer with the given backend. The WebGPU backend
// draws to surface and panics if no adapter or device can be acquired; the
// headless backend ignores surface, which may be nil.
//
// Parameters:
//   - backendType: the type of rendering backend to use
//   - surface: the window surface for BackendTypeWGPU
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: a new instance of Renderer configured with the specified backend and options
func NewRenderer(backendType RendererBackendType, surface Surface, options ...RendererBuilderOption) Renderer {
	r := &renderer{
		mu:          &sync.Mutex{},
		backendType: backendType,
		models:      make(map[string]int),
		width:       800,
		height:      600,
		presentMode: PresentModeVSync,
		msaa:        MSAA4x,
	}

	// Apply options first so config flags (e.g. forceFallbackAdapter) are
	// available before the backend requests a GPU adapter.
	for _, opt := range options {
		opt(r)
	}

	switch backendType {
	case BackendTypeHeadless:
		r.backend = newHeadlessRendererBackend()
	case BackendTypeWGPU:
		fallthrough
	default:
		if surface == nil {
			panic("renderer: the wgpu backend requires a surface")
		}
		r.width, r.height = surface.Width(), surface.Height()
		r.backend = newWGPURendererBackend(surface.SurfaceDescriptor(), r.forceFallbackAdapter, r.msaa)
	}

	r.backend.SetPresentMode(r.presentMode)
	r.configure(r.width, r.height)
	log.Printf("[Renderer] %s backend ready at %dx%d", backendType, r.width, r.height)
	return r
}

func (r *renderer) BackendType() RendererBackendType {
	return r.backendType
}

func (r *renderer) RegisterModel(m model.Model) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.released {
		return ErrReleased
	}
	name := m.Name()
	if _, exists := r.models[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateModel, name)
	}
	if err := r.backend.RegisterMesh(name, m.VertexData(), m.IndexData(), m.IndexCount()); err != nil {
		return fmt.Errorf("register model %q: %w", name, err)
	}
	r.models[name] = m.IndexCount()
	return nil
}

func (r *renderer) HasModel(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.models[name]
	return ok
}

func (r *renderer) RenderFrame(f Frame) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.released {
		return ErrReleased
	}
	for _, items := range [][]DrawItem{f.Opaque, f.Transparent} {
		for _, item := range items {
			if _, ok := r.models[item.Model]; !ok {
				return fmt.Errorf("frame %d: object %d: %w: %q", f.Index, item.ObjectID, ErrUnknownModel, item.Model)
			}
		}
	}
	if r.suspended {
		return nil
	}
	if err := r.backend.Draw(&f); err != nil {
		return fmt.Errorf("frame %d: %w", f.Index, err)
	}
	r.frames++
	if r.frameSink != nil {
		r.frameSink(f)
	}
	return nil
}

func (r *renderer) Resize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.released {
		return
	}
	r.configure(width, height)
}

func (r *renderer) Size() (width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width, r.height
}

func (r *renderer) Frames() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.released {
		return
	}
	r.released = true
	r.backend.Release()
}

// configure records the surface size and reconfigures the backend unless a
// dimension is zero. Caller must hold the mutex.
func (r *renderer) configure(width, height int) {
	r.width, r.height = width, height
	r.suspended = width <= 0 || height <= 0
	if r.suspended {
		return
	}
	r.backend.ConfigureSurface(width, height)
}
