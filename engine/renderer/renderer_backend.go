package renderer

// RendererBackendType identifies the backend implementation used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU selects the WebGPU-based rendering backend drawing to a window surface.
	BackendTypeWGPU RendererBackendType = iota

	// BackendTypeHeadless selects a backend that records frames without a GPU.
	BackendTypeHeadless
)

// String returns the backend name.
func (t RendererBackendType) String() string {
	switch t {
	case BackendTypeWGPU:
		return "wgpu"
	case BackendTypeHeadless:
		return "headless"
	}
	return "unknown"
}

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// MSAASampleCount controls the number of samples used for multisample anti-aliasing (MSAA).
// WebGPU guarantees support for 1 (off) and 4.
type MSAASampleCount uint32

const (
	// MSAAOff disables multisample anti-aliasing (sample count 1).
	MSAAOff MSAASampleCount = 1

	// MSAA4x enables 4× multisample anti-aliasing. This is the default.
	MSAA4x MSAASampleCount = 4
)

// RendererBackend is the contract each backend implements. The Renderer front
// end validates input and serializes calls; backends only draw.
type RendererBackend interface {
	// RegisterMesh uploads a mesh under a name.
	//
	// Parameters:
	//   - name: the model key draw items refer to
	//   - vertexData: serialized GPUVertex data
	//   - indexData: serialized uint32 indices
	//   - indexCount: number of indices
	//
	// Returns:
	//   - error: an error if the upload fails
	RegisterMesh(name string, vertexData, indexData []byte, indexCount int) error

	// Draw renders and presents one frame.
	//
	// Parameters:
	//   - f: the frame to draw
	//
	// Returns:
	//   - error: an error if the frame could not be drawn
	Draw(f *Frame) error

	// ConfigureSurface resizes render targets. Width and height are positive.
	ConfigureSurface(width, height int)

	// SetPresentMode sets the present mode used at the next ConfigureSurface.
	SetPresentMode(mode PresentMode)

	// Release frees every backend resource.
	Release()
}
