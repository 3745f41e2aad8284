package renderer

import "fmt"

// headlessRendererBackend validates and records frames without touching a GPU.
// It backs -headless runs and the package tests.
type headlessRendererBackend struct {
	meshes    map[string]int
	width     int
	height    int
	drawCalls uint64
	released  bool
}

var _ RendererBackend = &headlessRendererBackend{}

func newHeadlessRendererBackend() *headlessRendererBackend {
	return &headlessRendererBackend{meshes: make(map[string]int)}
}

func (b *headlessRendererBackend) RegisterMesh(name string, vertexData, indexData []byte, indexCount int) error {
	if len(vertexData) == 0 || indexCount == 0 || len(indexData) != indexCount*4 {
		return fmt.Errorf("mesh %q: %d vertex bytes, %d index bytes for %d indices", name, len(vertexData), len(indexData), indexCount)
	}
	b.meshes[name] = indexCount
	return nil
}

func (b *headlessRendererBackend) Draw(f *Frame) error {
	if b.width == 0 || b.height == 0 {
		return fmt.Errorf("surface not configured")
	}
	b.drawCalls += uint64(f.DrawCount())
	return nil
}

func (b *headlessRendererBackend) ConfigureSurface(width, height int) {
	b.width, b.height = width, height
}

func (b *headlessRendererBackend) SetPresentMode(PresentMode) {}

func (b *headlessRendererBackend) Release() {
	b.released = true
	clear(b.meshes)
}
