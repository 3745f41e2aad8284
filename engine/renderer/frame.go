package renderer

import (
	"github.com/Carmen-Shannon/oxy-showcase/engine/camera"
	"github.com/Carmen-Shannon/oxy-showcase/engine/light"
	"github.com/Carmen-Shannon/oxy-showcase/engine/renderer/material"
	"github.com/go-gl/mathgl/mgl32"
)

// DrawItem is one object snapshot: which registered mesh to draw, where, and how it looks.
type DrawItem struct {
	ObjectID    uint64
	Model       string
	ModelMatrix mgl32.Mat4
	Material    material.GPUMaterial
}

// Frame is everything a backend needs to draw one image. Opaque items are drawn
// first with depth writes, then Transparent items in slice order with blending,
// so callers sort Transparent far to near.
type Frame struct {
	Index       uint64
	Camera      camera.GPUCameraUniform
	ClearColor  [4]float64
	LightHeader light.GPULightHeader
	Lights      []light.GPULight
	Opaque      []DrawItem
	Transparent []DrawItem
}

// DrawCount returns the number of items in the frame.
//
// Returns:
//   - int: opaque plus transparent item count
func (f *Frame) DrawCount() int {
	return len(f.Opaque) + len(f.Transparent)
}
