package camera

import (
	_ "embed"
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// GPUCameraUniformSize is the byte size of the CameraUniform WGSL struct.
const GPUCameraUniformSize = 80

// GPUCameraUniformSource declares the CameraUniform struct bound at group 0, binding 0.
//
//go:embed assets/camera_uniform.wgsl
var GPUCameraUniformSource string

// GPUCameraUniform is the per-frame camera data read by the vertex and fragment stages:
// the view-projection matrix at offset 0 and the eye position at offset 64,
// followed by one pad word.
type GPUCameraUniform struct {
	ViewProj       mgl32.Mat4
	CameraPosition [3]float32
}

// NewGPUCameraUniform packs a view-projection matrix and an eye position.
//
// Parameters:
//   - viewProj: the combined projection * view matrix
//   - eye: the world-space camera position
//
// Returns:
//   - GPUCameraUniform: the uniform value
func NewGPUCameraUniform(viewProj mgl32.Mat4, eye mgl32.Vec3) GPUCameraUniform {
	return GPUCameraUniform{ViewProj: viewProj, CameraPosition: eye}
}

func (g *GPUCameraUniform) Size() int {
	return GPUCameraUniformSize
}

// Marshal writes the uniform in little-endian order. The pad word is left zero.
//
// Returns:
//   - []byte: GPUCameraUniformSize bytes
func (g *GPUCameraUniform) Marshal() []byte {
	buf := make([]byte, GPUCameraUniformSize)
	off := 0
	put := func(f float32) {
		binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(f))
		off += 4
	}
	for _, f := range g.ViewProj {
		put(f)
	}
	for _, f := range g.CameraPosition {
		put(f)
	}
	return buf
}
