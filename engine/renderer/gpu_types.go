package renderer

import (
	_ "embed"
	"encoding/binary"
	"math"
	"strings"
	"unsafe"

	"github.com/Carmen-Shannon/oxy-showcase/engine/camera"
	"github.com/Carmen-Shannon/oxy-showcase/engine/light"
	"github.com/Carmen-Shannon/oxy-showcase/engine/model"
	"github.com/Carmen-Shannon/oxy-showcase/engine/renderer/material"
	"github.com/go-gl/mathgl/mgl32"
)

// GPUObjectUniformSource is the canonical WGSL definition of the ObjectUniform struct.
// Matches GPUObjectUniform layout exactly (160 bytes).
//
//go:embed assets/object_uniform.wgsl
var GPUObjectUniformSource string

//go:embed assets/scene.wgsl
var sceneShaderBody string

// GPUObjectUniform is the per-object uniform bound at group 1.
// Size: 160 bytes.
type GPUObjectUniform struct {
	Model        mgl32.Mat4           // offset   0: model-to-world matrix
	NormalMatrix mgl32.Mat4           // offset  64: inverse transpose of Model
	Material     material.GPUMaterial // offset 128: surface parameters
}

// Size returns the size of the GPUObjectUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (160)
func (u *GPUObjectUniform) Size() int {
	return int(unsafe.Sizeof(*u))
}

// Marshal serializes the GPUObjectUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 160-byte buffer ready for GPU upload
func (u *GPUObjectUniform) Marshal() []byte {
	buf := make([]byte, 0, 160)
	buf = appendMat4(buf, u.Model)
	buf = appendMat4(buf, u.NormalMatrix)
	return append(buf, u.Material.Marshal()...)
}

// NewGPUObjectUniform packs a draw item for upload, deriving the normal matrix.
//
// Parameters:
//   - item: the draw item
//
// Returns:
//   - GPUObjectUniform: the packed uniform
func NewGPUObjectUniform(item DrawItem) GPUObjectUniform {
	normal := item.ModelMatrix.Mat3().Inv().Transpose().Mat4()
	if item.ModelMatrix.Mat3().Det() == 0 {
		normal = mgl32.Ident4()
	}
	return GPUObjectUniform{
		Model:        item.ModelMatrix,
		NormalMatrix: normal,
		Material:     item.Material,
	}
}

// SceneShaderSource assembles the lit scene shader from the canonical struct
// sources of each package and the shader body.
//
// Returns:
//   - string: the complete WGSL module
func SceneShaderSource() string {
	return strings.Join([]string{
		camera.GPUCameraUniformSource,
		light.GPULightSource,
		light.GPULightHeaderSource,
		material.GPUMaterialSource,
		GPUObjectUniformSource,
		model.GPUVertexSource,
		sceneShaderBody,
	}, "\n")
}

func appendMat4(buf []byte, m mgl32.Mat4) []byte {
	for _, v := range m {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(v))
	}
	return buf
}
