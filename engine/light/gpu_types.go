package light

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// MaxGPULights is the maximum number of lights that can be marshaled into the
// GPU storage buffer per frame. Enabled lights beyond this count are dropped.
const MaxGPULights = 64

// GPULightSource is the canonical WGSL definition of the Light struct.
// Matches GPULight layout exactly (64 bytes, std430 aligned).
//
//go:embed assets/light.wgsl
var GPULightSource string

// GPULight is the GPU-aligned representation of a single light source.
// Matches the WGSL Light struct layout exactly (see GPULightSource).
// Size: 64 bytes (std430 / WGSL aligned).
type GPULight struct {
	Position   [3]float32 // offset  0: world-space position (point/spot) or unused (directional)
	LightType  uint32     // offset 12: 0 = directional, 1 = point, 2 = spot
	Color      [3]float32 // offset 16: RGB color
	Intensity  float32    // offset 28: scalar multiplier
	Direction  [3]float32 // offset 32: normalized direction (directional/spot) or unused (point)
	LightRange float32    // offset 44: attenuation cutoff distance, 0 = unlimited
	InnerCone  float32    // offset 48: cos(inner half-angle) for spot
	OuterCone  float32    // offset 52: cos(outer half-angle) for spot
	Enabled    uint32     // offset 56: 1 = lit, 0 = skipped
	_pad       uint32     // offset 60: padding to 64-byte alignment
}

// Size returns the size of the GPULight struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (64)
func (g *GPULight) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPULight struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 64-byte buffer ready for GPU upload
func (g *GPULight) Marshal() []byte {
	buf := make([]byte, 64)
	putVec3(buf[0:12], g.Position)
	binary.LittleEndian.PutUint32(buf[12:16], g.LightType)
	putVec3(buf[16:28], g.Color)
	binary.LittleEndian.PutUint32(buf[28:32], math.Float32bits(g.Intensity))
	putVec3(buf[32:44], g.Direction)
	binary.LittleEndian.PutUint32(buf[44:48], math.Float32bits(g.LightRange))
	binary.LittleEndian.PutUint32(buf[48:52], math.Float32bits(g.InnerCone))
	binary.LittleEndian.PutUint32(buf[52:56], math.Float32bits(g.OuterCone))
	binary.LittleEndian.PutUint32(buf[56:60], g.Enabled)
	return buf
}

// GPULightHeaderSource is the canonical WGSL definition of the LightHeader struct.
// Matches GPULightHeader layout exactly (16 bytes, std430 aligned).
//
//go:embed assets/light_header.wgsl
var GPULightHeaderSource string

// GPULightHeader is the header prepended to the light storage buffer.
// Contains the ambient color and the active light count.
// Size: 16 bytes (vec3 + u32, std430 aligned).
type GPULightHeader struct {
	AmbientColor [3]float32 // offset 0: scene ambient RGB
	LightCount   uint32     // offset 12: number of active lights following the header
}

// Size returns the size of the GPULightHeader struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (16)
func (h *GPULightHeader) Size() int {
	return int(unsafe.Sizeof(*h))
}

// Marshal serializes the GPULightHeader struct into a byte buffer suitable for
// GPU upload.
//
// Returns:
//   - []byte: 16-byte buffer ready for GPU upload
func (h *GPULightHeader) Marshal() []byte {
	buf := make([]byte, 16)
	putVec3(buf[0:12], h.AmbientColor)
	binary.LittleEndian.PutUint32(buf[12:16], h.LightCount)
	return buf
}

// CollectGPULights converts the enabled lights into their GPU form, capped at
// MaxGPULights, and builds the matching header.
//
// Parameters:
//   - lights: the scene lights in registration order
//   - ambient: the scene ambient color as RGB
//
// Returns:
//   - GPULightHeader: header carrying the ambient color and light count
//   - []GPULight: the enabled lights
func CollectGPULights(lights []Light, ambient [3]float32) (GPULightHeader, []GPULight) {
	out := make([]GPULight, 0, len(lights))
	for _, l := range lights {
		if len(out) == MaxGPULights {
			break
		}
		if !l.Enabled() {
			continue
		}
		out = append(out, l.GPU())
	}
	return GPULightHeader{AmbientColor: ambient, LightCount: uint32(len(out))}, out
}

// MarshalLightBuffer lays out a light storage buffer:
//
//	[GPULightHeader (16 bytes)] [GPULight × max(count, 1) (64 bytes each)]
//
// At least one light slot is always written because WebGPU rejects a
// zero-length runtime array binding.
//
// Parameters:
//   - header: the buffer header
//   - lights: the lights following the header
//
// Returns:
//   - []byte: the marshaled buffer ready for GPU upload
func MarshalLightBuffer(header GPULightHeader, lights []GPULight) []byte {
	headerSize := header.Size()
	lightSize := (&GPULight{}).Size()
	buf := make([]byte, headerSize+max(len(lights), 1)*lightSize)
	copy(buf, header.Marshal())
	for i := range lights {
		copy(buf[headerSize+i*lightSize:], lights[i].Marshal())
	}
	return buf
}

// LightBufferSize returns the byte size of a light storage buffer holding n lights.
func LightBufferSize(n int) uint64 {
	return uint64(16 + max(n, 1)*64)
}

func putVec3(dst []byte, v [3]float32) {
	for i := range 3 {
		binary.LittleEndian.PutUint32(dst[i*4:], math.Float32bits(v[i]))
	}
}
