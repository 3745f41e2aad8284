package material

// material is the implementation of the Material interface.
type material struct {
	name        string
	baseColor   [4]float32
	metallic    float32
	roughness   float32
	transparent bool
}

// Material defines the surface parameters of a mesh: a linear RGBA base color
// whose alpha is the opacity, and the metallic/roughness pair the lit shader
// uses to shape specular highlights.
type Material interface {
	// Name retrieves the material identifier.
	//
	// Returns:
	//   - string: the name of the material
	Name() string

	// BaseColor retrieves the linear RGBA color of the material. Alpha is the opacity.
	//
	// Returns:
	//   - [4]float32: the base color as RGBA values
	BaseColor() [4]float32

	// Metallic retrieves the metallic factor of the material.
	// A value of 0.0 represents a dielectric surface, 1.0 represents a fully metallic surface.
	//
	// Returns:
	//   - float32: the metallic factor
	Metallic() float32

	// Roughness retrieves the roughness factor of the material.
	// A value of 0.0 represents a perfectly smooth surface, 1.0 represents a fully rough surface.
	//
	// Returns:
	//   - float32: the roughness factor
	Roughness() float32

	// Transparent reports whether the material is drawn with alpha blending after
	// all opaque geometry. Materials with opacity below 1 are always transparent.
	//
	// Returns:
	//   - bool: true if alpha blended
	Transparent() bool

	// GPU returns the material packed for the per-object uniform.
	//
	// Returns:
	//   - GPUMaterial: the GPU representation
	GPU() GPUMaterial
}

var _ Material = &material{}

// NewMaterial creates a new Material instance configured with the provided options.
// Roughness and metallic are clamped to [0, 1].
//
// Parameters:
//   - options: variadic list of MaterialBuilderOption functions to configure the material
//
// Returns:
//   - Material: a new Material instance
func NewMaterial(options ...MaterialBuilderOption) Material {
	m := &material{
		baseColor: [4]float32{1, 1, 1, 1},
		metallic:  0.0,
		roughness: 1.0,
	}
	for _, opt := range options {
		opt(m)
	}
	m.metallic = clamp01(m.metallic)
	m.roughness = clamp01(m.roughness)
	m.baseColor[3] = clamp01(m.baseColor[3])
	if m.baseColor[3] < 1 {
		m.transparent = true
	}
	return m
}

func (m *material) Name() string {
	return m.name
}

func (m *material) BaseColor() [4]float32 {
	return m.baseColor
}

func (m *material) Metallic() float32 {
	return m.metallic
}

func (m *material) Roughness() float32 {
	return m.roughness
}

func (m *material) Transparent() bool {
	return m.transparent
}

func (m *material) GPU() GPUMaterial {
	return GPUMaterial{
		BaseColor: m.baseColor,
		Roughness: m.roughness,
		Metallic:  m.metallic,
	}
}

func clamp01(v float32) float32 {
	return max(0, min(1, v))
}
