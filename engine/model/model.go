package model

import (
	"math"
)

// model is the implementation of the Model interface.
type model struct {
	name           string
	vertices       []GPUVertex
	indices        []uint32
	boundingRadius float32
}

// Model defines the interface for a procedurally built triangle mesh.
// A Model is immutable once built; renderers upload its vertex and index data
// once and draw it any number of times under different transforms and materials.
type Model interface {
	// Name retrieves the model identifier used as its renderer key.
	//
	// Returns:
	//   - string: the model name
	Name() string

	// Vertices returns the mesh vertices.
	//
	// Returns:
	//   - []GPUVertex: the vertex slice (do not modify)
	Vertices() []GPUVertex

	// Indices returns the triangle list indices, three per triangle, counter-clockwise front faces.
	//
	// Returns:
	//   - []uint32: the index slice (do not modify)
	Indices() []uint32

	// VertexData returns the vertices serialized for a GPU vertex buffer.
	//
	// Returns:
	//   - []byte: the vertex data
	VertexData() []byte

	// IndexData returns the indices serialized for a GPU index buffer.
	//
	// Returns:
	//   - []byte: the index data
	IndexData() []byte

	// IndexCount returns the number of indices in the model's mesh.
	//
	// Returns:
	//   - int: the index count
	IndexCount() int

	// BoundingRadius returns the bounding sphere radius for this model, measured as
	// the maximum vertex distance from the origin. Used by frustum culling.
	//
	// Returns:
	//   - float32: the bounding radius
	BoundingRadius() float32
}

var _ Model = &model{}

// NewModel creates a new Model instance with the specified options applied.
// The bounding radius is derived from the vertices.
//
// Parameters:
//   - options: a variadic list of ModelBuilderOption functions to configure the Model
//
// Returns:
//   - Model: a new instance of Model configured with the provided options
func NewModel(options ...ModelBuilderOption) Model {
	m := &model{}
	for _, opt := range options {
		opt(m)
	}
	var r2 float32
	for _, v := range m.vertices {
		p := v.Position
		if d := p[0]*p[0] + p[1]*p[1] + p[2]*p[2]; d > r2 {
			r2 = d
		}
	}
	m.boundingRadius = float32(math.Sqrt(float64(r2)))
	return m
}

func (m *model) Name() string {
	return m.name
}

func (m *model) Vertices() []GPUVertex {
	return m.vertices
}

func (m *model) Indices() []uint32 {
	return m.indices
}

func (m *model) VertexData() []byte {
	return MarshalVertices(m.vertices)
}

func (m *model) IndexData() []byte {
	return MarshalIndices(m.indices)
}

func (m *model) IndexCount() int {
	return len(m.indices)
}

func (m *model) BoundingRadius() float32 {
	return m.boundingRadius
}
