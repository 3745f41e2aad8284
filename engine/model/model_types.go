package model

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-showcase/common"
)

var (
	// ErrUnknownKind is returned when a Spec names no supported primitive.
	ErrUnknownKind = errors.New("model: unknown primitive kind")

	// ErrInvalidDimension is returned when a size or segment count is out of range.
	ErrInvalidDimension = errors.New("model: invalid dimension")
)

// Kind identifies a procedural primitive.
type Kind string

const (
	KindBox          Kind = "box"
	KindPlane        Kind = "plane"
	KindSphere       Kind = "sphere"
	KindCylinder     Kind = "cylinder"
	KindIcosahedron  Kind = "icosahedron"
	KindDodecahedron Kind = "dodecahedron"
	KindTorusKnot    Kind = "torusKnot"
)

// Spec describes one primitive mesh. Only the fields relevant to Kind are read;
// zero segment counts and knot windings fall back to defaults.
type Spec struct {
	Kind Kind `yaml:"kind"`

	// box and plane
	Width  float32 `yaml:"width"`
	Height float32 `yaml:"height"`
	Depth  float32 `yaml:"depth"`

	// sphere, polyhedra and torus knot
	Radius float32 `yaml:"radius"`

	// cylinder (Height is shared with box)
	RadiusTop    float32 `yaml:"radiusTop"`
	RadiusBottom float32 `yaml:"radiusBottom"`

	// torus knot tube radius
	Tube float32 `yaml:"tube"`

	WidthSegments   int `yaml:"widthSegments"`
	HeightSegments  int `yaml:"heightSegments"`
	RadialSegments  int `yaml:"radialSegments"`
	TubularSegments int `yaml:"tubularSegments"`

	// torus knot winding numbers
	P int `yaml:"p"`
	Q int `yaml:"q"`
}

// Build generates the mesh described by s.
//
// Parameters:
//   - name: the model name, used as its renderer key
//
// Returns:
//   - Model: the generated model
//   - error: ErrUnknownKind or ErrInvalidDimension wrapped with the model name
func (s Spec) Build(name string) (Model, error) {
	var (
		vertices []GPUVertex
		indices  []uint32
	)

	switch s.Kind {
	case KindBox:
		if s.Width <= 0 || s.Height <= 0 || s.Depth <= 0 {
			return nil, fmt.Errorf("%s: %w: box %vx%vx%v", name, ErrInvalidDimension, s.Width, s.Height, s.Depth)
		}
		vertices, indices = Box(s.Width, s.Height, s.Depth)
	case KindPlane:
		if s.Width <= 0 || s.Height <= 0 {
			return nil, fmt.Errorf("%s: %w: plane %vx%v", name, ErrInvalidDimension, s.Width, s.Height)
		}
		vertices, indices = Plane(s.Width, s.Height)
	case KindSphere:
		ws := common.Coalesce(s.WidthSegments, 32)
		hs := common.Coalesce(s.HeightSegments, 16)
		if s.Radius <= 0 || ws < 3 || hs < 2 {
			return nil, fmt.Errorf("%s: %w: sphere r=%v segments %dx%d", name, ErrInvalidDimension, s.Radius, ws, hs)
		}
		vertices, indices = Sphere(s.Radius, ws, hs)
	case KindCylinder:
		rs := common.Coalesce(s.RadialSegments, 32)
		hs := common.Coalesce(s.HeightSegments, 1)
		if s.RadiusTop < 0 || s.RadiusBottom < 0 || s.RadiusTop+s.RadiusBottom == 0 || s.Height <= 0 || rs < 3 || hs < 1 {
			return nil, fmt.Errorf("%s: %w: cylinder r=%v/%v h=%v segments %dx%d",
				name, ErrInvalidDimension, s.RadiusTop, s.RadiusBottom, s.Height, rs, hs)
		}
		vertices, indices = Cylinder(s.RadiusTop, s.RadiusBottom, s.Height, rs, hs)
	case KindIcosahedron:
		if s.Radius <= 0 {
			return nil, fmt.Errorf("%s: %w: icosahedron r=%v", name, ErrInvalidDimension, s.Radius)
		}
		vertices, indices = Icosahedron(s.Radius)
	case KindDodecahedron:
		if s.Radius <= 0 {
			return nil, fmt.Errorf("%s: %w: dodecahedron r=%v", name, ErrInvalidDimension, s.Radius)
		}
		vertices, indices = Dodecahedron(s.Radius)
	case KindTorusKnot:
		ts := common.Coalesce(s.TubularSegments, 64)
		rs := common.Coalesce(s.RadialSegments, 8)
		p := common.Coalesce(s.P, 2)
		q := common.Coalesce(s.Q, 3)
		if s.Radius <= 0 || s.Tube <= 0 || ts < 3 || rs < 3 {
			return nil, fmt.Errorf("%s: %w: torus knot r=%v tube=%v segments %dx%d",
				name, ErrInvalidDimension, s.Radius, s.Tube, ts, rs)
		}
		vertices, indices = TorusKnot(s.Radius, s.Tube, ts, rs, p, q)
	default:
		return nil, fmt.Errorf("%s: %w: %q", name, ErrUnknownKind, s.Kind)
	}

	return NewModel(WithName(name), WithVertices(vertices), WithIndices(indices)), nil
}
