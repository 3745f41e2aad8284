package game_object

import (
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-showcase/common"
	"github.com/Carmen-Shannon/oxy-showcase/engine/renderer/material"
	"github.com/go-gl/mathgl/mgl32"
)

type gameObject struct {
	mu       *sync.Mutex
	id       uint64
	name     string
	modelKey string
	material material.Material
	enabled  atomic.Bool

	position [3]float32
	rotation [3]float32
	scale    [3]float32
}

// GameObject defines the interface for a renderable scene entity: a named
// reference to a registered mesh drawn with a material under a transform.
//
// Rotation is stored as Euler angles in radians applied in X, Y, Z order.
// GameObject satisfies the animation Handle contract so the frame updater can
// drive its transform directly.
type GameObject interface {
	// ID returns the object's unique identifier, assigned by the scene.
	//
	// Returns:
	//   - uint64: the object ID
	ID() uint64

	// Name returns the object's name.
	//
	// Returns:
	//   - string: the name
	Name() string

	// ModelKey returns the name of the mesh this object draws.
	//
	// Returns:
	//   - string: the registered model name
	ModelKey() string

	// Material returns the surface material, or nil for the renderer default.
	//
	// Returns:
	//   - material.Material: the material
	Material() material.Material

	// Enabled returns whether this object is enabled for rendering.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// Position returns the world-space position.
	Position() (x, y, z float32)

	// Rotation returns the Euler rotation in radians.
	Rotation() (rx, ry, rz float32)

	// Scale returns the per-axis scale.
	Scale() (sx, sy, sz float32)

	// Transform reads position, rotation and scale under one lock.
	//
	// Returns:
	//   - pos: position as [3]float32 (x, y, z)
	//   - rot: rotation as [3]float32 (rx, ry, rz)
	//   - scale: scale as [3]float32 (x, y, z)
	Transform() (pos, rot, scale [3]float32)

	// ModelMatrix builds the world matrix T * Rx * Ry * Rz * S from the current transform.
	//
	// Returns:
	//   - mgl32.Mat4: the model matrix
	ModelMatrix() mgl32.Mat4

	// SetID sets the object's unique identifier.
	SetID(id uint64)

	// SetEnabled sets whether the object is enabled for rendering.
	SetEnabled(enabled bool)

	// SetMaterial replaces the surface material.
	SetMaterial(m material.Material)

	// SetPosition sets the world-space position.
	SetPosition(x, y, z float32)

	// SetRotation sets the Euler rotation in radians.
	SetRotation(rx, ry, rz float32)

	// SetScale sets the per-axis scale.
	SetScale(sx, sy, sz float32)
}

var _ GameObject = &gameObject{}

// NewGameObject creates a new enabled GameObject at the origin with unit scale,
// then applies the provided options.
//
// Parameters:
//   - options: a variadic list of GameObjectBuilderOption functions to configure the object
//
// Returns:
//   - GameObject: a new GameObject instance
func NewGameObject(options ...GameObjectBuilderOption) GameObject {
	g := &gameObject{
		mu:    &sync.Mutex{},
		scale: [3]float32{1, 1, 1},
	}
	g.enabled.Store(true)
	for _, opt := range options {
		opt(g)
	}
	return g
}

func (g *gameObject) ID() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.id
}

func (g *gameObject) Name() string {
	return g.name
}

func (g *gameObject) ModelKey() string {
	return g.modelKey
}

func (g *gameObject) Material() material.Material {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.material
}

func (g *gameObject) Enabled() bool {
	return g.enabled.Load()
}

func (g *gameObject) Position() (x, y, z float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.position[0], g.position[1], g.position[2]
}

func (g *gameObject) Rotation() (rx, ry, rz float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rotation[0], g.rotation[1], g.rotation[2]
}

func (g *gameObject) Scale() (sx, sy, sz float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.scale[0], g.scale[1], g.scale[2]
}

func (g *gameObject) Transform() (pos, rot, scale [3]float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.position, g.rotation, g.scale
}

func (g *gameObject) ModelMatrix() mgl32.Mat4 {
	pos, rot, scale := g.Transform()
	return common.BuildModelMatrix(pos, rot, scale)
}

func (g *gameObject) SetID(id uint64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.id = id
}

func (g *gameObject) SetEnabled(enabled bool) {
	g.enabled.Store(enabled)
}

func (g *gameObject) SetMaterial(m material.Material) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.material = m
}

func (g *gameObject) SetPosition(x, y, z float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.position = [3]float32{x, y, z}
}

func (g *gameObject) SetRotation(rx, ry, rz float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rotation = [3]float32{rx, ry, rz}
}

func (g *gameObject) SetScale(sx, sy, sz float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.scale = [3]float32{sx, sy, sz}
}
