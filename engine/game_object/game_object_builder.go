package game_object

import "github.com/Carmen-Shannon/oxy-showcase/engine/renderer/material"

// GameObjectBuilderOption is a functional option for configuring a GameObject via NewGameObject.
type GameObjectBuilderOption func(*gameObject)

// WithName is an option builder that sets the object's name.
//
// Parameters:
//   - name: the object name
//
// Returns:
//   - GameObjectBuilderOption: a function that applies the name option to a gameObject
func WithName(name string) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.name = name
	}
}

// WithModel is an option builder that selects the registered mesh the object draws.
//
// Parameters:
//   - key: the model name passed to the renderer at registration
//
// Returns:
//   - GameObjectBuilderOption: a function that applies the model option to a gameObject
func WithModel(key string) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.modelKey = key
	}
}

// WithMaterial is an option builder that sets the surface material.
//
// Parameters:
//   - m: the material
//
// Returns:
//   - GameObjectBuilderOption: a function that applies the material option to a gameObject
func WithMaterial(m material.Material) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.material = m
	}
}

// WithEnabled is an option builder that sets the initial enabled state.
//
// Parameters:
//   - enabled: true to render the object
//
// Returns:
//   - GameObjectBuilderOption: a function that applies the enabled option to a gameObject
func WithEnabled(enabled bool) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.enabled.Store(enabled)
	}
}

// WithPosition is an option builder that sets the initial position.
//
// Parameters:
//   - x, y, z: world-space position
//
// Returns:
//   - GameObjectBuilderOption: a function that applies the position option to a gameObject
func WithPosition(x, y, z float32) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.position = [3]float32{x, y, z}
	}
}

// WithRotation is an option builder that sets the initial Euler rotation in radians.
//
// Parameters:
//   - rx, ry, rz: rotation around each axis
//
// Returns:
//   - GameObjectBuilderOption: a function that applies the rotation option to a gameObject
func WithRotation(rx, ry, rz float32) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.rotation = [3]float32{rx, ry, rz}
	}
}

// WithScale is an option builder that sets the initial scale.
//
// Parameters:
//   - sx, sy, sz: scale per axis
//
// Returns:
//   - GameObjectBuilderOption: a function that applies the scale option to a gameObject
func WithScale(sx, sy, sz float32) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.scale = [3]float32{sx, sy, sz}
	}
}
