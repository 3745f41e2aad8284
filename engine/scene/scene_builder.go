package scene

import (
	"github.com/Carmen-Shannon/oxy-showcase/engine/game_object"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithObjects adds initial objects to the scene.
// Objects without IDs will be assigned new IDs.
//
// Parameters:
//   - objects: the objects to add
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithObjects(objects ...game_object.GameObject) SceneBuilderOption {
	return func(s *scene) {
		for _, obj := range objects {
			s.addLocked(obj)
		}
	}
}

// WithBackground sets the linear RGB clear color. Defaults to white.
//
// Parameters:
//   - color: the clear color
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithBackground(color [3]float32) SceneBuilderOption {
	return func(s *scene) {
		s.background = color
	}
}

// WithAmbientColor sets the ambient light color added to every lit surface.
//
// Parameters:
//   - color: the ambient RGB color
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithAmbientColor(color [3]float32) SceneBuilderOption {
	return func(s *scene) {
		s.ambient = color
	}
}

// WithBuildWorkers sets the number of worker goroutines used by LoadMeshes.
// Defaults to runtime.NumCPU()-1.
//
// Parameters:
//   - n: the number of build workers (minimum 1)
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithBuildWorkers(n int) SceneBuilderOption {
	return func(s *scene) {
		if n < 1 {
			n = 1
		}
		s.buildWorkers = n
	}
}

// WithFrustumCulling enables or disables skipping objects whose bounding sphere
// lies outside the camera frustum. Enabled by default.
//
// Parameters:
//   - enabled: true to cull
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithFrustumCulling(enabled bool) SceneBuilderOption {
	return func(s *scene) {
		s.cullingEnabled = enabled
	}
}
