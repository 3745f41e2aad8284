package camera

// ControllerBuilderOption is a function that configures an orbit controller during construction.
type ControllerBuilderOption func(*orbitController)

// WithTarget sets the initial look-at point.
//
// Parameters:
//   - target: world-space pivot
//
// Returns:
//   - ControllerBuilderOption: functional option to set the target
func WithTarget(target [3]float32) ControllerBuilderOption {
	return func(cc *orbitController) {
		cc.target = target
	}
}

// WithEye places the eye at a world-space point relative to the target set so far.
// Apply it after WithTarget.
//
// Parameters:
//   - eye: world-space camera position
//
// Returns:
//   - ControllerBuilderOption: functional option to set the eye
func WithEye(eye [3]float32) ControllerBuilderOption {
	return func(cc *orbitController) {
		cc.placeEye(eye)
	}
}

// WithRadiusLimits sets the allowed orbit distance range.
//
// Parameters:
//   - minRadius: closest allowed distance
//   - maxRadius: farthest allowed distance
//
// Returns:
//   - ControllerBuilderOption: functional option to set the radius limits
func WithRadiusLimits(minRadius, maxRadius float32) ControllerBuilderOption {
	return func(cc *orbitController) {
		cc.minRadius = minRadius
		cc.maxRadius = maxRadius
		cc.radius = clamp(cc.radius, minRadius, maxRadius)
	}
}

// WithElevationLimits sets the allowed elevation range in radians.
//
// Parameters:
//   - minElevation: lowest allowed angle
//   - maxElevation: highest allowed angle
//
// Returns:
//   - ControllerBuilderOption: functional option to set the elevation limits
func WithElevationLimits(minElevation, maxElevation float32) ControllerBuilderOption {
	return func(cc *orbitController) {
		cc.minElevation = minElevation
		cc.maxElevation = maxElevation
		cc.elevation = clamp(cc.elevation, minElevation, maxElevation)
	}
}
