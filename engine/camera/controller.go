package camera

import (
	"math"
	"sync"
)

// Controller owns the camera's positional state as a target point plus
// spherical coordinates around it. The camera reads Eye and Target each frame.
//
// Controller also satisfies the animation Handle contract: Position/SetPosition
// address the eye, and Rotation/SetRotation address (elevation, azimuth, 0), so
// a Spin rule on the y axis orbits the camera around its target.
type Controller interface {
	// Eye returns the world-space camera position.
	//
	// Returns:
	//   - [3]float32: the eye position
	Eye() [3]float32

	// Target returns the look-at point.
	//
	// Returns:
	//   - [3]float32: world-space target position
	Target() [3]float32

	// SetTarget moves the pivot point, keeping radius and angles.
	//
	// Parameters:
	//   - target: world-space coordinates
	SetTarget(target [3]float32)

	// Position returns the eye position as components.
	Position() (x, y, z float32)

	// SetPosition places the eye at a world-space point and derives the
	// spherical coordinates from its offset to the target.
	//
	// Parameters:
	//   - x, y, z: world-space coordinates
	SetPosition(x, y, z float32)

	// Rotation returns (elevation, azimuth, 0) in radians.
	Rotation() (rx, ry, rz float32)

	// SetRotation sets elevation from rx and azimuth from ry, then recomputes the eye.
	// Elevation is clamped to the controller's limits; rz is ignored.
	//
	// Parameters:
	//   - rx: elevation in radians
	//   - ry: azimuth in radians
	//   - rz: unused
	SetRotation(rx, ry, rz float32)

	// Radius returns the distance from target to eye.
	//
	// Returns:
	//   - float32: the orbit radius
	Radius() float32

	// SetRadius sets the orbit radius, clamped to [minRadius, maxRadius].
	//
	// Parameters:
	//   - radius: new distance from target
	SetRadius(radius float32)

	// Azimuth returns the horizontal angle around the Y axis in radians.
	Azimuth() float32

	// Elevation returns the vertical angle from the horizontal plane in radians.
	Elevation() float32
}

// orbitController is the implementation of Controller.
type orbitController struct {
	mu *sync.Mutex

	position [3]float32
	target   [3]float32

	radius    float32
	azimuth   float32
	elevation float32

	minRadius    float32
	maxRadius    float32
	minElevation float32
	maxElevation float32
}

var _ Controller = &orbitController{}

// NewController creates an orbit controller. Without options the eye sits
// 10 units in front of the origin on +Z.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - Controller: the newly created controller
func NewController(options ...ControllerBuilderOption) Controller {
	cc := &orbitController{
		mu:           &sync.Mutex{},
		radius:       10.0,
		minRadius:    0.1,
		maxRadius:    1000.0,
		minElevation: -float32(math.Pi/2) + 0.01,
		maxElevation: float32(math.Pi/2) - 0.01,
	}
	for _, option := range options {
		option(cc)
	}
	cc.updatePosition()
	return cc
}

func (cc *orbitController) Eye() [3]float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.position
}

func (cc *orbitController) Target() [3]float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.target
}

func (cc *orbitController) SetTarget(target [3]float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.target = target
	cc.updatePosition()
}

func (cc *orbitController) Position() (x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.position[0], cc.position[1], cc.position[2]
}

func (cc *orbitController) SetPosition(x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.placeEye([3]float32{x, y, z})
}

func (cc *orbitController) Rotation() (rx, ry, rz float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.elevation, cc.azimuth, 0
}

func (cc *orbitController) SetRotation(rx, ry, _ float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.elevation = clamp(rx, cc.minElevation, cc.maxElevation)
	cc.azimuth = ry
	cc.updatePosition()
}

func (cc *orbitController) Radius() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.radius
}

func (cc *orbitController) SetRadius(radius float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.radius = clamp(radius, cc.minRadius, cc.maxRadius)
	cc.updatePosition()
}

func (cc *orbitController) Azimuth() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.azimuth
}

func (cc *orbitController) Elevation() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.elevation
}

// placeEye derives radius, azimuth and elevation from an eye position.
// Caller must hold the mutex.
func (cc *orbitController) placeEye(eye [3]float32) {
	dx := float64(eye[0] - cc.target[0])
	dy := float64(eye[1] - cc.target[1])
	dz := float64(eye[2] - cc.target[2])
	r := math.Sqrt(dx*dx + dy*dy + dz*dz)
	if r < 1e-6 {
		return
	}
	cc.radius = clamp(float32(r), cc.minRadius, cc.maxRadius)
	cc.elevation = clamp(float32(math.Asin(dy/r)), cc.minElevation, cc.maxElevation)
	cc.azimuth = float32(math.Atan2(dx, dz))
	cc.updatePosition()
}

// updatePosition recomputes the eye from spherical coordinates.
// Caller must hold the mutex.
func (cc *orbitController) updatePosition() {
	cosElev := float32(math.Cos(float64(cc.elevation)))
	sinElev := float32(math.Sin(float64(cc.elevation)))
	cosAzim := float32(math.Cos(float64(cc.azimuth)))
	sinAzim := float32(math.Sin(float64(cc.azimuth)))

	cc.position[0] = cc.target[0] + cc.radius*cosElev*sinAzim
	cc.position[1] = cc.target[1] + cc.radius*sinElev
	cc.position[2] = cc.target[2] + cc.radius*cosElev*cosAzim
}

func clamp(v, lo, hi float32) float32 {
	return max(lo, min(hi, v))
}
