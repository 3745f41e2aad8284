package animation

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidAxis is returned when an axis index is outside X, Y, Z.
	ErrInvalidAxis = errors.New("animation: invalid axis")

	// ErrInvalidBounds is returned when a bounce range has min >= max.
	ErrInvalidBounds = errors.New("animation: invalid bounce bounds")

	// ErrVelocityTooLarge is returned when a bounce step could cross both bounds in one frame.
	ErrVelocityTooLarge = errors.New("animation: bounce velocity too large for bounds")

	// ErrInvalidRadius is returned when an orbit radius is negative.
	ErrInvalidRadius = errors.New("animation: invalid orbit radius")
)

// Axis selects one component of a position or rotation vector.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// String returns the lowercase axis name.
func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	}
	return fmt.Sprintf("Axis(%d)", int(a))
}

// ParseAxis converts "x", "y" or "z" into an Axis.
//
// Parameters:
//   - s: the axis name (case sensitive, lowercase)
//
// Returns:
//   - Axis: the parsed axis
//   - error: ErrInvalidAxis if s names no axis
func ParseAxis(s string) (Axis, error) {
	switch s {
	case "x":
		return AxisX, nil
	case "y":
		return AxisY, nil
	case "z":
		return AxisZ, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidAxis, s)
}

func (a Axis) valid() bool {
	return a >= AxisX && a <= AxisZ
}

// Pose is the transform state the FrameUpdater owns for one animated object.
// Rotation holds Euler angles in radians.
type Pose struct {
	Position [3]float64
	Rotation [3]float64
}

// Motion is a per-frame motion rule. Step advances the rule's own state by one
// frame and writes the result into p.
type Motion interface {
	Step(p *Pose)
}

// Bounce moves one position component by a fixed velocity each frame and
// reverses the velocity once the component is past either bound. The position
// is never clamped, so it may overshoot a bound by at most one step.
type Bounce struct {
	Axis     Axis
	Velocity float64
	Min      float64
	Max      float64
}

var _ Motion = &Bounce{}

// NewBounce creates a validated Bounce rule.
//
// Parameters:
//   - axis: the position component to move
//   - velocity: signed per-frame step
//   - min: lower reflection bound
//   - max: upper reflection bound
//
// Returns:
//   - *Bounce: the bounce rule
//   - error: ErrInvalidAxis, ErrInvalidBounds or ErrVelocityTooLarge
func NewBounce(axis Axis, velocity, min, max float64) (*Bounce, error) {
	if !axis.valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidAxis, int(axis))
	}
	if min >= max {
		return nil, fmt.Errorf("%w: min %v >= max %v", ErrInvalidBounds, min, max)
	}
	if math.Abs(velocity) >= max-min {
		return nil, fmt.Errorf("%w: |%v| >= %v", ErrVelocityTooLarge, velocity, max-min)
	}
	return &Bounce{Axis: axis, Velocity: velocity, Min: min, Max: max}, nil
}

func (b *Bounce) Step(p *Pose) {
	v := p.Position[b.Axis] + b.Velocity
	p.Position[b.Axis] = v
	if v > b.Max || v < b.Min {
		b.Velocity = -b.Velocity
	}
}

// Float sets one position component to Amplitude*sin(Phase)+Baseline, advancing
// Phase by Frequency before each evaluation. After n steps from a zero phase the
// component equals Amplitude*sin(n*Frequency)+Baseline.
type Float struct {
	Axis      Axis
	Amplitude float64
	Frequency float64
	Baseline  float64
	Phase     float64
}

var _ Motion = &Float{}

// NewFloat creates a validated Float rule starting at phase zero.
//
// Parameters:
//   - axis: the position component to drive
//   - amplitude: peak displacement from the baseline
//   - frequency: phase increment per frame in radians
//   - baseline: resting value of the component
//
// Returns:
//   - *Float: the float rule
//   - error: ErrInvalidAxis if axis is out of range
func NewFloat(axis Axis, amplitude, frequency, baseline float64) (*Float, error) {
	if !axis.valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidAxis, int(axis))
	}
	return &Float{Axis: axis, Amplitude: amplitude, Frequency: frequency, Baseline: baseline}, nil
}

func (f *Float) Step(p *Pose) {
	f.Phase += f.Frequency
	p.Position[f.Axis] = f.Amplitude*math.Sin(f.Phase) + f.Baseline
}

// Orbit moves an object around Center on the XZ plane. The angle is kept in
// degrees and converted at evaluation time; the Y component is left as is.
type Orbit struct {
	Center   [3]float64
	Radius   float64
	AngleDeg float64
	StepDeg  float64
}

var _ Motion = &Orbit{}

// NewOrbit creates a validated Orbit rule.
//
// Parameters:
//   - center: orbit center (only X and Z are used)
//   - radius: orbit radius, must be >= 0
//   - angleDeg: starting angle in degrees
//   - stepDeg: angle increment per frame in degrees
//
// Returns:
//   - *Orbit: the orbit rule
//   - error: ErrInvalidRadius if radius is negative
func NewOrbit(center [3]float64, radius, angleDeg, stepDeg float64) (*Orbit, error) {
	if radius < 0 || math.IsNaN(radius) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRadius, radius)
	}
	return &Orbit{Center: center, Radius: radius, AngleDeg: angleDeg, StepDeg: stepDeg}, nil
}

func (o *Orbit) Step(p *Pose) {
	o.AngleDeg += o.StepDeg
	rad := o.AngleDeg * math.Pi / 180
	p.Position[0] = o.Center[0] + o.Radius*math.Cos(rad)
	p.Position[2] = o.Center[2] + o.Radius*math.Sin(rad)
}

// Spin accumulates a fixed per-frame delta on each rotation axis. Angles are
// never wrapped.
type Spin struct {
	Rate [3]float64
}

var _ Motion = Spin{}

func (s Spin) Step(p *Pose) {
	p.Rotation[0] += s.Rate[0]
	p.Rotation[1] += s.Rate[1]
	p.Rotation[2] += s.Rate[2]
}

// composite applies several rules to the same pose in order.
type composite []Motion

func (c composite) Step(p *Pose) {
	for _, m := range c {
		m.Step(p)
	}
}

// Combine returns a single rule that applies each non-nil motion in order.
// A single motion is returned unchanged.
//
// Parameters:
//   - motions: the rules to combine
//
// Returns:
//   - Motion: the combined rule, or nil if no motion was given
func Combine(motions ...Motion) Motion {
	c := make(composite, 0, len(motions))
	for _, m := range motions {
		if m != nil {
			c = append(c, m)
		}
	}
	switch len(c) {
	case 0:
		return nil
	case 1:
		return c[0]
	}
	return c
}
