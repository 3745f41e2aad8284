package config

import (
	"fmt"
	"math"

	"github.com/Carmen-Shannon/oxy-showcase/common"
	"github.com/Carmen-Shannon/oxy-showcase/engine/animation"
	"github.com/Carmen-Shannon/oxy-showcase/engine/light"
	"github.com/Carmen-Shannon/oxy-showcase/engine/renderer/material"
)

// Colors returns the scene background and ambient colors in linear RGB.
//
// Returns:
//   - background: the clear color
//   - ambient: the ambient light color
//   - err: a color parse error
func (s SceneConfig) Colors() (background, ambient [3]float32, err error) {
	if background, err = common.ParseColor(s.Background); err != nil {
		return
	}
	ambient, err = common.ParseColor(s.Ambient)
	return
}

// Build creates the light described by l.
//
// Returns:
//   - light.Light: the light
//   - error: ErrUnknownLight, a color error, or ErrInvalidConfig for bad values
func (l LightConfig) Build() (light.Light, error) {
	color, err := common.ParseColor(l.Color)
	if err != nil {
		return nil, err
	}
	if l.Intensity < 0 || l.Range < 0 || !finite(l.Intensity, l.Range) {
		return nil, fmt.Errorf("%w: intensity %v range %v", ErrInvalidConfig, l.Intensity, l.Range)
	}

	opts := []light.LightBuilderOption{
		light.WithColor(color),
		light.WithIntensity(l.Intensity),
		light.WithRange(l.Range),
		light.WithPosition(l.Position[0], l.Position[1], l.Position[2]),
		light.WithTarget(l.Target),
	}

	var lightType light.LightType
	switch l.Type {
	case "spot":
		if l.Angle <= 0 || l.Angle > math.Pi/2 || l.Penumbra < 0 || l.Penumbra > 1 {
			return nil, fmt.Errorf("%w: spot angle %v penumbra %v", ErrInvalidConfig, l.Angle, l.Penumbra)
		}
		lightType = light.LightTypeSpot
		opts = append(opts, light.WithSpotCone(l.Angle*(1-l.Penumbra), l.Angle))
	case "point":
		lightType = light.LightTypePoint
	case "directional":
		lightType = light.LightTypeDirectional
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownLight, l.Type)
	}
	return light.NewLight(lightType, opts...), nil
}

// Build creates the material described by m.
//
// Parameters:
//   - name: the material name
//
// Returns:
//   - material.Material: the material
//   - error: a color error, or ErrInvalidConfig for out-of-range factors
func (m MaterialConfig) Build(name string) (material.Material, error) {
	color, err := common.ParseColor(m.Color)
	if err != nil {
		return nil, err
	}
	opacity := float32(1)
	if m.Opacity != nil {
		opacity = *m.Opacity
	}
	for _, f := range []float32{m.Roughness, m.Metalness, opacity} {
		if f < 0 || f > 1 || !finite(f) {
			return nil, fmt.Errorf("%w: roughness %v metalness %v opacity %v", ErrInvalidConfig, m.Roughness, m.Metalness, opacity)
		}
	}
	return material.NewMaterial(
		material.WithName(name),
		material.WithBaseColor(color),
		material.WithRoughness(m.Roughness),
		material.WithMetallic(m.Metalness),
		material.WithOpacity(opacity),
		material.WithTransparent(m.Transparent),
	), nil
}

// ScaleOrDefault returns the object's scale, or 1 on every axis when unset.
func (o ObjectConfig) ScaleOrDefault() [3]float32 {
	if o.Scale == nil {
		return [3]float32{1, 1, 1}
	}
	return *o.Scale
}

// BuildMotion combines the object's motion rules in order.
//
// Returns:
//   - animation.Motion: the combined rule, or nil for a static object
//   - error: the first invalid rule
func (o ObjectConfig) BuildMotion() (animation.Motion, error) {
	motions := make([]animation.Motion, 0, len(o.Motion))
	for i, mc := range o.Motion {
		m, err := mc.Build()
		if err != nil {
			return nil, fmt.Errorf("motion %d: %w", i, err)
		}
		motions = append(motions, m)
	}
	return animation.Combine(motions...), nil
}

// Build creates the motion rule described by m. Every call returns a fresh
// rule, since bounce, float and orbit rules carry state.
//
// Returns:
//   - animation.Motion: the rule
//   - error: ErrUnknownMotion or the animation constructor's error
func (m MotionConfig) Build() (animation.Motion, error) {
	var (
		motion animation.Motion
		err    error
	)
	switch m.Type {
	case "bounce":
		var axis animation.Axis
		if axis, err = animation.ParseAxis(m.Axis); err == nil {
			var b *animation.Bounce
			b, err = animation.NewBounce(axis, m.Velocity, m.Min, m.Max)
			motion = b
		}
	case "float":
		var axis animation.Axis
		if axis, err = animation.ParseAxis(m.Axis); err == nil {
			var f *animation.Float
			f, err = animation.NewFloat(axis, m.Amplitude, m.Frequency, m.Baseline)
			motion = f
		}
	case "orbit":
		var o *animation.Orbit
		o, err = animation.NewOrbit(m.Center, m.Radius, m.Angle, m.Step)
		motion = o
	case "spin":
		motion = animation.Spin{Rate: m.Rate}
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownMotion, m.Type)
	}
	if err != nil {
		return nil, err
	}
	return motion, nil
}
