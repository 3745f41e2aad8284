package common

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// ParseColor converts a "#rrggbb" hex string into linear RGB, the space the
// shaders light in.
//
// Parameters:
//   - hex: the sRGB color, e.g. "#3399ff"
//
// Returns:
//   - [3]float32: linear RGB components in [0, 1]
//   - error: error if hex is not a valid color
func ParseColor(hex string) ([3]float32, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return [3]float32{}, fmt.Errorf("parse color %q: %w", hex, err)
	}
	r, g, b := c.LinearRgb()
	return [3]float32{float32(r), float32(g), float32(b)}, nil
}
