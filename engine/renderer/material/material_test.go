package material

import (
	"encoding/binary"
	"math"
	"testing"
)

func TestNewMaterialDefaults(t *testing.T) {
	m := NewMaterial()
	if m.BaseColor() != [4]float32{1, 1, 1, 1} || m.Roughness() != 1 || m.Metallic() != 0 {
		t.Fatalf("defaults: have %v r=%v m=%v", m.BaseColor(), m.Roughness(), m.Metallic())
	}
	if m.Transparent() {
		t.Fatal("default material should be opaque")
	}
}

func TestOpacityMakesTransparent(t *testing.T) {
	m := NewMaterial(
		WithName("sphereMaterial1"),
		WithBaseColor([3]float32{0, 1, 1}),
		WithOpacity(0.9),
		WithRoughness(0.1),
		WithMetallic(0.4),
	)
	if !m.Transparent() {
		t.Fatal("opacity 0.9 should be transparent")
	}
	if m.BaseColor() != [4]float32{0, 1, 1, 0.9} {
		t.Fatalf("base color\nhave %v\nwant [0 1 1 0.9]", m.BaseColor())
	}
	if !NewMaterial(WithTransparent(true)).Transparent() {
		t.Fatal("WithTransparent(true) ignored")
	}
}

func TestFactorsAreClamped(t *testing.T) {
	m := NewMaterial(WithRoughness(-1), WithMetallic(3), WithOpacity(2))
	if m.Roughness() != 0 || m.Metallic() != 1 || m.BaseColor()[3] != 1 {
		t.Fatalf("have r=%v m=%v a=%v", m.Roughness(), m.Metallic(), m.BaseColor()[3])
	}
}

func TestGPUMaterialMarshal(t *testing.T) {
	g := NewMaterial(WithRoughness(0.7), WithMetallic(0.5)).GPU()
	if g.Size() != 32 {
		t.Fatalf("size\nhave %d\nwant 32", g.Size())
	}
	buf := g.Marshal()
	if got := math.Float32frombits(binary.LittleEndian.Uint32(buf[16:])); got != 0.7 {
		t.Fatalf("roughness\nhave %v\nwant 0.7", got)
	}
	if got := math.Float32frombits(binary.LittleEndian.Uint32(buf[20:])); got != 0.5 {
		t.Fatalf("metallic\nhave %v\nwant 0.5", got)
	}
}
