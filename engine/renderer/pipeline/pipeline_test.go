package pipeline

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
)

func TestNewPipelineDefaults(t *testing.T) {
	p := NewPipeline("opaque", "// wgsl")
	if !p.DepthWriteEnabled() || p.BlendEnabled() {
		t.Fatalf("have depthWrite=%v blend=%v\nwant true, false", p.DepthWriteEnabled(), p.BlendEnabled())
	}
	if p.CullMode() != wgpu.CullModeBack || p.FrontFace() != wgpu.FrontFaceCCW {
		t.Fatalf("have cull=%v front=%v", p.CullMode(), p.FrontFace())
	}
	if p.VertexEntryPoint() != "vs_main" || p.FragmentEntryPoint() != "fs_main" {
		t.Fatalf("have entry points %q/%q", p.VertexEntryPoint(), p.FragmentEntryPoint())
	}
	if p.RenderPipeline() != nil {
		t.Fatal("render pipeline should be nil before registration")
	}
}

func TestTransparentPipelineOptions(t *testing.T) {
	p := NewPipeline("transparent", "// wgsl",
		WithBlendEnabled(true),
		WithDepthWriteEnabled(false),
		WithCullMode(wgpu.CullModeNone),
		WithEntryPoints("vert", "frag"),
	)
	if !p.BlendEnabled() || p.DepthWriteEnabled() || p.CullMode() != wgpu.CullModeNone {
		t.Fatalf("have blend=%v depthWrite=%v cull=%v", p.BlendEnabled(), p.DepthWriteEnabled(), p.CullMode())
	}
	if p.BlendState().Color.SrcFactor != wgpu.BlendFactorSrcAlpha {
		t.Fatalf("color src factor\nhave %v\nwant %v", p.BlendState().Color.SrcFactor, wgpu.BlendFactorSrcAlpha)
	}
	if p.VertexEntryPoint() != "vert" || p.FragmentEntryPoint() != "frag" {
		t.Fatalf("have entry points %q/%q", p.VertexEntryPoint(), p.FragmentEntryPoint())
	}
}
