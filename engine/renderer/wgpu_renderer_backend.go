package renderer

import (
	"fmt"
	"runtime"
	"strconv"
	"sync"

	"github.com/Carmen-Shannon/oxy-showcase/engine/camera"
	"github.com/Carmen-Shannon/oxy-showcase/engine/light"
	"github.com/Carmen-Shannon/oxy-showcase/engine/model"
	"github.com/Carmen-Shannon/oxy-showcase/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-showcase/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

const (
	opaquePipelineKey      = "scene_opaque"
	transparentPipelineKey = "scene_transparent"
)

type wgpuRendererBackendImpl struct {
	mu     *sync.Mutex
	device *wgpu.Device
	queue  *wgpu.Queue

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	surface  *wgpu.Surface

	surfaceFormat        wgpu.TextureFormat
	msaaTexture          *wgpu.Texture
	msaaTextureView      *wgpu.TextureView
	depthTexture         *wgpu.Texture
	depthTextureView     *wgpu.TextureView
	renderPassDescriptor *wgpu.RenderPassDescriptor

	presentMode wgpu.PresentMode
	sampleCount MSAASampleCount

	// group 0 layout and provider: camera uniform + light storage buffer
	globalLayout   *wgpu.BindGroupLayout
	globalProvider bind_group_provider.BindGroupProvider

	// group 1 layout and one provider per drawn object slot, grown on demand
	objectLayout    *wgpu.BindGroupLayout
	objectProviders []bind_group_provider.BindGroupProvider

	pipelineLayout *wgpu.PipelineLayout
	pipelines      map[string]pipeline.Pipeline
	meshes         map[string]bind_group_provider.BindGroupProvider
}

var _ RendererBackend = &wgpuRendererBackendImpl{}

// newWGPURendererBackend acquires an adapter and device for the surface and
// builds the bind group layouts. Pipelines are created on the first
// ConfigureSurface, once the surface format is known. Panics if the GPU cannot
// be initialized.
func newWGPURendererBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, forceFallbackAdapter bool, sampleCount MSAASampleCount) *wgpuRendererBackendImpl {
	runtime.LockOSThread()
	b := &wgpuRendererBackendImpl{
		mu:          &sync.Mutex{},
		instance:    wgpu.CreateInstance(nil),
		presentMode: wgpu.PresentModeFifo,
		sampleCount: sampleCount,
		pipelines:   make(map[string]pipeline.Pipeline),
		meshes:      make(map[string]bind_group_provider.BindGroupProvider),
	}
	b.surface = b.instance.CreateSurface(surfaceDescriptor)

	a, err := b.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    b.surface,
	})
	if err != nil {
		panic(err)
	}
	b.adapter = a

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Main Device",
	})
	if err != nil {
		panic(err)
	}
	b.device = d
	b.queue = d.GetQueue()

	if err := b.createLayouts(); err != nil {
		panic(err)
	}
	return b
}

// createLayouts builds the group 0 and group 1 layouts, the shared pipeline
// layout, and the group 0 buffers.
func (b *wgpuRendererBackendImpl) createLayouts() error {
	cameraSize := uint64((&camera.GPUCameraUniform{}).Size())
	objectSize := uint64((&GPUObjectUniform{}).Size())
	lightSize := light.LightBufferSize(light.MaxGPULights)

	var err error
	b.globalLayout, err = b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Scene Globals Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: cameraSize,
				},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeReadOnlyStorage,
					MinBindingSize: light.LightBufferSize(0),
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("globals layout: %w", err)
	}

	b.objectLayout, err = b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Scene Object Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: objectSize,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("object layout: %w", err)
	}

	b.pipelineLayout, err = b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Scene Pipeline Layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{b.globalLayout, b.objectLayout},
	})
	if err != nil {
		return fmt.Errorf("pipeline layout: %w", err)
	}

	b.globalProvider = bind_group_provider.NewBindGroupProvider("scene_globals")
	if err := b.initBindGroup(b.globalProvider, b.globalLayout, []uint64{cameraSize, lightSize},
		[]wgpu.BufferUsage{wgpu.BufferUsageUniform, wgpu.BufferUsageStorage}); err != nil {
		return err
	}
	return nil
}

// initBindGroup creates one buffer per binding and a bind group over them,
// storing both on the provider. Caller must hold the mutex or be the constructor.
func (b *wgpuRendererBackendImpl) initBindGroup(provider bind_group_provider.BindGroupProvider, layout *wgpu.BindGroupLayout, sizes []uint64, usages []wgpu.BufferUsage) error {
	entries := make([]wgpu.BindGroupEntry, len(sizes))
	for i, size := range sizes {
		buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: provider.Label() + " Buffer " + strconv.Itoa(i),
			Size:  size,
			Usage: usages[i] | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			return fmt.Errorf("%s buffer %d: %w", provider.Label(), i, err)
		}
		provider.SetBuffer(i, buf)
		entries[i] = wgpu.BindGroupEntry{
			Binding: uint32(i),
			Buffer:  buf,
			Offset:  0,
			Size:    wgpu.WholeSize,
		}
	}

	bindGroup, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   provider.Label() + " Bind Group",
		Layout:  layout,
		Entries: entries,
	})
	if err != nil {
		return fmt.Errorf("%s bind group: %w", provider.Label(), err)
	}
	provider.SetBindGroup(bindGroup)
	return nil
}

// preferredFormat picks an sRGB surface format when available so the linear
// shader output is encoded for display.
func preferredFormat(formats []wgpu.TextureFormat) wgpu.TextureFormat {
	for _, f := range formats {
		if f == wgpu.TextureFormatBGRA8UnormSrgb || f == wgpu.TextureFormatRGBA8UnormSrgb {
			return f
		}
	}
	return formats[0]
}

func (b *wgpuRendererBackendImpl) ConfigureSurface(width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	capabilities := b.surface.GetCapabilities(b.adapter)
	format := preferredFormat(capabilities.Formats)
	formatChanged := format != b.surfaceFormat || len(b.pipelines) == 0
	b.surfaceFormat = format

	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      b.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: b.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})

	b.releaseTargets()

	count := uint32(b.sampleCount)
	msaaEnabled := count > 1
	size := wgpu.Extent3D{
		Width:              uint32(width),
		Height:             uint32(height),
		DepthOrArrayLayers: 1,
	}

	var err error
	if msaaEnabled {
		// The render pass draws into the MSAA texture; the resolved result is
		// written to the swapchain view as the ResolveTarget.
		b.msaaTexture, err = b.device.CreateTexture(&wgpu.TextureDescriptor{
			Label:         "MSAA Texture",
			Size:          size,
			MipLevelCount: 1,
			SampleCount:   count,
			Dimension:     wgpu.TextureDimension2D,
			Format:        b.surfaceFormat,
			Usage:         wgpu.TextureUsageRenderAttachment,
		})
		if err != nil {
			panic(err)
		}
		b.msaaTextureView, err = b.msaaTexture.CreateView(nil)
		if err != nil {
			panic(err)
		}
	}

	// Depth texture sample count must match the color attachment.
	b.depthTexture, err = b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "Depth Texture",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   count,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatDepth24Plus,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		panic(err)
	}
	b.depthTextureView, err = b.depthTexture.CreateView(nil)
	if err != nil {
		panic(err)
	}

	storeOp := wgpu.StoreOpStore
	if msaaEnabled {
		storeOp = wgpu.StoreOpDiscard
	}
	b.renderPassDescriptor = &wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:    b.msaaTextureView, // nil when MSAA is off; set per frame
				LoadOp:  wgpu.LoadOpClear,
				StoreOp: storeOp,
			},
		},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            b.depthTextureView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard,
			DepthClearValue: 1.0,
		},
	}

	if formatChanged {
		if err := b.registerPipelines(); err != nil {
			panic(err)
		}
	}
}

// registerPipelines (re)creates the opaque and transparent scene pipelines for
// the current surface format. Caller must hold the mutex.
func (b *wgpuRendererBackendImpl) registerPipelines() error {
	source := SceneShaderSource()
	descs := []pipeline.Pipeline{
		pipeline.NewPipeline(opaquePipelineKey, source),
		pipeline.NewPipeline(transparentPipelineKey, source,
			pipeline.WithBlendEnabled(true),
			pipeline.WithDepthWriteEnabled(false),
		),
	}

	module, err := b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: "Scene Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: source,
		},
	})
	if err != nil {
		return fmt.Errorf("scene shader: %w", err)
	}
	defer module.Release()

	for _, p := range descs {
		if err := b.registerRenderPipeline(p, module); err != nil {
			return err
		}
		if old, ok := b.pipelines[p.PipelineKey()]; ok {
			old.Release()
		}
		b.pipelines[p.PipelineKey()] = p
	}
	return nil
}

// registerRenderPipeline creates the GPU pipeline described by p. Caller must hold the mutex.
func (b *wgpuRendererBackendImpl) registerRenderPipeline(p pipeline.Pipeline, module *wgpu.ShaderModule) error {
	vertexSize := uint64((&model.GPUVertex{}).Size())

	target := wgpu.ColorTargetState{
		Format:    b.surfaceFormat,
		WriteMask: wgpu.ColorWriteMaskAll,
	}
	if p.BlendEnabled() {
		target.Blend = p.BlendState()
	}

	created, err := b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  p.PipelineKey() + " Render Pipeline",
		Layout: b.pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: p.VertexEntryPoint(),
			Buffers: []wgpu.VertexBufferLayout{
				{
					ArrayStride: vertexSize,
					StepMode:    wgpu.VertexStepModeVertex,
					Attributes: []wgpu.VertexAttribute{
						{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
						{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
					},
				},
			},
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: p.FragmentEntryPoint(),
			Targets:    []wgpu.ColorTargetState{target},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: p.FrontFace(),
			CullMode:  p.CullMode(),
		},
		Multisample: wgpu.MultisampleState{
			Count: uint32(b.sampleCount),
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            wgpu.TextureFormatDepth24Plus,
			DepthWriteEnabled: p.DepthWriteEnabled(),
			DepthCompare:      wgpu.CompareFunctionLess,
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("pipeline %q: %w", p.PipelineKey(), err)
	}
	p.SetRenderPipeline(created)
	return nil
}

func (b *wgpuRendererBackendImpl) SetPresentMode(mode PresentMode) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch mode {
	case PresentModeUncapped:
		b.presentMode = wgpu.PresentModeImmediate
	case PresentModeVSync:
		fallthrough
	default:
		b.presentMode = wgpu.PresentModeFifo
	}
}

func (b *wgpuRendererBackendImpl) RegisterMesh(name string, vertexData, indexData []byte, indexCount int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	provider := bind_group_provider.NewBindGroupProvider("mesh:" + name)

	vb, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: provider.Label() + " Vertex Buffer",
		Size:  uint64(len(vertexData)),
		Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return err
	}
	b.queue.WriteBuffer(vb, 0, vertexData)
	provider.SetVertexBuffer(vb)

	ib, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: provider.Label() + " Index Buffer",
		Size:  uint64(len(indexData)),
		Usage: wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		provider.Release()
		return err
	}
	b.queue.WriteBuffer(ib, 0, indexData)
	provider.SetIndexBuffer(ib)
	provider.SetIndexCount(indexCount)

	b.meshes[name] = provider
	return nil
}

// ensureObjectSlots grows the per-object providers to at least n. Caller must hold the mutex.
func (b *wgpuRendererBackendImpl) ensureObjectSlots(n int) error {
	objectSize := uint64((&GPUObjectUniform{}).Size())
	for len(b.objectProviders) < n {
		provider := bind_group_provider.NewBindGroupProvider("object:" + strconv.Itoa(len(b.objectProviders)))
		if err := b.initBindGroup(provider, b.objectLayout, []uint64{objectSize}, []wgpu.BufferUsage{wgpu.BufferUsageUniform}); err != nil {
			provider.Release()
			return err
		}
		b.objectProviders = append(b.objectProviders, provider)
	}
	return nil
}

// writeBuffers submits staged uniform writes to the queue. Caller must hold the mutex.
func (b *wgpuRendererBackendImpl) writeBuffers(writes []bind_group_provider.BufferWrite) {
	for _, w := range writes {
		if !w.Valid() {
			continue
		}
		b.queue.WriteBuffer(w.Provider.Buffer(w.Binding), w.Offset, w.Data)
	}
}

func (b *wgpuRendererBackendImpl) Draw(f *Frame) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.ensureObjectSlots(f.DrawCount()); err != nil {
		return err
	}

	cam := f.Camera
	writes := make([]bind_group_provider.BufferWrite, 0, f.DrawCount()+2)
	writes = append(writes,
		bind_group_provider.BufferWrite{Provider: b.globalProvider, Binding: 0, Data: cam.Marshal()},
		bind_group_provider.BufferWrite{Provider: b.globalProvider, Binding: 1, Data: light.MarshalLightBuffer(f.LightHeader, f.Lights)},
	)
	slot := 0
	for _, items := range [][]DrawItem{f.Opaque, f.Transparent} {
		for _, item := range items {
			u := NewGPUObjectUniform(item)
			writes = append(writes, bind_group_provider.BufferWrite{Provider: b.objectProviders[slot], Binding: 0, Data: u.Marshal()})
			slot++
		}
	}
	b.writeBuffers(writes)

	surfaceTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		return err
	}
	defer surfaceTexture.Release()

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		return err
	}
	defer view.Release()

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		return err
	}
	defer encoder.Release()

	// With MSAA the swapchain view is the resolve target, otherwise it is drawn to directly.
	attachment := &b.renderPassDescriptor.ColorAttachments[0]
	if b.sampleCount > 1 {
		attachment.ResolveTarget = view
	} else {
		attachment.View = view
	}
	attachment.ClearValue = wgpu.Color{R: f.ClearColor[0], G: f.ClearColor[1], B: f.ClearColor[2], A: f.ClearColor[3]}

	pass := encoder.BeginRenderPass(b.renderPassDescriptor)
	pass.SetBindGroup(0, b.globalProvider.BindGroup(), nil)

	slot = 0
	for _, group := range []struct {
		key   string
		items []DrawItem
	}{
		{opaquePipelineKey, f.Opaque},
		{transparentPipelineKey, f.Transparent},
	} {
		if len(group.items) == 0 {
			continue
		}
		pass.SetPipeline(b.pipelines[group.key].RenderPipeline())
		for _, item := range group.items {
			mesh := b.meshes[item.Model]
			pass.SetBindGroup(1, b.objectProviders[slot].BindGroup(), nil)
			pass.SetVertexBuffer(0, mesh.VertexBuffer(), 0, wgpu.WholeSize)
			pass.SetIndexBuffer(mesh.IndexBuffer(), wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
			pass.DrawIndexed(uint32(mesh.IndexCount()), 1, 0, 0, 0)
			slot++
		}
	}
	pass.End()

	commandBuffer, err := encoder.Finish(nil)
	if err != nil {
		return err
	}
	defer commandBuffer.Release()

	b.queue.Submit(commandBuffer)
	b.surface.Present()
	return nil
}

// releaseTargets releases the size-dependent render targets. Caller must hold the mutex.
func (b *wgpuRendererBackendImpl) releaseTargets() {
	for _, v := range []*wgpu.TextureView{b.msaaTextureView, b.depthTextureView} {
		if v != nil {
			v.Release()
		}
	}
	for _, t := range []*wgpu.Texture{b.msaaTexture, b.depthTexture} {
		if t != nil {
			t.Release()
		}
	}
	b.msaaTextureView, b.depthTextureView = nil, nil
	b.msaaTexture, b.depthTexture = nil, nil
}

func (b *wgpuRendererBackendImpl) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for key, p := range b.pipelines {
		p.Release()
		delete(b.pipelines, key)
	}
	for name, m := range b.meshes {
		m.Release()
		delete(b.meshes, name)
	}
	for _, p := range b.objectProviders {
		p.Release()
	}
	b.objectProviders = nil
	b.globalProvider.Release()
	b.releaseTargets()

	b.pipelineLayout.Release()
	b.objectLayout.Release()
	b.globalLayout.Release()
	b.queue.Release()
	b.device.Release()
	b.adapter.Release()
	b.surface.Release()
	b.instance.Release()
}
