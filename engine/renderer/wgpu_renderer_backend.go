package renderer

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/Carmen-Shannon/oxy-plaza/common"
	"github.com/Carmen-Shannon/oxy-plaza/engine/renderer/bind_group_provider"
)

type wgpuRendererBackendImpl struct {
	mu     *sync.Mutex
	device *wgpu.Device
	queue  *wgpu.Queue

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	surface  *wgpu.Surface

	surfaceFormat        *wgpu.TextureFormat
	alphaMode            wgpu.CompositeAlphaMode
	transparent          bool
	msaaTexture          *wgpu.Texture
	msaaTextureView      *wgpu.TextureView
	depthTexture         *wgpu.Texture
	depthTextureView     *wgpu.TextureView
	renderPassDescriptor *wgpu.RenderPassDescriptor

	presentMode wgpu.PresentMode // defaults to PresentModeFifo (VSync)
	sampleCount MSAASampleCount

	globalsLayout   *wgpu.BindGroupLayout
	instancesLayout *wgpu.BindGroupLayout
	overlayLayout   *wgpu.BindGroupLayout
	pipelines       map[pipelineKey]*wgpu.RenderPipeline
	sampler         *wgpu.Sampler

	// Frame state for batched rendering across multiple draw calls
	frameEncoder *wgpu.CommandEncoder
	framePass    *wgpu.RenderPassEncoder
	frameSurface *wgpu.Texture
	frameView    *wgpu.TextureView
}

type wgpuRendererBackend interface {
	// ConfigureSurface is a wrapper for boilerplate logic required when calling Configure on a surface.
	// This is required when the surface size changes, such as when the window is resized.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	ConfigureSurface(width, height int)

	// SetPresentMode sets the surface present mode which controls how frames are delivered to the display.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// AlphaMode returns the composite alpha mode the surface was configured with.
	AlphaMode() wgpu.CompositeAlphaMode

	// RegisterPipelines creates the bind group layouts, the shared sampler and the
	// opaque, translucent and overlay render pipelines. Must follow ConfigureSurface.
	//
	// Returns:
	//   - error: an error if any GPU object could not be created
	RegisterPipelines() error

	// InitMeshBuffers uploads a mesh's vertex and index data and stores the buffers on the provider.
	//
	// Parameters:
	//   - provider: the mesh's BindGroupProvider
	//   - vertexData: raw interleaved vertex bytes
	//   - indexData: raw uint32 index bytes
	//   - indexCount: the number of indices
	//
	// Returns:
	//   - error: an error if the buffers could not be created
	InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error

	// InitGlobals creates the globals uniform, the icon atlas texture and their bind group.
	//
	// Parameters:
	//   - provider: the globals provider
	//   - atlasSize: edge length of the square atlas texture in pixels
	//
	// Returns:
	//   - error: an error if resource creation fails
	InitGlobals(provider bind_group_provider.BindGroupProvider, atlasSize int) error

	// EnsureInstances grows the instance storage buffer to hold at least size bytes,
	// recreating its bind group when the buffer is reallocated.
	//
	// Parameters:
	//   - provider: the instances provider
	//   - size: the bytes needed this frame
	//
	// Returns:
	//   - error: an error if the buffer could not be created
	EnsureInstances(provider bind_group_provider.BindGroupProvider, size uint64) error

	// InitOverlay (re)creates the overlay card texture at width x height together with
	// its uniform and bind group. The renderer calls it only when the card size changes.
	//
	// Parameters:
	//   - provider: the overlay provider
	//   - width, height: card size in pixels
	//
	// Returns:
	//   - error: an error if resource creation fails
	InitOverlay(provider bind_group_provider.BindGroupProvider, width, height int) error

	// WriteBuffers writes all staged buffer writes to the GPU queue. Writes that do not
	// fit their target buffer are dropped.
	//
	// Parameters:
	//   - writes: a slice of BufferWrite structs describing the data to write
	WriteBuffers(writes []bind_group_provider.BufferWrite)

	// WriteTexture copies pixels into a sub-rectangle of the texture stored at binding.
	//
	// Parameters:
	//   - provider: the provider owning the texture
	//   - binding: the texture's binding index
	//   - x, y: destination origin in texels
	//   - data: tightly packed RGBA pixels
	WriteTexture(provider bind_group_provider.BindGroupProvider, binding, x, y int, data common.TextureStagingData)

	// BeginFrame acquires the next swapchain texture, creates a command encoder, and begins
	// the main render pass. Must be paired with EndFrame.
	//
	// Returns:
	//   - error: an error if the swapchain texture could not be acquired
	BeginFrame() error

	// DrawBatch encodes one instanced, indexed draw of a mesh within the current render pass.
	//
	// Parameters:
	//   - mesh: the provider holding the mesh's vertex and index buffers
	//   - globals: the globals provider (group 0)
	//   - instances: the instances provider (group 1)
	//   - b: the instance range and blend mode
	DrawBatch(mesh, globals, instances bind_group_provider.BindGroupProvider, b batch)

	// DrawOverlay encodes the HUD card quad within the current render pass.
	//
	// Parameters:
	//   - overlay: the overlay provider
	DrawOverlay(overlay bind_group_provider.BindGroupProvider)

	// EndFrame ends the current render pass and submits the command buffer to the GPU.
	EndFrame()

	// Present presents the surface to the display and releases the swapchain texture.
	Present()

	// Release frees the device-level objects owned by the backend.
	Release()
}

var _ RendererBackend = &wgpuRendererBackendImpl{}

func newWGPURendererBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, forceFallbackAdapter, transparent bool, sampleCount MSAASampleCount) (wgpuRendererBackend, error) {
	runtime.LockOSThread()
	if surfaceDescriptor == nil {
		return nil, errors.New("window has no surface descriptor")
	}
	w := &wgpuRendererBackendImpl{
		mu:          &sync.Mutex{},
		instance:    wgpu.CreateInstance(nil),
		presentMode: wgpu.PresentModeFifo,
		sampleCount: sampleCount,
		transparent: transparent,
		pipelines:   make(map[pipelineKey]*wgpu.RenderPipeline),
	}
	w.surface = w.instance.CreateSurface(surfaceDescriptor)

	a, err := w.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    w.surface,
	})
	if err != nil {
		return nil, fmt.Errorf("request adapter: %w", err)
	}
	w.adapter = a

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Plaza Device",
	})
	if err != nil {
		return nil, fmt.Errorf("request device: %w", err)
	}
	w.device = d
	w.queue = d.GetQueue()

	return w, nil
}

// chooseAlphaMode picks the surface alpha mode. A transparent surface prefers
// premultiplied, then post-multiplied, then inherited compositing; an opaque
// one prefers Opaque. The first supported mode is the fallback.
//
// Parameters:
//   - supported: alpha modes reported by the surface
//   - transparent: whether the page behind the canvas should show through
//
// Returns:
//   - wgpu.CompositeAlphaMode: the mode to configure
func chooseAlphaMode(supported []wgpu.CompositeAlphaMode, transparent bool) wgpu.CompositeAlphaMode {
	if len(supported) == 0 {
		return wgpu.CompositeAlphaModeAuto
	}
	preferred := []wgpu.CompositeAlphaMode{wgpu.CompositeAlphaModeOpaque}
	if transparent {
		preferred = []wgpu.CompositeAlphaMode{
			wgpu.CompositeAlphaModePremultiplied,
			wgpu.CompositeAlphaModeUnpremultiplied,
			wgpu.CompositeAlphaModeInherit,
		}
	}
	for _, want := range preferred {
		for _, have := range supported {
			if have == want {
				return have
			}
		}
	}
	return supported[0]
}

// clearColor is fully transparent when the surface composites with the page behind it.
func clearColor(alphaMode wgpu.CompositeAlphaMode) wgpu.Color {
	if alphaMode == wgpu.CompositeAlphaModeOpaque {
		return wgpu.Color{R: 0.02, G: 0.02, B: 0.05, A: 1.0}
	}
	return wgpu.Color{}
}

func (b *wgpuRendererBackendImpl) ConfigureSurface(width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	width, height = max(width, 1), max(height, 1)
	capabilities := b.surface.GetCapabilities(b.adapter)
	b.surfaceFormat = &capabilities.Formats[0]
	b.alphaMode = chooseAlphaMode(capabilities.AlphaModes, b.transparent)

	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      *b.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: b.presentMode,
		AlphaMode:   b.alphaMode,
	})

	b.releaseTargets()

	count := uint32(b.sampleCount)
	msaaEnabled := count > 1

	if msaaEnabled {
		// The render pass draws into the MSAA texture; the resolved result is
		// written to the swapchain view as the ResolveTarget.
		msaaTexture, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
			Label: "MSAA Texture",
			Size: wgpu.Extent3D{
				Width:              uint32(width),
				Height:             uint32(height),
				DepthOrArrayLayers: 1,
			},
			MipLevelCount: 1,
			SampleCount:   count,
			Dimension:     wgpu.TextureDimension2D,
			Format:        *b.surfaceFormat,
			Usage:         wgpu.TextureUsageRenderAttachment,
		})
		if err != nil {
			panic(err)
		}
		b.msaaTexture = msaaTexture
		b.msaaTextureView, err = msaaTexture.CreateView(nil)
		if err != nil {
			panic(err)
		}
	}

	// Depth texture sample count must match the color attachment.
	depthTexture, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "Depth Texture",
		Size: wgpu.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   count,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatDepth24Plus,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		panic(err)
	}
	b.depthTexture = depthTexture
	b.depthTextureView, err = depthTexture.CreateView(nil)
	if err != nil {
		panic(err)
	}

	// With MSAA, View is the MSAA texture and ResolveTarget is set per-frame to the
	// swapchain view. Without it, View is set per-frame and ResolveTarget stays nil.
	storeOp := wgpu.StoreOpStore
	if msaaEnabled {
		storeOp = wgpu.StoreOpDiscard
	}
	b.renderPassDescriptor = &wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       b.msaaTextureView,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    storeOp,
				ClearValue: clearColor(b.alphaMode),
			},
		},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            b.depthTextureView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard,
			DepthClearValue: 1.0,
		},
	}
}

// releaseTargets frees the size-dependent render targets. Caller must hold the mutex.
func (b *wgpuRendererBackendImpl) releaseTargets() {
	if b.msaaTextureView != nil {
		b.msaaTextureView.Release()
		b.msaaTextureView = nil
	}
	if b.msaaTexture != nil {
		b.msaaTexture.Release()
		b.msaaTexture = nil
	}
	if b.depthTextureView != nil {
		b.depthTextureView.Release()
		b.depthTextureView = nil
	}
	if b.depthTexture != nil {
		b.depthTexture.Release()
		b.depthTexture = nil
	}
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

func (b *wgpuRendererBackendImpl) AlphaMode() wgpu.CompositeAlphaMode {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.alphaMode
}

func (b *wgpuRendererBackendImpl) RegisterPipelines() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.surfaceFormat == nil {
		return errors.New("surface must be configured before pipelines are registered")
	}

	var err error
	textureEntries := func(uniformSize uint64, visibility wgpu.ShaderStage) []wgpu.BindGroupLayoutEntry {
		return []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: visibility,
				Buffer:     wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeUniform, MinBindingSize: uniformSize},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStageFragment,
				Texture:    wgpu.TextureBindingLayout{SampleType: wgpu.TextureSampleTypeFloat, ViewDimension: wgpu.TextureViewDimension2D},
			},
			{
				Binding:    2,
				Visibility: wgpu.ShaderStageFragment,
				Sampler:    wgpu.SamplerBindingLayout{Type: wgpu.SamplerBindingTypeFiltering},
			},
		}
	}

	b.globalsLayout, err = b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label:   "Globals Layout",
		Entries: textureEntries(globalsSize, wgpu.ShaderStageVertex|wgpu.ShaderStageFragment),
	})
	if err != nil {
		return fmt.Errorf("globals layout: %w", err)
	}
	b.instancesLayout, err = b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Instances Layout",
		Entries: []wgpu.BindGroupLayoutEntry{{
			Binding:    bindingInstances,
			Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
			Buffer:     wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeReadOnlyStorage, MinBindingSize: instanceSize},
		}},
	})
	if err != nil {
		return fmt.Errorf("instances layout: %w", err)
	}
	b.overlayLayout, err = b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label:   "Overlay Layout",
		Entries: textureEntries(overlaySize, wgpu.ShaderStageVertex),
	})
	if err != nil {
		return fmt.Errorf("overlay layout: %w", err)
	}

	b.sampler, err = b.device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         "Plaza Sampler",
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeLinear,
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		LodMaxClamp:   32,
		MaxAnisotropy: 1,
	})
	if err != nil {
		return fmt.Errorf("sampler: %w", err)
	}

	for _, cfg := range plazaPipelines(b.globalsLayout, b.instancesLayout, b.overlayLayout) {
		p, err := b.createPipeline(cfg)
		if err != nil {
			return fmt.Errorf("pipeline %s: %w", cfg.key, err)
		}
		b.pipelines[cfg.key] = p
	}
	return nil
}

// createPipeline builds a render pipeline from a config. Caller must hold the mutex.
func (b *wgpuRendererBackendImpl) createPipeline(cfg pipelineConfig) (*wgpu.RenderPipeline, error) {
	module, err := b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: string(cfg.key),
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: cfg.source,
		},
	})
	if err != nil {
		return nil, err
	}
	defer module.Release()

	layout, err := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            string(cfg.key),
		BindGroupLayouts: cfg.bindGroups,
	})
	if err != nil {
		return nil, err
	}
	defer layout.Release()

	depthCompare := wgpu.CompareFunctionLess
	if !cfg.depthTest {
		depthCompare = wgpu.CompareFunctionAlways
	}

	return b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  string(cfg.key) + " Render Pipeline",
		Layout: layout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: "vs_main",
			Buffers:    cfg.vertexLayout,
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{{
				Format:    *b.surfaceFormat,
				Blend:     cfg.blendState,
				WriteMask: cfg.writeMask,
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  cfg.topology,
			FrontFace: cfg.frontFace,
			CullMode:  cfg.cullMode,
		},
		Multisample: wgpu.MultisampleState{
			Count: uint32(b.sampleCount),
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            wgpu.TextureFormatDepth24Plus,
			DepthWriteEnabled: cfg.depthWrite,
			DepthCompare:      depthCompare,
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
		},
	})
}

func (b *wgpuRendererBackendImpl) InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(vertexData) == 0 || len(indexData) == 0 {
		return fmt.Errorf("%s: empty mesh", provider.Label())
	}

	vertex, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: provider.Label() + " Vertex Buffer",
		Size:  uint64(len(vertexData)),
		Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return err
	}
	b.queue.WriteBuffer(vertex, 0, vertexData)

	index, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: provider.Label() + " Index Buffer",
		Size:  uint64(len(indexData)),
		Usage: wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		vertex.Release()
		return err
	}
	b.queue.WriteBuffer(index, 0, indexData)

	provider.SetMesh(vertex, index, indexCount)
	return nil
}

// createTexture allocates a sampled RGBA texture. Caller must hold the mutex.
func (b *wgpuRendererBackendImpl) createTexture(label string, width, height int) (*wgpu.Texture, *wgpu.TextureView, error) {
	tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:     label,
		Usage:     wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
		Dimension: wgpu.TextureDimension2D,
		Size: wgpu.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		Format:        wgpu.TextureFormatRGBA8UnormSrgb,
		MipLevelCount: 1,
		SampleCount:   1,
	})
	if err != nil {
		return nil, nil, err
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return nil, nil, err
	}
	return tex, view, nil
}

// createUniform allocates a uniform buffer on the provider at binding 0 if absent. Caller must hold the mutex.
func (b *wgpuRendererBackendImpl) createUniform(provider bind_group_provider.BindGroupProvider, size uint64) error {
	if provider.Buffer(0) != nil {
		return nil
	}
	buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: provider.Label() + " Uniform",
		Size:  size,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return err
	}
	provider.SetBuffer(0, buf, size)
	return nil
}

// bindTextured (re)creates a uniform + texture + sampler bind group. Caller must hold the mutex.
func (b *wgpuRendererBackendImpl) bindTextured(provider bind_group_provider.BindGroupProvider, layout *wgpu.BindGroupLayout) error {
	bg, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  provider.Label() + " Bind Group",
		Layout: layout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: provider.Buffer(0), Size: wgpu.WholeSize},
			{Binding: 1, TextureView: provider.TextureView(1)},
			{Binding: 2, Sampler: b.sampler},
		},
	})
	if err != nil {
		return err
	}
	provider.SetBindGroup(bg)
	return nil
}

func (b *wgpuRendererBackendImpl) InitGlobals(provider bind_group_provider.BindGroupProvider, atlasSize int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.createUniform(provider, globalsSize); err != nil {
		return err
	}
	tex, view, err := b.createTexture(provider.Label()+" Atlas", atlasSize, atlasSize)
	if err != nil {
		return err
	}
	provider.SetTexture(bindingAtlas, tex, view)
	return b.bindTextured(provider, b.globalsLayout)
}

func (b *wgpuRendererBackendImpl) EnsureInstances(provider bind_group_provider.BindGroupProvider, size uint64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	current := provider.BufferSize(bindingInstances)
	if current >= size && provider.BindGroup() != nil {
		return nil
	}
	capacity := growCapacity(current, size)
	buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: provider.Label() + " Storage",
		Size:  capacity,
		Usage: wgpu.BufferUsageStorage | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return err
	}
	// the old bind group references the old buffer
	provider.SetBindGroup(nil)
	provider.SetBuffer(bindingInstances, buf, capacity)

	bg, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  provider.Label() + " Bind Group",
		Layout: b.instancesLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: bindingInstances, Buffer: buf, Size: wgpu.WholeSize},
		},
	})
	if err != nil {
		return err
	}
	provider.SetBindGroup(bg)
	return nil
}

func (b *wgpuRendererBackendImpl) InitOverlay(provider bind_group_provider.BindGroupProvider, width, height int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.createUniform(provider, overlaySize); err != nil {
		return err
	}
	tex, view, err := b.createTexture(provider.Label()+" Card", width, height)
	if err != nil {
		return err
	}
	provider.SetBindGroup(nil)
	provider.SetTexture(bindingOverlayTexture, tex, view)
	return b.bindTextured(provider, b.overlayLayout)
}

func (b *wgpuRendererBackendImpl) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, w := range writes {
		if !w.Fits() {
			continue
		}
		b.queue.WriteBuffer(w.Provider.Buffer(w.Binding), w.Offset, w.Data)
	}
}

func (b *wgpuRendererBackendImpl) WriteTexture(provider bind_group_provider.BindGroupProvider, binding, x, y int, data common.TextureStagingData) {
	b.mu.Lock()
	defer b.mu.Unlock()

	tex := provider.Texture(binding)
	if tex == nil || data.Width == 0 || data.Height == 0 {
		return
	}
	b.queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Texture:  tex,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{X: uint32(x), Y: uint32(y)},
			Aspect:   wgpu.TextureAspectAll,
		},
		data.Pixels,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  data.Width * 4,
			RowsPerImage: data.Height,
		},
		&wgpu.Extent3D{
			Width:              data.Width,
			Height:             data.Height,
			DepthOrArrayLayers: 1,
		},
	)
}

func (b *wgpuRendererBackendImpl) BeginFrame() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	// A surface image still held from the previous frame must be presented first.
	if b.frameSurface != nil {
		return fmt.Errorf("previous frame surface not yet presented")
	}

	surfaceTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		return err
	}

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return err
	}

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		view.Release()
		surfaceTexture.Release()
		return err
	}

	if b.sampleCount > 1 {
		b.renderPassDescriptor.ColorAttachments[0].ResolveTarget = view
	} else {
		b.renderPassDescriptor.ColorAttachments[0].View = view
	}
	pass := encoder.BeginRenderPass(b.renderPassDescriptor)

	b.frameEncoder = encoder
	b.framePass = pass
	b.frameSurface = surfaceTexture
	b.frameView = view

	return nil
}

func (b *wgpuRendererBackendImpl) DrawBatch(mesh, globals, instances bind_group_provider.BindGroupProvider, bt batch) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.framePass == nil || bt.Count == 0 {
		return
	}
	key := pipelineOpaque
	if bt.Translucent {
		key = pipelineTranslucent
	}

	b.framePass.SetPipeline(b.pipelines[key])
	b.framePass.SetBindGroup(0, globals.BindGroup(), nil)
	b.framePass.SetBindGroup(1, instances.BindGroup(), nil)
	b.framePass.SetVertexBuffer(0, mesh.VertexBuffer(), 0, wgpu.WholeSize)
	b.framePass.SetIndexBuffer(mesh.IndexBuffer(), wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
	b.framePass.DrawIndexed(uint32(mesh.IndexCount()), bt.Count, 0, 0, bt.First)
}

func (b *wgpuRendererBackendImpl) DrawOverlay(overlay bind_group_provider.BindGroupProvider) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.framePass == nil || overlay.BindGroup() == nil {
		return
	}
	b.framePass.SetPipeline(b.pipelines[pipelineOverlay])
	b.framePass.SetBindGroup(0, overlay.BindGroup(), nil)
	b.framePass.Draw(6, 1, 0, 0)
}

func (b *wgpuRendererBackendImpl) EndFrame() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.framePass == nil {
		return
	}
	b.framePass.End()

	commandBuffer, err := b.frameEncoder.Finish(nil)
	if err != nil {
		b.frameEncoder.Release()
		b.frameView.Release()
		b.frameSurface.Release()
		b.frameEncoder = nil
		b.framePass = nil
		b.frameSurface = nil
		b.frameView = nil
		return
	}

	b.queue.Submit(commandBuffer)

	commandBuffer.Release()
	b.frameEncoder.Release()
	b.frameEncoder = nil
	b.framePass = nil
}

func (b *wgpuRendererBackendImpl) Present() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frameSurface == nil {
		return
	}

	b.surface.Present()

	if b.frameView != nil {
		b.frameView.Release()
		b.frameView = nil
	}
	b.frameSurface.Release()
	b.frameSurface = nil
}

func (b *wgpuRendererBackendImpl) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for key, p := range b.pipelines {
		p.Release()
		delete(b.pipelines, key)
	}
	for _, l := range []*wgpu.BindGroupLayout{b.globalsLayout, b.instancesLayout, b.overlayLayout} {
		if l != nil {
			l.Release()
		}
	}
	b.globalsLayout, b.instancesLayout, b.overlayLayout = nil, nil, nil
	if b.sampler != nil {
		b.sampler.Release()
		b.sampler = nil
	}
	b.releaseTargets()
	if b.queue != nil {
		b.queue.Release()
	}
	if b.device != nil {
		b.device.Release()
	}
	if b.adapter != nil {
		b.adapter.Release()
	}
	if b.surface != nil {
		b.surface.Release()
	}
	if b.instance != nil {
		b.instance.Release()
	}
	b.queue, b.device, b.adapter, b.surface, b.instance = nil, nil, nil, nil, nil
}
