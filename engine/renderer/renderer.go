package renderer

import (
	"fmt"
	"image"
	"sync"

	"github.com/rs/zerolog"

	"github.com/Carmen-Shannon/oxy-plaza/common"
	"github.com/Carmen-Shannon/oxy-plaza/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-plaza/engine/scene"
	"github.com/Carmen-Shannon/oxy-plaza/engine/window"
)

// light direction (xyz) and ambient term (w) shared by every frame.
var sceneLight = [4]float32{-0.35, -1, -0.45, 0.35}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backendType RendererBackendType
	backend     RendererBackend
	log         zerolog.Logger

	globals   bind_group_provider.BindGroupProvider
	instances bind_group_provider.BindGroupProvider
	overlay   bind_group_provider.BindGroupProvider
	meshes    map[scene.MeshKind]bind_group_provider.BindGroupProvider

	width, height int
	atlasSize     int

	// overlaySize and overlaySource detect when the HUD card must be re-uploaded.
	overlaySize   image.Point
	overlaySource *image.RGBA

	stats FrameStats

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	presentMode          PresentMode
	msaa                 MSAASampleCount
}

// Renderer draws the plaza's draw list and HUD card to a window surface.
//
// This is a high-level API: it owns every GPU resource (mesh buffers, the
// per-frame instance buffer, the icon atlas texture and the HUD card texture)
// and reduces a frame to a single DrawFrame call.
type Renderer interface {
	// Resize configures the underlying backend to handle a new surface size.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// SetPresentMode sets the surface present mode. Takes effect on the next Resize.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// UploadMeshes creates vertex and index buffers for every drawable mesh kind.
	// Mesh kinds that were already uploaded are replaced.
	//
	// Parameters:
	//   - meshes: the scene's shared unit meshes
	//
	// Returns:
	//   - error: an error if any buffer could not be created
	UploadMeshes(meshes *scene.Meshes) error

	// WriteAtlas copies pending icon atlas slot updates into the atlas texture.
	//
	// Parameters:
	//   - updates: slot images taken from the scene's atlas
	WriteAtlas(updates []scene.AtlasUpdate)

	// DrawFrame draws one frame: every draw item instanced per mesh kind, opaque
	// first, then translucent, then the HUD card on top, and presents it.
	//
	// Parameters:
	//   - frame: the frame's camera, draw list and HUD card
	//
	// Returns:
	//   - error: an error if the surface could not be acquired or a buffer could not grow
	DrawFrame(frame FrameData) error

	// Stats returns the draw call and instance counts of the last frame.
	Stats() FrameStats

	// Release frees every GPU resource. The renderer must not be used afterwards.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer bound to the window's surface, with its pipelines,
// globals and an empty atlas of the given size ready to draw.
//
// Parameters:
//   - backendType: the type of rendering backend to use (e.g., WGPU)
//   - win: the window whose surface is rendered to
//   - atlasSize: edge length of the icon atlas texture in pixels
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: the configured renderer
//   - error: an error if the GPU could not be initialized
func NewRenderer(backendType RendererBackendType, win window.Window, atlasSize int, options ...RendererBuilderOption) (Renderer, error) {
	r := &renderer{
		mu:          &sync.Mutex{},
		backendType: backendType,
		log:         zerolog.Nop(),
		globals:     bind_group_provider.NewBindGroupProvider("Globals"),
		instances:   bind_group_provider.NewBindGroupProvider("Instances"),
		overlay:     bind_group_provider.NewBindGroupProvider("Overlay"),
		meshes:      make(map[scene.MeshKind]bind_group_provider.BindGroupProvider),
		width:       win.Width(),
		height:      win.Height(),
		atlasSize:   max(atlasSize, 1),
		presentMode: PresentModeVSync,
		msaa:        MSAA4x,
	}

	// Options first so config flags are available before the backend requests an adapter.
	for _, opt := range options {
		opt(r)
	}

	var err error
	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		r.backend, err = newWGPURendererBackend(win.SurfaceDescriptor(), r.forceFallbackAdapter, win.Transparent(), r.msaa)
	}
	if err != nil {
		return nil, fmt.Errorf("renderer backend: %w", err)
	}

	r.backend.SetPresentMode(r.presentMode)
	r.backend.ConfigureSurface(r.width, r.height)
	if err := r.backend.RegisterPipelines(); err != nil {
		r.backend.Release()
		return nil, fmt.Errorf("register pipelines: %w", err)
	}
	if err := r.backend.InitGlobals(r.globals, r.atlasSize); err != nil {
		r.Release()
		return nil, fmt.Errorf("init globals: %w", err)
	}
	r.log.Info().
		Int("width", r.width).
		Int("height", r.height).
		Uint32("msaa", uint32(r.msaa)).
		Int("alpha_mode", int(r.backend.AlphaMode())).
		Msg("renderer ready")
	return r, nil
}

func (r *renderer) Resize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if width <= 0 || height <= 0 {
		return
	}
	r.width, r.height = width, height
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.presentMode = mode
	r.backend.SetPresentMode(mode)
}

func (r *renderer) UploadMeshes(meshes *scene.Meshes) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, kind := range scene.Kinds() {
		mesh := meshes.Mesh(kind)
		if len(mesh.Indices) == 0 {
			continue
		}
		provider, ok := r.meshes[kind]
		if !ok {
			provider = bind_group_provider.NewBindGroupProvider(fmt.Sprintf("Mesh %d", kind))
			r.meshes[kind] = provider
		}
		err := r.backend.InitMeshBuffers(provider, common.SliceToBytes(mesh.Vertices), common.SliceToBytes(mesh.Indices), len(mesh.Indices))
		if err != nil {
			return fmt.Errorf("upload mesh %d: %w", kind, err)
		}
	}
	return nil
}

func (r *renderer) WriteAtlas(updates []scene.AtlasUpdate) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range updates {
		data := common.StageRGBA(u.Image)
		if u.X+int(data.Width) > r.atlasSize || u.Y+int(data.Height) > r.atlasSize {
			r.log.Warn().Int("slot", u.Slot).Msg("atlas update outside texture, skipped")
			continue
		}
		r.backend.WriteTexture(r.globals, bindingAtlas, u.X, u.Y, data)
	}
}

func (r *renderer) DrawFrame(frame FrameData) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	instances, batches := packInstances(frame.Items)
	globals := globalsUniform{
		ViewProj: frame.ViewProj,
		Camera:   [4]float32{frame.CameraPos.X, frame.CameraPos.Y, frame.CameraPos.Z, float32(frame.Elapsed)},
		Light:    sceneLight,
	}
	writes := []bind_group_provider.BufferWrite{
		{Provider: r.globals, Binding: bindingGlobals, Data: common.StructToBytes(&globals)},
	}

	if len(instances) > 0 {
		if err := r.backend.EnsureInstances(r.instances, uint64(len(instances))*instanceSize); err != nil {
			return fmt.Errorf("grow instance buffer: %w", err)
		}
		writes = append(writes, bind_group_provider.BufferWrite{
			Provider: r.instances,
			Binding:  bindingInstances,
			Data:     common.SliceToBytes(instances),
		})
	}

	showOverlay, err := r.stageOverlay(frame)
	if err != nil {
		r.log.Error().Err(err).Msg("hud overlay unavailable")
		showOverlay = false
	}
	if showOverlay {
		rect := overlayUniform{Rect: overlayRect(frame.OverlayAt, r.overlaySize, r.width, r.height)}
		writes = append(writes, bind_group_provider.BufferWrite{
			Provider: r.overlay,
			Binding:  bindingOverlayRect,
			Data:     common.StructToBytes(&rect),
		})
	}

	r.backend.WriteBuffers(writes)

	if err := r.backend.BeginFrame(); err != nil {
		return fmt.Errorf("begin frame: %w", err)
	}

	stats := FrameStats{}
	for _, b := range batches {
		mesh, ok := r.meshes[b.Mesh]
		if !ok {
			continue
		}
		r.backend.DrawBatch(mesh, r.globals, r.instances, b)
		stats.DrawCalls++
		stats.Instances += int(b.Count)
	}
	if showOverlay {
		r.backend.DrawOverlay(r.overlay)
		stats.DrawCalls++
	}

	r.backend.EndFrame()
	r.backend.Present()
	r.stats = stats
	return nil
}

// stageOverlay uploads the HUD card when it changed. Caller must hold the mutex.
func (r *renderer) stageOverlay(frame FrameData) (bool, error) {
	if frame.Overlay == nil {
		return false, nil
	}
	size := frame.Overlay.Bounds().Size()
	if size.X <= 0 || size.Y <= 0 {
		return false, nil
	}
	if size != r.overlaySize {
		if err := r.backend.InitOverlay(r.overlay, size.X, size.Y); err != nil {
			return false, err
		}
		r.overlaySize = size
		r.overlaySource = nil
	}
	if frame.Overlay != r.overlaySource {
		r.backend.WriteTexture(r.overlay, bindingOverlayTexture, 0, 0, common.StageRGBA(frame.Overlay))
		r.overlaySource = frame.Overlay
	}
	return true, nil
}

func (r *renderer) Stats() FrameStats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for kind, p := range r.meshes {
		p.Release()
		delete(r.meshes, kind)
	}
	r.globals.Release()
	r.instances.Release()
	r.overlay.Release()
	r.overlaySize, r.overlaySource = image.Point{}, nil
	if r.backend != nil {
		r.backend.Release()
	}
}
