package scene

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Carmen-Shannon/oxy-plaza/common"
	"github.com/Carmen-Shannon/oxy-plaza/engine/animator"
	"github.com/Carmen-Shannon/oxy-plaza/engine/asset"
	"github.com/Carmen-Shannon/oxy-plaza/engine/camera"
	"github.com/Carmen-Shannon/oxy-plaza/engine/catalog"
	"github.com/Carmen-Shannon/oxy-plaza/engine/hud"
	"github.com/Carmen-Shannon/oxy-plaza/engine/interaction"
	"github.com/Carmen-Shannon/oxy-plaza/engine/layout"
)

type scene struct {
	mu *sync.Mutex

	id  uuid.UUID
	log zerolog.Logger

	catalog   catalog.Catalog
	resolver  layout.Resolver
	scheduler animator.Scheduler
	camera    camera.Camera
	director  camera.Director
	picker    interaction.Picker
	overlay   hud.Overlay
	assets    asset.Manager
	meshes    *Meshes
	atlas     *Atlas

	graph          *Graph
	params         layout.SceneParameterSet
	builtRevision  uint64
	builtVersion   uint64
	hoveredEntity  int
	atlasRequested map[string]bool

	width           int
	height          int
	breakpoint      int
	cullingDisabled bool

	medallionIcon string
	tourDistance  float32
	tourLift      float32

	directorOptions []camera.DirectorBuilderOption

	drag dragState

	onQuit func()
	closed bool
}

// Scene is one running plaza: it owns the composition graph and drives the
// animation scheduler, camera director, picker and tooltip once per frame.
// All methods are meant to be called from the frame thread; callbacks are
// invoked synchronously on it.
type Scene interface {
	// ID returns the session identifier attached to every log line of this scene.
	ID() uuid.UUID

	// Tick advances one frame: applies pending layout commands, rebuilds the
	// graph when the layout or catalog changed, advances the clock, swaps in
	// loaded assets, animates every node, moves the camera and refreshes
	// picking and the tooltip.
	//
	// Parameters:
	//   - dt: wall-clock seconds since the previous frame; clamped by the scheduler
	//
	// Returns:
	//   - animator.Frame: the frame snapshot
	Tick(dt float64) animator.Frame

	// Resize updates the viewport and the responsive context.
	//
	// Parameters:
	//   - width, height: framebuffer size in pixels
	Resize(width, height int)

	// Viewport returns the framebuffer size in pixels.
	Viewport() (width, height int)

	// Graph returns the current composition graph. It is replaced on rebuild.
	Graph() *Graph

	// Params returns the parameter set the current graph was built from.
	Params() layout.SceneParameterSet

	// Rebuild recomposes the graph from the current catalog and layout.
	Rebuild() error

	// DrawList returns this frame's mesh instances, frustum culled unless disabled.
	DrawList() []DrawItem

	// Meshes returns the shared unit meshes.
	Meshes() *Meshes

	// Atlas returns the icon atlas.
	Atlas() *Atlas

	Camera() camera.Camera
	Director() camera.Director
	Resolver() layout.Resolver
	Picker() interaction.Picker
	Overlay() hud.Overlay
	Catalog() catalog.Catalog

	// SetHovered implements interaction.Highlighter.
	SetHovered(entityIndex int, hovered bool)

	// PointerMove, PointerDown, PointerUp, PointerLeave and Scroll feed pointer input.
	// Left drag orbits, right drag pans and scrolling zooms; a left press
	// released without dragging is a click.
	PointerMove(x, y float32)
	PointerDown(x, y float32, button int)
	PointerUp(x, y float32, button int)
	PointerLeave()
	Scroll(delta float32)

	// Key handles one key press.
	//
	// Parameters:
	//   - key: common.Key* code
	//   - mods: common.Mod* bits
	Key(key, mods int)

	// SetHoverChangedCallback, SetNavigateCallback and SetStopChangedCallback
	// forward the picker and director events to the host.
	SetHoverChangedCallback(cb func(interaction.HoverSelection))
	SetNavigateCallback(cb func(interaction.NavigateEvent))
	SetStopChangedCallback(cb func(index int))

	// SetAssetsReadyCallback is called each time every requested asset has
	// settled. With nothing to load it fires on the next Tick, and without an
	// asset manager it fires immediately with (0, 0).
	SetAssetsReadyCallback(cb func(ready, failed int))

	// SetQuitCallback is called when the quit key is pressed.
	SetQuitCallback(cb func())

	// Close stops the scheduler and autoplay, clears hover and releases asset
	// handles. Every later call is a no-op.
	Close()

	// Closed reports whether Close has been called.
	Closed() bool
}

var _ Scene = &scene{}
var _ interaction.Highlighter = &scene{}

// NewScene creates a scene for the given catalog and performs the first build.
// The camera starts on the tour overview.
//
// Parameters:
//   - cat: the entity catalog
//   - options: functional options
//
// Returns:
//   - Scene: the scene
//   - error: if the unit meshes or the first build fail
func NewScene(cat catalog.Catalog, options ...SceneBuilderOption) (Scene, error) {
	if cat == nil {
		panic("scene requires a catalog")
	}
	s := &scene{
		mu:             &sync.Mutex{},
		id:             uuid.New(),
		log:            zerolog.Nop(),
		catalog:        cat,
		hoveredEntity:  -1,
		atlasRequested: make(map[string]bool),
		width:          1280,
		height:         720,
		breakpoint:     768,
		tourDistance:   6,
		tourLift:       1.5,
	}
	for _, option := range options {
		option(s)
	}
	s.log = s.log.With().Str("session", s.id.String()).Logger()

	if s.resolver == nil {
		s.resolver = layout.NewResolver(layout.WithLogger(s.log))
	}
	s.resolver.SetContext(layout.ContextForWidth(s.width, s.breakpoint))
	if s.scheduler == nil {
		s.scheduler = animator.NewScheduler(animator.WithLogger(s.log))
	}

	meshes, err := NewMeshes()
	if err != nil {
		return nil, fmt.Errorf("scene meshes: %w", err)
	}
	s.meshes = meshes
	s.atlas = NewAtlas(8, 128)
	if s.assets != nil {
		s.atlas.Fill(PlaceholderSlot, s.assets.Placeholder())
	}

	params := s.resolver.Layout()
	s.camera = camera.NewCamera(
		camera.WithController(camera.NewCameraController()),
		camera.WithFovDegrees(params.Camera.FOV),
		camera.WithAspect(float32(s.width)/float32(max(s.height, 1))),
	)
	if err := s.rebuild(); err != nil {
		return nil, err
	}

	opts := append([]camera.DirectorBuilderOption{
		camera.WithParamSink(s.resolver),
		camera.WithLogger(s.log),
	}, s.directorOptions...)
	s.director = camera.NewDirector(s.camera, s.tour(), opts...)

	s.picker = interaction.NewPicker(cat, interaction.WithHighlighter(s), interaction.WithLogger(s.log))
	if s.overlay == nil {
		s.overlay = hud.NewOverlay()
	}
	s.refreshView()

	s.log.Info().
		Int("entities", cat.Len()).
		Str("preset", string(s.resolver.Preset())).
		Stringer("context", s.resolver.Context()).
		Msg("scene started")
	return s, nil
}

func (s *scene) ID() uuid.UUID {
	return s.id
}

// rebuild recomposes the graph, carrying completed entrances and the hover
// over from the previous graph.
func (s *scene) rebuild() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	revision, version := s.resolver.Revision(), s.catalog.Version()
	params := s.resolver.Layout()
	var start float64
	if s.scheduler != nil {
		start = s.scheduler.Frame().Elapsed
	}
	g, err := Build(s.catalog, params, BuildOptions{
		EntranceStart: start,
		MedallionIcon: s.medallionIcon,
		TourDistance:  s.tourDistance,
		TourLift:      s.tourLift,
	})
	if err != nil {
		s.log.Error().Err(err).Msg("scene rebuild failed, keeping previous graph")
		return fmt.Errorf("scene rebuild: %w", err)
	}
	g.CarryEntrances(s.graph)
	if s.hoveredEntity >= 0 {
		g.SetHovered(s.hoveredEntity, true)
	}
	g.UpdateWorld()

	s.graph, s.params = g, params
	s.builtRevision, s.builtVersion = revision, version
	s.requestIcons()

	s.log.Debug().
		Int("nodes", g.Len()).
		Uint64("revision", revision).
		Uint64("catalog_version", version).
		Msg("scene rebuilt")
	return nil
}

// requestIcons starts loading every icon the graph draws. Caller must hold the mutex.
func (s *scene) requestIcons() {
	if s.assets == nil {
		return
	}
	for i := range s.graph.nodes {
		ref := s.graph.nodes[i].IconRef
		if ref == "" || s.atlasRequested[ref] {
			continue
		}
		s.atlasRequested[ref] = true
		s.atlas.Assign(ref)
		if h := s.assets.Request(ref); h.State == asset.StateReady {
			s.applyAsset(h)
		}
	}
}

// applyAsset swaps a loaded icon into its atlas slot. Caller must hold the mutex.
func (s *scene) applyAsset(h asset.Handle) {
	if h.State != asset.StateReady {
		return
	}
	slot := s.atlas.Assign(h.Ref)
	if slot == PlaceholderSlot {
		return
	}
	s.atlas.Fill(slot, h.Image)
	s.atlas.MarkReady(h.Ref)
}

// tour builds the tour for the current graph and layout.
func (s *scene) tour() camera.Tour {
	s.mu.Lock()
	defer s.mu.Unlock()
	cam := s.params.Camera
	overview := camera.TourStop{Name: "overview", Position: cam.Position, Target: cam.Target, FOV: cam.FOV}
	return camera.BuildTour(overview, s.graph.Anchors(), s.tourDistance, s.tourLift)
}

func (s *scene) Rebuild() error {
	if s.Closed() {
		return nil
	}
	if err := s.rebuild(); err != nil {
		return err
	}
	s.director.SetTour(s.tour())
	return nil
}

func (s *scene) Tick(dt float64) animator.Frame {
	if s.Closed() {
		return s.scheduler.Frame()
	}
	s.resolver.ApplyCommands()

	s.mu.Lock()
	stale := s.resolver.Revision() != s.builtRevision || s.catalog.Version() != s.builtVersion
	s.mu.Unlock()
	if stale {
		// a failed rebuild keeps the previous graph on screen
		_ = s.Rebuild()
	}

	frame := s.scheduler.Advance(dt)

	s.mu.Lock()
	if s.assets != nil {
		for _, h := range s.assets.Poll() {
			s.applyAsset(h)
		}
	}
	g := s.graph
	s.mu.Unlock()

	s.scheduler.Apply(g.Tracks())
	s.director.Update(frame.Delta)
	g.UpdateWorld()
	s.refreshView()
	return frame
}

// refreshView hands the latest camera and targets to the picker and lays out the tooltip.
func (s *scene) refreshView() {
	s.mu.Lock()
	g, w, h := s.graph, float32(s.width), float32(s.height)
	s.mu.Unlock()

	s.picker.SetView(s.camera.InverseViewProjectionMatrix(), w, h)
	s.picker.SetTargets(g.Targets(s.meshes))
	s.overlay.Update(s.picker.Hovered(), w, h)
}

func (s *scene) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	s.mu.Lock()
	s.width, s.height = width, height
	breakpoint := s.breakpoint
	s.mu.Unlock()

	s.camera.SetAspect(float32(width) / float32(height))
	s.resolver.SetContext(layout.ContextForWidth(width, breakpoint))
}

func (s *scene) Viewport() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width, s.height
}

func (s *scene) Graph() *Graph {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.graph
}

func (s *scene) Params() layout.SceneParameterSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.params
}

func (s *scene) DrawList() []DrawItem {
	s.mu.Lock()
	g, culling := s.graph, !s.cullingDisabled
	s.mu.Unlock()

	var frustum *common.Frustum
	if culling {
		f := common.ExtractFrustum(s.camera.ViewProjectionMatrix())
		frustum = &f
	}
	return DrawList(g, s.meshes, s.atlas, frustum)
}

func (s *scene) Meshes() *Meshes {
	return s.meshes
}

func (s *scene) Atlas() *Atlas {
	return s.atlas
}

func (s *scene) Camera() camera.Camera {
	return s.camera
}

func (s *scene) Director() camera.Director {
	return s.director
}

func (s *scene) Resolver() layout.Resolver {
	return s.resolver
}

func (s *scene) Picker() interaction.Picker {
	return s.picker
}

func (s *scene) Overlay() hud.Overlay {
	return s.overlay
}

func (s *scene) Catalog() catalog.Catalog {
	return s.catalog
}

func (s *scene) SetHovered(entityIndex int, hovered bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if hovered {
		s.hoveredEntity = entityIndex
	} else if s.hoveredEntity == entityIndex {
		s.hoveredEntity = -1
	}
	if s.graph != nil {
		s.graph.SetHovered(entityIndex, hovered)
	}
}

func (s *scene) SetHoverChangedCallback(cb func(interaction.HoverSelection)) {
	s.picker.SetHoverChangedCallback(cb)
}

func (s *scene) SetNavigateCallback(cb func(interaction.NavigateEvent)) {
	s.picker.SetNavigateCallback(cb)
}

func (s *scene) SetStopChangedCallback(cb func(index int)) {
	s.director.SetStopChangedCallback(cb)
}

func (s *scene) SetAssetsReadyCallback(cb func(ready, failed int)) {
	if s.assets == nil {
		if cb != nil {
			cb(0, 0)
		}
		return
	}
	s.assets.SetReadyCallback(cb)
}

func (s *scene) SetQuitCallback(cb func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onQuit = cb
}

func (s *scene) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.onQuit = nil
	s.mu.Unlock()

	s.scheduler.Stop()
	s.director.Stop()
	s.picker.Close()
	s.overlay.Update(interaction.HoverSelection{}, 0, 0)
	if s.assets != nil {
		s.assets.Close()
	}
	s.log.Info().Float64("elapsed", s.scheduler.Frame().Elapsed).Msg("scene closed")
}

func (s *scene) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
