package engine

import (
	"errors"
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Carmen-Shannon/oxy-plaza/engine/animator"
	"github.com/Carmen-Shannon/oxy-plaza/engine/profiler"
	"github.com/Carmen-Shannon/oxy-plaza/engine/renderer"
	"github.com/Carmen-Shannon/oxy-plaza/engine/scene"
	"github.com/Carmen-Shannon/oxy-plaza/engine/window"
)

// engine implements the Engine interface.
// Every frame runs on the thread that called Run: input callbacks, scene tick and draw.
type engine struct {
	mu *sync.Mutex

	log zerolog.Logger

	window   window.Window
	renderer renderer.Renderer
	scene    scene.Scene

	profiler         *profiler.Profiler
	profilingEnabled bool

	frameCallback func(frame animator.Frame)

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
	lastFrame        time.Time
	now              func() time.Time
	sleep            func(time.Duration)

	quitOnce sync.Once
	running  bool
	frames   uint64
}

// Engine is the main entry point for the plaza.
// It owns the frame loop that ties the window, the scene and the renderer together.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Scene returns the plaza scene driven by the engine.
	Scene() scene.Scene

	// Renderer returns the renderer the scene is drawn with.
	Renderer() renderer.Renderer

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetFrameCallback registers a function called after each frame is drawn.
	//
	// Parameters:
	//   - callback: receives the frame's simulation context
	SetFrameCallback(callback func(frame animator.Frame))

	// SetRenderFrameLimit sets an optional frame rate cap in frames per second.
	// Pass 0 to uncap the loop (default).
	//
	// Parameters:
	//   - fps: maximum frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// Frames returns the number of frames drawn since Run started.
	Frames() uint64

	// Run uploads the scene meshes and runs the frame loop until the window closes
	// or Quit is called. The scene is closed and the renderer released on return.
	//
	// Returns:
	//   - error: an error if the engine is missing a component or mesh upload fails
	Run() error

	// Quit asks the window to close, which ends Run after the current frame.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

var _ Engine = &engine{}

// ErrIncomplete is returned by Run when the window, scene or renderer was not provided.
var ErrIncomplete = errors.New("engine requires a window, a scene and a renderer")

// NewEngine creates a new Engine instance with the provided options.
// Window events are routed to the scene as soon as all three components are present.
//
// Parameters:
//   - options: functional options for engine configuration (window, scene, renderer, profiling)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		mu:    &sync.Mutex{},
		log:   zerolog.Nop(),
		now:   time.Now,
		sleep: time.Sleep,
	}

	for _, opt := range options {
		opt(e)
	}
	e.profiler = profiler.NewProfiler(e.log)

	if e.window != nil && e.scene != nil {
		e.bindInput()
	}
	return e
}

// bindInput routes window events into the scene and the renderer.
func (e *engine) bindInput() {
	e.window.SetResizeCallback(func(width, height int) {
		if e.renderer != nil {
			e.renderer.Resize(width, height)
		}
		e.scene.Resize(width, height)
	})
	e.window.SetPointerMoveCallback(e.scene.PointerMove)
	e.window.SetPointerButtonCallback(func(x, y float32, button int, pressed bool) {
		if pressed {
			e.scene.PointerDown(x, y, button)
		} else {
			e.scene.PointerUp(x, y, button)
		}
	})
	e.window.SetPointerLeaveCallback(e.scene.PointerLeave)
	e.window.SetScrollCallback(e.scene.Scroll)
	e.window.SetKeyCallback(e.scene.Key)
	e.window.SetUpdateCallback(e.frame)
	e.scene.SetQuitCallback(e.Quit)
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Scene() scene.Scene {
	return e.scene
}

func (e *engine) Renderer() renderer.Renderer {
	return e.renderer
}

func (e *engine) Run() error {
	if e.window == nil || e.scene == nil || e.renderer == nil {
		return ErrIncomplete
	}
	defer e.shutdown()

	if err := e.renderer.UploadMeshes(e.scene.Meshes()); err != nil {
		return fmt.Errorf("upload meshes: %w", err)
	}
	e.renderer.Resize(e.window.Width(), e.window.Height())
	e.scene.Resize(e.window.Width(), e.window.Height())

	e.mu.Lock()
	e.running = true
	e.lastFrame = e.now()
	e.mu.Unlock()

	e.log.Info().Str("session", e.scene.ID().String()).Msg("engine running")
	e.window.ProcessMessages()
	return nil
}

// shutdown closes the scene before releasing the GPU resources it was drawn with.
func (e *engine) shutdown() {
	e.mu.Lock()
	e.running = false
	frames := e.frames
	e.mu.Unlock()

	e.scene.Close()
	e.renderer.Release()
	e.log.Info().Uint64("frames", frames).Msg("engine stopped")
}

// frame advances the scene by the wall-clock delta and draws it.
func (e *engine) frame() {
	e.mu.Lock()
	if !e.running {
		e.mu.Unlock()
		return
	}
	start := e.now()
	dt := start.Sub(e.lastFrame).Seconds()
	e.lastFrame = start
	e.mu.Unlock()

	f := e.scene.Tick(dt)
	if e.scene.Closed() {
		return
	}

	if updates := e.scene.Atlas().TakeUpdates(); len(updates) > 0 {
		e.renderer.WriteAtlas(updates)
	}

	cam := e.scene.Camera()
	data := renderer.FrameData{
		ViewProj:  cam.ViewProjectionMatrix(),
		CameraPos: cam.Position(),
		Elapsed:   f.Elapsed,
		Items:     e.scene.DrawList(),
	}
	overlay := e.scene.Overlay()
	if img, _ := overlay.Image(); img != nil {
		card := overlay.Card()
		data.Overlay = img
		data.OverlayAt = image.Pt(int(card.Position.X), int(card.Position.Y))
	}
	if err := e.renderer.DrawFrame(data); err != nil {
		// a lost or outdated surface recovers on the next resize
		e.log.Warn().Err(err).Msg("frame skipped")
	}

	e.mu.Lock()
	e.frames++
	callback := e.frameCallback
	profiling := e.profilingEnabled
	limit := e.renderFrameLimit
	e.mu.Unlock()

	if callback != nil {
		callback(f)
	}
	if profiling {
		stats := e.renderer.Stats()
		e.profiler.Tick(profiler.Sample{DrawCalls: stats.DrawCalls, Instances: stats.Instances})
	}
	if limit > 0 {
		if remaining := limit - e.now().Sub(start); remaining > 0 {
			e.sleep(remaining)
		}
	}
}

// Quit asks the window to close. Uses sync.Once so the request is only made once.
func (e *engine) Quit() {
	e.quitOnce.Do(func() {
		e.log.Info().Msg("quit requested")
		if e.window != nil {
			e.window.RequestClose()
		}
	})
}

func (e *engine) Frames() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.frames
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profilingEnabled = false
}

// SetFrameCallback registers the function called after each frame.
func (e *engine) SetFrameCallback(callback func(frame animator.Frame)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.frameCallback = callback
}

// SetRenderFrameLimit sets an optional frame rate cap.
// Pass 0 to uncap the loop.
func (e *engine) SetRenderFrameLimit(fps float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.renderFrameLimit = frameDuration(fps)
}

func frameDuration(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}
