package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-plaza/common"
	"github.com/Carmen-Shannon/oxy-plaza/engine/animator"
	"github.com/Carmen-Shannon/oxy-plaza/engine/catalog"
	"github.com/Carmen-Shannon/oxy-plaza/engine/renderer"
	"github.com/Carmen-Shannon/oxy-plaza/engine/scene"
	"github.com/Carmen-Shannon/oxy-plaza/engine/window"
)

// fakeWindow runs a fixed number of frames, calling script before each one.
type fakeWindow struct {
	width, height int
	maxFrames     int
	running       bool
	script        func(frame int, w *fakeWindow)

	onUpdate        func()
	onResize        func(width, height int)
	onScroll        func(delta float32)
	onKey           func(key, mods int)
	onPointerMove   func(x, y float32)
	onPointerButton func(x, y float32, button int, pressed bool)
	onPointerLeave  func()
}

var _ window.Window = &fakeWindow{}

func (w *fakeWindow) SetUpdateCallback(cb func()) {
	w.onUpdate = cb
}

func (w *fakeWindow) SetResizeCallback(cb func(width, height int)) {
	w.onResize = cb
}

func (w *fakeWindow) SetScrollCallback(cb func(delta float32)) {
	w.onScroll = cb
}

func (w *fakeWindow) SetKeyCallback(cb func(key, mods int)) {
	w.onKey = cb
}

func (w *fakeWindow) SetPointerMoveCallback(cb func(x, y float32)) {
	w.onPointerMove = cb
}

func (w *fakeWindow) SetPointerButtonCallback(cb func(x, y float32, button int, pressed bool)) {
	w.onPointerButton = cb
}

func (w *fakeWindow) SetPointerLeaveCallback(cb func()) {
	w.onPointerLeave = cb
}

func (w *fakeWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return nil
}

func (w *fakeWindow) Transparent() bool {
	return false
}

func (w *fakeWindow) IsRunning() bool {
	return w.running
}

func (w *fakeWindow) RequestClose() {
	w.running = false
}

func (w *fakeWindow) Close() error {
	w.running = false
	return nil
}

func (w *fakeWindow) Width() int {
	return w.width
}

func (w *fakeWindow) Height() int {
	return w.height
}

func (w *fakeWindow) ProcessMessages() {
	w.running = true
	for frame := 0; frame < w.maxFrames && w.running; frame++ {
		if w.script != nil {
			w.script(frame, w)
		}
		if !w.running {
			return
		}
		if w.onUpdate != nil {
			w.onUpdate()
		}
	}
}

// fakeRenderer records what the engine hands it.
type fakeRenderer struct {
	frames       []renderer.FrameData
	atlasUpdates int
	uploaded     bool
	sizes        [][2]int
	released     bool
	drawErr      error
	presentMode  renderer.PresentMode
	uploadErr    error
	stats        renderer.FrameStats
}

var _ renderer.Renderer = &fakeRenderer{}

func (r *fakeRenderer) Resize(width, height int) {
	r.sizes = append(r.sizes, [2]int{width, height})
}

func (r *fakeRenderer) SetPresentMode(mode renderer.PresentMode) {
	r.presentMode = mode
}

func (r *fakeRenderer) UploadMeshes(m *scene.Meshes) error {
	r.uploaded = m != nil
	return r.uploadErr
}

func (r *fakeRenderer) WriteAtlas(updates []scene.AtlasUpdate) {
	r.atlasUpdates += len(updates)
}

func (r *fakeRenderer) DrawFrame(frame renderer.FrameData) error {
	r.frames = append(r.frames, frame)
	r.stats = renderer.FrameStats{DrawCalls: 1, Instances: len(frame.Items)}
	return r.drawErr
}

func (r *fakeRenderer) Stats() renderer.FrameStats { return r.stats }

func (r *fakeRenderer) Release() {
	r.released = true
}

func testScene(t *testing.T) scene.Scene {
	t.Helper()
	cat, err := catalog.NewCatalog([]catalog.ChainEntity{
		{Name: "Alpha", Symbol: "ALP", Color: colorful.Color{R: 1}, Status: catalog.StatusLive, DepositAmount: 100, NavigationTarget: "/mint/alp"},
		{Name: "Delta", Symbol: "DEL", Color: colorful.Color{G: 1}, Status: catalog.StatusLive, DepositAmount: 1000, NavigationTarget: "/mint/del"},
		{Name: "Beta", Symbol: "BET", Color: colorful.Color{B: 1}, Status: catalog.StatusNext, DepositAmount: 300},
	})
	require.NoError(t, err)
	s, err := scene.NewScene(cat, scene.WithViewport(1280, 720))
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

// newTestEngine wires a scene to fakes and steps the clock 100ms per frame.
func newTestEngine(t *testing.T, frames int, options ...EngineBuilderOption) (*engine, *fakeWindow, *fakeRenderer) {
	t.Helper()
	w := &fakeWindow{width: 1280, height: 720, maxFrames: frames}
	r := &fakeRenderer{}
	s := testScene(t)
	e := NewEngine(append([]EngineBuilderOption{WithWindow(w), WithScene(s), WithRenderer(r)}, options...)...).(*engine)

	clock := time.Unix(0, 0)
	e.now = func() time.Time { return clock }
	prev := w.script
	w.script = func(frame int, fw *fakeWindow) {
		clock = clock.Add(100 * time.Millisecond)
		if prev != nil {
			prev(frame, fw)
		}
	}
	return e, w, r
}

func TestRunRequiresComponents(t *testing.T) {
	e := NewEngine()
	assert.ErrorIs(t, e.Run(), ErrIncomplete)

	e = NewEngine(WithWindow(&fakeWindow{}))
	assert.ErrorIs(t, e.Run(), ErrIncomplete)
}

func TestRunDrawsFramesAndShutsDown(t *testing.T) {
	e, _, r := newTestEngine(t, 10)
	var elapsed []float64
	e.SetFrameCallback(func(f animator.Frame) { elapsed = append(elapsed, f.Elapsed) })

	require.NoError(t, e.Run())

	assert.True(t, r.uploaded)
	assert.Equal(t, [][2]int{{1280, 720}}, r.sizes)
	require.Len(t, r.frames, 10)
	assert.Equal(t, uint64(10), e.Frames())
	assert.InDelta(t, 1.0, elapsed[9], 1e-6)

	last := r.frames[9]
	assert.NotEmpty(t, last.Items)
	assert.Equal(t, e.Scene().Camera().ViewProjectionMatrix(), last.ViewProj)
	assert.InDelta(t, 1.0, last.Elapsed, 1e-6)
	assert.Nil(t, last.Overlay)

	assert.True(t, e.Scene().Closed())
	assert.True(t, r.released)
}

func TestUploadFailureStopsRun(t *testing.T) {
	e, _, r := newTestEngine(t, 5)
	r.uploadErr = errors.New("out of memory")
	err := e.Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of memory")
	assert.Empty(t, r.frames)
	assert.True(t, r.released)
}

func TestEscapeQuits(t *testing.T) {
	e, w, r := newTestEngine(t, 100)
	w.script = wrapScript(w.script, func(frame int, fw *fakeWindow) {
		if frame == 3 {
			fw.onKey(common.KeyEsc, 0)
		}
	})
	require.NoError(t, e.Run())
	assert.Len(t, r.frames, 3)
	assert.False(t, w.running)
}

func TestResizeReachesRendererAndScene(t *testing.T) {
	e, w, r := newTestEngine(t, 3)
	w.script = wrapScript(w.script, func(frame int, fw *fakeWindow) {
		if frame == 1 {
			fw.onResize(600, 900)
		}
	})
	require.NoError(t, e.Run())
	assert.Equal(t, [2]int{600, 900}, r.sizes[len(r.sizes)-1])
	width, height := e.Scene().Viewport()
	assert.Equal(t, 600, width)
	assert.Equal(t, 900, height)
}

func TestHoverShowsOverlay(t *testing.T) {
	e, w, r := newTestEngine(t, 60)
	w.script = wrapScript(w.script, func(frame int, fw *fakeWindow) {
		if frame != 55 {
			return
		}
		s := e.Scene()
		id, ok := s.Graph().Coin(1)
		require.True(t, ok)
		x, y, visible := common.WorldToScreen(s.Camera().ViewProjectionMatrix(), s.Graph().Node(id).WorldPosition(), 1280, 720)
		require.True(t, visible)
		fw.onPointerMove(x, y)
	})
	require.NoError(t, e.Run())

	require.Len(t, r.frames, 60)
	assert.Nil(t, r.frames[54].Overlay)
	hovered := r.frames[55]
	require.NotNil(t, hovered.Overlay)
	assert.Positive(t, hovered.OverlayAt.X)
	assert.Positive(t, hovered.OverlayAt.Y)
}

func TestDrawErrorDoesNotStopLoop(t *testing.T) {
	e, _, r := newTestEngine(t, 4)
	r.drawErr = errors.New("surface outdated")
	require.NoError(t, e.Run())
	assert.Len(t, r.frames, 4)
}

func TestFrameLimitSleepsRemainder(t *testing.T) {
	e, _, _ := newTestEngine(t, 2, WithRenderFrameLimit(5))
	var slept []time.Duration
	e.sleep = func(d time.Duration) { slept = append(slept, d) }
	require.NoError(t, e.Run())
	require.Len(t, slept, 2)
	assert.Equal(t, 200*time.Millisecond, slept[0])
}

func TestProfilerToggle(t *testing.T) {
	e := NewEngine(WithProfiling(true)).(*engine)
	assert.True(t, e.profilingEnabled)
	e.DisableProfiler()
	assert.False(t, e.profilingEnabled)
	e.EnableProfiler()
	assert.True(t, e.profilingEnabled)

	e.SetRenderFrameLimit(0)
	assert.Zero(t, e.renderFrameLimit)
	e.SetRenderFrameLimit(50)
	assert.Equal(t, 20*time.Millisecond, e.renderFrameLimit)
}

func wrapScript(first, then func(frame int, w *fakeWindow)) func(frame int, w *fakeWindow) {
	return func(frame int, w *fakeWindow) {
		first(frame, w)
		then(frame, w)
	}
}
