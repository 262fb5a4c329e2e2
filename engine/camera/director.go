package camera

import (
	"sync"

	"cogentcore.org/core/math32"
	"github.com/rs/zerolog"

	"github.com/Carmen-Shannon/oxy-plaza/common"
)

// Mode says who is allowed to write the camera this frame.
type Mode int

const (
	// ModeFree: user input (drag, zoom, pan) drives the camera.
	ModeFree Mode = iota
	// ModeScripted: the tour drives the camera toward the active stop.
	ModeScripted
)

func (m Mode) String() string {
	if m == ModeScripted {
		return "scripted"
	}
	return "free"
}

// FreeIndex is reported by Director.Index while the camera is free.
const FreeIndex = -1

// ParamSink receives the authoritative camera while in free mode, keeping an
// observable parameter store in step with user input.
type ParamSink interface {
	SyncCamera(position, target math32.Vector3, fov float32)
}

type directorImpl struct {
	mu *sync.Mutex

	camera Camera
	tour   Tour

	mode      Mode
	index     int
	lastIndex int
	dragging  bool

	autoplay bool
	interval float64
	elapsed  float64

	smoothTime float32
	velocity   math32.Vector3
	targetVel  math32.Vector3

	sink          ParamSink
	onStopChanged func(index int)
	stopped       bool

	log zerolog.Logger
}

// Director arbitrates the two camera writers: scripted tour navigation and
// free user orbit. The mode is checked before every write so only one of them
// moves the camera in any frame.
type Director interface {
	// Mode returns the current mode.
	Mode() Mode

	// Index returns the active stop, or FreeIndex while free.
	Index() int

	// Autoplay reports whether the autoplay timer is running.
	Autoplay() bool

	// Tour returns the current tour.
	Tour() Tour

	// SetTour replaces the tour, keeping the active index (wrapped).
	SetTour(t Tour)

	// Next advances to the following stop (wrapping) and enters scripted mode.
	Next()

	// Prev returns to the preceding stop (wrapping) and enters scripted mode.
	Prev()

	// Goto jumps to stop i (wrapped) and enters scripted mode.
	Goto(i int)

	// Home jumps to the overview stop.
	Home()

	// End jumps to the last stop.
	End()

	// ToggleAutoplay flips autoplay. Turning it on enters scripted mode;
	// turning it off stays scripted.
	ToggleAutoplay()

	// SetAutoplay sets autoplay explicitly with the same rules as ToggleAutoplay.
	SetAutoplay(on bool)

	// BeginDrag marks the start of a user drag and enters free mode.
	BeginDrag()

	// EndDrag marks the end of a user drag. The camera stays free.
	EndDrag()

	// Dragging reports whether a user drag is in progress.
	Dragging() bool

	// Orbit, Zoom and Pan apply user input and enter free mode.
	Orbit(dx, dy float32)
	Zoom(delta float32)
	Pan(dx, dy float32)

	// Update runs once per frame: in scripted mode it advances autoplay and
	// moves the camera toward the active stop; in free mode it mirrors the
	// camera into the parameter sink. It then refreshes the camera matrices.
	//
	// Parameters:
	//   - dt: clamped frame delta in seconds
	Update(dt float64)

	// SetStopChangedCallback is called with the new index whenever the active stop changes.
	SetStopChangedCallback(cb func(index int))

	// Stop halts autoplay and ignores all further commands and updates.
	Stop()
}

var _ Director = &directorImpl{}

// NewDirector creates a director in scripted mode at stop 0, with the
// camera placed exactly on that stop.
//
// Parameters:
//   - cam: the camera to drive; it must have a controller attached
//   - tour: the initial tour
//   - options: functional options
//
// Returns:
//   - Director: the director
func NewDirector(cam Camera, tour Tour, options ...DirectorBuilderOption) Director {
	if cam == nil || cam.Controller() == nil {
		panic("camera director requires a camera with a controller")
	}
	d := &directorImpl{
		mu:         &sync.Mutex{},
		camera:     cam,
		tour:       tour,
		mode:       ModeScripted,
		interval:   3,
		smoothTime: 0.6,
		log:        zerolog.Nop(),
	}
	for _, option := range options {
		option(d)
	}
	if tour.Len() > 0 {
		stop := tour.Stop(0)
		cam.Controller().SetPose(stop.Position, stop.Target)
		if stop.FOV > 0 {
			cam.SetFov(math32.DegToRad(stop.FOV))
		}
		cam.Update()
	}
	return d
}

func (d *directorImpl) Mode() Mode {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.mode
}

func (d *directorImpl) Index() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.mode == ModeFree {
		return FreeIndex
	}
	return d.index
}

func (d *directorImpl) Autoplay() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.autoplay
}

func (d *directorImpl) Tour() Tour {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.tour
}

func (d *directorImpl) SetTour(t Tour) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.tour = t
	d.index = t.Wrap(d.index)
	d.lastIndex = t.Wrap(d.lastIndex)
}

// enterScripted switches to scripted mode at index i. Caller must hold the mutex.
// Returns the callback to run after unlocking, or nil.
func (d *directorImpl) enterScripted(i int) func() {
	if d.stopped || d.tour.Len() == 0 {
		return nil
	}
	if d.mode == ModeFree {
		// the spring starts from rest wherever the user left the camera
		d.velocity, d.targetVel = math32.Vector3{}, math32.Vector3{}
	}
	d.mode = ModeScripted
	d.dragging = false

	next := d.tour.Wrap(i)
	if next == d.index && d.lastIndex == next {
		return nil
	}
	d.index, d.lastIndex = next, next
	d.log.Debug().Int("stop", next).Str("name", d.tour.Stop(next).Name).Msg("tour stop")
	if cb := d.onStopChanged; cb != nil {
		return func() { cb(next) }
	}
	return nil
}

func (d *directorImpl) command(target func() int) {
	d.mu.Lock()
	after := d.enterScripted(target())
	d.mu.Unlock()
	if after != nil {
		after()
	}
}

func (d *directorImpl) Next() {
	d.command(func() int { return d.lastIndex + 1 })
}

func (d *directorImpl) Prev() {
	d.command(func() int { return d.lastIndex - 1 })
}

func (d *directorImpl) Goto(i int) {
	d.command(func() int { return i })
}

func (d *directorImpl) Home() {
	d.command(func() int { return 0 })
}

func (d *directorImpl) End() {
	d.command(func() int { return d.tour.Len() - 1 })
}

func (d *directorImpl) ToggleAutoplay() {
	d.SetAutoplay(!d.Autoplay())
}

func (d *directorImpl) SetAutoplay(on bool) {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.autoplay = on
	d.elapsed = 0
	var after func()
	if on {
		after = d.enterScripted(d.lastIndex)
	}
	d.mu.Unlock()

	d.log.Debug().Bool("autoplay", on).Msg("autoplay toggled")
	if after != nil {
		after()
	}
}

// enterFree hands the camera to the user. Autoplay is cancelled because the
// user has taken over. Caller must hold the mutex.
func (d *directorImpl) enterFree() bool {
	if d.stopped {
		return false
	}
	if d.mode != ModeFree {
		d.log.Debug().Int("from_stop", d.index).Msg("camera released to user")
	}
	d.mode = ModeFree
	d.autoplay = false
	d.elapsed = 0
	return true
}

func (d *directorImpl) BeginDrag() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.enterFree() {
		d.dragging = true
	}
}

func (d *directorImpl) EndDrag() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.dragging = false
}

func (d *directorImpl) Dragging() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.dragging
}

func (d *directorImpl) Orbit(dx, dy float32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.enterFree() {
		d.camera.Controller().Orbit(dx, dy)
	}
}

func (d *directorImpl) Zoom(delta float32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.enterFree() {
		d.camera.Controller().Zoom(delta)
	}
}

func (d *directorImpl) Pan(dx, dy float32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.enterFree() {
		ctrl := d.camera.Controller()
		ctrl.PanRight(-dx)
		ctrl.PanUp(dy)
	}
}

func (d *directorImpl) Update(dt float64) {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}

	var callbacks []func()
	if d.mode == ModeScripted && d.autoplay && d.tour.Len() > 0 {
		d.elapsed += dt
		for d.elapsed >= d.interval {
			d.elapsed -= d.interval
			if cb := d.enterScripted(d.lastIndex + 1); cb != nil {
				callbacks = append(callbacks, cb)
			}
		}
	}

	ctrl := d.camera.Controller()
	var sync func()
	switch d.mode {
	case ModeScripted:
		stop := d.tour.Stop(d.index)
		step := float32(dt)
		pos := common.SmoothDamp(ctrl.Position(), stop.Position, &d.velocity, d.smoothTime, step)
		target := common.SmoothDamp(ctrl.Target(), stop.Target, &d.targetVel, d.smoothTime, step)
		ctrl.SetPose(pos, target)
		if stop.FOV > 0 {
			fov := d.camera.FovDegrees()
			d.camera.SetFov(math32.DegToRad(fov + (stop.FOV-fov)*common.DampFactor(2/d.smoothTime, step)))
		}
	case ModeFree:
		if d.sink != nil {
			sink, pos, target, fov := d.sink, ctrl.Position(), ctrl.Target(), d.camera.FovDegrees()
			sync = func() { sink.SyncCamera(pos, target, fov) }
		}
	}
	d.camera.Update()
	d.mu.Unlock()

	for _, cb := range callbacks {
		cb()
	}
	if sync != nil {
		sync()
	}
}

func (d *directorImpl) SetStopChangedCallback(cb func(index int)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.onStopChanged = cb
}

func (d *directorImpl) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	d.autoplay = false
	d.elapsed = 0
	d.onStopChanged = nil
	d.sink = nil
}
