package animator

import (
	"sync"

	"github.com/rs/zerolog"
)

// Track is the retained animation state of one node. The scene owns tracks;
// the scheduler only writes Out and the entrance flag.
type Track struct {
	Base    Pose
	Motion  Motion
	Hovered bool

	// Out is the pose evaluated by the last Apply.
	Out Pose

	entranceDone bool
}

// EntranceDone reports whether the track's entrance has completed and is no longer evaluated.
func (t *Track) EntranceDone() bool {
	return t.entranceDone || !t.Motion.Entrance.Active()
}

// MarkEntranceDone skips the entrance, used when a rebuilt node replaces one
// that already finished its intro.
func (t *Track) MarkEntranceDone() {
	t.entranceDone = true
}

type schedulerImpl struct {
	mu *sync.Mutex

	clock   *Clock
	frame   Frame
	style   HoverStyle
	stopped bool

	log zerolog.Logger
}

// Scheduler owns the simulation clock and evaluates tracks once per frame.
type Scheduler interface {
	// Advance moves the clock by a (clamped) delta and returns the new frame context.
	// After Stop it returns the last frame unchanged.
	//
	// Parameters:
	//   - dt: wall-clock delta in seconds
	//
	// Returns:
	//   - Frame: the simulation context for this frame
	Advance(dt float64) Frame

	// Frame returns the current simulation context without advancing.
	Frame() Frame

	// Apply evaluates every track at the current elapsed time and stores the result in Out.
	//
	// Parameters:
	//   - tracks: the tracks to evaluate
	Apply(tracks []*Track)

	// HoverStyle returns the style applied to hovered tracks.
	HoverStyle() HoverStyle

	// Stop halts the scheduler permanently.
	Stop()

	// Stopped reports whether Stop was called.
	Stopped() bool
}

var _ Scheduler = &schedulerImpl{}

// NewScheduler creates a scheduler with its clock at zero.
//
// Parameters:
//   - options: functional options
//
// Returns:
//   - Scheduler: the scheduler
func NewScheduler(options ...SchedulerBuilderOption) Scheduler {
	s := &schedulerImpl{
		mu:    &sync.Mutex{},
		clock: NewClock(DefaultMaxStep),
		style: DefaultHoverStyle,
		log:   zerolog.Nop(),
	}
	for _, option := range options {
		option(s)
	}
	s.frame = s.clock.snapshot(0)
	return s
}

func (s *schedulerImpl) Advance(dt float64) Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return s.frame
	}
	applied := s.clock.Advance(dt)
	if applied < dt {
		s.log.Debug().Float64("requested", dt).Float64("applied", applied).Msg("frame delta clamped")
	}
	s.frame = s.clock.snapshot(applied)
	return s.frame
}

func (s *schedulerImpl) Frame() Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frame
}

func (s *schedulerImpl) Apply(tracks []*Track) {
	s.mu.Lock()
	t, style, stopped := s.frame.Elapsed, s.style, s.stopped
	s.mu.Unlock()
	if stopped {
		return
	}

	for _, tr := range tracks {
		m := tr.Motion
		if !tr.entranceDone && m.Entrance.Active() && m.Entrance.Progress(t) >= 1 {
			tr.entranceDone = true
		}
		if tr.entranceDone {
			m.Entrance = Entrance{}
		}
		tr.Out = Evaluate(tr.Base, m, style, t, tr.Hovered)
	}
}

func (s *schedulerImpl) HoverStyle() HoverStyle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.style
}

func (s *schedulerImpl) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.stopped {
		s.stopped = true
		s.log.Debug().Float64("elapsed", s.frame.Elapsed).Msg("scheduler stopped")
	}
}

func (s *schedulerImpl) Stopped() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopped
}
