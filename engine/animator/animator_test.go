package animator

import (
	"testing"

	"cogentcore.org/core/math32"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func coinTrack(index int) *Track {
	return &Track{
		Base: Pose{
			Position: math32.Vec3(1, 2, 3),
			Scale:    math32.Vec3(1, 1, 1),
			Color:    colorful.Color{R: 0.2, G: 0.4, B: 0.9},
			Emissive: 1,
		},
		Motion: Motion{
			Bob:      Bob{Amplitude: 0.15, Frequency: 0.4},
			Spin:     Spin{Rate: math32.Vec3(0, 1.2, 0)},
			Pulse:    Pulse{Amplitude: 0.25, Frequency: 0.8},
			Entrance: Entrance{Start: 0, Duration: 1.5, InitialScale: 0.2, InitialRotation: math32.Vec3(0, 3, 0)},
			Phase:    PhaseForIndex(index),
		},
	}
}

func TestClockNeverMovesBackward(t *testing.T) {
	c := NewClock(0.1)
	assert.Equal(t, 0.05, c.Advance(0.05))
	assert.Equal(t, 0.0, c.Advance(-3), "negative delta is ignored")
	assert.Equal(t, 0.1, c.Advance(30), "resume after suspend is clamped")
	assert.InDelta(t, 0.15, c.Elapsed(), 1e-12)
}

func TestEvaluateIsDeterministic(t *testing.T) {
	tr := coinTrack(3)
	for _, at := range []float64{0, 0.37, 1.5, 12.25, 3600.5} {
		a := Evaluate(tr.Base, tr.Motion, DefaultHoverStyle, at, false)
		b := Evaluate(tr.Base, tr.Motion, DefaultHoverStyle, at, false)
		assert.Equal(t, a, b, "t=%v", at)
	}
}

func TestEntranceEndsAtSteadyScaleExactly(t *testing.T) {
	s := NewScheduler()
	tracks := []*Track{coinTrack(0), coinTrack(1), coinTrack(2)}

	s.Apply(tracks)
	for _, tr := range tracks {
		assert.InDelta(t, 0.2, tr.Out.Scale.X, 1e-6, "starts reduced")
		assert.False(t, tr.EntranceDone())
	}

	// 1.5s at 60 fps, clamped deltas add up exactly enough to pass the duration
	for i := 0; i < 95; i++ {
		s.Advance(1.0 / 60)
	}
	require.GreaterOrEqual(t, s.Frame().Elapsed, 1.5)
	s.Apply(tracks)
	for i, tr := range tracks {
		assert.Equal(t, tr.Base.Scale, tr.Out.Scale, "track %d reached steady scale", i)
		assert.True(t, tr.EntranceDone())
	}

	s.Advance(2)
	s.Apply(tracks)
	for _, tr := range tracks {
		assert.Equal(t, tr.Base.Scale, tr.Out.Scale, "later frames leave scale unchanged")
	}
}

func TestEntranceEaseOutIsMonotonic(t *testing.T) {
	tr := coinTrack(0)
	prev := float32(0)
	for i := 0; i <= 30; i++ {
		at := float64(i) * 0.05
		p := Evaluate(tr.Base, tr.Motion, DefaultHoverStyle, at, false)
		assert.GreaterOrEqual(t, p.Scale.X, prev)
		prev = p.Scale.X
	}
	assert.Equal(t, float32(1), prev)
}

func TestHoverIsInstantAndReversible(t *testing.T) {
	tr := coinTrack(1)
	tr.MarkEntranceDone()
	s := NewScheduler()
	s.Advance(0.05)

	s.Apply([]*Track{tr})
	rest := tr.Out

	tr.Hovered = true
	s.Apply([]*Track{tr})
	hovered := tr.Out
	assert.InDelta(t, rest.Scale.X*DefaultHoverStyle.Scale, hovered.Scale.X, 1e-6)
	assert.InDelta(t, rest.Emissive*DefaultHoverStyle.Boost, hovered.Emissive, 1e-6)
	assert.NotEqual(t, rest.Color, hovered.Color)

	tr.Hovered = false
	s.Apply([]*Track{tr})
	assert.Equal(t, rest, tr.Out, "un-hover restores the exact pose")
}

func TestPhaseStaggersNeighbours(t *testing.T) {
	a, b := coinTrack(0), coinTrack(1)
	at := 2.0
	pa := Evaluate(a.Base, a.Motion, DefaultHoverStyle, at, false)
	pb := Evaluate(b.Base, b.Motion, DefaultHoverStyle, at, false)
	assert.NotEqual(t, pa.Position.Y, pb.Position.Y)
	assert.Equal(t, PhaseForIndex(5), PhaseForIndex(5))
}

func TestStoppedSchedulerFreezes(t *testing.T) {
	s := NewScheduler()
	s.Advance(0.05)
	s.Stop()
	f := s.Advance(0.05)
	assert.Equal(t, 0.05, f.Elapsed)
	assert.True(t, s.Stopped())

	tr := coinTrack(0)
	s.Apply([]*Track{tr})
	assert.Equal(t, Pose{}, tr.Out, "no evaluation after stop")
}
