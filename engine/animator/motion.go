// Package animator evaluates retained-mode animation tracks against a single
// simulation clock. Every pose is a pure function of elapsed time, the track's
// static parameters and its hovered flag.
package animator

import (
	"math"

	"cogentcore.org/core/math32"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/Carmen-Shannon/oxy-plaza/common"
)

// Pose is the visual state of one node.
type Pose struct {
	Position math32.Vector3
	Rotation math32.Vector3
	Scale    math32.Vector3
	Color    colorful.Color
	Emissive float32
}

// Bob is a vertical sinusoidal float.
type Bob struct {
	Amplitude float32
	Frequency float32 // Hz
}

// Spin is a constant-rate rotation in radians per second around each axis.
type Spin struct {
	Rate math32.Vector3
}

// Pulse modulates the emissive intensity: Emissive * (1 + Amplitude*sin).
type Pulse struct {
	Amplitude float32
	Frequency float32 // Hz
}

// Entrance plays once: scale grows from InitialScale times steady scale and
// rotation settles from an extra InitialRotation, with a cubic ease-out.
type Entrance struct {
	// Start is the elapsed time at which the transition begins.
	Start float64
	// Duration is the transition length in seconds; zero disables it.
	Duration        float64
	InitialScale    float32
	InitialRotation math32.Vector3
}

// Active reports whether the entrance has any effect at all.
func (e Entrance) Active() bool {
	return e.Duration > 0
}

// Progress returns the linear progress in [0, 1] at time t.
func (e Entrance) Progress(t float64) float32 {
	if !e.Active() {
		return 1
	}
	return float32(min(max((t-e.Start)/e.Duration, 0), 1))
}

// Motion is the plain-old-data animation description of one node.
type Motion struct {
	Bob      Bob
	Spin     Spin
	Pulse    Pulse
	Entrance Entrance
	// Phase offsets every periodic motion; derived from the catalog index.
	Phase float32
}

// HoverStyle is the instantaneous change applied to a hovered node.
type HoverStyle struct {
	Scale float32
	Color colorful.Color
	// Mix is how far the color moves toward Color, 1 replaces it.
	Mix   float32
	Boost float32
}

// DefaultHoverStyle scales up by 15%, shifts toward warm gold and boosts glow.
var DefaultHoverStyle = HoverStyle{
	Scale: 1.15,
	Color: colorful.Color{R: 1, G: 0.84, B: 0.35},
	Mix:   0.6,
	Boost: 1.8,
}

// PhaseStep is the per-index phase offset in radians (the golden angle), which
// staggers neighbours without repeating for small catalogs.
const PhaseStep = 2.39996323

// PhaseForIndex returns the phase offset of the entity at catalog index i.
func PhaseForIndex(i int) float32 {
	return float32(math.Mod(float64(i)*PhaseStep, 2*math.Pi))
}

func wave(t float64, freq, phase float32) float32 {
	return float32(math.Sin(2*math.Pi*float64(freq)*t + float64(phase)))
}

// spinAngle wraps rate*t in float64 so long sessions keep float32 precision.
func spinAngle(rate float32, t float64) float32 {
	return float32(math.Mod(float64(rate)*t, 2*math.Pi))
}

// Evaluate computes the pose of a node at elapsed time t.
//
// Parameters:
//   - base: the steady-state pose
//   - m: the node's motion parameters
//   - style: hover style applied when hovered is true
//   - t: elapsed simulation time in seconds
//   - hovered: whether the node is currently hovered
//
// Returns:
//   - Pose: the evaluated pose
func Evaluate(base Pose, m Motion, style HoverStyle, t float64, hovered bool) Pose {
	p := base

	if m.Bob.Amplitude != 0 {
		p.Position.Y += m.Bob.Amplitude * wave(t, m.Bob.Frequency, m.Phase)
	}
	if m.Spin.Rate != (math32.Vector3{}) {
		p.Rotation.X += spinAngle(m.Spin.Rate.X, t)
		p.Rotation.Y += spinAngle(m.Spin.Rate.Y, t) + m.Phase
		p.Rotation.Z += spinAngle(m.Spin.Rate.Z, t)
	}
	if m.Pulse.Amplitude != 0 {
		p.Emissive *= 1 + m.Pulse.Amplitude*wave(t, m.Pulse.Frequency, m.Phase)
	}

	if m.Entrance.Active() {
		if progress := m.Entrance.Progress(t); progress < 1 {
			e := common.EaseOutCubic(progress)
			p.Scale = p.Scale.MulScalar(m.Entrance.InitialScale + (1-m.Entrance.InitialScale)*e)
			p.Rotation = p.Rotation.Add(m.Entrance.InitialRotation.MulScalar(1 - e))
		}
	}

	if hovered {
		p.Scale = p.Scale.MulScalar(style.Scale)
		p.Color = p.Color.BlendLab(style.Color, float64(style.Mix)).Clamped()
		p.Emissive *= style.Boost
	}
	return p
}
