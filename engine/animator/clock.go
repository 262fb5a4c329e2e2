package animator

// DefaultMaxStep is the largest delta the clock accepts in one advance.
// Longer gaps (a suspended window, a debugger pause) are clamped to it.
const DefaultMaxStep = 0.1

// Clock is the shared elapsed-time source. Only the scheduler advances it.
type Clock struct {
	elapsed float64
	maxStep float64
	frame   uint64
}

// NewClock creates a clock at zero.
//
// Parameters:
//   - maxStep: largest accepted delta in seconds, non-positive means DefaultMaxStep
//
// Returns:
//   - *Clock: the clock
func NewClock(maxStep float64) *Clock {
	if maxStep <= 0 {
		maxStep = DefaultMaxStep
	}
	return &Clock{maxStep: maxStep}
}

// Advance moves the clock forward. Negative or NaN deltas are treated as zero
// and deltas beyond the max step are clamped, so time never runs backward and
// never jumps.
//
// Parameters:
//   - dt: wall-clock delta in seconds
//
// Returns:
//   - float64: the delta actually applied
func (c *Clock) Advance(dt float64) float64 {
	if !(dt > 0) {
		dt = 0
	}
	dt = min(dt, c.maxStep)
	c.elapsed += dt
	c.frame++
	return dt
}

// Elapsed returns the accumulated simulation time in seconds.
func (c *Clock) Elapsed() float64 {
	return c.elapsed
}

// Frame is the simulation context handed to every per-frame update.
type Frame struct {
	// Elapsed is the simulation time in seconds.
	Elapsed float64
	// Delta is the clamped time since the previous frame.
	Delta float64
	// Number counts advances since start.
	Number uint64
}

// snapshot returns the clock state as a Frame with the given delta.
func (c *Clock) snapshot(delta float64) Frame {
	return Frame{Elapsed: c.elapsed, Delta: delta, Number: c.frame}
}
