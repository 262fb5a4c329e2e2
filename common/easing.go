package common

import "cogentcore.org/core/math32"

// EaseOutCubic maps linear progress t in [0, 1] onto a decelerating curve.
// Inputs outside the range are clamped, so EaseOutCubic(1) is exactly 1.
func EaseOutCubic(t float32) float32 {
	t = min(max(t, 0), 1)
	inv := 1 - t
	return 1 - inv*inv*inv
}

// DampFactor returns the interpolation weight for a frame-rate independent
// exponential approach toward a target.
//
// Parameters:
//   - stiffness: convergence rate per second (larger is snappier)
//   - dt: frame delta in seconds
//
// Returns:
//   - float32: weight in [0, 1) to pass to Lerp
func DampFactor(stiffness, dt float32) float32 {
	if stiffness <= 0 || dt <= 0 {
		return 0
	}
	return 1 - math32.Exp(-stiffness*dt)
}

// Wrap returns i modulo n in the range [0, n), for negative i as well.
func Wrap(i, n int) int {
	if n <= 0 {
		return 0
	}
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// SmoothDamp moves current toward target with a critically damped spring,
// never overshooting. velocity carries the spring state between calls.
//
// Parameters:
//   - current: the current value
//   - target: the value to approach
//   - velocity: spring velocity, updated in place
//   - smoothTime: approximate time in seconds to reach the target
//   - dt: frame delta in seconds
//
// Returns:
//   - math32.Vector3: the new value
func SmoothDamp(current, target math32.Vector3, velocity *math32.Vector3, smoothTime, dt float32) math32.Vector3 {
	if dt <= 0 {
		return current
	}
	smoothTime = max(smoothTime, 1e-4)
	omega := 2 / smoothTime
	x := omega * dt
	decay := 1 / (1 + x + 0.48*x*x + 0.235*x*x*x)

	change := current.Sub(target)
	temp := velocity.Add(change.MulScalar(omega)).MulScalar(dt)
	*velocity = velocity.Sub(temp.MulScalar(omega)).MulScalar(decay)
	out := target.Add(change.Add(temp).MulScalar(decay))

	// clamp overshoot: if we passed the target, stop on it
	if target.Sub(current).Dot(out.Sub(target)) > 0 {
		*velocity = math32.Vector3{}
		return target
	}
	return out
}
