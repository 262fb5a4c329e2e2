package camera

import "cogentcore.org/core/math32"

// CameraController owns the camera's positional state (position, target).
// Camera reads from the controller and computes view/projection matrices.
// Embeds both orbitCameraController and planarCameraController so orbit and
// pan input work on one controller instance.
type CameraController interface {
	orbitCameraController
	planarCameraController

	// Position returns the camera's world-space position.
	Position() math32.Vector3

	// Target returns the look-at point.
	Target() math32.Vector3

	// SetTarget moves the pivot and recomputes position from spherical coordinates.
	//
	// Parameters:
	//   - target: world-space pivot
	SetTarget(target math32.Vector3)

	// SetPose places the camera exactly and derives the spherical coordinates
	// from it, so orbit input continues smoothly from wherever a scripted
	// move left the camera.
	//
	// Parameters:
	//   - position: world-space eye position
	//   - target: world-space look-at point
	SetPose(position, target math32.Vector3)

	// Zoom adjusts the orbit radius. Positive delta zooms in.
	//
	// Parameters:
	//   - delta: zoom amount scaled by ZoomSpeed
	Zoom(delta float32)
}

// orbitCameraController uses spherical coordinates (radius, azimuth,
// elevation) relative to the target.
type orbitCameraController interface {
	// Orbit rotates around the target by a pointer drag.
	//
	// Parameters:
	//   - dx, dy: drag distance in pixels, scaled by MouseSensitivity
	Orbit(dx, dy float32)

	// Radius returns the current distance from the target.
	Radius() float32

	// SetRadius sets the orbit radius, clamped to min/max bounds.
	SetRadius(radius float32)

	// Azimuth returns the horizontal angle around the Y axis in radians (0 = +Z).
	Azimuth() float32

	// Elevation returns the vertical angle from the horizontal plane in radians.
	Elevation() float32

	// MouseSensitivity returns the radians per dragged pixel.
	MouseSensitivity() float32

	// ZoomSpeed returns the zoom speed multiplier.
	ZoomSpeed() float32
}

// planarCameraController translates position and target together along the
// camera's local axes, preserving the orbit relationship.
type planarCameraController interface {
	// PanRight translates along the local right axis. Positive moves right.
	PanRight(delta float32)

	// PanUp translates along the local up axis. Positive moves up.
	PanUp(delta float32)

	// PanSpeed returns the pan speed multiplier.
	PanSpeed() float32
}
