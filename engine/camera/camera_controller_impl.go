package camera

import (
	"sync"

	"cogentcore.org/core/math32"
)

// cameraControllerImpl is the single implementation of CameraController.
type cameraControllerImpl struct {
	mu *sync.Mutex

	// position is computed from target + spherical coords, except right after SetPose
	position math32.Vector3
	target   math32.Vector3

	radius    float32
	azimuth   float32
	elevation float32

	minRadius    float32
	maxRadius    float32
	minElevation float32
	maxElevation float32

	mouseSensitivity float32
	zoomSpeed        float32
	panSpeed         float32
}

var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates a controller framing the plaza from the front.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		mu: &sync.Mutex{},

		radius:    18,
		azimuth:   0,
		elevation: math32.Pi / 9,

		minRadius:    3,
		maxRadius:    60,
		minElevation: -0.45,
		maxElevation: math32.Pi/2 - 0.05,

		mouseSensitivity: 0.006,
		zoomSpeed:        1.2,
		panSpeed:         0.02,
	}
	for _, option := range options {
		option(cc)
	}
	cc.updatePosition()
	return cc
}

// updatePosition recomputes the camera position from spherical coordinates.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) updatePosition() {
	cosE, sinE := math32.Cos(cc.elevation), math32.Sin(cc.elevation)
	cosA, sinA := math32.Cos(cc.azimuth), math32.Sin(cc.azimuth)
	cc.position = cc.target.Add(math32.Vec3(cc.radius*cosE*sinA, cc.radius*sinE, cc.radius*cosE*cosA))
}

// localAxes returns the right and up axes consistent with the LookAt matrix.
// Both are zero when position and target coincide. Caller must hold the mutex.
func (cc *cameraControllerImpl) localAxes() (right, up math32.Vector3) {
	back := cc.position.Sub(cc.target)
	l := back.Length()
	if l < 1e-6 {
		return
	}
	back = back.MulScalar(1 / l)

	// right = cross(worldUp, back) = (back.z, 0, -back.x)
	right = math32.Vec3(back.Z, 0, -back.X)
	rl := right.Length()
	if rl < 1e-6 {
		return math32.Vector3{}, math32.Vector3{}
	}
	right = right.MulScalar(1 / rl)
	up = back.Cross(right)
	return right, up
}

func (cc *cameraControllerImpl) Position() math32.Vector3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.position
}

func (cc *cameraControllerImpl) Target() math32.Vector3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.target
}

func (cc *cameraControllerImpl) SetTarget(target math32.Vector3) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.target = target
	cc.updatePosition()
}

func (cc *cameraControllerImpl) SetPose(position, target math32.Vector3) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.position, cc.target = position, target

	offset := position.Sub(target)
	r := offset.Length()
	if r < 1e-6 {
		return
	}
	cc.radius = r
	cc.elevation = math32.Asin(min(max(offset.Y/r, -1), 1))
	cc.azimuth = math32.Atan2(offset.X, offset.Z)
}

func (cc *cameraControllerImpl) Zoom(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.radius = min(max(cc.radius-delta*cc.zoomSpeed, cc.minRadius), cc.maxRadius)
	cc.updatePosition()
}

func (cc *cameraControllerImpl) Orbit(dx, dy float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.azimuth -= dx * cc.mouseSensitivity
	cc.elevation = min(max(cc.elevation+dy*cc.mouseSensitivity, cc.minElevation), cc.maxElevation)
	cc.updatePosition()
}

func (cc *cameraControllerImpl) Radius() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.radius
}

func (cc *cameraControllerImpl) SetRadius(radius float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.radius = min(max(radius, cc.minRadius), cc.maxRadius)
	cc.updatePosition()
}

func (cc *cameraControllerImpl) Azimuth() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.azimuth
}

func (cc *cameraControllerImpl) Elevation() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.elevation
}

func (cc *cameraControllerImpl) MouseSensitivity() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.mouseSensitivity
}

func (cc *cameraControllerImpl) ZoomSpeed() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.zoomSpeed
}

func (cc *cameraControllerImpl) PanRight(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	right, _ := cc.localAxes()
	offset := right.MulScalar(delta * cc.panSpeed * cc.radius)
	cc.target = cc.target.Add(offset)
	cc.position = cc.position.Add(offset)
}

func (cc *cameraControllerImpl) PanUp(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	_, up := cc.localAxes()
	offset := up.MulScalar(delta * cc.panSpeed * cc.radius)
	cc.target = cc.target.Add(offset)
	cc.position = cc.position.Add(offset)
}

func (cc *cameraControllerImpl) PanSpeed() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.panSpeed
}
