package camera

import (
	"sync"

	"cogentcore.org/core/math32"

	"github.com/Carmen-Shannon/oxy-plaza/common"
)

type cameraImpl struct {
	mu *sync.Mutex

	up math32.Vector3

	fov    float32
	aspect float32
	near   float32
	far    float32

	viewMatrix           common.Mat4
	projectionMatrix     common.Mat4
	viewProjectionMatrix common.Mat4
	inverseViewProj      common.Mat4

	controller CameraController
}

// Camera holds the perspective settings and computes view/projection matrices
// from an attached CameraController each frame via Update().
type Camera interface {
	// Fov returns the vertical field of view in radians.
	Fov() float32

	// FovDegrees returns the vertical field of view in degrees.
	FovDegrees() float32

	// Aspect returns the aspect ratio (width / height).
	Aspect() float32

	// Near returns the near clipping plane distance.
	Near() float32

	// Far returns the far clipping plane distance.
	Far() float32

	// ViewMatrix returns the current view matrix.
	ViewMatrix() common.Mat4

	// ProjectionMatrix returns the current projection matrix.
	ProjectionMatrix() common.Mat4

	// ViewProjectionMatrix returns projection * view.
	ViewProjectionMatrix() common.Mat4

	// InverseViewProjectionMatrix returns the inverse of projection * view.
	// Used to unproject pointer coordinates into picking rays.
	InverseViewProjectionMatrix() common.Mat4

	// Position returns the eye position read from the controller at the last Update.
	Position() math32.Vector3

	// Target returns the look-at point read from the controller at the last Update.
	Target() math32.Vector3

	// Controller returns the attached CameraController, or nil.
	Controller() CameraController

	// Update reads position/target from the controller and recomputes matrices.
	// Called once per frame after the authoritative writer has moved the controller.
	Update()

	// SetFov sets the field of view in radians and recomputes matrices.
	SetFov(fov float32)

	// SetAspect sets the aspect ratio and recomputes matrices.
	SetAspect(aspect float32)

	// SetController attaches a CameraController.
	SetController(ctrl CameraController)
}

var _ Camera = &cameraImpl{}

// NewCamera creates a camera with a 50 degree lens. A controller must be
// attached via SetController or WithController before matrices are computed.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:                   &sync.Mutex{},
		up:                   math32.Vec3(0, 1, 0),
		fov:                  math32.DegToRad(50),
		aspect:               16.0 / 9.0,
		near:                 0.1,
		far:                  200.0,
		viewMatrix:           common.Identity4(),
		projectionMatrix:     common.Identity4(),
		viewProjectionMatrix: common.Identity4(),
		inverseViewProj:      common.Identity4(),
	}
	for _, option := range options {
		option(c)
	}
	c.updateMatrices()
	return c
}

func (c *cameraImpl) Fov() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *cameraImpl) FovDegrees() float32 {
	return math32.RadToDeg(c.Fov())
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *cameraImpl) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *cameraImpl) ViewMatrix() common.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() common.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() common.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjectionMatrix
}

func (c *cameraImpl) InverseViewProjectionMatrix() common.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inverseViewProj
}

func (c *cameraImpl) Position() math32.Vector3 {
	ctrl := c.Controller()
	if ctrl == nil {
		return math32.Vector3{}
	}
	return ctrl.Position()
}

func (c *cameraImpl) Target() math32.Vector3 {
	ctrl := c.Controller()
	if ctrl == nil {
		return math32.Vector3{}
	}
	return ctrl.Target()
}

func (c *cameraImpl) Controller() CameraController {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.controller
}

func (c *cameraImpl) Update() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.updateMatrices()
}

func (c *cameraImpl) SetFov(fov float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fov = fov
	c.updateMatrices()
}

func (c *cameraImpl) SetAspect(aspect float32) {
	if !(aspect > 0) {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aspect = aspect
	c.updateMatrices()
}

func (c *cameraImpl) SetController(ctrl CameraController) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.controller = ctrl
	c.updateMatrices()
}

// updateMatrices recalculates every matrix from the controller pose.
// No-op when no controller is attached. Caller must hold the mutex.
func (c *cameraImpl) updateMatrices() {
	if c.controller == nil {
		return
	}
	c.viewMatrix = common.LookAt(c.controller.Position(), c.controller.Target(), c.up)
	c.projectionMatrix = common.Perspective(c.fov, c.aspect, c.near, c.far)
	c.viewProjectionMatrix = c.projectionMatrix.Mul(c.viewMatrix)
	if inv, ok := c.viewProjectionMatrix.Inverse(); ok {
		c.inverseViewProj = inv
	}
}
