package camera

import (
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-scroll/common"
	"github.com/Carmen-Shannon/oxy-scroll/engine/renderer/bind_group_provider"
	"github.com/go-gl/mathgl/mgl32"
)

// cameraCount numbers bind group labels.
var cameraCount atomic.Uint64

// Default perspective settings.
const (
	DefaultFovDegrees float32 = 75
	DefaultNear       float32 = 0.1
	DefaultFar        float32 = 100
)

type cameraImpl struct {
	mu *sync.Mutex

	up mgl32.Vec3

	fov    float32
	aspect float32
	near   float32
	far    float32

	viewMatrix           mgl32.Mat4
	projectionMatrix     mgl32.Mat4
	viewProjectionMatrix mgl32.Mat4

	controller        CameraController
	bindGroupProvider bind_group_provider.BindGroupProvider
}

// Camera is a perspective lens looking from its controller's position at the controller's target.
// The scroll animation moves the controller and Update folds that into the matrices once per frame.
type Camera interface {
	// Fov is vertical, in radians.
	Fov() float32
	Aspect() float32
	Near() float32
	Far() float32

	// Position returns the controller's current position, or the zero vector without a controller.
	//
	// Returns:
	//   - mgl32.Vec3: world-space camera position
	Position() mgl32.Vec3

	// ViewMatrix returns the current view matrix (column-major).
	ViewMatrix() mgl32.Mat4

	// ProjectionMatrix returns the current projection matrix (column-major, WebGPU depth range).
	ProjectionMatrix() mgl32.Mat4

	// ViewProjectionMatrix returns the current combined view-projection matrix (column-major).
	//
	// Returns:
	//   - mgl32.Mat4: projection * view
	ViewProjectionMatrix() mgl32.Mat4

	// Uniform packs the current view-projection and position for GPU upload.
	//
	// Returns:
	//   - GPUCameraUniform: the camera uniform data
	Uniform() GPUCameraUniform

	// Controller returns the attached CameraController, or nil.
	Controller() CameraController

	// BindGroupProvider holds the uniform buffer bound at group 0.
	BindGroupProvider() bind_group_provider.BindGroupProvider

	// Update rebuilds the view from the controller. Without a controller it does nothing.
	Update()

	// SetFov changes the vertical field of view, in radians.
	SetFov(fov float32)

	// SetAspect follows window resizes. Non-positive values, seen while minimized, are ignored.
	SetAspect(aspect float32)

	// SetController swaps the controller and rebuilds the view from it.
	SetController(ctrl CameraController)
}

var _ Camera = &cameraImpl{}

// NewCamera returns a camera with a 75 degree field of view and clip planes at 0.1 and 100.
// Position reads as the origin until a controller is attached.
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:                   &sync.Mutex{},
		up:                   mgl32.Vec3{0, 1, 0},
		fov:                  mgl32.DegToRad(DefaultFovDegrees),
		aspect:               1.0,
		near:                 DefaultNear,
		far:                  DefaultFar,
		viewMatrix:           mgl32.Ident4(),
		projectionMatrix:     mgl32.Ident4(),
		viewProjectionMatrix: mgl32.Ident4(),
		bindGroupProvider: bind_group_provider.NewBindGroupProvider(
			"camera_" + strconv.FormatUint(cameraCount.Load(), 10),
		),
	}
	for _, option := range options {
		option(c)
	}
	c.updateMatrices()
	cameraCount.Add(1)
	return c
}

func (c *cameraImpl) Fov() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
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

func (c *cameraImpl) Position() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.controller == nil {
		return mgl32.Vec3{}
	}
	x, y, z := c.controller.Position()
	return mgl32.Vec3{x, y, z}
}

func (c *cameraImpl) ViewMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjectionMatrix
}

func (c *cameraImpl) Uniform() GPUCameraUniform {
	c.mu.Lock()
	defer c.mu.Unlock()
	u := GPUCameraUniform{ViewProj: c.viewProjectionMatrix}
	if c.controller != nil {
		u.CameraPosition[0], u.CameraPosition[1], u.CameraPosition[2] = c.controller.Position()
	}
	return u
}

func (c *cameraImpl) SetFov(fov float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fov = fov
	c.updateMatrices()
}

func (c *cameraImpl) SetAspect(aspect float32) {
	if aspect <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aspect = aspect
	c.updateMatrices()
}

func (c *cameraImpl) Controller() CameraController {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.controller
}

func (c *cameraImpl) Update() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.controller == nil {
		return
	}
	c.updateMatrices()
}

func (c *cameraImpl) SetController(ctrl CameraController) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.controller = ctrl
	c.updateMatrices()
}

func (c *cameraImpl) BindGroupProvider() bind_group_provider.BindGroupProvider {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.bindGroupProvider
}

// updateMatrices recalculates the view, projection and view-projection matrices.
// The projection is always refreshed; the view needs a controller. Caller must hold the mutex.
func (c *cameraImpl) updateMatrices() {
	c.projectionMatrix = common.Perspective(c.fov, c.aspect, c.near, c.far)

	if c.controller != nil {
		px, py, pz := c.controller.Position()
		tx, ty, tz := c.controller.Target()
		c.viewMatrix = common.LookAt(mgl32.Vec3{px, py, pz}, mgl32.Vec3{tx, ty, tz}, c.up)
	}

	c.viewProjectionMatrix = c.projectionMatrix.Mul4(c.viewMatrix)
}
