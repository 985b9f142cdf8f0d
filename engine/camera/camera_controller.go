package camera

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// CameraController owns the camera's positional state. The Camera reads from it each Update
// and derives its matrices; whatever drives the camera (an animation policy, input handling)
// writes to it.
type CameraController interface {
	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - x, y, z: world-space camera position
	Position() (x, y, z float32)

	// Target returns the look-at point.
	//
	// Returns:
	//   - x, y, z: world-space target position
	Target() (x, y, z float32)

	// SetPosition sets the camera's world-space position directly.
	//
	// Parameters:
	//   - x, y, z: world-space coordinates
	SetPosition(x, y, z float32)

	// SetTarget sets the look-at point.
	//
	// Parameters:
	//   - x, y, z: world-space coordinates
	SetTarget(x, y, z float32)
}

// rigController is a free camera rig: a position and a look-at point with no constraints.
type rigController struct {
	mu *sync.Mutex

	position mgl32.Vec3
	target   mgl32.Vec3
}

var _ CameraController = &rigController{}

// NewCameraController creates a rig controller at the origin looking down -Z.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(options ...CameraControllerOption) CameraController {
	cc := &rigController{
		mu:       &sync.Mutex{},
		position: mgl32.Vec3{0, 0, 0},
		target:   mgl32.Vec3{0, 0, -1},
	}
	for _, option := range options {
		option(cc)
	}
	return cc
}

func (cc *rigController) Position() (x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.position[0], cc.position[1], cc.position[2]
}

func (cc *rigController) Target() (x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.target[0], cc.target[1], cc.target[2]
}

func (cc *rigController) SetPosition(x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.position = mgl32.Vec3{x, y, z}
}

func (cc *rigController) SetTarget(x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.target = mgl32.Vec3{x, y, z}
}
