package camera

import "github.com/go-gl/mathgl/mgl32"

// CameraControllerOption is a functional option for configuring a CameraController.
type CameraControllerOption func(*rigController)

// WithPosition sets the initial camera position.
//
// Parameters:
//   - x, y, z: world-space coordinates of the camera
//
// Returns:
//   - CameraControllerOption: functional option to set the position
func WithPosition(x, y, z float32) CameraControllerOption {
	return func(cc *rigController) {
		cc.position = mgl32.Vec3{x, y, z}
	}
}

// WithTarget sets the initial look-at point.
//
// Parameters:
//   - x, y, z: world-space coordinates of the target
//
// Returns:
//   - CameraControllerOption: functional option to set the target position
func WithTarget(x, y, z float32) CameraControllerOption {
	return func(cc *rigController) {
		cc.target = mgl32.Vec3{x, y, z}
	}
}
