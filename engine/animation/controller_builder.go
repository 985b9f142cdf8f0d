package animation

import (
	"github.com/Carmen-Shannon/oxy-scroll/engine/camera"
	"github.com/Carmen-Shannon/oxy-scroll/engine/game_object"
)

// ControllerBuilderOption is a functional option for configuring a Controller during construction.
type ControllerBuilderOption func(*controller)

// WithCamera sets the camera moved by the controller. The camera needs a CameraController
// for Advance to move it.
//
// Parameters:
//   - cam: the camera to drive
//
// Returns:
//   - ControllerBuilderOption: functional option to set the camera
func WithCamera(cam camera.Camera) ControllerBuilderOption {
	return func(c *controller) {
		c.cam = cam
	}
}

// WithGroup sets the group whose children spin and which tilts as a whole.
func WithGroup(g *game_object.Group) ControllerBuilderOption {
	return func(c *controller) {
		c.group = g
	}
}
