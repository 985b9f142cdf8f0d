package animation

import (
	"log"

	"github.com/Carmen-Shannon/oxy-scroll/engine/camera"
	"github.com/Carmen-Shannon/oxy-scroll/engine/game_object"
)

type controller struct {
	state       State
	cam         camera.Camera
	group       *game_object.Group
	transitions int
}

// Controller owns the animation State. Scroll events and frame ticks are both delivered to it
// on the window thread, so a scroll is fully applied before the next Advance.
type Controller interface {
	// HandleScroll maps a scroll position to new targets and runs the mode state machine.
	// On a mode change the camera's current position becomes the new anchor.
	//
	// Parameters:
	//   - offset: vertical scroll offset in pixels
	//   - scrollHeight: total document height in pixels
	//   - viewportHeight: visible height in pixels
	//
	// Returns:
	//   - ScrollTargets: the mapped targets
	HandleScroll(offset, scrollHeight, viewportHeight float32) ScrollTargets

	// Advance runs one frame of animation: eases rotation and tilt, moves the camera along
	// the active path, aims it at the origin, spins the group's children and tilts the group.
	Advance()

	// State returns a copy of the current animation state.
	State() State

	// Camera returns the driven camera.
	Camera() camera.Camera

	// Group returns the driven group, or nil.
	Group() *game_object.Group

	// Transitions returns how many mode changes have fired.
	Transitions() int
}

var _ Controller = &controller{}

// NewController creates a Controller in Orbit mode. Without WithCamera a camera is created at
// InitialCameraPosition. The initial anchor is the camera's position at construction.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - Controller: the new controller
func NewController(options ...ControllerBuilderOption) Controller {
	c := &controller{}
	for _, opt := range options {
		opt(c)
	}
	if c.cam == nil {
		p := InitialCameraPosition
		c.cam = camera.NewCamera(camera.WithController(camera.NewCameraController(
			camera.WithPosition(p.X(), p.Y(), p.Z()),
			camera.WithTarget(LookTarget.X(), LookTarget.Y(), LookTarget.Z()),
		)))
	}
	c.state = NewState(c.cam.Position())
	return c
}

func (c *controller) HandleScroll(offset, scrollHeight, viewportHeight float32) ScrollTargets {
	targets := MapScroll(offset, scrollHeight, viewportHeight)
	if c.state.ApplyScroll(targets, c.cam.Position()) {
		c.transitions++
		log.Printf("[Animation] mode -> %s at ratio %.3f, anchor %v", c.state.Mode, targets.Ratio, c.state.CameraAnchor)
	}
	return targets
}

func (c *controller) Advance() {
	c.state.Smooth()

	position, anchor := NextCameraPosition(c.state)
	c.state.CameraAnchor = anchor

	if ctrl := c.cam.Controller(); ctrl != nil {
		ctrl.SetPosition(position.X(), position.Y(), position.Z())
		ctrl.SetTarget(LookTarget.X(), LookTarget.Y(), LookTarget.Z())
	}
	c.cam.Update()

	if c.group == nil {
		return
	}
	for i, child := range c.group.Children() {
		child.TransformHandle().SetRotationZ(SpinAngle(i, c.state.RotationCurrent))
	}
	c.group.TransformHandle().SetRotationX(c.state.TiltCurrent)
}

func (c *controller) State() State {
	return c.state
}

func (c *controller) Camera() camera.Camera {
	return c.cam
}

func (c *controller) Group() *game_object.Group {
	return c.group
}

func (c *controller) Transitions() int {
	return c.transitions
}
