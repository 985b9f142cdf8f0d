package camera

type CameraBuilderOption func(*cameraImpl)

// WithFov overrides the vertical field of view, in radians.
func WithFov(fov float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.fov = fov
	}
}

// WithAspect sets width / height of the viewport. Non-positive values keep the default.
func WithAspect(aspect float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		if aspect > 0 {
			c.aspect = aspect
		}
	}
}

// WithClipPlanes sets the near and far clip distances. The pair is ignored unless 0 < near < far.
//
// Parameters:
//   - near: distance to the near plane
//   - far: distance to the far plane
//
// Returns:
//   - CameraBuilderOption: option function to apply
func WithClipPlanes(near, far float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		if near > 0 && far > near {
			c.near, c.far = near, far
		}
	}
}

// WithController hands the camera's eye and target to ctrl. The view matrix is rebuilt from it on every Update.
func WithController(ctrl CameraController) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.controller = ctrl
	}
}
