package scene

import (
	"github.com/Carmen-Shannon/oxy-scroll/engine/camera"
	"github.com/Carmen-Shannon/oxy-scroll/engine/game_object"
	"github.com/Carmen-Shannon/oxy-scroll/engine/light"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithName sets the scene's identifier, which prefixes its bind group labels.
//
// Parameters:
//   - name: the scene name
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithName(name string) SceneBuilderOption {
	return func(s *scene) {
		s.name = name
	}
}

// WithCamera sets the camera the scene renders from.
func WithCamera(cam camera.Camera) SceneBuilderOption {
	return func(s *scene) {
		s.cam = cam
	}
}

// WithLights appends lights to the scene. The first enabled light of each type is uploaded.
//
// Parameters:
//   - lights: the lights to add
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithLights(lights ...light.Light) SceneBuilderOption {
	return func(s *scene) {
		for _, l := range lights {
			if l != nil {
				s.lights = append(s.lights, l)
			}
		}
	}
}

// WithObjects adds initial top-level renderables to the scene. Groups are walked for drawables.
//
// Parameters:
//   - objects: the renderables to add
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithObjects(objects ...game_object.Renderable) SceneBuilderOption {
	return func(s *scene) {
		for _, obj := range objects {
			if obj == nil {
				continue
			}
			s.roots = append(s.roots, obj)
			s.drawables = append(s.drawables, collectDrawables(obj)...)
		}
	}
}
