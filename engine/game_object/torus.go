package game_object

import (
	"time"

	"github.com/Carmen-Shannon/oxy-scroll/common"
	"github.com/Carmen-Shannon/oxy-scroll/engine/camera"
	"github.com/Carmen-Shannon/oxy-scroll/engine/model"
	"github.com/Carmen-Shannon/oxy-scroll/engine/renderer/material"
)

const (
	// SlideTargetX is where Slide moves the torus along X.
	SlideTargetX float32 = 5

	// SlideDuration is how long the slide takes.
	SlideDuration = 2000 * time.Millisecond
)

// TorusColor is the solid color of the torus material.
var TorusColor = [3]float32{0.2, 0.6, 1}

type torus struct {
	*gameObject
	slide *tween
}

// Torus is the wavy ring. It can slide along X on demand.
type Torus interface {
	GameObject

	// Slide starts easing the torus from its current X to SlideTargetX.
	// Calling it mid-slide restarts from the current X.
	Slide()

	// Sliding reports whether a slide is in progress.
	Sliding() bool
}

var _ Torus = &torus{}

// NewTorus creates a torus with the default geometry and the solid blue material drawn by the wave shader.
// Options are applied after the defaults.
//
// Parameters:
//   - options: functional options to configure the object
//
// Returns:
//   - Torus: the newly created torus
func NewTorus(options ...GameObjectBuilderOption) Torus {
	defaults := []GameObjectBuilderOption{
		WithName("torus"),
		WithModel(model.NewTorus(
			model.DefaultTorusRadius,
			model.DefaultTorusTube,
			model.DefaultTorusRadialSegments,
			model.DefaultTorusTubularSegments,
		)),
		WithMaterial(material.NewMaterial(
			material.WithName("torus"),
			material.WithBaseColor(TorusColor[0], TorusColor[1], TorusColor[2]),
		)),
	}
	return &torus{gameObject: newGameObject(append(defaults, options...)...)}
}

func (t *torus) Slide() {
	t.slide = &tween{
		from:     t.transform.Position.X(),
		to:       SlideTargetX,
		start:    t.now(),
		duration: SlideDuration,
		ease:     common.EaseInOutQuad,
	}
}

func (t *torus) Sliding() bool {
	return t.slide != nil
}

func (t *torus) OnFrame(cam camera.Camera) {
	if t.slide != nil {
		x, done := t.slide.at(t.now())
		t.transform.Position[0] = x
		if done {
			t.slide = nil
		}
	}
	t.gameObject.OnFrame(cam)
}
