package light

import (
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl32"
)

// LightType identifies the kind of light source.
type LightType int

const (
	// LightTypeDirectional represents a distant light shining from its position toward the origin.
	// It has no distance attenuation.
	LightTypeDirectional LightType = iota

	// LightTypeAmbient represents uniform light from every direction. Position is ignored.
	LightTypeAmbient
)

func (t LightType) String() string {
	switch t {
	case LightTypeDirectional:
		return "directional"
	case LightTypeAmbient:
		return "ambient"
	default:
		return "unknown"
	}
}

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	lightType LightType
	position  mgl32.Vec3
	color     mgl32.Vec3
	intensity float32
	enabled   atomic.Bool
}

// Light defines the interface for a light source in the scene.
//
// Lights are scene-level entities packed into a single GPULightUniform each frame.
type Light interface {
	// Type returns the kind of light source.
	//
	// Returns:
	//   - LightType: the light type (directional or ambient)
	Type() LightType

	// Position returns the world-space position of the light. Meaningless for ambient lights.
	//
	// Returns:
	//   - mgl32.Vec3: position as (x, y, z)
	Position() mgl32.Vec3

	// Color returns the RGB color of the light.
	Color() mgl32.Vec3

	// Intensity returns the scalar intensity multiplier for the light.
	Intensity() float32

	// Enabled returns whether this light contributes to shading.
	Enabled() bool

	// SetPosition moves the light.
	SetPosition(x, y, z float32)

	// SetIntensity sets the scalar intensity multiplier.
	SetIntensity(intensity float32)

	// SetEnabled toggles the light's contribution.
	SetEnabled(enabled bool)
}

var _ Light = &lightImpl{}

// NewLight creates a white, enabled light of the given type with intensity 1.
//
// Parameters:
//   - lightType: the kind of light
//   - options: functional options to configure the light
//
// Returns:
//   - Light: the new light
func NewLight(lightType LightType, options ...LightBuilderOption) Light {
	l := &lightImpl{
		lightType: lightType,
		color:     mgl32.Vec3{1, 1, 1},
		intensity: 1,
	}
	l.enabled.Store(true)
	for _, opt := range options {
		opt(l)
	}
	return l
}

func (l *lightImpl) Type() LightType {
	return l.lightType
}

func (l *lightImpl) Position() mgl32.Vec3 {
	return l.position
}

func (l *lightImpl) Color() mgl32.Vec3 {
	return l.color
}

func (l *lightImpl) Intensity() float32 {
	return l.intensity
}

func (l *lightImpl) Enabled() bool {
	return l.enabled.Load()
}

func (l *lightImpl) SetPosition(x, y, z float32) {
	l.position = mgl32.Vec3{x, y, z}
}

func (l *lightImpl) SetIntensity(intensity float32) {
	l.intensity = intensity
}

func (l *lightImpl) SetEnabled(enabled bool) {
	l.enabled.Store(enabled)
}
