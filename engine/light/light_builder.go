package light

import "github.com/go-gl/mathgl/mgl32"

// LightBuilderOption is a functional option for configuring a Light during construction.
type LightBuilderOption func(*lightImpl)

// WithPosition sets the world-space position of the light.
//
// Parameters:
//   - x, y, z: the position components
//
// Returns:
//   - LightBuilderOption: functional option to set the position
func WithPosition(x, y, z float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.position = mgl32.Vec3{x, y, z}
	}
}

// WithColor sets the RGB color of the light.
//
// Parameters:
//   - r, g, b: color channels in [0, 1]
//
// Returns:
//   - LightBuilderOption: functional option to set the color
func WithColor(r, g, b float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.color = mgl32.Vec3{r, g, b}
	}
}

// WithIntensity sets the scalar intensity multiplier.
func WithIntensity(intensity float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.intensity = intensity
	}
}

// WithEnabled sets whether the light starts enabled.
func WithEnabled(enabled bool) LightBuilderOption {
	return func(l *lightImpl) {
		l.enabled.Store(enabled)
	}
}
