package light

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// GPULightUniformSource is the canonical WGSL definition of the LightUniform struct.
// Matches GPULightUniform layout exactly (48 bytes).
//
//go:embed assets/light_uniform.wgsl
var GPULightUniformSource string

// GPULightUniform carries one directional light and one ambient term to the fragment shaders.
// Size: 48 bytes (three vec3<f32> each paired with a trailing f32).
type GPULightUniform struct {
	DirectionalColor     [3]float32 // offset  0
	DirectionalIntensity float32    // offset 12
	DirectionalPosition  [3]float32 // offset 16
	_pad                 float32    // offset 28
	AmbientColor         [3]float32 // offset 32
	AmbientIntensity     float32    // offset 44
}

// NewLightUniform packs lights into a GPULightUniform. The first enabled light of each type wins;
// a missing type contributes zero intensity.
//
// Parameters:
//   - lights: the scene lights in registration order
//
// Returns:
//   - GPULightUniform: the packed uniform
func NewLightUniform(lights ...Light) GPULightUniform {
	var u GPULightUniform
	var haveDirectional, haveAmbient bool
	for _, l := range lights {
		if l == nil || !l.Enabled() {
			continue
		}
		switch l.Type() {
		case LightTypeDirectional:
			if haveDirectional {
				continue
			}
			haveDirectional = true
			u.DirectionalColor = l.Color()
			u.DirectionalIntensity = l.Intensity()
			u.DirectionalPosition = l.Position()
		case LightTypeAmbient:
			if haveAmbient {
				continue
			}
			haveAmbient = true
			u.AmbientColor = l.Color()
			u.AmbientIntensity = l.Intensity()
		}
	}
	return u
}

// Size returns the size of the GPULightUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (48)
func (g *GPULightUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPULightUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 48-byte buffer ready for GPU upload
func (g *GPULightUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	put := func(off int, v float32) {
		binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(v))
	}
	for i := range 3 {
		put(i*4, g.DirectionalColor[i])
		put(16+i*4, g.DirectionalPosition[i])
		put(32+i*4, g.AmbientColor[i])
	}
	put(12, g.DirectionalIntensity)
	put(44, g.AmbientIntensity)
	return buf
}
