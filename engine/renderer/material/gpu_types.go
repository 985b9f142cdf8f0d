package material

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUMaterialUniformSource is the canonical WGSL definition of the MaterialUniform struct.
// Matches GPUMaterialUniform layout exactly (16 bytes).
//
//go:embed assets/material_uniform.wgsl
var GPUMaterialUniformSource string

// GPUMaterialUniform is the GPU-aligned uniform for the lit fragment shaders.
// For textured materials the base color multiplies the sampled texel.
// Size: 16 bytes (one vec4<f32>).
type GPUMaterialUniform struct {
	BaseColor [4]float32 // offset 0: RGBA base color (16 bytes)
}

// Size returns the size of the GPUMaterialUniform struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUMaterialUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUMaterialUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 16-byte buffer ready for GPU upload.
func (g *GPUMaterialUniform) Marshal() []byte {
	buf := make([]byte, 16)
	for i, c := range g.BaseColor {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(c))
	}
	return buf
}
