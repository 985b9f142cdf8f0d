package game_object

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// GPUObjectUniformSource is the canonical WGSL definition of the ObjectUniform struct.
// Matches GPUObjectUniform layout exactly (192 bytes).
//
//go:embed assets/object_uniform.wgsl
var GPUObjectUniformSource string

// GPUObjectUniform is the per-object uniform uploaded before each draw.
// Size: 192 bytes (three mat4x4<f32>).
type GPUObjectUniform struct {
	Model  mgl32.Mat4 // offset   0: world matrix
	MVP    mgl32.Mat4 // offset  64: view-projection * world
	Normal mgl32.Mat4 // offset 128: inverse-transpose of the world matrix
}

// Size returns the size of the GPUObjectUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (192)
func (g *GPUObjectUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUObjectUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUObjectUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	for m, mat := range [3]mgl32.Mat4{g.Model, g.MVP, g.Normal} {
		for i := range 16 {
			binary.LittleEndian.PutUint32(buf[m*64+i*4:], math.Float32bits(mat[i]))
		}
	}
	return buf
}
