package common

import (
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// clipDepthRemap converts an OpenGL style clip volume (z in [-w, w]) into the
// WebGPU clip volume (z in [0, w]). Column-major.
var clipDepthRemap = mgl32.Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 0.5, 0,
	0, 0, 0.5, 1,
}

// SliceToBytes converts any slice to a byte slice for GPU buffer uploads.
// Uses unsafe pointer operations to create a view into the original data.
// WARNING: The returned slice shares memory with the input - do not modify.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), int(size)*len(data))
}

// StructToBytes reinterprets a pointer to a struct as a raw byte slice using unsafe.
//
// Parameters:
//   - v: pointer to the struct to reinterpret
//
// Returns:
//   - []byte: byte slice view of the struct's memory
func StructToBytes[T any](v *T) []byte {
	size := unsafe.Sizeof(*v)
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), int(size))
}

// Perspective creates a right-handed perspective projection matrix for the WebGPU
// clip space, where depth runs from 0 at the near plane to 1 at the far plane.
//
// Parameters:
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
//
// Returns:
//   - mgl32.Mat4: the column-major projection matrix
func Perspective(fovY, aspect, near, far float32) mgl32.Mat4 {
	return clipDepthRemap.Mul4(mgl32.Perspective(fovY, aspect, near, far))
}

// LookAt creates a view matrix that places the eye at eye and points it at center.
//
// Parameters:
//   - eye: camera position in world space
//   - center: point the camera looks at
//   - up: up vector, typically (0, 1, 0)
//
// Returns:
//   - mgl32.Mat4: the column-major view matrix
func LookAt(eye, center, up mgl32.Vec3) mgl32.Mat4 {
	if eye.ApproxEqual(center) {
		return mgl32.Translate3D(-eye.X(), -eye.Y(), -eye.Z())
	}
	return mgl32.LookAtV(eye, center, up)
}

// ComposeTRS builds a model matrix from translation, Euler rotation and scale.
// Rotation is applied in X, then Y, then Z intrinsic order (R = Rx * Ry * Rz),
// which matches the default Euler order used by most scene graphs.
//
// Parameters:
//   - position: translation in parent space
//   - rotation: Euler angles in radians around X, Y and Z
//   - scale: scale factors along each axis
//
// Returns:
//   - mgl32.Mat4: the column-major model matrix
func ComposeTRS(position, rotation, scale mgl32.Vec3) mgl32.Mat4 {
	r := mgl32.HomogRotate3DX(rotation.X()).
		Mul4(mgl32.HomogRotate3DY(rotation.Y())).
		Mul4(mgl32.HomogRotate3DZ(rotation.Z()))
	return mgl32.Translate3D(position.X(), position.Y(), position.Z()).
		Mul4(r).
		Mul4(mgl32.Scale3D(scale.X(), scale.Y(), scale.Z()))
}

// NormalMatrix returns the inverse-transpose of the model matrix, used to move
// normals into world space under non-uniform scale. Singular input yields identity.
func NormalMatrix(model mgl32.Mat4) mgl32.Mat4 {
	if model.Det() == 0 {
		return mgl32.Ident4()
	}
	return model.Inv().Transpose()
}

// LerpVec3 moves a toward b by fraction t.
func LerpVec3(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

// OrDefault returns v unless it is the zero value of T, in which case fallback is returned.
// Staging structs leave fields zeroed to mean "use the renderer default".
func OrDefault[T comparable](v, fallback T) T {
	var zero T
	if v == zero {
		return fallback
	}
	return v
}
