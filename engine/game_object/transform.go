package game_object

import (
	"github.com/Carmen-Shannon/oxy-scroll/common"
	"github.com/go-gl/mathgl/mgl32"
)

// Transform is a position, Euler rotation (radians, applied X then Y then Z) and scale,
// optionally nested under a parent. Transforms are mutated on the window thread only.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Vec3
	Scale    mgl32.Vec3

	parent *Transform
}

// NewTransform returns an identity transform at position.
func NewTransform(position mgl32.Vec3) *Transform {
	return &Transform{
		Position: position,
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

// SetPosition moves the transform in its parent's space.
func (t *Transform) SetPosition(x, y, z float32) {
	t.Position = mgl32.Vec3{x, y, z}
}

// SetRotationX sets the rotation around the X axis, leaving Y and Z untouched.
func (t *Transform) SetRotationX(angle float32) {
	t.Rotation[0] = angle
}

// SetRotationZ sets the rotation around the Z axis, leaving X and Y untouched.
func (t *Transform) SetRotationZ(angle float32) {
	t.Rotation[2] = angle
}

// Parent returns the parent transform, or nil for a root.
func (t *Transform) Parent() *Transform {
	return t.parent
}

// SetParent nests t under parent. Passing nil detaches it.
func (t *Transform) SetParent(parent *Transform) {
	t.parent = parent
}

// LocalMatrix returns the transform relative to its parent.
//
// Returns:
//   - mgl32.Mat4: T * R * S
func (t *Transform) LocalMatrix() mgl32.Mat4 {
	return common.ComposeTRS(t.Position, t.Rotation, t.Scale)
}

// WorldMatrix returns the transform in world space by walking the parent chain.
//
// Returns:
//   - mgl32.Mat4: parent world matrix * local matrix
func (t *Transform) WorldMatrix() mgl32.Mat4 {
	m := t.LocalMatrix()
	for p := t.parent; p != nil; p = p.parent {
		m = p.LocalMatrix().Mul4(m)
	}
	return m
}
