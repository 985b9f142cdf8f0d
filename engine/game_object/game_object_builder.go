package game_object

import (
	"time"

	"github.com/Carmen-Shannon/oxy-scroll/engine/model"
	"github.com/Carmen-Shannon/oxy-scroll/engine/renderer/material"
	"github.com/go-gl/mathgl/mgl32"
)

// GameObjectBuilderOption configures a GameObject in NewGameObject, NewTorus or NewBox.
type GameObjectBuilderOption func(*gameObject)

// WithID sets the id the scene and groups look the object up by. Ids must be unique within a scene.
func WithID(id uint64) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.id = id
	}
}

// WithName sets the debug name used for the object's GPU resource labels.
func WithName(name string) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.name = name
	}
}

// WithEnabled starts the object hidden when false. Disabled objects still receive Update.
func WithEnabled(enabled bool) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.enabled.Store(enabled)
	}
}

// WithModel sets the mesh drawn for this object.
//
// Parameters:
//   - m: mesh with CPU-side vertices; GPU buffers are made when the scene gets a renderer
//
// Returns:
//   - GameObjectBuilderOption: option function to apply
func WithModel(m model.Model) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.mdl = m
	}
}

// WithMaterial sets the Material for this GameObject.
func WithMaterial(m material.Material) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.mat = m
	}
}

// WithPosition places the object relative to its parent group, or to the world without one.
func WithPosition(x, y, z float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.transform.Position = mgl32.Vec3{x, y, z}
	}
}

// WithRotation sets the initial Euler rotation of the GameObject in radians.
func WithRotation(rx, ry, rz float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.transform.Rotation = mgl32.Vec3{rx, ry, rz}
	}
}

// WithScale sets the initial scale of the GameObject.
func WithScale(sx, sy, sz float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.transform.Scale = mgl32.Vec3{sx, sy, sz}
	}
}

// WithClock replaces the time source used by tweens. Intended for tests.
func WithClock(now func() time.Time) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.now = now
	}
}
