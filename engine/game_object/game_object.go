package game_object

import (
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/oxy-scroll/common"
	"github.com/Carmen-Shannon/oxy-scroll/engine/camera"
	"github.com/Carmen-Shannon/oxy-scroll/engine/model"
	"github.com/Carmen-Shannon/oxy-scroll/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-scroll/engine/renderer/material"
	"github.com/go-gl/mathgl/mgl32"
)

// objectCount hands out IDs to objects built without WithID.
var objectCount atomic.Uint64

// Renderable is anything placed in the scene whose transform is driven each frame.
type Renderable interface {
	// TransformHandle returns the mutable transform of this renderable.
	TransformHandle() *Transform

	// OnFrame is called once per frame after the camera has moved.
	//
	// Parameters:
	//   - cam: the camera for this frame
	OnFrame(cam camera.Camera)
}

type gameObject struct {
	id        uint64
	name      string
	enabled   atomic.Bool
	transform *Transform
	mdl       model.Model
	mat       material.Material
	uniform   GPUObjectUniform
	now       func() time.Time

	objectProvider bind_group_provider.BindGroupProvider
}

// GameObject is a drawable Renderable: a mesh, a material and a per-object uniform.
type GameObject interface {
	Renderable

	// ID returns the object's unique identifier.
	//
	// Returns:
	//   - uint64: the object ID
	ID() uint64

	// Name returns the debug name of the object.
	Name() string

	// Enabled returns whether this object is enabled for rendering.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// SetEnabled sets whether the object is enabled for rendering.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)

	// Model returns the mesh drawn for this object.
	Model() model.Model

	// Material returns the material drawn with this object.
	Material() material.Material

	// Uniform returns the uniform computed by the most recent OnFrame.
	//
	// Returns:
	//   - GPUObjectUniform: model, model-view-projection and normal matrices
	Uniform() GPUObjectUniform

	// BindGroupProvider returns the provider for the per-object uniform buffer.
	BindGroupProvider() bind_group_provider.BindGroupProvider
}

var _ GameObject = &gameObject{}

// NewGameObject creates a new enabled GameObject configured with the given options.
// Without WithModel the object has no mesh and is skipped by the scene.
//
// Parameters:
//   - options: functional options to configure the object
//
// Returns:
//   - GameObject: the newly created object
func NewGameObject(options ...GameObjectBuilderOption) GameObject {
	return newGameObject(options...)
}

func newGameObject(options ...GameObjectBuilderOption) *gameObject {
	obj := &gameObject{
		id:        objectCount.Add(1),
		name:      "object",
		transform: NewTransform(mgl32.Vec3{}),
		now:       time.Now,
	}
	obj.enabled.Store(true)
	for _, option := range options {
		option(obj)
	}
	if obj.mat == nil {
		obj.mat = material.NewMaterial(material.WithName(obj.name))
	}
	obj.objectProvider = bind_group_provider.NewBindGroupProvider(obj.name + "_object")
	obj.uniform = obj.computeUniform(nil)
	return obj
}

func (g *gameObject) ID() uint64 {
	return g.id
}

func (g *gameObject) Name() string {
	return g.name
}

func (g *gameObject) Enabled() bool {
	return g.enabled.Load()
}

func (g *gameObject) SetEnabled(enabled bool) {
	g.enabled.Store(enabled)
}

func (g *gameObject) Model() model.Model {
	return g.mdl
}

func (g *gameObject) Material() material.Material {
	return g.mat
}

func (g *gameObject) TransformHandle() *Transform {
	return g.transform
}

func (g *gameObject) Uniform() GPUObjectUniform {
	return g.uniform
}

func (g *gameObject) BindGroupProvider() bind_group_provider.BindGroupProvider {
	return g.objectProvider
}

func (g *gameObject) OnFrame(cam camera.Camera) {
	g.uniform = g.computeUniform(cam)
}

// computeUniform derives the object uniform from the current world matrix.
// A nil camera leaves the view-projection as identity.
func (g *gameObject) computeUniform(cam camera.Camera) GPUObjectUniform {
	world := g.transform.WorldMatrix()
	mvp := world
	if cam != nil {
		mvp = cam.ViewProjectionMatrix().Mul4(world)
	}
	return GPUObjectUniform{
		Model:  world,
		MVP:    mvp,
		Normal: common.NormalMatrix(world),
	}
}
