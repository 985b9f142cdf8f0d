package game_object

import (
	"github.com/Carmen-Shannon/oxy-scroll/engine/camera"
	"github.com/go-gl/mathgl/mgl32"
)

// Group is a Renderable that parents other renderables under one shared transform.
// Children keep their insertion order, which decides their spin direction.
type Group struct {
	transform *Transform
	children  []Renderable
}

var _ Renderable = &Group{}

// NewGroup creates an empty group at the origin.
func NewGroup() *Group {
	return &Group{transform: NewTransform(mgl32.Vec3{})}
}

// Add appends children and parents their transforms to the group.
//
// Parameters:
//   - children: the renderables to add, in order
func (g *Group) Add(children ...Renderable) {
	for _, c := range children {
		if c == nil {
			continue
		}
		c.TransformHandle().SetParent(g.transform)
		g.children = append(g.children, c)
	}
}

// Children returns the group's children in insertion order.
func (g *Group) Children() []Renderable {
	return g.children
}

func (g *Group) TransformHandle() *Transform {
	return g.transform
}

// OnFrame forwards the frame to every child.
func (g *Group) OnFrame(cam camera.Camera) {
	for _, c := range g.children {
		c.OnFrame(cam)
	}
}
