package model

import (
	"github.com/Carmen-Shannon/oxy-scroll/common"
	"github.com/Carmen-Shannon/oxy-scroll/engine/renderer/bind_group_provider"
)

// model is the implementation of the Model interface.
type model struct {
	name         string
	vertices     []GPUVertex
	indices      []uint32
	meshProvider bind_group_provider.BindGroupProvider
}

// Model is an indexed triangle mesh plus the provider that will hold its GPU vertex and index buffers.
// Geometry is immutable after construction; the provider is filled in by the Renderer.
type Model interface {
	// Name retrieves the model identifier.
	//
	// Returns:
	//   - string: the model name
	Name() string

	// Vertices returns the CPU-side vertex list.
	Vertices() []GPUVertex

	// Indices returns the triangle list indices.
	Indices() []uint32

	// VertexData returns the vertex list as raw bytes for upload.
	//
	// Returns:
	//   - []byte: a byte view over the vertex list
	VertexData() []byte

	// IndexData returns the index list as raw bytes for upload.
	//
	// Returns:
	//   - []byte: a byte view over the index list
	IndexData() []byte

	// IndexCount returns the number of indices, three per triangle.
	IndexCount() int

	// MeshProvider returns the BindGroupProvider that owns this model's GPU buffers.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the mesh provider
	MeshProvider() bind_group_provider.BindGroupProvider
}

var _ Model = &model{}

// NewModel creates a Model from the given options. A mesh provider labelled after the model
// name is created when none is supplied.
//
// Parameters:
//   - options: functional options that set the name and geometry
//
// Returns:
//   - Model: the constructed model
func NewModel(options ...ModelBuilderOption) Model {
	m := &model{name: "model"}
	for _, opt := range options {
		opt(m)
	}
	if m.meshProvider == nil {
		m.meshProvider = bind_group_provider.NewBindGroupProvider(m.name + "_mesh")
	}
	return m
}

func (m *model) Name() string {
	return m.name
}

func (m *model) Vertices() []GPUVertex {
	return m.vertices
}

func (m *model) Indices() []uint32 {
	return m.indices
}

func (m *model) VertexData() []byte {
	return common.SliceToBytes(m.vertices)
}

func (m *model) IndexData() []byte {
	return common.SliceToBytes(m.indices)
}

func (m *model) IndexCount() int {
	return len(m.indices)
}

func (m *model) MeshProvider() bind_group_provider.BindGroupProvider {
	return m.meshProvider
}
