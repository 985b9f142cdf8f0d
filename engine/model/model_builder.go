package model

import "github.com/Carmen-Shannon/oxy-scroll/engine/renderer/bind_group_provider"

// ModelBuilderOption is a functional option for configuring a Model via NewModel.
type ModelBuilderOption func(*model)

// WithName is an option builder that sets the name of the Model.
//
// Parameters:
//   - name: the model identifier
//
// Returns:
//   - ModelBuilderOption: a function that applies the name option to a model
func WithName(name string) ModelBuilderOption {
	return func(m *model) {
		m.name = name
	}
}

// WithGeometry sets the vertex and index lists of the Model.
//
// Parameters:
//   - vertices: the vertex list
//   - indices: triangle list indices into vertices
//
// Returns:
//   - ModelBuilderOption: a function that applies the geometry to a model
func WithGeometry(vertices []GPUVertex, indices []uint32) ModelBuilderOption {
	return func(m *model) {
		m.vertices = vertices
		m.indices = indices
	}
}

// WithMeshProvider sets the provider that will hold the GPU vertex and index buffers.
func WithMeshProvider(provider bind_group_provider.BindGroupProvider) ModelBuilderOption {
	return func(m *model) {
		m.meshProvider = provider
	}
}
