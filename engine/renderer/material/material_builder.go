package material

import (
	"github.com/Carmen-Shannon/oxy-scroll/common"
	"github.com/Carmen-Shannon/oxy-scroll/engine/renderer/bind_group_provider"
)

// MaterialBuilderOption is a function that configures a material instance during construction.
type MaterialBuilderOption func(*material)

// WithName is an option builder that sets the name of the material.
//
// Parameters:
//   - name: the identifier for the material
//
// Returns:
//   - MaterialBuilderOption: a function that applies the name option to a material
func WithName(name string) MaterialBuilderOption {
	return func(m *material) {
		m.name = name
	}
}

// WithBaseColor is an option builder that sets the RGB base color of the material with full opacity.
//
// Parameters:
//   - r, g, b: the base color channels in [0, 1]
//
// Returns:
//   - MaterialBuilderOption: a function that applies the base color option to a material
func WithBaseColor(r, g, b float32) MaterialBuilderOption {
	return func(m *material) {
		m.baseColor = [4]float32{r, g, b, 1}
	}
}

// WithTextures attaches texture layers and switches the material to the textured pipeline.
// Layers are bound in the given order; the textured shader multiplies the first layer by the second.
//
// Parameters:
//   - textures: the decoded texture layers
//
// Returns:
//   - MaterialBuilderOption: a function that applies the textures to a material
func WithTextures(textures ...common.TextureStagingData) MaterialBuilderOption {
	return func(m *material) {
		m.textures = textures
		m.pipelineKey = PipelineKeyTextured
	}
}

// WithSampler overrides the sampler configuration used for the texture layers.
func WithSampler(s common.SamplerStagingData) MaterialBuilderOption {
	return func(m *material) {
		m.sampler = s
	}
}

// WithBindGroupProvider replaces the default bind group provider.
func WithBindGroupProvider(p bind_group_provider.BindGroupProvider) MaterialBuilderOption {
	return func(m *material) {
		m.bindGroupProvider = p
	}
}
