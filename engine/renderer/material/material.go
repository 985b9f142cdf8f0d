package material

import (
	"github.com/Carmen-Shannon/oxy-scroll/common"
	"github.com/Carmen-Shannon/oxy-scroll/engine/renderer/bind_group_provider"
)

// Pipeline keys understood by the scene. Each material names the pipeline it draws with.
const (
	PipelineKeyTorus    = "torus"
	PipelineKeyTextured = "textured"
)

// material is the implementation of the Material interface.
type material struct {
	name              string
	baseColor         [4]float32
	textures          []common.TextureStagingData
	sampler           common.SamplerStagingData
	pipelineKey       string
	bindGroupProvider bind_group_provider.BindGroupProvider
}

// Material defines the interface for a render material: surface color, optional texture
// layers and the GPU bind group that carries them to the fragment shader.
//
// Surface properties are fixed at construction. The bind group provider is created with
// the material and filled by the Renderer when the owning object is initialized.
type Material interface {
	// Name retrieves the material identifier.
	//
	// Returns:
	//   - string: the name of the material
	Name() string

	// BaseColor retrieves the RGBA base color of the material.
	//
	// Returns:
	//   - [4]float32: the base color as RGBA values
	BaseColor() [4]float32

	// Textures retrieves the staged texture layers in binding order. Empty for solid materials.
	//
	// Returns:
	//   - []common.TextureStagingData: the texture layers
	Textures() []common.TextureStagingData

	// Sampler retrieves the sampler configuration shared by all texture layers.
	Sampler() common.SamplerStagingData

	// Textured reports whether the material samples textures.
	Textured() bool

	// PipelineKey retrieves the key identifying the render pipeline this material uses.
	//
	// Returns:
	//   - string: the pipeline key
	PipelineKey() string

	// Uniform packs the material parameters for GPU upload.
	//
	// Returns:
	//   - GPUMaterialUniform: the material uniform data
	Uniform() GPUMaterialUniform

	// BindGroupProvider retrieves the bind group provider holding GPU-side resources for this material.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the bind group provider
	BindGroupProvider() bind_group_provider.BindGroupProvider
}

var _ Material = &material{}

// NewMaterial creates a new Material instance configured with the provided options.
// Without WithTextures the material is solid and draws with the torus pipeline.
//
// Parameters:
//   - options: variadic list of MaterialBuilderOption functions to configure the material
//
// Returns:
//   - Material: a new Material instance
func NewMaterial(options ...MaterialBuilderOption) Material {
	m := &material{
		name:        "material",
		baseColor:   [4]float32{1, 1, 1, 1},
		pipelineKey: PipelineKeyTorus,
	}
	for _, opt := range options {
		opt(m)
	}
	if m.bindGroupProvider == nil {
		m.bindGroupProvider = bind_group_provider.NewBindGroupProvider(m.name + "_material")
	}
	return m
}

func (m *material) Name() string {
	return m.name
}

func (m *material) BaseColor() [4]float32 {
	return m.baseColor
}

func (m *material) Textures() []common.TextureStagingData {
	return m.textures
}

func (m *material) Sampler() common.SamplerStagingData {
	return m.sampler
}

func (m *material) Textured() bool {
	return len(m.textures) > 0
}

func (m *material) PipelineKey() string {
	return m.pipelineKey
}

func (m *material) Uniform() GPUMaterialUniform {
	return GPUMaterialUniform{BaseColor: m.baseColor}
}

func (m *material) BindGroupProvider() bind_group_provider.BindGroupProvider {
	return m.bindGroupProvider
}
