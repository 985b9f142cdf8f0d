package pipeline

import "github.com/cogentcore/webgpu/wgpu"

// PipelineBuilderOption overrides one piece of fixed-function state on a pipeline.
type PipelineBuilderOption func(*pipeline)

// WithDepthWriteEnabled toggles depth writes. Both built-in pipelines write depth so the
// back torus is hidden behind the front one.
func WithDepthWriteEnabled(enabled bool) PipelineBuilderOption {
	return func(p *pipeline) {
		p.depthWriteEnabled = enabled
	}
}

// WithCullMode sets which faces are dropped. The torus mesh is closed, so back faces can go.
func WithCullMode(mode wgpu.CullMode) PipelineBuilderOption {
	return func(p *pipeline) {
		p.cullMode = mode
	}
}

// WithTopology sets how the index buffer is assembled into primitives.
func WithTopology(topology wgpu.PrimitiveTopology) PipelineBuilderOption {
	return func(p *pipeline) {
		p.topology = topology
	}
}

// WithFrontFace sets the winding treated as front facing.
func WithFrontFace(frontFace wgpu.FrontFace) PipelineBuilderOption {
	return func(p *pipeline) {
		p.frontFace = frontFace
	}
}

// WithWriteMask limits which colour channels the fragment stage writes.
func WithWriteMask(mask wgpu.ColorWriteMask) PipelineBuilderOption {
	return func(p *pipeline) {
		p.writeMask = mask
	}
}
