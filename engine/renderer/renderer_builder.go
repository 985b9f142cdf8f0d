package renderer

import "github.com/cogentcore/webgpu/wgpu"

// RendererBuilderOption tweaks a renderer before NewRenderer requests the adapter.
type RendererBuilderOption func(*renderer)

// WithPresentMode picks between vsync'd FIFO presentation and the uncapped immediate mode.
func WithPresentMode(mode PresentMode) RendererBuilderOption {
	return func(r *renderer) {
		r.presentMode = mode
	}
}

// WithMSAA sets how many samples the colour and depth targets carry. The tori edges alias badly
// without it, so MSAA4x is the default; MSAAOff renders straight to the swapchain.
//
// Parameters:
//   - count: MSAAOff or MSAA4x; MSAA8x and MSAA16x depend on the adapter
//
// Returns:
//   - RendererBuilderOption: option function to apply
func WithMSAA(count MSAASampleCount) RendererBuilderOption {
	return func(r *renderer) {
		r.msaa = count
	}
}

// WithForceSoftwareRenderer requests the fallback adapter. Needs lavapipe or SwiftShader on the host.
func WithForceSoftwareRenderer(force bool) RendererBuilderOption {
	return func(r *renderer) {
		r.forceFallbackAdapter = force
	}
}

// WithClearColor sets the colour behind the scene, black unless overridden.
func WithClearColor(color wgpu.Color) RendererBuilderOption {
	return func(r *renderer) {
		r.clearColor = color
	}
}
