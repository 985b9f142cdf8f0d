package renderer

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/Carmen-Shannon/oxy-scroll/common"
	"github.com/Carmen-Shannon/oxy-scroll/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-scroll/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// ErrReleased is returned by operations on a Renderer after Release.
var ErrReleased = errors.New("renderer released")

// renderer fronts a RendererBackend with a pipeline cache.
type renderer struct {
	mu *sync.Mutex

	pipelineCache map[string]pipeline.Pipeline

	backendType RendererBackendType
	backend     RendererBackend

	width, height int

	// applied when the backend is created
	forceFallbackAdapter bool
	presentMode          PresentMode
	msaa                 MSAASampleCount
	clearColor           wgpu.Color
}

// Renderer owns the GPU device and swapchain for the scroll scene.
//
// Pipelines are cached by key. Buffers, textures and bind groups are created on request and parked on the
// caller's BindGroupProvider. A frame is BeginFrame, any number of DrawCalls, EndFrame, then Present.
type Renderer interface {
	// Pipeline looks up a registered pipeline, nil if key is unknown.
	Pipeline(key string) pipeline.Pipeline

	// RegisterPipelines builds render pipelines and caches them by PipelineKey. Keys already in the cache are skipped.
	//
	// Parameters:
	//   - pipelines: pipelines to build
	//
	// Returns:
	//   - error: the first build failure
	RegisterPipelines(pipelines ...pipeline.Pipeline) error

	// Size returns the current surface size in pixels.
	Size() (width, height int)

	// MSAA returns the sample count the renderer was created with.
	MSAA() MSAASampleCount

	// Resize reconfigures the swapchain and the depth and MSAA targets. A minimized window reports
	// a zero size, which is ignored.
	Resize(width, height int) error

	// InitMeshBuffers uploads vertex and index bytes and stores the buffers and index count on provider.
	//
	// Parameters:
	//   - provider: receives the vertex buffer, index buffer and count
	//   - vertexData: packed vertices
	//   - indexData: packed uint32 indices
	//   - indexCount: number of indices drawn
	//
	// Returns:
	//   - error: if either buffer cannot be created
	InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error

	// InitBindGroup allocates a uniform buffer per buffer entry in descriptor and builds the bind group.
	// Texture and sampler entries are read from provider, so InitTextureView and InitSampler go first.
	InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor) error

	// InitTextureView uploads decoded RGBA pixels as an sRGB texture and stores its view at bindingKey.
	InitTextureView(provider bind_group_provider.BindGroupProvider, bindingKey int, stagingData common.TextureStagingData) error

	// InitSampler creates a sampler at bindingKey. Zero fields in samplerStagingData take repeat
	// addressing and linear filtering.
	InitSampler(provider bind_group_provider.BindGroupProvider, bindingKey int, samplerStagingData common.SamplerStagingData) error

	// WriteBuffers queues this frame's uniform uploads.
	WriteBuffers(writes []bind_group_provider.BufferWrite)

	// BeginFrame acquires the next swapchain image and opens the main pass. Pair it with EndFrame.
	//
	// Returns:
	//   - error: if the surface texture is lost or outdated
	BeginFrame() error

	// DrawCall records one indexed draw in the open pass, binding bindGroups to groups 0..n-1.
	//
	// Parameters:
	//   - pipelineKey: key of a registered pipeline
	//   - meshProvider: holds the vertex and index buffers
	//   - bindGroups: camera, lights, object and material groups in shader order
	//
	// Returns:
	//   - error: unknown pipeline or a mesh without buffers
	DrawCall(pipelineKey string, meshProvider bind_group_provider.BindGroupProvider, bindGroups []bind_group_provider.BindGroupProvider) error

	// EndFrame closes the pass and submits the encoded commands. Present shows the result.
	EndFrame() error

	// Present flips the swapchain image to the screen.
	Present()

	// SetPresentMode takes effect on the next Resize.
	SetPresentMode(mode PresentMode)

	// Release releases every cached pipeline and the backend. The Renderer is unusable afterwards.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer requests an adapter and device for the surface and configures the swapchain at width by height.
// The descriptor comes from Window.SurfaceDescriptor, captured on the window thread. NewRenderer itself
// may run on a worker goroutine.
//
// Parameters:
//   - surfaceDescriptor: surface handle from the window
//   - width: initial surface width in pixels
//   - height: initial surface height in pixels
//   - options: MSAA, present mode, fallback adapter and clear colour
//
// Returns:
//   - Renderer: the configured Renderer
//   - error: an error if the adapter, device or surface could not be set up
func NewRenderer(surfaceDescriptor *wgpu.SurfaceDescriptor, width, height int, options ...RendererBuilderOption) (Renderer, error) {
	r := newRenderer(options...)
	if !r.msaa.Valid() {
		return nil, fmt.Errorf("unsupported MSAA sample count %d", r.msaa)
	}

	switch r.backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		backend, err := newWGPURendererBackend(surfaceDescriptor, r.forceFallbackAdapter, r.msaa)
		if err != nil {
			return nil, fmt.Errorf("failed to create wgpu backend: %w", err)
		}
		r.backend = backend
	}

	r.backend.SetPresentMode(r.presentMode)
	r.backend.SetClearColor(r.clearColor)
	if err := r.Resize(width, height); err != nil {
		r.backend.Release()
		return nil, err
	}

	log.Printf("[Renderer] ready %dx%d msaa=%d present=%s", width, height, r.msaa, r.presentMode)
	return r, nil
}

// newRenderer applies options over the defaults without touching the GPU.
func newRenderer(options ...RendererBuilderOption) *renderer {
	r := &renderer{
		mu:            &sync.Mutex{},
		pipelineCache: make(map[string]pipeline.Pipeline),
		backendType:   BackendTypeWGPU,
		presentMode:   PresentModeUncapped,
		msaa:          MSAA4x,
		clearColor:    DefaultClearColor,
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

func (r *renderer) Size() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width, r.height
}

func (r *renderer) MSAA() MSAASampleCount {
	return r.msaa
}

func (r *renderer) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.backend == nil {
		return ErrReleased
	}
	if err := r.backend.ConfigureSurface(width, height); err != nil {
		return fmt.Errorf("failed to configure surface %dx%d: %w", width, height, err)
	}
	r.width, r.height = width, height
	return nil
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.presentMode = mode
	if r.backend != nil {
		r.backend.SetPresentMode(mode)
	}
}

func (r *renderer) Pipeline(key string) pipeline.Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pipelineCache[key]
}

func (r *renderer) RegisterPipelines(pipelines ...pipeline.Pipeline) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.backend == nil {
		return ErrReleased
	}
	for _, p := range pipelines {
		key := p.PipelineKey()
		if _, exists := r.pipelineCache[key]; exists {
			continue
		}
		if err := r.backend.RegisterRenderPipeline(p); err != nil {
			return err
		}
		r.pipelineCache[key] = p
	}
	return nil
}

func (r *renderer) InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error {
	if r.backend == nil {
		return ErrReleased
	}
	return r.backend.InitMeshBuffers(provider, vertexData, indexData, indexCount)
}

func (r *renderer) InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor) error {
	if r.backend == nil {
		return ErrReleased
	}
	return r.backend.InitBindGroup(provider, descriptor)
}

func (r *renderer) InitTextureView(provider bind_group_provider.BindGroupProvider, bindingKey int, stagingData common.TextureStagingData) error {
	if r.backend == nil {
		return ErrReleased
	}
	return r.backend.InitTextureView(provider, bindingKey, stagingData)
}

func (r *renderer) InitSampler(provider bind_group_provider.BindGroupProvider, bindingKey int, samplerStagingData common.SamplerStagingData) error {
	if r.backend == nil {
		return ErrReleased
	}
	return r.backend.InitSampler(provider, bindingKey, samplerStagingData)
}

func (r *renderer) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.backend == nil {
		return
	}
	r.backend.WriteBuffers(writes)
}

func (r *renderer) BeginFrame() error {
	if r.backend == nil {
		return ErrReleased
	}
	return r.backend.BeginFrame()
}

func (r *renderer) DrawCall(pipelineKey string, meshProvider bind_group_provider.BindGroupProvider, bindGroups []bind_group_provider.BindGroupProvider) error {
	r.mu.Lock()
	p, exists := r.pipelineCache[pipelineKey]
	backend := r.backend
	r.mu.Unlock()

	if backend == nil {
		return ErrReleased
	}
	if !exists {
		return fmt.Errorf("render pipeline %q not found in cache", pipelineKey)
	}
	if meshProvider == nil || meshProvider.VertexBuffer() == nil || meshProvider.IndexBuffer() == nil {
		return fmt.Errorf("mesh for pipeline %q has no GPU buffers", pipelineKey)
	}

	backend.DrawCall(p, meshProvider, bindGroups)
	return nil
}

func (r *renderer) EndFrame() error {
	if r.backend == nil {
		return ErrReleased
	}
	return r.backend.EndFrame()
}

func (r *renderer) Present() {
	if r.backend == nil {
		return
	}
	r.backend.Present()
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, p := range r.pipelineCache {
		p.Release()
		delete(r.pipelineCache, key)
	}
	if r.backend != nil {
		r.backend.Release()
		r.backend = nil
	}
}
