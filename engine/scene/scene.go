package scene

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/Carmen-Shannon/oxy-scroll/engine/camera"
	"github.com/Carmen-Shannon/oxy-scroll/engine/game_object"
	"github.com/Carmen-Shannon/oxy-scroll/engine/light"
	"github.com/Carmen-Shannon/oxy-scroll/engine/renderer"
	"github.com/Carmen-Shannon/oxy-scroll/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-scroll/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-scroll/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-scroll/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// ErrRendererNotReady is returned by Draw before a renderer has been attached.
var ErrRendererNotReady = errors.New("renderer not ready")

// builtinPipelines are registered on every renderer the scene receives, so objects added
// later never need a pipeline created mid-frame.
var builtinPipelines = []string{material.PipelineKeyTorus, material.PipelineKeyTextured}

// Scene holds the camera, lights and renderables of one view and draws them with an
// attached Renderer. Until SetRenderer is called the scene still advances every frame
// but Draw reports ErrRendererNotReady.
// Thread-safe for concurrent access.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// Camera returns the scene's camera.
	Camera() camera.Camera

	// Lights returns the scene's lights.
	Lights() []light.Light

	// Roots returns the top-level renderables in insertion order.
	Roots() []game_object.Renderable

	// Objects returns every drawable object found under the roots.
	//
	// Returns:
	//   - []game_object.GameObject: the drawables, in insertion order
	Objects() []game_object.GameObject

	// AddObject adds a top-level renderable. Groups are walked for drawable children.
	// When a renderer is attached the new drawables get their GPU resources immediately.
	//
	// Parameters:
	//   - r: the renderable to add
	//
	// Returns:
	//   - error: an error if GPU initialization fails; the renderable is kept either way
	AddObject(r game_object.Renderable) error

	// Renderer returns the attached renderer, or nil.
	Renderer() renderer.Renderer

	// Ready reports whether a renderer is attached.
	Ready() bool

	// SetRenderer attaches r, registers the built-in pipelines and creates the GPU resources of
	// the camera, lights and every drawable. A previously attached renderer is released.
	// On failure nothing stays attached and the partially created resources are released.
	//
	// Parameters:
	//   - r: the renderer to attach
	//
	// Returns:
	//   - error: an error if pipeline or resource creation fails
	SetRenderer(r renderer.Renderer) error

	// Update runs OnFrame on every root with the scene camera.
	Update()

	// Draw uploads this frame's uniforms, draws every enabled drawable and presents.
	//
	// Returns:
	//   - error: ErrRendererNotReady without a renderer, or a wrapped frame error
	Draw() error

	// Resize updates the camera aspect and, when attached, the renderer surface.
	//
	// Parameters:
	//   - width: new framebuffer width in pixels
	//   - height: new framebuffer height in pixels
	//
	// Returns:
	//   - error: an error if the surface could not be reconfigured
	Resize(width, height int) error

	// Release frees every GPU resource held by the scene and its renderer.
	// The scene keeps its objects and can receive a new renderer afterwards.
	Release()
}

type scene struct {
	mu *sync.RWMutex

	name   string
	cam    camera.Camera
	lights []light.Light

	roots     []game_object.Renderable
	drawables []game_object.GameObject

	// initialized holds the IDs of drawables whose GPU resources exist on the current renderer.
	initialized map[uint64]bool

	r         renderer.Renderer
	lightsBGP bind_group_provider.BindGroupProvider

	// Pre-allocated slices reused each frame to avoid per-frame allocations.
	writePool          []bind_group_provider.BufferWrite
	drawBindGroupsPool []bind_group_provider.BindGroupProvider
}

var _ Scene = &scene{}

// NewScene creates a scene. Without WithCamera a default camera is used.
//
// Parameters:
//   - options: functional options to configure the scene
//
// Returns:
//   - Scene: the newly created scene, not yet ready to draw
func NewScene(options ...SceneBuilderOption) Scene {
	s := &scene{
		mu:                 &sync.RWMutex{},
		name:               "scene",
		initialized:        make(map[uint64]bool),
		drawBindGroupsPool: make([]bind_group_provider.BindGroupProvider, 0, 4),
	}
	for _, option := range options {
		option(s)
	}
	if s.cam == nil {
		s.cam = camera.NewCamera()
	}
	s.lightsBGP = bind_group_provider.NewBindGroupProvider(s.name + "_lights")
	return s
}

func (s *scene) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *scene) Camera() camera.Camera {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cam
}

func (s *scene) Lights() []light.Light {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lights
}

func (s *scene) Roots() []game_object.Renderable {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.roots
}

func (s *scene) Objects() []game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]game_object.GameObject, len(s.drawables))
	copy(out, s.drawables)
	return out
}

func (s *scene) Renderer() renderer.Renderer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.r
}

func (s *scene) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.r != nil
}

func (s *scene) AddObject(r game_object.Renderable) error {
	if r == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.roots = append(s.roots, r)
	added := collectDrawables(r)
	s.drawables = append(s.drawables, added...)

	if s.r == nil {
		return nil
	}
	for _, obj := range added {
		if err := s.initObject(s.r, obj); err != nil {
			return fmt.Errorf("failed to initialize %s: %w", obj.Name(), err)
		}
	}
	return nil
}

// collectDrawables walks r depth first and returns every GameObject found.
func collectDrawables(r game_object.Renderable) []game_object.GameObject {
	switch v := r.(type) {
	case game_object.GameObject:
		return []game_object.GameObject{v}
	case *game_object.Group:
		var out []game_object.GameObject
		for _, c := range v.Children() {
			out = append(out, collectDrawables(c)...)
		}
		return out
	default:
		return nil
	}
}

func (s *scene) SetRenderer(r renderer.Renderer) error {
	if r == nil {
		return errors.New("renderer is nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.r != nil {
		s.releaseLocked()
	}

	if err := s.attach(r); err != nil {
		s.releaseProviders()
		return err
	}
	s.r = r
	log.Printf("[Scene] %s renderer attached, %d drawables", s.name, len(s.initialized))
	return nil
}

// attach creates the pipelines and shared resources on r. Caller must hold the write lock.
func (s *scene) attach(r renderer.Renderer) error {
	pipelines := make([]pipeline.Pipeline, 0, len(builtinPipelines))
	for _, key := range builtinPipelines {
		sh, err := shader.Builtin(key)
		if err != nil {
			return err
		}
		pipelines = append(pipelines, pipeline.NewPipeline(key, sh))
	}
	if err := r.RegisterPipelines(pipelines...); err != nil {
		return fmt.Errorf("failed to register pipelines: %w", err)
	}

	// The shared groups are identical across the built-in shaders, so any of them supplies the layouts.
	ref := r.Pipeline(material.PipelineKeyTorus).Shader()
	if err := initShared(r, ref, shader.AnnotationArgCamera, s.cam.BindGroupProvider()); err != nil {
		return fmt.Errorf("failed to initialize camera bind group: %w", err)
	}
	if err := initShared(r, ref, shader.AnnotationArgLight, s.lightsBGP); err != nil {
		return fmt.Errorf("failed to initialize light bind group: %w", err)
	}

	for _, obj := range s.drawables {
		if err := s.initObject(r, obj); err != nil {
			return fmt.Errorf("failed to initialize %s: %w", obj.Name(), err)
		}
	}
	return nil
}

// initShared creates the bind group of provider from the group its struct type is bound to in sh.
func initShared(r renderer.Renderer, sh shader.Shader, arg shader.AnnotationArg, provider bind_group_provider.BindGroupProvider) error {
	g, ok := groupOf(sh, arg)
	if !ok {
		return fmt.Errorf("shader %s binds no %s uniform", sh.Key(), arg)
	}
	return r.InitBindGroup(provider, sh.BindGroupLayoutDescriptors()[g])
}

// groupOf returns the bind group index the shader binds the given struct type at.
func groupOf(sh shader.Shader, arg shader.AnnotationArg) (int, bool) {
	for _, decl := range sh.Declarations() {
		if decl.Type != shader.AnnotationTypeBindingGroup || decl.Group == nil {
			continue
		}
		if decl.Args[2] == arg {
			return *decl.Group, true
		}
	}
	return 0, false
}

// initObject creates the mesh, object and material resources of obj on r.
// Shared meshes and materials are only initialized once. Caller must hold the write lock.
func (s *scene) initObject(r renderer.Renderer, obj game_object.GameObject) error {
	mdl := obj.Model()
	if mdl == nil {
		return nil
	}
	mat := obj.Material()
	p := r.Pipeline(mat.PipelineKey())
	if p == nil {
		return fmt.Errorf("no pipeline for material key %q", mat.PipelineKey())
	}
	sh := p.Shader()

	mesh := mdl.MeshProvider()
	if !mesh.Initialized() {
		if err := r.InitMeshBuffers(mesh, mdl.VertexData(), mdl.IndexData(), mdl.IndexCount()); err != nil {
			return err
		}
	}

	if err := initShared(r, sh, shader.AnnotationArgObject, obj.BindGroupProvider()); err != nil {
		return err
	}

	matProvider := mat.BindGroupProvider()
	if !matProvider.Initialized() {
		g, ok := groupOf(sh, shader.AnnotationArgMaterial)
		if !ok {
			return fmt.Errorf("shader %s binds no material uniform", sh.Key())
		}
		if err := initMaterial(r, matProvider, mat, sh.BindGroupLayoutDescriptors()[g]); err != nil {
			return err
		}
	}

	s.initialized[obj.ID()] = true
	return nil
}

// initMaterial uploads the material's textures and sampler into the bindings its layout declares,
// then creates the bind group. Textures fill texture bindings in order.
func initMaterial(r renderer.Renderer, provider bind_group_provider.BindGroupProvider, mat material.Material, descriptor wgpu.BindGroupLayoutDescriptor) error {
	textures := mat.Textures()
	next := 0
	for _, entry := range descriptor.Entries {
		binding := int(entry.Binding)
		switch {
		case entry.Texture.SampleType != wgpu.TextureSampleTypeUndefined:
			if next >= len(textures) {
				return fmt.Errorf("material %s has %d textures, layout needs more", mat.Name(), len(textures))
			}
			if err := r.InitTextureView(provider, binding, textures[next]); err != nil {
				return err
			}
			next++
		case entry.Sampler.Type != wgpu.SamplerBindingTypeUndefined:
			if err := r.InitSampler(provider, binding, mat.Sampler()); err != nil {
				return err
			}
		}
	}
	return r.InitBindGroup(provider, descriptor)
}

func (s *scene) Update() {
	s.mu.RLock()
	cam := s.cam
	roots := s.roots
	s.mu.RUnlock()

	for _, r := range roots {
		r.OnFrame(cam)
	}
}

func (s *scene) Draw() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.r == nil {
		return ErrRendererNotReady
	}

	camUniform := s.cam.Uniform()
	lightUniform := light.NewLightUniform(s.lights...)
	writes := append(s.writePool[:0],
		bind_group_provider.BufferWrite{Provider: s.cam.BindGroupProvider(), Binding: 0, Data: camUniform.Marshal()},
		bind_group_provider.BufferWrite{Provider: s.lightsBGP, Binding: 0, Data: lightUniform.Marshal()},
	)
	for _, obj := range s.drawables {
		if !obj.Enabled() || !s.initialized[obj.ID()] {
			continue
		}
		objUniform := obj.Uniform()
		matUniform := obj.Material().Uniform()
		writes = append(writes,
			bind_group_provider.BufferWrite{Provider: obj.BindGroupProvider(), Binding: 0, Data: objUniform.Marshal()},
			bind_group_provider.BufferWrite{Provider: obj.Material().BindGroupProvider(), Binding: 0, Data: matUniform.Marshal()},
		)
	}
	s.writePool = writes
	s.r.WriteBuffers(writes)

	if err := s.r.BeginFrame(); err != nil {
		return fmt.Errorf("failed to begin frame: %w", err)
	}

	var drawErr error
	for _, obj := range s.drawables {
		if !obj.Enabled() || !s.initialized[obj.ID()] {
			continue
		}
		if err := s.drawObject(obj); err != nil {
			drawErr = fmt.Errorf("draw call failed for %s in scene %q: %w", obj.Name(), s.name, err)
			break
		}
	}

	// The pass is always ended and presented so the acquired surface texture is never leaked.
	if err := s.r.EndFrame(); err != nil && drawErr == nil {
		drawErr = fmt.Errorf("failed to end frame: %w", err)
	}
	s.r.Present()
	return drawErr
}

// drawObject binds the providers each group of the object's pipeline declares and issues the draw.
func (s *scene) drawObject(obj game_object.GameObject) error {
	mat := obj.Material()
	p := s.r.Pipeline(mat.PipelineKey())
	if p == nil {
		return fmt.Errorf("no pipeline for material key %q", mat.PipelineKey())
	}

	bindGroups := s.drawBindGroupsPool[:0]
	for g := range p.Shader().BindGroupLayoutDescriptors() {
		provider := s.providerFor(p.Shader(), g, obj)
		if provider == nil {
			return fmt.Errorf("no provider for group %d of %s", g, p.PipelineKey())
		}
		bindGroups = append(bindGroups, provider)
	}
	s.drawBindGroupsPool = bindGroups

	return s.r.DrawCall(p.PipelineKey(), obj.Model().MeshProvider(), bindGroups)
}

// providerFor matches a group index to the provider of the struct type bound there.
func (s *scene) providerFor(sh shader.Shader, group int, obj game_object.GameObject) bind_group_provider.BindGroupProvider {
	for _, decl := range sh.Declarations() {
		if decl.Type != shader.AnnotationTypeBindingGroup || decl.Group == nil || *decl.Group != group {
			continue
		}
		switch decl.Args[2] {
		case shader.AnnotationArgCamera:
			return s.cam.BindGroupProvider()
		case shader.AnnotationArgLight:
			return s.lightsBGP
		case shader.AnnotationArgObject:
			return obj.BindGroupProvider()
		case shader.AnnotationArgMaterial:
			return obj.Material().BindGroupProvider()
		}
	}
	return nil
}

func (s *scene) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return nil
	}

	s.mu.RLock()
	cam, r := s.cam, s.r
	s.mu.RUnlock()

	cam.SetAspect(float32(width) / float32(height))
	if r == nil {
		return nil
	}
	return r.Resize(width, height)
}

func (s *scene) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.releaseLocked()
}

// releaseLocked frees the providers and the renderer. Caller must hold the write lock.
func (s *scene) releaseLocked() {
	s.releaseProviders()
	if s.r != nil {
		s.r.Release()
		s.r = nil
		log.Printf("[Scene] %s released", s.name)
	}
}

// releaseProviders frees the GPU resources of the camera, lights and drawables. Caller must hold the write lock.
func (s *scene) releaseProviders() {
	s.cam.BindGroupProvider().Release()
	s.lightsBGP.Release()
	for _, obj := range s.drawables {
		obj.BindGroupProvider().Release()
		obj.Material().BindGroupProvider().Release()
		if mdl := obj.Model(); mdl != nil {
			mdl.MeshProvider().Release()
		}
	}
	clear(s.initialized)
}
