package scene

import (
	"errors"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-scroll/common"
	"github.com/Carmen-Shannon/oxy-scroll/engine/camera"
	"github.com/Carmen-Shannon/oxy-scroll/engine/game_object"
	"github.com/Carmen-Shannon/oxy-scroll/engine/light"
	"github.com/Carmen-Shannon/oxy-scroll/engine/renderer"
	"github.com/Carmen-Shannon/oxy-scroll/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-scroll/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-scroll/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

type drawRecord struct {
	pipelineKey string
	mesh        bind_group_provider.BindGroupProvider
	bindGroups  []bind_group_provider.BindGroupProvider
}

type fakeRenderer struct {
	pipelines    map[string]pipeline.Pipeline
	bindGroups   []bind_group_provider.BindGroupProvider
	meshes       []bind_group_provider.BindGroupProvider
	textureViews map[int]int
	samplers     []int
	writes       []bind_group_provider.BufferWrite
	draws        []drawRecord
	frames       int
	presents     int
	resized      [][2]int
	released     bool

	registerErr  error
	bindGroupErr error
	beginErr     error
}

func newFakeRenderer() *fakeRenderer {
	return &fakeRenderer{
		pipelines:    make(map[string]pipeline.Pipeline),
		textureViews: make(map[int]int),
	}
}

var _ renderer.Renderer = &fakeRenderer{}

func (f *fakeRenderer) Pipeline(key string) pipeline.Pipeline { return f.pipelines[key] }

func (f *fakeRenderer) RegisterPipelines(pipelines ...pipeline.Pipeline) error {
	if f.registerErr != nil {
		return f.registerErr
	}
	for _, p := range pipelines {
		if _, ok := f.pipelines[p.PipelineKey()]; !ok {
			f.pipelines[p.PipelineKey()] = p
		}
	}
	return nil
}

func (f *fakeRenderer) Size() (int, int) { return 0, 0 }
func (f *fakeRenderer) MSAA() renderer.MSAASampleCount { return renderer.MSAA4x }
func (f *fakeRenderer) SetPresentMode(renderer.PresentMode) {}

func (f *fakeRenderer) Resize(width, height int) error {
	f.resized = append(f.resized, [2]int{width, height})
	return nil
}

func (f *fakeRenderer) InitMeshBuffers(provider bind_group_provider.BindGroupProvider, _, _ []byte, _ int) error {
	f.meshes = append(f.meshes, provider)
	return nil
}

func (f *fakeRenderer) InitBindGroup(provider bind_group_provider.BindGroupProvider, _ wgpu.BindGroupLayoutDescriptor) error {
	if f.bindGroupErr != nil {
		return f.bindGroupErr
	}
	f.bindGroups = append(f.bindGroups, provider)
	return nil
}

func (f *fakeRenderer) InitTextureView(_ bind_group_provider.BindGroupProvider, binding int, _ common.TextureStagingData) error {
	f.textureViews[binding]++
	return nil
}

func (f *fakeRenderer) InitSampler(_ bind_group_provider.BindGroupProvider, binding int, _ common.SamplerStagingData) error {
	f.samplers = append(f.samplers, binding)
	return nil
}

func (f *fakeRenderer) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	f.writes = append(f.writes[:0], writes...)
}

func (f *fakeRenderer) BeginFrame() error {
	if f.beginErr != nil {
		return f.beginErr
	}
	f.frames++
	return nil
}

func (f *fakeRenderer) DrawCall(pipelineKey string, mesh bind_group_provider.BindGroupProvider, bindGroups []bind_group_provider.BindGroupProvider) error {
	f.draws = append(f.draws, drawRecord{
		pipelineKey: pipelineKey,
		mesh:        mesh,
		bindGroups:  append([]bind_group_provider.BindGroupProvider(nil), bindGroups...),
	})
	return nil
}

func (f *fakeRenderer) EndFrame() error { return nil }
func (f *fakeRenderer) Present() { f.presents++ }
func (f *fakeRenderer) Release() { f.released = true }

func testCamera() camera.Camera {
	return camera.NewCamera(camera.WithController(camera.NewCameraController(
		camera.WithPosition(3, 3, 8),
		camera.WithTarget(0, 0, 0),
	)))
}

func testTexture() common.TextureStagingData {
	return common.TextureStagingData{Pixels: make([]byte, 4*4*4), Width: 4, Height: 4}
}

func TestDrawBeforeRendererIsNotReady(t *testing.T) {
	s := NewScene(WithObjects(game_object.NewTorus()))
	if s.Ready() {
		t.Fatal("scene ready without a renderer")
	}
	if err := s.Draw(); !errors.Is(err, ErrRendererNotReady) {
		t.Errorf("Draw() = %v, want ErrRendererNotReady", err)
	}
	if err := s.Resize(800, 400); err != nil {
		t.Errorf("Resize before renderer: %v", err)
	}
	if got := s.Camera().Aspect(); got != 2 {
		t.Errorf("camera aspect = %v, want 2", got)
	}
}

func TestObjectsWalksGroups(t *testing.T) {
	a, b := game_object.NewTorus(), game_object.NewTorus()
	group := game_object.NewGroup()
	group.Add(a, b)
	box := game_object.NewBox(testTexture(), testTexture())

	s := NewScene(WithObjects(group, nil, box))

	if got := len(s.Roots()); got != 2 {
		t.Fatalf("roots = %d, want 2", got)
	}
	objs := s.Objects()
	if len(objs) != 3 || objs[0] != a || objs[1] != b || objs[2] != box {
		t.Errorf("objects not collected in order: %v", objs)
	}
}

func TestSetRendererInitializesResources(t *testing.T) {
	cam := testCamera()
	group := game_object.NewGroup()
	group.Add(game_object.NewTorus(), game_object.NewTorus())
	s := NewScene(
		WithCamera(cam),
		WithLights(light.NewLight(light.LightTypeDirectional, light.WithPosition(3, 3, 3)), light.NewLight(light.LightTypeAmbient)),
		WithObjects(group),
	)

	fr := newFakeRenderer()
	if err := s.SetRenderer(fr); err != nil {
		t.Fatalf("SetRenderer: %v", err)
	}
	if !s.Ready() || s.Renderer() != fr {
		t.Fatal("renderer not attached")
	}

	for _, key := range []string{material.PipelineKeyTorus, material.PipelineKeyTextured} {
		if fr.Pipeline(key) == nil {
			t.Errorf("pipeline %q not registered", key)
		}
	}
	// camera, lights, then object and material for each torus
	if got := len(fr.bindGroups); got != 6 {
		t.Errorf("bind groups initialized = %d, want 6", got)
	}
	if fr.bindGroups[0] != cam.BindGroupProvider() {
		t.Error("camera bind group not initialized first")
	}
	if got := len(fr.meshes); got != 2 {
		t.Errorf("meshes initialized = %d, want 2", got)
	}
}

func TestDrawIssuesOneCallPerEnabledObject(t *testing.T) {
	cam := testCamera()
	first, second := game_object.NewTorus(), game_object.NewTorus()
	group := game_object.NewGroup()
	group.Add(first, second)
	s := NewScene(WithCamera(cam), WithObjects(group))

	fr := newFakeRenderer()
	if err := s.SetRenderer(fr); err != nil {
		t.Fatalf("SetRenderer: %v", err)
	}

	s.Update()
	if err := s.Draw(); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if fr.frames != 1 || fr.presents != 1 {
		t.Errorf("frames=%d presents=%d, want 1 and 1", fr.frames, fr.presents)
	}
	if len(fr.draws) != 2 {
		t.Fatalf("draws = %d, want 2", len(fr.draws))
	}

	d := fr.draws[0]
	if d.pipelineKey != material.PipelineKeyTorus {
		t.Errorf("pipeline = %q, want %q", d.pipelineKey, material.PipelineKeyTorus)
	}
	want := []bind_group_provider.BindGroupProvider{
		cam.BindGroupProvider(),
		nil, // lights, checked below
		first.BindGroupProvider(),
		first.Material().BindGroupProvider(),
	}
	if len(d.bindGroups) != len(want) {
		t.Fatalf("bind groups = %d, want %d", len(d.bindGroups), len(want))
	}
	for i, p := range want {
		if p != nil && d.bindGroups[i] != p {
			t.Errorf("group %d bound %s, want %s", i, d.bindGroups[i].Label(), p.Label())
		}
	}
	if d.bindGroups[1] == nil || d.bindGroups[1] == cam.BindGroupProvider() {
		t.Error("group 1 is not the lights provider")
	}

	// camera, lights, object and material per torus
	if got := len(fr.writes); got != 6 {
		t.Errorf("buffer writes = %d, want 6", got)
	}

	second.SetEnabled(false)
	fr.draws = nil
	if err := s.Draw(); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if len(fr.draws) != 1 {
		t.Errorf("draws with one object disabled = %d, want 1", len(fr.draws))
	}
}

func TestAddObjectAfterRenderer(t *testing.T) {
	s := NewScene(WithCamera(testCamera()), WithObjects(game_object.NewTorus()))
	fr := newFakeRenderer()
	if err := s.SetRenderer(fr); err != nil {
		t.Fatalf("SetRenderer: %v", err)
	}

	box := game_object.NewBox(testTexture(), testTexture())
	if err := s.AddObject(box); err != nil {
		t.Fatalf("AddObject: %v", err)
	}
	if fr.textureViews[1] != 1 || fr.textureViews[2] != 1 {
		t.Errorf("texture bindings initialized = %v, want one each at 1 and 2", fr.textureViews)
	}
	if len(fr.samplers) != 1 || fr.samplers[0] != 3 {
		t.Errorf("samplers = %v, want [3]", fr.samplers)
	}

	s.Update()
	if err := s.Draw(); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if len(fr.draws) != 2 || fr.draws[1].pipelineKey != material.PipelineKeyTextured {
		t.Errorf("box not drawn with the textured pipeline: %+v", fr.draws)
	}
}

func TestSetRendererFailure(t *testing.T) {
	s := NewScene(WithObjects(game_object.NewTorus()))
	fr := newFakeRenderer()
	fr.bindGroupErr = errors.New("out of memory")

	if err := s.SetRenderer(fr); !errors.Is(err, fr.bindGroupErr) {
		t.Fatalf("SetRenderer error = %v, want wrapped %v", err, fr.bindGroupErr)
	}
	if s.Ready() {
		t.Error("scene ready after a failed SetRenderer")
	}
	if err := s.SetRenderer(nil); err == nil {
		t.Error("expected an error for a nil renderer")
	}
}

func TestDrawBeginFrameError(t *testing.T) {
	s := NewScene(WithObjects(game_object.NewTorus()))
	fr := newFakeRenderer()
	if err := s.SetRenderer(fr); err != nil {
		t.Fatalf("SetRenderer: %v", err)
	}
	fr.beginErr = errors.New("surface lost")
	if err := s.Draw(); !errors.Is(err, fr.beginErr) {
		t.Errorf("Draw() = %v, want wrapped %v", err, fr.beginErr)
	}
	if fr.presents != 0 {
		t.Error("presented a frame that never began")
	}
}

func TestResizeAndRelease(t *testing.T) {
	s := NewScene(WithCamera(testCamera()))
	fr := newFakeRenderer()
	if err := s.SetRenderer(fr); err != nil {
		t.Fatalf("SetRenderer: %v", err)
	}

	if err := s.Resize(1600, 900); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	if len(fr.resized) != 1 || fr.resized[0] != [2]int{1600, 900} {
		t.Errorf("renderer resized %v, want [1600 900]", fr.resized)
	}
	if got := s.Camera().Aspect(); math.Abs(float64(got-16.0/9.0)) > 1e-6 {
		t.Errorf("aspect = %v, want 16/9", got)
	}
	if err := s.Resize(0, 0); err != nil || len(fr.resized) != 1 {
		t.Error("zero size should be ignored")
	}

	s.Release()
	if !fr.released || s.Ready() {
		t.Error("Release did not release and detach the renderer")
	}
	if err := s.Draw(); !errors.Is(err, ErrRendererNotReady) {
		t.Errorf("Draw after Release = %v, want ErrRendererNotReady", err)
	}
}
