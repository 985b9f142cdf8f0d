package renderer

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-scroll/common"
	"github.com/Carmen-Shannon/oxy-scroll/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-scroll/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-scroll/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

type fakeBackend struct {
	configured  [][2]int
	configErr   error
	registerErr error
	registered  []string
	draws       int
	released    bool
	presentMode PresentMode
}

func (f *fakeBackend) ConfigureSurface(width, height int) error {
	if f.configErr != nil {
		return f.configErr
	}
	f.configured = append(f.configured, [2]int{width, height})
	return nil
}

func (f *fakeBackend) SetPresentMode(mode PresentMode) { f.presentMode = mode }
func (f *fakeBackend) SetClearColor(wgpu.Color) {}

func (f *fakeBackend) RegisterRenderPipeline(p pipeline.Pipeline) error {
	if f.registerErr != nil {
		return f.registerErr
	}
	f.registered = append(f.registered, p.PipelineKey())
	return nil
}

func (f *fakeBackend) InitMeshBuffers(bind_group_provider.BindGroupProvider, []byte, []byte, int) error {
	return nil
}

func (f *fakeBackend) InitBindGroup(bind_group_provider.BindGroupProvider, wgpu.BindGroupLayoutDescriptor) error {
	return nil
}

func (f *fakeBackend) InitTextureView(bind_group_provider.BindGroupProvider, int, common.TextureStagingData) error {
	return nil
}

func (f *fakeBackend) InitSampler(bind_group_provider.BindGroupProvider, int, common.SamplerStagingData) error {
	return nil
}

func (f *fakeBackend) WriteBuffers([]bind_group_provider.BufferWrite) {}
func (f *fakeBackend) BeginFrame() error { return nil }

func (f *fakeBackend) DrawCall(pipeline.Pipeline, bind_group_provider.BindGroupProvider, []bind_group_provider.BindGroupProvider) {
	f.draws++
}

func (f *fakeBackend) EndFrame() error { return nil }
func (f *fakeBackend) Present() {}
func (f *fakeBackend) Release() { f.released = true }

func newTestRenderer(t *testing.T, opts ...RendererBuilderOption) (*renderer, *fakeBackend) {
	t.Helper()
	fb := &fakeBackend{}
	r := newRenderer(opts...)
	r.backend = fb
	return r, fb
}

func testPipeline(t *testing.T, key string) pipeline.Pipeline {
	t.Helper()
	s, err := shader.Builtin(key)
	if err != nil {
		t.Fatalf("Builtin(%q): %v", key, err)
	}
	return pipeline.NewPipeline(key, s)
}

func TestNewRendererDefaults(t *testing.T) {
	r := newRenderer()
	if r.msaa != MSAA4x {
		t.Errorf("msaa = %d, want %d", r.msaa, MSAA4x)
	}
	if r.presentMode != PresentModeUncapped {
		t.Errorf("presentMode = %s, want uncapped", r.presentMode)
	}
	if r.clearColor != DefaultClearColor {
		t.Errorf("clearColor = %v, want %v", r.clearColor, DefaultClearColor)
	}
	if r.forceFallbackAdapter {
		t.Error("software adapter forced by default")
	}
}

func TestRendererOptions(t *testing.T) {
	clear := wgpu.Color{R: 1, A: 1}
	r := newRenderer(
		WithMSAA(MSAAOff),
		WithPresentMode(PresentModeVSync),
		WithForceSoftwareRenderer(true),
		WithClearColor(clear),
	)
	if r.msaa != MSAAOff || r.presentMode != PresentModeVSync || !r.forceFallbackAdapter || r.clearColor != clear {
		t.Errorf("options not applied: msaa=%d present=%s software=%v clear=%v", r.msaa, r.presentMode, r.forceFallbackAdapter, r.clearColor)
	}
}

func TestMSAASampleCountValid(t *testing.T) {
	tests := []struct {
		count MSAASampleCount
		want  bool
	}{
		{MSAAOff, true},
		{MSAA4x, true},
		{MSAA8x, true},
		{MSAA16x, true},
		{0, false},
		{2, false},
		{32, false},
	}
	for _, tt := range tests {
		if got := tt.count.Valid(); got != tt.want {
			t.Errorf("MSAASampleCount(%d).Valid() = %v, want %v", tt.count, got, tt.want)
		}
	}
}

func TestNewRendererRejectsInvalidMSAA(t *testing.T) {
	if _, err := NewRenderer(nil, 800, 600, WithMSAA(3)); err == nil {
		t.Error("expected an error for sample count 3")
	}
}

func TestNewRendererRequiresSurface(t *testing.T) {
	if _, err := NewRenderer(nil, 800, 600); err == nil {
		t.Error("expected an error for a nil surface descriptor")
	}
}

func TestPresentModeMapping(t *testing.T) {
	if got := PresentModeVSync.wgpuPresentMode(); got != wgpu.PresentModeFifo {
		t.Errorf("vsync maps to %v, want Fifo", got)
	}
	if got := PresentModeUncapped.wgpuPresentMode(); got != wgpu.PresentModeImmediate {
		t.Errorf("uncapped maps to %v, want Immediate", got)
	}
}

func TestResize(t *testing.T) {
	r, fb := newTestRenderer(t)

	if err := r.Resize(0, 600); err != nil {
		t.Fatalf("Resize(0, 600): %v", err)
	}
	if err := r.Resize(800, -1); err != nil {
		t.Fatalf("Resize(800, -1): %v", err)
	}
	if len(fb.configured) != 0 {
		t.Fatalf("degenerate sizes reached the backend: %v", fb.configured)
	}

	if err := r.Resize(1280, 720); err != nil {
		t.Fatalf("Resize(1280, 720): %v", err)
	}
	if w, h := r.Size(); w != 1280 || h != 720 {
		t.Errorf("Size() = %dx%d, want 1280x720", w, h)
	}

	fb.configErr = errors.New("lost surface")
	if err := r.Resize(640, 480); !errors.Is(err, fb.configErr) {
		t.Errorf("Resize error = %v, want wrapped %v", err, fb.configErr)
	}
	if w, h := r.Size(); w != 1280 || h != 720 {
		t.Errorf("Size() changed after a failed resize: %dx%d", w, h)
	}
}

func TestRegisterPipelinesSkipsExistingKeys(t *testing.T) {
	r, fb := newTestRenderer(t)

	torus := testPipeline(t, "torus")
	if err := r.RegisterPipelines(torus, testPipeline(t, "textured")); err != nil {
		t.Fatalf("RegisterPipelines: %v", err)
	}
	if err := r.RegisterPipelines(testPipeline(t, "torus")); err != nil {
		t.Fatalf("RegisterPipelines again: %v", err)
	}

	if len(fb.registered) != 2 {
		t.Errorf("backend registered %v, want two pipelines", fb.registered)
	}
	if r.Pipeline("torus") != torus {
		t.Error("cached torus pipeline replaced by the duplicate")
	}
}

func TestRegisterPipelinesError(t *testing.T) {
	r, fb := newTestRenderer(t)
	fb.registerErr = errors.New("bad shader")

	if err := r.RegisterPipelines(testPipeline(t, "torus")); !errors.Is(err, fb.registerErr) {
		t.Fatalf("error = %v, want %v", err, fb.registerErr)
	}
	if r.Pipeline("torus") != nil {
		t.Error("failed pipeline was cached")
	}
}

func TestDrawCall(t *testing.T) {
	r, fb := newTestRenderer(t)
	if err := r.RegisterPipelines(testPipeline(t, "torus")); err != nil {
		t.Fatalf("RegisterPipelines: %v", err)
	}

	mesh := bind_group_provider.NewBindGroupProvider("mesh")
	if err := r.DrawCall("missing", mesh, nil); err == nil {
		t.Error("expected an error for an unregistered pipeline")
	}
	if err := r.DrawCall("torus", mesh, nil); err == nil {
		t.Error("expected an error for a mesh without buffers")
	}

	mesh.SetVertexBuffer(&wgpu.Buffer{})
	mesh.SetIndexBuffer(&wgpu.Buffer{})
	if err := r.DrawCall("torus", mesh, nil); err != nil {
		t.Fatalf("DrawCall: %v", err)
	}
	if fb.draws != 1 {
		t.Errorf("backend draws = %d, want 1", fb.draws)
	}
}

func TestRelease(t *testing.T) {
	r, fb := newTestRenderer(t)
	if err := r.RegisterPipelines(testPipeline(t, "torus")); err != nil {
		t.Fatalf("RegisterPipelines: %v", err)
	}

	r.Release()
	if !fb.released {
		t.Error("backend not released")
	}
	if r.Pipeline("torus") != nil {
		t.Error("pipeline cache not cleared")
	}
	if err := r.BeginFrame(); !errors.Is(err, ErrReleased) {
		t.Errorf("BeginFrame after Release = %v, want ErrReleased", err)
	}
	r.Release()
}
