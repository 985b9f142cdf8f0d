package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/Carmen-Shannon/oxy-scroll/common"
	"github.com/Carmen-Shannon/oxy-scroll/engine"
	"github.com/Carmen-Shannon/oxy-scroll/engine/animation"
	"github.com/Carmen-Shannon/oxy-scroll/engine/camera"
	"github.com/Carmen-Shannon/oxy-scroll/engine/game_object"
	"github.com/Carmen-Shannon/oxy-scroll/engine/light"
	"github.com/Carmen-Shannon/oxy-scroll/engine/loader"
	"github.com/Carmen-Shannon/oxy-scroll/engine/page"
	"github.com/Carmen-Shannon/oxy-scroll/engine/renderer"
	"github.com/Carmen-Shannon/oxy-scroll/engine/scene"
	"github.com/Carmen-Shannon/oxy-scroll/engine/window"
)

var (
	// ErrAlreadyMounted is returned by Mount on a mounted App.
	ErrAlreadyMounted = errors.New("app is already mounted")
	// ErrNotMounted is returned by Unmount and RunHeadless on an App that is not mounted.
	ErrNotMounted = errors.New("app is not mounted")
)

// Object ids. The box is added once its textures arrive.
const (
	frontTorusID uint64 = iota + 1
	backTorusID
	boxID
)

// BackTorusDepth is the z offset of the second torus inside the group.
const BackTorusDepth float32 = 3

// App composes the scroll-driven scene: two spinning tori, a late textured box, a camera flown
// by the animation controller, and a page whose scroll offset feeds the controller.
// Mount and Unmount must be called from the window thread.
type App struct {
	mu      sync.Mutex
	mounted bool

	cfg             Config
	win             window.Window
	rendererFactory engine.RendererFactory
	loader          loader.Loader
	engineOptions   []engine.EngineBuilderOption

	page   page.Page
	scene  scene.Scene
	ctrl   animation.Controller
	eng    engine.Engine
	group  *game_object.Group
	tori   []game_object.Torus
	subID  int
	shift  bool
	resize *[2]int
}

// AppOption is a functional option for configuring an App.
type AppOption func(a *App)

// WithWindow attaches the native window. Without one the App runs headless.
func WithWindow(w window.Window) AppOption {
	return func(a *App) {
		a.win = w
	}
}

// WithRendererFactory overrides how the renderer is created. The default builds a wgpu renderer
// on the window's surface and is only available with a window.
//
// Parameters:
//   - factory: creates the renderer on a worker goroutine
//
// Returns:
//   - AppOption: option function to apply
func WithRendererFactory(factory engine.RendererFactory) AppOption {
	return func(a *App) {
		a.rendererFactory = factory
	}
}

// WithLoader sets the texture loader used for the box.
func WithLoader(l loader.Loader) AppOption {
	return func(a *App) {
		a.loader = l
	}
}

// WithEngineOptions appends options passed to the engine on Mount.
func WithEngineOptions(options ...engine.EngineBuilderOption) AppOption {
	return func(a *App) {
		a.engineOptions = append(a.engineOptions, options...)
	}
}

// NewApp creates an unmounted App.
//
// Parameters:
//   - cfg: validated configuration
//   - opts: functional options
//
// Returns:
//   - *App: the app
func NewApp(cfg Config, opts ...AppOption) *App {
	a := &App{cfg: cfg, subID: -1}
	for _, opt := range opts {
		opt(a)
	}
	if a.loader == nil {
		a.loader = loader.NewLoader()
	}
	return a
}

// Mount builds the scene, controller and page, wires the window input to the page, starts the engine
// and submits the async renderer and texture jobs.
//
// Returns:
//   - error: ErrAlreadyMounted, or an error submitting the async jobs
func (a *App) Mount() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.mounted {
		return ErrAlreadyMounted
	}

	width, height := a.cfg.Window.Width, a.cfg.Window.Height
	if a.win != nil {
		width, height = a.win.Width(), a.win.Height()
	}

	p := animation.InitialCameraPosition
	cam := camera.NewCamera(
		camera.WithAspect(aspect(width, height)),
		camera.WithController(camera.NewCameraController(
			camera.WithPosition(p.X(), p.Y(), p.Z()),
			camera.WithTarget(animation.LookTarget.X(), animation.LookTarget.Y(), animation.LookTarget.Z()),
		)),
	)

	front := game_object.NewTorus(game_object.WithID(frontTorusID), game_object.WithName("torus_front"))
	back := game_object.NewTorus(
		game_object.WithID(backTorusID),
		game_object.WithName("torus_back"),
		game_object.WithPosition(0, 0, BackTorusDepth),
	)
	a.tori = []game_object.Torus{front, back}
	a.group = game_object.NewGroup()
	a.group.Add(front, back)

	a.scene = scene.NewScene(
		scene.WithName("scroll"),
		scene.WithCamera(cam),
		scene.WithLights(
			light.NewLight(light.LightTypeDirectional, light.WithPosition(3, 3, 3)),
			light.NewLight(light.LightTypeAmbient),
		),
		scene.WithObjects(a.group),
	)
	a.ctrl = animation.NewController(animation.WithCamera(cam), animation.WithGroup(a.group))

	a.page = page.NewPage(a.cfg.Page.Height, float32(height))
	a.subID = a.page.Subscribe(func(scrollY float32) {
		a.ctrl.HandleScroll(scrollY, a.page.ScrollHeight(), a.page.InnerHeight())
	})

	options := append([]engine.EngineBuilderOption{
		engine.WithScene(a.scene),
		engine.WithTickCallback(a.tick),
		engine.WithProfiling(a.cfg.Profiling),
	}, a.engineOptions...)
	if a.win != nil {
		options = append(options,
			engine.WithWindow(a.win),
			engine.WithRenderFrameLimit(a.cfg.FrameLimit),
		)
		a.win.SetScrollCallback(a.handleWheel)
		a.win.SetKeyDownCallback(a.handleKeyDown)
		a.win.SetKeyUpCallback(a.handleKeyUp)
		a.win.SetResizeCallback(a.handleResize)
	}
	a.eng = engine.NewEngine(options...)
	a.eng.Start()
	a.mounted = true

	if err := a.submitRenderer(); err != nil {
		a.unmountLocked()
		return err
	}
	if err := a.submitBox(); err != nil {
		a.unmountLocked()
		return err
	}

	log.Printf("[Engine] mounted %dx%d, page %.0fpx", width, height, a.cfg.Page.Height)
	return nil
}

// Unmount unsubscribes the page listener, clears the window callbacks, stops the engine and
// releases the scene's GPU resources.
//
// Returns:
//   - error: ErrNotMounted if the app is not mounted
func (a *App) Unmount() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.mounted {
		return ErrNotMounted
	}
	a.unmountLocked()
	return nil
}

func (a *App) unmountLocked() {
	a.page.Unsubscribe(a.subID)
	a.subID = -1
	if a.win != nil {
		a.win.ClearCallbacks()
	}
	a.eng.Stop()
	a.scene.Release()
	a.mounted = false
	log.Printf("[Engine] unmounted")
}

// Run blocks on the window loop. It returns at once without a window.
func (a *App) Run() error {
	a.mu.Lock()
	mounted, eng := a.mounted, a.eng
	a.mu.Unlock()
	if !mounted {
		return ErrNotMounted
	}
	eng.Run()
	return nil
}

// Mounted reports whether Mount has succeeded and Unmount has not yet run.
func (a *App) Mounted() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mounted
}

// Page returns the scroll document, nil before Mount.
func (a *App) Page() page.Page { return a.page }

// Scene returns the scene, nil before Mount.
func (a *App) Scene() scene.Scene { return a.scene }

// Engine returns the frame driver, nil before Mount.
func (a *App) Engine() engine.Engine { return a.eng }

// State returns a copy of the animation state.
func (a *App) State() animation.State {
	if a.ctrl == nil {
		return animation.State{}
	}
	return a.ctrl.State()
}

// tick advances the animation and object hooks. It runs every frame whether or not the renderer is ready.
func (a *App) tick(float32) {
	if a.resize != nil && a.scene.Ready() {
		if err := a.scene.Resize(a.resize[0], a.resize[1]); err != nil {
			log.Printf("[Engine] resize failed: %v", err)
		}
		a.resize = nil
	}
	a.ctrl.Advance()
	a.scene.Update()
}

func (a *App) submitRenderer() error {
	factory := a.rendererFactory
	if factory == nil && a.win != nil {
		factory = a.defaultRendererFactory()
	}
	if factory == nil {
		log.Printf("[Engine] no renderer, frames will advance without drawing")
		return nil
	}
	if err := a.eng.InitRendererAsync(factory); err != nil {
		return fmt.Errorf("failed to submit renderer init: %w", err)
	}
	return nil
}

// defaultRendererFactory captures the surface on the window thread and creates the renderer on a worker.
func (a *App) defaultRendererFactory() engine.RendererFactory {
	desc := a.win.SurfaceDescriptor()
	width, height := a.win.Width(), a.win.Height()
	opts := []renderer.RendererBuilderOption{
		renderer.WithMSAA(renderer.MSAASampleCount(a.cfg.Renderer.MSAA)),
		renderer.WithForceSoftwareRenderer(a.cfg.Renderer.Software),
	}
	if a.cfg.Renderer.VSync {
		opts = append(opts, renderer.WithPresentMode(renderer.PresentModeVSync))
	}
	return func(ctx context.Context) (renderer.Renderer, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return renderer.NewRenderer(desc, width, height, opts...)
	}
}

func (a *App) submitBox() error {
	l := a.loader
	base, detail := a.cfg.Textures.Base, a.cfg.Textures.Detail
	s := a.scene
	err := a.eng.Submit("box textures", func(ctx context.Context) (engine.Result, error) {
		baseTex, detailTex, err := l.LoadPair(ctx, base, detail)
		if err != nil {
			return engine.Result{}, err
		}
		box := game_object.NewBox(baseTex, detailTex, game_object.WithID(boxID))
		return engine.Result{Apply: func() error { return s.AddObject(box) }}, nil
	})
	if err != nil {
		return fmt.Errorf("failed to submit texture load: %w", err)
	}
	return nil
}

func (a *App) handleWheel(delta float32) {
	// Wheel away from the user scrolls toward the top of the document.
	a.page.ScrollBy(-delta * a.cfg.Page.WheelStep)
}

func (a *App) handleKeyDown(key uint32) {
	switch key {
	case common.KeyLeftShift, common.KeyRightShift:
		a.shift = true
	case common.KeyDown:
		a.page.ScrollBy(a.cfg.Page.KeyStep)
	case common.KeyUp:
		a.page.ScrollBy(-a.cfg.Page.KeyStep)
	case common.KeyPageDown:
		a.page.ScrollBy(a.page.InnerHeight())
	case common.KeyPageUp:
		a.page.ScrollBy(-a.page.InnerHeight())
	case common.KeySpace:
		if a.shift {
			a.page.ScrollBy(-a.page.InnerHeight())
		} else {
			a.page.ScrollBy(a.page.InnerHeight())
		}
	case common.KeyHome:
		a.page.ScrollTo(0)
	case common.KeyEnd:
		a.page.ScrollTo(a.page.MaxScroll())
	case common.KeyT:
		a.tori[0].Slide()
	}
}

func (a *App) handleKeyUp(key uint32) {
	if key == common.KeyLeftShift || key == common.KeyRightShift {
		a.shift = false
	}
}

// handleResize updates the page at once. The scene follows on the next frame once a renderer exists.
func (a *App) handleResize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	a.page.SetInnerHeight(float32(height))
	a.resize = &[2]int{width, height}
}

func aspect(width, height int) float32 {
	if width <= 0 || height <= 0 {
		return 16.0 / 9.0
	}
	return float32(width) / float32(height)
}
