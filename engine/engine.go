package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-scroll/engine/profiler"
	"github.com/Carmen-Shannon/oxy-scroll/engine/renderer"
	"github.com/Carmen-Shannon/oxy-scroll/engine/scene"
	"github.com/Carmen-Shannon/oxy-scroll/engine/window"
)

// ErrNotStarted is returned by Submit while the engine is stopped.
var ErrNotStarted = errors.New("engine is not started")

// Result is produced by a Job on a worker goroutine and consumed on the frame thread.
type Result struct {
	// Apply runs on the frame thread at the start of the next frame.
	Apply func() error
	// Discard releases whatever the job produced when the result is stale. May be nil.
	Discard func()
}

// Job is asynchronous work run on the engine's worker pool.
// ctx is cancelled when the engine stops.
type Job func(ctx context.Context) (Result, error)

// RendererFactory creates a renderer off the frame thread.
type RendererFactory func(ctx context.Context) (renderer.Renderer, error)

type pendingResult struct {
	name       string
	generation uint64
	result     Result
}

// engine implements the Engine interface.
// All frame work runs on the window thread; only Jobs run on the worker pool.
type engine struct {
	mu sync.Mutex

	running    atomic.Bool
	generation atomic.Uint64
	taskID     atomic.Int64

	ctx    context.Context
	cancel context.CancelFunc

	window window.Window
	scene  scene.Scene

	profiler         *profiler.Profiler
	profilingEnabled bool

	tickCallback func(deltaTime float32)

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped

	workers    int
	pool       worker.DynamicWorkerPool
	submitTask func(task worker.Task)
	pending    []pendingResult

	lastFrame   time.Time
	frames      uint64
	drawFailing bool

	now   func() time.Time
	sleep func(time.Duration)
}

// Engine drives the per-frame loop: apply async results, tick, draw when ready.
// It also owns the worker pool that async jobs run on.
type Engine interface {
	// Window returns the underlying window, nil when running headless.
	Window() window.Window

	// Scene returns the scene drawn each frame.
	Scene() scene.Scene

	// SetTickCallback registers the function called each frame before drawing.
	// Use this for animation and input-driven state updates.
	//
	// Parameters:
	//   - callback: function receiving the delta time in seconds
	SetTickCallback(callback func(deltaTime float32))

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// Start bumps the generation, marks the engine running and installs Frame as the window's update callback.
	// Calling Start on a running engine is a no-op.
	Start()

	// Frame runs one frame: drains async results of the current generation, runs the tick callback,
	// draws if the renderer is ready, ticks the profiler, then applies the frame limit.
	// State advances whether or not a draw happens. No-op while stopped.
	Frame()

	// Submit runs job on the worker pool. Its Result is applied on the frame thread unless the
	// engine has been stopped or restarted since the job was submitted, in which case it is discarded.
	//
	// Parameters:
	//   - name: label used in logs
	//   - job: the work to run
	//
	// Returns:
	//   - error: ErrNotStarted if the engine is stopped
	Submit(name string, job Job) error

	// InitRendererAsync creates a renderer on the worker pool and attaches it to the scene on the frame thread.
	//
	// Parameters:
	//   - factory: creates the renderer
	//
	// Returns:
	//   - error: ErrNotStarted if the engine is stopped
	InitRendererAsync(factory RendererFactory) error

	// Stop bumps the generation, cancels in-flight jobs, discards queued results, shuts down the worker pool
	// and clears the update callback. The next Start creates a fresh pool.
	Stop()

	// Running reports whether the engine is started.
	Running() bool

	// Generation returns the current generation counter.
	Generation() uint64

	// Frames returns the number of frames run since construction.
	Frames() uint64

	// Run blocks on the window message loop until the window closes.
	Run()

	// Quit asks the window to close. Safe to call multiple times.
	Quit()
}

var _ Engine = &engine{}

// NewEngine creates a new Engine instance with the provided options.
// The worker pool is created by Start and shut down by Stop.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		profiler: profiler.NewProfiler(),
		workers:  2,
		now:      time.Now,
		sleep:    time.Sleep,
	}

	for _, opt := range options {
		opt(e)
	}
	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Scene() scene.Scene {
	return e.scene
}

func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.tickCallback = callback
}

func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) Start() {
	if e.running.Load() {
		return
	}

	e.mu.Lock()
	if e.submitTask == nil {
		pool := worker.NewDynamicWorkerPool(e.workers, 256, 1*time.Second)
		e.pool = pool
		e.submitTask = pool.SubmitTask
	}
	e.ctx, e.cancel = context.WithCancel(context.Background())
	gen := e.generation.Add(1)
	e.running.Store(true)
	e.mu.Unlock()

	e.lastFrame = e.now()
	e.drawFailing = false

	if e.window != nil {
		e.window.SetUpdateCallback(e.Frame)
	}
	log.Printf("[Engine] started, generation %d", gen)
}

func (e *engine) Frame() {
	if !e.running.Load() {
		return
	}
	// A panic anywhere in the frame stops the loop rather than crashing the process.
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Engine] frame recovered from panic: %v", r)
			e.Stop()
			e.Quit()
		}
	}()

	start := e.now()
	dt := float32(start.Sub(e.lastFrame).Seconds())
	e.lastFrame = start

	e.applyResults()

	if e.tickCallback != nil {
		e.tickCallback(dt)
	}

	drawn := e.draw()

	if e.profilingEnabled && e.profiler != nil {
		e.profiler.Tick(drawn)
	}
	e.frames++

	if e.renderFrameLimit > 0 {
		if remaining := e.renderFrameLimit - e.now().Sub(start); remaining > 0 {
			e.sleep(remaining)
		}
	}
}

// draw renders the scene if it has a renderer. A failing draw is logged once until a draw succeeds again.
func (e *engine) draw() bool {
	if e.scene == nil || !e.scene.Ready() {
		return false
	}
	if err := e.scene.Draw(); err != nil {
		if !e.drawFailing {
			log.Printf("[Engine] draw failed: %v", err)
			e.drawFailing = true
		}
		return false
	}
	e.drawFailing = false
	return true
}

func (e *engine) Submit(name string, job Job) error {
	if job == nil {
		return fmt.Errorf("job %q is nil", name)
	}

	ctx, submit, gen, ok := e.submission()
	if !ok {
		return ErrNotStarted
	}

	id := int(e.taskID.Add(1))
	submit(worker.Task{
		ID: id,
		Do: func() (any, error) {
			defer func() {
				if r := recover(); r != nil {
					log.Printf("[Engine] job %s recovered from panic: %v", name, r)
				}
			}()

			res, err := job(ctx)
			if err != nil {
				if res.Discard != nil {
					res.Discard()
				}
				if !errors.Is(err, context.Canceled) {
					log.Printf("[Engine] job %s failed: %v", name, err)
				}
				return nil, nil
			}
			e.enqueue(pendingResult{name: name, generation: gen, result: res})
			return nil, nil
		},
	})
	return nil
}

// submission reads the job context, the task sink and the generation together. Start and Stop change
// all three under the same lock, so a job never pairs a cancelled context with a live generation.
func (e *engine) submission() (context.Context, func(worker.Task), uint64, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.running.Load() {
		return nil, nil, 0, false
	}
	return e.ctx, e.submitTask, e.generation.Load(), true
}

func (e *engine) InitRendererAsync(factory RendererFactory) error {
	if factory == nil {
		return errors.New("renderer factory is nil")
	}
	if e.scene == nil {
		return errors.New("engine has no scene to attach a renderer to")
	}
	s := e.scene
	return e.Submit("renderer", func(ctx context.Context) (Result, error) {
		r, err := factory(ctx)
		if err != nil {
			return Result{}, fmt.Errorf("failed to create renderer: %w", err)
		}
		return Result{
			Apply: func() error {
				if err := s.SetRenderer(r); err != nil {
					r.Release()
					return err
				}
				return nil
			},
			Discard: r.Release,
		}, nil
	})
}

// enqueue queues a finished result for the frame thread, discarding it at once if it is already stale.
func (e *engine) enqueue(p pendingResult) {
	e.mu.Lock()
	if p.generation != e.generation.Load() || !e.running.Load() {
		e.mu.Unlock()
		discard(p)
		return
	}
	e.pending = append(e.pending, p)
	e.mu.Unlock()
}

// applyResults runs the queued results of the current generation in submission-completion order.
func (e *engine) applyResults() {
	e.mu.Lock()
	batch := e.pending
	e.pending = nil
	e.mu.Unlock()

	gen := e.generation.Load()
	for _, p := range batch {
		if p.generation != gen {
			discard(p)
			continue
		}
		if p.result.Apply == nil {
			continue
		}
		if err := p.result.Apply(); err != nil {
			log.Printf("[Engine] applying %s failed: %v", p.name, err)
		}
	}
}

func discard(p pendingResult) {
	log.Printf("[Engine] discarding stale %s result from generation %d", p.name, p.generation)
	if p.result.Discard != nil {
		p.result.Discard()
	}
}

func (e *engine) Stop() {
	e.mu.Lock()
	if !e.running.Load() {
		e.mu.Unlock()
		return
	}
	gen := e.generation.Add(1)
	e.running.Store(false)
	if e.cancel != nil {
		e.cancel()
	}
	batch := e.pending
	e.pending = nil
	pool := e.pool
	if pool != nil {
		e.pool = nil
		e.submitTask = nil
	}
	e.mu.Unlock()

	if pool != nil {
		// Queued jobs have not run yet, so they hold nothing that needs discarding.
		pool.ClearTaskQueue()
		pool.Stop()
	}
	for _, p := range batch {
		discard(p)
	}
	if e.window != nil {
		e.window.SetUpdateCallback(nil)
	}
	log.Printf("[Engine] stopped after %d frames, generation %d", e.frames, gen)
}

func (e *engine) Running() bool {
	return e.running.Load()
}

func (e *engine) Generation() uint64 {
	return e.generation.Load()
}

func (e *engine) Frames() uint64 {
	return e.frames
}

func (e *engine) Run() {
	if e.window == nil {
		return
	}
	e.window.ProcessMessages()
}

func (e *engine) Quit() {
	if e.window != nil {
		e.window.RequestClose()
	}
}
