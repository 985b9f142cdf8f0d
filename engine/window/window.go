package window

import (
	"runtime"

	"github.com/Carmen-Shannon/oxy-scroll/common"
	"github.com/cogentcore/webgpu/wgpu"
)

// Window is the native surface the scroll scene draws into, plus the wheel, key and resize
// events that move the page. Every callback runs on the thread that created the window.
type Window interface {
	// SetUpdateCallback installs the per-iteration hook the engine uses as its frame. nil removes it.
	SetUpdateCallback(callback func())

	// SetResizeCallback receives framebuffer sizes in pixels, not screen coordinates.
	SetResizeCallback(callback func(width, height int))

	// SetScrollCallback receives vertical wheel notches. Positive is away from the user.
	SetScrollCallback(callback func(delta float32))

	// SetKeyDownCallback fires on press and on auto-repeat with a common.Key* code.
	SetKeyDownCallback(callback func(keyCode uint32))

	// SetKeyUpCallback fires on release. Escape never reaches either key callback.
	SetKeyUpCallback(callback func(keyCode uint32))

	// ClearCallbacks removes every input, resize and update callback.
	ClearCallbacks()

	// SurfaceDescriptor hands the native handle to the renderer through wgpuglfw. nil once the window is closed.
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning is false after Escape, RequestClose, the close button or Close.
	IsRunning() bool

	// RequestClose asks the message loop to stop after the current iteration.
	// Safe to call from inside a callback.
	RequestClose()

	// Close destroys the window and terminates GLFW. A second call is a no-op.
	//
	// Returns:
	//   - error: if the window was never created
	Close() error

	// ProcessMessages polls events and calls the update callback until the window stops running.
	ProcessMessages()

	// Width returns the current framebuffer width in pixels.
	Width() int

	// Height is also the page's viewport height.
	Height() int
}

type engineWindow struct {
	title string

	// Size limits applied while the user resizes the window.
	maxWidth, maxHeight int
	minWidth, minHeight int

	// width and height are the current framebuffer size in pixels.
	width  int
	height int

	// *glfwWindow once created
	internalWindow any

	onUpdate  func()
	onResize  func(width, height int)
	onScroll  func(delta float32)
	onKeyDown func(keyCode uint32)
	onKeyUp   func(keyCode uint32)
}

var _ Window = &engineWindow{}

// NewWindow opens a 1280x720 "oxy-scroll" window unless options say otherwise.
// The calling goroutine is locked to its OS thread and must be the one that runs ProcessMessages.
//
// Parameters:
//   - options: title, size and size limits
//
// Returns:
//   - Window: the open window
//   - error: GLFW init or window creation failure
func NewWindow(options ...WindowBuilderOption) (Window, error) {
	w := newEngineWindow(options...)
	if err := newPlatformWindow(w); err != nil {
		return nil, err
	}
	return w, nil
}

// newEngineWindow applies options over the defaults without creating a platform window.
func newEngineWindow(options ...WindowBuilderOption) *engineWindow {
	w := &engineWindow{
		title:     "oxy-scroll",
		maxWidth:  3840,
		maxHeight: 2160,
		minWidth:  320,
		minHeight: 200,
		width:     1280,
		height:    720,
	}
	for _, opt := range options {
		opt(w)
	}
	return w
}

func (w *engineWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) SetScrollCallback(callback func(delta float32)) {
	w.onScroll = callback
}

func (w *engineWindow) SetKeyDownCallback(callback func(keyCode uint32)) {
	w.onKeyDown = callback
}

func (w *engineWindow) SetKeyUpCallback(callback func(keyCode uint32)) {
	w.onKeyUp = callback
}

func (w *engineWindow) ClearCallbacks() {
	w.onUpdate = nil
	w.onResize = nil
	w.onScroll = nil
	w.onKeyDown = nil
	w.onKeyUp = nil
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) RequestClose() {
	platformRequestClose(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) ProcessMessages() {
	for w.IsRunning() {
		if succ := platformProcessMessages(w); !succ {
			break
		}

		if w.onUpdate != nil {
			w.onUpdate()
		}

		runtime.Gosched()
	}
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}

// dispatchKey routes a key event to the callbacks. Escape is consumed and reported as a close request.
//
// Parameters:
//   - key: the virtual key code
//   - pressed: true for press and repeat, false for release
//
// Returns:
//   - bool: true if the window should close
func (w *engineWindow) dispatchKey(key uint32, pressed bool) bool {
	if key == common.KeyEsc {
		return pressed
	}
	if pressed {
		if w.onKeyDown != nil {
			w.onKeyDown(key)
		}
		return false
	}
	if w.onKeyUp != nil {
		w.onKeyUp(key)
	}
	return false
}

// dispatchResize records the new framebuffer size and forwards it.
func (w *engineWindow) dispatchResize(width, height int) {
	w.width = width
	w.height = height
	if w.onResize != nil {
		w.onResize(width, height)
	}
}

func (w *engineWindow) dispatchScroll(delta float32) {
	if delta == 0 {
		return
	}
	if w.onScroll != nil {
		w.onScroll(delta)
	}
}
