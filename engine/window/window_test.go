package window

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-scroll/common"
)

func TestNewEngineWindowDefaults(t *testing.T) {
	w := newEngineWindow()
	if w.Width() != 1280 || w.Height() != 720 {
		t.Errorf("size = %dx%d, want 1280x720", w.Width(), w.Height())
	}
	if w.title != "oxy-scroll" {
		t.Errorf("title = %q", w.title)
	}
}

func TestWindowOptions(t *testing.T) {
	w := newEngineWindow(
		WithTitle("scroll"),
		WithSize(800, 0),
		WithSizeLimits(100, 100, 1000, 900),
	)
	if w.title != "scroll" {
		t.Errorf("title = %q, want scroll", w.title)
	}
	if w.width != 800 || w.height != 720 {
		t.Errorf("size = %dx%d, want 800x720", w.width, w.height)
	}
	if w.minWidth != 100 || w.minHeight != 100 || w.maxWidth != 1000 || w.maxHeight != 900 {
		t.Errorf("limits = %d,%d,%d,%d", w.minWidth, w.minHeight, w.maxWidth, w.maxHeight)
	}
}

func TestDispatchKey(t *testing.T) {
	w := newEngineWindow()
	var down, up []uint32
	w.SetKeyDownCallback(func(k uint32) { down = append(down, k) })
	w.SetKeyUpCallback(func(k uint32) { up = append(up, k) })

	tests := []struct {
		name      string
		key       uint32
		pressed   bool
		wantClose bool
	}{
		{"press T", common.KeyT, true, false},
		{"release T", common.KeyT, false, false},
		{"press space", common.KeySpace, true, false},
		{"release escape", common.KeyEsc, false, false},
		{"press escape", common.KeyEsc, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := w.dispatchKey(tt.key, tt.pressed); got != tt.wantClose {
				t.Errorf("dispatchKey = %v, want %v", got, tt.wantClose)
			}
		})
	}

	if len(down) != 2 || down[0] != common.KeyT || down[1] != common.KeySpace {
		t.Errorf("key down = %v", down)
	}
	if len(up) != 1 || up[0] != common.KeyT {
		t.Errorf("key up = %v", up)
	}
}

func TestDispatchResize(t *testing.T) {
	w := newEngineWindow()
	var gotW, gotH int
	w.SetResizeCallback(func(width, height int) { gotW, gotH = width, height })

	w.dispatchResize(640, 480)
	if gotW != 640 || gotH != 480 {
		t.Errorf("callback got %dx%d, want 640x480", gotW, gotH)
	}
	if w.Width() != 640 || w.Height() != 480 {
		t.Errorf("window size = %dx%d, want 640x480", w.Width(), w.Height())
	}
}

func TestDispatchScroll(t *testing.T) {
	w := newEngineWindow()
	var deltas []float32
	w.SetScrollCallback(func(d float32) { deltas = append(deltas, d) })

	w.dispatchScroll(0)
	w.dispatchScroll(-1)
	w.dispatchScroll(2)
	if len(deltas) != 2 || deltas[0] != -1 || deltas[1] != 2 {
		t.Errorf("deltas = %v, want [-1 2]", deltas)
	}
}

func TestClearCallbacks(t *testing.T) {
	w := newEngineWindow()
	called := false
	w.SetKeyDownCallback(func(uint32) { called = true })
	w.SetScrollCallback(func(float32) { called = true })
	w.ClearCallbacks()

	w.dispatchKey(common.KeyT, true)
	w.dispatchScroll(1)
	if called {
		t.Error("callback fired after ClearCallbacks")
	}
}

func TestUncreatedWindow(t *testing.T) {
	w := newEngineWindow()
	if w.IsRunning() {
		t.Error("window without a platform handle reports running")
	}
	if w.SurfaceDescriptor() != nil {
		t.Error("expected a nil surface descriptor")
	}
	w.RequestClose()
	if err := w.Close(); err == nil {
		t.Error("expected an error closing an uncreated window")
	}
}
