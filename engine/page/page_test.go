package page

import "testing"

func TestNewPage(t *testing.T) {
	p := NewPage(3000, 800)
	if p.ScrollY() != 0 {
		t.Errorf("ScrollY = %v, want 0", p.ScrollY())
	}
	if p.MaxScroll() != 2200 {
		t.Errorf("MaxScroll = %v, want 2200", p.MaxScroll())
	}
	if NewPage(500, 800).MaxScroll() != 0 {
		t.Error("short document should not scroll")
	}
}

func TestScrollClamping(t *testing.T) {
	tests := []struct {
		name string
		do   func(p Page)
		want float32
	}{
		{"by within range", func(p Page) { p.ScrollBy(100) }, 100},
		{"by past end", func(p Page) { p.ScrollBy(5000) }, 2200},
		{"by before start", func(p Page) { p.ScrollBy(-50) }, 0},
		{"to middle", func(p Page) { p.ScrollTo(1100) }, 1100},
		{"to past end", func(p Page) { p.ScrollTo(9999) }, 2200},
		{"to negative", func(p Page) { p.ScrollTo(-1) }, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPage(3000, 800)
			tt.do(p)
			if got := p.ScrollY(); got != tt.want {
				t.Errorf("ScrollY = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestListenersFireOnlyOnChange(t *testing.T) {
	p := NewPage(3000, 800)
	var got []float32
	p.Subscribe(func(y float32) { got = append(got, y) })

	p.ScrollTo(400)
	p.ScrollTo(400)
	p.ScrollBy(-1000)
	p.ScrollBy(-10)

	if len(got) != 2 || got[0] != 400 || got[1] != 0 {
		t.Errorf("listener calls = %v, want [400 0]", got)
	}
}

func TestListenerReadsPage(t *testing.T) {
	p := NewPage(3000, 800)
	var ratio float32
	p.Subscribe(func(y float32) {
		ratio = p.ScrollY() / (p.ScrollHeight() - p.InnerHeight())
	})
	p.ScrollTo(1100)
	if ratio != 0.5 {
		t.Errorf("ratio = %v, want 0.5", ratio)
	}
}

func TestUnsubscribe(t *testing.T) {
	p := NewPage(3000, 800)
	var a, b int
	idA := p.Subscribe(func(float32) { a++ })
	p.Subscribe(func(float32) { b++ })

	p.ScrollBy(10)
	p.Unsubscribe(idA)
	p.Unsubscribe(42)
	p.ScrollBy(10)

	if a != 1 || b != 2 {
		t.Errorf("calls a=%d b=%d, want 1 and 2", a, b)
	}
	if id := p.Subscribe(nil); id != -1 {
		t.Errorf("Subscribe(nil) = %d, want -1", id)
	}
}

func TestSetInnerHeightReclamps(t *testing.T) {
	p := NewPage(3000, 800)
	p.ScrollTo(2200)

	var got []float32
	p.Subscribe(func(y float32) { got = append(got, y) })

	p.SetInnerHeight(1000)
	if p.ScrollY() != 2000 {
		t.Errorf("ScrollY = %v, want 2000", p.ScrollY())
	}
	p.SetInnerHeight(0)
	if p.InnerHeight() != 1000 {
		t.Errorf("InnerHeight = %v, want 1000 after ignored resize", p.InnerHeight())
	}
	p.SetInnerHeight(600)
	if len(got) != 1 || got[0] != 2000 {
		t.Errorf("listener calls = %v, want [2000]", got)
	}
}
