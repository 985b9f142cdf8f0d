package page

import (
	"log"
	"math"
	"sort"
	"sync"
)

// ScrollListener receives the new vertical scroll offset after it changes.
type ScrollListener func(scrollY float32)

// Page is a scrollable document of fixed height viewed through a window of InnerHeight pixels.
// Offsets are clamped to [0, MaxScroll] the way a browser clamps window.scrollY.
type Page interface {
	// ScrollY returns the current vertical scroll offset in pixels.
	ScrollY() float32

	// ScrollHeight returns the total document height in pixels.
	ScrollHeight() float32

	// InnerHeight returns the visible viewport height in pixels.
	InnerHeight() float32

	// MaxScroll returns the largest reachable offset, ScrollHeight - InnerHeight or 0.
	MaxScroll() float32

	// ScrollBy moves the offset by delta pixels.
	//
	// Parameters:
	//   - delta: pixels to scroll, positive moves down the document
	ScrollBy(delta float32)

	// ScrollTo jumps to an absolute offset.
	ScrollTo(y float32)

	// SetInnerHeight changes the viewport height and re-clamps the offset.
	//
	// Parameters:
	//   - height: new viewport height in pixels, ignored when not positive
	SetInnerHeight(height float32)

	// Subscribe registers a listener fired each time ScrollY changes.
	//
	// Parameters:
	//   - fn: the listener
	//
	// Returns:
	//   - int: subscription id for Unsubscribe
	Subscribe(fn ScrollListener) int

	// Unsubscribe removes a listener. Unknown ids are ignored.
	Unsubscribe(id int)
}

type page struct {
	mu           sync.Mutex
	scrollY      float32
	scrollHeight float32
	innerHeight  float32
	nextID       int
	listeners    map[int]ScrollListener
}

var _ Page = &page{}

// NewPage creates a Page with the given document and viewport heights, scrolled to the top.
//
// Parameters:
//   - scrollHeight: total document height in pixels
//   - innerHeight: viewport height in pixels
//
// Returns:
//   - Page: the page
func NewPage(scrollHeight, innerHeight float32) Page {
	if scrollHeight < 0 {
		scrollHeight = 0
	}
	if innerHeight < 0 {
		innerHeight = 0
	}
	return &page{
		scrollHeight: scrollHeight,
		innerHeight:  innerHeight,
		listeners:    make(map[int]ScrollListener),
	}
}

func (p *page) ScrollY() float32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.scrollY
}

func (p *page) ScrollHeight() float32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.scrollHeight
}

func (p *page) InnerHeight() float32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.innerHeight
}

func (p *page) MaxScroll() float32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.maxScrollLocked()
}

func (p *page) ScrollBy(delta float32) {
	p.mu.Lock()
	y := p.scrollY + delta
	p.mu.Unlock()
	p.ScrollTo(y)
}

func (p *page) ScrollTo(y float32) {
	p.mu.Lock()
	changed := p.setScrollLocked(y)
	p.mu.Unlock()
	if changed {
		p.notify()
	}
}

func (p *page) SetInnerHeight(height float32) {
	if height <= 0 {
		return
	}
	p.mu.Lock()
	p.innerHeight = height
	changed := p.setScrollLocked(p.scrollY)
	p.mu.Unlock()
	if changed {
		p.notify()
	}
}

func (p *page) Subscribe(fn ScrollListener) int {
	if fn == nil {
		return -1
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	id := p.nextID
	p.nextID++
	p.listeners[id] = fn
	return id
}

func (p *page) Unsubscribe(id int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.listeners, id)
}

func (p *page) maxScrollLocked() float32 {
	if m := p.scrollHeight - p.innerHeight; m > 0 {
		return m
	}
	return 0
}

// setScrollLocked clamps y and stores it, reporting whether the offset moved.
func (p *page) setScrollLocked(y float32) bool {
	if y < 0 || math.IsNaN(float64(y)) {
		y = 0
	}
	if m := p.maxScrollLocked(); y > m {
		y = m
	}
	if y == p.scrollY {
		return false
	}
	log.Printf("[Page] scrollY %.1f -> %.1f of %.1f", p.scrollY, y, p.scrollHeight)
	p.scrollY = y
	return true
}

// notify calls listeners in subscription order outside the lock, so a listener may read the page.
func (p *page) notify() {
	p.mu.Lock()
	y := p.scrollY
	ids := make([]int, 0, len(p.listeners))
	for id := range p.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	fns := make([]ScrollListener, 0, len(ids))
	for _, id := range ids {
		fns = append(fns, p.listeners[id])
	}
	p.mu.Unlock()

	for _, fn := range fns {
		fn(y)
	}
}
