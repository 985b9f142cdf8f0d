package profiler

import (
	"testing"
	"time"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func TestTickReportsEachInterval(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	p := newProfiler(time.Second, clock.now)

	for i := 0; i < 59; i++ {
		clock.t = clock.t.Add(10 * time.Millisecond)
		if p.Tick(i%3 != 0) {
			t.Fatalf("report after %d frames, before the interval elapsed", i+1)
		}
	}

	clock.t = time.Unix(2, 0)
	if !p.Tick(true) {
		t.Fatal("no report after the interval elapsed")
	}

	r := p.Last()
	if r.FPS != 30 {
		t.Errorf("FPS = %v, want 30", r.FPS)
	}
	if r.Skipped != 20 {
		t.Errorf("Skipped = %d, want 20", r.Skipped)
	}
	if r.HeapMB <= 0 {
		t.Errorf("HeapMB = %v, want > 0", r.HeapMB)
	}
}

func TestTickResetsCounters(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	p := newProfiler(time.Second, clock.now)

	clock.t = time.Unix(1, 0)
	p.Tick(false)

	clock.t = time.Unix(2, 0)
	if !p.Tick(true) {
		t.Fatal("expected a second report")
	}
	if r := p.Last(); r.Skipped != 0 || r.FPS != 1 {
		t.Errorf("second report = %+v, want 1 fps and no skips", r)
	}
}
