package profiler

import (
	"log"
	"runtime"
	"time"
)

// Report is one interval's worth of frame and memory statistics.
type Report struct {
	// FPS is frames ticked per second over the interval.
	FPS float64
	// Skipped is the number of frames in the interval whose draw was skipped because the renderer was not ready.
	Skipped int
	// HeapMB is live heap memory in MiB.
	HeapMB float64
	// AllocRateMB is heap allocation churn in MiB per second.
	AllocRateMB float64
	// GCCount is the cumulative number of completed GC cycles.
	GCCount uint32
	// MaxPauseUs is the longest GC pause seen during the interval, in microseconds.
	MaxPauseUs uint64
}

// Profiler tracks frame rate, skipped draws and memory statistics.
// Outputs a Report to the log once per interval. Not safe for concurrent use; tick it from the frame loop.
type Profiler struct {
	frameCount     int
	skipCount      int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
	last           Report
	now            func() time.Time
}

// NewProfiler creates a new Profiler reporting every second.
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler() *Profiler {
	return newProfiler(time.Second, time.Now)
}

func newProfiler(interval time.Duration, now func() time.Time) *Profiler {
	return &Profiler{
		lastTime:       now(),
		updateInterval: interval,
		now:            now,
	}
}

// Tick should be called once per frame.
// Logs statistics when the update interval has elapsed.
//
// Parameters:
//   - drawn: false when the frame advanced state without drawing
//
// Returns:
//   - bool: true if a report was produced this tick
func (p *Profiler) Tick(drawn bool) bool {
	p.frameCount++
	if !drawn {
		p.skipCount++
	}

	currentTime := p.now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	runtime.ReadMemStats(&p.memStats)
	seconds := elapsed.Seconds()

	gcCount := p.memStats.NumGC
	var maxPauseUs uint64
	// PauseNs is a circular buffer of the last 256 pauses.
	startIdx := p.lastGCCount
	if gcCount-startIdx > 256 {
		startIdx = gcCount - 256
	}
	for i := startIdx; i < gcCount; i++ {
		if pause := p.memStats.PauseNs[i%256] / 1000; pause > maxPauseUs {
			maxPauseUs = pause
		}
	}

	p.last = Report{
		FPS:         float64(p.frameCount) / seconds,
		Skipped:     p.skipCount,
		HeapMB:      float64(p.memStats.Alloc) / 1024 / 1024,
		AllocRateMB: float64(p.memStats.TotalAlloc-p.lastTotalAlloc) / 1024 / 1024 / seconds,
		GCCount:     gcCount,
		MaxPauseUs:  maxPauseUs,
	}

	log.Printf("[Profiler] FPS: %.2f | Skipped draws: %d | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d (max: %d µs)",
		p.last.FPS, p.last.Skipped, p.last.HeapMB, p.last.AllocRateMB, p.last.GCCount, p.last.MaxPauseUs)

	p.frameCount = 0
	p.skipCount = 0
	p.lastTime = currentTime
	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}

// Last returns the most recent report, or the zero Report before the first interval elapses.
func (p *Profiler) Last() Report {
	return p.last
}
