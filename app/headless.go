package app

import (
	"context"
	"log"
	"sort"
	"time"
)

// RunHeadless drives cfg.Headless.Frames frames at cfg.Headless.Hz without a window, replaying the
// scripted scroll events before the frames they name. An Hz of 0 runs frames back to back.
// The final animation state is logged.
//
// Parameters:
//   - ctx: stops the run early
//
// Returns:
//   - error: ErrNotMounted, or ctx.Err() if cancelled
func (a *App) RunHeadless(ctx context.Context) error {
	a.mu.Lock()
	mounted, eng, pg := a.mounted, a.eng, a.page
	cfg := a.cfg.Headless
	a.mu.Unlock()
	if !mounted {
		return ErrNotMounted
	}

	script := make([]ScrollEvent, len(cfg.Script))
	copy(script, cfg.Script)
	sort.SliceStable(script, func(i, j int) bool { return script[i].Frame < script[j].Frame })

	var tick <-chan time.Time
	if cfg.Hz > 0 {
		ticker := time.NewTicker(time.Duration(float64(time.Second) / cfg.Hz))
		defer ticker.Stop()
		tick = ticker.C
	}

	next := 0
	for frame := 0; frame < cfg.Frames; frame++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		for next < len(script) && script[next].Frame <= frame {
			pg.ScrollTo(script[next].Offset)
			next++
		}

		eng.Frame()

		if tick != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-tick:
			}
		}
	}

	s := a.State()
	log.Printf("[Engine] headless run done: %d frames, mode %s, ratio %.3f, rotation %.3f/%.3f, tilt %.3f/%.3f, camera %v",
		cfg.Frames, s.Mode, s.Ratio, s.RotationCurrent, s.RotationTarget, s.TiltCurrent, s.TiltTarget, a.ctrl.Camera().Position())
	return nil
}
