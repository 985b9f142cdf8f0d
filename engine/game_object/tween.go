package game_object

import (
	"time"

	"github.com/Carmen-Shannon/oxy-scroll/common"
)

// tween eases a single scalar from one value to another over a fixed duration.
type tween struct {
	from, to float32
	start    time.Time
	duration time.Duration
	ease     func(float32) float32
}

// at samples the tween.
//
// Parameters:
//   - now: the sample time
//
// Returns:
//   - float32: the eased value
//   - bool: true once the duration has elapsed
func (tw *tween) at(now time.Time) (float32, bool) {
	p := common.Progress(float32(now.Sub(tw.start).Seconds()), float32(tw.duration.Seconds()))
	return tw.from + (tw.to-tw.from)*tw.ease(p), p >= 1
}
