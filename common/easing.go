package common

// Easing curves map a normalized progress t in [0, 1] to an eased progress in [0, 1].
// Reference: https://easings.net/

// EaseLinear returns t unchanged.
func EaseLinear(t float32) float32 {
	return t
}

// EaseInOutQuad accelerates through the first half and decelerates through the second.
//
//	t < 0.5:  2t²
//	t >= 0.5: 1 - (-2t + 2)² / 2
func EaseInOutQuad(t float32) float32 {
	if t < 0.5 {
		return 2 * t * t
	}
	u := -2*t + 2
	return 1 - u*u/2
}

// Progress returns how far elapsed is through duration, clamped to [0, 1].
// A non-positive duration is treated as already complete.
func Progress(elapsed, duration float32) float32 {
	if duration <= 0 || elapsed >= duration {
		return 1
	}
	if elapsed <= 0 {
		return 0
	}
	return elapsed / duration
}
