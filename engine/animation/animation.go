// Package animation turns a one-dimensional scroll position into camera motion and object rotation.
//
// Two quantities (rotation and tilt) are eased toward scroll-derived targets every frame with
// fixed-rate exponential smoothing. A discrete mode, Orbit or Approach, is chosen from the scroll
// ratio on every scroll event. Orbit moves the camera along a fixed ellipse driven by the eased
// rotation, Approach glides the camera from wherever it was at the switch toward a fixed point.
package animation

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// SmoothingRate is the fraction of the remaining distance closed per frame by every eased scalar.
	SmoothingRate float32 = 0.05

	// ApproachRate is the per-frame lerp fraction used to pull the camera toward ApproachTarget.
	ApproachRate float32 = 0.05

	// RotationScale converts scroll offset in pixels into a rotation target in radians.
	RotationScale float32 = 0.006

	// ModeThreshold is the scroll ratio at and above which the Approach mode is selected.
	ModeThreshold float32 = 0.5

	// ApproachTilt is the tilt target in radians while the ratio is at or above ModeThreshold.
	ApproachTilt float32 = math.Pi / 2

	// SpinFactor scales the eased rotation into per-object spin.
	SpinFactor float32 = 2
)

var (
	// ApproachTarget is the fixed point the camera converges to in Approach mode.
	ApproachTarget = mgl32.Vec3{5, -3, 3}

	// InitialCameraPosition is where the camera starts before the first frame.
	InitialCameraPosition = mgl32.Vec3{3, 3, 8}

	// LookTarget is the point the camera faces every frame.
	LookTarget = mgl32.Vec3{0, 0, 0}
)

// Orbit ellipse coefficients: x = a·sin(r) + cx, y = b·cos(r) + cy, z = c·cos(r) + cz.
const (
	orbitA, orbitCX float32 = 6, 2
	orbitB, orbitCY float32 = 2.2, 2
	orbitC, orbitCZ float32 = 7, 6
)

// Mode selects the camera behaviour.
type Mode uint8

const (
	// ModeOrbit moves the camera along the orbit ellipse.
	ModeOrbit Mode = iota

	// ModeApproach pulls the camera toward ApproachTarget.
	ModeApproach
)

func (m Mode) String() string {
	switch m {
	case ModeOrbit:
		return "orbit"
	case ModeApproach:
		return "approach"
	default:
		return "unknown"
	}
}

// ModeFor returns the mode for a scroll ratio. The threshold is inclusive on the Approach side.
func ModeFor(ratio float32) Mode {
	if ratio >= ModeThreshold {
		return ModeApproach
	}
	return ModeOrbit
}

// SmoothStep moves current toward target by rate of the remaining distance.
//
// Parameters:
//   - current: the present value
//   - target: the value being approached
//   - rate: fraction of the gap closed, expected in (0, 1)
//
// Returns:
//   - float32: the next value
func SmoothStep(current, target, rate float32) float32 {
	return current + (target-current)*rate
}

// ScrollTargets is the result of mapping one scroll position.
type ScrollTargets struct {
	// RotationTarget is the eased rotation's new target in radians.
	RotationTarget float32

	// TiltTarget is the eased tilt's new target in radians.
	TiltTarget float32

	// Ratio is the fraction of the scrollable range consumed. It is not clamped and can
	// exceed 1 when the offset runs past the scrollable range.
	Ratio float32
}

// MapScroll converts a scroll offset into animation targets.
// A document with no scrollable range (scrollHeight <= viewportHeight) yields ratio 0.
// A NaN or infinite offset is read as the top of the page.
//
// Parameters:
//   - offset: current scroll offset in pixels
//   - scrollHeight: total document height in pixels
//   - viewportHeight: visible height in pixels
//
// Returns:
//   - ScrollTargets: the rotation target, tilt target and scroll ratio
func MapScroll(offset, scrollHeight, viewportHeight float32) ScrollTargets {
	if f := float64(offset); math.IsNaN(f) || math.IsInf(f, 0) {
		offset = 0
	}

	var ratio float32
	if scrollRange := scrollHeight - viewportHeight; scrollRange > 0 {
		ratio = offset / scrollRange
		if f := float64(ratio); math.IsNaN(f) || math.IsInf(f, 0) {
			ratio = 0
		}
	}

	tilt := float32(0)
	if ModeFor(ratio) == ModeApproach {
		tilt = ApproachTilt
	}

	return ScrollTargets{
		RotationTarget: offset * RotationScale,
		TiltTarget:     tilt,
		Ratio:          ratio,
	}
}

// OrbitPosition returns the camera position on the orbit ellipse for rotation r.
func OrbitPosition(r float32) mgl32.Vec3 {
	sin, cos := math.Sincos(float64(r))
	return mgl32.Vec3{
		orbitA*float32(sin) + orbitCX,
		orbitB*float32(cos) + orbitCY,
		orbitC*float32(cos) + orbitCZ,
	}
}

// SpinAngle returns the Z rotation of the body at index for eased rotation r.
// Even indices spin forward, odd indices spin backward.
func SpinAngle(index int, r float32) float32 {
	direction := float32(1)
	if index%2 != 0 {
		direction = -1
	}
	return r * direction * SpinFactor
}
