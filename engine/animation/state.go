package animation

import (
	"github.com/Carmen-Shannon/oxy-scroll/common"
	"github.com/go-gl/mathgl/mgl32"
)

// State is the complete animation record. It is written by scroll handling (targets, mode, anchor)
// and by the per-frame advance (current values, anchor while approaching).
type State struct {
	RotationCurrent float32
	RotationTarget  float32

	TiltCurrent float32
	TiltTarget  float32

	// CameraAnchor is the camera position captured at the last mode change. While approaching
	// it is also the interpolated camera position.
	CameraAnchor mgl32.Vec3

	Mode Mode

	// Ratio is the scroll ratio from the most recent scroll event.
	Ratio float32
}

// NewState returns the starting state: no rotation, no tilt, orbiting, anchored at anchor.
func NewState(anchor mgl32.Vec3) State {
	return State{
		CameraAnchor: anchor,
		Mode:         ModeOrbit,
	}
}

// ApplyScroll stores new targets and runs the mode state machine. When the mode changes the
// anchor is replaced by cameraPosition, which must be the camera's position as last rendered.
//
// Parameters:
//   - targets: output of MapScroll for the current scroll position
//   - cameraPosition: the camera's current world-space position
//
// Returns:
//   - bool: true if the mode changed
func (s *State) ApplyScroll(targets ScrollTargets, cameraPosition mgl32.Vec3) bool {
	s.RotationTarget = targets.RotationTarget
	s.TiltTarget = targets.TiltTarget
	s.Ratio = targets.Ratio

	next := ModeFor(targets.Ratio)
	if next == s.Mode {
		return false
	}
	s.Mode = next
	s.CameraAnchor = cameraPosition
	return true
}

// Smooth eases rotation and tilt one frame toward their targets.
func (s *State) Smooth() {
	s.RotationCurrent = SmoothStep(s.RotationCurrent, s.RotationTarget, SmoothingRate)
	s.TiltCurrent = SmoothStep(s.TiltCurrent, s.TiltTarget, SmoothingRate)
}

// NextCameraPosition computes this frame's camera position from s without modifying it.
// The second result is the anchor to store back: unchanged while orbiting, one lerp step
// closer to ApproachTarget while approaching.
func NextCameraPosition(s State) (position, anchor mgl32.Vec3) {
	if s.Mode == ModeApproach {
		anchor = common.LerpVec3(s.CameraAnchor, ApproachTarget, ApproachRate)
		return anchor, anchor
	}
	return OrbitPosition(s.RotationCurrent), s.CameraAnchor
}
