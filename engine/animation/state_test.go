package animation

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestNewState(t *testing.T) {
	s := NewState(InitialCameraPosition)
	if s.Mode != ModeOrbit {
		t.Errorf("Mode = %v, want orbit", s.Mode)
	}
	if s.CameraAnchor != InitialCameraPosition {
		t.Errorf("CameraAnchor = %v, want %v", s.CameraAnchor, InitialCameraPosition)
	}
	if s.RotationCurrent != 0 || s.TiltCurrent != 0 {
		t.Error("new state is not at rest")
	}
}

func TestApplyScrollTransitions(t *testing.T) {
	s := NewState(InitialCameraPosition)
	camPos := mgl32.Vec3{2, 4.2, 13}

	if s.ApplyScroll(MapScroll(100, 3000, 1000), camPos) {
		t.Fatal("orbit -> orbit reported a transition")
	}
	if s.CameraAnchor != InitialCameraPosition {
		t.Fatal("anchor changed without a transition")
	}

	if !s.ApplyScroll(MapScroll(1200, 3000, 1000), camPos) {
		t.Fatal("orbit -> approach did not report a transition")
	}
	if s.Mode != ModeApproach || s.CameraAnchor != camPos {
		t.Fatalf("after transition mode = %v anchor = %v", s.Mode, s.CameraAnchor)
	}

	if s.ApplyScroll(MapScroll(1200, 3000, 1000), mgl32.Vec3{9, 9, 9}) {
		t.Error("repeated offset reported a second transition")
	}
	if s.CameraAnchor != camPos {
		t.Error("repeated offset moved the anchor")
	}

	back := mgl32.Vec3{4, 0, 4}
	if !s.ApplyScroll(MapScroll(0, 3000, 1000), back) {
		t.Fatal("approach -> orbit did not report a transition")
	}
	if s.Mode != ModeOrbit || s.CameraAnchor != back {
		t.Errorf("after return mode = %v anchor = %v", s.Mode, s.CameraAnchor)
	}
}

func TestNextCameraPositionOrbitKeepsAnchor(t *testing.T) {
	s := NewState(mgl32.Vec3{1, 1, 1})
	pos, anchor := NextCameraPosition(s)
	if !pos.ApproxEqualThreshold(mgl32.Vec3{2, 4.2, 13}, 1e-5) {
		t.Errorf("position = %v, want (2, 4.2, 13)", pos)
	}
	if anchor != s.CameraAnchor {
		t.Errorf("anchor = %v, want unchanged %v", anchor, s.CameraAnchor)
	}
}

func TestNextCameraPositionApproachConverges(t *testing.T) {
	s := NewState(mgl32.Vec3{2, 4.2, 13})
	s.Mode = ModeApproach

	for range 1000 {
		var pos mgl32.Vec3
		pos, s.CameraAnchor = NextCameraPosition(s)
		if pos != s.CameraAnchor {
			t.Fatalf("approach position %v differs from anchor %v", pos, s.CameraAnchor)
		}
	}
	if d := s.CameraAnchor.Sub(ApproachTarget).Len(); d > 1e-3 {
		t.Errorf("distance to approach target after 1000 frames = %v", d)
	}
}

func TestSmoothMovesBothScalars(t *testing.T) {
	s := NewState(InitialCameraPosition)
	s.RotationTarget = 10
	s.TiltTarget = ApproachTilt
	s.Smooth()
	if s.RotationCurrent != 0.5 {
		t.Errorf("RotationCurrent = %v, want 0.5", s.RotationCurrent)
	}
	if want := ApproachTilt * SmoothingRate; math.Abs(float64(s.TiltCurrent-want)) > 1e-6 {
		t.Errorf("TiltCurrent = %v, want %v", s.TiltCurrent, want)
	}
}
