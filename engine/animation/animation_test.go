package animation

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestSmoothStepConvergesWithoutOvershoot(t *testing.T) {
	tests := []struct {
		name            string
		current, target float32
	}{
		{"upward", 0, 1},
		{"downward", 3, -2},
		{"tilt", 0, ApproachTilt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := tt.current
			prevGap := float32(math.Abs(float64(tt.target - v)))
			for i := 0; i < 10000; i++ {
				v = SmoothStep(v, tt.target, SmoothingRate)
				gap := float32(math.Abs(float64(tt.target - v)))
				if gap > prevGap {
					t.Fatalf("step %d: gap grew from %v to %v", i, prevGap, gap)
				}
				if (tt.target-tt.current)*(tt.target-v) < 0 {
					t.Fatalf("step %d: overshot target %v with %v", i, tt.target, v)
				}
				if gap <= 1e-4 {
					return
				}
				prevGap = gap
			}
			t.Fatalf("did not converge: %v, want %v", v, tt.target)
		})
	}
}

func TestSmoothStepAtTargetIsStable(t *testing.T) {
	if got := SmoothStep(2, 2, SmoothingRate); got != 2 {
		t.Errorf("SmoothStep(2, 2) = %v, want 2", got)
	}
}

func TestMapScroll(t *testing.T) {
	tests := []struct {
		name                 string
		offset, height, view float32
		wantRatio, wantTilt  float32
	}{
		{"top of page", 0, 3000, 1000, 0, 0},
		{"just below threshold", 999, 3000, 1000, 0.4995, 0},
		{"exactly at threshold", 1000, 3000, 1000, 0.5, ApproachTilt},
		{"bottom of page", 2000, 3000, 1000, 1, ApproachTilt},
		{"past the end is not clamped", 3000, 3000, 1000, 1.5, ApproachTilt},
		{"zero range", 500, 1000, 1000, 0, 0},
		{"negative range", 500, 800, 1000, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapScroll(tt.offset, tt.height, tt.view)
			if math.Abs(float64(got.Ratio-tt.wantRatio)) > 1e-6 {
				t.Errorf("Ratio = %v, want %v", got.Ratio, tt.wantRatio)
			}
			if got.TiltTarget != tt.wantTilt {
				t.Errorf("TiltTarget = %v, want %v", got.TiltTarget, tt.wantTilt)
			}
			if want := tt.offset * RotationScale; got.RotationTarget != want {
				t.Errorf("RotationTarget = %v, want %v", got.RotationTarget, want)
			}
		})
	}
}

func TestMapScrollNonFinite(t *testing.T) {
	tests := []struct {
		name   string
		offset float32
	}{
		{"positive infinity", float32(math.Inf(1))},
		{"negative infinity", float32(math.Inf(-1))},
		{"nan", float32(math.NaN())},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapScroll(tt.offset, 3000, 1000)
			if got != (ScrollTargets{}) {
				t.Errorf("MapScroll(%v) = %+v, want the top-of-page targets", tt.offset, got)
			}
		})
	}

	s := NewState(InitialCameraPosition)
	s.ApplyScroll(MapScroll(float32(math.NaN()), 3000, 1000), InitialCameraPosition)
	s.Smooth()
	if math.IsNaN(float64(s.RotationCurrent)) {
		t.Error("NaN offset reached RotationCurrent")
	}
}

func TestModeFor(t *testing.T) {
	tests := []struct {
		ratio float32
		want  Mode
	}{
		{-0.1, ModeOrbit},
		{0, ModeOrbit},
		{0.4999, ModeOrbit},
		{0.5, ModeApproach},
		{0.6, ModeApproach},
		{2, ModeApproach},
	}

	for _, tt := range tests {
		if got := ModeFor(tt.ratio); got != tt.want {
			t.Errorf("ModeFor(%v) = %v, want %v", tt.ratio, got, tt.want)
		}
	}
}

func TestOrbitPositionAtZero(t *testing.T) {
	got := OrbitPosition(0)
	if !got.ApproxEqualThreshold(mgl32.Vec3{2, 4.2, 13}, 1e-5) {
		t.Errorf("OrbitPosition(0) = %v, want (2, 4.2, 13)", got)
	}
}

func TestOrbitPositionQuarterTurn(t *testing.T) {
	got := OrbitPosition(math.Pi / 2)
	if !got.ApproxEqualThreshold(mgl32.Vec3{8, 2, 6}, 1e-5) {
		t.Errorf("OrbitPosition(π/2) = %v, want (8, 2, 6)", got)
	}
}

func TestSpinAngle(t *testing.T) {
	r := float32(math.Pi / 4)
	even, odd := SpinAngle(0, r), SpinAngle(1, r)

	if math.Abs(float64(even-math.Pi/2)) > 1e-6 {
		t.Errorf("SpinAngle(0, π/4) = %v, want π/2", even)
	}
	if math.Abs(float64(odd+math.Pi/2)) > 1e-6 {
		t.Errorf("SpinAngle(1, π/4) = %v, want -π/2", odd)
	}
	if SpinAngle(2, r) != even || SpinAngle(3, r) != odd {
		t.Error("spin direction does not alternate by parity")
	}
}

func TestModeString(t *testing.T) {
	if ModeOrbit.String() != "orbit" || ModeApproach.String() != "approach" || Mode(9).String() != "unknown" {
		t.Error("unexpected Mode.String output")
	}
}
