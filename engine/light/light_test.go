package light

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-scroll/common"
	"github.com/go-gl/mathgl/mgl32"
)

func TestNewLightDefaults(t *testing.T) {
	l := NewLight(LightTypeDirectional, WithPosition(3, 3, 3))

	if l.Color() != (mgl32.Vec3{1, 1, 1}) || l.Intensity() != 1 || !l.Enabled() {
		t.Errorf("defaults: color %v intensity %v enabled %v", l.Color(), l.Intensity(), l.Enabled())
	}
	if l.Position() != (mgl32.Vec3{3, 3, 3}) {
		t.Errorf("Position() = %v, want (3, 3, 3)", l.Position())
	}
}

func TestNewLightUniform(t *testing.T) {
	tests := []struct {
		name                 string
		lights               []Light
		wantDir, wantAmbient float32
		wantPosition         [3]float32
	}{
		{
			name: "directional and ambient",
			lights: []Light{
				NewLight(LightTypeDirectional, WithPosition(3, 3, 3)),
				NewLight(LightTypeAmbient, WithIntensity(0.5)),
			},
			wantDir: 1, wantAmbient: 0.5, wantPosition: [3]float32{3, 3, 3},
		},
		{
			name: "disabled lights are skipped",
			lights: []Light{
				NewLight(LightTypeDirectional, WithPosition(9, 9, 9), WithEnabled(false)),
				NewLight(LightTypeDirectional, WithPosition(1, 2, 3), WithIntensity(2)),
			},
			wantDir: 2, wantPosition: [3]float32{1, 2, 3},
		},
		{
			name:   "first of each type wins",
			lights: []Light{NewLight(LightTypeAmbient, WithIntensity(0.25)), NewLight(LightTypeAmbient), nil},
			wantAmbient: 0.25,
		},
		{name: "no lights"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := NewLightUniform(tt.lights...)
			if u.DirectionalIntensity != tt.wantDir {
				t.Errorf("DirectionalIntensity = %v, want %v", u.DirectionalIntensity, tt.wantDir)
			}
			if u.AmbientIntensity != tt.wantAmbient {
				t.Errorf("AmbientIntensity = %v, want %v", u.AmbientIntensity, tt.wantAmbient)
			}
			if u.DirectionalPosition != tt.wantPosition {
				t.Errorf("DirectionalPosition = %v, want %v", u.DirectionalPosition, tt.wantPosition)
			}
		})
	}
}

func TestGPULightUniformMarshal(t *testing.T) {
	u := NewLightUniform(NewLight(LightTypeDirectional, WithPosition(3, 3, 3)), NewLight(LightTypeAmbient))
	if u.Size() != 48 {
		t.Fatalf("Size() = %d, want 48", u.Size())
	}
	buf := u.Marshal()
	if string(buf) != string(common.StructToBytes(&u)) {
		t.Error("Marshal output differs from the in-memory layout")
	}
}
