package material

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-scroll/common"
)

func TestNewMaterialSolid(t *testing.T) {
	m := NewMaterial(WithName("torus"), WithBaseColor(0.2, 0.6, 1))

	if m.Textured() {
		t.Error("solid material reports textured")
	}
	if m.PipelineKey() != PipelineKeyTorus {
		t.Errorf("PipelineKey() = %q, want %q", m.PipelineKey(), PipelineKeyTorus)
	}
	if got := m.BindGroupProvider().Label(); got != "torus_material" {
		t.Errorf("provider label = %q, want %q", got, "torus_material")
	}
	u := m.Uniform()
	if u.BaseColor != [4]float32{0.2, 0.6, 1, 1} {
		t.Errorf("uniform base color = %v", u.BaseColor)
	}
	if u.Size() != 16 || len(u.Marshal()) != 16 {
		t.Errorf("uniform size = %d, marshal = %d, want 16", u.Size(), len(u.Marshal()))
	}
}

func TestNewMaterialTextured(t *testing.T) {
	layer := common.TextureStagingData{Pixels: make([]byte, 4), Width: 1, Height: 1}
	m := NewMaterial(WithTextures(layer, layer))

	if !m.Textured() {
		t.Fatal("textured material reports solid")
	}
	if m.PipelineKey() != PipelineKeyTextured {
		t.Errorf("PipelineKey() = %q, want %q", m.PipelineKey(), PipelineKeyTextured)
	}
	if len(m.Textures()) != 2 {
		t.Errorf("len(Textures()) = %d, want 2", len(m.Textures()))
	}
}
