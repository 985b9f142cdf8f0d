package model

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestNewTorusCounts(t *testing.T) {
	m := NewTorus(DefaultTorusRadius, DefaultTorusTube, DefaultTorusRadialSegments, DefaultTorusTubularSegments)

	wantVertices := (DefaultTorusRadialSegments + 1) * (DefaultTorusTubularSegments + 1)
	if got := len(m.Vertices()); got != wantVertices {
		t.Errorf("vertex count = %d, want %d", got, wantVertices)
	}
	wantIndices := DefaultTorusRadialSegments * DefaultTorusTubularSegments * 6
	if got := m.IndexCount(); got != wantIndices {
		t.Errorf("index count = %d, want %d", got, wantIndices)
	}
	if got := len(m.VertexData()); got != wantVertices*32 {
		t.Errorf("vertex bytes = %d, want %d", got, wantVertices*32)
	}
	if got := len(m.IndexData()); got != wantIndices*4 {
		t.Errorf("index bytes = %d, want %d", got, wantIndices*4)
	}
}

func TestNewTorusGeometry(t *testing.T) {
	const radius, tube = 1, 0.4
	m := NewTorus(radius, tube, 8, 16)

	for i, v := range m.Vertices() {
		pos := mgl32.Vec3(v.Position)
		ringDir := mgl32.Vec3{pos.X(), pos.Y(), 0}.Normalize()
		centre := ringDir.Mul(radius)
		if d := pos.Sub(centre).Len(); math.Abs(float64(d-tube)) > 1e-4 {
			t.Fatalf("vertex %d is %v from the tube centre, want %v", i, d, tube)
		}
		if l := mgl32.Vec3(v.Normal).Len(); math.Abs(float64(l-1)) > 1e-4 {
			t.Fatalf("normal %d has length %v", i, l)
		}
	}
	for i, idx := range m.Indices() {
		if int(idx) >= len(m.Vertices()) {
			t.Fatalf("index %d = %d out of range", i, idx)
		}
	}
}

func TestNewTorusClampsSegments(t *testing.T) {
	m := NewTorus(1, 0.4, 0, 1)
	if got := m.IndexCount(); got != 3*3*6 {
		t.Errorf("index count = %d, want %d", got, 3*3*6)
	}
}

func TestNewBox(t *testing.T) {
	m := NewBox(2, 2, 2)

	if len(m.Vertices()) != 24 || m.IndexCount() != 36 {
		t.Fatalf("box has %d vertices and %d indices, want 24 and 36", len(m.Vertices()), m.IndexCount())
	}

	for i, v := range m.Vertices() {
		for axis := range 3 {
			if math.Abs(float64(v.Position[axis])) != 1 {
				t.Fatalf("vertex %d position %v not on the unit cube corners", i, v.Position)
			}
		}
		if mgl32.Vec3(v.Position).Dot(mgl32.Vec3(v.Normal)) <= 0 {
			t.Errorf("vertex %d normal %v points inward", i, v.Normal)
		}
	}

	verts := m.Vertices()
	idx := m.Indices()
	for tri := 0; tri < len(idx); tri += 3 {
		a := mgl32.Vec3(verts[idx[tri]].Position)
		b := mgl32.Vec3(verts[idx[tri+1]].Position)
		c := mgl32.Vec3(verts[idx[tri+2]].Position)
		n := mgl32.Vec3(verts[idx[tri]].Normal)
		if b.Sub(a).Cross(c.Sub(a)).Dot(n) <= 0 {
			t.Errorf("triangle %d is not counter-clockwise from outside", tri/3)
		}
	}
}

func TestNewBoxExtents(t *testing.T) {
	m := NewBox(4, 2, 1)
	var maxAbs mgl32.Vec3
	for _, v := range m.Vertices() {
		for axis := range 3 {
			maxAbs[axis] = max(maxAbs[axis], float32(math.Abs(float64(v.Position[axis]))))
		}
	}
	if maxAbs != (mgl32.Vec3{2, 1, 0.5}) {
		t.Errorf("half extents = %v, want (2, 1, 0.5)", maxAbs)
	}
}

func TestGPUVertexMarshal(t *testing.T) {
	v := GPUVertex{Position: [3]float32{1, 2, 3}, Normal: [3]float32{0, 1, 0}, TexCoord: [2]float32{0.5, 0.25}}
	if v.Size() != 32 {
		t.Fatalf("Size() = %d, want 32", v.Size())
	}
	buf := v.Marshal()
	raw := NewModel(WithGeometry([]GPUVertex{v}, nil)).VertexData()
	if string(buf) != string(raw) {
		t.Error("Marshal output differs from the in-memory vertex layout")
	}
}
