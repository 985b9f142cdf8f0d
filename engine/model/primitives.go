package model

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Default primitive dimensions.
const (
	DefaultTorusRadius          float32 = 1
	DefaultTorusTube            float32 = 0.4
	DefaultTorusRadialSegments          = 64
	DefaultTorusTubularSegments         = 200

	DefaultBoxSize float32 = 2
)

// NewTorus generates a torus lying in the XY plane, centred on the origin.
// The ring has radius radius and the tube has radius tube. radialSegments subdivide the tube
// cross-section and tubularSegments subdivide the ring. Segment counts below 3 are raised to 3.
//
// Parameters:
//   - radius: distance from the torus centre to the tube centre
//   - tube: radius of the tube
//   - radialSegments: subdivisions around the tube
//   - tubularSegments: subdivisions around the ring
//
// Returns:
//   - Model: the torus mesh named "torus"
func NewTorus(radius, tube float32, radialSegments, tubularSegments int) Model {
	radialSegments = max(radialSegments, 3)
	tubularSegments = max(tubularSegments, 3)

	vertices := make([]GPUVertex, 0, (radialSegments+1)*(tubularSegments+1))
	for j := 0; j <= radialSegments; j++ {
		v := float64(j) / float64(radialSegments) * 2 * math.Pi
		sinV, cosV := math.Sincos(v)
		for i := 0; i <= tubularSegments; i++ {
			u := float64(i) / float64(tubularSegments) * 2 * math.Pi
			sinU, cosU := math.Sincos(u)

			ring := float64(radius) + float64(tube)*cosV
			pos := mgl32.Vec3{
				float32(ring * cosU),
				float32(ring * sinU),
				float32(float64(tube) * sinV),
			}
			centre := mgl32.Vec3{radius * float32(cosU), radius * float32(sinU), 0}
			normal := pos.Sub(centre).Normalize()

			vertices = append(vertices, GPUVertex{
				Position: pos,
				Normal:   normal,
				TexCoord: [2]float32{float32(i) / float32(tubularSegments), float32(j) / float32(radialSegments)},
			})
		}
	}

	stride := uint32(tubularSegments + 1)
	indices := make([]uint32, 0, radialSegments*tubularSegments*6)
	for j := uint32(1); j <= uint32(radialSegments); j++ {
		for i := uint32(1); i <= uint32(tubularSegments); i++ {
			a := stride*j + i - 1
			b := stride*(j-1) + i - 1
			c := stride*(j-1) + i
			d := stride*j + i
			indices = append(indices, a, b, d, b, c, d)
		}
	}

	return NewModel(WithName("torus"), WithGeometry(vertices, indices))
}

// boxFace describes one face by its outward normal and two in-plane axes with u × v = n.
type boxFace struct {
	n, u, v mgl32.Vec3
}

var boxFaces = [6]boxFace{
	{n: mgl32.Vec3{1, 0, 0}, u: mgl32.Vec3{0, 0, -1}, v: mgl32.Vec3{0, 1, 0}},
	{n: mgl32.Vec3{-1, 0, 0}, u: mgl32.Vec3{0, 0, 1}, v: mgl32.Vec3{0, 1, 0}},
	{n: mgl32.Vec3{0, 1, 0}, u: mgl32.Vec3{1, 0, 0}, v: mgl32.Vec3{0, 0, -1}},
	{n: mgl32.Vec3{0, -1, 0}, u: mgl32.Vec3{1, 0, 0}, v: mgl32.Vec3{0, 0, 1}},
	{n: mgl32.Vec3{0, 0, 1}, u: mgl32.Vec3{1, 0, 0}, v: mgl32.Vec3{0, 1, 0}},
	{n: mgl32.Vec3{0, 0, -1}, u: mgl32.Vec3{-1, 0, 0}, v: mgl32.Vec3{0, 1, 0}},
}

// NewBox generates an axis-aligned box centred on the origin. Every face carries the full
// 0..1 UV range and counter-clockwise winding when seen from outside.
//
// Parameters:
//   - width, height, depth: extents along X, Y and Z
//
// Returns:
//   - Model: the box mesh named "box"
func NewBox(width, height, depth float32) Model {
	half := mgl32.Vec3{width / 2, height / 2, depth / 2}
	scale := func(p mgl32.Vec3) mgl32.Vec3 {
		return mgl32.Vec3{p[0] * half[0], p[1] * half[1], p[2] * half[2]}
	}

	corners := [4]struct {
		su, sv float32
		uv     [2]float32
	}{
		{-1, -1, [2]float32{0, 1}},
		{1, -1, [2]float32{1, 1}},
		{1, 1, [2]float32{1, 0}},
		{-1, 1, [2]float32{0, 0}},
	}

	vertices := make([]GPUVertex, 0, 24)
	indices := make([]uint32, 0, 36)
	for _, f := range boxFaces {
		base := uint32(len(vertices))
		for _, c := range corners {
			p := f.n.Add(f.u.Mul(c.su)).Add(f.v.Mul(c.sv))
			vertices = append(vertices, GPUVertex{
				Position: scale(p),
				Normal:   f.n,
				TexCoord: c.uv,
			})
		}
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}

	return NewModel(WithName("box"), WithGeometry(vertices, indices))
}
