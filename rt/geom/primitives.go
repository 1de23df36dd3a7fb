package geom

import (
	"math"

	"github.com/gekko3d/glyphspin/rt/core"
	"github.com/go-gl/mathgl/mgl32"
)

// Box builds an axis aligned box centered on the origin.
func Box(width, height, depth float32) *core.Mesh {
	hx, hy, hz := width/2, height/2, depth/2
	m := core.NewMesh()

	corner := func(sx, sy, sz float32) uint32 {
		return m.AddVertex(mgl32.Vec3{sx * hx, sy * hy, sz * hz})
	}
	// Index by sign bits: bit0 = x, bit1 = y, bit2 = z.
	var v [8]uint32
	for i := 0; i < 8; i++ {
		sx, sy, sz := float32(-1), float32(-1), float32(-1)
		if i&1 != 0 {
			sx = 1
		}
		if i&2 != 0 {
			sy = 1
		}
		if i&4 != 0 {
			sz = 1
		}
		v[i] = corner(sx, sy, sz)
	}

	m.AddQuad(v[4], v[5], v[7], v[6]) // +z
	m.AddQuad(v[1], v[0], v[2], v[3]) // -z
	m.AddQuad(v[5], v[1], v[3], v[7]) // +x
	m.AddQuad(v[0], v[4], v[6], v[2]) // -x
	m.AddQuad(v[6], v[7], v[3], v[2]) // +y
	m.AddQuad(v[0], v[1], v[5], v[4]) // -y
	return m
}

// Torus builds a torus lying in the XY plane. The tube sweeps arc radians
// starting at +X, so arc = Pi gives the upper half ring.
func Torus(radius, tube float32, radialSegments, tubularSegments int, arc float64) *core.Mesh {
	if radialSegments < 3 {
		radialSegments = 3
	}
	if tubularSegments < 1 {
		tubularSegments = 1
	}
	m := core.NewMesh()

	for j := 0; j <= radialSegments; j++ {
		v := float64(j) / float64(radialSegments) * math.Pi * 2
		for i := 0; i <= tubularSegments; i++ {
			u := float64(i) / float64(tubularSegments) * arc
			ring := float64(radius) + float64(tube)*math.Cos(v)
			m.AddVertex(mgl32.Vec3{
				float32(ring * math.Cos(u)),
				float32(ring * math.Sin(u)),
				float32(float64(tube) * math.Sin(v)),
			})
		}
	}

	stride := uint32(tubularSegments + 1)
	for j := 1; j <= radialSegments; j++ {
		for i := 1; i <= tubularSegments; i++ {
			a := stride*uint32(j) + uint32(i) - 1
			b := stride*uint32(j-1) + uint32(i) - 1
			c := stride*uint32(j-1) + uint32(i)
			d := stride*uint32(j) + uint32(i)
			m.AddTriangle(a, b, d)
			m.AddTriangle(b, c, d)
		}
	}
	return m
}
