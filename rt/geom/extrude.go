package geom

import (
	"math"

	"github.com/gekko3d/glyphspin/rt/core"
	"github.com/go-gl/mathgl/mgl32"
)

// Bevel rounds the rim between the caps and the walls. Thickness is the
// depth added in front of and behind the body, Size how far the body walls
// stand out from the outline. Segments is the number of steps per rim.
type Bevel struct {
	Thickness float32
	Size      float32
	Segments  int
}

func (b Bevel) enabled() bool {
	return b.Segments > 0 && (b.Thickness > 0 || b.Size != 0)
}

// Extrude turns a filled 2D outline into a solid spanning z = 0..depth:
// a front cap, a back cap and one wall per contour edge.
func Extrude(contours []Contour, depth float32) *core.Mesh {
	return ExtrudeBevel(contours, depth, Bevel{})
}

// ExtrudeBevel extrudes like Extrude and adds a quarter-round bevel on both
// sides. The caps keep the original outline at z = -Thickness and
// z = depth+Thickness; the body walls between z = 0 and z = depth are offset
// away from the filled region by Size.
func ExtrudeBevel(contours []Contour, depth float32, bevel Bevel) *core.Mesh {
	if !bevel.enabled() {
		bevel = Bevel{}
	}
	m := core.NewMesh()

	for _, tz := range Fill(contours) {
		addCap(m, tz, depth+bevel.Thickness, true)
		addCap(m, tz, -bevel.Thickness, false)
	}

	var cleaned []Contour
	for _, c := range contours {
		if c = c.Clean(); len(c) >= 3 {
			cleaned = append(cleaned, c)
		}
	}

	layers := wallLayers(depth, bevel)
	for i, c := range cleaned {
		out := outwardSign(cleaned, i)
		rings := make([]Contour, len(layers))
		for k, l := range layers {
			rings[k] = offsetContour(c, l.offset*out)
		}
		for k := 0; k+1 < len(layers); k++ {
			addWall(m, rings[k], layers[k].z, rings[k+1], layers[k+1].z)
		}
	}
	return m
}

type wallLayer struct {
	z, offset float32
}

// wallLayers lists the rings from the back cap rim to the front cap rim.
func wallLayers(depth float32, b Bevel) []wallLayer {
	if b.Segments == 0 {
		return []wallLayer{{z: 0}, {z: depth}}
	}
	step := func(k int) (float32, float32) {
		a := float64(k) / float64(b.Segments) * math.Pi / 2
		return b.Thickness * float32(math.Cos(a)), b.Size * float32(math.Sin(a))
	}
	layers := make([]wallLayer, 0, 2*(b.Segments+1))
	for k := 0; k <= b.Segments; k++ {
		z, off := step(k)
		layers = append(layers, wallLayer{z: -z, offset: off})
	}
	for k := b.Segments; k >= 0; k-- {
		z, off := step(k)
		layers = append(layers, wallLayer{z: depth + z, offset: off})
	}
	return layers
}

func addWall(m *core.Mesh, r0 Contour, z0 float32, r1 Contour, z1 float32) {
	n := len(r0)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		a := m.AddVertex(mgl32.Vec3{r0[i].X(), r0[i].Y(), z0})
		b := m.AddVertex(mgl32.Vec3{r0[j].X(), r0[j].Y(), z0})
		c := m.AddVertex(mgl32.Vec3{r1[j].X(), r1[j].Y(), z1})
		d := m.AddVertex(mgl32.Vec3{r1[i].X(), r1[i].Y(), z1})
		m.AddQuad(a, b, c, d)
	}
}

// outwardSign is +1 when the right-hand normal of contour i points away
// from the filled region, -1 otherwise. A contour nested in an odd number
// of others is a hole.
func outwardSign(contours []Contour, i int) float32 {
	hole := false
	for j, other := range contours {
		if j != i && Contains([]Contour{other}, contours[i][0]) {
			hole = !hole
		}
	}
	if (contours[i].Area() > 0) != hole {
		return 1
	}
	return -1
}

// Miters are limited so sharp corners do not spike.
const minMiterDenom = 0.25

// offsetContour moves every vertex by d along the mitered right-hand normal
// of its two edges.
func offsetContour(c Contour, d float32) Contour {
	if d == 0 {
		return c
	}
	n := len(c)
	out := make(Contour, n)
	for i := range c {
		prev, next := c[(i+n-1)%n], c[(i+1)%n]
		n1 := rightNormal(c[i].Sub(prev))
		n2 := rightNormal(next.Sub(c[i]))
		denom := max(1+n1.Dot(n2), minMiterDenom)
		miter := n1.Add(n2).Mul(1 / denom)
		out[i] = c[i].Add(miter.Mul(d))
	}
	return out
}

func rightNormal(e mgl32.Vec2) mgl32.Vec2 {
	l := e.Len()
	if l < 1e-9 {
		return mgl32.Vec2{}
	}
	return mgl32.Vec2{e.Y() / l, -e.X() / l}
}

func addCap(m *core.Mesh, tz Trapezoid, z float32, front bool) {
	a := m.AddVertex(mgl32.Vec3{tz.Left0, tz.Y0, z})
	b := m.AddVertex(mgl32.Vec3{tz.Right0, tz.Y0, z})
	c := m.AddVertex(mgl32.Vec3{tz.Right1, tz.Y1, z})
	d := m.AddVertex(mgl32.Vec3{tz.Left1, tz.Y1, z})
	if front {
		m.AddQuad(a, b, c, d)
	} else {
		m.AddQuad(a, d, c, b)
	}
}
