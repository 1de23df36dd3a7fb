package geom

import (
	"slices"

	"github.com/go-gl/mathgl/mgl32"
)

// Contour is a closed polygon; the last point connects back to the first.
type Contour []mgl32.Vec2

// Trapezoid is a horizontal slab of a filled region between Y0 and Y1.
// Left/right X are given at both heights.
type Trapezoid struct {
	Y0, Y1        float32
	Left0, Right0 float32
	Left1, Right1 float32
}

type edge struct {
	a, b mgl32.Vec2 // a.Y() < b.Y()
}

func (e edge) xAt(y float32) float32 {
	t := (y - e.a.Y()) / (e.b.Y() - e.a.Y())
	return e.a.X() + t*(e.b.X()-e.a.X())
}

// Fill decomposes the even-odd interior of the contours into trapezoids.
// Holes need no special orientation. Contours must not self-intersect.
func Fill(contours []Contour) []Trapezoid {
	var edges []edge
	var ys []float32
	for _, c := range contours {
		c = c.Clean()
		n := len(c)
		if n < 3 {
			continue
		}
		for i := 0; i < n; i++ {
			p, q := c[i], c[(i+1)%n]
			ys = append(ys, p.Y())
			if p.Y() == q.Y() {
				continue
			}
			if p.Y() > q.Y() {
				p, q = q, p
			}
			edges = append(edges, edge{a: p, b: q})
		}
	}
	if len(edges) == 0 {
		return nil
	}

	slices.Sort(ys)
	ys = slices.Compact(ys)

	var out []Trapezoid
	type hit struct{ x0, xm, x1 float32 }
	var hits []hit
	for k := 0; k+1 < len(ys); k++ {
		y0, y1 := ys[k], ys[k+1]
		ym := (y0 + y1) / 2

		hits = hits[:0]
		for _, e := range edges {
			if e.a.Y() <= y0 && e.b.Y() >= y1 {
				hits = append(hits, hit{x0: e.xAt(y0), xm: e.xAt(ym), x1: e.xAt(y1)})
			}
		}
		slices.SortFunc(hits, func(a, b hit) int {
			switch {
			case a.xm < b.xm:
				return -1
			case a.xm > b.xm:
				return 1
			}
			return 0
		})
		for i := 0; i+1 < len(hits); i += 2 {
			l, r := hits[i], hits[i+1]
			out = append(out, Trapezoid{
				Y0: y0, Y1: y1,
				Left0: l.x0, Right0: r.x0,
				Left1: l.x1, Right1: r.x1,
			})
		}
	}
	return out
}

// Contains reports whether p lies inside the even-odd interior.
func Contains(contours []Contour, p mgl32.Vec2) bool {
	inside := false
	for _, c := range contours {
		n := len(c)
		for i, j := 0, n-1; i < n; j, i = i, i+1 {
			a, b := c[i], c[j]
			if (a.Y() > p.Y()) != (b.Y() > p.Y()) {
				x := a.X() + (p.Y()-a.Y())/(b.Y()-a.Y())*(b.X()-a.X())
				if p.X() < x {
					inside = !inside
				}
			}
		}
	}
	return inside
}

// Clean drops consecutive duplicates, including a closing point equal to the
// first one.
func (c Contour) Clean() Contour {
	out := make(Contour, 0, len(c))
	for _, p := range c {
		if len(out) > 0 && out[len(out)-1] == p {
			continue
		}
		out = append(out, p)
	}
	for len(out) > 1 && out[0] == out[len(out)-1] {
		out = out[:len(out)-1]
	}
	return out
}

// Area returns the signed area, positive for counter-clockwise contours.
func (c Contour) Area() float32 {
	var a float32
	n := len(c)
	for i := 0; i < n; i++ {
		p, q := c[i], c[(i+1)%n]
		a += p.X()*q.Y() - q.X()*p.Y()
	}
	return a / 2
}
