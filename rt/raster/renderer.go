// Package raster is a small CPU triangle rasterizer: flat shading, a depth
// buffer, ambient plus directional lights with a Blinn highlight.
package raster

import (
	"math"

	"github.com/gekko3d/glyphspin/rt/core"
	"github.com/go-gl/mathgl/mgl32"
)

type Renderer struct {
	img *Image
}

func NewRenderer(width, height int) *Renderer {
	return &Renderer{img: NewImage(width, height)}
}

func (r *Renderer) SetSize(width, height int) {
	r.img.resize(width, height)
}

func (r *Renderer) Size() (int, int) {
	return r.img.Width, r.img.Height
}

// Render draws the scene from cam. The returned image is reused by the next
// call.
func (r *Renderer) Render(scene *core.Scene, cam *core.Camera) *Image {
	img := r.img
	img.clear(Color(scene.Background))
	if img.Width == 0 || img.Height == 0 {
		return img
	}

	vp := cam.ViewProjection()
	var ambient Color
	var directional []core.Light
	for _, l := range scene.Lights {
		switch l.Type {
		case core.LightTypeAmbient:
			for i := range ambient {
				ambient[i] += l.Color[i] * l.Intensity
			}
		case core.LightTypeDirectional:
			directional = append(directional, l)
		}
	}

	for _, obj := range scene.Objects {
		if obj.Mesh == nil {
			continue
		}
		model := obj.Transform.ObjectToWorld()
		normalMat := obj.Transform.NormalMatrix()
		world := make([]mgl32.Vec3, len(obj.Mesh.Vertices))
		clip := make([]mgl32.Vec4, len(obj.Mesh.Vertices))
		for i, v := range obj.Mesh.Vertices {
			w := model.Mul4x1(v.Vec4(1))
			world[i] = w.Vec3()
			clip[i] = vp.Mul4x1(w)
		}

		for ti, tri := range obj.Mesh.Triangles {
			a, b, c := clip[tri[0]], clip[tri[1]], clip[tri[2]]
			// No clipping: drop anything touching the near plane.
			if a.W() <= cam.Near || b.W() <= cam.Near || c.W() <= cam.Near {
				continue
			}
			centroid := world[tri[0]].Add(world[tri[1]]).Add(world[tri[2]]).Mul(1.0 / 3)
			n := normalMat.Mul3x1(obj.Mesh.Normals[ti]).Normalize()
			col := shade(obj.Material, n, cam.Position.Sub(centroid).Normalize(), ambient, directional)
			r.fill(img, a, b, c, col)
		}
	}
	return img
}

func shade(mat core.Material, n, view mgl32.Vec3, ambient Color, lights []core.Light) Color {
	// Two-sided: light whichever face points at the viewer.
	if n.Dot(view) < 0 {
		n = n.Mul(-1)
	}
	var out Color
	for i := range out {
		out[i] = mat.Color[i] * ambient[i]
	}
	for _, l := range lights {
		dir := l.Direction()
		diff := max(n.Dot(dir), 0)
		var spec float32
		if diff > 0 && mat.Shininess > 0 {
			h := dir.Add(view).Normalize()
			spec = float32(math.Pow(float64(max(n.Dot(h), 0)), float64(mat.Shininess)))
		}
		for i := range out {
			out[i] += l.Color[i] * l.Intensity * (mat.Color[i]*diff + mat.Specular[i]*spec)
		}
	}
	for i := range out {
		out[i] = min(max(out[i], 0), 1)
	}
	return out
}

func (r *Renderer) fill(img *Image, a, b, c mgl32.Vec4, col Color) {
	w, h := float32(img.Width), float32(img.Height)
	toScreen := func(p mgl32.Vec4) mgl32.Vec3 {
		ndc := p.Vec3().Mul(1 / p.W())
		return mgl32.Vec3{(ndc.X() + 1) / 2 * w, (1 - ndc.Y()) / 2 * h, ndc.Z()}
	}
	p0, p1, p2 := toScreen(a), toScreen(b), toScreen(c)

	area := edge(p0, p1, p2.X(), p2.Y())
	if area == 0 {
		return
	}

	minX := clampInt(int(math.Floor(float64(min(p0.X(), p1.X(), p2.X())))), 0, img.Width-1)
	maxX := clampInt(int(math.Ceil(float64(max(p0.X(), p1.X(), p2.X())))), 0, img.Width-1)
	minY := clampInt(int(math.Floor(float64(min(p0.Y(), p1.Y(), p2.Y())))), 0, img.Height-1)
	maxY := clampInt(int(math.Ceil(float64(max(p0.Y(), p1.Y(), p2.Y())))), 0, img.Height-1)

	for y := minY; y <= maxY; y++ {
		py := float32(y) + 0.5
		for x := minX; x <= maxX; x++ {
			px := float32(x) + 0.5
			w0 := edge(p1, p2, px, py) / area
			w1 := edge(p2, p0, px, py) / area
			w2 := edge(p0, p1, px, py) / area
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}
			z := w0*p0.Z() + w1*p1.Z() + w2*p2.Z()
			if z < -1 || z >= 1 {
				continue
			}
			i := y*img.Width + x
			if z < img.Depth[i] {
				img.Depth[i] = z
				img.Pix[i] = col
			}
		}
	}
}

func edge(a, b mgl32.Vec3, x, y float32) float32 {
	return (b.X()-a.X())*(y-a.Y()) - (b.Y()-a.Y())*(x-a.X())
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
