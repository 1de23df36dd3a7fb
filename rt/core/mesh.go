package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Mesh is an indexed triangle list with one normal per triangle.
type Mesh struct {
	Vertices  []mgl32.Vec3
	Triangles [][3]uint32
	Normals   []mgl32.Vec3
}

func NewMesh() *Mesh {
	return &Mesh{}
}

// AddVertex appends v and returns its index.
func (m *Mesh) AddVertex(v mgl32.Vec3) uint32 {
	m.Vertices = append(m.Vertices, v)
	return uint32(len(m.Vertices) - 1)
}

// AddTriangle appends a triangle; its normal is derived from counter-clockwise
// winding. Degenerate triangles are dropped.
func (m *Mesh) AddTriangle(a, b, c uint32) {
	n := faceNormal(m.Vertices[a], m.Vertices[b], m.Vertices[c])
	if n.Len() == 0 {
		return
	}
	m.Triangles = append(m.Triangles, [3]uint32{a, b, c})
	m.Normals = append(m.Normals, n)
}

// AddQuad appends a-b-c-d as two triangles.
func (m *Mesh) AddQuad(a, b, c, d uint32) {
	m.AddTriangle(a, b, c)
	m.AddTriangle(a, c, d)
}

func faceNormal(a, b, c mgl32.Vec3) mgl32.Vec3 {
	n := b.Sub(a).Cross(c.Sub(a))
	if n.Len() < 1e-12 {
		return mgl32.Vec3{}
	}
	return n.Normalize()
}

// Bounds returns the axis aligned bounding box. An empty mesh has min > max.
func (m *Mesh) Bounds() (mgl32.Vec3, mgl32.Vec3) {
	inf := float32(1e20)
	minB := mgl32.Vec3{inf, inf, inf}
	maxB := mgl32.Vec3{-inf, -inf, -inf}
	for _, v := range m.Vertices {
		minB = mgl32.Vec3{min(minB.X(), v.X()), min(minB.Y(), v.Y()), min(minB.Z(), v.Z())}
		maxB = mgl32.Vec3{max(maxB.X(), v.X()), max(maxB.Y(), v.Y()), max(maxB.Z(), v.Z())}
	}
	return minB, maxB
}

// Center translates the vertices so the bounding box is centered on the
// origin, and returns the applied offset.
func (m *Mesh) Center() mgl32.Vec3 {
	if len(m.Vertices) == 0 {
		return mgl32.Vec3{}
	}
	minB, maxB := m.Bounds()
	offset := minB.Add(maxB).Mul(-0.5)
	for i := range m.Vertices {
		m.Vertices[i] = m.Vertices[i].Add(offset)
	}
	return offset
}

func (m *Mesh) Empty() bool {
	return len(m.Triangles) == 0
}
