package core

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestMesh_CenterMovesBoundsToOrigin(t *testing.T) {
	m := NewMesh()
	a := m.AddVertex(mgl32.Vec3{1, 1, 0})
	b := m.AddVertex(mgl32.Vec3{3, 1, 0})
	c := m.AddVertex(mgl32.Vec3{3, 5, 2})
	m.AddTriangle(a, b, c)

	offset := m.Center()
	assert.Equal(t, mgl32.Vec3{-2, -3, -1}, offset)

	minB, maxB := m.Bounds()
	assert.Equal(t, mgl32.Vec3{-1, -2, -1}, minB)
	assert.Equal(t, mgl32.Vec3{1, 2, 1}, maxB)
}

func TestMesh_DegenerateTriangleDropped(t *testing.T) {
	m := NewMesh()
	a := m.AddVertex(mgl32.Vec3{0, 0, 0})
	b := m.AddVertex(mgl32.Vec3{1, 0, 0})
	c := m.AddVertex(mgl32.Vec3{2, 0, 0})
	m.AddTriangle(a, b, c)

	assert.True(t, m.Empty())
}

func TestMesh_NormalFollowsWinding(t *testing.T) {
	m := NewMesh()
	a := m.AddVertex(mgl32.Vec3{0, 0, 0})
	b := m.AddVertex(mgl32.Vec3{1, 0, 0})
	c := m.AddVertex(mgl32.Vec3{0, 1, 0})
	m.AddTriangle(a, b, c)

	assert.Equal(t, mgl32.Vec3{0, 0, 1}, m.Normals[0])
}

func TestCamera_SetSizeKeepsAspectExact(t *testing.T) {
	cam := NewCamera(45, 1, 0.1, 100)

	for _, sz := range [][2]int{{800, 600}, {333, 777}, {1, 3}} {
		assert.True(t, cam.SetSize(sz[0], sz[1]))
		assert.Equal(t, float64(sz[0])/float64(sz[1]), cam.Aspect)
	}

	assert.False(t, cam.SetSize(0, 10))
	assert.Equal(t, 1.0/3.0, cam.Aspect)
}

func TestEulerXYZ_MatchesAxisProduct(t *testing.T) {
	q := EulerXYZ(0.3, 0.5, 0)
	want := mgl32.HomogRotate3DX(0.3).Mul4(mgl32.HomogRotate3DY(0.5))

	got := q.Mat4()
	if !got.ApproxEqualThreshold(want, 1e-5) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestTransform_ObjectToWorld(t *testing.T) {
	tr := NewTransform()
	tr.Position = mgl32.Vec3{10, 0, 0}
	tr.Rotation = mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 1, 0})

	p := tr.ObjectToWorld().Mul4x1(mgl32.Vec4{5, 0, 0, 1}).Vec3()
	expected := mgl32.Vec3{10, 0, -5}
	if p.Sub(expected).Len() > 0.001 {
		t.Errorf("expected %v, got %v", expected, p)
	}
}
