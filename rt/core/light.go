package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

type LightType uint32

const (
	LightTypeDirectional LightType = 1
	LightTypeAmbient     LightType = 3
)

type Light struct {
	Type      LightType
	Position  mgl32.Vec3 // directional lights shine from Position towards the origin
	Color     [3]float32
	Intensity float32
}

// Direction returns the unit vector pointing from the surface to the light.
func (l Light) Direction() mgl32.Vec3 {
	if l.Position.Len() == 0 {
		return mgl32.Vec3{0, 0, 1}
	}
	return l.Position.Normalize()
}
