package glyphspin

import (
	"github.com/gekko3d/glyphspin/rt/core"
)

// LightComponent is the ECS component for lights. Directional lights shine
// from the entity's world position towards the origin.
type LightComponent struct {
	Type      core.LightType
	Color     [3]float32 // RGB
	Intensity float32
}

// CameraComponent holds the scene camera. The viewport system keeps its
// aspect equal to the output size.
type CameraComponent struct {
	core.Camera
}
