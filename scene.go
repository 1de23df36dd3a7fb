package glyphspin

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/glyphspin/rt/core"
	"github.com/gekko3d/glyphspin/rt/geom"
)

// SceneDef defines everything the bootstrap spawns.
type SceneDef struct {
	Background [3]float32
	Camera     CameraDef
	Lights     []LightDef
	Glyph      GlyphDef
	Group      GroupDef
	Material   core.Material
}

type CameraDef struct {
	FovY     float32
	Near     float32
	Far      float32
	Position mgl32.Vec3
}

// LightDef defines a light instantiation.
type LightDef struct {
	Type      core.LightType
	Position  mgl32.Vec3
	Color     [3]float32
	Intensity float32
}

// GlyphDef is the extruded text shown when the font loads.
type GlyphDef struct {
	FontRef       string
	Text          string
	Size          float32
	Depth         float32
	CurveSegments int
	Bevel         geom.Bevel
}

// GroupDef places the spinning group.
type GroupDef struct {
	OffsetX    float32
	FloatRange float32
	FloatSpeed float32
}

func DefaultSceneDef() SceneDef {
	white := [3]float32{1, 1, 1}
	return SceneDef{
		Camera: CameraDef{
			FovY:     45,
			Near:     0.1,
			Far:      100,
			Position: mgl32.Vec3{0, 0, 8},
		},
		Lights: []LightDef{
			{Type: core.LightTypeAmbient, Color: white, Intensity: 0.5},
			{Type: core.LightTypeDirectional, Position: mgl32.Vec3{5, 10, 7.5}, Color: white, Intensity: 0.5},
		},
		Glyph: GlyphDef{
			FontRef:       "builtin:gobold",
			Text:          "B",
			Size:          3.5,
			Depth:         0.8,
			CurveSegments: 16,
			Bevel:         geom.Bevel{Thickness: 0.15, Size: 0.08, Segments: 8},
		},
		Group: GroupDef{
			OffsetX:    -0.25,
			FloatRange: 0.3,
			FloatSpeed: 1.2,
		},
		Material: core.DefaultMaterial(),
	}
}

// FallbackPart is one mesh of the fallback composite with its transform
// relative to the group.
type FallbackPart struct {
	Mesh     *core.Mesh
	Position mgl32.Vec3
	Rotation mgl32.Quat
}

// FallbackParts builds a "B" from a vertical bar and two half tori.
func FallbackParts() []FallbackPart {
	curve := mgl32.QuatRotate(math.Pi/2, mgl32.Vec3{0, 0, 1})
	return []FallbackPart{
		{Mesh: geom.Box(0.4, 5, 0.4), Rotation: mgl32.QuatIdent()},
		{Mesh: geom.Torus(1.2, 0.4, 12, 24, math.Pi), Position: mgl32.Vec3{1.2, 1.8, 0}, Rotation: curve},
		{Mesh: geom.Torus(1.2, 0.4, 12, 24, math.Pi), Position: mgl32.Vec3{1.2, -1.8, 0}, Rotation: curve},
	}
}
