package glyphspin

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/glyphspin/rt/core"
)

type Parent struct {
	Entity EntityId
}

// LocalTransformComponent is relative to the Parent, or to the world for
// roots.
type LocalTransformComponent struct {
	core.Transform
}

// TransformComponent is the world transform, written by the hierarchy system.
type TransformComponent struct {
	core.Transform
}

func NewLocalTransform(position mgl32.Vec3, rotation mgl32.Quat) LocalTransformComponent {
	tr := core.NewTransform()
	tr.Position = position
	tr.Rotation = rotation
	return LocalTransformComponent{Transform: tr}
}

type HierarchyModule struct{}

func (HierarchyModule) Install(app *App, cmd *Commands) {
	app.UseSystem(
		System(TransformHierarchySystem).
			InStage(PostUpdate).
			RunAlways(),
	)
}

const maxHierarchyPasses = 8

func TransformHierarchySystem(cmd *Commands) {
	// Roots copy local to world.
	MakeQuery3[LocalTransformComponent, TransformComponent, Parent](cmd).Map(func(eid EntityId, local *LocalTransformComponent, world *TransformComponent, parent *Parent) bool {
		if parent == nil {
			world.Transform = local.Transform
		}
		return true
	}, Parent{})

	// Children settle over a few passes; each pass fixes one more level.
	for pass := 0; pass < maxHierarchyPasses; pass++ {
		changed := false
		MakeQuery3[LocalTransformComponent, Parent, TransformComponent](cmd).Map(func(eid EntityId, local *LocalTransformComponent, parent *Parent, world *TransformComponent) bool {
			parentWorld, ok := GetComponent[TransformComponent](cmd, parent.Entity)
			if !ok {
				return true
			}
			next := compose(parentWorld.Transform, local.Transform)
			if next != world.Transform {
				world.Transform = next
				changed = true
			}
			return true
		})
		if !changed {
			return
		}
	}
}

// compose keeps scale signs: pos = P.pos + P.rot * (P.scale * L.pos).
func compose(parent, local core.Transform) core.Transform {
	scaled := mgl32.Vec3{
		local.Position.X() * parent.Scale.X(),
		local.Position.Y() * parent.Scale.Y(),
		local.Position.Z() * parent.Scale.Z(),
	}
	return core.Transform{
		Position: parent.Position.Add(parent.Rotation.Rotate(scaled)),
		Rotation: parent.Rotation.Mul(local.Rotation).Normalize(),
		Scale: mgl32.Vec3{
			parent.Scale.X() * local.Scale.X(),
			parent.Scale.Y() * local.Scale.Y(),
			parent.Scale.Z() * local.Scale.Z(),
		},
	}
}
