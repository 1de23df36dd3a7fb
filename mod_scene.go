package glyphspin

import (
	"context"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/glyphspin/rt/core"
	"github.com/gekko3d/glyphspin/rt/font"
	"github.com/gekko3d/glyphspin/rt/geom"
)

// FontLoader resolves a font reference. *font.Loader implements it.
type FontLoader interface {
	Load(ctx context.Context, ref string) (font.Face, error)
}

// SceneStatus reports how the bootstrap finished.
type SceneStatus struct {
	Ready    bool
	Fallback bool
	Err      error
	Group    EntityId
	Camera   EntityId
}

// SceneModule spawns camera and lights, loads the glyph in the background
// and switches to StateRunning once a group exists.
type SceneModule struct {
	Def    SceneDef
	Loader FontLoader
	// Context bounds the font load. Defaults to context.Background.
	Context context.Context
}

type glyphResult struct {
	mesh *core.Mesh
	face string
	err  error
}

type sceneBootstrap struct {
	def    SceneDef
	loader FontLoader
	ctx    context.Context
	cancel context.CancelFunc
	result chan glyphResult
}

func (mod SceneModule) Install(app *App, cmd *Commands) {
	def := mod.Def
	if def.Glyph.Text == "" {
		def = DefaultSceneDef()
	}
	loader := mod.Loader
	if loader == nil {
		loader = font.NewLoader()
	}
	ctx := mod.Context
	if ctx == nil {
		ctx = context.Background()
	}

	cmd.AddResources(
		&sceneBootstrap{def: def, loader: loader, ctx: ctx},
		&SceneStatus{},
	)

	app.UseSystem(
		System(sceneEnterSystem).
			InStage(Update).
			InState(OnEnter(StateLoading)),
	)
	app.UseSystem(
		System(scenePollSystem).
			InStage(Update).
			InState(OnExecute(StateLoading)),
	)
	app.UseSystem(
		System(sceneExitSystem).
			InStage(Update).
			InState(OnExit(StateLoading)),
	)
}

func sceneEnterSystem(cmd *Commands, boot *sceneBootstrap, status *SceneStatus, input *Input) {
	def := boot.def

	aspect := 1.0
	if input.Width > 0 && input.Height > 0 {
		aspect = float64(input.Width) / float64(input.Height)
	}
	cam := core.NewCamera(def.Camera.FovY, aspect, def.Camera.Near, def.Camera.Far)
	cam.Position = def.Camera.Position
	status.Camera = cmd.AddEntity(&CameraComponent{Camera: *cam})

	for _, l := range def.Lights {
		cmd.AddEntity(
			&LightComponent{Type: l.Type, Color: l.Color, Intensity: l.Intensity},
			&TransformComponent{Transform: core.Transform{Position: l.Position, Rotation: mgl32.QuatIdent(), Scale: mgl32.Vec3{1, 1, 1}}},
		)
	}

	ctx, cancel := context.WithCancel(boot.ctx)
	boot.cancel = cancel
	boot.result = make(chan glyphResult, 1)
	cmd.Logger().Infof("Loading font %q", def.Glyph.FontRef)
	go func(result chan<- glyphResult) {
		result <- buildGlyph(ctx, boot.loader, def.Glyph)
	}(boot.result)
}

func buildGlyph(ctx context.Context, loader FontLoader, def GlyphDef) glyphResult {
	face, err := loader.Load(ctx, def.FontRef)
	if err != nil {
		return glyphResult{err: err}
	}
	contours, err := font.Shapes(face, def.Text, def.Size, def.CurveSegments)
	if err != nil {
		return glyphResult{err: fmt.Errorf("shape %q with %s: %w", def.Text, face.Name(), err)}
	}
	mesh := geom.ExtrudeBevel(contours, def.Depth, def.Bevel)
	if mesh.Empty() {
		return glyphResult{err: fmt.Errorf("extrude %q: %w", def.Text, font.ErrEmptyOutline)}
	}
	mesh.Center()
	return glyphResult{mesh: mesh, face: face.Name()}
}

func scenePollSystem(cmd *Commands, boot *sceneBootstrap, status *SceneStatus, assets *AssetServer) {
	if status.Ready {
		return
	}
	var res glyphResult
	select {
	case res = <-boot.result:
	default:
		return
	}

	def := boot.def
	group := spawnGroup(cmd, def.Group)
	if res.err != nil {
		cmd.Logger().Warnf("Font loading failed, using fallback geometry: %v", res.err)
		for _, part := range FallbackParts() {
			spawnPart(cmd, assets, group, part.Mesh, part.Position, part.Rotation, def.Material)
		}
		status.Fallback = true
		status.Err = res.err
	} else {
		cmd.Logger().Infof("Glyph %q built from %s (%d triangles)", def.Glyph.Text, res.face, len(res.mesh.Triangles))
		spawnPart(cmd, assets, group, res.mesh, mgl32.Vec3{}, mgl32.QuatIdent(), def.Material)
	}

	status.Group = group
	status.Ready = true
	cmd.ChangeState(StateRunning)
}

func spawnGroup(cmd *Commands, def GroupDef) EntityId {
	return cmd.AddEntity(
		&SpinComponent{},
		&FloatingComponent{
			Base:      mgl32.Vec3{def.OffsetX, 0, 0},
			Amplitude: def.FloatRange,
			Speed:     def.FloatSpeed,
		},
		&LocalTransformComponent{Transform: core.NewTransform()},
		&TransformComponent{Transform: core.NewTransform()},
	)
}

func spawnPart(cmd *Commands, assets *AssetServer, group EntityId, mesh *core.Mesh, position mgl32.Vec3, rotation mgl32.Quat, material core.Material) EntityId {
	return cmd.AddEntity(
		&Parent{Entity: group},
		&MeshComponent{Mesh: assets.AddMesh(mesh), Material: material},
		ptr(NewLocalTransform(position, rotation)),
		&TransformComponent{Transform: core.NewTransform()},
	)
}

func sceneExitSystem(boot *sceneBootstrap) {
	if boot.cancel != nil {
		boot.cancel()
	}
}

func ptr[T any](v T) *T { return &v }
