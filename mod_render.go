package glyphspin

import (
	"github.com/gekko3d/glyphspin/rt/ascii"
	"github.com/gekko3d/glyphspin/rt/core"
	"github.com/gekko3d/glyphspin/rt/raster"
)

// RenderBackend draws a scene from a camera into some output surface.
type RenderBackend interface {
	Render(scene *core.Scene, cam *core.Camera) error
	SetOutputSize(width, height int)
}

// AsciiRenderModule renders the ECS scene through an ascii.Effect. A nil
// Sink collects frames in an *ascii.MemorySink resource.
type AsciiRenderModule struct {
	Charset    string
	Options    ascii.Options
	Sink       ascii.Sink
	Background [3]float32
}

type renderState struct {
	backend RenderBackend
	scene   *core.Scene
	lastErr string
	frames  int
}

func (mod AsciiRenderModule) Install(app *App, cmd *Commands) {
	sink := mod.Sink
	if sink == nil {
		mem := &ascii.MemorySink{}
		cmd.AddResources(mem)
		sink = mem
	}
	opts := mod.Options
	if opts == (ascii.Options{}) {
		opts = ascii.DefaultOptions()
	}
	effect := ascii.NewEffect(raster.NewRenderer(0, 0), mod.Charset, opts, sink)

	scene := core.NewScene()
	scene.Background = mod.Background
	app.UseRenderBackend(effect, scene)
}

// UseRenderBackend installs the viewport and render systems around backend.
func (app *App) UseRenderBackend(backend RenderBackend, scene *core.Scene) *App {
	if scene == nil {
		scene = core.NewScene()
	}
	app.addResources(&renderState{backend: backend, scene: scene})
	app.UseSystem(
		System(viewportSystem).
			InStage(PreRender).
			RunAlways(),
	)
	app.UseSystem(
		System(renderSystem).
			InStage(Render).
			InState(OnExecute(StateRunning)),
	)
	return app
}

// RenderedFrames counts successful renders since the backend was installed.
func (app *App) RenderedFrames() int {
	if rs, ok := FindResource[*renderState](app); ok {
		return rs.frames
	}
	return 0
}

func viewportSystem(cmd *Commands, input *Input, rs *renderState) {
	if !input.Resized {
		return
	}
	MakeQuery1[CameraComponent](cmd).Map(func(eid EntityId, cam *CameraComponent) bool {
		cam.SetSize(input.Width, input.Height)
		return true
	})
	rs.backend.SetOutputSize(input.Width, input.Height)
	cmd.Logger().Debugf("Viewport resized to %dx%d", input.Width, input.Height)
}

func renderSystem(cmd *Commands, rs *renderState, assets *AssetServer) {
	var camera *core.Camera
	MakeQuery1[CameraComponent](cmd).Map(func(eid EntityId, cam *CameraComponent) bool {
		camera = &cam.Camera
		return false
	})
	if camera == nil {
		return
	}

	scene := rs.scene
	scene.Reset()
	MakeQuery2[MeshComponent, TransformComponent](cmd).Map(func(eid EntityId, m *MeshComponent, tr *TransformComponent) bool {
		if mesh, ok := assets.Mesh(m.Mesh); ok {
			scene.Add(core.Object{Mesh: mesh, Transform: tr.Transform, Material: m.Material})
		}
		return true
	})
	MakeQuery2[LightComponent, TransformComponent](cmd).Map(func(eid EntityId, l *LightComponent, tr *TransformComponent) bool {
		scene.AddLight(core.Light{Type: l.Type, Position: tr.Position, Color: l.Color, Intensity: l.Intensity})
		return true
	})

	if err := rs.backend.Render(scene, camera); err != nil {
		if msg := err.Error(); msg != rs.lastErr {
			cmd.Logger().Errorf("Render failed: %v", err)
			rs.lastErr = msg
		}
		return
	}
	rs.lastErr = ""
	rs.frames++
}
