package glyphspin

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gekko3d/glyphspin/rt/ascii"
	"github.com/gekko3d/glyphspin/rt/core"
)

func camera(t *testing.T, app *App) *CameraComponent {
	t.Helper()
	var cam *CameraComponent
	MakeQuery1[CameraComponent](app.Commands()).Map(func(eid EntityId, c *CameraComponent) bool {
		cam = c
		return false
	})
	require.NotNil(t, cam)
	return cam
}

func TestRender_ResizeKeepsExactAspect(t *testing.T) {
	app := newTestApp(t, &stubLoader{err: errors.New("x")})
	app.waitRunning(t)

	for _, size := range [][2]int{{640, 480}, {1920, 1080}, {333, 777}, {1, 1000}} {
		app.queue.Push(Resize(size[0], size[1]))
		app.Step()
		assert.Equal(t, float64(size[0])/float64(size[1]), camera(t, app.App).Aspect, "%dx%d", size[0], size[1])
	}

	rs := resource[*renderState](t, app.App)
	w, h := rs.backend.(*ascii.Effect).OutputSize()
	assert.Equal(t, 1, w)
	assert.Equal(t, 1000, h)
}

func TestRender_NonPositiveResizeIgnored(t *testing.T) {
	app := newTestApp(t, &stubLoader{err: errors.New("x")})
	app.waitRunning(t)

	app.queue.Push(Resize(400, 300))
	app.Step()
	spinBefore := resource[*SpinController](t, app.App).Mode()

	app.queue.Push(Resize(0, 300), Resize(400, -1))
	app.Step()

	assert.Equal(t, 400.0/300.0, camera(t, app.App).Aspect)
	w, h := resource[*renderState](t, app.App).backend.(*ascii.Effect).OutputSize()
	assert.Equal(t, [2]int{400, 300}, [2]int{w, h})
	assert.Equal(t, spinBefore, resource[*SpinController](t, app.App).Mode())
}

func TestRender_FrameShowsGlyph(t *testing.T) {
	app := newTestApp(t, &stubLoader{err: errors.New("x")})
	app.waitRunning(t)
	app.Step()

	sink := resource[*ascii.MemorySink](t, app.App)
	require.NotNil(t, sink.Last)
	assert.Equal(t, 20, sink.Last.Cols)
	assert.Equal(t, 20, sink.Last.Rows)

	lit := 0
	for _, c := range sink.Last.Cells {
		if c.Rune != ' ' {
			lit++
		}
	}
	assert.Greater(t, lit, 0, "fallback shape is visible:\n%s", sink.Last.String())
}

type failingBackend struct {
	calls int
}

func (b *failingBackend) Render(scene *core.Scene, cam *core.Camera) error {
	b.calls++
	return fmt.Errorf("present: %w", errors.New("broken pipe"))
}

func (b *failingBackend) SetOutputSize(width, height int) {}

func TestRender_BackendErrorsAreLoggedNotFatal(t *testing.T) {
	queue := &InputQueue{}
	backend := &failingBackend{}
	app := NewAppBuilder().
		UseStates(StateLoading, StateExit).
		UseModule(
			TimeModule{},
			InputModule{Queue: queue},
			AssetServerModule{},
			HierarchyModule{},
			SpinModule{},
			SceneModule{Loader: &stubLoader{err: errors.New("x")}},
		).
		Build()
	app.UseRenderBackend(backend, nil)
	ta := &testApp{App: app, queue: queue}
	ta.waitRunning(t)

	require.NotPanics(t, func() {
		app.Step()
		app.Step()
	})
	assert.GreaterOrEqual(t, backend.calls, 2)
	assert.Equal(t, 0, resource[*renderState](t, app).frames)
}

func TestBackend_SingleBackendGuard(t *testing.T) {
	app := NewApp().UseStates(StateLoading, StateExit)
	app.UseBackend(BackendHeadless, HeadlessModule{})

	require.NotPanics(t, func() { ensureSingleBackend(app, BackendHeadless) })
	require.PanicsWithValue(t, "Multiple backends installed: headless and terminal", func() {
		app.UseBackend(BackendTerminal, TerminalModule{})
	})
}
