package glyphspin

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gekko3d/glyphspin/rt/ascii"
	"github.com/gekko3d/glyphspin/rt/font"
)

func TestRunFrames_WaitsForLoadingThenRenders(t *testing.T) {
	app := NewAppBuilder().
		UseStates(StateLoading, StateExit).
		UseModule(
			TimeModule{},
			InputModule{},
			AssetServerModule{},
			HierarchyModule{},
			SpinModule{},
			SceneModule{Loader: font.NewLoader()},
		).
		Build()
	app.UseBackend(BackendHeadless, HeadlessModule{Render: AsciiRenderModule{Options: ascii.DefaultOptions()}, Width: 200, Height: 200})
	app.SetFrameRate(500)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	rendered := app.RunFrames(ctx, 3)
	require.Equal(t, 3, rendered)
	assert.Equal(t, StateRunning, app.State())

	sink := resource[*ascii.MemorySink](t, app)
	require.NotNil(t, sink.Last)
	assert.Equal(t, 3, sink.Frames)
	assert.Equal(t, 3, app.RenderedFrames())

	app.Stop()
	assert.True(t, app.Done())
}

func TestRunFrames_ReturnsOnCancelWhileLoading(t *testing.T) {
	loader := &stubLoader{cancelled: make(chan error, 1)}
	app := newTestApp(t, loader)
	app.SetFrameRate(500)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	assert.Zero(t, app.RunFrames(ctx, 3))
	assert.Equal(t, StateLoading, app.State())

	app.Stop()
	assert.ErrorIs(t, <-loader.cancelled, context.Canceled)
}

func TestRenderedFrames_WithoutBackend(t *testing.T) {
	assert.Zero(t, NewApp().RenderedFrames())
}
