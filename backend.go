package glyphspin

import (
	"context"
	"fmt"
	"reflect"
	"time"
)

// BackendName identifies a presentation backend module.
type BackendName string

const (
	BackendTerminal BackendName = "terminal"
	BackendWindow   BackendName = "window"
	BackendHeadless BackendName = "headless"
)

// BackendTag marks that a backend has been installed into the App.
type BackendTag struct {
	Name BackendName
}

// UseBackend installs exactly one backend module. Installing a second,
// different backend panics.
func (app *App) UseBackend(name BackendName, mod Module) *App {
	ensureSingleBackend(app, name)
	app.Logger().Infof("Backend selected: %s", name)
	app.UseModules(mod)
	return app
}

func ensureSingleBackend(app *App, name BackendName) {
	if app == nil {
		panic("ensureSingleBackend: app is nil")
	}
	if res, ok := app.resources[reflect.TypeFor[BackendTag]()]; ok {
		tag := res.(*BackendTag)
		if tag.Name != name {
			app.Logger().Errorf("Multiple backends installed: %s and %s", tag.Name, name)
			panic(fmt.Sprintf("Multiple backends installed: %s and %s", tag.Name, name))
		}
		return
	}
	app.addResources(&BackendTag{Name: name})
}

// HeadlessModule renders into an ascii.MemorySink. Used by tests and by
// the -frames flag.
type HeadlessModule struct {
	Render        AsciiRenderModule
	Width, Height int
}

func (mod HeadlessModule) Install(app *App, cmd *Commands) {
	mod.Render.Sink = nil
	app.UseModules(mod.Render)
	if mod.Width > 0 && mod.Height > 0 {
		if queue, ok := FindResource[*InputQueue](app); ok {
			queue.Push(Resize(mod.Width, mod.Height))
		}
	}
}

// RunFrames ticks the app at its frame rate like Run until frames frames
// have been rendered, the app finishes, or ctx is cancelled. Loading frames
// do not count. It returns the rendered frame count and leaves stopping the
// app to the caller.
func (app *App) RunFrames(ctx context.Context, frames int) int {
	ticker := time.NewTicker(app.frameInterval)
	defer ticker.Stop()

	for {
		app.Step()
		if n := app.RenderedFrames(); n >= frames || app.done {
			return n
		}

		select {
		case <-ctx.Done():
			return app.RenderedFrames()
		case <-ticker.C:
		}
	}
}
