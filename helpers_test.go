package glyphspin

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gekko3d/glyphspin/rt/font"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type stubLoader struct {
	mu    sync.Mutex
	calls int
	face  font.Face
	err   error
	// When set, Load blocks until the context is done and reports it here.
	cancelled chan error
}

func (l *stubLoader) Load(ctx context.Context, ref string) (font.Face, error) {
	l.mu.Lock()
	l.calls++
	l.mu.Unlock()
	if l.cancelled != nil {
		<-ctx.Done()
		l.cancelled <- ctx.Err()
		return nil, ctx.Err()
	}
	return l.face, l.err
}

func (l *stubLoader) Calls() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.calls
}

type testApp struct {
	*App
	queue *InputQueue
	clock *fakeClock
}

func newTestApp(t *testing.T, loader FontLoader) *testApp {
	t.Helper()
	queue := &InputQueue{}
	clock := newFakeClock()
	app := NewAppBuilder().
		UseStates(StateLoading, StateExit).
		UseModule(
			TimeModule{Now: clock.Now},
			InputModule{Queue: queue},
			AssetServerModule{},
			HierarchyModule{},
			SpinModule{},
			SceneModule{Loader: loader},
		).
		Build()
	app.UseBackend(BackendHeadless, HeadlessModule{Width: 200, Height: 200})
	return &testApp{App: app, queue: queue, clock: clock}
}

// stepUntil steps the app until cond holds, failing after a deadline.
func (a *testApp) stepUntil(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		require.True(t, time.Now().Before(deadline), "condition not reached")
		a.Step()
		time.Sleep(time.Millisecond)
	}
}

func (a *testApp) waitRunning(t *testing.T) {
	t.Helper()
	a.stepUntil(t, func() bool { return a.State() == StateRunning })
}

func resource[T any](t *testing.T, app *App) T {
	t.Helper()
	v, ok := FindResource[T](app)
	require.True(t, ok, "missing resource")
	return v
}
