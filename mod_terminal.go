package glyphspin

import (
	"math"
	"sync"

	"github.com/gdamore/tcell"

	"github.com/gekko3d/glyphspin/rt/ascii"
)

// Terminal presents ASCII frames on a tcell screen and turns its mouse,
// key and resize events into InputEvents. Pointer coordinates are reported
// in the same pixel space the Effect uses, so one cell spans 1/Resolution
// pixels horizontally.
type Terminal struct {
	screen     tcell.Screen
	queue      *InputQueue
	resolution float64
	cellAspect float64

	// Owned by the poll goroutine.
	buttons tcell.ButtonMask

	cols, rows int
	closeOnce  sync.Once
	polling    sync.WaitGroup
}

func NewTerminal(screen tcell.Screen, queue *InputQueue, opts ascii.Options) *Terminal {
	defaults := ascii.DefaultOptions()
	if opts.Resolution <= 0 {
		opts.Resolution = defaults.Resolution
	}
	if opts.CellAspect <= 0 {
		opts.CellAspect = 1
	}
	return &Terminal{
		screen:     screen,
		queue:      queue,
		resolution: opts.Resolution,
		cellAspect: opts.CellAspect,
	}
}

// Start initializes the screen, reports its size and begins polling events.
func (t *Terminal) Start() error {
	if err := t.screen.Init(); err != nil {
		return err
	}
	t.screen.EnableMouse()
	t.screen.HideCursor()
	t.screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack))
	t.screen.Clear()

	cols, rows := t.screen.Size()
	t.queue.Push(t.resize(cols, rows))

	t.polling.Add(1)
	go t.poll()
	return nil
}

// Close restores the terminal. Safe to call more than once.
func (t *Terminal) Close() {
	t.closeOnce.Do(func() {
		t.screen.Fini()
		t.polling.Wait()
	})
}

func (t *Terminal) poll() {
	defer t.polling.Done()
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		if events := t.translate(ev); len(events) > 0 {
			t.queue.Push(events...)
		}
	}
}

// PixelSize converts a cell grid to the pixel size whose Effect grid is that
// cell grid.
func (t *Terminal) PixelSize(cols, rows int) (int, int) {
	w := int(math.Ceil(float64(cols) / t.resolution))
	h := int(math.Ceil(float64(rows) * t.cellAspect / t.resolution))
	return w, h
}

func (t *Terminal) pixel(col, row int) (float64, float64) {
	return float64(col) / t.resolution, float64(row) * t.cellAspect / t.resolution
}

func (t *Terminal) resize(cols, rows int) InputEvent {
	w, h := t.PixelSize(cols, rows)
	return Resize(w, h)
}

func (t *Terminal) translate(ev tcell.Event) []InputEvent {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		return []InputEvent{t.resize(ev.Size())}
	case *tcell.EventKey:
		if isQuitKey(ev) {
			return []InputEvent{Quit()}
		}
	case *tcell.EventMouse:
		x, y := t.pixel(ev.Position())
		events := buttonEdges(t.buttons, ev.Buttons(), x, y)
		t.buttons = ev.Buttons() & (tcell.Button1 | tcell.Button2 | tcell.Button3)
		return events
	}
	return nil
}

func isQuitKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q' || ev.Rune() == 'Q'
	}
	return false
}

var terminalButtons = []struct {
	mask   tcell.ButtonMask
	button MouseButton
}{
	{tcell.Button1, MouseButtonPrimary},
	{tcell.Button2, MouseButtonSecondary},
	{tcell.Button3, MouseButtonMiddle},
}

// buttonEdges turns tcell's button state reports into press, move and
// release events.
func buttonEdges(prev, cur tcell.ButtonMask, x, y float64) []InputEvent {
	var events []InputEvent
	if prev&tcell.Button1 != 0 && cur&tcell.Button1 != 0 {
		events = append(events, PointerMove(x, y))
	}
	for _, b := range terminalButtons {
		if prev&b.mask == 0 && cur&b.mask != 0 {
			events = append(events, PointerDown(x, y, b.button))
		}
	}
	if prev&tcell.Button1 != 0 && cur&tcell.Button1 == 0 {
		events = append(events, PointerUp(x, y))
	}
	if len(events) == 0 {
		events = append(events, PointerMove(x, y))
	}
	return events
}

// Present draws a frame from the top left corner.
func (t *Terminal) Present(frame *ascii.Frame) error {
	if frame.Cols != t.cols || frame.Rows != t.rows {
		t.screen.Clear()
		t.cols, t.rows = frame.Cols, frame.Rows
	}
	base := tcell.StyleDefault.Background(tcell.ColorBlack)
	for row := 0; row < frame.Rows; row++ {
		for col := 0; col < frame.Cols; col++ {
			cell := frame.At(col, row)
			fg := tcell.NewRGBColor(channel(cell.Color[0]), channel(cell.Color[1]), channel(cell.Color[2]))
			t.screen.SetContent(col, row, cell.Rune, nil, base.Foreground(fg))
		}
	}
	t.screen.Show()
	return nil
}

func channel(v float32) int32 {
	return int32(math.Round(float64(min(max(v, 0), 1)) * 255))
}

// TerminalModule presents on a started Terminal.
type TerminalModule struct {
	Terminal *Terminal
	Render   AsciiRenderModule
}

func (mod TerminalModule) Install(app *App, cmd *Commands) {
	render := mod.Render
	render.Sink = mod.Terminal
	cmd.AddResources(mod.Terminal)
	app.UseModules(render)
	app.UseSystem(
		System(terminalCloseSystem).
			InStage(Finale).
			InState(OnExit(StateExit)),
	)
}

func terminalCloseSystem(term *Terminal) {
	term.Close()
}
