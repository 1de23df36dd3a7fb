// Package window presents ASCII frames in a desktop window with ebiten and
// forwards mouse, touch, key and resize input to the app.
package window

import (
	"errors"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/gekko3d/glyphspin"
	"github.com/gekko3d/glyphspin/rt/ascii"
)

type Options struct {
	Width  int
	Height int
	Title  string
	TPS    int
}

// Window is an ebiten.Game that steps the app once per Update and draws
// the last presented frame.
type Window struct {
	opts       Options
	queue      *glyphspin.InputQueue
	resolution float64
	cellAspect float64
	face       *text.GoXFace

	app     *glyphspin.App
	frame   *ascii.Frame
	touches glyphspin.TouchTracker

	width, height    int
	cursorX, cursorY int
}

func New(queue *glyphspin.InputQueue, opts Options, cells ascii.Options) *Window {
	if opts.Width <= 0 {
		opts.Width = 800
	}
	if opts.Height <= 0 {
		opts.Height = 600
	}
	if opts.Title == "" {
		opts.Title = "glyphspin"
	}
	if opts.TPS <= 0 {
		opts.TPS = 60
	}
	if cells.Resolution <= 0 {
		cells.Resolution = ascii.DefaultOptions().Resolution
	}
	if cells.CellAspect <= 0 {
		cells.CellAspect = 1
	}
	return &Window{
		opts:       opts,
		queue:      queue,
		resolution: cells.Resolution,
		cellAspect: cells.CellAspect,
		face:       text.NewGoXFace(basicfont.Face7x13),
	}
}

// Present keeps a copy of frame for the next Draw.
func (w *Window) Present(frame *ascii.Frame) error {
	if w.frame == nil || len(w.frame.Cells) != len(frame.Cells) {
		w.frame = frame.Clone()
		return nil
	}
	w.frame.Cols, w.frame.Rows = frame.Cols, frame.Rows
	copy(w.frame.Cells, frame.Cells)
	return nil
}

func (w *Window) Update() error {
	w.pollInput()
	w.app.Step()
	if w.app.Done() {
		return ebiten.Termination
	}
	return nil
}

func (w *Window) pollInput() {
	var events []glyphspin.InputEvent

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		events = append(events, glyphspin.Quit())
	}

	x, y := ebiten.CursorPosition()
	if x != w.cursorX || y != w.cursorY {
		events = append(events, glyphspin.PointerMove(float64(x), float64(y)))
		w.cursorX, w.cursorY = x, y
	}
	for button, mapped := range mouseButtons {
		if inpututil.IsMouseButtonJustPressed(button) {
			events = append(events, glyphspin.PointerDown(float64(x), float64(y), mapped))
		}
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		events = append(events, glyphspin.PointerUp(float64(x), float64(y)))
	}

	var points []glyphspin.TouchPoint
	for _, id := range ebiten.AppendTouchIDs(nil) {
		tx, ty := ebiten.TouchPosition(id)
		points = append(points, glyphspin.TouchPoint{ID: int(id), X: float64(tx), Y: float64(ty)})
	}
	events = append(events, w.touches.Update(points)...)

	if len(events) > 0 {
		w.queue.Push(events...)
	}
}

var mouseButtons = map[ebiten.MouseButton]glyphspin.MouseButton{
	ebiten.MouseButtonLeft:   glyphspin.MouseButtonPrimary,
	ebiten.MouseButtonRight:  glyphspin.MouseButtonSecondary,
	ebiten.MouseButtonMiddle: glyphspin.MouseButtonMiddle,
}

func (w *Window) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	if w.frame == nil {
		return
	}
	pitchX := 1 / w.resolution
	pitchY := w.cellAspect / w.resolution
	for row := 0; row < w.frame.Rows; row++ {
		for col := 0; col < w.frame.Cols; col++ {
			cell := w.frame.At(col, row)
			if cell.Rune == ' ' {
				continue
			}
			op := &text.DrawOptions{}
			op.GeoM.Translate(float64(col)*pitchX, float64(row)*pitchY)
			op.ColorScale.Scale(cell.Color[0], cell.Color[1], cell.Color[2], 1)
			text.Draw(screen, string(cell.Rune), w.face, op)
		}
	}
}

// Layout reports size changes to the app as resize events.
func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != w.width || outsideHeight != w.height {
		w.width, w.height = outsideWidth, outsideHeight
		w.queue.Push(glyphspin.Resize(outsideWidth, outsideHeight))
	}
	return outsideWidth, outsideHeight
}

// Module presents through a Window.
type Module struct {
	Window *Window
	Render glyphspin.AsciiRenderModule
}

func (mod Module) Install(app *glyphspin.App, cmd *glyphspin.Commands) {
	render := mod.Render
	render.Sink = mod.Window
	cmd.AddResources(mod.Window)
	app.UseModules(render)
}

// Run blocks in the ebiten loop until the window closes or the app
// finishes, then stops the app.
func Run(app *glyphspin.App, w *Window) error {
	w.app = app
	ebiten.SetWindowTitle(w.opts.Title)
	ebiten.SetWindowSize(w.opts.Width, w.opts.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(w.opts.TPS)

	err := ebiten.RunGame(w)
	app.Stop()
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}
