// Package ascii converts rasterized frames to character grids the way
// three.js' AsciiEffect does: one character per cell picked by luminance.
package ascii

import (
	"math"

	"github.com/gekko3d/glyphspin/rt/core"
	"github.com/gekko3d/glyphspin/rt/raster"
)

const DefaultCharset = " .:-+*=%@#"

type Options struct {
	Invert bool
	// Resolution is cells per output pixel horizontally.
	Resolution float64
	Color      bool
	// CellAspect is cell height over cell width.
	CellAspect float64
	// Supersample renders NxN pixels per cell and averages them.
	Supersample int
}

func DefaultOptions() Options {
	return Options{
		Invert:      true,
		Resolution:  0.10,
		Color:       true,
		CellAspect:  1,
		Supersample: 2,
	}
}

type Effect struct {
	renderer *raster.Renderer
	charset  []rune
	opts     Options
	sink     Sink

	width, height int
	frame         Frame
}

func NewEffect(renderer *raster.Renderer, charset string, opts Options, sink Sink) *Effect {
	if charset == "" {
		charset = DefaultCharset
	}
	if opts.Resolution <= 0 {
		opts.Resolution = DefaultOptions().Resolution
	}
	if opts.CellAspect <= 0 {
		opts.CellAspect = 1
	}
	if opts.Supersample < 1 {
		opts.Supersample = 1
	}
	return &Effect{
		renderer: renderer,
		charset:  []rune(charset),
		opts:     opts,
		sink:     sink,
	}
}

// Grid returns the character grid for an output size in pixels.
func (e *Effect) Grid(width, height int) (int, int) {
	cols := int(math.Floor(float64(width) * e.opts.Resolution))
	rows := int(math.Floor(float64(height) * e.opts.Resolution / e.opts.CellAspect))
	return max(cols, 0), max(rows, 0)
}

func (e *Effect) SetOutputSize(width, height int) {
	e.width, e.height = width, height
	cols, rows := e.Grid(width, height)
	ss := e.opts.Supersample
	e.renderer.SetSize(cols*ss, rows*ss)

	e.frame.Cols, e.frame.Rows = cols, rows
	if cap(e.frame.Cells) < cols*rows {
		e.frame.Cells = make([]Cell, cols*rows)
	}
	e.frame.Cells = e.frame.Cells[:cols*rows]
}

func (e *Effect) OutputSize() (int, int) {
	return e.width, e.height
}

// Render rasterizes the scene, converts it and hands the frame to the sink.
func (e *Effect) Render(scene *core.Scene, cam *core.Camera) error {
	img := e.renderer.Render(scene, cam)
	e.asciify(img)
	if e.sink == nil {
		return nil
	}
	return e.sink.Present(&e.frame)
}

func (e *Effect) asciify(img *raster.Image) {
	ss := e.opts.Supersample
	inv := 1 / float32(ss*ss)
	for y := 0; y < e.frame.Rows; y++ {
		for x := 0; x < e.frame.Cols; x++ {
			var c raster.Color
			for sy := 0; sy < ss; sy++ {
				for sx := 0; sx < ss; sx++ {
					p := img.At(x*ss+sx, y*ss+sy)
					c[0] += p[0]
					c[1] += p[1]
					c[2] += p[2]
				}
			}
			c = raster.Color{c[0] * inv, c[1] * inv, c[2] * inv}
			cell := Cell{Rune: e.CharFor(Brightness(c))}
			if e.opts.Color {
				cell.Color = c
			} else {
				cell.Color = raster.Color{1, 1, 1}
			}
			e.frame.Cells[y*e.frame.Cols+x] = cell
		}
	}
}

// Brightness is the luma used for character selection.
func Brightness(c raster.Color) float32 {
	return 0.3*c[0] + 0.59*c[1] + 0.11*c[2]
}

func (e *Effect) CharFor(brightness float32) rune {
	n := len(e.charset)
	b := min(max(brightness, 0), 1)
	idx := int(math.Floor(float64(1-b) * float64(n-1)))
	if e.opts.Invert {
		idx = n - idx - 1
	}
	return e.charset[idx]
}
