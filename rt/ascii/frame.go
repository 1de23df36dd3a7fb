package ascii

import (
	"strings"

	"github.com/gekko3d/glyphspin/rt/raster"
)

type Cell struct {
	Rune  rune
	Color raster.Color
}

// Frame is one rendered grid of characters, row major.
type Frame struct {
	Cols, Rows int
	Cells      []Cell
}

func (f *Frame) At(col, row int) Cell {
	return f.Cells[row*f.Cols+col]
}

func (f *Frame) Lines() []string {
	lines := make([]string, f.Rows)
	var sb strings.Builder
	for y := 0; y < f.Rows; y++ {
		sb.Reset()
		for x := 0; x < f.Cols; x++ {
			sb.WriteRune(f.At(x, y).Rune)
		}
		lines[y] = sb.String()
	}
	return lines
}

func (f *Frame) String() string {
	return strings.Join(f.Lines(), "\n")
}

// Clone returns a deep copy, for sinks that keep frames past Present.
func (f *Frame) Clone() *Frame {
	out := &Frame{Cols: f.Cols, Rows: f.Rows, Cells: make([]Cell, len(f.Cells))}
	copy(out.Cells, f.Cells)
	return out
}

// Sink presents finished frames. The frame is only valid during the call.
type Sink interface {
	Present(frame *Frame) error
}

// MemorySink keeps the latest frame.
type MemorySink struct {
	Last   *Frame
	Frames int
}

func (m *MemorySink) Present(frame *Frame) error {
	m.Last = frame.Clone()
	m.Frames++
	return nil
}
