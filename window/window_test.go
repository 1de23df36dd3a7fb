package window

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gekko3d/glyphspin"
	"github.com/gekko3d/glyphspin/rt/ascii"
)

func TestWindow_LayoutPushesResizeOnChange(t *testing.T) {
	queue := &glyphspin.InputQueue{}
	w := New(queue, Options{}, ascii.Options{})

	w.Layout(640, 480)
	w.Layout(640, 480)
	w.Layout(800, 600)

	assert.Equal(t, []glyphspin.InputEvent{
		glyphspin.Resize(640, 480),
		glyphspin.Resize(800, 600),
	}, queue.Drain())
}

func TestWindow_PresentCopiesFrame(t *testing.T) {
	w := New(&glyphspin.InputQueue{}, Options{}, ascii.Options{})
	frame := &ascii.Frame{Cols: 2, Rows: 1, Cells: []ascii.Cell{{Rune: '@'}, {Rune: '.'}}}

	require.NoError(t, w.Present(frame))
	frame.Cells[0].Rune = '#'
	assert.Equal(t, '@', w.frame.At(0, 0).Rune)

	require.NoError(t, w.Present(frame))
	assert.Equal(t, '#', w.frame.At(0, 0).Rune)
	assert.NotSame(t, frame, w.frame)
}

func TestNew_Defaults(t *testing.T) {
	w := New(&glyphspin.InputQueue{}, Options{}, ascii.Options{})
	assert.Equal(t, Options{Width: 800, Height: 600, Title: "glyphspin", TPS: 60}, w.opts)
	assert.Equal(t, ascii.DefaultOptions().Resolution, w.resolution)
	assert.Equal(t, 1.0, w.cellAspect)
}
