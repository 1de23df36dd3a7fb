package ascii

import (
	"strings"
	"testing"

	"github.com/gekko3d/glyphspin/rt/core"
	"github.com/gekko3d/glyphspin/rt/geom"
	"github.com/gekko3d/glyphspin/rt/raster"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEffect_GridFollowsResolution(t *testing.T) {
	e := NewEffect(raster.NewRenderer(0, 0), "", DefaultOptions(), nil)

	cols, rows := e.Grid(800, 600)
	assert.Equal(t, 80, cols)
	assert.Equal(t, 60, rows)

	opts := DefaultOptions()
	opts.CellAspect = 2
	e = NewEffect(raster.NewRenderer(0, 0), "", opts, nil)
	cols, rows = e.Grid(800, 600)
	assert.Equal(t, 80, cols)
	assert.Equal(t, 30, rows)
}

func TestEffect_SetOutputSizeScalesRenderer(t *testing.T) {
	r := raster.NewRenderer(0, 0)
	e := NewEffect(r, "", DefaultOptions(), nil)
	e.SetOutputSize(400, 200)

	w, h := r.Size()
	assert.Equal(t, 80, w)
	assert.Equal(t, 40, h)

	ow, oh := e.OutputSize()
	assert.Equal(t, 400, ow)
	assert.Equal(t, 200, oh)
}

func TestEffect_CharFor(t *testing.T) {
	e := NewEffect(raster.NewRenderer(0, 0), DefaultCharset, DefaultOptions(), nil)
	assert.Equal(t, ' ', e.CharFor(0))
	assert.Equal(t, '#', e.CharFor(1))
	assert.Equal(t, '#', e.CharFor(2))

	opts := DefaultOptions()
	opts.Invert = false
	e = NewEffect(raster.NewRenderer(0, 0), DefaultCharset, opts, nil)
	assert.Equal(t, '#', e.CharFor(0))
	assert.Equal(t, ' ', e.CharFor(1))
}

func TestBrightness_Weights(t *testing.T) {
	assert.InDelta(t, 0.3, Brightness(raster.Color{1, 0, 0}), 1e-6)
	assert.InDelta(t, 0.59, Brightness(raster.Color{0, 1, 0}), 1e-6)
	assert.InDelta(t, 0.11, Brightness(raster.Color{0, 0, 1}), 1e-6)
}

func TestEffect_RenderPresentsFrame(t *testing.T) {
	sink := &MemorySink{}
	opts := DefaultOptions()
	opts.Color = false
	e := NewEffect(raster.NewRenderer(0, 0), "", opts, sink)
	e.SetOutputSize(200, 200)

	scene := core.NewScene()
	scene.Add(core.Object{Mesh: geom.Box(3, 3, 3), Transform: core.NewTransform(), Material: core.DefaultMaterial()})
	scene.AddLight(core.Light{Type: core.LightTypeAmbient, Color: [3]float32{1, 1, 1}, Intensity: 1})

	require.NoError(t, e.Render(scene, core.NewCamera(45, 1, 0.1, 100)))
	require.Equal(t, 1, sink.Frames)

	f := sink.Last
	require.Equal(t, 20, f.Cols)
	require.Equal(t, 20, f.Rows)
	assert.Equal(t, '#', f.At(10, 10).Rune)
	assert.Equal(t, ' ', f.At(0, 0).Rune)
	assert.Equal(t, raster.Color{1, 1, 1}, f.At(0, 0).Color)

	lines := f.Lines()
	assert.Len(t, lines, 20)
	assert.Equal(t, strings.Repeat(" ", 20), lines[0])
}

func TestEffect_EmptySceneIsBlank(t *testing.T) {
	sink := &MemorySink{}
	e := NewEffect(raster.NewRenderer(0, 0), "", DefaultOptions(), sink)
	e.SetOutputSize(40, 20)

	require.NoError(t, e.Render(core.NewScene(), core.NewCamera(45, 2, 0.1, 100)))

	want := "    \n    "
	if diff := cmp.Diff(want, sink.Last.String()); diff != "" {
		t.Errorf("frame mismatch (-want +got):\n%s", diff)
	}
}

func TestFrame_CloneIsIndependent(t *testing.T) {
	f := &Frame{Cols: 1, Rows: 1, Cells: []Cell{{Rune: 'a'}}}
	c := f.Clone()
	f.Cells[0].Rune = 'b'
	assert.Equal(t, 'a', c.At(0, 0).Rune)
}
