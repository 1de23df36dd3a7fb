package font

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gekko3d/glyphspin/rt/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const squareTypeface = `{
  "familyName": "Square",
  "resolution": 100,
  "underlineThickness": 10,
  "boundingBox": {"yMin": -20, "yMax": 100},
  "glyphs": {
    "O": {"ha": 120, "o": "m 0 0 l 100 0 l 100 100 l 0 100 m 25 25 l 75 25 l 75 75 l 25 75"},
    "V": {"ha": 100, "o": "m 0 0 q 100 0 50 50 l 0 0"}
  }
}`

func fillArea(contours []geom.Contour) float32 {
	var a float32
	for _, t := range geom.Fill(contours) {
		a += ((t.Right0 - t.Left0) + (t.Right1 - t.Left1)) / 2 * (t.Y1 - t.Y0)
	}
	return a
}

func TestBuiltin_GlyphB(t *testing.T) {
	face, err := Builtin()
	require.NoError(t, err)

	contours, adv, err := face.Glyph('B', 3.5, 16)
	require.NoError(t, err)
	// Outer shape plus the two counters.
	assert.GreaterOrEqual(t, len(contours), 3)
	assert.Greater(t, adv, float32(0))

	area := fillArea(contours)
	assert.Greater(t, area, float32(0))
	assert.Less(t, area, float32(3.5*3.5))
}

func TestBuiltin_MissingGlyph(t *testing.T) {
	face, err := Builtin()
	require.NoError(t, err)

	_, _, err = face.Glyph('\U0001F600', 1, 4)
	assert.ErrorIs(t, err, ErrGlyphNotFound)
}

func TestTypeface_SquareWithHole(t *testing.T) {
	face, err := ParseTypeface([]byte(squareTypeface))
	require.NoError(t, err)
	assert.Equal(t, "Square", face.Name())

	contours, adv, err := face.Glyph('O', 1, 8)
	require.NoError(t, err)
	assert.Len(t, contours, 2)
	assert.InDelta(t, 1.2, adv, 1e-6)
	assert.InDelta(t, 1-0.25, fillArea(contours), 1e-5)
	assert.InDelta(t, 1.3, face.LineHeight(1), 1e-6)
}

func TestTypeface_QuadraticEndPointFirst(t *testing.T) {
	face, err := ParseTypeface([]byte(squareTypeface))
	require.NoError(t, err)

	contours, _, err := face.Glyph('V', 100, 2)
	require.NoError(t, err)
	require.Len(t, contours, 1)
	assert.Equal(t, geom.Contour{{0, 0}, {50, 25}, {100, 0}}, contours[0])
}

func TestTypeface_Errors(t *testing.T) {
	_, err := ParseTypeface([]byte(`{"resolution": 0, "glyphs": {}}`))
	assert.Error(t, err)

	_, err = ParseTypeface([]byte(`not json`))
	assert.Error(t, err)

	face, err := ParseTypeface([]byte(squareTypeface))
	require.NoError(t, err)
	_, _, err = face.Glyph('B', 1, 4)
	assert.ErrorIs(t, err, ErrGlyphNotFound)

	_, err = parseOutline("m 0 0 l 10", 1, 1)
	assert.Error(t, err)
	_, err = parseOutline("x 0 0", 1, 1)
	assert.Error(t, err)
}

func TestShapes_LaysOutAdvance(t *testing.T) {
	face, err := ParseTypeface([]byte(squareTypeface))
	require.NoError(t, err)

	contours, err := Shapes(face, "OO", 1, 4)
	require.NoError(t, err)
	require.Len(t, contours, 4)
	assert.InDelta(t, 1.2, contours[2][0].X(), 1e-5)
	assert.InDelta(t, 0, contours[2][0].Y(), 1e-5)
}

func TestShapes_EmptyText(t *testing.T) {
	face, err := Builtin()
	require.NoError(t, err)

	_, err = Shapes(face, " ", 1, 4)
	assert.ErrorIs(t, err, ErrEmptyOutline)
}

func TestLoader_Refs(t *testing.T) {
	l := NewLoader()
	ctx := context.Background()

	face, err := l.Load(ctx, BuiltinRef)
	require.NoError(t, err)
	assert.Equal(t, "gobold", face.Name())

	_, err = l.Load(ctx, "builtin:comic")
	assert.ErrorIs(t, err, ErrUnsupportedRef)

	_, err = l.Load(ctx, "ftp://example.com/font.ttf")
	assert.ErrorIs(t, err, ErrUnsupportedRef)

	_, err = l.Load(ctx, filepath.Join(t.TempDir(), "missing.ttf"))
	assert.True(t, errors.Is(err, os.ErrNotExist), "expected not-exist error, got %v", err)
}

func TestLoader_LocalTypeface(t *testing.T) {
	path := filepath.Join(t.TempDir(), "square.typeface.json")
	require.NoError(t, os.WriteFile(path, []byte(squareTypeface), 0o644))

	face, err := NewLoader().Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "Square", face.Name())
}

func TestLoader_Remote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/fonts/square.typeface.json" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(squareTypeface))
	}))
	defer srv.Close()

	l := NewLoader()
	face, err := l.Load(context.Background(), srv.URL+"/fonts/square.typeface.json")
	require.NoError(t, err)
	assert.Equal(t, "Square", face.Name())

	_, err = l.Load(context.Background(), srv.URL+"/fonts/missing.json")
	assert.Error(t, err)
}

func TestLoader_RemoteCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLoader().Load(ctx, srv.URL+"/font.ttf")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoader_RemoteTooLarge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(squareTypeface))
	}))
	defer srv.Close()

	l := NewLoader()
	l.MaxSize = 16
	_, err := l.Load(context.Background(), srv.URL+"/square.typeface.json")
	assert.ErrorIs(t, err, ErrFontTooLarge)

	l.MaxSize = int64(len(squareTypeface))
	_, err = l.Load(context.Background(), srv.URL+"/square.typeface.json")
	assert.NoError(t, err)
}

func TestLoader_CancelledBeforeLocalLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "square.typeface.json")
	require.NoError(t, os.WriteFile(path, []byte(squareTypeface), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, ref := range []string{BuiltinRef, path} {
		face, err := NewLoader().Load(ctx, ref)
		assert.ErrorIs(t, err, context.Canceled, ref)
		assert.Nil(t, face, ref)
	}
}
