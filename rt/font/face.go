// Package font turns text into 2D outlines for extrusion. It reads
// TrueType/OpenType fonts through x/image/font/sfnt and the typeface JSON
// format used by three.js font loaders.
package font

import (
	"errors"

	"github.com/gekko3d/glyphspin/rt/geom"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	ErrGlyphNotFound  = errors.New("font: glyph not found")
	ErrEmptyOutline   = errors.New("font: text produced an empty outline")
	ErrUnsupportedRef = errors.New("font: unsupported font reference")
	ErrFontTooLarge   = errors.New("font: download exceeds size limit")
)

// Face produces glyph outlines scaled so one em equals size units, Y up.
type Face interface {
	Name() string
	// Glyph returns the outline of r placed at the origin and its advance.
	Glyph(r rune, size float32, curveSegments int) ([]geom.Contour, float32, error)
	// LineHeight is the distance between baselines at the given size.
	LineHeight(size float32) float32
}

// Shapes lays out text left to right, one line per '\n', and returns all
// contours.
func Shapes(face Face, text string, size float32, curveSegments int) ([]geom.Contour, error) {
	var out []geom.Contour
	var offsetX, offsetY float32
	for _, r := range text {
		if r == '\n' {
			offsetX = 0
			offsetY -= face.LineHeight(size)
			continue
		}
		contours, adv, err := face.Glyph(r, size, curveSegments)
		if err != nil {
			return nil, err
		}
		shift := mgl32.Vec2{offsetX, offsetY}
		for _, c := range contours {
			moved := make(geom.Contour, len(c))
			for i, p := range c {
				moved[i] = p.Add(shift)
			}
			out = append(out, moved)
		}
		offsetX += adv
	}
	if len(geom.Fill(out)) == 0 {
		return nil, ErrEmptyOutline
	}
	return out, nil
}

// path accumulates flattened contours from pen commands.
type path struct {
	segments int
	contours []geom.Contour
	cur      geom.Contour
	pen      mgl32.Vec2
}

func newPath(segments int) *path {
	if segments < 1 {
		segments = 1
	}
	return &path{segments: segments}
}

func (p *path) moveTo(pt mgl32.Vec2) {
	p.close()
	p.cur = geom.Contour{pt}
	p.pen = pt
}

func (p *path) lineTo(pt mgl32.Vec2) {
	p.cur = append(p.cur, pt)
	p.pen = pt
}

func (p *path) quadTo(ctrl, pt mgl32.Vec2) {
	start := p.pen
	for i := 1; i <= p.segments; i++ {
		t := float32(i) / float32(p.segments)
		u := 1 - t
		q := start.Mul(u * u).Add(ctrl.Mul(2 * u * t)).Add(pt.Mul(t * t))
		p.cur = append(p.cur, q)
	}
	p.pen = pt
}

func (p *path) cubeTo(c1, c2, pt mgl32.Vec2) {
	start := p.pen
	for i := 1; i <= p.segments; i++ {
		t := float32(i) / float32(p.segments)
		u := 1 - t
		q := start.Mul(u * u * u).
			Add(c1.Mul(3 * u * u * t)).
			Add(c2.Mul(3 * u * t * t)).
			Add(pt.Mul(t * t * t))
		p.cur = append(p.cur, q)
	}
	p.pen = pt
}

func (p *path) close() {
	if c := p.cur.Clean(); len(c) >= 3 {
		p.contours = append(p.contours, c)
	}
	p.cur = nil
}

func (p *path) finish() []geom.Contour {
	p.close()
	return p.contours
}
