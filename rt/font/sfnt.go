package font

import (
	"fmt"

	"github.com/gekko3d/glyphspin/rt/geom"
	"github.com/go-gl/mathgl/mgl32"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

type sfntFace struct {
	name string
	f    *sfnt.Font
	buf  sfnt.Buffer
	ppem fixed.Int26_6
	upem float32
}

// ParseSFNT reads a TrueType or OpenType font.
func ParseSFNT(name string, data []byte) (Face, error) {
	f, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font %s: %w", name, err)
	}
	upem := f.UnitsPerEm()
	return &sfntFace{
		name: name,
		f:    f,
		// Load outlines at one pixel per font unit and scale in float.
		ppem: fixed.I(int(upem)),
		upem: float32(upem),
	}, nil
}

// Builtin returns the embedded Go Bold face.
func Builtin() (Face, error) {
	return ParseSFNT("gobold", gobold.TTF)
}

func (s *sfntFace) Name() string { return s.name }

func (s *sfntFace) LineHeight(size float32) float32 {
	m, err := s.f.Metrics(&s.buf, s.ppem, xfont.HintingNone)
	if err != nil {
		return size * 1.2
	}
	return fromFixed(m.Height) * size / s.upem
}

func (s *sfntFace) Glyph(r rune, size float32, curveSegments int) ([]geom.Contour, float32, error) {
	idx, err := s.f.GlyphIndex(&s.buf, r)
	if err != nil {
		return nil, 0, fmt.Errorf("glyph %q in %s: %w", r, s.name, err)
	}
	if idx == 0 {
		return nil, 0, fmt.Errorf("glyph %q in %s: %w", r, s.name, ErrGlyphNotFound)
	}

	segs, err := s.f.LoadGlyph(&s.buf, idx, s.ppem, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("glyph %q in %s: %w", r, s.name, err)
	}

	scale := size / s.upem
	// sfnt coordinates grow downwards.
	pt := func(p fixed.Point26_6) mgl32.Vec2 {
		return mgl32.Vec2{fromFixed(p.X) * scale, -fromFixed(p.Y) * scale}
	}

	p := newPath(curveSegments)
	for _, seg := range segs {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			p.moveTo(pt(seg.Args[0]))
		case sfnt.SegmentOpLineTo:
			p.lineTo(pt(seg.Args[0]))
		case sfnt.SegmentOpQuadTo:
			p.quadTo(pt(seg.Args[0]), pt(seg.Args[1]))
		case sfnt.SegmentOpCubeTo:
			p.cubeTo(pt(seg.Args[0]), pt(seg.Args[1]), pt(seg.Args[2]))
		}
	}

	adv, err := s.f.GlyphAdvance(&s.buf, idx, s.ppem, xfont.HintingNone)
	if err != nil {
		return nil, 0, fmt.Errorf("advance of %q in %s: %w", r, s.name, err)
	}
	return p.finish(), fromFixed(adv) * scale, nil
}

func fromFixed(v fixed.Int26_6) float32 {
	return float32(v) / 64
}
