package font

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/gekko3d/glyphspin/rt/geom"
	"github.com/go-gl/mathgl/mgl32"
)

// typefaceData mirrors the typeface.json layout produced by facetype.js.
type typefaceData struct {
	FamilyName  string                   `json:"familyName"`
	Resolution  float32                  `json:"resolution"`
	Underline   float32                  `json:"underlineThickness"`
	BoundingBox typefaceBox              `json:"boundingBox"`
	Glyphs      map[string]typefaceGlyph `json:"glyphs"`
}

type typefaceBox struct {
	YMin float32 `json:"yMin"`
	YMax float32 `json:"yMax"`
}

type typefaceGlyph struct {
	Advance float32 `json:"ha"`
	Outline string  `json:"o"`
}

type typefaceFace struct {
	data typefaceData
}

// ParseTypeface reads a three.js typeface JSON document.
func ParseTypeface(data []byte) (Face, error) {
	var td typefaceData
	if err := json.Unmarshal(data, &td); err != nil {
		return nil, fmt.Errorf("failed to parse typeface: %w", err)
	}
	if td.Resolution <= 0 {
		return nil, fmt.Errorf("typeface %q has invalid resolution %v", td.FamilyName, td.Resolution)
	}
	if len(td.Glyphs) == 0 {
		return nil, fmt.Errorf("typeface %q has no glyphs", td.FamilyName)
	}
	return &typefaceFace{data: td}, nil
}

func (t *typefaceFace) Name() string { return t.data.FamilyName }

func (t *typefaceFace) LineHeight(size float32) float32 {
	box := t.data.BoundingBox
	return (box.YMax - box.YMin + t.data.Underline) * size / t.data.Resolution
}

func (t *typefaceFace) Glyph(r rune, size float32, curveSegments int) ([]geom.Contour, float32, error) {
	g, ok := t.data.Glyphs[string(r)]
	if !ok {
		return nil, 0, fmt.Errorf("glyph %q in %s: %w", r, t.data.FamilyName, ErrGlyphNotFound)
	}
	scale := size / t.data.Resolution
	contours, err := parseOutline(g.Outline, scale, curveSegments)
	if err != nil {
		return nil, 0, fmt.Errorf("glyph %q in %s: %w", r, t.data.FamilyName, err)
	}
	return contours, g.Advance * scale, nil
}

// parseOutline decodes "m x y l x y q x y cx cy b x y c1x c1y c2x c2y".
// Curve commands list the end point first, then the control points.
func parseOutline(o string, scale float32, curveSegments int) ([]geom.Contour, error) {
	fields := strings.Fields(o)
	p := newPath(curveSegments)

	i := 0
	next := func(n int) ([]mgl32.Vec2, error) {
		if i+2*n > len(fields) {
			return nil, fmt.Errorf("outline truncated at token %d", i)
		}
		pts := make([]mgl32.Vec2, n)
		for k := 0; k < n; k++ {
			x, err := strconv.ParseFloat(fields[i], 32)
			if err != nil {
				return nil, fmt.Errorf("outline token %d: %w", i, err)
			}
			y, err := strconv.ParseFloat(fields[i+1], 32)
			if err != nil {
				return nil, fmt.Errorf("outline token %d: %w", i+1, err)
			}
			pts[k] = mgl32.Vec2{float32(x) * scale, float32(y) * scale}
			i += 2
		}
		return pts, nil
	}

	for i < len(fields) {
		cmd := fields[i]
		i++
		switch cmd {
		case "m":
			pts, err := next(1)
			if err != nil {
				return nil, err
			}
			p.moveTo(pts[0])
		case "l":
			pts, err := next(1)
			if err != nil {
				return nil, err
			}
			p.lineTo(pts[0])
		case "q":
			pts, err := next(2)
			if err != nil {
				return nil, err
			}
			p.quadTo(pts[1], pts[0])
		case "b":
			pts, err := next(3)
			if err != nil {
				return nil, err
			}
			p.cubeTo(pts[1], pts[2], pts[0])
		case "z":
		default:
			return nil, fmt.Errorf("unknown outline command %q", cmd)
		}
	}
	return p.finish(), nil
}
