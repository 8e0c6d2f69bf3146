// Package glyphs parses font binaries and provides shaped glyph sequences,
// metrics, kerning and outlines in font design units.
package glyphs

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/tdewolff/canvas"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

const (
	// defaultUnitsPerEm is used when a font reports no design grid.
	defaultUnitsPerEm = 1000
	// maxLoadPPEM caps the ppem glyphs are read at. sfnt scales coordinates
	// with int32 arithmetic, so coordinate·ppem·64 must stay below 2^31 for
	// every int16 design coordinate.
	maxLoadPPEM = 1024
)

// Glyph is one shaped glyph. Metrics and outline are in font units; the
// outline has y pointing down with the glyph origin at (0, 0).
type Glyph struct {
	ID      sfnt.GlyphIndex `json:"id"`
	Advance float64         `json:"advance"`
	LSB     float64         `json:"lsb"`
	Outline *canvas.Path    `json:"-"`
}

// Font is a parsed font with a glyph cache. It is safe for concurrent use.
type Font struct {
	sf     *sfnt.Font
	upem   float64
	ppem   fixed.Int26_6
	units  float64 // 26.6 值换算回字体单位的系数
	shaper Shaper

	mu    sync.Mutex
	buf   sfnt.Buffer
	cache map[sfnt.GlyphIndex]Glyph
}

// Option configures Parse.
type Option func(*options)

type options struct {
	shaping Shaping
}

// WithShaping selects how words are turned into glyph sequences.
func WithShaping(s Shaping) Option {
	return func(o *options) { o.shaping = s }
}

// Parse parses a TrueType or OpenType (CFF) font. WOFF containers are not
// decoded and fail here.
func Parse(data []byte, opts ...Option) (*Font, error) {
	o := options{shaping: ShapingHarfBuzz}
	for _, opt := range opts {
		opt(&o)
	}
	sf, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("glyphs: 解析字体失败: %w", err)
	}
	upem := float64(sf.UnitsPerEm())
	if upem <= 0 {
		upem = defaultUnitsPerEm
	}
	ppem := loadPPEM(upem)
	f := &Font{
		sf:    sf,
		upem:  upem,
		ppem:  fixed.Int26_6(ppem * 64),
		units: upem / (ppem * 64),
		cache: map[sfnt.GlyphIndex]Glyph{},
	}
	f.shaper = f.newShaper(o.shaping, data)
	return f, nil
}

// UnitsPerEm returns the font's design units per em.
func (f *Font) UnitsPerEm() float64 { return f.upem }

// Name returns the family name, or "" when the name table has none.
func (f *Font) Name() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	name, err := f.sf.Name(&f.buf, sfnt.NameIDFamily)
	if err != nil {
		return ""
	}
	return name
}

// Shape returns the glyph sequence for word, with ligatures and substitutions
// resolved when the shaper supports them. An empty word yields no glyphs.
func (f *Font) Shape(word string) ([]Glyph, error) {
	if word == "" {
		return nil, nil
	}
	ids, err := f.shaper.Shape(word)
	if err != nil {
		return nil, err
	}
	out := make([]Glyph, 0, len(ids))
	for _, id := range ids {
		g, err := f.Glyph(id)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, nil
}

// Glyph loads metrics and outline for a glyph index.
func (f *Font) Glyph(id sfnt.GlyphIndex) (Glyph, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if g, ok := f.cache[id]; ok {
		return g, nil
	}

	adv, err := f.sf.GlyphAdvance(&f.buf, id, f.ppem, xfont.HintingNone)
	if err != nil {
		return Glyph{}, fmt.Errorf("glyphs: 读取字形 %d 的步进失败: %w", id, err)
	}
	g := Glyph{ID: id, Advance: f.toUnits(adv), Outline: &canvas.Path{}}

	bounds, _, err := f.sf.GlyphBounds(&f.buf, id, f.ppem, xfont.HintingNone)
	if err == nil {
		g.LSB = f.toUnits(bounds.Min.X)
	}

	segs, err := f.sf.LoadGlyph(&f.buf, id, f.ppem, nil)
	switch {
	case err == nil:
		g.Outline = f.segmentsToPath(segs)
	case errors.Is(err, sfnt.ErrColoredGlyph):
		// 彩色字形没有可用的轮廓，按空字形处理
	default:
		return Glyph{}, fmt.Errorf("glyphs: 读取字形 %d 的轮廓失败: %w", id, err)
	}

	f.cache[id] = g
	return g, nil
}

// Kerning returns the pair adjustment between a and b in font units. Fonts
// without kerning data return 0.
func (f *Font) Kerning(a, b Glyph) float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	k, err := f.sf.Kern(&f.buf, a.ID, b.ID, f.ppem, xfont.HintingNone)
	if err != nil {
		return 0
	}
	return f.toUnits(k)
}

// segmentsToPath converts sfnt segments (y down) to a path in font units. sfnt
// contours are implicitly closed; each contour gets an explicit Close.
func (f *Font) segmentsToPath(segs sfnt.Segments) *canvas.Path {
	p := &canvas.Path{}
	open := false
	for _, s := range segs {
		switch s.Op {
		case sfnt.SegmentOpMoveTo:
			if open {
				p.Close()
			}
			a := f.toPoint(s.Args[0])
			p.MoveTo(a.X, a.Y)
			open = true
		case sfnt.SegmentOpLineTo:
			a := f.toPoint(s.Args[0])
			p.LineTo(a.X, a.Y)
		case sfnt.SegmentOpQuadTo:
			c, a := f.toPoint(s.Args[0]), f.toPoint(s.Args[1])
			p.QuadTo(c.X, c.Y, a.X, a.Y)
		case sfnt.SegmentOpCubeTo:
			c1, c2, a := f.toPoint(s.Args[0]), f.toPoint(s.Args[1]), f.toPoint(s.Args[2])
			p.CubeTo(c1.X, c1.Y, c2.X, c2.Y, a.X, a.Y)
		}
	}
	if open {
		p.Close()
	}
	return p
}

func (f *Font) toPoint(p fixed.Point26_6) canvas.Point {
	return canvas.Point{X: f.toUnits(p.X), Y: f.toUnits(p.Y)}
}

// toUnits converts a 26.6 value measured at f.ppem back to font units.
func (f *Font) toUnits(v fixed.Int26_6) float64 { return float64(v) * f.units }

// loadPPEM returns the ppem (px) glyph data is read at: unitsPerEm itself when
// small enough, so values come back exact, else maxLoadPPEM.
func loadPPEM(upem float64) float64 {
	return math.Min(upem, maxLoadPPEM)
}
