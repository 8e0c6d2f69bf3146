package glyphs

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/go-text/typesetting/di"
	gotext "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/ByLCY/radialtext/logging"
)

// Shaping selects the word-to-glyph strategy.
type Shaping int

const (
	// ShapingHarfBuzz resolves ligatures and script substitutions via go-text/typesetting.
	ShapingHarfBuzz Shaping = iota
	// ShapingCmap maps each rune through the cmap table, one glyph per rune.
	ShapingCmap
)

// ParseShaping maps a settings value ("harfbuzz", "cmap") to a Shaping.
func ParseShaping(s string) (Shaping, error) {
	switch s {
	case "", "harfbuzz", "hb":
		return ShapingHarfBuzz, nil
	case "cmap", "simple":
		return ShapingCmap, nil
	default:
		return ShapingHarfBuzz, fmt.Errorf("glyphs: 未知的 shaping 方式 %q", s)
	}
}

// Shaper turns a word into glyph indices in logical order.
type Shaper interface {
	Shape(word string) ([]sfnt.GlyphIndex, error)
}

func (f *Font) newShaper(mode Shaping, data []byte) Shaper {
	cm := &cmapShaper{font: f}
	if mode == ShapingCmap {
		return cm
	}
	hb, err := newHarfBuzzShaper(data, f.ppem)
	if err != nil {
		logging.Logger().Warn("HarfBuzz shaping unavailable, falling back to cmap", "error", err)
		return cm
	}
	return hb
}

// cmapShaper maps runes one by one; missing runes map to glyph 0 (.notdef).
type cmapShaper struct {
	font *Font
}

func (s *cmapShaper) Shape(word string) ([]sfnt.GlyphIndex, error) {
	s.font.mu.Lock()
	defer s.font.mu.Unlock()
	ids := make([]sfnt.GlyphIndex, 0, len(word))
	for _, r := range word {
		id, err := s.font.sf.GlyphIndex(&s.font.buf, r)
		if err != nil {
			return nil, fmt.Errorf("glyphs: 查找字符 %q 失败: %w", r, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// harfBuzzShaper shapes with go-text/typesetting. font.Font is read-only and
// shared; a Face and a HarfbuzzShaper are not safe for concurrent use, so the
// shapers are pooled and a Face is created per call.
type harfBuzzShaper struct {
	font *gotext.Font
	size fixed.Int26_6
	pool sync.Pool
}

func newHarfBuzzShaper(data []byte, size fixed.Int26_6) (*harfBuzzShaper, error) {
	face, err := gotext.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return &harfBuzzShaper{
		font: face.Font,
		size: size,
		pool: sync.Pool{New: func() any { return &shaping.HarfbuzzShaper{} }},
	}, nil
}

func (s *harfBuzzShaper) Shape(word string) ([]sfnt.GlyphIndex, error) {
	runes := []rune(word)
	if len(runes) == 0 {
		return nil, nil
	}
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      gotext.NewFace(s.font),
		Size:      s.size,
		Script:    detectScript(runes),
		Language:  language.NewLanguage("en"),
	}
	hb := s.pool.Get().(*shaping.HarfbuzzShaper)
	out := hb.Shape(input)
	s.pool.Put(hb)

	ids := make([]sfnt.GlyphIndex, len(out.Glyphs))
	for i, g := range out.Glyphs {
		ids[i] = sfnt.GlyphIndex(g.GlyphID)
	}
	return ids, nil
}

// detectScript returns the script of the first non-space rune.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}
