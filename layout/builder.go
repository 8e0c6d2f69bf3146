package layout

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoGlyphSource is returned by Build when no glyph source is configured.
var ErrNoGlyphSource = errors.New("layout: 缺少字形来源 GlyphSource")

// ParseWords 按逗号拆分输入，去掉首尾空白并丢弃空项。
func ParseWords(s string) []string {
	parts := strings.Split(s, ",")
	words := make([]string, 0, len(parts))
	for _, p := range parts {
		if w := strings.TrimSpace(p); w != "" {
			words = append(words, w)
		}
	}
	return words
}

// SpokeAngle returns i·(360/n) + offset in degrees. n < 1 is treated as 1.
func SpokeAngle(i, n int, offset float64) float64 {
	if n < 1 {
		n = 1
	}
	return float64(i)*(360/float64(n)) + offset
}

// SpokeAngles returns the angles of all n spokes.
func SpokeAngles(n int, offset float64) []float64 {
	if n < 1 {
		n = 1
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = SpokeAngle(i, n, offset)
	}
	return out
}

// Build 计算每个 spoke 的角度以及其上每个字形的笔位置。
//
// 每个单词的笔位置从 radius + startOffset 开始；除第一个字形外，放置前先累加
// kerning(prev, g)·scale + letterSpacing，放置在 pen + lsb·scale，放置后再累加
// advance·scale。该顺序与预览中 textPath 的排版一致，不可调换。
func Build(cfg Config, opts BuildOptions) (*Result, error) {
	src := opts.Glyphs
	if src == nil {
		return nil, ErrNoGlyphSource
	}
	upem := src.UnitsPerEm()
	if upem <= 0 {
		upem = 1000
	}
	scale := cfg.FontSize / upem

	n := cfg.WordCount()
	res := &Result{Scale: scale, Spokes: make([]Spoke, 0, n)}
	for i := 0; i < n; i++ {
		word := cfg.Word(i)
		spoke := Spoke{
			Index: i,
			Angle: SpokeAngle(i, n, cfg.AngleOffset),
			Word:  word,
		}
		placements, err := placeWord(word, cfg, scale, src)
		if err != nil {
			return nil, fmt.Errorf("layout: 第 %d 个单词 %q 排版失败: %w", i, word, err)
		}
		spoke.Placements = placements
		res.Spokes = append(res.Spokes, spoke)
	}
	return res, nil
}

func placeWord(word string, cfg Config, scale float64, src GlyphSource) ([]Placement, error) {
	gs, err := src.Shape(word)
	if err != nil {
		return nil, err
	}
	if len(gs) == 0 {
		return nil, nil
	}
	d := cfg.Radius + cfg.StartOffset
	out := make([]Placement, 0, len(gs))
	for gi, g := range gs {
		if gi > 0 {
			d += src.Kerning(gs[gi-1], g)*scale + cfg.LetterSpacing
		}
		out = append(out, Placement{
			Glyph:  g,
			Pen:    d,
			Offset: d + g.LSB*scale,
		})
		d += g.Advance * scale
	}
	return out, nil
}
