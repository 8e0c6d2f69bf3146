package layout

import "github.com/ByLCY/radialtext/glyphs"

// BuildOptions 配置布局阶段所需的依赖，例如字形来源。
type BuildOptions struct {
	Glyphs GlyphSource
}

// GlyphSource 提供单词的字形序列、字距与字体设计网格。*glyphs.Font 实现了该接口。
type GlyphSource interface {
	UnitsPerEm() float64
	Shape(word string) ([]glyphs.Glyph, error)
	Kerning(a, b glyphs.Glyph) float64
}

var _ GlyphSource = (*glyphs.Font)(nil)
