package layout

// 该文件定义 spoke 布局的输入配置与结果，供导出、预览与调试 JSON 共用。

import (
	"github.com/ByLCY/radialtext/glyphs"
)

// Config 描述一次径向排版的全部参数（px / 度）。
type Config struct {
	Words         []string `json:"words" yaml:"words"`
	FontSize      float64  `json:"fontSize" yaml:"font-size"`
	Radius        float64  `json:"radius" yaml:"radius"`                // 可为负数，文字落在中心另一侧
	AngleOffset   float64  `json:"angleOffset" yaml:"angle"`            // 度，不做归一化
	LetterSpacing float64  `json:"letterSpacing" yaml:"letter-spacing"` // 每对字形之间追加，可为负
	StartOffset   float64  `json:"startOffset" yaml:"start"`            // 叠加在 radius 上
}

// WordCount returns max(1, len(Words)); an empty list counts as one empty word.
func (c Config) WordCount() int {
	if len(c.Words) == 0 {
		return 1
	}
	return len(c.Words)
}

// Word returns word i, or "" for the placeholder of an empty list.
func (c Config) Word(i int) string {
	if i < 0 || i >= len(c.Words) {
		return ""
	}
	return c.Words[i]
}

// Result 保存所有 spoke 及其字形位置。
type Result struct {
	Scale  float64 `json:"scale"` // fontSize / unitsPerEm
	Spokes []Spoke `json:"spokes"`
}

// Spoke 是一个单词所在的径向轴。
type Spoke struct {
	Index      int         `json:"index"`
	Angle      float64     `json:"angle"` // 度，屏幕上方为 0°，顺时针
	Word       string      `json:"word"`
	Placements []Placement `json:"placements"`
}

// Placement 记录单个字形在 spoke 上的位置。
type Placement struct {
	Glyph glyphs.Glyph `json:"glyph"`
	// Pen 为放置该字形时的笔位置（距中心的距离，已含字距与 letter-spacing）。
	Pen float64 `json:"pen"`
	// Offset = Pen + LSB·scale，字形轮廓原点沿 spoke 的实际位置。
	Offset float64 `json:"offset"`
}

// GlyphCount returns the total number of placements across all spokes.
func (r *Result) GlyphCount() int {
	if r == nil {
		return 0
	}
	n := 0
	for _, s := range r.Spokes {
		n += len(s.Placements)
	}
	return n
}
