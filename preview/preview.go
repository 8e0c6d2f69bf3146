// Package preview builds the live, editable document: one invisible guide line
// per spoke with the word set on it as a textPath, and a CSS transform applied
// to the whole surface.
package preview

import (
	"fmt"
	"math"

	"github.com/ByLCY/radialtext/fonts"
	"github.com/ByLCY/radialtext/layout"
	"github.com/ByLCY/radialtext/projection"
)

// FallbackFamilies is appended to the font stack and used alone without a font.
const FallbackFamilies = "Helvetica, Arial, sans-serif"

// Options 只影响预览，与导出计算无关。
type Options struct {
	Half      float64 // guide 路径从 -Half 延伸到 +Half，长度 2·Half
	EdgeGuard float64 // startOffset 与路径两端保持的最小距离
}

// DefaultOptions returns Half 8000 and EdgeGuard 10.
func DefaultOptions() Options {
	return Options{Half: 8000, EdgeGuard: 10}
}

// Document 是预览结构，由 renderer/svg 序列化。
type Document struct {
	ViewBox   string
	Transform string // CSS transform，作用于整个预览
	Guides    []Guide
	Texts     []TextPath
	Font      *fonts.Asset // 可为 nil
}

// Guide 是一条穿过中心的不可见 spoke 路径。
type Guide struct {
	ID     string
	X1, Y1 float64
	X2, Y2 float64
}

// D returns the guide as SVG path data.
func (g Guide) D() string {
	return fmt.Sprintf("M %g %g L %g %g", g.X1, g.Y1, g.X2, g.Y2)
}

// TextPath 描述沿 guide 排列的一个单词。
type TextPath struct {
	Href          string
	StartOffset   float64
	Text          string
	FontSize      float64
	FontFamily    string
	LetterSpacing float64
}

// Polar returns the point r units from the origin at deg, with 0° pointing up
// and angles increasing clockwise.
func Polar(r, deg float64) (float64, float64) {
	rad := (deg - 90) * math.Pi / 180
	return r * math.Cos(rad), r * math.Sin(rad)
}

// StartOffset clamps half + radius + start into [guard, 2·half − guard].
func StartOffset(cfg layout.Config, opts Options) float64 {
	v := opts.Half + cfg.Radius + cfg.StartOffset
	lo, hi := opts.EdgeGuard, 2*opts.Half-opts.EdgeGuard
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// FontStack returns the font-family value for the preview text.
func FontStack(font *fonts.Asset) string {
	if font == nil || font.Family == "" {
		return FallbackFamilies
	}
	return "'" + font.Family + "', " + FallbackFamilies
}

// Transform returns the CSS transform of the preview surface.
func Transform(perspective float64, r projection.Rotation) string {
	return fmt.Sprintf("perspective(%gpx) %s", perspective, r.String())
}

// Build 构建预览文档。只依赖布局参数和字体族名，不需要解析字体轮廓。
func Build(cfg layout.Config, font *fonts.Asset, opts Options) *Document {
	if opts.Half <= 0 {
		opts = DefaultOptions()
	}
	n := cfg.WordCount()
	angles := layout.SpokeAngles(n, cfg.AngleOffset)
	doc := &Document{
		ViewBox: fmt.Sprintf("%g %g %g %g", -projection.ReferenceWidth/2, -projection.ReferenceWidth/2,
			projection.ReferenceWidth, projection.ReferenceWidth),
		Transform: Transform(projection.DefaultPerspective, projection.Rotation{}),
		Guides:    make([]Guide, 0, n),
		Texts:     make([]TextPath, 0, n),
		Font:      font,
	}
	family := FontStack(font)
	offset := StartOffset(cfg, opts)
	for i, a := range angles {
		x1, y1 := Polar(-opts.Half, a)
		x2, y2 := Polar(opts.Half, a)
		id := fmt.Sprintf("spoke-%d", i)
		doc.Guides = append(doc.Guides, Guide{ID: id, X1: x1, Y1: y1, X2: x2, Y2: y2})
		doc.Texts = append(doc.Texts, TextPath{
			Href:          "#" + id,
			StartOffset:   offset,
			Text:          cfg.Word(i),
			FontSize:      cfg.FontSize,
			FontFamily:    family,
			LetterSpacing: cfg.LetterSpacing,
		})
	}
	return doc
}

// WithRotation returns a copy of doc whose surface transform reflects r.
// Rotation changes never rebuild the guides.
func (d *Document) WithRotation(perspective float64, r projection.Rotation) *Document {
	cp := *d
	cp.Transform = Transform(perspective, r)
	return &cp
}
