// Package export assembles the flattened outline document: every glyph of the
// radial layout baked through the preview's 3D projection into plain paths.
package export

import (
	"errors"
	"fmt"

	"github.com/tdewolff/canvas"
	"golang.org/x/image/font/sfnt"

	"github.com/ByLCY/radialtext/fonts"
	"github.com/ByLCY/radialtext/layout"
	"github.com/ByLCY/radialtext/outline"
	"github.com/ByLCY/radialtext/projection"
)

const (
	// DefaultFill is the fill colour of exported glyph paths.
	DefaultFill = "#111"
	// DefaultViewBox is centred on the layout origin, ReferenceWidth wide.
	DefaultViewBox = "-600 -600 1200 1200"
)

// ErrNoFont is returned when no font with parsed outlines is available.
var ErrNoFont = errors.New("export: 需要先加载可解析轮廓的字体")

// Request 是导出时刻的完整快照。
type Request struct {
	Layout       layout.Config
	Rotation     projection.Rotation
	Perspective  float64 // px，0 表示不做透视
	DisplayScale float64 // 预览渲染宽度 / 1200，≤0 按 1 处理
	Font         *fonts.Asset
	Fill         string
	ViewBox      string
	Title        string
}

// NewRequest returns a request with the preview defaults filled in.
func NewRequest(cfg layout.Config, r projection.Rotation, font *fonts.Asset) Request {
	return Request{
		Layout:       cfg,
		Rotation:     r,
		Perspective:  projection.DefaultPerspective,
		DisplayScale: 1,
		Font:         font,
		Fill:         DefaultFill,
		ViewBox:      DefaultViewBox,
	}
}

// Document 是扁平化后的矢量文档，不依赖任何字体。
type Document struct {
	ViewBox string
	Title   string
	Shapes  []Shape
}

// Shape 是一个字形的填充路径。空格等无轮廓字形的 Path 为空，但仍占一个 Shape。
type Shape struct {
	Spoke int
	Word  string
	Glyph sfnt.GlyphIndex
	Fill  string
	Path  *canvas.Path
}

// Outlines 重新计算布局并把每个字形轮廓投影到平面上。结果不做缓存，相同的请求
// 总是得到相同的文档。
func Outlines(req Request) (*Document, error) {
	if !req.Font.HasOutlines() {
		return nil, ErrNoFont
	}
	res, err := layout.Build(req.Layout, layout.BuildOptions{Glyphs: req.Font.Font})
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}

	fill := req.Fill
	if fill == "" {
		fill = DefaultFill
	}
	doc := &Document{ViewBox: req.ViewBox, Title: req.Title}
	if doc.ViewBox == "" {
		doc.ViewBox = DefaultViewBox
	}

	proj := projection.NewProjector(req.Perspective, req.Rotation, req.DisplayScale)
	doc.Shapes = make([]Shape, 0, res.GlyphCount())
	for _, spoke := range res.Spokes {
		for _, p := range spoke.Placements {
			tr := outline.NewTransformer(spoke.Angle, p.Offset, proj)
			doc.Shapes = append(doc.Shapes, Shape{
				Spoke: spoke.Index,
				Word:  spoke.Word,
				Glyph: p.Glyph.ID,
				Fill:  fill,
				Path:  tr.Transform(outline.Scale(p.Glyph.Outline, res.Scale)),
			})
		}
	}
	return doc, nil
}
