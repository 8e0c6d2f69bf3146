// Package svgrenderer serializes outline and live documents as SVG.
package svgrenderer

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/ByLCY/radialtext/export"
	"github.com/ByLCY/radialtext/preview"
	"github.com/ByLCY/radialtext/renderer"
)

const (
	svgNS   = "http://www.w3.org/2000/svg"
	xlinkNS = "http://www.w3.org/1999/xlink"
)

// Renderer writes both document kinds as SVG.
type Renderer struct{}

var (
	_ renderer.Renderer     = Renderer{}
	_ renderer.LiveRenderer = Renderer{}
)

// Render implements renderer.Renderer.
func (Renderer) Render(doc *export.Document) ([]byte, error) { return Outlines(doc) }

// RenderLive implements renderer.LiveRenderer.
func (Renderer) RenderLive(doc *preview.Document) ([]byte, error) { return Live(doc) }

type outlineSVG struct {
	XMLName xml.Name     `xml:"svg"`
	NS      string       `xml:"xmlns,attr"`
	ViewBox string       `xml:"viewBox,attr"`
	Title   string       `xml:"title,omitempty"`
	Group   outlineGroup `xml:"g"`
}

type outlineGroup struct {
	Paths []pathElem `xml:"path"`
}

type pathElem struct {
	ID     string `xml:"id,attr,omitempty"`
	D      string `xml:"d,attr"`
	Fill   string `xml:"fill,attr"`
	Stroke string `xml:"stroke,attr,omitempty"`
}

// Outlines 输出只包含填充路径的 SVG，不引用任何字体。
func Outlines(doc *export.Document) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("svg: 文档为空")
	}
	out := outlineSVG{NS: svgNS, ViewBox: doc.ViewBox, Title: doc.Title}
	out.Group.Paths = make([]pathElem, 0, len(doc.Shapes))
	for _, s := range doc.Shapes {
		var d string
		if s.Path != nil {
			d = s.Path.ToSVG()
		}
		out.Group.Paths = append(out.Group.Paths, pathElem{D: d, Fill: s.Fill})
	}
	return encode(out)
}

type liveSVG struct {
	XMLName  xml.Name   `xml:"svg"`
	NS       string     `xml:"xmlns,attr"`
	XLink    string     `xml:"xmlns:xlink,attr"`
	ViewBox  string     `xml:"viewBox,attr"`
	Overflow string     `xml:"overflow,attr"`
	Style    *styleElem `xml:"style,omitempty"`
	Defs     defsElem   `xml:"defs"`
	Labels   labelsElem `xml:"g"`
}

type styleElem struct {
	CSS string `xml:",cdata"`
}

type defsElem struct {
	ID    string     `xml:"id,attr"`
	Paths []pathElem `xml:"path"`
}

type labelsElem struct {
	ID    string     `xml:"id,attr"`
	Texts []textElem `xml:"text"`
}

type textElem struct {
	FontSize      string       `xml:"font-size,attr"`
	FontFamily    string       `xml:"font-family,attr"`
	LetterSpacing string       `xml:"letter-spacing,attr"`
	TextPath      textPathElem `xml:"textPath"`
}

type textPathElem struct {
	Href        string `xml:"xlink:href,attr"`
	StartOffset string `xml:"startOffset,attr"`
	Text        string `xml:",chardata"`
}

// Live 输出可编辑的 SVG：defs 中是不可见的 spoke 路径，每个单词是一个 textPath。
// 加载了字体时以 data URL 形式内嵌 @font-face，使文件脱离原环境仍能显示同一字体。
// 表面的 3D 变换不写入文件。
func Live(doc *preview.Document) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("svg: 预览文档为空")
	}
	out := liveSVG{
		NS:       svgNS,
		XLink:    xlinkNS,
		ViewBox:  doc.ViewBox,
		Overflow: "visible",
		Defs:     defsElem{ID: "defs"},
		Labels:   labelsElem{ID: "labels"},
	}
	if css := FontFaceCSS(doc); css != "" {
		out.Style = &styleElem{CSS: css}
	}
	for _, g := range doc.Guides {
		out.Defs.Paths = append(out.Defs.Paths, pathElem{ID: g.ID, D: g.D(), Fill: "none", Stroke: "none"})
	}
	for _, tp := range doc.Texts {
		out.Labels.Texts = append(out.Labels.Texts, textElem{
			FontSize:      num(tp.FontSize),
			FontFamily:    tp.FontFamily,
			LetterSpacing: num(tp.LetterSpacing) + "px",
			TextPath: textPathElem{
				Href:        tp.Href,
				StartOffset: num(tp.StartOffset),
				Text:        tp.Text,
			},
		})
	}
	return encode(out)
}

// FontFaceCSS returns the @font-face rule embedding doc's font, or "" without one.
func FontFaceCSS(doc *preview.Document) string {
	f := doc.Font
	if f == nil || f.Family == "" || f.Base64 == "" || f.MIME == "" {
		return ""
	}
	return fmt.Sprintf("@font-face{\n  font-family:'%s';\n  src:url(%s) format('%s');\n  font-weight:normal;font-style:normal;font-display:block;\n}",
		f.Family, f.DataURL(), f.Format())
}

func encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("svg: 序列化失败: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func num(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
