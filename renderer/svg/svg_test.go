package svgrenderer

import (
	"bytes"
	"encoding/xml"
	"strings"
	"testing"

	"github.com/tdewolff/canvas"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/ByLCY/radialtext/export"
	"github.com/ByLCY/radialtext/fonts"
	"github.com/ByLCY/radialtext/layout"
	"github.com/ByLCY/radialtext/preview"
	"github.com/ByLCY/radialtext/projection"
)

func TestOutlinesDocument(t *testing.T) {
	p := &canvas.Path{}
	p.MoveTo(0, 0)
	p.LineTo(10, 0)
	p.LineTo(10, 10)
	p.Close()
	doc := &export.Document{
		ViewBox: export.DefaultViewBox,
		Shapes:  []export.Shape{{Fill: "#111", Path: p}, {Fill: "#111", Path: &canvas.Path{}}},
	}
	data, err := Outlines(doc)
	if err != nil {
		t.Fatalf("Outlines: %v", err)
	}
	s := string(data)
	for _, want := range []string{
		`xmlns="http://www.w3.org/2000/svg"`,
		`viewBox="-600 -600 1200 1200"`,
		`<path d="` + p.ToSVG() + `" fill="#111"></path>`,
		`<path d="" fill="#111"></path>`,
	} {
		if !strings.Contains(s, want) {
			t.Fatalf("missing %s in\n%s", want, s)
		}
	}
	if strings.Contains(s, "font") {
		t.Fatalf("outline SVG must not reference fonts:\n%s", s)
	}
	if err := xml.Unmarshal(data, new(struct{})); err != nil {
		t.Fatalf("output is not well-formed XML: %v", err)
	}
}

func TestOutlinesEmptyDocument(t *testing.T) {
	data, err := Outlines(&export.Document{ViewBox: export.DefaultViewBox})
	if err != nil {
		t.Fatalf("Outlines: %v", err)
	}
	if strings.Contains(string(data), "<path") {
		t.Fatalf("empty document should have no paths")
	}
	if _, err := Outlines(nil); err == nil {
		t.Fatalf("expected error for nil document")
	}
}

func TestOutlinesByteIdentical(t *testing.T) {
	font := fonts.NewAsset("UserFont_1", "go.ttf", goregular.TTF)
	req := export.NewRequest(layout.Config{Words: []string{"ALPHA", "BETA"}, FontSize: 32, Radius: 120},
		projection.Rotation{X: 30, Y: 10}, font)
	var outs [][]byte
	for i := 0; i < 2; i++ {
		doc, err := export.Outlines(req)
		if err != nil {
			t.Fatalf("export: %v", err)
		}
		data, err := Renderer{}.Render(doc)
		if err != nil {
			t.Fatalf("render: %v", err)
		}
		outs = append(outs, data)
	}
	if !bytes.Equal(outs[0], outs[1]) {
		t.Fatalf("repeated exports differ")
	}
}

func TestLiveDocument(t *testing.T) {
	doc := preview.Build(layout.Config{Words: []string{"A", "B"}, FontSize: 40, Radius: 100}, nil, preview.DefaultOptions())
	data, err := Live(doc)
	if err != nil {
		t.Fatalf("Live: %v", err)
	}
	s := string(data)
	for _, want := range []string{
		`xmlns:xlink="http://www.w3.org/1999/xlink"`,
		`<path id="spoke-0"`,
		`fill="none" stroke="none"`,
		`xlink:href="#spoke-1"`,
		`startOffset="8100"`,
		`font-family="Helvetica, Arial, sans-serif"`,
		`letter-spacing="0px"`,
		`>B</textPath>`,
	} {
		if !strings.Contains(s, want) {
			t.Fatalf("missing %s in\n%s", want, s)
		}
	}
	if strings.Contains(s, "@font-face") {
		t.Fatalf("no font loaded, expected no @font-face")
	}
}

func TestLiveEmbedsFont(t *testing.T) {
	font := fonts.NewAsset("UserFont_7", "go.ttf", goregular.TTF)
	doc := preview.Build(layout.Config{Words: []string{"A"}}, font, preview.DefaultOptions())
	data, err := Renderer{}.RenderLive(doc)
	if err != nil {
		t.Fatalf("Live: %v", err)
	}
	s := string(data)
	for _, want := range []string{
		"<![CDATA[@font-face{",
		"font-family:'UserFont_7';",
		"src:url(data:font/ttf;base64,",
		"format('ttf')",
		"font-display:block;",
		`font-family="&#39;UserFont_7&#39;, Helvetica, Arial, sans-serif"`,
	} {
		if !strings.Contains(s, want) {
			t.Fatalf("missing %s", want)
		}
	}
}

func TestLiveEscapesText(t *testing.T) {
	doc := preview.Build(layout.Config{Words: []string{"<R&D>"}}, nil, preview.DefaultOptions())
	data, err := Live(doc)
	if err != nil {
		t.Fatalf("Live: %v", err)
	}
	if !strings.Contains(string(data), "&lt;R&amp;D&gt;") {
		t.Fatalf("text not escaped:\n%s", data)
	}
}
