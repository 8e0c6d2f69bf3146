package glyphs

import (
	"math"
	"testing"

	"github.com/tdewolff/canvas"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

func parseGoRegular(t *testing.T, opts ...Option) *Font {
	t.Helper()
	f, err := Parse(goregular.TTF, opts...)
	if err != nil {
		t.Fatalf("Parse(goregular) failed: %v", err)
	}
	return f
}

func TestParseRejectsGarbage(t *testing.T) {
	if _, err := Parse([]byte("wOF2 definitely not a font")); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestUnitsPerEmAndName(t *testing.T) {
	f := parseGoRegular(t)
	if got := f.UnitsPerEm(); got != 2048 {
		t.Fatalf("UnitsPerEm = %g, want 2048", got)
	}
	if f.Name() == "" {
		t.Fatalf("expected a family name")
	}
}

func TestShapeModes(t *testing.T) {
	for _, mode := range []Shaping{ShapingHarfBuzz, ShapingCmap} {
		f := parseGoRegular(t, WithShaping(mode))
		gs, err := f.Shape("AVA")
		if err != nil {
			t.Fatalf("mode %d: Shape error: %v", mode, err)
		}
		if len(gs) != 3 {
			t.Fatalf("mode %d: got %d glyphs, want 3", mode, len(gs))
		}
		if gs[0].ID != gs[2].ID || gs[0].ID == gs[1].ID {
			t.Fatalf("mode %d: unexpected glyph ids %d %d %d", mode, gs[0].ID, gs[1].ID, gs[2].ID)
		}
		if gs[0].Advance <= 0 {
			t.Fatalf("mode %d: advance should be positive, got %g", mode, gs[0].Advance)
		}
		if gs[0].Outline.Empty() {
			t.Fatalf("mode %d: 'A' should have an outline", mode)
		}
	}
}

func TestShapeEmptyWord(t *testing.T) {
	gs, err := parseGoRegular(t).Shape("")
	if err != nil || len(gs) != 0 {
		t.Fatalf("Shape(\"\") = %v, %v; want no glyphs", gs, err)
	}
}

func TestSpaceHasAdvanceButNoOutline(t *testing.T) {
	gs, err := parseGoRegular(t, WithShaping(ShapingCmap)).Shape(" ")
	if err != nil || len(gs) != 1 {
		t.Fatalf("Shape(\" \") = %v, %v", gs, err)
	}
	if gs[0].Advance <= 0 {
		t.Fatalf("space advance = %g", gs[0].Advance)
	}
	if !gs[0].Outline.Empty() {
		t.Fatalf("space should have no outline")
	}
}

// 轮廓为 y 向下：大写字母的顶部坐标为负。
func TestOutlineIsYDownAndClosed(t *testing.T) {
	gs, err := parseGoRegular(t, WithShaping(ShapingCmap)).Shape("H")
	if err != nil {
		t.Fatalf("Shape error: %v", err)
	}
	minY, maxY := math.Inf(1), math.Inf(-1)
	var cmds []float64
	for s := gs[0].Outline.Scanner(); s.Scan(); {
		cmds = append(cmds, s.Cmd())
		minY = math.Min(minY, s.End().Y)
		maxY = math.Max(maxY, s.End().Y)
	}
	if len(cmds) == 0 {
		t.Fatalf("no commands")
	}
	if minY >= 0 || maxY > 1 {
		t.Fatalf("expected glyph above baseline in y-down space, y range [%g, %g]", minY, maxY)
	}
	if cmds[0] != canvas.MoveToCmd {
		t.Fatalf("outline should start with MoveTo")
	}
	if cmds[len(cmds)-1] != canvas.CloseCmd {
		t.Fatalf("outline should end with Close")
	}
}

// Go Regular 的 unitsPerEm 为 2048，读取时 ppem 被限制为 1024，结果需换算回字体单位。
func TestMetricsScaledBackToUnits(t *testing.T) {
	f := parseGoRegular(t, WithShaping(ShapingCmap))
	gs, err := f.Shape("W")
	if err != nil {
		t.Fatalf("Shape error: %v", err)
	}
	sf, err := sfnt.Parse(goregular.TTF)
	if err != nil {
		t.Fatalf("sfnt.Parse: %v", err)
	}
	var buf sfnt.Buffer
	adv, err := sf.GlyphAdvance(&buf, gs[0].ID, fixed.Int26_6(2048*64), xfont.HintingNone)
	if err != nil {
		t.Fatalf("GlyphAdvance: %v", err)
	}
	want := float64(adv) / 64
	if math.Abs(gs[0].Advance-want) > 0.05 {
		t.Fatalf("advance = %g, want %g", gs[0].Advance, want)
	}
}

func TestLoadPPEMAvoidsOverflow(t *testing.T) {
	tests := []struct{ upem, want float64 }{
		{1000, 1000},
		{1024, 1024},
		{2048, 1024},
		{16384, 1024},
	}
	for _, tt := range tests {
		got := loadPPEM(tt.upem)
		if got != tt.want {
			t.Fatalf("loadPPEM(%g) = %g, want %g", tt.upem, got, tt.want)
		}
		// 最大的 int16 坐标乘以 26.6 ppem 仍在 int32 范围内
		if math.MaxInt16*got*64 > math.MaxInt32 {
			t.Fatalf("loadPPEM(%g) = %g overflows int32", tt.upem, got)
		}
	}
}

func TestGlyphCacheReturnsSameData(t *testing.T) {
	f := parseGoRegular(t, WithShaping(ShapingCmap))
	a, _ := f.Shape("B")
	b, _ := f.Shape("B")
	if a[0].ID != b[0].ID || a[0].Advance != b[0].Advance || a[0].Outline.ToSVG() != b[0].Outline.ToSVG() {
		t.Fatalf("cached glyph differs")
	}
}

func TestKerningIsFinite(t *testing.T) {
	f := parseGoRegular(t, WithShaping(ShapingCmap))
	gs, _ := f.Shape("AV")
	k := f.Kerning(gs[0], gs[1])
	if k != k { // NaN
		t.Fatalf("kerning is NaN")
	}
	if k > 0 {
		t.Fatalf("AV kerning should not widen the pair, got %g", k)
	}
}

func TestParseShaping(t *testing.T) {
	tests := []struct {
		in   string
		want Shaping
		err  bool
	}{
		{"", ShapingHarfBuzz, false},
		{"harfbuzz", ShapingHarfBuzz, false},
		{"cmap", ShapingCmap, false},
		{"bogus", ShapingHarfBuzz, true},
	}
	for _, tt := range tests {
		got, err := ParseShaping(tt.in)
		if (err != nil) != tt.err || got != tt.want {
			t.Fatalf("ParseShaping(%q) = %v, %v", tt.in, got, err)
		}
	}
}
