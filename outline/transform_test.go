package outline

import (
	"math"
	"testing"

	"github.com/tdewolff/canvas"

	"github.com/ByLCY/radialtext/projection"
)

func flat() projection.Projector {
	return projection.NewProjector(projection.DefaultPerspective, projection.Rotation{}, 1)
}

func closeTo(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func samplePath() *canvas.Path {
	p := &canvas.Path{}
	p.MoveTo(0, 0)
	p.LineTo(10, 0)
	p.QuadTo(15, 5, 10, 10)
	p.CubeTo(8, 12, 2, 12, 0, 10)
	p.Close()
	return p
}

type command struct {
	cmd    float64
	points []canvas.Point
}

func commands(p *canvas.Path) []command {
	var out []command
	for s := p.Scanner(); s.Scan(); {
		c := command{cmd: s.Cmd()}
		switch s.Cmd() {
		case canvas.QuadToCmd:
			c.points = []canvas.Point{s.CP1(), s.End()}
		case canvas.CubeToCmd:
			c.points = []canvas.Point{s.CP1(), s.CP2(), s.End()}
		case canvas.CloseCmd:
		default:
			c.points = []canvas.Point{s.End()}
		}
		out = append(out, c)
	}
	return out
}

func TestMapPreservesCommandsAndOrder(t *testing.T) {
	p := samplePath()
	calls := 0
	q := Map(p, func(pt canvas.Point) canvas.Point {
		calls++
		return canvas.Point{X: pt.X + 1, Y: pt.Y}
	})
	a, b := commands(p), commands(q)
	if len(a) != 5 || len(b) != len(a) {
		t.Fatalf("commands = %d and %d, want 5", len(a), len(b))
	}
	for i := range a {
		if a[i].cmd != b[i].cmd {
			t.Fatalf("command %d = %v, want %v", i, b[i].cmd, a[i].cmd)
		}
	}
	// 1 + 1 + 2 + 3 + 0
	if calls != 7 {
		t.Fatalf("fn called %d times, want 7", calls)
	}
	if b[2].points[0] != (canvas.Point{X: 16, Y: 5}) {
		t.Fatalf("quad control not mapped: %+v", b[2])
	}
}

func TestMapNilPath(t *testing.T) {
	out := Map(nil, func(pt canvas.Point) canvas.Point { return pt })
	if out == nil || !out.Empty() {
		t.Fatalf("nil path should map to an empty path")
	}
}

func TestScale(t *testing.T) {
	got := commands(Scale(samplePath(), 2))
	if got[3].points[2] != (canvas.Point{X: 0, Y: 20}) {
		t.Fatalf("cube end = %v, want (0, 20)", got[3].points[2])
	}
	if got[2].points[0] != (canvas.Point{X: 30, Y: 10}) {
		t.Fatalf("quad control = %v, want (30, 10)", got[2].points[0])
	}
}

func TestTransformerSpokeDirections(t *testing.T) {
	tests := []struct {
		angle  float64
		wx, wy float64
	}{
		{0, 0, -100},  // 屏幕上方
		{90, 100, 0},  // 右侧
		{180, 0, 100}, // 下方
		{270, -100, 0},
	}
	for _, tt := range tests {
		tr := NewTransformer(tt.angle, 100, flat())
		x, y := tr.Point(0, 0)
		if !closeTo(x, tt.wx) || !closeTo(y, tt.wy) {
			t.Fatalf("angle %g: origin -> (%g, %g), want (%g, %g)", tt.angle, x, y, tt.wx, tt.wy)
		}
	}
}

// 字形的 x 轴沿 spoke 向外，局部 y 轴（向下）绕同一角度旋转。
func TestTransformerOrientsBaselineAlongSpoke(t *testing.T) {
	tr := NewTransformer(90, 50, flat())
	x, y := tr.Point(10, 0)
	if !closeTo(x, 60) || !closeTo(y, 0) {
		t.Fatalf("baseline point -> (%g, %g), want (60, 0)", x, y)
	}
	x, y = tr.Point(0, -20)
	if !closeTo(x, 50) || !closeTo(y, -20) {
		t.Fatalf("ascender point -> (%g, %g), want (50, -20)", x, y)
	}
}

// rotateX(60deg) 加 1200px 透视：spoke 90° 上的点 (gx, gy) 投影为
// (gx, gy·c) / (1 - gy·s/1200)，其中 c = cos60°，s = sin60°。
func TestTransformerUnderRotateX(t *testing.T) {
	p := projection.NewProjector(1200, projection.Rotation{X: 60}, 1)
	tr := NewTransformer(90, 100, p)
	c, s := math.Cos(math.Pi/3), math.Sin(math.Pi/3)
	tests := []struct{ x, y, gx, gy float64 }{
		{0, 0, 100, 0},
		{10, -20, 110, -20},
		{5, 30, 105, 30},
	}
	for _, tt := range tests {
		w := 1 - tt.gy*s/1200
		wantX, wantY := tt.gx/w, tt.gy*c/w
		x, y := tr.Point(tt.x, tt.y)
		if !closeTo(x, wantX) || !closeTo(y, wantY) {
			t.Fatalf("Point(%g, %g) = (%g, %g), want (%g, %g)", tt.x, tt.y, x, y, wantX, wantY)
		}
	}
}

func TestTransformMatchesPoint(t *testing.T) {
	p := projection.NewProjector(1200, projection.Rotation{X: 20, Y: 15, Z: -30}, 0.75)
	tr := NewTransformer(37, 140, p)
	path := &canvas.Path{}
	path.MoveTo(1, 2)
	path.CubeTo(3, 4, 5, 6, 7, 8)
	path.Close()

	in, out := commands(path), commands(tr.Transform(path))
	if len(out) != 3 || out[0].cmd != canvas.MoveToCmd || out[1].cmd != canvas.CubeToCmd || out[2].cmd != canvas.CloseCmd {
		t.Fatalf("unexpected commands: %+v", out)
	}
	for i, c := range in {
		for j, pt := range c.points {
			x, y := tr.Point(pt.X, pt.Y)
			if got := out[i].points[j]; !closeTo(got.X, x) || !closeTo(got.Y, y) {
				t.Fatalf("cmd %d point %d = %v, want (%g,%g)", i, j, got, x, y)
			}
		}
	}
}

func TestZeroValueTransformerInitializes(t *testing.T) {
	tr := &Transformer{Angle: 180, Distance: 10, Projector: flat()}
	x, y := tr.Point(0, 0)
	if !closeTo(x, 0) || !closeTo(y, 10) {
		t.Fatalf("zero-value transformer -> (%g, %g), want (0, 10)", x, y)
	}
}
