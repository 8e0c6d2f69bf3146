// Package outline flattens glyph outlines onto projected spokes. Paths are
// github.com/tdewolff/canvas paths in glyph-local px with y pointing down.
package outline

import (
	"math"

	"github.com/tdewolff/canvas"

	"github.com/ByLCY/radialtext/projection"
)

// Map rebuilds p with fn applied to every end point and control point. Command
// types and ordering are kept; a nil path yields an empty one.
func Map(p *canvas.Path, fn func(canvas.Point) canvas.Point) *canvas.Path {
	out := &canvas.Path{}
	if p == nil {
		return out
	}
	for s := p.Scanner(); s.Scan(); {
		switch s.Cmd() {
		case canvas.MoveToCmd:
			e := fn(s.End())
			out.MoveTo(e.X, e.Y)
		case canvas.LineToCmd, canvas.ArcToCmd:
			// 字形轮廓不含圆弧，遇到时按直线连到终点
			e := fn(s.End())
			out.LineTo(e.X, e.Y)
		case canvas.QuadToCmd:
			c, e := fn(s.CP1()), fn(s.End())
			out.QuadTo(c.X, c.Y, e.X, e.Y)
		case canvas.CubeToCmd:
			c1, c2, e := fn(s.CP1()), fn(s.CP2()), fn(s.End())
			out.CubeTo(c1.X, c1.Y, c2.X, c2.Y, e.X, e.Y)
		case canvas.CloseCmd:
			out.Close()
		}
	}
	return out
}

// Scale returns p multiplied by factor.
func Scale(p *canvas.Path, factor float64) *canvas.Path {
	return Map(p, func(pt canvas.Point) canvas.Point {
		return canvas.Point{X: pt.X * factor, Y: pt.Y * factor}
	})
}

// Transformer places glyph-local points onto a spoke and flattens them through
// a projection. Angle is the spoke angle in degrees (screen up is 0°, clockwise);
// Distance is the offset along the spoke (pen distance plus left side bearing).
type Transformer struct {
	Angle     float64
	Distance  float64
	Projector projection.Projector

	cos, sin float64
	ready    bool
}

// NewTransformer precomputes the spoke orientation.
func NewTransformer(angle, distance float64, p projection.Projector) *Transformer {
	t := &Transformer{Angle: angle, Distance: distance, Projector: p}
	t.init()
	return t
}

func (t *Transformer) init() {
	// 与预览中的 spoke 路径使用同一角度（deg-90），使字形基线沿 spoke 方向
	rad := (t.Angle - 90) * math.Pi / 180
	t.cos, t.sin = math.Cos(rad), math.Sin(rad)
	t.ready = true
}

// Point maps one glyph-local point (font-scaled px, y down) to output coordinates.
func (t *Transformer) Point(x, y float64) (float64, float64) {
	if !t.ready {
		t.init()
	}
	rx := x*t.cos - y*t.sin
	ry := x*t.sin + y*t.cos
	gx := rx + t.cos*t.Distance
	gy := ry + t.sin*t.Distance
	return t.Projector.Project(gx, gy)
}

// Transform applies Point to every end point and control point of p. The
// projection is not affine, so control points are mapped one by one instead
// of through a canvas.Matrix.
func (t *Transformer) Transform(p *canvas.Path) *canvas.Path {
	return Map(p, func(pt canvas.Point) canvas.Point {
		x, y := t.Point(pt.X, pt.Y)
		return canvas.Point{X: x, Y: y}
	})
}
