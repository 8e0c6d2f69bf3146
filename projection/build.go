package projection

import (
	"fmt"
	"math"
)

const (
	// DefaultPerspective is the perspective depth (px) applied to the preview surface.
	DefaultPerspective = 1200.0
	// ReferenceWidth is the nominal width of the preview coordinate space (viewBox units).
	ReferenceWidth = 1200.0
)

// Rotation holds the three rotation angles in degrees. Values are not normalized.
type Rotation struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

// IsZero reports whether all angles are zero.
func (r Rotation) IsZero() bool { return r.X == 0 && r.Y == 0 && r.Z == 0 }

func (r Rotation) String() string {
	return fmt.Sprintf("rotateX(%gdeg) rotateY(%gdeg) rotateZ(%gdeg)", r.X, r.Y, r.Z)
}

// Build composes M = P · Rx · Ry · Rz. Transform chains apply right to left,
// so rotateZ acts on the point first and the perspective divide last.
func Build(perspective float64, r Rotation) Matrix4 {
	return Perspective(perspective).
		Mul(RotateX(radians(r.X))).
		Mul(RotateY(radians(r.Y))).
		Mul(RotateZ(radians(r.Z)))
}

// DisplayScale returns rendered width ÷ nominal width (display px per coordinate
// unit). Non-positive input yields 1.
func DisplayScale(renderedWidth, viewBoxWidth float64) float64 {
	if renderedWidth <= 0 || viewBoxWidth <= 0 {
		return 1
	}
	return renderedWidth / viewBoxWidth
}

// Projector applies a matrix in display-pixel units: points are multiplied by
// Scale, projected, and divided back, matching a preview that is transformed
// after being scaled to its displayed size.
type Projector struct {
	M     Matrix4
	Scale float64

	flat bool // 无旋转时 z=0 平面上的点保持不变
}

// NewProjector builds the matrix for the given depth and rotation.
func NewProjector(perspective float64, r Rotation, displayScale float64) Projector {
	return Projector{M: Build(perspective, r), Scale: displayScale, flat: r.IsZero()}
}

// Project maps a point of the z = 0 plane to its flattened position.
func (p Projector) Project(x, y float64) (float64, float64) {
	if p.flat {
		return x, y
	}
	s := p.Scale
	if s <= 0 {
		s = 1
	}
	px, py, _ := p.M.Apply(x*s, y*s, 0)
	return px / s, py / s
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }
