// Package projection builds the 4x4 homogeneous matrix equivalent to the CSS
// transform chain perspective(p) rotateX(x) rotateY(y) rotateZ(z) and applies it
// to points of a flat surface lying in the plane z = 0.
package projection

import "math"

// Matrix4 is a 4x4 matrix in row-major order; it multiplies column vectors:
//
//	| m0  m1  m2  m3  |   | x |
//	| m4  m5  m6  m7  | · | y |
//	| m8  m9  m10 m11 |   | z |
//	| m12 m13 m14 m15 |   | 1 |
//
// The last row carries the perspective terms.
type Matrix4 [16]float64

// Identity returns the identity matrix.
func Identity() Matrix4 {
	return Matrix4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// RotateX returns a right-handed rotation about the X axis (angle in radians).
func RotateX(a float64) Matrix4 {
	c, s := math.Cos(a), math.Sin(a)
	return Matrix4{
		1, 0, 0, 0,
		0, c, -s, 0,
		0, s, c, 0,
		0, 0, 0, 1,
	}
}

// RotateY returns a right-handed rotation about the Y axis (angle in radians).
func RotateY(a float64) Matrix4 {
	c, s := math.Cos(a), math.Sin(a)
	return Matrix4{
		c, 0, s, 0,
		0, 1, 0, 0,
		-s, 0, c, 0,
		0, 0, 0, 1,
	}
}

// RotateZ returns a right-handed rotation about the Z axis (angle in radians).
func RotateZ(a float64) Matrix4 {
	c, s := math.Cos(a), math.Sin(a)
	return Matrix4{
		c, -s, 0, 0,
		s, c, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Perspective returns the CSS perspective(d) matrix: identity except
// entry (row 3, col 2) = -1/d. A zero depth returns the identity.
func Perspective(d float64) Matrix4 {
	m := Identity()
	if d != 0 {
		m[14] = -1 / d
	}
	return m
}

// Mul returns m · o.
func (m Matrix4) Mul(o Matrix4) Matrix4 {
	var r Matrix4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += m[i*4+k] * o[k*4+j]
			}
			r[i*4+j] = sum
		}
	}
	return r
}

// Apply transforms (x, y, z, 1) and performs the perspective divide.
// W == 0 is treated as 1 so degenerate input never divides by zero.
func (m Matrix4) Apply(x, y, z float64) (float64, float64, float64) {
	X := m[0]*x + m[1]*y + m[2]*z + m[3]
	Y := m[4]*x + m[5]*y + m[6]*z + m[7]
	Z := m[8]*x + m[9]*y + m[10]*z + m[11]
	W := m[12]*x + m[13]*y + m[14]*z + m[15]
	iw := 1.0
	if W != 0 {
		iw = 1 / W
	}
	return X * iw, Y * iw, Z * iw
}
