package stitch

import "math"

// Matrix is an affine transform of stitch coordinates:
//
//	x' = A*x + B*y + C
//	y' = D*x + E*y + F
//
// The zero Matrix collapses every point onto the origin; start from
// Identity instead. Post operations compose after the receiver and Pre
// operations before it, so a placement built as
//
//	Identity().PostScale(2, 2).PostRotate(90).PostTranslate(100, 0)
//
// scales, then rotates, then moves. Angles are in degrees.
type Matrix struct {
	A, B, C float64
	D, E, F float64
}

// singularDet is the determinant below which Invert gives up.
const singularDet = 1e-10

// Identity returns the transform that leaves points unchanged.
func Identity() Matrix { return Matrix{A: 1, E: 1} }

// Translate returns a transform that moves points by x, y.
func Translate(x, y float64) Matrix { return Matrix{A: 1, C: x, E: 1, F: y} }

// Scale returns a transform that scales about the origin.
func Scale(x, y float64) Matrix { return Matrix{A: x, E: y} }

// Rotate returns a counter-clockwise rotation about the origin. With the
// y axis pointing down, as in stitch files, it turns clockwise on screen.
func Rotate(degrees float64) Matrix {
	sin, cos := math.Sincos(degrees * math.Pi / 180)
	return Matrix{A: cos, B: -sin, D: sin, E: cos}
}

// Multiply returns the transform that applies n, then m.
func (m Matrix) Multiply(n Matrix) Matrix {
	r := Matrix{
		A: m.A*n.A + m.B*n.D, B: m.A*n.B + m.B*n.E,
		D: m.D*n.A + m.E*n.D, E: m.D*n.B + m.E*n.E,
	}
	r.C, r.F = m.Apply(n.C, n.F)
	return r
}

// PostTranslate returns m followed by a translation.
func (m Matrix) PostTranslate(x, y float64) Matrix { return Translate(x, y).Multiply(m) }

// PostScale returns m followed by a scale.
func (m Matrix) PostScale(x, y float64) Matrix { return Scale(x, y).Multiply(m) }

// PostRotate returns m followed by a rotation.
func (m Matrix) PostRotate(degrees float64) Matrix { return Rotate(degrees).Multiply(m) }

// PreTranslate returns a translation followed by m.
func (m Matrix) PreTranslate(x, y float64) Matrix { return m.Multiply(Translate(x, y)) }

// PreScale returns a scale followed by m.
func (m Matrix) PreScale(x, y float64) Matrix { return m.Multiply(Scale(x, y)) }

// PreRotate returns a rotation followed by m.
func (m Matrix) PreRotate(degrees float64) Matrix { return m.Multiply(Rotate(degrees)) }

// Apply transforms the coordinates x, y.
func (m Matrix) Apply(x, y float64) (float64, float64) {
	return m.A*x + m.B*y + m.C, m.D*x + m.E*y + m.F
}

// TransformPoint is Apply for a Point.
func (m Matrix) TransformPoint(p Point) Point {
	x, y := m.Apply(p.X, p.Y)
	return Point{X: x, Y: y}
}

// Invert returns the inverse transform, or Identity when m is singular.
func (m Matrix) Invert() Matrix {
	det := m.A*m.E - m.B*m.D
	if math.Abs(det) < singularDet {
		return Identity()
	}
	inv := Matrix{
		A: m.E / det, B: -m.B / det,
		D: -m.D / det, E: m.A / det,
	}
	// The inverse translation undoes C, F through the inverted linear part.
	inv.C, inv.F = inv.Apply(-m.C, -m.F)
	return inv
}

// IsIdentity reports whether m is exactly the identity.
func (m Matrix) IsIdentity() bool { return m == Identity() }
