// Package geometry expresses plane geometry in complex coordinates on top of
// the cplxalg kernel. Points are expressions; incidence questions reduce to
// checking that an expression expands to zero.
package geometry

import (
	"github.com/pkg/errors"

	"github.com/njchilds90/cplxalg"
)

// ============================================================
// Points
// ============================================================

// Sum3 returns a + b + c.
func Sum3(a, b, c cplxalg.Expr) cplxalg.Expr { return a.Add(b).Add(c) }

// Barycenter is the centroid of the triangle abc.
func Barycenter(a, b, c cplxalg.Expr) cplxalg.Expr { return Sum3(a, b, c).Div(cplxalg.Int(3)) }

// Midpoint of the segment ab.
func Midpoint(a, b cplxalg.Expr) cplxalg.Expr { return a.Add(b).Div(cplxalg.Int(2)) }

// LinearComb returns a·ka + b·kb.
func LinearComb(a, ka, b, kb cplxalg.Expr) cplxalg.Expr {
	return a.Mul(ka).Add(b.Mul(kb))
}

// Reflect returns the image of p under the point reflection in center.
func Reflect(center, p cplxalg.Expr) cplxalg.Expr {
	return LinearComb(center, cplxalg.Int(2), p, cplxalg.Int(-1))
}

// Rotate90 turns b about a by a quarter turn counterclockwise.
func Rotate90(a, b cplxalg.Expr) cplxalg.Expr {
	return LinearComb(a, cplxalg.Scalar(cplxalg.G(1, -1)), b, cplxalg.Scalar(cplxalg.I))
}

// RotHomothety maps b by the spiral similarity centred at a with factor k.
func RotHomothety(a, b, k cplxalg.Expr) cplxalg.Expr {
	return LinearComb(a, cplxalg.One().Sub(k), b, k)
}

// Det is x·conj(y) − y·conj(x), twice the signed area of 0xy times i.
func Det(x, y cplxalg.Expr) cplxalg.Expr {
	return x.Mul(y.Conj()).Sub(y.Mul(x.Conj()))
}

// Collinear reports whether a, b and c lie on one line.
func Collinear(a, b, c cplxalg.Expr) (bool, error) {
	d := Sum3(Det(a, b), Det(b, c), Det(c, a))
	ok, err := cplxalg.TryIsZero(d)
	if err != nil {
		return false, errors.Wrap(err, "collinear")
	}
	return ok, nil
}

// ============================================================
// Lines
// ============================================================

// Line is the set of z with A·z + B·conj(z) = C.
type Line struct {
	A, B, C cplxalg.Expr
}

// Chord is the line through two points of the unit circle.
func Chord(x, y cplxalg.Expr) Line {
	return Line{A: cplxalg.One(), B: x.Mul(y), C: x.Add(y)}
}

// Tangent is the tangent to the unit circle at x.
func Tangent(x cplxalg.Expr) Line {
	return Line{A: cplxalg.One(), B: x.Mul(x), C: x.Scale(cplxalg.G(2, 0))}
}

// Through is the line through two arbitrary points.
func Through(x, y cplxalg.Expr) Line {
	return Line{
		A: x.Conj().Sub(y.Conj()),
		B: y.Sub(x),
		C: Det(y, x),
	}
}

// Intersect returns the common point of two lines. Parallel lines give a
// division by zero error.
func Intersect(l1, l2 Line) (cplxalg.Expr, error) {
	num := l1.C.Mul(l2.B).Sub(l1.B.Mul(l2.C))
	den := l1.A.Mul(l2.B).Sub(l1.B.Mul(l2.A))
	p, err := cplxalg.Quotient(num, den)
	if err != nil {
		return nil, errors.Wrap(err, "intersect")
	}
	return p, nil
}

// Concurrent reports whether three lines pass through one point, i.e. the
// determinant of their coefficients vanishes.
func Concurrent(l1, l2, l3 Line) (bool, error) {
	m := MatrixFromRows(
		[]cplxalg.Expr{l1.A, l1.B, l1.C},
		[]cplxalg.Expr{l2.A, l2.B, l2.C},
		[]cplxalg.Expr{l3.A, l3.B, l3.C},
	)
	ok, err := cplxalg.TryIsZero(m.Det())
	if err != nil {
		return false, errors.Wrap(err, "concurrent")
	}
	return ok, nil
}
