// Package cplxalg is a small computer-algebra kernel for rational expressions
// over complex-valued atoms.
//
// Design goals:
//   - Gaussian-integer coefficients, exact folding only
//   - Canonical polynomial form (Poly) with a lazy operation tree (Op) fallback
//   - Conjugation as a first-class field automorphism (plain, real, unit atoms)
//   - Expand as the normal form: a Poly or a single top-level quotient
//   - Backend for complex-coordinate geometry proofs
package cplxalg

import "fmt"

// ============================================================
// Core Interface
// ============================================================

// Expr is implemented by exactly two node kinds, *Poly and *Op. Every
// binary operation is resolved by a match over the concrete pair.
//
// Nodes are immutable and may be shared between results. Recursion depth
// follows expression depth, so very deep inputs can exhaust the stack.
// Coefficients that leave the int64 range panic with *OverflowError.
type Expr interface {
	Conj() Expr
	Add(other Expr) Expr
	Sub(other Expr) Expr
	Neg() Expr
	Scale(k Gaussian) Expr
	Mul(other Expr) Expr
	Div(other Expr) Expr
	Expand() Expr
	IsZero() bool
	Equal(other Expr) bool
	String() string
	LaTeX() string
	RequiresBrackets() bool
	sealed()
}

// ============================================================
// Pairwise dispatch
// ============================================================

func add(a, b Expr) Expr {
	switch l := a.(type) {
	case *Poly:
		switch r := b.(type) {
		case *Poly:
			return l.plus(r)
		case *Op:
			return r.addPoly(l)
		}
	case *Op:
		switch r := b.(type) {
		case *Poly:
			return l.addPoly(r)
		case *Op:
			return l.addOp(r)
		}
	}
	panic(badPair("add", a, b))
}

func mul(a, b Expr) Expr {
	switch l := a.(type) {
	case *Poly:
		switch r := b.(type) {
		case *Poly:
			return l.times(r)
		case *Op:
			return r.mulPoly(l)
		}
	case *Op:
		switch r := b.(type) {
		case *Poly:
			return l.mulPoly(r)
		case *Op:
			return l.mulOp(r)
		}
	}
	panic(badPair("mul", a, b))
}

// div divides num by den.
func div(num, den Expr) Expr {
	switch n := num.(type) {
	case *Poly:
		switch d := den.(type) {
		case *Poly:
			return n.divPoly(d)
		case *Op:
			return n.divByOp(d)
		}
	case *Op:
		switch d := den.(type) {
		case *Poly:
			return n.divByPoly(d)
		case *Op:
			return n.divByOp(d)
		}
	}
	panic(badPair("div", num, den))
}

// expandAdd combines two already expanded operands, bringing quotients over
// a common denominator.
func expandAdd(a, b Expr) Expr {
	switch l := a.(type) {
	case *Poly:
		switch r := b.(type) {
		case *Poly:
			return l.plus(r)
		case *Op:
			return r.expandAddPoly(l)
		}
	case *Op:
		switch r := b.(type) {
		case *Poly:
			return l.expandAddPoly(r)
		case *Op:
			return l.expandAddOp(r)
		}
	}
	panic(badPair("expand add", a, b))
}

// expandMul multiplies two already expanded operands, distributing over sums.
func expandMul(a, b Expr) Expr {
	switch l := a.(type) {
	case *Poly:
		switch r := b.(type) {
		case *Poly:
			return l.times(r)
		case *Op:
			return r.expandMulBy(l)
		}
	case *Op:
		switch r := b.(type) {
		case *Poly:
			return l.expandMulBy(r)
		case *Op:
			if l.kind != Addition && r.kind == Addition {
				return r.expandMulBy(l)
			}
			return l.expandMulBy(r)
		}
	}
	panic(badPair("expand mul", a, b))
}

func badPair(op string, a, b Expr) string {
	return fmt.Sprintf("cplxalg: %s on unsupported operands %T and %T", op, a, b)
}

// ============================================================
// Top-level convenience functions
// ============================================================

func Add(a, b Expr) Expr   { return a.Add(b) }
func Sub(a, b Expr) Expr   { return a.Sub(b) }
func Mul(a, b Expr) Expr   { return a.Mul(b) }
func Div(a, b Expr) Expr   { return a.Div(b) }
func Conj(e Expr) Expr     { return e.Conj() }
func Expand(e Expr) Expr   { return e.Expand() }
func Equal(a, b Expr) bool { return a.Equal(b) }
func String(e Expr) string { return e.String() }
func LaTeX(e Expr) string  { return e.LaTeX() }
func IsZero(e Expr) bool   { return e.IsZero() }
func Neg(e Expr) Expr      { return e.Neg() }

// Sum adds all terms left to right; the empty sum is zero.
func Sum(terms ...Expr) Expr {
	acc := Zero()
	for _, t := range terms {
		acc = acc.Add(t)
	}
	return acc
}

// Product multiplies all factors left to right; the empty product is one.
func Product(factors ...Expr) Expr {
	acc := One()
	for _, f := range factors {
		acc = acc.Mul(f)
	}
	return acc
}

// equalExpr is canonical equality: the expanded difference is the zero
// polynomial.
func equalExpr(a, b Expr) bool {
	return a.Sub(b).IsZero()
}
