package cplxalg

import (
	"fmt"
	"sync"

	"github.com/pkg/errors"
)

// ============================================================
// Op: lazy binary operation node
// ============================================================

// OpKind is the operation held by an Op node.
type OpKind int

const (
	Addition OpKind = iota
	Multiplication
	Division
)

func (k OpKind) String() string {
	switch k {
	case Addition:
		return "add"
	case Multiplication:
		return "mul"
	case Division:
		return "div"
	}
	panic(fmt.Sprintf("cplxalg: unknown operation kind %d", int(k)))
}

// ParseOpKind is the inverse of OpKind.String.
func ParseOpKind(s string) (OpKind, error) {
	switch s {
	case "add":
		return Addition, nil
	case "mul":
		return Multiplication, nil
	case "div":
		return Division, nil
	}
	return 0, errors.Errorf("unknown operation kind %q", s)
}

// Op is a sum, product or quotient that could not be folded into a Poly.
// The expanded form is computed once and cached.
type Op struct {
	kind        OpKind
	left, right Expr

	mu       sync.Mutex
	expanded Expr
}

func newOp(kind OpKind, left, right Expr) *Op {
	return &Op{kind: kind, left: left, right: right}
}

func (o *Op) sealed() {}

func (o *Op) Kind() OpKind      { return o.kind }
func (o *Op) Left() Expr        { return o.left }
func (o *Op) Right() Expr       { return o.right }
func (o *Op) Neg() Expr         { return o.Scale(Gaussian{Re: -1}) }
func (o *Op) Add(x Expr) Expr   { return add(o, x) }
func (o *Op) Sub(x Expr) Expr   { return add(o, x.Neg()) }
func (o *Op) Mul(x Expr) Expr   { return mul(o, x) }
func (o *Op) Div(x Expr) Expr   { return div(o, x) }
func (o *Op) Equal(x Expr) bool { return equalExpr(o, x) }

// RequiresBrackets is true except for products.
func (o *Op) RequiresBrackets() bool { return o.kind != Multiplication }

// IsZero expands the node and checks for the zero polynomial.
func (o *Op) IsZero() bool {
	p, ok := o.Expand().(*Poly)
	return ok && p.IsZero()
}

// Conj distributes conjugation over both children.
func (o *Op) Conj() Expr {
	return newOp(o.kind, o.left.Conj(), o.right.Conj())
}

// Scale pushes a constant factor into the node.
func (o *Op) Scale(k Gaussian) Expr {
	if k.IsZero() {
		return &Poly{}
	}
	if k.IsOne() {
		return o
	}
	switch o.kind {
	case Addition:
		return add(o.left.Scale(k), o.right.Scale(k))
	case Multiplication:
		return mul(o.left.Scale(k), o.right)
	case Division:
		return div(o.left.Scale(k), o.right)
	}
	panic(fmt.Sprintf("cplxalg: unknown operation kind %d", int(o.kind)))
}

// addPoly merges a polynomial into a sum chain, or starts one.
func (o *Op) addPoly(p *Poly) Expr {
	if p.IsZero() {
		return o
	}
	if o.kind != Addition {
		return newOp(Addition, p, o)
	}
	return add(add(p, o.left), o.right)
}

func (o *Op) addOp(r *Op) Expr {
	switch {
	case o.kind == Addition && r.kind == Addition:
		return add(add(o, r.left), r.right)
	case r.kind == Addition:
		return newOp(Addition, r, o)
	}
	return newOp(Addition, o, r)
}

func (o *Op) mulPoly(p *Poly) Expr {
	if p.IsZero() {
		return p
	}
	if p.isOne() {
		return o
	}
	switch o.kind {
	case Addition:
		return newOp(Multiplication, p, o)
	case Multiplication:
		return mul(mul(p, o.left), o.right)
	case Division:
		return div(mul(p, o.left), o.right)
	}
	panic(fmt.Sprintf("cplxalg: unknown operation kind %d", int(o.kind)))
}

// mulOp cross-multiplies quotients and flattens product chains.
func (o *Op) mulOp(r *Op) Expr {
	switch {
	case o.kind == Division && r.kind == Division:
		return div(mul(o.left, r.left), mul(o.right, r.right))
	case o.kind == Division:
		return div(mul(o.left, r), o.right)
	case r.kind == Division:
		return div(mul(o, r.left), r.right)
	case o.kind == Multiplication && r.kind == Multiplication:
		return mul(mul(o, r.left), r.right)
	case r.kind == Multiplication:
		return newOp(Multiplication, r, o)
	}
	return newOp(Multiplication, o, r)
}

func (o *Op) divByPoly(den *Poly) Expr {
	if den.IsZero() {
		panic(&DivisionByZeroError{Numerator: o})
	}
	if c, ok := den.Scalar(); ok {
		switch {
		case c.IsOne():
			return o
		case c.IsNegOne():
			return o.Neg()
		}
	}
	if o.kind == Division {
		return div(o.left, mul(o.right, den))
	}
	return newOp(Division, o, den)
}

func (o *Op) divByOp(den *Op) Expr {
	switch {
	case o.kind == Division && den.kind == Division:
		return div(mul(o.left, den.right), mul(o.right, den.left))
	case o.kind == Division:
		return div(o.left, mul(o.right, den))
	case den.kind == Division:
		return div(mul(o, den.right), den.left)
	}
	return newOp(Division, o, den)
}

// expandAddPoly adds p to an expanded node: x/y + p = (x + y·p)/y.
func (o *Op) expandAddPoly(p *Poly) Expr {
	if o.kind != Division {
		return add(o, p)
	}
	return div(add(o.left, mul(o.right, p)), o.right)
}

func (o *Op) expandAddOp(r *Op) Expr {
	switch {
	case o.kind == Division && r.kind == Division:
		// x/y + z/w = (x·w + y·z)/(y·w)
		num := add(mul(o.left, r.right), mul(o.right, r.left))
		return div(num, mul(o.right, r.right))
	case o.kind == Division:
		return div(add(o.left, mul(o.right, r)), o.right)
	case r.kind == Division:
		return div(add(r.left, mul(r.right, o)), r.right)
	}
	return add(o, r)
}

// expandMulBy multiplies an expanded node by x, distributing when the node
// is a sum.
func (o *Op) expandMulBy(x Expr) Expr {
	if o.kind != Addition {
		return mul(o, x)
	}
	return add(mul(o.left, x), mul(o.right, x))
}

// Expand is the normal form: children are expanded first, sums and products
// are pushed down, and quotients collapse to a single top-level division of
// two expanded operands.
func (o *Op) Expand() Expr {
	o.mu.Lock()
	cached := o.expanded
	o.mu.Unlock()
	if cached != nil {
		return cached
	}
	l, r := o.left.Expand(), o.right.Expand()
	var e Expr
	switch o.kind {
	case Addition:
		e = expandAdd(l, r)
	case Multiplication:
		e = expandMul(l, r)
	case Division:
		e = div(l, r)
	default:
		panic(fmt.Sprintf("cplxalg: unknown operation kind %d", int(o.kind)))
	}
	o.mu.Lock()
	o.expanded = e
	o.mu.Unlock()
	return e
}
