package cplxalg

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// ============================================================
// Term: atomic factor of a monomial
// ============================================================

// TermKind selects how a term behaves under conjugation.
type TermKind int

const (
	// PlainKind is an unknown complex value; conjugation toggles its mark.
	PlainKind TermKind = iota
	// RealKind is self-conjugate.
	RealKind
	// UnitKind lies on the unit circle; its conjugate is its reciprocal.
	UnitKind
	// QuasiKind names an opaque sub-expression.
	QuasiKind
)

func (k TermKind) String() string {
	switch k {
	case PlainKind:
		return "plain"
	case RealKind:
		return "real"
	case UnitKind:
		return "unit"
	case QuasiKind:
		return "quasi"
	}
	panic(fmt.Sprintf("cplxalg: unknown term kind %d", int(k)))
}

// ParseTermKind is the inverse of TermKind.String.
func ParseTermKind(s string) (TermKind, error) {
	switch strings.ToLower(s) {
	case "plain":
		return PlainKind, nil
	case "real":
		return RealKind, nil
	case "unit":
		return UnitKind, nil
	case "quasi":
		return QuasiKind, nil
	}
	return 0, errors.Errorf("unknown term kind %q", s)
}

// Atom is a named factor. Identity is (name, mark); the kind and the hidden
// expression of a quasi-term ride along with it.
type Atom struct {
	name   string
	marked bool
	kind   TermKind
	hidden Expr
}

func (a Atom) Name() string   { return a.name }
func (a Atom) Marked() bool   { return a.marked }
func (a Atom) Kind() TermKind { return a.kind }
func (a Atom) Hidden() Expr   { return a.hidden }

// Compare orders atoms by name, unmarked before marked.
func (a Atom) Compare(b Atom) int {
	switch {
	case a.name < b.name:
		return -1
	case a.name > b.name:
		return 1
	case a.marked == b.marked:
		return 0
	case !a.marked:
		return -1
	default:
		return 1
	}
}

// Conj returns the conjugate of the atom as an expression.
func (a Atom) Conj() Expr {
	switch a.kind {
	case PlainKind:
		c := a
		c.marked = !c.marked
		return atomPoly(c)
	case RealKind:
		return atomPoly(a)
	case UnitKind:
		return One().Div(atomPoly(a))
	case QuasiKind:
		return atomPoly(Atom{name: a.name, marked: !a.marked, kind: QuasiKind, hidden: a.hidden.Conj()})
	}
	panic(fmt.Sprintf("cplxalg: unknown term kind %d", int(a.kind)))
}

func (a Atom) String() string {
	if a.marked {
		return a.name + "'"
	}
	return a.name
}

func (a Atom) LaTeX() string {
	if a.marked {
		return `\overline{` + a.name + `}`
	}
	return a.name
}

func atomPoly(a Atom) *Poly {
	return &Poly{monos: []Monomial{{coef: Gaussian{Re: 1}, factors: []Factor{{Atom: a, Exp: 1}}}}}
}

// ============================================================
// Factories
// ============================================================

// Term returns a plain complex unknown.
func Term(name string) Expr { return atomPoly(Atom{name: name, kind: PlainKind}) }

// UnitTerm returns an unknown constrained to the unit circle.
func UnitTerm(name string) Expr { return atomPoly(Atom{name: name, kind: UnitKind}) }

// RealTerm returns a real-valued unknown.
func RealTerm(name string) Expr { return atomPoly(Atom{name: name, kind: RealKind}) }

// QuasiTerm treats hidden as an opaque factor called name.
func QuasiTerm(name string, hidden Expr) Expr {
	if hidden == nil {
		panic("cplxalg: quasi-term needs a hidden expression")
	}
	return atomPoly(Atom{name: name, kind: QuasiKind, hidden: hidden})
}

// TermOf builds an atom of the given kind. Quasi-terms need QuasiTerm.
func TermOf(kind TermKind, name string) Expr {
	switch kind {
	case PlainKind:
		return Term(name)
	case RealKind:
		return RealTerm(name)
	case UnitKind:
		return UnitTerm(name)
	case QuasiKind:
		panic("cplxalg: TermOf cannot build a quasi-term without its expression")
	}
	panic(fmt.Sprintf("cplxalg: unknown term kind %d", int(kind)))
}

// Scalar returns the constant polynomial c; zero is the empty polynomial.
func Scalar(c Gaussian) Expr {
	if c.IsZero() {
		return &Poly{}
	}
	return &Poly{monos: []Monomial{{coef: c}}}
}

func Int(n int64) Expr { return Scalar(Gaussian{Re: n}) }
func Zero() Expr       { return &Poly{} }
func One() Expr        { return Int(1) }
