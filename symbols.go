package cplxalg

import (
	"fmt"
	"sort"
)

// ============================================================
// Free Symbols and Substitution
// ============================================================

// FreeSymbols returns the names of every atom in e, looking inside the
// hidden expressions of quasi-terms. A conjugated atom is reported under its
// plain name.
func FreeSymbols(e Expr) map[string]struct{} {
	result := map[string]struct{}{}
	collectSymbols(e, result)
	return result
}

// SortedSymbols is FreeSymbols as a sorted slice.
func SortedSymbols(e Expr) []string {
	set := FreeSymbols(e)
	names := make([]string, 0, len(set))
	for n := range set {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func collectSymbols(e Expr, out map[string]struct{}) {
	switch v := e.(type) {
	case *Poly:
		for _, m := range v.monos {
			for _, f := range m.factors {
				out[f.Atom.name] = struct{}{}
				if f.Atom.kind == QuasiKind {
					collectSymbols(f.Atom.hidden, out)
				}
			}
		}
	case *Op:
		collectSymbols(v.left, out)
		collectSymbols(v.right, out)
	}
}

// Subs replaces the atom called name by value. Its conjugate becomes
// conj(value). The result is rebuilt through the algebra, so it panics with
// *DivisionByZeroError if a denominator becomes zero; wrap it in Safely when
// that can happen.
func Subs(e Expr, name string, value Expr) Expr {
	switch v := e.(type) {
	case *Poly:
		acc := Zero()
		for _, m := range v.monos {
			term := Scalar(m.coef)
			for _, f := range m.factors {
				x := substAtom(f.Atom, name, value)
				for k := 0; k < f.Exp; k++ {
					term = term.Mul(x)
				}
			}
			acc = acc.Add(term)
		}
		return acc
	case *Op:
		l, r := Subs(v.left, name, value), Subs(v.right, name, value)
		switch v.kind {
		case Addition:
			return add(l, r)
		case Multiplication:
			return mul(l, r)
		case Division:
			return div(l, r)
		}
		panic(fmt.Sprintf("cplxalg: unknown operation kind %d", int(v.kind)))
	}
	panic(fmt.Sprintf("cplxalg: cannot substitute into %T", e))
}

func substAtom(a Atom, name string, value Expr) Expr {
	if a.name == name {
		if a.marked {
			return value.Conj()
		}
		return value
	}
	if a.kind == QuasiKind {
		a.hidden = Subs(a.hidden, name, value)
	}
	return atomPoly(a)
}
