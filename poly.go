package cplxalg

import "sort"

// ============================================================
// Poly: canonical sum of monomials
// ============================================================

// Poly is a sum of structurally distinct monomials kept in monomial order,
// with no zero coefficients. The empty sum is zero.
type Poly struct {
	monos []Monomial
}

// PolyOf sums the given monomials into canonical form.
func PolyOf(monos ...Monomial) *Poly {
	p := &Poly{}
	for _, m := range monos {
		p.accumulate(m)
	}
	return p
}

func (p *Poly) sealed() {}

func (p *Poly) Len() int        { return len(p.monos) }
func (p *Poly) IsZero() bool    { return len(p.monos) == 0 }
func (p *Poly) Expand() Expr    { return p }
func (p *Poly) Neg() Expr       { return p.Scale(Gaussian{Re: -1}) }
func (p *Poly) Sub(o Expr) Expr { return add(p, o.Neg()) }
func (p *Poly) Add(o Expr) Expr { return add(p, o) }
func (p *Poly) Mul(o Expr) Expr { return mul(p, o) }
func (p *Poly) Div(o Expr) Expr { return div(p, o) }

// RequiresBrackets reports whether the sum has more than one term.
func (p *Poly) RequiresBrackets() bool { return len(p.monos) > 1 }

func (p *Poly) Equal(o Expr) bool { return equalExpr(p, o) }

// Monomials returns the terms in canonical order.
func (p *Poly) Monomials() []Monomial {
	out := make([]Monomial, len(p.monos))
	copy(out, p.monos)
	return out
}

// Scalar reports the constant value of a polynomial with no factors.
func (p *Poly) Scalar() (Gaussian, bool) {
	switch {
	case len(p.monos) == 0:
		return Gaussian{}, true
	case len(p.monos) == 1 && p.monos[0].IsScalar():
		return p.monos[0].coef, true
	}
	return Gaussian{}, false
}

func (p *Poly) isOne() bool {
	c, ok := p.Scalar()
	return ok && c.IsOne()
}

// StructurallyEqual compares monomials and coefficients directly, without
// expanding anything.
func (p *Poly) StructurallyEqual(o *Poly) bool {
	if len(p.monos) != len(o.monos) {
		return false
	}
	for i := range p.monos {
		if p.monos[i].coef != o.monos[i].coef || !p.monos[i].SameStructure(o.monos[i]) {
			return false
		}
	}
	return true
}

// accumulate adds m in place. Only used on polys that are still being built.
func (p *Poly) accumulate(m Monomial) {
	if m.coef.IsZero() {
		return
	}
	idx := sort.Search(len(p.monos), func(i int) bool { return p.monos[i].Compare(m) >= 0 })
	if idx < len(p.monos) && p.monos[idx].Compare(m) == 0 {
		c := p.monos[idx].coef.Add(m.coef)
		if c.IsZero() {
			p.monos = append(p.monos[:idx], p.monos[idx+1:]...)
			return
		}
		p.monos[idx].coef = c
		return
	}
	p.monos = append(p.monos, Monomial{})
	copy(p.monos[idx+1:], p.monos[idx:])
	p.monos[idx] = m
}

func (p *Poly) clone() *Poly {
	out := &Poly{monos: make([]Monomial, len(p.monos), len(p.monos)+1)}
	copy(out.monos, p.monos)
	return out
}

func (p *Poly) plus(o *Poly) *Poly {
	out := p.clone()
	for _, m := range o.monos {
		out.accumulate(m)
	}
	return out
}

func (p *Poly) times(o *Poly) *Poly {
	out := &Poly{}
	for _, m := range o.monos {
		for _, x := range p.monos {
			out.accumulate(x.Mul(m))
		}
	}
	return out
}

// Scale multiplies every coefficient by k.
func (p *Poly) Scale(k Gaussian) Expr {
	if k.IsZero() {
		return &Poly{}
	}
	out := &Poly{monos: make([]Monomial, len(p.monos))}
	for i, m := range p.monos {
		out.monos[i] = m.Scale(k)
	}
	return out
}

// Conj sums the conjugates of every monomial.
func (p *Poly) Conj() Expr {
	var result Expr = &Poly{}
	for _, m := range p.monos {
		result = add(result, m.Conj())
	}
	return result
}

func (p *Poly) divisibleBy(d Monomial) bool {
	for _, m := range p.monos {
		if !m.DivisibleBy(d) {
			return false
		}
	}
	return true
}

func (p *Poly) divFactors(d Monomial) *Poly {
	out := &Poly{}
	for _, m := range p.monos {
		out.accumulate(m.DivFactors(d))
	}
	return out
}

// divScalar divides by a nonzero constant, folding when every coefficient is
// divisible in the Gaussian integers.
func (p *Poly) divScalar(k Gaussian) Expr {
	switch {
	case k.IsZero():
		panic(&DivisionByZeroError{Numerator: p})
	case k.IsOne():
		return p
	case k.IsNegOne():
		return p.Neg()
	}
	out := &Poly{monos: make([]Monomial, len(p.monos))}
	for i, m := range p.monos {
		c, ok := m.coef.DivExact(k)
		if !ok {
			return newOp(Division, p, Scalar(k))
		}
		out.monos[i] = Monomial{coef: c, factors: m.factors}
	}
	return out
}

// divPoly is the exact-fold heuristic for polynomial quotients. Denominators
// with more than one term are never cancelled against the numerator.
func (p *Poly) divPoly(den *Poly) Expr {
	if den.IsZero() {
		panic(&DivisionByZeroError{Numerator: p})
	}
	if p.IsZero() {
		return p
	}
	if len(den.monos) == 1 {
		d := den.monos[0]
		if d.IsScalar() {
			return p.divScalar(d.coef)
		}
		if p.divisibleBy(d) {
			return p.divFactors(d).divScalar(d.coef)
		}
	}
	if len(p.monos) == 1 {
		m := p.monos[0]
		if !m.IsScalar() && den.divisibleBy(m) {
			return div(Scalar(m.coef), den.divFactors(m))
		}
	}
	return newOp(Division, p, den)
}

func (p *Poly) divByOp(den *Op) Expr {
	if p.IsZero() {
		if den.IsZero() {
			panic(&DivisionByZeroError{Numerator: p})
		}
		return p
	}
	if den.kind == Division {
		return div(mul(p, den.right), den.left)
	}
	return newOp(Division, p, den)
}
