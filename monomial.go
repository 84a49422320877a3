package cplxalg

import "sort"

// ============================================================
// Monomial: coefficient times a product of powers
// ============================================================

// Factor is an atom raised to a positive power.
type Factor struct {
	Atom Atom
	Exp  int
}

// Monomial is a Gaussian coefficient times a product of factors. Factors are
// kept sorted by atom order and never carry a zero exponent. The coefficient is
// not part of the ordering key.
type Monomial struct {
	coef    Gaussian
	factors []Factor
}

// NewMonomial builds a canonical monomial from arbitrary factors, merging
// repeated atoms and dropping zero exponents.
func NewMonomial(coef Gaussian, factors ...Factor) Monomial {
	m := Monomial{coef: coef}
	for _, f := range factors {
		if f.Exp < 0 {
			panic("cplxalg: negative exponent in monomial")
		}
		m.factors = mergeFactor(m.factors, f)
	}
	return m
}

func (m Monomial) Coef() Gaussian { return m.coef }
func (m Monomial) IsScalar() bool { return len(m.factors) == 0 }

// Factors returns a copy of the factor list.
func (m Monomial) Factors() []Factor {
	out := make([]Factor, len(m.factors))
	copy(out, m.factors)
	return out
}

// Compare is the monomial total order: lexicographic over the products written
// out as sorted sequences of atoms, so a strict prefix sorts first.
func (m Monomial) Compare(o Monomial) int {
	i, j := 0, 0
	for i < len(m.factors) && j < len(o.factors) {
		a, b := m.factors[i], o.factors[j]
		if c := a.Atom.Compare(b.Atom); c != 0 {
			return c
		}
		if a.Exp != b.Exp {
			// The shorter run ends first; what follows it is either nothing
			// (a prefix) or a strictly larger atom.
			if a.Exp < b.Exp {
				if i == len(m.factors)-1 {
					return -1
				}
				return 1
			}
			if j == len(o.factors)-1 {
				return 1
			}
			return -1
		}
		i++
		j++
	}
	switch {
	case i < len(m.factors):
		return 1
	case j < len(o.factors):
		return -1
	}
	return 0
}

// SameStructure reports equality of the factor products, ignoring coefficients.
func (m Monomial) SameStructure(o Monomial) bool {
	if len(m.factors) != len(o.factors) {
		return false
	}
	for i := range m.factors {
		if m.factors[i].Exp != o.factors[i].Exp || m.factors[i].Atom.Compare(o.factors[i].Atom) != 0 {
			return false
		}
	}
	return true
}

// Mul multiplies coefficients and adds exponents.
func (m Monomial) Mul(o Monomial) Monomial {
	out := Monomial{coef: m.coef.Mul(o.coef), factors: make([]Factor, 0, len(m.factors)+len(o.factors))}
	i, j := 0, 0
	for i < len(m.factors) && j < len(o.factors) {
		a, b := m.factors[i], o.factors[j]
		switch c := a.Atom.Compare(b.Atom); {
		case c < 0:
			out.factors = append(out.factors, a)
			i++
		case c > 0:
			out.factors = append(out.factors, b)
			j++
		default:
			out.factors = append(out.factors, Factor{Atom: a.Atom, Exp: a.Exp + b.Exp})
			i++
			j++
		}
	}
	out.factors = append(out.factors, m.factors[i:]...)
	out.factors = append(out.factors, o.factors[j:]...)
	return out
}

// Scale returns the monomial with its coefficient multiplied by k.
func (m Monomial) Scale(k Gaussian) Monomial {
	return Monomial{coef: m.coef.Mul(k), factors: m.factors}
}

// DivisibleBy reports whether every factor of d appears in m with at least
// the same exponent.
func (m Monomial) DivisibleBy(d Monomial) bool {
	i := 0
	for _, f := range d.factors {
		for i < len(m.factors) && m.factors[i].Atom.Compare(f.Atom) < 0 {
			i++
		}
		if i == len(m.factors) || m.factors[i].Atom.Compare(f.Atom) != 0 || m.factors[i].Exp < f.Exp {
			return false
		}
		i++
	}
	return true
}

// DivFactors divides the factor product of m by that of d, keeping the
// coefficient of m. The caller must check DivisibleBy first.
func (m Monomial) DivFactors(d Monomial) Monomial {
	if !m.DivisibleBy(d) {
		panic("cplxalg: monomial is not divisible")
	}
	out := Monomial{coef: m.coef, factors: make([]Factor, 0, len(m.factors))}
	j := 0
	for _, f := range m.factors {
		if j < len(d.factors) && f.Atom.Compare(d.factors[j].Atom) == 0 {
			f.Exp -= d.factors[j].Exp
			j++
			if f.Exp == 0 {
				continue
			}
		}
		out.factors = append(out.factors, f)
	}
	return out
}

// Conj multiplies together the conjugates of every factor, each raised to its
// exponent, scaled by the conjugate coefficient.
func (m Monomial) Conj() Expr {
	result := Scalar(m.coef.Conj())
	for _, f := range m.factors {
		c := f.Atom.Conj()
		for k := 0; k < f.Exp; k++ {
			result = result.Mul(c)
		}
	}
	return result
}

func mergeFactor(fs []Factor, f Factor) []Factor {
	if f.Exp == 0 {
		return fs
	}
	idx := sort.Search(len(fs), func(i int) bool { return fs[i].Atom.Compare(f.Atom) >= 0 })
	if idx < len(fs) && fs[idx].Atom.Compare(f.Atom) == 0 {
		fs[idx].Exp += f.Exp
		return fs
	}
	fs = append(fs, Factor{})
	copy(fs[idx+1:], fs[idx:])
	fs[idx] = f
	return fs
}
