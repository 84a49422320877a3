package cplxalg

import (
	"fmt"
	"math"
)

// Gaussian is a complex number with integer components. It is the coefficient
// ring of every monomial.
type Gaussian struct {
	Re, Im int64
}

// G returns the Gaussian integer re + im·i.
func G(re, im int64) Gaussian { return Gaussian{Re: re, Im: im} }

// I is the imaginary unit.
var I = Gaussian{Im: 1}

func (g Gaussian) Add(o Gaussian) Gaussian { return Gaussian{addInt(g.Re, o.Re), addInt(g.Im, o.Im)} }
func (g Gaussian) Neg() Gaussian           { return Gaussian{negInt(g.Re), negInt(g.Im)} }
func (g Gaussian) Conj() Gaussian          { return Gaussian{g.Re, negInt(g.Im)} }
func (g Gaussian) IsZero() bool            { return g.Re == 0 && g.Im == 0 }
func (g Gaussian) IsOne() bool             { return g.Re == 1 && g.Im == 0 }
func (g Gaussian) IsNegOne() bool          { return g.Re == -1 && g.Im == 0 }
func (g Gaussian) IsReal() bool            { return g.Im == 0 }
func (g Gaussian) Norm() int64             { return addInt(mulInt(g.Re, g.Re), mulInt(g.Im, g.Im)) }

func (g Gaussian) Mul(o Gaussian) Gaussian {
	return Gaussian{
		subInt(mulInt(g.Re, o.Re), mulInt(g.Im, o.Im)),
		addInt(mulInt(g.Re, o.Im), mulInt(g.Im, o.Re)),
	}
}

// DivExact returns g/o when the quotient is itself a Gaussian integer.
func (g Gaussian) DivExact(o Gaussian) (Gaussian, bool) {
	n := o.Norm()
	if n == 0 {
		return Gaussian{}, false
	}
	p := g.Mul(o.Conj())
	if p.Re%n != 0 || p.Im%n != 0 {
		return Gaussian{}, false
	}
	return Gaussian{p.Re / n, p.Im / n}, true
}

func (g Gaussian) String() string {
	switch {
	case g.Im == 0:
		return fmt.Sprintf("%d", g.Re)
	case g.Im < 0:
		return fmt.Sprintf("(%d - %di)", g.Re, -g.Im)
	default:
		return fmt.Sprintf("(%d + %di)", g.Re, g.Im)
	}
}

// Coefficient arithmetic panics with *OverflowError instead of wrapping.

func addInt(a, b int64) int64 {
	c := a + b
	if (c > a) != (b > 0) {
		panic(&OverflowError{Op: "+", A: a, B: b})
	}
	return c
}

func subInt(a, b int64) int64 {
	c := a - b
	if (c < a) != (b > 0) {
		panic(&OverflowError{Op: "-", A: a, B: b})
	}
	return c
}

func negInt(a int64) int64 {
	if a == math.MinInt64 {
		panic(&OverflowError{Op: "neg", B: a})
	}
	return -a
}

func mulInt(a, b int64) int64 {
	if a == 0 || b == 0 {
		return 0
	}
	c := a * b
	if c/b != a || (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		panic(&OverflowError{Op: "*", A: a, B: b})
	}
	return c
}
