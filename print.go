package cplxalg

import (
	"fmt"
	"strings"
)

// ============================================================
// Printing
// ============================================================

type printStyle int

const (
	plainStyle printStyle = iota
	latexStyle
)

func (p *Poly) String() string { return p.render(plainStyle) }
func (p *Poly) LaTeX() string  { return p.render(latexStyle) }

func (p *Poly) render(style printStyle) string {
	if len(p.monos) == 0 {
		return "0"
	}
	var sb strings.Builder
	for i, m := range p.monos {
		writeMonomial(&sb, m, i == 0, style)
	}
	return sb.String()
}

func writeMonomial(sb *strings.Builder, m Monomial, first bool, style printStyle) {
	c := m.coef
	if c.Im != 0 {
		if !first {
			sb.WriteString(" + ")
		}
		sb.WriteString(c.String())
	} else {
		if c.Re > 0 {
			if !first {
				sb.WriteString(" + ")
			}
		} else {
			if !first {
				sb.WriteString(" ")
			}
			sb.WriteString("- ")
		}
		if m.IsScalar() || (c.Re != 1 && c.Re != -1) {
			abs := c.Re
			if abs < 0 {
				abs = -abs
			}
			fmt.Fprintf(sb, "%d", abs)
		}
	}
	for _, f := range m.factors {
		switch style {
		case latexStyle:
			sb.WriteString(f.Atom.LaTeX())
			if f.Exp > 1 {
				fmt.Fprintf(sb, "^{%d}", f.Exp)
			}
		default:
			sb.WriteString(f.Atom.String())
			if f.Exp > 1 {
				fmt.Fprintf(sb, "^%d", f.Exp)
			}
		}
	}
}

func (o *Op) String() string {
	var sep string
	switch o.kind {
	case Addition:
		return joinSum(o.left.String(), o.right.String())
	case Multiplication:
		sep = ""
	case Division:
		sep = " / "
	default:
		panic(fmt.Sprintf("cplxalg: unknown operation kind %d", int(o.kind)))
	}
	return bracketed(o.left, plainStyle) + sep + bracketed(o.right, plainStyle)
}

func (o *Op) LaTeX() string {
	switch o.kind {
	case Addition:
		return joinSum(o.left.LaTeX(), o.right.LaTeX())
	case Multiplication:
		return bracketed(o.left, latexStyle) + ` \cdot ` + bracketed(o.right, latexStyle)
	case Division:
		return `\frac{` + o.left.LaTeX() + `}{` + o.right.LaTeX() + `}`
	}
	panic(fmt.Sprintf("cplxalg: unknown operation kind %d", int(o.kind)))
}

// joinSum folds a leading "- " of the right operand into the separator.
func joinSum(left, right string) string {
	if strings.HasPrefix(right, "- ") {
		return left + " " + right
	}
	return left + " + " + right
}

func bracketed(e Expr, style printStyle) string {
	if style == latexStyle {
		if e.RequiresBrackets() {
			return `\left(` + e.LaTeX() + `\right)`
		}
		return e.LaTeX()
	}
	if e.RequiresBrackets() {
		return "(" + e.String() + ")"
	}
	return e.String()
}
