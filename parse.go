package cplxalg

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ============================================================
// Parser
// ============================================================

// Parser turns infix text into expressions. Identifiers are single letters
// and become atoms of kind Atoms; juxtaposition is multiplication.
type Parser struct {
	Atoms TermKind
}

// NewParser returns a parser producing atoms of the given kind.
func NewParser(atoms TermKind) (*Parser, error) {
	switch atoms {
	case PlainKind, RealKind, UnitKind:
		return &Parser{Atoms: atoms}, nil
	case QuasiKind:
		return nil, errors.New("cplxalg: parser atoms cannot be quasi-terms")
	}
	return nil, errors.Errorf("cplxalg: unknown term kind %d", int(atoms))
}

// Parse reads s with unit-circle atoms, the convention of the geometry
// helpers.
func Parse(s string) (Expr, error) {
	return (&Parser{Atoms: UnitKind}).Parse(s)
}

// MustParse is Parse that panics on error.
func MustParse(s string) Expr {
	e, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return e
}

// Parse splits s on the lowest-precedence operator outside parentheses:
// '+' and binary '-', then '*', then '/' (left associative).
func (p *Parser) Parse(s string) (Expr, error) {
	if err := checkBalanced(s); err != nil {
		return nil, err
	}
	l, r := trimSpan(s, 0, len(s))
	if l == r {
		return nil, parseErr(s, 0, len(s), "empty expression")
	}
	return p.parse(s, l, r)
}

func (p *Parser) parse(s string, l, r int) (Expr, error) {
	l, r = trimSpan(s, l, r)
	if l == r {
		// empty remainder of an implicit product
		return One(), nil
	}
	depth := 0
	plus, minus, star, slash := -1, -1, -1, -1
	for i := l; i < r; i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
		case '+':
			if depth != 0 {
				continue
			}
			if !isBinaryAt(s, l, i) {
				return nil, parseErr(s, i, i+1, "'+' without left operand")
			}
			if plus < 0 {
				plus = i
			}
		case '-':
			if depth == 0 && isBinaryAt(s, l, i) {
				minus = i
			}
		case '*':
			if depth == 0 {
				star = i
			}
		case '/':
			if depth == 0 {
				slash = i
			}
		}
	}
	switch {
	case plus >= 0:
		return p.binary(s, l, plus, r, Expr.Add)
	case minus >= 0:
		return p.binary(s, l, minus, r, Expr.Sub)
	case star >= 0:
		return p.binary(s, l, star, r, Expr.Mul)
	case slash >= 0:
		return p.binary(s, l, slash, r, Expr.Div)
	}

	c := s[l]
	switch {
	case c == '(':
		closing := matchParen(s, l, r)
		if closing < 0 {
			return nil, parseErr(s, l, r, "unbalanced parentheses")
		}
		if il, ir := trimSpan(s, l+1, closing); il == ir {
			return nil, parseErr(s, l, closing+1, "empty parentheses")
		}
		inner, err := p.parse(s, l+1, closing)
		if err != nil {
			return nil, err
		}
		return p.implicitProduct(s, l, inner, closing+1, r)
	case c == '-':
		if nl, nr := trimSpan(s, l+1, r); nl == nr {
			return nil, parseErr(s, l, l+1, "'-' without operand")
		}
		e, err := p.parse(s, l+1, r)
		if err != nil {
			return nil, err
		}
		return p.eval(s, l, r, e.Neg)
	case isDigit(c):
		end := l + 1
		for end < r && isDigit(s[end]) {
			end++
		}
		n, err := strconv.ParseInt(s[l:end], 10, 64)
		if err != nil {
			return nil, parseErr(s, l, end, "integer literal out of range")
		}
		return p.implicitProduct(s, l, Int(n), end, r)
	case isLetter(c):
		return p.implicitProduct(s, l, TermOf(p.Atoms, s[l:l+1]), l+1, r)
	}
	return nil, parseErr(s, l, l+1, fmt.Sprintf("unexpected character %q", c))
}

type binaryFunc func(a, b Expr) Expr

func (p *Parser) binary(s string, l, at, r int, fn binaryFunc) (Expr, error) {
	if ll, lr := trimSpan(s, l, at); ll == lr {
		return nil, parseErr(s, at, at+1, "missing left operand")
	}
	if rl, rr := trimSpan(s, at+1, r); rl == rr {
		return nil, parseErr(s, at, at+1, "missing right operand")
	}
	left, err := p.parse(s, l, at)
	if err != nil {
		return nil, err
	}
	right, err := p.parse(s, at+1, r)
	if err != nil {
		return nil, err
	}
	return p.eval(s, l, r, func() Expr { return fn(left, right) })
}

// eval runs one algebra step for s[l:r], reporting division by zero and
// coefficient overflow as errors.
func (p *Parser) eval(s string, l, r int, fn func() Expr) (Expr, error) {
	res, err := Safely(fn)
	if err != nil {
		return nil, errors.Wrapf(err, "evaluating %q", s[l:r])
	}
	return res, nil
}

func (p *Parser) implicitProduct(s string, start int, head Expr, l, r int) (Expr, error) {
	rest, err := p.parse(s, l, r)
	if err != nil {
		return nil, err
	}
	return p.eval(s, start, r, func() Expr { return head.Mul(rest) })
}

func checkBalanced(s string) error {
	var open []int
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			open = append(open, i)
		case ')':
			if len(open) == 0 {
				return parseErr(s, i, i+1, "unmatched ')'")
			}
			open = open[:len(open)-1]
		}
	}
	if len(open) > 0 {
		return parseErr(s, open[len(open)-1], len(s), "unclosed '('")
	}
	return nil
}

func matchParen(s string, l, r int) int {
	depth := 0
	for i := l; i < r; i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// isBinaryAt reports whether the operator at i follows an operand.
func isBinaryAt(s string, l, i int) bool {
	j := i - 1
	for j >= l && isSpace(s[j]) {
		j--
	}
	return j >= l && !strings.ContainsRune("+-*/(", rune(s[j]))
}

func trimSpan(s string, l, r int) (int, int) {
	for l < r && isSpace(s[l]) {
		l++
	}
	for r > l && isSpace(s[r-1]) {
		r--
	}
	return l, r
}

func isSpace(c byte) bool  { return c == ' ' || c == '\t' || c == '\n' || c == '\r' }
func isDigit(c byte) bool  { return c >= '0' && c <= '9' }
func isLetter(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }

func parseErr(s string, start, end int, msg string) error {
	return errors.WithStack(&ParseError{Input: s, Start: start, End: end, Msg: msg})
}
