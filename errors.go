package cplxalg

import (
	"fmt"
	"runtime"

	"github.com/pkg/errors"
)

// ErrDivisionByZero is matched by every division-by-zero failure.
var ErrDivisionByZero = errors.New("cplxalg: division by zero")

// DivisionByZeroError is raised when a denominator turns out to be the zero
// polynomial. Algebra methods panic with it; Safely and friends turn it back
// into an error.
type DivisionByZeroError struct {
	Numerator Expr
}

func (e *DivisionByZeroError) Error() string {
	return fmt.Sprintf("cplxalg: division by zero (numerator %s)", e.Numerator.String())
}

func (e *DivisionByZeroError) Is(target error) bool { return target == ErrDivisionByZero }

// ErrCoefficientOverflow is matched when a coefficient leaves the int64 range.
var ErrCoefficientOverflow = errors.New("cplxalg: coefficient overflow")

// OverflowError is raised by coefficient arithmetic that does not fit in an
// int64. Like DivisionByZeroError it is recovered by Safely and friends.
type OverflowError struct {
	Op   string
	A, B int64
}

func (e *OverflowError) Error() string {
	if e.Op == "neg" {
		return fmt.Sprintf("cplxalg: coefficient overflow in -(%d)", e.B)
	}
	return fmt.Sprintf("cplxalg: coefficient overflow in %d %s %d", e.A, e.Op, e.B)
}

func (e *OverflowError) Is(target error) bool { return target == ErrCoefficientOverflow }

// ParseError reports malformed input together with the offending span
// [Start, End) of Input.
type ParseError struct {
	Input      string
	Start, End int
	Msg        string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cplxalg: parse error at [%d,%d) %q: %s", e.Start, e.End, e.Input[e.Start:e.End], e.Msg)
}

// Safely runs fn and converts a division-by-zero or coefficient-overflow panic
// into an error. Any other panic is propagated unchanged.
func Safely(fn func() Expr) (res Expr, err error) {
	defer recoverArith(&err)
	return fn(), nil
}

// Quotient divides num by den, reporting division by zero as an error.
func Quotient(num, den Expr) (Expr, error) {
	return Safely(func() Expr { return num.Div(den) })
}

// TryExpand expands e, reporting division by zero as an error.
func TryExpand(e Expr) (Expr, error) {
	return Safely(e.Expand)
}

// TryIsZero is IsZero with division by zero reported as an error.
func TryIsZero(e Expr) (zero bool, err error) {
	defer recoverArith(&err)
	return e.IsZero(), nil
}

// TryEqual is Equal with division by zero reported as an error.
func TryEqual(a, b Expr) (eq bool, err error) {
	defer recoverArith(&err)
	return a.Equal(b), nil
}

func recoverArith(errp *error) {
	r := recover()
	if r == nil {
		return
	}
	switch e := r.(type) {
	case runtime.Error:
		panic(r)
	case *DivisionByZeroError:
		*errp = errors.WithStack(e)
	case *OverflowError:
		*errp = errors.WithStack(e)
	default:
		panic(r)
	}
}
