package calc

import (
	"errors"
	"fmt"

	"github.com/cockroachdb/apd/v3"
)

// DefaultPrecision is the number of significant digits a result may carry
// before it is considered not representable.
const DefaultPrecision = 64

// ErrArithmetic is the single failure kind of the engine: division by zero or
// a result with no finite decimal representation within the precision.
var ErrArithmetic = errors.New("arithmetic failure")

// newContext returns a decimal context that traps on any inexact result, so
// 1/3 fails instead of rounding.
func newContext(precision uint32) *apd.Context {
	if precision == 0 {
		precision = DefaultPrecision
	}
	ctx := apd.BaseContext.WithPrecision(precision)
	ctx.Traps |= apd.Inexact
	return ctx
}

// Calculate applies op to left and right using exact decimal arithmetic at
// DefaultPrecision. With op None it returns right unchanged.
func Calculate(left, right *apd.Decimal, op Operator) (*apd.Decimal, error) {
	return calculate(newContext(DefaultPrecision), left, right, op)
}

func calculate(ctx *apd.Context, left, right *apd.Decimal, op Operator) (*apd.Decimal, error) {
	result := new(apd.Decimal)
	var err error

	switch op {
	case None:
		result.Set(right)
	case Add:
		_, err = ctx.Add(result, left, right)
	case Subtract:
		_, err = ctx.Sub(result, left, right)
	case Multiply:
		_, err = ctx.Mul(result, left, right)
	case Divide:
		if right.IsZero() {
			return nil, fmt.Errorf("%w: division by zero", ErrArithmetic)
		}
		if _, err = ctx.Quo(result, left, right); err == nil {
			result = idealQuotient(ctx, result, left.Exponent-right.Exponent)
		}
	default:
		return nil, fmt.Errorf("%w: unsupported operator %v", ErrArithmetic, op)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrArithmetic, op, err)
	}

	if result.IsZero() {
		result.Negative = false
	}
	return result, nil
}

// idealQuotient strips trailing zeros from an exact quotient but keeps at
// least the dividend's scale minus the divisor's, so 6.0/2 is 3.0 and 100/1
// stays 100.
func idealQuotient(ctx *apd.Context, q *apd.Decimal, ideal int32) *apd.Decimal {
	reduced := new(apd.Decimal)
	reduced.Reduce(q)
	if reduced.Exponent <= ideal {
		return reduced
	}
	out := new(apd.Decimal)
	if _, err := ctx.Quantize(out, reduced, ideal); err != nil {
		return reduced
	}
	return out
}

// parseOperand converts a display string to a decimal. The empty buffer and
// the partial forms the input pattern allows ("-", ".", "-.") read as zero.
func parseOperand(s string) (*apd.Decimal, error) {
	switch s {
	case "", "-", ".", "-.":
		return apd.New(0, 0), nil
	}
	d, _, err := apd.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid operand %q", ErrArithmetic, s)
	}
	if d.Form != apd.Finite {
		return nil, fmt.Errorf("%w: non-finite operand %q", ErrArithmetic, s)
	}
	return d, nil
}
