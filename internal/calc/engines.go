package calc

import (
	"context"
	"fmt"
	"math"
	"math/big"

	"github.com/agbru/bigcalc/internal/bigint"
)

// Engine names as registered in the default factory.
const (
	KaratsubaName  = "karatsuba"
	SchoolbookName = "schoolbook"
	MathBigName    = "mathbig"
)

// NewKaratsubaCalculator returns the decimal engine tuned by opts.
func NewKaratsubaCalculator(opts bigint.Options) Calculator {
	return &engine{
		name:        KaratsubaName,
		eval:        func(ctx context.Context, expr Expression) (string, error) { return evalDecimal(ctx, expr, opts) },
		cooperative: true,
	}
}

// NewSchoolbookCalculator returns the decimal engine with Karatsuba
// recursion disabled, so every product runs the quadratic base case.
func NewSchoolbookCalculator() Calculator {
	opts := bigint.Options{KaratsubaThreshold: math.MaxInt}
	return &engine{
		name:        SchoolbookName,
		eval:        func(ctx context.Context, expr Expression) (string, error) { return evalDecimal(ctx, expr, opts) },
		cooperative: true,
	}
}

// NewMathBigCalculator returns an engine backed by math/big, used as an
// oracle for the decimal engines.
func NewMathBigCalculator() Calculator {
	return &engine{name: MathBigName, eval: evalMathBig}
}

func evalDecimal(ctx context.Context, expr Expression, opts bigint.Options) (string, error) {
	x, y := expr.X, expr.Y
	if expr.Op.IsComparison() {
		return formatBool(expr.Op.compareResult(x.Cmp(y))), nil
	}
	switch expr.Op {
	case OpAdd:
		return x.Add(y).String(), nil
	case OpSub:
		return x.Sub(y).String(), nil
	case OpMul:
		z, err := x.MulContext(ctx, y, opts)
		if err != nil {
			return "", err
		}
		return z.String(), nil
	case OpQuo:
		q, err := x.QuoContext(ctx, y)
		if err != nil {
			return "", err
		}
		return q.String(), nil
	case OpRem:
		_, r, err := x.QuoRemContext(ctx, y, opts)
		if err != nil {
			return "", err
		}
		return r.String(), nil
	}
	return "", fmt.Errorf("%w %q", ErrUnknownOp, expr.Op)
}

func toBigInt(x bigint.Int) *big.Int {
	b, _ := new(big.Int).SetString(x.String(), 10)
	return b
}

// evalMathBig ignores ctx: math/big offers no cancellation.
func evalMathBig(_ context.Context, expr Expression) (string, error) {
	x, y := toBigInt(expr.X), toBigInt(expr.Y)
	if expr.Op.IsComparison() {
		return formatBool(expr.Op.compareResult(x.Cmp(y))), nil
	}
	if expr.Op.IsDivision() && y.Sign() == 0 {
		return "", bigint.ErrDivisionByZero
	}
	z := new(big.Int)
	switch expr.Op {
	case OpAdd:
		z.Add(x, y)
	case OpSub:
		z.Sub(x, y)
	case OpMul:
		z.Mul(x, y)
	case OpQuo:
		z.Quo(x, y)
	case OpRem:
		z.Rem(x, y)
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownOp, expr.Op)
	}
	return z.String(), nil
}
