//go:build gmp

// This file registers a GMP-backed oracle engine. It is compiled only with
// the "gmp" build tag and requires libgmp on the build host:
//
//	go build -tags=gmp ./...

package calc

import (
	"context"
	"fmt"

	"github.com/ncw/gmp"

	"github.com/agbru/bigcalc/internal/bigint"
)

// GMPName is the factory name of the GMP engine.
const GMPName = "gmp"

func init() {
	RegisterCalculator(GMPName, func(bigint.Options) Calculator {
		return &engine{name: GMPName, eval: evalGMP}
	})
}

func toGMP(x bigint.Int) *gmp.Int {
	z, _ := new(gmp.Int).SetString(x.String(), 10)
	return z
}

func evalGMP(_ context.Context, expr Expression) (string, error) {
	x, y := toGMP(expr.X), toGMP(expr.Y)
	if expr.Op.IsComparison() {
		return formatBool(expr.Op.compareResult(x.Cmp(y))), nil
	}
	if expr.Op.IsDivision() && y.Sign() == 0 {
		return "", bigint.ErrDivisionByZero
	}
	z := new(gmp.Int)
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
