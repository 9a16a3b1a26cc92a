package calc

import (
	"errors"
	"fmt"
	"strings"

	"github.com/agbru/bigcalc/internal/bigint"
	apperrors "github.com/agbru/bigcalc/internal/errors"
)

// ErrMalformedExpression is returned when an expression does not have the
// "x op y" shape.
var ErrMalformedExpression = errors.New("malformed expression")

// Expression is a binary operation on two integers.
type Expression struct {
	X  bigint.Int
	Op Op
	Y  bigint.Int
}

// NewExpression parses both operands and the operator.
func NewExpression(x, op, y string) (Expression, error) {
	o, err := ParseOp(op)
	if err != nil {
		return Expression{}, err
	}
	xv, err := bigint.Parse(x)
	if err != nil {
		return Expression{}, fmt.Errorf("left operand: %w", err)
	}
	yv, err := bigint.Parse(y)
	if err != nil {
		return Expression{}, fmt.Errorf("right operand: %w", err)
	}
	return Expression{X: xv, Op: o, Y: yv}, nil
}

// ParseExpression parses a line of the form "x op y", where the three parts
// are separated by white space.
func ParseExpression(line string) (Expression, error) {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return Expression{}, fmt.Errorf("%w: want \"x op y\", got %d token(s)", ErrMalformedExpression, len(fields))
	}
	return NewExpression(fields[0], fields[1], fields[2])
}

// String renders the expression as "x op y".
func (e Expression) String() string {
	return e.X.String() + " " + string(e.Op) + " " + e.Y.String()
}

// Digits returns the digit count of the longer operand.
func (e Expression) Digits() int {
	return max(e.X.Len(), e.Y.Len())
}

// CheckLimit returns an apperrors.OperandLimitError for the first operand
// longer than maxDigits. A maxDigits of zero or less disables the check.
func (e Expression) CheckLimit(maxDigits int) error {
	if maxDigits <= 0 {
		return nil
	}
	if n := e.X.Len(); n > maxDigits {
		return apperrors.OperandLimitError{Field: "x", Digits: n, Limit: maxDigits}
	}
	if n := e.Y.Len(); n > maxDigits {
		return apperrors.OperandLimitError{Field: "y", Digits: n, Limit: maxDigits}
	}
	return nil
}
