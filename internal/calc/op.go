package calc

import (
	"errors"
	"fmt"
	"strings"
)

// Op is a binary operator understood by the engines.
type Op string

// Supported operators.
const (
	OpAdd          Op = "+"
	OpSub          Op = "-"
	OpMul          Op = "*"
	OpQuo          Op = "/"
	OpRem          Op = "%"
	OpLess         Op = "<"
	OpLessEqual    Op = "<="
	OpGreater      Op = ">"
	OpGreaterEqual Op = ">="
	OpEqual        Op = "=="
	OpNotEqual     Op = "!="
)

// ErrUnknownOp is returned by ParseOp for unsupported operator text.
var ErrUnknownOp = errors.New("unknown operator")

var opAliases = map[string]Op{
	"add": OpAdd, "sub": OpSub, "mul": OpMul, "div": OpQuo, "quo": OpQuo,
	"mod": OpRem, "rem": OpRem, "lt": OpLess, "le": OpLessEqual,
	"gt": OpGreater, "ge": OpGreaterEqual, "eq": OpEqual, "ne": OpNotEqual,
	"x": OpMul,
}

// Ops returns every supported operator in display order.
func Ops() []Op {
	return []Op{
		OpAdd, OpSub, OpMul, OpQuo, OpRem,
		OpLess, OpLessEqual, OpGreater, OpGreaterEqual, OpEqual, OpNotEqual,
	}
}

// ParseOp accepts an operator symbol ("+", "<=", ...) or its word alias
// ("add", "le", ...), case-insensitively.
func ParseOp(s string) (Op, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, op := range Ops() {
		if string(op) == s {
			return op, nil
		}
	}
	if op, ok := opAliases[s]; ok {
		return op, nil
	}
	return "", fmt.Errorf("%w %q", ErrUnknownOp, s)
}

// IsComparison reports whether op yields a boolean rather than an integer.
func (op Op) IsComparison() bool {
	switch op {
	case OpLess, OpLessEqual, OpGreater, OpGreaterEqual, OpEqual, OpNotEqual:
		return true
	}
	return false
}

// IsDivision reports whether op fails on a zero right operand.
func (op Op) IsDivision() bool {
	return op == OpQuo || op == OpRem
}

// compareResult maps the three-way comparison c onto the truth of op.
func (op Op) compareResult(c int) bool {
	switch op {
	case OpLess:
		return c < 0
	case OpLessEqual:
		return c <= 0
	case OpGreater:
		return c > 0
	case OpGreaterEqual:
		return c >= 0
	case OpEqual:
		return c == 0
	case OpNotEqual:
		return c != 0
	}
	return false
}

func formatBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
