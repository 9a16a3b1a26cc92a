package bigint

// Int is an arbitrary-precision signed integer.
//
// The zero value is 0 and is ready to use. Values produced by this package
// always satisfy the canonical form: every digit is in [0,9], there are no
// most-significant zero digits except for zero itself (a single 0 digit),
// and zero is never negative.
type Int struct {
	neg    bool    // strictly negative
	digits []uint8 // least-significant digit first
}

// zeroDigits is the canonical magnitude of zero. It is shared and must
// never be written to.
var zeroDigits = []uint8{0}

var (
	zero = Int{digits: zeroDigits}
	one  = Int{digits: []uint8{1}}
)

// FromInt64 returns the Int holding v.
func FromInt64(v int64) Int {
	neg := v < 0
	u := uint64(v)
	if neg {
		u = -u
	}
	if u == 0 {
		return zero
	}
	digits := make([]uint8, 0, 20)
	for u > 0 {
		digits = append(digits, uint8(u%10))
		u /= 10
	}
	return Int{neg: neg, digits: digits}
}

// Parse converts a decimal string to an Int. The accepted form is an
// optional leading '-' followed by one or more digits 0-9; leading zeros
// are allowed and "-0" parses as zero. Any other input yields a
// *ParseError.
func Parse(s string) (Int, error) {
	if s == "" {
		return Int{}, &ParseError{Input: s, Offset: 0, Reason: "empty input"}
	}
	start := 0
	if s[0] == '-' {
		start = 1
	}
	if start == len(s) {
		return Int{}, &ParseError{Input: s, Offset: start, Reason: "missing digits after sign"}
	}
	digits := make([]uint8, len(s)-start)
	for i := start; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return Int{}, &ParseError{Input: s, Offset: i, Reason: "unexpected character " + quoteByte(c)}
		}
		digits[len(s)-1-i] = c - '0'
	}
	return Int{neg: start == 1, digits: digits}.norm(), nil
}

// MustParse is like Parse but panics if s is malformed. It is intended for
// constants in tests and initializers.
func MustParse(s string) Int {
	x, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return x
}

func quoteByte(c byte) string {
	if c >= 0x20 && c < 0x7f {
		return "'" + string(rune(c)) + "'"
	}
	const hex = "0123456789abcdef"
	return "0x" + string([]byte{hex[c>>4], hex[c&0xf]})
}

// mag returns the magnitude of x, mapping the zero value to zeroDigits.
func (x Int) mag() []uint8 {
	if len(x.digits) == 0 {
		return zeroDigits
	}
	return x.digits
}

// trim drops most-significant zero digits, keeping at least one digit.
func trim(d []uint8) []uint8 {
	n := len(d)
	for n > 1 && d[n-1] == 0 {
		n--
	}
	if n == 0 {
		return zeroDigits
	}
	return d[:n]
}

// norm restores the canonical form: trimmed digits and a non-negative zero.
func (x Int) norm() Int {
	x.digits = trim(x.digits)
	if len(x.digits) == 1 && x.digits[0] == 0 {
		x.neg = false
	}
	return x
}

// IsZero reports whether x == 0.
func (x Int) IsZero() bool {
	d := x.mag()
	return len(d) == 1 && d[0] == 0
}

// Bool reports whether x != 0. It is the truth value of x in conditions.
func (x Int) Bool() bool {
	return !x.IsZero()
}

// Sign returns -1, 0 or +1 depending on the sign of x.
func (x Int) Sign() int {
	switch {
	case x.IsZero():
		return 0
	case x.neg:
		return -1
	default:
		return 1
	}
}

// Len returns the number of decimal digits of |x|. Zero has one digit.
func (x Int) Len() int {
	return len(x.mag())
}

// Abs returns |x|.
func (x Int) Abs() Int {
	return Int{digits: x.mag()}
}

// Neg returns -x. The negation of zero is zero.
func (x Int) Neg() Int {
	if x.IsZero() {
		return zero
	}
	return Int{neg: !x.neg, digits: x.mag()}
}
