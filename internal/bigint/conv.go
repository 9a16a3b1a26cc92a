package bigint

import (
	"fmt"
	"io"
	"strings"
)

// String returns the canonical decimal form of x: a '-' for negative
// values followed by the digits, most significant first.
func (x Int) String() string {
	d := x.mag()
	var b strings.Builder
	b.Grow(len(d) + 1)
	if x.neg && !x.IsZero() {
		b.WriteByte('-')
	}
	for i := len(d) - 1; i >= 0; i-- {
		b.WriteByte('0' + d[i])
	}
	return b.String()
}

// Format implements fmt.Formatter. The verbs %d, %s and %v print the
// decimal form; width and the '-', '0', '+' and ' ' flags behave as they
// do for the built-in integer types.
func (x Int) Format(s fmt.State, ch rune) {
	switch ch {
	case 'd', 's', 'v':
	default:
		fmt.Fprintf(s, "%%!%c(bigint.Int=%s)", ch, x.String())
		return
	}

	body := x.String()
	sign := ""
	switch {
	case body[0] == '-':
		sign, body = "-", body[1:]
	case s.Flag('+'):
		sign = "+"
	case s.Flag(' '):
		sign = " "
	}

	pad := 0
	if w, ok := s.Width(); ok {
		pad = max(w-len(sign)-len(body), 0)
	}

	switch {
	case s.Flag('-'):
		io.WriteString(s, sign)
		io.WriteString(s, body)
		io.WriteString(s, strings.Repeat(" ", pad))
	case s.Flag('0') && ch == 'd':
		io.WriteString(s, sign)
		io.WriteString(s, strings.Repeat("0", pad))
		io.WriteString(s, body)
	default:
		io.WriteString(s, strings.Repeat(" ", pad))
		io.WriteString(s, sign)
		io.WriteString(s, body)
	}
}

// Scan implements fmt.Scanner. It skips leading white space, reads one
// white-space-delimited token and parses it. An exhausted stream yields
// ErrEndOfInput and leaves z unchanged.
func (z *Int) Scan(s fmt.ScanState, ch rune) error {
	switch ch {
	case 'd', 's', 'v':
	default:
		return fmt.Errorf("bigint: invalid verb %%%c for Scan", ch)
	}
	tok, err := s.Token(true, nil)
	if err != nil {
		return err
	}
	if len(tok) == 0 {
		return ErrEndOfInput
	}
	x, err := Parse(string(tok))
	if err != nil {
		return err
	}
	*z = x
	return nil
}

// Read reads one white-space-delimited decimal token from r. When r is not
// an io.RuneScanner, one rune past the token may be consumed; wrap r in a
// bufio.Reader to read several values in a row.
func Read(r io.Reader) (Int, error) {
	var x Int
	if _, err := fmt.Fscan(r, &x); err != nil {
		return Int{}, err
	}
	return x, nil
}

// WriteTo implements io.WriterTo by writing the decimal form of x.
func (x Int) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, x.String())
	return int64(n), err
}

// MarshalText implements encoding.TextMarshaler.
func (x Int) MarshalText() ([]byte, error) {
	return []byte(x.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (z *Int) UnmarshalText(text []byte) error {
	x, err := Parse(string(text))
	if err != nil {
		return err
	}
	*z = x
	return nil
}
