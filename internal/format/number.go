package format

import "strings"

// FormatNumberString inserts a comma every three digits of a decimal string,
// counting from the right. A leading '-' is preserved. Strings that are not
// plain decimals ("true", "") are returned unchanged.
func FormatNumberString(s string) string {
	sign := ""
	digits := s
	if strings.HasPrefix(digits, "-") {
		sign, digits = "-", digits[1:]
	}
	if digits == "" || strings.Trim(digits, "0123456789") != "" {
		return s
	}
	if len(digits) <= 3 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + len(digits)/3)
	b.WriteString(sign)
	head := len(digits) % 3
	if head == 0 {
		head = 3
	}
	b.WriteString(digits[:head])
	for i := head; i < len(digits); i += 3 {
		b.WriteByte(',')
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// TruncateDigits shortens a long decimal string to its first and last edge
// digits joined by "...". The sign, if any, is kept and not counted.
func TruncateDigits(s string, limit, edge int) string {
	sign := ""
	digits := s
	if strings.HasPrefix(digits, "-") {
		sign, digits = "-", digits[1:]
	}
	if len(digits) <= limit || 2*edge >= len(digits) {
		return s
	}
	return sign + digits[:edge] + "..." + digits[len(digits)-edge:]
}

// DigitCount returns the number of decimal digits in s, ignoring a leading
// '-'.
func DigitCount(s string) int {
	return len(strings.TrimPrefix(s, "-"))
}
