package format

import (
	"strings"
	"testing"
	"time"
)

func TestFormatExecutionDuration(t *testing.T) {
	t.Parallel()
	tests := []struct {
		d    time.Duration
		want string
	}{
		{500 * time.Microsecond, "500µs"},
		{0, "0µs"},
		{42 * time.Millisecond, "42ms"},
		{1500 * time.Millisecond, "1.5s"},
		{2*time.Minute + 3400*time.Microsecond, "2m0.003s"},
	}
	for _, tt := range tests {
		if got := FormatExecutionDuration(tt.d); got != tt.want {
			t.Errorf("FormatExecutionDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestFormatNumberString(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in, want string
	}{
		{"0", "0"},
		{"123", "123"},
		{"1234", "1,234"},
		{"-1234", "-1,234"},
		{"123456", "123,456"},
		{"1234567", "1,234,567"},
		{"-246913578024691357802469135780", "-246,913,578,024,691,357,802,469,135,780"},
		{"true", "true"},
		{"", ""},
		{"-", "-"},
	}
	for _, tt := range tests {
		if got := FormatNumberString(tt.in); got != tt.want {
			t.Errorf("FormatNumberString(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTruncateDigits(t *testing.T) {
	t.Parallel()
	long := strings.Repeat("1", 10) + strings.Repeat("5", 80) + strings.Repeat("9", 10)
	got := TruncateDigits("-"+long, 50, 10)
	want := "-" + strings.Repeat("1", 10) + "..." + strings.Repeat("9", 10)
	if got != want {
		t.Errorf("TruncateDigits = %q, want %q", got, want)
	}
	if got := TruncateDigits("12345", 50, 10); got != "12345" {
		t.Errorf("short input changed: %q", got)
	}
	if DigitCount("-12345") != 5 {
		t.Errorf("DigitCount(-12345) = %d", DigitCount("-12345"))
	}
}
