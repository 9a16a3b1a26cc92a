package bigint

import (
	"fmt"
	"testing"
)

func TestCoeffPool(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		size    int
		wantCap int
	}{
		{"single", 1, 16},
		{"small", 10, 16},
		{"exact class", 64, 64},
		{"between classes", 100, 128},
		{"large", 1 << 20, 1 << 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := acquireCoeffs(tt.size)
			if len(s) != tt.size {
				t.Errorf("acquireCoeffs(%d) got length %d, want %d", tt.size, len(s), tt.size)
			}
			if cap(s) != tt.wantCap {
				t.Errorf("acquireCoeffs(%d) got capacity %d, want %d", tt.size, cap(s), tt.wantCap)
			}
			for i := range s {
				if s[i] != 0 {
					t.Errorf("acquireCoeffs(%d) not zeroed at index %d", tt.size, i)
					break
				}
			}
			releaseCoeffs(s)
		})
	}
}

func TestCoeffPoolIndex(t *testing.T) {
	t.Parallel()
	if got := coeffPoolIndex(1 << maxPooledShift); got != maxPooledShift-minPooledShift {
		t.Errorf("coeffPoolIndex(2^%d) = %d", maxPooledShift, got)
	}
	if got := coeffPoolIndex(1<<maxPooledShift + 1); got != -1 {
		t.Errorf("coeffPoolIndex beyond the largest class = %d, want -1", got)
	}
}

func TestCoeffPoolReuseIsZeroed(t *testing.T) {
	t.Parallel()
	for i := 0; i < 10; i++ {
		s := acquireCoeffs(32)
		for j := range s {
			if s[j] != 0 {
				t.Fatalf("iteration %d: reused slice not zeroed at index %d", i, j)
			}
			s[j] = int64(j + 1)
		}
		releaseCoeffs(s)
	}
}

func TestReleaseForeignSlice(t *testing.T) {
	t.Parallel()
	// Odd capacities are silently dropped.
	releaseCoeffs(make([]int64, 5, 17))
	releaseCoeffs(nil)
}

func BenchmarkMul(b *testing.B) {
	for _, digits := range []int{64, 1024, 8192} {
		x := MustParse(repeatDigits("7", digits))
		y := MustParse(repeatDigits("3", digits))
		b.Run(fmt.Sprintf("%d_digits", digits), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = x.Mul(y)
			}
		})
	}
}

func repeatDigits(d string, n int) string {
	out := make([]byte, n)
	for i := range out {
		out[i] = d[0]
	}
	return string(out)
}
