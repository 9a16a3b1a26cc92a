package bigint

import (
	"errors"
	"math"
	"math/big"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromInt64(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{7, "7"},
		{-7, "-7"},
		{1000, "1000"},
		{math.MaxInt64, "9223372036854775807"},
		{math.MinInt64, "-9223372036854775808"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FromInt64(tt.in).String(), "FromInt64(%d)", tt.in)
	}
}

func TestParse(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"zero", "0", "0"},
		{"negative zero", "-0", "0"},
		{"leading zeros", "000123", "123"},
		{"negative leading zeros", "-00042", "-42"},
		{"all zeros", "-0000", "0"},
		{"long", "123456789012345678901234567890", "123456789012345678901234567890"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			x, err := Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, x.String())
		})
	}
}

func TestParseErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in     string
		offset int
	}{
		{"", 0},
		{"-", 1},
		{"12a3", 2},
		{"--1", 1},
		{"1-2", 1},
		{"+5", 0},
		{" 5", 0},
		{"5 ", 1},
		{"1e10", 1},
		{"1_000", 1},
	}
	for _, tt := range tests {
		_, err := Parse(tt.in)
		var pe *ParseError
		require.ErrorAs(t, err, &pe, "Parse(%q)", tt.in)
		assert.Equal(t, tt.in, pe.Input)
		assert.Equal(t, tt.offset, pe.Offset, "Parse(%q) offset", tt.in)
		assert.Contains(t, pe.Error(), "bigint: invalid decimal")
	}
}

func TestMustParsePanics(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { MustParse("x") })
	assert.NotPanics(t, func() { MustParse("-12") })
}

func TestZeroValue(t *testing.T) {
	t.Parallel()
	var z Int
	assert.True(t, z.IsZero())
	assert.False(t, z.Bool())
	assert.Equal(t, 0, z.Sign())
	assert.Equal(t, 1, z.Len())
	assert.Equal(t, "0", z.String())
	assert.True(t, z.Equal(MustParse("-0")))
	assert.Equal(t, "5", z.Add(FromInt64(5)).String())
}

func TestCanonicalForm(t *testing.T) {
	t.Parallel()
	results := []Int{
		MustParse("5").Sub(MustParse("5")),
		MustParse("-5").Add(MustParse("5")),
		MustParse("-5").Mul(MustParse("0")),
		MustParse("0").Neg(),
		MustParse("-3").Mul(MustParse("0")),
		MustParse("1000").Sub(MustParse("999")),
	}
	for _, r := range results {
		d := r.mag()
		require.NotEmpty(t, d)
		for _, v := range d {
			assert.LessOrEqual(t, v, uint8(9))
		}
		if len(d) > 1 {
			assert.NotZero(t, d[len(d)-1], "most-significant zero in %v", d)
		}
		if r.IsZero() {
			assert.False(t, r.neg, "negative zero")
		}
	}
}

func TestAddSub(t *testing.T) {
	t.Parallel()
	tests := []struct {
		x, y     string
		sum, dif string
	}{
		{"0", "0", "0", "0"},
		{"999", "1", "1000", "998"},
		{"1000", "1", "1001", "999"},
		{"-999", "-1", "-1000", "-998"},
		{"5", "-5", "0", "10"},
		{"-5", "5", "0", "-10"},
		{"3", "-10", "-7", "13"},
		{"-3", "10", "7", "-13"},
		{"10", "-3", "7", "13"},
		{"-10", "3", "-7", "-13"},
		{"99999999999999999999", "1", "100000000000000000000", "99999999999999999998"},
	}
	for _, tt := range tests {
		x, y := MustParse(tt.x), MustParse(tt.y)
		assert.Equal(t, tt.sum, x.Add(y).String(), "%s + %s", tt.x, tt.y)
		assert.Equal(t, tt.dif, x.Sub(y).String(), "%s - %s", tt.x, tt.y)
	}
}

func TestOperandsUnchanged(t *testing.T) {
	t.Parallel()
	x := MustParse("-123456789")
	y := MustParse("987")
	_ = x.Add(y)
	_ = x.Sub(y)
	_ = x.Mul(y)
	_, _ = x.Quo(y)
	_, _ = x.Rem(y)
	assert.Equal(t, "-123456789", x.String())
	assert.Equal(t, "987", y.String())
}

func TestCompoundAssign(t *testing.T) {
	t.Parallel()
	z := MustParse("10")
	copyOfZ := z

	z.AddAssign(MustParse("5"))
	assert.Equal(t, "15", z.String())
	z.SubAssign(MustParse("20"))
	assert.Equal(t, "-5", z.String())
	z.MulAssign(MustParse("-4"))
	assert.Equal(t, "20", z.String())
	require.NoError(t, z.QuoAssign(MustParse("3")))
	assert.Equal(t, "6", z.String())
	require.NoError(t, z.RemAssign(MustParse("4")))
	assert.Equal(t, "2", z.String())

	assert.ErrorIs(t, z.QuoAssign(Int{}), ErrDivisionByZero)
	assert.ErrorIs(t, z.RemAssign(Int{}), ErrDivisionByZero)
	assert.Equal(t, "2", z.String(), "failed compound division must not modify the receiver")

	assert.Equal(t, "10", copyOfZ.String(), "copies are independent")
}

func TestIncDec(t *testing.T) {
	t.Parallel()
	a := MustParse("-1")

	assert.Equal(t, "0", a.Inc().String())
	assert.Equal(t, "0", a.PostInc().String())
	assert.Equal(t, "1", a.String())
	assert.Equal(t, "0", a.Dec().String())
	assert.Equal(t, "0", a.PostDec().String())
	assert.Equal(t, "-1", a.String())

	b := MustParse("999")
	b.Inc()
	assert.Equal(t, "1000", b.String())
	b.Dec()
	assert.Equal(t, "999", b.String())
}

func TestNegAbsSign(t *testing.T) {
	t.Parallel()
	x := MustParse("-42")
	assert.Equal(t, "42", x.Neg().String())
	assert.Equal(t, "42", x.Abs().String())
	assert.Equal(t, -1, x.Sign())
	assert.Equal(t, 1, x.Neg().Sign())
	assert.Equal(t, "0", MustParse("0").Neg().String())
	assert.Equal(t, 2, x.Len())
	assert.True(t, x.Bool())
}

func TestCmp(t *testing.T) {
	t.Parallel()
	tests := []struct {
		x, y string
		want int
	}{
		{"0", "-0", 0},
		{"1", "0", 1},
		{"-1", "0", -1},
		{"-1", "1", -1},
		{"100", "99", 1},
		{"-100", "-99", -1},
		{"-99", "-100", 1},
		{"12345", "12346", -1},
		{"12345", "12345", 0},
	}
	for _, tt := range tests {
		x, y := MustParse(tt.x), MustParse(tt.y)
		assert.Equal(t, tt.want, x.Cmp(y), "Cmp(%s, %s)", tt.x, tt.y)
		assert.Equal(t, -tt.want, y.Cmp(x), "Cmp(%s, %s)", tt.y, tt.x)
		assert.Equal(t, tt.want == 0, x.Equal(y))
		assert.Equal(t, tt.want != 0, x.NotEqual(y))
		assert.Equal(t, tt.want < 0, x.Less(y))
		assert.Equal(t, tt.want <= 0, x.LessEqual(y))
		assert.Equal(t, tt.want > 0, x.Greater(y))
		assert.Equal(t, tt.want >= 0, x.GreaterEqual(y))
	}
}

func TestCmpMagIgnoresHighZeros(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 0, cmpMag([]uint8{1, 2, 0, 0}, []uint8{1, 2}))
	assert.Equal(t, 1, cmpMag([]uint8{1, 3, 0}, []uint8{1, 2}))
}

func TestMul(t *testing.T) {
	t.Parallel()
	tests := []struct {
		x, y, want string
	}{
		{"0", "0", "0"},
		{"0", "-5", "0"},
		{"-5", "0", "0"},
		{"1", "1", "1"},
		{"-1", "1", "-1"},
		{"-1", "-1", "1"},
		{"9", "9", "81"},
		{"99999", "99999", "9999800001"},
		{"123456789012345678901234567890", "2", "246913578024691357802469135780"},
		{"-123456789", "987654321", "-121932631112635269"},
		{"12345678901234567890", "98765432109876543210", "1219326311370217952237463801111263526900"},
	}
	for _, tt := range tests {
		x, y := MustParse(tt.x), MustParse(tt.y)
		assert.Equal(t, tt.want, x.Mul(y).String(), "%s * %s", tt.x, tt.y)
		assert.Equal(t, tt.want, y.Mul(x).String(), "%s * %s", tt.y, tt.x)
	}
}

func TestMulWithOptionsAgree(t *testing.T) {
	t.Parallel()
	x := MustParse("31415926535897932384626433832795028841971693993751058209749445923078164062862089986280348253421170679")
	y := MustParse("-27182818284590452353602874713526624977572470936999595749669676277240766303535475945713821785251664274")
	want := x.Mul(y)

	for _, opts := range []Options{
		{KaratsubaThreshold: 0},
		{KaratsubaThreshold: 2},
		{KaratsubaThreshold: 4, ParallelThreshold: 8},
		{KaratsubaThreshold: 16, ParallelThreshold: 2},
		{KaratsubaThreshold: 1 << 20},
		{KaratsubaThreshold: 8, ParallelThreshold: -1},
	} {
		assert.True(t, want.Equal(x.MulWith(y, opts)), "options %+v", opts)
	}
}

func TestMulSplitsBeyondRawLimit(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewPCG(11, 13))
	digits := func(n int) string {
		b := make([]byte, n)
		b[0] = byte('1' + rng.IntN(9))
		for i := 1; i < n; i++ {
			b[i] = byte('0' + rng.IntN(10))
		}
		return string(b)
	}

	split := Options{KaratsubaThreshold: 4, maxRawDigits: minRawDigits}
	for _, size := range [][2]int{{17, 1}, {17, 17}, {33, 20}, {100, 99}, {257, 3}, {300, 300}} {
		x, y := MustParse(digits(size[0])), MustParse("-"+digits(size[1]))
		bx, _ := new(big.Int).SetString(x.String(), 10)
		by, _ := new(big.Int).SetString(y.String(), 10)
		want := new(big.Int).Mul(bx, by).String()

		assert.Equal(t, want, x.MulWith(y, split).String(), "%d x %d digits", size[0], size[1])
		assert.Equal(t, want, y.MulWith(x, split).String(), "%d x %d digits", size[1], size[0])
	}
	assert.True(t, MustParse("123").MulWith(Int{}, split).IsZero())
}

func TestRawLimitNormalization(t *testing.T) {
	t.Parallel()
	assert.Equal(t, MaxOperandDigits, Options{}.normalized().maxRawDigits)
	assert.Equal(t, MaxOperandDigits, Options{maxRawDigits: MaxOperandDigits * 2}.normalized().maxRawDigits)
	assert.Equal(t, minRawDigits, Options{maxRawDigits: 3}.normalized().maxRawDigits)
	assert.Equal(t, 64, Options{maxRawDigits: 64}.normalized().maxRawDigits)
}

func TestCarryNormalize(t *testing.T) {
	t.Parallel()
	// 12*10^0 + (-3)*10^1 + 5*10^2 = 482
	got := carryNormalize([]int64{12, -3, 5, 0, 0})
	assert.Equal(t, []uint8{2, 8, 4}, got)
	assert.Equal(t, []uint8{0}, carryNormalize([]int64{0, 0, 0}))
	assert.Equal(t, []uint8{0, 0, 1}, carryNormalize([]int64{100}))
}

func TestQuoRem(t *testing.T) {
	t.Parallel()
	tests := []struct {
		x, y   string
		q, rem string
	}{
		{"100", "9", "11", "1"},
		{"-7", "2", "-3", "-1"},
		{"7", "-2", "-3", "1"},
		{"-7", "-2", "3", "-1"},
		{"0", "5", "0", "0"},
		{"5", "7", "0", "5"},
		{"-5", "7", "0", "-5"},
		{"42", "1", "42", "0"},
		{"42", "-1", "-42", "0"},
		{"-42", "-1", "42", "0"},
		{"1000", "10", "100", "0"},
		{"1000000000000000000000", "7", "142857142857142857142", "6"},
		{"123456789012345678901234567890", "987654321", "124999998873437499901", "574845669"},
		{"99", "99", "1", "0"},
		{"-99", "99", "-1", "0"},
	}
	for _, tt := range tests {
		x, y := MustParse(tt.x), MustParse(tt.y)
		q, err := x.Quo(y)
		require.NoError(t, err)
		assert.Equal(t, tt.q, q.String(), "%s / %s", tt.x, tt.y)

		r, err := x.Rem(y)
		require.NoError(t, err)
		assert.Equal(t, tt.rem, r.String(), "%s %% %s", tt.x, tt.y)

		q2, r2, err := x.QuoRem(y)
		require.NoError(t, err)
		assert.True(t, q.Equal(q2))
		assert.True(t, r.Equal(r2))
	}
}

func TestDivisionByZero(t *testing.T) {
	t.Parallel()
	x := MustParse("12345")
	for _, zero := range []Int{{}, MustParse("0"), MustParse("-0"), FromInt64(0)} {
		_, err := x.Quo(zero)
		assert.ErrorIs(t, err, ErrDivisionByZero)
		_, err = x.Rem(zero)
		assert.ErrorIs(t, err, ErrDivisionByZero)
		_, _, err = x.QuoRem(zero)
		assert.True(t, errors.Is(err, ErrDivisionByZero))
	}
}
