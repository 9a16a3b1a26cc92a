package bigint

import (
	"context"
	"math/bits"

	"golang.org/x/sync/errgroup"
)

// cancelCheckLength is the smallest Karatsuba subproblem at which the
// context is polled. Smaller subproblems finish in microseconds.
const cancelCheckLength = 256

// Mul returns x * y using DefaultOptions.
func (x Int) Mul(y Int) Int {
	return x.MulWith(y, DefaultOptions())
}

// MulWith returns x * y using the given tuning options.
func (x Int) MulWith(y Int, opts Options) Int {
	z, _ := x.MulContext(context.Background(), y, opts)
	return z
}

// MulContext is like MulWith but stops early and returns ctx.Err() once
// ctx is done.
func (x Int) MulContext(ctx context.Context, y Int, opts Options) (Int, error) {
	if x.IsZero() || y.IsZero() {
		return zero, nil
	}
	d, err := mulMag(ctx, x.mag(), y.mag(), opts.normalized())
	if err != nil {
		return Int{}, err
	}
	return Int{neg: x.neg != y.neg, digits: d}.norm(), nil
}

// mulMag returns |a| * |b|. Operands whose padded length exceeds
// opts.maxRawDigits are split in halves and recombined with carried
// arithmetic, so raw coefficients never outgrow int64.
func mulMag(ctx context.Context, a, b []uint8, opts Options) ([]uint8, error) {
	n := max(len(a), len(b))
	if n > 1 {
		n = 1 << bits.Len(uint(n-1))
	}
	if n <= opts.maxRawDigits {
		ca := padCoeffs(a, n)
		cb := padCoeffs(b, n)
		raw := karatsuba(ctx, ca, cb, opts)
		releaseCoeffs(ca)
		releaseCoeffs(cb)
		if raw == nil {
			return nil, ctx.Err()
		}
		return carryNormalize(raw), nil
	}

	k := max(len(a), len(b)) / 2
	a0, a1 := splitMag(a, k)
	b0, b1 := splitMag(b, k)
	z0, err := mulMag(ctx, a0, b0, opts)
	if err != nil {
		return nil, err
	}
	z2, err := mulMag(ctx, a1, b1, opts)
	if err != nil {
		return nil, err
	}
	z1, err := mulMag(ctx, addMag(a0, a1), addMag(b0, b1), opts)
	if err != nil {
		return nil, err
	}
	z1 = subMag(subMag(z1, z0), z2)
	return addMag(addMag(z0, shiftMag(z1, k)), shiftMag(z2, 2*k)), nil
}

// splitMag returns the low k digits and the remaining high digits of d.
func splitMag(d []uint8, k int) (lo, hi []uint8) {
	if len(d) <= k {
		return trim(d), zeroDigits
	}
	return trim(d[:k]), trim(d[k:])
}

// shiftMag returns d * 10^k.
func shiftMag(d []uint8, k int) []uint8 {
	if len(d) == 1 && d[0] == 0 {
		return d
	}
	z := make([]uint8, k+len(d))
	copy(z[k:], d)
	return z
}

// MulAssign sets z to z * y.
func (z *Int) MulAssign(y Int) {
	*z = z.Mul(y)
}

// padCoeffs widens the digits d into a coefficient slice of length n,
// zero-filled beyond len(d).
func padCoeffs(d []uint8, n int) []int64 {
	c := acquireCoeffs(n)
	for i, v := range d {
		c[i] = int64(v)
	}
	return c
}

// karatsuba returns the raw coefficient product of a and b. Both inputs
// have the same power-of-two length n and may hold any non-negative
// coefficients; the result has length 2n and is not carried. It returns
// nil if ctx is done before the product is complete.
func karatsuba(ctx context.Context, a, b []int64, opts Options) []int64 {
	n := len(a)
	if n >= cancelCheckLength && ctx.Err() != nil {
		return nil
	}
	res := make([]int64, 2*n)

	if n < opts.KaratsubaThreshold || n == 1 {
		for i, x := range a {
			if i%cancelCheckLength == cancelCheckLength-1 && ctx.Err() != nil {
				return nil
			}
			if x == 0 {
				continue
			}
			for j, y := range b {
				res[i+j] += x * y
			}
		}
		return res
	}

	h := n / 2
	a0, a1 := a[:h], a[h:]
	b0, b1 := b[:h], b[h:]

	sa := acquireCoeffs(h)
	sb := acquireCoeffs(h)
	for i := 0; i < h; i++ {
		sa[i] = a0[i] + a1[i]
		sb[i] = b0[i] + b1[i]
	}

	var p0, p1, pm []int64
	if opts.ParallelThreshold > 0 && n >= opts.ParallelThreshold {
		var g errgroup.Group
		g.Go(func() error {
			p0 = karatsuba(ctx, a0, b0, opts)
			return nil
		})
		g.Go(func() error {
			p1 = karatsuba(ctx, a1, b1, opts)
			return nil
		})
		pm = karatsuba(ctx, sa, sb, opts)
		_ = g.Wait()
	} else {
		p0 = karatsuba(ctx, a0, b0, opts)
		p1 = karatsuba(ctx, a1, b1, opts)
		pm = karatsuba(ctx, sa, sb, opts)
	}
	releaseCoeffs(sa)
	releaseCoeffs(sb)
	if p0 == nil || p1 == nil || pm == nil {
		return nil
	}

	// res = p0 + (pm - p0 - p1)*10^h + p1*10^n
	copy(res[:n], p0)
	copy(res[n:], p1)
	for i := 0; i < n; i++ {
		res[h+i] += pm[i] - p0[i] - p1[i]
	}
	return res
}

// carryNormalize converts raw coefficients into decimal digits, carrying
// from the least significant position upward. Coefficients may be negative;
// the value they represent must not be.
func carryNormalize(raw []int64) []uint8 {
	digits := make([]uint8, 0, len(raw)+1)
	var carry int64
	for _, c := range raw {
		v := c + carry
		carry = v / 10
		d := v % 10
		if d < 0 {
			d += 10
			carry--
		}
		digits = append(digits, uint8(d))
	}
	for carry > 0 {
		digits = append(digits, uint8(carry%10))
		carry /= 10
	}
	if carry < 0 {
		panic("bigint: negative raw product")
	}
	return trim(digits)
}
