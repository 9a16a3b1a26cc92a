package bigint

import "context"

// quoMag returns the truncated quotient |a| / |b|. b must be non-zero. ctx
// is polled once per quotient digit.
func quoMag(ctx context.Context, a, b []uint8) ([]uint8, error) {
	a, b = trim(a), trim(b)
	if cmpMag(a, b) < 0 {
		return zeroDigits, nil
	}
	if len(b) == 1 && b[0] == 1 {
		return a, nil
	}

	q := make([]uint8, len(a))
	rem := zeroDigits
	for i := len(a) - 1; i >= 0; i-- {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rem = shiftIn(rem, a[i])
		if cmpMag(rem, b) < 0 {
			continue
		}
		var d uint8
		prod := zeroDigits
		for d < 9 {
			next := addMag(prod, b)
			if cmpMag(next, rem) > 0 {
				break
			}
			prod = next
			d++
		}
		rem = subMag(rem, prod)
		q[i] = d
	}
	return trim(q), nil
}

// shiftIn returns rem*10 + d.
func shiftIn(rem []uint8, d uint8) []uint8 {
	if len(rem) == 1 && rem[0] == 0 {
		return []uint8{d}
	}
	z := make([]uint8, len(rem)+1)
	z[0] = d
	copy(z[1:], rem)
	return z
}

// Quo returns the quotient x / y truncated toward zero. It returns
// ErrDivisionByZero if y is zero.
func (x Int) Quo(y Int) (Int, error) {
	return x.QuoContext(context.Background(), y)
}

// QuoContext is like Quo but stops early and returns ctx.Err() once ctx is
// done.
func (x Int) QuoContext(ctx context.Context, y Int) (Int, error) {
	if y.IsZero() {
		return Int{}, ErrDivisionByZero
	}
	d, err := quoMag(ctx, x.mag(), y.mag())
	if err != nil {
		return Int{}, err
	}
	return Int{neg: x.neg != y.neg, digits: d}.norm(), nil
}

// Rem returns x - (x/y)*y. A non-zero remainder has the sign of x. It
// returns ErrDivisionByZero if y is zero.
func (x Int) Rem(y Int) (Int, error) {
	return x.RemWith(y, DefaultOptions())
}

// RemWith is like Rem but multiplies back with the given options.
func (x Int) RemWith(y Int, opts Options) (Int, error) {
	_, r, err := x.QuoRemWith(y, opts)
	return r, err
}

// QuoRem returns both x / y and x % y with the semantics of Quo and Rem.
func (x Int) QuoRem(y Int) (q, r Int, err error) {
	return x.QuoRemWith(y, DefaultOptions())
}

// QuoRemWith is like QuoRem but multiplies back with the given options.
func (x Int) QuoRemWith(y Int, opts Options) (q, r Int, err error) {
	return x.QuoRemContext(context.Background(), y, opts)
}

// QuoRemContext is like QuoRemWith but stops early and returns ctx.Err()
// once ctx is done.
func (x Int) QuoRemContext(ctx context.Context, y Int, opts Options) (q, r Int, err error) {
	if q, err = x.QuoContext(ctx, y); err != nil {
		return Int{}, Int{}, err
	}
	p, err := q.MulContext(ctx, y, opts)
	if err != nil {
		return Int{}, Int{}, err
	}
	return q, x.Sub(p), nil
}

// QuoAssign sets z to z / y. On error z is left unchanged.
func (z *Int) QuoAssign(y Int) error {
	q, err := z.Quo(y)
	if err != nil {
		return err
	}
	*z = q
	return nil
}

// RemAssign sets z to z % y. On error z is left unchanged.
func (z *Int) RemAssign(y Int) error {
	r, err := z.Rem(y)
	if err != nil {
		return err
	}
	*z = r
	return nil
}
