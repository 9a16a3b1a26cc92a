package bigint

// addMag returns |a| + |b| as a fresh digit slice.
func addMag(a, b []uint8) []uint8 {
	if len(a) < len(b) {
		a, b = b, a
	}
	z := make([]uint8, len(a)+1)
	var carry uint8
	for i := range a {
		s := a[i] + carry
		if i < len(b) {
			s += b[i]
		}
		carry = s / 10
		z[i] = s % 10
	}
	z[len(a)] = carry
	return trim(z)
}

// subMag returns |a| - |b| as a fresh digit slice. It requires |a| >= |b|.
func subMag(a, b []uint8) []uint8 {
	z := make([]uint8, len(a))
	var borrow int8
	for i := range a {
		d := int8(a[i]) - borrow
		if i < len(b) {
			d -= int8(b[i])
		}
		borrow = 0
		if d < 0 {
			d += 10
			borrow = 1
		}
		z[i] = uint8(d)
	}
	if borrow != 0 {
		panic("bigint: subMag called with |a| < |b|")
	}
	return trim(z)
}

// combine is the single sign rule behind addition and subtraction. It
// computes x + y when negateY is false and x - y otherwise:
//
//	effective signs equal   -> |x| + |y|, sign of x
//	|x| > |y|               -> |x| - |y|, sign of x
//	|x| < |y|               -> |y| - |x|, effective sign of y
//	|x| == |y|              -> canonical zero
func combine(x, y Int, negateY bool) Int {
	xm, ym := x.mag(), y.mag()
	yneg := y.neg != negateY
	if x.neg == yneg {
		return Int{neg: x.neg, digits: addMag(xm, ym)}.norm()
	}
	switch cmpMag(xm, ym) {
	case 1:
		return Int{neg: x.neg, digits: subMag(xm, ym)}.norm()
	case -1:
		return Int{neg: yneg, digits: subMag(ym, xm)}.norm()
	default:
		return zero
	}
}

// Add returns x + y.
func (x Int) Add(y Int) Int {
	return combine(x, y, false)
}

// Sub returns x - y.
func (x Int) Sub(y Int) Int {
	return combine(x, y, true)
}

// AddAssign sets z to z + y.
func (z *Int) AddAssign(y Int) {
	*z = z.Add(y)
}

// SubAssign sets z to z - y.
func (z *Int) SubAssign(y Int) {
	*z = z.Sub(y)
}

// Inc increments z and returns the new value, like a prefix ++.
func (z *Int) Inc() Int {
	*z = z.Add(one)
	return *z
}

// PostInc increments z and returns the value it held before, like a
// postfix ++.
func (z *Int) PostInc() Int {
	old := *z
	*z = z.Add(one)
	return old
}

// Dec decrements z and returns the new value, like a prefix --.
func (z *Int) Dec() Int {
	*z = z.Sub(one)
	return *z
}

// PostDec decrements z and returns the value it held before, like a
// postfix --.
func (z *Int) PostDec() Int {
	old := *z
	*z = z.Sub(one)
	return old
}
