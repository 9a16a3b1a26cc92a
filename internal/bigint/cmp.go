package bigint

// cmpMag compares |a| and |b| and returns -1, 0 or +1. Both slices may carry
// most-significant zeros; they are ignored.
func cmpMag(a, b []uint8) int {
	a, b = trim(a), trim(b)
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	for i := len(a) - 1; i >= 0; i-- {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// Cmp compares x and y and returns:
//
//	-1 if x <  y
//	 0 if x == y
//	+1 if x >  y
func (x Int) Cmp(y Int) int {
	xneg := x.neg && !x.IsZero()
	yneg := y.neg && !y.IsZero()
	switch {
	case xneg && !yneg:
		return -1
	case !xneg && yneg:
		return 1
	case xneg:
		return cmpMag(y.mag(), x.mag())
	default:
		return cmpMag(x.mag(), y.mag())
	}
}

// Equal reports whether x == y.
func (x Int) Equal(y Int) bool { return x.Cmp(y) == 0 }

// NotEqual reports whether x != y.
func (x Int) NotEqual(y Int) bool { return x.Cmp(y) != 0 }

// Less reports whether x < y.
func (x Int) Less(y Int) bool { return x.Cmp(y) < 0 }

// LessEqual reports whether x <= y.
func (x Int) LessEqual(y Int) bool { return x.Cmp(y) <= 0 }

// Greater reports whether x > y.
func (x Int) Greater(y Int) bool { return x.Cmp(y) > 0 }

// GreaterEqual reports whether x >= y.
func (x Int) GreaterEqual(y Int) bool { return x.Cmp(y) >= 0 }
