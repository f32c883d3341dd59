package bigint

// Cmp compares x and y and returns -1, 0 or +1.
func (x BigInt) Cmp(y BigInt) int {
	if x.sign != y.sign {
		if x.sign < y.sign {
			return -1
		}
		return 1
	}
	c := cmpAbs(x.digits, y.digits)
	if x.sign == SignNegative {
		return -c
	}
	return c
}

// CmpAbs compares |x| and |y| and returns -1, 0 or +1.
func (x BigInt) CmpAbs(y BigInt) int {
	return cmpAbs(x.digits, y.digits)
}

// Equal reports whether x == y.
func (x BigInt) Equal(y BigInt) bool { return x.Cmp(y) == 0 }

// Less reports whether x < y.
func (x BigInt) Less(y BigInt) bool { return x.Cmp(y) < 0 }

// LessOrEqual reports whether x <= y.
func (x BigInt) LessOrEqual(y BigInt) bool { return x.Cmp(y) <= 0 }

// Greater reports whether x > y.
func (x BigInt) Greater(y BigInt) bool { return x.Cmp(y) > 0 }

// GreaterOrEqual reports whether x >= y.
func (x BigInt) GreaterOrEqual(y BigInt) bool { return x.Cmp(y) >= 0 }

func cmpAbs(a, b []byte) int {
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
