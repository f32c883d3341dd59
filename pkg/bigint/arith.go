package bigint

// Add returns x + y.
func (x BigInt) Add(y BigInt) BigInt {
	switch {
	case x.sign == SignZero:
		return y
	case y.sign == SignZero:
		return x
	case x.sign == y.sign:
		return newBigInt(addAbs(x.digits, y.digits), x.sign)
	}

	// Opposite signs: the larger magnitude decides the sign.
	switch cmpAbs(x.digits, y.digits) {
	case 0:
		return zero
	case 1:
		return newBigInt(subAbs(x.digits, y.digits), x.sign)
	default:
		return newBigInt(subAbs(y.digits, x.digits), y.sign)
	}
}

// Sub returns x - y.
func (x BigInt) Sub(y BigInt) BigInt {
	return x.Add(y.Neg())
}

// Mul returns x * y.
func (x BigInt) Mul(y BigInt) BigInt {
	if x.sign == SignZero || y.sign == SignZero {
		return zero
	}
	return newBigInt(mulAbs(x.digits, y.digits), x.sign*y.sign)
}

// addAbs returns a + b for digit magnitudes.
func addAbs(a, b []byte) []byte {
	if len(a) < len(b) {
		a, b = b, a
	}
	out := make([]byte, len(a)+1)
	var carry byte
	for i := range a {
		s := a[i] + carry
		if i < len(b) {
			s += b[i]
		}
		out[i] = s % 10
		carry = s / 10
	}
	out[len(a)] = carry
	return trim(out)
}

// subAbs returns a - b for digit magnitudes; |a| >= |b| is required.
func subAbs(a, b []byte) []byte {
	out := make([]byte, len(a))
	var borrow int8
	for i := range a {
		d := int8(a[i]) - borrow
		if i < len(b) {
			d -= int8(b[i])
		}
		if d < 0 {
			d += 10
			borrow = 1
		} else {
			borrow = 0
		}
		out[i] = byte(d)
	}
	return trim(out)
}

// mulAbs is schoolbook multiplication of digit magnitudes.
func mulAbs(a, b []byte) []byte {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	acc := make([]uint64, len(a)+len(b))
	for i, da := range a {
		if da == 0 {
			continue
		}
		for j, db := range b {
			acc[i+j] += uint64(da) * uint64(db)
		}
	}

	out := make([]byte, len(acc))
	var carry uint64
	for i, v := range acc {
		v += carry
		out[i] = byte(v % 10)
		carry = v / 10
	}
	return trim(out)
}

// mulSmall returns a * m for a native factor m.
func mulSmall(a []byte, m uint64) []byte {
	if m == 0 || len(a) == 0 {
		return nil
	}
	out := make([]byte, 0, len(a)+20)
	var carry uint64
	for _, d := range a {
		v := uint64(d)*m + carry
		out = append(out, byte(v%10))
		carry = v / 10
	}
	for carry > 0 {
		out = append(out, byte(carry%10))
		carry /= 10
	}
	return trim(out)
}

// addSmall returns a + v for a native addend v.
func addSmall(a []byte, v uint64) []byte {
	out := make([]byte, 0, len(a)+20)
	carry := v
	for _, d := range a {
		s := uint64(d) + carry
		out = append(out, byte(s%10))
		carry = s / 10
	}
	for carry > 0 {
		out = append(out, byte(carry%10))
		carry /= 10
	}
	return trim(out)
}
