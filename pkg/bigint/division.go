package bigint

import (
	"github.com/pkg/errors"

	"github.com/mahdiidarabi/chonker/pkg/cryptoerr"
)

// maxEstimateDigits is how many leading divisor digits feed the native quotient estimate.
// Together with one extra dividend digit the estimate stays below 10^18 and fits a uint64.
const maxEstimateDigits = 17

// QuoRem returns the truncated quotient and remainder of x / y:
// q = x/y rounded toward zero and r = x - q*y, so r has the sign of x.
func (x BigInt) QuoRem(y BigInt) (q, r BigInt, err error) {
	if y.sign == SignZero {
		return zero, zero, errors.Wrapf(cryptoerr.ErrDivisionByZero, "bigint: %s / 0", x)
	}
	qd, rd := divModAbs(x.digits, y.digits)
	return newBigInt(qd, x.sign*y.sign), newBigInt(rd, x.sign), nil
}

// Quo returns x / y truncated toward zero.
func (x BigInt) Quo(y BigInt) (BigInt, error) {
	q, _, err := x.QuoRem(y)
	return q, err
}

// Rem returns the truncated remainder x - y*Quo(x, y).
func (x BigInt) Rem(y BigInt) (BigInt, error) {
	_, r, err := x.QuoRem(y)
	return r, err
}

// DivMod implements Euclidean division: x = q*y + m with 0 <= m < |y|.
func (x BigInt) DivMod(y BigInt) (q, m BigInt, err error) {
	q, m, err = x.QuoRem(y)
	if err != nil {
		return zero, zero, err
	}
	if m.sign == SignNegative {
		if y.sign == SignPositive {
			q = q.Sub(one)
			m = m.Add(y)
		} else {
			q = q.Add(one)
			m = m.Sub(y)
		}
	}
	return q, m, nil
}

// Div returns the Euclidean quotient of x / y.
func (x BigInt) Div(y BigInt) (BigInt, error) {
	q, _, err := x.DivMod(y)
	return q, err
}

// Mod returns the Euclidean modulus of x by y. The result is always in [0, |y|).
func (x BigInt) Mod(y BigInt) (BigInt, error) {
	_, m, err := x.DivMod(y)
	return m, err
}

// divModAbs divides digit magnitudes, b non-empty: a = q*b + r with 0 <= r < b.
//
// Long division produces one quotient digit per dividend digit. Each digit is estimated
// with a single native division of the leading digits of the running remainder by the
// leading digits of b; the estimate is never too small and at most one too large, and
// the correction loop walks it down.
func divModAbs(a, b []byte) (q, r []byte) {
	if cmpAbs(a, b) < 0 {
		r = make([]byte, len(a))
		copy(r, a)
		return nil, r
	}
	if len(b) == 1 {
		qd, rem := divSmall(a, uint64(b[0]))
		return qd, trim([]byte{byte(rem)})
	}

	k := len(b)
	if k > maxEstimateDigits {
		k = maxEstimateDigits
	}
	bTop := leadingValue(b, k)

	q = make([]byte, len(a))
	var rem []byte
	for i := len(a) - 1; i >= 0; i-- {
		rem = shiftIn(rem, a[i])
		if cmpAbs(rem, b) < 0 {
			continue
		}

		// rem < 10*b, so it has len(b) or len(b)+1 digits.
		rTop := leadingValue(rem, k+len(rem)-len(b))
		d := rTop / bTop
		if d > 9 {
			d = 9
		}
		prod := mulSmall(b, d)
		for cmpAbs(prod, rem) > 0 {
			d--
			prod = subAbs(prod, b)
		}
		rem = subAbs(rem, prod)
		q[i] = byte(d)
	}
	return trim(q), rem
}

// divSmall divides a digit magnitude by a native divisor d > 0.
func divSmall(a []byte, d uint64) (q []byte, r uint64) {
	q = make([]byte, len(a))
	for i := len(a) - 1; i >= 0; i-- {
		cur := r*10 + uint64(a[i])
		q[i] = byte(cur / d)
		r = cur % d
	}
	return trim(q), r
}

// shiftIn returns rem*10 + digit.
func shiftIn(rem []byte, digit byte) []byte {
	if len(rem) == 0 && digit == 0 {
		return nil
	}
	out := make([]byte, len(rem)+1)
	out[0] = digit
	copy(out[1:], rem)
	return out
}

// leadingValue returns the value of the count most significant digits of a.
func leadingValue(a []byte, count int) uint64 {
	var v uint64
	for i := len(a) - 1; i >= len(a)-count && i >= 0; i-- {
		v = v*10 + uint64(a[i])
	}
	return v
}
