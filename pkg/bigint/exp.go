package bigint

import (
	"github.com/pkg/errors"

	"github.com/mahdiidarabi/chonker/pkg/cryptoerr"
)

// ErrNegativeExponent is returned by Pow and ModPow for exponents below zero.
var ErrNegativeExponent = errors.New("bigint: negative exponent")

// Pow returns x**e by square-and-multiply. 0**0 is 1.
func (x BigInt) Pow(e BigInt) (BigInt, error) {
	if e.sign == SignNegative {
		return zero, errors.Wrapf(ErrNegativeExponent, "%s**%s", x, e)
	}
	result := one
	base := x
	for _, bit := range bits(e.digits) {
		if bit {
			result = result.Mul(base)
		}
		base = base.Mul(base)
	}
	return result, nil
}

// ModPow returns x**e mod |m|, in [0, |m|).
//
// Intermediate values are reduced after every multiplication and squaring, so they never
// exceed m². A zero modulus fails with cryptoerr.ErrDivisionByZero.
func (x BigInt) ModPow(e, m BigInt) (BigInt, error) {
	if m.sign == SignZero {
		return zero, errors.Wrapf(cryptoerr.ErrDivisionByZero, "bigint: %s**%s mod 0", x, e)
	}
	if e.sign == SignNegative {
		return zero, errors.Wrapf(ErrNegativeExponent, "%s**%s mod %s", x, e, m)
	}
	mod := m.digits
	if len(mod) == 1 && mod[0] == 1 {
		return zero, nil
	}

	base, err := x.Mod(m)
	if err != nil {
		return zero, err
	}
	result := []byte{1}
	b := base.digits
	exp := bits(e.digits)
	for i, bit := range exp {
		if bit {
			result = remAbs(mulAbs(result, b), mod)
		}
		if i < len(exp)-1 {
			b = remAbs(mulAbs(b, b), mod)
		}
	}
	return newBigInt(result, SignPositive), nil
}

// remAbs returns a mod m for digit magnitudes.
func remAbs(a, m []byte) []byte {
	if cmpAbs(a, m) < 0 {
		return a
	}
	_, r := divModAbs(a, m)
	return r
}

// bits returns the binary expansion of a digit magnitude, least significant bit first.
func bits(digits []byte) []bool {
	var out []bool
	cur := digits
	for len(cur) > 0 {
		var r uint64
		cur, r = divSmall(cur, 2)
		out = append(out, r == 1)
	}
	return out
}

// Sqrt returns the floor square root of x using Newton's iteration. Negative inputs fail with
// cryptoerr.ErrPolicyViolation.
func (x BigInt) Sqrt() (BigInt, error) {
	switch x.sign {
	case SignNegative:
		return zero, errors.Wrapf(cryptoerr.ErrPolicyViolation, "bigint: square root of %s", x)
	case SignZero:
		return zero, nil
	}
	// 10^ceil(len/2) is always at least sqrt(x).
	start := make([]byte, (len(x.digits)+1)/2+1)
	start[len(start)-1] = 1
	cur := newBigInt(start, SignPositive)
	for {
		q, _, err := x.QuoRem(cur)
		if err != nil {
			return zero, err
		}
		next, _ := divSmall(cur.Add(q).digits, 2)
		n := newBigInt(next, SignPositive)
		if !n.Less(cur) {
			return cur, nil
		}
		cur = n
	}
}
