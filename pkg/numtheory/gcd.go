package numtheory

import (
	"github.com/pkg/errors"

	"github.com/mahdiidarabi/chonker/pkg/bigint"
	"github.com/mahdiidarabi/chonker/pkg/cryptoerr"
)

// ErrNoInverse is returned by ModInverse when the value shares a factor with the modulus.
var ErrNoInverse = errors.New("numtheory: no modular inverse")

// GCD returns the non-negative greatest common divisor of a and b. GCD(0, 0) is 0.
func GCD(a, b bigint.BigInt) bigint.BigInt {
	a, b = a.Abs(), b.Abs()
	for !b.IsZero() {
		// b is non-zero, so Rem cannot fail.
		r, _ := a.Rem(b)
		a, b = b, r
	}
	return a
}

// EGCD runs the extended Euclidean algorithm.
//
// Returns:
//   - g: the non-negative gcd of a and b
//   - x, y: Bezout coefficients with a*x + b*y = g
func EGCD(a, b bigint.BigInt) (g, x, y bigint.BigInt) {
	oldR, r := a, b
	oldS, s := bigint.One(), bigint.Zero()
	oldT, t := bigint.Zero(), bigint.One()

	for !r.IsZero() {
		q, _ := oldR.Quo(r)
		oldR, r = r, oldR.Sub(q.Mul(r))
		oldS, s = s, oldS.Sub(q.Mul(s))
		oldT, t = t, oldT.Sub(q.Mul(t))
	}

	if oldR.Sign() == bigint.SignNegative {
		return oldR.Neg(), oldS.Neg(), oldT.Neg()
	}
	return oldR, oldS, oldT
}

// IsCoprime reports whether gcd(a, b) == 1.
func IsCoprime(a, b bigint.BigInt) bool {
	return GCD(a, b).Equal(bigint.One())
}

// ModInverse returns the x in [0, |m|) with a*x ≡ 1 (mod m).
//
// A zero modulus fails with cryptoerr.ErrDivisionByZero. When gcd(a, m) != 1 the error wraps
// ErrNoInverse.
func ModInverse(a, m bigint.BigInt) (bigint.BigInt, error) {
	if m.IsZero() {
		return bigint.Zero(), errors.Wrapf(cryptoerr.ErrDivisionByZero, "numtheory: inverse of %s mod 0", a)
	}
	g, x, _ := EGCD(a, m)
	if !g.Equal(bigint.One()) {
		return bigint.Zero(), errors.Wrapf(ErrNoInverse, "gcd(%s, %s) = %s", a, m, g)
	}
	return x.Mod(m)
}
