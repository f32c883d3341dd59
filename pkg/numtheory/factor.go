package numtheory

import (
	"io"
	"sort"

	"github.com/pkg/errors"

	"github.com/mahdiidarabi/chonker/pkg/bigint"
	"github.com/mahdiidarabi/chonker/pkg/cryptoerr"
)

// TrialDivision returns the smallest divisor of n in [lo, hi]. Candidates above sqrt(n) are
// never tried, and the search fails with cryptoerr.ErrNotFactorable when none divides n.
func TrialDivision(n, lo, hi bigint.BigInt) (bigint.BigInt, error) {
	n = n.Abs()
	if lo.Less(bigint.Two()) {
		lo = bigint.Two()
	}
	if root, err := n.Sqrt(); err == nil && root.Less(hi) {
		hi = root
	}

	if nv, ok := n.Uint64(); ok {
		l, _ := lo.Uint64()
		h, _ := hi.Uint64()
		for c := l; c <= h && c != 0; c++ {
			if nv%c == 0 {
				return bigint.FromUint64(c), nil
			}
		}
	} else {
		for c := lo; c.LessOrEqual(hi); c = c.Add(bigint.One()) {
			if r, _ := n.Rem(c); r.IsZero() {
				return c, nil
			}
		}
	}
	return bigint.Zero(), errors.Wrapf(cryptoerr.ErrNotFactorable, "numtheory: no divisor of %s in [%s, %s]", n, lo, hi)
}

// PrimeFactors returns the prime factorization of n in ascending order, with multiplicity.
// PrimeFactors(1) is empty. n must be positive.
func PrimeFactors(n bigint.BigInt) ([]bigint.BigInt, error) {
	if n.Sign() != bigint.SignPositive {
		return nil, errors.Wrapf(cryptoerr.ErrPolicyViolation, "numtheory: factoring %s", n)
	}
	if v, ok := n.Uint64(); ok {
		return primeFactorsUint64(v), nil
	}

	var out []bigint.BigInt
	rest := n
	for c := bigint.Two(); c.Mul(c).LessOrEqual(rest); {
		q, r, _ := rest.QuoRem(c)
		if r.IsZero() {
			out = append(out, c)
			rest = q
			continue
		}
		if c.Equal(bigint.Two()) {
			c = bigint.FromInt64(3)
		} else {
			c = c.Add(bigint.Two())
		}
	}
	if rest.Greater(bigint.One()) {
		out = append(out, rest)
	}
	return out, nil
}

func primeFactorsUint64(n uint64) []bigint.BigInt {
	var out []bigint.BigInt
	for n%2 == 0 {
		out = append(out, bigint.Two())
		n /= 2
	}
	for c := uint64(3); c <= n/c; c += 2 {
		for n%c == 0 {
			out = append(out, bigint.FromUint64(c))
			n /= c
		}
	}
	if n > 1 {
		out = append(out, bigint.FromUint64(n))
	}
	return out
}

// distinct drops repeated entries from an ascending factor list.
func distinct(factors []bigint.BigInt) []bigint.BigInt {
	var out []bigint.BigInt
	for _, f := range factors {
		if len(out) == 0 || !out[len(out)-1].Equal(f) {
			out = append(out, f)
		}
	}
	return out
}

// Divisors returns every positive divisor of n in ascending order, including 1 and n.
func Divisors(n bigint.BigInt) ([]bigint.BigInt, error) {
	factors, err := PrimeFactors(n)
	if err != nil {
		return nil, err
	}
	out := []bigint.BigInt{bigint.One()}
	for i := 0; i < len(factors); {
		p := factors[i]
		count := 0
		for i < len(factors) && factors[i].Equal(p) {
			count++
			i++
		}
		existing := len(out)
		pow := bigint.One()
		for k := 0; k < count; k++ {
			pow = pow.Mul(p)
			for _, d := range out[:existing] {
				out = append(out, d.Mul(pow))
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out, nil
}

// IsPrimitiveRoot reports whether g generates the multiplicative group modulo the prime p.
//
// g is a primitive root exactly when g^((p-1)/q) != 1 (mod p) for every prime q dividing p-1.
// p-1 is factored by trial division, so p should stay within about 20 digits.
func IsPrimitiveRoot(g, p bigint.BigInt) (bool, error) {
	if p.Less(bigint.Two()) {
		return false, errors.Wrapf(cryptoerr.ErrPolicyViolation, "numtheory: %s is not a prime modulus", p)
	}
	pMinusOne := p.Sub(bigint.One())
	factors, err := PrimeFactors(pMinusOne)
	if err != nil {
		return false, err
	}
	return isPrimitiveRoot(g, p, distinct(factors))
}

func isPrimitiveRoot(g, p bigint.BigInt, primeFactors []bigint.BigInt) (bool, error) {
	pMinusOne := p.Sub(bigint.One())
	if g.Less(bigint.One()) || g.Greater(pMinusOne) {
		return false, nil
	}
	for _, q := range primeFactors {
		e, err := pMinusOne.Quo(q)
		if err != nil {
			return false, err
		}
		v, err := g.ModPow(e, p)
		if err != nil {
			return false, err
		}
		if v.Equal(bigint.One()) {
			return false, nil
		}
	}
	return true, nil
}

// PrimitiveRoot returns a uniformly chosen primitive root of the prime p.
func PrimitiveRoot(r io.Reader, p bigint.BigInt) (bigint.BigInt, error) {
	switch {
	case p.Less(bigint.Two()):
		return bigint.Zero(), errors.Wrapf(cryptoerr.ErrPolicyViolation, "numtheory: %s is not a prime modulus", p)
	case p.Equal(bigint.Two()):
		return bigint.One(), nil
	case p.Equal(bigint.FromInt64(3)):
		return bigint.Two(), nil
	}

	factors, err := PrimeFactors(p.Sub(bigint.One()))
	if err != nil {
		return bigint.Zero(), err
	}
	factors = distinct(factors)
	hi := p.Sub(bigint.Two())
	for {
		g, err := bigint.RandomRange(r, bigint.Two(), hi)
		if err != nil {
			return bigint.Zero(), err
		}
		ok, err := isPrimitiveRoot(g, p, factors)
		if err != nil {
			return bigint.Zero(), err
		}
		if ok {
			return g, nil
		}
	}
}
