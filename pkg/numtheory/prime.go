package numtheory

import (
	"io"

	"github.com/pkg/errors"

	"github.com/mahdiidarabi/chonker/pkg/bigint"
	"github.com/mahdiidarabi/chonker/pkg/cryptoerr"
)

// smallPrimes filters candidates before Miller-Rabin.
var smallPrimes = []uint64{
	2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47, 53, 59, 61, 67, 71, 73, 79, 83, 89, 97,
	101, 103, 107, 109, 113, 127, 131, 137, 139, 149, 151, 157, 163, 167, 173, 179, 181, 191, 193, 197, 199,
}

// trialLimit is the largest value ProbablyPrime settles by exact trial division.
const trialLimit = 1_000_000

// IsPrime is a deterministic primality test by trial division over 6k±1 candidates.
//
// Its cost grows with the square root of n, so it is meant for values up to roughly 12 digits.
// Use ProbablyPrime for anything larger.
func IsPrime(n bigint.BigInt) bool {
	if v, ok := n.Uint64(); ok && n.Sign() != bigint.SignNegative {
		return isPrimeUint64(v)
	}
	if n.Sign() != bigint.SignPositive {
		return false
	}
	for _, p := range []int64{2, 3} {
		if r, _ := n.Rem(bigint.FromInt64(p)); r.IsZero() {
			return false
		}
	}
	six := bigint.FromInt64(6)
	for i := bigint.FromInt64(5); i.Mul(i).LessOrEqual(n); i = i.Add(six) {
		if r, _ := n.Rem(i); r.IsZero() {
			return false
		}
		if r, _ := n.Rem(i.Add(bigint.Two())); r.IsZero() {
			return false
		}
	}
	return true
}

func isPrimeUint64(n uint64) bool {
	switch {
	case n < 2:
		return false
	case n < 4:
		return true
	case n%2 == 0 || n%3 == 0:
		return false
	}
	for i := uint64(5); i <= n/i; i += 6 {
		if n%i == 0 || n%(i+2) == 0 {
			return false
		}
	}
	return true
}

// RoundsFor returns the Miller-Rabin round count used for a value with the given number of
// decimal digits. Shorter values get more rounds since they are cheap to test.
func RoundsFor(digits int) int {
	switch {
	case digits < 25:
		return 20
	case digits < 50:
		return 10
	case digits < 75:
		return 3
	default:
		return 1
	}
}

// ProbablyPrime reports whether n is prime, using Miller-Rabin with the given number of rounds
// and witnesses drawn from r.
//
// Values up to one million are decided exactly. Larger values are reported prime only after
// surviving every round, so a composite slips through with probability at most 4^-rounds.
func ProbablyPrime(r io.Reader, n bigint.BigInt, rounds int) (bool, error) {
	if n.Sign() != bigint.SignPositive {
		return false, nil
	}
	if v, ok := n.Uint64(); ok && v <= trialLimit {
		return isPrimeUint64(v), nil
	}
	for _, p := range smallPrimes {
		if rem, _ := n.Rem(bigint.FromUint64(p)); rem.IsZero() {
			return false, nil
		}
	}
	if rounds < 1 {
		rounds = 1
	}

	// n-1 = d * 2^s with d odd.
	nMinusOne := n.Sub(bigint.One())
	d, s := nMinusOne, 0
	for d.IsEven() {
		d, _ = d.Quo(bigint.Two())
		s++
	}

	lo, hi := bigint.Two(), n.Sub(bigint.Two())
	for i := 0; i < rounds; i++ {
		a, err := bigint.RandomRange(r, lo, hi)
		if err != nil {
			return false, errors.Wrap(err, "numtheory: drawing witness")
		}
		composite, err := isWitness(a, d, s, n, nMinusOne)
		if err != nil {
			return false, err
		}
		if composite {
			return false, nil
		}
	}
	return true, nil
}

// isWitness reports whether a proves n composite.
func isWitness(a, d bigint.BigInt, s int, n, nMinusOne bigint.BigInt) (bool, error) {
	x, err := a.ModPow(d, n)
	if err != nil {
		return false, err
	}
	if x.Equal(bigint.One()) || x.Equal(nMinusOne) {
		return false, nil
	}
	for j := 1; j < s; j++ {
		if x, err = x.ModPow(bigint.Two(), n); err != nil {
			return false, err
		}
		if x.Equal(nMinusOne) {
			return false, nil
		}
	}
	return true, nil
}

// RandomPrime returns a probable prime with exactly the given number of digits.
func RandomPrime(r io.Reader, digits int) (bigint.BigInt, error) {
	if digits < 1 {
		return bigint.Zero(), errors.Wrapf(cryptoerr.ErrPolicyViolation, "numtheory: %d-digit prime", digits)
	}
	if digits == 1 {
		// RandomOdd never yields 2 and only half of the one-digit odds are prime.
		i, err := bigint.RandomRange(r, bigint.Zero(), bigint.FromInt64(3))
		if err != nil {
			return bigint.Zero(), err
		}
		v, _ := i.Int64()
		return bigint.FromInt64([]int64{2, 3, 5, 7}[v]), nil
	}

	rounds := RoundsFor(digits)
	for {
		candidate, err := bigint.RandomOdd(r, digits)
		if err != nil {
			return bigint.Zero(), err
		}
		ok, err := ProbablyPrime(r, candidate, rounds)
		if err != nil {
			return bigint.Zero(), err
		}
		if ok {
			return candidate, nil
		}
	}
}

// RandomCoprime returns a value in [2, m-1] coprime with m. m must be greater than 2.
func RandomCoprime(r io.Reader, m bigint.BigInt) (bigint.BigInt, error) {
	if m.LessOrEqual(bigint.Two()) {
		return bigint.Zero(), errors.Wrapf(cryptoerr.ErrPolicyViolation, "numtheory: no coprime in [2, %s)", m)
	}
	hi := m.Sub(bigint.One())
	for {
		c, err := bigint.RandomRange(r, bigint.Two(), hi)
		if err != nil {
			return bigint.Zero(), err
		}
		if IsCoprime(c, m) {
			return c, nil
		}
	}
}
