package bruteforce

import (
	"context"
	"sync/atomic"

	"github.com/pkg/errors"

	"github.com/mahdiidarabi/chonker/pkg/bigint"
	"github.com/mahdiidarabi/chonker/pkg/cryptoerr"
	"github.com/mahdiidarabi/chonker/pkg/numtheory"
)

const (
	// DefaultWorkers is the worker count used when none is configured.
	DefaultWorkers = 8
	// MaxWorkers bounds the worker pool.
	MaxWorkers = 64
	// DefaultMaxModulusDigits is the longest modulus trial division is attempted on.
	DefaultMaxModulusDigits = 10
)

// minModulus is the smallest value with a non-trivial factorization.
var minModulus = bigint.FromInt64(4)

// Range is an inclusive interval of candidate divisors.
type Range struct {
	Lo bigint.BigInt
	Hi bigint.BigInt
}

// Size returns the number of integers in the range, or zero when it is empty.
func (r Range) Size() bigint.BigInt {
	if r.Hi.Less(r.Lo) {
		return bigint.Zero()
	}
	return r.Hi.Sub(r.Lo).Add(bigint.One())
}

// Result contains the factor pair found by a search
type Result struct {
	P      bigint.BigInt
	Q      bigint.BigInt
	Worker int
	Tested int64
	RunID  string
}

// ValidateModulus enforces the search policy: n must be at least 4 and have at most maxDigits
// digits.
func ValidateModulus(n bigint.BigInt, maxDigits int) error {
	if maxDigits <= 0 {
		maxDigits = DefaultMaxModulusDigits
	}
	if n.Less(minModulus) {
		return errors.Wrapf(cryptoerr.ErrPolicyViolation, "bruteforce: modulus %s is below %s", n, minModulus)
	}
	if n.Len() > maxDigits {
		return errors.Wrapf(cryptoerr.ErrPolicyViolation,
			"bruteforce: modulus has %d digits, trial division is limited to %d", n.Len(), maxDigits)
	}
	return nil
}

// SearchRange returns the candidate range for n.
//
// With k = ceil(len(n)/2) the smaller factor of a balanced two-prime product lies in
// [10^(k-1), 10^k - 1]. The range is clipped to [2, n-1].
func SearchRange(n bigint.BigInt) Range {
	k := (n.Len() + 1) / 2
	ten := bigint.FromInt64(10)
	lo, _ := ten.Pow(bigint.FromInt64(int64(k - 1)))
	hi, _ := ten.Pow(bigint.FromInt64(int64(k)))
	hi = hi.Sub(bigint.One())

	if lo.Less(bigint.Two()) {
		lo = bigint.Two()
	}
	if upper := n.Sub(bigint.One()); hi.Greater(upper) {
		hi = upper
	}
	return Range{Lo: lo, Hi: hi}
}

// Partition splits r into at most parts contiguous sub-ranges of equal width. The first
// size%parts sub-ranges take one extra candidate. Fewer sub-ranges are returned when r is
// smaller than parts.
func Partition(r Range, parts int) []Range {
	size := r.Size()
	if size.IsZero() || parts < 1 {
		return nil
	}
	if p := bigint.FromInt64(int64(parts)); size.Less(p) {
		n, _ := size.Int64()
		parts = int(n)
	}

	width, extra, _ := size.QuoRem(bigint.FromInt64(int64(parts)))
	extraCount, _ := extra.Int64()

	out := make([]Range, 0, parts)
	lo := r.Lo
	for i := 0; i < parts; i++ {
		w := width
		if int64(i) < extraCount {
			w = w.Add(bigint.One())
		}
		hi := lo.Add(w).Sub(bigint.One())
		out = append(out, Range{Lo: lo, Hi: hi})
		lo = hi.Add(bigint.One())
	}
	return out
}

// ScanRange tests odd candidates in r, and 2 when r contains it, as divisors of n.
//
// Args:
//   - n: the modulus
//   - r: candidate range
//   - stop: optional flag checked before every candidate
//   - progress: optional hook called with the number of candidates tested so far
//
// Returns:
//   - The first divisor found, the number of candidates tested, and whether a divisor was
//     found before the range ran out or stop was set
func ScanRange(n bigint.BigInt, r Range, stop *atomic.Bool, progress func(tested int64)) (bigint.BigInt, int64, bool) {
	var tested int64
	c := r.Lo
	if c.Equal(bigint.Two()) && c.LessOrEqual(r.Hi) {
		tested++
		if n.IsEven() {
			return c, tested, true
		}
		c = bigint.FromInt64(3)
	}
	if c.IsEven() {
		c = c.Add(bigint.One())
	}

	for ; c.LessOrEqual(r.Hi); c = c.Add(bigint.Two()) {
		if stop != nil && stop.Load() {
			return bigint.Zero(), tested, false
		}
		tested++
		// c >= 3, so Rem cannot fail.
		if rem, _ := n.Rem(c); rem.IsZero() {
			return c, tested, true
		}
		if progress != nil {
			progress(tested)
		}
	}
	return bigint.Zero(), tested, false
}

// checkFactors turns a divisor into a factor pair, rejecting moduli with more than two prime
// factors.
func checkFactors(n, p bigint.BigInt) (bigint.BigInt, bigint.BigInt, error) {
	q, err := n.Quo(p)
	if err != nil {
		return bigint.Zero(), bigint.Zero(), err
	}
	if p.Greater(q) {
		p, q = q, p
	}
	if !numtheory.IsPrime(p) || !numtheory.IsPrime(q) {
		return bigint.Zero(), bigint.Zero(), errors.Wrapf(cryptoerr.ErrNotFactorable,
			"bruteforce: %s = %s * %s has more than two prime factors", n, p, q)
	}
	return p, q, nil
}

// factorEven resolves even moduli without a search: n = 2q with q prime.
func factorEven(n bigint.BigInt) (*Result, error) {
	p, q, err := checkFactors(n, bigint.Two())
	if err != nil {
		return nil, err
	}
	return &Result{P: p, Q: q, Tested: 1}, nil
}

// Factor searches the whole range of n on the calling goroutine.
func Factor(n bigint.BigInt, maxDigits int) (*Result, error) {
	return FactorContext(context.Background(), n, maxDigits)
}

// FactorContext is Factor with cancellation. The scan checks ctx between candidates and
// returns the wrapped context error when it stops early.
func FactorContext(ctx context.Context, n bigint.BigInt, maxDigits int) (*Result, error) {
	if err := ValidateModulus(n, maxDigits); err != nil {
		return nil, err
	}
	if n.IsEven() {
		return factorEven(n)
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "bruteforce: search cancelled")
	}

	var stop atomic.Bool
	release := context.AfterFunc(ctx, func() { stop.Store(true) })
	defer release()

	r := SearchRange(n)
	d, tested, found := ScanRange(n, r, &stop, nil)
	if !found {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, "bruteforce: search cancelled")
		}
		return nil, errors.Wrapf(cryptoerr.ErrNotFactorable,
			"bruteforce: no divisor of %s in [%s, %s]", n, r.Lo, r.Hi)
	}
	p, q, err := checkFactors(n, d)
	if err != nil {
		return nil, err
	}
	return &Result{P: p, Q: q, Tested: tested}, nil
}
