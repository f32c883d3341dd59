package bigint

import (
	"io"

	"github.com/pkg/errors"

	"github.com/mahdiidarabi/chonker/pkg/cryptoerr"
)

// digitSource turns a byte stream into uniformly distributed decimal digits by
// rejecting bytes >= 250.
type digitSource struct {
	r   io.Reader
	buf [64]byte
	pos int
	n   int
}

func (s *digitSource) next() (byte, error) {
	for {
		if s.pos == s.n {
			n, err := io.ReadFull(s.r, s.buf[:])
			if err != nil {
				return 0, errors.Wrap(err, "bigint: reading randomness")
			}
			s.n, s.pos = n, 0
		}
		b := s.buf[s.pos]
		s.pos++
		if b < 250 {
			return b % 10, nil
		}
	}
}

// digits draws n digits, least significant first. With leadingNonZero the most
// significant digit is drawn from [1, 9].
func (s *digitSource) digits(n int, leadingNonZero bool) ([]byte, error) {
	out := make([]byte, n)
	for i := range out {
		d, err := s.next()
		if err != nil {
			return nil, err
		}
		for leadingNonZero && i == n-1 && d == 0 {
			if d, err = s.next(); err != nil {
				return nil, err
			}
		}
		out[i] = d
	}
	return out, nil
}

// Random returns a uniformly distributed positive integer with exactly n decimal digits,
// read from r (typically crypto/rand.Reader).
func Random(r io.Reader, n int) (BigInt, error) {
	if n <= 0 {
		return zero, errors.Wrapf(cryptoerr.ErrPolicyViolation, "bigint: cannot draw a %d-digit number", n)
	}
	src := &digitSource{r: r}
	d, err := src.digits(n, true)
	if err != nil {
		return zero, err
	}
	return newBigInt(d, SignPositive), nil
}

// RandomOdd returns a uniformly distributed odd positive integer with exactly n digits.
func RandomOdd(r io.Reader, n int) (BigInt, error) {
	x, err := Random(r, n)
	if err != nil {
		return zero, err
	}
	if x.IsEven() {
		// The last digit moves from 2k to 2k+1, so the length is unchanged.
		x = x.Add(one)
	}
	return x, nil
}

// RandomRange returns a uniformly distributed integer in [lo, hi].
func RandomRange(r io.Reader, lo, hi BigInt) (BigInt, error) {
	if hi.Less(lo) {
		return zero, errors.Wrapf(cryptoerr.ErrPolicyViolation, "bigint: empty range [%s, %s]", lo, hi)
	}
	span := hi.Sub(lo).Add(one)
	src := &digitSource{r: r}
	for {
		// Draw from [0, 10^len(span)) and reject values outside [0, span).
		d, err := src.digits(span.Len(), false)
		if err != nil {
			return zero, err
		}
		if cmpAbs(trim(d), span.digits) < 0 {
			return lo.Add(newBigInt(d, SignPositive)), nil
		}
	}
}
