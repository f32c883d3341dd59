package bigint

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/mahdiidarabi/chonker/pkg/cryptoerr"
)

// Sign is the sign tag of a BigInt.
type Sign int8

const (
	SignNegative Sign = -1
	SignZero     Sign = 0
	SignPositive Sign = 1
)

// BigInt is an arbitrary-precision signed integer.
//
// The magnitude is kept as decimal digits, least significant first, with no most
// significant zero digits. Zero has no digits and SignZero; a non-zero value is never
// tagged SignZero and zero is never tagged SignNegative. The zero value is 0.
type BigInt struct {
	digits []byte
	sign   Sign
}

var (
	zero = BigInt{}
	one  = BigInt{digits: []byte{1}, sign: SignPositive}
	two  = BigInt{digits: []byte{2}, sign: SignPositive}
)

// Zero returns 0.
func Zero() BigInt { return zero }

// One returns 1.
func One() BigInt { return one }

// Two returns 2.
func Two() BigInt { return two }

// newBigInt takes ownership of digits and restores the representation invariants.
func newBigInt(digits []byte, sign Sign) BigInt {
	digits = trim(digits)
	if len(digits) == 0 {
		return zero
	}
	if sign == SignZero {
		sign = SignPositive
	}
	return BigInt{digits: digits, sign: sign}
}

// trim drops most significant zero digits.
func trim(d []byte) []byte {
	n := len(d)
	for n > 0 && d[n-1] == 0 {
		n--
	}
	return d[:n]
}

// FromInt64 converts a native integer.
func FromInt64(v int64) BigInt {
	if v < 0 {
		// -(v+1) avoids overflow for math.MinInt64.
		u := uint64(-(v + 1)) + 1
		return FromUint64(u).Neg()
	}
	return FromUint64(uint64(v))
}

// FromUint64 converts a native unsigned integer.
func FromUint64(u uint64) BigInt {
	if u == 0 {
		return zero
	}
	digits := make([]byte, 0, 20)
	for u > 0 {
		digits = append(digits, byte(u%10))
		u /= 10
	}
	return BigInt{digits: digits, sign: SignPositive}
}

// FromString parses a base-10 integer with an optional leading '+' or '-'.
// Leading zeros are accepted; "-0" parses as zero.
func FromString(s string) (BigInt, error) {
	text := s
	sign := SignPositive
	if strings.HasPrefix(text, "-") {
		sign = SignNegative
		text = text[1:]
	} else if strings.HasPrefix(text, "+") {
		text = text[1:]
	}
	if text == "" {
		return zero, errors.Wrapf(cryptoerr.ErrParse, "bigint: invalid decimal integer %q", s)
	}

	digits := make([]byte, len(text))
	for i := 0; i < len(text); i++ {
		c := text[len(text)-1-i]
		if c < '0' || c > '9' {
			return zero, errors.Wrapf(cryptoerr.ErrParse, "bigint: invalid digit %q in %q", c, s)
		}
		digits[i] = c - '0'
	}
	return newBigInt(digits, sign), nil
}

// FromDigits builds a value from decimal digits in least-significant-first order.
// Each element must be in [0, 9]. The slice is copied.
func FromDigits(digits []byte, sign Sign) (BigInt, error) {
	if sign < SignNegative || sign > SignPositive {
		return zero, errors.Wrapf(cryptoerr.ErrParse, "bigint: invalid sign %d", sign)
	}
	owned := make([]byte, len(digits))
	for i, d := range digits {
		if d > 9 {
			return zero, errors.Wrapf(cryptoerr.ErrParse, "bigint: invalid digit value %d at position %d", d, i)
		}
		owned[i] = d
	}
	return newBigInt(owned, sign), nil
}

// Sign returns the sign tag.
func (x BigInt) Sign() Sign { return x.sign }

// IsZero reports whether x == 0.
func (x BigInt) IsZero() bool { return x.sign == SignZero }

// IsOdd reports whether x is odd.
func (x BigInt) IsOdd() bool { return len(x.digits) > 0 && x.digits[0]%2 == 1 }

// IsEven reports whether x is even.
func (x BigInt) IsEven() bool { return !x.IsOdd() }

// Len returns the number of decimal digits of |x|. Zero has length 0.
func (x BigInt) Len() int { return len(x.digits) }

// Digits returns a copy of the decimal digits of |x|, least significant first.
func (x BigInt) Digits() []byte {
	if len(x.digits) == 0 {
		return nil
	}
	out := make([]byte, len(x.digits))
	copy(out, x.digits)
	return out
}

// String returns the base-10 representation of x.
func (x BigInt) String() string {
	if x.sign == SignZero {
		return "0"
	}
	var b strings.Builder
	b.Grow(len(x.digits) + 1)
	if x.sign == SignNegative {
		b.WriteByte('-')
	}
	for i := len(x.digits) - 1; i >= 0; i-- {
		b.WriteByte('0' + x.digits[i])
	}
	return b.String()
}

// Neg returns -x.
func (x BigInt) Neg() BigInt {
	return BigInt{digits: x.digits, sign: -x.sign}
}

// Abs returns |x|.
func (x BigInt) Abs() BigInt {
	if x.sign == SignNegative {
		return x.Neg()
	}
	return x
}
