// Package dh runs a two-party Diffie-Hellman exchange over decimal BigInts, generating any
// parameter the caller leaves out.
package dh

import (
	"io"

	"github.com/pkg/errors"

	"github.com/mahdiidarabi/chonker/pkg/bigint"
	"github.com/mahdiidarabi/chonker/pkg/cryptoerr"
	"github.com/mahdiidarabi/chonker/pkg/numtheory"
)

const (
	// MaxPrimeDigits bounds a caller supplied prime so the primality test stays fast.
	MaxPrimeDigits = 100
	// MinRandomPrimeDigits and MaxRandomPrimeDigits bound the length of a generated prime.
	MinRandomPrimeDigits = 5
	MaxRandomPrimeDigits = 10
	// fullRootCheckDigits is the longest prime whose p-1 is factored, either to verify a
	// supplied base or to search for one.
	fullRootCheckDigits = 12
)

// ErrMismatch means the two sides computed different shared secrets.
var ErrMismatch = errors.New("dh: shared secrets differ")

// Parameters are the exchange inputs. A nil field is generated.
type Parameters struct {
	Prime   *bigint.BigInt
	Base    *bigint.BigInt
	SecretA *bigint.BigInt
	SecretB *bigint.BigInt
}

// Result carries every value of a completed exchange.
type Result struct {
	Prime   bigint.BigInt
	Base    bigint.BigInt
	SecretA bigint.BigInt
	SecretB bigint.BigInt

	// PublicA is sent from A to B, PublicB from B to A.
	PublicA bigint.BigInt
	PublicB bigint.BigInt

	// SharedA and SharedB are the secrets computed by each side.
	SharedA bigint.BigInt
	SharedB bigint.BigInt
}

// SharedSecret returns the agreed secret.
func (r *Result) SharedSecret() bigint.BigInt {
	return r.SharedA
}

// Exchange validates or generates the parameters and runs the exchange.
//
// A supplied prime must have at most MaxPrimeDigits digits and pass Miller-Rabin. A supplied
// base must be a primitive root of the prime; the check is exact for primes of up to 12 digits
// and only requires 1 < g < p-1 beyond that. Supplied secrets must be positive. Violations
// wrap cryptoerr.ErrPolicyViolation.
func Exchange(r io.Reader, params Parameters) (*Result, error) {
	p, err := resolvePrime(r, params.Prime)
	if err != nil {
		return nil, err
	}
	g, err := resolveBase(r, p, params.Base)
	if err != nil {
		return nil, err
	}
	a, err := resolveSecret(r, p, params.SecretA, "A")
	if err != nil {
		return nil, err
	}
	b, err := resolveSecret(r, p, params.SecretB, "B")
	if err != nil {
		return nil, err
	}

	res := &Result{Prime: p, Base: g, SecretA: a, SecretB: b}
	if res.PublicA, err = g.ModPow(a, p); err != nil {
		return nil, err
	}
	if res.PublicB, err = g.ModPow(b, p); err != nil {
		return nil, err
	}
	if res.SharedA, err = res.PublicB.ModPow(a, p); err != nil {
		return nil, err
	}
	if res.SharedB, err = res.PublicA.ModPow(b, p); err != nil {
		return nil, err
	}
	if !res.SharedA.Equal(res.SharedB) {
		return nil, errors.Wrapf(ErrMismatch, "%s != %s", res.SharedA, res.SharedB)
	}
	return res, nil
}

func resolvePrime(r io.Reader, supplied *bigint.BigInt) (bigint.BigInt, error) {
	if supplied == nil {
		span, err := bigint.RandomRange(r, bigint.FromInt64(MinRandomPrimeDigits), bigint.FromInt64(MaxRandomPrimeDigits))
		if err != nil {
			return bigint.Zero(), err
		}
		digits, _ := span.Int64()
		return numtheory.RandomPrime(r, int(digits))
	}

	p := *supplied
	if p.Len() > MaxPrimeDigits {
		return bigint.Zero(), errors.Wrapf(cryptoerr.ErrPolicyViolation,
			"dh: prime has %d digits, at most %d are supported", p.Len(), MaxPrimeDigits)
	}
	ok, err := numtheory.ProbablyPrime(r, p, numtheory.RoundsFor(p.Len()))
	if err != nil {
		return bigint.Zero(), err
	}
	if !ok {
		return bigint.Zero(), errors.Wrapf(cryptoerr.ErrPolicyViolation, "dh: %s is not prime", p)
	}
	return p, nil
}

func resolveBase(r io.Reader, p bigint.BigInt, supplied *bigint.BigInt) (bigint.BigInt, error) {
	if supplied == nil {
		if p.Len() > fullRootCheckDigits {
			return bigint.Zero(), errors.Wrapf(cryptoerr.ErrPolicyViolation,
				"dh: supply a base for primes over %d digits, got %d", fullRootCheckDigits, p.Len())
		}
		return numtheory.PrimitiveRoot(r, p)
	}

	g := *supplied
	if p.Len() <= fullRootCheckDigits {
		ok, err := numtheory.IsPrimitiveRoot(g, p)
		if err != nil {
			return bigint.Zero(), err
		}
		if !ok {
			return bigint.Zero(), errors.Wrapf(cryptoerr.ErrPolicyViolation, "dh: %s is not a primitive root of %s", g, p)
		}
		return g, nil
	}
	if g.LessOrEqual(bigint.One()) || g.GreaterOrEqual(p.Sub(bigint.One())) {
		return bigint.Zero(), errors.Wrapf(cryptoerr.ErrPolicyViolation, "dh: base %s outside (1, %s)", g, p.Sub(bigint.One()))
	}
	return g, nil
}

func resolveSecret(r io.Reader, p bigint.BigInt, supplied *bigint.BigInt, side string) (bigint.BigInt, error) {
	if supplied != nil {
		if supplied.Sign() != bigint.SignPositive {
			return bigint.Zero(), errors.Wrapf(cryptoerr.ErrPolicyViolation, "dh: secret %s must be positive, got %s", side, supplied)
		}
		return *supplied, nil
	}
	hi := p.Sub(bigint.Two())
	if hi.Less(bigint.Two()) {
		// Only the primes 2 and 3 get here.
		return bigint.One(), nil
	}
	return bigint.RandomRange(r, bigint.Two(), hi)
}
