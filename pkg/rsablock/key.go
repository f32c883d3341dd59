package rsablock

import (
	"crypto/rand"
	"io"

	"github.com/pkg/errors"

	"github.com/mahdiidarabi/chonker/pkg/bigint"
	"github.com/mahdiidarabi/chonker/pkg/cryptoerr"
	"github.com/mahdiidarabi/chonker/pkg/numtheory"
)

const (
	// DefaultModulusDigits is the modulus length GenerateKeyPair targets by default.
	DefaultModulusDigits = 46
	// MinModulusDigits is the shortest modulus accepted for encryption and key generation.
	MinModulusDigits = 40
	// MaxModulusDigits caps key generation.
	MaxModulusDigits = 512
)

// Key is one half of an RSA key pair: the modulus and either the public or the private
// exponent.
type Key struct {
	Modulus  bigint.BigInt
	Exponent bigint.BigInt
}

// KeyPair holds a modulus with both exponents.
type KeyPair struct {
	Modulus         bigint.BigInt
	PublicExponent  bigint.BigInt
	PrivateExponent bigint.BigInt
}

// Public returns the encryption key.
func (kp *KeyPair) Public() Key {
	return Key{Modulus: kp.Modulus, Exponent: kp.PublicExponent}
}

// Private returns the decryption key.
func (kp *KeyPair) Private() Key {
	return Key{Modulus: kp.Modulus, Exponent: kp.PrivateExponent}
}

// Validate checks the key against the cipher's policy: the modulus must have at least
// MinModulusDigits digits and must not be prime, and the exponent must be positive.
func (k Key) Validate() error {
	if k.Modulus.Sign() != bigint.SignPositive || k.Modulus.Len() < MinModulusDigits {
		return errors.Wrapf(cryptoerr.ErrPolicyViolation,
			"rsablock: modulus has %d digits, need at least %d", k.Modulus.Len(), MinModulusDigits)
	}
	if k.Exponent.Sign() != bigint.SignPositive {
		return errors.Wrapf(cryptoerr.ErrPolicyViolation, "rsablock: exponent %s is not positive", k.Exponent)
	}
	prime, err := numtheory.ProbablyPrime(rand.Reader, k.Modulus, numtheory.RoundsFor(k.Modulus.Len()))
	if err != nil {
		return err
	}
	if prime {
		return errors.Wrapf(cryptoerr.ErrPolicyViolation, "rsablock: modulus %s is prime", k.Modulus)
	}
	return nil
}

// GenerateKeyPair creates a key pair whose modulus has exactly the given number of digits.
//
// Args:
//   - r: randomness source, normally crypto/rand.Reader
//   - digits: modulus length, between MinModulusDigits and MaxModulusDigits
//
// Returns:
//   - A key pair with a random public exponent coprime to φ(n), or an error wrapping
//     cryptoerr.ErrPolicyViolation when the length is out of bounds
func GenerateKeyPair(r io.Reader, digits int) (*KeyPair, error) {
	if digits < MinModulusDigits || digits > MaxModulusDigits {
		return nil, errors.Wrapf(cryptoerr.ErrPolicyViolation,
			"rsablock: modulus length %d outside [%d, %d]", digits, MinModulusDigits, MaxModulusDigits)
	}

	pDigits := digits / 2
	qDigits := digits - pDigits
	for {
		p, err := numtheory.RandomPrime(r, pDigits)
		if err != nil {
			return nil, errors.Wrap(err, "rsablock: generating p")
		}
		q, err := numtheory.RandomPrime(r, qDigits)
		if err != nil {
			return nil, errors.Wrap(err, "rsablock: generating q")
		}
		// A product of a and b digit numbers has a+b-1 or a+b digits.
		if p.Equal(q) || p.Mul(q).Len() != digits {
			continue
		}

		phi := Totient(p, q)
		e, err := numtheory.RandomCoprime(r, phi)
		if err != nil {
			return nil, err
		}
		if e.Equal(p) || e.Equal(q) {
			continue
		}
		return FromPrimes(p, q, e)
	}
}

// Totient returns φ(p·q) = (p-1)(q-1) for distinct primes p and q.
func Totient(p, q bigint.BigInt) bigint.BigInt {
	return p.Sub(bigint.One()).Mul(q.Sub(bigint.One()))
}

// FromPrimes assembles a key pair from the prime factors of the modulus and a public exponent.
// The private exponent is the inverse of e modulo φ(n). An exponent sharing a factor with φ(n)
// is a policy violation.
func FromPrimes(p, q, e bigint.BigInt) (*KeyPair, error) {
	phi := Totient(p, q)
	d, err := numtheory.ModInverse(e, phi)
	if err != nil {
		if errors.Is(err, numtheory.ErrNoInverse) {
			return nil, errors.Wrapf(cryptoerr.ErrPolicyViolation,
				"rsablock: exponent %s is not coprime with φ(n) = %s", e, phi)
		}
		return nil, err
	}
	if d.Sign() != bigint.SignPositive {
		return nil, errors.Wrapf(cryptoerr.ErrPolicyViolation, "rsablock: no positive private exponent for e = %s", e)
	}
	return &KeyPair{
		Modulus:         p.Mul(q),
		PublicExponent:  e,
		PrivateExponent: d,
	}, nil
}
