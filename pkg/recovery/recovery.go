package recovery

import (
	"context"

	"github.com/pkg/errors"

	"github.com/mahdiidarabi/chonker/pkg/bigint"
	"github.com/mahdiidarabi/chonker/pkg/cryptoerr"
	"github.com/mahdiidarabi/chonker/pkg/rsablock"
)

// sampleMessages are round-tripped by VerifyRecoveredKey, reduced modulo n.
var sampleMessages = []int64{2, 3, 42, 65537, 1234567}

// RecoverPrivateKey derives the key pair for modulus p*q and public exponent e.
//
// Args:
//   - e: Public exponent
//   - p, q: Distinct prime factors of the modulus
//
// Returns:
//   - The key pair, or an error wrapping cryptoerr.ErrPolicyViolation when e is not coprime
//     with (p-1)(q-1)
func RecoverPrivateKey(e, p, q bigint.BigInt) (*rsablock.KeyPair, error) {
	if p.Equal(q) {
		return nil, errors.Wrapf(cryptoerr.ErrNotFactorable, "recovery: modulus is the square of %s", p)
	}
	return rsablock.FromPrimes(p, q, e)
}

// VerifyRecoveredKey verifies that a recovered private exponent inverts the public one.
//
// Args:
//   - kp: Recovered key pair
//
// Returns:
//   - true if (m^e)^d mod n == m for every sample message
func VerifyRecoveredKey(kp *rsablock.KeyPair) (bool, error) {
	for _, s := range sampleMessages {
		m, err := bigint.FromInt64(s).Mod(kp.Modulus)
		if err != nil {
			return false, err
		}
		c, err := m.ModPow(kp.PublicExponent, kp.Modulus)
		if err != nil {
			return false, err
		}
		back, err := c.ModPow(kp.PrivateExponent, kp.Modulus)
		if err != nil {
			return false, err
		}
		if !back.Equal(m) {
			return false, nil
		}
	}
	return true, nil
}

// BruteforcePrivateKey factors n with the parallel trial division pool and returns the private
// exponent matching e.
//
// Args:
//   - ctx: Context for cancellation
//   - e: Public exponent
//   - n: Modulus of at most 10 digits
//   - threads: Worker count in [1, 64]
//
// Returns:
//   - d, or an error wrapping cryptoerr.ErrPolicyViolation (bad bounds, e not coprime with φ(n))
//     or cryptoerr.ErrNotFactorable (no two-prime factorization in range)
func BruteforcePrivateKey(ctx context.Context, e, n bigint.BigInt, threads int) (bigint.BigInt, error) {
	cfg := DefaultRangeConfig()
	cfg.NumWorkers = threads
	client := NewClient().WithStrategy(NewParallelBruteForceStrategy().WithRangeConfig(cfg))

	result, err := client.RecoverKey(ctx, e, n)
	if err != nil {
		return bigint.Zero(), err
	}
	return result.KeyPair.PrivateExponent, nil
}
