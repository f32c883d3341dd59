package recovery

import (
	"github.com/mahdiidarabi/chonker/pkg/bigint"
	"github.com/mahdiidarabi/chonker/pkg/rsablock"
)

// PublicKey is an RSA public key as read from a key file or supplied by the caller.
type PublicKey struct {
	N bigint.BigInt // Modulus
	E bigint.BigInt // Public exponent
}

// Factorization is what a strategy reports: the two prime factors of the modulus.
type Factorization struct {
	P      bigint.BigInt
	Q      bigint.BigInt
	Tested int64  // Candidates tried
	RunID  string // Search run id, empty when the strategy does not assign one
}

// RecoveryResult contains the result of a key recovery operation.
type RecoveryResult struct {
	KeyPair  *rsablock.KeyPair // Modulus with both exponents
	P        bigint.BigInt     // Smaller prime factor
	Q        bigint.BigInt     // Larger prime factor
	Verified bool              // Whether the key round-tripped the sample messages
	Strategy string            // Name of the strategy that found the factors
	Tested   int64             // Candidates tried
	RunID    string            // Search run id, for correlating log lines
}

// KeyOutcome is the result of recovering one key from a key file.
type KeyOutcome struct {
	Key    *PublicKey
	Result *RecoveryResult
	Err    error
}
