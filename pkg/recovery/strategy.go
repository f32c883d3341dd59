package recovery

import (
	"context"

	"github.com/mahdiidarabi/chonker/internal/bruteforce"
)

// Strategy defines the interface for factoring strategies.
// Implement this interface to create custom search strategies.
type Strategy interface {
	// Search attempts to factor key.N into two primes.
	// The context can be used for cancellation.
	Search(ctx context.Context, key *PublicKey) (*Factorization, error)

	// Name returns a human-readable name for this strategy.
	Name() string
}

// RangeConfig configures the trial division worker pool.
type RangeConfig struct {
	// NumWorkers controls parallelization, in [1, 64]
	NumWorkers int

	// MaxModulusDigits refuses longer moduli up front
	MaxModulusDigits int

	// ProgressEvery logs progress after this many candidates per worker (0 = off)
	ProgressEvery int64
}

// DefaultRangeConfig returns a sensible default configuration.
func DefaultRangeConfig() RangeConfig {
	cfg := bruteforce.DefaultConfig()
	return RangeConfig{
		NumWorkers:       cfg.Workers,
		MaxModulusDigits: cfg.MaxModulusDigits,
		ProgressEvery:    cfg.ProgressEvery,
	}
}

// SmallFactorConfig configures the small factor pre-check of the smart strategy.
type SmallFactorConfig struct {
	// Enabled turns the pre-check on
	Enabled bool

	// Limit is the largest candidate tried
	Limit int64
}

// DefaultSmallFactorConfig returns a configuration trying candidates up to 1000.
func DefaultSmallFactorConfig() SmallFactorConfig {
	return SmallFactorConfig{
		Enabled: true,
		Limit:   1000,
	}
}
