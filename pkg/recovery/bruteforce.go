package recovery

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/mahdiidarabi/chonker/internal/bruteforce"
	"github.com/mahdiidarabi/chonker/pkg/bigint"
	"github.com/mahdiidarabi/chonker/pkg/cryptoerr"
	"github.com/mahdiidarabi/chonker/pkg/numtheory"
)

// ParallelBruteForceStrategy factors the modulus with the parallel trial division pool over
// the balanced factor range only.
type ParallelBruteForceStrategy struct {
	RangeConfig RangeConfig
	Logger      logrus.FieldLogger
}

// NewParallelBruteForceStrategy creates a parallel strategy with default settings.
func NewParallelBruteForceStrategy() *ParallelBruteForceStrategy {
	return &ParallelBruteForceStrategy{
		RangeConfig: DefaultRangeConfig(),
		Logger:      logrus.StandardLogger(),
	}
}

// WithRangeConfig sets the range configuration for the strategy.
func (s *ParallelBruteForceStrategy) WithRangeConfig(config RangeConfig) *ParallelBruteForceStrategy {
	s.RangeConfig = config
	return s
}

// WithLogger sets the logger the worker pool reports to.
func (s *ParallelBruteForceStrategy) WithLogger(logger logrus.FieldLogger) *ParallelBruteForceStrategy {
	s.Logger = logger
	return s
}

// Name returns the name of this strategy.
func (s *ParallelBruteForceStrategy) Name() string {
	return "ParallelTrialDivision"
}

// Search implements the Strategy interface.
func (s *ParallelBruteForceStrategy) Search(ctx context.Context, key *PublicKey) (*Factorization, error) {
	res, err := bruteforce.FactorParallel(ctx, key.N, bruteforce.Config{
		Workers:          s.RangeConfig.NumWorkers,
		MaxModulusDigits: s.RangeConfig.MaxModulusDigits,
		ProgressEvery:    s.RangeConfig.ProgressEvery,
		Logger:           s.Logger,
	})
	if err != nil {
		return nil, err
	}
	return &Factorization{P: res.P, Q: res.Q, Tested: res.Tested, RunID: res.RunID}, nil
}

// SequentialBruteForceStrategy scans the balanced factor range on the calling goroutine.
// It is mostly useful as a baseline for the parallel strategy.
type SequentialBruteForceStrategy struct {
	MaxModulusDigits int
}

// NewSequentialBruteForceStrategy creates a sequential strategy with the default digit limit.
func NewSequentialBruteForceStrategy() *SequentialBruteForceStrategy {
	return &SequentialBruteForceStrategy{MaxModulusDigits: bruteforce.DefaultMaxModulusDigits}
}

// Name returns the name of this strategy.
func (s *SequentialBruteForceStrategy) Name() string {
	return "SequentialTrialDivision"
}

// Search implements the Strategy interface.
func (s *SequentialBruteForceStrategy) Search(ctx context.Context, key *PublicKey) (*Factorization, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res, err := bruteforce.FactorContext(ctx, key.N, s.MaxModulusDigits)
	if err != nil {
		return nil, err
	}
	return &Factorization{P: res.P, Q: res.Q, Tested: res.Tested}, nil
}

// SmartBruteForceStrategy implements a multi-phase search: small factors first, then the
// parallel trial division over the balanced range.
type SmartBruteForceStrategy struct {
	RangeConfig       RangeConfig
	SmallFactorConfig SmallFactorConfig
	Logger            logrus.FieldLogger
}

// NewSmartBruteForceStrategy creates a new smart brute-force strategy with default settings.
func NewSmartBruteForceStrategy() *SmartBruteForceStrategy {
	return &SmartBruteForceStrategy{
		RangeConfig:       DefaultRangeConfig(),
		SmallFactorConfig: DefaultSmallFactorConfig(),
		Logger:            logrus.StandardLogger(),
	}
}

// WithRangeConfig sets the range configuration for the strategy.
func (s *SmartBruteForceStrategy) WithRangeConfig(config RangeConfig) *SmartBruteForceStrategy {
	s.RangeConfig = config
	return s
}

// WithSmallFactorConfig sets the small factor pre-check configuration.
func (s *SmartBruteForceStrategy) WithSmallFactorConfig(config SmallFactorConfig) *SmartBruteForceStrategy {
	s.SmallFactorConfig = config
	return s
}

// WithLogger sets the logger for both phases.
func (s *SmartBruteForceStrategy) WithLogger(logger logrus.FieldLogger) *SmartBruteForceStrategy {
	s.Logger = logger
	return s
}

// Name returns the name of this strategy.
func (s *SmartBruteForceStrategy) Name() string {
	return "SmartBruteForce"
}

// Search implements the Strategy interface.
func (s *SmartBruteForceStrategy) Search(ctx context.Context, key *PublicKey) (*Factorization, error) {
	if err := bruteforce.ValidateModulus(key.N, s.RangeConfig.MaxModulusDigits); err != nil {
		return nil, err
	}
	logger := s.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	log := logger.WithField("modulus", key.N.String())

	// Phase 0: small factors
	if s.SmallFactorConfig.Enabled && s.SmallFactorConfig.Limit >= 2 {
		log.WithField("limit", s.SmallFactorConfig.Limit).Debug("Phase 0: trying small factors")
		p, err := numtheory.TrialDivision(key.N, bigint.Two(), bigint.FromInt64(s.SmallFactorConfig.Limit))
		switch {
		case err == nil:
			return smallFactorResult(key.N, p)
		case !errors.Is(err, cryptoerr.ErrNotFactorable):
			return nil, err
		}
		log.Debug("No small factors found")
	}

	// Phase 1: balanced range
	log.Debug("Phase 1: parallel trial division")
	return (&ParallelBruteForceStrategy{RangeConfig: s.RangeConfig, Logger: logger}).Search(ctx, key)
}

// smallFactorResult completes a factorization from the smallest divisor p of n.
func smallFactorResult(n, p bigint.BigInt) (*Factorization, error) {
	q, err := n.Quo(p)
	if err != nil {
		return nil, err
	}
	if !numtheory.IsPrime(q) {
		return nil, errors.Wrapf(cryptoerr.ErrNotFactorable,
			"recovery: %s = %s * %s has more than two prime factors", n, p, q)
	}
	return &Factorization{P: p, Q: q}, nil
}
