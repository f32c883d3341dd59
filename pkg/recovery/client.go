package recovery

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/mahdiidarabi/chonker/pkg/bigint"
	"github.com/mahdiidarabi/chonker/pkg/cryptoerr"
)

// Client provides a high-level API for RSA key recovery operations.
type Client struct {
	strategy Strategy
	parser   KeyParser
	logger   logrus.FieldLogger
}

// NewClient creates a new client with default settings.
func NewClient() *Client {
	return &Client{
		strategy: NewSmartBruteForceStrategy(),
		parser:   &JSONParser{},
		logger:   logrus.StandardLogger(),
	}
}

// WithStrategy sets a custom factoring strategy.
func (c *Client) WithStrategy(strategy Strategy) *Client {
	c.strategy = strategy
	return c
}

// WithParser sets a custom key file parser.
func (c *Client) WithParser(parser KeyParser) *Client {
	c.parser = parser
	return c
}

// WithLogger sets the logger for client events.
func (c *Client) WithLogger(logger logrus.FieldLogger) *Client {
	c.logger = logger
	return c
}

// RecoverKey factors n and derives the private exponent for e.
//
// Args:
//   - ctx: Context for cancellation.
//   - e: Public exponent, must be positive.
//   - n: Modulus.
//
// Returns:
//   - RecoveryResult if successful, error otherwise.
func (c *Client) RecoverKey(ctx context.Context, e, n bigint.BigInt) (*RecoveryResult, error) {
	return c.RecoverPublicKey(ctx, &PublicKey{N: n, E: e})
}

// RecoverPublicKey is RecoverKey for an already assembled public key.
func (c *Client) RecoverPublicKey(ctx context.Context, key *PublicKey) (*RecoveryResult, error) {
	if key.E.Sign() != bigint.SignPositive {
		return nil, errors.Wrapf(cryptoerr.ErrPolicyViolation, "recovery: public exponent %s is not positive", key.E)
	}

	log := c.logger.WithFields(logrus.Fields{
		"strategy": c.strategy.Name(),
		"modulus":  key.N.String(),
	})
	log.Info("Recovering private key")

	f, err := c.strategy.Search(ctx, key)
	if err != nil {
		log.WithError(err).Warn("Factorization failed")
		return nil, err
	}

	kp, err := RecoverPrivateKey(key.E, f.P, f.Q)
	if err != nil {
		return nil, err
	}
	verified, err := VerifyRecoveredKey(kp)
	if err != nil {
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"run_id":   f.RunID,
		"p":        f.P.String(),
		"q":        f.Q.String(),
		"verified": verified,
	}).Info("Recovered private key")

	return &RecoveryResult{
		KeyPair:  kp,
		P:        f.P,
		Q:        f.Q,
		Verified: verified,
		Strategy: c.strategy.Name(),
		Tested:   f.Tested,
		RunID:    f.RunID,
	}, nil
}

// RecoverKeys recovers every public key in a key file. A key that cannot be recovered is
// reported in its outcome and does not stop the others. The returned error covers parsing
// and cancellation only.
func (c *Client) RecoverKeys(ctx context.Context, source string) ([]KeyOutcome, error) {
	keys, err := c.parser.ParseKeys(source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse keys: %w", err)
	}

	outcomes := make([]KeyOutcome, 0, len(keys))
	for i, key := range keys {
		if err := ctx.Err(); err != nil {
			return outcomes, fmt.Errorf("stopped before key %d: %w", i, err)
		}
		result, err := c.RecoverPublicKey(ctx, key)
		outcomes = append(outcomes, KeyOutcome{Key: key, Result: result, Err: err})
	}
	return outcomes, nil
}
