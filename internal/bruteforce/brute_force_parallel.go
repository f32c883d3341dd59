package bruteforce

import (
	"context"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/mahdiidarabi/chonker/pkg/bigint"
	"github.com/mahdiidarabi/chonker/pkg/cryptoerr"
)

// Config controls a parallel search.
type Config struct {
	// Workers is the pool size, in [1, MaxWorkers].
	Workers int
	// MaxModulusDigits caps the modulus length. Zero means DefaultMaxModulusDigits.
	MaxModulusDigits int
	// ProgressEvery logs a debug line each time a worker has tested this many candidates.
	// Zero disables progress logging.
	ProgressEvery int64
	// Logger receives search events. Nil means logrus.StandardLogger().
	Logger logrus.FieldLogger
}

// DefaultConfig returns a configuration with DefaultWorkers workers.
func DefaultConfig() Config {
	return Config{
		Workers:          DefaultWorkers,
		MaxModulusDigits: DefaultMaxModulusDigits,
		ProgressEvery:    50000,
	}
}

// outcome is what a worker reports: a factor pair or a failure.
type outcome struct {
	result *Result
	err    error
}

// task is one worker's share of the search range.
type task struct {
	worker int
	r      Range
}

// FactorParallel searches for a divisor of n with a pool of workers, each scanning one
// contiguous slice of SearchRange(n).
//
// The first worker to find a divisor wins and the rest stop cooperatively. The pool is always
// drained before returning.
//
// Args:
//   - ctx: cancels the search; its error is returned when no factor was found
//   - n: the modulus
//   - cfg: worker count, policy bound and logging
//
// Returns:
//   - The factor pair, or an error wrapping cryptoerr.ErrPolicyViolation when n or the worker
//     count is out of bounds, or cryptoerr.ErrNotFactorable when the range holds no divisor or
//     n has more than two prime factors
func FactorParallel(ctx context.Context, n bigint.BigInt, cfg Config) (*Result, error) {
	if cfg.Workers < 1 || cfg.Workers > MaxWorkers {
		return nil, errors.Wrapf(cryptoerr.ErrPolicyViolation,
			"bruteforce: %d workers outside [1, %d]", cfg.Workers, MaxWorkers)
	}
	if err := ValidateModulus(n, cfg.MaxModulusDigits); err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	runID := uuid.NewString()
	log := logger.WithFields(logrus.Fields{
		"run_id":  runID,
		"modulus": n.String(),
	})

	if n.IsEven() {
		log.Debug("Even modulus, skipping worker pool")
		res, err := factorEven(n)
		if err != nil {
			return nil, err
		}
		res.RunID = runID
		return res, nil
	}

	r := SearchRange(n)
	parts := Partition(r, cfg.Workers)
	log = log.WithField("workers", len(parts))
	log.WithFields(logrus.Fields{"lo": r.Lo.String(), "hi": r.Hi.String()}).Info("Starting parallel trial division")

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var stop atomic.Bool
	release := context.AfterFunc(runCtx, func() { stop.Store(true) })
	defer release()

	// Every worker receives exactly one task, so the queue is filled and closed up front.
	tasks := make(chan task, len(parts))
	for i, part := range parts {
		tasks <- task{worker: i, r: part}
	}
	close(tasks)

	resultChan := make(chan outcome, 1)
	var tested atomic.Int64

	g, gctx := errgroup.WithContext(runCtx)
	for i := 0; i < len(parts); i++ {
		g.Go(func() error {
			var t task
			select {
			case <-gctx.Done():
				return nil
			case next, ok := <-tasks:
				if !ok {
					return nil
				}
				t = next
			}

			var reported int64
			progress := func(count int64) {
				if cfg.ProgressEvery > 0 && count%cfg.ProgressEvery == 0 {
					total := tested.Add(count - reported)
					reported = count
					log.WithFields(logrus.Fields{"worker": t.worker, "tested": total}).Debug("Search progress")
				}
			}

			d, count, found := ScanRange(n, t.r, &stop, progress)
			tested.Add(count - reported)
			if !found {
				return nil
			}

			p, q, err := checkFactors(n, d)
			out := outcome{err: err}
			if err == nil {
				out.result = &Result{P: p, Q: q, Worker: t.worker, RunID: runID}
			}
			select {
			case resultChan <- out:
				stop.Store(true)
				cancel()
			default:
				// Another worker already reported.
			}
			return nil
		})
	}

	// Workers only return nil, so Wait just drains the pool.
	_ = g.Wait()

	total := tested.Load()
	select {
	case out := <-resultChan:
		if out.err != nil {
			log.WithError(out.err).WithField("tested", total).Warn("Divisor found but modulus is not a two-prime product")
			return nil, out.err
		}
		out.result.Tested = total
		log.WithFields(logrus.Fields{
			"p":      out.result.P.String(),
			"q":      out.result.Q.String(),
			"worker": out.result.Worker,
			"tested": total,
		}).Info("Factor found")
		return out.result, nil
	default:
	}

	if err := ctx.Err(); err != nil {
		log.WithField("tested", total).Warn("Search cancelled")
		return nil, errors.Wrap(err, "bruteforce: search cancelled")
	}
	log.WithField("tested", total).Info("Search range exhausted")
	return nil, errors.Wrapf(cryptoerr.ErrNotFactorable,
		"bruteforce: no divisor of %s in [%s, %s]", n, r.Lo, r.Hi)
}
