// Package recovery recovers RSA private exponents from public keys whose modulus is small
// enough to factor by trial division.
//
// Given a public key (n, e), a Strategy searches for the prime factors p and q of n. The
// private exponent is then d = e^-1 mod (p-1)(q-1), exactly as during key generation.
//
// # Quick Start
//
//	import "github.com/mahdiidarabi/chonker/pkg/recovery"
//
//	// Create a client with default settings
//	client := recovery.NewClient()
//
//	result, err := client.RecoverKey(ctx, e, n)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("Recovered d: %s\n", result.KeyPair.PrivateExponent)
//
// # Customization
//
// The default SmartBruteForceStrategy first looks for small factors and then runs the
// parallel trial division over the balanced factor range. Its pool can be tuned:
//
//	strategy := recovery.NewSmartBruteForceStrategy().
//	    WithRangeConfig(recovery.RangeConfig{
//	        NumWorkers:       16,
//	        MaxModulusDigits: 10,
//	        ProgressEvery:    10000,
//	    })
//
//	client := recovery.NewClient().WithStrategy(strategy)
//
// # Key Files
//
// Public keys can be loaded from JSON ([{"n": "...", "e": "..."}]) or CSV (header n,e):
//
//	outcomes, err := recovery.NewClient().
//	    WithParser(&recovery.CSVParser{}).
//	    RecoverKeys(ctx, "keys.csv")
//
// # Custom Strategies
//
// Implement the Strategy interface to plug in another factoring method:
//
//	type MyStrategy struct{}
//
//	func (s *MyStrategy) Search(ctx context.Context, key *PublicKey) (*Factorization, error) {
//	    // Your custom search logic
//	}
//
//	func (s *MyStrategy) Name() string {
//	    return "MyCustomStrategy"
//	}
package recovery
