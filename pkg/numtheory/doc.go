// Package numtheory provides the number theory used by the RSA and Diffie-Hellman packages:
// greatest common divisors, modular inverses, primality testing, factorization by trial
// division, and random generation of primes, coprimes and primitive roots.
//
// All functions operate on bigint.BigInt values and never mutate their arguments.
//
// Quick Start:
//
//	p, err := numtheory.RandomPrime(rand.Reader, 20)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	g, err := numtheory.PrimitiveRoot(rand.Reader, p)
package numtheory
