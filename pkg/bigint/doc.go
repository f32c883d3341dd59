// Package bigint implements an immutable arbitrary-precision signed integer stored as a
// sequence of decimal digits.
//
// Every operation returns a new value and never mutates its operands, so a BigInt can be
// shared freely between goroutines. Operations that can fail (division, modulus and
// exponentiation) return an error wrapping one of the sentinels in package cryptoerr.
//
// # Quick Start
//
//	a, err := bigint.FromString("441982524952231918609144409818894577105184461")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	b := bigint.FromInt64(65537)
//
//	c, err := a.ModPow(b, bigint.FromInt64(1000000007))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(c)
//
// Division comes in two flavours, mirroring math/big: Quo and Rem truncate toward zero,
// while Div and Mod implement Euclidean division, so Mod is never negative.
package bigint
