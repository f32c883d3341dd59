// Package cryptoerr defines the failure taxonomy shared by every package in this module.
//
// Functions never return these sentinels bare; they wrap them with context, so callers
// should test with errors.Is:
//
//	if errors.Is(err, cryptoerr.ErrPolicyViolation) {
//	    // reject the request
//	}
package cryptoerr

import "github.com/pkg/errors"

var (
	// ErrParse reports malformed numeric or hex input.
	ErrParse = errors.New("parse error")

	// ErrDivisionByZero reports a division or modulus by zero.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrPolicyViolation reports a modulus, thread count or digit length outside the supported bounds.
	ErrPolicyViolation = errors.New("policy violation")

	// ErrNotFactorable reports that a bruteforce search exhausted its range without a factor pair.
	ErrNotFactorable = errors.New("not factorable in range")
)
