package jwtc

import "errors"

var (
	// ErrMalformed reports a string that is not structurally a signed token.
	ErrMalformed = errors.New("jwtc: malformed token")

	// ErrBadSignature reports a token whose signature does not verify.
	ErrBadSignature = errors.New("jwtc: invalid signature")

	// ErrExpired reports a token whose embedded expiry has passed. Expiry is
	// checked as part of verification, not left to the caller.
	ErrExpired = errors.New("jwtc: token expired")

	// ErrGeneratorNotFound reports a generator name with no registration.
	ErrGeneratorNotFound = errors.New("jwtc: generator not found")

	// ErrGeneratorUnusable reports a registered generator that failed its
	// own configuration check.
	ErrGeneratorUnusable = errors.New("jwtc: generator unusable")
)
