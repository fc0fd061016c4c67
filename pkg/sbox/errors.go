package sbox

import "errors"

var (
	// ErrDimensionMismatch is returned when tables or functions of
	// incompatible input/output sizes are combined.
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrDomain is returned when an argument lies outside [0, 2^k) for the
	// relevant dimension k.
	ErrDomain = errors.New("argument out of domain")

	// ErrResourceLimit is returned when a table would exceed the configured
	// dimension ceiling.
	ErrResourceLimit = errors.New("resource limit exceeded")

	// ErrNotInvertible is returned by Inverse for non-bijective functions.
	ErrNotInvertible = errors.New("function is not invertible")
)
