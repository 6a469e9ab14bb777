package protocol

import "errors"

// Error kinds surfaced by the protocol core. Callers match with
// errors.Is; the wrapped message carries the specific reason.
var (
	// ErrInvalidParameter reports a parameter set that fails validation.
	ErrInvalidParameter = errors.New("protocol: invalid parameter")
	// ErrDimensionMismatch reports a supplied vector whose length is
	// inconsistent with the session dimensions. State is left untouched.
	ErrDimensionMismatch = errors.New("protocol: dimension mismatch")
	// ErrProtocolOrder reports Respond called without a live commitment.
	ErrProtocolOrder = errors.New("protocol: respond requires a prior commit")
	// ErrInternalArithmetic reports a modulus-context or overflow bug
	// inside the core, never a user error.
	ErrInternalArithmetic = errors.New("protocol: internal arithmetic failure")
)
