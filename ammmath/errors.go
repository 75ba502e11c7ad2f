package ammmath

import (
	"cosmossdk.io/errors"
)

// Arithmetic faults surface as errors so state transitions can abort cleanly
// instead of recovering from panics mid-operation.
var (
	ErrAddOverflow      = errors.Register("ammmath", 1, "addition overflow")
	ErrSubUnderflow     = errors.Register("ammmath", 2, "subtraction underflow")
	ErrMulOverflow      = errors.Register("ammmath", 3, "multiplication overflow")
	ErrDivZero          = errors.Register("ammmath", 4, "division by zero")
	ErrDivOverflow      = errors.Register("ammmath", 5, "division overflow")
	ErrPowBaseTooLow    = errors.Register("ammmath", 6, "pow base below minimum")
	ErrPowBaseTooHigh   = errors.Register("ammmath", 7, "pow base above maximum")
	ErrNegativeExponent = errors.Register("ammmath", 8, "negative exponent")
)
