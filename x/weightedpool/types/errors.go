package types

import (
	"cosmossdk.io/errors"
)

// Module error codes
var (
	ErrPoolNotFound     = errors.Register("weightedpool", 1, "pool not found")
	ErrNotController    = errors.Register("weightedpool", 2, "caller is not the pool controller")
	ErrPoolFinalized    = errors.Register("weightedpool", 3, "pool is finalized")
	ErrPoolNotFinalized = errors.Register("weightedpool", 4, "pool is not finalized")
	ErrSwapNotPublic    = errors.Register("weightedpool", 5, "public swapping is disabled")
	ErrReentrancy       = errors.Register("weightedpool", 6, "pool operation already in progress")
	ErrInvalidAddress   = errors.Register("weightedpool", 7, "invalid address")

	// Binding errors
	ErrTokenNotBound     = errors.Register("weightedpool", 10, "token not bound")
	ErrTokenAlreadyBound = errors.Register("weightedpool", 11, "token already bound")
	ErrMinTokens         = errors.Register("weightedpool", 12, "pool would have fewer than the minimum bound tokens")
	ErrMaxTokens         = errors.Register("weightedpool", 13, "pool already has the maximum bound tokens")

	// Parameter range errors
	ErrWeightBelowMin     = errors.Register("weightedpool", 20, "weight below minimum")
	ErrWeightAboveMax     = errors.Register("weightedpool", 21, "weight above maximum")
	ErrTotalWeightTooHigh = errors.Register("weightedpool", 22, "total weight above maximum")
	ErrBalanceBelowMin    = errors.Register("weightedpool", 23, "balance below minimum")
	ErrSwapFeeOutOfRange  = errors.Register("weightedpool", 24, "swap fee out of range")
	ErrInvalidAmount      = errors.Register("weightedpool", 25, "invalid amount")

	// Trade limit errors
	ErrMaxInRatio  = errors.Register("weightedpool", 30, "input amount exceeds the max-in ratio")
	ErrMaxOutRatio = errors.Register("weightedpool", 31, "output amount exceeds the max-out ratio")
	ErrLimitIn     = errors.Register("weightedpool", 32, "input amount above caller limit")
	ErrLimitOut    = errors.Register("weightedpool", 33, "output amount below caller limit")
	ErrLimitPrice  = errors.Register("weightedpool", 34, "spot price exceeds caller limit")
	ErrMathApprox  = errors.Register("weightedpool", 35, "computed amount degenerates under fixed-point rounding")

	// Share ledger errors
	ErrInsufficientShares    = errors.Register("weightedpool", 40, "insufficient pool shares")
	ErrInsufficientAllowance = errors.Register("weightedpool", 41, "insufficient share allowance")
	ErrSharesNotTransferable = errors.Register("weightedpool", 42, "pool shares are not transferable before finalization")
)
