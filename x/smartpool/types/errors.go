package types

import (
	errors "cosmossdk.io/errors"
)

// lifecycle and access errors
var (
	ErrSmartPoolNotFound    = errors.Register("smartpool", 1, "smart pool not found")
	ErrNotController        = errors.Register("smartpool", 2, "caller is not the smart pool controller")
	ErrPoolAlreadyCreated   = errors.Register("smartpool", 3, "wrapped pool already created")
	ErrPoolNotCreated       = errors.Register("smartpool", 4, "wrapped pool not created yet")
	ErrInitSupplyOutOfRange = errors.Register("smartpool", 5, "initial supply out of range")
	ErrReentrancy           = errors.Register("smartpool", 6, "smart pool operation already in progress")
	ErrInvalidAddress       = errors.Register("smartpool", 7, "invalid address")
	ErrInvalidConfig        = errors.Register("smartpool", 8, "invalid smart pool configuration")
)

// capability errors, one per right
var (
	ErrNotPausableSwap          = errors.Register("smartpool", 10, "pool does not have the pause swapping right")
	ErrNotConfigurableSwapFee   = errors.Register("smartpool", 11, "pool does not have the change swap fee right")
	ErrNotConfigurableWeights   = errors.Register("smartpool", 12, "pool does not have the change weights right")
	ErrNotConfigurableTokens    = errors.Register("smartpool", 13, "pool does not have the add/remove tokens right")
	ErrNotWhitelistConfigurable = errors.Register("smartpool", 14, "pool does not have the whitelist right")
	ErrNotConfigurableCap       = errors.Register("smartpool", 15, "pool does not have the change cap right")
)

// weight update errors
var (
	ErrUpdateDuringGradual  = errors.Register("smartpool", 20, "a gradual weight update is in progress")
	ErrWeightChangeTooShort = errors.Register("smartpool", 21, "weight change period below the configured minimum")
	ErrWeightsMismatch      = errors.Register("smartpool", 22, "weight array does not match the bound tokens")
)

// token add/remove errors
var (
	ErrCommitPending      = errors.Register("smartpool", 25, "a token addition is already committed")
	ErrNoTokenCommit      = errors.Register("smartpool", 26, "no token addition committed")
	ErrTimelockNotElapsed = errors.Register("smartpool", 27, "token addition timelock has not elapsed")
)

// liquidity errors
var (
	ErrNotOnWhitelist  = errors.Register("smartpool", 30, "liquidity provider is not whitelisted")
	ErrCapLimitReached = errors.Register("smartpool", 31, "share supply cap reached")
	ErrInvalidAmount   = errors.Register("smartpool", 32, "invalid amount")
)

// batch errors
var (
	ErrBatchStepFailed = errors.Register("smartpool", 40, "action batch step failed")
	ErrUnknownAction   = errors.Register("smartpool", 41, "unknown batch action")
)
