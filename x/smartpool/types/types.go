package types

import (
	"cosmossdk.io/math"
)

// Module name and store key
const (
	ModuleName = "smartpool"
	StoreKey   = ModuleName
)

var (
	// MinPoolSupply and MaxPoolSupply bound the share supply minted when the
	// wrapped pool is instantiated.
	MinPoolSupply = math.LegacyNewDec(100)
	MaxPoolSupply = math.LegacyNewDec(1_000_000_000)

	// UnlimitedCap marks a pool without a supply cap. The value is the
	// largest 256-bit integer in 18-decimal fixed point, far beyond any
	// supply the instantiation bounds admit.
	UnlimitedCap = math.LegacyMustNewDecFromStr("115792089237316195423570985008687907853269984665640564039457.584007913129639935")
)

// GradualUpdate is an in-flight linear weight transition. StartBlock zero
// means no update is scheduled. Denoms pins the record order the weights
// refer to; token adds and removes are blocked while the update runs, so the
// order cannot drift underneath it.
type GradualUpdate struct {
	StartBlock    int64            `json:"start_block"`
	EndBlock      int64            `json:"end_block"`
	Denoms        []string         `json:"denoms,omitempty"`
	StartWeights  []math.LegacyDec `json:"start_weights,omitempty"`
	TargetWeights []math.LegacyDec `json:"target_weights,omitempty"`
}

// NewTokenCommit is a pending token addition waiting out its timelock.
type NewTokenCommit struct {
	Denom       string         `json:"denom"`
	Balance     math.LegacyDec `json:"balance"`
	Weight      math.LegacyDec `json:"weight"`
	CommitBlock int64          `json:"commit_block"`
	Committed   bool           `json:"committed"`
}

// SmartPool is the governance wrapper around one engine pool. The wrapped
// pool is created lazily by CreatePool; until then PoolID is empty and only
// configuration is stored.
type SmartPool struct {
	SmartPoolID string `json:"smart_pool_id"`
	PoolID      string `json:"pool_id,omitempty"`
	Controller  string `json:"controller"`
	Rights      Rights `json:"rights"`

	// initial binding configuration, consumed by CreatePool
	Denoms   []string         `json:"denoms"`
	Balances []math.LegacyDec `json:"balances"`
	Weights  []math.LegacyDec `json:"weights"`
	SwapFee  math.LegacyDec   `json:"swap_fee"`

	Cap math.LegacyDec `json:"cap"`

	MinimumWeightChangeBlockPeriod int64 `json:"minimum_weight_change_block_period"`
	AddTokenTimeLockInBlocks       int64 `json:"add_token_time_lock_in_blocks"`

	GradualUpdate GradualUpdate   `json:"gradual_update"`
	NewToken      NewTokenCommit  `json:"new_token"`
	Whitelist     map[string]bool `json:"whitelist,omitempty"`

	CreatedAt int64 `json:"created_at"`
	UpdatedAt int64 `json:"updated_at"`
}

// NewSmartPool creates an uninstantiated smart pool from its configuration.
// The capability set passed here is final.
func NewSmartPool(smartPoolID, controller string, rights Rights, denoms []string, balances, weights []math.LegacyDec, swapFee math.LegacyDec, minPeriod, addTokenLock, now int64) *SmartPool {
	return &SmartPool{
		SmartPoolID:                    smartPoolID,
		Controller:                     controller,
		Rights:                         rights,
		Denoms:                         denoms,
		Balances:                       balances,
		Weights:                        weights,
		SwapFee:                        swapFee,
		Cap:                            UnlimitedCap,
		MinimumWeightChangeBlockPeriod: minPeriod,
		AddTokenTimeLockInBlocks:       addTokenLock,
		Whitelist:                      map[string]bool{},
		CreatedAt:                      now,
		UpdatedAt:                      now,
	}
}

// PoolCreated reports whether the wrapped engine pool exists yet.
func (sp *SmartPool) PoolCreated() bool {
	return sp.PoolID != ""
}

// HasGradualUpdate reports whether a weight transition is in flight.
func (sp *SmartPool) HasGradualUpdate() bool {
	return sp.GradualUpdate.StartBlock != 0
}

// HasTokenCommit reports whether a token addition is waiting on its timelock.
func (sp *SmartPool) HasTokenCommit() bool {
	return sp.NewToken.Committed
}

// IsWhitelisted reports whether the address may provide liquidity. Only
// meaningful when the whitelist right is held.
func (sp *SmartPool) IsWhitelisted(addr string) bool {
	return sp.Whitelist[addr]
}

// ClearGradualUpdate removes the in-flight weight transition.
func (sp *SmartPool) ClearGradualUpdate() {
	sp.GradualUpdate = GradualUpdate{}
}

// ClearTokenCommit removes the pending token addition.
func (sp *SmartPool) ClearTokenCommit() {
	sp.NewToken = NewTokenCommit{}
}

// ValidateInitialSupply checks the instantiation supply against its bounds.
func ValidateInitialSupply(supply math.LegacyDec) error {
	if supply.LT(MinPoolSupply) || supply.GT(MaxPoolSupply) {
		return ErrInitSupplyOutOfRange
	}
	return nil
}
