package types

import (
	"cosmossdk.io/math"
)

// Module name and store key
const (
	ModuleName = "weightedpool"
	StoreKey   = ModuleName
)

// Binding limits
const (
	MinBoundTokens = 2
	MaxBoundTokens = 8
)

// Pool parameter bounds. Weights are denormalized: a pool prices assets by
// weight ratios, so only the ratios matter, but keeping every weight inside
// [MinWeight, MaxWeight] and the sum under MaxTotalWeight keeps the power
// arguments of the swap math inside its convergence domain.
var (
	MinWeight      = math.LegacyOneDec()
	MaxWeight      = math.LegacyNewDec(50)
	MaxTotalWeight = math.LegacyNewDec(50)

	MinSwapFee = math.LegacyNewDecWithPrec(1, 6)  // 0.0001%
	MaxSwapFee = math.LegacyNewDecWithPrec(1, 1)  // 10%
	MinBalance = math.LegacyNewDecWithPrec(1, 12) // dust floor for bound tokens

	// InitPoolSupply is minted to the controller when a pool is finalized.
	InitPoolSupply = math.LegacyNewDec(100)

	// MaxInRatio and MaxOutRatio bound a single trade relative to the pool
	// balance on the respective side. The extra wei on MaxOutRatio admits
	// an exact one-third withdrawal.
	MaxInRatio  = math.LegacyNewDecWithPrec(5, 1)
	MaxOutRatio = math.LegacyOneDec().Quo(math.LegacyNewDec(3)).Add(math.LegacyNewDecWithPrec(1, 18))

	// ExitFee is charged in pool shares on every exit and credited to the
	// factory collector. Deployments run it at zero; the exit formulas
	// keep the factor so a nonzero fee needs no code change.
	ExitFee = math.LegacyZeroDec()
)

// AssetRecord tracks one bound token of a pool. Record order is bind order;
// removing a token moves the last record into its slot.
type AssetRecord struct {
	Denom   string         `json:"denom"`
	Balance math.LegacyDec `json:"balance"`
	Weight  math.LegacyDec `json:"weight"` // denormalized
}

// Pool is a weighted constant-product liquidity pool.
type Pool struct {
	PoolID     string         `json:"pool_id"`
	Controller string         `json:"controller"`
	SwapFee    math.LegacyDec `json:"swap_fee"`
	PublicSwap bool           `json:"public_swap"`
	Finalized  bool           `json:"finalized"`
	Records    []AssetRecord  `json:"records"`
	Shares     ShareLedger    `json:"shares"`
	CreatedAt  int64          `json:"created_at"`
	UpdatedAt  int64          `json:"updated_at"`
}

// NewPool creates an open pool controlled by the given address. Swapping and
// joining stay disabled until the controller binds assets and either
// finalizes the pool or enables public swapping.
func NewPool(poolID, controller string, now int64) *Pool {
	return &Pool{
		PoolID:     poolID,
		Controller: controller,
		SwapFee:    MinSwapFee,
		PublicSwap: false,
		Finalized:  false,
		Records:    []AssetRecord{},
		Shares:     NewShareLedger(),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// IsBound reports whether the denom is bound to the pool.
func (p *Pool) IsBound(denom string) bool {
	_, ok := p.recordIndex(denom)
	return ok
}

// GetRecord returns the asset record for a denom.
func (p *Pool) GetRecord(denom string) (AssetRecord, bool) {
	if i, ok := p.recordIndex(denom); ok {
		return p.Records[i], true
	}
	return AssetRecord{}, false
}

// SetRecord overwrites the balance and weight of a bound denom.
func (p *Pool) SetRecord(denom string, balance, weight math.LegacyDec) bool {
	i, ok := p.recordIndex(denom)
	if !ok {
		return false
	}
	p.Records[i].Balance = balance
	p.Records[i].Weight = weight
	return true
}

// AddRecord appends a new asset record in bind order.
func (p *Pool) AddRecord(denom string, balance, weight math.LegacyDec) {
	p.Records = append(p.Records, AssetRecord{Denom: denom, Balance: balance, Weight: weight})
}

// RemoveRecord unbinds a denom, moving the last record into its slot.
func (p *Pool) RemoveRecord(denom string) bool {
	i, ok := p.recordIndex(denom)
	if !ok {
		return false
	}
	last := len(p.Records) - 1
	p.Records[i] = p.Records[last]
	p.Records = p.Records[:last]
	return true
}

// NumTokens returns the number of bound tokens.
func (p *Pool) NumTokens() int {
	return len(p.Records)
}

// TotalWeight returns the sum of all denormalized weights.
func (p *Pool) TotalWeight() math.LegacyDec {
	total := math.LegacyZeroDec()
	for _, rec := range p.Records {
		total = total.Add(rec.Weight)
	}
	return total
}

// Denoms returns the bound denoms in record order.
func (p *Pool) Denoms() []string {
	denoms := make([]string, len(p.Records))
	for i, rec := range p.Records {
		denoms[i] = rec.Denom
	}
	return denoms
}

func (p *Pool) recordIndex(denom string) (int, bool) {
	for i, rec := range p.Records {
		if rec.Denom == denom {
			return i, true
		}
	}
	return 0, false
}

// ValidateWeight checks a single denormalized weight against the bounds.
func ValidateWeight(weight math.LegacyDec) error {
	if weight.LT(MinWeight) {
		return ErrWeightBelowMin
	}
	if weight.GT(MaxWeight) {
		return ErrWeightAboveMax
	}
	return nil
}

// ValidateBalance checks a bound-token balance against the dust floor.
func ValidateBalance(balance math.LegacyDec) error {
	if balance.LT(MinBalance) {
		return ErrBalanceBelowMin
	}
	return nil
}

// ValidateSwapFee checks a swap fee against the allowed range.
func ValidateSwapFee(swapFee math.LegacyDec) error {
	if swapFee.LT(MinSwapFee) || swapFee.GT(MaxSwapFee) {
		return ErrSwapFeeOutOfRange
	}
	return nil
}
