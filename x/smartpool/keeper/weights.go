package keeper

import (
	"strconv"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/openalpha/amm-dex/x/smartpool/types"
	wptypes "github.com/openalpha/amm-dex/x/weightedpool/types"

	"github.com/openalpha/amm-dex/ammmath"
)

// UpdateWeight changes one token weight immediately. The balance scales with
// the weight so every spot price in the pool stays put: a weight increase
// pulls the balance delta from the controller and mints supply*dw/totalWeight
// shares to it, a decrease pushes the delta out and burns the same ratio.
func (k *Keeper) UpdateWeight(ctx sdk.Context, controller, smartPoolID, denom string, newWeight math.LegacyDec) (math.LegacyDec, math.LegacyDec, error) {
	if err := k.acquireSmartPool(smartPoolID); err != nil {
		return math.LegacyDec{}, math.LegacyDec{}, err
	}
	defer k.releaseSmartPool(smartPoolID)

	sp, err := k.loadSmartPoolForController(ctx, smartPoolID, controller)
	if err != nil {
		return math.LegacyDec{}, math.LegacyDec{}, err
	}
	if !sp.Rights.CanChangeWeights {
		return math.LegacyDec{}, math.LegacyDec{}, types.ErrNotConfigurableWeights
	}
	if !sp.PoolCreated() {
		return math.LegacyDec{}, math.LegacyDec{}, types.ErrPoolNotCreated
	}
	if sp.HasGradualUpdate() {
		return math.LegacyDec{}, math.LegacyDec{}, types.ErrUpdateDuringGradual
	}
	pool := k.engine.GetPool(ctx, sp.PoolID)
	if pool == nil {
		return math.LegacyDec{}, math.LegacyDec{}, types.ErrPoolNotCreated
	}
	record, found := pool.GetRecord(denom)
	if !found {
		return math.LegacyDec{}, math.LegacyDec{}, wptypes.ErrTokenNotBound
	}
	if newWeight.IsNil() {
		return math.LegacyDec{}, math.LegacyDec{}, types.ErrInvalidAmount
	}
	if err := wptypes.ValidateWeight(newWeight); err != nil {
		return math.LegacyDec{}, math.LegacyDec{}, err
	}

	supply := pool.Shares.TotalSupply
	totalWeight := pool.TotalWeight()
	if newWeight.Equal(record.Weight) {
		return totalWeight, supply, nil
	}

	// newBalance = balance * newWeight / oldWeight keeps every spot price
	// in the pool unchanged.
	scaled, err := ammmath.Mul(record.Balance, newWeight)
	if err != nil {
		return math.LegacyDec{}, math.LegacyDec{}, err
	}
	newBalance, err := ammmath.Div(scaled, record.Weight)
	if err != nil {
		return math.LegacyDec{}, math.LegacyDec{}, err
	}

	var newSupply, newTotalWeight math.LegacyDec
	cacheCtx, write := ctx.CacheContext()

	if newWeight.LT(record.Weight) {
		deltaWeight, err := ammmath.Sub(record.Weight, newWeight)
		if err != nil {
			return math.LegacyDec{}, math.LegacyDec{}, err
		}
		scaledSupply, err := ammmath.Mul(supply, deltaWeight)
		if err != nil {
			return math.LegacyDec{}, math.LegacyDec{}, err
		}
		sharesToBurn, err := ammmath.Div(scaledSupply, totalWeight)
		if err != nil {
			return math.LegacyDec{}, math.LegacyDec{}, err
		}
		deltaBalance, err := ammmath.Sub(record.Balance, newBalance)
		if err != nil {
			return math.LegacyDec{}, math.LegacyDec{}, err
		}

		if err := k.engine.Rebind(cacheCtx, k.moduleAddr, sp.PoolID, denom, newBalance, newWeight); err != nil {
			return math.LegacyDec{}, math.LegacyDec{}, err
		}
		if err := k.pushTokens(cacheCtx, controller, denom, deltaBalance); err != nil {
			return math.LegacyDec{}, math.LegacyDec{}, err
		}
		if err := k.engine.BurnShares(cacheCtx, k.moduleAddr, sp.PoolID, controller, sharesToBurn); err != nil {
			return math.LegacyDec{}, math.LegacyDec{}, err
		}
		newSupply, err = ammmath.Sub(supply, sharesToBurn)
		if err != nil {
			return math.LegacyDec{}, math.LegacyDec{}, err
		}
		newTotalWeight, err = ammmath.Sub(totalWeight, deltaWeight)
		if err != nil {
			return math.LegacyDec{}, math.LegacyDec{}, err
		}
	} else {
		deltaWeight, err := ammmath.Sub(newWeight, record.Weight)
		if err != nil {
			return math.LegacyDec{}, math.LegacyDec{}, err
		}
		scaledSupply, err := ammmath.Mul(supply, deltaWeight)
		if err != nil {
			return math.LegacyDec{}, math.LegacyDec{}, err
		}
		sharesToMint, err := ammmath.Div(scaledSupply, totalWeight)
		if err != nil {
			return math.LegacyDec{}, math.LegacyDec{}, err
		}
		newSupply, err = ammmath.Add(supply, sharesToMint)
		if err != nil {
			return math.LegacyDec{}, math.LegacyDec{}, err
		}
		if err := checkCap(sp, newSupply); err != nil {
			return math.LegacyDec{}, math.LegacyDec{}, err
		}
		deltaBalance, err := ammmath.Sub(newBalance, record.Balance)
		if err != nil {
			return math.LegacyDec{}, math.LegacyDec{}, err
		}

		if err := k.pullTokens(cacheCtx, controller, denom, deltaBalance); err != nil {
			return math.LegacyDec{}, math.LegacyDec{}, err
		}
		if err := k.engine.Rebind(cacheCtx, k.moduleAddr, sp.PoolID, denom, newBalance, newWeight); err != nil {
			return math.LegacyDec{}, math.LegacyDec{}, err
		}
		if err := k.engine.MintShares(cacheCtx, k.moduleAddr, sp.PoolID, controller, sharesToMint); err != nil {
			return math.LegacyDec{}, math.LegacyDec{}, err
		}
		newTotalWeight, err = ammmath.Add(totalWeight, deltaWeight)
		if err != nil {
			return math.LegacyDec{}, math.LegacyDec{}, err
		}
	}

	sp.UpdatedAt = ctx.BlockTime().Unix()
	k.SetSmartPool(cacheCtx, sp)
	write()

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"smartpool_update_weight",
			sdk.NewAttribute("smart_pool_id", smartPoolID),
			sdk.NewAttribute("denom", denom),
			sdk.NewAttribute("new_weight", newWeight.String()),
			sdk.NewAttribute("total_weight", newTotalWeight.String()),
			sdk.NewAttribute("pool_supply", newSupply.String()),
		),
	)

	k.logger.Info("Weight updated",
		"smart_pool_id", smartPoolID,
		"denom", denom,
		"new_weight", newWeight.String(),
		"pool_supply", newSupply.String(),
	)

	return newTotalWeight, newSupply, nil
}

// UpdateWeightsGradually schedules a linear transition of all weights to
// newWeights, ordered like the engine pool records. Past start blocks clamp
// to the current block; the transition must span at least the pool's minimum
// block period. Balances never move, so spot prices drift along the
// transition. A running transition is replaced.
func (k *Keeper) UpdateWeightsGradually(ctx sdk.Context, controller, smartPoolID string, newWeights []math.LegacyDec, startBlock, endBlock int64) (int64, int64, error) {
	if err := k.acquireSmartPool(smartPoolID); err != nil {
		return 0, 0, err
	}
	defer k.releaseSmartPool(smartPoolID)

	sp, err := k.loadSmartPoolForController(ctx, smartPoolID, controller)
	if err != nil {
		return 0, 0, err
	}
	if !sp.Rights.CanChangeWeights {
		return 0, 0, types.ErrNotConfigurableWeights
	}
	if !sp.PoolCreated() {
		return 0, 0, types.ErrPoolNotCreated
	}
	pool := k.engine.GetPool(ctx, sp.PoolID)
	if pool == nil {
		return 0, 0, types.ErrPoolNotCreated
	}
	if len(newWeights) != pool.NumTokens() {
		return 0, 0, types.ErrWeightsMismatch
	}

	totalWeight := math.LegacyZeroDec()
	for _, w := range newWeights {
		if w.IsNil() {
			return 0, 0, types.ErrInvalidAmount
		}
		if err := wptypes.ValidateWeight(w); err != nil {
			return 0, 0, err
		}
		next, err := ammmath.Add(totalWeight, w)
		if err != nil {
			return 0, 0, err
		}
		totalWeight = next
	}
	if totalWeight.GT(wptypes.MaxTotalWeight) {
		return 0, 0, wptypes.ErrTotalWeightTooHigh
	}

	actualStart := startBlock
	if height := ctx.BlockHeight(); actualStart < height {
		actualStart = height
	}
	if endBlock <= actualStart {
		return 0, 0, types.ErrWeightChangeTooShort
	}
	if endBlock-actualStart < sp.MinimumWeightChangeBlockPeriod {
		return 0, 0, types.ErrWeightChangeTooShort
	}

	if sp.HasGradualUpdate() {
		k.unscheduleUpdate(ctx, smartPoolID, sp.GradualUpdate.EndBlock)
	}

	startWeights := make([]math.LegacyDec, pool.NumTokens())
	for i, rec := range pool.Records {
		startWeights[i] = rec.Weight
	}
	sp.GradualUpdate = types.GradualUpdate{
		StartBlock:    actualStart,
		EndBlock:      endBlock,
		Denoms:        pool.Denoms(),
		StartWeights:  startWeights,
		TargetWeights: newWeights,
	}
	sp.UpdatedAt = ctx.BlockTime().Unix()
	k.SetSmartPool(ctx, sp)
	k.scheduleUpdate(ctx, smartPoolID, endBlock)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"smartpool_update_weights_gradually",
			sdk.NewAttribute("smart_pool_id", smartPoolID),
			sdk.NewAttribute("start_block", strconv.FormatInt(actualStart, 10)),
			sdk.NewAttribute("end_block", strconv.FormatInt(endBlock, 10)),
		),
	)

	k.logger.Info("Gradual weight update scheduled",
		"smart_pool_id", smartPoolID,
		"start_block", actualStart,
		"end_block", endBlock,
	)

	return actualStart, endBlock, nil
}

// PokeWeights advances a running gradual update to the current block by
// linear interpolation. At or past the end block it writes the targets
// exactly and clears the transition. Without a transition, or before its
// start block, it reports the current weights and changes nothing. Anyone
// may poke; the EndBlocker pokes every scheduled pool each block.
func (k *Keeper) PokeWeights(ctx sdk.Context, smartPoolID string) (map[string]math.LegacyDec, error) {
	if err := k.acquireSmartPool(smartPoolID); err != nil {
		return nil, err
	}
	defer k.releaseSmartPool(smartPoolID)

	sp, pool, err := k.loadCreatedPool(ctx, smartPoolID)
	if err != nil {
		return nil, err
	}

	weights := make(map[string]math.LegacyDec, pool.NumTokens())
	for _, rec := range pool.Records {
		weights[rec.Denom] = rec.Weight
	}
	if !sp.HasGradualUpdate() {
		return weights, nil
	}
	gu := sp.GradualUpdate
	height := ctx.BlockHeight()
	if height < gu.StartBlock {
		return weights, nil
	}
	done := height >= gu.EndBlock

	var fraction math.LegacyDec
	if !done {
		fraction, err = ammmath.Div(math.LegacyNewDec(height-gu.StartBlock), math.LegacyNewDec(gu.EndBlock-gu.StartBlock))
		if err != nil {
			return nil, err
		}
	}

	// interpolate per denom; decreases apply before increases so the total
	// weight stays inside its bound at every step
	interpolated := make([]math.LegacyDec, len(gu.Denoms))
	for i := range gu.Denoms {
		if done {
			interpolated[i] = gu.TargetWeights[i]
			continue
		}
		start, target := gu.StartWeights[i], gu.TargetWeights[i]
		if target.GTE(start) {
			span, err := ammmath.Sub(target, start)
			if err != nil {
				return nil, err
			}
			step, err := ammmath.Mul(span, fraction)
			if err != nil {
				return nil, err
			}
			interpolated[i], err = ammmath.Add(start, step)
			if err != nil {
				return nil, err
			}
		} else {
			span, err := ammmath.Sub(start, target)
			if err != nil {
				return nil, err
			}
			step, err := ammmath.Mul(span, fraction)
			if err != nil {
				return nil, err
			}
			interpolated[i], err = ammmath.Sub(start, step)
			if err != nil {
				return nil, err
			}
		}
	}

	changed := false
	cacheCtx, write := ctx.CacheContext()
	for pass := 0; pass < 2; pass++ {
		for i, denom := range gu.Denoms {
			rec, found := pool.GetRecord(denom)
			if !found {
				return nil, wptypes.ErrTokenNotBound
			}
			if interpolated[i].Equal(rec.Weight) {
				continue
			}
			decrease := interpolated[i].LT(rec.Weight)
			if pass == 0 && !decrease {
				continue
			}
			if pass == 1 && decrease {
				continue
			}
			if err := k.engine.Rebind(cacheCtx, k.moduleAddr, sp.PoolID, denom, rec.Balance, interpolated[i]); err != nil {
				return nil, err
			}
			weights[denom] = interpolated[i]
			changed = true
		}
	}
	if done {
		sp.ClearGradualUpdate()
		sp.UpdatedAt = ctx.BlockTime().Unix()
		k.SetSmartPool(cacheCtx, sp)
		k.GetStore(cacheCtx).Delete(scheduleKey(gu.EndBlock, smartPoolID))
	}
	write()
	if done {
		k.schedule.remove(gu.EndBlock, smartPoolID)
	}

	if changed || done {
		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				"smartpool_poke_weights",
				sdk.NewAttribute("smart_pool_id", smartPoolID),
				sdk.NewAttribute("block", strconv.FormatInt(height, 10)),
				sdk.NewAttribute("completed", strconv.FormatBool(done)),
			),
		)
	}

	return weights, nil
}
