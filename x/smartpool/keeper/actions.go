package keeper

import (
	"strconv"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/openalpha/amm-dex/x/smartpool/types"
)

// RunActionBatch executes a sequence of controller actions against one smart
// pool atomically. Steps run in order against a branched state, so later
// steps see the effects of earlier ones; the first failing step discards the
// whole batch. The batch identifier is reserved only on success.
func (k *Keeper) RunActionBatch(ctx sdk.Context, controller, smartPoolID string, steps []types.ActionStep) (string, int, error) {
	if len(steps) == 0 {
		return "", 0, types.ErrInvalidConfig
	}
	sp := k.GetSmartPool(ctx, smartPoolID)
	if sp == nil {
		return "", 0, types.ErrSmartPoolNotFound
	}
	if sp.Controller != controller {
		return "", 0, types.ErrNotController
	}

	cacheCtx, write := ctx.CacheContext()
	for i, step := range steps {
		if err := k.runActionStep(cacheCtx, controller, smartPoolID, step); err != nil {
			// drop the schedule cache along with the branch; it rebuilds
			// from the committed index on next use
			k.schedule.reset()
			return "", 0, types.ErrBatchStepFailed.Wrapf("step %d (%s): %s", i, step.Action, err)
		}
	}
	batchID := k.nextBatchID(cacheCtx)
	write()

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"smartpool_action_batch",
			sdk.NewAttribute("smart_pool_id", smartPoolID),
			sdk.NewAttribute("batch_id", batchID),
			sdk.NewAttribute("steps", strconv.Itoa(len(steps))),
		),
	)

	k.logger.Info("Action batch executed",
		"smart_pool_id", smartPoolID,
		"batch_id", batchID,
		"steps", len(steps),
	)

	return batchID, len(steps), nil
}

// runActionStep dispatches one batch step to the matching keeper operation.
func (k *Keeper) runActionStep(ctx sdk.Context, controller, smartPoolID string, step types.ActionStep) error {
	switch step.Action {
	case types.ActionCreate:
		initialSupply, err := math.LegacyNewDecFromStr(step.InitialSupply)
		if err != nil {
			return err
		}
		_, err = k.CreatePool(ctx, controller, smartPoolID, initialSupply, 0, 0)
		return err

	case types.ActionJoin:
		poolAmountOut, err := math.LegacyNewDecFromStr(step.PoolAmountOut)
		if err != nil {
			return err
		}
		maxAmountsIn, err := parseDecMap(step.MaxAmountsIn)
		if err != nil {
			return err
		}
		_, err = k.JoinPool(ctx, controller, smartPoolID, poolAmountOut, maxAmountsIn)
		return err

	case types.ActionUpdateWeightsGradually:
		newWeights := make([]math.LegacyDec, len(step.NewWeights))
		for i, s := range step.NewWeights {
			w, err := math.LegacyNewDecFromStr(s)
			if err != nil {
				return err
			}
			newWeights[i] = w
		}
		_, _, err := k.UpdateWeightsGradually(ctx, controller, smartPoolID, newWeights, step.StartBlock, step.EndBlock)
		return err

	case types.ActionCommitAddToken:
		balance, err := math.LegacyNewDecFromStr(step.Balance)
		if err != nil {
			return err
		}
		weight, err := math.LegacyNewDecFromStr(step.Weight)
		if err != nil {
			return err
		}
		_, _, err = k.CommitAddToken(ctx, controller, smartPoolID, step.Denom, balance, weight)
		return err

	case types.ActionApplyAddToken:
		_, _, err := k.ApplyAddToken(ctx, controller, smartPoolID)
		return err

	case types.ActionRemoveToken:
		_, _, err := k.RemoveToken(ctx, controller, smartPoolID, step.Denom)
		return err

	case types.ActionWhitelist:
		_, err := k.WhitelistLiquidityProvider(ctx, controller, smartPoolID, step.Provider)
		return err

	case types.ActionPoke:
		_, err := k.PokeWeights(ctx, smartPoolID)
		return err

	default:
		return types.ErrUnknownAction
	}
}

// parseDecMap parses per-denom decimal bounds.
func parseDecMap(in map[string]string) (map[string]math.LegacyDec, error) {
	out := make(map[string]math.LegacyDec, len(in))
	for denom, s := range in {
		d, err := math.LegacyNewDecFromStr(s)
		if err != nil {
			return nil, err
		}
		out[denom] = d
	}
	return out, nil
}
