package keeper

import (
	"strconv"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/openalpha/amm-dex/x/weightedpool/types"

	"github.com/openalpha/amm-dex/ammmath"
)

// loadPool fetches a pool or fails with ErrPoolNotFound
func (k *Keeper) loadPool(ctx sdk.Context, poolID string) (*types.Pool, error) {
	pool := k.GetPool(ctx, poolID)
	if pool == nil {
		return nil, types.ErrPoolNotFound
	}
	return pool, nil
}

// loadPoolForController fetches a pool and checks the caller controls it
func (k *Keeper) loadPoolForController(ctx sdk.Context, poolID, controller string) (*types.Pool, error) {
	pool, err := k.loadPool(ctx, poolID)
	if err != nil {
		return nil, err
	}
	if pool.Controller != controller {
		return nil, types.ErrNotController
	}
	return pool, nil
}

// CreatePool creates a new unfinalized pool controlled by the creator. The
// pool starts with no bound tokens, private swaps and the minimum swap fee.
func (k *Keeper) CreatePool(ctx sdk.Context, creator string) (*types.Pool, error) {
	if _, err := sdk.AccAddressFromBech32(creator); err != nil {
		return nil, types.ErrInvalidAddress
	}

	poolID := k.nextPoolID(ctx)
	pool := types.NewPool(poolID, creator, ctx.BlockTime().Unix())
	k.SetPool(ctx, pool)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"weightedpool_create",
			sdk.NewAttribute("pool_id", poolID),
			sdk.NewAttribute("controller", creator),
		),
	)

	k.logger.Info("Pool created",
		"pool_id", poolID,
		"controller", creator,
	)

	return pool, nil
}

// Bind attaches a new token to an unfinalized pool, pulling the initial
// balance from the controller.
func (k *Keeper) Bind(ctx sdk.Context, controller, poolID, denom string, balance, weight math.LegacyDec) error {
	if err := k.acquirePool(poolID); err != nil {
		return err
	}
	defer k.releasePool(poolID)

	pool, err := k.loadPoolForController(ctx, poolID, controller)
	if err != nil {
		return err
	}
	if pool.Finalized {
		return types.ErrPoolFinalized
	}
	if pool.IsBound(denom) {
		return types.ErrTokenAlreadyBound
	}
	if pool.NumTokens() >= types.MaxBoundTokens {
		return types.ErrMaxTokens
	}
	if err := types.ValidateWeight(weight); err != nil {
		return err
	}
	if err := types.ValidateBalance(balance); err != nil {
		return err
	}
	newTotal, err := ammmath.Add(pool.TotalWeight(), weight)
	if err != nil {
		return err
	}
	if newTotal.GT(types.MaxTotalWeight) {
		return types.ErrTotalWeightTooHigh
	}

	cacheCtx, write := ctx.CacheContext()
	if err := k.pullTokens(cacheCtx, controller, denom, balance); err != nil {
		return err
	}
	pool.AddRecord(denom, balance, weight)
	pool.UpdatedAt = ctx.BlockTime().Unix()
	k.SetPool(cacheCtx, pool)
	write()

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"weightedpool_bind",
			sdk.NewAttribute("pool_id", poolID),
			sdk.NewAttribute("denom", denom),
			sdk.NewAttribute("balance", balance.String()),
			sdk.NewAttribute("weight", weight.String()),
		),
	)

	k.logger.Info("Token bound",
		"pool_id", poolID,
		"denom", denom,
		"balance", balance.String(),
		"weight", weight.String(),
	)

	return nil
}

// Rebind changes the balance and weight of a bound token on an unfinalized
// pool. Balance increases pull the difference from the controller, decreases
// push it back minus the exit fee.
func (k *Keeper) Rebind(ctx sdk.Context, controller, poolID, denom string, balance, weight math.LegacyDec) error {
	if err := k.acquirePool(poolID); err != nil {
		return err
	}
	defer k.releasePool(poolID)

	pool, err := k.loadPoolForController(ctx, poolID, controller)
	if err != nil {
		return err
	}
	if pool.Finalized {
		return types.ErrPoolFinalized
	}
	return k.rebind(ctx, pool, controller, denom, balance, weight)
}

// rebind applies a balance and weight change for a bound token, settling the
// token difference with recipient. Guard and finalize policy are the
// caller's responsibility; the weight engine reuses this on finalized smart
// pools.
func (k *Keeper) rebind(ctx sdk.Context, pool *types.Pool, recipient, denom string, balance, weight math.LegacyDec) error {
	record, found := pool.GetRecord(denom)
	if !found {
		return types.ErrTokenNotBound
	}
	if err := types.ValidateWeight(weight); err != nil {
		return err
	}
	if err := types.ValidateBalance(balance); err != nil {
		return err
	}

	if weight.GT(record.Weight) {
		increase, err := ammmath.Sub(weight, record.Weight)
		if err != nil {
			return err
		}
		newTotal, err := ammmath.Add(pool.TotalWeight(), increase)
		if err != nil {
			return err
		}
		if newTotal.GT(types.MaxTotalWeight) {
			return types.ErrTotalWeightTooHigh
		}
	}

	oldBalance := record.Balance
	cacheCtx, write := ctx.CacheContext()

	if balance.GT(oldBalance) {
		delta, err := ammmath.Sub(balance, oldBalance)
		if err != nil {
			return err
		}
		if err := k.pullTokens(cacheCtx, recipient, denom, delta); err != nil {
			return err
		}
	} else if balance.LT(oldBalance) {
		withdrawn, err := ammmath.Sub(oldBalance, balance)
		if err != nil {
			return err
		}
		exitFee, err := ammmath.Mul(withdrawn, types.ExitFee)
		if err != nil {
			return err
		}
		returned, err := ammmath.Sub(withdrawn, exitFee)
		if err != nil {
			return err
		}
		if err := k.pushTokens(cacheCtx, recipient, denom, returned); err != nil {
			return err
		}
		if err := k.pushTokens(cacheCtx, k.authority, denom, exitFee); err != nil {
			return err
		}
	}

	pool.SetRecord(denom, balance, weight)
	pool.UpdatedAt = ctx.BlockTime().Unix()
	k.SetPool(cacheCtx, pool)
	write()

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"weightedpool_rebind",
			sdk.NewAttribute("pool_id", pool.PoolID),
			sdk.NewAttribute("denom", denom),
			sdk.NewAttribute("balance", balance.String()),
			sdk.NewAttribute("weight", weight.String()),
		),
	)

	return nil
}

// Unbind detaches a token from an unfinalized pool and returns its balance
// to the controller minus the exit fee.
func (k *Keeper) Unbind(ctx sdk.Context, controller, poolID, denom string) (math.LegacyDec, error) {
	if err := k.acquirePool(poolID); err != nil {
		return math.LegacyDec{}, err
	}
	defer k.releasePool(poolID)

	pool, err := k.loadPoolForController(ctx, poolID, controller)
	if err != nil {
		return math.LegacyDec{}, err
	}
	if pool.Finalized {
		return math.LegacyDec{}, types.ErrPoolFinalized
	}
	record, found := pool.GetRecord(denom)
	if !found {
		return math.LegacyDec{}, types.ErrTokenNotBound
	}

	exitFee, err := ammmath.Mul(record.Balance, types.ExitFee)
	if err != nil {
		return math.LegacyDec{}, err
	}
	returned, err := ammmath.Sub(record.Balance, exitFee)
	if err != nil {
		return math.LegacyDec{}, err
	}

	cacheCtx, write := ctx.CacheContext()
	if err := k.pushTokens(cacheCtx, controller, denom, returned); err != nil {
		return math.LegacyDec{}, err
	}
	if err := k.pushTokens(cacheCtx, k.authority, denom, exitFee); err != nil {
		return math.LegacyDec{}, err
	}
	pool.RemoveRecord(denom)
	pool.UpdatedAt = ctx.BlockTime().Unix()
	k.SetPool(cacheCtx, pool)
	write()

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"weightedpool_unbind",
			sdk.NewAttribute("pool_id", poolID),
			sdk.NewAttribute("denom", denom),
			sdk.NewAttribute("balance_returned", returned.String()),
		),
	)

	k.logger.Info("Token unbound",
		"pool_id", poolID,
		"denom", denom,
		"balance_returned", returned.String(),
	)

	return returned, nil
}

// SetSwapFee updates the swap fee on an unfinalized pool
func (k *Keeper) SetSwapFee(ctx sdk.Context, controller, poolID string, swapFee math.LegacyDec) error {
	if err := k.acquirePool(poolID); err != nil {
		return err
	}
	defer k.releasePool(poolID)

	pool, err := k.loadPoolForController(ctx, poolID, controller)
	if err != nil {
		return err
	}
	if pool.Finalized {
		return types.ErrPoolFinalized
	}
	if err := types.ValidateSwapFee(swapFee); err != nil {
		return err
	}

	pool.SwapFee = swapFee
	pool.UpdatedAt = ctx.BlockTime().Unix()
	k.SetPool(ctx, pool)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"weightedpool_set_swap_fee",
			sdk.NewAttribute("pool_id", poolID),
			sdk.NewAttribute("swap_fee", swapFee.String()),
		),
	)

	return nil
}

// SetPublicSwap toggles public swapping on an unfinalized pool
func (k *Keeper) SetPublicSwap(ctx sdk.Context, controller, poolID string, public bool) error {
	if err := k.acquirePool(poolID); err != nil {
		return err
	}
	defer k.releasePool(poolID)

	pool, err := k.loadPoolForController(ctx, poolID, controller)
	if err != nil {
		return err
	}
	if pool.Finalized {
		return types.ErrPoolFinalized
	}

	pool.PublicSwap = public
	pool.UpdatedAt = ctx.BlockTime().Unix()
	k.SetPool(ctx, pool)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"weightedpool_set_public_swap",
			sdk.NewAttribute("pool_id", poolID),
			sdk.NewAttribute("public", strconv.FormatBool(public)),
		),
	)

	return nil
}

// SetController hands control of a pool to a new address. Unlike the other
// configuration calls this works on finalized pools too.
func (k *Keeper) SetController(ctx sdk.Context, controller, poolID, newController string) error {
	if err := k.acquirePool(poolID); err != nil {
		return err
	}
	defer k.releasePool(poolID)

	pool, err := k.loadPoolForController(ctx, poolID, controller)
	if err != nil {
		return err
	}
	if _, err := sdk.AccAddressFromBech32(newController); err != nil {
		return types.ErrInvalidAddress
	}

	pool.Controller = newController
	pool.UpdatedAt = ctx.BlockTime().Unix()
	k.SetPool(ctx, pool)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"weightedpool_set_controller",
			sdk.NewAttribute("pool_id", poolID),
			sdk.NewAttribute("controller", newController),
		),
	)

	return nil
}

// FinalizePool locks the pool configuration, opens public swapping for good
// and mints the initial share supply to the controller.
func (k *Keeper) FinalizePool(ctx sdk.Context, controller, poolID string) (math.LegacyDec, error) {
	if err := k.acquirePool(poolID); err != nil {
		return math.LegacyDec{}, err
	}
	defer k.releasePool(poolID)

	pool, err := k.loadPoolForController(ctx, poolID, controller)
	if err != nil {
		return math.LegacyDec{}, err
	}
	if pool.Finalized {
		return math.LegacyDec{}, types.ErrPoolFinalized
	}
	if pool.NumTokens() < types.MinBoundTokens {
		return math.LegacyDec{}, types.ErrMinTokens
	}

	pool.Finalized = true
	pool.PublicSwap = true
	if err := pool.Shares.Mint(controller, types.InitPoolSupply); err != nil {
		return math.LegacyDec{}, err
	}
	pool.UpdatedAt = ctx.BlockTime().Unix()
	k.SetPool(ctx, pool)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"weightedpool_finalize",
			sdk.NewAttribute("pool_id", poolID),
			sdk.NewAttribute("shares_minted", types.InitPoolSupply.String()),
		),
	)

	k.logger.Info("Pool finalized",
		"pool_id", poolID,
		"tokens", pool.NumTokens(),
		"shares_minted", types.InitPoolSupply.String(),
	)

	return types.InitPoolSupply, nil
}
