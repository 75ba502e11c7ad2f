package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/openalpha/amm-dex/x/smartpool/types"
	wptypes "github.com/openalpha/amm-dex/x/weightedpool/types"

	"github.com/openalpha/amm-dex/ammmath"
)

// checkJoinAllowed gates joins on the whitelist when the whitelist right is
// held. Exits are never gated.
func checkJoinAllowed(sp *types.SmartPool, sender string) error {
	if sp.Rights.CanWhitelistLPs && !sp.IsWhitelisted(sender) {
		return types.ErrNotOnWhitelist
	}
	return nil
}

// JoinPool deposits all bound tokens in proportion to the current engine
// balances and mints exactly poolAmountOut shares to the sender. Deposits
// settle through the module account: the sender funds the module, the engine
// pulls each delta on rebind. maxAmountsIn caps the deposit per denom;
// denoms absent from the map are uncapped.
func (k *Keeper) JoinPool(ctx sdk.Context, sender, smartPoolID string, poolAmountOut math.LegacyDec, maxAmountsIn map[string]math.LegacyDec) (map[string]math.LegacyDec, error) {
	if err := k.acquireSmartPool(smartPoolID); err != nil {
		return nil, err
	}
	defer k.releaseSmartPool(smartPoolID)

	sp, pool, err := k.loadCreatedPool(ctx, smartPoolID)
	if err != nil {
		return nil, err
	}
	if err := checkJoinAllowed(sp, sender); err != nil {
		return nil, err
	}
	if !poolAmountOut.IsPositive() {
		return nil, types.ErrInvalidAmount
	}
	newSupply, err := ammmath.Add(pool.Shares.TotalSupply, poolAmountOut)
	if err != nil {
		return nil, err
	}
	if err := checkCap(sp, newSupply); err != nil {
		return nil, err
	}

	ratio, err := ammmath.Div(poolAmountOut, pool.Shares.TotalSupply)
	if err != nil {
		return nil, err
	}
	if ratio.IsZero() {
		return nil, wptypes.ErrMathApprox
	}

	amountsIn := make(map[string]math.LegacyDec, pool.NumTokens())
	cacheCtx, write := ctx.CacheContext()
	for _, rec := range pool.Records {
		amountIn, err := ammmath.Mul(ratio, rec.Balance)
		if err != nil {
			return nil, err
		}
		if amountIn.IsZero() {
			return nil, wptypes.ErrMathApprox
		}
		if limit, ok := maxAmountsIn[rec.Denom]; ok && amountIn.GT(limit) {
			return nil, wptypes.ErrLimitIn
		}
		newBalance, err := ammmath.Add(rec.Balance, amountIn)
		if err != nil {
			return nil, err
		}
		if err := k.pullTokens(cacheCtx, sender, rec.Denom, amountIn); err != nil {
			return nil, err
		}
		if err := k.engine.Rebind(cacheCtx, k.moduleAddr, sp.PoolID, rec.Denom, newBalance, rec.Weight); err != nil {
			return nil, err
		}
		amountsIn[rec.Denom] = amountIn
	}
	if err := k.engine.MintShares(cacheCtx, k.moduleAddr, sp.PoolID, sender, poolAmountOut); err != nil {
		return nil, err
	}
	sp.UpdatedAt = ctx.BlockTime().Unix()
	k.SetSmartPool(cacheCtx, sp)
	write()

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"smartpool_join",
			sdk.NewAttribute("smart_pool_id", smartPoolID),
			sdk.NewAttribute("sender", sender),
			sdk.NewAttribute("shares_minted", poolAmountOut.String()),
		),
	)

	k.logger.Info("Smart pool joined",
		"smart_pool_id", smartPoolID,
		"sender", sender,
		"shares_minted", poolAmountOut.String(),
	)

	return amountsIn, nil
}

// ExitPool burns poolAmountIn shares and pays out all bound tokens in
// proportion to the current engine balances. The exit fee is retained in
// shares and credited to the authority. minAmountsOut floors the payout per
// denom; denoms absent from the map are unfloored.
func (k *Keeper) ExitPool(ctx sdk.Context, sender, smartPoolID string, poolAmountIn math.LegacyDec, minAmountsOut map[string]math.LegacyDec) (map[string]math.LegacyDec, error) {
	if err := k.acquireSmartPool(smartPoolID); err != nil {
		return nil, err
	}
	defer k.releaseSmartPool(smartPoolID)

	sp, pool, err := k.loadCreatedPool(ctx, smartPoolID)
	if err != nil {
		return nil, err
	}
	if !poolAmountIn.IsPositive() {
		return nil, types.ErrInvalidAmount
	}
	if pool.Shares.BalanceOf(sender).LT(poolAmountIn) {
		return nil, wptypes.ErrInsufficientShares
	}

	exitFee, err := ammmath.Mul(poolAmountIn, wptypes.ExitFee)
	if err != nil {
		return nil, err
	}
	inAfterExitFee, err := ammmath.Sub(poolAmountIn, exitFee)
	if err != nil {
		return nil, err
	}
	ratio, err := ammmath.Div(inAfterExitFee, pool.Shares.TotalSupply)
	if err != nil {
		return nil, err
	}
	if ratio.IsZero() {
		return nil, wptypes.ErrMathApprox
	}

	amountsOut := make(map[string]math.LegacyDec, pool.NumTokens())
	cacheCtx, write := ctx.CacheContext()
	if err := k.engine.BurnShares(cacheCtx, k.moduleAddr, sp.PoolID, sender, poolAmountIn); err != nil {
		return nil, err
	}
	if exitFee.IsPositive() {
		if err := k.engine.MintShares(cacheCtx, k.moduleAddr, sp.PoolID, k.authority, exitFee); err != nil {
			return nil, err
		}
	}
	for _, rec := range pool.Records {
		amountOut, err := ammmath.Mul(ratio, rec.Balance)
		if err != nil {
			return nil, err
		}
		if amountOut.IsZero() {
			return nil, wptypes.ErrMathApprox
		}
		if floor, ok := minAmountsOut[rec.Denom]; ok && amountOut.LT(floor) {
			return nil, wptypes.ErrLimitOut
		}
		newBalance, err := ammmath.Sub(rec.Balance, amountOut)
		if err != nil {
			return nil, err
		}
		if err := k.engine.Rebind(cacheCtx, k.moduleAddr, sp.PoolID, rec.Denom, newBalance, rec.Weight); err != nil {
			return nil, err
		}
		if err := k.pushTokens(cacheCtx, sender, rec.Denom, amountOut); err != nil {
			return nil, err
		}
		amountsOut[rec.Denom] = amountOut
	}
	sp.UpdatedAt = ctx.BlockTime().Unix()
	k.SetSmartPool(cacheCtx, sp)
	write()

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"smartpool_exit",
			sdk.NewAttribute("smart_pool_id", smartPoolID),
			sdk.NewAttribute("sender", sender),
			sdk.NewAttribute("shares_burned", poolAmountIn.String()),
		),
	)

	k.logger.Info("Smart pool exited",
		"smart_pool_id", smartPoolID,
		"sender", sender,
		"shares_burned", poolAmountIn.String(),
	)

	return amountsOut, nil
}

// JoinswapExternAmountIn deposits a fixed amount of one bound token and
// mints whatever shares the curve grants, at least minPoolAmountOut.
func (k *Keeper) JoinswapExternAmountIn(ctx sdk.Context, sender, smartPoolID, denomIn string, amountIn, minPoolAmountOut math.LegacyDec) (math.LegacyDec, error) {
	if err := k.acquireSmartPool(smartPoolID); err != nil {
		return math.LegacyDec{}, err
	}
	defer k.releaseSmartPool(smartPoolID)

	sp, pool, err := k.loadCreatedPool(ctx, smartPoolID)
	if err != nil {
		return math.LegacyDec{}, err
	}
	if err := checkJoinAllowed(sp, sender); err != nil {
		return math.LegacyDec{}, err
	}
	rec, found := pool.GetRecord(denomIn)
	if !found {
		return math.LegacyDec{}, wptypes.ErrTokenNotBound
	}
	if !amountIn.IsPositive() {
		return math.LegacyDec{}, types.ErrInvalidAmount
	}
	maxIn, err := ammmath.Mul(rec.Balance, wptypes.MaxInRatio)
	if err != nil {
		return math.LegacyDec{}, err
	}
	if amountIn.GT(maxIn) {
		return math.LegacyDec{}, wptypes.ErrMaxInRatio
	}

	poolAmountOut, err := wptypes.CalcPoolOutGivenSingleIn(rec.Balance, rec.Weight, pool.Shares.TotalSupply, pool.TotalWeight(), amountIn, pool.SwapFee)
	if err != nil {
		return math.LegacyDec{}, err
	}
	if !minPoolAmountOut.IsNil() && poolAmountOut.LT(minPoolAmountOut) {
		return math.LegacyDec{}, wptypes.ErrLimitOut
	}
	newSupply, err := ammmath.Add(pool.Shares.TotalSupply, poolAmountOut)
	if err != nil {
		return math.LegacyDec{}, err
	}
	if err := checkCap(sp, newSupply); err != nil {
		return math.LegacyDec{}, err
	}
	newBalance, err := ammmath.Add(rec.Balance, amountIn)
	if err != nil {
		return math.LegacyDec{}, err
	}

	cacheCtx, write := ctx.CacheContext()
	if err := k.pullTokens(cacheCtx, sender, denomIn, amountIn); err != nil {
		return math.LegacyDec{}, err
	}
	if err := k.engine.Rebind(cacheCtx, k.moduleAddr, sp.PoolID, denomIn, newBalance, rec.Weight); err != nil {
		return math.LegacyDec{}, err
	}
	if err := k.engine.MintShares(cacheCtx, k.moduleAddr, sp.PoolID, sender, poolAmountOut); err != nil {
		return math.LegacyDec{}, err
	}
	sp.UpdatedAt = ctx.BlockTime().Unix()
	k.SetSmartPool(cacheCtx, sp)
	write()

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"smartpool_joinswap",
			sdk.NewAttribute("smart_pool_id", smartPoolID),
			sdk.NewAttribute("sender", sender),
			sdk.NewAttribute("denom_in", denomIn),
			sdk.NewAttribute("amount_in", amountIn.String()),
			sdk.NewAttribute("shares_minted", poolAmountOut.String()),
		),
	)

	return poolAmountOut, nil
}

// JoinswapPoolAmountOut mints exactly poolAmountOut shares against a
// single-token deposit of whatever the curve requires, at most maxAmountIn.
func (k *Keeper) JoinswapPoolAmountOut(ctx sdk.Context, sender, smartPoolID, denomIn string, poolAmountOut, maxAmountIn math.LegacyDec) (math.LegacyDec, error) {
	if err := k.acquireSmartPool(smartPoolID); err != nil {
		return math.LegacyDec{}, err
	}
	defer k.releaseSmartPool(smartPoolID)

	sp, pool, err := k.loadCreatedPool(ctx, smartPoolID)
	if err != nil {
		return math.LegacyDec{}, err
	}
	if err := checkJoinAllowed(sp, sender); err != nil {
		return math.LegacyDec{}, err
	}
	rec, found := pool.GetRecord(denomIn)
	if !found {
		return math.LegacyDec{}, wptypes.ErrTokenNotBound
	}
	if !poolAmountOut.IsPositive() {
		return math.LegacyDec{}, types.ErrInvalidAmount
	}
	newSupply, err := ammmath.Add(pool.Shares.TotalSupply, poolAmountOut)
	if err != nil {
		return math.LegacyDec{}, err
	}
	if err := checkCap(sp, newSupply); err != nil {
		return math.LegacyDec{}, err
	}

	amountIn, err := wptypes.CalcSingleInGivenPoolOut(rec.Balance, rec.Weight, pool.Shares.TotalSupply, pool.TotalWeight(), poolAmountOut, pool.SwapFee)
	if err != nil {
		return math.LegacyDec{}, err
	}
	if amountIn.IsZero() {
		return math.LegacyDec{}, wptypes.ErrMathApprox
	}
	if !maxAmountIn.IsNil() && amountIn.GT(maxAmountIn) {
		return math.LegacyDec{}, wptypes.ErrLimitIn
	}
	maxIn, err := ammmath.Mul(rec.Balance, wptypes.MaxInRatio)
	if err != nil {
		return math.LegacyDec{}, err
	}
	if amountIn.GT(maxIn) {
		return math.LegacyDec{}, wptypes.ErrMaxInRatio
	}
	newBalance, err := ammmath.Add(rec.Balance, amountIn)
	if err != nil {
		return math.LegacyDec{}, err
	}

	cacheCtx, write := ctx.CacheContext()
	if err := k.pullTokens(cacheCtx, sender, denomIn, amountIn); err != nil {
		return math.LegacyDec{}, err
	}
	if err := k.engine.Rebind(cacheCtx, k.moduleAddr, sp.PoolID, denomIn, newBalance, rec.Weight); err != nil {
		return math.LegacyDec{}, err
	}
	if err := k.engine.MintShares(cacheCtx, k.moduleAddr, sp.PoolID, sender, poolAmountOut); err != nil {
		return math.LegacyDec{}, err
	}
	sp.UpdatedAt = ctx.BlockTime().Unix()
	k.SetSmartPool(cacheCtx, sp)
	write()

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"smartpool_joinswap",
			sdk.NewAttribute("smart_pool_id", smartPoolID),
			sdk.NewAttribute("sender", sender),
			sdk.NewAttribute("denom_in", denomIn),
			sdk.NewAttribute("amount_in", amountIn.String()),
			sdk.NewAttribute("shares_minted", poolAmountOut.String()),
		),
	)

	return amountIn, nil
}

// ExitswapPoolAmountIn burns exactly poolAmountIn shares for a single-token
// payout of whatever the curve grants, at least minAmountOut.
func (k *Keeper) ExitswapPoolAmountIn(ctx sdk.Context, sender, smartPoolID, denomOut string, poolAmountIn, minAmountOut math.LegacyDec) (math.LegacyDec, error) {
	if err := k.acquireSmartPool(smartPoolID); err != nil {
		return math.LegacyDec{}, err
	}
	defer k.releaseSmartPool(smartPoolID)

	sp, pool, err := k.loadCreatedPool(ctx, smartPoolID)
	if err != nil {
		return math.LegacyDec{}, err
	}
	rec, found := pool.GetRecord(denomOut)
	if !found {
		return math.LegacyDec{}, wptypes.ErrTokenNotBound
	}
	if !poolAmountIn.IsPositive() {
		return math.LegacyDec{}, types.ErrInvalidAmount
	}
	if pool.Shares.BalanceOf(sender).LT(poolAmountIn) {
		return math.LegacyDec{}, wptypes.ErrInsufficientShares
	}

	amountOut, err := wptypes.CalcSingleOutGivenPoolIn(rec.Balance, rec.Weight, pool.Shares.TotalSupply, pool.TotalWeight(), poolAmountIn, pool.SwapFee)
	if err != nil {
		return math.LegacyDec{}, err
	}
	if !minAmountOut.IsNil() && amountOut.LT(minAmountOut) {
		return math.LegacyDec{}, wptypes.ErrLimitOut
	}
	maxOut, err := ammmath.Mul(rec.Balance, wptypes.MaxOutRatio)
	if err != nil {
		return math.LegacyDec{}, err
	}
	if amountOut.GT(maxOut) {
		return math.LegacyDec{}, wptypes.ErrMaxOutRatio
	}
	newBalance, err := ammmath.Sub(rec.Balance, amountOut)
	if err != nil {
		return math.LegacyDec{}, err
	}
	exitFee, err := ammmath.Mul(poolAmountIn, wptypes.ExitFee)
	if err != nil {
		return math.LegacyDec{}, err
	}

	cacheCtx, write := ctx.CacheContext()
	if err := k.engine.BurnShares(cacheCtx, k.moduleAddr, sp.PoolID, sender, poolAmountIn); err != nil {
		return math.LegacyDec{}, err
	}
	if exitFee.IsPositive() {
		if err := k.engine.MintShares(cacheCtx, k.moduleAddr, sp.PoolID, k.authority, exitFee); err != nil {
			return math.LegacyDec{}, err
		}
	}
	if err := k.engine.Rebind(cacheCtx, k.moduleAddr, sp.PoolID, denomOut, newBalance, rec.Weight); err != nil {
		return math.LegacyDec{}, err
	}
	if err := k.pushTokens(cacheCtx, sender, denomOut, amountOut); err != nil {
		return math.LegacyDec{}, err
	}
	sp.UpdatedAt = ctx.BlockTime().Unix()
	k.SetSmartPool(cacheCtx, sp)
	write()

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"smartpool_exitswap",
			sdk.NewAttribute("smart_pool_id", smartPoolID),
			sdk.NewAttribute("sender", sender),
			sdk.NewAttribute("denom_out", denomOut),
			sdk.NewAttribute("amount_out", amountOut.String()),
			sdk.NewAttribute("shares_burned", poolAmountIn.String()),
		),
	)

	return amountOut, nil
}

// ExitswapExternAmountOut withdraws a fixed amount of one bound token,
// burning whatever shares the curve requires, at most maxPoolAmountIn.
func (k *Keeper) ExitswapExternAmountOut(ctx sdk.Context, sender, smartPoolID, denomOut string, amountOut, maxPoolAmountIn math.LegacyDec) (math.LegacyDec, error) {
	if err := k.acquireSmartPool(smartPoolID); err != nil {
		return math.LegacyDec{}, err
	}
	defer k.releaseSmartPool(smartPoolID)

	sp, pool, err := k.loadCreatedPool(ctx, smartPoolID)
	if err != nil {
		return math.LegacyDec{}, err
	}
	rec, found := pool.GetRecord(denomOut)
	if !found {
		return math.LegacyDec{}, wptypes.ErrTokenNotBound
	}
	if !amountOut.IsPositive() {
		return math.LegacyDec{}, types.ErrInvalidAmount
	}
	maxOut, err := ammmath.Mul(rec.Balance, wptypes.MaxOutRatio)
	if err != nil {
		return math.LegacyDec{}, err
	}
	if amountOut.GT(maxOut) {
		return math.LegacyDec{}, wptypes.ErrMaxOutRatio
	}

	poolAmountIn, err := wptypes.CalcPoolInGivenSingleOut(rec.Balance, rec.Weight, pool.Shares.TotalSupply, pool.TotalWeight(), amountOut, pool.SwapFee)
	if err != nil {
		return math.LegacyDec{}, err
	}
	if poolAmountIn.IsZero() {
		return math.LegacyDec{}, wptypes.ErrMathApprox
	}
	if !maxPoolAmountIn.IsNil() && poolAmountIn.GT(maxPoolAmountIn) {
		return math.LegacyDec{}, wptypes.ErrLimitIn
	}
	if pool.Shares.BalanceOf(sender).LT(poolAmountIn) {
		return math.LegacyDec{}, wptypes.ErrInsufficientShares
	}
	newBalance, err := ammmath.Sub(rec.Balance, amountOut)
	if err != nil {
		return math.LegacyDec{}, err
	}
	exitFee, err := ammmath.Mul(poolAmountIn, wptypes.ExitFee)
	if err != nil {
		return math.LegacyDec{}, err
	}

	cacheCtx, write := ctx.CacheContext()
	if err := k.engine.BurnShares(cacheCtx, k.moduleAddr, sp.PoolID, sender, poolAmountIn); err != nil {
		return math.LegacyDec{}, err
	}
	if exitFee.IsPositive() {
		if err := k.engine.MintShares(cacheCtx, k.moduleAddr, sp.PoolID, k.authority, exitFee); err != nil {
			return math.LegacyDec{}, err
		}
	}
	if err := k.engine.Rebind(cacheCtx, k.moduleAddr, sp.PoolID, denomOut, newBalance, rec.Weight); err != nil {
		return math.LegacyDec{}, err
	}
	if err := k.pushTokens(cacheCtx, sender, denomOut, amountOut); err != nil {
		return math.LegacyDec{}, err
	}
	sp.UpdatedAt = ctx.BlockTime().Unix()
	k.SetSmartPool(cacheCtx, sp)
	write()

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"smartpool_exitswap",
			sdk.NewAttribute("smart_pool_id", smartPoolID),
			sdk.NewAttribute("sender", sender),
			sdk.NewAttribute("denom_out", denomOut),
			sdk.NewAttribute("amount_out", amountOut.String()),
			sdk.NewAttribute("shares_burned", poolAmountIn.String()),
		),
	)

	return poolAmountIn, nil
}
