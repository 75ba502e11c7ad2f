package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/openalpha/amm-dex/x/weightedpool/types"

	"github.com/openalpha/amm-dex/ammmath"
)

// JoinPool deposits all bound tokens in proportion to the current balances
// and mints exactly poolAmountOut shares to the sender. maxAmountsIn caps
// the deposit per denom; denoms absent from the map are uncapped.
func (k *Keeper) JoinPool(ctx sdk.Context, sender, poolID string, poolAmountOut math.LegacyDec, maxAmountsIn map[string]math.LegacyDec) (map[string]math.LegacyDec, error) {
	if err := k.acquirePool(poolID); err != nil {
		return nil, err
	}
	defer k.releasePool(poolID)

	pool, err := k.loadPool(ctx, poolID)
	if err != nil {
		return nil, err
	}
	if !pool.Finalized {
		return nil, types.ErrPoolNotFinalized
	}
	if !poolAmountOut.IsPositive() {
		return nil, types.ErrInvalidAmount
	}

	ratio, err := ammmath.Div(poolAmountOut, pool.Shares.TotalSupply)
	if err != nil {
		return nil, err
	}
	if ratio.IsZero() {
		return nil, types.ErrMathApprox
	}

	amountsIn := make(map[string]math.LegacyDec, pool.NumTokens())
	cacheCtx, write := ctx.CacheContext()
	for _, rec := range pool.Records {
		amountIn, err := ammmath.Mul(ratio, rec.Balance)
		if err != nil {
			return nil, err
		}
		if amountIn.IsZero() {
			return nil, types.ErrMathApprox
		}
		if limit, ok := maxAmountsIn[rec.Denom]; ok && amountIn.GT(limit) {
			return nil, types.ErrLimitIn
		}
		newBalance, err := ammmath.Add(rec.Balance, amountIn)
		if err != nil {
			return nil, err
		}
		if err := k.pullTokens(cacheCtx, sender, rec.Denom, amountIn); err != nil {
			return nil, err
		}
		pool.SetRecord(rec.Denom, newBalance, rec.Weight)
		amountsIn[rec.Denom] = amountIn
	}
	if err := pool.Shares.Mint(sender, poolAmountOut); err != nil {
		return nil, err
	}
	pool.UpdatedAt = ctx.BlockTime().Unix()
	k.SetPool(cacheCtx, pool)
	write()

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"weightedpool_join",
			sdk.NewAttribute("pool_id", poolID),
			sdk.NewAttribute("sender", sender),
			sdk.NewAttribute("shares_minted", poolAmountOut.String()),
		),
	)

	k.logger.Info("Pool joined",
		"pool_id", poolID,
		"sender", sender,
		"shares_minted", poolAmountOut.String(),
	)

	return amountsIn, nil
}

// ExitPool burns poolAmountIn shares and pays out all bound tokens in
// proportion to the current balances. The exit fee is retained in shares and
// credited to the authority. minAmountsOut floors the payout per denom;
// denoms absent from the map are unfloored.
func (k *Keeper) ExitPool(ctx sdk.Context, sender, poolID string, poolAmountIn math.LegacyDec, minAmountsOut map[string]math.LegacyDec) (map[string]math.LegacyDec, error) {
	if err := k.acquirePool(poolID); err != nil {
		return nil, err
	}
	defer k.releasePool(poolID)

	pool, err := k.loadPool(ctx, poolID)
	if err != nil {
		return nil, err
	}
	if !pool.Finalized {
		return nil, types.ErrPoolNotFinalized
	}
	if !poolAmountIn.IsPositive() {
		return nil, types.ErrInvalidAmount
	}
	if pool.Shares.BalanceOf(sender).LT(poolAmountIn) {
		return nil, types.ErrInsufficientShares
	}

	exitFee, err := ammmath.Mul(poolAmountIn, types.ExitFee)
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
		return nil, types.ErrMathApprox
	}

	if exitFee.IsPositive() {
		if err := pool.Shares.Transfer(sender, k.authority, exitFee); err != nil {
			return nil, err
		}
	}
	if err := pool.Shares.Burn(sender, inAfterExitFee); err != nil {
		return nil, err
	}

	amountsOut := make(map[string]math.LegacyDec, pool.NumTokens())
	cacheCtx, write := ctx.CacheContext()
	for _, rec := range pool.Records {
		amountOut, err := ammmath.Mul(ratio, rec.Balance)
		if err != nil {
			return nil, err
		}
		if amountOut.IsZero() {
			return nil, types.ErrMathApprox
		}
		if floor, ok := minAmountsOut[rec.Denom]; ok && amountOut.LT(floor) {
			return nil, types.ErrLimitOut
		}
		newBalance, err := ammmath.Sub(rec.Balance, amountOut)
		if err != nil {
			return nil, err
		}
		if err := k.pushTokens(cacheCtx, sender, rec.Denom, amountOut); err != nil {
			return nil, err
		}
		pool.SetRecord(rec.Denom, newBalance, rec.Weight)
		amountsOut[rec.Denom] = amountOut
	}
	pool.UpdatedAt = ctx.BlockTime().Unix()
	k.SetPool(cacheCtx, pool)
	write()

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"weightedpool_exit",
			sdk.NewAttribute("pool_id", poolID),
			sdk.NewAttribute("sender", sender),
			sdk.NewAttribute("shares_burned", poolAmountIn.String()),
		),
	)

	k.logger.Info("Pool exited",
		"pool_id", poolID,
		"sender", sender,
		"shares_burned", poolAmountIn.String(),
	)

	return amountsOut, nil
}

// JoinswapExternAmountIn deposits a fixed amount of one bound token and
// mints whatever shares the curve grants, at least minPoolAmountOut. Nil
// bounds are not enforced, here and on the other three single-asset calls.
func (k *Keeper) JoinswapExternAmountIn(ctx sdk.Context, sender, poolID, denomIn string, amountIn, minPoolAmountOut math.LegacyDec) (math.LegacyDec, error) {
	if err := k.acquirePool(poolID); err != nil {
		return math.LegacyDec{}, err
	}
	defer k.releasePool(poolID)

	pool, err := k.loadPool(ctx, poolID)
	if err != nil {
		return math.LegacyDec{}, err
	}
	if !pool.Finalized {
		return math.LegacyDec{}, types.ErrPoolNotFinalized
	}
	rec, found := pool.GetRecord(denomIn)
	if !found {
		return math.LegacyDec{}, types.ErrTokenNotBound
	}
	if !amountIn.IsPositive() {
		return math.LegacyDec{}, types.ErrInvalidAmount
	}
	maxIn, err := ammmath.Mul(rec.Balance, types.MaxInRatio)
	if err != nil {
		return math.LegacyDec{}, err
	}
	if amountIn.GT(maxIn) {
		return math.LegacyDec{}, types.ErrMaxInRatio
	}

	poolAmountOut, err := types.CalcPoolOutGivenSingleIn(rec.Balance, rec.Weight, pool.Shares.TotalSupply, pool.TotalWeight(), amountIn, pool.SwapFee)
	if err != nil {
		return math.LegacyDec{}, err
	}
	if !minPoolAmountOut.IsNil() && poolAmountOut.LT(minPoolAmountOut) {
		return math.LegacyDec{}, types.ErrLimitOut
	}
	newBalance, err := ammmath.Add(rec.Balance, amountIn)
	if err != nil {
		return math.LegacyDec{}, err
	}

	cacheCtx, write := ctx.CacheContext()
	if err := k.pullTokens(cacheCtx, sender, denomIn, amountIn); err != nil {
		return math.LegacyDec{}, err
	}
	pool.SetRecord(denomIn, newBalance, rec.Weight)
	if err := pool.Shares.Mint(sender, poolAmountOut); err != nil {
		return math.LegacyDec{}, err
	}
	pool.UpdatedAt = ctx.BlockTime().Unix()
	k.SetPool(cacheCtx, pool)
	write()

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"weightedpool_joinswap",
			sdk.NewAttribute("pool_id", poolID),
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
func (k *Keeper) JoinswapPoolAmountOut(ctx sdk.Context, sender, poolID, denomIn string, poolAmountOut, maxAmountIn math.LegacyDec) (math.LegacyDec, error) {
	if err := k.acquirePool(poolID); err != nil {
		return math.LegacyDec{}, err
	}
	defer k.releasePool(poolID)

	pool, err := k.loadPool(ctx, poolID)
	if err != nil {
		return math.LegacyDec{}, err
	}
	if !pool.Finalized {
		return math.LegacyDec{}, types.ErrPoolNotFinalized
	}
	rec, found := pool.GetRecord(denomIn)
	if !found {
		return math.LegacyDec{}, types.ErrTokenNotBound
	}
	if !poolAmountOut.IsPositive() {
		return math.LegacyDec{}, types.ErrInvalidAmount
	}

	amountIn, err := types.CalcSingleInGivenPoolOut(rec.Balance, rec.Weight, pool.Shares.TotalSupply, pool.TotalWeight(), poolAmountOut, pool.SwapFee)
	if err != nil {
		return math.LegacyDec{}, err
	}
	if amountIn.IsZero() {
		return math.LegacyDec{}, types.ErrMathApprox
	}
	if !maxAmountIn.IsNil() && amountIn.GT(maxAmountIn) {
		return math.LegacyDec{}, types.ErrLimitIn
	}
	maxIn, err := ammmath.Mul(rec.Balance, types.MaxInRatio)
	if err != nil {
		return math.LegacyDec{}, err
	}
	if amountIn.GT(maxIn) {
		return math.LegacyDec{}, types.ErrMaxInRatio
	}
	newBalance, err := ammmath.Add(rec.Balance, amountIn)
	if err != nil {
		return math.LegacyDec{}, err
	}

	cacheCtx, write := ctx.CacheContext()
	if err := k.pullTokens(cacheCtx, sender, denomIn, amountIn); err != nil {
		return math.LegacyDec{}, err
	}
	pool.SetRecord(denomIn, newBalance, rec.Weight)
	if err := pool.Shares.Mint(sender, poolAmountOut); err != nil {
		return math.LegacyDec{}, err
	}
	pool.UpdatedAt = ctx.BlockTime().Unix()
	k.SetPool(cacheCtx, pool)
	write()

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"weightedpool_joinswap",
			sdk.NewAttribute("pool_id", poolID),
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
func (k *Keeper) ExitswapPoolAmountIn(ctx sdk.Context, sender, poolID, denomOut string, poolAmountIn, minAmountOut math.LegacyDec) (math.LegacyDec, error) {
	if err := k.acquirePool(poolID); err != nil {
		return math.LegacyDec{}, err
	}
	defer k.releasePool(poolID)

	pool, err := k.loadPool(ctx, poolID)
	if err != nil {
		return math.LegacyDec{}, err
	}
	if !pool.Finalized {
		return math.LegacyDec{}, types.ErrPoolNotFinalized
	}
	rec, found := pool.GetRecord(denomOut)
	if !found {
		return math.LegacyDec{}, types.ErrTokenNotBound
	}
	if !poolAmountIn.IsPositive() {
		return math.LegacyDec{}, types.ErrInvalidAmount
	}
	if pool.Shares.BalanceOf(sender).LT(poolAmountIn) {
		return math.LegacyDec{}, types.ErrInsufficientShares
	}

	amountOut, err := types.CalcSingleOutGivenPoolIn(rec.Balance, rec.Weight, pool.Shares.TotalSupply, pool.TotalWeight(), poolAmountIn, pool.SwapFee)
	if err != nil {
		return math.LegacyDec{}, err
	}
	if !minAmountOut.IsNil() && amountOut.LT(minAmountOut) {
		return math.LegacyDec{}, types.ErrLimitOut
	}
	maxOut, err := ammmath.Mul(rec.Balance, types.MaxOutRatio)
	if err != nil {
		return math.LegacyDec{}, err
	}
	if amountOut.GT(maxOut) {
		return math.LegacyDec{}, types.ErrMaxOutRatio
	}
	newBalance, err := ammmath.Sub(rec.Balance, amountOut)
	if err != nil {
		return math.LegacyDec{}, err
	}
	exitFee, err := ammmath.Mul(poolAmountIn, types.ExitFee)
	if err != nil {
		return math.LegacyDec{}, err
	}
	inAfterExitFee, err := ammmath.Sub(poolAmountIn, exitFee)
	if err != nil {
		return math.LegacyDec{}, err
	}

	if exitFee.IsPositive() {
		if err := pool.Shares.Transfer(sender, k.authority, exitFee); err != nil {
			return math.LegacyDec{}, err
		}
	}
	if err := pool.Shares.Burn(sender, inAfterExitFee); err != nil {
		return math.LegacyDec{}, err
	}

	cacheCtx, write := ctx.CacheContext()
	if err := k.pushTokens(cacheCtx, sender, denomOut, amountOut); err != nil {
		return math.LegacyDec{}, err
	}
	pool.SetRecord(denomOut, newBalance, rec.Weight)
	pool.UpdatedAt = ctx.BlockTime().Unix()
	k.SetPool(cacheCtx, pool)
	write()

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"weightedpool_exitswap",
			sdk.NewAttribute("pool_id", poolID),
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
func (k *Keeper) ExitswapExternAmountOut(ctx sdk.Context, sender, poolID, denomOut string, amountOut, maxPoolAmountIn math.LegacyDec) (math.LegacyDec, error) {
	if err := k.acquirePool(poolID); err != nil {
		return math.LegacyDec{}, err
	}
	defer k.releasePool(poolID)

	pool, err := k.loadPool(ctx, poolID)
	if err != nil {
		return math.LegacyDec{}, err
	}
	if !pool.Finalized {
		return math.LegacyDec{}, types.ErrPoolNotFinalized
	}
	rec, found := pool.GetRecord(denomOut)
	if !found {
		return math.LegacyDec{}, types.ErrTokenNotBound
	}
	if !amountOut.IsPositive() {
		return math.LegacyDec{}, types.ErrInvalidAmount
	}
	maxOut, err := ammmath.Mul(rec.Balance, types.MaxOutRatio)
	if err != nil {
		return math.LegacyDec{}, err
	}
	if amountOut.GT(maxOut) {
		return math.LegacyDec{}, types.ErrMaxOutRatio
	}

	poolAmountIn, err := types.CalcPoolInGivenSingleOut(rec.Balance, rec.Weight, pool.Shares.TotalSupply, pool.TotalWeight(), amountOut, pool.SwapFee)
	if err != nil {
		return math.LegacyDec{}, err
	}
	if poolAmountIn.IsZero() {
		return math.LegacyDec{}, types.ErrMathApprox
	}
	if !maxPoolAmountIn.IsNil() && poolAmountIn.GT(maxPoolAmountIn) {
		return math.LegacyDec{}, types.ErrLimitIn
	}
	if pool.Shares.BalanceOf(sender).LT(poolAmountIn) {
		return math.LegacyDec{}, types.ErrInsufficientShares
	}
	newBalance, err := ammmath.Sub(rec.Balance, amountOut)
	if err != nil {
		return math.LegacyDec{}, err
	}
	exitFee, err := ammmath.Mul(poolAmountIn, types.ExitFee)
	if err != nil {
		return math.LegacyDec{}, err
	}
	inAfterExitFee, err := ammmath.Sub(poolAmountIn, exitFee)
	if err != nil {
		return math.LegacyDec{}, err
	}

	if exitFee.IsPositive() {
		if err := pool.Shares.Transfer(sender, k.authority, exitFee); err != nil {
			return math.LegacyDec{}, err
		}
	}
	if err := pool.Shares.Burn(sender, inAfterExitFee); err != nil {
		return math.LegacyDec{}, err
	}

	cacheCtx, write := ctx.CacheContext()
	if err := k.pushTokens(cacheCtx, sender, denomOut, amountOut); err != nil {
		return math.LegacyDec{}, err
	}
	pool.SetRecord(denomOut, newBalance, rec.Weight)
	pool.UpdatedAt = ctx.BlockTime().Unix()
	k.SetPool(cacheCtx, pool)
	write()

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"weightedpool_exitswap",
			sdk.NewAttribute("pool_id", poolID),
			sdk.NewAttribute("sender", sender),
			sdk.NewAttribute("denom_out", denomOut),
			sdk.NewAttribute("amount_out", amountOut.String()),
			sdk.NewAttribute("shares_burned", poolAmountIn.String()),
		),
	)

	return poolAmountIn, nil
}

// ============ Share Operations ============

// MintShares mints pool shares to an address. Only the pool controller may
// call this; it exists for controllers that run their own share issuance on
// top of the pool.
func (k *Keeper) MintShares(ctx sdk.Context, controller, poolID, to string, amount math.LegacyDec) error {
	if err := k.acquirePool(poolID); err != nil {
		return err
	}
	defer k.releasePool(poolID)

	pool, err := k.loadPoolForController(ctx, poolID, controller)
	if err != nil {
		return err
	}
	if !amount.IsPositive() {
		return types.ErrInvalidAmount
	}
	if err := pool.Shares.Mint(to, amount); err != nil {
		return err
	}
	pool.UpdatedAt = ctx.BlockTime().Unix()
	k.SetPool(ctx, pool)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"weightedpool_mint_shares",
			sdk.NewAttribute("pool_id", poolID),
			sdk.NewAttribute("to", to),
			sdk.NewAttribute("amount", amount.String()),
		),
	)

	return nil
}

// BurnShares burns pool shares held by an address. Only the pool controller
// may call this.
func (k *Keeper) BurnShares(ctx sdk.Context, controller, poolID, from string, amount math.LegacyDec) error {
	if err := k.acquirePool(poolID); err != nil {
		return err
	}
	defer k.releasePool(poolID)

	pool, err := k.loadPoolForController(ctx, poolID, controller)
	if err != nil {
		return err
	}
	if !amount.IsPositive() {
		return types.ErrInvalidAmount
	}
	if err := pool.Shares.Burn(from, amount); err != nil {
		return err
	}
	pool.UpdatedAt = ctx.BlockTime().Unix()
	k.SetPool(ctx, pool)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"weightedpool_burn_shares",
			sdk.NewAttribute("pool_id", poolID),
			sdk.NewAttribute("from", from),
			sdk.NewAttribute("amount", amount.String()),
		),
	)

	return nil
}

// TransferShares moves shares of a finalized pool between holders and
// returns the sender's remaining balance.
func (k *Keeper) TransferShares(ctx sdk.Context, sender, poolID, recipient string, amount math.LegacyDec) (math.LegacyDec, error) {
	if err := k.acquirePool(poolID); err != nil {
		return math.LegacyDec{}, err
	}
	defer k.releasePool(poolID)

	pool, err := k.loadPool(ctx, poolID)
	if err != nil {
		return math.LegacyDec{}, err
	}
	if !pool.Finalized {
		return math.LegacyDec{}, types.ErrSharesNotTransferable
	}
	if !amount.IsPositive() {
		return math.LegacyDec{}, types.ErrInvalidAmount
	}
	if err := pool.Shares.Transfer(sender, recipient, amount); err != nil {
		return math.LegacyDec{}, err
	}
	pool.UpdatedAt = ctx.BlockTime().Unix()
	k.SetPool(ctx, pool)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"weightedpool_transfer_shares",
			sdk.NewAttribute("pool_id", poolID),
			sdk.NewAttribute("from", sender),
			sdk.NewAttribute("to", recipient),
			sdk.NewAttribute("amount", amount.String()),
		),
	)

	return pool.Shares.BalanceOf(sender), nil
}

// ApproveShares lets a spender move up to amount of the sender's shares. A
// zero amount revokes the approval.
func (k *Keeper) ApproveShares(ctx sdk.Context, sender, poolID, spender string, amount math.LegacyDec) error {
	if err := k.acquirePool(poolID); err != nil {
		return err
	}
	defer k.releasePool(poolID)

	pool, err := k.loadPool(ctx, poolID)
	if err != nil {
		return err
	}
	if err := pool.Shares.Approve(sender, spender, amount); err != nil {
		return err
	}
	pool.UpdatedAt = ctx.BlockTime().Unix()
	k.SetPool(ctx, pool)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"weightedpool_approve_shares",
			sdk.NewAttribute("pool_id", poolID),
			sdk.NewAttribute("owner", sender),
			sdk.NewAttribute("spender", spender),
			sdk.NewAttribute("amount", amount.String()),
		),
	)

	return nil
}

// TransferSharesFrom moves shares of a finalized pool out of the from
// balance on the spender's allowance and returns the remaining allowance.
func (k *Keeper) TransferSharesFrom(ctx sdk.Context, spender, poolID, from, to string, amount math.LegacyDec) (math.LegacyDec, error) {
	if err := k.acquirePool(poolID); err != nil {
		return math.LegacyDec{}, err
	}
	defer k.releasePool(poolID)

	pool, err := k.loadPool(ctx, poolID)
	if err != nil {
		return math.LegacyDec{}, err
	}
	if !pool.Finalized {
		return math.LegacyDec{}, types.ErrSharesNotTransferable
	}
	if !amount.IsPositive() {
		return math.LegacyDec{}, types.ErrInvalidAmount
	}
	if err := pool.Shares.TransferFrom(spender, from, to, amount); err != nil {
		return math.LegacyDec{}, err
	}
	pool.UpdatedAt = ctx.BlockTime().Unix()
	k.SetPool(ctx, pool)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"weightedpool_transfer_shares",
			sdk.NewAttribute("pool_id", poolID),
			sdk.NewAttribute("from", from),
			sdk.NewAttribute("to", to),
			sdk.NewAttribute("amount", amount.String()),
		),
	)

	return pool.Shares.Allowance(from, spender), nil
}
