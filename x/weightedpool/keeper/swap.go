package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/openalpha/amm-dex/x/weightedpool/types"

	"github.com/openalpha/amm-dex/ammmath"
)

// swapRecords resolves the in and out side of a swap and checks the pool is
// open for trading.
func (k *Keeper) swapRecords(pool *types.Pool, denomIn, denomOut string) (types.AssetRecord, types.AssetRecord, error) {
	if denomIn == denomOut {
		return types.AssetRecord{}, types.AssetRecord{}, types.ErrInvalidAmount
	}
	inRecord, found := pool.GetRecord(denomIn)
	if !found {
		return types.AssetRecord{}, types.AssetRecord{}, types.ErrTokenNotBound
	}
	outRecord, found := pool.GetRecord(denomOut)
	if !found {
		return types.AssetRecord{}, types.AssetRecord{}, types.ErrTokenNotBound
	}
	if !pool.PublicSwap {
		return types.AssetRecord{}, types.AssetRecord{}, types.ErrSwapNotPublic
	}
	return inRecord, outRecord, nil
}

// SwapExactAmountIn trades a fixed amount of the in-token for as much of the
// out-token as the curve allows. minAmountOut and maxPrice bound the
// acceptable execution; nil bounds are not enforced.
func (k *Keeper) SwapExactAmountIn(
	ctx sdk.Context,
	sender, poolID, denomIn string,
	amountIn math.LegacyDec,
	denomOut string,
	minAmountOut, maxPrice math.LegacyDec,
) (math.LegacyDec, math.LegacyDec, error) {
	if err := k.acquirePool(poolID); err != nil {
		return math.LegacyDec{}, math.LegacyDec{}, err
	}
	defer k.releasePool(poolID)

	pool, err := k.loadPool(ctx, poolID)
	if err != nil {
		return math.LegacyDec{}, math.LegacyDec{}, err
	}
	inRecord, outRecord, err := k.swapRecords(pool, denomIn, denomOut)
	if err != nil {
		return math.LegacyDec{}, math.LegacyDec{}, err
	}
	if !amountIn.IsPositive() {
		return math.LegacyDec{}, math.LegacyDec{}, types.ErrInvalidAmount
	}

	maxIn, err := ammmath.Mul(inRecord.Balance, types.MaxInRatio)
	if err != nil {
		return math.LegacyDec{}, math.LegacyDec{}, err
	}
	if amountIn.GT(maxIn) {
		return math.LegacyDec{}, math.LegacyDec{}, types.ErrMaxInRatio
	}

	spotPriceBefore, err := types.CalcSpotPrice(inRecord.Balance, inRecord.Weight, outRecord.Balance, outRecord.Weight, pool.SwapFee)
	if err != nil {
		return math.LegacyDec{}, math.LegacyDec{}, err
	}
	if !maxPrice.IsNil() && spotPriceBefore.GT(maxPrice) {
		return math.LegacyDec{}, math.LegacyDec{}, types.ErrLimitPrice
	}

	amountOut, err := types.CalcOutGivenIn(inRecord.Balance, inRecord.Weight, outRecord.Balance, outRecord.Weight, amountIn, pool.SwapFee)
	if err != nil {
		return math.LegacyDec{}, math.LegacyDec{}, err
	}
	if !minAmountOut.IsNil() && amountOut.LT(minAmountOut) {
		return math.LegacyDec{}, math.LegacyDec{}, types.ErrLimitOut
	}

	inRecord.Balance, err = ammmath.Add(inRecord.Balance, amountIn)
	if err != nil {
		return math.LegacyDec{}, math.LegacyDec{}, err
	}
	outRecord.Balance, err = ammmath.Sub(outRecord.Balance, amountOut)
	if err != nil {
		return math.LegacyDec{}, math.LegacyDec{}, err
	}

	spotPriceAfter, err := types.CalcSpotPrice(inRecord.Balance, inRecord.Weight, outRecord.Balance, outRecord.Weight, pool.SwapFee)
	if err != nil {
		return math.LegacyDec{}, math.LegacyDec{}, err
	}
	if spotPriceAfter.LT(spotPriceBefore) {
		return math.LegacyDec{}, math.LegacyDec{}, types.ErrMathApprox
	}
	if !maxPrice.IsNil() && spotPriceAfter.GT(maxPrice) {
		return math.LegacyDec{}, math.LegacyDec{}, types.ErrLimitPrice
	}
	execPrice, err := ammmath.Div(amountIn, amountOut)
	if err != nil {
		return math.LegacyDec{}, math.LegacyDec{}, err
	}
	if spotPriceBefore.GT(execPrice) {
		return math.LegacyDec{}, math.LegacyDec{}, types.ErrMathApprox
	}

	cacheCtx, write := ctx.CacheContext()
	if err := k.pullTokens(cacheCtx, sender, denomIn, amountIn); err != nil {
		return math.LegacyDec{}, math.LegacyDec{}, err
	}
	if err := k.pushTokens(cacheCtx, sender, denomOut, amountOut); err != nil {
		return math.LegacyDec{}, math.LegacyDec{}, err
	}
	pool.SetRecord(denomIn, inRecord.Balance, inRecord.Weight)
	pool.SetRecord(denomOut, outRecord.Balance, outRecord.Weight)
	pool.UpdatedAt = ctx.BlockTime().Unix()
	k.SetPool(cacheCtx, pool)
	write()

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"weightedpool_swap",
			sdk.NewAttribute("pool_id", poolID),
			sdk.NewAttribute("sender", sender),
			sdk.NewAttribute("denom_in", denomIn),
			sdk.NewAttribute("amount_in", amountIn.String()),
			sdk.NewAttribute("denom_out", denomOut),
			sdk.NewAttribute("amount_out", amountOut.String()),
			sdk.NewAttribute("spot_price_after", spotPriceAfter.String()),
		),
	)

	k.logger.Info("Swap executed",
		"pool_id", poolID,
		"sender", sender,
		"amount_in", amountIn.String()+denomIn,
		"amount_out", amountOut.String()+denomOut,
	)

	return amountOut, spotPriceAfter, nil
}

// SwapExactAmountOut trades as little of the in-token as the curve requires
// for a fixed amount of the out-token. maxAmountIn and maxPrice bound the
// acceptable execution; nil bounds are not enforced.
func (k *Keeper) SwapExactAmountOut(
	ctx sdk.Context,
	sender, poolID, denomIn string,
	maxAmountIn math.LegacyDec,
	denomOut string,
	amountOut, maxPrice math.LegacyDec,
) (math.LegacyDec, math.LegacyDec, error) {
	if err := k.acquirePool(poolID); err != nil {
		return math.LegacyDec{}, math.LegacyDec{}, err
	}
	defer k.releasePool(poolID)

	pool, err := k.loadPool(ctx, poolID)
	if err != nil {
		return math.LegacyDec{}, math.LegacyDec{}, err
	}
	inRecord, outRecord, err := k.swapRecords(pool, denomIn, denomOut)
	if err != nil {
		return math.LegacyDec{}, math.LegacyDec{}, err
	}
	if !amountOut.IsPositive() {
		return math.LegacyDec{}, math.LegacyDec{}, types.ErrInvalidAmount
	}

	maxOut, err := ammmath.Mul(outRecord.Balance, types.MaxOutRatio)
	if err != nil {
		return math.LegacyDec{}, math.LegacyDec{}, err
	}
	if amountOut.GT(maxOut) {
		return math.LegacyDec{}, math.LegacyDec{}, types.ErrMaxOutRatio
	}

	spotPriceBefore, err := types.CalcSpotPrice(inRecord.Balance, inRecord.Weight, outRecord.Balance, outRecord.Weight, pool.SwapFee)
	if err != nil {
		return math.LegacyDec{}, math.LegacyDec{}, err
	}
	if !maxPrice.IsNil() && spotPriceBefore.GT(maxPrice) {
		return math.LegacyDec{}, math.LegacyDec{}, types.ErrLimitPrice
	}

	amountIn, err := types.CalcInGivenOut(inRecord.Balance, inRecord.Weight, outRecord.Balance, outRecord.Weight, amountOut, pool.SwapFee)
	if err != nil {
		return math.LegacyDec{}, math.LegacyDec{}, err
	}
	if !maxAmountIn.IsNil() && amountIn.GT(maxAmountIn) {
		return math.LegacyDec{}, math.LegacyDec{}, types.ErrLimitIn
	}

	inRecord.Balance, err = ammmath.Add(inRecord.Balance, amountIn)
	if err != nil {
		return math.LegacyDec{}, math.LegacyDec{}, err
	}
	outRecord.Balance, err = ammmath.Sub(outRecord.Balance, amountOut)
	if err != nil {
		return math.LegacyDec{}, math.LegacyDec{}, err
	}

	spotPriceAfter, err := types.CalcSpotPrice(inRecord.Balance, inRecord.Weight, outRecord.Balance, outRecord.Weight, pool.SwapFee)
	if err != nil {
		return math.LegacyDec{}, math.LegacyDec{}, err
	}
	if spotPriceAfter.LT(spotPriceBefore) {
		return math.LegacyDec{}, math.LegacyDec{}, types.ErrMathApprox
	}
	if !maxPrice.IsNil() && spotPriceAfter.GT(maxPrice) {
		return math.LegacyDec{}, math.LegacyDec{}, types.ErrLimitPrice
	}
	execPrice, err := ammmath.Div(amountIn, amountOut)
	if err != nil {
		return math.LegacyDec{}, math.LegacyDec{}, err
	}
	if spotPriceBefore.GT(execPrice) {
		return math.LegacyDec{}, math.LegacyDec{}, types.ErrMathApprox
	}

	cacheCtx, write := ctx.CacheContext()
	if err := k.pullTokens(cacheCtx, sender, denomIn, amountIn); err != nil {
		return math.LegacyDec{}, math.LegacyDec{}, err
	}
	if err := k.pushTokens(cacheCtx, sender, denomOut, amountOut); err != nil {
		return math.LegacyDec{}, math.LegacyDec{}, err
	}
	pool.SetRecord(denomIn, inRecord.Balance, inRecord.Weight)
	pool.SetRecord(denomOut, outRecord.Balance, outRecord.Weight)
	pool.UpdatedAt = ctx.BlockTime().Unix()
	k.SetPool(cacheCtx, pool)
	write()

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"weightedpool_swap",
			sdk.NewAttribute("pool_id", poolID),
			sdk.NewAttribute("sender", sender),
			sdk.NewAttribute("denom_in", denomIn),
			sdk.NewAttribute("amount_in", amountIn.String()),
			sdk.NewAttribute("denom_out", denomOut),
			sdk.NewAttribute("amount_out", amountOut.String()),
			sdk.NewAttribute("spot_price_after", spotPriceAfter.String()),
		),
	)

	k.logger.Info("Swap executed",
		"pool_id", poolID,
		"sender", sender,
		"amount_in", amountIn.String()+denomIn,
		"amount_out", amountOut.String()+denomOut,
	)

	return amountIn, spotPriceAfter, nil
}

// SpotPrice returns the current spot price between two bound tokens,
// including the fee markup when withFee is set.
func (k *Keeper) SpotPrice(ctx sdk.Context, poolID, denomIn, denomOut string, withFee bool) (math.LegacyDec, error) {
	pool, err := k.loadPool(ctx, poolID)
	if err != nil {
		return math.LegacyDec{}, err
	}
	inRecord, found := pool.GetRecord(denomIn)
	if !found {
		return math.LegacyDec{}, types.ErrTokenNotBound
	}
	outRecord, found := pool.GetRecord(denomOut)
	if !found {
		return math.LegacyDec{}, types.ErrTokenNotBound
	}
	fee := pool.SwapFee
	if !withFee {
		fee = math.LegacyZeroDec()
	}
	return types.CalcSpotPrice(inRecord.Balance, inRecord.Weight, outRecord.Balance, outRecord.Weight, fee)
}
