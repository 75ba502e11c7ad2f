package types

import (
	"cosmossdk.io/math"

	"github.com/openalpha/amm-dex/ammmath"
)

// Closed-form pricing for weighted constant-product pools. Every function is
// pure and routes all arithmetic through the checked fixed-point engine, so a
// degenerate input surfaces as an error instead of corrupting pool state.

// CalcSpotPrice returns the instantaneous price of the in-asset denominated
// in the out-asset, marked up by the swap fee:
//
//	spot = (balanceIn/weightIn) / (balanceOut/weightOut) * 1/(1-swapFee)
func CalcSpotPrice(balanceIn, weightIn, balanceOut, weightOut, swapFee math.LegacyDec) (math.LegacyDec, error) {
	numer, err := ammmath.Div(balanceIn, weightIn)
	if err != nil {
		return math.LegacyDec{}, err
	}
	denom, err := ammmath.Div(balanceOut, weightOut)
	if err != nil {
		return math.LegacyDec{}, err
	}
	ratio, err := ammmath.Div(numer, denom)
	if err != nil {
		return math.LegacyDec{}, err
	}
	feeBase, err := ammmath.Sub(math.LegacyOneDec(), swapFee)
	if err != nil {
		return math.LegacyDec{}, err
	}
	scale, err := ammmath.Div(math.LegacyOneDec(), feeBase)
	if err != nil {
		return math.LegacyDec{}, err
	}
	return ammmath.Mul(ratio, scale)
}

// CalcOutGivenIn returns the amount of the out-asset received for a given
// in-amount. The fee is charged on the input side.
func CalcOutGivenIn(balanceIn, weightIn, balanceOut, weightOut, amountIn, swapFee math.LegacyDec) (math.LegacyDec, error) {
	weightRatio, err := ammmath.Div(weightIn, weightOut)
	if err != nil {
		return math.LegacyDec{}, err
	}
	feeBase, err := ammmath.Sub(math.LegacyOneDec(), swapFee)
	if err != nil {
		return math.LegacyDec{}, err
	}
	adjustedIn, err := ammmath.Mul(amountIn, feeBase)
	if err != nil {
		return math.LegacyDec{}, err
	}
	newBalanceIn, err := ammmath.Add(balanceIn, adjustedIn)
	if err != nil {
		return math.LegacyDec{}, err
	}
	y, err := ammmath.Div(balanceIn, newBalanceIn)
	if err != nil {
		return math.LegacyDec{}, err
	}
	powed, err := ammmath.Pow(y, weightRatio)
	if err != nil {
		return math.LegacyDec{}, err
	}
	share, err := ammmath.Sub(math.LegacyOneDec(), powed)
	if err != nil {
		return math.LegacyDec{}, err
	}
	return ammmath.Mul(balanceOut, share)
}

// CalcInGivenOut returns the amount of the in-asset required to withdraw the
// requested out-amount. The fee is charged on the input side.
func CalcInGivenOut(balanceIn, weightIn, balanceOut, weightOut, amountOut, swapFee math.LegacyDec) (math.LegacyDec, error) {
	weightRatio, err := ammmath.Div(weightOut, weightIn)
	if err != nil {
		return math.LegacyDec{}, err
	}
	remaining, err := ammmath.Sub(balanceOut, amountOut)
	if err != nil {
		return math.LegacyDec{}, err
	}
	y, err := ammmath.Div(balanceOut, remaining)
	if err != nil {
		return math.LegacyDec{}, err
	}
	powed, err := ammmath.Pow(y, weightRatio)
	if err != nil {
		return math.LegacyDec{}, err
	}
	grossGrowth, err := ammmath.Sub(powed, math.LegacyOneDec())
	if err != nil {
		return math.LegacyDec{}, err
	}
	gross, err := ammmath.Mul(balanceIn, grossGrowth)
	if err != nil {
		return math.LegacyDec{}, err
	}
	feeBase, err := ammmath.Sub(math.LegacyOneDec(), swapFee)
	if err != nil {
		return math.LegacyDec{}, err
	}
	return ammmath.Div(gross, feeBase)
}

// CalcPoolOutGivenSingleIn returns the pool shares minted for a single-asset
// deposit. The swap fee applies only to the portion of the deposit that
// implicitly trades into the other assets, i.e. the (1 - normalizedWeight)
// fraction.
func CalcPoolOutGivenSingleIn(balanceIn, weightIn, poolSupply, totalWeight, amountIn, swapFee math.LegacyDec) (math.LegacyDec, error) {
	normalizedWeight, err := ammmath.Div(weightIn, totalWeight)
	if err != nil {
		return math.LegacyDec{}, err
	}
	feeShare, err := ammmath.Sub(math.LegacyOneDec(), normalizedWeight)
	if err != nil {
		return math.LegacyDec{}, err
	}
	zaz, err := ammmath.Mul(feeShare, swapFee)
	if err != nil {
		return math.LegacyDec{}, err
	}
	feeBase, err := ammmath.Sub(math.LegacyOneDec(), zaz)
	if err != nil {
		return math.LegacyDec{}, err
	}
	inAfterFee, err := ammmath.Mul(amountIn, feeBase)
	if err != nil {
		return math.LegacyDec{}, err
	}
	newBalanceIn, err := ammmath.Add(balanceIn, inAfterFee)
	if err != nil {
		return math.LegacyDec{}, err
	}
	ratio, err := ammmath.Div(newBalanceIn, balanceIn)
	if err != nil {
		return math.LegacyDec{}, err
	}
	poolRatio, err := ammmath.Pow(ratio, normalizedWeight)
	if err != nil {
		return math.LegacyDec{}, err
	}
	newPoolSupply, err := ammmath.Mul(poolRatio, poolSupply)
	if err != nil {
		return math.LegacyDec{}, err
	}
	return ammmath.Sub(newPoolSupply, poolSupply)
}

// CalcSingleInGivenPoolOut returns the single-asset deposit required to mint
// the requested pool shares.
func CalcSingleInGivenPoolOut(balanceIn, weightIn, poolSupply, totalWeight, poolAmountOut, swapFee math.LegacyDec) (math.LegacyDec, error) {
	normalizedWeight, err := ammmath.Div(weightIn, totalWeight)
	if err != nil {
		return math.LegacyDec{}, err
	}
	newPoolSupply, err := ammmath.Add(poolSupply, poolAmountOut)
	if err != nil {
		return math.LegacyDec{}, err
	}
	poolRatio, err := ammmath.Div(newPoolSupply, poolSupply)
	if err != nil {
		return math.LegacyDec{}, err
	}
	invWeight, err := ammmath.Div(math.LegacyOneDec(), normalizedWeight)
	if err != nil {
		return math.LegacyDec{}, err
	}
	tokenInRatio, err := ammmath.Pow(poolRatio, invWeight)
	if err != nil {
		return math.LegacyDec{}, err
	}
	newBalanceIn, err := ammmath.Mul(tokenInRatio, balanceIn)
	if err != nil {
		return math.LegacyDec{}, err
	}
	inAfterFee, err := ammmath.Sub(newBalanceIn, balanceIn)
	if err != nil {
		return math.LegacyDec{}, err
	}
	feeShare, err := ammmath.Sub(math.LegacyOneDec(), normalizedWeight)
	if err != nil {
		return math.LegacyDec{}, err
	}
	zar, err := ammmath.Mul(feeShare, swapFee)
	if err != nil {
		return math.LegacyDec{}, err
	}
	feeBase, err := ammmath.Sub(math.LegacyOneDec(), zar)
	if err != nil {
		return math.LegacyDec{}, err
	}
	return ammmath.Div(inAfterFee, feeBase)
}

// CalcSingleOutGivenPoolIn returns the single-asset withdrawal paid out for
// redeeming the given pool shares. The exit fee reduces the shares burned and
// the swap fee applies to the implicitly traded portion of the output.
func CalcSingleOutGivenPoolIn(balanceOut, weightOut, poolSupply, totalWeight, poolAmountIn, swapFee math.LegacyDec) (math.LegacyDec, error) {
	normalizedWeight, err := ammmath.Div(weightOut, totalWeight)
	if err != nil {
		return math.LegacyDec{}, err
	}
	exitBase, err := ammmath.Sub(math.LegacyOneDec(), ExitFee)
	if err != nil {
		return math.LegacyDec{}, err
	}
	inAfterExitFee, err := ammmath.Mul(poolAmountIn, exitBase)
	if err != nil {
		return math.LegacyDec{}, err
	}
	newPoolSupply, err := ammmath.Sub(poolSupply, inAfterExitFee)
	if err != nil {
		return math.LegacyDec{}, err
	}
	poolRatio, err := ammmath.Div(newPoolSupply, poolSupply)
	if err != nil {
		return math.LegacyDec{}, err
	}
	invWeight, err := ammmath.Div(math.LegacyOneDec(), normalizedWeight)
	if err != nil {
		return math.LegacyDec{}, err
	}
	tokenOutRatio, err := ammmath.Pow(poolRatio, invWeight)
	if err != nil {
		return math.LegacyDec{}, err
	}
	newBalanceOut, err := ammmath.Mul(tokenOutRatio, balanceOut)
	if err != nil {
		return math.LegacyDec{}, err
	}
	outBeforeFee, err := ammmath.Sub(balanceOut, newBalanceOut)
	if err != nil {
		return math.LegacyDec{}, err
	}
	feeShare, err := ammmath.Sub(math.LegacyOneDec(), normalizedWeight)
	if err != nil {
		return math.LegacyDec{}, err
	}
	zaz, err := ammmath.Mul(feeShare, swapFee)
	if err != nil {
		return math.LegacyDec{}, err
	}
	feeBase, err := ammmath.Sub(math.LegacyOneDec(), zaz)
	if err != nil {
		return math.LegacyDec{}, err
	}
	return ammmath.Mul(outBeforeFee, feeBase)
}

// CalcPoolInGivenSingleOut returns the pool shares that must be redeemed to
// withdraw the requested single-asset amount.
func CalcPoolInGivenSingleOut(balanceOut, weightOut, poolSupply, totalWeight, amountOut, swapFee math.LegacyDec) (math.LegacyDec, error) {
	normalizedWeight, err := ammmath.Div(weightOut, totalWeight)
	if err != nil {
		return math.LegacyDec{}, err
	}
	feeShare, err := ammmath.Sub(math.LegacyOneDec(), normalizedWeight)
	if err != nil {
		return math.LegacyDec{}, err
	}
	zar, err := ammmath.Mul(feeShare, swapFee)
	if err != nil {
		return math.LegacyDec{}, err
	}
	feeBase, err := ammmath.Sub(math.LegacyOneDec(), zar)
	if err != nil {
		return math.LegacyDec{}, err
	}
	outBeforeFee, err := ammmath.Div(amountOut, feeBase)
	if err != nil {
		return math.LegacyDec{}, err
	}
	newBalanceOut, err := ammmath.Sub(balanceOut, outBeforeFee)
	if err != nil {
		return math.LegacyDec{}, err
	}
	tokenOutRatio, err := ammmath.Div(newBalanceOut, balanceOut)
	if err != nil {
		return math.LegacyDec{}, err
	}
	poolRatio, err := ammmath.Pow(tokenOutRatio, normalizedWeight)
	if err != nil {
		return math.LegacyDec{}, err
	}
	newPoolSupply, err := ammmath.Mul(poolRatio, poolSupply)
	if err != nil {
		return math.LegacyDec{}, err
	}
	inAfterExitFee, err := ammmath.Sub(poolSupply, newPoolSupply)
	if err != nil {
		return math.LegacyDec{}, err
	}
	exitBase, err := ammmath.Sub(math.LegacyOneDec(), ExitFee)
	if err != nil {
		return math.LegacyDec{}, err
	}
	return ammmath.Div(inAfterExitFee, exitBase)
}

// CalcInvariantRatio returns V'/V, the growth factor of the weighted-product
// invariant between two snapshots of the same record set. Per-asset balance
// ratios stay inside the power domain whenever the trade-size guards held, so
// this form is usable where the raw invariant is not.
func CalcInvariantRatio(before, after []AssetRecord) (math.LegacyDec, error) {
	if len(before) != len(after) {
		return math.LegacyDec{}, ErrInvalidAmount
	}
	totalWeight := math.LegacyZeroDec()
	for _, rec := range before {
		totalWeight = totalWeight.Add(rec.Weight)
	}
	ratio := math.LegacyOneDec()
	for i, rec := range before {
		balanceRatio, err := ammmath.Div(after[i].Balance, rec.Balance)
		if err != nil {
			return math.LegacyDec{}, err
		}
		normalizedWeight, err := ammmath.Div(rec.Weight, totalWeight)
		if err != nil {
			return math.LegacyDec{}, err
		}
		factor, err := ammmath.Pow(balanceRatio, normalizedWeight)
		if err != nil {
			return math.LegacyDec{}, err
		}
		ratio, err = ammmath.Mul(ratio, factor)
		if err != nil {
			return math.LegacyDec{}, err
		}
	}
	return ratio, nil
}
