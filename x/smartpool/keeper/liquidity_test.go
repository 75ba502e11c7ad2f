package keeper

import (
	"errors"
	"testing"

	"cosmossdk.io/math"
	"github.com/openalpha/amm-dex/x/smartpool/types"
	wptypes "github.com/openalpha/amm-dex/x/weightedpool/types"
)

func TestSmartJoinPool(t *testing.T) {
	k, _, ctx, bank := setupTestKeeper(t)
	smartPoolID := createLivePool(t, k, ctx)
	bank.reset()

	// 40 shares on a supply of 200 pulls a fifth of every balance
	amountsIn, err := k.JoinPool(ctx, testUser, smartPoolID, math.LegacyNewDec(40), nil)
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	expected := map[string]string{"atom": "80", "osmo": "0.2", "juno": "0.8"}
	for denom, want := range expected {
		got, ok := amountsIn[denom]
		if !ok {
			t.Fatalf("expected %s in the deposit set", denom)
		}
		if !got.Equal(math.LegacyMustNewDecFromStr(want)) {
			t.Errorf("expected %s %s deposited, got %s", want, denom, got.String())
		}
	}

	pool := enginePool(t, k, ctx, smartPoolID)
	if !pool.Shares.TotalSupply.Equal(math.LegacyNewDec(240)) {
		t.Errorf("expected supply 240, got %s", pool.Shares.TotalSupply.String())
	}
	if !pool.Shares.BalanceOf(testUser).Equal(math.LegacyNewDec(40)) {
		t.Errorf("expected user to hold 40 shares, got %s", pool.Shares.BalanceOf(testUser).String())
	}
	atomRec, _ := pool.GetRecord("atom")
	if !atomRec.Balance.Equal(math.LegacyNewDec(480)) {
		t.Errorf("expected atom balance 480, got %s", atomRec.Balance.String())
	}
	osmoRec, _ := pool.GetRecord("osmo")
	if !osmoRec.Balance.Equal(math.LegacyMustNewDecFromStr("1.2")) {
		t.Errorf("expected osmo balance 1.2, got %s", osmoRec.Balance.String())
	}
	if !totalPulled(bank, testUser, "atom").Equal(baseUnits("80")) {
		t.Errorf("expected 80 atom pulled from the user, got %s", totalPulled(bank, testUser, "atom").String())
	}
}

func TestSmartJoinPoolRejections(t *testing.T) {
	k, _, ctx, _ := setupTestKeeper(t)
	smartPoolID := createLivePool(t, k, ctx)

	// the proportional atom deposit for 40 shares is 80
	_, err := k.JoinPool(ctx, testUser, smartPoolID, math.LegacyNewDec(40), map[string]math.LegacyDec{
		"atom": math.LegacyNewDec(79),
	})
	if !errors.Is(err, wptypes.ErrLimitIn) {
		t.Errorf("expected ErrLimitIn, got %v", err)
	}

	_, err = k.JoinPool(ctx, testUser, smartPoolID, math.LegacyZeroDec(), nil)
	if !errors.Is(err, types.ErrInvalidAmount) {
		t.Errorf("expected ErrInvalidAmount, got %v", err)
	}

	configured := createConfiguredPool(t, k, ctx, standardRights)
	_, err = k.JoinPool(ctx, testUser, configured, math.LegacyNewDec(40), nil)
	if !errors.Is(err, types.ErrPoolNotCreated) {
		t.Errorf("expected ErrPoolNotCreated, got %v", err)
	}

	_, err = k.JoinPool(ctx, testUser, "spool-404", math.LegacyNewDec(40), nil)
	if !errors.Is(err, types.ErrSmartPoolNotFound) {
		t.Errorf("expected ErrSmartPoolNotFound, got %v", err)
	}
}

func TestSmartJoinPoolRespectsCap(t *testing.T) {
	k, _, ctx, _ := setupTestKeeper(t)
	smartPoolID := createLivePoolWithRights(t, k, ctx, types.Rights{CanChangeCap: true})

	// instantiation pinned the cap to the 200 initial supply
	_, err := k.JoinPool(ctx, testUser, smartPoolID, math.LegacyNewDec(1), nil)
	if !errors.Is(err, types.ErrCapLimitReached) {
		t.Errorf("expected ErrCapLimitReached, got %v", err)
	}

	if err := k.SetCap(ctx, testController, smartPoolID, math.LegacyNewDec(300)); err != nil {
		t.Fatalf("set cap: %v", err)
	}
	// filling the cap to the brim is allowed
	if _, err := k.JoinPool(ctx, testUser, smartPoolID, math.LegacyNewDec(100), nil); err != nil {
		t.Fatalf("expected join up to the cap, got %v", err)
	}
	_, err = k.JoinPool(ctx, testUser, smartPoolID, math.LegacyNewDec(1), nil)
	if !errors.Is(err, types.ErrCapLimitReached) {
		t.Errorf("expected ErrCapLimitReached at the brim, got %v", err)
	}

	// exits free room under the cap again
	if _, err := k.ExitPool(ctx, testUser, smartPoolID, math.LegacyNewDec(50), nil); err != nil {
		t.Fatalf("exit: %v", err)
	}
	if _, err := k.JoinPool(ctx, testUser, smartPoolID, math.LegacyNewDec(10), nil); err != nil {
		t.Errorf("expected join after exits freed room, got %v", err)
	}
}

// TestSmartJoinPoolRollback checks that a failed deposit leaves both ledgers
// untouched.
func TestSmartJoinPoolRollback(t *testing.T) {
	k, _, ctx, bank := setupTestKeeper(t)
	smartPoolID := createLivePool(t, k, ctx)

	bank.failPull = true
	if _, err := k.JoinPool(ctx, testUser, smartPoolID, math.LegacyNewDec(40), nil); err == nil {
		t.Fatal("expected join to fail when the deposit cannot be pulled")
	}

	pool := enginePool(t, k, ctx, smartPoolID)
	if !pool.Shares.TotalSupply.Equal(math.LegacyNewDec(200)) {
		t.Errorf("expected supply unchanged at 200, got %s", pool.Shares.TotalSupply.String())
	}
	atomRec, _ := pool.GetRecord("atom")
	if !atomRec.Balance.Equal(math.LegacyNewDec(400)) {
		t.Errorf("expected atom balance unchanged at 400, got %s", atomRec.Balance.String())
	}
	if !pool.Shares.BalanceOf(testUser).IsZero() {
		t.Errorf("expected no shares minted, got %s", pool.Shares.BalanceOf(testUser).String())
	}
}

func TestSmartExitPool(t *testing.T) {
	k, _, ctx, bank := setupTestKeeper(t)
	smartPoolID := createLivePool(t, k, ctx)

	if _, err := k.JoinPool(ctx, testUser, smartPoolID, math.LegacyNewDec(40), nil); err != nil {
		t.Fatalf("join: %v", err)
	}
	bank.reset()

	amountsOut, err := k.ExitPool(ctx, testUser, smartPoolID, math.LegacyNewDec(40), nil)
	if err != nil {
		t.Fatalf("exit: %v", err)
	}
	expected := map[string]string{"atom": "80", "osmo": "0.2", "juno": "0.8"}
	for denom, want := range expected {
		if !within(amountsOut[denom], math.LegacyMustNewDecFromStr(want)) {
			t.Errorf("expected ~%s %s paid out, got %s", want, denom, amountsOut[denom].String())
		}
	}

	pool := enginePool(t, k, ctx, smartPoolID)
	if !pool.Shares.TotalSupply.Equal(math.LegacyNewDec(200)) {
		t.Errorf("expected supply back to 200, got %s", pool.Shares.TotalSupply.String())
	}
	if !pool.Shares.BalanceOf(testUser).IsZero() {
		t.Errorf("expected user shares burned, got %s", pool.Shares.BalanceOf(testUser).String())
	}
	atomRec, _ := pool.GetRecord("atom")
	if !within(atomRec.Balance, math.LegacyNewDec(400)) {
		t.Errorf("expected atom balance back to ~400, got %s", atomRec.Balance.String())
	}
	// the bank paid out exactly what the exit reported
	if !totalPushed(bank, testUser, "atom").Equal(baseUnits(amountsOut["atom"].String())) {
		t.Errorf("expected the reported atom payout pushed, got %s", totalPushed(bank, testUser, "atom").String())
	}
}

func TestSmartExitPoolRejections(t *testing.T) {
	k, _, ctx, _ := setupTestKeeper(t)
	smartPoolID := createLivePool(t, k, ctx)

	_, err := k.ExitPool(ctx, testUser, smartPoolID, math.LegacyNewDec(20), nil)
	if !errors.Is(err, wptypes.ErrInsufficientShares) {
		t.Errorf("expected ErrInsufficientShares, got %v", err)
	}

	// the controller holds the initial supply; the atom payout for 20 of 200
	// shares is 40, a floor of 41 trips
	_, err = k.ExitPool(ctx, testController, smartPoolID, math.LegacyNewDec(20), map[string]math.LegacyDec{
		"atom": math.LegacyNewDec(41),
	})
	if !errors.Is(err, wptypes.ErrLimitOut) {
		t.Errorf("expected ErrLimitOut, got %v", err)
	}

	_, err = k.ExitPool(ctx, testController, smartPoolID, math.LegacyZeroDec(), nil)
	if !errors.Is(err, types.ErrInvalidAmount) {
		t.Errorf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestSmartJoinswapExternAmountIn(t *testing.T) {
	k, _, ctx, _ := setupTestKeeper(t)
	smartPoolID := createLivePool(t, k, ctx)

	poolAmountOut, err := k.JoinswapExternAmountIn(ctx, testUser, smartPoolID, "atom", math.LegacyNewDec(40), nilDec)
	if err != nil {
		t.Fatalf("joinswap: %v", err)
	}
	// the wrapper must price exactly like the engine curve
	want, err := wptypes.CalcPoolOutGivenSingleIn(
		math.LegacyNewDec(400), math.LegacyNewDec(10),
		math.LegacyNewDec(200), math.LegacyNewDec(40),
		math.LegacyNewDec(40), math.LegacyMustNewDecFromStr("0.0015"))
	if err != nil {
		t.Fatalf("calc: %v", err)
	}
	if !poolAmountOut.Equal(want) {
		t.Errorf("expected %s shares, got %s", want.String(), poolAmountOut.String())
	}

	pool := enginePool(t, k, ctx, smartPoolID)
	atomRec, _ := pool.GetRecord("atom")
	if !atomRec.Balance.Equal(math.LegacyNewDec(440)) {
		t.Errorf("expected atom balance 440, got %s", atomRec.Balance.String())
	}
	if !pool.Shares.BalanceOf(testUser).Equal(poolAmountOut) {
		t.Errorf("expected user to hold the minted shares, got %s", pool.Shares.BalanceOf(testUser).String())
	}

	_, err = k.JoinswapExternAmountIn(ctx, testUser, smartPoolID, "atom", math.LegacyNewDec(40), math.LegacyNewDec(10))
	if !errors.Is(err, wptypes.ErrLimitOut) {
		t.Errorf("expected ErrLimitOut, got %v", err)
	}
	_, err = k.JoinswapExternAmountIn(ctx, testUser, smartPoolID, "atom", math.LegacyNewDec(300), nilDec)
	if !errors.Is(err, wptypes.ErrMaxInRatio) {
		t.Errorf("expected ErrMaxInRatio, got %v", err)
	}
	_, err = k.JoinswapExternAmountIn(ctx, testUser, smartPoolID, "scrt", math.LegacyNewDec(10), nilDec)
	if !errors.Is(err, wptypes.ErrTokenNotBound) {
		t.Errorf("expected ErrTokenNotBound, got %v", err)
	}
}

func TestSmartJoinswapExternAmountInRespectsCap(t *testing.T) {
	k, _, ctx, _ := setupTestKeeper(t)
	smartPoolID := createLivePoolWithRights(t, k, ctx, types.Rights{CanChangeCap: true})

	_, err := k.JoinswapExternAmountIn(ctx, testUser, smartPoolID, "atom", math.LegacyNewDec(40), nilDec)
	if !errors.Is(err, types.ErrCapLimitReached) {
		t.Errorf("expected ErrCapLimitReached, got %v", err)
	}
}

func TestSmartJoinswapPoolAmountOut(t *testing.T) {
	k, _, ctx, _ := setupTestKeeper(t)
	smartPoolID := createLivePool(t, k, ctx)

	amountIn, err := k.JoinswapPoolAmountOut(ctx, testUser, smartPoolID, "atom", math.LegacyNewDec(5), nilDec)
	if err != nil {
		t.Fatalf("joinswap: %v", err)
	}
	want, err := wptypes.CalcSingleInGivenPoolOut(
		math.LegacyNewDec(400), math.LegacyNewDec(10),
		math.LegacyNewDec(200), math.LegacyNewDec(40),
		math.LegacyNewDec(5), math.LegacyMustNewDecFromStr("0.0015"))
	if err != nil {
		t.Fatalf("calc: %v", err)
	}
	if !amountIn.Equal(want) {
		t.Errorf("expected %s in, got %s", want.String(), amountIn.String())
	}

	pool := enginePool(t, k, ctx, smartPoolID)
	if !pool.Shares.BalanceOf(testUser).Equal(math.LegacyNewDec(5)) {
		t.Errorf("expected exactly 5 shares, got %s", pool.Shares.BalanceOf(testUser).String())
	}

	_, err = k.JoinswapPoolAmountOut(ctx, testUser, smartPoolID, "atom", math.LegacyNewDec(5), math.LegacyNewDec(1))
	if !errors.Is(err, wptypes.ErrLimitIn) {
		t.Errorf("expected ErrLimitIn, got %v", err)
	}
	// minting 40 shares from the atom side alone needs more than half the
	// bound balance
	_, err = k.JoinswapPoolAmountOut(ctx, testUser, smartPoolID, "atom", math.LegacyNewDec(40), nilDec)
	if !errors.Is(err, wptypes.ErrMaxInRatio) {
		t.Errorf("expected ErrMaxInRatio, got %v", err)
	}
}

func TestSmartExitswapPoolAmountIn(t *testing.T) {
	k, _, ctx, _ := setupTestKeeper(t)
	smartPoolID := createLivePool(t, k, ctx)

	amountOut, err := k.ExitswapPoolAmountIn(ctx, testController, smartPoolID, "atom", math.LegacyNewDec(5), nilDec)
	if err != nil {
		t.Fatalf("exitswap: %v", err)
	}
	want, err := wptypes.CalcSingleOutGivenPoolIn(
		math.LegacyNewDec(400), math.LegacyNewDec(10),
		math.LegacyNewDec(200), math.LegacyNewDec(40),
		math.LegacyNewDec(5), math.LegacyMustNewDecFromStr("0.0015"))
	if err != nil {
		t.Fatalf("calc: %v", err)
	}
	if !amountOut.Equal(want) {
		t.Errorf("expected %s out, got %s", want.String(), amountOut.String())
	}

	pool := enginePool(t, k, ctx, smartPoolID)
	if !pool.Shares.TotalSupply.Equal(math.LegacyNewDec(195)) {
		t.Errorf("expected supply 195, got %s", pool.Shares.TotalSupply.String())
	}
	if !pool.Shares.BalanceOf(testController).Equal(math.LegacyNewDec(195)) {
		t.Errorf("expected controller to hold 195 shares, got %s", pool.Shares.BalanceOf(testController).String())
	}

	_, err = k.ExitswapPoolAmountIn(ctx, testUser, smartPoolID, "atom", math.LegacyNewDec(5), nilDec)
	if !errors.Is(err, wptypes.ErrInsufficientShares) {
		t.Errorf("expected ErrInsufficientShares, got %v", err)
	}
	_, err = k.ExitswapPoolAmountIn(ctx, testController, smartPoolID, "atom", math.LegacyNewDec(5), math.LegacyNewDec(80))
	if !errors.Is(err, wptypes.ErrLimitOut) {
		t.Errorf("expected ErrLimitOut, got %v", err)
	}
	// 20 of 200 shares through atom alone would take more than a third of the
	// bound balance
	_, err = k.ExitswapPoolAmountIn(ctx, testController, smartPoolID, "atom", math.LegacyNewDec(20), nilDec)
	if !errors.Is(err, wptypes.ErrMaxOutRatio) {
		t.Errorf("expected ErrMaxOutRatio, got %v", err)
	}
}

func TestSmartExitswapExternAmountOut(t *testing.T) {
	k, _, ctx, bank := setupTestKeeper(t)
	smartPoolID := createLivePool(t, k, ctx)
	bank.reset()

	poolAmountIn, err := k.ExitswapExternAmountOut(ctx, testController, smartPoolID, "atom", math.LegacyNewDec(50), nilDec)
	if err != nil {
		t.Fatalf("exitswap: %v", err)
	}
	want, err := wptypes.CalcPoolInGivenSingleOut(
		math.LegacyNewDec(400), math.LegacyNewDec(10),
		math.LegacyNewDec(200), math.LegacyNewDec(40),
		math.LegacyNewDec(50), math.LegacyMustNewDecFromStr("0.0015"))
	if err != nil {
		t.Fatalf("calc: %v", err)
	}
	if !poolAmountIn.Equal(want) {
		t.Errorf("expected %s shares burned, got %s", want.String(), poolAmountIn.String())
	}

	pool := enginePool(t, k, ctx, smartPoolID)
	atomRec, _ := pool.GetRecord("atom")
	if !atomRec.Balance.Equal(math.LegacyNewDec(350)) {
		t.Errorf("expected atom balance 350, got %s", atomRec.Balance.String())
	}
	if !totalPushed(bank, testController, "atom").Equal(baseUnits("50")) {
		t.Errorf("expected 50 atom pushed, got %s", totalPushed(bank, testController, "atom").String())
	}

	_, err = k.ExitswapExternAmountOut(ctx, testController, smartPoolID, "atom", math.LegacyNewDec(50), math.LegacyMustNewDecFromStr("0.1"))
	if !errors.Is(err, wptypes.ErrLimitIn) {
		t.Errorf("expected ErrLimitIn, got %v", err)
	}
	_, err = k.ExitswapExternAmountOut(ctx, testController, smartPoolID, "atom", math.LegacyNewDec(150), nilDec)
	if !errors.Is(err, wptypes.ErrMaxOutRatio) {
		t.Errorf("expected ErrMaxOutRatio, got %v", err)
	}
}

// TestSwapFeeChangeMovesJoinPricing checks that single-asset pricing follows
// the live engine fee rather than the instantiation fee.
func TestSwapFeeChangeMovesJoinPricing(t *testing.T) {
	k, _, ctx, _ := setupTestKeeper(t)
	smartPoolID := createLivePool(t, k, ctx)

	if err := k.SetSwapFee(ctx, testController, smartPoolID, math.LegacyMustNewDecFromStr("0.01")); err != nil {
		t.Fatalf("set swap fee: %v", err)
	}

	poolAmountOut, err := k.JoinswapExternAmountIn(ctx, testUser, smartPoolID, "atom", math.LegacyNewDec(40), nilDec)
	if err != nil {
		t.Fatalf("joinswap: %v", err)
	}
	want, err := wptypes.CalcPoolOutGivenSingleIn(
		math.LegacyNewDec(400), math.LegacyNewDec(10),
		math.LegacyNewDec(200), math.LegacyNewDec(40),
		math.LegacyNewDec(40), math.LegacyMustNewDecFromStr("0.01"))
	if err != nil {
		t.Fatalf("calc: %v", err)
	}
	if !poolAmountOut.Equal(want) {
		t.Errorf("expected pricing at the raised fee %s, got %s", want.String(), poolAmountOut.String())
	}
}
