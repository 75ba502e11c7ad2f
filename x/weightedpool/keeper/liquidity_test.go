package keeper

import (
	"errors"
	"testing"

	"cosmossdk.io/math"
	"github.com/openalpha/amm-dex/x/weightedpool/types"
)

func TestJoinPool(t *testing.T) {
	k, ctx, bank := setupTestKeeper(t)
	poolID := createFinalizedPool(t, k, ctx)
	bank.reset()

	// 20 shares on a supply of 100 pulls a fifth of every balance
	amountsIn, err := k.JoinPool(ctx, testUser, poolID, math.LegacyNewDec(20), nil)
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	expected := map[string]string{"atom": "80", "osmo": "20", "juno": "10"}
	for denom, want := range expected {
		got, ok := amountsIn[denom]
		if !ok {
			t.Fatalf("expected %s in the deposit set", denom)
		}
		if !got.Equal(math.LegacyMustNewDecFromStr(want)) {
			t.Errorf("expected %s %s deposited, got %s", want, denom, got.String())
		}
	}

	pool := k.GetPool(ctx, poolID)
	if !pool.Shares.TotalSupply.Equal(math.LegacyNewDec(120)) {
		t.Errorf("expected supply 120, got %s", pool.Shares.TotalSupply.String())
	}
	if !pool.Shares.BalanceOf(testUser).Equal(math.LegacyNewDec(20)) {
		t.Errorf("expected user to hold 20 shares, got %s", pool.Shares.BalanceOf(testUser).String())
	}
	atomRec, _ := pool.GetRecord("atom")
	if !atomRec.Balance.Equal(math.LegacyNewDec(480)) {
		t.Errorf("expected atom balance 480, got %s", atomRec.Balance.String())
	}
	if len(bank.pulls) != 3 {
		t.Errorf("expected 3 pulls, got %d", len(bank.pulls))
	}
}

func TestJoinPoolRejections(t *testing.T) {
	k, ctx, _ := setupTestKeeper(t)
	poolID := createFinalizedPool(t, k, ctx)

	// the proportional atom deposit for 20 shares is 80
	_, err := k.JoinPool(ctx, testUser, poolID, math.LegacyNewDec(20), map[string]math.LegacyDec{
		"atom": math.LegacyNewDec(79),
	})
	if !errors.Is(err, types.ErrLimitIn) {
		t.Errorf("expected ErrLimitIn, got %v", err)
	}

	_, err = k.JoinPool(ctx, testUser, poolID, math.LegacyZeroDec(), nil)
	if !errors.Is(err, types.ErrInvalidAmount) {
		t.Errorf("expected ErrInvalidAmount, got %v", err)
	}

	unfinalized := createBoundPool(t, k, ctx)
	_, err = k.JoinPool(ctx, testUser, unfinalized, math.LegacyNewDec(20), nil)
	if !errors.Is(err, types.ErrPoolNotFinalized) {
		t.Errorf("expected ErrPoolNotFinalized, got %v", err)
	}
}

// TestJoinPoolRollback checks that a failed bank transfer leaves the pool
// untouched.
func TestJoinPoolRollback(t *testing.T) {
	k, ctx, bank := setupTestKeeper(t)
	poolID := createFinalizedPool(t, k, ctx)

	bank.failPull = true
	if _, err := k.JoinPool(ctx, testUser, poolID, math.LegacyNewDec(20), nil); err == nil {
		t.Fatal("expected join to fail when the deposit cannot be pulled")
	}

	pool := k.GetPool(ctx, poolID)
	if !pool.Shares.TotalSupply.Equal(types.InitPoolSupply) {
		t.Errorf("expected supply unchanged at %s, got %s", types.InitPoolSupply.String(), pool.Shares.TotalSupply.String())
	}
	atomRec, _ := pool.GetRecord("atom")
	if !atomRec.Balance.Equal(math.LegacyNewDec(400)) {
		t.Errorf("expected atom balance unchanged at 400, got %s", atomRec.Balance.String())
	}
	if !pool.Shares.BalanceOf(testUser).IsZero() {
		t.Errorf("expected no shares minted, got %s", pool.Shares.BalanceOf(testUser).String())
	}
}

func TestExitPool(t *testing.T) {
	k, ctx, bank := setupTestKeeper(t)
	poolID := createFinalizedPool(t, k, ctx)

	if _, err := k.JoinPool(ctx, testUser, poolID, math.LegacyNewDec(20), nil); err != nil {
		t.Fatalf("join: %v", err)
	}
	bank.reset()

	amountsOut, err := k.ExitPool(ctx, testUser, poolID, math.LegacyNewDec(20), nil)
	if err != nil {
		t.Fatalf("exit: %v", err)
	}
	expected := map[string]string{"atom": "80", "osmo": "20", "juno": "10"}
	for denom, want := range expected {
		if !amountsOut[denom].Equal(math.LegacyMustNewDecFromStr(want)) {
			t.Errorf("expected %s %s paid out, got %s", want, denom, amountsOut[denom].String())
		}
	}

	pool := k.GetPool(ctx, poolID)
	if !pool.Shares.TotalSupply.Equal(types.InitPoolSupply) {
		t.Errorf("expected supply back to %s, got %s", types.InitPoolSupply.String(), pool.Shares.TotalSupply.String())
	}
	if !pool.Shares.BalanceOf(testUser).IsZero() {
		t.Errorf("expected user shares burned, got %s", pool.Shares.BalanceOf(testUser).String())
	}
	atomRec, _ := pool.GetRecord("atom")
	if !atomRec.Balance.Equal(math.LegacyNewDec(400)) {
		t.Errorf("expected atom balance back to 400, got %s", atomRec.Balance.String())
	}
	if len(bank.pushes) != 3 {
		t.Errorf("expected 3 pushes, got %d", len(bank.pushes))
	}
}

func TestExitPoolRejections(t *testing.T) {
	k, ctx, _ := setupTestKeeper(t)
	poolID := createFinalizedPool(t, k, ctx)

	_, err := k.ExitPool(ctx, testUser, poolID, math.LegacyNewDec(20), nil)
	if !errors.Is(err, types.ErrInsufficientShares) {
		t.Errorf("expected ErrInsufficientShares, got %v", err)
	}

	// the controller holds the initial supply; floor above the payout
	_, err = k.ExitPool(ctx, testController, poolID, math.LegacyNewDec(20), map[string]math.LegacyDec{
		"atom": math.LegacyNewDec(81),
	})
	if !errors.Is(err, types.ErrLimitOut) {
		t.Errorf("expected ErrLimitOut, got %v", err)
	}
}

func TestJoinswapExternAmountIn(t *testing.T) {
	k, ctx, bank := setupTestKeeper(t)
	poolID := createTradingPool(t, k, ctx)
	bank.reset()

	poolAmountOut, err := k.JoinswapExternAmountIn(ctx, testUser, poolID, "atom", math.LegacyNewDec(100), nilDec)
	if err != nil {
		t.Fatalf("joinswap: %v", err)
	}
	// 100 atom against balance 400, weight 10 of 40, supply 100, fee 0.15%
	want := math.LegacyMustNewDecFromStr("5.731178128795367827")
	if !within(poolAmountOut, want) {
		t.Errorf("expected ~%s shares, got %s", want.String(), poolAmountOut.String())
	}

	pool := k.GetPool(ctx, poolID)
	atomRec, _ := pool.GetRecord("atom")
	if !atomRec.Balance.Equal(math.LegacyNewDec(500)) {
		t.Errorf("expected atom balance 500, got %s", atomRec.Balance.String())
	}
	if !within(pool.Shares.TotalSupply, math.LegacyMustNewDecFromStr("105.731178128795367827")) {
		t.Errorf("expected supply ~105.73, got %s", pool.Shares.TotalSupply.String())
	}
	if !pool.Shares.BalanceOf(testUser).Equal(poolAmountOut) {
		t.Errorf("expected user to hold the minted shares, got %s", pool.Shares.BalanceOf(testUser).String())
	}

	_, err = k.JoinswapExternAmountIn(ctx, testUser, poolID, "atom", math.LegacyNewDec(100), math.LegacyNewDec(6))
	if !errors.Is(err, types.ErrLimitOut) {
		t.Errorf("expected ErrLimitOut, got %v", err)
	}
	_, err = k.JoinswapExternAmountIn(ctx, testUser, poolID, "atom", math.LegacyNewDec(300), nilDec)
	if !errors.Is(err, types.ErrMaxInRatio) {
		t.Errorf("expected ErrMaxInRatio, got %v", err)
	}
	_, err = k.JoinswapExternAmountIn(ctx, testUser, poolID, "scrt", math.LegacyNewDec(10), nilDec)
	if !errors.Is(err, types.ErrTokenNotBound) {
		t.Errorf("expected ErrTokenNotBound, got %v", err)
	}
}

func TestJoinswapPoolAmountOut(t *testing.T) {
	k, ctx, _ := setupTestKeeper(t)
	poolID := createTradingPool(t, k, ctx)

	amountIn, err := k.JoinswapPoolAmountOut(ctx, testUser, poolID, "atom", math.LegacyNewDec(5), nilDec)
	if err != nil {
		t.Fatalf("joinswap: %v", err)
	}
	// minting exactly 5 shares from the atom side costs 1.05^4 growth
	want := math.LegacyMustNewDecFromStr("86.299587035414841697")
	if !within(amountIn, want) {
		t.Errorf("expected ~%s in, got %s", want.String(), amountIn.String())
	}

	pool := k.GetPool(ctx, poolID)
	if !pool.Shares.BalanceOf(testUser).Equal(math.LegacyNewDec(5)) {
		t.Errorf("expected exactly 5 shares, got %s", pool.Shares.BalanceOf(testUser).String())
	}

	_, err = k.JoinswapPoolAmountOut(ctx, testUser, poolID, "atom", math.LegacyNewDec(5), math.LegacyNewDec(86))
	if !errors.Is(err, types.ErrLimitIn) {
		t.Errorf("expected ErrLimitIn, got %v", err)
	}
}

func TestExitswapPoolAmountIn(t *testing.T) {
	k, ctx, bank := setupTestKeeper(t)
	poolID := createTradingPool(t, k, ctx)
	bank.reset()

	amountOut, err := k.ExitswapPoolAmountIn(ctx, testController, poolID, "atom", math.LegacyNewDec(5), nilDec)
	if err != nil {
		t.Fatalf("exitswap: %v", err)
	}
	// burning 5 of 100 shares from the atom side: 400*(1-0.95^4) less fee
	want := math.LegacyMustNewDecFromStr("74.1140278125")
	if !within(amountOut, want) {
		t.Errorf("expected ~%s out, got %s", want.String(), amountOut.String())
	}

	pool := k.GetPool(ctx, poolID)
	if !pool.Shares.TotalSupply.Equal(math.LegacyNewDec(95)) {
		t.Errorf("expected supply 95, got %s", pool.Shares.TotalSupply.String())
	}
	if !pool.Shares.BalanceOf(testController).Equal(math.LegacyNewDec(95)) {
		t.Errorf("expected controller to hold 95 shares, got %s", pool.Shares.BalanceOf(testController).String())
	}
	atomRec, _ := pool.GetRecord("atom")
	if !within(atomRec.Balance, math.LegacyMustNewDecFromStr("325.8859721875")) {
		t.Errorf("expected atom balance ~325.886, got %s", atomRec.Balance.String())
	}

	_, err = k.ExitswapPoolAmountIn(ctx, testUser, poolID, "atom", math.LegacyNewDec(5), nilDec)
	if !errors.Is(err, types.ErrInsufficientShares) {
		t.Errorf("expected ErrInsufficientShares, got %v", err)
	}
	_, err = k.ExitswapPoolAmountIn(ctx, testController, poolID, "atom", math.LegacyNewDec(5), math.LegacyNewDec(80))
	if !errors.Is(err, types.ErrLimitOut) {
		t.Errorf("expected ErrLimitOut, got %v", err)
	}
}

// TestExitswapPoolAmountInMaxOutRatio checks that a single-asset exit cannot
// take more than a third of the bound balance even when the shares cover it.
func TestExitswapPoolAmountInMaxOutRatio(t *testing.T) {
	k, ctx, _ := setupTestKeeper(t)
	poolID := createTradingPool(t, k, ctx)

	// 10 of 100 shares through atom alone would pay ~137.4 of 400
	_, err := k.ExitswapPoolAmountIn(ctx, testController, poolID, "atom", math.LegacyNewDec(10), nilDec)
	if !errors.Is(err, types.ErrMaxOutRatio) {
		t.Errorf("expected ErrMaxOutRatio, got %v", err)
	}
}

func TestExitswapExternAmountOut(t *testing.T) {
	k, ctx, bank := setupTestKeeper(t)
	poolID := createTradingPool(t, k, ctx)
	bank.reset()

	poolAmountIn, err := k.ExitswapExternAmountOut(ctx, testController, poolID, "atom", math.LegacyNewDec(50), nilDec)
	if err != nil {
		t.Fatalf("exitswap: %v", err)
	}
	want := math.LegacyMustNewDecFromStr("3.287069541675683407")
	if !within(poolAmountIn, want) {
		t.Errorf("expected ~%s shares burned, got %s", want.String(), poolAmountIn.String())
	}

	pool := k.GetPool(ctx, poolID)
	atomRec, _ := pool.GetRecord("atom")
	if !atomRec.Balance.Equal(math.LegacyNewDec(350)) {
		t.Errorf("expected atom balance 350, got %s", atomRec.Balance.String())
	}
	if !within(pool.Shares.TotalSupply, math.LegacyMustNewDecFromStr("96.712930458324316593")) {
		t.Errorf("expected supply ~96.71, got %s", pool.Shares.TotalSupply.String())
	}
	if !bank.pushes[0].coins.AmountOf("atom").Equal(baseUnits("50")) {
		t.Errorf("expected 50 atom pushed, got %s", bank.pushes[0].coins.String())
	}

	_, err = k.ExitswapExternAmountOut(ctx, testController, poolID, "atom", math.LegacyNewDec(50), math.LegacyNewDec(3))
	if !errors.Is(err, types.ErrLimitIn) {
		t.Errorf("expected ErrLimitIn, got %v", err)
	}
	_, err = k.ExitswapExternAmountOut(ctx, testController, poolID, "atom", math.LegacyNewDec(150), nilDec)
	if !errors.Is(err, types.ErrMaxOutRatio) {
		t.Errorf("expected ErrMaxOutRatio, got %v", err)
	}
}

func TestMintBurnShares(t *testing.T) {
	k, ctx, _ := setupTestKeeper(t)
	poolID := createFinalizedPool(t, k, ctx)

	if err := k.MintShares(ctx, testController, poolID, testUser, math.LegacyNewDec(50)); err != nil {
		t.Fatalf("mint shares: %v", err)
	}
	pool := k.GetPool(ctx, poolID)
	if !pool.Shares.BalanceOf(testUser).Equal(math.LegacyNewDec(50)) {
		t.Errorf("expected user to hold 50 shares, got %s", pool.Shares.BalanceOf(testUser).String())
	}
	if !pool.Shares.TotalSupply.Equal(math.LegacyNewDec(150)) {
		t.Errorf("expected supply 150, got %s", pool.Shares.TotalSupply.String())
	}

	if err := k.BurnShares(ctx, testController, poolID, testUser, math.LegacyNewDec(30)); err != nil {
		t.Fatalf("burn shares: %v", err)
	}
	pool = k.GetPool(ctx, poolID)
	if !pool.Shares.BalanceOf(testUser).Equal(math.LegacyNewDec(20)) {
		t.Errorf("expected user to hold 20 shares, got %s", pool.Shares.BalanceOf(testUser).String())
	}

	if err := k.MintShares(ctx, testUser, poolID, testUser, math.LegacyNewDec(1)); !errors.Is(err, types.ErrNotController) {
		t.Errorf("expected ErrNotController, got %v", err)
	}
	if err := k.BurnShares(ctx, testController, poolID, testUser, math.LegacyNewDec(100)); !errors.Is(err, types.ErrInsufficientShares) {
		t.Errorf("expected ErrInsufficientShares, got %v", err)
	}
}

func TestTransferShares(t *testing.T) {
	k, ctx, _ := setupTestKeeper(t)
	poolID := createFinalizedPool(t, k, ctx)

	remaining, err := k.TransferShares(ctx, testController, poolID, testUser, math.LegacyNewDec(30))
	if err != nil {
		t.Fatalf("transfer shares: %v", err)
	}
	if !remaining.Equal(math.LegacyNewDec(70)) {
		t.Errorf("expected 70 remaining, got %s", remaining.String())
	}
	pool := k.GetPool(ctx, poolID)
	if !pool.Shares.BalanceOf(testUser).Equal(math.LegacyNewDec(30)) {
		t.Errorf("expected recipient to hold 30 shares, got %s", pool.Shares.BalanceOf(testUser).String())
	}

	unfinalized := createBoundPool(t, k, ctx)
	_, err = k.TransferShares(ctx, testController, unfinalized, testUser, math.LegacyNewDec(1))
	if !errors.Is(err, types.ErrSharesNotTransferable) {
		t.Errorf("expected ErrSharesNotTransferable, got %v", err)
	}
}

func TestApproveAndTransferSharesFrom(t *testing.T) {
	k, ctx, _ := setupTestKeeper(t)
	poolID := createFinalizedPool(t, k, ctx)

	if err := k.ApproveShares(ctx, testController, poolID, testUser, math.LegacyNewDec(40)); err != nil {
		t.Fatalf("approve shares: %v", err)
	}

	allowance, err := k.TransferSharesFrom(ctx, testUser, poolID, testController, testUser2, math.LegacyNewDec(15))
	if err != nil {
		t.Fatalf("transfer shares from: %v", err)
	}
	if !allowance.Equal(math.LegacyNewDec(25)) {
		t.Errorf("expected allowance 25 left, got %s", allowance.String())
	}
	pool := k.GetPool(ctx, poolID)
	if !pool.Shares.BalanceOf(testUser2).Equal(math.LegacyNewDec(15)) {
		t.Errorf("expected 15 shares delivered, got %s", pool.Shares.BalanceOf(testUser2).String())
	}

	_, err = k.TransferSharesFrom(ctx, testUser, poolID, testController, testUser2, math.LegacyNewDec(26))
	if !errors.Is(err, types.ErrInsufficientAllowance) {
		t.Errorf("expected ErrInsufficientAllowance, got %v", err)
	}
}
