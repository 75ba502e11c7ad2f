package keeper

import (
	"errors"
	"testing"

	"cosmossdk.io/math"
	"github.com/openalpha/amm-dex/x/smartpool/types"
	wptypes "github.com/openalpha/amm-dex/x/weightedpool/types"
)

func TestUpdateWeightIncrease(t *testing.T) {
	k, _, ctx, bank := setupTestKeeper(t)
	smartPoolID := createLivePool(t, k, ctx)
	bank.reset()

	// osmo 10 -> 20 on total weight 40: the balance doubles to keep the spot
	// prices put and supply*10/40 = 50 shares are minted to the controller
	newTotalWeight, newSupply, err := k.UpdateWeight(ctx, testController, smartPoolID, "osmo", math.LegacyNewDec(20))
	if err != nil {
		t.Fatalf("update weight: %v", err)
	}
	if !newTotalWeight.Equal(math.LegacyNewDec(50)) {
		t.Errorf("expected total weight 50, got %s", newTotalWeight.String())
	}
	if !newSupply.Equal(math.LegacyNewDec(250)) {
		t.Errorf("expected supply 250, got %s", newSupply.String())
	}

	pool := enginePool(t, k, ctx, smartPoolID)
	osmoRec, _ := pool.GetRecord("osmo")
	if !osmoRec.Balance.Equal(math.LegacyNewDec(2)) {
		t.Errorf("expected osmo balance 2, got %s", osmoRec.Balance.String())
	}
	if !osmoRec.Weight.Equal(math.LegacyNewDec(20)) {
		t.Errorf("expected osmo weight 20, got %s", osmoRec.Weight.String())
	}
	atomRec, _ := pool.GetRecord("atom")
	if !atomRec.Balance.Equal(math.LegacyNewDec(400)) || !atomRec.Weight.Equal(math.LegacyNewDec(10)) {
		t.Error("expected atom untouched")
	}
	if !pool.Shares.BalanceOf(testController).Equal(math.LegacyNewDec(250)) {
		t.Errorf("expected controller to hold 250 shares, got %s", pool.Shares.BalanceOf(testController).String())
	}
	if !totalPulled(bank, testController, "osmo").Equal(baseUnits("1")) {
		t.Errorf("expected 1 osmo pulled from the controller, got %s", totalPulled(bank, testController, "osmo").String())
	}
}

func TestUpdateWeightDecrease(t *testing.T) {
	k, _, ctx, bank := setupTestKeeper(t)
	smartPoolID := createLivePool(t, k, ctx)
	bank.reset()

	// juno 20 -> 10 halves the balance and burns supply*10/40 = 50 shares
	newTotalWeight, newSupply, err := k.UpdateWeight(ctx, testController, smartPoolID, "juno", math.LegacyNewDec(10))
	if err != nil {
		t.Fatalf("update weight: %v", err)
	}
	if !newTotalWeight.Equal(math.LegacyNewDec(30)) {
		t.Errorf("expected total weight 30, got %s", newTotalWeight.String())
	}
	if !newSupply.Equal(math.LegacyNewDec(150)) {
		t.Errorf("expected supply 150, got %s", newSupply.String())
	}

	pool := enginePool(t, k, ctx, smartPoolID)
	junoRec, _ := pool.GetRecord("juno")
	if !junoRec.Balance.Equal(math.LegacyNewDec(2)) {
		t.Errorf("expected juno balance 2, got %s", junoRec.Balance.String())
	}
	if !pool.Shares.BalanceOf(testController).Equal(math.LegacyNewDec(150)) {
		t.Errorf("expected controller to hold 150 shares, got %s", pool.Shares.BalanceOf(testController).String())
	}
	if !totalPushed(bank, testController, "juno").Equal(baseUnits("2")) {
		t.Errorf("expected 2 juno pushed to the controller, got %s", totalPushed(bank, testController, "juno").String())
	}
}

func TestUpdateWeightNoop(t *testing.T) {
	k, _, ctx, bank := setupTestKeeper(t)
	smartPoolID := createLivePool(t, k, ctx)
	bank.reset()

	newTotalWeight, newSupply, err := k.UpdateWeight(ctx, testController, smartPoolID, "atom", math.LegacyNewDec(10))
	if err != nil {
		t.Fatalf("update weight: %v", err)
	}
	if !newTotalWeight.Equal(math.LegacyNewDec(40)) || !newSupply.Equal(math.LegacyNewDec(200)) {
		t.Errorf("expected unchanged totals 40/200, got %s/%s", newTotalWeight.String(), newSupply.String())
	}
	if len(bank.pulls) != 0 || len(bank.pushes) != 0 {
		t.Error("expected no transfers for an unchanged weight")
	}
}

func TestUpdateWeightRejections(t *testing.T) {
	k, _, ctx, _ := setupTestKeeper(t)
	smartPoolID := createLivePool(t, k, ctx)

	_, _, err := k.UpdateWeight(ctx, testUser, smartPoolID, "osmo", math.LegacyNewDec(20))
	if !errors.Is(err, types.ErrNotController) {
		t.Errorf("expected ErrNotController, got %v", err)
	}
	_, _, err = k.UpdateWeight(ctx, testController, smartPoolID, "scrt", math.LegacyNewDec(20))
	if !errors.Is(err, wptypes.ErrTokenNotBound) {
		t.Errorf("expected ErrTokenNotBound, got %v", err)
	}
	_, _, err = k.UpdateWeight(ctx, testController, smartPoolID, "osmo", nilDec)
	if !errors.Is(err, types.ErrInvalidAmount) {
		t.Errorf("expected ErrInvalidAmount, got %v", err)
	}
	_, _, err = k.UpdateWeight(ctx, testController, smartPoolID, "osmo", math.LegacyNewDec(51))
	if !errors.Is(err, wptypes.ErrWeightAboveMax) {
		t.Errorf("expected ErrWeightAboveMax, got %v", err)
	}
	_, _, err = k.UpdateWeight(ctx, testController, smartPoolID, "osmo", math.LegacyMustNewDecFromStr("0.5"))
	if !errors.Is(err, wptypes.ErrWeightBelowMin) {
		t.Errorf("expected ErrWeightBelowMin, got %v", err)
	}

	locked := createLivePoolWithRights(t, k, ctx, types.NoRights())
	_, _, err = k.UpdateWeight(ctx, testController, locked, "osmo", math.LegacyNewDec(20))
	if !errors.Is(err, types.ErrNotConfigurableWeights) {
		t.Errorf("expected ErrNotConfigurableWeights, got %v", err)
	}

	configured := createConfiguredPool(t, k, ctx, standardRights)
	_, _, err = k.UpdateWeight(ctx, testController, configured, "osmo", math.LegacyNewDec(20))
	if !errors.Is(err, types.ErrPoolNotCreated) {
		t.Errorf("expected ErrPoolNotCreated, got %v", err)
	}
}

func TestUpdateWeightBlockedDuringGradual(t *testing.T) {
	k, _, ctx, _ := setupTestKeeper(t)
	smartPoolID := createLivePool(t, k, ctx)

	targets := []math.LegacyDec{math.LegacyNewDec(20), math.LegacyNewDec(10), math.LegacyNewDec(10)}
	if _, _, err := k.UpdateWeightsGradually(ctx, testController, smartPoolID, targets, 10, 20); err != nil {
		t.Fatalf("schedule: %v", err)
	}

	_, _, err := k.UpdateWeight(ctx, testController, smartPoolID, "osmo", math.LegacyNewDec(20))
	if !errors.Is(err, types.ErrUpdateDuringGradual) {
		t.Errorf("expected ErrUpdateDuringGradual, got %v", err)
	}
}

func TestUpdateWeightRespectsCap(t *testing.T) {
	k, _, ctx, _ := setupTestKeeper(t)
	smartPoolID := createLivePoolWithRights(t, k, ctx, types.Rights{
		CanChangeWeights: true,
		CanChangeCap:     true,
	})

	// instantiation pinned the cap to 200; the increase would mint to 250
	_, _, err := k.UpdateWeight(ctx, testController, smartPoolID, "osmo", math.LegacyNewDec(20))
	if !errors.Is(err, types.ErrCapLimitReached) {
		t.Errorf("expected ErrCapLimitReached, got %v", err)
	}

	if err := k.SetCap(ctx, testController, smartPoolID, math.LegacyNewDec(300)); err != nil {
		t.Fatalf("set cap: %v", err)
	}
	if _, _, err := k.UpdateWeight(ctx, testController, smartPoolID, "osmo", math.LegacyNewDec(20)); err != nil {
		t.Errorf("expected increase under the raised cap, got %v", err)
	}

	// decreases burn, the cap never blocks them
	if _, _, err := k.UpdateWeight(ctx, testController, smartPoolID, "juno", math.LegacyNewDec(10)); err != nil {
		t.Errorf("expected decrease to pass, got %v", err)
	}
}

// TestUpdateWeightRollback checks that a failed deposit leaves weights,
// balances and supply untouched.
func TestUpdateWeightRollback(t *testing.T) {
	k, _, ctx, bank := setupTestKeeper(t)
	smartPoolID := createLivePool(t, k, ctx)

	bank.failPull = true
	if _, _, err := k.UpdateWeight(ctx, testController, smartPoolID, "osmo", math.LegacyNewDec(20)); err == nil {
		t.Fatal("expected update to fail when the deposit cannot be pulled")
	}

	pool := enginePool(t, k, ctx, smartPoolID)
	osmoRec, _ := pool.GetRecord("osmo")
	if !osmoRec.Weight.Equal(math.LegacyNewDec(10)) || !osmoRec.Balance.Equal(math.LegacyNewDec(1)) {
		t.Errorf("expected osmo unchanged at 1/10, got %s/%s", osmoRec.Balance.String(), osmoRec.Weight.String())
	}
	if !pool.Shares.TotalSupply.Equal(math.LegacyNewDec(200)) {
		t.Errorf("expected supply unchanged at 200, got %s", pool.Shares.TotalSupply.String())
	}
}

func TestUpdateWeightTotalWeightBound(t *testing.T) {
	k, _, ctx, _ := setupTestKeeper(t)
	smartPoolID := createLivePool(t, k, ctx)

	// osmo to 20 brings the total to the 50 ceiling
	if _, _, err := k.UpdateWeight(ctx, testController, smartPoolID, "osmo", math.LegacyNewDec(20)); err != nil {
		t.Fatalf("update weight: %v", err)
	}
	_, _, err := k.UpdateWeight(ctx, testController, smartPoolID, "atom", math.LegacyNewDec(11))
	if !errors.Is(err, wptypes.ErrTotalWeightTooHigh) {
		t.Errorf("expected ErrTotalWeightTooHigh, got %v", err)
	}
}

func TestUpdateWeightsGradually(t *testing.T) {
	k, _, ctx, _ := setupTestKeeper(t)
	smartPoolID := createLivePool(t, k, ctx)

	targets := []math.LegacyDec{math.LegacyNewDec(20), math.LegacyNewDec(10), math.LegacyNewDec(10)}
	actualStart, endBlock, err := k.UpdateWeightsGradually(ctx, testController, smartPoolID, targets, 10, 20)
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if actualStart != 10 || endBlock != 20 {
		t.Errorf("expected window 10..20, got %d..%d", actualStart, endBlock)
	}

	sp := k.GetSmartPool(ctx, smartPoolID)
	if !sp.HasGradualUpdate() {
		t.Fatal("expected a gradual update recorded")
	}
	gu := sp.GradualUpdate
	if gu.StartBlock != 10 || gu.EndBlock != 20 {
		t.Errorf("expected recorded window 10..20, got %d..%d", gu.StartBlock, gu.EndBlock)
	}
	wantDenoms := []string{"atom", "osmo", "juno"}
	for i, denom := range wantDenoms {
		if gu.Denoms[i] != denom {
			t.Errorf("expected denom %s at %d, got %s", denom, i, gu.Denoms[i])
		}
	}
	wantStart := []int64{10, 10, 20}
	for i, w := range wantStart {
		if !gu.StartWeights[i].Equal(math.LegacyNewDec(w)) {
			t.Errorf("expected start weight %d at %d, got %s", w, i, gu.StartWeights[i].String())
		}
	}
}

func TestUpdateWeightsGraduallyClampsStart(t *testing.T) {
	k, _, ctx, _ := setupTestKeeper(t)
	smartPoolID := createLivePool(t, k, ctx)
	ctx = ctx.WithBlockHeight(5)

	targets := []math.LegacyDec{math.LegacyNewDec(20), math.LegacyNewDec(10), math.LegacyNewDec(10)}
	actualStart, endBlock, err := k.UpdateWeightsGradually(ctx, testController, smartPoolID, targets, 0, 20)
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if actualStart != 5 || endBlock != 20 {
		t.Errorf("expected window clamped to 5..20, got %d..%d", actualStart, endBlock)
	}
}

func TestUpdateWeightsGraduallyRejections(t *testing.T) {
	k, _, ctx, _ := setupTestKeeper(t)
	smartPoolID := createLivePool(t, k, ctx)
	targets := []math.LegacyDec{math.LegacyNewDec(20), math.LegacyNewDec(10), math.LegacyNewDec(10)}

	// the configured minimum span is 10 blocks
	_, _, err := k.UpdateWeightsGradually(ctx, testController, smartPoolID, targets, 10, 15)
	if !errors.Is(err, types.ErrWeightChangeTooShort) {
		t.Errorf("expected ErrWeightChangeTooShort, got %v", err)
	}
	_, _, err = k.UpdateWeightsGradually(ctx, testController, smartPoolID, targets, 10, 10)
	if !errors.Is(err, types.ErrWeightChangeTooShort) {
		t.Errorf("expected ErrWeightChangeTooShort for an empty window, got %v", err)
	}

	_, _, err = k.UpdateWeightsGradually(ctx, testController, smartPoolID, targets[:2], 10, 20)
	if !errors.Is(err, types.ErrWeightsMismatch) {
		t.Errorf("expected ErrWeightsMismatch, got %v", err)
	}

	bad := []math.LegacyDec{math.LegacyNewDec(51), math.LegacyNewDec(10), math.LegacyNewDec(10)}
	_, _, err = k.UpdateWeightsGradually(ctx, testController, smartPoolID, bad, 10, 20)
	if !errors.Is(err, wptypes.ErrWeightAboveMax) {
		t.Errorf("expected ErrWeightAboveMax, got %v", err)
	}

	heavy := []math.LegacyDec{math.LegacyNewDec(20), math.LegacyNewDec(20), math.LegacyNewDec(20)}
	_, _, err = k.UpdateWeightsGradually(ctx, testController, smartPoolID, heavy, 10, 20)
	if !errors.Is(err, wptypes.ErrTotalWeightTooHigh) {
		t.Errorf("expected ErrTotalWeightTooHigh, got %v", err)
	}

	withNil := []math.LegacyDec{math.LegacyNewDec(20), nilDec, math.LegacyNewDec(10)}
	_, _, err = k.UpdateWeightsGradually(ctx, testController, smartPoolID, withNil, 10, 20)
	if !errors.Is(err, types.ErrInvalidAmount) {
		t.Errorf("expected ErrInvalidAmount, got %v", err)
	}

	locked := createLivePoolWithRights(t, k, ctx, types.NoRights())
	_, _, err = k.UpdateWeightsGradually(ctx, testController, locked, targets, 10, 20)
	if !errors.Is(err, types.ErrNotConfigurableWeights) {
		t.Errorf("expected ErrNotConfigurableWeights, got %v", err)
	}

	configured := createConfiguredPool(t, k, ctx, standardRights)
	_, _, err = k.UpdateWeightsGradually(ctx, testController, configured, targets, 10, 20)
	if !errors.Is(err, types.ErrPoolNotCreated) {
		t.Errorf("expected ErrPoolNotCreated, got %v", err)
	}
}

func TestUpdateWeightsGraduallyReplacesRunning(t *testing.T) {
	k, _, ctx, _ := setupTestKeeper(t)
	smartPoolID := createLivePool(t, k, ctx)

	first := []math.LegacyDec{math.LegacyNewDec(20), math.LegacyNewDec(10), math.LegacyNewDec(10)}
	if _, _, err := k.UpdateWeightsGradually(ctx, testController, smartPoolID, first, 10, 30); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	second := []math.LegacyDec{math.LegacyNewDec(15), math.LegacyNewDec(15), math.LegacyNewDec(15)}
	if _, _, err := k.UpdateWeightsGradually(ctx, testController, smartPoolID, second, 12, 25); err != nil {
		t.Fatalf("reschedule: %v", err)
	}

	sp := k.GetSmartPool(ctx, smartPoolID)
	if sp.GradualUpdate.EndBlock != 25 {
		t.Errorf("expected the replacement window to end at 25, got %d", sp.GradualUpdate.EndBlock)
	}
	if !sp.GradualUpdate.TargetWeights[0].Equal(math.LegacyNewDec(15)) {
		t.Errorf("expected replacement target 15, got %s", sp.GradualUpdate.TargetWeights[0].String())
	}

	// only the replacement completes; the old end block is a no-op
	ctx = ctx.WithBlockHeight(25)
	if _, err := k.PokeWeights(ctx, smartPoolID); err != nil {
		t.Fatalf("poke: %v", err)
	}
	pool := enginePool(t, k, ctx, smartPoolID)
	for _, denom := range []string{"atom", "osmo", "juno"} {
		rec, _ := pool.GetRecord(denom)
		if !rec.Weight.Equal(math.LegacyNewDec(15)) {
			t.Errorf("expected %s weight 15, got %s", denom, rec.Weight.String())
		}
	}
}

func TestPokeWeights(t *testing.T) {
	k, _, ctx, bank := setupTestKeeper(t)
	smartPoolID := createLivePool(t, k, ctx)

	targets := []math.LegacyDec{math.LegacyNewDec(20), math.LegacyNewDec(10), math.LegacyNewDec(10)}
	if _, _, err := k.UpdateWeightsGradually(ctx, testController, smartPoolID, targets, 10, 20); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	bank.reset()

	// before the start block nothing moves
	weights, err := k.PokeWeights(ctx.WithBlockHeight(9), smartPoolID)
	if err != nil {
		t.Fatalf("poke: %v", err)
	}
	if !weights["atom"].Equal(math.LegacyNewDec(10)) {
		t.Errorf("expected atom still at 10, got %s", weights["atom"].String())
	}

	// halfway through the window the weights sit halfway to their targets
	weights, err = k.PokeWeights(ctx.WithBlockHeight(15), smartPoolID)
	if err != nil {
		t.Fatalf("poke: %v", err)
	}
	if !weights["atom"].Equal(math.LegacyNewDec(15)) {
		t.Errorf("expected atom at 15, got %s", weights["atom"].String())
	}
	if !weights["juno"].Equal(math.LegacyNewDec(15)) {
		t.Errorf("expected juno at 15, got %s", weights["juno"].String())
	}
	if !weights["osmo"].Equal(math.LegacyNewDec(10)) {
		t.Errorf("expected osmo untouched at 10, got %s", weights["osmo"].String())
	}
	pool := enginePool(t, k, ctx, smartPoolID)
	atomRec, _ := pool.GetRecord("atom")
	if !atomRec.Weight.Equal(math.LegacyNewDec(15)) {
		t.Errorf("expected engine atom weight 15, got %s", atomRec.Weight.String())
	}
	// balances and supply never move during a gradual transition
	if !atomRec.Balance.Equal(math.LegacyNewDec(400)) {
		t.Errorf("expected atom balance unchanged at 400, got %s", atomRec.Balance.String())
	}
	if !pool.Shares.TotalSupply.Equal(math.LegacyNewDec(200)) {
		t.Errorf("expected supply unchanged at 200, got %s", pool.Shares.TotalSupply.String())
	}
	if len(bank.pulls) != 0 || len(bank.pushes) != 0 {
		t.Error("expected no transfers from a poke")
	}

	// poking the same height twice changes nothing
	weights, err = k.PokeWeights(ctx.WithBlockHeight(15), smartPoolID)
	if err != nil {
		t.Fatalf("repeat poke: %v", err)
	}
	if !weights["atom"].Equal(math.LegacyNewDec(15)) {
		t.Errorf("expected atom still at 15, got %s", weights["atom"].String())
	}

	// at the end block the targets land exactly and the update clears
	weights, err = k.PokeWeights(ctx.WithBlockHeight(20), smartPoolID)
	if err != nil {
		t.Fatalf("final poke: %v", err)
	}
	if !weights["atom"].Equal(math.LegacyNewDec(20)) || !weights["juno"].Equal(math.LegacyNewDec(10)) {
		t.Errorf("expected targets 20/10, got %s/%s", weights["atom"].String(), weights["juno"].String())
	}
	sp := k.GetSmartPool(ctx, smartPoolID)
	if sp.HasGradualUpdate() {
		t.Error("expected the gradual update cleared at the end block")
	}

	// later pokes are plain reads
	weights, err = k.PokeWeights(ctx.WithBlockHeight(21), smartPoolID)
	if err != nil {
		t.Fatalf("post poke: %v", err)
	}
	if !weights["atom"].Equal(math.LegacyNewDec(20)) {
		t.Errorf("expected atom to stay at 20, got %s", weights["atom"].String())
	}
}

func TestPokeWeightsWithoutUpdate(t *testing.T) {
	k, _, ctx, _ := setupTestKeeper(t)
	smartPoolID := createLivePool(t, k, ctx)

	weights, err := k.PokeWeights(ctx, smartPoolID)
	if err != nil {
		t.Fatalf("poke: %v", err)
	}
	if !weights["juno"].Equal(math.LegacyNewDec(20)) {
		t.Errorf("expected juno at 20, got %s", weights["juno"].String())
	}
}

// TestPokeWeightsDecreasesFirst drives a transition whose increases alone
// would overflow the total weight ceiling if they were applied before the
// decreases: atom 10 -> 25 against juno 20 -> 5 on a total of 40.
func TestPokeWeightsDecreasesFirst(t *testing.T) {
	k, _, ctx, _ := setupTestKeeper(t)
	smartPoolID := createLivePool(t, k, ctx)

	targets := []math.LegacyDec{math.LegacyNewDec(25), math.LegacyNewDec(10), math.LegacyNewDec(5)}
	if _, _, err := k.UpdateWeightsGradually(ctx, testController, smartPoolID, targets, 10, 20); err != nil {
		t.Fatalf("schedule: %v", err)
	}

	weights, err := k.PokeWeights(ctx.WithBlockHeight(20), smartPoolID)
	if err != nil {
		t.Fatalf("poke: %v", err)
	}
	if !weights["atom"].Equal(math.LegacyNewDec(25)) {
		t.Errorf("expected atom at 25, got %s", weights["atom"].String())
	}
	if !weights["juno"].Equal(math.LegacyNewDec(5)) {
		t.Errorf("expected juno at 5, got %s", weights["juno"].String())
	}
}

func TestPokeWeightsNotCreated(t *testing.T) {
	k, _, ctx, _ := setupTestKeeper(t)
	smartPoolID := createConfiguredPool(t, k, ctx, standardRights)

	_, err := k.PokeWeights(ctx, smartPoolID)
	if !errors.Is(err, types.ErrPoolNotCreated) {
		t.Errorf("expected ErrPoolNotCreated, got %v", err)
	}
}
