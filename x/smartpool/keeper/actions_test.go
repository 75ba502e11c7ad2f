package keeper

import (
	"errors"
	"strings"
	"testing"

	"cosmossdk.io/math"
	"github.com/openalpha/amm-dex/x/smartpool/types"
)

func TestRunActionBatch(t *testing.T) {
	k, _, ctx, _ := setupTestKeeper(t)
	smartPoolID := createConfiguredPool(t, k, ctx, standardRights)

	steps := []types.ActionStep{
		{Action: types.ActionCreate, InitialSupply: "200"},
		{Action: types.ActionJoin, PoolAmountOut: "40"},
		{Action: types.ActionPoke},
	}
	batchID, ran, err := k.RunActionBatch(ctx, testController, smartPoolID, steps)
	if err != nil {
		t.Fatalf("batch: %v", err)
	}
	if batchID != "batch-1" {
		t.Errorf("expected batch-1, got %s", batchID)
	}
	if ran != 3 {
		t.Errorf("expected 3 steps run, got %d", ran)
	}

	// the join saw the pool the create step instantiated
	pool := enginePool(t, k, ctx, smartPoolID)
	if !pool.Shares.TotalSupply.Equal(math.LegacyNewDec(240)) {
		t.Errorf("expected supply 240, got %s", pool.Shares.TotalSupply.String())
	}
	if !pool.Shares.BalanceOf(testController).Equal(math.LegacyNewDec(240)) {
		t.Errorf("expected the controller to hold 240 shares, got %s", pool.Shares.BalanceOf(testController).String())
	}
}

// TestRunActionBatchAtomic fails the second step and checks the first step's
// effects are discarded with it.
func TestRunActionBatchAtomic(t *testing.T) {
	k, _, ctx, _ := setupTestKeeper(t)
	smartPoolID := createLivePool(t, k, ctx)

	steps := []types.ActionStep{
		{Action: types.ActionUpdateWeightsGradually, NewWeights: []string{"20", "10", "10"}, StartBlock: 10, EndBlock: 20},
		{Action: types.ActionRemoveToken, Denom: "juno"},
	}
	_, _, err := k.RunActionBatch(ctx, testController, smartPoolID, steps)
	if !errors.Is(err, types.ErrBatchStepFailed) {
		t.Fatalf("expected ErrBatchStepFailed, got %v", err)
	}
	if !strings.Contains(err.Error(), "step 1") {
		t.Errorf("expected the failing step named, got %q", err.Error())
	}

	sp := k.GetSmartPool(ctx, smartPoolID)
	if sp.HasGradualUpdate() {
		t.Error("expected the discarded batch to leave no gradual update")
	}
	if entries := k.activeUpdates(ctx); len(entries) != 0 {
		t.Errorf("expected an empty schedule after the rollback, got %d entries", len(entries))
	}
	if err := k.EndBlocker(ctx.WithBlockHeight(15)); err != nil {
		t.Fatalf("end blocker: %v", err)
	}
	sp = k.GetSmartPool(ctx, smartPoolID)
	if !sp.Weights[0].Equal(math.LegacyNewDec(10)) {
		t.Errorf("expected atom weight untouched at 10, got %s", sp.Weights[0].String())
	}
}

func TestRunActionBatchUnknownAction(t *testing.T) {
	k, _, ctx, _ := setupTestKeeper(t)
	smartPoolID := createLivePool(t, k, ctx)

	_, _, err := k.RunActionBatch(ctx, testController, smartPoolID, []types.ActionStep{{Action: "drain"}})
	if !errors.Is(err, types.ErrBatchStepFailed) {
		t.Fatalf("expected ErrBatchStepFailed, got %v", err)
	}
	if !strings.Contains(err.Error(), "unknown batch action") {
		t.Errorf("expected the unknown action reported, got %q", err.Error())
	}
}

func TestRunActionBatchValidation(t *testing.T) {
	k, _, ctx, _ := setupTestKeeper(t)
	smartPoolID := createLivePool(t, k, ctx)

	_, _, err := k.RunActionBatch(ctx, testController, smartPoolID, nil)
	if !errors.Is(err, types.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig for an empty batch, got %v", err)
	}

	steps := []types.ActionStep{{Action: types.ActionPoke}}
	_, _, err = k.RunActionBatch(ctx, testUser, smartPoolID, steps)
	if !errors.Is(err, types.ErrNotController) {
		t.Errorf("expected ErrNotController, got %v", err)
	}
	_, _, err = k.RunActionBatch(ctx, testController, "spool-404", steps)
	if !errors.Is(err, types.ErrSmartPoolNotFound) {
		t.Errorf("expected ErrSmartPoolNotFound, got %v", err)
	}
}

func TestBatchIDSequence(t *testing.T) {
	k, _, ctx, _ := setupTestKeeper(t)
	smartPoolID := createLivePool(t, k, ctx)

	steps := []types.ActionStep{{Action: types.ActionPoke}}
	first, _, err := k.RunActionBatch(ctx, testController, smartPoolID, steps)
	if err != nil {
		t.Fatalf("first batch: %v", err)
	}
	second, _, err := k.RunActionBatch(ctx, testController, smartPoolID, steps)
	if err != nil {
		t.Fatalf("second batch: %v", err)
	}
	if first != "batch-1" || second != "batch-2" {
		t.Errorf("expected batch-1 and batch-2, got %s and %s", first, second)
	}

	// a failed batch reserves nothing
	_, _, err = k.RunActionBatch(ctx, testController, smartPoolID, []types.ActionStep{{Action: "drain"}})
	if err == nil {
		t.Fatal("expected the bad batch to fail")
	}
	third, _, err := k.RunActionBatch(ctx, testController, smartPoolID, steps)
	if err != nil {
		t.Fatalf("third batch: %v", err)
	}
	if third != "batch-3" {
		t.Errorf("expected batch-3, got %s", third)
	}
}

// TestRunActionBatchTokenLifecycle splits a token addition across two batches
// with the timelock elapsing between them.
func TestRunActionBatchTokenLifecycle(t *testing.T) {
	k, _, ctx, _ := setupTestKeeper(t)
	smartPoolID := createLivePool(t, k, ctx)

	commit := []types.ActionStep{
		{Action: types.ActionCommitAddToken, Denom: "scrt", Balance: "100", Weight: "5"},
	}
	if _, _, err := k.RunActionBatch(ctx, testController, smartPoolID, commit); err != nil {
		t.Fatalf("commit batch: %v", err)
	}

	apply := []types.ActionStep{{Action: types.ActionApplyAddToken}}
	_, _, err := k.RunActionBatch(ctx, testController, smartPoolID, apply)
	if !errors.Is(err, types.ErrBatchStepFailed) {
		t.Fatalf("expected the early apply to fail, got %v", err)
	}

	if _, _, err := k.RunActionBatch(ctx.WithBlockHeight(6), testController, smartPoolID, apply); err != nil {
		t.Fatalf("apply batch: %v", err)
	}
	pool := enginePool(t, k, ctx, smartPoolID)
	if !pool.IsBound("scrt") {
		t.Error("expected scrt bound after the second batch")
	}
	if !pool.Shares.TotalSupply.Equal(math.LegacyNewDec(225)) {
		t.Errorf("expected supply 225, got %s", pool.Shares.TotalSupply.String())
	}
}

// TestRunActionBatchGatedLaunch assembles the whitelist and instantiates the
// pool in one batch, so the gate is never open ungated.
func TestRunActionBatchGatedLaunch(t *testing.T) {
	k, _, ctx, _ := setupTestKeeper(t)
	smartPoolID := createConfiguredPool(t, k, ctx, types.Rights{CanWhitelistLPs: true})

	steps := []types.ActionStep{
		{Action: types.ActionWhitelist, Provider: testUser},
		{Action: types.ActionCreate, InitialSupply: "200"},
	}
	if _, _, err := k.RunActionBatch(ctx, testController, smartPoolID, steps); err != nil {
		t.Fatalf("batch: %v", err)
	}

	if _, err := k.JoinPool(ctx, testUser, smartPoolID, math.LegacyNewDec(10), nil); err != nil {
		t.Errorf("expected the pre-listed user to join, got %v", err)
	}
	_, err := k.JoinPool(ctx, testUser2, smartPoolID, math.LegacyNewDec(10), nil)
	if !errors.Is(err, types.ErrNotOnWhitelist) {
		t.Errorf("expected ErrNotOnWhitelist for a stranger, got %v", err)
	}
}
