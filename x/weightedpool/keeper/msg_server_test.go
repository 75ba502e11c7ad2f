package keeper

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/openalpha/amm-dex/x/weightedpool/types"
)

// TestMsgServerPoolLifecycle drives a pool from creation to its first swap
// through the message layer, where every amount arrives as a string.
func TestMsgServerPoolLifecycle(t *testing.T) {
	k, ctx, _ := setupTestKeeper(t)
	srv := NewMsgServerImpl(k)

	created, err := srv.CreatePool(ctx, &types.MsgCreatePool{Creator: testController})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	poolID := created.PoolID

	binds := []types.MsgBind{
		{Controller: testController, PoolID: poolID, Denom: "atom", Balance: "400", Weight: "10"},
		{Controller: testController, PoolID: poolID, Denom: "osmo", Balance: "100", Weight: "10"},
	}
	for i := range binds {
		if _, err := srv.Bind(ctx, &binds[i]); err != nil {
			t.Fatalf("bind %s: %v", binds[i].Denom, err)
		}
	}

	finalized, err := srv.FinalizePool(ctx, &types.MsgFinalizePool{Controller: testController, PoolID: poolID})
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if finalized.SharesMinted != types.InitPoolSupply.String() {
		t.Errorf("expected %s shares minted, got %s", types.InitPoolSupply.String(), finalized.SharesMinted)
	}

	// empty bound strings mean unbounded
	swapped, err := srv.SwapExactAmountIn(ctx, &types.MsgSwapExactAmountIn{
		Sender:   testUser,
		PoolID:   poolID,
		DenomIn:  "atom",
		AmountIn: "100",
		DenomOut: "osmo",
	})
	if err != nil {
		t.Fatalf("swap: %v", err)
	}
	out, err := math.LegacyNewDecFromStr(swapped.AmountOut)
	if err != nil {
		t.Fatalf("parse amount out: %v", err)
	}
	if !out.IsPositive() {
		t.Errorf("expected positive output, got %s", swapped.AmountOut)
	}

	joined, err := srv.JoinPool(ctx, &types.MsgJoinPool{
		Sender:        testUser,
		PoolID:        poolID,
		PoolAmountOut: "10",
		MaxAmountsIn:  map[string]string{"atom": "100", "osmo": "100"},
	})
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	if len(joined.AmountsIn) != 2 {
		t.Errorf("expected 2 deposit legs, got %d", len(joined.AmountsIn))
	}
}

func TestMsgServerBadAmount(t *testing.T) {
	k, ctx, _ := setupTestKeeper(t)
	srv := NewMsgServerImpl(k)

	created, err := srv.CreatePool(ctx, &types.MsgCreatePool{Creator: testController})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = srv.Bind(ctx, &types.MsgBind{
		Controller: testController,
		PoolID:     created.PoolID,
		Denom:      "atom",
		Balance:    "four hundred",
		Weight:     "10",
	})
	if err == nil {
		t.Fatal("expected a parse error for a malformed balance")
	}
}
