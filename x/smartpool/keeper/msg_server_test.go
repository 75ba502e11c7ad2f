package keeper

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/openalpha/amm-dex/x/smartpool/types"
)

// TestMsgServerSmartPoolLifecycle drives a smart pool from configuration to a
// user exit through the message layer, where every amount arrives as a string.
func TestMsgServerSmartPoolLifecycle(t *testing.T) {
	k, _, ctx, _ := setupTestKeeper(t)
	srv := NewMsgServerImpl(k)

	configured, err := srv.CreateSmartPool(ctx, &types.MsgCreateSmartPool{
		Creator:                        testController,
		Denoms:                         []string{"atom", "osmo"},
		Balances:                       []string{"400", "100"},
		Weights:                        []string{"10", "10"},
		SwapFee:                        "0.003",
		Rights:                         types.AllRights(),
		MinimumWeightChangeBlockPeriod: 10,
		AddTokenTimeLockInBlocks:       5,
	})
	if err != nil {
		t.Fatalf("create smart pool: %v", err)
	}
	smartPoolID := configured.SmartPoolID

	// the whitelist can be assembled before the pool is instantiated
	listed, err := srv.WhitelistLP(ctx, &types.MsgWhitelistLP{
		Controller:  testController,
		SmartPoolID: smartPoolID,
		Provider:    testUser,
	})
	if err != nil {
		t.Fatalf("whitelist: %v", err)
	}
	if listed.NumWhitelisted != 1 {
		t.Errorf("expected 1 whitelisted provider, got %d", listed.NumWhitelisted)
	}

	created, err := srv.CreatePool(ctx, &types.MsgCreatePool{
		Controller:    testController,
		SmartPoolID:   smartPoolID,
		InitialSupply: "200",
	})
	if err != nil {
		t.Fatalf("create pool: %v", err)
	}
	if created.SharesMinted != "200.000000000000000000" {
		t.Errorf("expected 200 shares minted, got %s", created.SharesMinted)
	}

	// the cap right pinned the supply at instantiation; raise it first
	if _, err := srv.SetCap(ctx, &types.MsgSetCap{
		Controller:  testController,
		SmartPoolID: smartPoolID,
		Cap:         "400",
	}); err != nil {
		t.Fatalf("set cap: %v", err)
	}

	joined, err := srv.JoinPool(ctx, &types.MsgJoinPool{
		Sender:        testUser,
		SmartPoolID:   smartPoolID,
		PoolAmountOut: "40",
		MaxAmountsIn:  map[string]string{"atom": "80", "osmo": "20"},
	})
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	if len(joined.AmountsIn) != 2 {
		t.Errorf("expected 2 deposit legs, got %d", len(joined.AmountsIn))
	}

	exited, err := srv.ExitPool(ctx, &types.MsgExitPool{
		Sender:       testUser,
		SmartPoolID:  smartPoolID,
		PoolAmountIn: "40",
	})
	if err != nil {
		t.Fatalf("exit: %v", err)
	}
	out, err := math.LegacyNewDecFromStr(exited.AmountsOut["atom"])
	if err != nil {
		t.Fatalf("parse amount out: %v", err)
	}
	if !out.IsPositive() {
		t.Errorf("expected a positive atom payout, got %s", exited.AmountsOut["atom"])
	}
}

// TestMsgServerGradualUpdateFlow schedules through the message layer and
// checks the response reports the clamped window.
func TestMsgServerGradualUpdateFlow(t *testing.T) {
	k, _, ctx, _ := setupTestKeeper(t)
	srv := NewMsgServerImpl(k)
	smartPoolID := createLivePool(t, k, ctx)

	scheduled, err := srv.UpdateWeightsGradually(ctx, &types.MsgUpdateWeightsGradually{
		Controller:  testController,
		SmartPoolID: smartPoolID,
		NewWeights:  []string{"20", "10", "10"},
		StartBlock:  0,
		EndBlock:    30,
	})
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if scheduled.StartBlock != 1 {
		t.Errorf("expected the start clamped to 1, got %d", scheduled.StartBlock)
	}
	if scheduled.EndBlock != 30 {
		t.Errorf("expected end block 30, got %d", scheduled.EndBlock)
	}

	poked, err := srv.PokeWeights(ctx.WithBlockHeight(30), &types.MsgPokeWeights{
		Sender:      testUser,
		SmartPoolID: smartPoolID,
	})
	if err != nil {
		t.Fatalf("poke: %v", err)
	}
	if poked.Weights["atom"] != "20.000000000000000000" {
		t.Errorf("expected atom weight 20 after the window, got %s", poked.Weights["atom"])
	}
}

func TestMsgServerBadDecimal(t *testing.T) {
	k, _, ctx, _ := setupTestKeeper(t)
	srv := NewMsgServerImpl(k)
	smartPoolID := createLivePool(t, k, ctx)

	_, err := srv.JoinPool(ctx, &types.MsgJoinPool{
		Sender:        testUser,
		SmartPoolID:   smartPoolID,
		PoolAmountOut: "forty",
	})
	if err == nil {
		t.Fatal("expected a parse error for a malformed amount")
	}

	// an empty optional bound is unbounded, not malformed
	if _, err := srv.JoinswapExternAmountIn(ctx, &types.MsgJoinswapExternAmountIn{
		Sender:      testUser,
		SmartPoolID: smartPoolID,
		DenomIn:     "atom",
		AmountIn:    "10",
	}); err != nil {
		t.Errorf("expected an empty bound accepted, got %v", err)
	}
}
