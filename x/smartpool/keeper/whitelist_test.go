package keeper

import (
	"errors"
	"testing"

	"cosmossdk.io/math"
	"github.com/openalpha/amm-dex/x/smartpool/types"
)

// gatedRights is the capability set of a pool whose joins are whitelisted.
var gatedRights = types.Rights{CanWhitelistLPs: true}

func TestWhitelistLiquidityProvider(t *testing.T) {
	k, _, ctx, _ := setupTestKeeper(t)
	smartPoolID := createLivePoolWithRights(t, k, ctx, gatedRights)

	count, err := k.WhitelistLiquidityProvider(ctx, testController, smartPoolID, testUser)
	if err != nil {
		t.Fatalf("whitelist: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 whitelisted provider, got %d", count)
	}
	if !k.GetSmartPool(ctx, smartPoolID).IsWhitelisted(testUser) {
		t.Error("expected the provider whitelisted")
	}

	// whitelisting twice is idempotent
	count, err = k.WhitelistLiquidityProvider(ctx, testController, smartPoolID, testUser)
	if err != nil {
		t.Fatalf("whitelist again: %v", err)
	}
	if count != 1 {
		t.Errorf("expected the count to stay at 1, got %d", count)
	}

	count, err = k.WhitelistLiquidityProvider(ctx, testController, smartPoolID, testUser2)
	if err != nil {
		t.Fatalf("whitelist second: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 whitelisted providers, got %d", count)
	}
}

func TestRemoveWhitelistedLiquidityProvider(t *testing.T) {
	k, _, ctx, _ := setupTestKeeper(t)
	smartPoolID := createLivePoolWithRights(t, k, ctx, gatedRights)

	if _, err := k.WhitelistLiquidityProvider(ctx, testController, smartPoolID, testUser); err != nil {
		t.Fatalf("whitelist: %v", err)
	}
	count, err := k.RemoveWhitelistedLiquidityProvider(ctx, testController, smartPoolID, testUser)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 whitelisted providers, got %d", count)
	}
	if k.GetSmartPool(ctx, smartPoolID).IsWhitelisted(testUser) {
		t.Error("expected the provider removed")
	}

	_, err = k.RemoveWhitelistedLiquidityProvider(ctx, testController, smartPoolID, testUser)
	if !errors.Is(err, types.ErrNotOnWhitelist) {
		t.Errorf("expected ErrNotOnWhitelist, got %v", err)
	}
}

func TestWhitelistRequiresRight(t *testing.T) {
	k, _, ctx, _ := setupTestKeeper(t)
	smartPoolID := createLivePool(t, k, ctx)

	_, err := k.WhitelistLiquidityProvider(ctx, testController, smartPoolID, testUser)
	if !errors.Is(err, types.ErrNotWhitelistConfigurable) {
		t.Errorf("expected ErrNotWhitelistConfigurable, got %v", err)
	}
	_, err = k.RemoveWhitelistedLiquidityProvider(ctx, testController, smartPoolID, testUser)
	if !errors.Is(err, types.ErrNotWhitelistConfigurable) {
		t.Errorf("expected ErrNotWhitelistConfigurable, got %v", err)
	}
}

func TestWhitelistValidation(t *testing.T) {
	k, _, ctx, _ := setupTestKeeper(t)
	smartPoolID := createLivePoolWithRights(t, k, ctx, gatedRights)

	_, err := k.WhitelistLiquidityProvider(ctx, testController, smartPoolID, "not-an-address")
	if !errors.Is(err, types.ErrInvalidAddress) {
		t.Errorf("expected ErrInvalidAddress, got %v", err)
	}
	_, err = k.WhitelistLiquidityProvider(ctx, testUser, smartPoolID, testUser)
	if !errors.Is(err, types.ErrNotController) {
		t.Errorf("expected ErrNotController, got %v", err)
	}
}

// TestWhitelistBeforeInstantiation checks that the list can be assembled
// before the engine pool exists, so launch and gate go live together.
func TestWhitelistBeforeInstantiation(t *testing.T) {
	k, _, ctx, _ := setupTestKeeper(t)
	smartPoolID := createConfiguredPool(t, k, ctx, gatedRights)

	count, err := k.WhitelistLiquidityProvider(ctx, testController, smartPoolID, testUser)
	if err != nil {
		t.Fatalf("whitelist: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 whitelisted provider, got %d", count)
	}

	if _, err := k.CreatePool(ctx, testController, smartPoolID, math.LegacyNewDec(200), 0, 0); err != nil {
		t.Fatalf("create pool: %v", err)
	}
	if _, err := k.JoinPool(ctx, testUser, smartPoolID, math.LegacyNewDec(10), nil); err != nil {
		t.Errorf("expected the pre-listed provider to join, got %v", err)
	}
}

func TestWhitelistGatesJoins(t *testing.T) {
	k, _, ctx, _ := setupTestKeeper(t)
	smartPoolID := createLivePoolWithRights(t, k, ctx, gatedRights)

	_, err := k.JoinPool(ctx, testUser, smartPoolID, math.LegacyNewDec(10), nil)
	if !errors.Is(err, types.ErrNotOnWhitelist) {
		t.Errorf("expected ErrNotOnWhitelist, got %v", err)
	}
	_, err = k.JoinswapExternAmountIn(ctx, testUser, smartPoolID, "atom", math.LegacyNewDec(10), nilDec)
	if !errors.Is(err, types.ErrNotOnWhitelist) {
		t.Errorf("expected ErrNotOnWhitelist on joinswap, got %v", err)
	}
	_, err = k.JoinswapPoolAmountOut(ctx, testUser, smartPoolID, "atom", math.LegacyNewDec(1), nilDec)
	if !errors.Is(err, types.ErrNotOnWhitelist) {
		t.Errorf("expected ErrNotOnWhitelist on joinswap, got %v", err)
	}

	if _, err := k.WhitelistLiquidityProvider(ctx, testController, smartPoolID, testUser); err != nil {
		t.Fatalf("whitelist: %v", err)
	}
	if _, err := k.JoinPool(ctx, testUser, smartPoolID, math.LegacyNewDec(10), nil); err != nil {
		t.Errorf("expected the whitelisted provider to join, got %v", err)
	}
}

// TestWhitelistNeverGatesExits checks that a provider removed from the list
// can still withdraw what they put in.
func TestWhitelistNeverGatesExits(t *testing.T) {
	k, _, ctx, _ := setupTestKeeper(t)
	smartPoolID := createLivePoolWithRights(t, k, ctx, gatedRights)

	if _, err := k.WhitelistLiquidityProvider(ctx, testController, smartPoolID, testUser); err != nil {
		t.Fatalf("whitelist: %v", err)
	}
	if _, err := k.JoinPool(ctx, testUser, smartPoolID, math.LegacyNewDec(40), nil); err != nil {
		t.Fatalf("join: %v", err)
	}
	if _, err := k.RemoveWhitelistedLiquidityProvider(ctx, testController, smartPoolID, testUser); err != nil {
		t.Fatalf("remove: %v", err)
	}

	if _, err := k.ExitPool(ctx, testUser, smartPoolID, math.LegacyNewDec(20), nil); err != nil {
		t.Errorf("expected the removed provider to exit, got %v", err)
	}
	if _, err := k.ExitswapPoolAmountIn(ctx, testUser, smartPoolID, "atom", math.LegacyNewDec(5), nilDec); err != nil {
		t.Errorf("expected the removed provider to exitswap, got %v", err)
	}
}
