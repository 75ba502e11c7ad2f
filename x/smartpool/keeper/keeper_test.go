package keeper

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	"github.com/cosmos/cosmos-sdk/codec"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/openalpha/amm-dex/x/smartpool/types"
	wpkeeper "github.com/openalpha/amm-dex/x/weightedpool/keeper"
	wptypes "github.com/openalpha/amm-dex/x/weightedpool/types"

	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
)

var (
	testAuthority  = sdk.AccAddress([]byte("authority___________")).String()
	testController = sdk.AccAddress([]byte("controller__________")).String()
	testUser       = sdk.AccAddress([]byte("user________________")).String()
	testUser2      = sdk.AccAddress([]byte("user2_______________")).String()
)

// standardRights grants the governance rights most tests exercise while
// leaving joins open and the supply uncapped. Cap and whitelist tests create
// their own pools with those rights switched on.
var standardRights = types.Rights{
	CanPauseSwapping:   true,
	CanChangeSwapFee:   true,
	CanChangeWeights:   true,
	CanAddRemoveTokens: true,
}

// bankTransfer records one coin movement through the mock bank.
type bankTransfer struct {
	account string
	coins   sdk.Coins
}

// mockBankKeeper records pulls and pushes instead of moving real coins.
// failPull makes every account-to-module transfer fail, which is how the
// tests exercise the rollback path.
type mockBankKeeper struct {
	pulls    []bankTransfer
	pushes   []bankTransfer
	failPull bool
}

func (m *mockBankKeeper) SendCoinsFromAccountToModule(ctx context.Context, senderAddr sdk.AccAddress, recipientModule string, amt sdk.Coins) error {
	if m.failPull {
		return fmt.Errorf("insufficient funds")
	}
	m.pulls = append(m.pulls, bankTransfer{account: senderAddr.String(), coins: amt})
	return nil
}

func (m *mockBankKeeper) SendCoinsFromModuleToAccount(ctx context.Context, senderModule string, recipientAddr sdk.AccAddress, amt sdk.Coins) error {
	m.pushes = append(m.pushes, bankTransfer{account: recipientAddr.String(), coins: amt})
	return nil
}

func (m *mockBankKeeper) reset() {
	m.pulls = nil
	m.pushes = nil
	m.failPull = false
}

// setupTestKeeper creates a smart pool keeper wired to a real engine keeper,
// both backed by one in-memory multistore, plus a recording bank mock shared
// by the two modules.
func setupTestKeeper(tb testing.TB) (*Keeper, *wpkeeper.Keeper, sdk.Context, *mockBankKeeper) {
	tb.Helper()

	spKey := storetypes.NewKVStoreKey(types.StoreKey)
	wpKey := storetypes.NewKVStoreKey(wptypes.StoreKey)
	db := dbm.NewMemDB()
	stateStore := store.NewCommitMultiStore(db, log.NewNopLogger(), metrics.NewNoOpMetrics())
	stateStore.MountStoreWithDB(spKey, storetypes.StoreTypeIAVL, db)
	stateStore.MountStoreWithDB(wpKey, storetypes.StoreTypeIAVL, db)
	if err := stateStore.LoadLatestVersion(); err != nil {
		tb.Fatalf("failed to load store: %v", err)
	}

	// start block zero marks an absent gradual update, so tests run from 1
	ctx := sdk.NewContext(stateStore, cmtproto.Header{}, false, log.NewNopLogger()).WithBlockHeight(1)

	interfaceRegistry := codectypes.NewInterfaceRegistry()
	cdc := codec.NewProtoCodec(interfaceRegistry)

	bank := &mockBankKeeper{}
	engine := wpkeeper.NewKeeper(cdc, wpKey, bank, testAuthority, log.NewNopLogger())
	keeper := NewKeeper(cdc, spKey, engine, bank, testAuthority, log.NewNopLogger())

	return keeper, engine, ctx, bank
}

// createConfiguredPool registers the standard three-asset smart pool without
// instantiating it: 400 atom at weight 10, 1 osmo at weight 10, 4 juno at
// weight 20, swap fee 0.15%, minimum weight change period 10 blocks, token
// add timelock 5 blocks.
func createConfiguredPool(tb testing.TB, k *Keeper, ctx sdk.Context, rights types.Rights) string {
	tb.Helper()

	sp, err := k.CreateSmartPool(ctx, testController,
		[]string{"atom", "osmo", "juno"},
		[]math.LegacyDec{math.LegacyNewDec(400), math.LegacyNewDec(1), math.LegacyNewDec(4)},
		[]math.LegacyDec{math.LegacyNewDec(10), math.LegacyNewDec(10), math.LegacyNewDec(20)},
		math.LegacyMustNewDecFromStr("0.0015"),
		rights, 10, 5,
	)
	if err != nil {
		tb.Fatalf("create smart pool: %v", err)
	}
	return sp.SmartPoolID
}

// createLivePoolWithRights is createConfiguredPool plus instantiation, which
// binds the configured assets and mints the initial 200 shares to the
// controller.
func createLivePoolWithRights(tb testing.TB, k *Keeper, ctx sdk.Context, rights types.Rights) string {
	tb.Helper()

	smartPoolID := createConfiguredPool(tb, k, ctx, rights)
	if _, err := k.CreatePool(ctx, testController, smartPoolID, math.LegacyNewDec(200), 0, 0); err != nil {
		tb.Fatalf("create pool: %v", err)
	}
	return smartPoolID
}

// createLivePool is the instantiated standard pool with the standard rights.
func createLivePool(tb testing.TB, k *Keeper, ctx sdk.Context) string {
	return createLivePoolWithRights(tb, k, ctx, standardRights)
}

// enginePool fetches the engine pool wrapped by a smart pool.
func enginePool(tb testing.TB, k *Keeper, ctx sdk.Context, smartPoolID string) *wptypes.Pool {
	tb.Helper()

	sp := k.GetSmartPool(ctx, smartPoolID)
	if sp == nil || !sp.PoolCreated() {
		tb.Fatalf("smart pool %s has no engine pool", smartPoolID)
	}
	pool := k.engine.GetPool(ctx, sp.PoolID)
	if pool == nil {
		tb.Fatalf("engine pool %s missing", sp.PoolID)
	}
	return pool
}

// totalPulled sums the base units of denom the bank pulled from account.
func totalPulled(bank *mockBankKeeper, account, denom string) math.Int {
	total := math.ZeroInt()
	for _, tr := range bank.pulls {
		if tr.account == account {
			total = total.Add(tr.coins.AmountOf(denom))
		}
	}
	return total
}

// totalPushed sums the base units of denom the bank pushed to account.
func totalPushed(bank *mockBankKeeper, account, denom string) math.Int {
	total := math.ZeroInt()
	for _, tr := range bank.pushes {
		if tr.account == account {
			total = total.Add(tr.coins.AmountOf(denom))
		}
	}
	return total
}

// baseUnits converts a pool-unit amount into the bank's integer base units.
func baseUnits(amount string) math.Int {
	return math.NewIntFromBigInt(math.LegacyMustNewDecFromStr(amount).BigInt())
}

// within absorbs the power-series truncation of the swap math.
func within(got, want math.LegacyDec) bool {
	return got.Sub(want).Abs().LTE(math.LegacyNewDecWithPrec(1, 8))
}

// nilDec is the unset optional bound.
var nilDec = math.LegacyDec{}

func TestSetGetSmartPool(t *testing.T) {
	k, _, ctx, _ := setupTestKeeper(t)

	sp := types.NewSmartPool("spool-1", testController, types.AllRights(),
		[]string{"atom", "osmo"},
		[]math.LegacyDec{math.LegacyNewDec(400), math.LegacyNewDec(100)},
		[]math.LegacyDec{math.LegacyNewDec(10), math.LegacyNewDec(10)},
		math.LegacyMustNewDecFromStr("0.003"), 10, 5, 1700000000)
	k.SetSmartPool(ctx, sp)

	got := k.GetSmartPool(ctx, "spool-1")
	if got == nil {
		t.Fatal("expected smart pool to round-trip through the store")
	}
	if got.Controller != testController {
		t.Errorf("expected controller %s, got %s", testController, got.Controller)
	}
	if !got.Rights.CanChangeWeights {
		t.Error("expected rights to survive the round trip")
	}
	if !got.Cap.Equal(types.UnlimitedCap) {
		t.Errorf("expected unlimited cap, got %s", got.Cap.String())
	}
	if got.PoolCreated() {
		t.Error("expected no engine pool before instantiation")
	}

	if k.GetSmartPool(ctx, "spool-404") != nil {
		t.Error("expected nil for unknown smart pool")
	}
}

func TestGetAllSmartPools(t *testing.T) {
	k, _, ctx, _ := setupTestKeeper(t)

	for i := 0; i < 3; i++ {
		createConfiguredPool(t, k, ctx, standardRights)
	}

	pools := k.GetAllSmartPools(ctx)
	if len(pools) != 3 {
		t.Errorf("expected 3 smart pools, got %d", len(pools))
	}
}

func TestSmartPoolIDSequence(t *testing.T) {
	k, _, ctx, _ := setupTestKeeper(t)

	first := createConfiguredPool(t, k, ctx, standardRights)
	second := createConfiguredPool(t, k, ctx, standardRights)

	if first != "spool-1" {
		t.Errorf("expected spool-1, got %s", first)
	}
	if second != "spool-2" {
		t.Errorf("expected spool-2, got %s", second)
	}
}

func TestReentrancyGuard(t *testing.T) {
	k, _, ctx, _ := setupTestKeeper(t)
	smartPoolID := createLivePool(t, k, ctx)

	if err := k.acquireSmartPool(smartPoolID); err != nil {
		t.Fatalf("acquire: %v", err)
	}
	_, err := k.JoinPool(ctx, testUser, smartPoolID, math.LegacyNewDec(10), nil)
	if !errors.Is(err, types.ErrReentrancy) {
		t.Errorf("expected ErrReentrancy, got %v", err)
	}
	k.releaseSmartPool(smartPoolID)

	// released pools accept operations again
	if _, err := k.JoinPool(ctx, testUser, smartPoolID, math.LegacyNewDec(10), nil); err != nil {
		t.Errorf("expected join to succeed after release, got %v", err)
	}
}

func TestJoinSettlesThroughModuleAccount(t *testing.T) {
	k, _, ctx, bank := setupTestKeeper(t)
	smartPoolID := createLivePool(t, k, ctx)
	bank.reset()

	if _, err := k.JoinPool(ctx, testUser, smartPoolID, math.LegacyNewDec(40), nil); err != nil {
		t.Fatalf("join: %v", err)
	}

	// the deposit moves user -> module account -> engine, one pull per hop
	if !totalPulled(bank, testUser, "atom").Equal(baseUnits("80")) {
		t.Errorf("expected 80 atom pulled from the user, got %s", totalPulled(bank, testUser, "atom").String())
	}
	if !totalPulled(bank, k.ModuleAddress(), "atom").Equal(baseUnits("80")) {
		t.Errorf("expected 80 atom pulled from the module account, got %s", totalPulled(bank, k.ModuleAddress(), "atom").String())
	}
}
