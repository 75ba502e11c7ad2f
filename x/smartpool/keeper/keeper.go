package keeper

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	"github.com/openalpha/amm-dex/x/smartpool/types"
	wptypes "github.com/openalpha/amm-dex/x/weightedpool/types"
)

// Store key prefixes
var (
	SmartPoolKeyPrefix   = []byte{0x01}
	SmartPoolSequenceKey = []byte{0x02}
	ScheduleKeyPrefix    = []byte{0x03}
	BatchSequenceKey     = []byte{0x04}
)

// BankKeeper defines the expected interface for the bank module
type BankKeeper interface {
	SendCoinsFromAccountToModule(ctx context.Context, senderAddr sdk.AccAddress, recipientModule string, amt sdk.Coins) error
	SendCoinsFromModuleToAccount(ctx context.Context, senderModule string, recipientAddr sdk.AccAddress, amt sdk.Coins) error
}

// PoolEngine defines the expected interface of the weightedpool keeper. A
// smart pool owns exactly one engine pool through the module account, so
// every engine call below passes the module address as controller.
type PoolEngine interface {
	CreatePool(ctx sdk.Context, creator string) (*wptypes.Pool, error)
	GetPool(ctx sdk.Context, poolID string) *wptypes.Pool
	Bind(ctx sdk.Context, controller, poolID, denom string, balance, weight math.LegacyDec) error
	Rebind(ctx sdk.Context, controller, poolID, denom string, balance, weight math.LegacyDec) error
	Unbind(ctx sdk.Context, controller, poolID, denom string) (math.LegacyDec, error)
	SetSwapFee(ctx sdk.Context, controller, poolID string, swapFee math.LegacyDec) error
	SetPublicSwap(ctx sdk.Context, controller, poolID string, public bool) error
	MintShares(ctx sdk.Context, controller, poolID, to string, amount math.LegacyDec) error
	BurnShares(ctx sdk.Context, controller, poolID, from string, amount math.LegacyDec) error
}

// Keeper manages the smartpool module state
type Keeper struct {
	cdc        codec.BinaryCodec
	storeKey   storetypes.StoreKey
	engine     PoolEngine
	bankKeeper BankKeeper
	logger     log.Logger
	authority  string
	moduleAddr string

	mu       sync.Mutex
	inflight map[string]struct{}

	schedule *updateSchedule
}

// NewKeeper creates a new smartpool keeper
func NewKeeper(
	cdc codec.BinaryCodec,
	storeKey storetypes.StoreKey,
	engine PoolEngine,
	bankKeeper BankKeeper,
	authority string,
	logger log.Logger,
) *Keeper {
	k := &Keeper{
		cdc:        cdc,
		storeKey:   storeKey,
		engine:     engine,
		bankKeeper: bankKeeper,
		authority:  authority,
		moduleAddr: authtypes.NewModuleAddress(types.ModuleName).String(),
		logger:     logger.With("module", "x/smartpool"),
		inflight:   make(map[string]struct{}),
		schedule:   newUpdateSchedule(),
	}
	return k
}

// Logger returns the module logger
func (k *Keeper) Logger() log.Logger {
	return k.logger
}

// GetAuthority returns the governance authority address
func (k *Keeper) GetAuthority() string {
	return k.authority
}

// ModuleAddress returns the module account address that controls the wrapped
// engine pools.
func (k *Keeper) ModuleAddress() string {
	return k.moduleAddr
}

// GetStore returns the KVStore
func (k *Keeper) GetStore(ctx sdk.Context) storetypes.KVStore {
	return ctx.KVStore(k.storeKey)
}

// ============ Smart Pool Store Operations ============

// SetSmartPool saves a smart pool to the store
func (k *Keeper) SetSmartPool(ctx sdk.Context, sp *types.SmartPool) {
	store := k.GetStore(ctx)
	key := append(SmartPoolKeyPrefix, []byte(sp.SmartPoolID)...)
	bz, _ := json.Marshal(sp)
	store.Set(key, bz)
}

// GetSmartPool retrieves a smart pool from the store
func (k *Keeper) GetSmartPool(ctx sdk.Context, smartPoolID string) *types.SmartPool {
	store := k.GetStore(ctx)
	key := append(SmartPoolKeyPrefix, []byte(smartPoolID)...)
	bz := store.Get(key)
	if bz == nil {
		return nil
	}
	var sp types.SmartPool
	if err := json.Unmarshal(bz, &sp); err != nil {
		return nil
	}
	return &sp
}

// GetAllSmartPools returns all smart pools in ID order
func (k *Keeper) GetAllSmartPools(ctx sdk.Context) []*types.SmartPool {
	store := k.GetStore(ctx)
	iterator := storetypes.KVStorePrefixIterator(store, SmartPoolKeyPrefix)
	defer iterator.Close()

	var pools []*types.SmartPool
	for ; iterator.Valid(); iterator.Next() {
		var sp types.SmartPool
		if err := json.Unmarshal(iterator.Value(), &sp); err != nil {
			continue
		}
		pools = append(pools, &sp)
	}
	return pools
}

// nextSmartPoolID reserves the next smart pool identifier from the store
// sequence
func (k *Keeper) nextSmartPoolID(ctx sdk.Context) string {
	store := k.GetStore(ctx)
	seq := uint64(1)
	if bz := store.Get(SmartPoolSequenceKey); bz != nil {
		if parsed, err := strconv.ParseUint(string(bz), 10, 64); err == nil {
			seq = parsed + 1
		}
	}
	store.Set(SmartPoolSequenceKey, []byte(strconv.FormatUint(seq, 10)))
	return fmt.Sprintf("spool-%d", seq)
}

// nextBatchID reserves the next action batch identifier from the store
// sequence
func (k *Keeper) nextBatchID(ctx sdk.Context) string {
	store := k.GetStore(ctx)
	seq := uint64(1)
	if bz := store.Get(BatchSequenceKey); bz != nil {
		if parsed, err := strconv.ParseUint(string(bz), 10, 64); err == nil {
			seq = parsed + 1
		}
	}
	store.Set(BatchSequenceKey, []byte(strconv.FormatUint(seq, 10)))
	return fmt.Sprintf("batch-%d", seq)
}

// ============ Reentrancy Guard ============

// acquireSmartPool marks a smart pool as busy for the duration of a mutating
// operation. A second entry for the same pool before releaseSmartPool fails.
func (k *Keeper) acquireSmartPool(smartPoolID string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	if _, busy := k.inflight[smartPoolID]; busy {
		return types.ErrReentrancy
	}
	k.inflight[smartPoolID] = struct{}{}
	return nil
}

// releaseSmartPool clears the busy marker for a smart pool
func (k *Keeper) releaseSmartPool(smartPoolID string) {
	k.mu.Lock()
	defer k.mu.Unlock()
	delete(k.inflight, smartPoolID)
}

// ============ Token Movement ============

// poolCoins converts a pool-unit amount into bank coins. One pool unit is
// 10^18 base units, so the conversion is exact for any 18-decimal amount.
func poolCoins(denom string, amount math.LegacyDec) sdk.Coins {
	return sdk.NewCoins(sdk.NewCoin(denom, math.NewIntFromBigInt(amount.BigInt())))
}

// pullTokens moves tokens from an account into the module account. The module
// account then settles with the engine pool, so user funds make two hops.
// Zero amounts are a no-op.
func (k *Keeper) pullTokens(ctx sdk.Context, from string, denom string, amount math.LegacyDec) error {
	if amount.IsZero() {
		return nil
	}
	addr, err := sdk.AccAddressFromBech32(from)
	if err != nil {
		return types.ErrInvalidAddress
	}
	return k.bankKeeper.SendCoinsFromAccountToModule(ctx, addr, types.ModuleName, poolCoins(denom, amount))
}

// pushTokens moves tokens from the module account to an account. Zero
// amounts are a no-op.
func (k *Keeper) pushTokens(ctx sdk.Context, to string, denom string, amount math.LegacyDec) error {
	if amount.IsZero() {
		return nil
	}
	addr, err := sdk.AccAddressFromBech32(to)
	if err != nil {
		return types.ErrInvalidAddress
	}
	return k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, addr, poolCoins(denom, amount))
}
