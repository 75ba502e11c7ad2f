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
	"github.com/openalpha/amm-dex/x/weightedpool/types"
)

// Store key prefixes
var (
	PoolKeyPrefix   = []byte{0x01}
	PoolSequenceKey = []byte{0x02}
)

// BankKeeper defines the expected interface for the bank module
type BankKeeper interface {
	SendCoinsFromAccountToModule(ctx context.Context, senderAddr sdk.AccAddress, recipientModule string, amt sdk.Coins) error
	SendCoinsFromModuleToAccount(ctx context.Context, senderModule string, recipientAddr sdk.AccAddress, amt sdk.Coins) error
}

// Keeper manages the weightedpool module state
type Keeper struct {
	cdc        codec.BinaryCodec
	storeKey   storetypes.StoreKey
	bankKeeper BankKeeper
	logger     log.Logger
	authority  string

	mu       sync.Mutex
	inflight map[string]struct{}
}

// NewKeeper creates a new weightedpool keeper
func NewKeeper(
	cdc codec.BinaryCodec,
	storeKey storetypes.StoreKey,
	bankKeeper BankKeeper,
	authority string,
	logger log.Logger,
) *Keeper {
	k := &Keeper{
		cdc:        cdc,
		storeKey:   storeKey,
		bankKeeper: bankKeeper,
		authority:  authority,
		logger:     logger.With("module", "x/weightedpool"),
		inflight:   make(map[string]struct{}),
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

// GetStore returns the KVStore
func (k *Keeper) GetStore(ctx sdk.Context) storetypes.KVStore {
	return ctx.KVStore(k.storeKey)
}

// ============ Pool Store Operations ============

// SetPool saves a pool to the store
func (k *Keeper) SetPool(ctx sdk.Context, pool *types.Pool) {
	store := k.GetStore(ctx)
	key := append(PoolKeyPrefix, []byte(pool.PoolID)...)
	bz, _ := json.Marshal(pool)
	store.Set(key, bz)
}

// GetPool retrieves a pool from the store
func (k *Keeper) GetPool(ctx sdk.Context, poolID string) *types.Pool {
	store := k.GetStore(ctx)
	key := append(PoolKeyPrefix, []byte(poolID)...)
	bz := store.Get(key)
	if bz == nil {
		return nil
	}
	var pool types.Pool
	if err := json.Unmarshal(bz, &pool); err != nil {
		return nil
	}
	return &pool
}

// GetAllPools returns all pools in pool ID order
func (k *Keeper) GetAllPools(ctx sdk.Context) []*types.Pool {
	store := k.GetStore(ctx)
	iterator := storetypes.KVStorePrefixIterator(store, PoolKeyPrefix)
	defer iterator.Close()

	var pools []*types.Pool
	for ; iterator.Valid(); iterator.Next() {
		var pool types.Pool
		if err := json.Unmarshal(iterator.Value(), &pool); err != nil {
			continue
		}
		pools = append(pools, &pool)
	}
	return pools
}

// nextPoolID reserves the next pool identifier from the store sequence
func (k *Keeper) nextPoolID(ctx sdk.Context) string {
	store := k.GetStore(ctx)
	seq := uint64(1)
	if bz := store.Get(PoolSequenceKey); bz != nil {
		if parsed, err := strconv.ParseUint(string(bz), 10, 64); err == nil {
			seq = parsed + 1
		}
	}
	store.Set(PoolSequenceKey, []byte(strconv.FormatUint(seq, 10)))
	return fmt.Sprintf("pool-%d", seq)
}

// ============ Reentrancy Guard ============

// acquirePool marks a pool as busy for the duration of a mutating operation.
// A second entry for the same pool before releasePool fails.
func (k *Keeper) acquirePool(poolID string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	if _, busy := k.inflight[poolID]; busy {
		return types.ErrReentrancy
	}
	k.inflight[poolID] = struct{}{}
	return nil
}

// releasePool clears the busy marker for a pool
func (k *Keeper) releasePool(poolID string) {
	k.mu.Lock()
	defer k.mu.Unlock()
	delete(k.inflight, poolID)
}

// ============ Token Movement ============

// poolCoins converts a pool-unit amount into bank coins. One pool unit is
// 10^18 base units, so the conversion is exact for any 18-decimal amount.
func poolCoins(denom string, amount math.LegacyDec) sdk.Coins {
	return sdk.NewCoins(sdk.NewCoin(denom, math.NewIntFromBigInt(amount.BigInt())))
}

// pullTokens moves tokens from an account into the module account. Zero
// amounts are a no-op.
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
