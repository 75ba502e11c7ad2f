package api

import (
	"context"
	"fmt"
	"sync"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/cosmos/cosmos-sdk/codec"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"

	"github.com/openalpha/amm-dex/api/types"
	wpkeeper "github.com/openalpha/amm-dex/x/weightedpool/keeper"
	wptypes "github.com/openalpha/amm-dex/x/weightedpool/types"
)

// KeeperService implements PoolService, SwapService and ShareService by
// running a real weightedpool keeper on an in-memory store. Every request
// goes through the same code path the chain runs, so keeper mode is the
// reference backend for integration testing.
//
// Addresses must be valid bech32 in keeper mode because the keeper resolves
// them before moving tokens.
type KeeperService struct {
	keeper *wpkeeper.Keeper
	ctx    sdk.Context
	mu     sync.Mutex

	index  *PoolIndex
	events []*types.PoolEvent
}

// mockBankKeeper is an in-memory stand-in for the bank module. External
// accounts are treated as funded; only module balances are tracked, so a
// payout exceeding what the module took in still fails.
type mockBankKeeper struct {
	moduleBalances map[string]sdk.Coins
	mu             sync.Mutex
}

func newMockBankKeeper() *mockBankKeeper {
	return &mockBankKeeper{
		moduleBalances: make(map[string]sdk.Coins),
	}
}

func (m *mockBankKeeper) SendCoinsFromAccountToModule(ctx context.Context, senderAddr sdk.AccAddress, recipientModule string, amt sdk.Coins) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.moduleBalances[recipientModule] = m.moduleBalances[recipientModule].Add(amt...)
	return nil
}

func (m *mockBankKeeper) SendCoinsFromModuleToAccount(ctx context.Context, senderModule string, recipientAddr sdk.AccAddress, amt sdk.Coins) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	remaining, negative := m.moduleBalances[senderModule].SafeSub(amt...)
	if negative {
		return fmt.Errorf("insufficient module balance in %s", senderModule)
	}
	m.moduleBalances[senderModule] = remaining
	return nil
}

// NewKeeperService creates a new KeeperService with an in-memory keeper
func NewKeeperService() *KeeperService {
	// Create codec
	interfaceRegistry := codectypes.NewInterfaceRegistry()
	cdc := codec.NewProtoCodec(interfaceRegistry)

	// Create in-memory store
	storeKey := storetypes.NewKVStoreKey(wptypes.StoreKey)
	db := dbm.NewMemDB()
	stateStore := store.NewCommitMultiStore(db, log.NewNopLogger(), metrics.NewNoOpMetrics())
	stateStore.MountStoreWithDB(storeKey, storetypes.StoreTypeIAVL, db)
	if err := stateStore.LoadLatestVersion(); err != nil {
		panic(fmt.Sprintf("failed to load store: %v", err))
	}

	// Create context
	ctx := sdk.NewContext(stateStore, cmtproto.Header{
		Time:   time.Now(),
		Height: 1,
	}, false, log.NewNopLogger())

	// Create keeper with the fee collector as exit fee recipient
	feeCollector := authtypes.NewModuleAddress(authtypes.FeeCollectorName).String()
	k := wpkeeper.NewKeeper(
		cdc,
		storeKey,
		newMockBankKeeper(),
		feeCollector,
		log.NewNopLogger(),
	)

	return &KeeperService{
		keeper: k,
		ctx:    ctx,
		index:  NewPoolIndex(),
	}
}

// ============ PoolService Implementation ============

func (s *KeeperService) CreatePool(ctx context.Context, req *types.CreatePoolRequest) (*types.CreatePoolResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := sdk.AccAddressFromBech32(req.Controller); err != nil {
		return nil, fmt.Errorf("invalid controller: %v", err)
	}
	if len(req.Tokens) < wptypes.MinBoundTokens {
		return nil, fmt.Errorf("at least %d tokens required", wptypes.MinBoundTokens)
	}
	if len(req.Tokens) > wptypes.MaxBoundTokens {
		return nil, fmt.Errorf("at most %d tokens allowed", wptypes.MaxBoundTokens)
	}

	// Validate everything up front so the keeper flow does not fail halfway
	swapFee := math.LegacyDec{}
	if req.SwapFee != "" {
		parsed, err := math.LegacyNewDecFromStr(req.SwapFee)
		if err != nil {
			return nil, fmt.Errorf("invalid swap_fee: %v", err)
		}
		if err := wptypes.ValidateSwapFee(parsed); err != nil {
			return nil, fmt.Errorf("invalid swap_fee: %v", err)
		}
		swapFee = parsed
	}
	balances := make([]math.LegacyDec, len(req.Tokens))
	weights := make([]math.LegacyDec, len(req.Tokens))
	for i, tok := range req.Tokens {
		balance, err := math.LegacyNewDecFromStr(tok.Balance)
		if err != nil {
			return nil, fmt.Errorf("invalid balance for %s: %v", tok.Denom, err)
		}
		weight, err := math.LegacyNewDecFromStr(tok.Weight)
		if err != nil {
			return nil, fmt.Errorf("invalid weight for %s: %v", tok.Denom, err)
		}
		if err := wptypes.ValidateBalance(balance); err != nil {
			return nil, fmt.Errorf("invalid balance for %s: %v", tok.Denom, err)
		}
		if err := wptypes.ValidateWeight(weight); err != nil {
			return nil, fmt.Errorf("invalid weight for %s: %v", tok.Denom, err)
		}
		balances[i] = balance
		weights[i] = weight
	}

	pool, err := s.keeper.CreatePool(s.ctx, req.Controller)
	if err != nil {
		return nil, err
	}
	if !swapFee.IsNil() {
		if err := s.keeper.SetSwapFee(s.ctx, req.Controller, pool.PoolID, swapFee); err != nil {
			return nil, err
		}
	}
	for i, tok := range req.Tokens {
		if err := s.keeper.Bind(s.ctx, req.Controller, pool.PoolID, tok.Denom, balances[i], weights[i]); err != nil {
			return nil, err
		}
	}
	initialShares, err := s.keeper.FinalizePool(s.ctx, req.Controller, pool.PoolID)
	if err != nil {
		return nil, err
	}

	created := s.keeper.GetPool(s.ctx, pool.PoolID)
	view := poolView(created)
	s.index.Upsert(view)

	return &types.CreatePoolResponse{
		Pool:          view,
		InitialShares: initialShares.String(),
	}, nil
}

func (s *KeeperService) GetPool(ctx context.Context, poolID string) (*types.Pool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pool := s.keeper.GetPool(s.ctx, poolID)
	if pool == nil {
		return nil, fmt.Errorf("pool not found: %s", poolID)
	}
	return poolView(pool), nil
}

func (s *KeeperService) ListPools(ctx context.Context, req *types.ListPoolsRequest) (*types.ListPoolsResponse, error) {
	return listFromIndex(s.index, req), nil
}

// ============ SwapService Implementation ============

func (s *KeeperService) GetSpotPrice(ctx context.Context, poolID, denomIn, denomOut string, withFee bool) (*types.SpotPriceResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	price, err := s.keeper.SpotPrice(s.ctx, poolID, denomIn, denomOut, withFee)
	if err != nil {
		return nil, err
	}
	return &types.SpotPriceResponse{
		PoolID:    poolID,
		DenomIn:   denomIn,
		DenomOut:  denomOut,
		SpotPrice: price.String(),
		WithFee:   withFee,
		Timestamp: nowMillis(),
	}, nil
}

func (s *KeeperService) QuoteSwap(ctx context.Context, req *types.SwapQuoteRequest) (*types.SwapQuoteResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pool := s.keeper.GetPool(s.ctx, req.PoolID)
	if pool == nil {
		return nil, fmt.Errorf("pool not found: %s", req.PoolID)
	}
	return quoteSwap(pool, req)
}

func (s *KeeperService) Swap(ctx context.Context, poolID string, req *types.SwapRequest) (*types.SwapResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := sdk.AccAddressFromBech32(req.Sender); err != nil {
		return nil, fmt.Errorf("invalid sender: %v", err)
	}
	amountIn, err := math.LegacyNewDecFromStr(req.AmountIn)
	if err != nil {
		return nil, fmt.Errorf("invalid amount_in: %v", err)
	}
	minAmountOut := math.LegacyDec{}
	if req.MinAmountOut != "" {
		if minAmountOut, err = math.LegacyNewDecFromStr(req.MinAmountOut); err != nil {
			return nil, fmt.Errorf("invalid min_amount_out: %v", err)
		}
	}
	maxPrice := math.LegacyDec{}
	if req.MaxPrice != "" {
		if maxPrice, err = math.LegacyNewDecFromStr(req.MaxPrice); err != nil {
			return nil, fmt.Errorf("invalid max_price: %v", err)
		}
	}

	amountOut, spotAfter, err := s.keeper.SwapExactAmountIn(s.ctx, req.Sender, poolID, req.DenomIn, amountIn, req.DenomOut, minAmountOut, maxPrice)
	if err != nil {
		return nil, err
	}
	s.refreshPool(poolID)

	now := nowMillis()
	s.events = append(s.events, &types.PoolEvent{
		Type: "swap",
		Swap: &types.SwapEvent{
			PoolID:         poolID,
			Sender:         req.Sender,
			DenomIn:        req.DenomIn,
			AmountIn:       amountIn.String(),
			DenomOut:       req.DenomOut,
			AmountOut:      amountOut.String(),
			SpotPriceAfter: spotAfter.String(),
			Timestamp:      now,
		},
	})

	return &types.SwapResponse{
		PoolID:         poolID,
		Sender:         req.Sender,
		DenomIn:        req.DenomIn,
		AmountIn:       amountIn.String(),
		DenomOut:       req.DenomOut,
		AmountOut:      amountOut.String(),
		SpotPriceAfter: spotAfter.String(),
		Timestamp:      now,
	}, nil
}

// ============ ShareService Implementation ============

func (s *KeeperService) GetShares(ctx context.Context, poolID, address string) (*types.SharesResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pool := s.keeper.GetPool(s.ctx, poolID)
	if pool == nil {
		return nil, fmt.Errorf("pool not found: %s", poolID)
	}

	balance := pool.Shares.BalanceOf(address)
	total := pool.Shares.TotalSupply
	ratio := math.LegacyZeroDec()
	if total.IsPositive() {
		ratio = balance.Quo(total)
	}

	return &types.SharesResponse{
		PoolID:      poolID,
		Address:     address,
		Balance:     balance.String(),
		TotalShares: total.String(),
		PoolRatio:   ratio.String(),
	}, nil
}

func (s *KeeperService) Join(ctx context.Context, poolID string, req *types.JoinRequest) (*types.JoinResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := sdk.AccAddressFromBech32(req.Sender); err != nil {
		return nil, fmt.Errorf("invalid sender: %v", err)
	}
	poolAmountOut, err := math.LegacyNewDecFromStr(req.PoolAmountOut)
	if err != nil {
		return nil, fmt.Errorf("invalid pool_amount_out: %v", err)
	}
	maxAmountsIn, err := parseDecMap(req.MaxAmountsIn)
	if err != nil {
		return nil, err
	}

	amountsIn, err := s.keeper.JoinPool(s.ctx, req.Sender, poolID, poolAmountOut, maxAmountsIn)
	if err != nil {
		return nil, err
	}
	s.refreshPool(poolID)

	now := nowMillis()
	amounts := stringifyDecMap(amountsIn)
	s.events = append(s.events, &types.PoolEvent{
		Type: "join",
		Liquidity: &types.LiquidityEvent{
			PoolID:     poolID,
			Sender:     req.Sender,
			Kind:       "join",
			PoolShares: poolAmountOut.String(),
			Amounts:    amounts,
			Timestamp:  now,
		},
	})

	return &types.JoinResponse{
		PoolID:        poolID,
		Sender:        req.Sender,
		PoolAmountOut: poolAmountOut.String(),
		AmountsIn:     amounts,
		Timestamp:     now,
	}, nil
}

func (s *KeeperService) Exit(ctx context.Context, poolID string, req *types.ExitRequest) (*types.ExitResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := sdk.AccAddressFromBech32(req.Sender); err != nil {
		return nil, fmt.Errorf("invalid sender: %v", err)
	}
	poolAmountIn, err := math.LegacyNewDecFromStr(req.PoolAmountIn)
	if err != nil {
		return nil, fmt.Errorf("invalid pool_amount_in: %v", err)
	}
	minAmountsOut, err := parseDecMap(req.MinAmountsOut)
	if err != nil {
		return nil, err
	}

	amountsOut, err := s.keeper.ExitPool(s.ctx, req.Sender, poolID, poolAmountIn, minAmountsOut)
	if err != nil {
		return nil, err
	}
	s.refreshPool(poolID)

	now := nowMillis()
	amounts := stringifyDecMap(amountsOut)
	s.events = append(s.events, &types.PoolEvent{
		Type: "exit",
		Liquidity: &types.LiquidityEvent{
			PoolID:     poolID,
			Sender:     req.Sender,
			Kind:       "exit",
			PoolShares: poolAmountIn.String(),
			Amounts:    amounts,
			Timestamp:  now,
		},
	})

	return &types.ExitResponse{
		PoolID:       poolID,
		Sender:       req.Sender,
		PoolAmountIn: poolAmountIn.String(),
		AmountsOut:   amounts,
		Timestamp:    now,
	}, nil
}

// ============ EventSource Implementation ============

func (s *KeeperService) DrainEvents(ctx context.Context) []*types.PoolEvent {
	s.mu.Lock()
	defer s.mu.Unlock()

	events := s.events
	s.events = nil
	return events
}

// refreshPool re-reads a pool from the keeper and updates the listing index.
// Callers hold s.mu.
func (s *KeeperService) refreshPool(poolID string) {
	if pool := s.keeper.GetPool(s.ctx, poolID); pool != nil {
		s.index.Upsert(poolView(pool))
	}
}

// stringifyDecMap renders keeper amounts for an API response
func stringifyDecMap(in map[string]math.LegacyDec) map[string]string {
	out := make(map[string]string, len(in))
	for denom, amount := range in {
		out[denom] = amount.String()
	}
	return out
}
