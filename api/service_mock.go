package api

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"cosmossdk.io/math"

	"github.com/openalpha/amm-dex/ammmath"
	"github.com/openalpha/amm-dex/api/types"
	wptypes "github.com/openalpha/amm-dex/x/weightedpool/types"
)

// MockService implements all service interfaces with in-memory pools. The
// pools run the real curve math, only the bank transfers are skipped, so
// quotes and executions match what the chain would do.
type MockService struct {
	pools   map[string]*wptypes.Pool
	index   *PoolIndex
	events  []*types.PoolEvent
	mu      sync.RWMutex
	poolSeq int64
}

// NewMockService creates a new mock service
func NewMockService() *MockService {
	ms := &MockService{
		pools: make(map[string]*wptypes.Pool),
		index: NewPoolIndex(),
	}
	ms.initMockData()
	return ms
}

// initMockData initializes the service
// NOTE: No hardcoded demo data - all pools come from real create calls
func (ms *MockService) initMockData() {
	// Empty initialization - no demo/mock pools
	// Users start with an empty pool list and must create pools to see data
}

// ============ PoolService Implementation ============

func (ms *MockService) CreatePool(ctx context.Context, req *types.CreatePoolRequest) (*types.CreatePoolResponse, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if req.Controller == "" {
		return nil, fmt.Errorf("controller is required")
	}
	if len(req.Tokens) < wptypes.MinBoundTokens {
		return nil, fmt.Errorf("at least %d tokens required", wptypes.MinBoundTokens)
	}
	if len(req.Tokens) > wptypes.MaxBoundTokens {
		return nil, fmt.Errorf("at most %d tokens allowed", wptypes.MaxBoundTokens)
	}

	swapFee := wptypes.MinSwapFee
	if req.SwapFee != "" {
		parsed, err := math.LegacyNewDecFromStr(req.SwapFee)
		if err != nil {
			return nil, fmt.Errorf("invalid swap_fee: %v", err)
		}
		swapFee = parsed
	}
	if err := wptypes.ValidateSwapFee(swapFee); err != nil {
		return nil, fmt.Errorf("invalid swap_fee: %v", err)
	}

	seq := atomic.AddInt64(&ms.poolSeq, 1)
	poolID := fmt.Sprintf("pool-%d", seq)
	now := nowMillis() / 1000

	pool := wptypes.NewPool(poolID, req.Controller, now)
	pool.SwapFee = swapFee

	totalWeight := math.LegacyZeroDec()
	for _, tok := range req.Tokens {
		if pool.IsBound(tok.Denom) {
			return nil, fmt.Errorf("duplicate denom: %s", tok.Denom)
		}
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
		totalWeight = totalWeight.Add(weight)
		pool.AddRecord(tok.Denom, balance, weight)
	}
	if totalWeight.GT(wptypes.MaxTotalWeight) {
		return nil, fmt.Errorf("total weight above maximum")
	}

	pool.Finalized = true
	pool.PublicSwap = true
	if err := pool.Shares.Mint(req.Controller, wptypes.InitPoolSupply); err != nil {
		return nil, fmt.Errorf("failed to mint initial shares: %v", err)
	}

	ms.pools[poolID] = pool
	ms.index.Upsert(poolView(pool))

	return &types.CreatePoolResponse{
		Pool:          poolView(pool),
		InitialShares: wptypes.InitPoolSupply.String(),
	}, nil
}

func (ms *MockService) GetPool(ctx context.Context, poolID string) (*types.Pool, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	pool, ok := ms.pools[poolID]
	if !ok {
		return nil, fmt.Errorf("pool not found: %s", poolID)
	}
	return poolView(pool), nil
}

func (ms *MockService) ListPools(ctx context.Context, req *types.ListPoolsRequest) (*types.ListPoolsResponse, error) {
	return listFromIndex(ms.index, req), nil
}

// ============ SwapService Implementation ============

func (ms *MockService) GetSpotPrice(ctx context.Context, poolID, denomIn, denomOut string, withFee bool) (*types.SpotPriceResponse, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	pool, ok := ms.pools[poolID]
	if !ok {
		return nil, fmt.Errorf("pool not found: %s", poolID)
	}
	inRecord, outRecord, err := swapPair(pool, denomIn, denomOut)
	if err != nil {
		return nil, err
	}

	fee := pool.SwapFee
	if !withFee {
		fee = math.LegacyZeroDec()
	}
	price, err := wptypes.CalcSpotPrice(inRecord.Balance, inRecord.Weight, outRecord.Balance, outRecord.Weight, fee)
	if err != nil {
		return nil, fmt.Errorf("spot price failed: %v", err)
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

func (ms *MockService) QuoteSwap(ctx context.Context, req *types.SwapQuoteRequest) (*types.SwapQuoteResponse, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	pool, ok := ms.pools[req.PoolID]
	if !ok {
		return nil, fmt.Errorf("pool not found: %s", req.PoolID)
	}
	return quoteSwap(pool, req)
}

func (ms *MockService) Swap(ctx context.Context, poolID string, req *types.SwapRequest) (*types.SwapResponse, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	pool, ok := ms.pools[poolID]
	if !ok {
		return nil, fmt.Errorf("pool not found: %s", poolID)
	}
	if req.Sender == "" {
		return nil, fmt.Errorf("sender is required")
	}
	inRecord, outRecord, err := swapPair(pool, req.DenomIn, req.DenomOut)
	if err != nil {
		return nil, err
	}

	amountIn, err := math.LegacyNewDecFromStr(req.AmountIn)
	if err != nil {
		return nil, fmt.Errorf("invalid amount_in: %v", err)
	}
	if !amountIn.IsPositive() {
		return nil, fmt.Errorf("amount_in must be positive")
	}
	maxIn, err := ammmath.Mul(inRecord.Balance, wptypes.MaxInRatio)
	if err != nil {
		return nil, fmt.Errorf("swap failed: %v", err)
	}
	if amountIn.GT(maxIn) {
		return nil, fmt.Errorf("amount_in above max ratio")
	}

	amountOut, err := wptypes.CalcOutGivenIn(inRecord.Balance, inRecord.Weight, outRecord.Balance, outRecord.Weight, amountIn, pool.SwapFee)
	if err != nil {
		return nil, fmt.Errorf("swap failed: %v", err)
	}
	if req.MinAmountOut != "" {
		minOut, err := math.LegacyNewDecFromStr(req.MinAmountOut)
		if err != nil {
			return nil, fmt.Errorf("invalid min_amount_out: %v", err)
		}
		if amountOut.LT(minOut) {
			return nil, fmt.Errorf("amount_out below limit")
		}
	}

	newIn, err := ammmath.Add(inRecord.Balance, amountIn)
	if err != nil {
		return nil, fmt.Errorf("swap failed: %v", err)
	}
	newOut, err := ammmath.Sub(outRecord.Balance, amountOut)
	if err != nil {
		return nil, fmt.Errorf("swap failed: %v", err)
	}
	spotAfter, err := wptypes.CalcSpotPrice(newIn, inRecord.Weight, newOut, outRecord.Weight, pool.SwapFee)
	if err != nil {
		return nil, fmt.Errorf("swap failed: %v", err)
	}
	if req.MaxPrice != "" {
		maxPrice, err := math.LegacyNewDecFromStr(req.MaxPrice)
		if err != nil {
			return nil, fmt.Errorf("invalid max_price: %v", err)
		}
		if spotAfter.GT(maxPrice) {
			return nil, fmt.Errorf("spot price above limit")
		}
	}

	now := nowMillis()
	pool.SetRecord(req.DenomIn, newIn, inRecord.Weight)
	pool.SetRecord(req.DenomOut, newOut, outRecord.Weight)
	pool.UpdatedAt = now / 1000
	ms.index.Upsert(poolView(pool))

	ms.events = append(ms.events, &types.PoolEvent{
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

func (ms *MockService) GetShares(ctx context.Context, poolID, address string) (*types.SharesResponse, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	pool, ok := ms.pools[poolID]
	if !ok {
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

func (ms *MockService) Join(ctx context.Context, poolID string, req *types.JoinRequest) (*types.JoinResponse, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	pool, ok := ms.pools[poolID]
	if !ok {
		return nil, fmt.Errorf("pool not found: %s", poolID)
	}
	if req.Sender == "" {
		return nil, fmt.Errorf("sender is required")
	}
	if !pool.Finalized {
		return nil, fmt.Errorf("pool not finalized")
	}

	poolAmountOut, err := math.LegacyNewDecFromStr(req.PoolAmountOut)
	if err != nil {
		return nil, fmt.Errorf("invalid pool_amount_out: %v", err)
	}
	if !poolAmountOut.IsPositive() {
		return nil, fmt.Errorf("pool_amount_out must be positive")
	}

	maxAmountsIn, err := parseDecMap(req.MaxAmountsIn)
	if err != nil {
		return nil, err
	}

	ratio, err := ammmath.Div(poolAmountOut, pool.Shares.TotalSupply)
	if err != nil {
		return nil, fmt.Errorf("join failed: %v", err)
	}
	if ratio.IsZero() {
		return nil, fmt.Errorf("pool_amount_out too small")
	}

	amountsIn := make(map[string]string, pool.NumTokens())
	newBalances := make(map[string]math.LegacyDec, pool.NumTokens())
	for _, rec := range pool.Records {
		amountIn, err := ammmath.Mul(ratio, rec.Balance)
		if err != nil {
			return nil, fmt.Errorf("join failed: %v", err)
		}
		if limit, ok := maxAmountsIn[rec.Denom]; ok && amountIn.GT(limit) {
			return nil, fmt.Errorf("deposit for %s above limit", rec.Denom)
		}
		newBalance, err := ammmath.Add(rec.Balance, amountIn)
		if err != nil {
			return nil, fmt.Errorf("join failed: %v", err)
		}
		amountsIn[rec.Denom] = amountIn.String()
		newBalances[rec.Denom] = newBalance
	}

	for _, rec := range pool.Records {
		pool.SetRecord(rec.Denom, newBalances[rec.Denom], rec.Weight)
	}
	if err := pool.Shares.Mint(req.Sender, poolAmountOut); err != nil {
		return nil, fmt.Errorf("join failed: %v", err)
	}
	now := nowMillis()
	pool.UpdatedAt = now / 1000
	ms.index.Upsert(poolView(pool))

	ms.events = append(ms.events, &types.PoolEvent{
		Type: "join",
		Liquidity: &types.LiquidityEvent{
			PoolID:     poolID,
			Sender:     req.Sender,
			Kind:       "join",
			PoolShares: poolAmountOut.String(),
			Amounts:    amountsIn,
			Timestamp:  now,
		},
	})

	return &types.JoinResponse{
		PoolID:        poolID,
		Sender:        req.Sender,
		PoolAmountOut: poolAmountOut.String(),
		AmountsIn:     amountsIn,
		Timestamp:     now,
	}, nil
}

func (ms *MockService) Exit(ctx context.Context, poolID string, req *types.ExitRequest) (*types.ExitResponse, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	pool, ok := ms.pools[poolID]
	if !ok {
		return nil, fmt.Errorf("pool not found: %s", poolID)
	}
	if req.Sender == "" {
		return nil, fmt.Errorf("sender is required")
	}
	if !pool.Finalized {
		return nil, fmt.Errorf("pool not finalized")
	}

	poolAmountIn, err := math.LegacyNewDecFromStr(req.PoolAmountIn)
	if err != nil {
		return nil, fmt.Errorf("invalid pool_amount_in: %v", err)
	}
	if !poolAmountIn.IsPositive() {
		return nil, fmt.Errorf("pool_amount_in must be positive")
	}
	if pool.Shares.BalanceOf(req.Sender).LT(poolAmountIn) {
		return nil, fmt.Errorf("insufficient shares")
	}

	minAmountsOut, err := parseDecMap(req.MinAmountsOut)
	if err != nil {
		return nil, err
	}

	exitFee, err := ammmath.Mul(poolAmountIn, wptypes.ExitFee)
	if err != nil {
		return nil, fmt.Errorf("exit failed: %v", err)
	}
	inAfterExitFee, err := ammmath.Sub(poolAmountIn, exitFee)
	if err != nil {
		return nil, fmt.Errorf("exit failed: %v", err)
	}
	ratio, err := ammmath.Div(inAfterExitFee, pool.Shares.TotalSupply)
	if err != nil {
		return nil, fmt.Errorf("exit failed: %v", err)
	}
	if ratio.IsZero() {
		return nil, fmt.Errorf("pool_amount_in too small")
	}

	amountsOut := make(map[string]string, pool.NumTokens())
	newBalances := make(map[string]math.LegacyDec, pool.NumTokens())
	for _, rec := range pool.Records {
		amountOut, err := ammmath.Mul(ratio, rec.Balance)
		if err != nil {
			return nil, fmt.Errorf("exit failed: %v", err)
		}
		if floor, ok := minAmountsOut[rec.Denom]; ok && amountOut.LT(floor) {
			return nil, fmt.Errorf("payout for %s below limit", rec.Denom)
		}
		newBalance, err := ammmath.Sub(rec.Balance, amountOut)
		if err != nil {
			return nil, fmt.Errorf("exit failed: %v", err)
		}
		amountsOut[rec.Denom] = amountOut.String()
		newBalances[rec.Denom] = newBalance
	}

	if exitFee.IsPositive() {
		if err := pool.Shares.Transfer(req.Sender, pool.Controller, exitFee); err != nil {
			return nil, fmt.Errorf("exit failed: %v", err)
		}
	}
	if err := pool.Shares.Burn(req.Sender, inAfterExitFee); err != nil {
		return nil, fmt.Errorf("exit failed: %v", err)
	}
	for _, rec := range pool.Records {
		pool.SetRecord(rec.Denom, newBalances[rec.Denom], rec.Weight)
	}
	now := nowMillis()
	pool.UpdatedAt = now / 1000
	ms.index.Upsert(poolView(pool))

	ms.events = append(ms.events, &types.PoolEvent{
		Type: "exit",
		Liquidity: &types.LiquidityEvent{
			PoolID:     poolID,
			Sender:     req.Sender,
			Kind:       "exit",
			PoolShares: poolAmountIn.String(),
			Amounts:    amountsOut,
			Timestamp:  now,
		},
	})

	return &types.ExitResponse{
		PoolID:       poolID,
		Sender:       req.Sender,
		PoolAmountIn: poolAmountIn.String(),
		AmountsOut:   amountsOut,
		Timestamp:    now,
	}, nil
}

// ============ EventSource Implementation ============

func (ms *MockService) DrainEvents(ctx context.Context) []*types.PoolEvent {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	events := ms.events
	ms.events = nil
	return events
}

// ============ Helpers ============

// swapPair resolves the in and out side of a swap and checks the pool is
// open for trading.
func swapPair(pool *wptypes.Pool, denomIn, denomOut string) (wptypes.AssetRecord, wptypes.AssetRecord, error) {
	if denomIn == "" || denomOut == "" {
		return wptypes.AssetRecord{}, wptypes.AssetRecord{}, fmt.Errorf("denom_in and denom_out are required")
	}
	if denomIn == denomOut {
		return wptypes.AssetRecord{}, wptypes.AssetRecord{}, fmt.Errorf("denom_in and denom_out must differ")
	}
	inRecord, found := pool.GetRecord(denomIn)
	if !found {
		return wptypes.AssetRecord{}, wptypes.AssetRecord{}, fmt.Errorf("token not bound: %s", denomIn)
	}
	outRecord, found := pool.GetRecord(denomOut)
	if !found {
		return wptypes.AssetRecord{}, wptypes.AssetRecord{}, fmt.Errorf("token not bound: %s", denomOut)
	}
	if !pool.PublicSwap {
		return wptypes.AssetRecord{}, wptypes.AssetRecord{}, fmt.Errorf("pool not open for swapping")
	}
	return inRecord, outRecord, nil
}

// quoteSwap prices a swap against a pool snapshot without mutating it.
// Exactly one of the request amounts must be set; the other is computed.
func quoteSwap(pool *wptypes.Pool, req *types.SwapQuoteRequest) (*types.SwapQuoteResponse, error) {
	inRecord, outRecord, err := swapPair(pool, req.DenomIn, req.DenomOut)
	if err != nil {
		return nil, err
	}

	var amountIn, amountOut math.LegacyDec
	switch {
	case req.AmountIn != "" && req.AmountOut == "":
		amountIn, err = math.LegacyNewDecFromStr(req.AmountIn)
		if err != nil {
			return nil, fmt.Errorf("invalid amount_in: %v", err)
		}
		amountOut, err = wptypes.CalcOutGivenIn(inRecord.Balance, inRecord.Weight, outRecord.Balance, outRecord.Weight, amountIn, pool.SwapFee)
		if err != nil {
			return nil, fmt.Errorf("quote failed: %v", err)
		}
	case req.AmountOut != "" && req.AmountIn == "":
		amountOut, err = math.LegacyNewDecFromStr(req.AmountOut)
		if err != nil {
			return nil, fmt.Errorf("invalid amount_out: %v", err)
		}
		amountIn, err = wptypes.CalcInGivenOut(inRecord.Balance, inRecord.Weight, outRecord.Balance, outRecord.Weight, amountOut, pool.SwapFee)
		if err != nil {
			return nil, fmt.Errorf("quote failed: %v", err)
		}
	default:
		return nil, fmt.Errorf("exactly one of amount_in and amount_out is required")
	}

	spotBefore, err := wptypes.CalcSpotPrice(inRecord.Balance, inRecord.Weight, outRecord.Balance, outRecord.Weight, pool.SwapFee)
	if err != nil {
		return nil, fmt.Errorf("quote failed: %v", err)
	}
	newIn, err := ammmath.Add(inRecord.Balance, amountIn)
	if err != nil {
		return nil, fmt.Errorf("quote failed: %v", err)
	}
	newOut, err := ammmath.Sub(outRecord.Balance, amountOut)
	if err != nil {
		return nil, fmt.Errorf("quote failed: %v", err)
	}
	spotAfter, err := wptypes.CalcSpotPrice(newIn, inRecord.Weight, newOut, outRecord.Weight, pool.SwapFee)
	if err != nil {
		return nil, fmt.Errorf("quote failed: %v", err)
	}

	return &types.SwapQuoteResponse{
		PoolID:          req.PoolID,
		DenomIn:         req.DenomIn,
		AmountIn:        amountIn.String(),
		DenomOut:        req.DenomOut,
		AmountOut:       amountOut.String(),
		SpotPriceBefore: spotBefore.String(),
		SpotPriceAfter:  spotAfter.String(),
		SwapFee:         pool.SwapFee.String(),
	}, nil
}

// parseDecMap parses a denom to decimal-string map from a request
func parseDecMap(in map[string]string) (map[string]math.LegacyDec, error) {
	out := make(map[string]math.LegacyDec, len(in))
	for denom, amount := range in {
		dec, err := math.LegacyNewDecFromStr(amount)
		if err != nil {
			return nil, fmt.Errorf("invalid amount for %s: %v", denom, err)
		}
		out[denom] = dec
	}
	return out, nil
}

// poolView converts a pool record into its API response shape
func poolView(pool *wptypes.Pool) *types.Pool {
	totalWeight := pool.TotalWeight()
	tokens := make([]types.PoolToken, 0, len(pool.Records))
	for _, rec := range pool.Records {
		normalized := math.LegacyZeroDec()
		if totalWeight.IsPositive() {
			normalized = rec.Weight.Quo(totalWeight)
		}
		tokens = append(tokens, types.PoolToken{
			Denom:            rec.Denom,
			Balance:          rec.Balance.String(),
			Weight:           rec.Weight.String(),
			NormalizedWeight: normalized.String(),
		})
	}

	return &types.Pool{
		PoolID:      pool.PoolID,
		Controller:  pool.Controller,
		SwapFee:     pool.SwapFee.String(),
		TotalWeight: totalWeight.String(),
		TotalShares: pool.Shares.TotalSupply.String(),
		PublicSwap:  pool.PublicSwap,
		Finalized:   pool.Finalized,
		Tokens:      tokens,
		CreatedAt:   pool.CreatedAt,
		UpdatedAt:   pool.UpdatedAt,
	}
}
