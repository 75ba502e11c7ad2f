package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/openalpha/amm-dex/x/weightedpool/types"
)

// QueryServer defines the weightedpool QueryServer
type QueryServer struct {
	keeper *Keeper
}

// NewQueryServerImpl creates a new QueryServer instance
func NewQueryServerImpl(keeper *Keeper) *QueryServer {
	return &QueryServer{keeper: keeper}
}

// Pool returns a pool by ID
func (q *QueryServer) Pool(ctx context.Context, poolID string) (*types.Pool, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	pool := q.keeper.GetPool(sdkCtx, poolID)
	if pool == nil {
		return nil, types.ErrPoolNotFound
	}
	return pool, nil
}

// Pools returns all pools
func (q *QueryServer) Pools(ctx context.Context, offset, limit uint64) ([]*types.Pool, uint64, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	allPools := q.keeper.GetAllPools(sdkCtx)

	total := uint64(len(allPools))

	// Apply pagination
	if offset >= total {
		return []*types.Pool{}, total, nil
	}

	end := offset + limit
	if end > total || limit == 0 {
		end = total
	}

	return allPools[offset:end], total, nil
}

// PoolsByController returns pools controlled by an address
func (q *QueryServer) PoolsByController(ctx context.Context, controller string) ([]*types.Pool, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	var pools []*types.Pool
	for _, pool := range q.keeper.GetAllPools(sdkCtx) {
		if pool.Controller == controller {
			pools = append(pools, pool)
		}
	}
	return pools, nil
}

// SpotPrice returns the current price between two bound tokens
func (q *QueryServer) SpotPrice(ctx context.Context, poolID, denomIn, denomOut string, withFee bool) (math.LegacyDec, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return q.keeper.SpotPrice(sdkCtx, poolID, denomIn, denomOut, withFee)
}

// ShareBalance returns an address's share balance in a pool
func (q *QueryServer) ShareBalance(ctx context.Context, poolID, addr string) (math.LegacyDec, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	pool := q.keeper.GetPool(sdkCtx, poolID)
	if pool == nil {
		return math.LegacyDec{}, types.ErrPoolNotFound
	}
	return pool.Shares.BalanceOf(addr), nil
}

// ShareAllowance returns what spender may move out of owner's shares
func (q *QueryServer) ShareAllowance(ctx context.Context, poolID, owner, spender string) (math.LegacyDec, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	pool := q.keeper.GetPool(sdkCtx, poolID)
	if pool == nil {
		return math.LegacyDec{}, types.ErrPoolNotFound
	}
	return pool.Shares.Allowance(owner, spender), nil
}

// TotalShares returns the outstanding share supply of a pool
func (q *QueryServer) TotalShares(ctx context.Context, poolID string) (math.LegacyDec, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	pool := q.keeper.GetPool(sdkCtx, poolID)
	if pool == nil {
		return math.LegacyDec{}, types.ErrPoolNotFound
	}
	return pool.Shares.TotalSupply, nil
}

// EstimateSwapExactAmountIn previews a swap without executing it
func (q *QueryServer) EstimateSwapExactAmountIn(ctx context.Context, poolID, denomIn string, amountIn math.LegacyDec, denomOut string) (math.LegacyDec, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	pool := q.keeper.GetPool(sdkCtx, poolID)
	if pool == nil {
		return math.LegacyDec{}, types.ErrPoolNotFound
	}
	inRecord, found := pool.GetRecord(denomIn)
	if !found {
		return math.LegacyDec{}, types.ErrTokenNotBound
	}
	outRecord, found := pool.GetRecord(denomOut)
	if !found {
		return math.LegacyDec{}, types.ErrTokenNotBound
	}
	return types.CalcOutGivenIn(inRecord.Balance, inRecord.Weight, outRecord.Balance, outRecord.Weight, amountIn, pool.SwapFee)
}

// EstimateSwapExactAmountOut previews the input side of a swap without
// executing it
func (q *QueryServer) EstimateSwapExactAmountOut(ctx context.Context, poolID, denomIn, denomOut string, amountOut math.LegacyDec) (math.LegacyDec, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	pool := q.keeper.GetPool(sdkCtx, poolID)
	if pool == nil {
		return math.LegacyDec{}, types.ErrPoolNotFound
	}
	inRecord, found := pool.GetRecord(denomIn)
	if !found {
		return math.LegacyDec{}, types.ErrTokenNotBound
	}
	outRecord, found := pool.GetRecord(denomOut)
	if !found {
		return math.LegacyDec{}, types.ErrTokenNotBound
	}
	return types.CalcInGivenOut(inRecord.Balance, inRecord.Weight, outRecord.Balance, outRecord.Weight, amountOut, pool.SwapFee)
}
