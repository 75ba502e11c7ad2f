package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/openalpha/amm-dex/x/smartpool/types"
)

// QueryServer defines the smartpool QueryServer
type QueryServer struct {
	keeper *Keeper
}

// NewQueryServerImpl creates a new QueryServer instance
func NewQueryServerImpl(keeper *Keeper) *QueryServer {
	return &QueryServer{keeper: keeper}
}

// SmartPool returns a smart pool by ID
func (q *QueryServer) SmartPool(ctx context.Context, smartPoolID string) (*types.SmartPool, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sp := q.keeper.GetSmartPool(sdkCtx, smartPoolID)
	if sp == nil {
		return nil, types.ErrSmartPoolNotFound
	}
	return sp, nil
}

// SmartPools returns all smart pools
func (q *QueryServer) SmartPools(ctx context.Context, offset, limit uint64) ([]*types.SmartPool, uint64, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	allPools := q.keeper.GetAllSmartPools(sdkCtx)

	total := uint64(len(allPools))

	// Apply pagination
	if offset >= total {
		return []*types.SmartPool{}, total, nil
	}

	end := offset + limit
	if end > total || limit == 0 {
		end = total
	}

	return allPools[offset:end], total, nil
}

// SmartPoolsByController returns smart pools controlled by an address
func (q *QueryServer) SmartPoolsByController(ctx context.Context, controller string) ([]*types.SmartPool, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	var pools []*types.SmartPool
	for _, sp := range q.keeper.GetAllSmartPools(sdkCtx) {
		if sp.Controller == controller {
			pools = append(pools, sp)
		}
	}
	return pools, nil
}

// CurrentWeights returns the live engine weights of a smart pool. During a
// gradual update these lag the interpolation by at most one block.
func (q *QueryServer) CurrentWeights(ctx context.Context, smartPoolID string) (map[string]math.LegacyDec, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	_, pool, err := q.keeper.loadCreatedPool(sdkCtx, smartPoolID)
	if err != nil {
		return nil, err
	}

	weights := make(map[string]math.LegacyDec, pool.NumTokens())
	for _, rec := range pool.Records {
		weights[rec.Denom] = rec.Weight
	}
	return weights, nil
}

// ActiveGradualUpdates returns the smart pools with a weight transition in
// flight.
func (q *QueryServer) ActiveGradualUpdates(ctx context.Context) ([]*types.SmartPool, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	var pools []*types.SmartPool
	for _, sp := range q.keeper.GetAllSmartPools(sdkCtx) {
		if sp.HasGradualUpdate() {
			pools = append(pools, sp)
		}
	}
	return pools, nil
}
