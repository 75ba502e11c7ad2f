package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/openalpha/amm-dex/x/smartpool/types"
)

// MsgServer defines the smartpool MsgServer
type MsgServer struct {
	keeper *Keeper
}

// NewMsgServerImpl creates a new MsgServer instance
func NewMsgServerImpl(keeper *Keeper) *MsgServer {
	return &MsgServer{keeper: keeper}
}

// optionalDec parses a bound that may be omitted. An empty string comes back
// as the nil dec, which the keeper treats as unbounded.
func optionalDec(s string) (math.LegacyDec, error) {
	if s == "" {
		return math.LegacyDec{}, nil
	}
	return math.LegacyNewDecFromStr(s)
}

// parseDecSlice parses a list of decimal strings.
func parseDecSlice(in []string) ([]math.LegacyDec, error) {
	out := make([]math.LegacyDec, len(in))
	for i, s := range in {
		d, err := math.LegacyNewDecFromStr(s)
		if err != nil {
			return nil, err
		}
		out[i] = d
	}
	return out, nil
}

// decMapStrings renders a per-denom decimal map for a message response.
func decMapStrings(in map[string]math.LegacyDec) map[string]string {
	out := make(map[string]string, len(in))
	for denom, d := range in {
		out[denom] = d.String()
	}
	return out
}

// CreateSmartPool handles MsgCreateSmartPool
func (m *MsgServer) CreateSmartPool(goCtx context.Context, msg *types.MsgCreateSmartPool) (*types.MsgCreateSmartPoolResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	balances, err := parseDecSlice(msg.Balances)
	if err != nil {
		return nil, err
	}
	weights, err := parseDecSlice(msg.Weights)
	if err != nil {
		return nil, err
	}
	swapFee, err := math.LegacyNewDecFromStr(msg.SwapFee)
	if err != nil {
		return nil, err
	}

	sp, err := m.keeper.CreateSmartPool(ctx, msg.Creator, msg.Denoms, balances, weights, swapFee, msg.Rights, msg.MinimumWeightChangeBlockPeriod, msg.AddTokenTimeLockInBlocks)
	if err != nil {
		return nil, err
	}

	return &types.MsgCreateSmartPoolResponse{SmartPoolID: sp.SmartPoolID}, nil
}

// CreatePool handles MsgCreatePool
func (m *MsgServer) CreatePool(goCtx context.Context, msg *types.MsgCreatePool) (*types.MsgCreatePoolResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	initialSupply, err := math.LegacyNewDecFromStr(msg.InitialSupply)
	if err != nil {
		return nil, err
	}

	poolID, err := m.keeper.CreatePool(ctx, msg.Controller, msg.SmartPoolID, initialSupply, msg.MinimumWeightChangeBlockPeriod, msg.AddTokenTimeLockInBlocks)
	if err != nil {
		return nil, err
	}

	return &types.MsgCreatePoolResponse{
		PoolID:       poolID,
		SharesMinted: initialSupply.String(),
	}, nil
}

// SetSwapFee handles MsgSetSwapFee
func (m *MsgServer) SetSwapFee(goCtx context.Context, msg *types.MsgSetSwapFee) (*types.MsgSetSwapFeeResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	swapFee, err := math.LegacyNewDecFromStr(msg.SwapFee)
	if err != nil {
		return nil, err
	}

	if err := m.keeper.SetSwapFee(ctx, msg.Controller, msg.SmartPoolID, swapFee); err != nil {
		return nil, err
	}

	return &types.MsgSetSwapFeeResponse{SwapFee: swapFee.String()}, nil
}

// SetPublicSwap handles MsgSetPublicSwap
func (m *MsgServer) SetPublicSwap(goCtx context.Context, msg *types.MsgSetPublicSwap) (*types.MsgSetPublicSwapResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	if err := m.keeper.SetPublicSwap(ctx, msg.Controller, msg.SmartPoolID, msg.Public); err != nil {
		return nil, err
	}

	return &types.MsgSetPublicSwapResponse{Public: msg.Public}, nil
}

// SetController handles MsgSetController
func (m *MsgServer) SetController(goCtx context.Context, msg *types.MsgSetController) (*types.MsgSetControllerResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	if err := m.keeper.SetController(ctx, msg.Controller, msg.SmartPoolID, msg.NewController); err != nil {
		return nil, err
	}

	return &types.MsgSetControllerResponse{Controller: msg.NewController}, nil
}

// SetCap handles MsgSetCap
func (m *MsgServer) SetCap(goCtx context.Context, msg *types.MsgSetCap) (*types.MsgSetCapResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	limit, err := math.LegacyNewDecFromStr(msg.Cap)
	if err != nil {
		return nil, err
	}

	if err := m.keeper.SetCap(ctx, msg.Controller, msg.SmartPoolID, limit); err != nil {
		return nil, err
	}

	return &types.MsgSetCapResponse{Cap: limit.String()}, nil
}

// UpdateWeight handles MsgUpdateWeight
func (m *MsgServer) UpdateWeight(goCtx context.Context, msg *types.MsgUpdateWeight) (*types.MsgUpdateWeightResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	newWeight, err := math.LegacyNewDecFromStr(msg.NewWeight)
	if err != nil {
		return nil, err
	}

	totalWeight, poolSupply, err := m.keeper.UpdateWeight(ctx, msg.Controller, msg.SmartPoolID, msg.Denom, newWeight)
	if err != nil {
		return nil, err
	}

	return &types.MsgUpdateWeightResponse{
		TotalWeight: totalWeight.String(),
		PoolSupply:  poolSupply.String(),
	}, nil
}

// UpdateWeightsGradually handles MsgUpdateWeightsGradually
func (m *MsgServer) UpdateWeightsGradually(goCtx context.Context, msg *types.MsgUpdateWeightsGradually) (*types.MsgUpdateWeightsGraduallyResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	newWeights, err := parseDecSlice(msg.NewWeights)
	if err != nil {
		return nil, err
	}

	startBlock, endBlock, err := m.keeper.UpdateWeightsGradually(ctx, msg.Controller, msg.SmartPoolID, newWeights, msg.StartBlock, msg.EndBlock)
	if err != nil {
		return nil, err
	}

	return &types.MsgUpdateWeightsGraduallyResponse{
		StartBlock: startBlock,
		EndBlock:   endBlock,
	}, nil
}

// PokeWeights handles MsgPokeWeights
func (m *MsgServer) PokeWeights(goCtx context.Context, msg *types.MsgPokeWeights) (*types.MsgPokeWeightsResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	weights, err := m.keeper.PokeWeights(ctx, msg.SmartPoolID)
	if err != nil {
		return nil, err
	}

	return &types.MsgPokeWeightsResponse{Weights: decMapStrings(weights)}, nil
}

// CommitAddToken handles MsgCommitAddToken
func (m *MsgServer) CommitAddToken(goCtx context.Context, msg *types.MsgCommitAddToken) (*types.MsgCommitAddTokenResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	balance, err := math.LegacyNewDecFromStr(msg.Balance)
	if err != nil {
		return nil, err
	}
	weight, err := math.LegacyNewDecFromStr(msg.Weight)
	if err != nil {
		return nil, err
	}

	commitBlock, unlockBlock, err := m.keeper.CommitAddToken(ctx, msg.Controller, msg.SmartPoolID, msg.Denom, balance, weight)
	if err != nil {
		return nil, err
	}

	return &types.MsgCommitAddTokenResponse{
		CommitBlock: commitBlock,
		UnlockBlock: unlockBlock,
	}, nil
}

// ApplyAddToken handles MsgApplyAddToken
func (m *MsgServer) ApplyAddToken(goCtx context.Context, msg *types.MsgApplyAddToken) (*types.MsgApplyAddTokenResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	denom, sharesMinted, err := m.keeper.ApplyAddToken(ctx, msg.Controller, msg.SmartPoolID)
	if err != nil {
		return nil, err
	}

	return &types.MsgApplyAddTokenResponse{
		Denom:        denom,
		SharesMinted: sharesMinted.String(),
	}, nil
}

// RemoveToken handles MsgRemoveToken
func (m *MsgServer) RemoveToken(goCtx context.Context, msg *types.MsgRemoveToken) (*types.MsgRemoveTokenResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	sharesBurned, balanceReturned, err := m.keeper.RemoveToken(ctx, msg.Controller, msg.SmartPoolID, msg.Denom)
	if err != nil {
		return nil, err
	}

	return &types.MsgRemoveTokenResponse{
		SharesBurned:    sharesBurned.String(),
		BalanceReturned: balanceReturned.String(),
	}, nil
}

// WhitelistLP handles MsgWhitelistLP
func (m *MsgServer) WhitelistLP(goCtx context.Context, msg *types.MsgWhitelistLP) (*types.MsgWhitelistLPResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	numWhitelisted, err := m.keeper.WhitelistLiquidityProvider(ctx, msg.Controller, msg.SmartPoolID, msg.Provider)
	if err != nil {
		return nil, err
	}

	return &types.MsgWhitelistLPResponse{NumWhitelisted: numWhitelisted}, nil
}

// RemoveWhitelistedLP handles MsgRemoveWhitelistedLP
func (m *MsgServer) RemoveWhitelistedLP(goCtx context.Context, msg *types.MsgRemoveWhitelistedLP) (*types.MsgRemoveWhitelistedLPResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	numWhitelisted, err := m.keeper.RemoveWhitelistedLiquidityProvider(ctx, msg.Controller, msg.SmartPoolID, msg.Provider)
	if err != nil {
		return nil, err
	}

	return &types.MsgRemoveWhitelistedLPResponse{NumWhitelisted: numWhitelisted}, nil
}

// JoinPool handles MsgJoinPool
func (m *MsgServer) JoinPool(goCtx context.Context, msg *types.MsgJoinPool) (*types.MsgJoinPoolResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	poolAmountOut, err := math.LegacyNewDecFromStr(msg.PoolAmountOut)
	if err != nil {
		return nil, err
	}
	maxAmountsIn, err := parseDecMap(msg.MaxAmountsIn)
	if err != nil {
		return nil, err
	}

	amountsIn, err := m.keeper.JoinPool(ctx, msg.Sender, msg.SmartPoolID, poolAmountOut, maxAmountsIn)
	if err != nil {
		return nil, err
	}

	return &types.MsgJoinPoolResponse{
		SharesMinted: poolAmountOut.String(),
		AmountsIn:    decMapStrings(amountsIn),
	}, nil
}

// ExitPool handles MsgExitPool
func (m *MsgServer) ExitPool(goCtx context.Context, msg *types.MsgExitPool) (*types.MsgExitPoolResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	poolAmountIn, err := math.LegacyNewDecFromStr(msg.PoolAmountIn)
	if err != nil {
		return nil, err
	}
	minAmountsOut, err := parseDecMap(msg.MinAmountsOut)
	if err != nil {
		return nil, err
	}

	amountsOut, err := m.keeper.ExitPool(ctx, msg.Sender, msg.SmartPoolID, poolAmountIn, minAmountsOut)
	if err != nil {
		return nil, err
	}

	return &types.MsgExitPoolResponse{
		SharesBurned: poolAmountIn.String(),
		AmountsOut:   decMapStrings(amountsOut),
	}, nil
}

// JoinswapExternAmountIn handles MsgJoinswapExternAmountIn
func (m *MsgServer) JoinswapExternAmountIn(goCtx context.Context, msg *types.MsgJoinswapExternAmountIn) (*types.MsgJoinswapExternAmountInResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	amountIn, err := math.LegacyNewDecFromStr(msg.AmountIn)
	if err != nil {
		return nil, err
	}
	minPoolAmountOut, err := optionalDec(msg.MinPoolAmountOut)
	if err != nil {
		return nil, err
	}

	poolAmountOut, err := m.keeper.JoinswapExternAmountIn(ctx, msg.Sender, msg.SmartPoolID, msg.DenomIn, amountIn, minPoolAmountOut)
	if err != nil {
		return nil, err
	}

	return &types.MsgJoinswapExternAmountInResponse{PoolAmountOut: poolAmountOut.String()}, nil
}

// JoinswapPoolAmountOut handles MsgJoinswapPoolAmountOut
func (m *MsgServer) JoinswapPoolAmountOut(goCtx context.Context, msg *types.MsgJoinswapPoolAmountOut) (*types.MsgJoinswapPoolAmountOutResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	poolAmountOut, err := math.LegacyNewDecFromStr(msg.PoolAmountOut)
	if err != nil {
		return nil, err
	}
	maxAmountIn, err := optionalDec(msg.MaxAmountIn)
	if err != nil {
		return nil, err
	}

	amountIn, err := m.keeper.JoinswapPoolAmountOut(ctx, msg.Sender, msg.SmartPoolID, msg.DenomIn, poolAmountOut, maxAmountIn)
	if err != nil {
		return nil, err
	}

	return &types.MsgJoinswapPoolAmountOutResponse{AmountIn: amountIn.String()}, nil
}

// ExitswapPoolAmountIn handles MsgExitswapPoolAmountIn
func (m *MsgServer) ExitswapPoolAmountIn(goCtx context.Context, msg *types.MsgExitswapPoolAmountIn) (*types.MsgExitswapPoolAmountInResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	poolAmountIn, err := math.LegacyNewDecFromStr(msg.PoolAmountIn)
	if err != nil {
		return nil, err
	}
	minAmountOut, err := optionalDec(msg.MinAmountOut)
	if err != nil {
		return nil, err
	}

	amountOut, err := m.keeper.ExitswapPoolAmountIn(ctx, msg.Sender, msg.SmartPoolID, msg.DenomOut, poolAmountIn, minAmountOut)
	if err != nil {
		return nil, err
	}

	return &types.MsgExitswapPoolAmountInResponse{AmountOut: amountOut.String()}, nil
}

// ExitswapExternAmountOut handles MsgExitswapExternAmountOut
func (m *MsgServer) ExitswapExternAmountOut(goCtx context.Context, msg *types.MsgExitswapExternAmountOut) (*types.MsgExitswapExternAmountOutResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	amountOut, err := math.LegacyNewDecFromStr(msg.AmountOut)
	if err != nil {
		return nil, err
	}
	maxPoolAmountIn, err := optionalDec(msg.MaxPoolAmountIn)
	if err != nil {
		return nil, err
	}

	poolAmountIn, err := m.keeper.ExitswapExternAmountOut(ctx, msg.Sender, msg.SmartPoolID, msg.DenomOut, amountOut, maxPoolAmountIn)
	if err != nil {
		return nil, err
	}

	return &types.MsgExitswapExternAmountOutResponse{PoolAmountIn: poolAmountIn.String()}, nil
}

// RunActionBatch handles MsgRunActionBatch
func (m *MsgServer) RunActionBatch(goCtx context.Context, msg *types.MsgRunActionBatch) (*types.MsgRunActionBatchResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	batchID, stepsCompleted, err := m.keeper.RunActionBatch(ctx, msg.Controller, msg.SmartPoolID, msg.Steps)
	if err != nil {
		return nil, err
	}

	return &types.MsgRunActionBatchResponse{
		BatchID:        batchID,
		StepsCompleted: stepsCompleted,
	}, nil
}
