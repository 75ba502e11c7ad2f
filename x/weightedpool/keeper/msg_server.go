package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/openalpha/amm-dex/x/weightedpool/types"
)

// MsgServer defines the weightedpool MsgServer
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

// CreatePool handles MsgCreatePool
func (m *MsgServer) CreatePool(goCtx context.Context, msg *types.MsgCreatePool) (*types.MsgCreatePoolResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	pool, err := m.keeper.CreatePool(ctx, msg.Creator)
	if err != nil {
		return nil, err
	}

	return &types.MsgCreatePoolResponse{PoolID: pool.PoolID}, nil
}

// Bind handles MsgBind
func (m *MsgServer) Bind(goCtx context.Context, msg *types.MsgBind) (*types.MsgBindResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	balance, err := math.LegacyNewDecFromStr(msg.Balance)
	if err != nil {
		return nil, err
	}
	weight, err := math.LegacyNewDecFromStr(msg.Weight)
	if err != nil {
		return nil, err
	}

	if err := m.keeper.Bind(ctx, msg.Controller, msg.PoolID, msg.Denom, balance, weight); err != nil {
		return nil, err
	}

	pool := m.keeper.GetPool(ctx, msg.PoolID)
	return &types.MsgBindResponse{
		TotalWeight: pool.TotalWeight().String(),
		NumTokens:   pool.NumTokens(),
	}, nil
}

// Rebind handles MsgRebind
func (m *MsgServer) Rebind(goCtx context.Context, msg *types.MsgRebind) (*types.MsgRebindResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	balance, err := math.LegacyNewDecFromStr(msg.Balance)
	if err != nil {
		return nil, err
	}
	weight, err := math.LegacyNewDecFromStr(msg.Weight)
	if err != nil {
		return nil, err
	}

	if err := m.keeper.Rebind(ctx, msg.Controller, msg.PoolID, msg.Denom, balance, weight); err != nil {
		return nil, err
	}

	pool := m.keeper.GetPool(ctx, msg.PoolID)
	return &types.MsgRebindResponse{TotalWeight: pool.TotalWeight().String()}, nil
}

// Unbind handles MsgUnbind
func (m *MsgServer) Unbind(goCtx context.Context, msg *types.MsgUnbind) (*types.MsgUnbindResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	returned, err := m.keeper.Unbind(ctx, msg.Controller, msg.PoolID, msg.Denom)
	if err != nil {
		return nil, err
	}

	pool := m.keeper.GetPool(ctx, msg.PoolID)
	return &types.MsgUnbindResponse{
		BalanceReturned: returned.String(),
		NumTokens:       pool.NumTokens(),
	}, nil
}

// SetSwapFee handles MsgSetSwapFee
func (m *MsgServer) SetSwapFee(goCtx context.Context, msg *types.MsgSetSwapFee) (*types.MsgSetSwapFeeResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	swapFee, err := math.LegacyNewDecFromStr(msg.SwapFee)
	if err != nil {
		return nil, err
	}

	if err := m.keeper.SetSwapFee(ctx, msg.Controller, msg.PoolID, swapFee); err != nil {
		return nil, err
	}

	return &types.MsgSetSwapFeeResponse{SwapFee: swapFee.String()}, nil
}

// SetPublicSwap handles MsgSetPublicSwap
func (m *MsgServer) SetPublicSwap(goCtx context.Context, msg *types.MsgSetPublicSwap) (*types.MsgSetPublicSwapResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	if err := m.keeper.SetPublicSwap(ctx, msg.Controller, msg.PoolID, msg.Public); err != nil {
		return nil, err
	}

	return &types.MsgSetPublicSwapResponse{Public: msg.Public}, nil
}

// SetController handles MsgSetController
func (m *MsgServer) SetController(goCtx context.Context, msg *types.MsgSetController) (*types.MsgSetControllerResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	if err := m.keeper.SetController(ctx, msg.Controller, msg.PoolID, msg.NewController); err != nil {
		return nil, err
	}

	return &types.MsgSetControllerResponse{Controller: msg.NewController}, nil
}

// FinalizePool handles MsgFinalizePool
func (m *MsgServer) FinalizePool(goCtx context.Context, msg *types.MsgFinalizePool) (*types.MsgFinalizePoolResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	minted, err := m.keeper.FinalizePool(ctx, msg.Controller, msg.PoolID)
	if err != nil {
		return nil, err
	}

	return &types.MsgFinalizePoolResponse{SharesMinted: minted.String()}, nil
}

// JoinPool handles MsgJoinPool
func (m *MsgServer) JoinPool(goCtx context.Context, msg *types.MsgJoinPool) (*types.MsgJoinPoolResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	poolAmountOut, err := math.LegacyNewDecFromStr(msg.PoolAmountOut)
	if err != nil {
		return nil, err
	}
	maxAmountsIn := make(map[string]math.LegacyDec, len(msg.MaxAmountsIn))
	for denom, s := range msg.MaxAmountsIn {
		limit, err := math.LegacyNewDecFromStr(s)
		if err != nil {
			return nil, err
		}
		maxAmountsIn[denom] = limit
	}

	amountsIn, err := m.keeper.JoinPool(ctx, msg.Sender, msg.PoolID, poolAmountOut, maxAmountsIn)
	if err != nil {
		return nil, err
	}

	resp := &types.MsgJoinPoolResponse{
		SharesMinted: poolAmountOut.String(),
		AmountsIn:    make(map[string]string, len(amountsIn)),
	}
	for denom, amount := range amountsIn {
		resp.AmountsIn[denom] = amount.String()
	}
	return resp, nil
}

// ExitPool handles MsgExitPool
func (m *MsgServer) ExitPool(goCtx context.Context, msg *types.MsgExitPool) (*types.MsgExitPoolResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	poolAmountIn, err := math.LegacyNewDecFromStr(msg.PoolAmountIn)
	if err != nil {
		return nil, err
	}
	minAmountsOut := make(map[string]math.LegacyDec, len(msg.MinAmountsOut))
	for denom, s := range msg.MinAmountsOut {
		floor, err := math.LegacyNewDecFromStr(s)
		if err != nil {
			return nil, err
		}
		minAmountsOut[denom] = floor
	}

	amountsOut, err := m.keeper.ExitPool(ctx, msg.Sender, msg.PoolID, poolAmountIn, minAmountsOut)
	if err != nil {
		return nil, err
	}

	resp := &types.MsgExitPoolResponse{
		SharesBurned: poolAmountIn.String(),
		AmountsOut:   make(map[string]string, len(amountsOut)),
	}
	for denom, amount := range amountsOut {
		resp.AmountsOut[denom] = amount.String()
	}
	return resp, nil
}

// SwapExactAmountIn handles MsgSwapExactAmountIn
func (m *MsgServer) SwapExactAmountIn(goCtx context.Context, msg *types.MsgSwapExactAmountIn) (*types.MsgSwapExactAmountInResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	amountIn, err := math.LegacyNewDecFromStr(msg.AmountIn)
	if err != nil {
		return nil, err
	}
	minAmountOut, err := optionalDec(msg.MinAmountOut)
	if err != nil {
		return nil, err
	}
	maxPrice, err := optionalDec(msg.MaxPrice)
	if err != nil {
		return nil, err
	}

	amountOut, spotPriceAfter, err := m.keeper.SwapExactAmountIn(ctx, msg.Sender, msg.PoolID, msg.DenomIn, amountIn, msg.DenomOut, minAmountOut, maxPrice)
	if err != nil {
		return nil, err
	}

	return &types.MsgSwapExactAmountInResponse{
		AmountOut:      amountOut.String(),
		SpotPriceAfter: spotPriceAfter.String(),
	}, nil
}

// SwapExactAmountOut handles MsgSwapExactAmountOut
func (m *MsgServer) SwapExactAmountOut(goCtx context.Context, msg *types.MsgSwapExactAmountOut) (*types.MsgSwapExactAmountOutResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	amountOut, err := math.LegacyNewDecFromStr(msg.AmountOut)
	if err != nil {
		return nil, err
	}
	maxAmountIn, err := optionalDec(msg.MaxAmountIn)
	if err != nil {
		return nil, err
	}
	maxPrice, err := optionalDec(msg.MaxPrice)
	if err != nil {
		return nil, err
	}

	amountIn, spotPriceAfter, err := m.keeper.SwapExactAmountOut(ctx, msg.Sender, msg.PoolID, msg.DenomIn, maxAmountIn, msg.DenomOut, amountOut, maxPrice)
	if err != nil {
		return nil, err
	}

	return &types.MsgSwapExactAmountOutResponse{
		AmountIn:       amountIn.String(),
		SpotPriceAfter: spotPriceAfter.String(),
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

	poolAmountOut, err := m.keeper.JoinswapExternAmountIn(ctx, msg.Sender, msg.PoolID, msg.DenomIn, amountIn, minPoolAmountOut)
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

	amountIn, err := m.keeper.JoinswapPoolAmountOut(ctx, msg.Sender, msg.PoolID, msg.DenomIn, poolAmountOut, maxAmountIn)
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

	amountOut, err := m.keeper.ExitswapPoolAmountIn(ctx, msg.Sender, msg.PoolID, msg.DenomOut, poolAmountIn, minAmountOut)
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

	poolAmountIn, err := m.keeper.ExitswapExternAmountOut(ctx, msg.Sender, msg.PoolID, msg.DenomOut, amountOut, maxPoolAmountIn)
	if err != nil {
		return nil, err
	}

	return &types.MsgExitswapExternAmountOutResponse{PoolAmountIn: poolAmountIn.String()}, nil
}

// TransferShares handles MsgTransferShares
func (m *MsgServer) TransferShares(goCtx context.Context, msg *types.MsgTransferShares) (*types.MsgTransferSharesResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	amount, err := math.LegacyNewDecFromStr(msg.Amount)
	if err != nil {
		return nil, err
	}

	remaining, err := m.keeper.TransferShares(ctx, msg.Sender, msg.PoolID, msg.Recipient, amount)
	if err != nil {
		return nil, err
	}

	return &types.MsgTransferSharesResponse{SenderBalance: remaining.String()}, nil
}

// ApproveShares handles MsgApproveShares
func (m *MsgServer) ApproveShares(goCtx context.Context, msg *types.MsgApproveShares) (*types.MsgApproveSharesResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	amount, err := math.LegacyNewDecFromStr(msg.Amount)
	if err != nil {
		return nil, err
	}

	if err := m.keeper.ApproveShares(ctx, msg.Sender, msg.PoolID, msg.Spender, amount); err != nil {
		return nil, err
	}

	return &types.MsgApproveSharesResponse{Allowance: amount.String()}, nil
}

// TransferSharesFrom handles MsgTransferSharesFrom
func (m *MsgServer) TransferSharesFrom(goCtx context.Context, msg *types.MsgTransferSharesFrom) (*types.MsgTransferSharesFromResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	amount, err := math.LegacyNewDecFromStr(msg.Amount)
	if err != nil {
		return nil, err
	}

	remaining, err := m.keeper.TransferSharesFrom(ctx, msg.Spender, msg.PoolID, msg.From, msg.To, amount)
	if err != nil {
		return nil, err
	}

	return &types.MsgTransferSharesFromResponse{Allowance: remaining.String()}, nil
}
