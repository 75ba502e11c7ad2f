package types

import (
	"context"
)

// MsgServer defines the smartpool module's gRPC message service
type MsgServer interface {
	CreateSmartPool(context.Context, *MsgCreateSmartPool) (*MsgCreateSmartPoolResponse, error)
	CreatePool(context.Context, *MsgCreatePool) (*MsgCreatePoolResponse, error)
	SetSwapFee(context.Context, *MsgSetSwapFee) (*MsgSetSwapFeeResponse, error)
	SetPublicSwap(context.Context, *MsgSetPublicSwap) (*MsgSetPublicSwapResponse, error)
	SetController(context.Context, *MsgSetController) (*MsgSetControllerResponse, error)
	SetCap(context.Context, *MsgSetCap) (*MsgSetCapResponse, error)
	UpdateWeight(context.Context, *MsgUpdateWeight) (*MsgUpdateWeightResponse, error)
	UpdateWeightsGradually(context.Context, *MsgUpdateWeightsGradually) (*MsgUpdateWeightsGraduallyResponse, error)
	PokeWeights(context.Context, *MsgPokeWeights) (*MsgPokeWeightsResponse, error)
	CommitAddToken(context.Context, *MsgCommitAddToken) (*MsgCommitAddTokenResponse, error)
	ApplyAddToken(context.Context, *MsgApplyAddToken) (*MsgApplyAddTokenResponse, error)
	RemoveToken(context.Context, *MsgRemoveToken) (*MsgRemoveTokenResponse, error)
	WhitelistLP(context.Context, *MsgWhitelistLP) (*MsgWhitelistLPResponse, error)
	RemoveWhitelistedLP(context.Context, *MsgRemoveWhitelistedLP) (*MsgRemoveWhitelistedLPResponse, error)
	JoinPool(context.Context, *MsgJoinPool) (*MsgJoinPoolResponse, error)
	ExitPool(context.Context, *MsgExitPool) (*MsgExitPoolResponse, error)
	JoinswapExternAmountIn(context.Context, *MsgJoinswapExternAmountIn) (*MsgJoinswapExternAmountInResponse, error)
	JoinswapPoolAmountOut(context.Context, *MsgJoinswapPoolAmountOut) (*MsgJoinswapPoolAmountOutResponse, error)
	ExitswapPoolAmountIn(context.Context, *MsgExitswapPoolAmountIn) (*MsgExitswapPoolAmountInResponse, error)
	ExitswapExternAmountOut(context.Context, *MsgExitswapExternAmountOut) (*MsgExitswapExternAmountOutResponse, error)
	RunActionBatch(context.Context, *MsgRunActionBatch) (*MsgRunActionBatchResponse, error)
}

// RegisterMsgServer registers the MsgServer to the configurator's MsgServer
func RegisterMsgServer(s interface{}, srv MsgServer) {
	// This is a placeholder - in production, this would use gRPC registration
	// For now, the messages are handled through the module's handler
}
