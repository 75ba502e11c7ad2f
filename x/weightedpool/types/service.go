package types

import (
	"context"
)

// MsgServer defines the weightedpool module's gRPC message service
type MsgServer interface {
	CreatePool(context.Context, *MsgCreatePool) (*MsgCreatePoolResponse, error)
	Bind(context.Context, *MsgBind) (*MsgBindResponse, error)
	Rebind(context.Context, *MsgRebind) (*MsgRebindResponse, error)
	Unbind(context.Context, *MsgUnbind) (*MsgUnbindResponse, error)
	SetSwapFee(context.Context, *MsgSetSwapFee) (*MsgSetSwapFeeResponse, error)
	SetPublicSwap(context.Context, *MsgSetPublicSwap) (*MsgSetPublicSwapResponse, error)
	SetController(context.Context, *MsgSetController) (*MsgSetControllerResponse, error)
	FinalizePool(context.Context, *MsgFinalizePool) (*MsgFinalizePoolResponse, error)
	JoinPool(context.Context, *MsgJoinPool) (*MsgJoinPoolResponse, error)
	ExitPool(context.Context, *MsgExitPool) (*MsgExitPoolResponse, error)
	SwapExactAmountIn(context.Context, *MsgSwapExactAmountIn) (*MsgSwapExactAmountInResponse, error)
	SwapExactAmountOut(context.Context, *MsgSwapExactAmountOut) (*MsgSwapExactAmountOutResponse, error)
	JoinswapExternAmountIn(context.Context, *MsgJoinswapExternAmountIn) (*MsgJoinswapExternAmountInResponse, error)
	JoinswapPoolAmountOut(context.Context, *MsgJoinswapPoolAmountOut) (*MsgJoinswapPoolAmountOutResponse, error)
	ExitswapPoolAmountIn(context.Context, *MsgExitswapPoolAmountIn) (*MsgExitswapPoolAmountInResponse, error)
	ExitswapExternAmountOut(context.Context, *MsgExitswapExternAmountOut) (*MsgExitswapExternAmountOutResponse, error)
	TransferShares(context.Context, *MsgTransferShares) (*MsgTransferSharesResponse, error)
	ApproveShares(context.Context, *MsgApproveShares) (*MsgApproveSharesResponse, error)
	TransferSharesFrom(context.Context, *MsgTransferSharesFrom) (*MsgTransferSharesFromResponse, error)
}

// RegisterMsgServer registers the MsgServer to the configurator's MsgServer
func RegisterMsgServer(s interface{}, srv MsgServer) {
	// This is a placeholder - in production, this would use gRPC registration
	// For now, the messages are handled through the module's handler
}
