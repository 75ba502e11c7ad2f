package types

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Message types
const (
	TypeMsgCreatePool              = "create_pool"
	TypeMsgBind                    = "bind"
	TypeMsgRebind                  = "rebind"
	TypeMsgUnbind                  = "unbind"
	TypeMsgSetSwapFee              = "set_swap_fee"
	TypeMsgSetPublicSwap           = "set_public_swap"
	TypeMsgSetController           = "set_controller"
	TypeMsgFinalizePool            = "finalize_pool"
	TypeMsgJoinPool                = "join_pool"
	TypeMsgExitPool                = "exit_pool"
	TypeMsgSwapExactAmountIn       = "swap_exact_amount_in"
	TypeMsgSwapExactAmountOut      = "swap_exact_amount_out"
	TypeMsgJoinswapExternAmountIn  = "joinswap_extern_amount_in"
	TypeMsgJoinswapPoolAmountOut   = "joinswap_pool_amount_out"
	TypeMsgExitswapPoolAmountIn    = "exitswap_pool_amount_in"
	TypeMsgExitswapExternAmountOut = "exitswap_extern_amount_out"
	TypeMsgTransferShares          = "transfer_shares"
	TypeMsgApproveShares           = "approve_shares"
	TypeMsgTransferSharesFrom      = "transfer_shares_from"
)

// MsgCreatePool defines the CreatePool message
type MsgCreatePool struct {
	Creator string `json:"creator"`
}

// Route implements sdk.Msg
func (msg MsgCreatePool) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgCreatePool) Type() string { return TypeMsgCreatePool }

// ValidateBasic implements sdk.Msg
func (msg MsgCreatePool) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Creator); err != nil {
		return err
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgCreatePool) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Creator)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgCreatePool) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgCreatePool) Reset() { *msg = MsgCreatePool{} }

// String implements proto.Message
func (msg MsgCreatePool) String() string {
	return fmt.Sprintf("MsgCreatePool{Creator: %s}", msg.Creator)
}

// MsgCreatePoolResponse defines the CreatePool response
type MsgCreatePoolResponse struct {
	PoolID string `json:"pool_id"`
}

// MsgBind defines the Bind message
type MsgBind struct {
	Controller string `json:"controller"`
	PoolID     string `json:"pool_id"`
	Denom      string `json:"denom"`
	Balance    string `json:"balance"`
	Weight     string `json:"weight"`
}

// Route implements sdk.Msg
func (msg MsgBind) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgBind) Type() string { return TypeMsgBind }

// ValidateBasic implements sdk.Msg
func (msg MsgBind) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Controller); err != nil {
		return err
	}
	if msg.PoolID == "" {
		return ErrPoolNotFound
	}
	if msg.Denom == "" {
		return ErrTokenNotBound
	}
	if msg.Balance == "" || msg.Weight == "" {
		return ErrInvalidAmount
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgBind) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Controller)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgBind) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgBind) Reset() { *msg = MsgBind{} }

// String implements proto.Message
func (msg MsgBind) String() string {
	return fmt.Sprintf("MsgBind{Controller: %s, PoolID: %s, Denom: %s, Balance: %s, Weight: %s}",
		msg.Controller, msg.PoolID, msg.Denom, msg.Balance, msg.Weight)
}

// MsgBindResponse defines the Bind response
type MsgBindResponse struct {
	TotalWeight string `json:"total_weight"`
	NumTokens   int    `json:"num_tokens"`
}

// MsgRebind defines the Rebind message
type MsgRebind struct {
	Controller string `json:"controller"`
	PoolID     string `json:"pool_id"`
	Denom      string `json:"denom"`
	Balance    string `json:"balance"`
	Weight     string `json:"weight"`
}

// Route implements sdk.Msg
func (msg MsgRebind) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgRebind) Type() string { return TypeMsgRebind }

// ValidateBasic implements sdk.Msg
func (msg MsgRebind) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Controller); err != nil {
		return err
	}
	if msg.PoolID == "" {
		return ErrPoolNotFound
	}
	if msg.Denom == "" {
		return ErrTokenNotBound
	}
	if msg.Balance == "" || msg.Weight == "" {
		return ErrInvalidAmount
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgRebind) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Controller)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgRebind) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgRebind) Reset() { *msg = MsgRebind{} }

// String implements proto.Message
func (msg MsgRebind) String() string {
	return fmt.Sprintf("MsgRebind{Controller: %s, PoolID: %s, Denom: %s, Balance: %s, Weight: %s}",
		msg.Controller, msg.PoolID, msg.Denom, msg.Balance, msg.Weight)
}

// MsgRebindResponse defines the Rebind response
type MsgRebindResponse struct {
	TotalWeight string `json:"total_weight"`
}

// MsgUnbind defines the Unbind message
type MsgUnbind struct {
	Controller string `json:"controller"`
	PoolID     string `json:"pool_id"`
	Denom      string `json:"denom"`
}

// Route implements sdk.Msg
func (msg MsgUnbind) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgUnbind) Type() string { return TypeMsgUnbind }

// ValidateBasic implements sdk.Msg
func (msg MsgUnbind) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Controller); err != nil {
		return err
	}
	if msg.PoolID == "" {
		return ErrPoolNotFound
	}
	if msg.Denom == "" {
		return ErrTokenNotBound
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgUnbind) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Controller)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgUnbind) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgUnbind) Reset() { *msg = MsgUnbind{} }

// String implements proto.Message
func (msg MsgUnbind) String() string {
	return fmt.Sprintf("MsgUnbind{Controller: %s, PoolID: %s, Denom: %s}", msg.Controller, msg.PoolID, msg.Denom)
}

// MsgUnbindResponse defines the Unbind response
type MsgUnbindResponse struct {
	BalanceReturned string `json:"balance_returned"`
	NumTokens       int    `json:"num_tokens"`
}

// MsgSetSwapFee defines the SetSwapFee message
type MsgSetSwapFee struct {
	Controller string `json:"controller"`
	PoolID     string `json:"pool_id"`
	SwapFee    string `json:"swap_fee"`
}

// Route implements sdk.Msg
func (msg MsgSetSwapFee) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgSetSwapFee) Type() string { return TypeMsgSetSwapFee }

// ValidateBasic implements sdk.Msg
func (msg MsgSetSwapFee) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Controller); err != nil {
		return err
	}
	if msg.PoolID == "" {
		return ErrPoolNotFound
	}
	if msg.SwapFee == "" {
		return ErrSwapFeeOutOfRange
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgSetSwapFee) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Controller)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgSetSwapFee) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgSetSwapFee) Reset() { *msg = MsgSetSwapFee{} }

// String implements proto.Message
func (msg MsgSetSwapFee) String() string {
	return fmt.Sprintf("MsgSetSwapFee{Controller: %s, PoolID: %s, SwapFee: %s}", msg.Controller, msg.PoolID, msg.SwapFee)
}

// MsgSetSwapFeeResponse defines the SetSwapFee response
type MsgSetSwapFeeResponse struct {
	SwapFee string `json:"swap_fee"`
}

// MsgSetPublicSwap defines the SetPublicSwap message
type MsgSetPublicSwap struct {
	Controller string `json:"controller"`
	PoolID     string `json:"pool_id"`
	Public     bool   `json:"public"`
}

// Route implements sdk.Msg
func (msg MsgSetPublicSwap) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgSetPublicSwap) Type() string { return TypeMsgSetPublicSwap }

// ValidateBasic implements sdk.Msg
func (msg MsgSetPublicSwap) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Controller); err != nil {
		return err
	}
	if msg.PoolID == "" {
		return ErrPoolNotFound
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgSetPublicSwap) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Controller)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgSetPublicSwap) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgSetPublicSwap) Reset() { *msg = MsgSetPublicSwap{} }

// String implements proto.Message
func (msg MsgSetPublicSwap) String() string {
	return fmt.Sprintf("MsgSetPublicSwap{Controller: %s, PoolID: %s, Public: %t}", msg.Controller, msg.PoolID, msg.Public)
}

// MsgSetPublicSwapResponse defines the SetPublicSwap response
type MsgSetPublicSwapResponse struct {
	Public bool `json:"public"`
}

// MsgSetController defines the SetController message
type MsgSetController struct {
	Controller    string `json:"controller"`
	PoolID        string `json:"pool_id"`
	NewController string `json:"new_controller"`
}

// Route implements sdk.Msg
func (msg MsgSetController) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgSetController) Type() string { return TypeMsgSetController }

// ValidateBasic implements sdk.Msg
func (msg MsgSetController) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Controller); err != nil {
		return err
	}
	if _, err := sdk.AccAddressFromBech32(msg.NewController); err != nil {
		return err
	}
	if msg.PoolID == "" {
		return ErrPoolNotFound
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgSetController) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Controller)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgSetController) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgSetController) Reset() { *msg = MsgSetController{} }

// String implements proto.Message
func (msg MsgSetController) String() string {
	return fmt.Sprintf("MsgSetController{Controller: %s, PoolID: %s, NewController: %s}",
		msg.Controller, msg.PoolID, msg.NewController)
}

// MsgSetControllerResponse defines the SetController response
type MsgSetControllerResponse struct {
	Controller string `json:"controller"`
}

// MsgFinalizePool defines the FinalizePool message
type MsgFinalizePool struct {
	Controller string `json:"controller"`
	PoolID     string `json:"pool_id"`
}

// Route implements sdk.Msg
func (msg MsgFinalizePool) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgFinalizePool) Type() string { return TypeMsgFinalizePool }

// ValidateBasic implements sdk.Msg
func (msg MsgFinalizePool) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Controller); err != nil {
		return err
	}
	if msg.PoolID == "" {
		return ErrPoolNotFound
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgFinalizePool) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Controller)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgFinalizePool) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgFinalizePool) Reset() { *msg = MsgFinalizePool{} }

// String implements proto.Message
func (msg MsgFinalizePool) String() string {
	return fmt.Sprintf("MsgFinalizePool{Controller: %s, PoolID: %s}", msg.Controller, msg.PoolID)
}

// MsgFinalizePoolResponse defines the FinalizePool response
type MsgFinalizePoolResponse struct {
	SharesMinted string `json:"shares_minted"`
}

// MsgJoinPool defines the JoinPool message
type MsgJoinPool struct {
	Sender        string            `json:"sender"`
	PoolID        string            `json:"pool_id"`
	PoolAmountOut string            `json:"pool_amount_out"`
	MaxAmountsIn  map[string]string `json:"max_amounts_in"`
}

// Route implements sdk.Msg
func (msg MsgJoinPool) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgJoinPool) Type() string { return TypeMsgJoinPool }

// ValidateBasic implements sdk.Msg
func (msg MsgJoinPool) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Sender); err != nil {
		return err
	}
	if msg.PoolID == "" {
		return ErrPoolNotFound
	}
	if msg.PoolAmountOut == "" {
		return ErrInvalidAmount
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgJoinPool) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Sender)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgJoinPool) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgJoinPool) Reset() { *msg = MsgJoinPool{} }

// String implements proto.Message
func (msg MsgJoinPool) String() string {
	return fmt.Sprintf("MsgJoinPool{Sender: %s, PoolID: %s, PoolAmountOut: %s}", msg.Sender, msg.PoolID, msg.PoolAmountOut)
}

// MsgJoinPoolResponse defines the JoinPool response
type MsgJoinPoolResponse struct {
	SharesMinted string            `json:"shares_minted"`
	AmountsIn    map[string]string `json:"amounts_in"`
}

// MsgExitPool defines the ExitPool message
type MsgExitPool struct {
	Sender        string            `json:"sender"`
	PoolID        string            `json:"pool_id"`
	PoolAmountIn  string            `json:"pool_amount_in"`
	MinAmountsOut map[string]string `json:"min_amounts_out"`
}

// Route implements sdk.Msg
func (msg MsgExitPool) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgExitPool) Type() string { return TypeMsgExitPool }

// ValidateBasic implements sdk.Msg
func (msg MsgExitPool) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Sender); err != nil {
		return err
	}
	if msg.PoolID == "" {
		return ErrPoolNotFound
	}
	if msg.PoolAmountIn == "" {
		return ErrInvalidAmount
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgExitPool) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Sender)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgExitPool) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgExitPool) Reset() { *msg = MsgExitPool{} }

// String implements proto.Message
func (msg MsgExitPool) String() string {
	return fmt.Sprintf("MsgExitPool{Sender: %s, PoolID: %s, PoolAmountIn: %s}", msg.Sender, msg.PoolID, msg.PoolAmountIn)
}

// MsgExitPoolResponse defines the ExitPool response
type MsgExitPoolResponse struct {
	SharesBurned string            `json:"shares_burned"`
	AmountsOut   map[string]string `json:"amounts_out"`
}

// MsgSwapExactAmountIn defines the SwapExactAmountIn message
type MsgSwapExactAmountIn struct {
	Sender       string `json:"sender"`
	PoolID       string `json:"pool_id"`
	DenomIn      string `json:"denom_in"`
	AmountIn     string `json:"amount_in"`
	DenomOut     string `json:"denom_out"`
	MinAmountOut string `json:"min_amount_out"`
	MaxPrice     string `json:"max_price"`
}

// Route implements sdk.Msg
func (msg MsgSwapExactAmountIn) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgSwapExactAmountIn) Type() string { return TypeMsgSwapExactAmountIn }

// ValidateBasic implements sdk.Msg
func (msg MsgSwapExactAmountIn) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Sender); err != nil {
		return err
	}
	if msg.PoolID == "" {
		return ErrPoolNotFound
	}
	if msg.DenomIn == "" || msg.DenomOut == "" {
		return ErrTokenNotBound
	}
	if msg.AmountIn == "" {
		return ErrInvalidAmount
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgSwapExactAmountIn) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Sender)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgSwapExactAmountIn) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgSwapExactAmountIn) Reset() { *msg = MsgSwapExactAmountIn{} }

// String implements proto.Message
func (msg MsgSwapExactAmountIn) String() string {
	return fmt.Sprintf("MsgSwapExactAmountIn{Sender: %s, PoolID: %s, %s -> %s, AmountIn: %s}",
		msg.Sender, msg.PoolID, msg.DenomIn, msg.DenomOut, msg.AmountIn)
}

// MsgSwapExactAmountInResponse defines the SwapExactAmountIn response
type MsgSwapExactAmountInResponse struct {
	AmountOut      string `json:"amount_out"`
	SpotPriceAfter string `json:"spot_price_after"`
}

// MsgSwapExactAmountOut defines the SwapExactAmountOut message
type MsgSwapExactAmountOut struct {
	Sender      string `json:"sender"`
	PoolID      string `json:"pool_id"`
	DenomIn     string `json:"denom_in"`
	MaxAmountIn string `json:"max_amount_in"`
	DenomOut    string `json:"denom_out"`
	AmountOut   string `json:"amount_out"`
	MaxPrice    string `json:"max_price"`
}

// Route implements sdk.Msg
func (msg MsgSwapExactAmountOut) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgSwapExactAmountOut) Type() string { return TypeMsgSwapExactAmountOut }

// ValidateBasic implements sdk.Msg
func (msg MsgSwapExactAmountOut) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Sender); err != nil {
		return err
	}
	if msg.PoolID == "" {
		return ErrPoolNotFound
	}
	if msg.DenomIn == "" || msg.DenomOut == "" {
		return ErrTokenNotBound
	}
	if msg.AmountOut == "" {
		return ErrInvalidAmount
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgSwapExactAmountOut) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Sender)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgSwapExactAmountOut) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgSwapExactAmountOut) Reset() { *msg = MsgSwapExactAmountOut{} }

// String implements proto.Message
func (msg MsgSwapExactAmountOut) String() string {
	return fmt.Sprintf("MsgSwapExactAmountOut{Sender: %s, PoolID: %s, %s -> %s, AmountOut: %s}",
		msg.Sender, msg.PoolID, msg.DenomIn, msg.DenomOut, msg.AmountOut)
}

// MsgSwapExactAmountOutResponse defines the SwapExactAmountOut response
type MsgSwapExactAmountOutResponse struct {
	AmountIn       string `json:"amount_in"`
	SpotPriceAfter string `json:"spot_price_after"`
}

// MsgJoinswapExternAmountIn defines the JoinswapExternAmountIn message
type MsgJoinswapExternAmountIn struct {
	Sender           string `json:"sender"`
	PoolID           string `json:"pool_id"`
	DenomIn          string `json:"denom_in"`
	AmountIn         string `json:"amount_in"`
	MinPoolAmountOut string `json:"min_pool_amount_out"`
}

// Route implements sdk.Msg
func (msg MsgJoinswapExternAmountIn) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgJoinswapExternAmountIn) Type() string { return TypeMsgJoinswapExternAmountIn }

// ValidateBasic implements sdk.Msg
func (msg MsgJoinswapExternAmountIn) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Sender); err != nil {
		return err
	}
	if msg.PoolID == "" {
		return ErrPoolNotFound
	}
	if msg.DenomIn == "" {
		return ErrTokenNotBound
	}
	if msg.AmountIn == "" {
		return ErrInvalidAmount
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgJoinswapExternAmountIn) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Sender)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgJoinswapExternAmountIn) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgJoinswapExternAmountIn) Reset() { *msg = MsgJoinswapExternAmountIn{} }

// String implements proto.Message
func (msg MsgJoinswapExternAmountIn) String() string {
	return fmt.Sprintf("MsgJoinswapExternAmountIn{Sender: %s, PoolID: %s, DenomIn: %s, AmountIn: %s}",
		msg.Sender, msg.PoolID, msg.DenomIn, msg.AmountIn)
}

// MsgJoinswapExternAmountInResponse defines the JoinswapExternAmountIn response
type MsgJoinswapExternAmountInResponse struct {
	PoolAmountOut string `json:"pool_amount_out"`
}

// MsgJoinswapPoolAmountOut defines the JoinswapPoolAmountOut message
type MsgJoinswapPoolAmountOut struct {
	Sender        string `json:"sender"`
	PoolID        string `json:"pool_id"`
	DenomIn       string `json:"denom_in"`
	PoolAmountOut string `json:"pool_amount_out"`
	MaxAmountIn   string `json:"max_amount_in"`
}

// Route implements sdk.Msg
func (msg MsgJoinswapPoolAmountOut) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgJoinswapPoolAmountOut) Type() string { return TypeMsgJoinswapPoolAmountOut }

// ValidateBasic implements sdk.Msg
func (msg MsgJoinswapPoolAmountOut) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Sender); err != nil {
		return err
	}
	if msg.PoolID == "" {
		return ErrPoolNotFound
	}
	if msg.DenomIn == "" {
		return ErrTokenNotBound
	}
	if msg.PoolAmountOut == "" {
		return ErrInvalidAmount
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgJoinswapPoolAmountOut) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Sender)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgJoinswapPoolAmountOut) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgJoinswapPoolAmountOut) Reset() { *msg = MsgJoinswapPoolAmountOut{} }

// String implements proto.Message
func (msg MsgJoinswapPoolAmountOut) String() string {
	return fmt.Sprintf("MsgJoinswapPoolAmountOut{Sender: %s, PoolID: %s, DenomIn: %s, PoolAmountOut: %s}",
		msg.Sender, msg.PoolID, msg.DenomIn, msg.PoolAmountOut)
}

// MsgJoinswapPoolAmountOutResponse defines the JoinswapPoolAmountOut response
type MsgJoinswapPoolAmountOutResponse struct {
	AmountIn string `json:"amount_in"`
}

// MsgExitswapPoolAmountIn defines the ExitswapPoolAmountIn message
type MsgExitswapPoolAmountIn struct {
	Sender       string `json:"sender"`
	PoolID       string `json:"pool_id"`
	DenomOut     string `json:"denom_out"`
	PoolAmountIn string `json:"pool_amount_in"`
	MinAmountOut string `json:"min_amount_out"`
}

// Route implements sdk.Msg
func (msg MsgExitswapPoolAmountIn) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgExitswapPoolAmountIn) Type() string { return TypeMsgExitswapPoolAmountIn }

// ValidateBasic implements sdk.Msg
func (msg MsgExitswapPoolAmountIn) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Sender); err != nil {
		return err
	}
	if msg.PoolID == "" {
		return ErrPoolNotFound
	}
	if msg.DenomOut == "" {
		return ErrTokenNotBound
	}
	if msg.PoolAmountIn == "" {
		return ErrInvalidAmount
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgExitswapPoolAmountIn) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Sender)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgExitswapPoolAmountIn) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgExitswapPoolAmountIn) Reset() { *msg = MsgExitswapPoolAmountIn{} }

// String implements proto.Message
func (msg MsgExitswapPoolAmountIn) String() string {
	return fmt.Sprintf("MsgExitswapPoolAmountIn{Sender: %s, PoolID: %s, DenomOut: %s, PoolAmountIn: %s}",
		msg.Sender, msg.PoolID, msg.DenomOut, msg.PoolAmountIn)
}

// MsgExitswapPoolAmountInResponse defines the ExitswapPoolAmountIn response
type MsgExitswapPoolAmountInResponse struct {
	AmountOut string `json:"amount_out"`
}

// MsgExitswapExternAmountOut defines the ExitswapExternAmountOut message
type MsgExitswapExternAmountOut struct {
	Sender          string `json:"sender"`
	PoolID          string `json:"pool_id"`
	DenomOut        string `json:"denom_out"`
	AmountOut       string `json:"amount_out"`
	MaxPoolAmountIn string `json:"max_pool_amount_in"`
}

// Route implements sdk.Msg
func (msg MsgExitswapExternAmountOut) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgExitswapExternAmountOut) Type() string { return TypeMsgExitswapExternAmountOut }

// ValidateBasic implements sdk.Msg
func (msg MsgExitswapExternAmountOut) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Sender); err != nil {
		return err
	}
	if msg.PoolID == "" {
		return ErrPoolNotFound
	}
	if msg.DenomOut == "" {
		return ErrTokenNotBound
	}
	if msg.AmountOut == "" {
		return ErrInvalidAmount
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgExitswapExternAmountOut) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Sender)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgExitswapExternAmountOut) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgExitswapExternAmountOut) Reset() { *msg = MsgExitswapExternAmountOut{} }

// String implements proto.Message
func (msg MsgExitswapExternAmountOut) String() string {
	return fmt.Sprintf("MsgExitswapExternAmountOut{Sender: %s, PoolID: %s, DenomOut: %s, AmountOut: %s}",
		msg.Sender, msg.PoolID, msg.DenomOut, msg.AmountOut)
}

// MsgExitswapExternAmountOutResponse defines the ExitswapExternAmountOut response
type MsgExitswapExternAmountOutResponse struct {
	PoolAmountIn string `json:"pool_amount_in"`
}

// MsgTransferShares defines the TransferShares message
type MsgTransferShares struct {
	Sender    string `json:"sender"`
	PoolID    string `json:"pool_id"`
	Recipient string `json:"recipient"`
	Amount    string `json:"amount"`
}

// Route implements sdk.Msg
func (msg MsgTransferShares) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgTransferShares) Type() string { return TypeMsgTransferShares }

// ValidateBasic implements sdk.Msg
func (msg MsgTransferShares) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Sender); err != nil {
		return err
	}
	if _, err := sdk.AccAddressFromBech32(msg.Recipient); err != nil {
		return err
	}
	if msg.PoolID == "" {
		return ErrPoolNotFound
	}
	if msg.Amount == "" {
		return ErrInvalidAmount
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgTransferShares) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Sender)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgTransferShares) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgTransferShares) Reset() { *msg = MsgTransferShares{} }

// String implements proto.Message
func (msg MsgTransferShares) String() string {
	return fmt.Sprintf("MsgTransferShares{Sender: %s, PoolID: %s, Recipient: %s, Amount: %s}",
		msg.Sender, msg.PoolID, msg.Recipient, msg.Amount)
}

// MsgTransferSharesResponse defines the TransferShares response
type MsgTransferSharesResponse struct {
	SenderBalance string `json:"sender_balance"`
}

// MsgApproveShares defines the ApproveShares message
type MsgApproveShares struct {
	Sender  string `json:"sender"`
	PoolID  string `json:"pool_id"`
	Spender string `json:"spender"`
	Amount  string `json:"amount"`
}

// Route implements sdk.Msg
func (msg MsgApproveShares) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgApproveShares) Type() string { return TypeMsgApproveShares }

// ValidateBasic implements sdk.Msg
func (msg MsgApproveShares) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Sender); err != nil {
		return err
	}
	if _, err := sdk.AccAddressFromBech32(msg.Spender); err != nil {
		return err
	}
	if msg.PoolID == "" {
		return ErrPoolNotFound
	}
	if msg.Amount == "" {
		return ErrInvalidAmount
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgApproveShares) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Sender)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgApproveShares) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgApproveShares) Reset() { *msg = MsgApproveShares{} }

// String implements proto.Message
func (msg MsgApproveShares) String() string {
	return fmt.Sprintf("MsgApproveShares{Sender: %s, PoolID: %s, Spender: %s, Amount: %s}",
		msg.Sender, msg.PoolID, msg.Spender, msg.Amount)
}

// MsgApproveSharesResponse defines the ApproveShares response
type MsgApproveSharesResponse struct {
	Allowance string `json:"allowance"`
}

// MsgTransferSharesFrom defines the TransferSharesFrom message
type MsgTransferSharesFrom struct {
	Spender string `json:"spender"`
	PoolID  string `json:"pool_id"`
	From    string `json:"from"`
	To      string `json:"to"`
	Amount  string `json:"amount"`
}

// Route implements sdk.Msg
func (msg MsgTransferSharesFrom) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgTransferSharesFrom) Type() string { return TypeMsgTransferSharesFrom }

// ValidateBasic implements sdk.Msg
func (msg MsgTransferSharesFrom) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Spender); err != nil {
		return err
	}
	if _, err := sdk.AccAddressFromBech32(msg.From); err != nil {
		return err
	}
	if _, err := sdk.AccAddressFromBech32(msg.To); err != nil {
		return err
	}
	if msg.PoolID == "" {
		return ErrPoolNotFound
	}
	if msg.Amount == "" {
		return ErrInvalidAmount
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgTransferSharesFrom) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Spender)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgTransferSharesFrom) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgTransferSharesFrom) Reset() { *msg = MsgTransferSharesFrom{} }

// String implements proto.Message
func (msg MsgTransferSharesFrom) String() string {
	return fmt.Sprintf("MsgTransferSharesFrom{Spender: %s, PoolID: %s, From: %s, To: %s, Amount: %s}",
		msg.Spender, msg.PoolID, msg.From, msg.To, msg.Amount)
}

// MsgTransferSharesFromResponse defines the TransferSharesFrom response
type MsgTransferSharesFromResponse struct {
	Allowance string `json:"allowance"`
}

// Ensure all messages implement sdk.Msg interface
var (
	_ sdk.Msg = &MsgCreatePool{}
	_ sdk.Msg = &MsgBind{}
	_ sdk.Msg = &MsgRebind{}
	_ sdk.Msg = &MsgUnbind{}
	_ sdk.Msg = &MsgSetSwapFee{}
	_ sdk.Msg = &MsgSetPublicSwap{}
	_ sdk.Msg = &MsgSetController{}
	_ sdk.Msg = &MsgFinalizePool{}
	_ sdk.Msg = &MsgJoinPool{}
	_ sdk.Msg = &MsgExitPool{}
	_ sdk.Msg = &MsgSwapExactAmountIn{}
	_ sdk.Msg = &MsgSwapExactAmountOut{}
	_ sdk.Msg = &MsgJoinswapExternAmountIn{}
	_ sdk.Msg = &MsgJoinswapPoolAmountOut{}
	_ sdk.Msg = &MsgExitswapPoolAmountIn{}
	_ sdk.Msg = &MsgExitswapExternAmountOut{}
	_ sdk.Msg = &MsgTransferShares{}
	_ sdk.Msg = &MsgApproveShares{}
	_ sdk.Msg = &MsgTransferSharesFrom{}
)
