package types

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Message types
const (
	TypeMsgCreateSmartPool         = "create_smart_pool"
	TypeMsgCreatePool              = "create_pool"
	TypeMsgSetSwapFee              = "set_swap_fee"
	TypeMsgSetPublicSwap           = "set_public_swap"
	TypeMsgSetController           = "set_controller"
	TypeMsgSetCap                  = "set_cap"
	TypeMsgUpdateWeight            = "update_weight"
	TypeMsgUpdateWeightsGradually  = "update_weights_gradually"
	TypeMsgPokeWeights             = "poke_weights"
	TypeMsgCommitAddToken          = "commit_add_token"
	TypeMsgApplyAddToken           = "apply_add_token"
	TypeMsgRemoveToken             = "remove_token"
	TypeMsgWhitelistLP             = "whitelist_lp"
	TypeMsgRemoveWhitelistedLP     = "remove_whitelisted_lp"
	TypeMsgJoinPool                = "join_pool"
	TypeMsgExitPool                = "exit_pool"
	TypeMsgJoinswapExternAmountIn  = "joinswap_extern_amount_in"
	TypeMsgJoinswapPoolAmountOut   = "joinswap_pool_amount_out"
	TypeMsgExitswapPoolAmountIn    = "exitswap_pool_amount_in"
	TypeMsgExitswapExternAmountOut = "exitswap_extern_amount_out"
	TypeMsgRunActionBatch          = "run_action_batch"
)

// MsgCreateSmartPool defines the CreateSmartPool message. It registers the
// configuration of a smart pool without touching any funds; the underlying
// pool is instantiated later by CreatePool.
type MsgCreateSmartPool struct {
	Creator                        string   `json:"creator"`
	Denoms                         []string `json:"denoms"`
	Balances                       []string `json:"balances"`
	Weights                        []string `json:"weights"`
	SwapFee                        string   `json:"swap_fee"`
	Rights                         Rights   `json:"rights"`
	MinimumWeightChangeBlockPeriod int64    `json:"minimum_weight_change_block_period"`
	AddTokenTimeLockInBlocks       int64    `json:"add_token_time_lock_in_blocks"`
}

// Route implements sdk.Msg
func (msg MsgCreateSmartPool) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgCreateSmartPool) Type() string { return TypeMsgCreateSmartPool }

// ValidateBasic implements sdk.Msg
func (msg MsgCreateSmartPool) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Creator); err != nil {
		return err
	}
	if len(msg.Denoms) == 0 {
		return ErrInvalidConfig
	}
	if len(msg.Balances) != len(msg.Denoms) || len(msg.Weights) != len(msg.Denoms) {
		return ErrWeightsMismatch
	}
	for i, denom := range msg.Denoms {
		if denom == "" {
			return ErrInvalidConfig
		}
		if msg.Balances[i] == "" || msg.Weights[i] == "" {
			return ErrInvalidAmount
		}
	}
	if msg.SwapFee == "" {
		return ErrInvalidAmount
	}
	if msg.MinimumWeightChangeBlockPeriod < 0 || msg.AddTokenTimeLockInBlocks < 0 {
		return ErrInvalidConfig
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgCreateSmartPool) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Creator)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgCreateSmartPool) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgCreateSmartPool) Reset() { *msg = MsgCreateSmartPool{} }

// String implements proto.Message
func (msg MsgCreateSmartPool) String() string {
	return fmt.Sprintf("MsgCreateSmartPool{Creator: %s, Denoms: %v}", msg.Creator, msg.Denoms)
}

// MsgCreateSmartPoolResponse defines the CreateSmartPool response
type MsgCreateSmartPoolResponse struct {
	SmartPoolID string `json:"smart_pool_id"`
}

// MsgCreatePool defines the CreatePool message. It instantiates the
// underlying pool for a configured smart pool, pulling the configured seed
// balances from the controller and minting the initial share supply. Nonzero
// block periods override the values fixed at configuration time.
type MsgCreatePool struct {
	Controller                     string `json:"controller"`
	SmartPoolID                    string `json:"smart_pool_id"`
	InitialSupply                  string `json:"initial_supply"`
	MinimumWeightChangeBlockPeriod int64  `json:"minimum_weight_change_block_period,omitempty"`
	AddTokenTimeLockInBlocks       int64  `json:"add_token_time_lock_in_blocks,omitempty"`
}

// Route implements sdk.Msg
func (msg MsgCreatePool) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgCreatePool) Type() string { return TypeMsgCreatePool }

// ValidateBasic implements sdk.Msg
func (msg MsgCreatePool) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Controller); err != nil {
		return err
	}
	if msg.SmartPoolID == "" {
		return ErrSmartPoolNotFound
	}
	if msg.InitialSupply == "" {
		return ErrInvalidAmount
	}
	if msg.MinimumWeightChangeBlockPeriod < 0 || msg.AddTokenTimeLockInBlocks < 0 {
		return ErrInvalidConfig
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgCreatePool) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Controller)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgCreatePool) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgCreatePool) Reset() { *msg = MsgCreatePool{} }

// String implements proto.Message
func (msg MsgCreatePool) String() string {
	return fmt.Sprintf("MsgCreatePool{Controller: %s, SmartPoolID: %s, InitialSupply: %s}",
		msg.Controller, msg.SmartPoolID, msg.InitialSupply)
}

// MsgCreatePoolResponse defines the CreatePool response
type MsgCreatePoolResponse struct {
	PoolID       string `json:"pool_id"`
	SharesMinted string `json:"shares_minted"`
}

// MsgSetSwapFee defines the SetSwapFee message
type MsgSetSwapFee struct {
	Controller  string `json:"controller"`
	SmartPoolID string `json:"smart_pool_id"`
	SwapFee     string `json:"swap_fee"`
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
	if msg.SmartPoolID == "" {
		return ErrSmartPoolNotFound
	}
	if msg.SwapFee == "" {
		return ErrInvalidAmount
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
	return fmt.Sprintf("MsgSetSwapFee{Controller: %s, SmartPoolID: %s, SwapFee: %s}",
		msg.Controller, msg.SmartPoolID, msg.SwapFee)
}

// MsgSetSwapFeeResponse defines the SetSwapFee response
type MsgSetSwapFeeResponse struct {
	SwapFee string `json:"swap_fee"`
}

// MsgSetPublicSwap defines the SetPublicSwap message
type MsgSetPublicSwap struct {
	Controller  string `json:"controller"`
	SmartPoolID string `json:"smart_pool_id"`
	Public      bool   `json:"public"`
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
	if msg.SmartPoolID == "" {
		return ErrSmartPoolNotFound
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
	return fmt.Sprintf("MsgSetPublicSwap{Controller: %s, SmartPoolID: %s, Public: %t}",
		msg.Controller, msg.SmartPoolID, msg.Public)
}

// MsgSetPublicSwapResponse defines the SetPublicSwap response
type MsgSetPublicSwapResponse struct {
	Public bool `json:"public"`
}

// MsgSetController defines the SetController message
type MsgSetController struct {
	Controller    string `json:"controller"`
	SmartPoolID   string `json:"smart_pool_id"`
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
	if msg.SmartPoolID == "" {
		return ErrSmartPoolNotFound
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
	return fmt.Sprintf("MsgSetController{Controller: %s, SmartPoolID: %s, NewController: %s}",
		msg.Controller, msg.SmartPoolID, msg.NewController)
}

// MsgSetControllerResponse defines the SetController response
type MsgSetControllerResponse struct {
	Controller string `json:"controller"`
}

// MsgSetCap defines the SetCap message
type MsgSetCap struct {
	Controller  string `json:"controller"`
	SmartPoolID string `json:"smart_pool_id"`
	Cap         string `json:"cap"`
}

// Route implements sdk.Msg
func (msg MsgSetCap) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgSetCap) Type() string { return TypeMsgSetCap }

// ValidateBasic implements sdk.Msg
func (msg MsgSetCap) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Controller); err != nil {
		return err
	}
	if msg.SmartPoolID == "" {
		return ErrSmartPoolNotFound
	}
	if msg.Cap == "" {
		return ErrInvalidAmount
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgSetCap) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Controller)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgSetCap) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgSetCap) Reset() { *msg = MsgSetCap{} }

// String implements proto.Message
func (msg MsgSetCap) String() string {
	return fmt.Sprintf("MsgSetCap{Controller: %s, SmartPoolID: %s, Cap: %s}",
		msg.Controller, msg.SmartPoolID, msg.Cap)
}

// MsgSetCapResponse defines the SetCap response
type MsgSetCapResponse struct {
	Cap string `json:"cap"`
}

// MsgUpdateWeight defines the UpdateWeight message. The weight change is
// immediate; pool balances and share supply move with it so that no price
// changes.
type MsgUpdateWeight struct {
	Controller  string `json:"controller"`
	SmartPoolID string `json:"smart_pool_id"`
	Denom       string `json:"denom"`
	NewWeight   string `json:"new_weight"`
}

// Route implements sdk.Msg
func (msg MsgUpdateWeight) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgUpdateWeight) Type() string { return TypeMsgUpdateWeight }

// ValidateBasic implements sdk.Msg
func (msg MsgUpdateWeight) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Controller); err != nil {
		return err
	}
	if msg.SmartPoolID == "" {
		return ErrSmartPoolNotFound
	}
	if msg.Denom == "" {
		return ErrInvalidConfig
	}
	if msg.NewWeight == "" {
		return ErrInvalidAmount
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgUpdateWeight) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Controller)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgUpdateWeight) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgUpdateWeight) Reset() { *msg = MsgUpdateWeight{} }

// String implements proto.Message
func (msg MsgUpdateWeight) String() string {
	return fmt.Sprintf("MsgUpdateWeight{Controller: %s, SmartPoolID: %s, Denom: %s, NewWeight: %s}",
		msg.Controller, msg.SmartPoolID, msg.Denom, msg.NewWeight)
}

// MsgUpdateWeightResponse defines the UpdateWeight response
type MsgUpdateWeightResponse struct {
	TotalWeight string `json:"total_weight"`
	PoolSupply  string `json:"pool_supply"`
}

// MsgUpdateWeightsGradually defines the UpdateWeightsGradually message.
// NewWeights is ordered like the smart pool's denom list.
type MsgUpdateWeightsGradually struct {
	Controller  string   `json:"controller"`
	SmartPoolID string   `json:"smart_pool_id"`
	NewWeights  []string `json:"new_weights"`
	StartBlock  int64    `json:"start_block"`
	EndBlock    int64    `json:"end_block"`
}

// Route implements sdk.Msg
func (msg MsgUpdateWeightsGradually) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgUpdateWeightsGradually) Type() string { return TypeMsgUpdateWeightsGradually }

// ValidateBasic implements sdk.Msg
func (msg MsgUpdateWeightsGradually) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Controller); err != nil {
		return err
	}
	if msg.SmartPoolID == "" {
		return ErrSmartPoolNotFound
	}
	if len(msg.NewWeights) == 0 {
		return ErrWeightsMismatch
	}
	for _, w := range msg.NewWeights {
		if w == "" {
			return ErrInvalidAmount
		}
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgUpdateWeightsGradually) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Controller)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgUpdateWeightsGradually) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgUpdateWeightsGradually) Reset() { *msg = MsgUpdateWeightsGradually{} }

// String implements proto.Message
func (msg MsgUpdateWeightsGradually) String() string {
	return fmt.Sprintf("MsgUpdateWeightsGradually{Controller: %s, SmartPoolID: %s, NewWeights: %v, Blocks: %d-%d}",
		msg.Controller, msg.SmartPoolID, msg.NewWeights, msg.StartBlock, msg.EndBlock)
}

// MsgUpdateWeightsGraduallyResponse defines the UpdateWeightsGradually
// response. StartBlock reflects clamping to the current block.
type MsgUpdateWeightsGraduallyResponse struct {
	StartBlock int64 `json:"start_block"`
	EndBlock   int64 `json:"end_block"`
}

// MsgPokeWeights defines the PokeWeights message. Any account may poke.
type MsgPokeWeights struct {
	Sender      string `json:"sender"`
	SmartPoolID string `json:"smart_pool_id"`
}

// Route implements sdk.Msg
func (msg MsgPokeWeights) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgPokeWeights) Type() string { return TypeMsgPokeWeights }

// ValidateBasic implements sdk.Msg
func (msg MsgPokeWeights) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Sender); err != nil {
		return err
	}
	if msg.SmartPoolID == "" {
		return ErrSmartPoolNotFound
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgPokeWeights) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Sender)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgPokeWeights) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgPokeWeights) Reset() { *msg = MsgPokeWeights{} }

// String implements proto.Message
func (msg MsgPokeWeights) String() string {
	return fmt.Sprintf("MsgPokeWeights{Sender: %s, SmartPoolID: %s}", msg.Sender, msg.SmartPoolID)
}

// MsgPokeWeightsResponse defines the PokeWeights response
type MsgPokeWeightsResponse struct {
	Weights map[string]string `json:"weights"`
}

// MsgCommitAddToken defines the CommitAddToken message
type MsgCommitAddToken struct {
	Controller  string `json:"controller"`
	SmartPoolID string `json:"smart_pool_id"`
	Denom       string `json:"denom"`
	Balance     string `json:"balance"`
	Weight      string `json:"weight"`
}

// Route implements sdk.Msg
func (msg MsgCommitAddToken) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgCommitAddToken) Type() string { return TypeMsgCommitAddToken }

// ValidateBasic implements sdk.Msg
func (msg MsgCommitAddToken) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Controller); err != nil {
		return err
	}
	if msg.SmartPoolID == "" {
		return ErrSmartPoolNotFound
	}
	if msg.Denom == "" {
		return ErrInvalidConfig
	}
	if msg.Balance == "" || msg.Weight == "" {
		return ErrInvalidAmount
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgCommitAddToken) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Controller)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgCommitAddToken) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgCommitAddToken) Reset() { *msg = MsgCommitAddToken{} }

// String implements proto.Message
func (msg MsgCommitAddToken) String() string {
	return fmt.Sprintf("MsgCommitAddToken{Controller: %s, SmartPoolID: %s, Denom: %s, Balance: %s, Weight: %s}",
		msg.Controller, msg.SmartPoolID, msg.Denom, msg.Balance, msg.Weight)
}

// MsgCommitAddTokenResponse defines the CommitAddToken response
type MsgCommitAddTokenResponse struct {
	CommitBlock int64 `json:"commit_block"`
	UnlockBlock int64 `json:"unlock_block"`
}

// MsgApplyAddToken defines the ApplyAddToken message
type MsgApplyAddToken struct {
	Controller  string `json:"controller"`
	SmartPoolID string `json:"smart_pool_id"`
}

// Route implements sdk.Msg
func (msg MsgApplyAddToken) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgApplyAddToken) Type() string { return TypeMsgApplyAddToken }

// ValidateBasic implements sdk.Msg
func (msg MsgApplyAddToken) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Controller); err != nil {
		return err
	}
	if msg.SmartPoolID == "" {
		return ErrSmartPoolNotFound
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgApplyAddToken) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Controller)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgApplyAddToken) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgApplyAddToken) Reset() { *msg = MsgApplyAddToken{} }

// String implements proto.Message
func (msg MsgApplyAddToken) String() string {
	return fmt.Sprintf("MsgApplyAddToken{Controller: %s, SmartPoolID: %s}", msg.Controller, msg.SmartPoolID)
}

// MsgApplyAddTokenResponse defines the ApplyAddToken response
type MsgApplyAddTokenResponse struct {
	Denom        string `json:"denom"`
	SharesMinted string `json:"shares_minted"`
}

// MsgRemoveToken defines the RemoveToken message
type MsgRemoveToken struct {
	Controller  string `json:"controller"`
	SmartPoolID string `json:"smart_pool_id"`
	Denom       string `json:"denom"`
}

// Route implements sdk.Msg
func (msg MsgRemoveToken) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgRemoveToken) Type() string { return TypeMsgRemoveToken }

// ValidateBasic implements sdk.Msg
func (msg MsgRemoveToken) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Controller); err != nil {
		return err
	}
	if msg.SmartPoolID == "" {
		return ErrSmartPoolNotFound
	}
	if msg.Denom == "" {
		return ErrInvalidConfig
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgRemoveToken) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Controller)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgRemoveToken) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgRemoveToken) Reset() { *msg = MsgRemoveToken{} }

// String implements proto.Message
func (msg MsgRemoveToken) String() string {
	return fmt.Sprintf("MsgRemoveToken{Controller: %s, SmartPoolID: %s, Denom: %s}",
		msg.Controller, msg.SmartPoolID, msg.Denom)
}

// MsgRemoveTokenResponse defines the RemoveToken response
type MsgRemoveTokenResponse struct {
	SharesBurned    string `json:"shares_burned"`
	BalanceReturned string `json:"balance_returned"`
}

// MsgWhitelistLP defines the WhitelistLP message
type MsgWhitelistLP struct {
	Controller  string `json:"controller"`
	SmartPoolID string `json:"smart_pool_id"`
	Provider    string `json:"provider"`
}

// Route implements sdk.Msg
func (msg MsgWhitelistLP) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgWhitelistLP) Type() string { return TypeMsgWhitelistLP }

// ValidateBasic implements sdk.Msg
func (msg MsgWhitelistLP) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Controller); err != nil {
		return err
	}
	if _, err := sdk.AccAddressFromBech32(msg.Provider); err != nil {
		return err
	}
	if msg.SmartPoolID == "" {
		return ErrSmartPoolNotFound
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgWhitelistLP) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Controller)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgWhitelistLP) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgWhitelistLP) Reset() { *msg = MsgWhitelistLP{} }

// String implements proto.Message
func (msg MsgWhitelistLP) String() string {
	return fmt.Sprintf("MsgWhitelistLP{Controller: %s, SmartPoolID: %s, Provider: %s}",
		msg.Controller, msg.SmartPoolID, msg.Provider)
}

// MsgWhitelistLPResponse defines the WhitelistLP response
type MsgWhitelistLPResponse struct {
	NumWhitelisted int `json:"num_whitelisted"`
}

// MsgRemoveWhitelistedLP defines the RemoveWhitelistedLP message
type MsgRemoveWhitelistedLP struct {
	Controller  string `json:"controller"`
	SmartPoolID string `json:"smart_pool_id"`
	Provider    string `json:"provider"`
}

// Route implements sdk.Msg
func (msg MsgRemoveWhitelistedLP) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgRemoveWhitelistedLP) Type() string { return TypeMsgRemoveWhitelistedLP }

// ValidateBasic implements sdk.Msg
func (msg MsgRemoveWhitelistedLP) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Controller); err != nil {
		return err
	}
	if _, err := sdk.AccAddressFromBech32(msg.Provider); err != nil {
		return err
	}
	if msg.SmartPoolID == "" {
		return ErrSmartPoolNotFound
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgRemoveWhitelistedLP) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Controller)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgRemoveWhitelistedLP) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgRemoveWhitelistedLP) Reset() { *msg = MsgRemoveWhitelistedLP{} }

// String implements proto.Message
func (msg MsgRemoveWhitelistedLP) String() string {
	return fmt.Sprintf("MsgRemoveWhitelistedLP{Controller: %s, SmartPoolID: %s, Provider: %s}",
		msg.Controller, msg.SmartPoolID, msg.Provider)
}

// MsgRemoveWhitelistedLPResponse defines the RemoveWhitelistedLP response
type MsgRemoveWhitelistedLPResponse struct {
	NumWhitelisted int `json:"num_whitelisted"`
}

// MsgJoinPool defines the JoinPool message
type MsgJoinPool struct {
	Sender        string            `json:"sender"`
	SmartPoolID   string            `json:"smart_pool_id"`
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
	if msg.SmartPoolID == "" {
		return ErrSmartPoolNotFound
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
	return fmt.Sprintf("MsgJoinPool{Sender: %s, SmartPoolID: %s, PoolAmountOut: %s}",
		msg.Sender, msg.SmartPoolID, msg.PoolAmountOut)
}

// MsgJoinPoolResponse defines the JoinPool response
type MsgJoinPoolResponse struct {
	SharesMinted string            `json:"shares_minted"`
	AmountsIn    map[string]string `json:"amounts_in"`
}

// MsgExitPool defines the ExitPool message
type MsgExitPool struct {
	Sender        string            `json:"sender"`
	SmartPoolID   string            `json:"smart_pool_id"`
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
	if msg.SmartPoolID == "" {
		return ErrSmartPoolNotFound
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
	return fmt.Sprintf("MsgExitPool{Sender: %s, SmartPoolID: %s, PoolAmountIn: %s}",
		msg.Sender, msg.SmartPoolID, msg.PoolAmountIn)
}

// MsgExitPoolResponse defines the ExitPool response
type MsgExitPoolResponse struct {
	SharesBurned string            `json:"shares_burned"`
	AmountsOut   map[string]string `json:"amounts_out"`
}

// MsgJoinswapExternAmountIn defines the JoinswapExternAmountIn message
type MsgJoinswapExternAmountIn struct {
	Sender           string `json:"sender"`
	SmartPoolID      string `json:"smart_pool_id"`
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
	if msg.SmartPoolID == "" {
		return ErrSmartPoolNotFound
	}
	if msg.DenomIn == "" {
		return ErrInvalidConfig
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
	return fmt.Sprintf("MsgJoinswapExternAmountIn{Sender: %s, SmartPoolID: %s, DenomIn: %s, AmountIn: %s}",
		msg.Sender, msg.SmartPoolID, msg.DenomIn, msg.AmountIn)
}

// MsgJoinswapExternAmountInResponse defines the JoinswapExternAmountIn response
type MsgJoinswapExternAmountInResponse struct {
	PoolAmountOut string `json:"pool_amount_out"`
}

// MsgJoinswapPoolAmountOut defines the JoinswapPoolAmountOut message
type MsgJoinswapPoolAmountOut struct {
	Sender        string `json:"sender"`
	SmartPoolID   string `json:"smart_pool_id"`
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
	if msg.SmartPoolID == "" {
		return ErrSmartPoolNotFound
	}
	if msg.DenomIn == "" {
		return ErrInvalidConfig
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
	return fmt.Sprintf("MsgJoinswapPoolAmountOut{Sender: %s, SmartPoolID: %s, DenomIn: %s, PoolAmountOut: %s}",
		msg.Sender, msg.SmartPoolID, msg.DenomIn, msg.PoolAmountOut)
}

// MsgJoinswapPoolAmountOutResponse defines the JoinswapPoolAmountOut response
type MsgJoinswapPoolAmountOutResponse struct {
	AmountIn string `json:"amount_in"`
}

// MsgExitswapPoolAmountIn defines the ExitswapPoolAmountIn message
type MsgExitswapPoolAmountIn struct {
	Sender       string `json:"sender"`
	SmartPoolID  string `json:"smart_pool_id"`
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
	if msg.SmartPoolID == "" {
		return ErrSmartPoolNotFound
	}
	if msg.DenomOut == "" {
		return ErrInvalidConfig
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
	return fmt.Sprintf("MsgExitswapPoolAmountIn{Sender: %s, SmartPoolID: %s, DenomOut: %s, PoolAmountIn: %s}",
		msg.Sender, msg.SmartPoolID, msg.DenomOut, msg.PoolAmountIn)
}

// MsgExitswapPoolAmountInResponse defines the ExitswapPoolAmountIn response
type MsgExitswapPoolAmountInResponse struct {
	AmountOut string `json:"amount_out"`
}

// MsgExitswapExternAmountOut defines the ExitswapExternAmountOut message
type MsgExitswapExternAmountOut struct {
	Sender          string `json:"sender"`
	SmartPoolID     string `json:"smart_pool_id"`
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
	if msg.SmartPoolID == "" {
		return ErrSmartPoolNotFound
	}
	if msg.DenomOut == "" {
		return ErrInvalidConfig
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
	return fmt.Sprintf("MsgExitswapExternAmountOut{Sender: %s, SmartPoolID: %s, DenomOut: %s, AmountOut: %s}",
		msg.Sender, msg.SmartPoolID, msg.DenomOut, msg.AmountOut)
}

// MsgExitswapExternAmountOutResponse defines the ExitswapExternAmountOut response
type MsgExitswapExternAmountOutResponse struct {
	PoolAmountIn string `json:"pool_amount_in"`
}

// MsgRunActionBatch defines the RunActionBatch message. Steps run in order
// against one smart pool; if any step fails the whole batch is rolled back.
type MsgRunActionBatch struct {
	Controller  string       `json:"controller"`
	SmartPoolID string       `json:"smart_pool_id"`
	Steps       []ActionStep `json:"steps"`
}

// Route implements sdk.Msg
func (msg MsgRunActionBatch) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgRunActionBatch) Type() string { return TypeMsgRunActionBatch }

// ValidateBasic implements sdk.Msg
func (msg MsgRunActionBatch) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Controller); err != nil {
		return err
	}
	if msg.SmartPoolID == "" {
		return ErrSmartPoolNotFound
	}
	if len(msg.Steps) == 0 {
		return ErrInvalidConfig
	}
	for _, step := range msg.Steps {
		if err := ValidateActionStep(step); err != nil {
			return err
		}
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgRunActionBatch) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Controller)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgRunActionBatch) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgRunActionBatch) Reset() { *msg = MsgRunActionBatch{} }

// String implements proto.Message
func (msg MsgRunActionBatch) String() string {
	return fmt.Sprintf("MsgRunActionBatch{Controller: %s, SmartPoolID: %s, Steps: %d}",
		msg.Controller, msg.SmartPoolID, len(msg.Steps))
}

// MsgRunActionBatchResponse defines the RunActionBatch response
type MsgRunActionBatchResponse struct {
	BatchID        string `json:"batch_id"`
	StepsCompleted int    `json:"steps_completed"`
}

// Ensure all messages implement sdk.Msg interface
var (
	_ sdk.Msg = &MsgCreateSmartPool{}
	_ sdk.Msg = &MsgCreatePool{}
	_ sdk.Msg = &MsgSetSwapFee{}
	_ sdk.Msg = &MsgSetPublicSwap{}
	_ sdk.Msg = &MsgSetController{}
	_ sdk.Msg = &MsgSetCap{}
	_ sdk.Msg = &MsgUpdateWeight{}
	_ sdk.Msg = &MsgUpdateWeightsGradually{}
	_ sdk.Msg = &MsgPokeWeights{}
	_ sdk.Msg = &MsgCommitAddToken{}
	_ sdk.Msg = &MsgApplyAddToken{}
	_ sdk.Msg = &MsgRemoveToken{}
	_ sdk.Msg = &MsgWhitelistLP{}
	_ sdk.Msg = &MsgRemoveWhitelistedLP{}
	_ sdk.Msg = &MsgJoinPool{}
	_ sdk.Msg = &MsgExitPool{}
	_ sdk.Msg = &MsgJoinswapExternAmountIn{}
	_ sdk.Msg = &MsgJoinswapPoolAmountOut{}
	_ sdk.Msg = &MsgExitswapPoolAmountIn{}
	_ sdk.Msg = &MsgExitswapExternAmountOut{}
	_ sdk.Msg = &MsgRunActionBatch{}
)
