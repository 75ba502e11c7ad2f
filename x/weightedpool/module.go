package weightedpool

import (
	"encoding/json"

	"cosmossdk.io/core/appmodule"
	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/codec"
	cdctypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/module"
	"github.com/grpc-ecosystem/grpc-gateway/runtime"

	"github.com/openalpha/amm-dex/x/weightedpool/keeper"
	"github.com/openalpha/amm-dex/x/weightedpool/types"
)

const (
	ModuleName = types.ModuleName
)

var (
	_ module.AppModuleBasic = AppModuleBasic{}
	_ appmodule.AppModule   = AppModule{}
)

// AppModuleBasic defines the basic application module for weightedpool
type AppModuleBasic struct{}

// Name returns the module's name
func (AppModuleBasic) Name() string {
	return ModuleName
}

// RegisterLegacyAminoCodec registers the module's types on the given LegacyAmino codec
func (AppModuleBasic) RegisterLegacyAminoCodec(cdc *codec.LegacyAmino) {
	cdc.RegisterConcrete(&types.MsgCreatePool{}, "weightedpool/MsgCreatePool", nil)
	cdc.RegisterConcrete(&types.MsgBind{}, "weightedpool/MsgBind", nil)
	cdc.RegisterConcrete(&types.MsgRebind{}, "weightedpool/MsgRebind", nil)
	cdc.RegisterConcrete(&types.MsgUnbind{}, "weightedpool/MsgUnbind", nil)
	cdc.RegisterConcrete(&types.MsgSetSwapFee{}, "weightedpool/MsgSetSwapFee", nil)
	cdc.RegisterConcrete(&types.MsgSetPublicSwap{}, "weightedpool/MsgSetPublicSwap", nil)
	cdc.RegisterConcrete(&types.MsgSetController{}, "weightedpool/MsgSetController", nil)
	cdc.RegisterConcrete(&types.MsgFinalizePool{}, "weightedpool/MsgFinalizePool", nil)
	cdc.RegisterConcrete(&types.MsgJoinPool{}, "weightedpool/MsgJoinPool", nil)
	cdc.RegisterConcrete(&types.MsgExitPool{}, "weightedpool/MsgExitPool", nil)
	cdc.RegisterConcrete(&types.MsgSwapExactAmountIn{}, "weightedpool/MsgSwapExactAmountIn", nil)
	cdc.RegisterConcrete(&types.MsgSwapExactAmountOut{}, "weightedpool/MsgSwapExactAmountOut", nil)
	cdc.RegisterConcrete(&types.MsgJoinswapExternAmountIn{}, "weightedpool/MsgJoinswapExternAmountIn", nil)
	cdc.RegisterConcrete(&types.MsgJoinswapPoolAmountOut{}, "weightedpool/MsgJoinswapPoolAmountOut", nil)
	cdc.RegisterConcrete(&types.MsgExitswapPoolAmountIn{}, "weightedpool/MsgExitswapPoolAmountIn", nil)
	cdc.RegisterConcrete(&types.MsgExitswapExternAmountOut{}, "weightedpool/MsgExitswapExternAmountOut", nil)
	cdc.RegisterConcrete(&types.MsgTransferShares{}, "weightedpool/MsgTransferShares", nil)
	cdc.RegisterConcrete(&types.MsgApproveShares{}, "weightedpool/MsgApproveShares", nil)
	cdc.RegisterConcrete(&types.MsgTransferSharesFrom{}, "weightedpool/MsgTransferSharesFrom", nil)
}

// RegisterInterfaces registers the module's interface types
func (AppModuleBasic) RegisterInterfaces(registry cdctypes.InterfaceRegistry) {
	registry.RegisterImplementations((*sdk.Msg)(nil),
		&types.MsgCreatePool{},
		&types.MsgBind{},
		&types.MsgRebind{},
		&types.MsgUnbind{},
		&types.MsgSetSwapFee{},
		&types.MsgSetPublicSwap{},
		&types.MsgSetController{},
		&types.MsgFinalizePool{},
		&types.MsgJoinPool{},
		&types.MsgExitPool{},
		&types.MsgSwapExactAmountIn{},
		&types.MsgSwapExactAmountOut{},
		&types.MsgJoinswapExternAmountIn{},
		&types.MsgJoinswapPoolAmountOut{},
		&types.MsgExitswapPoolAmountIn{},
		&types.MsgExitswapExternAmountOut{},
		&types.MsgTransferShares{},
		&types.MsgApproveShares{},
		&types.MsgTransferSharesFrom{},
	)
}

// DefaultGenesis returns default genesis state as raw bytes
func (AppModuleBasic) DefaultGenesis(cdc codec.JSONCodec) json.RawMessage {
	return nil
}

// ValidateGenesis performs genesis state validation
func (AppModuleBasic) ValidateGenesis(cdc codec.JSONCodec, config client.TxEncodingConfig, bz json.RawMessage) error {
	return nil
}

// RegisterGRPCGatewayRoutes registers the gRPC Gateway routes for the module
func (AppModuleBasic) RegisterGRPCGatewayRoutes(clientCtx client.Context, mux *runtime.ServeMux) {
	// TODO: Register gRPC gateway routes when proto generation is set up
}

// AppModule implements an application module for the weightedpool module
type AppModule struct {
	AppModuleBasic
	keeper *keeper.Keeper
}

// NewAppModule creates a new AppModule object
func NewAppModule(k *keeper.Keeper) AppModule {
	return AppModule{
		AppModuleBasic: AppModuleBasic{},
		keeper:         k,
	}
}

// Name returns the module's name
func (am AppModule) Name() string {
	return ModuleName
}

// RegisterServices registers module services
func (am AppModule) RegisterServices(cfg module.Configurator) {
	// Register MsgServer
	// Note: In a full implementation, you would register the proto-generated server
	// For now, we'll use the custom MsgServer
	_ = keeper.NewMsgServerImpl(am.keeper)
}

// IsOnePerModuleType implements the depinject.OnePerModuleType interface
func (am AppModule) IsOnePerModuleType() {}

// IsAppModule implements the appmodule.AppModule interface
func (am AppModule) IsAppModule() {}
