package smartpool

import (
	"encoding/json"

	"cosmossdk.io/core/appmodule"
	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/codec"
	cdctypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/module"
	"github.com/grpc-ecosystem/grpc-gateway/runtime"

	"github.com/openalpha/amm-dex/x/smartpool/keeper"
	"github.com/openalpha/amm-dex/x/smartpool/types"
)

const (
	ModuleName = types.ModuleName
)

var (
	_ module.AppModuleBasic = AppModuleBasic{}
	_ appmodule.AppModule   = AppModule{}
)

// AppModuleBasic defines the basic application module for smartpool
type AppModuleBasic struct{}

// Name returns the module's name
func (AppModuleBasic) Name() string {
	return ModuleName
}

// RegisterLegacyAminoCodec registers the module's types on the given LegacyAmino codec
func (AppModuleBasic) RegisterLegacyAminoCodec(cdc *codec.LegacyAmino) {
	cdc.RegisterConcrete(&types.MsgCreateSmartPool{}, "smartpool/MsgCreateSmartPool", nil)
	cdc.RegisterConcrete(&types.MsgCreatePool{}, "smartpool/MsgCreatePool", nil)
	cdc.RegisterConcrete(&types.MsgSetSwapFee{}, "smartpool/MsgSetSwapFee", nil)
	cdc.RegisterConcrete(&types.MsgSetPublicSwap{}, "smartpool/MsgSetPublicSwap", nil)
	cdc.RegisterConcrete(&types.MsgSetController{}, "smartpool/MsgSetController", nil)
	cdc.RegisterConcrete(&types.MsgSetCap{}, "smartpool/MsgSetCap", nil)
	cdc.RegisterConcrete(&types.MsgUpdateWeight{}, "smartpool/MsgUpdateWeight", nil)
	cdc.RegisterConcrete(&types.MsgUpdateWeightsGradually{}, "smartpool/MsgUpdateWeightsGradually", nil)
	cdc.RegisterConcrete(&types.MsgPokeWeights{}, "smartpool/MsgPokeWeights", nil)
	cdc.RegisterConcrete(&types.MsgCommitAddToken{}, "smartpool/MsgCommitAddToken", nil)
	cdc.RegisterConcrete(&types.MsgApplyAddToken{}, "smartpool/MsgApplyAddToken", nil)
	cdc.RegisterConcrete(&types.MsgRemoveToken{}, "smartpool/MsgRemoveToken", nil)
	cdc.RegisterConcrete(&types.MsgWhitelistLP{}, "smartpool/MsgWhitelistLP", nil)
	cdc.RegisterConcrete(&types.MsgRemoveWhitelistedLP{}, "smartpool/MsgRemoveWhitelistedLP", nil)
	cdc.RegisterConcrete(&types.MsgJoinPool{}, "smartpool/MsgJoinPool", nil)
	cdc.RegisterConcrete(&types.MsgExitPool{}, "smartpool/MsgExitPool", nil)
	cdc.RegisterConcrete(&types.MsgJoinswapExternAmountIn{}, "smartpool/MsgJoinswapExternAmountIn", nil)
	cdc.RegisterConcrete(&types.MsgJoinswapPoolAmountOut{}, "smartpool/MsgJoinswapPoolAmountOut", nil)
	cdc.RegisterConcrete(&types.MsgExitswapPoolAmountIn{}, "smartpool/MsgExitswapPoolAmountIn", nil)
	cdc.RegisterConcrete(&types.MsgExitswapExternAmountOut{}, "smartpool/MsgExitswapExternAmountOut", nil)
	cdc.RegisterConcrete(&types.MsgRunActionBatch{}, "smartpool/MsgRunActionBatch", nil)
}

// RegisterInterfaces registers the module's interface types
func (AppModuleBasic) RegisterInterfaces(registry cdctypes.InterfaceRegistry) {
	registry.RegisterImplementations((*sdk.Msg)(nil),
		&types.MsgCreateSmartPool{},
		&types.MsgCreatePool{},
		&types.MsgSetSwapFee{},
		&types.MsgSetPublicSwap{},
		&types.MsgSetController{},
		&types.MsgSetCap{},
		&types.MsgUpdateWeight{},
		&types.MsgUpdateWeightsGradually{},
		&types.MsgPokeWeights{},
		&types.MsgCommitAddToken{},
		&types.MsgApplyAddToken{},
		&types.MsgRemoveToken{},
		&types.MsgWhitelistLP{},
		&types.MsgRemoveWhitelistedLP{},
		&types.MsgJoinPool{},
		&types.MsgExitPool{},
		&types.MsgJoinswapExternAmountIn{},
		&types.MsgJoinswapPoolAmountOut{},
		&types.MsgExitswapPoolAmountIn{},
		&types.MsgExitswapExternAmountOut{},
		&types.MsgRunActionBatch{},
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

// AppModule implements an application module for the smartpool module
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

// EndBlocker is called at the end of each block. It advances every scheduled
// gradual weight update.
func (am AppModule) EndBlocker(ctx sdk.Context) error {
	return am.keeper.EndBlocker(ctx)
}
