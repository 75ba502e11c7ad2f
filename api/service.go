package api

import (
	"github.com/openalpha/amm-dex/api/types"
)

// Re-export types for convenience
type (
	Pool               = types.Pool
	PoolToken          = types.PoolToken
	TokenParam         = types.TokenParam
	CreatePoolRequest  = types.CreatePoolRequest
	CreatePoolResponse = types.CreatePoolResponse
	ListPoolsRequest   = types.ListPoolsRequest
	ListPoolsResponse  = types.ListPoolsResponse
	SpotPriceResponse  = types.SpotPriceResponse
	SwapQuoteRequest   = types.SwapQuoteRequest
	SwapQuoteResponse  = types.SwapQuoteResponse
	SwapRequest        = types.SwapRequest
	SwapResponse       = types.SwapResponse
	SharesResponse     = types.SharesResponse
	JoinRequest        = types.JoinRequest
	JoinResponse       = types.JoinResponse
	ExitRequest        = types.ExitRequest
	ExitResponse       = types.ExitResponse
	SwapEvent          = types.SwapEvent
	LiquidityEvent     = types.LiquidityEvent
	PoolEvent          = types.PoolEvent
	PoolService        = types.PoolService
	SwapService        = types.SwapService
	ShareService       = types.ShareService
	EventSource        = types.EventSource
)

// nowMillis returns current timestamp in milliseconds
func nowMillis() int64 {
	return types.NowMillis()
}
