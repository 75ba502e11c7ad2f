package types

import (
	"context"
	"time"
)

// PoolToken represents one bound token of a pool in the API response
type PoolToken struct {
	Denom            string `json:"denom"`
	Balance          string `json:"balance"`
	Weight           string `json:"weight"`
	NormalizedWeight string `json:"normalized_weight"`
}

// Pool represents a weighted liquidity pool in the API response
type Pool struct {
	PoolID      string      `json:"pool_id"`
	Controller  string      `json:"controller"`
	SwapFee     string      `json:"swap_fee"`
	TotalWeight string      `json:"total_weight"`
	TotalShares string      `json:"total_shares"`
	PublicSwap  bool        `json:"public_swap"`
	Finalized   bool        `json:"finalized"`
	Tokens      []PoolToken `json:"tokens"`
	CreatedAt   int64       `json:"created_at"`
	UpdatedAt   int64       `json:"updated_at"`
}

// TokenParam is a denom with its initial balance and weight
type TokenParam struct {
	Denom   string `json:"denom"`
	Balance string `json:"balance"`
	Weight  string `json:"weight"`
}

// CreatePoolRequest represents the request to create and finalize a pool
type CreatePoolRequest struct {
	Controller string       `json:"controller"`
	SwapFee    string       `json:"swap_fee"`
	Tokens     []TokenParam `json:"tokens"`
}

// CreatePoolResponse represents the response after creating a pool
type CreatePoolResponse struct {
	Pool          *Pool  `json:"pool"`
	InitialShares string `json:"initial_shares"`
}

// ListPoolsRequest represents the request to list pools
type ListPoolsRequest struct {
	Controller string `json:"controller,omitempty"`
	Limit      int    `json:"limit,omitempty"`
	Cursor     string `json:"cursor,omitempty"`
}

// ListPoolsResponse represents the response for listing pools
type ListPoolsResponse struct {
	Pools      []*Pool `json:"pools"`
	NextCursor string  `json:"next_cursor,omitempty"`
	Total      int     `json:"total"`
}

// SpotPriceResponse represents a spot price quote between two bound tokens
type SpotPriceResponse struct {
	PoolID    string `json:"pool_id"`
	DenomIn   string `json:"denom_in"`
	DenomOut  string `json:"denom_out"`
	SpotPrice string `json:"spot_price"`
	WithFee   bool   `json:"with_fee"`
	Timestamp int64  `json:"timestamp"`
}

// SwapQuoteRequest represents the request for a swap quote. Exactly one of
// AmountIn and AmountOut must be set; the other side is computed.
type SwapQuoteRequest struct {
	PoolID    string `json:"pool_id"`
	DenomIn   string `json:"denom_in"`
	AmountIn  string `json:"amount_in,omitempty"`
	DenomOut  string `json:"denom_out"`
	AmountOut string `json:"amount_out,omitempty"`
}

// SwapQuoteResponse represents the computed swap quote
type SwapQuoteResponse struct {
	PoolID          string `json:"pool_id"`
	DenomIn         string `json:"denom_in"`
	AmountIn        string `json:"amount_in"`
	DenomOut        string `json:"denom_out"`
	AmountOut       string `json:"amount_out"`
	SpotPriceBefore string `json:"spot_price_before"`
	SpotPriceAfter  string `json:"spot_price_after"`
	SwapFee         string `json:"swap_fee"`
}

// SwapRequest represents the request to execute a swap
type SwapRequest struct {
	Sender       string `json:"sender"`
	DenomIn      string `json:"denom_in"`
	AmountIn     string `json:"amount_in"`
	DenomOut     string `json:"denom_out"`
	MinAmountOut string `json:"min_amount_out,omitempty"`
	MaxPrice     string `json:"max_price,omitempty"`
}

// SwapResponse represents the response after executing a swap
type SwapResponse struct {
	PoolID         string `json:"pool_id"`
	Sender         string `json:"sender"`
	DenomIn        string `json:"denom_in"`
	AmountIn       string `json:"amount_in"`
	DenomOut       string `json:"denom_out"`
	AmountOut      string `json:"amount_out"`
	SpotPriceAfter string `json:"spot_price_after"`
	Timestamp      int64  `json:"timestamp"`
}

// SharesResponse represents a share balance in the API response
type SharesResponse struct {
	PoolID      string `json:"pool_id"`
	Address     string `json:"address"`
	Balance     string `json:"balance"`
	TotalShares string `json:"total_shares"`
	PoolRatio   string `json:"pool_ratio"`
}

// JoinRequest represents the request to join a pool for an exact share amount
type JoinRequest struct {
	Sender        string            `json:"sender"`
	PoolAmountOut string            `json:"pool_amount_out"`
	MaxAmountsIn  map[string]string `json:"max_amounts_in,omitempty"`
}

// JoinResponse represents the response after joining a pool
type JoinResponse struct {
	PoolID        string            `json:"pool_id"`
	Sender        string            `json:"sender"`
	PoolAmountOut string            `json:"pool_amount_out"`
	AmountsIn     map[string]string `json:"amounts_in"`
	Timestamp     int64             `json:"timestamp"`
}

// ExitRequest represents the request to exit a pool by burning shares
type ExitRequest struct {
	Sender        string            `json:"sender"`
	PoolAmountIn  string            `json:"pool_amount_in"`
	MinAmountsOut map[string]string `json:"min_amounts_out,omitempty"`
}

// ExitResponse represents the response after exiting a pool
type ExitResponse struct {
	PoolID       string            `json:"pool_id"`
	Sender       string            `json:"sender"`
	PoolAmountIn string            `json:"pool_amount_in"`
	AmountsOut   map[string]string `json:"amounts_out"`
	Timestamp    int64             `json:"timestamp"`
}

// SwapEvent is emitted after every executed swap
type SwapEvent struct {
	PoolID         string `json:"pool_id"`
	Sender         string `json:"sender"`
	DenomIn        string `json:"denom_in"`
	AmountIn       string `json:"amount_in"`
	DenomOut       string `json:"denom_out"`
	AmountOut      string `json:"amount_out"`
	SpotPriceAfter string `json:"spot_price_after"`
	Timestamp      int64  `json:"timestamp"`
}

// LiquidityEvent is emitted after every join or exit
type LiquidityEvent struct {
	PoolID     string            `json:"pool_id"`
	Sender     string            `json:"sender"`
	Kind       string            `json:"kind"` // "join" or "exit"
	PoolShares string            `json:"pool_shares"`
	Amounts    map[string]string `json:"amounts"`
	Timestamp  int64             `json:"timestamp"`
}

// PoolEvent wraps one swap or liquidity event for broadcasting
type PoolEvent struct {
	Type      string          `json:"type"` // "swap", "join" or "exit"
	Swap      *SwapEvent      `json:"swap,omitempty"`
	Liquidity *LiquidityEvent `json:"liquidity,omitempty"`
}

// PoolService defines the interface for pool browsing operations
type PoolService interface {
	ListPools(ctx context.Context, req *ListPoolsRequest) (*ListPoolsResponse, error)
	GetPool(ctx context.Context, poolID string) (*Pool, error)
	CreatePool(ctx context.Context, req *CreatePoolRequest) (*CreatePoolResponse, error)
}

// SwapService defines the interface for pricing and swap operations
type SwapService interface {
	GetSpotPrice(ctx context.Context, poolID, denomIn, denomOut string, withFee bool) (*SpotPriceResponse, error)
	QuoteSwap(ctx context.Context, req *SwapQuoteRequest) (*SwapQuoteResponse, error)
	Swap(ctx context.Context, poolID string, req *SwapRequest) (*SwapResponse, error)
}

// ShareService defines the interface for pool share operations
type ShareService interface {
	GetShares(ctx context.Context, poolID, address string) (*SharesResponse, error)
	Join(ctx context.Context, poolID string, req *JoinRequest) (*JoinResponse, error)
	Exit(ctx context.Context, poolID string, req *ExitRequest) (*ExitResponse, error)
}

// EventSource drains pool events accumulated since the last call. The
// broadcaster polls it to stream swaps and liquidity changes to
// WebSocket subscribers.
type EventSource interface {
	DrainEvents(ctx context.Context) []*PoolEvent
}

// Helper function to get current timestamp in milliseconds
func NowMillis() int64 {
	return time.Now().UnixMilli()
}
