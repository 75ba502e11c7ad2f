package api

import (
	"context"
	"math"
	"strconv"
	"time"

	"github.com/openalpha/amm-dex/api/types"
	"github.com/openalpha/amm-dex/api/websocket"
	"github.com/openalpha/amm-dex/metrics"
)

// startPoolBroadcaster periodically pushes pool state, spot prices and
// drained pool events to WebSocket subscribers
func (s *Server) startPoolBroadcaster() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for range ticker.C {
		s.broadcastPoolState()
		s.broadcastPoolEvents()
	}
}

// broadcastPoolState refreshes the buffered pool and price channels
func (s *Server) broadcastPoolState() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	resp, err := s.poolService.ListPools(ctx, &types.ListPoolsRequest{Limit: 100})
	if err != nil {
		return
	}

	collector := metrics.GetCollector()
	collector.SetPoolCount(resp.Total)

	now := nowMillis()
	for _, pool := range resp.Pools {
		collector.UpdatePoolShares(pool.PoolID, parseGaugeValue(pool.TotalShares))
		collector.UpdatePoolInvariant(pool.PoolID, poolInvariant(pool))
		for _, tok := range pool.Tokens {
			collector.UpdatePoolLiquidity(pool.PoolID, tok.Denom, parseGaugeValue(tok.Balance))
		}

		update := &websocket.PoolUpdateMessage{
			PoolID:      pool.PoolID,
			SwapFee:     pool.SwapFee,
			TotalWeight: pool.TotalWeight,
			TotalShares: pool.TotalShares,
			PublicSwap:  pool.PublicSwap,
			Finalized:   pool.Finalized,
			Tokens:      make([]websocket.PoolToken, 0, len(pool.Tokens)),
			Timestamp:   now,
		}
		for _, tok := range pool.Tokens {
			update.Tokens = append(update.Tokens, websocket.PoolToken{
				Denom:   tok.Denom,
				Balance: tok.Balance,
				Weight:  tok.Weight,
			})
		}
		s.wsServer.BroadcastPoolUpdate(update)

		if prices := s.collectSpotPrices(ctx, pool, now); prices != nil {
			s.wsServer.BroadcastSpotPrices(prices)
		}
	}
}

// collectSpotPrices queries the spot price of every ordered token pair
func (s *Server) collectSpotPrices(ctx context.Context, pool *types.Pool, now int64) *websocket.SpotPriceMessage {
	msg := &websocket.SpotPriceMessage{
		PoolID:    pool.PoolID,
		Timestamp: now,
	}
	for _, in := range pool.Tokens {
		for _, out := range pool.Tokens {
			if in.Denom == out.Denom {
				continue
			}
			price, err := s.swapService.GetSpotPrice(ctx, pool.PoolID, in.Denom, out.Denom, true)
			if err != nil {
				continue
			}
			metrics.GetCollector().UpdateSpotPrice(pool.PoolID, in.Denom, out.Denom, parseGaugeValue(price.SpotPrice))
			msg.Prices = append(msg.Prices, websocket.PairPrice{
				DenomIn:  in.Denom,
				DenomOut: out.Denom,
				Price:    price.SpotPrice,
			})
		}
	}
	if len(msg.Prices) == 0 {
		return nil
	}
	return msg
}

// broadcastPoolEvents drains pending events and pushes them immediately
func (s *Server) broadcastPoolEvents() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	collector := metrics.GetCollector()
	for _, event := range s.events.DrainEvents(ctx) {
		switch {
		case event.Swap != nil:
			collector.RecordSwap(
				event.Swap.PoolID,
				event.Swap.DenomIn,
				event.Swap.DenomOut,
				parseGaugeValue(event.Swap.AmountIn),
				parseGaugeValue(event.Swap.AmountOut),
			)
			s.wsServer.BroadcastSwap(&websocket.SwapMessage{
				PoolID:         event.Swap.PoolID,
				Sender:         event.Swap.Sender,
				DenomIn:        event.Swap.DenomIn,
				AmountIn:       event.Swap.AmountIn,
				DenomOut:       event.Swap.DenomOut,
				AmountOut:      event.Swap.AmountOut,
				SpotPriceAfter: event.Swap.SpotPriceAfter,
				Timestamp:      event.Swap.Timestamp,
			})
		case event.Liquidity != nil:
			shares := parseGaugeValue(event.Liquidity.PoolShares)
			if event.Liquidity.Kind == "join" {
				collector.RecordJoin(event.Liquidity.PoolID, shares)
			} else {
				collector.RecordExit(event.Liquidity.PoolID, shares)
			}
			s.wsServer.BroadcastLiquidity(&websocket.LiquidityMessage{
				PoolID:     event.Liquidity.PoolID,
				Provider:   event.Liquidity.Sender,
				Kind:       event.Liquidity.Kind,
				PoolShares: event.Liquidity.PoolShares,
				Amounts:    event.Liquidity.Amounts,
				Timestamp:  event.Liquidity.Timestamp,
			})
			s.broadcastShareBalance(ctx, event.Liquidity)
		}
	}
}

// broadcastShareBalance pushes the provider's fresh share balance on their
// private channel
func (s *Server) broadcastShareBalance(ctx context.Context, event *types.LiquidityEvent) {
	shares, err := s.shareService.GetShares(ctx, event.PoolID, event.Sender)
	if err != nil {
		return
	}
	s.wsServer.BroadcastShareBalance(event.Sender, &websocket.ShareBalanceMessage{
		PoolID:      shares.PoolID,
		Address:     shares.Address,
		Balance:     shares.Balance,
		TotalShares: shares.TotalShares,
		Timestamp:   nowMillis(),
	})
}

// poolInvariant approximates the weighted product invariant for monitoring.
// Float precision is fine for a gauge; the chain math stays exact.
func poolInvariant(pool *types.Pool) float64 {
	v := 1.0
	for _, tok := range pool.Tokens {
		balance := parseGaugeValue(tok.Balance)
		weight := parseGaugeValue(tok.NormalizedWeight)
		if balance <= 0 {
			return 0
		}
		v *= math.Pow(balance, weight)
	}
	return v
}

// parseGaugeValue converts a decimal string for gauge use, zero on failure
func parseGaugeValue(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}
