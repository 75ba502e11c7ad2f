package keeper

import (
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/amm-dex/metrics"
)

// EndBlocker is called at the end of each block to advance gradual weight
// updates
func (k *Keeper) EndBlocker(ctx sdk.Context) error {
	blockHeight := ctx.BlockHeight()
	start := time.Now()

	pokeStart := time.Now()
	pokedCount, completedCount := k.pokeScheduledUpdates(ctx)
	pokeDuration := time.Since(pokeStart)

	totalDuration := time.Since(start)

	// Log performance metrics
	k.logger.Debug("SmartPool EndBlocker completed",
		"block", blockHeight,
		"total_ms", totalDuration.Milliseconds(),
		"poke_ms", pokeDuration.Milliseconds(),
		"pools_poked", pokedCount,
		"updates_completed", completedCount,
	)

	// Export to the Prometheus collector
	collector := metrics.GetCollector()
	collector.RecordEndBlock(blockHeight, float64(totalDuration.Microseconds())/1000.0)
	collector.SetGradualUpdatesActive(len(k.activeUpdates(ctx)))
	if pokedCount > 0 {
		collector.RecordWeightPokes(pokedCount)
	}

	// Emit telemetry event
	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"smartpool_endblock",
			sdk.NewAttribute("block_height", math.NewInt(blockHeight).String()),
			sdk.NewAttribute("duration_ms", math.NewInt(totalDuration.Milliseconds()).String()),
			sdk.NewAttribute("pools_poked", math.NewInt(int64(pokedCount)).String()),
		),
	)

	return nil
}

// pokeScheduledUpdates pokes every smart pool with a scheduled gradual
// weight update. The persisted record is the source of truth: entries whose
// record no longer carries the scheduled update are dropped from the cache.
func (k *Keeper) pokeScheduledUpdates(ctx sdk.Context) (int, int) {
	pokedCount := 0
	completedCount := 0

	for _, entry := range k.activeUpdates(ctx) {
		sp := k.GetSmartPool(ctx, entry.SmartPoolID)
		if sp == nil || !sp.HasGradualUpdate() || sp.GradualUpdate.EndBlock != entry.EndBlock {
			k.schedule.remove(entry.EndBlock, entry.SmartPoolID)
			continue
		}
		if ctx.BlockHeight() < sp.GradualUpdate.StartBlock {
			continue
		}

		if _, err := k.PokeWeights(ctx, entry.SmartPoolID); err != nil {
			k.logger.Error("Gradual weight poke failed",
				"smart_pool_id", entry.SmartPoolID,
				"block", ctx.BlockHeight(),
				"error", err,
			)
			continue
		}
		pokedCount++
		if ctx.BlockHeight() >= entry.EndBlock {
			completedCount++
		}
	}

	return pokedCount, completedCount
}
