package keeper

import (
	"strconv"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/openalpha/amm-dex/x/smartpool/types"
	wptypes "github.com/openalpha/amm-dex/x/weightedpool/types"

	"github.com/openalpha/amm-dex/ammmath"
)

// loadSmartPool fetches a smart pool or fails with ErrSmartPoolNotFound
func (k *Keeper) loadSmartPool(ctx sdk.Context, smartPoolID string) (*types.SmartPool, error) {
	sp := k.GetSmartPool(ctx, smartPoolID)
	if sp == nil {
		return nil, types.ErrSmartPoolNotFound
	}
	return sp, nil
}

// loadSmartPoolForController fetches a smart pool and checks the caller
// controls it
func (k *Keeper) loadSmartPoolForController(ctx sdk.Context, smartPoolID, controller string) (*types.SmartPool, error) {
	sp, err := k.loadSmartPool(ctx, smartPoolID)
	if err != nil {
		return nil, err
	}
	if sp.Controller != controller {
		return nil, types.ErrNotController
	}
	return sp, nil
}

// loadCreatedPool fetches a smart pool together with its wrapped engine pool
func (k *Keeper) loadCreatedPool(ctx sdk.Context, smartPoolID string) (*types.SmartPool, *wptypes.Pool, error) {
	sp, err := k.loadSmartPool(ctx, smartPoolID)
	if err != nil {
		return nil, nil, err
	}
	if !sp.PoolCreated() {
		return nil, nil, types.ErrPoolNotCreated
	}
	pool := k.engine.GetPool(ctx, sp.PoolID)
	if pool == nil {
		return nil, nil, types.ErrPoolNotCreated
	}
	return sp, pool, nil
}

// checkCap fails when a mint would push the share supply past the pool cap
func checkCap(sp *types.SmartPool, newSupply math.LegacyDec) error {
	if newSupply.GT(sp.Cap) {
		return types.ErrCapLimitReached
	}
	return nil
}

// CreateSmartPool registers the configuration and capability set of a new
// smart pool. No funds move; the wrapped engine pool is instantiated later by
// CreatePool.
func (k *Keeper) CreateSmartPool(
	ctx sdk.Context,
	creator string,
	denoms []string,
	balances, weights []math.LegacyDec,
	swapFee math.LegacyDec,
	rights types.Rights,
	minPeriod, addTokenLock int64,
) (*types.SmartPool, error) {
	if _, err := sdk.AccAddressFromBech32(creator); err != nil {
		return nil, types.ErrInvalidAddress
	}
	if len(denoms) != len(balances) || len(denoms) != len(weights) {
		return nil, types.ErrWeightsMismatch
	}
	if len(denoms) < wptypes.MinBoundTokens {
		return nil, wptypes.ErrMinTokens
	}
	if len(denoms) > wptypes.MaxBoundTokens {
		return nil, wptypes.ErrMaxTokens
	}
	if minPeriod < 0 || addTokenLock < 0 {
		return nil, types.ErrInvalidConfig
	}
	if err := wptypes.ValidateSwapFee(swapFee); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(denoms))
	totalWeight := math.LegacyZeroDec()
	for i, denom := range denoms {
		if denom == "" {
			return nil, types.ErrInvalidConfig
		}
		if _, dup := seen[denom]; dup {
			return nil, types.ErrInvalidConfig
		}
		seen[denom] = struct{}{}
		if err := wptypes.ValidateBalance(balances[i]); err != nil {
			return nil, err
		}
		if err := wptypes.ValidateWeight(weights[i]); err != nil {
			return nil, err
		}
		next, err := ammmath.Add(totalWeight, weights[i])
		if err != nil {
			return nil, err
		}
		totalWeight = next
	}
	if totalWeight.GT(wptypes.MaxTotalWeight) {
		return nil, wptypes.ErrTotalWeightTooHigh
	}

	smartPoolID := k.nextSmartPoolID(ctx)
	sp := types.NewSmartPool(smartPoolID, creator, rights, denoms, balances, weights, swapFee, minPeriod, addTokenLock, ctx.BlockTime().Unix())
	k.SetSmartPool(ctx, sp)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"smartpool_create",
			sdk.NewAttribute("smart_pool_id", smartPoolID),
			sdk.NewAttribute("controller", creator),
			sdk.NewAttribute("num_tokens", strconv.Itoa(len(denoms))),
		),
	)

	k.logger.Info("Smart pool configured",
		"smart_pool_id", smartPoolID,
		"controller", creator,
		"num_tokens", len(denoms),
	)

	return sp, nil
}

// CreatePool instantiates the wrapped engine pool: binds every configured
// asset pulling the balances from the controller, sets the fee, opens public
// swapping for good and mints the initial share supply to the controller.
// Runs once per smart pool. Nonzero block periods override the configured
// values.
func (k *Keeper) CreatePool(ctx sdk.Context, controller, smartPoolID string, initialSupply math.LegacyDec, minPeriod, addTokenLock int64) (string, error) {
	if err := k.acquireSmartPool(smartPoolID); err != nil {
		return "", err
	}
	defer k.releaseSmartPool(smartPoolID)

	sp, err := k.loadSmartPoolForController(ctx, smartPoolID, controller)
	if err != nil {
		return "", err
	}
	if sp.PoolCreated() {
		return "", types.ErrPoolAlreadyCreated
	}
	if initialSupply.IsNil() {
		return "", types.ErrInvalidAmount
	}
	if err := types.ValidateInitialSupply(initialSupply); err != nil {
		return "", err
	}
	if minPeriod < 0 || addTokenLock < 0 {
		return "", types.ErrInvalidConfig
	}

	cacheCtx, write := ctx.CacheContext()
	pool, err := k.engine.CreatePool(cacheCtx, k.moduleAddr)
	if err != nil {
		return "", err
	}
	for i, denom := range sp.Denoms {
		if err := k.pullTokens(cacheCtx, controller, denom, sp.Balances[i]); err != nil {
			return "", err
		}
		if err := k.engine.Bind(cacheCtx, k.moduleAddr, pool.PoolID, denom, sp.Balances[i], sp.Weights[i]); err != nil {
			return "", err
		}
	}
	if err := k.engine.SetSwapFee(cacheCtx, k.moduleAddr, pool.PoolID, sp.SwapFee); err != nil {
		return "", err
	}
	if err := k.engine.SetPublicSwap(cacheCtx, k.moduleAddr, pool.PoolID, true); err != nil {
		return "", err
	}
	if err := k.engine.MintShares(cacheCtx, k.moduleAddr, pool.PoolID, controller, initialSupply); err != nil {
		return "", err
	}

	sp.PoolID = pool.PoolID
	if sp.Rights.CanChangeCap {
		sp.Cap = initialSupply
	}
	if minPeriod > 0 {
		sp.MinimumWeightChangeBlockPeriod = minPeriod
	}
	if addTokenLock > 0 {
		sp.AddTokenTimeLockInBlocks = addTokenLock
	}
	sp.UpdatedAt = ctx.BlockTime().Unix()
	k.SetSmartPool(cacheCtx, sp)
	write()

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"smartpool_create_pool",
			sdk.NewAttribute("smart_pool_id", smartPoolID),
			sdk.NewAttribute("pool_id", pool.PoolID),
			sdk.NewAttribute("initial_supply", initialSupply.String()),
		),
	)

	k.logger.Info("Smart pool instantiated",
		"smart_pool_id", smartPoolID,
		"pool_id", pool.PoolID,
		"initial_supply", initialSupply.String(),
	)

	return pool.PoolID, nil
}

// SetSwapFee updates the swap fee of the wrapped pool
func (k *Keeper) SetSwapFee(ctx sdk.Context, controller, smartPoolID string, swapFee math.LegacyDec) error {
	if err := k.acquireSmartPool(smartPoolID); err != nil {
		return err
	}
	defer k.releaseSmartPool(smartPoolID)

	sp, err := k.loadSmartPoolForController(ctx, smartPoolID, controller)
	if err != nil {
		return err
	}
	if !sp.Rights.CanChangeSwapFee {
		return types.ErrNotConfigurableSwapFee
	}
	if !sp.PoolCreated() {
		return types.ErrPoolNotCreated
	}

	cacheCtx, write := ctx.CacheContext()
	if err := k.engine.SetSwapFee(cacheCtx, k.moduleAddr, sp.PoolID, swapFee); err != nil {
		return err
	}
	sp.SwapFee = swapFee
	sp.UpdatedAt = ctx.BlockTime().Unix()
	k.SetSmartPool(cacheCtx, sp)
	write()

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"smartpool_set_swap_fee",
			sdk.NewAttribute("smart_pool_id", smartPoolID),
			sdk.NewAttribute("swap_fee", swapFee.String()),
		),
	)

	return nil
}

// SetPublicSwap pauses or resumes swapping on the wrapped pool
func (k *Keeper) SetPublicSwap(ctx sdk.Context, controller, smartPoolID string, public bool) error {
	if err := k.acquireSmartPool(smartPoolID); err != nil {
		return err
	}
	defer k.releaseSmartPool(smartPoolID)

	sp, err := k.loadSmartPoolForController(ctx, smartPoolID, controller)
	if err != nil {
		return err
	}
	if !sp.Rights.CanPauseSwapping {
		return types.ErrNotPausableSwap
	}
	if !sp.PoolCreated() {
		return types.ErrPoolNotCreated
	}

	cacheCtx, write := ctx.CacheContext()
	if err := k.engine.SetPublicSwap(cacheCtx, k.moduleAddr, sp.PoolID, public); err != nil {
		return err
	}
	sp.UpdatedAt = ctx.BlockTime().Unix()
	k.SetSmartPool(cacheCtx, sp)
	write()

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"smartpool_set_public_swap",
			sdk.NewAttribute("smart_pool_id", smartPoolID),
			sdk.NewAttribute("public", strconv.FormatBool(public)),
		),
	)

	return nil
}

// SetController hands control of a smart pool to a new address. The module
// account keeps controlling the wrapped engine pool; only the governance seat
// changes.
func (k *Keeper) SetController(ctx sdk.Context, controller, smartPoolID, newController string) error {
	if err := k.acquireSmartPool(smartPoolID); err != nil {
		return err
	}
	defer k.releaseSmartPool(smartPoolID)

	sp, err := k.loadSmartPoolForController(ctx, smartPoolID, controller)
	if err != nil {
		return err
	}
	if _, err := sdk.AccAddressFromBech32(newController); err != nil {
		return types.ErrInvalidAddress
	}

	sp.Controller = newController
	sp.UpdatedAt = ctx.BlockTime().Unix()
	k.SetSmartPool(ctx, sp)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"smartpool_set_controller",
			sdk.NewAttribute("smart_pool_id", smartPoolID),
			sdk.NewAttribute("controller", newController),
		),
	)

	return nil
}

// SetCap changes the share supply cap. The cap gates future mints only; a cap
// below the current supply blocks joins until exits bring the supply back
// under it.
func (k *Keeper) SetCap(ctx sdk.Context, controller, smartPoolID string, limit math.LegacyDec) error {
	if err := k.acquireSmartPool(smartPoolID); err != nil {
		return err
	}
	defer k.releaseSmartPool(smartPoolID)

	sp, err := k.loadSmartPoolForController(ctx, smartPoolID, controller)
	if err != nil {
		return err
	}
	if !sp.Rights.CanChangeCap {
		return types.ErrNotConfigurableCap
	}
	if limit.IsNil() || limit.IsNegative() {
		return types.ErrInvalidAmount
	}

	sp.Cap = limit
	sp.UpdatedAt = ctx.BlockTime().Unix()
	k.SetSmartPool(ctx, sp)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"smartpool_set_cap",
			sdk.NewAttribute("smart_pool_id", smartPoolID),
			sdk.NewAttribute("cap", limit.String()),
		),
	)

	return nil
}
