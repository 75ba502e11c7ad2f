package keeper

import (
	"strconv"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/openalpha/amm-dex/x/smartpool/types"
	wptypes "github.com/openalpha/amm-dex/x/weightedpool/types"

	"github.com/openalpha/amm-dex/ammmath"
)

// CommitAddToken records the intent to bind a new token. No funds move and
// the pool composition stays put until ApplyAddToken runs after the pool's
// timelock. Only one commit may be pending at a time.
func (k *Keeper) CommitAddToken(ctx sdk.Context, controller, smartPoolID, denom string, balance, weight math.LegacyDec) (int64, int64, error) {
	if err := k.acquireSmartPool(smartPoolID); err != nil {
		return 0, 0, err
	}
	defer k.releaseSmartPool(smartPoolID)

	sp, err := k.loadSmartPoolForController(ctx, smartPoolID, controller)
	if err != nil {
		return 0, 0, err
	}
	if !sp.Rights.CanAddRemoveTokens {
		return 0, 0, types.ErrNotConfigurableTokens
	}
	if !sp.PoolCreated() {
		return 0, 0, types.ErrPoolNotCreated
	}
	if sp.HasGradualUpdate() {
		return 0, 0, types.ErrUpdateDuringGradual
	}
	if sp.HasTokenCommit() {
		return 0, 0, types.ErrCommitPending
	}
	if denom == "" {
		return 0, 0, types.ErrInvalidConfig
	}
	pool := k.engine.GetPool(ctx, sp.PoolID)
	if pool == nil {
		return 0, 0, types.ErrPoolNotCreated
	}
	if pool.IsBound(denom) {
		return 0, 0, wptypes.ErrTokenAlreadyBound
	}
	if pool.NumTokens() >= wptypes.MaxBoundTokens {
		return 0, 0, wptypes.ErrMaxTokens
	}
	if balance.IsNil() || weight.IsNil() {
		return 0, 0, types.ErrInvalidAmount
	}
	if err := wptypes.ValidateBalance(balance); err != nil {
		return 0, 0, err
	}
	if err := wptypes.ValidateWeight(weight); err != nil {
		return 0, 0, err
	}

	commitBlock := ctx.BlockHeight()
	sp.NewToken = types.NewTokenCommit{
		Denom:       denom,
		Balance:     balance,
		Weight:      weight,
		CommitBlock: commitBlock,
		Committed:   true,
	}
	sp.UpdatedAt = ctx.BlockTime().Unix()
	k.SetSmartPool(ctx, sp)

	unlockBlock := commitBlock + sp.AddTokenTimeLockInBlocks

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"smartpool_commit_add_token",
			sdk.NewAttribute("smart_pool_id", smartPoolID),
			sdk.NewAttribute("denom", denom),
			sdk.NewAttribute("commit_block", strconv.FormatInt(commitBlock, 10)),
			sdk.NewAttribute("unlock_block", strconv.FormatInt(unlockBlock, 10)),
		),
	)

	k.logger.Info("Token add committed",
		"smart_pool_id", smartPoolID,
		"denom", denom,
		"unlock_block", unlockBlock,
	)

	return commitBlock, unlockBlock, nil
}

// ApplyAddToken executes a pending token commit once the timelock has
// elapsed. The committed balance is pulled from the controller, the token is
// bound at the committed weight, and supply*weight/totalWeight new shares
// are minted to the controller.
func (k *Keeper) ApplyAddToken(ctx sdk.Context, controller, smartPoolID string) (string, math.LegacyDec, error) {
	if err := k.acquireSmartPool(smartPoolID); err != nil {
		return "", math.LegacyDec{}, err
	}
	defer k.releaseSmartPool(smartPoolID)

	sp, err := k.loadSmartPoolForController(ctx, smartPoolID, controller)
	if err != nil {
		return "", math.LegacyDec{}, err
	}
	if !sp.Rights.CanAddRemoveTokens {
		return "", math.LegacyDec{}, types.ErrNotConfigurableTokens
	}
	if !sp.PoolCreated() {
		return "", math.LegacyDec{}, types.ErrPoolNotCreated
	}
	if sp.HasGradualUpdate() {
		return "", math.LegacyDec{}, types.ErrUpdateDuringGradual
	}
	if !sp.HasTokenCommit() {
		return "", math.LegacyDec{}, types.ErrNoTokenCommit
	}
	if ctx.BlockHeight() < sp.NewToken.CommitBlock+sp.AddTokenTimeLockInBlocks {
		return "", math.LegacyDec{}, types.ErrTimelockNotElapsed
	}
	pool := k.engine.GetPool(ctx, sp.PoolID)
	if pool == nil {
		return "", math.LegacyDec{}, types.ErrPoolNotCreated
	}

	commit := sp.NewToken
	scaled, err := ammmath.Mul(pool.Shares.TotalSupply, commit.Weight)
	if err != nil {
		return "", math.LegacyDec{}, err
	}
	sharesToMint, err := ammmath.Div(scaled, pool.TotalWeight())
	if err != nil {
		return "", math.LegacyDec{}, err
	}
	newSupply, err := ammmath.Add(pool.Shares.TotalSupply, sharesToMint)
	if err != nil {
		return "", math.LegacyDec{}, err
	}
	if err := checkCap(sp, newSupply); err != nil {
		return "", math.LegacyDec{}, err
	}

	cacheCtx, write := ctx.CacheContext()
	if err := k.pullTokens(cacheCtx, controller, commit.Denom, commit.Balance); err != nil {
		return "", math.LegacyDec{}, err
	}
	if err := k.engine.Bind(cacheCtx, k.moduleAddr, sp.PoolID, commit.Denom, commit.Balance, commit.Weight); err != nil {
		return "", math.LegacyDec{}, err
	}
	if err := k.engine.MintShares(cacheCtx, k.moduleAddr, sp.PoolID, controller, sharesToMint); err != nil {
		return "", math.LegacyDec{}, err
	}
	sp.ClearTokenCommit()
	sp.UpdatedAt = ctx.BlockTime().Unix()
	k.SetSmartPool(cacheCtx, sp)
	write()

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"smartpool_apply_add_token",
			sdk.NewAttribute("smart_pool_id", smartPoolID),
			sdk.NewAttribute("denom", commit.Denom),
			sdk.NewAttribute("balance", commit.Balance.String()),
			sdk.NewAttribute("weight", commit.Weight.String()),
			sdk.NewAttribute("shares_minted", sharesToMint.String()),
		),
	)

	k.logger.Info("Token added",
		"smart_pool_id", smartPoolID,
		"denom", commit.Denom,
		"shares_minted", sharesToMint.String(),
	)

	return commit.Denom, sharesToMint, nil
}

// RemoveToken unbinds a token entirely. The controller surrenders
// supply*weight/totalWeight shares and receives the token's whole pool
// balance. Blocked while a token commit or gradual update is pending.
func (k *Keeper) RemoveToken(ctx sdk.Context, controller, smartPoolID, denom string) (math.LegacyDec, math.LegacyDec, error) {
	if err := k.acquireSmartPool(smartPoolID); err != nil {
		return math.LegacyDec{}, math.LegacyDec{}, err
	}
	defer k.releaseSmartPool(smartPoolID)

	sp, err := k.loadSmartPoolForController(ctx, smartPoolID, controller)
	if err != nil {
		return math.LegacyDec{}, math.LegacyDec{}, err
	}
	if !sp.Rights.CanAddRemoveTokens {
		return math.LegacyDec{}, math.LegacyDec{}, types.ErrNotConfigurableTokens
	}
	if !sp.PoolCreated() {
		return math.LegacyDec{}, math.LegacyDec{}, types.ErrPoolNotCreated
	}
	if sp.HasGradualUpdate() {
		return math.LegacyDec{}, math.LegacyDec{}, types.ErrUpdateDuringGradual
	}
	if sp.HasTokenCommit() {
		return math.LegacyDec{}, math.LegacyDec{}, types.ErrCommitPending
	}
	pool := k.engine.GetPool(ctx, sp.PoolID)
	if pool == nil {
		return math.LegacyDec{}, math.LegacyDec{}, types.ErrPoolNotCreated
	}
	record, found := pool.GetRecord(denom)
	if !found {
		return math.LegacyDec{}, math.LegacyDec{}, wptypes.ErrTokenNotBound
	}
	if pool.NumTokens()-1 < wptypes.MinBoundTokens {
		return math.LegacyDec{}, math.LegacyDec{}, wptypes.ErrMinTokens
	}

	scaled, err := ammmath.Mul(pool.Shares.TotalSupply, record.Weight)
	if err != nil {
		return math.LegacyDec{}, math.LegacyDec{}, err
	}
	sharesToBurn, err := ammmath.Div(scaled, pool.TotalWeight())
	if err != nil {
		return math.LegacyDec{}, math.LegacyDec{}, err
	}

	cacheCtx, write := ctx.CacheContext()
	if err := k.engine.BurnShares(cacheCtx, k.moduleAddr, sp.PoolID, controller, sharesToBurn); err != nil {
		return math.LegacyDec{}, math.LegacyDec{}, err
	}
	balanceReturned, err := k.engine.Unbind(cacheCtx, k.moduleAddr, sp.PoolID, denom)
	if err != nil {
		return math.LegacyDec{}, math.LegacyDec{}, err
	}
	if err := k.pushTokens(cacheCtx, controller, denom, balanceReturned); err != nil {
		return math.LegacyDec{}, math.LegacyDec{}, err
	}
	sp.UpdatedAt = ctx.BlockTime().Unix()
	k.SetSmartPool(cacheCtx, sp)
	write()

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"smartpool_remove_token",
			sdk.NewAttribute("smart_pool_id", smartPoolID),
			sdk.NewAttribute("denom", denom),
			sdk.NewAttribute("shares_burned", sharesToBurn.String()),
			sdk.NewAttribute("balance_returned", balanceReturned.String()),
		),
	)

	k.logger.Info("Token removed",
		"smart_pool_id", smartPoolID,
		"denom", denom,
		"shares_burned", sharesToBurn.String(),
	)

	return sharesToBurn, balanceReturned, nil
}
