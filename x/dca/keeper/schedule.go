package keeper

import (
	"context"
	"strconv"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/hydrax/x/dca/types"
	routertypes "github.com/paw-chain/hydrax/x/router/types"
	sharedkeeper "github.com/paw-chain/hydrax/x/shared/keeper"
)

// Schedule validates schedule, reserves its budget and plans its first
// execution at executionBlock, or at the next block when nil.
func (k Keeper) Schedule(ctx context.Context, schedule types.Schedule, executionBlock *uint64) (uint64, error) {
	if err := schedule.Validate(); err != nil {
		return 0, err
	}
	owner, err := sdk.AccAddressFromBech32(schedule.Owner)
	if err != nil {
		return 0, types.ErrInvalidAddress.Wrapf("owner: %s", err)
	}
	params := k.GetParams(ctx)
	if schedule.Period < params.MinimalPeriod {
		return 0, types.ErrPeriodTooShort.Wrapf("%d < %d", schedule.Period, params.MinimalPeriod)
	}
	order := schedule.Order
	for _, asset := range []string{order.AssetIn, order.AssetOut} {
		if !k.ledger.AssetExists(ctx, asset) {
			return 0, types.ErrAssetNotRegistered.Wrap(asset)
		}
	}
	if len(order.Route) == 0 {
		if _, err := k.router.GetRoute(ctx, routertypes.NewAssetPair(order.AssetIn, order.AssetOut)); err != nil {
			return 0, types.ErrRouteNotFound.Wrapf("%s -> %s: %s", order.AssetIn, order.AssetOut, err)
		}
	}
	minBudget, err := k.convertFromNative(ctx, params, order.AssetIn, params.MinBudgetInNativeCurrency)
	if err != nil {
		return 0, err
	}
	if schedule.TotalAmount.LT(minBudget) {
		return 0, types.ErrInsufficientBudget.Wrapf("%s%s < %s%s", schedule.TotalAmount, order.AssetIn, minBudget, order.AssetIn)
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	current := uint64(sdkCtx.BlockHeight())
	target := current + 1
	if executionBlock != nil {
		if *executionBlock <= current {
			return 0, types.ErrBlockNumberNotInFuture.Wrapf("%d <= current %d", *executionBlock, current)
		}
		target = *executionBlock
	}

	cacheCtx, write := sdkCtx.CacheContext()
	schedule.ID = k.nextScheduleID(cacheCtx)
	if err := k.ledger.ReserveNamed(cacheCtx, types.NamedReserveID, owner, order.AssetIn, schedule.TotalAmount); err != nil {
		return 0, err
	}
	k.setSchedule(cacheCtx, schedule)
	cacheCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeScheduled,
			sdk.NewAttribute(types.AttributeKeyScheduleID, strconv.FormatUint(schedule.ID, 10)),
			sdk.NewAttribute(types.AttributeKeyOwner, schedule.Owner),
		),
	)
	if _, err := k.plan(cacheCtx, schedule, target); err != nil {
		return 0, err
	}
	write()

	k.logger(ctx).Info("schedule created", "schedule_id", schedule.ID, "owner", schedule.Owner, "total_amount", schedule.TotalAmount.String())
	return schedule.ID, nil
}

// Pause suspends schedule id. Only the owner may pause. A non-zero
// nextExecutionBlock must match the block the schedule is planned at.
func (k Keeper) Pause(ctx context.Context, who sdk.AccAddress, id, nextExecutionBlock uint64) error {
	schedule, err := k.GetSchedule(ctx, id)
	if err != nil {
		return err
	}
	if schedule.Owner != who.String() {
		return types.ErrForbidden.Wrapf("%s does not own schedule %d", who, id)
	}
	if k.IsSuspended(ctx, id) {
		return types.ErrInvalidState.Wrapf("schedule %d is already suspended", id)
	}
	if err := k.checkPlannedBlock(ctx, id, nextExecutionBlock); err != nil {
		return err
	}
	k.unplan(ctx, id)
	k.getStore(ctx).Set(types.SuspendedKey(id), []byte{1})

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypePaused,
			sdk.NewAttribute(types.AttributeKeyScheduleID, strconv.FormatUint(id, 10)),
			sdk.NewAttribute(types.AttributeKeyOwner, schedule.Owner),
		),
	)
	return nil
}

// Resume plans a suspended schedule again and clears its failure count.
func (k Keeper) Resume(ctx context.Context, who sdk.AccAddress, id uint64, executionBlock *uint64) error {
	schedule, err := k.GetSchedule(ctx, id)
	if err != nil {
		return err
	}
	if schedule.Owner != who.String() {
		return types.ErrForbidden.Wrapf("%s does not own schedule %d", who, id)
	}
	if !k.IsSuspended(ctx, id) {
		return types.ErrInvalidState.Wrapf("schedule %d is not suspended", id)
	}
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	current := uint64(sdkCtx.BlockHeight())
	target := current + 1
	if executionBlock != nil {
		if *executionBlock <= current {
			return types.ErrBlockNumberNotInFuture.Wrapf("%d <= current %d", *executionBlock, current)
		}
		target = *executionBlock
	}

	cacheCtx, write := sdkCtx.CacheContext()
	k.getStore(cacheCtx).Delete(types.SuspendedKey(id))
	k.setRetries(cacheCtx, id, 0)
	if _, err := k.plan(cacheCtx, schedule, target); err != nil {
		return err
	}
	cacheCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeResumed,
			sdk.NewAttribute(types.AttributeKeyScheduleID, strconv.FormatUint(id, 10)),
			sdk.NewAttribute(types.AttributeKeyOwner, schedule.Owner),
		),
	)
	write()
	return nil
}

// Terminate removes schedule id and releases its remaining budget. The
// owner and the module authority may terminate.
func (k Keeper) Terminate(ctx context.Context, who sdk.AccAddress, id, nextExecutionBlock uint64) error {
	schedule, err := k.GetSchedule(ctx, id)
	if err != nil {
		return err
	}
	isAuthority := sharedkeeper.IsAuthority(k.authority, who)
	if schedule.Owner != who.String() && !isAuthority {
		return types.ErrForbidden.Wrapf("%s may not terminate schedule %d", who, id)
	}
	if err := k.checkPlannedBlock(ctx, id, nextExecutionBlock); err != nil {
		return err
	}
	origin := "owner"
	if isAuthority {
		origin = "authority"
	}
	k.terminate(ctx, schedule, nil)
	k.metrics.Terminations.WithLabelValues(origin).Inc()
	return nil
}

func (k Keeper) checkPlannedBlock(ctx context.Context, id, block uint64) error {
	if block == 0 || k.IsSuspended(ctx, id) {
		return nil
	}
	planned, found := k.GetScheduleExecutionBlock(ctx, id)
	if !found || planned != block {
		return types.ErrScheduleNotFound.Wrapf("schedule %d is not planned at block %d", id, block)
	}
	return nil
}

// plan puts schedule into the first bucket with room among
// target + 2^k - 1 for k up to RetryToSearchForFreeBlock.
func (k Keeper) plan(ctx context.Context, schedule types.Schedule, target uint64) (uint64, error) {
	capacity := int(k.GetParams(ctx).MaxSchedulesPerBlock)
	for i := 0; i <= types.RetryToSearchForFreeBlock; i++ {
		block := target + (uint64(1) << i) - 1
		ids := k.GetScheduleIdsPerBlock(ctx, block)
		if len(ids) >= capacity {
			continue
		}
		k.setScheduleIdsPerBlock(ctx, block, append(ids, schedule.ID))
		setUint64(k.getStore(ctx), types.ExecutionBlockKey(schedule.ID), block)

		sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeExecutionPlanned,
				sdk.NewAttribute(types.AttributeKeyScheduleID, strconv.FormatUint(schedule.ID, 10)),
				sdk.NewAttribute(types.AttributeKeyOwner, schedule.Owner),
				sdk.NewAttribute(types.AttributeKeyBlock, strconv.FormatUint(block, 10)),
			),
		)
		return block, nil
	}
	return 0, types.ErrNoFreeBlockFound.Wrapf("schedule %d from block %d", schedule.ID, target)
}

// unplan removes id from the bucket it is planned in.
func (k Keeper) unplan(ctx context.Context, id uint64) {
	store := k.getStore(ctx)
	block, found := getUint64(store, types.ExecutionBlockKey(id))
	if !found {
		return
	}
	store.Delete(types.ExecutionBlockKey(id))
	ids := k.GetScheduleIdsPerBlock(ctx, block)
	kept := ids[:0]
	for _, other := range ids {
		if other != id {
			kept = append(kept, other)
		}
	}
	k.setScheduleIdsPerBlock(ctx, block, kept)
}

// remove deletes every trace of schedule and releases its budget.
func (k Keeper) remove(ctx context.Context, schedule types.Schedule) math.Int {
	k.unplan(ctx, schedule.ID)
	store := k.getStore(ctx)
	store.Delete(types.ScheduleKey(schedule.ID))
	store.Delete(types.RetriesKey(schedule.ID))
	store.Delete(types.SuspendedKey(schedule.ID))
	owner := sdk.MustAccAddressFromBech32(schedule.Owner)
	return k.ledger.UnreserveNamed(ctx, types.NamedReserveID, owner, schedule.Order.AssetIn, schedule.TotalAmount)
}

func (k Keeper) terminate(ctx context.Context, schedule types.Schedule, cause error) {
	released := k.remove(ctx, schedule)
	attrs := []sdk.Attribute{
		sdk.NewAttribute(types.AttributeKeyScheduleID, strconv.FormatUint(schedule.ID, 10)),
		sdk.NewAttribute(types.AttributeKeyOwner, schedule.Owner),
		sdk.NewAttribute(types.AttributeKeyAmountIn, released.String()),
	}
	if cause != nil {
		attrs = append(attrs, sdk.NewAttribute(types.AttributeKeyError, cause.Error()))
	}
	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(sdk.NewEvent(types.EventTypeTerminated, attrs...))
	k.logger(ctx).Info("schedule terminated", "schedule_id", schedule.ID, "released", released.String())
}

func (k Keeper) complete(ctx context.Context, schedule types.Schedule) {
	released := k.remove(ctx, schedule)
	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeCompleted,
			sdk.NewAttribute(types.AttributeKeyScheduleID, strconv.FormatUint(schedule.ID, 10)),
			sdk.NewAttribute(types.AttributeKeyOwner, schedule.Owner),
			sdk.NewAttribute(types.AttributeKeyAmountIn, released.String()),
		),
	)
	k.metrics.Completions.Inc()
}

func (k Keeper) suspend(ctx context.Context, schedule types.Schedule, cause error) {
	k.unplan(ctx, schedule.ID)
	k.getStore(ctx).Set(types.SuspendedKey(schedule.ID), []byte{1})
	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeSuspended,
			sdk.NewAttribute(types.AttributeKeyScheduleID, strconv.FormatUint(schedule.ID, 10)),
			sdk.NewAttribute(types.AttributeKeyOwner, schedule.Owner),
			sdk.NewAttribute(types.AttributeKeyError, cause.Error()),
		),
	)
	k.metrics.Suspensions.Inc()
}

// convertFromNative values amount of the native asset in asset using the
// oracle price.
func (k Keeper) convertFromNative(ctx context.Context, params types.Params, asset string, amount math.Int) (math.Int, error) {
	native := k.ledger.NativeAsset(ctx)
	if asset == native || amount.IsZero() {
		return amount, nil
	}
	price, err := k.oracle.Price(ctx, params.OracleSource, native, asset, params.OraclePeriod)
	if err != nil {
		return math.Int{}, types.ErrZeroPrice.Wrapf("%s/%s: %s", native, asset, err)
	}
	if !price.IsPositive() {
		return math.Int{}, types.ErrZeroPrice.Wrapf("%s/%s", native, asset)
	}
	return price.MulInt(amount).TruncateInt(), nil
}
