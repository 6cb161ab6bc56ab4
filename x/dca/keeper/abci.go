package keeper

import (
	"context"
	"strconv"
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/hydrax/x/dca/types"
	ledgertypes "github.com/paw-chain/hydrax/x/ledger/types"
	routertypes "github.com/paw-chain/hydrax/x/router/types"
	sharedabci "github.com/paw-chain/hydrax/x/shared/abci"
)

// BeginBlocker executes the schedules planned at the current block in the
// order they were planned.
func (k Keeper) BeginBlocker(ctx context.Context) error {
	start := time.Now()
	defer func() {
		k.metrics.BlockerLatency.Observe(time.Since(start).Seconds())
	}()

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	block := uint64(sdkCtx.BlockHeight())
	ids := k.GetScheduleIdsPerBlock(ctx, block)
	k.metrics.DueSchedules.Set(float64(len(ids)))
	if len(ids) == 0 {
		return nil
	}
	k.setScheduleIdsPerBlock(ctx, block, nil)

	handler := sharedabci.NewBlockerErrorHandler(sdkCtx, types.ModuleName)
	params := k.GetParams(ctx)
	for i, id := range ids {
		k.getStore(ctx).Delete(types.ExecutionBlockKey(id))
		schedule, err := k.GetSchedule(ctx, id)
		if err != nil {
			handler.HandleError("load_schedule", sharedabci.SeverityMedium, err)
			continue
		}
		if k.IsSuspended(ctx, id) {
			continue
		}
		// Bucket filled before MaxSchedulesPerBlock was lowered.
		if i >= int(params.MaxSchedulesPerBlock) {
			k.replan(ctx, handler, schedule, block+1)
			continue
		}
		k.execute(ctx, handler, params, block, schedule)
	}
	return nil
}

// trade is one execution of an order after fee and slippage.
type trade struct {
	amountIn  math.Int // sold, sell orders only
	amountOut math.Int // bought, buy orders only
	limit     math.Int
	// unreserve is the budget released for the trade, fee excluded.
	unreserve math.Int
}

func (t trade) cost(fee math.Int) math.Int {
	return t.unreserve.Add(fee)
}

func slippageOf(schedule types.Schedule, params types.Params) math.LegacyDec {
	if schedule.Slippage != nil {
		return *schedule.Slippage
	}
	return params.DefaultSlippage
}

// newTrade derives the trade amounts and limit from the spot price. A
// sell accepts the lower of its own minimum and the slippage bound; a buy
// the higher of its own maximum and the slippage bound.
func newTrade(schedule types.Schedule, params types.Params, spot math.LegacyDec, fee math.Int) trade {
	order := schedule.Order
	slippage := slippageOf(schedule, params)
	if order.Kind == types.OrderKindSell {
		bound := spot.MulInt(order.Amount).Mul(math.LegacyOneDec().Sub(slippage)).TruncateInt()
		return trade{
			amountIn:  order.Amount.Sub(fee),
			limit:     math.MinInt(order.Limit, bound),
			unreserve: order.Amount.Sub(fee),
		}
	}
	bound := math.LegacyNewDecFromInt(order.Amount).Quo(spot).Mul(math.LegacyOneDec().Add(slippage)).TruncateInt()
	limit := math.MaxInt(order.Limit, bound)
	return trade{
		amountOut: order.Amount,
		limit:     limit,
		unreserve: limit,
	}
}

func (k Keeper) execute(ctx context.Context, handler *sharedabci.BlockerErrorHandler, params types.Params, block uint64, schedule types.Schedule) {
	order := schedule.Order
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeExecutionStarted,
			sdk.NewAttribute(types.AttributeKeyScheduleID, strconv.FormatUint(schedule.ID, 10)),
			sdk.NewAttribute(types.AttributeKeyBlock, strconv.FormatUint(block, 10)),
		),
	)

	fee, err := k.convertFromNative(ctx, params, order.AssetIn, params.ExecutionFee)
	if err != nil {
		k.fail(ctx, handler, params, block, schedule, math.ZeroInt(), err)
		return
	}
	route := order.Route
	if len(route) == 0 {
		route, err = k.router.GetRoute(ctx, routertypes.NewAssetPair(order.AssetIn, order.AssetOut))
		if err != nil {
			k.fail(ctx, handler, params, block, schedule, math.ZeroInt(), err)
			return
		}
	}
	spot, err := k.router.SpotPrice(ctx, route)
	if err == nil && !spot.IsPositive() {
		err = types.ErrZeroPrice.Wrapf("route %s", route)
	}
	if err != nil {
		k.fail(ctx, handler, params, block, schedule, math.ZeroInt(), err)
		return
	}

	t := newTrade(schedule, params, spot, fee)
	if schedule.TotalAmount.LT(t.cost(fee)) {
		k.complete(ctx, schedule)
		return
	}
	if order.Kind == types.OrderKindSell && !t.amountIn.IsPositive() {
		k.fail(ctx, handler, params, block, schedule, math.ZeroInt(),
			types.ErrInsufficientBudget.Wrapf("amount %s does not cover fee %s", order.Amount, fee))
		return
	}
	// An unstable price defers the trade without a fee or a retry, so the
	// schedule is replanned every block until the price settles.
	if err := k.checkPriceStability(ctx, params, order, spot); err != nil {
		handler.HandleError("price_stability", sharedabci.SeverityLow, err)
		k.replan(ctx, handler, schedule, block+1)
		return
	}

	owner := sdk.MustAccAddressFromBech32(schedule.Owner)
	if fee.IsPositive() {
		if err := k.chargeFee(ctx, owner, order.AssetIn, fee); err != nil {
			k.fail(ctx, handler, params, block, schedule, math.ZeroInt(), err)
			return
		}
		schedule.TotalAmount = schedule.TotalAmount.Sub(fee)
		k.setSchedule(ctx, schedule)
	}

	cacheCtx, write := sdkCtx.CacheContext()
	if released := k.ledger.UnreserveNamed(cacheCtx, types.NamedReserveID, owner, order.AssetIn, t.unreserve); !released.Equal(t.unreserve) {
		k.fail(ctx, handler, params, block, schedule, fee,
			types.ErrInvalidState.Wrapf("reservation holds %s%s, trade needs %s%s", released, order.AssetIn, t.unreserve, order.AssetIn))
		return
	}
	amountIn, amountOut := t.amountIn, t.amountOut
	switch order.Kind {
	case types.OrderKindSell:
		amountOut, err = k.router.Sell(cacheCtx, owner, order.AssetIn, order.AssetOut, t.amountIn, t.limit, route)
	default:
		amountIn, err = k.router.Buy(cacheCtx, owner, order.AssetIn, order.AssetOut, t.amountOut, t.limit, route)
	}
	if err != nil {
		k.fail(ctx, handler, params, block, schedule, fee, err)
		return
	}
	write()

	schedule.TotalAmount = schedule.TotalAmount.Sub(t.unreserve)
	k.setSchedule(ctx, schedule)
	k.setRetries(ctx, schedule.ID, 0)
	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeTradeExecuted,
			sdk.NewAttribute(types.AttributeKeyScheduleID, strconv.FormatUint(schedule.ID, 10)),
			sdk.NewAttribute(types.AttributeKeyOwner, schedule.Owner),
			sdk.NewAttribute(types.AttributeKeyAmountIn, amountIn.String()),
			sdk.NewAttribute(types.AttributeKeyAmountOut, amountOut.String()),
			sdk.NewAttribute(types.AttributeKeyFee, fee.String()),
		),
	)
	k.metrics.Executions.WithLabelValues(string(order.Kind)).Inc()

	if schedule.TotalAmount.IsZero() {
		k.complete(ctx, schedule)
		return
	}
	k.replan(ctx, handler, schedule, block+schedule.Period)
}

// chargeFee moves fee from the schedule reservation to the treasury.
func (k Keeper) chargeFee(ctx context.Context, owner sdk.AccAddress, asset string, fee math.Int) error {
	cacheCtx, write := sdk.UnwrapSDKContext(ctx).CacheContext()
	if released := k.ledger.UnreserveNamed(cacheCtx, types.NamedReserveID, owner, asset, fee); !released.Equal(fee) {
		return types.ErrInvalidState.Wrapf("reservation holds %s%s, fee is %s%s", released, asset, fee, asset)
	}
	if err := k.ledger.Transfer(cacheCtx, owner, ledgertypes.TreasuryAccount(), asset, fee); err != nil {
		return err
	}
	write()
	return nil
}

// checkPriceStability rejects a spot price too far from the oracle price.
// Pairs the oracle does not track are not checked.
func (k Keeper) checkPriceStability(ctx context.Context, params types.Params, order types.Order, spot math.LegacyDec) error {
	price, err := k.oracle.Price(ctx, params.OracleSource, order.AssetIn, order.AssetOut, params.OraclePeriod)
	if err != nil || !price.IsPositive() {
		return nil
	}
	diff := spot.Sub(price).Abs().Quo(price)
	if diff.GT(params.MaxPriceDifferenceBetweenBlocks) {
		return types.ErrPriceUnstable.Wrapf("spot %s, oracle %s", spot, price)
	}
	return nil
}

// fail records a failed execution. Structural errors suspend at once;
// other errors are retried with exponential backoff until the retry limit
// suspends the schedule.
func (k Keeper) fail(ctx context.Context, handler *sharedabci.BlockerErrorHandler, params types.Params, block uint64, schedule types.Schedule, fee math.Int, cause error) {
	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeTradeFailed,
			sdk.NewAttribute(types.AttributeKeyScheduleID, strconv.FormatUint(schedule.ID, 10)),
			sdk.NewAttribute(types.AttributeKeyOwner, schedule.Owner),
			sdk.NewAttribute(types.AttributeKeyFee, fee.String()),
			sdk.NewAttribute(types.AttributeKeyError, cause.Error()),
		),
	)
	handler.HandleError("execute_schedule", sharedabci.SeverityLow, cause)

	if types.IsStructuralError(cause) {
		k.metrics.Failures.WithLabelValues(string(schedule.Order.Kind), "structural").Inc()
		k.suspend(ctx, schedule, cause)
		return
	}
	k.metrics.Failures.WithLabelValues(string(schedule.Order.Kind), "retriable").Inc()

	retries := k.GetRetries(ctx, schedule.ID) + 1
	k.setRetries(ctx, schedule.ID, retries)
	maxRetries := params.MaxRetries
	if schedule.MaxRetries != nil {
		maxRetries = *schedule.MaxRetries
	}
	if retries >= maxRetries {
		k.suspend(ctx, schedule, cause)
		return
	}
	k.replan(ctx, handler, schedule, block+RetryDelay(params.RetryBaseDelay, retries))
}

// RetryDelay returns the blocks to wait after the given number of
// consecutive failures: base, 2*base, 4*base and so on.
func RetryDelay(base uint64, retries uint32) uint64 {
	if retries == 0 {
		return base
	}
	shift := retries - 1
	if shift > 16 {
		shift = 16
	}
	return base << shift
}

// replan plans schedule from target on, terminating it when no block in
// the search window has room.
func (k Keeper) replan(ctx context.Context, handler *sharedabci.BlockerErrorHandler, schedule types.Schedule, target uint64) {
	if _, err := k.plan(ctx, schedule, target); err != nil {
		handler.HandleError("plan", sharedabci.SeverityHigh, err)
		k.terminate(ctx, schedule, err)
		k.metrics.Terminations.WithLabelValues("capacity").Inc()
	}
}
