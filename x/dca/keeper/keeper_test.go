package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	keepertest "github.com/paw-chain/hydrax/testutil/keeper"
	circuitbreakertypes "github.com/paw-chain/hydrax/x/circuitbreaker/types"
	"github.com/paw-chain/hydrax/x/dca/keeper"
	"github.com/paw-chain/hydrax/x/dca/types"
	ledgertypes "github.com/paw-chain/hydrax/x/ledger/types"
	omnipooltypes "github.com/paw-chain/hydrax/x/omnipool/types"
	oracletypes "github.com/paw-chain/hydrax/x/oracle/types"
	routertypes "github.com/paw-chain/hydrax/x/router/types"
)

var owner = keepertest.TestAddr("dca-owner")

func setup(t *testing.T) *keepertest.Env {
	t.Helper()
	e := keepertest.NewEnv(t)
	e.DefaultOmnipool(t)
	e.Fund(t, owner, keepertest.Native, keepertest.Units(1_000))
	return e
}

func sellSchedule(total, amount int64) types.Schedule {
	return types.Schedule{
		Owner:       owner.String(),
		Period:      5,
		TotalAmount: keepertest.Units(total),
		Order: types.Order{
			Kind:     types.OrderKindSell,
			AssetIn:  keepertest.Native,
			AssetOut: keepertest.DAI,
			Amount:   keepertest.Units(amount),
			Limit:    math.ZeroInt(),
		},
	}
}

func buySchedule(total, amount int64) types.Schedule {
	s := sellSchedule(total, amount)
	s.Order.Kind = types.OrderKindBuy
	return s
}

func reserved(e *keepertest.Env) math.Int {
	return e.Ledger.ReservedBalanceNamed(e.Ctx, types.NamedReserveID, owner, keepertest.Native)
}

func treasury(e *keepertest.Env) math.Int {
	return e.Ledger.FreeBalance(e.Ctx, ledgertypes.TreasuryAccount(), keepertest.Native)
}

func hasEvent(e *keepertest.Env, eventType string) bool {
	for _, event := range e.Events() {
		if event.Type == eventType {
			return true
		}
	}
	return false
}

func TestScheduleReservesBudget(t *testing.T) {
	e := setup(t)

	id, err := e.DCA.Schedule(e.Ctx, sellSchedule(100, 10), nil)
	require.NoError(t, err)
	require.Equal(t, uint64(1), id)

	require.Equal(t, keepertest.Units(100), reserved(e))
	require.Equal(t, keepertest.Units(900), e.Ledger.FreeBalance(e.Ctx, owner, keepertest.Native))

	block, found := e.DCA.GetScheduleExecutionBlock(e.Ctx, id)
	require.True(t, found)
	require.Equal(t, uint64(2), block)
	require.Equal(t, []uint64{id}, e.DCA.GetScheduleIdsPerBlock(e.Ctx, 2))

	status, err := e.DCA.GetStatus(e.Ctx, id)
	require.NoError(t, err)
	require.Equal(t, types.StatusActive, status)
	require.True(t, hasEvent(e, types.EventTypeScheduled))
	require.True(t, hasEvent(e, types.EventTypeExecutionPlanned))

	second, err := e.DCA.Schedule(e.Ctx, sellSchedule(10, 10), nil)
	require.NoError(t, err)
	require.Equal(t, uint64(2), second)
	require.Len(t, e.DCA.GetAllSchedules(e.Ctx), 2)
}

func TestScheduleValidation(t *testing.T) {
	e := setup(t)
	later := uint64(1)

	s := sellSchedule(100, 10)
	s.Period = 4
	_, err := e.DCA.Schedule(e.Ctx, s, nil)
	require.ErrorIs(t, err, types.ErrPeriodTooShort)

	s = sellSchedule(100, 10)
	s.Order.AssetOut = "unknown"
	_, err = e.DCA.Schedule(e.Ctx, s, nil)
	require.ErrorIs(t, err, types.ErrAssetNotRegistered)

	// WETH has no omnipool liquidity and no stored route
	s = sellSchedule(100, 10)
	s.Order.AssetOut = keepertest.WETH
	_, err = e.DCA.Schedule(e.Ctx, s, nil)
	require.ErrorIs(t, err, types.ErrRouteNotFound)

	s = sellSchedule(100, 10)
	s.TotalAmount = math.NewInt(1_999_999)
	_, err = e.DCA.Schedule(e.Ctx, s, nil)
	require.ErrorIs(t, err, types.ErrInsufficientBudget)

	_, err = e.DCA.Schedule(e.Ctx, sellSchedule(100, 10), &later)
	require.ErrorIs(t, err, types.ErrBlockNumberNotInFuture)

	_, err = e.DCA.Schedule(e.Ctx, sellSchedule(2_000, 10), nil)
	require.ErrorIs(t, err, ledgertypes.ErrInsufficientBalance)

	// nothing was reserved by the rejected schedules
	require.True(t, reserved(e).IsZero())
	require.Empty(t, e.DCA.GetAllSchedules(e.Ctx))
}

func TestMinimumBudgetInForeignAsset(t *testing.T) {
	e := setup(t)
	e.Fund(t, owner, keepertest.DAI, keepertest.Units(100))

	s := sellSchedule(100, 10)
	s.Order.AssetIn, s.Order.AssetOut = keepertest.DAI, keepertest.Native

	// no oracle price yet for the native asset in DAI
	_, err := e.DCA.Schedule(e.Ctx, s, nil)
	require.ErrorIs(t, err, types.ErrZeroPrice)

	e.NextBlock(t)

	// 1 HDX is worth 0.5 DAI
	s.TotalAmount = math.NewInt(999_999)
	_, err = e.DCA.Schedule(e.Ctx, s, nil)
	require.ErrorIs(t, err, types.ErrInsufficientBudget)

	s.TotalAmount = math.NewInt(1_000_000)
	_, err = e.DCA.Schedule(e.Ctx, s, nil)
	require.NoError(t, err)
}

func TestSellExecution(t *testing.T) {
	e := setup(t)
	fee := types.DefaultParams().ExecutionFee
	treasuryBefore := treasury(e)

	id, err := e.DCA.Schedule(e.Ctx, sellSchedule(100, 10), nil)
	require.NoError(t, err)
	e.NextBlock(t)

	require.True(t, hasEvent(e, types.EventTypeExecutionStarted))
	require.True(t, hasEvent(e, types.EventTypeTradeExecuted))

	schedule, err := e.DCA.GetSchedule(e.Ctx, id)
	require.NoError(t, err)
	require.Equal(t, keepertest.Units(90), schedule.TotalAmount)
	require.Equal(t, keepertest.Units(90), reserved(e))
	require.Equal(t, keepertest.Units(900), e.Ledger.FreeBalance(e.Ctx, owner, keepertest.Native))
	require.Equal(t, treasuryBefore.Add(fee), treasury(e))

	// 10 HDX at 0.5 DAI each, less fees
	bought := e.Ledger.FreeBalance(e.Ctx, owner, keepertest.DAI)
	require.True(t, bought.GT(keepertest.Units(4)))
	require.True(t, bought.LT(keepertest.Units(5)))

	block, found := e.DCA.GetScheduleExecutionBlock(e.Ctx, id)
	require.True(t, found)
	require.Equal(t, uint64(7), block)
	require.Empty(t, e.DCA.GetScheduleIdsPerBlock(e.Ctx, 2))
	require.Zero(t, e.DCA.GetRetries(e.Ctx, id))
}

func TestCompletesWhenBudgetCannotCoverTrade(t *testing.T) {
	e := setup(t)

	id, err := e.DCA.Schedule(e.Ctx, sellSchedule(16, 5), nil)
	require.NoError(t, err)

	// trades at blocks 2, 7 and 12 leave 1 HDX, which is released at 17
	e.AdvanceTo(t, 16)
	schedule, err := e.DCA.GetSchedule(e.Ctx, id)
	require.NoError(t, err)
	require.Equal(t, keepertest.Units(1), schedule.TotalAmount)

	e.AdvanceTo(t, 17)
	require.True(t, hasEvent(e, types.EventTypeCompleted))
	_, err = e.DCA.GetSchedule(e.Ctx, id)
	require.ErrorIs(t, err, types.ErrScheduleNotFound)
	require.True(t, reserved(e).IsZero())
	require.Equal(t, keepertest.Units(985), e.Ledger.FreeBalance(e.Ctx, owner, keepertest.Native))
	_, found := e.DCA.GetScheduleExecutionBlock(e.Ctx, id)
	require.False(t, found)
}

func TestCompletesWhenBudgetExhaustedExactly(t *testing.T) {
	e := setup(t)

	id, err := e.DCA.Schedule(e.Ctx, sellSchedule(10, 5), nil)
	require.NoError(t, err)
	e.AdvanceTo(t, 7)

	_, err = e.DCA.GetSchedule(e.Ctx, id)
	require.ErrorIs(t, err, types.ErrScheduleNotFound)
	require.True(t, reserved(e).IsZero())
	require.Equal(t, keepertest.Units(990), e.Ledger.FreeBalance(e.Ctx, owner, keepertest.Native))
}

func TestCompletesAtFirstDueBlockWhenBudgetBelowOneTrade(t *testing.T) {
	for name, schedule := range map[string]types.Schedule{
		// 4 HDX cannot fund a 5 HDX sell
		"sell": sellSchedule(4, 5),
		// 10 DAI cost about 21 HDX with slippage
		"buy": buySchedule(5, 10),
	} {
		t.Run(name, func(t *testing.T) {
			e := setup(t)
			treasuryBefore := treasury(e)

			id, err := e.DCA.Schedule(e.Ctx, schedule, nil)
			require.NoError(t, err)
			require.Equal(t, schedule.TotalAmount, reserved(e))

			e.AdvanceTo(t, 2)
			require.True(t, hasEvent(e, types.EventTypeCompleted))
			require.False(t, hasEvent(e, types.EventTypeTradeExecuted))
			require.False(t, hasEvent(e, types.EventTypeTradeFailed))

			_, err = e.DCA.GetSchedule(e.Ctx, id)
			require.ErrorIs(t, err, types.ErrScheduleNotFound)
			require.True(t, reserved(e).IsZero())
			require.Equal(t, keepertest.Units(1_000), e.Ledger.FreeBalance(e.Ctx, owner, keepertest.Native))
			require.True(t, e.Ledger.FreeBalance(e.Ctx, owner, keepertest.DAI).IsZero())
			require.Equal(t, treasuryBefore, treasury(e))
		})
	}
}

func TestFreeBlockSearch(t *testing.T) {
	e := setup(t)
	params := types.DefaultParams()
	params.MaxSchedulesPerBlock = 1
	require.NoError(t, e.DCA.SetParams(e.Ctx, params))

	target := uint64(10)
	for _, expected := range []uint64{10, 11, 13, 17, 25, 41} {
		id, err := e.DCA.Schedule(e.Ctx, sellSchedule(10, 5), &target)
		require.NoError(t, err)
		block, found := e.DCA.GetScheduleExecutionBlock(e.Ctx, id)
		require.True(t, found)
		require.Equal(t, expected, block)
	}

	_, err := e.DCA.Schedule(e.Ctx, sellSchedule(10, 5), &target)
	require.ErrorIs(t, err, types.ErrNoFreeBlockFound)
	require.Equal(t, keepertest.Units(60), reserved(e))
}

func TestLoweredCapacityDefersOverflow(t *testing.T) {
	e := setup(t)

	first, err := e.DCA.Schedule(e.Ctx, sellSchedule(100, 5), nil)
	require.NoError(t, err)
	second, err := e.DCA.Schedule(e.Ctx, sellSchedule(100, 5), nil)
	require.NoError(t, err)
	require.Equal(t, []uint64{first, second}, e.DCA.GetScheduleIdsPerBlock(e.Ctx, 2))

	params := types.DefaultParams()
	params.MaxSchedulesPerBlock = 1
	require.NoError(t, e.DCA.SetParams(e.Ctx, params))
	e.NextBlock(t)

	block, found := e.DCA.GetScheduleExecutionBlock(e.Ctx, first)
	require.True(t, found)
	require.Equal(t, uint64(7), block)
	block, found = e.DCA.GetScheduleExecutionBlock(e.Ctx, second)
	require.True(t, found)
	require.Equal(t, uint64(3), block)
}

func TestRetriesThenSuspends(t *testing.T) {
	e := setup(t)
	fee := types.DefaultParams().ExecutionFee
	treasuryBefore := treasury(e)

	// any DAI leaving the omnipool trips the breaker
	require.NoError(t, e.CircuitBreaker.SetTradeVolumeLimit(e.Ctx, keepertest.DAI, circuitbreakertypes.NewFraction(1, 1_000_000_000)))

	id, err := e.DCA.Schedule(e.Ctx, sellSchedule(100, 10), nil)
	require.NoError(t, err)

	for i, tc := range []struct {
		block uint64
		next  uint64
	}{
		{block: 2, next: 12},
		{block: 12, next: 32},
	} {
		e.AdvanceTo(t, int64(tc.block))
		require.True(t, hasEvent(e, types.EventTypeTradeFailed))
		require.Equal(t, uint32(i+1), e.DCA.GetRetries(e.Ctx, id))
		block, found := e.DCA.GetScheduleExecutionBlock(e.Ctx, id)
		require.True(t, found)
		require.Equal(t, tc.next, block)
	}

	e.AdvanceTo(t, 32)
	require.True(t, hasEvent(e, types.EventTypeSuspended))
	require.True(t, e.DCA.IsSuspended(e.Ctx, id))
	require.Equal(t, uint32(3), e.DCA.GetRetries(e.Ctx, id))
	_, found := e.DCA.GetScheduleExecutionBlock(e.Ctx, id)
	require.False(t, found)

	// the fee is kept for every failed attempt, the budget stays reserved
	charged := fee.MulRaw(3)
	require.Equal(t, treasuryBefore.Add(charged), treasury(e))
	schedule, err := e.DCA.GetSchedule(e.Ctx, id)
	require.NoError(t, err)
	require.Equal(t, keepertest.Units(100).Sub(charged), schedule.TotalAmount)
	require.Equal(t, schedule.TotalAmount, reserved(e))
	require.Equal(t, keepertest.Units(900), e.Ledger.FreeBalance(e.Ctx, owner, keepertest.Native))
	require.True(t, e.Ledger.FreeBalance(e.Ctx, owner, keepertest.DAI).IsZero())

	// resuming after the breaker is relaxed trades again
	require.NoError(t, e.CircuitBreaker.SetTradeVolumeLimit(e.Ctx, keepertest.DAI, circuitbreakertypes.NewFraction(1, 2)))
	require.NoError(t, e.DCA.Resume(e.Ctx, owner, id, nil))
	require.Zero(t, e.DCA.GetRetries(e.Ctx, id))
	e.NextBlock(t)

	schedule, err = e.DCA.GetSchedule(e.Ctx, id)
	require.NoError(t, err)
	require.Equal(t, keepertest.Units(90).Sub(charged), schedule.TotalAmount)
	require.True(t, e.Ledger.FreeBalance(e.Ctx, owner, keepertest.DAI).IsPositive())
}

func TestRetryDelay(t *testing.T) {
	require.Equal(t, uint64(10), keeper.RetryDelay(10, 0))
	require.Equal(t, uint64(10), keeper.RetryDelay(10, 1))
	require.Equal(t, uint64(20), keeper.RetryDelay(10, 2))
	require.Equal(t, uint64(40), keeper.RetryDelay(10, 3))
	require.Equal(t, uint64(10)<<16, keeper.RetryDelay(10, 100))
}

func TestScheduleMaxRetriesOverride(t *testing.T) {
	e := setup(t)
	require.NoError(t, e.CircuitBreaker.SetTradeVolumeLimit(e.Ctx, keepertest.DAI, circuitbreakertypes.NewFraction(1, 1_000_000_000)))

	s := sellSchedule(100, 10)
	one := uint32(1)
	s.MaxRetries = &one
	id, err := e.DCA.Schedule(e.Ctx, s, nil)
	require.NoError(t, err)

	e.NextBlock(t)
	require.True(t, e.DCA.IsSuspended(e.Ctx, id))
}

func TestStructuralErrorSuspendsAtOnce(t *testing.T) {
	e := setup(t)
	treasuryBefore := treasury(e)

	s := sellSchedule(100, 10)
	s.Order.Route = routertypes.Route{{Pool: routertypes.XYK(), AssetIn: keepertest.Native, AssetOut: keepertest.DAI}}
	id, err := e.DCA.Schedule(e.Ctx, s, nil)
	require.NoError(t, err)

	e.NextBlock(t)
	require.True(t, e.DCA.IsSuspended(e.Ctx, id))
	require.Zero(t, e.DCA.GetRetries(e.Ctx, id))
	require.Equal(t, treasuryBefore, treasury(e))
	require.Equal(t, keepertest.Units(100), reserved(e))
}

func TestHubAssetTargetSuspendsAtOnce(t *testing.T) {
	e := setup(t)
	fee := types.DefaultParams().ExecutionFee

	// the default omnipool route sells into the hub asset, which cannot be bought
	s := sellSchedule(100, 10)
	s.Order.AssetOut = e.Omnipool.HubAsset(e.Ctx)
	id, err := e.DCA.Schedule(e.Ctx, s, nil)
	require.NoError(t, err)

	e.NextBlock(t)
	require.True(t, hasEvent(e, types.EventTypeTradeFailed))
	require.True(t, hasEvent(e, types.EventTypeSuspended))
	require.True(t, e.DCA.IsSuspended(e.Ctx, id))
	require.Zero(t, e.DCA.GetRetries(e.Ctx, id))
	require.Equal(t, keepertest.Units(100).Sub(fee), reserved(e))
}

func TestShortReservationFailsTrade(t *testing.T) {
	e := setup(t)
	fee := types.DefaultParams().ExecutionFee

	id, err := e.DCA.Schedule(e.Ctx, sellSchedule(100, 10), nil)
	require.NoError(t, err)

	// leave 5 HDX reserved while the schedule still accounts for 100
	released := e.Ledger.UnreserveNamed(e.Ctx, types.NamedReserveID, owner, keepertest.Native, keepertest.Units(95))
	require.Equal(t, keepertest.Units(95), released)

	e.NextBlock(t)
	require.True(t, hasEvent(e, types.EventTypeTradeFailed))
	require.False(t, hasEvent(e, types.EventTypeTradeExecuted))
	require.True(t, e.Ledger.FreeBalance(e.Ctx, owner, keepertest.DAI).IsZero())
	require.Equal(t, keepertest.Units(995), e.Ledger.FreeBalance(e.Ctx, owner, keepertest.Native))
	require.Equal(t, keepertest.Units(5).Sub(fee), reserved(e))

	require.Equal(t, uint32(1), e.DCA.GetRetries(e.Ctx, id))
	block, found := e.DCA.GetScheduleExecutionBlock(e.Ctx, id)
	require.True(t, found)
	require.Equal(t, uint64(12), block)
}

func TestUnstablePriceDefersWithoutFee(t *testing.T) {
	e := setup(t)
	treasuryBefore := treasury(e)

	id, err := e.DCA.Schedule(e.Ctx, sellSchedule(100, 10), nil)
	require.NoError(t, err)

	// the oracle last saw HDX at 5 DAI while the pool quotes 0.5 DAI
	e.Oracle.OnTrade(e.Ctx, oracletypes.SourceOmnipool, keepertest.Native, keepertest.DAI,
		keepertest.Units(1), keepertest.Units(5), math.LegacyNewDec(5))

	for _, height := range []int64{2, 3} {
		e.AdvanceTo(t, height)
		require.True(t, hasEvent(e, types.EventTypeExecutionStarted))
		require.False(t, hasEvent(e, types.EventTypeTradeExecuted))
		require.False(t, hasEvent(e, types.EventTypeTradeFailed))

		block, found := e.DCA.GetScheduleExecutionBlock(e.Ctx, id)
		require.True(t, found)
		require.Equal(t, uint64(height+1), block)
		require.Zero(t, e.DCA.GetRetries(e.Ctx, id))
		require.False(t, e.DCA.IsSuspended(e.Ctx, id))
	}
	require.Equal(t, treasuryBefore, treasury(e))
	require.Equal(t, keepertest.Units(100), reserved(e))
}

func TestBuyExecution(t *testing.T) {
	e := setup(t)
	fee := types.DefaultParams().ExecutionFee

	id, err := e.DCA.Schedule(e.Ctx, buySchedule(100, 5), nil)
	require.NoError(t, err)
	e.NextBlock(t)

	require.Equal(t, keepertest.Units(5), e.Ledger.FreeBalance(e.Ctx, owner, keepertest.DAI))

	// 5 DAI at 0.5 DAI per HDX plus 5% slippage is released per trade
	limit := math.NewInt(10_500_000_000_000)
	schedule, err := e.DCA.GetSchedule(e.Ctx, id)
	require.NoError(t, err)
	require.Equal(t, keepertest.Units(100).Sub(limit).Sub(fee), schedule.TotalAmount)
	require.Equal(t, schedule.TotalAmount, reserved(e))

	// what the trade did not spend of the released limit is free again
	free := e.Ledger.FreeBalance(e.Ctx, owner, keepertest.Native)
	require.True(t, free.GT(keepertest.Units(900)))
	require.True(t, free.LT(keepertest.Units(901)))
}

func TestTradeLimits(t *testing.T) {
	params := types.DefaultParams()
	spot := math.LegacyNewDec(2)

	sell := sellSchedule(100, 10)
	sell.Order.Amount = math.NewInt(10)
	sell.Order.Limit = math.NewInt(25)
	amount, limit, unreserve := keeper.TradeLimits(sell, params, spot, math.ZeroInt())
	require.Equal(t, math.NewInt(10), amount)
	require.Equal(t, math.NewInt(19), limit)
	require.Equal(t, math.NewInt(10), unreserve)

	sell.Order.Limit = math.NewInt(15)
	_, limit, _ = keeper.TradeLimits(sell, params, spot, math.ZeroInt())
	require.Equal(t, math.NewInt(15), limit)

	// the fee comes out of the sold amount
	amount, _, unreserve = keeper.TradeLimits(sell, params, spot, math.NewInt(3))
	require.Equal(t, math.NewInt(7), amount)
	require.Equal(t, math.NewInt(7), unreserve)

	buy := buySchedule(100, 10)
	buy.Order.Limit = keepertest.Units(5)
	amount, limit, unreserve = keeper.TradeLimits(buy, params, spot, math.ZeroInt())
	require.Equal(t, keepertest.Units(10), amount)
	require.Equal(t, math.NewInt(5_250_000_000_000), limit)
	require.Equal(t, limit, unreserve)

	buy.Order.Limit = keepertest.Units(6)
	_, limit, _ = keeper.TradeLimits(buy, params, spot, math.ZeroInt())
	require.Equal(t, keepertest.Units(6), limit)

	tight := math.LegacyMustNewDecFromStr("0.01")
	buy.Order.Limit = math.ZeroInt()
	buy.Slippage = &tight
	_, limit, _ = keeper.TradeLimits(buy, params, spot, math.ZeroInt())
	require.Equal(t, math.NewInt(5_050_000_000_000), limit)
}

func TestPauseResume(t *testing.T) {
	e := setup(t)
	stranger := keepertest.TestAddr("stranger")

	id, err := e.DCA.Schedule(e.Ctx, sellSchedule(100, 10), nil)
	require.NoError(t, err)

	require.ErrorIs(t, e.DCA.Pause(e.Ctx, stranger, id, 0), types.ErrForbidden)
	require.ErrorIs(t, e.DCA.Pause(e.Ctx, owner, id, 3), types.ErrScheduleNotFound)
	require.ErrorIs(t, e.DCA.Pause(e.Ctx, owner, 99, 0), types.ErrScheduleNotFound)
	require.ErrorIs(t, e.DCA.Resume(e.Ctx, owner, id, nil), types.ErrInvalidState)

	require.NoError(t, e.DCA.Pause(e.Ctx, owner, id, 2))
	require.ErrorIs(t, e.DCA.Pause(e.Ctx, owner, id, 0), types.ErrInvalidState)
	status, err := e.DCA.GetStatus(e.Ctx, id)
	require.NoError(t, err)
	require.Equal(t, types.StatusSuspended, status)
	require.Empty(t, e.DCA.GetScheduleIdsPerBlock(e.Ctx, 2))

	// no execution while paused
	e.AdvanceTo(t, 10)
	require.True(t, e.Ledger.FreeBalance(e.Ctx, owner, keepertest.DAI).IsZero())
	require.Equal(t, keepertest.Units(100), reserved(e))

	past := uint64(10)
	require.ErrorIs(t, e.DCA.Resume(e.Ctx, stranger, id, nil), types.ErrForbidden)
	require.ErrorIs(t, e.DCA.Resume(e.Ctx, owner, id, &past), types.ErrBlockNumberNotInFuture)

	next := uint64(15)
	require.NoError(t, e.DCA.Resume(e.Ctx, owner, id, &next))
	require.False(t, e.DCA.IsSuspended(e.Ctx, id))
	block, found := e.DCA.GetScheduleExecutionBlock(e.Ctx, id)
	require.True(t, found)
	require.Equal(t, next, block)

	e.AdvanceTo(t, 15)
	require.True(t, e.Ledger.FreeBalance(e.Ctx, owner, keepertest.DAI).IsPositive())
}

func TestTerminate(t *testing.T) {
	e := setup(t)
	stranger := keepertest.TestAddr("stranger")
	authority := sdk.MustAccAddressFromBech32(e.Authority)

	first, err := e.DCA.Schedule(e.Ctx, sellSchedule(100, 10), nil)
	require.NoError(t, err)
	second, err := e.DCA.Schedule(e.Ctx, sellSchedule(50, 10), nil)
	require.NoError(t, err)

	require.ErrorIs(t, e.DCA.Terminate(e.Ctx, stranger, first, 0), types.ErrForbidden)
	require.ErrorIs(t, e.DCA.Terminate(e.Ctx, owner, first, 5), types.ErrScheduleNotFound)

	require.NoError(t, e.DCA.Terminate(e.Ctx, owner, first, 2))
	require.True(t, hasEvent(e, types.EventTypeTerminated))
	_, err = e.DCA.GetSchedule(e.Ctx, first)
	require.ErrorIs(t, err, types.ErrScheduleNotFound)
	require.Equal(t, keepertest.Units(50), reserved(e))
	require.Equal(t, []uint64{second}, e.DCA.GetScheduleIdsPerBlock(e.Ctx, 2))

	// the authority may terminate any schedule, suspended ones included
	require.NoError(t, e.DCA.Pause(e.Ctx, owner, second, 0))
	require.NoError(t, e.DCA.Terminate(e.Ctx, authority, second, 0))
	require.True(t, reserved(e).IsZero())
	require.Equal(t, keepertest.Units(1_000), e.Ledger.FreeBalance(e.Ctx, owner, keepertest.Native))
	require.Empty(t, e.DCA.GetAllSchedules(e.Ctx))
}

func TestMsgServer(t *testing.T) {
	e := setup(t)
	ms := keeper.NewMsgServerImpl(e.DCA)

	res, err := ms.Schedule(e.Ctx, &types.MsgSchedule{Schedule: sellSchedule(100, 10)})
	require.NoError(t, err)

	invalid := sellSchedule(100, 10)
	invalid.Order.Amount = math.ZeroInt()
	_, err = ms.Schedule(e.Ctx, &types.MsgSchedule{Schedule: invalid})
	require.ErrorIs(t, err, types.ErrInvalidScheduleOrderData)

	_, err = ms.Pause(e.Ctx, &types.MsgPause{Owner: owner.String(), ScheduleID: res.ScheduleID})
	require.NoError(t, err)
	_, err = ms.Resume(e.Ctx, &types.MsgResume{Owner: owner.String(), ScheduleID: res.ScheduleID})
	require.NoError(t, err)
	_, err = ms.Terminate(e.Ctx, &types.MsgTerminate{Sender: owner.String(), ScheduleID: res.ScheduleID})
	require.NoError(t, err)
	require.True(t, reserved(e).IsZero())

	params := types.DefaultParams()
	params.MinimalPeriod = 10
	_, err = ms.UpdateParams(e.Ctx, &types.MsgUpdateParams{Authority: owner.String(), Params: params})
	require.Error(t, err)
	_, err = ms.UpdateParams(e.Ctx, &types.MsgUpdateParams{Authority: e.Authority, Params: params})
	require.NoError(t, err)
	require.Equal(t, uint64(10), e.DCA.GetParams(e.Ctx).MinimalPeriod)

	_, err = ms.Schedule(e.Ctx, &types.MsgSchedule{Schedule: sellSchedule(100, 10)})
	require.ErrorIs(t, err, types.ErrPeriodTooShort)
}

func TestBudgetIsConserved(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		e := setup(t)
		s := sellSchedule(rapid.Int64Range(1, 100).Draw(rt, "total"), rapid.Int64Range(1, 20).Draw(rt, "amount"))
		s.Period = rapid.Uint64Range(5, 10).Draw(rt, "period")
		if rapid.Bool().Draw(rt, "buy") {
			s.Order.Kind = types.OrderKindBuy
		}
		pool := omnipooltypes.PoolAccount()
		total := e.Ledger.FreeBalance(e.Ctx, owner, keepertest.Native).
			Add(treasury(e)).
			Add(e.Ledger.FreeBalance(e.Ctx, pool, keepertest.Native))

		id, err := e.DCA.Schedule(e.Ctx, s, nil)
		require.NoError(rt, err)

		for h := int64(2); h <= 30; h++ {
			e.AdvanceTo(t, h)

			held := e.Ledger.FreeBalance(e.Ctx, owner, keepertest.Native).
				Add(reserved(e)).
				Add(treasury(e)).
				Add(e.Ledger.FreeBalance(e.Ctx, pool, keepertest.Native))
			require.True(rt, total.Equal(held), "height %d: %s != %s", h, held, total)

			schedule, err := e.DCA.GetSchedule(e.Ctx, id)
			if err != nil {
				require.ErrorIs(rt, err, types.ErrScheduleNotFound)
				require.True(rt, reserved(e).IsZero())
				continue
			}
			require.True(rt, schedule.TotalAmount.Equal(reserved(e)))
			require.True(rt, schedule.TotalAmount.LTE(s.TotalAmount))
		}
	})
}
