package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	keepertest "github.com/paw-chain/hydrax/testutil/keeper"
	circuitbreakertypes "github.com/paw-chain/hydrax/x/circuitbreaker/types"
	"github.com/paw-chain/hydrax/x/router/keeper"
	"github.com/paw-chain/hydrax/x/router/types"
)

var trader = keepertest.TestAddr("trader")

// setupPools lists HDX, DAI and DOT in the omnipool (1 DOT = 10 DAI) and
// opens xyk pools DAI/WETH and DOT/WETH at the same prices (1 WETH = 10 DAI).
func setupPools(t *testing.T) *keepertest.Env {
	t.Helper()
	e := keepertest.NewEnv(t)
	e.DefaultOmnipool(t)

	creator := keepertest.TestAddr("xyk-creator")
	e.Fund(t, creator, keepertest.DAI, keepertest.Units(1_000_000))
	e.Fund(t, creator, keepertest.DOT, keepertest.Units(100_000))
	e.Fund(t, creator, keepertest.WETH, keepertest.Units(200_000))
	_, err := e.XYK.CreatePool(e.Ctx, creator, keepertest.DAI, keepertest.Units(1_000_000), keepertest.WETH, keepertest.Units(100_000))
	require.NoError(t, err)
	_, err = e.XYK.CreatePool(e.Ctx, creator, keepertest.DOT, keepertest.Units(100_000), keepertest.WETH, keepertest.Units(100_000))
	require.NoError(t, err)
	return e
}

func directRoute() types.Route {
	return types.Route{{Pool: types.XYK(), AssetIn: keepertest.DAI, AssetOut: keepertest.WETH}}
}

func viaDotRoute() types.Route {
	return types.Route{
		{Pool: types.Omnipool(), AssetIn: keepertest.DAI, AssetOut: keepertest.DOT},
		{Pool: types.XYK(), AssetIn: keepertest.DOT, AssetOut: keepertest.WETH},
	}
}

func threeHopRoute() types.Route {
	return types.Route{
		{Pool: types.Omnipool(), AssetIn: keepertest.Native, AssetOut: keepertest.DAI},
		{Pool: types.XYK(), AssetIn: keepertest.DAI, AssetOut: keepertest.WETH},
		{Pool: types.XYK(), AssetIn: keepertest.WETH, AssetOut: keepertest.DOT},
	}
}

func TestRouteValidate(t *testing.T) {
	require.NoError(t, threeHopRoute().Validate(keepertest.Native, keepertest.DOT))
	require.ErrorIs(t, threeHopRoute().Validate(keepertest.DAI, keepertest.DOT), types.ErrInvalidRoute)
	require.ErrorIs(t, types.Route{}.Validate(keepertest.DAI, keepertest.DOT), types.ErrInvalidRoute)

	broken := threeHopRoute()
	broken[1].AssetIn = keepertest.USDT
	require.ErrorIs(t, broken.Validate(keepertest.Native, keepertest.DOT), types.ErrInvalidRoute)

	long := make(types.Route, 0, types.MaxHops+1)
	assets := []string{"a0", "a1", "a2", "a3", "a4", "a5", "a6"}
	for i := 0; i <= types.MaxHops; i++ {
		long = append(long, types.Trade{Pool: types.XYK(), AssetIn: assets[i], AssetOut: assets[i+1]})
	}
	require.ErrorIs(t, long.Validate("a0", assets[types.MaxHops+1]), types.ErrMaxHopsExceeded)

	require.ErrorIs(t, types.Route{{Pool: types.Stableswap(0), AssetIn: "a", AssetOut: "b"}}.Validate("a", "b"), types.ErrInvalidRoute)
}

func TestRouteInverse(t *testing.T) {
	inverse := threeHopRoute().Inverse()
	require.NoError(t, inverse.Validate(keepertest.DOT, keepertest.Native))
	require.Equal(t, types.Trade{Pool: types.XYK(), AssetIn: keepertest.DOT, AssetOut: keepertest.WETH}, inverse[0])
	require.Equal(t, threeHopRoute(), inverse.Inverse())
	require.Equal(t, []string{keepertest.DAI, keepertest.WETH}, threeHopRoute().IntermediateAssets())
}

func TestCalculateDoesNotChangeState(t *testing.T) {
	e := setupPools(t)
	route := threeHopRoute()

	first, err := e.Router.CalculateSellAmounts(e.Ctx, route, keepertest.Units(100))
	require.NoError(t, err)
	require.Len(t, first, len(route)+1)
	second, err := e.Router.CalculateSellAmounts(e.Ctx, route, keepertest.Units(100))
	require.NoError(t, err)
	require.Equal(t, first, second)

	buy, err := e.Router.CalculateBuyAmounts(e.Ctx, route, first[len(route)])
	require.NoError(t, err)
	// buying what the sell yields costs the sell amount up to rounding
	require.True(t, buy[0].Sub(keepertest.Units(100)).Abs().LTE(keepertest.Units(1).QuoRaw(1_000)))

	hdx, err := e.Omnipool.GetLiquidity(e.Ctx, keepertest.Native)
	require.NoError(t, err)
	require.Equal(t, keepertest.Units(1_000_000), hdx.Reserve)
}

func TestSellAlongRoute(t *testing.T) {
	e := setupPools(t)
	e.Fund(t, trader, keepertest.Native, keepertest.Units(100))
	route := threeHopRoute()

	amounts, err := e.Router.CalculateSellAmounts(e.Ctx, route, keepertest.Units(100))
	require.NoError(t, err)
	expected := amounts[len(route)]

	_, err = e.Router.Sell(e.Ctx, trader, keepertest.Native, keepertest.DOT, keepertest.Units(100), expected.AddRaw(1), route)
	require.ErrorIs(t, err, types.ErrTradingLimitReached)

	out, err := e.Router.Sell(e.Ctx, trader, keepertest.Native, keepertest.DOT, keepertest.Units(100), expected, route)
	require.NoError(t, err)
	require.Equal(t, expected, out)
	require.Equal(t, expected, e.Ledger.FreeBalance(e.Ctx, trader, keepertest.DOT))
	require.True(t, e.Ledger.FreeBalance(e.Ctx, trader, keepertest.Native).IsZero())
	require.True(t, e.Ledger.FreeBalance(e.Ctx, trader, keepertest.DAI).IsZero())
	require.True(t, e.Ledger.FreeBalance(e.Ctx, trader, keepertest.WETH).IsZero())

	var executed bool
	for _, event := range e.Events() {
		if event.Type == types.EventTypeRouteExecuted {
			executed = true
		}
	}
	require.True(t, executed)
}

func TestFailedHopRollsBackRoute(t *testing.T) {
	e := setupPools(t)
	e.Fund(t, trader, keepertest.Native, keepertest.Units(100))
	route := threeHopRoute()

	// the second hop moves about 5 WETH, far above 0.1 WETH per block
	require.NoError(t, e.CircuitBreaker.SetTradeVolumeLimit(e.Ctx, keepertest.WETH, circuitbreakertypes.NewFraction(1, 1_000_000)))

	_, err := e.Router.Sell(e.Ctx, trader, keepertest.Native, keepertest.DOT, keepertest.Units(100), math.ZeroInt(), route)
	require.ErrorIs(t, err, circuitbreakertypes.ErrMaxTradeVolumePerBlockReached)

	require.Equal(t, keepertest.Units(100), e.Ledger.FreeBalance(e.Ctx, trader, keepertest.Native))
	require.True(t, e.Ledger.FreeBalance(e.Ctx, trader, keepertest.DAI).IsZero())
	hdx, err := e.Omnipool.GetLiquidity(e.Ctx, keepertest.Native)
	require.NoError(t, err)
	require.Equal(t, keepertest.Units(1_000_000), hdx.Reserve)
	_, found := e.CircuitBreaker.GetTradeVolume(e.Ctx, keepertest.DAI)
	require.False(t, found)
}

func TestBuyAlongRoute(t *testing.T) {
	e := setupPools(t)
	e.Fund(t, trader, keepertest.Native, keepertest.Units(1_000))
	route := threeHopRoute()

	amounts, err := e.Router.CalculateBuyAmounts(e.Ctx, route, keepertest.Units(1))
	require.NoError(t, err)
	cost := amounts[0]

	_, err = e.Router.Buy(e.Ctx, trader, keepertest.Native, keepertest.DOT, keepertest.Units(1), cost.SubRaw(1), route)
	require.ErrorIs(t, err, types.ErrTradingLimitReached)

	in, err := e.Router.Buy(e.Ctx, trader, keepertest.Native, keepertest.DOT, keepertest.Units(1), cost, route)
	require.NoError(t, err)
	require.Equal(t, cost, in)
	require.Equal(t, keepertest.Units(1), e.Ledger.FreeBalance(e.Ctx, trader, keepertest.DOT))
	require.Equal(t, keepertest.Units(1_000).Sub(cost), e.Ledger.FreeBalance(e.Ctx, trader, keepertest.Native))
}

func TestTradeChecksBalance(t *testing.T) {
	e := setupPools(t)
	e.Fund(t, trader, keepertest.Native, keepertest.Units(1))

	_, err := e.Router.Sell(e.Ctx, trader, keepertest.Native, keepertest.DOT, keepertest.Units(2), math.ZeroInt(), nil)
	require.ErrorIs(t, err, types.ErrInsufficientBalance)
	_, err = e.Router.Buy(e.Ctx, trader, keepertest.Native, keepertest.DOT, keepertest.Units(1), keepertest.Units(1_000), nil)
	require.ErrorIs(t, err, types.ErrInsufficientBalance)
	_, err = e.Router.Sell(e.Ctx, trader, keepertest.Native, keepertest.DOT, math.ZeroInt(), math.ZeroInt(), nil)
	require.ErrorIs(t, err, types.ErrInvalidAmount)
}

func TestDefaultRoute(t *testing.T) {
	e := setupPools(t)

	route, err := e.Router.GetRoute(e.Ctx, types.NewAssetPair(keepertest.Native, keepertest.DOT))
	require.NoError(t, err)
	require.Equal(t, types.Route{{Pool: types.Omnipool(), AssetIn: keepertest.Native, AssetOut: keepertest.DOT}}, route)

	// WETH is not listed in the omnipool
	_, err = e.Router.GetRoute(e.Ctx, types.NewAssetPair(keepertest.DAI, keepertest.WETH))
	require.ErrorIs(t, err, types.ErrRouteNotFound)

	price, err := e.Router.SpotPrice(e.Ctx, route)
	require.NoError(t, err)
	require.True(t, price.Sub(math.LegacyMustNewDecFromStr("0.05")).Abs().LTE(math.LegacyMustNewDecFromStr("0.000000001")))

	e.Fund(t, trader, keepertest.Native, keepertest.Units(10))
	out, err := e.Router.Sell(e.Ctx, trader, keepertest.Native, keepertest.DOT, keepertest.Units(10), math.ZeroInt(), nil)
	require.NoError(t, err)
	require.True(t, out.LT(keepertest.Units(1).QuoRaw(2)))
	require.True(t, out.GT(keepertest.Units(1).QuoRaw(3)))
}

func TestSetRoute(t *testing.T) {
	e := setupPools(t)
	who := keepertest.TestAddr("route-setter")
	pair := types.NewAssetPair(keepertest.DAI, keepertest.WETH)

	// any route that prices is accepted while the pair has none
	require.NoError(t, e.Router.SetRoute(e.Ctx, who, pair, directRoute()))
	stored, err := e.Router.GetRoute(e.Ctx, pair)
	require.NoError(t, err)
	require.Equal(t, directRoute(), stored)

	// the reverse direction resolves to the inverted route
	stored, err = e.Router.GetRoute(e.Ctx, types.NewAssetPair(keepertest.WETH, keepertest.DAI))
	require.NoError(t, err)
	require.Equal(t, directRoute().Inverse(), stored)

	// two fee-paying hops lose to one
	err = e.Router.SetRoute(e.Ctx, who, pair, viaDotRoute())
	require.ErrorIs(t, err, types.ErrRouteUpdateIsNotSuccessful)

	err = e.Router.SetRoute(e.Ctx, who, pair, types.Route{{Pool: types.Stableswap(7), AssetIn: keepertest.DAI, AssetOut: keepertest.WETH}})
	require.ErrorIs(t, err, types.ErrRouteCalculationFailed)

	err = e.Router.SetRoute(e.Ctx, who, pair, viaDotRoute().Inverse())
	require.ErrorIs(t, err, types.ErrInvalidRoute)
}

func TestForceInsertRoute(t *testing.T) {
	e := setupPools(t)
	who := keepertest.TestAddr("route-setter")
	pair := types.NewAssetPair(keepertest.WETH, keepertest.DAI)

	require.NoError(t, e.Router.ForceInsertRoute(e.Ctx, keepertest.TestAddr("authority"), pair, viaDotRoute().Inverse()))
	stored, err := e.Router.GetRoute(e.Ctx, types.NewAssetPair(keepertest.DAI, keepertest.WETH))
	require.NoError(t, err)
	require.Equal(t, viaDotRoute(), stored)

	// the direct pool beats the forced route in both directions
	require.NoError(t, e.Router.SetRoute(e.Ctx, who, pair, directRoute().Inverse()))
	stored, err = e.Router.GetRoute(e.Ctx, pair)
	require.NoError(t, err)
	require.Equal(t, directRoute().Inverse(), stored)
}

func TestMsgServer(t *testing.T) {
	e := setupPools(t)
	ms := keeper.NewMsgServerImpl(e.Router)
	e.Fund(t, trader, keepertest.Native, keepertest.Units(100))

	sell, err := ms.Sell(e.Ctx, &types.MsgSell{
		Trader:   trader.String(),
		AssetIn:  keepertest.Native,
		AssetOut: keepertest.DAI,
		AmountIn: keepertest.Units(10),
		MinOut:   math.ZeroInt(),
	})
	require.NoError(t, err)
	require.Equal(t, sell.AmountOut, e.Ledger.FreeBalance(e.Ctx, trader, keepertest.DAI))

	buy, err := ms.Buy(e.Ctx, &types.MsgBuy{
		Trader:    trader.String(),
		AssetIn:   keepertest.Native,
		AssetOut:  keepertest.DAI,
		AmountOut: keepertest.Units(1),
		MaxIn:     keepertest.Units(10),
	})
	require.NoError(t, err)
	require.True(t, buy.AmountIn.GT(keepertest.Units(2)))

	_, err = ms.Sell(e.Ctx, &types.MsgSell{Trader: trader.String(), AssetIn: keepertest.DAI, AssetOut: keepertest.DAI, AmountIn: keepertest.Units(1), MinOut: math.ZeroInt()})
	require.ErrorIs(t, err, types.ErrInvalidRoute)

	pair := types.NewAssetPair(keepertest.DAI, keepertest.WETH)
	_, err = ms.ForceInsertRoute(e.Ctx, &types.MsgForceInsertRoute{Authority: trader.String(), Pair: pair, Route: directRoute()})
	require.Error(t, err)
	_, err = ms.ForceInsertRoute(e.Ctx, &types.MsgForceInsertRoute{Authority: e.Authority, Pair: pair, Route: directRoute()})
	require.NoError(t, err)

	_, err = ms.SetRoute(e.Ctx, &types.MsgSetRoute{Sender: trader.String(), Pair: pair, Route: viaDotRoute()})
	require.ErrorIs(t, err, types.ErrRouteUpdateIsNotSuccessful)
}
