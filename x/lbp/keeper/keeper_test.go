package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	keepertest "github.com/paw-chain/hydrax/testutil/keeper"
	"github.com/paw-chain/hydrax/x/lbp/keeper"
	"github.com/paw-chain/hydrax/x/lbp/types"
	oracletypes "github.com/paw-chain/hydrax/x/oracle/types"
	routertypes "github.com/paw-chain/hydrax/x/router/types"
)

var (
	owner     = keepertest.TestAddr("lbp-owner")
	collector = keepertest.TestAddr("lbp-fee-collector")
	trader    = keepertest.TestAddr("trader")
)

// salePool moves the DAI weight from 80% at block 10 to 20% at block 20.
func salePool() types.Pool {
	return types.Pool{
		Owner:          owner.String(),
		AssetA:         keepertest.DAI,
		AssetB:         keepertest.DOT,
		Start:          10,
		End:            20,
		InitialWeightA: 80_000_000,
		FinalWeightA:   20_000_000,
		Fee:            math.LegacyMustNewDecFromStr("0.002"),
		FeeCollector:   collector.String(),
	}
}

func createSale(t *testing.T, e *keepertest.Env) types.Pool {
	t.Helper()
	pool := salePool()
	e.Fund(t, owner, keepertest.DAI, keepertest.Units(2_000))
	e.Fund(t, owner, keepertest.DOT, keepertest.Units(2_000))
	require.NoError(t, e.LBP.CreatePool(e.Ctx, pool, keepertest.Units(1_000), keepertest.Units(1_000)))
	return pool
}

func TestWeightsAt(t *testing.T) {
	pool := salePool()

	for _, tc := range []struct {
		height  int64
		weightA uint32
	}{
		{height: 1, weightA: 80_000_000},
		{height: 10, weightA: 80_000_000},
		{height: 15, weightA: 50_000_000},
		{height: 18, weightA: 32_000_000},
		{height: 20, weightA: 20_000_000},
		{height: 30, weightA: 20_000_000},
	} {
		wa, wb := pool.WeightsAt(tc.height)
		require.Equal(t, tc.weightA, wa, "height %d", tc.height)
		require.Equal(t, types.MaxWeight-tc.weightA, wb, "height %d", tc.height)
	}
	require.Equal(t, uint32(50_000_000), pool.WeightOf(keepertest.DOT, 15))
	require.False(t, pool.Running(9))
	require.True(t, pool.Running(20))
	require.False(t, pool.Running(21))
}

func TestPoolValidate(t *testing.T) {
	require.NoError(t, salePool().Validate())

	pool := salePool()
	pool.End = pool.Start
	require.ErrorIs(t, pool.Validate(), types.ErrInvalidBlockRange)

	pool = salePool()
	pool.FinalWeightA = types.MaxWeight
	require.ErrorIs(t, pool.Validate(), types.ErrInvalidWeight)

	pool = salePool()
	pool.AssetB = pool.AssetA
	require.ErrorIs(t, pool.Validate(), types.ErrSameAsset)
}

func TestWeightedMath(t *testing.T) {
	reserve := math.NewInt(1_000_000)

	// equal weights reduce to the constant product curve
	out, err := types.CalculateOutGivenIn(reserve, reserve, 50_000_000, 50_000_000, math.NewInt(10_000))
	require.NoError(t, err)
	require.Equal(t, math.NewInt(9_900), out)

	in, err := types.CalculateInGivenOut(reserve, reserve, 50_000_000, 50_000_000, math.NewInt(9_900))
	require.NoError(t, err)
	require.Equal(t, math.NewInt(9_999), in)

	_, err = types.CalculateInGivenOut(reserve, reserve, 50_000_000, 50_000_000, reserve)
	require.ErrorIs(t, err, types.ErrInsufficientLiquidity)

	price, err := types.SpotPrice(math.NewInt(1_000_000), math.NewInt(2_000_000), 80_000_000, 20_000_000)
	require.NoError(t, err)
	require.Equal(t, math.LegacyNewDec(8), price)
}

func TestCreatePool(t *testing.T) {
	e := keepertest.NewEnv(t)
	pool := createSale(t, e)

	stored, err := e.LBP.GetPool(e.Ctx, keepertest.DOT, keepertest.DAI)
	require.NoError(t, err)
	require.Equal(t, pool, stored)
	require.Len(t, e.LBP.GetAllPools(e.Ctx), 1)

	reserveA, reserveB := e.LBP.Reserves(e.Ctx, keepertest.DAI, keepertest.DOT)
	require.Equal(t, keepertest.Units(1_000), reserveA)
	require.Equal(t, keepertest.Units(1_000), reserveB)
	require.Equal(t, keepertest.Units(1_000), e.Ledger.FreeBalance(e.Ctx, owner, keepertest.DAI))

	err = e.LBP.CreatePool(e.Ctx, pool, keepertest.Units(1), keepertest.Units(1))
	require.ErrorIs(t, err, types.ErrPoolAlreadyExists)

	other := salePool()
	other.AssetB = "unknown"
	require.ErrorIs(t, e.LBP.CreatePool(e.Ctx, other, keepertest.Units(1), keepertest.Units(1)), types.ErrAssetNotRegistered)

	other = salePool()
	other.AssetB = keepertest.WETH
	require.ErrorIs(t, e.LBP.CreatePool(e.Ctx, other, math.NewInt(999), keepertest.Units(1)), types.ErrInsufficientLiquidity)
}

func TestTradeOutsideSaleWindow(t *testing.T) {
	e := keepertest.NewEnv(t)
	createSale(t, e)
	e.Fund(t, trader, keepertest.DAI, keepertest.Units(10))

	err := e.LBP.ExecuteSell(e.Ctx, trader, routertypes.LBP(), keepertest.DAI, keepertest.DOT, keepertest.Units(1), math.ZeroInt())
	require.ErrorIs(t, err, types.ErrSaleNotRunning)
	_, err = e.LBP.CalculateSpotPrice(e.Ctx, routertypes.LBP(), keepertest.DAI, keepertest.DOT)
	require.ErrorIs(t, err, types.ErrSaleNotRunning)

	e.AdvanceTo(t, 21)
	err = e.LBP.ExecuteSell(e.Ctx, trader, routertypes.LBP(), keepertest.DAI, keepertest.DOT, keepertest.Units(1), math.ZeroInt())
	require.ErrorIs(t, err, types.ErrSaleNotRunning)
	require.Equal(t, keepertest.Units(10), e.Ledger.FreeBalance(e.Ctx, trader, keepertest.DAI))
}

func TestSpotPriceFollowsWeights(t *testing.T) {
	e := keepertest.NewEnv(t)
	createSale(t, e)

	for _, tc := range []struct {
		height int64
		price  math.LegacyDec
	}{
		{height: 10, price: math.LegacyNewDec(4)},
		{height: 15, price: math.LegacyOneDec()},
		{height: 20, price: math.LegacyMustNewDecFromStr("0.25")},
	} {
		e.AdvanceTo(t, tc.height)
		price, err := e.LBP.CalculateSpotPrice(e.Ctx, routertypes.LBP(), keepertest.DAI, keepertest.DOT)
		require.NoError(t, err)
		require.True(t, tc.price.Equal(price), "height %d: %s", tc.height, price)
	}
}

func TestSell(t *testing.T) {
	e := keepertest.NewEnv(t)
	createSale(t, e)
	e.Fund(t, trader, keepertest.DAI, keepertest.Units(10))
	e.AdvanceTo(t, 15)

	amount := keepertest.Units(1)
	expected, err := e.LBP.CalculateSell(e.Ctx, routertypes.LBP(), keepertest.DAI, keepertest.DOT, amount)
	require.NoError(t, err)
	require.True(t, expected.IsPositive())
	require.True(t, expected.LT(amount))

	err = e.LBP.ExecuteSell(e.Ctx, trader, routertypes.LBP(), keepertest.DAI, keepertest.DOT, amount, expected.AddRaw(1))
	require.ErrorIs(t, err, types.ErrBuyLimitNotReached)

	require.NoError(t, e.LBP.ExecuteSell(e.Ctx, trader, routertypes.LBP(), keepertest.DAI, keepertest.DOT, amount, expected))
	require.Equal(t, expected, e.Ledger.FreeBalance(e.Ctx, trader, keepertest.DOT))
	require.Equal(t, keepertest.Units(9), e.Ledger.FreeBalance(e.Ctx, trader, keepertest.DAI))

	// 0.2% of the input goes to the fee collector
	fee := math.NewInt(2_000_000_000)
	require.Equal(t, fee, e.Ledger.FreeBalance(e.Ctx, collector, keepertest.DAI))
	reserveA, reserveB := e.LBP.Reserves(e.Ctx, keepertest.DAI, keepertest.DOT)
	require.Equal(t, keepertest.Units(1_001).Sub(fee), reserveA)
	require.Equal(t, keepertest.Units(1_000).Sub(expected), reserveB)
}

func TestBuy(t *testing.T) {
	e := keepertest.NewEnv(t)
	createSale(t, e)
	e.Fund(t, trader, keepertest.DAI, keepertest.Units(10))
	e.AdvanceTo(t, 15)

	amount := keepertest.Units(1)
	cost, err := e.LBP.CalculateBuy(e.Ctx, routertypes.LBP(), keepertest.DAI, keepertest.DOT, amount)
	require.NoError(t, err)
	require.True(t, cost.GT(amount))

	err = e.LBP.ExecuteBuy(e.Ctx, trader, routertypes.LBP(), keepertest.DAI, keepertest.DOT, amount, cost.SubRaw(1))
	require.ErrorIs(t, err, types.ErrSellLimitExceeded)

	require.NoError(t, e.LBP.ExecuteBuy(e.Ctx, trader, routertypes.LBP(), keepertest.DAI, keepertest.DOT, amount, cost))
	require.Equal(t, amount, e.Ledger.FreeBalance(e.Ctx, trader, keepertest.DOT))
	require.Equal(t, keepertest.Units(10).Sub(cost), e.Ledger.FreeBalance(e.Ctx, trader, keepertest.DAI))
	require.True(t, e.Ledger.FreeBalance(e.Ctx, collector, keepertest.DAI).IsPositive())
}

func TestTradeLimits(t *testing.T) {
	e := keepertest.NewEnv(t)
	createSale(t, e)
	e.Fund(t, trader, keepertest.DAI, keepertest.Units(500))
	e.AdvanceTo(t, 15)

	err := e.LBP.ExecuteSell(e.Ctx, trader, routertypes.LBP(), keepertest.DAI, keepertest.DOT, math.NewInt(999), math.ZeroInt())
	require.ErrorIs(t, err, types.ErrInsufficientTradingAmount)

	err = e.LBP.ExecuteSell(e.Ctx, trader, routertypes.LBP(), keepertest.DAI, keepertest.DOT, keepertest.Units(400), math.ZeroInt())
	require.ErrorIs(t, err, types.ErrMaxInRatioExceeded)

	_, err = e.LBP.CalculateBuy(e.Ctx, routertypes.LBP(), keepertest.DAI, keepertest.DOT, keepertest.Units(400))
	require.ErrorIs(t, err, types.ErrMaxOutRatioExceeded)

	_, err = e.LBP.CalculateSell(e.Ctx, routertypes.XYK(), keepertest.DAI, keepertest.DOT, keepertest.Units(1))
	require.ErrorIs(t, err, routertypes.ErrNotSupported)

	_, err = e.LBP.CalculateSell(e.Ctx, routertypes.LBP(), keepertest.DAI, keepertest.WETH, keepertest.Units(1))
	require.ErrorIs(t, err, types.ErrPoolNotFound)
}

func TestTradeFeedsOracle(t *testing.T) {
	e := keepertest.NewEnv(t)
	createSale(t, e)
	e.Fund(t, trader, keepertest.DAI, keepertest.Units(10))
	e.AdvanceTo(t, 15)

	require.NoError(t, e.LBP.ExecuteSell(e.Ctx, trader, routertypes.LBP(), keepertest.DAI, keepertest.DOT, keepertest.Units(1), math.ZeroInt()))
	e.NextBlock(t)

	price, err := e.Oracle.Price(e.Ctx, oracletypes.SourceLBP, keepertest.DAI, keepertest.DOT, oracletypes.LastBlock)
	require.NoError(t, err)
	require.True(t, price.LT(math.LegacyOneDec()))
	require.True(t, price.GT(math.LegacyMustNewDecFromStr("0.99")))
}

func TestRemoveLiquidity(t *testing.T) {
	e := keepertest.NewEnv(t)
	createSale(t, e)
	e.Fund(t, trader, keepertest.DAI, keepertest.Units(10))
	e.AdvanceTo(t, 15)
	require.NoError(t, e.LBP.ExecuteSell(e.Ctx, trader, routertypes.LBP(), keepertest.DAI, keepertest.DOT, keepertest.Units(1), math.ZeroInt()))

	_, _, err := e.LBP.RemoveLiquidity(e.Ctx, owner, keepertest.DAI, keepertest.DOT)
	require.ErrorIs(t, err, types.ErrSaleNotEnded)

	e.AdvanceTo(t, 21)
	_, _, err = e.LBP.RemoveLiquidity(e.Ctx, trader, keepertest.DAI, keepertest.DOT)
	require.ErrorIs(t, err, types.ErrNotOwner)

	reserveA, reserveB := e.LBP.Reserves(e.Ctx, keepertest.DAI, keepertest.DOT)
	amountA, amountB, err := e.LBP.RemoveLiquidity(e.Ctx, owner, keepertest.DAI, keepertest.DOT)
	require.NoError(t, err)
	require.Equal(t, reserveA, amountA)
	require.Equal(t, reserveB, amountB)
	require.Equal(t, keepertest.Units(1_000).Add(amountA), e.Ledger.FreeBalance(e.Ctx, owner, keepertest.DAI))
	require.Equal(t, keepertest.Units(1_000).Add(amountB), e.Ledger.FreeBalance(e.Ctx, owner, keepertest.DOT))

	_, err = e.LBP.GetPool(e.Ctx, keepertest.DAI, keepertest.DOT)
	require.ErrorIs(t, err, types.ErrPoolNotFound)
	require.Empty(t, e.LBP.GetAllPools(e.Ctx))
}

func TestMsgServer(t *testing.T) {
	e := keepertest.NewEnv(t)
	ms := keeper.NewMsgServerImpl(e.LBP)
	e.Fund(t, owner, keepertest.DAI, keepertest.Units(2_000))
	e.Fund(t, owner, keepertest.DOT, keepertest.Units(2_000))

	msg := &types.MsgCreatePool{
		Authority: keepertest.TestAddr("outsider").String(),
		Pool:      salePool(),
		AmountA:   keepertest.Units(1_000),
		AmountB:   keepertest.Units(1_000),
	}
	_, err := ms.CreatePool(e.Ctx, msg)
	require.Error(t, err)

	msg.Authority = e.Authority
	_, err = ms.CreatePool(e.Ctx, msg)
	require.NoError(t, err)

	e.AdvanceTo(t, 21)
	_, err = ms.RemoveLiquidity(e.Ctx, &types.MsgRemoveLiquidity{Owner: owner.String(), AssetA: keepertest.DAI, AssetB: keepertest.DAI})
	require.ErrorIs(t, err, types.ErrSameAsset)

	res, err := ms.RemoveLiquidity(e.Ctx, &types.MsgRemoveLiquidity{Owner: owner.String(), AssetA: keepertest.DOT, AssetB: keepertest.DAI})
	require.NoError(t, err)
	require.Equal(t, keepertest.Units(1_000), res.AmountA)
	require.Equal(t, keepertest.Units(1_000), res.AmountB)

	params := types.DefaultParams()
	params.MaxInRatio = 5
	_, err = ms.UpdateParams(e.Ctx, &types.MsgUpdateParams{Authority: e.Authority, Params: params})
	require.NoError(t, err)
	require.Equal(t, params, e.LBP.GetParams(e.Ctx))

	params.MaxOutRatio = 0
	_, err = ms.UpdateParams(e.Ctx, &types.MsgUpdateParams{Authority: e.Authority, Params: params})
	require.Error(t, err)
}
