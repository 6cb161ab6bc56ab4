package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	keepertest "github.com/paw-chain/hydrax/testutil/keeper"
	circuitbreakertypes "github.com/paw-chain/hydrax/x/circuitbreaker/types"
	"github.com/paw-chain/hydrax/x/omnipool/keeper"
	"github.com/paw-chain/hydrax/x/omnipool/types"
	oracletypes "github.com/paw-chain/hydrax/x/oracle/types"
	routertypes "github.com/paw-chain/hydrax/x/router/types"
)

func liquidity(asset string, reserve, hub int64) types.Liquidity {
	return types.Liquidity{Asset: asset, Reserve: math.NewInt(reserve), HubReserve: math.NewInt(hub), Shares: math.NewInt(reserve)}
}

func TestCalculateSellMath(t *testing.T) {
	in := liquidity(keepertest.DAI, 1_000_000, 1_000_000)
	out := liquidity(keepertest.DOT, 1_000_000, 2_000_000)

	result, err := types.CalculateSell(in, out, math.NewInt(10_000), types.DefaultParams())
	require.NoError(t, err)
	require.Equal(t, math.NewInt(10_000), result.AmountIn)
	require.Equal(t, math.NewInt(9_900), result.HubIn)
	require.Equal(t, math.NewInt(5), result.ProtocolFee)
	require.Equal(t, math.NewInt(9_895), result.HubOut)
	require.Equal(t, math.NewInt(13), result.AssetFee)
	require.Equal(t, math.NewInt(4_910), result.AmountOut)
}

func TestCalculateBuyMath(t *testing.T) {
	in := liquidity(keepertest.DAI, 1_000_000, 1_000_000)
	out := liquidity(keepertest.DOT, 1_000_000, 2_000_000)

	result, err := types.CalculateBuy(in, out, math.NewInt(4_000), types.DefaultParams())
	require.NoError(t, err)
	require.Equal(t, math.NewInt(4_000), result.AmountOut)
	require.Equal(t, math.NewInt(11), result.AssetFee)
	require.Equal(t, math.NewInt(8_055), result.HubOut)
	require.Equal(t, math.NewInt(8_060), result.HubIn)
	require.Equal(t, math.NewInt(5), result.ProtocolFee)
	require.Equal(t, math.NewInt(8_126), result.AmountIn)

	// selling what the buy quoted yields at least the amount bought
	sell, err := types.CalculateSell(in, out, result.AmountIn, types.DefaultParams())
	require.NoError(t, err)
	require.True(t, sell.AmountOut.GTE(math.NewInt(4_000)))
}

func TestCalculateLimits(t *testing.T) {
	params := types.DefaultParams()
	in := liquidity(keepertest.DAI, 1_000_000, 1_000_000)
	out := liquidity(keepertest.DOT, 1_000_000, 2_000_000)

	_, err := types.CalculateSell(in, out, math.NewInt(999), params)
	require.ErrorIs(t, err, types.ErrInsufficientTradingAmount)

	_, err = types.CalculateSell(in, out, math.NewInt(333_334), params)
	require.ErrorIs(t, err, types.ErrMaxInRatioExceeded)

	_, err = types.CalculateBuy(in, out, math.NewInt(333_334), params)
	require.ErrorIs(t, err, types.ErrMaxOutRatioExceeded)

	_, err = types.CalculateSell(in, liquidity(keepertest.DOT, 0, 0), math.NewInt(10_000), params)
	require.ErrorIs(t, err, types.ErrInsufficientLiquidity)
}

func TestAddToken(t *testing.T) {
	e := keepertest.NewEnv(t)
	provider := keepertest.TestAddr("provider")
	e.Fund(t, provider, keepertest.DAI, keepertest.Units(1_000))

	shares, err := e.Omnipool.AddToken(e.Ctx, provider, keepertest.DAI, keepertest.Units(1_000), math.LegacyNewDec(2))
	require.NoError(t, err)
	require.Equal(t, keepertest.Units(1_000), shares)
	require.Equal(t, keepertest.Units(1_000), e.Ledger.FreeBalance(e.Ctx, provider, types.ShareDenom(keepertest.DAI)))
	require.True(t, e.Ledger.FreeBalance(e.Ctx, provider, keepertest.DAI).IsZero())

	l, err := e.Omnipool.GetLiquidity(e.Ctx, keepertest.DAI)
	require.NoError(t, err)
	require.Equal(t, keepertest.Units(1_000), l.Reserve)
	require.Equal(t, keepertest.Units(2_000), l.HubReserve)
	require.Equal(t, keepertest.Units(2_000), e.Ledger.FreeBalance(e.Ctx, types.PoolAccount(), "lrna"))
	require.True(t, e.Omnipool.HoldsAsset(e.Ctx, keepertest.DAI))
	require.True(t, e.Omnipool.HoldsAsset(e.Ctx, "lrna"))
	require.False(t, e.Omnipool.HoldsAsset(e.Ctx, keepertest.DOT))
	require.Equal(t, []string{keepertest.DAI}, e.Omnipool.GetAllAssets(e.Ctx))

	_, err = e.Omnipool.AddToken(e.Ctx, provider, keepertest.DAI, keepertest.Units(1), math.LegacyOneDec())
	require.ErrorIs(t, err, types.ErrAssetAlreadyExists)
	_, err = e.Omnipool.AddToken(e.Ctx, provider, "lrna", keepertest.Units(1), math.LegacyOneDec())
	require.ErrorIs(t, err, types.ErrNotAllowed)
	_, err = e.Omnipool.AddToken(e.Ctx, provider, "unknown", keepertest.Units(1), math.LegacyOneDec())
	require.ErrorIs(t, err, types.ErrAssetNotFound)
	_, err = e.Omnipool.AddToken(e.Ctx, provider, keepertest.DOT, keepertest.Units(1), math.LegacyZeroDec())
	require.ErrorIs(t, err, types.ErrInvalidInitialPrice)
}

func TestSpotPrice(t *testing.T) {
	e := keepertest.NewEnv(t)
	e.DefaultOmnipool(t)
	pool := routertypes.Omnipool()

	price, err := e.Omnipool.CalculateSpotPrice(e.Ctx, pool, keepertest.DOT, keepertest.DAI)
	require.NoError(t, err)
	require.Equal(t, math.LegacyNewDec(10), price)

	price, err = e.Omnipool.CalculateSpotPrice(e.Ctx, pool, keepertest.DAI, "lrna")
	require.NoError(t, err)
	require.Equal(t, math.LegacyNewDec(2), price)

	price, err = e.Omnipool.CalculateSpotPrice(e.Ctx, pool, "lrna", keepertest.DAI)
	require.NoError(t, err)
	require.Equal(t, math.LegacyMustNewDecFromStr("0.5"), price)

	depth, err := e.Omnipool.GetLiquidityDepth(e.Ctx, pool, keepertest.DOT, keepertest.DAI)
	require.NoError(t, err)
	require.Equal(t, keepertest.Units(100_000), depth)

	depth, err = e.Omnipool.GetLiquidityDepth(e.Ctx, pool, "lrna", keepertest.DOT)
	require.NoError(t, err)
	require.Equal(t, keepertest.Units(2_000_000), depth)

	_, err = e.Omnipool.CalculateSpotPrice(e.Ctx, routertypes.XYK(), keepertest.DOT, keepertest.DAI)
	require.ErrorIs(t, err, routertypes.ErrNotSupported)
}

func TestExecuteSell(t *testing.T) {
	e := keepertest.NewEnv(t)
	e.DefaultOmnipool(t)
	pool := routertypes.Omnipool()
	trader := keepertest.TestAddr("trader")
	e.Fund(t, trader, keepertest.DAI, keepertest.Units(1_000))

	quote, err := e.Omnipool.CalculateSell(e.Ctx, pool, keepertest.DAI, keepertest.DOT, keepertest.Units(1_000))
	require.NoError(t, err)
	require.True(t, quote.IsPositive())

	err = e.Omnipool.ExecuteSell(e.Ctx, trader, pool, keepertest.DAI, keepertest.DOT, keepertest.Units(1_000), quote.AddRaw(1))
	require.ErrorIs(t, err, types.ErrBuyLimitNotReached)
	require.Equal(t, keepertest.Units(1_000), e.Ledger.FreeBalance(e.Ctx, trader, keepertest.DAI))

	require.NoError(t, e.Omnipool.ExecuteSell(e.Ctx, trader, pool, keepertest.DAI, keepertest.DOT, keepertest.Units(1_000), quote))
	require.True(t, e.Ledger.FreeBalance(e.Ctx, trader, keepertest.DAI).IsZero())
	require.Equal(t, quote, e.Ledger.FreeBalance(e.Ctx, trader, keepertest.DOT))

	dai, err := e.Omnipool.GetLiquidity(e.Ctx, keepertest.DAI)
	require.NoError(t, err)
	require.Equal(t, keepertest.Units(1_001_000), dai.Reserve)
	require.True(t, dai.HubReserve.LT(keepertest.Units(2_000_000)))

	dot, err := e.Omnipool.GetLiquidity(e.Ctx, keepertest.DOT)
	require.NoError(t, err)
	require.Equal(t, keepertest.Units(100_000).Sub(quote), dot.Reserve)
	require.True(t, dot.HubReserve.GT(keepertest.Units(2_000_000)))

	// the protocol fee is burned, so hub reserves shrink overall
	hubBurned := keepertest.Units(4_000_000).Sub(dai.HubReserve).Sub(dot.HubReserve)
	require.True(t, hubBurned.IsPositive())
}

func TestExecuteBuy(t *testing.T) {
	e := keepertest.NewEnv(t)
	e.DefaultOmnipool(t)
	pool := routertypes.Omnipool()
	trader := keepertest.TestAddr("trader")
	e.Fund(t, trader, keepertest.DAI, keepertest.Units(1_000))

	quote, err := e.Omnipool.CalculateBuy(e.Ctx, pool, keepertest.DAI, keepertest.DOT, keepertest.Units(10))
	require.NoError(t, err)

	err = e.Omnipool.ExecuteBuy(e.Ctx, trader, pool, keepertest.DAI, keepertest.DOT, keepertest.Units(10), quote.SubRaw(1))
	require.ErrorIs(t, err, types.ErrSellLimitExceeded)

	require.NoError(t, e.Omnipool.ExecuteBuy(e.Ctx, trader, pool, keepertest.DAI, keepertest.DOT, keepertest.Units(10), quote))
	require.Equal(t, keepertest.Units(10), e.Ledger.FreeBalance(e.Ctx, trader, keepertest.DOT))
	require.Equal(t, keepertest.Units(1_000).Sub(quote), e.Ledger.FreeBalance(e.Ctx, trader, keepertest.DAI))
}

func TestTradeHubAsset(t *testing.T) {
	e := keepertest.NewEnv(t)
	e.DefaultOmnipool(t)
	pool := routertypes.Omnipool()
	trader := keepertest.TestAddr("trader")
	e.Fund(t, trader, "lrna", keepertest.Units(100))

	require.NoError(t, e.Omnipool.ExecuteSell(e.Ctx, trader, pool, "lrna", keepertest.DAI, keepertest.Units(100), math.OneInt()))
	require.True(t, e.Ledger.FreeBalance(e.Ctx, trader, keepertest.DAI).IsPositive())

	err := e.Omnipool.ExecuteSell(e.Ctx, trader, pool, keepertest.DAI, "lrna", keepertest.Units(1), math.OneInt())
	require.ErrorIs(t, err, types.ErrNotAllowed)

	err = e.Omnipool.ExecuteSell(e.Ctx, trader, pool, keepertest.DAI, keepertest.DAI, keepertest.Units(1), math.OneInt())
	require.ErrorIs(t, err, types.ErrSameAssetTrade)
}

func TestTradeRespectsCircuitBreaker(t *testing.T) {
	e := keepertest.NewEnv(t)
	e.DefaultOmnipool(t)
	pool := routertypes.Omnipool()
	trader := keepertest.TestAddr("trader")
	e.Fund(t, trader, keepertest.DAI, keepertest.Units(20_000))
	require.NoError(t, e.CircuitBreaker.SetTradeVolumeLimit(e.Ctx, keepertest.DAI, circuitbreakertypes.NewFraction(1, 100)))

	before, err := e.Omnipool.GetLiquidity(e.Ctx, keepertest.DAI)
	require.NoError(t, err)

	err = e.Omnipool.ExecuteSell(e.Ctx, trader, pool, keepertest.DAI, keepertest.DOT, keepertest.Units(20_000), math.OneInt())
	require.ErrorIs(t, err, circuitbreakertypes.ErrMaxTradeVolumePerBlockReached)

	after, err := e.Omnipool.GetLiquidity(e.Ctx, keepertest.DAI)
	require.NoError(t, err)
	require.Equal(t, before, after)
	require.Equal(t, keepertest.Units(20_000), e.Ledger.FreeBalance(e.Ctx, trader, keepertest.DAI))

	// the volume is available again next block within the limit
	e.NextBlock(t)
	require.NoError(t, e.Omnipool.ExecuteSell(e.Ctx, trader, pool, keepertest.DAI, keepertest.DOT, keepertest.Units(10_000), math.OneInt()))
}

func TestTradesFeedOracle(t *testing.T) {
	e := keepertest.NewEnv(t)
	e.DefaultOmnipool(t)
	trader := keepertest.TestAddr("trader")
	e.Fund(t, trader, keepertest.DAI, keepertest.Units(1_000))
	require.NoError(t, e.Omnipool.ExecuteSell(e.Ctx, trader, routertypes.Omnipool(), keepertest.DAI, keepertest.DOT, keepertest.Units(1_000), math.OneInt()))
	e.NextBlock(t)

	price, err := e.Oracle.Price(e.Ctx, oracletypes.SourceOmnipool, keepertest.DOT, keepertest.DAI, oracletypes.LastBlock)
	require.NoError(t, err)
	require.True(t, price.GT(math.LegacyNewDec(9)))
	require.True(t, price.LT(math.LegacyNewDec(11)))

	entry, err := e.Oracle.GetEntry(e.Ctx, oracletypes.SourceOmnipool, keepertest.DAI, "lrna", oracletypes.LastBlock)
	require.NoError(t, err)
	require.Equal(t, keepertest.Units(1_000), entry.VolumeA)
}

func TestAddRemoveLiquidity(t *testing.T) {
	e := keepertest.NewEnv(t)
	e.DefaultOmnipool(t)
	provider := keepertest.TestAddr("provider")
	e.Fund(t, provider, keepertest.DAI, keepertest.Units(100_000))

	shares, err := e.Omnipool.AddLiquidity(e.Ctx, provider, keepertest.DAI, keepertest.Units(10_000))
	require.NoError(t, err)
	require.Equal(t, keepertest.Units(10_000), shares)

	l, err := e.Omnipool.GetLiquidity(e.Ctx, keepertest.DAI)
	require.NoError(t, err)
	require.Equal(t, keepertest.Units(1_010_000), l.Reserve)
	require.Equal(t, keepertest.Units(2_020_000), l.HubReserve)

	// 5% of the reserve per block
	_, err = e.Omnipool.AddLiquidity(e.Ctx, provider, keepertest.DAI, keepertest.Units(45_000))
	require.ErrorIs(t, err, circuitbreakertypes.ErrMaxLiquidityLimitPerBlockReached)

	_, err = e.Omnipool.RemoveLiquidity(e.Ctx, provider, keepertest.DAI, shares.AddRaw(1))
	require.ErrorIs(t, err, types.ErrInsufficientShares)

	amount, err := e.Omnipool.RemoveLiquidity(e.Ctx, provider, keepertest.DAI, shares)
	require.NoError(t, err)
	require.Equal(t, keepertest.Units(10_000), amount)
	require.Equal(t, keepertest.Units(100_000), e.Ledger.FreeBalance(e.Ctx, provider, keepertest.DAI))
	require.True(t, e.Ledger.FreeBalance(e.Ctx, provider, types.ShareDenom(keepertest.DAI)).IsZero())
}

func TestRemoveAllSharesDelists(t *testing.T) {
	e := keepertest.NewEnv(t)
	provider := keepertest.TestAddr("provider")
	e.Fund(t, provider, keepertest.DAI, keepertest.Units(1_000))
	shares, err := e.Omnipool.AddToken(e.Ctx, provider, keepertest.DAI, keepertest.Units(1_000), math.LegacyOneDec())
	require.NoError(t, err)

	// the whole reserve is above the remove limit unless whitelisted
	e.CircuitBreaker.AddToWhitelist(e.Ctx, provider)
	_, err = e.Omnipool.RemoveLiquidity(e.Ctx, provider, keepertest.DAI, shares)
	require.NoError(t, err)

	_, found := e.Omnipool.GetAssetState(e.Ctx, keepertest.DAI)
	require.False(t, found)
	require.Equal(t, keepertest.Units(1_000), e.Ledger.FreeBalance(e.Ctx, provider, keepertest.DAI))
}

func TestMsgServer(t *testing.T) {
	e := keepertest.NewEnv(t)
	ms := keeper.NewMsgServerImpl(e.Omnipool)
	provider := keepertest.TestAddr("provider")
	e.Fund(t, provider, keepertest.DAI, keepertest.Units(1_000))

	msg := &types.MsgAddToken{
		Authority:    provider.String(),
		Provider:     provider.String(),
		Asset:        keepertest.DAI,
		Amount:       keepertest.Units(1_000),
		InitialPrice: math.LegacyOneDec(),
	}
	_, err := ms.AddToken(e.Ctx, msg)
	require.Error(t, err)

	msg.Authority = e.Authority
	res, err := ms.AddToken(e.Ctx, msg)
	require.NoError(t, err)
	require.Equal(t, keepertest.Units(1_000), res.Shares)

	params := types.DefaultParams()
	params.AssetFee = math.LegacyMustNewDecFromStr("0.01")
	_, err = ms.UpdateParams(e.Ctx, &types.MsgUpdateParams{Authority: e.Authority, Params: params})
	require.NoError(t, err)
	require.True(t, e.Omnipool.GetParams(e.Ctx).AssetFee.Equal(params.AssetFee))

	params.MaxInRatio = 0
	_, err = ms.UpdateParams(e.Ctx, &types.MsgUpdateParams{Authority: e.Authority, Params: params})
	require.Error(t, err)
}
