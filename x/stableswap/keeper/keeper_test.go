package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	keepertest "github.com/paw-chain/hydrax/testutil/keeper"
	oracletypes "github.com/paw-chain/hydrax/x/oracle/types"
	routertypes "github.com/paw-chain/hydrax/x/router/types"
	"github.com/paw-chain/hydrax/x/stableswap/keeper"
	"github.com/paw-chain/hydrax/x/stableswap/types"
)

func ints(values ...int64) []math.Int {
	out := make([]math.Int, len(values))
	for i, v := range values {
		out[i] = math.NewInt(v)
	}
	return out
}

func TestCalculateDBalanced(t *testing.T) {
	d, err := types.CalculateD(ints(1_000_000, 1_000_000), 100)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(2_000_000), d)

	d, err = types.CalculateD(ints(1_000_000, 1_000_000, 1_000_000), 10)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(3_000_000), d)

	// an empty reserve has no invariant
	d, err = types.CalculateD(ints(1_000_000, 0), 100)
	require.NoError(t, err)
	require.True(t, d.IsZero())
}

func TestCalculateDImbalancedBelowSum(t *testing.T) {
	d, err := types.CalculateD(ints(1_000_000, 3_000_000), 10)
	require.NoError(t, err)
	require.True(t, d.LT(math.NewInt(4_000_000)))
	// higher amplification moves D towards the sum
	dHigh, err := types.CalculateD(ints(1_000_000, 3_000_000), 1_000)
	require.NoError(t, err)
	require.True(t, dHigh.GT(d))
	require.True(t, dHigh.LTE(math.NewInt(4_000_000)))
}

func TestOutGivenInBalancedPool(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		reserve := rapid.Int64Range(1_000_000, 1_000_000_000_000_000).Draw(rt, "reserve")
		amount := rapid.Int64Range(1_000, reserve/2).Draw(rt, "amount")
		amplification := rapid.Uint64Range(1, 10_000).Draw(rt, "amplification")

		out, err := types.CalculateOutGivenIn(ints(reserve, reserve), 0, 1, math.NewInt(amount), amplification)
		require.NoError(rt, err)
		// a balanced pool never pays more than it receives, up to rounding
		require.True(rt, out.LTE(math.NewInt(amount).AddRaw(2)))
		require.True(rt, out.LT(math.NewInt(reserve)))
		require.False(rt, out.IsNegative())
	})
}

func TestInGivenOutCoversOut(t *testing.T) {
	reserves := ints(1_000_000_000, 1_200_000_000)
	in, err := types.CalculateInGivenOut(reserves, 0, 1, math.NewInt(1_000_000), 100)
	require.NoError(t, err)

	out, err := types.CalculateOutGivenIn(reserves, 0, 1, in, 100)
	require.NoError(t, err)
	require.True(t, out.GTE(math.NewInt(999_998)))

	_, err = types.CalculateInGivenOut(reserves, 0, 1, math.NewInt(1_200_000_000), 100)
	require.ErrorIs(t, err, types.ErrInsufficientLiquidity)
}

func TestValidatePool(t *testing.T) {
	fee := math.LegacyMustNewDecFromStr("0.0004")
	require.NoError(t, types.ValidatePool([]string{"a", "b"}, 100, 10_000, fee))
	require.ErrorIs(t, types.ValidatePool([]string{"a"}, 100, 10_000, fee), types.ErrInvalidAssets)
	require.ErrorIs(t, types.ValidatePool([]string{"a", "b", "c", "d", "e", "f"}, 100, 10_000, fee), types.ErrInvalidAssets)
	require.ErrorIs(t, types.ValidatePool([]string{"a", "a"}, 100, 10_000, fee), types.ErrInvalidAssets)
	require.ErrorIs(t, types.ValidatePool([]string{"a", "b"}, 0, 10_000, fee), types.ErrInvalidAmplification)
	require.ErrorIs(t, types.ValidatePool([]string{"a", "b"}, 10_001, 10_000, fee), types.ErrInvalidAmplification)
	require.Error(t, types.ValidatePool([]string{"a", "b"}, 100, 10_000, math.LegacyOneDec()))
}

func seedPool(t *testing.T, e *keepertest.Env) uint64 {
	t.Helper()
	id, err := e.Stableswap.CreatePool(e.Ctx, []string{keepertest.USDT, keepertest.USDC, keepertest.DAI}, 100, math.LegacyMustNewDecFromStr("0.0004"))
	require.NoError(t, err)

	provider := keepertest.TestAddr("stable-provider")
	var deposits []types.AssetAmount
	for _, asset := range []string{keepertest.USDT, keepertest.USDC, keepertest.DAI} {
		e.Fund(t, provider, asset, keepertest.Units(1_000_000))
		deposits = append(deposits, types.AssetAmount{Asset: asset, Amount: keepertest.Units(1_000_000)})
	}
	shares, err := e.Stableswap.AddLiquidity(e.Ctx, provider, id, deposits)
	require.NoError(t, err)
	require.Equal(t, keepertest.Units(3_000_000), shares)
	return id
}

func TestCreatePool(t *testing.T) {
	e := keepertest.NewEnv(t)
	id := seedPool(t, e)
	require.Equal(t, uint64(1), id)

	pool, err := e.Stableswap.GetPool(e.Ctx, id)
	require.NoError(t, err)
	require.Equal(t, []string{keepertest.USDT, keepertest.USDC, keepertest.DAI}, pool.Assets)
	require.Equal(t, keepertest.Units(3_000_000), pool.TotalShares)

	next, err := e.Stableswap.CreatePool(e.Ctx, []string{keepertest.USDT, keepertest.DAI}, 50, math.LegacyZeroDec())
	require.NoError(t, err)
	require.Equal(t, uint64(2), next)
	require.Len(t, e.Stableswap.GetAllPools(e.Ctx), 2)

	_, err = e.Stableswap.CreatePool(e.Ctx, []string{keepertest.USDT, "unknown"}, 50, math.LegacyZeroDec())
	require.ErrorIs(t, err, types.ErrAssetNotRegistered)

	_, err = e.Stableswap.GetPool(e.Ctx, 9)
	require.ErrorIs(t, err, types.ErrPoolNotFound)
}

func TestFirstDepositMustCoverEveryAsset(t *testing.T) {
	e := keepertest.NewEnv(t)
	id, err := e.Stableswap.CreatePool(e.Ctx, []string{keepertest.USDT, keepertest.USDC}, 100, math.LegacyZeroDec())
	require.NoError(t, err)
	provider := keepertest.TestAddr("provider")
	e.Fund(t, provider, keepertest.USDT, keepertest.Units(10))

	_, err = e.Stableswap.AddLiquidity(e.Ctx, provider, id, []types.AssetAmount{{Asset: keepertest.USDT, Amount: keepertest.Units(10)}})
	require.ErrorIs(t, err, types.ErrInsufficientLiquidity)

	_, err = e.Stableswap.AddLiquidity(e.Ctx, provider, id, []types.AssetAmount{{Asset: keepertest.DOT, Amount: keepertest.Units(10)}})
	require.ErrorIs(t, err, types.ErrAssetNotInPool)
}

func TestSellAndBuy(t *testing.T) {
	e := keepertest.NewEnv(t)
	id := seedPool(t, e)
	pool := routertypes.Stableswap(id)
	trader := keepertest.TestAddr("trader")
	e.Fund(t, trader, keepertest.USDT, keepertest.Units(10_000))

	quote, err := e.Stableswap.CalculateSell(e.Ctx, pool, keepertest.USDT, keepertest.USDC, keepertest.Units(1_000))
	require.NoError(t, err)
	require.True(t, quote.LT(keepertest.Units(1_000)))
	require.True(t, quote.GT(keepertest.Units(999)))

	require.NoError(t, e.Stableswap.ExecuteSell(e.Ctx, trader, pool, keepertest.USDT, keepertest.USDC, keepertest.Units(1_000), quote))
	require.Equal(t, quote, e.Ledger.FreeBalance(e.Ctx, trader, keepertest.USDC))

	cost, err := e.Stableswap.CalculateBuy(e.Ctx, pool, keepertest.USDT, keepertest.DAI, keepertest.Units(500))
	require.NoError(t, err)
	require.True(t, cost.GT(keepertest.Units(500)))
	require.True(t, cost.LT(keepertest.Units(501)))

	err = e.Stableswap.ExecuteBuy(e.Ctx, trader, pool, keepertest.USDT, keepertest.DAI, keepertest.Units(500), cost.SubRaw(1))
	require.ErrorIs(t, err, types.ErrSellLimitExceeded)
	require.NoError(t, e.Stableswap.ExecuteBuy(e.Ctx, trader, pool, keepertest.USDT, keepertest.DAI, keepertest.Units(500), cost))
	require.Equal(t, keepertest.Units(500), e.Ledger.FreeBalance(e.Ctx, trader, keepertest.DAI))
	require.Equal(t, keepertest.Units(9_000).Sub(cost), e.Ledger.FreeBalance(e.Ctx, trader, keepertest.USDT))

	err = e.Stableswap.ExecuteSell(e.Ctx, trader, pool, keepertest.USDT, keepertest.USDC, keepertest.Units(1), keepertest.Units(2))
	require.ErrorIs(t, err, types.ErrBuyLimitNotReached)

	_, err = e.Stableswap.CalculateSell(e.Ctx, pool, keepertest.USDT, keepertest.USDC, math.NewInt(999))
	require.ErrorIs(t, err, types.ErrInsufficientTradingAmount)
	_, err = e.Stableswap.CalculateSell(e.Ctx, pool, keepertest.USDT, keepertest.USDT, keepertest.Units(1))
	require.ErrorIs(t, err, types.ErrSameAsset)
	_, err = e.Stableswap.CalculateSell(e.Ctx, pool, keepertest.USDT, keepertest.DOT, keepertest.Units(1))
	require.ErrorIs(t, err, types.ErrAssetNotInPool)
	_, err = e.Stableswap.CalculateSell(e.Ctx, routertypes.Stableswap(7), keepertest.USDT, keepertest.USDC, keepertest.Units(1))
	require.ErrorIs(t, err, types.ErrPoolNotFound)
	_, err = e.Stableswap.CalculateSell(e.Ctx, routertypes.XYK(), keepertest.USDT, keepertest.USDC, keepertest.Units(1))
	require.ErrorIs(t, err, routertypes.ErrNotSupported)
}

func TestSpotPriceLeavesNoTrace(t *testing.T) {
	e := keepertest.NewEnv(t)
	id := seedPool(t, e)
	pool := routertypes.Stableswap(id)

	before := e.Stableswap.Reserves(e.Ctx, types.Pool{ID: id, Assets: []string{keepertest.USDT, keepertest.USDC}})
	price, err := e.Stableswap.CalculateSpotPrice(e.Ctx, pool, keepertest.USDT, keepertest.USDC)
	require.NoError(t, err)
	require.True(t, price.GT(math.LegacyMustNewDecFromStr("0.99")))
	require.True(t, price.LTE(math.LegacyOneDec()))

	after := e.Stableswap.Reserves(e.Ctx, types.Pool{ID: id, Assets: []string{keepertest.USDT, keepertest.USDC}})
	require.Equal(t, before, after)
	require.True(t, e.Ledger.FreeBalance(e.Ctx, types.ProbeAccount(), keepertest.USDT).IsZero())
	_, found := e.CircuitBreaker.GetTradeVolume(e.Ctx, keepertest.USDT)
	require.False(t, found)

	depth, err := e.Stableswap.GetLiquidityDepth(e.Ctx, pool, keepertest.DAI, keepertest.USDC)
	require.NoError(t, err)
	require.Equal(t, keepertest.Units(1_000_000), depth)
}

func TestTradeFeedsOracle(t *testing.T) {
	e := keepertest.NewEnv(t)
	id := seedPool(t, e)
	trader := keepertest.TestAddr("trader")
	e.Fund(t, trader, keepertest.USDT, keepertest.Units(10_000))
	require.NoError(t, e.Stableswap.ExecuteSell(e.Ctx, trader, routertypes.Stableswap(id), keepertest.USDT, keepertest.USDC, keepertest.Units(10_000), math.OneInt()))
	e.NextBlock(t)

	price, err := e.Oracle.Price(e.Ctx, oracletypes.SourceStableswap, keepertest.USDT, keepertest.USDC, oracletypes.LastBlock)
	require.NoError(t, err)
	require.True(t, price.LT(math.LegacyOneDec()))
	require.True(t, price.GT(math.LegacyMustNewDecFromStr("0.9")))

	// liquidity added at pool creation priced the untouched pair too
	_, err = e.Oracle.Price(e.Ctx, oracletypes.SourceStableswap, keepertest.DAI, keepertest.USDC, oracletypes.LastBlock)
	require.NoError(t, err)
}

func TestRemoveLiquidityOneAsset(t *testing.T) {
	e := keepertest.NewEnv(t)
	id := seedPool(t, e)
	provider := keepertest.TestAddr("stable-provider")
	shares := keepertest.Units(30_000)

	_, err := e.Stableswap.RemoveLiquidityOneAsset(e.Ctx, provider, id, keepertest.USDC, shares, keepertest.Units(30_000))
	require.ErrorIs(t, err, types.ErrBuyLimitNotReached)

	amount, err := e.Stableswap.RemoveLiquidityOneAsset(e.Ctx, provider, id, keepertest.USDC, shares, keepertest.Units(29_000))
	require.NoError(t, err)
	require.True(t, amount.LT(keepertest.Units(30_000)))
	require.Equal(t, amount, e.Ledger.FreeBalance(e.Ctx, provider, keepertest.USDC))
	require.Equal(t, keepertest.Units(2_970_000), e.Ledger.FreeBalance(e.Ctx, provider, types.ShareDenom(id)))

	pool, err := e.Stableswap.GetPool(e.Ctx, id)
	require.NoError(t, err)
	require.Equal(t, keepertest.Units(2_970_000), pool.TotalShares)

	outsider := keepertest.TestAddr("outsider")
	_, err = e.Stableswap.RemoveLiquidityOneAsset(e.Ctx, outsider, id, keepertest.USDC, shares, math.Int{})
	require.ErrorIs(t, err, types.ErrInsufficientShares)
	_, err = e.Stableswap.RemoveLiquidityOneAsset(e.Ctx, provider, id, keepertest.DOT, shares, math.Int{})
	require.ErrorIs(t, err, types.ErrAssetNotInPool)
}

func TestMsgServer(t *testing.T) {
	e := keepertest.NewEnv(t)
	ms := keeper.NewMsgServerImpl(e.Stableswap)

	msg := &types.MsgCreatePool{
		Authority:     keepertest.TestAddr("outsider").String(),
		Assets:        []string{keepertest.USDT, keepertest.USDC},
		Amplification: 100,
		Fee:           math.LegacyZeroDec(),
	}
	_, err := ms.CreatePool(e.Ctx, msg)
	require.Error(t, err)

	msg.Authority = e.Authority
	res, err := ms.CreatePool(e.Ctx, msg)
	require.NoError(t, err)
	require.Equal(t, uint64(1), res.PoolID)

	params := types.DefaultParams()
	params.MaxAmplification = 50
	_, err = ms.UpdateParams(e.Ctx, &types.MsgUpdateParams{Authority: e.Authority, Params: params})
	require.NoError(t, err)
	_, err = e.Stableswap.CreatePool(e.Ctx, []string{keepertest.USDT, keepertest.USDC}, 100, math.LegacyZeroDec())
	require.ErrorIs(t, err, types.ErrInvalidAmplification)
}
