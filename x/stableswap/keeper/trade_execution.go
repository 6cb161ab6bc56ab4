package keeper

import (
	"context"
	"strconv"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	routertypes "github.com/paw-chain/hydrax/x/router/types"
	"github.com/paw-chain/hydrax/x/shared/amm"
	"github.com/paw-chain/hydrax/x/stableswap/types"
)

var _ routertypes.TradeExecution = Keeper{}

func supported(pool routertypes.PoolType) error {
	if pool.Kind != routertypes.PoolKindStableswap {
		return routertypes.ErrNotSupported.Wrapf("stableswap cannot trade in %s", pool)
	}
	return nil
}

type quote struct {
	pool      types.Pool
	reserves  []math.Int
	in, out   int
	amountIn  math.Int
	amountOut math.Int
	fee       math.Int
}

func (q quote) reserveIn() math.Int  { return q.reserves[q.in] }
func (q quote) reserveOut() math.Int { return q.reserves[q.out] }

// loadTrade resolves the pool and asset positions of a trade.
func (k Keeper) loadTrade(ctx context.Context, poolID uint64, assetIn, assetOut string) (quote, error) {
	if assetIn == assetOut {
		return quote{}, types.ErrSameAsset.Wrap(assetIn)
	}
	pool, err := k.GetPool(ctx, poolID)
	if err != nil {
		return quote{}, err
	}
	i, ok := pool.IndexOf(assetIn)
	if !ok {
		return quote{}, types.ErrAssetNotInPool.Wrapf("%s in pool %d", assetIn, poolID)
	}
	j, ok := pool.IndexOf(assetOut)
	if !ok {
		return quote{}, types.ErrAssetNotInPool.Wrapf("%s in pool %d", assetOut, poolID)
	}
	return quote{pool: pool, reserves: k.Reserves(ctx, pool), in: i, out: j}, nil
}

func (k Keeper) quoteSell(ctx context.Context, poolID uint64, assetIn, assetOut string, amountIn math.Int) (quote, error) {
	q, err := k.loadTrade(ctx, poolID, assetIn, assetOut)
	if err != nil {
		return quote{}, err
	}
	params := k.GetParams(ctx)
	if amountIn.IsNil() || amountIn.LT(params.MinTradingLimit) {
		return quote{}, types.ErrInsufficientTradingAmount.Wrapf("%v < %s", amountIn, params.MinTradingLimit)
	}
	gross, err := types.CalculateOutGivenIn(q.reserves, q.in, q.out, amountIn, q.pool.Amplification)
	if err != nil {
		return quote{}, err
	}
	net, fee := amm.DeductFee(gross, q.pool.Fee)
	if !net.IsPositive() {
		return quote{}, types.ErrInsufficientTradingAmount.Wrapf("selling %s %s yields nothing", amountIn, assetIn)
	}
	q.amountIn, q.amountOut, q.fee = amountIn, net, fee
	return q, nil
}

func (k Keeper) quoteBuy(ctx context.Context, poolID uint64, assetIn, assetOut string, amountOut math.Int) (quote, error) {
	q, err := k.loadTrade(ctx, poolID, assetIn, assetOut)
	if err != nil {
		return quote{}, err
	}
	params := k.GetParams(ctx)
	if amountOut.IsNil() || amountOut.LT(params.MinTradingLimit) {
		return quote{}, types.ErrInsufficientTradingAmount.Wrapf("%v < %s", amountOut, params.MinTradingLimit)
	}
	gross, err := amm.GrossUp(amountOut, q.pool.Fee)
	if err != nil {
		return quote{}, err
	}
	amountIn, err := types.CalculateInGivenOut(q.reserves, q.in, q.out, gross, q.pool.Amplification)
	if err != nil {
		return quote{}, err
	}
	q.amountIn, q.amountOut, q.fee = amountIn, amountOut, gross.Sub(amountOut)
	return q, nil
}

// CalculateSell returns the amount of assetOut received for amountIn of assetIn.
func (k Keeper) CalculateSell(ctx context.Context, pool routertypes.PoolType, assetIn, assetOut string, amountIn math.Int) (math.Int, error) {
	if err := supported(pool); err != nil {
		return math.Int{}, err
	}
	q, err := k.quoteSell(ctx, pool.PoolID, assetIn, assetOut, amountIn)
	if err != nil {
		return math.Int{}, err
	}
	return q.amountOut, nil
}

// CalculateBuy returns the amount of assetIn needed to receive amountOut of assetOut.
func (k Keeper) CalculateBuy(ctx context.Context, pool routertypes.PoolType, assetIn, assetOut string, amountOut math.Int) (math.Int, error) {
	if err := supported(pool); err != nil {
		return math.Int{}, err
	}
	q, err := k.quoteBuy(ctx, pool.PoolID, assetIn, assetOut, amountOut)
	if err != nil {
		return math.Int{}, err
	}
	return q.amountIn, nil
}

// ExecuteSell sells amountIn of assetIn for at least minLimit of assetOut.
func (k Keeper) ExecuteSell(ctx context.Context, who sdk.AccAddress, pool routertypes.PoolType, assetIn, assetOut string, amountIn, minLimit math.Int) error {
	if err := supported(pool); err != nil {
		return err
	}
	q, err := k.quoteSell(ctx, pool.PoolID, assetIn, assetOut, amountIn)
	if err != nil {
		return err
	}
	if q.amountOut.LT(minLimit) {
		return types.ErrBuyLimitNotReached.Wrapf("out %s < min %s", q.amountOut, minLimit)
	}
	return k.applyTrade(ctx, who, q, types.EventTypeSell)
}

// ExecuteBuy buys amountOut of assetOut for at most maxLimit of assetIn.
func (k Keeper) ExecuteBuy(ctx context.Context, who sdk.AccAddress, pool routertypes.PoolType, assetIn, assetOut string, amountOut, maxLimit math.Int) error {
	if err := supported(pool); err != nil {
		return err
	}
	q, err := k.quoteBuy(ctx, pool.PoolID, assetIn, assetOut, amountOut)
	if err != nil {
		return err
	}
	if q.amountIn.GT(maxLimit) {
		return types.ErrSellLimitExceeded.Wrapf("in %s > max %s", q.amountIn, maxLimit)
	}
	return k.applyTrade(ctx, who, q, types.EventTypeBuy)
}

func (k Keeper) applyTrade(ctx context.Context, who sdk.AccAddress, q quote, eventType string) error {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	cacheCtx, write := sdkCtx.CacheContext()

	assetIn, assetOut := q.pool.Assets[q.in], q.pool.Assets[q.out]
	if err := k.breaker.EnsureTradeLimit(cacheCtx, assetIn, q.reserveIn(), q.amountIn, assetOut, q.reserveOut(), q.amountOut); err != nil {
		return err
	}
	account := types.PoolAccount(q.pool.ID)
	if err := k.ledger.Transfer(cacheCtx, who, account, assetIn, q.amountIn); err != nil {
		return err
	}
	if err := k.ledger.Transfer(cacheCtx, account, who, assetOut, q.amountOut); err != nil {
		return err
	}

	cacheCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			eventType,
			sdk.NewAttribute(types.AttributeKeyPoolID, strconv.FormatUint(q.pool.ID, 10)),
			sdk.NewAttribute(types.AttributeKeyWho, who.String()),
			sdk.NewAttribute(types.AttributeKeyAssetIn, assetIn),
			sdk.NewAttribute(types.AttributeKeyAssetOut, assetOut),
			sdk.NewAttribute(types.AttributeKeyAmountIn, q.amountIn.String()),
			sdk.NewAttribute(types.AttributeKeyAmountOut, q.amountOut.String()),
			sdk.NewAttribute(types.AttributeKeyFee, q.fee.String()),
		),
	)
	if k.hooks != nil {
		after := k.Reserves(cacheCtx, q.pool)
		if price, err := k.marginalPrice(cacheCtx, q.pool, after, q.in, q.out); err == nil {
			k.hooks.OnTrade(cacheCtx, source, assetIn, assetOut, q.amountIn, q.amountOut, price)
		}
	}
	write()
	return nil
}

// marginalPrice prices asset i in asset j by quoting the minimum trade
// against reserves, fee excluded. It never touches state.
func (k Keeper) marginalPrice(ctx context.Context, pool types.Pool, reserves []math.Int, i, j int) (math.LegacyDec, error) {
	probe := k.GetParams(ctx).MinTradingLimit
	out, err := types.CalculateOutGivenIn(reserves, i, j, probe, pool.Amplification)
	if err != nil {
		return math.LegacyDec{}, err
	}
	return amm.Ratio(out, probe)
}

// GetLiquidityDepth returns the pool reserve of assetA.
func (k Keeper) GetLiquidityDepth(ctx context.Context, pool routertypes.PoolType, assetA, assetB string) (math.Int, error) {
	if err := supported(pool); err != nil {
		return math.Int{}, err
	}
	q, err := k.loadTrade(ctx, pool.PoolID, assetA, assetB)
	if err != nil {
		return math.Int{}, err
	}
	return q.reserveIn(), nil
}

// CalculateSpotPrice returns the amount of assetB one unit of assetA is
// worth. The invariant has no closed form price, so the probe account is
// funded with the minimum trade of assetA and sells it in a cache that is
// discarded afterwards.
func (k Keeper) CalculateSpotPrice(ctx context.Context, pool routertypes.PoolType, assetA, assetB string) (math.LegacyDec, error) {
	if err := supported(pool); err != nil {
		return math.LegacyDec{}, err
	}
	if _, err := k.loadTrade(ctx, pool.PoolID, assetA, assetB); err != nil {
		return math.LegacyDec{}, err
	}
	probe := k.GetParams(ctx).MinTradingLimit

	dryRun, _ := sdk.UnwrapSDKContext(ctx).CacheContext()
	k.ledger.SetSkipEd(dryRun, true)
	account := types.ProbeAccount()
	if err := k.ledger.Deposit(dryRun, account, assetA, probe); err != nil {
		return math.LegacyDec{}, err
	}
	before := k.ledger.FreeBalance(dryRun, account, assetB)
	if err := k.ExecuteSell(dryRun, account, pool, assetA, assetB, probe, math.ZeroInt()); err != nil {
		return math.LegacyDec{}, err
	}
	received := k.ledger.FreeBalance(dryRun, account, assetB).Sub(before)
	return amm.Ratio(received, probe)
}
