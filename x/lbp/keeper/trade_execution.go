package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/hydrax/x/lbp/types"
	routertypes "github.com/paw-chain/hydrax/x/router/types"
	"github.com/paw-chain/hydrax/x/shared/amm"
)

var _ routertypes.TradeExecution = Keeper{}

func supported(pool routertypes.PoolType) error {
	if pool.Kind != routertypes.PoolKindLBP {
		return routertypes.ErrNotSupported.Wrapf("lbp cannot trade in %s", pool)
	}
	return nil
}

// quote is a priced trade. amountIn is what the trader pays, netIn of it
// enters the pool and fee goes to the fee collector.
type quote struct {
	pool       types.Pool
	reserveIn  math.Int
	reserveOut math.Int
	weightIn   uint32
	weightOut  uint32
	amountIn   math.Int
	netIn      math.Int
	amountOut  math.Int
	fee        math.Int
}

// loadTrade resolves the running pool of a trade and its current weights.
func (k Keeper) loadTrade(ctx context.Context, assetIn, assetOut string) (quote, error) {
	if assetIn == assetOut {
		return quote{}, types.ErrSameAsset.Wrap(assetIn)
	}
	pool, err := k.GetPool(ctx, assetIn, assetOut)
	if err != nil {
		return quote{}, err
	}
	height := sdk.UnwrapSDKContext(ctx).BlockHeight()
	if !pool.Running(height) {
		return quote{}, types.ErrSaleNotRunning.Wrapf("height %d outside [%d, %d]", height, pool.Start, pool.End)
	}
	reserveIn, reserveOut := k.Reserves(ctx, assetIn, assetOut)
	return quote{
		pool:       pool,
		reserveIn:  reserveIn,
		reserveOut: reserveOut,
		weightIn:   pool.WeightOf(assetIn, height),
		weightOut:  pool.WeightOf(assetOut, height),
	}, nil
}

func (k Keeper) quoteSell(ctx context.Context, assetIn, assetOut string, amountIn math.Int) (quote, error) {
	q, err := k.loadTrade(ctx, assetIn, assetOut)
	if err != nil {
		return quote{}, err
	}
	params := k.GetParams(ctx)
	if amountIn.IsNil() || amountIn.LT(params.MinTradingLimit) || !amountIn.IsPositive() {
		return quote{}, types.ErrInsufficientTradingAmount.Wrapf("%v < %s", amountIn, params.MinTradingLimit)
	}
	if amountIn.GT(q.reserveIn.QuoRaw(int64(params.MaxInRatio))) {
		return quote{}, types.ErrMaxInRatioExceeded.Wrapf("in %s, reserve %s", amountIn, q.reserveIn)
	}
	net, fee := amm.DeductFee(amountIn, q.pool.Fee)
	out, err := types.CalculateOutGivenIn(q.reserveIn, q.reserveOut, q.weightIn, q.weightOut, net)
	if err != nil {
		return quote{}, err
	}
	if !out.IsPositive() {
		return quote{}, types.ErrInsufficientTradingAmount.Wrapf("selling %s %s yields nothing", amountIn, assetIn)
	}
	if out.GT(q.reserveOut.QuoRaw(int64(params.MaxOutRatio))) {
		return quote{}, types.ErrMaxOutRatioExceeded.Wrapf("out %s, reserve %s", out, q.reserveOut)
	}
	q.amountIn, q.netIn, q.amountOut, q.fee = amountIn, net, out, fee
	return q, nil
}

func (k Keeper) quoteBuy(ctx context.Context, assetIn, assetOut string, amountOut math.Int) (quote, error) {
	q, err := k.loadTrade(ctx, assetIn, assetOut)
	if err != nil {
		return quote{}, err
	}
	params := k.GetParams(ctx)
	if amountOut.IsNil() || amountOut.LT(params.MinTradingLimit) || !amountOut.IsPositive() {
		return quote{}, types.ErrInsufficientTradingAmount.Wrapf("%v < %s", amountOut, params.MinTradingLimit)
	}
	if amountOut.GT(q.reserveOut.QuoRaw(int64(params.MaxOutRatio))) {
		return quote{}, types.ErrMaxOutRatioExceeded.Wrapf("out %s, reserve %s", amountOut, q.reserveOut)
	}
	net, err := types.CalculateInGivenOut(q.reserveIn, q.reserveOut, q.weightIn, q.weightOut, amountOut)
	if err != nil {
		return quote{}, err
	}
	gross, err := amm.GrossUp(net, q.pool.Fee)
	if err != nil {
		return quote{}, err
	}
	if gross.GT(q.reserveIn.QuoRaw(int64(params.MaxInRatio))) {
		return quote{}, types.ErrMaxInRatioExceeded.Wrapf("in %s, reserve %s", gross, q.reserveIn)
	}
	q.amountIn, q.netIn, q.amountOut, q.fee = gross, net, amountOut, gross.Sub(net)
	return q, nil
}

// CalculateSell returns the amount of assetOut received for amountIn of assetIn.
func (k Keeper) CalculateSell(ctx context.Context, pool routertypes.PoolType, assetIn, assetOut string, amountIn math.Int) (math.Int, error) {
	if err := supported(pool); err != nil {
		return math.Int{}, err
	}
	q, err := k.quoteSell(ctx, assetIn, assetOut, amountIn)
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
	q, err := k.quoteBuy(ctx, assetIn, assetOut, amountOut)
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
	q, err := k.quoteSell(ctx, assetIn, assetOut, amountIn)
	if err != nil {
		return err
	}
	if q.amountOut.LT(minLimit) {
		return types.ErrBuyLimitNotReached.Wrapf("out %s < min %s", q.amountOut, minLimit)
	}
	return k.applyTrade(ctx, who, assetIn, assetOut, q, types.EventTypeSell)
}

// ExecuteBuy buys amountOut of assetOut for at most maxLimit of assetIn.
func (k Keeper) ExecuteBuy(ctx context.Context, who sdk.AccAddress, pool routertypes.PoolType, assetIn, assetOut string, amountOut, maxLimit math.Int) error {
	if err := supported(pool); err != nil {
		return err
	}
	q, err := k.quoteBuy(ctx, assetIn, assetOut, amountOut)
	if err != nil {
		return err
	}
	if q.amountIn.GT(maxLimit) {
		return types.ErrSellLimitExceeded.Wrapf("in %s > max %s", q.amountIn, maxLimit)
	}
	return k.applyTrade(ctx, who, assetIn, assetOut, q, types.EventTypeBuy)
}

func (k Keeper) applyTrade(ctx context.Context, who sdk.AccAddress, assetIn, assetOut string, q quote, eventType string) error {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	cacheCtx, write := sdkCtx.CacheContext()

	if err := k.breaker.EnsureTradeLimit(cacheCtx, assetIn, q.reserveIn, q.netIn, assetOut, q.reserveOut, q.amountOut); err != nil {
		return err
	}
	account := types.PoolAccount(assetIn, assetOut)
	if err := k.ledger.Transfer(cacheCtx, who, account, assetIn, q.netIn); err != nil {
		return err
	}
	if q.fee.IsPositive() {
		collector, err := sdk.AccAddressFromBech32(q.pool.FeeCollector)
		if err != nil {
			return types.ErrInvalidAddress.Wrapf("fee collector: %s", err)
		}
		if err := k.ledger.Transfer(cacheCtx, who, collector, assetIn, q.fee); err != nil {
			return err
		}
	}
	if err := k.ledger.Transfer(cacheCtx, account, who, assetOut, q.amountOut); err != nil {
		return err
	}

	cacheCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			eventType,
			sdk.NewAttribute(types.AttributeKeyWho, who.String()),
			sdk.NewAttribute(types.AttributeKeyAssetIn, assetIn),
			sdk.NewAttribute(types.AttributeKeyAssetOut, assetOut),
			sdk.NewAttribute(types.AttributeKeyAmountIn, q.amountIn.String()),
			sdk.NewAttribute(types.AttributeKeyAmountOut, q.amountOut.String()),
			sdk.NewAttribute(types.AttributeKeyFee, q.fee.String()),
		),
	)
	if k.hooks != nil {
		price, err := types.SpotPrice(q.reserveIn.Add(q.netIn), q.reserveOut.Sub(q.amountOut), q.weightIn, q.weightOut)
		if err == nil {
			k.hooks.OnTrade(cacheCtx, source, assetIn, assetOut, q.amountIn, q.amountOut, price)
		}
	}
	write()
	return nil
}

// GetLiquidityDepth returns the pool reserve of assetA.
func (k Keeper) GetLiquidityDepth(ctx context.Context, pool routertypes.PoolType, assetA, assetB string) (math.Int, error) {
	if err := supported(pool); err != nil {
		return math.Int{}, err
	}
	if _, err := k.GetPool(ctx, assetA, assetB); err != nil {
		return math.Int{}, err
	}
	reserveA, _ := k.Reserves(ctx, assetA, assetB)
	return reserveA, nil
}

// CalculateSpotPrice returns the amount of assetB one unit of assetA is
// worth at the current weights.
func (k Keeper) CalculateSpotPrice(ctx context.Context, pool routertypes.PoolType, assetA, assetB string) (math.LegacyDec, error) {
	if err := supported(pool); err != nil {
		return math.LegacyDec{}, err
	}
	q, err := k.loadTrade(ctx, assetA, assetB)
	if err != nil {
		return math.LegacyDec{}, err
	}
	return types.SpotPrice(q.reserveIn, q.reserveOut, q.weightIn, q.weightOut)
}
