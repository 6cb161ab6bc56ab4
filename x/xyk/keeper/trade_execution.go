package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	routertypes "github.com/paw-chain/hydrax/x/router/types"
	"github.com/paw-chain/hydrax/x/xyk/types"
)

var _ routertypes.TradeExecution = Keeper{}

func supported(pool routertypes.PoolType) error {
	if pool.Kind != routertypes.PoolKindXYK {
		return routertypes.ErrNotSupported.Wrapf("xyk cannot trade in %s", pool)
	}
	return nil
}

type quote struct {
	reserveIn  math.Int
	reserveOut math.Int
	amountIn   math.Int
	amountOut  math.Int
	fee        math.Int
}

func (k Keeper) quoteSell(ctx context.Context, assetIn, assetOut string, amountIn math.Int) (quote, error) {
	if assetIn == assetOut {
		return quote{}, types.ErrSameAsset.Wrap(assetIn)
	}
	if _, err := k.GetPool(ctx, assetIn, assetOut); err != nil {
		return quote{}, err
	}
	params := k.GetParams(ctx)
	if amountIn.IsNil() || amountIn.LT(params.MinTradingLimit) || !amountIn.IsPositive() {
		return quote{}, types.ErrInsufficientTradingAmount.Wrapf("%v < %s", amountIn, params.MinTradingLimit)
	}
	reserveIn, reserveOut := k.Reserves(ctx, assetIn, assetOut)
	if amountIn.GT(reserveIn.QuoRaw(int64(params.MaxInRatio))) {
		return quote{}, types.ErrMaxInRatioExceeded.Wrapf("in %s, reserve %s", amountIn, reserveIn)
	}
	amountOut, fee, err := types.CalculateOut(reserveIn, reserveOut, amountIn, params.Fee)
	if err != nil {
		return quote{}, err
	}
	if !amountOut.IsPositive() {
		return quote{}, types.ErrInsufficientTradingAmount.Wrapf("selling %s %s yields nothing", amountIn, assetIn)
	}
	if amountOut.GT(reserveOut.QuoRaw(int64(params.MaxOutRatio))) {
		return quote{}, types.ErrMaxOutRatioExceeded.Wrapf("out %s, reserve %s", amountOut, reserveOut)
	}
	return quote{reserveIn: reserveIn, reserveOut: reserveOut, amountIn: amountIn, amountOut: amountOut, fee: fee}, nil
}

func (k Keeper) quoteBuy(ctx context.Context, assetIn, assetOut string, amountOut math.Int) (quote, error) {
	if assetIn == assetOut {
		return quote{}, types.ErrSameAsset.Wrap(assetIn)
	}
	if _, err := k.GetPool(ctx, assetIn, assetOut); err != nil {
		return quote{}, err
	}
	params := k.GetParams(ctx)
	if amountOut.IsNil() || amountOut.LT(params.MinTradingLimit) || !amountOut.IsPositive() {
		return quote{}, types.ErrInsufficientTradingAmount.Wrapf("%v < %s", amountOut, params.MinTradingLimit)
	}
	reserveIn, reserveOut := k.Reserves(ctx, assetIn, assetOut)
	if amountOut.GT(reserveOut.QuoRaw(int64(params.MaxOutRatio))) {
		return quote{}, types.ErrMaxOutRatioExceeded.Wrapf("out %s, reserve %s", amountOut, reserveOut)
	}
	amountIn, fee, err := types.CalculateIn(reserveIn, reserveOut, amountOut, params.Fee)
	if err != nil {
		return quote{}, err
	}
	if amountIn.GT(reserveIn.QuoRaw(int64(params.MaxInRatio))) {
		return quote{}, types.ErrMaxInRatioExceeded.Wrapf("in %s, reserve %s", amountIn, reserveIn)
	}
	return quote{reserveIn: reserveIn, reserveOut: reserveOut, amountIn: amountIn, amountOut: amountOut, fee: fee}, nil
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

	if err := k.breaker.EnsureTradeLimit(cacheCtx, assetIn, q.reserveIn, q.amountIn, assetOut, q.reserveOut, q.amountOut); err != nil {
		return err
	}
	account := types.PoolAccount(assetIn, assetOut)
	if err := k.ledger.Transfer(cacheCtx, who, account, assetIn, q.amountIn); err != nil {
		return err
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
		reserveIn := q.reserveIn.Add(q.amountIn)
		reserveOut := q.reserveOut.Sub(q.amountOut)
		if reserveIn.IsPositive() {
			price := math.LegacyNewDecFromInt(reserveOut).Quo(math.LegacyNewDecFromInt(reserveIn))
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

// CalculateSpotPrice returns the amount of assetB one unit of assetA is worth.
func (k Keeper) CalculateSpotPrice(ctx context.Context, pool routertypes.PoolType, assetA, assetB string) (math.LegacyDec, error) {
	if err := supported(pool); err != nil {
		return math.LegacyDec{}, err
	}
	if _, err := k.GetPool(ctx, assetA, assetB); err != nil {
		return math.LegacyDec{}, err
	}
	reserveA, reserveB := k.Reserves(ctx, assetA, assetB)
	if !reserveA.IsPositive() {
		return math.LegacyDec{}, types.ErrInsufficientLiquidity.Wrapf("%s reserve is empty", assetA)
	}
	return math.LegacyNewDecFromInt(reserveB).Quo(math.LegacyNewDecFromInt(reserveA)), nil
}
