package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/hydrax/x/omnipool/types"
	routertypes "github.com/paw-chain/hydrax/x/router/types"
)

var _ routertypes.TradeExecution = Keeper{}

func supported(pool routertypes.PoolType) error {
	if pool.Kind != routertypes.PoolKindOmnipool {
		return routertypes.ErrNotSupported.Wrapf("omnipool cannot trade in %s", pool)
	}
	return nil
}

// tradeLiquidity loads both sides of a trade. in is nil when the hub asset
// is sold.
func (k Keeper) tradeLiquidity(ctx context.Context, params types.Params, assetIn, assetOut string) (*types.Liquidity, types.Liquidity, error) {
	if assetIn == assetOut {
		return nil, types.Liquidity{}, types.ErrSameAssetTrade.Wrap(assetIn)
	}
	if assetOut == params.HubAsset {
		return nil, types.Liquidity{}, types.ErrNotAllowed.Wrapf("buying %s is not allowed", params.HubAsset)
	}
	out, err := k.GetLiquidity(ctx, assetOut)
	if err != nil {
		return nil, types.Liquidity{}, err
	}
	if assetIn == params.HubAsset {
		return nil, out, nil
	}
	in, err := k.GetLiquidity(ctx, assetIn)
	if err != nil {
		return nil, types.Liquidity{}, err
	}
	return &in, out, nil
}

func (k Keeper) calculateSell(ctx context.Context, assetIn, assetOut string, amountIn math.Int) (types.Params, *types.Liquidity, types.Liquidity, types.TradeResult, error) {
	params := k.GetParams(ctx)
	in, out, err := k.tradeLiquidity(ctx, params, assetIn, assetOut)
	if err != nil {
		return params, nil, out, types.TradeResult{}, err
	}
	var result types.TradeResult
	if in == nil {
		result, err = types.CalculateSellHub(out, amountIn, params)
	} else {
		result, err = types.CalculateSell(*in, out, amountIn, params)
	}
	return params, in, out, result, err
}

func (k Keeper) calculateBuy(ctx context.Context, assetIn, assetOut string, amountOut math.Int) (types.Params, *types.Liquidity, types.Liquidity, types.TradeResult, error) {
	params := k.GetParams(ctx)
	in, out, err := k.tradeLiquidity(ctx, params, assetIn, assetOut)
	if err != nil {
		return params, nil, out, types.TradeResult{}, err
	}
	var result types.TradeResult
	if in == nil {
		result, err = types.CalculateBuyWithHub(out, amountOut, params)
	} else {
		result, err = types.CalculateBuy(*in, out, amountOut, params)
	}
	return params, in, out, result, err
}

// CalculateSell returns the amount of assetOut received for amountIn of assetIn.
func (k Keeper) CalculateSell(ctx context.Context, pool routertypes.PoolType, assetIn, assetOut string, amountIn math.Int) (math.Int, error) {
	if err := supported(pool); err != nil {
		return math.Int{}, err
	}
	_, _, _, result, err := k.calculateSell(ctx, assetIn, assetOut, amountIn)
	if err != nil {
		return math.Int{}, err
	}
	return result.AmountOut, nil
}

// CalculateBuy returns the amount of assetIn needed to receive amountOut of assetOut.
func (k Keeper) CalculateBuy(ctx context.Context, pool routertypes.PoolType, assetIn, assetOut string, amountOut math.Int) (math.Int, error) {
	if err := supported(pool); err != nil {
		return math.Int{}, err
	}
	_, _, _, result, err := k.calculateBuy(ctx, assetIn, assetOut, amountOut)
	if err != nil {
		return math.Int{}, err
	}
	return result.AmountIn, nil
}

// ExecuteSell sells amountIn of assetIn, failing if less than minLimit of
// assetOut would be received.
func (k Keeper) ExecuteSell(ctx context.Context, who sdk.AccAddress, pool routertypes.PoolType, assetIn, assetOut string, amountIn, minLimit math.Int) error {
	if err := supported(pool); err != nil {
		return err
	}
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	cacheCtx, write := sdkCtx.CacheContext()

	params, in, out, result, err := k.calculateSell(cacheCtx, assetIn, assetOut, amountIn)
	if err != nil {
		return err
	}
	if result.AmountOut.LT(minLimit) {
		return types.ErrBuyLimitNotReached.Wrapf("out %s < min %s", result.AmountOut, minLimit)
	}
	if err := k.applyTrade(cacheCtx, who, params, in, out, result, types.EventTypeSell); err != nil {
		return err
	}
	write()
	return nil
}

// ExecuteBuy buys amountOut of assetOut, failing if more than maxLimit of
// assetIn would be spent.
func (k Keeper) ExecuteBuy(ctx context.Context, who sdk.AccAddress, pool routertypes.PoolType, assetIn, assetOut string, amountOut, maxLimit math.Int) error {
	if err := supported(pool); err != nil {
		return err
	}
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	cacheCtx, write := sdkCtx.CacheContext()

	params, in, out, result, err := k.calculateBuy(cacheCtx, assetIn, assetOut, amountOut)
	if err != nil {
		return err
	}
	if result.AmountIn.GT(maxLimit) {
		return types.ErrSellLimitExceeded.Wrapf("in %s > max %s", result.AmountIn, maxLimit)
	}
	if err := k.applyTrade(cacheCtx, who, params, in, out, result, types.EventTypeBuy); err != nil {
		return err
	}
	write()
	return nil
}

func (k Keeper) applyTrade(
	ctx context.Context,
	who sdk.AccAddress,
	params types.Params,
	in *types.Liquidity,
	out types.Liquidity,
	result types.TradeResult,
	eventType string,
) error {
	pool := types.PoolAccount()
	assetIn, reserveIn := params.HubAsset, out.HubReserve
	if in != nil {
		assetIn, reserveIn = in.Asset, in.Reserve
	}
	if err := k.breaker.EnsureTradeLimit(ctx, assetIn, reserveIn, result.AmountIn, out.Asset, out.Reserve, result.AmountOut); err != nil {
		return err
	}

	if err := k.ledger.Transfer(ctx, who, pool, assetIn, result.AmountIn); err != nil {
		return err
	}
	if err := k.ledger.Transfer(ctx, pool, who, out.Asset, result.AmountOut); err != nil {
		return err
	}
	if in != nil {
		in.Reserve = in.Reserve.Add(result.AmountIn)
		in.HubReserve = in.HubReserve.Sub(result.HubIn)
		k.setAssetState(ctx, in.Asset, types.AssetState{HubReserve: in.HubReserve, Shares: in.Shares})
		if result.ProtocolFee.IsPositive() {
			if err := k.ledger.Withdraw(ctx, pool, params.HubAsset, result.ProtocolFee); err != nil {
				return err
			}
		}
	}
	out.Reserve = out.Reserve.Sub(result.AmountOut)
	out.HubReserve = out.HubReserve.Add(result.HubOut)
	k.setAssetState(ctx, out.Asset, types.AssetState{HubReserve: out.HubReserve, Shares: out.Shares})

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			eventType,
			sdk.NewAttribute(types.AttributeKeyWho, who.String()),
			sdk.NewAttribute(types.AttributeKeyAssetIn, assetIn),
			sdk.NewAttribute(types.AttributeKeyAssetOut, out.Asset),
			sdk.NewAttribute(types.AttributeKeyAmountIn, result.AmountIn.String()),
			sdk.NewAttribute(types.AttributeKeyAmountOut, result.AmountOut.String()),
			sdk.NewAttribute(types.AttributeKeyHubAmount, result.HubOut.String()),
			sdk.NewAttribute(types.AttributeKeyAssetFee, result.AssetFee.String()),
			sdk.NewAttribute(types.AttributeKeyProtocolFee, result.ProtocolFee.String()),
		),
	)
	k.notifyTrade(ctx, params.HubAsset, in, &out, result)
	return nil
}

// GetLiquidityDepth returns the reserve of assetA. For the hub asset it is
// the hub reserve held against assetB.
func (k Keeper) GetLiquidityDepth(ctx context.Context, pool routertypes.PoolType, assetA, assetB string) (math.Int, error) {
	if err := supported(pool); err != nil {
		return math.Int{}, err
	}
	if assetA == k.HubAsset(ctx) {
		l, err := k.GetLiquidity(ctx, assetB)
		if err != nil {
			return math.Int{}, err
		}
		return l.HubReserve, nil
	}
	l, err := k.GetLiquidity(ctx, assetA)
	if err != nil {
		return math.Int{}, err
	}
	return l.Reserve, nil
}

// CalculateSpotPrice returns the amount of assetB one unit of assetA is worth.
func (k Keeper) CalculateSpotPrice(ctx context.Context, pool routertypes.PoolType, assetA, assetB string) (math.LegacyDec, error) {
	if err := supported(pool); err != nil {
		return math.LegacyDec{}, err
	}
	if assetA == assetB {
		return math.LegacyOneDec(), nil
	}
	hub := k.HubAsset(ctx)
	switch {
	case assetA == hub:
		l, err := k.GetLiquidity(ctx, assetB)
		if err != nil {
			return math.LegacyDec{}, err
		}
		price, err := l.HubPrice()
		if err != nil || price.IsZero() {
			return math.LegacyDec{}, types.ErrInsufficientLiquidity.Wrap(assetB)
		}
		return math.LegacyOneDec().Quo(price), nil
	case assetB == hub:
		l, err := k.GetLiquidity(ctx, assetA)
		if err != nil {
			return math.LegacyDec{}, err
		}
		price, err := l.HubPrice()
		if err != nil {
			return math.LegacyDec{}, types.ErrInsufficientLiquidity.Wrap(assetA)
		}
		return price, nil
	}
	a, err := k.GetLiquidity(ctx, assetA)
	if err != nil {
		return math.LegacyDec{}, err
	}
	b, err := k.GetLiquidity(ctx, assetB)
	if err != nil {
		return math.LegacyDec{}, err
	}
	return types.SpotPrice(a, b)
}
