package keeper

import (
	"context"
	"strconv"
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/hydrax/x/router/types"
)

const (
	directionSell = "sell"
	directionBuy  = "buy"
)

// resolveRoute returns route, or the default route of the pair when route
// is empty, validated for assetIn -> assetOut.
func (k Keeper) resolveRoute(ctx context.Context, assetIn, assetOut string, route types.Route) (types.Route, error) {
	if len(route) == 0 {
		r, err := k.GetRoute(ctx, types.NewAssetPair(assetIn, assetOut))
		if err != nil {
			return nil, err
		}
		route = r
	}
	if err := route.Validate(assetIn, assetOut); err != nil {
		return nil, err
	}
	return route, nil
}

// CalculateSellAmounts returns the amount held before and after every hop
// when selling amountIn along route.
func (k Keeper) CalculateSellAmounts(ctx context.Context, route types.Route, amountIn math.Int) ([]math.Int, error) {
	amounts := make([]math.Int, len(route)+1)
	amounts[0] = amountIn
	for i, hop := range route {
		out, err := k.calculateSell(ctx, hop, amounts[i])
		if err != nil {
			return nil, err
		}
		amounts[i+1] = out
	}
	return amounts, nil
}

// CalculateBuyAmounts returns the amount held before and after every hop
// when buying amountOut along route, computed from the last hop backwards.
func (k Keeper) CalculateBuyAmounts(ctx context.Context, route types.Route, amountOut math.Int) ([]math.Int, error) {
	amounts := make([]math.Int, len(route)+1)
	amounts[len(route)] = amountOut
	for i := len(route) - 1; i >= 0; i-- {
		in, err := k.calculateBuy(ctx, route[i], amounts[i+1])
		if err != nil {
			return nil, err
		}
		amounts[i] = in
	}
	return amounts, nil
}

// SpotPrice returns the amount of the route's last asset one unit of its
// first asset is worth, as the product of the hop spot prices.
func (k Keeper) SpotPrice(ctx context.Context, route types.Route) (math.LegacyDec, error) {
	price := math.LegacyOneDec()
	for _, hop := range route {
		p, err := k.spotPrice(ctx, hop)
		if err != nil {
			return math.LegacyDec{}, err
		}
		price = price.Mul(p)
	}
	return price, nil
}

// Sell sells amountIn of assetIn for at least minLimit of assetOut. An
// empty route uses the default route of the pair. Either every hop is
// applied or none is.
func (k Keeper) Sell(ctx context.Context, who sdk.AccAddress, assetIn, assetOut string, amountIn, minLimit math.Int, route types.Route) (math.Int, error) {
	start := time.Now()
	amountOut, hops, err := k.sell(ctx, who, assetIn, assetOut, amountIn, minLimit, route)
	k.observe(directionSell, hops, start, err)
	return amountOut, err
}

func (k Keeper) sell(ctx context.Context, who sdk.AccAddress, assetIn, assetOut string, amountIn, minLimit math.Int, route types.Route) (math.Int, int, error) {
	route, err := k.resolveRoute(ctx, assetIn, assetOut, route)
	if err != nil {
		return math.Int{}, 0, err
	}
	if amountIn.IsNil() || !amountIn.IsPositive() {
		return math.Int{}, 0, types.ErrInvalidAmount.Wrap("amount in must be positive")
	}
	if balance := k.ledger.FreeBalance(ctx, who, assetIn); balance.LT(amountIn) {
		return math.Int{}, 0, types.ErrInsufficientBalance.Wrapf("have %s %s, need %s", balance, assetIn, amountIn)
	}
	amounts, err := k.CalculateSellAmounts(ctx, route, amountIn)
	if err != nil {
		return math.Int{}, 0, err
	}
	amountOut := amounts[len(route)]
	if amountOut.LT(minLimit) {
		return math.Int{}, 0, types.ErrTradingLimitReached.Wrapf("out %s < min %s", amountOut, minLimit)
	}

	err = k.executeRoute(ctx, who, route, amounts, func(cacheCtx context.Context, i int, hop types.Trade) error {
		return k.executeSell(cacheCtx, who, hop, amounts[i], amounts[i+1])
	})
	if err != nil {
		return math.Int{}, 0, err
	}
	k.emitExecuted(ctx, directionSell, who, assetIn, assetOut, amountIn, amountOut, route)
	return amountOut, len(route), nil
}

// Buy buys amountOut of assetOut for at most maxLimit of assetIn. An
// empty route uses the default route of the pair. Either every hop is
// applied or none is.
func (k Keeper) Buy(ctx context.Context, who sdk.AccAddress, assetIn, assetOut string, amountOut, maxLimit math.Int, route types.Route) (math.Int, error) {
	start := time.Now()
	amountIn, hops, err := k.buy(ctx, who, assetIn, assetOut, amountOut, maxLimit, route)
	k.observe(directionBuy, hops, start, err)
	return amountIn, err
}

func (k Keeper) buy(ctx context.Context, who sdk.AccAddress, assetIn, assetOut string, amountOut, maxLimit math.Int, route types.Route) (math.Int, int, error) {
	route, err := k.resolveRoute(ctx, assetIn, assetOut, route)
	if err != nil {
		return math.Int{}, 0, err
	}
	if amountOut.IsNil() || !amountOut.IsPositive() {
		return math.Int{}, 0, types.ErrInvalidAmount.Wrap("amount out must be positive")
	}
	amounts, err := k.CalculateBuyAmounts(ctx, route, amountOut)
	if err != nil {
		return math.Int{}, 0, err
	}
	amountIn := amounts[0]
	if amountIn.GT(maxLimit) {
		return math.Int{}, 0, types.ErrTradingLimitReached.Wrapf("in %s > max %s", amountIn, maxLimit)
	}
	if balance := k.ledger.FreeBalance(ctx, who, assetIn); balance.LT(amountIn) {
		return math.Int{}, 0, types.ErrInsufficientBalance.Wrapf("have %s %s, need %s", balance, assetIn, amountIn)
	}

	err = k.executeRoute(ctx, who, route, amounts, func(cacheCtx context.Context, i int, hop types.Trade) error {
		return k.executeBuy(cacheCtx, who, hop, amounts[i+1], amounts[i])
	})
	if err != nil {
		return math.Int{}, 0, err
	}
	k.emitExecuted(ctx, directionBuy, who, assetIn, assetOut, amountIn, amountOut, route)
	return amountIn, len(route), nil
}

// executeRoute runs every hop in one cache context and commits it only if
// all hops deliver exactly the calculated amounts. Existential deposit
// rules are suspended while a route passes through an insufficient asset.
func (k Keeper) executeRoute(ctx context.Context, who sdk.AccAddress, route types.Route, amounts []math.Int, exec func(context.Context, int, types.Trade) error) error {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	cacheCtx, write := sdkCtx.CacheContext()

	skipEd := false
	for _, asset := range route.IntermediateAssets() {
		if !k.ledger.IsSufficient(cacheCtx, asset) {
			skipEd = true
			break
		}
	}
	if skipEd {
		k.ledger.SetSkipEd(cacheCtx, true)
	}

	for i, hop := range route {
		before := k.ledger.FreeBalance(cacheCtx, who, hop.AssetOut)
		if err := exec(cacheCtx, i, hop); err != nil {
			return err
		}
		received := k.ledger.FreeBalance(cacheCtx, who, hop.AssetOut).Sub(before)
		if !received.Equal(amounts[i+1]) {
			return types.ErrUnexpectedAmountReceived.Wrapf("hop %d (%s): received %s, calculated %s", i, hop, received, amounts[i+1])
		}
	}

	if skipEd {
		k.ledger.SetSkipEd(cacheCtx, false)
	}
	write()
	return nil
}

func (k Keeper) emitExecuted(ctx context.Context, direction string, who sdk.AccAddress, assetIn, assetOut string, amountIn, amountOut math.Int, route types.Route) {
	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeRouteExecuted,
			sdk.NewAttribute(types.AttributeKeyDirection, direction),
			sdk.NewAttribute(types.AttributeKeyWho, who.String()),
			sdk.NewAttribute(types.AttributeKeyAssetIn, assetIn),
			sdk.NewAttribute(types.AttributeKeyAssetOut, assetOut),
			sdk.NewAttribute(types.AttributeKeyAmountIn, amountIn.String()),
			sdk.NewAttribute(types.AttributeKeyAmountOut, amountOut.String()),
			sdk.NewAttribute(types.AttributeKeyHops, strconv.Itoa(len(route))),
		),
	)
}

func (k Keeper) observe(direction string, hops int, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	k.metrics.TradesTotal.WithLabelValues(direction, status).Inc()
	if err == nil {
		k.metrics.TradeHops.Observe(float64(hops))
		k.metrics.TradeLatency.Observe(time.Since(start).Seconds())
	}
}
