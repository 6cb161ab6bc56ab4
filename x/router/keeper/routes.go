package keeper

import (
	"context"
	"strconv"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/hydrax/x/router/types"
)

// probeDivisor sizes the amount routes are compared with: the depth of the
// first hop's input asset divided by it.
const probeDivisor = 1000

// GetRoute returns the route for pair: the stored route, inverted when it
// was stored for the opposite direction, else the direct Omnipool route
// when the Omnipool holds both assets.
func (k Keeper) GetRoute(ctx context.Context, pair types.AssetPair) (types.Route, error) {
	if route, ok := k.storedRoute(ctx, pair); ok {
		return route, nil
	}
	omnipool := types.Omnipool()
	if _, err := k.liquidityDepth(ctx, omnipool, pair.AssetIn, pair.AssetOut); err == nil {
		if _, err := k.liquidityDepth(ctx, omnipool, pair.AssetOut, pair.AssetIn); err == nil {
			return types.Route{{Pool: omnipool, AssetIn: pair.AssetIn, AssetOut: pair.AssetOut}}, nil
		}
	}
	return nil, types.ErrRouteNotFound.Wrap(pair.String())
}

func (k Keeper) storedRoute(ctx context.Context, pair types.AssetPair) (types.Route, bool) {
	ordered, flipped := pair.Ordered()
	route, ok := getJSON[types.Route](k.getStore(ctx), types.RouteKey(ordered))
	if !ok {
		return nil, false
	}
	if flipped {
		return route.Inverse(), true
	}
	return route, true
}

func (k Keeper) storeRoute(ctx context.Context, pair types.AssetPair, route types.Route) {
	ordered, flipped := pair.Ordered()
	if flipped {
		route = route.Inverse()
	}
	setJSON(k.getStore(ctx), types.RouteKey(ordered), route)
}

// SetRoute stores route as the default for pair if it prices at least as
// well as the current route in both directions.
func (k Keeper) SetRoute(ctx context.Context, who sdk.AccAddress, pair types.AssetPair, route types.Route) error {
	err := k.setRoute(ctx, pair, route)
	status := "success"
	if err != nil {
		status = "failure"
	}
	k.metrics.RouteUpdates.WithLabelValues("set", status).Inc()
	if err != nil {
		return err
	}
	k.emitRouteUpdated(ctx, who, pair, route, false)
	return nil
}

func (k Keeper) setRoute(ctx context.Context, pair types.AssetPair, route types.Route) error {
	if err := route.Validate(pair.AssetIn, pair.AssetOut); err != nil {
		return err
	}
	inverse := pair
	inverse.AssetIn, inverse.AssetOut = pair.AssetOut, pair.AssetIn

	existing, err := k.GetRoute(ctx, pair)
	if err != nil {
		existing = nil
	}
	for _, dir := range []struct {
		pair     types.AssetPair
		proposed types.Route
		current  types.Route
	}{
		{pair: pair, proposed: route, current: existing},
		{pair: inverse, proposed: route.Inverse(), current: existing.Inverse()},
	} {
		if err := k.compareRoutes(ctx, dir.proposed, dir.current); err != nil {
			return err
		}
	}
	k.storeRoute(ctx, pair, route)
	return nil
}

// compareRoutes fails unless proposed sells for at least as much and buys
// for at most as much as current. A current route that no longer
// calculates loses to any proposed route that does.
func (k Keeper) compareRoutes(ctx context.Context, proposed, current types.Route) error {
	first, last := proposed[0], proposed[len(proposed)-1]
	depthIn, err := k.liquidityDepth(ctx, first.Pool, first.AssetIn, first.AssetOut)
	if err != nil {
		return types.ErrRouteCalculationFailed.Wrapf("depth of %s: %s", first, err)
	}
	depthOut, err := k.liquidityDepth(ctx, last.Pool, last.AssetOut, last.AssetIn)
	if err != nil {
		return types.ErrRouteCalculationFailed.Wrapf("depth of %s: %s", last, err)
	}
	probeIn := depthIn.QuoRaw(probeDivisor)
	probeOut := depthOut.QuoRaw(probeDivisor)

	sellNew, err := k.CalculateSellAmounts(ctx, proposed, probeIn)
	if err != nil {
		return types.ErrRouteCalculationFailed.Wrapf("sell %s along %v: %s", probeIn, proposed, err)
	}
	buyNew, err := k.CalculateBuyAmounts(ctx, proposed, probeOut)
	if err != nil {
		return types.ErrRouteCalculationFailed.Wrapf("buy %s along %v: %s", probeOut, proposed, err)
	}
	if len(current) == 0 {
		return nil
	}
	if sellOld, err := k.CalculateSellAmounts(ctx, current, probeIn); err == nil {
		if sellNew[len(proposed)].LT(sellOld[len(current)]) {
			return types.ErrRouteUpdateIsNotSuccessful.Wrapf("sells for %s, current route %s", sellNew[len(proposed)], sellOld[len(current)])
		}
	}
	if buyOld, err := k.CalculateBuyAmounts(ctx, current, probeOut); err == nil {
		if buyNew[0].GT(buyOld[0]) {
			return types.ErrRouteUpdateIsNotSuccessful.Wrapf("buys for %s, current route %s", buyNew[0], buyOld[0])
		}
	}
	return nil
}

// ForceInsertRoute stores route for pair without comparing it to the
// current one. The caller must have checked the authority.
func (k Keeper) ForceInsertRoute(ctx context.Context, who sdk.AccAddress, pair types.AssetPair, route types.Route) error {
	if err := route.Validate(pair.AssetIn, pair.AssetOut); err != nil {
		k.metrics.RouteUpdates.WithLabelValues("force", "failure").Inc()
		return err
	}
	k.storeRoute(ctx, pair, route)
	k.metrics.RouteUpdates.WithLabelValues("force", "success").Inc()
	k.emitRouteUpdated(ctx, who, pair, route, true)
	return nil
}

func (k Keeper) emitRouteUpdated(ctx context.Context, who sdk.AccAddress, pair types.AssetPair, route types.Route, forced bool) {
	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeRouteUpdated,
			sdk.NewAttribute(types.AttributeKeyWho, who.String()),
			sdk.NewAttribute(types.AttributeKeyAssetIn, pair.AssetIn),
			sdk.NewAttribute(types.AttributeKeyAssetOut, pair.AssetOut),
			sdk.NewAttribute(types.AttributeKeyRoute, route.String()),
			sdk.NewAttribute(types.AttributeKeyForced, strconv.FormatBool(forced)),
		),
	)
}
