package types

// Event types for the router module
const (
	EventTypeRouteExecuted = "route_executed"
	EventTypeRouteUpdated  = "route_updated"

	AttributeKeyWho       = "who"
	AttributeKeyDirection = "direction"
	AttributeKeyAssetIn   = "asset_in"
	AttributeKeyAssetOut  = "asset_out"
	AttributeKeyAmountIn  = "amount_in"
	AttributeKeyAmountOut = "amount_out"
	AttributeKeyHops      = "hops"
	AttributeKeyRoute     = "route"
	AttributeKeyForced    = "forced"
)
