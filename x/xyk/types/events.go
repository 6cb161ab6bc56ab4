package types

// Event types for the xyk module
const (
	EventTypePoolCreated      = "xyk_pool_created"
	EventTypeLiquidityAdded   = "xyk_liquidity_added"
	EventTypeLiquidityRemoved = "xyk_liquidity_removed"
	EventTypeSell             = "xyk_sell"
	EventTypeBuy              = "xyk_buy"

	AttributeKeyWho       = "who"
	AttributeKeyAssetA    = "asset_a"
	AttributeKeyAssetB    = "asset_b"
	AttributeKeyAmountA   = "amount_a"
	AttributeKeyAmountB   = "amount_b"
	AttributeKeyAssetIn   = "asset_in"
	AttributeKeyAssetOut  = "asset_out"
	AttributeKeyAmountIn  = "amount_in"
	AttributeKeyAmountOut = "amount_out"
	AttributeKeyFee       = "fee"
	AttributeKeyShares    = "shares"
)
