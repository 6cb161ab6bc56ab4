package types

// Event types for the lbp module
const (
	EventTypePoolCreated      = "lbp_pool_created"
	EventTypeLiquidityRemoved = "lbp_liquidity_removed"
	EventTypeSell             = "lbp_sell"
	EventTypeBuy              = "lbp_buy"

	AttributeKeyOwner     = "owner"
	AttributeKeyWho       = "who"
	AttributeKeyAssetA    = "asset_a"
	AttributeKeyAssetB    = "asset_b"
	AttributeKeyAmountA   = "amount_a"
	AttributeKeyAmountB   = "amount_b"
	AttributeKeyStart     = "start"
	AttributeKeyEnd       = "end"
	AttributeKeyAssetIn   = "asset_in"
	AttributeKeyAssetOut  = "asset_out"
	AttributeKeyAmountIn  = "amount_in"
	AttributeKeyAmountOut = "amount_out"
	AttributeKeyFee       = "fee"
)
