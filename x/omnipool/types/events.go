package types

// Event types for the omnipool module
const (
	EventTypeTokenAdded       = "omnipool_token_added"
	EventTypeLiquidityAdded   = "omnipool_liquidity_added"
	EventTypeLiquidityRemoved = "omnipool_liquidity_removed"
	EventTypeSell             = "omnipool_sell"
	EventTypeBuy              = "omnipool_buy"

	AttributeKeyWho         = "who"
	AttributeKeyAsset       = "asset"
	AttributeKeyAssetIn     = "asset_in"
	AttributeKeyAssetOut    = "asset_out"
	AttributeKeyAmount      = "amount"
	AttributeKeyAmountIn    = "amount_in"
	AttributeKeyAmountOut   = "amount_out"
	AttributeKeyHubAmount   = "hub_amount"
	AttributeKeyShares      = "shares"
	AttributeKeyAssetFee    = "asset_fee"
	AttributeKeyProtocolFee = "protocol_fee"
	AttributeKeyPrice       = "price"
)
