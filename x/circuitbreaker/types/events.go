package types

// Event types for the circuit breaker module
const (
	EventTypeTradeVolumeLimitChanged     = "trade_volume_limit_changed"
	EventTypeAddLiquidityLimitChanged    = "add_liquidity_limit_changed"
	EventTypeRemoveLiquidityLimitChanged = "remove_liquidity_limit_changed"
	EventTypeLimitReached                = "circuit_breaker_limit_reached"

	AttributeKeyAsset  = "asset"
	AttributeKeyLimit  = "limit"
	AttributeKeyKind   = "kind"
	AttributeKeyAmount = "amount"
)
