package types

// Event types for the dca module
const (
	EventTypeScheduled        = "dca_scheduled"
	EventTypeExecutionPlanned = "dca_execution_planned"
	EventTypeExecutionStarted = "dca_execution_started"
	EventTypeTradeExecuted    = "dca_trade_executed"
	EventTypeTradeFailed      = "dca_trade_failed"
	EventTypeSuspended        = "dca_suspended"
	EventTypeTerminated       = "dca_terminated"
	EventTypeCompleted        = "dca_completed"
	EventTypePaused           = "dca_paused"
	EventTypeResumed          = "dca_resumed"

	AttributeKeyScheduleID = "schedule_id"
	AttributeKeyOwner      = "owner"
	AttributeKeyBlock      = "block"
	AttributeKeyAmountIn   = "amount_in"
	AttributeKeyAmountOut  = "amount_out"
	AttributeKeyFee        = "fee"
	AttributeKeyError      = "error"
	AttributeKeyRetries    = "retries"
)
