package types

// Event types for the ledger module
const (
	EventTypeAssetRegistered = "asset_registered"
	EventTypeDeposited       = "deposited"
	EventTypeWithdrawn       = "withdrawn"
	EventTypeTransfer        = "transfer"
	EventTypeReserved        = "reserved"
	EventTypeUnreserved      = "unreserved"
	EventTypeEdCharged       = "insufficient_asset_deposit_charged"
	EventTypeEdRefunded      = "insufficient_asset_deposit_refunded"

	AttributeKeyDenom     = "denom"
	AttributeKeyAccount   = "account"
	AttributeKeyFrom      = "from"
	AttributeKeyTo        = "to"
	AttributeKeyAmount    = "amount"
	AttributeKeyReserveID = "reserve_id"
)
