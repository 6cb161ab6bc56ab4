package types

// Event types for the oracle module
const (
	EventTypeEntryUpdated = "oracle_entry_updated"

	AttributeKeySource = "source"
	AttributeKeyAssetA = "asset_a"
	AttributeKeyAssetB = "asset_b"
	AttributeKeyPeriod = "period"
	AttributeKeyPrice  = "price"
)
