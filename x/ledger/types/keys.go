package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
)

const (
	// ModuleName defines the module name
	ModuleName = "ledger"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName

	// TStoreKey defines the transient store key
	TStoreKey = "transient_" + ModuleName

	// TreasuryName is the module account collecting execution fees and
	// insufficient-asset deposits.
	TreasuryName = "treasury"
)

// Store key prefixes
var (
	ParamsKey             = []byte{0x01}
	AssetKeyPrefix        = []byte{0x02}
	BalanceKeyPrefix      = []byte{0x03}
	ReservedKeyPrefix     = []byte{0x04}
	NamedReserveKeyPrefix = []byte{0x05}
	IssuanceKeyPrefix     = []byte{0x06}
	EdChargeKeyPrefix     = []byte{0x07}
	EdExemptKeyPrefix     = []byte{0x08}
)

// Transient store keys
var (
	SkipEdKey = []byte{0x01}
)

// TreasuryAccount returns the treasury module address.
func TreasuryAccount() sdk.AccAddress {
	return authtypes.NewModuleAddress(TreasuryName)
}

func denomBytes(denom string) []byte {
	return append([]byte{byte(len(denom))}, denom...)
}

// AssetKey returns the store key of a registered asset.
func AssetKey(denom string) []byte {
	return append(append([]byte{}, AssetKeyPrefix...), denom...)
}

// BalanceKey returns the store key of an account's free balance.
func BalanceKey(addr sdk.AccAddress, denom string) []byte {
	key := append(append([]byte{}, BalanceKeyPrefix...), address.MustLengthPrefix(addr)...)
	return append(key, denom...)
}

// ReservedKey returns the store key of an account's total reserved balance.
func ReservedKey(addr sdk.AccAddress, denom string) []byte {
	key := append(append([]byte{}, ReservedKeyPrefix...), address.MustLengthPrefix(addr)...)
	return append(key, denom...)
}

// NamedReserveKey returns the store key of a named reservation.
func NamedReserveKey(id string, addr sdk.AccAddress, denom string) []byte {
	key := append(append([]byte{}, NamedReserveKeyPrefix...), denomBytes(id)...)
	key = append(key, address.MustLengthPrefix(addr)...)
	return append(key, denom...)
}

// IssuanceKey returns the store key of an asset's total issuance.
func IssuanceKey(denom string) []byte {
	return append(append([]byte{}, IssuanceKeyPrefix...), denom...)
}

// EdChargeKey marks that the insufficient-asset deposit was charged for (addr, denom).
func EdChargeKey(addr sdk.AccAddress, denom string) []byte {
	key := append(append([]byte{}, EdChargeKeyPrefix...), address.MustLengthPrefix(addr)...)
	return append(key, denom...)
}

// EdExemptKey marks an account (pool, treasury) exempt from the insufficient-asset deposit.
func EdExemptKey(addr sdk.AccAddress) []byte {
	return append(append([]byte{}, EdExemptKeyPrefix...), addr...)
}
