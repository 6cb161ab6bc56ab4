package types

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"
)

const (
	// ModuleName defines the module name
	ModuleName = "stableswap"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName
)

// Store key prefixes
var (
	ParamsKey     = []byte{0x01}
	PoolKeyPrefix = []byte{0x02}
	NextPoolIDKey = []byte{0x03}
)

// PoolKey returns the store key of pool id.
func PoolKey(id uint64) []byte {
	return append(append([]byte{}, PoolKeyPrefix...), sdk.Uint64ToBigEndian(id)...)
}

// PoolAccount returns the account holding the reserves of pool id.
func PoolAccount(id uint64) sdk.AccAddress {
	return sdk.AccAddress(address.Module(ModuleName, sdk.Uint64ToBigEndian(id)))
}

// ProbeAccount is the account spot price dry-runs trade from. Nothing it
// does is ever committed.
func ProbeAccount() sdk.AccAddress {
	return sdk.AccAddress(address.Module(ModuleName, []byte("spot_price_probe")))
}

// ShareDenom returns the share denom of pool id.
func ShareDenom(id uint64) string {
	return fmt.Sprintf("ss/%d", id)
}
