package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"
)

const (
	// ModuleName defines the module name
	ModuleName = "xyk"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName
)

// Store key prefixes
var (
	ParamsKey     = []byte{0x01}
	PoolKeyPrefix = []byte{0x02}
)

// OrderedPair returns a and b in canonical order.
func OrderedPair(a, b string) (string, string) {
	if a > b {
		return b, a
	}
	return a, b
}

// PoolKey returns the store key of the pool trading a and b.
func PoolKey(a, b string) []byte {
	a, b = OrderedPair(a, b)
	key := append(append([]byte{}, PoolKeyPrefix...), byte(len(a)))
	key = append(key, a...)
	return append(key, b...)
}

// PoolAccount returns the account holding the reserves of the a/b pool.
func PoolAccount(a, b string) sdk.AccAddress {
	a, b = OrderedPair(a, b)
	return sdk.AccAddress(address.Module(ModuleName, []byte(a), []byte(b)))
}

// ShareDenom returns the liquidity share denom of the a/b pool.
func ShareDenom(a, b string) string {
	a, b = OrderedPair(a, b)
	return ModuleName + "/" + a + "/" + b
}
