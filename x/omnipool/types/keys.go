package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
)

const (
	// ModuleName defines the module name
	ModuleName = "omnipool"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName

	// ShareDenomPrefix prefixes the liquidity share asset of each pool asset.
	ShareDenomPrefix = "op/"
)

// Store key prefixes
var (
	ParamsKey           = []byte{0x01}
	AssetStateKeyPrefix = []byte{0x02}
)

// AssetStateKey returns the store key of an asset's pool state.
func AssetStateKey(asset string) []byte {
	return append(append([]byte{}, AssetStateKeyPrefix...), asset...)
}

// PoolAccount returns the account holding every omnipool reserve.
func PoolAccount() sdk.AccAddress {
	return authtypes.NewModuleAddress(ModuleName)
}

// ShareDenom returns the liquidity share denom of asset.
func ShareDenom(asset string) string {
	return ShareDenomPrefix + asset
}
