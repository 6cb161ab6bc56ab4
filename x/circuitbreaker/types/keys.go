package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
)

const (
	// ModuleName defines the module name
	ModuleName = "circuitbreaker"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName

	// TStoreKey holds the per-block counters
	TStoreKey = "transient_" + ModuleName
)

// Store key prefixes
var (
	ParamsKey                     = []byte{0x01}
	TradeVolumeLimitKeyPrefix     = []byte{0x02}
	AddLiquidityLimitKeyPrefix    = []byte{0x03}
	RemoveLiquidityLimitKeyPrefix = []byte{0x04}
	LiquidityWhitelistKeyPrefix   = []byte{0x05}
)

// Transient store key prefixes, wiped at the start of every block.
var (
	TradeVolumeKeyPrefix     = []byte{0x01}
	AddLiquidityKeyPrefix    = []byte{0x02}
	RemoveLiquidityKeyPrefix = []byte{0x03}
)

func prefixed(prefix []byte, suffix []byte) []byte {
	return append(append([]byte{}, prefix...), suffix...)
}

// TradeVolumeLimitKey stores the per-asset override of the trade volume limit.
func TradeVolumeLimitKey(asset string) []byte {
	return prefixed(TradeVolumeLimitKeyPrefix, []byte(asset))
}

// AddLiquidityLimitKey stores the per-asset override of the add liquidity limit.
func AddLiquidityLimitKey(asset string) []byte {
	return prefixed(AddLiquidityLimitKeyPrefix, []byte(asset))
}

// RemoveLiquidityLimitKey stores the per-asset override of the remove liquidity limit.
func RemoveLiquidityLimitKey(asset string) []byte {
	return prefixed(RemoveLiquidityLimitKeyPrefix, []byte(asset))
}

// LiquidityWhitelistKey marks an account exempt from liquidity limits.
func LiquidityWhitelistKey(addr sdk.AccAddress) []byte {
	return prefixed(LiquidityWhitelistKeyPrefix, addr)
}

// TradeVolumeKey is the transient per-block trade volume of asset.
func TradeVolumeKey(asset string) []byte {
	return prefixed(TradeVolumeKeyPrefix, []byte(asset))
}

// AddLiquidityKey is the transient per-block added liquidity of asset.
func AddLiquidityKey(asset string) []byte {
	return prefixed(AddLiquidityKeyPrefix, []byte(asset))
}

// RemoveLiquidityKey is the transient per-block removed liquidity of asset.
func RemoveLiquidityKey(asset string) []byte {
	return prefixed(RemoveLiquidityKeyPrefix, []byte(asset))
}
