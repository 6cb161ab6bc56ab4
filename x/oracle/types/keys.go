package types

const (
	// ModuleName defines the module name
	ModuleName = "oracle"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName

	// TStoreKey holds the trades accumulated during the current block
	TStoreKey = "transient_" + ModuleName
)

// Store key prefixes
var (
	ParamsKey      = []byte{0x01}
	EntryKeyPrefix = []byte{0x02}
)

// Transient store key prefixes
var (
	AccumulatorKeyPrefix = []byte{0x01}
)

func lengthPrefixed(s string) []byte {
	return append([]byte{byte(len(s))}, s...)
}

// pairKey encodes source and the ordered pair. Callers order the pair.
func pairKey(source, assetA, assetB string) []byte {
	key := lengthPrefixed(source)
	key = append(key, lengthPrefixed(assetA)...)
	return append(key, lengthPrefixed(assetB)...)
}

// EntryKey returns the store key of the EMA entry of (source, pair, period).
func EntryKey(source, assetA, assetB string, period Period) []byte {
	key := append(append([]byte{}, EntryKeyPrefix...), pairKey(source, assetA, assetB)...)
	return append(key, byte(period))
}

// AccumulatorKey returns the transient key of the block accumulator of (source, pair).
func AccumulatorKey(source, assetA, assetB string) []byte {
	return append(append([]byte{}, AccumulatorKeyPrefix...), pairKey(source, assetA, assetB)...)
}

// ParseAccumulatorKey decodes a key produced by AccumulatorKey.
func ParseAccumulatorKey(key []byte) (source, assetA, assetB string, ok bool) {
	rest := key[len(AccumulatorKeyPrefix):]
	parts := make([]string, 0, 3)
	for len(parts) < 3 {
		if len(rest) == 0 {
			return "", "", "", false
		}
		n := int(rest[0])
		if len(rest) < 1+n {
			return "", "", "", false
		}
		parts = append(parts, string(rest[1:1+n]))
		rest = rest[1+n:]
	}
	if len(rest) != 0 {
		return "", "", "", false
	}
	return parts[0], parts[1], parts[2], true
}
