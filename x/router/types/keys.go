package types

const (
	// ModuleName defines the module name
	ModuleName = "router"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName

	// MaxHops bounds the number of trades in a route.
	MaxHops = 5
)

// Store key prefixes
var (
	RouteKeyPrefix = []byte{0x01}
)

// RouteKey returns the store key of the route stored for an ordered pair.
func RouteKey(pair AssetPair) []byte {
	key := append([]byte{}, RouteKeyPrefix...)
	key = append(key, byte(len(pair.AssetIn)))
	key = append(key, pair.AssetIn...)
	return append(key, pair.AssetOut...)
}
