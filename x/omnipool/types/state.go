package types

import (
	"cosmossdk.io/math"

	"github.com/paw-chain/hydrax/x/shared/amm"
)

// AssetState is the pool state of one asset. The asset reserve itself is
// the pool account balance and is passed alongside.
type AssetState struct {
	HubReserve math.Int `json:"hub_reserve"`
	Shares     math.Int `json:"shares"`
}

// Liquidity is an asset state together with its reserve.
type Liquidity struct {
	Asset      string
	Reserve    math.Int
	HubReserve math.Int
	Shares     math.Int
}

// HubPrice returns the hub amount one unit of the asset is worth.
func (l Liquidity) HubPrice() (math.LegacyDec, error) {
	return amm.Ratio(l.HubReserve, l.Reserve)
}

// SpotPrice returns the amount of b one unit of a is worth.
func SpotPrice(a, b Liquidity) (math.LegacyDec, error) {
	pa, err := a.HubPrice()
	if err != nil {
		return math.LegacyDec{}, ErrInsufficientLiquidity.Wrapf("%s: %s", a.Asset, err)
	}
	pb, err := b.HubPrice()
	if err != nil || pb.IsZero() {
		return math.LegacyDec{}, ErrInsufficientLiquidity.Wrapf("%s has no hub reserve", b.Asset)
	}
	return pa.Quo(pb), nil
}
