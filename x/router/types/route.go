package types

import (
	"fmt"
	"strings"
)

// PoolKind enumerates the AMMs a route can trade through.
type PoolKind string

const (
	PoolKindOmnipool   PoolKind = "omnipool"
	PoolKindStableswap PoolKind = "stableswap"
	PoolKindXYK        PoolKind = "xyk"
	PoolKindLBP        PoolKind = "lbp"
)

// PoolType identifies the pool a hop trades in. PoolID is set only for
// stableswap pools, the other kinds are keyed by their asset pair.
type PoolType struct {
	Kind   PoolKind `json:"kind"`
	PoolID uint64   `json:"pool_id,omitempty"`
}

// Omnipool returns the omnipool pool type.
func Omnipool() PoolType { return PoolType{Kind: PoolKindOmnipool} }

// Stableswap returns the pool type of stableswap pool id.
func Stableswap(id uint64) PoolType { return PoolType{Kind: PoolKindStableswap, PoolID: id} }

// XYK returns the xyk pool type.
func XYK() PoolType { return PoolType{Kind: PoolKindXYK} }

// LBP returns the lbp pool type.
func LBP() PoolType { return PoolType{Kind: PoolKindLBP} }

// Validate checks the pool kind.
func (p PoolType) Validate() error {
	switch p.Kind {
	case PoolKindOmnipool, PoolKindXYK, PoolKindLBP:
		if p.PoolID != 0 {
			return ErrInvalidRoute.Wrapf("%s pools have no id", p.Kind)
		}
	case PoolKindStableswap:
		if p.PoolID == 0 {
			return ErrInvalidRoute.Wrap("stableswap pool id cannot be zero")
		}
	default:
		return ErrInvalidRoute.Wrapf("unknown pool kind %q", p.Kind)
	}
	return nil
}

func (p PoolType) String() string {
	if p.Kind == PoolKindStableswap {
		return fmt.Sprintf("%s(%d)", p.Kind, p.PoolID)
	}
	return string(p.Kind)
}

// Trade is one hop of a route.
type Trade struct {
	Pool     PoolType `json:"pool"`
	AssetIn  string   `json:"asset_in"`
	AssetOut string   `json:"asset_out"`
}

func (t Trade) String() string {
	return fmt.Sprintf("%s:%s->%s", t.Pool, t.AssetIn, t.AssetOut)
}

// AssetPair is a directed pair of assets.
type AssetPair struct {
	AssetIn  string `json:"asset_in"`
	AssetOut string `json:"asset_out"`
}

// NewAssetPair creates an AssetPair.
func NewAssetPair(assetIn, assetOut string) AssetPair {
	return AssetPair{AssetIn: assetIn, AssetOut: assetOut}
}

// Ordered returns the pair in canonical orientation and whether it was flipped.
func (p AssetPair) Ordered() (AssetPair, bool) {
	if p.AssetIn > p.AssetOut {
		return AssetPair{AssetIn: p.AssetOut, AssetOut: p.AssetIn}, true
	}
	return p, false
}

func (p AssetPair) String() string {
	return p.AssetIn + "/" + p.AssetOut
}

// Route is an ordered list of hops.
type Route []Trade

// Validate checks hop count, continuity and that the route leads from
// assetIn to assetOut.
func (r Route) Validate(assetIn, assetOut string) error {
	if len(r) == 0 {
		return ErrInvalidRoute.Wrap("route is empty")
	}
	if len(r) > MaxHops {
		return ErrMaxHopsExceeded.Wrapf("%d hops, max %d", len(r), MaxHops)
	}
	if assetIn == assetOut {
		return ErrInvalidRoute.Wrapf("asset in and out are both %s", assetIn)
	}
	if r[0].AssetIn != assetIn {
		return ErrInvalidRoute.Wrapf("route starts with %s, expected %s", r[0].AssetIn, assetIn)
	}
	if r[len(r)-1].AssetOut != assetOut {
		return ErrInvalidRoute.Wrapf("route ends with %s, expected %s", r[len(r)-1].AssetOut, assetOut)
	}
	for i, hop := range r {
		if err := hop.Pool.Validate(); err != nil {
			return err
		}
		if hop.AssetIn == hop.AssetOut {
			return ErrInvalidRoute.Wrapf("hop %d trades %s for itself", i, hop.AssetIn)
		}
		if i > 0 && r[i-1].AssetOut != hop.AssetIn {
			return ErrInvalidRoute.Wrapf("hop chain broken at hop %d: %s != %s", i, r[i-1].AssetOut, hop.AssetIn)
		}
	}
	return nil
}

// Inverse returns the route traded in the opposite direction.
func (r Route) Inverse() Route {
	inv := make(Route, len(r))
	for i, hop := range r {
		inv[len(r)-1-i] = Trade{Pool: hop.Pool, AssetIn: hop.AssetOut, AssetOut: hop.AssetIn}
	}
	return inv
}

// IntermediateAssets returns the assets held between hops.
func (r Route) IntermediateAssets() []string {
	if len(r) < 2 {
		return nil
	}
	assets := make([]string, 0, len(r)-1)
	for _, hop := range r[:len(r)-1] {
		assets = append(assets, hop.AssetOut)
	}
	return assets
}

func (r Route) String() string {
	parts := make([]string, len(r))
	for i, hop := range r {
		parts[i] = hop.String()
	}
	return strings.Join(parts, " | ")
}
