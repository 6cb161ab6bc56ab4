package types

import (
	"cosmossdk.io/math"

	"github.com/paw-chain/hydrax/x/shared/amm"
)

// MaxWeight is the sum of both pool weights.
const MaxWeight uint32 = 100_000_000

// Pool is a two asset liquidity bootstrapping pool. The weight of AssetA
// moves linearly from InitialWeightA at Start to FinalWeightA at End and
// AssetB holds the remainder.
type Pool struct {
	Owner          string         `json:"owner"`
	AssetA         string         `json:"asset_a"`
	AssetB         string         `json:"asset_b"`
	Start          int64          `json:"start"`
	End            int64          `json:"end"`
	InitialWeightA uint32         `json:"initial_weight_a"`
	FinalWeightA   uint32         `json:"final_weight_a"`
	Fee            math.LegacyDec `json:"fee"`
	FeeCollector   string         `json:"fee_collector"`
}

// Has reports whether asset is traded by the pool.
func (p Pool) Has(asset string) bool {
	return p.AssetA == asset || p.AssetB == asset
}

// Running reports whether trading is open at height.
func (p Pool) Running(height int64) bool {
	return height >= p.Start && height <= p.End
}

// Validate checks the sale window, weights and fee.
func (p Pool) Validate() error {
	if p.AssetA == p.AssetB {
		return ErrSameAsset.Wrap(p.AssetA)
	}
	if p.Start < 0 || p.End <= p.Start {
		return ErrInvalidBlockRange.Wrapf("[%d, %d]", p.Start, p.End)
	}
	for _, w := range []uint32{p.InitialWeightA, p.FinalWeightA} {
		if w == 0 || w >= MaxWeight {
			return ErrInvalidWeight.Wrapf("%d not in (0, %d)", w, MaxWeight)
		}
	}
	return amm.ValidateFee(p.Fee)
}

// WeightsAt returns the weights of AssetA and AssetB at height, clamped to
// the sale window.
func (p Pool) WeightsAt(height int64) (uint32, uint32) {
	switch {
	case height <= p.Start:
		return p.InitialWeightA, MaxWeight - p.InitialWeightA
	case height >= p.End:
		return p.FinalWeightA, MaxWeight - p.FinalWeightA
	}
	span := p.End - p.Start
	elapsed := height - p.Start
	initial, final := int64(p.InitialWeightA), int64(p.FinalWeightA)
	w := initial + (final-initial)*elapsed/span
	return uint32(w), MaxWeight - uint32(w)
}

// WeightOf returns the weight of asset at height.
func (p Pool) WeightOf(asset string, height int64) uint32 {
	wa, wb := p.WeightsAt(height)
	if asset == p.AssetA {
		return wa
	}
	return wb
}
