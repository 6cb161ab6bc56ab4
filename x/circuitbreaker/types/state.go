package types

import (
	"cosmossdk.io/math"
)

// TradeVolume is the per-block trade volume of one asset. Limit is fixed
// from the reserve observed at the first trade of the block.
type TradeVolume struct {
	Limit     math.Int `json:"limit"`
	VolumeIn  math.Int `json:"volume_in"`
	VolumeOut math.Int `json:"volume_out"`
}

// NewTradeVolume starts a counter for the block.
func NewTradeVolume(limit math.Int) TradeVolume {
	return TradeVolume{Limit: limit, VolumeIn: math.ZeroInt(), VolumeOut: math.ZeroInt()}
}

// Exceeded reports whether the net volume in either direction is above Limit.
func (v TradeVolume) Exceeded() bool {
	if v.VolumeIn.GT(v.VolumeOut) {
		return v.VolumeIn.Sub(v.VolumeOut).GT(v.Limit)
	}
	return v.VolumeOut.Sub(v.VolumeIn).GT(v.Limit)
}

// LiquidityVolume is the per-block liquidity added or removed for one asset.
type LiquidityVolume struct {
	Limit  math.Int `json:"limit"`
	Amount math.Int `json:"amount"`
}

// NewLiquidityVolume starts a counter for the block.
func NewLiquidityVolume(limit math.Int) LiquidityVolume {
	return LiquidityVolume{Limit: limit, Amount: math.ZeroInt()}
}

// Params defines the circuit breaker parameters.
type Params struct {
	// DefaultTradeVolumeLimit applies to every asset without an override.
	DefaultTradeVolumeLimit Fraction `json:"default_trade_volume_limit"`
	// DefaultAddLiquidityLimit is unlimited when nil.
	DefaultAddLiquidityLimit *Fraction `json:"default_add_liquidity_limit,omitempty"`
	// DefaultRemoveLiquidityLimit is unlimited when nil.
	DefaultRemoveLiquidityLimit *Fraction `json:"default_remove_liquidity_limit,omitempty"`
}

// DefaultParams returns 50% trade volume and 5% liquidity limits per block.
func DefaultParams() Params {
	liquidity := NewFraction(500, 10_000)
	return Params{
		DefaultTradeVolumeLimit:     NewFraction(5_000, 10_000),
		DefaultAddLiquidityLimit:    &liquidity,
		DefaultRemoveLiquidityLimit: &liquidity,
	}
}

// Validate validates the parameter set.
func (p Params) Validate() error {
	if err := p.DefaultTradeVolumeLimit.Validate(); err != nil {
		return err
	}
	if p.DefaultAddLiquidityLimit != nil {
		if err := p.DefaultAddLiquidityLimit.Validate(); err != nil {
			return err
		}
	}
	if p.DefaultRemoveLiquidityLimit != nil {
		if err := p.DefaultRemoveLiquidityLimit.Validate(); err != nil {
			return err
		}
	}
	return nil
}
