package types

import (
	"fmt"

	"cosmossdk.io/math"
)

// Params defines the lbp parameters.
type Params struct {
	MinTradingLimit  math.Int `json:"min_trading_limit"`
	MinPoolLiquidity math.Int `json:"min_pool_liquidity"`
	MaxInRatio       uint64   `json:"max_in_ratio"`
	MaxOutRatio      uint64   `json:"max_out_ratio"`
}

// DefaultParams returns default lbp parameters.
func DefaultParams() Params {
	return Params{
		MinTradingLimit:  math.NewInt(1000),
		MinPoolLiquidity: math.NewInt(1000),
		MaxInRatio:       3,
		MaxOutRatio:      3,
	}
}

// Validate performs basic validation of lbp parameters.
func (p Params) Validate() error {
	if p.MinTradingLimit.IsNil() || p.MinTradingLimit.IsNegative() {
		return fmt.Errorf("min trading limit cannot be negative")
	}
	if p.MinPoolLiquidity.IsNil() || p.MinPoolLiquidity.IsNegative() {
		return fmt.Errorf("min pool liquidity cannot be negative")
	}
	if p.MaxInRatio == 0 || p.MaxOutRatio == 0 {
		return fmt.Errorf("max in/out ratios must be positive")
	}
	return nil
}
