package types

import (
	"fmt"

	"cosmossdk.io/math"
)

// Params defines the stableswap parameters.
type Params struct {
	MinTradingLimit  math.Int `json:"min_trading_limit"`
	MinPoolLiquidity math.Int `json:"min_pool_liquidity"`
	MaxAmplification uint64   `json:"max_amplification"`
}

// DefaultParams returns default stableswap parameters.
func DefaultParams() Params {
	return Params{
		MinTradingLimit:  math.NewInt(1000),
		MinPoolLiquidity: math.NewInt(1000),
		MaxAmplification: 10_000,
	}
}

// Validate performs basic validation of stableswap parameters.
func (p Params) Validate() error {
	if p.MinTradingLimit.IsNil() || !p.MinTradingLimit.IsPositive() {
		return fmt.Errorf("min trading limit must be positive")
	}
	if p.MinPoolLiquidity.IsNil() || p.MinPoolLiquidity.IsNegative() {
		return fmt.Errorf("min pool liquidity cannot be negative")
	}
	if p.MaxAmplification < MinAmplification {
		return fmt.Errorf("max amplification must be at least %d", MinAmplification)
	}
	return nil
}
