package types

import (
	"fmt"

	"cosmossdk.io/math"

	"github.com/paw-chain/hydrax/x/shared/amm"
)

// Params defines the xyk parameters.
type Params struct {
	Fee              math.LegacyDec `json:"fee"`
	MinTradingLimit  math.Int       `json:"min_trading_limit"`
	MinPoolLiquidity math.Int       `json:"min_pool_liquidity"`
	MaxInRatio       uint64         `json:"max_in_ratio"`
	MaxOutRatio      uint64         `json:"max_out_ratio"`
}

// DefaultParams returns default xyk parameters.
func DefaultParams() Params {
	return Params{
		Fee:              math.LegacyNewDecWithPrec(3, 3),
		MinTradingLimit:  math.NewInt(1000),
		MinPoolLiquidity: math.NewInt(1000),
		MaxInRatio:       3,
		MaxOutRatio:      3,
	}
}

// Validate performs basic validation of xyk parameters.
func (p Params) Validate() error {
	if err := amm.ValidateFee(p.Fee); err != nil {
		return fmt.Errorf("fee: %w", err)
	}
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
