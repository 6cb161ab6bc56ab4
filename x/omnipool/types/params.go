package types

import (
	"fmt"

	"cosmossdk.io/math"

	ledgertypes "github.com/paw-chain/hydrax/x/ledger/types"
	"github.com/paw-chain/hydrax/x/shared/amm"
)

// Params defines the omnipool parameters.
type Params struct {
	HubAsset       string         `json:"hub_asset"`
	AssetFee       math.LegacyDec `json:"asset_fee"`
	ProtocolFee    math.LegacyDec `json:"protocol_fee"`
	MinTradeAmount math.Int       `json:"min_trade_amount"`
	// A trade may move at most 1/MaxInRatio of the in reserve and
	// 1/MaxOutRatio of the out reserve.
	MaxInRatio  uint64 `json:"max_in_ratio"`
	MaxOutRatio uint64 `json:"max_out_ratio"`
}

// DefaultParams returns default omnipool parameters.
func DefaultParams() Params {
	return Params{
		HubAsset:       "lrna",
		AssetFee:       math.LegacyNewDecWithPrec(25, 4),
		ProtocolFee:    math.LegacyNewDecWithPrec(5, 4),
		MinTradeAmount: math.NewInt(1000),
		MaxInRatio:     3,
		MaxOutRatio:    3,
	}
}

// Validate performs basic validation of omnipool parameters.
func (p Params) Validate() error {
	if err := ledgertypes.ValidateDenom(p.HubAsset); err != nil {
		return fmt.Errorf("hub asset: %w", err)
	}
	if err := amm.ValidateFee(p.AssetFee); err != nil {
		return fmt.Errorf("asset fee: %w", err)
	}
	if err := amm.ValidateFee(p.ProtocolFee); err != nil {
		return fmt.Errorf("protocol fee: %w", err)
	}
	if p.MinTradeAmount.IsNil() || p.MinTradeAmount.IsNegative() {
		return fmt.Errorf("min trade amount cannot be negative")
	}
	if p.MaxInRatio == 0 || p.MaxOutRatio == 0 {
		return fmt.Errorf("max in/out ratios must be positive")
	}
	return nil
}
