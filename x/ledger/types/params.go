package types

import (
	"cosmossdk.io/math"
)

// Params defines the ledger parameters.
type Params struct {
	// NativeAsset is the denom fees and deposits are denominated in.
	NativeAsset string `json:"native_asset"`
	// InsufficientAssetDeposit is charged in NativeAsset when an account
	// starts holding an insufficient asset and refunded when it stops.
	InsufficientAssetDeposit math.Int `json:"insufficient_asset_deposit"`
}

// DefaultParams returns default ledger parameters.
func DefaultParams() Params {
	return Params{
		NativeAsset:              "hdx",
		InsufficientAssetDeposit: math.NewInt(1_000_000_000_000),
	}
}

// Validate validates the parameter set.
func (p Params) Validate() error {
	if err := ValidateDenom(p.NativeAsset); err != nil {
		return err
	}
	if p.InsufficientAssetDeposit.IsNil() || p.InsufficientAssetDeposit.IsNegative() {
		return ErrInvalidAmount.Wrap("insufficient asset deposit must be non-negative")
	}
	return nil
}
