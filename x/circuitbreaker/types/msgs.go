package types

import (
	"context"

	sdkerrors "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// MsgSetTradeVolumeLimit overrides the trade volume limit of an asset.
type MsgSetTradeVolumeLimit struct {
	Authority string   `json:"authority"`
	Asset     string   `json:"asset"`
	Limit     Fraction `json:"limit"`
}

// ValidateBasic performs stateless validation.
func (msg MsgSetTradeVolumeLimit) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Authority); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid authority address: %s", err)
	}
	if msg.Asset == "" {
		return sdkerrors.Wrap(ErrInvalidLimitValue, "asset cannot be empty")
	}
	return msg.Limit.Validate()
}

// MsgSetLiquidityLimit overrides the add or remove liquidity limit of an
// asset. A nil Limit removes the limit.
type MsgSetLiquidityLimit struct {
	Authority string    `json:"authority"`
	Asset     string    `json:"asset"`
	Remove    bool      `json:"remove"`
	Limit     *Fraction `json:"limit,omitempty"`
}

// ValidateBasic performs stateless validation.
func (msg MsgSetLiquidityLimit) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Authority); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid authority address: %s", err)
	}
	if msg.Asset == "" {
		return sdkerrors.Wrap(ErrInvalidLimitValue, "asset cannot be empty")
	}
	if msg.Limit != nil {
		return msg.Limit.Validate()
	}
	return nil
}

// MsgSetTradeVolumeLimitResponse is the response of SetTradeVolumeLimit.
type MsgSetTradeVolumeLimitResponse struct{}

// MsgSetLiquidityLimitResponse is the response of SetLiquidityLimit.
type MsgSetLiquidityLimitResponse struct{}

// MsgUpdateParams replaces the circuit breaker parameters. Authority only.
type MsgUpdateParams struct {
	Authority string `json:"authority"`
	Params    Params `json:"params"`
}

// ValidateBasic performs stateless validation.
func (msg MsgUpdateParams) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Authority); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid authority address: %s", err)
	}
	return msg.Params.Validate()
}

// MsgUpdateParamsResponse is the response of UpdateParams.
type MsgUpdateParamsResponse struct{}

// MsgServer is the circuit breaker message service.
type MsgServer interface {
	SetTradeVolumeLimit(context.Context, *MsgSetTradeVolumeLimit) (*MsgSetTradeVolumeLimitResponse, error)
	SetLiquidityLimit(context.Context, *MsgSetLiquidityLimit) (*MsgSetLiquidityLimitResponse, error)
	UpdateParams(context.Context, *MsgUpdateParams) (*MsgUpdateParamsResponse, error)
}
