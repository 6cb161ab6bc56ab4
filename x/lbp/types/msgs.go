package types

import (
	"context"

	sdkerrors "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// MsgCreatePool creates a bootstrapping pool funded by Pool.Owner. Authority only.
type MsgCreatePool struct {
	Authority string   `json:"authority"`
	Pool      Pool     `json:"pool"`
	AmountA   math.Int `json:"amount_a"`
	AmountB   math.Int `json:"amount_b"`
}

// ValidateBasic performs stateless validation.
func (msg MsgCreatePool) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Authority); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid authority address: %s", err)
	}
	if _, err := sdk.AccAddressFromBech32(msg.Pool.Owner); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid owner address: %s", err)
	}
	if _, err := sdk.AccAddressFromBech32(msg.Pool.FeeCollector); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid fee collector address: %s", err)
	}
	if msg.AmountA.IsNil() || !msg.AmountA.IsPositive() || msg.AmountB.IsNil() || !msg.AmountB.IsPositive() {
		return sdkerrors.Wrap(ErrInvalidAmount, "initial amounts must be positive")
	}
	return msg.Pool.Validate()
}

// MsgRemoveLiquidity returns all reserves to the owner once the sale has ended.
type MsgRemoveLiquidity struct {
	Owner  string `json:"owner"`
	AssetA string `json:"asset_a"`
	AssetB string `json:"asset_b"`
}

// ValidateBasic performs stateless validation.
func (msg MsgRemoveLiquidity) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Owner); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid owner address: %s", err)
	}
	if msg.AssetA == msg.AssetB {
		return sdkerrors.Wrapf(ErrSameAsset, "%s", msg.AssetA)
	}
	return nil
}

// MsgUpdateParams replaces the lbp parameters. Authority only.
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

// MsgCreatePoolResponse is the response of CreatePool.
type MsgCreatePoolResponse struct{}

// MsgRemoveLiquidityResponse is the response of RemoveLiquidity.
type MsgRemoveLiquidityResponse struct {
	AmountA math.Int `json:"amount_a"`
	AmountB math.Int `json:"amount_b"`
}

// MsgUpdateParamsResponse is the response of UpdateParams.
type MsgUpdateParamsResponse struct{}

// MsgServer is the lbp message service.
type MsgServer interface {
	CreatePool(context.Context, *MsgCreatePool) (*MsgCreatePoolResponse, error)
	RemoveLiquidity(context.Context, *MsgRemoveLiquidity) (*MsgRemoveLiquidityResponse, error)
	UpdateParams(context.Context, *MsgUpdateParams) (*MsgUpdateParamsResponse, error)
}
