package types

import (
	"context"

	sdkerrors "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// MsgCreatePool creates a pool with initial liquidity.
type MsgCreatePool struct {
	Creator string   `json:"creator"`
	AssetA  string   `json:"asset_a"`
	AmountA math.Int `json:"amount_a"`
	AssetB  string   `json:"asset_b"`
	AmountB math.Int `json:"amount_b"`
}

// ValidateBasic performs stateless validation.
func (msg MsgCreatePool) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Creator); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid creator address: %s", err)
	}
	if msg.AssetA == msg.AssetB {
		return sdkerrors.Wrapf(ErrSameAsset, "%s", msg.AssetA)
	}
	if msg.AmountA.IsNil() || !msg.AmountA.IsPositive() || msg.AmountB.IsNil() || !msg.AmountB.IsPositive() {
		return sdkerrors.Wrap(ErrInvalidAmount, "initial amounts must be positive")
	}
	return nil
}

// MsgAddLiquidity adds amountA of assetA and the proportional amount of
// assetB, which may not exceed MaxAmountB.
type MsgAddLiquidity struct {
	Provider   string   `json:"provider"`
	AssetA     string   `json:"asset_a"`
	AssetB     string   `json:"asset_b"`
	AmountA    math.Int `json:"amount_a"`
	MaxAmountB math.Int `json:"max_amount_b"`
}

// ValidateBasic performs stateless validation.
func (msg MsgAddLiquidity) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Provider); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid provider address: %s", err)
	}
	if msg.AssetA == msg.AssetB {
		return sdkerrors.Wrapf(ErrSameAsset, "%s", msg.AssetA)
	}
	if msg.AmountA.IsNil() || !msg.AmountA.IsPositive() {
		return sdkerrors.Wrap(ErrInvalidAmount, "amount must be positive")
	}
	if msg.MaxAmountB.IsNil() || !msg.MaxAmountB.IsPositive() {
		return sdkerrors.Wrap(ErrInvalidAmount, "max amount b must be positive")
	}
	return nil
}

// MsgRemoveLiquidity redeems pool shares.
type MsgRemoveLiquidity struct {
	Provider string   `json:"provider"`
	AssetA   string   `json:"asset_a"`
	AssetB   string   `json:"asset_b"`
	Shares   math.Int `json:"shares"`
}

// ValidateBasic performs stateless validation.
func (msg MsgRemoveLiquidity) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Provider); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid provider address: %s", err)
	}
	if msg.Shares.IsNil() || !msg.Shares.IsPositive() {
		return sdkerrors.Wrap(ErrInvalidAmount, "shares must be positive")
	}
	return nil
}

// MsgUpdateParams replaces the xyk parameters. Authority only.
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
type MsgCreatePoolResponse struct {
	Shares math.Int `json:"shares"`
}

// MsgAddLiquidityResponse is the response of AddLiquidity.
type MsgAddLiquidityResponse struct {
	AmountB math.Int `json:"amount_b"`
	Shares  math.Int `json:"shares"`
}

// MsgRemoveLiquidityResponse is the response of RemoveLiquidity.
type MsgRemoveLiquidityResponse struct {
	AmountA math.Int `json:"amount_a"`
	AmountB math.Int `json:"amount_b"`
}

// MsgUpdateParamsResponse is the response of UpdateParams.
type MsgUpdateParamsResponse struct{}

// MsgServer is the xyk message service.
type MsgServer interface {
	CreatePool(context.Context, *MsgCreatePool) (*MsgCreatePoolResponse, error)
	AddLiquidity(context.Context, *MsgAddLiquidity) (*MsgAddLiquidityResponse, error)
	RemoveLiquidity(context.Context, *MsgRemoveLiquidity) (*MsgRemoveLiquidityResponse, error)
	UpdateParams(context.Context, *MsgUpdateParams) (*MsgUpdateParamsResponse, error)
}
