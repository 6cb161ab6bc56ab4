package types

import (
	"context"

	sdkerrors "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// MsgAddToken adds a new asset to the omnipool at an initial hub price.
// Authority only; the provider supplies the initial liquidity.
type MsgAddToken struct {
	Authority    string         `json:"authority"`
	Provider     string         `json:"provider"`
	Asset        string         `json:"asset"`
	Amount       math.Int       `json:"amount"`
	InitialPrice math.LegacyDec `json:"initial_price"`
}

// ValidateBasic performs stateless validation.
func (msg MsgAddToken) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Authority); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid authority address: %s", err)
	}
	if _, err := sdk.AccAddressFromBech32(msg.Provider); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid provider address: %s", err)
	}
	if msg.Asset == "" {
		return sdkerrors.Wrap(ErrAssetNotFound, "asset cannot be empty")
	}
	if msg.Amount.IsNil() || !msg.Amount.IsPositive() {
		return sdkerrors.Wrap(ErrInvalidAmount, "amount must be positive")
	}
	if msg.InitialPrice.IsNil() || !msg.InitialPrice.IsPositive() {
		return sdkerrors.Wrap(ErrInvalidInitialPrice, "initial price must be positive")
	}
	return nil
}

// MsgAddLiquidity adds liquidity of a single asset.
type MsgAddLiquidity struct {
	Provider string   `json:"provider"`
	Asset    string   `json:"asset"`
	Amount   math.Int `json:"amount"`
}

// ValidateBasic performs stateless validation.
func (msg MsgAddLiquidity) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Provider); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid provider address: %s", err)
	}
	if msg.Amount.IsNil() || !msg.Amount.IsPositive() {
		return sdkerrors.Wrap(ErrInvalidAmount, "amount must be positive")
	}
	return nil
}

// MsgRemoveLiquidity redeems shares of a single asset.
type MsgRemoveLiquidity struct {
	Provider string   `json:"provider"`
	Asset    string   `json:"asset"`
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

// MsgUpdateParams replaces the omnipool parameters. Authority only.
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

// MsgAddTokenResponse is the response of AddToken.
type MsgAddTokenResponse struct {
	Shares math.Int `json:"shares"`
}

// MsgAddLiquidityResponse is the response of AddLiquidity.
type MsgAddLiquidityResponse struct {
	Shares math.Int `json:"shares"`
}

// MsgRemoveLiquidityResponse is the response of RemoveLiquidity.
type MsgRemoveLiquidityResponse struct {
	Amount math.Int `json:"amount"`
}

// MsgUpdateParamsResponse is the response of UpdateParams.
type MsgUpdateParamsResponse struct{}

// MsgServer is the omnipool message service.
type MsgServer interface {
	AddToken(context.Context, *MsgAddToken) (*MsgAddTokenResponse, error)
	AddLiquidity(context.Context, *MsgAddLiquidity) (*MsgAddLiquidityResponse, error)
	RemoveLiquidity(context.Context, *MsgRemoveLiquidity) (*MsgRemoveLiquidityResponse, error)
	UpdateParams(context.Context, *MsgUpdateParams) (*MsgUpdateParamsResponse, error)
}
