package types

import (
	"context"

	sdkerrors "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// MsgTransfer moves free balance between accounts.
type MsgTransfer struct {
	From   string   `json:"from"`
	To     string   `json:"to"`
	Denom  string   `json:"denom"`
	Amount math.Int `json:"amount"`
}

// GetSigners returns the sender.
func (msg MsgTransfer) GetSigners() []sdk.AccAddress {
	from, err := sdk.AccAddressFromBech32(msg.From)
	if err != nil {
		panic(err)
	}
	return []sdk.AccAddress{from}
}

// ValidateBasic performs stateless validation.
func (msg MsgTransfer) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.From); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid sender address: %s", err)
	}
	if _, err := sdk.AccAddressFromBech32(msg.To); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid recipient address: %s", err)
	}
	if err := ValidateDenom(msg.Denom); err != nil {
		return err
	}
	if msg.Amount.IsNil() || !msg.Amount.IsPositive() {
		return sdkerrors.Wrap(ErrInvalidAmount, "amount must be positive")
	}
	return nil
}

// MsgRegisterAsset registers a new asset. Authority only.
type MsgRegisterAsset struct {
	Authority string `json:"authority"`
	Asset     Asset  `json:"asset"`
}

// ValidateBasic performs stateless validation.
func (msg MsgRegisterAsset) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Authority); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid authority address: %s", err)
	}
	return msg.Asset.Validate()
}

// MsgUpdateParams replaces the ledger parameters. Authority only.
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

// MsgServer is the ledger message service.
type MsgServer interface {
	Transfer(context.Context, *MsgTransfer) (*MsgTransferResponse, error)
	RegisterAsset(context.Context, *MsgRegisterAsset) (*MsgRegisterAssetResponse, error)
	UpdateParams(context.Context, *MsgUpdateParams) (*MsgUpdateParamsResponse, error)
}

// MsgTransferResponse is the response of Transfer.
type MsgTransferResponse struct{}

// MsgRegisterAssetResponse is the response of RegisterAsset.
type MsgRegisterAssetResponse struct{}
