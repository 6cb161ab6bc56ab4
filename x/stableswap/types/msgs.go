package types

import (
	"context"

	sdkerrors "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// MsgCreatePool creates an empty stableswap pool. Authority only.
type MsgCreatePool struct {
	Authority     string         `json:"authority"`
	Assets        []string       `json:"assets"`
	Amplification uint64         `json:"amplification"`
	Fee           math.LegacyDec `json:"fee"`
}

// ValidateBasic performs stateless validation.
func (msg MsgCreatePool) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Authority); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid authority address: %s", err)
	}
	if len(msg.Assets) < MinAssets || len(msg.Assets) > MaxAssets {
		return sdkerrors.Wrapf(ErrInvalidAssets, "%d assets", len(msg.Assets))
	}
	if msg.Amplification < MinAmplification {
		return sdkerrors.Wrapf(ErrInvalidAmplification, "%d", msg.Amplification)
	}
	return nil
}

// AssetAmount is an amount of one pool asset.
type AssetAmount struct {
	Asset  string   `json:"asset"`
	Amount math.Int `json:"amount"`
}

// MsgAddLiquidity deposits any subset of pool assets for shares.
type MsgAddLiquidity struct {
	Provider string        `json:"provider"`
	PoolID   uint64        `json:"pool_id"`
	Assets   []AssetAmount `json:"assets"`
}

// ValidateBasic performs stateless validation.
func (msg MsgAddLiquidity) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Provider); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid provider address: %s", err)
	}
	if len(msg.Assets) == 0 {
		return sdkerrors.Wrap(ErrInvalidAmount, "no assets provided")
	}
	for _, a := range msg.Assets {
		if a.Amount.IsNil() || !a.Amount.IsPositive() {
			return sdkerrors.Wrapf(ErrInvalidAmount, "%s amount must be positive", a.Asset)
		}
	}
	return nil
}

// MsgRemoveLiquidityOneAsset burns shares for a single pool asset.
type MsgRemoveLiquidityOneAsset struct {
	Provider    string   `json:"provider"`
	PoolID      uint64   `json:"pool_id"`
	Asset       string   `json:"asset"`
	Shares      math.Int `json:"shares"`
	MinReceived math.Int `json:"min_received"`
}

// ValidateBasic performs stateless validation.
func (msg MsgRemoveLiquidityOneAsset) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Provider); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid provider address: %s", err)
	}
	if msg.Shares.IsNil() || !msg.Shares.IsPositive() {
		return sdkerrors.Wrap(ErrInvalidAmount, "shares must be positive")
	}
	if !msg.MinReceived.IsNil() && msg.MinReceived.IsNegative() {
		return sdkerrors.Wrap(ErrInvalidAmount, "min received cannot be negative")
	}
	return nil
}

// MsgUpdateParams replaces the stableswap parameters. Authority only.
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
	PoolID uint64 `json:"pool_id"`
}

// MsgAddLiquidityResponse is the response of AddLiquidity.
type MsgAddLiquidityResponse struct {
	Shares math.Int `json:"shares"`
}

// MsgRemoveLiquidityOneAssetResponse is the response of RemoveLiquidityOneAsset.
type MsgRemoveLiquidityOneAssetResponse struct {
	Amount math.Int `json:"amount"`
}

// MsgUpdateParamsResponse is the response of UpdateParams.
type MsgUpdateParamsResponse struct{}

// MsgServer is the stableswap message service.
type MsgServer interface {
	CreatePool(context.Context, *MsgCreatePool) (*MsgCreatePoolResponse, error)
	AddLiquidity(context.Context, *MsgAddLiquidity) (*MsgAddLiquidityResponse, error)
	RemoveLiquidityOneAsset(context.Context, *MsgRemoveLiquidityOneAsset) (*MsgRemoveLiquidityOneAssetResponse, error)
	UpdateParams(context.Context, *MsgUpdateParams) (*MsgUpdateParamsResponse, error)
}
