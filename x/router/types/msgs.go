package types

import (
	"context"

	sdkerrors "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// MsgSell sells an exact amount along a route.
type MsgSell struct {
	Trader   string   `json:"trader"`
	AssetIn  string   `json:"asset_in"`
	AssetOut string   `json:"asset_out"`
	AmountIn math.Int `json:"amount_in"`
	MinOut   math.Int `json:"min_amount_out"`
	Route    Route    `json:"route,omitempty"`
}

// ValidateBasic performs stateless validation.
func (msg MsgSell) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Trader); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid trader address: %s", err)
	}
	if msg.AmountIn.IsNil() || !msg.AmountIn.IsPositive() {
		return sdkerrors.Wrap(ErrInvalidAmount, "amount in must be positive")
	}
	if msg.MinOut.IsNil() || msg.MinOut.IsNegative() {
		return sdkerrors.Wrap(ErrInvalidAmount, "min amount out cannot be negative")
	}
	return validateOptionalRoute(msg.Route, msg.AssetIn, msg.AssetOut)
}

// MsgBuy buys an exact amount along a route.
type MsgBuy struct {
	Trader    string   `json:"trader"`
	AssetIn   string   `json:"asset_in"`
	AssetOut  string   `json:"asset_out"`
	AmountOut math.Int `json:"amount_out"`
	MaxIn     math.Int `json:"max_amount_in"`
	Route     Route    `json:"route,omitempty"`
}

// ValidateBasic performs stateless validation.
func (msg MsgBuy) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Trader); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid trader address: %s", err)
	}
	if msg.AmountOut.IsNil() || !msg.AmountOut.IsPositive() {
		return sdkerrors.Wrap(ErrInvalidAmount, "amount out must be positive")
	}
	if msg.MaxIn.IsNil() || !msg.MaxIn.IsPositive() {
		return sdkerrors.Wrap(ErrInvalidAmount, "max amount in must be positive")
	}
	return validateOptionalRoute(msg.Route, msg.AssetIn, msg.AssetOut)
}

// MsgSetRoute proposes a default route for an asset pair.
type MsgSetRoute struct {
	Sender string    `json:"sender"`
	Pair   AssetPair `json:"asset_pair"`
	Route  Route     `json:"route"`
}

// ValidateBasic performs stateless validation.
func (msg MsgSetRoute) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Sender); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid sender address: %s", err)
	}
	return msg.Route.Validate(msg.Pair.AssetIn, msg.Pair.AssetOut)
}

// MsgForceInsertRoute stores a route without comparing it. Authority only.
type MsgForceInsertRoute struct {
	Authority string    `json:"authority"`
	Pair      AssetPair `json:"asset_pair"`
	Route     Route     `json:"route"`
}

// ValidateBasic performs stateless validation.
func (msg MsgForceInsertRoute) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Authority); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid authority address: %s", err)
	}
	return msg.Route.Validate(msg.Pair.AssetIn, msg.Pair.AssetOut)
}

func validateOptionalRoute(route Route, assetIn, assetOut string) error {
	if assetIn == "" || assetOut == "" || assetIn == assetOut {
		return sdkerrors.Wrapf(ErrInvalidRoute, "invalid asset pair %s/%s", assetIn, assetOut)
	}
	if len(route) == 0 {
		return nil
	}
	return route.Validate(assetIn, assetOut)
}

// MsgSellResponse is the response of Sell.
type MsgSellResponse struct {
	AmountOut math.Int `json:"amount_out"`
}

// MsgBuyResponse is the response of Buy.
type MsgBuyResponse struct {
	AmountIn math.Int `json:"amount_in"`
}

// MsgSetRouteResponse is the response of SetRoute.
type MsgSetRouteResponse struct{}

// MsgForceInsertRouteResponse is the response of ForceInsertRoute.
type MsgForceInsertRouteResponse struct{}

// MsgServer is the router message service.
type MsgServer interface {
	Sell(context.Context, *MsgSell) (*MsgSellResponse, error)
	Buy(context.Context, *MsgBuy) (*MsgBuyResponse, error)
	SetRoute(context.Context, *MsgSetRoute) (*MsgSetRouteResponse, error)
	ForceInsertRoute(context.Context, *MsgForceInsertRoute) (*MsgForceInsertRouteResponse, error)
}
