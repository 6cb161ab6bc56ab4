package keeper

import (
	"context"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/hydrax/x/router/types"
	sharedkeeper "github.com/paw-chain/hydrax/x/shared/keeper"
)

type msgServer struct {
	Keeper
}

// NewMsgServerImpl returns an implementation of the router MsgServer interface.
func NewMsgServerImpl(keeper Keeper) types.MsgServer {
	return &msgServer{Keeper: keeper}
}

var _ types.MsgServer = msgServer{}

// Sell handles a routed sell.
func (ms msgServer) Sell(goCtx context.Context, msg *types.MsgSell) (*types.MsgSellResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("Sell: validate: %w", err)
	}
	trader := sdk.MustAccAddressFromBech32(msg.Trader)
	out, err := ms.Keeper.Sell(goCtx, trader, msg.AssetIn, msg.AssetOut, msg.AmountIn, msg.MinOut, msg.Route)
	if err != nil {
		return nil, fmt.Errorf("Sell: %w", err)
	}
	return &types.MsgSellResponse{AmountOut: out}, nil
}

// Buy handles a routed buy.
func (ms msgServer) Buy(goCtx context.Context, msg *types.MsgBuy) (*types.MsgBuyResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("Buy: validate: %w", err)
	}
	trader := sdk.MustAccAddressFromBech32(msg.Trader)
	in, err := ms.Keeper.Buy(goCtx, trader, msg.AssetIn, msg.AssetOut, msg.AmountOut, msg.MaxIn, msg.Route)
	if err != nil {
		return nil, fmt.Errorf("Buy: %w", err)
	}
	return &types.MsgBuyResponse{AmountIn: in}, nil
}

// SetRoute handles a default route proposal.
func (ms msgServer) SetRoute(goCtx context.Context, msg *types.MsgSetRoute) (*types.MsgSetRouteResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("SetRoute: validate: %w", err)
	}
	sender := sdk.MustAccAddressFromBech32(msg.Sender)
	if err := ms.Keeper.SetRoute(goCtx, sender, msg.Pair, msg.Route); err != nil {
		return nil, fmt.Errorf("SetRoute: %w", err)
	}
	return &types.MsgSetRouteResponse{}, nil
}

// ForceInsertRoute handles an authority route override.
func (ms msgServer) ForceInsertRoute(goCtx context.Context, msg *types.MsgForceInsertRoute) (*types.MsgForceInsertRouteResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("ForceInsertRoute: validate: %w", err)
	}
	if err := sharedkeeper.ValidateAuthority(ms.authority, msg.Authority); err != nil {
		return nil, err
	}
	authority := sdk.MustAccAddressFromBech32(msg.Authority)
	if err := ms.Keeper.ForceInsertRoute(goCtx, authority, msg.Pair, msg.Route); err != nil {
		return nil, fmt.Errorf("ForceInsertRoute: %w", err)
	}
	return &types.MsgForceInsertRouteResponse{}, nil
}
