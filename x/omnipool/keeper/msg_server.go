package keeper

import (
	"context"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/hydrax/x/omnipool/types"
	sharedkeeper "github.com/paw-chain/hydrax/x/shared/keeper"
)

type msgServer struct {
	Keeper
}

// NewMsgServerImpl returns an implementation of the omnipool MsgServer interface.
func NewMsgServerImpl(keeper Keeper) types.MsgServer {
	return &msgServer{Keeper: keeper}
}

var _ types.MsgServer = msgServer{}

// AddToken lists a new asset. Authority only.
func (ms msgServer) AddToken(goCtx context.Context, msg *types.MsgAddToken) (*types.MsgAddTokenResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("AddToken: validate: %w", err)
	}
	if err := sharedkeeper.ValidateAuthority(ms.authority, msg.Authority); err != nil {
		return nil, err
	}
	provider := sdk.MustAccAddressFromBech32(msg.Provider)
	shares, err := ms.Keeper.AddToken(goCtx, provider, msg.Asset, msg.Amount, msg.InitialPrice)
	if err != nil {
		return nil, fmt.Errorf("AddToken: %w", err)
	}
	return &types.MsgAddTokenResponse{Shares: shares}, nil
}

// AddLiquidity handles single asset liquidity provision.
func (ms msgServer) AddLiquidity(goCtx context.Context, msg *types.MsgAddLiquidity) (*types.MsgAddLiquidityResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("AddLiquidity: validate: %w", err)
	}
	provider := sdk.MustAccAddressFromBech32(msg.Provider)
	shares, err := ms.Keeper.AddLiquidity(goCtx, provider, msg.Asset, msg.Amount)
	if err != nil {
		return nil, fmt.Errorf("AddLiquidity: %w", err)
	}
	return &types.MsgAddLiquidityResponse{Shares: shares}, nil
}

// RemoveLiquidity handles share redemption.
func (ms msgServer) RemoveLiquidity(goCtx context.Context, msg *types.MsgRemoveLiquidity) (*types.MsgRemoveLiquidityResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("RemoveLiquidity: validate: %w", err)
	}
	provider := sdk.MustAccAddressFromBech32(msg.Provider)
	amount, err := ms.Keeper.RemoveLiquidity(goCtx, provider, msg.Asset, msg.Shares)
	if err != nil {
		return nil, fmt.Errorf("RemoveLiquidity: %w", err)
	}
	return &types.MsgRemoveLiquidityResponse{Amount: amount}, nil
}

// UpdateParams replaces the module parameters.
func (ms msgServer) UpdateParams(goCtx context.Context, msg *types.MsgUpdateParams) (*types.MsgUpdateParamsResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("UpdateParams: validate: %w", err)
	}
	if err := sharedkeeper.ValidateAuthority(ms.authority, msg.Authority); err != nil {
		return nil, err
	}
	if err := ms.SetParams(goCtx, msg.Params); err != nil {
		return nil, fmt.Errorf("UpdateParams: %w", err)
	}
	return &types.MsgUpdateParamsResponse{}, nil
}
