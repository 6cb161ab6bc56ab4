package keeper

import (
	"context"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	sharedkeeper "github.com/paw-chain/hydrax/x/shared/keeper"
	"github.com/paw-chain/hydrax/x/xyk/types"
)

type msgServer struct {
	Keeper
}

// NewMsgServerImpl returns an implementation of the xyk MsgServer interface.
func NewMsgServerImpl(keeper Keeper) types.MsgServer {
	return &msgServer{Keeper: keeper}
}

var _ types.MsgServer = msgServer{}

// CreatePool handles pool creation.
func (ms msgServer) CreatePool(goCtx context.Context, msg *types.MsgCreatePool) (*types.MsgCreatePoolResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("CreatePool: validate: %w", err)
	}
	creator := sdk.MustAccAddressFromBech32(msg.Creator)
	shares, err := ms.Keeper.CreatePool(goCtx, creator, msg.AssetA, msg.AmountA, msg.AssetB, msg.AmountB)
	if err != nil {
		return nil, fmt.Errorf("CreatePool: %w", err)
	}
	return &types.MsgCreatePoolResponse{Shares: shares}, nil
}

// AddLiquidity handles liquidity provision.
func (ms msgServer) AddLiquidity(goCtx context.Context, msg *types.MsgAddLiquidity) (*types.MsgAddLiquidityResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("AddLiquidity: validate: %w", err)
	}
	provider := sdk.MustAccAddressFromBech32(msg.Provider)
	amountB, shares, err := ms.Keeper.AddLiquidity(goCtx, provider, msg.AssetA, msg.AssetB, msg.AmountA, msg.MaxAmountB)
	if err != nil {
		return nil, fmt.Errorf("AddLiquidity: %w", err)
	}
	return &types.MsgAddLiquidityResponse{AmountB: amountB, Shares: shares}, nil
}

// RemoveLiquidity handles share redemption.
func (ms msgServer) RemoveLiquidity(goCtx context.Context, msg *types.MsgRemoveLiquidity) (*types.MsgRemoveLiquidityResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("RemoveLiquidity: validate: %w", err)
	}
	provider := sdk.MustAccAddressFromBech32(msg.Provider)
	amountA, amountB, err := ms.Keeper.RemoveLiquidity(goCtx, provider, msg.AssetA, msg.AssetB, msg.Shares)
	if err != nil {
		return nil, fmt.Errorf("RemoveLiquidity: %w", err)
	}
	return &types.MsgRemoveLiquidityResponse{AmountA: amountA, AmountB: amountB}, nil
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
