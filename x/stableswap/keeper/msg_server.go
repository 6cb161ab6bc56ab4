package keeper

import (
	"context"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	sharedkeeper "github.com/paw-chain/hydrax/x/shared/keeper"
	"github.com/paw-chain/hydrax/x/stableswap/types"
)

type msgServer struct {
	Keeper
}

// NewMsgServerImpl returns an implementation of the stableswap MsgServer interface.
func NewMsgServerImpl(keeper Keeper) types.MsgServer {
	return &msgServer{Keeper: keeper}
}

var _ types.MsgServer = msgServer{}

// CreatePool handles pool creation. Authority only.
func (ms msgServer) CreatePool(goCtx context.Context, msg *types.MsgCreatePool) (*types.MsgCreatePoolResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("CreatePool: validate: %w", err)
	}
	if err := sharedkeeper.ValidateAuthority(ms.authority, msg.Authority); err != nil {
		return nil, err
	}
	id, err := ms.Keeper.CreatePool(goCtx, msg.Assets, msg.Amplification, msg.Fee)
	if err != nil {
		return nil, fmt.Errorf("CreatePool: %w", err)
	}
	return &types.MsgCreatePoolResponse{PoolID: id}, nil
}

// AddLiquidity handles liquidity provision.
func (ms msgServer) AddLiquidity(goCtx context.Context, msg *types.MsgAddLiquidity) (*types.MsgAddLiquidityResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("AddLiquidity: validate: %w", err)
	}
	provider := sdk.MustAccAddressFromBech32(msg.Provider)
	shares, err := ms.Keeper.AddLiquidity(goCtx, provider, msg.PoolID, msg.Assets)
	if err != nil {
		return nil, fmt.Errorf("AddLiquidity: %w", err)
	}
	return &types.MsgAddLiquidityResponse{Shares: shares}, nil
}

// RemoveLiquidityOneAsset handles single asset withdrawal.
func (ms msgServer) RemoveLiquidityOneAsset(goCtx context.Context, msg *types.MsgRemoveLiquidityOneAsset) (*types.MsgRemoveLiquidityOneAssetResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("RemoveLiquidityOneAsset: validate: %w", err)
	}
	provider := sdk.MustAccAddressFromBech32(msg.Provider)
	amount, err := ms.Keeper.RemoveLiquidityOneAsset(goCtx, provider, msg.PoolID, msg.Asset, msg.Shares, msg.MinReceived)
	if err != nil {
		return nil, fmt.Errorf("RemoveLiquidityOneAsset: %w", err)
	}
	return &types.MsgRemoveLiquidityOneAssetResponse{Amount: amount}, nil
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
